package tui

import "github.com/runoshun/brutal/internal/todoview"

// Msg is the sealed interface for all TUI messages.
// Every round trip result carries the mutation to apply inside Update;
// Apply is nil when the round trip failed.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTodosLoaded is sent when the initial read finishes.
type MsgTodosLoaded struct {
	Apply todoview.Mutation
	Err   error
}

func (MsgTodosLoaded) sealed() {}

// MsgTodoAdded is sent when a create round trip finishes.
type MsgTodoAdded struct {
	Apply todoview.Mutation
	Err   error
}

func (MsgTodoAdded) sealed() {}

// MsgTodoToggled is sent when an update round trip finishes.
type MsgTodoToggled struct {
	Apply  todoview.Mutation
	Err    error
	TodoID int
}

func (MsgTodoToggled) sealed() {}

// MsgTodoDeleted is sent when a delete round trip finishes.
type MsgTodoDeleted struct {
	Apply  todoview.Mutation
	Err    error
	TodoID int
}

func (MsgTodoDeleted) sealed() {}
