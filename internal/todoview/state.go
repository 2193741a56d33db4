// Package todoview holds the to-do view's local state and the round trips
// that keep it in sync with the API.
//
// The state is a mirror of the last server responses. It is changed only by
// applying a Mutation produced after a round trip completes, so the owner of
// the state (the TUI update loop, or a View) decides when changes land.
package todoview

import (
	"slices"

	"github.com/runoshun/brutal/internal/domain"
)

// Mutation reconciles local state with a completed round trip.
type Mutation func(*State)

// State is the local copy of the server's todo collection.
// Order is the server's initial order with created todos appended.
type State struct {
	todos   []domain.Todo
	loading bool
}

// NewState returns an empty state that is still loading.
func NewState() *State {
	return &State{loading: true}
}

// Loading reports whether the initial read has not finished yet.
func (s *State) Loading() bool {
	return s.loading
}

// Todos returns a copy of the collection.
func (s *State) Todos() []domain.Todo {
	return slices.Clone(s.todos)
}

// Len returns the number of todos.
func (s *State) Len() int {
	return len(s.todos)
}

// At returns the todo at index i.
func (s *State) At(i int) domain.Todo {
	return s.todos[i]
}

// Find returns the todo with the given ID.
func (s *State) Find(id int) (domain.Todo, bool) {
	i := s.index(id)
	if i < 0 {
		return domain.Todo{}, false
	}
	return s.todos[i], true
}

// Stats derives the display counts from the current collection.
func (s *State) Stats() Stats {
	return ComputeStats(s.todos)
}

// Apply runs m against the state. A nil mutation is a no-op.
func (s *State) Apply(m Mutation) {
	if m != nil {
		m(s)
	}
}

func (s *State) index(id int) int {
	return slices.IndexFunc(s.todos, func(t domain.Todo) bool { return t.ID == id })
}

func (s *State) finishLoading() {
	s.loading = false
}

func (s *State) replaceAll(todos []domain.Todo) {
	s.todos = slices.Clone(todos)
}

func (s *State) appendTodo(t domain.Todo) {
	s.todos = append(s.todos, t)
}

// replace swaps the entry with t's ID for t. Missing IDs are ignored.
func (s *State) replace(t domain.Todo) {
	if i := s.index(t.ID); i >= 0 {
		s.todos[i] = t
	}
}

// remove drops the entry with the given ID. Missing IDs are ignored.
func (s *State) remove(id int) {
	if i := s.index(id); i >= 0 {
		s.todos = slices.Delete(s.todos, i, i+1)
	}
}
