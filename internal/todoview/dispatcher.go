package todoview

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/brutal/internal/domain"
)

// Log categories.
const (
	categoryFetch  = "fetch"
	categoryAdd    = "add"
	categoryToggle = "toggle"
	categoryDelete = "delete"
)

// Dispatcher performs the round trips against the API and turns each
// response into a Mutation. Failures are logged and returned, and never
// produce a mutation, so local state stays exactly as it was.
type Dispatcher struct {
	api    domain.TodoAPI
	logger domain.Logger
}

// NewDispatcher creates a Dispatcher. A nil logger discards failures.
func NewDispatcher(api domain.TodoAPI, logger domain.Logger) *Dispatcher {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Dispatcher{api: api, logger: logger}
}

// NormalizeText trims surrounding whitespace from user input.
func NormalizeText(text string) string {
	return strings.TrimSpace(text)
}

// Fetch reads the full collection. The returned mutation always clears the
// loading flag; on success it also replaces the collection.
func (d *Dispatcher) Fetch(ctx context.Context) (Mutation, error) {
	todos, err := d.api.List(ctx)
	if err != nil {
		d.logger.Error(0, categoryFetch, fmt.Sprintf("error fetching todos: %v", err))
		return func(s *State) { s.finishLoading() }, err
	}
	d.logger.Debug(0, categoryFetch, fmt.Sprintf("fetched %d todos", len(todos)))
	return func(s *State) {
		s.replaceAll(todos)
		s.finishLoading()
	}, nil
}

// Add creates a todo from text. Blank text returns ErrEmptyText without a request.
func (d *Dispatcher) Add(ctx context.Context, text string) (Mutation, error) {
	text = NormalizeText(text)
	if text == "" {
		return nil, domain.ErrEmptyText
	}
	created, err := d.api.Create(ctx, text)
	if err != nil {
		d.logger.Error(0, categoryAdd, fmt.Sprintf("error adding todo: %v", err))
		return nil, err
	}
	if created.ID <= 0 {
		err := fmt.Errorf("create returned todo without id: %w", domain.ErrInvalidResponse)
		d.logger.Error(0, categoryAdd, fmt.Sprintf("error adding todo: %v", err))
		return nil, err
	}
	d.logger.Info(created.ID, categoryAdd, fmt.Sprintf("created: %q", created.Text))
	return func(s *State) { s.appendTodo(created) }, nil
}

// Toggle asks the server to flip current's completion flag. The mutation
// replaces the local entry with whatever the server returned.
func (d *Dispatcher) Toggle(ctx context.Context, current domain.Todo) (Mutation, error) {
	completed := !current.Completed
	updated, err := d.api.Update(ctx, current.ID, domain.TodoPatch{Completed: &completed})
	if err != nil {
		d.logger.Error(current.ID, categoryToggle, fmt.Sprintf("error updating todo: %v", err))
		return nil, err
	}
	if updated.ID != current.ID {
		err := fmt.Errorf("update returned todo %d: %w", updated.ID, domain.ErrInvalidResponse)
		d.logger.Error(current.ID, categoryToggle, fmt.Sprintf("error updating todo: %v", err))
		return nil, err
	}
	d.logger.Info(updated.ID, categoryToggle, fmt.Sprintf("completed=%t", updated.Completed))
	return func(s *State) { s.replace(updated) }, nil
}

// Delete removes the todo on the server, then locally.
func (d *Dispatcher) Delete(ctx context.Context, id int) (Mutation, error) {
	if err := d.api.Delete(ctx, id); err != nil {
		d.logger.Error(id, categoryDelete, fmt.Sprintf("error deleting todo: %v", err))
		return nil, err
	}
	d.logger.Info(id, categoryDelete, "deleted")
	return func(s *State) { s.remove(id) }, nil
}
