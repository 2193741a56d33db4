package todoview

import (
	"context"
	"errors"

	"github.com/runoshun/brutal/internal/domain"
)

// View is the synchronous form of the to-do view: it owns a State and an
// input field and applies each round trip as soon as it returns.
// It is not safe for concurrent use.
type View struct {
	state      *State
	dispatcher *Dispatcher
	input      string
}

// NewView creates a View in the loading state.
func NewView(d *Dispatcher) *View {
	return &View{
		state:      NewState(),
		dispatcher: d,
	}
}

// State returns the view's state.
func (v *View) State() *State {
	return v.state
}

// Input returns the current input field value.
func (v *View) Input() string {
	return v.input
}

// SetInput replaces the input field value.
func (v *View) SetInput(s string) {
	v.input = s
}

// Load performs the initial read.
func (v *View) Load(ctx context.Context) error {
	m, err := v.dispatcher.Fetch(ctx)
	v.state.Apply(m)
	return err
}

// Submit adds the current input. The input is cleared only on success.
func (v *View) Submit(ctx context.Context) error {
	return v.Add(ctx, v.input)
}

// Add creates a todo. Blank text is a no-op and returns nil.
// On success the input field is cleared.
func (v *View) Add(ctx context.Context, text string) error {
	m, err := v.dispatcher.Add(ctx, text)
	if errors.Is(err, domain.ErrEmptyText) {
		return nil
	}
	if err != nil {
		return err
	}
	v.state.Apply(m)
	v.input = ""
	return nil
}

// Toggle flips a todo's completion. Unknown IDs return ErrTodoNotFound
// without a request.
func (v *View) Toggle(ctx context.Context, id int) error {
	current, ok := v.state.Find(id)
	if !ok {
		return domain.ErrTodoNotFound
	}
	m, err := v.dispatcher.Toggle(ctx, current)
	if err != nil {
		return err
	}
	v.state.Apply(m)
	return nil
}

// Delete removes a todo. Unknown IDs return ErrTodoNotFound without a request.
func (v *View) Delete(ctx context.Context, id int) error {
	if _, ok := v.state.Find(id); !ok {
		return domain.ErrTodoNotFound
	}
	m, err := v.dispatcher.Delete(ctx, id)
	if err != nil {
		return err
	}
	v.state.Apply(m)
	return nil
}
