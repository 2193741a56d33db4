package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/brutal/internal/domain"
)

// UpdateTodoInput contains the parameters for updating a todo.
type UpdateTodoInput struct {
	Patch domain.TodoPatch // Fields to change
	ID    int              // Todo ID to update
}

// UpdateTodoOutput contains the result of updating a todo.
type UpdateTodoOutput struct {
	Todo domain.Todo // The stored record after the update
}

// UpdateTodo is the use case for updating a todo.
type UpdateTodo struct {
	todos  domain.TodoRepository
	logger domain.Logger
}

// NewUpdateTodo creates a new UpdateTodo use case.
func NewUpdateTodo(todos domain.TodoRepository, logger domain.Logger) *UpdateTodo {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &UpdateTodo{
		todos:  todos,
		logger: logger,
	}
}

// Execute applies the patch to an existing todo.
func (uc *UpdateTodo) Execute(ctx context.Context, in UpdateTodoInput) (*UpdateTodoOutput, error) {
	if in.Patch.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	patch := in.Patch
	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return nil, domain.ErrEmptyText
		}
		patch.Text = &text
	}

	current, err := uc.todos.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get todo: %w", err)
	}
	if current == nil {
		return nil, domain.ErrTodoNotFound
	}

	updated := patch.Apply(*current)
	if err := uc.todos.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("save todo: %w", err)
	}

	uc.logger.Info(updated.ID, "update", fmt.Sprintf("completed=%t", updated.Completed))
	return &UpdateTodoOutput{Todo: updated}, nil
}
