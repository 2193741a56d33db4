package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/brutal/internal/domain"
)

// DeleteTodoInput contains the parameters for deleting a todo.
type DeleteTodoInput struct {
	ID int // Todo ID to delete
}

// DeleteTodoOutput contains the result of deleting a todo.
type DeleteTodoOutput struct {
	Existed bool // Whether a todo was actually removed
}

// DeleteTodo is the use case for deleting a todo.
// Deleting a missing todo succeeds.
type DeleteTodo struct {
	todos  domain.TodoRepository
	logger domain.Logger
}

// NewDeleteTodo creates a new DeleteTodo use case.
func NewDeleteTodo(todos domain.TodoRepository, logger domain.Logger) *DeleteTodo {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &DeleteTodo{
		todos:  todos,
		logger: logger,
	}
}

// Execute deletes the todo with the given ID.
func (uc *DeleteTodo) Execute(ctx context.Context, in DeleteTodoInput) (*DeleteTodoOutput, error) {
	current, err := uc.todos.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get todo: %w", err)
	}

	if err := uc.todos.Delete(ctx, in.ID); err != nil {
		return nil, fmt.Errorf("delete todo: %w", err)
	}

	if current != nil {
		uc.logger.Info(in.ID, "delete", "deleted")
	}
	return &DeleteTodoOutput{Existed: current != nil}, nil
}
