package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/brutal/internal/domain"
)

// CreateTodoInput contains the parameters for creating a todo.
type CreateTodoInput struct {
	Text string // Display text; surrounding whitespace is trimmed
}

// CreateTodoOutput contains the result of creating a todo.
type CreateTodoOutput struct {
	Todo domain.Todo // The stored record with its assigned ID
}

// CreateTodo is the use case for creating a todo.
type CreateTodo struct {
	todos  domain.TodoRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewCreateTodo creates a new CreateTodo use case.
func NewCreateTodo(todos domain.TodoRepository, clock domain.Clock, logger domain.Logger) *CreateTodo {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &CreateTodo{
		todos:  todos,
		clock:  clock,
		logger: logger,
	}
}

// Execute stores a new incomplete todo stamped with the current time.
func (uc *CreateTodo) Execute(ctx context.Context, in CreateTodoInput) (*CreateTodoOutput, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, domain.ErrEmptyText
	}

	todo, err := uc.todos.Create(ctx, domain.Todo{
		Text:      text,
		Completed: false,
		CreatedAt: domain.NewTimestamp(uc.clock.Now()),
	})
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}

	uc.logger.Info(todo.ID, "create", fmt.Sprintf("created %q", todo.Text))
	return &CreateTodoOutput{Todo: todo}, nil
}
