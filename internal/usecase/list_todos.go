// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/brutal/internal/domain"
)

// ListTodosInput contains the parameters for listing todos.
type ListTodosInput struct{}

// ListTodosOutput contains the result of listing todos.
type ListTodosOutput struct {
	Todos []domain.Todo // All todos in insertion order (never nil)
}

// ListTodos is the use case for listing todos.
type ListTodos struct {
	todos domain.TodoRepository
}

// NewListTodos creates a new ListTodos use case.
func NewListTodos(todos domain.TodoRepository) *ListTodos {
	return &ListTodos{
		todos: todos,
	}
}

// Execute returns every stored todo.
func (uc *ListTodos) Execute(ctx context.Context, _ ListTodosInput) (*ListTodosOutput, error) {
	todos, err := uc.todos.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	if todos == nil {
		todos = []domain.Todo{}
	}
	return &ListTodosOutput{Todos: todos}, nil
}
