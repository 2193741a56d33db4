package domain

import (
	"context"
	"time"
)

// TodoAPI is the REST collaborator consumed by the to-do view.
type TodoAPI interface {
	// List returns every todo in server order.
	List(ctx context.Context) ([]Todo, error)

	// Create creates a todo with the given text and returns the server record.
	Create(ctx context.Context, text string) (Todo, error)

	// Update applies patch to the todo and returns the updated record.
	Update(ctx context.Context, id int, patch TodoPatch) (Todo, error)

	// Delete removes the todo.
	Delete(ctx context.Context, id int) error
}

// TodoRepository manages todo persistence on the server side.
type TodoRepository interface {
	// List returns every todo in insertion order.
	List(ctx context.Context) ([]Todo, error)

	// Get retrieves a todo by ID. Returns nil if not found.
	Get(ctx context.Context, id int) (*Todo, error)

	// Create stores a new todo, assigning ID = max(existing)+1.
	Create(ctx context.Context, todo Todo) (Todo, error)

	// Save updates an existing todo.
	Save(ctx context.Context, todo Todo) error

	// Delete removes a todo by ID. Missing IDs are not an error.
	Delete(ctx context.Context, id int) error
}

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist.
	Initialize(ctx context.Context) error
}

// ConfigLoader loads the effective configuration.
type ConfigLoader interface {
	Load() (*Config, error)
}

// ConfigManager inspects and creates config files.
type ConfigManager interface {
	GlobalConfigInfo() ConfigInfo
	LocalConfigInfo() ConfigInfo
	InitGlobalConfig() error
	InitLocalConfig() error
}

// Logger is the side channel for swallowed errors and diagnostics.
// todoID 0 means the entry is not about a specific todo.
type Logger interface {
	Debug(todoID int, category, msg string)
	Info(todoID int, category, msg string)
	Warn(todoID int, category, msg string)
	Error(todoID int, category, msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(int, string, string) {}
func (NopLogger) Info(int, string, string)  {}
func (NopLogger) Warn(int, string, string)  {}
func (NopLogger) Error(int, string, string) {}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
