// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/runoshun/brutal/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// APICall records one request made to MockTodoAPI.
type APICall struct {
	Patch  domain.TodoPatch
	Method string
	Text   string
	ID     int
}

// MockTodoAPI is a test double for domain.TodoAPI.
// It behaves like a well-formed server over Todos unless an error is set.
// Fields are ordered to minimize memory padding.
type MockTodoAPI struct {
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	// CreateResult, when set, is returned by Create instead of a generated todo.
	CreateResult *domain.Todo
	// UpdateResult, when set, is returned by Update instead of the patched todo.
	UpdateResult *domain.Todo

	Todos []domain.Todo
	Calls []APICall
	Clock domain.Clock
	mu    sync.Mutex
}

// NewMockTodoAPI creates a MockTodoAPI serving todos.
func NewMockTodoAPI(todos ...domain.Todo) *MockTodoAPI {
	return &MockTodoAPI{
		Todos: todos,
		Clock: &MockClock{NowTime: time.Date(2025, 1, 15, 9, 30, 0, 0, time.Local)},
	}
}

func (m *MockTodoAPI) record(call APICall) {
	m.Calls = append(m.Calls, call)
}

// CallCount returns how many requests were made.
func (m *MockTodoAPI) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// List returns a copy of Todos.
func (m *MockTodoAPI) List(_ context.Context) ([]domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(APICall{Method: "GET"})
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return slices.Clone(m.Todos), nil
}

// Create appends a todo with ID max+1.
func (m *MockTodoAPI) Create(_ context.Context, text string) (domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(APICall{Method: "POST", Text: text})
	if m.CreateErr != nil {
		return domain.Todo{}, m.CreateErr
	}
	if m.CreateResult != nil {
		m.Todos = append(m.Todos, *m.CreateResult)
		return *m.CreateResult, nil
	}
	next := 1
	for _, t := range m.Todos {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	todo := domain.Todo{ID: next, Text: text, CreatedAt: domain.NewTimestamp(m.Clock.Now())}
	m.Todos = append(m.Todos, todo)
	return todo, nil
}

// Update applies patch to the matching todo.
func (m *MockTodoAPI) Update(_ context.Context, id int, patch domain.TodoPatch) (domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(APICall{Method: "PUT", ID: id, Patch: patch})
	if m.UpdateErr != nil {
		return domain.Todo{}, m.UpdateErr
	}
	if m.UpdateResult != nil {
		return *m.UpdateResult, nil
	}
	for i, t := range m.Todos {
		if t.ID == id {
			m.Todos[i] = patch.Apply(t)
			return m.Todos[i], nil
		}
	}
	return domain.Todo{}, fmt.Errorf("status 404: %w", domain.ErrTodoNotFound)
}

// Delete removes the matching todo.
func (m *MockTodoAPI) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(APICall{Method: "DELETE", ID: id})
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Todos = slices.DeleteFunc(m.Todos, func(t domain.Todo) bool { return t.ID == id })
	return nil
}

// MockTodoRepository is a test double for domain.TodoRepository.
// Fields are ordered to minimize memory padding.
type MockTodoRepository struct {
	ListErr   error
	GetErr    error
	CreateErr error
	SaveErr   error
	DeleteErr error
	Todos     []domain.Todo
}

// NewMockTodoRepository creates a MockTodoRepository holding todos.
func NewMockTodoRepository(todos ...domain.Todo) *MockTodoRepository {
	return &MockTodoRepository{Todos: todos}
}

// List returns a copy of Todos.
func (m *MockTodoRepository) List(_ context.Context) ([]domain.Todo, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return slices.Clone(m.Todos), nil
}

// Get retrieves a todo by ID.
func (m *MockTodoRepository) Get(_ context.Context, id int) (*domain.Todo, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, t := range m.Todos {
		if t.ID == id {
			found := t
			return &found, nil
		}
	}
	return nil, nil
}

// Create appends todo with ID max+1.
func (m *MockTodoRepository) Create(_ context.Context, todo domain.Todo) (domain.Todo, error) {
	if m.CreateErr != nil {
		return domain.Todo{}, m.CreateErr
	}
	todo.ID = 1
	for _, t := range m.Todos {
		if t.ID >= todo.ID {
			todo.ID = t.ID + 1
		}
	}
	m.Todos = append(m.Todos, todo)
	return todo, nil
}

// Save replaces the matching todo.
func (m *MockTodoRepository) Save(_ context.Context, todo domain.Todo) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	for i, t := range m.Todos {
		if t.ID == todo.ID {
			m.Todos[i] = todo
			return nil
		}
	}
	return domain.ErrTodoNotFound
}

// Delete removes the matching todo.
func (m *MockTodoRepository) Delete(_ context.Context, id int) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Todos = slices.DeleteFunc(m.Todos, func(t domain.Todo) bool { return t.ID == id })
	return nil
}

// LogEntry is one call recorded by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
	TodoID   int
}

// MockLogger is a test double for domain.Logger.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level string, todoID int, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, TodoID: todoID, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(todoID int, category, msg string) { m.add("DEBUG", todoID, category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(todoID int, category, msg string) { m.add("INFO", todoID, category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(todoID int, category, msg string) { m.add("WARN", todoID, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(todoID int, category, msg string) { m.add("ERROR", todoID, category, msg) }

// Errors returns the recorded error entries.
func (m *MockLogger) Errors() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range m.Entries {
		if e.Level == "ERROR" {
			out = append(out, e)
		}
	}
	return out
}

// MockStoreInitializer is a test double for domain.StoreInitializer.
type MockStoreInitializer struct {
	InitErr error
	Called  bool
}

// Initialize records the call.
func (m *MockStoreInitializer) Initialize(_ context.Context) error {
	m.Called = true
	return m.InitErr
}

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	InitGlobalErr error
	InitLocalErr  error
	Global        domain.ConfigInfo
	Local         domain.ConfigInfo
	GlobalInited  bool
	LocalInited   bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{}
}

// GlobalConfigInfo returns Global.
func (m *MockConfigManager) GlobalConfigInfo() domain.ConfigInfo { return m.Global }

// LocalConfigInfo returns Local.
func (m *MockConfigManager) LocalConfigInfo() domain.ConfigInfo { return m.Local }

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig() error {
	if m.InitGlobalErr != nil {
		return m.InitGlobalErr
	}
	m.GlobalInited = true
	return nil
}

// InitLocalConfig records the call.
func (m *MockConfigManager) InitLocalConfig() error {
	if m.InitLocalErr != nil {
		return m.InitLocalErr
	}
	m.LocalInited = true
	return nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// NewMockConfigLoader returns a loader yielding the default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{Config: domain.NewDefaultConfig()}
}

// Load returns Config or LoadErr.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

var (
	_ domain.ConfigManager    = (*MockConfigManager)(nil)
	_ domain.ConfigLoader     = (*MockConfigLoader)(nil)
	_ domain.TodoAPI          = (*MockTodoAPI)(nil)
	_ domain.TodoRepository   = (*MockTodoRepository)(nil)
	_ domain.Logger           = (*MockLogger)(nil)
	_ domain.Clock            = (*MockClock)(nil)
	_ domain.StoreInitializer = (*MockStoreInitializer)(nil)
)
