// Package jsonstore provides a JSON file-based implementation of TodoRepository.
// The file holds a plain JSON array of todos, indented, in insertion order.
package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/runoshun/brutal/internal/domain"
)

// Store implements domain.TodoRepository using a JSON file.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; a missing file reads as an empty list.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// List returns every todo in file order.
func (s *Store) List(_ context.Context) ([]domain.Todo, error) {
	var todos []domain.Todo
	err := s.withLock(func(data *[]domain.Todo) error {
		todos = slices.Clone(*data)
		return nil
	})
	if todos == nil {
		todos = []domain.Todo{}
	}
	return todos, err
}

// Get retrieves a todo by ID.
func (s *Store) Get(_ context.Context, id int) (*domain.Todo, error) {
	var todo *domain.Todo
	err := s.withLock(func(data *[]domain.Todo) error {
		if i := indexOf(*data, id); i >= 0 {
			found := (*data)[i]
			todo = &found
		}
		return nil
	})
	return todo, err
}

// Create appends todo with ID = max(existing)+1.
func (s *Store) Create(_ context.Context, todo domain.Todo) (domain.Todo, error) {
	err := s.withLockWrite(func(data *[]domain.Todo) error {
		todo.ID = nextID(*data)
		*data = append(*data, todo)
		return nil
	})
	if err != nil {
		return domain.Todo{}, err
	}
	return todo, nil
}

// Save updates an existing todo.
func (s *Store) Save(_ context.Context, todo domain.Todo) error {
	return s.withLockWrite(func(data *[]domain.Todo) error {
		i := indexOf(*data, todo.ID)
		if i < 0 {
			return domain.ErrTodoNotFound
		}
		(*data)[i] = todo
		return nil
	})
}

// Delete removes a todo by ID.
func (s *Store) Delete(_ context.Context, id int) error {
	return s.withLockWrite(func(data *[]domain.Todo) error {
		*data = slices.DeleteFunc(*data, func(t domain.Todo) bool { return t.ID == id })
		return nil
	})
}

// Initialize creates an empty store file if it doesn't exist.
func (s *Store) Initialize(_ context.Context) error {
	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return nil // Already exists
	}

	return s.write([]domain.Todo{})
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*[]domain.Todo) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(&data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*[]domain.Todo) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(&data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	// Ensure lock file directory exists
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() ([]domain.Todo, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Todo{}, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var data []domain.Todo
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	if data == nil {
		data = []domain.Todo{}
	}
	return data, nil
}

func (s *Store) write(data []domain.Todo) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

func indexOf(todos []domain.Todo, id int) int {
	return slices.IndexFunc(todos, func(t domain.Todo) bool { return t.ID == id })
}

func nextID(todos []domain.Todo) int {
	highest := 0
	for _, t := range todos {
		highest = max(highest, t.ID)
	}
	return highest + 1
}

// Ensure Store implements the repository ports.
var (
	_ domain.TodoRepository   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)
