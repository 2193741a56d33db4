// Package pgstore provides a PostgreSQL implementation of TodoRepository.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/runoshun/brutal/internal/domain"
)

// PostgreSQL error codes
const (
	undefinedTable = "42P01"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS todos (
	id         INTEGER PRIMARY KEY,
	text       TEXT NOT NULL,
	completed  BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP NOT NULL
)`

// options holds the internal runtime configuration
type options struct {
	maxConns       int32
	connectTimeout time.Duration
}

// Option configures Open.
type Option func(*options)

// WithMaxConns sets the maximum number of pooled connections.
// Non-positive values keep the default.
func WithMaxConns(n int32) Option {
	return func(o *options) {
		if n > 0 {
			o.maxConns = n
		}
	}
}

// WithConnectTimeout sets the connection timeout.
// Non-positive values keep the default.
func WithConnectTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.connectTimeout = d
		}
	}
}

func newOptions(opts ...Option) *options {
	o := &options{
		maxConns:       domain.DefaultMaxConns,
		connectTimeout: domain.DefaultConnectTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Store implements domain.TodoRepository on a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to databaseURL and verifies the connection.
func Open(ctx context.Context, databaseURL string, opts ...Option) (*Store, error) {
	o := newOptions(opts...)

	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}
	poolConfig.MaxConns = o.maxConns

	ctx, cancel := context.WithTimeout(ctx, o.connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Initialize creates the todos table if it doesn't exist.
func (s *Store) Initialize(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// List returns every todo in insertion order.
func (s *Store) List(ctx context.Context) ([]domain.Todo, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, text, completed, created_at FROM todos ORDER BY id`)
	if err != nil {
		return nil, handleError(err)
	}
	todos, err := pgx.CollectRows(rows, scanTodo)
	if err != nil {
		return nil, handleError(err)
	}
	if todos == nil {
		todos = []domain.Todo{}
	}
	return todos, nil
}

// Get retrieves a todo by ID.
func (s *Store) Get(ctx context.Context, id int) (*domain.Todo, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, text, completed, created_at FROM todos WHERE id = $1`, id)
	if err != nil {
		return nil, handleError(err)
	}
	todo, err := pgx.CollectOneRow(rows, scanTodo)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, handleError(err)
	}
	return &todo, nil
}

// Create inserts todo with ID = max(existing)+1. The table lock keeps
// concurrent creators from computing the same ID.
func (s *Store) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `LOCK TABLE todos IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return err
		}
		return tx.QueryRow(ctx,
			`INSERT INTO todos (id, text, completed, created_at)
			 SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3 FROM todos
			 RETURNING id`,
			todo.Text, todo.Completed, todo.CreatedAt.Time,
		).Scan(&todo.ID)
	})
	if err != nil {
		return domain.Todo{}, handleError(err)
	}
	return todo, nil
}

// Save updates an existing todo.
func (s *Store) Save(ctx context.Context, todo domain.Todo) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE todos SET text = $2, completed = $3 WHERE id = $1`,
		todo.ID, todo.Text, todo.Completed,
	)
	if err != nil {
		return handleError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

// Delete removes a todo by ID.
func (s *Store) Delete(ctx context.Context, id int) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id); err != nil {
		return handleError(err)
	}
	return nil
}

func scanTodo(row pgx.CollectableRow) (domain.Todo, error) {
	var (
		todo    domain.Todo
		created time.Time
	)
	if err := row.Scan(&todo.ID, &todo.Text, &todo.Completed, &created); err != nil {
		return domain.Todo{}, err
	}
	todo.CreatedAt = domain.NewTimestamp(created)
	return todo, nil
}

// handleError converts PostgreSQL errors to application errors.
func handleError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
		return fmt.Errorf("%w: %s", domain.ErrNotInitialized, pgErr.Message)
	}
	return err
}

// Ensure Store implements the repository ports.
var (
	_ domain.TodoRepository   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)
