package pgstore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/runoshun/brutal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore connects to BRUTAL_TEST_DATABASE_URL and starts from an empty table.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("BRUTAL_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("BRUTAL_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	store, err := Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	require.NoError(t, store.Initialize(ctx))
	_, err = store.pool.Exec(ctx, `TRUNCATE todos`)
	require.NoError(t, err)
	return store
}

func TestStore_Integration(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	created := domain.NewTimestamp(time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC))

	first, err := store.Create(ctx, domain.Todo{Text: "a", CreatedAt: created})
	require.NoError(t, err)
	second, err := store.Create(ctx, domain.Todo{Text: "b", CreatedAt: created})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	first.Completed = true
	require.NoError(t, store.Save(ctx, first))
	got, err := store.Get(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Completed)

	require.NoError(t, store.Delete(ctx, second.ID))
	require.NoError(t, store.Delete(ctx, second.ID))
	todos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "a", todos[0].Text)

	missing, err := store.Get(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.ErrorIs(t, store.Save(ctx, domain.Todo{ID: 99}), domain.ErrTodoNotFound)
}

func TestHandleError(t *testing.T) {
	err := handleError(&pgconn.PgError{Code: undefinedTable, Message: `relation "todos" does not exist`})
	assert.ErrorIs(t, err, domain.ErrNotInitialized)

	other := errors.New("boom")
	assert.Equal(t, other, handleError(other))
}

func TestOpen_InvalidURL(t *testing.T) {
	_, err := Open(context.Background(), "://not a url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing connection string")
}

func TestNewOptions(t *testing.T) {
	tests := []struct {
		name        string
		opts        []Option
		wantConns   int32
		wantTimeout time.Duration
	}{
		{
			name:        "defaults",
			wantConns:   domain.DefaultMaxConns,
			wantTimeout: domain.DefaultConnectTimeout,
		},
		{
			name:        "overrides",
			opts:        []Option{WithMaxConns(16), WithConnectTimeout(3 * time.Second)},
			wantConns:   16,
			wantTimeout: 3 * time.Second,
		},
		{
			name:        "non-positive keeps defaults",
			opts:        []Option{WithMaxConns(0), WithConnectTimeout(-time.Second)},
			wantConns:   domain.DefaultMaxConns,
			wantTimeout: domain.DefaultConnectTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOptions(tt.opts...)

			assert.Equal(t, tt.wantConns, o.maxConns)
			assert.Equal(t, tt.wantTimeout, o.connectTimeout)
		})
	}
}
