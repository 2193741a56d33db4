package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/brutal/internal/app"
	"github.com/runoshun/brutal/internal/domain"
	"github.com/runoshun/brutal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cancelledContext makes serve return as soon as it has started.
func cancelledContext(t *testing.T) {
	t.Helper()
	original := notifyContext
	t.Cleanup(func() { notifyContext = original })
	notifyContext = func(parent context.Context) (context.Context, context.CancelFunc) {
		ctx, cancel := context.WithCancel(parent)
		cancel()
		return ctx, cancel
	}
}

func TestServeCommand_OpensJSONStore(t *testing.T) {
	// Setup
	cancelledContext(t)
	dir := t.TempDir()
	appConfig := domain.NewDefaultConfig()
	appConfig.Server.Path = "data/todos.json"
	c := app.NewWithDeps(app.Config{WorkDir: dir}, appConfig, nil, nil, &testutil.MockClock{}, nil)

	// Execute
	_, err := runCommand(t, c, "serve", "--listen", "127.0.0.1:0")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", c.AppConfig.Server.Listen)
	_, err = os.Stat(filepath.Join(dir, "data", "todos.json"))
	assert.NoError(t, err)
}

func TestServeCommand_StoreInitFails(t *testing.T) {
	// Setup
	cancelledContext(t)
	appConfig := domain.NewDefaultConfig()
	appConfig.Server.Store = "sqlite"
	c := app.NewWithDeps(app.Config{WorkDir: t.TempDir()}, appConfig, nil, nil, nil, nil)

	// Execute
	_, err := runCommand(t, c, "serve", "--listen", "127.0.0.1:0")

	// Assert
	require.ErrorIs(t, err, domain.ErrUnknownStore)
}

func TestServeCommand_ListenFails(t *testing.T) {
	// Setup
	cancelledContext(t)
	c := app.NewWithDeps(app.Config{WorkDir: t.TempDir()}, nil, nil, testutil.NewMockTodoRepository(), nil, nil)

	// Execute
	_, err := runCommand(t, c, "serve", "--listen", "not-an-address")

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}
