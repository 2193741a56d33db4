package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/brutal/internal/domain"
	"github.com/runoshun/brutal/internal/infra/jsonstore"
	"github.com/runoshun/brutal/internal/testutil"
	"github.com/runoshun/brutal/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithDeps(t *testing.T) {
	api := testutil.NewMockTodoAPI()
	repo := testutil.NewMockTodoRepository()

	c := NewWithDeps(Config{WorkDir: t.TempDir()}, nil, api, repo, &testutil.MockClock{}, nil)

	assert.Same(t, api, c.API)
	assert.Same(t, repo, c.Todos)
	assert.NotNil(t, c.AppConfig)
	assert.NotNil(t, c.Logger)
	assert.NotNil(t, c.TodoView())
	assert.NotNil(t, c.HTTPHandler())
	assert.NoError(t, c.Close())
}

func TestContainer_OpenStore_JSON(t *testing.T) {
	// Setup
	dir := t.TempDir()
	appConfig := domain.NewDefaultConfig()
	c := NewWithDeps(Config{WorkDir: dir}, appConfig, nil, nil, &testutil.MockClock{}, nil)

	// Execute
	closeFn, err := c.OpenStore(context.Background())

	// Assert
	require.NoError(t, err)
	defer closeFn()
	store, ok := c.Todos.(*jsonstore.Store)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, domain.DefaultStorePath), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)

	out, err := c.CreateTodoUseCase().Execute(context.Background(), createInput("hello"))
	require.NoError(t, err)
	assert.Equal(t, 1, out.Todo.ID)
}

func TestContainer_OpenStore_Errors(t *testing.T) {
	t.Run("postgres without url", func(t *testing.T) {
		appConfig := domain.NewDefaultConfig()
		appConfig.Server.Store = domain.StorePostgres
		c := NewWithDeps(Config{WorkDir: t.TempDir()}, appConfig, nil, nil, nil, nil)

		_, err := c.OpenStore(context.Background())

		assert.ErrorContains(t, err, "database_url")
	})

	t.Run("unknown store", func(t *testing.T) {
		appConfig := domain.NewDefaultConfig()
		appConfig.Server.Store = "sqlite"
		c := NewWithDeps(Config{WorkDir: t.TempDir()}, appConfig, nil, nil, nil, nil)

		_, err := c.OpenStore(context.Background())

		assert.ErrorIs(t, err, domain.ErrUnknownStore)
	})

	t.Run("bound store initializer failure", func(t *testing.T) {
		c := NewWithDeps(Config{}, nil, nil, testutil.NewMockTodoRepository(), nil, nil)
		initializer := &testutil.MockStoreInitializer{InitErr: assert.AnError}
		c.StoreInitializer = initializer

		_, err := c.OpenStore(context.Background())

		assert.ErrorIs(t, err, assert.AnError)
		assert.True(t, initializer.Called)
	})
}

func TestNew_LoadsLocalConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(domain.LocalConfigPath(dir), []byte("[api]\nbase_url = \"http://example.test:1\"\n[log]\nfile = \""+filepath.Join(dir, "x.log")+"\"\n"), 0o644))

	c, err := New(dir)

	require.NoError(t, err)
	assert.Equal(t, "http://example.test:1", c.AppConfig.API.BaseURL)
	assert.NotNil(t, c.API)
	assert.NoError(t, c.Close())
}

func createInput(text string) usecase.CreateTodoInput {
	return usecase.CreateTodoInput{Text: text}
}
