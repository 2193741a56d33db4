// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/runoshun/brutal/internal/domain"
	"github.com/runoshun/brutal/internal/infra/apiclient"
	"github.com/runoshun/brutal/internal/infra/config"
	"github.com/runoshun/brutal/internal/infra/httpapi"
	"github.com/runoshun/brutal/internal/infra/jsonstore"
	"github.com/runoshun/brutal/internal/infra/logging"
	"github.com/runoshun/brutal/internal/infra/pgstore"
	"github.com/runoshun/brutal/internal/todoview"
	"github.com/runoshun/brutal/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	WorkDir string // Directory holding .brutal.toml, .env and the default JSON store
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	API              domain.TodoAPI
	Todos            domain.TodoRepository // Set by OpenStore
	StoreInitializer domain.StoreInitializer
	Clock            domain.Clock
	ConfigLoader     domain.ConfigLoader
	ConfigManager    domain.ConfigManager
	Logger           domain.Logger

	// Pointer fields
	AppConfig *domain.Config
	SLog      *slog.Logger

	// Configuration
	Config Config
}

// New creates a new Container for the given working directory.
func New(dir string) (*Container, error) {
	cfg := Config{WorkDir: dir}

	configLoader := config.NewLoader(dir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	slogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(appConfig.Log.Level),
	}))
	for _, w := range appConfig.Warnings {
		slogger.Warn("config", "warning", w)
	}

	api := apiclient.New(appConfig.API.BaseURL, apiclient.WithTimeout(appConfig.API.Timeout.Std()))

	return &Container{
		API:           api,
		Clock:         domain.RealClock{},
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(dir),
		Logger:        logging.New(appConfig.Log.File, logging.ParseLevel(appConfig.Log.Level)),
		AppConfig:     appConfig,
		SLog:          slogger,
		Config:        cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, appConfig *domain.Config, api domain.TodoAPI, todos domain.TodoRepository, clock domain.Clock, logger domain.Logger) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	var storeInit domain.StoreInitializer
	if si, ok := todos.(domain.StoreInitializer); ok {
		storeInit = si
	}
	return &Container{
		API:              api,
		Todos:            todos,
		StoreInitializer: storeInit,
		Clock:            clock,
		Logger:           logger,
		AppConfig:        appConfig,
		SLog:             slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:           cfg,
	}
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if l, ok := c.Logger.(*logging.Logger); ok {
		return l.Close()
	}
	return nil
}

// OpenStore binds Todos to the configured server-side store and initializes it.
// The returned function releases the store. An already bound store is reused.
func (c *Container) OpenStore(ctx context.Context) (func(), error) {
	if c.Todos != nil {
		if c.StoreInitializer != nil {
			if err := c.StoreInitializer.Initialize(ctx); err != nil {
				return nil, fmt.Errorf("initialize store: %w", err)
			}
		}
		return func() {}, nil
	}

	srv := c.AppConfig.Server
	switch srv.Store {
	case domain.StorePostgres:
		if srv.DatabaseURL == "" {
			return nil, fmt.Errorf("server.database_url is required for store %q", srv.Store)
		}
		store, err := pgstore.Open(ctx, srv.DatabaseURL,
			pgstore.WithMaxConns(srv.MaxConns),
			pgstore.WithConnectTimeout(srv.ConnectTimeout.Std()),
		)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		if err := store.Initialize(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("initialize store: %w", err)
		}
		c.Todos, c.StoreInitializer = store, store
		return store.Close, nil
	case domain.StoreJSON, "":
		path := srv.Path
		if path == "" {
			path = domain.DefaultStorePath
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.Config.WorkDir, path)
		}
		store := jsonstore.New(path)
		if err := store.Initialize(ctx); err != nil {
			return nil, fmt.Errorf("initialize store: %w", err)
		}
		c.Todos, c.StoreInitializer = store, store
		return func() {}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStore, srv.Store)
	}
}

// View factory methods

// Dispatcher returns a new mutation dispatcher over the REST client.
func (c *Container) Dispatcher() *todoview.Dispatcher {
	return todoview.NewDispatcher(c.API, c.Logger)
}

// TodoView returns a new to-do view.
func (c *Container) TodoView() *todoview.View {
	return todoview.NewView(c.Dispatcher())
}

// UseCase factory methods

// ListTodosUseCase returns a new ListTodos use case.
func (c *Container) ListTodosUseCase() *usecase.ListTodos {
	return usecase.NewListTodos(c.Todos)
}

// CreateTodoUseCase returns a new CreateTodo use case.
func (c *Container) CreateTodoUseCase() *usecase.CreateTodo {
	return usecase.NewCreateTodo(c.Todos, c.Clock, c.Logger)
}

// UpdateTodoUseCase returns a new UpdateTodo use case.
func (c *Container) UpdateTodoUseCase() *usecase.UpdateTodo {
	return usecase.NewUpdateTodo(c.Todos, c.Logger)
}

// DeleteTodoUseCase returns a new DeleteTodo use case.
func (c *Container) DeleteTodoUseCase() *usecase.DeleteTodo {
	return usecase.NewDeleteTodo(c.Todos, c.Logger)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// HTTPHandler returns the REST handler over the bound store.
func (c *Container) HTTPHandler() *httpapi.Handler {
	return httpapi.NewHandler(httpapi.UseCases{
		List:   c.ListTodosUseCase(),
		Create: c.CreateTodoUseCase(),
		Update: c.UpdateTodoUseCase(),
		Delete: c.DeleteTodoUseCase(),
	}, c.SLog)
}

// HTTPServer returns a server for the REST handler using [server] settings.
func (c *Container) HTTPServer() *httpapi.Server {
	return httpapi.NewServer(
		httpapi.WithHandler(c.HTTPHandler()),
		httpapi.WithAddr(c.AppConfig.Server.Listen),
		httpapi.WithShutdownTimeout(c.AppConfig.Server.ShutdownTimeout.Std()),
		httpapi.WithLogger(c.SLog),
	)
}
