// Package httpapi serves the to-do REST API over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// ServerConfig holds HTTP server timeouts and address.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// serverOptions is the runtime configuration collected from ServerOption values.
type serverOptions struct {
	handler http.Handler
	logger  *slog.Logger
	config  ServerConfig
}

// ServerOption configures NewServer.
type ServerOption func(*serverOptions)

// WithHandler sets the HTTP handler.
func WithHandler(handler http.Handler) ServerOption {
	return func(o *serverOptions) {
		o.handler = handler
	}
}

// WithAddr sets the listen address.
func WithAddr(addr string) ServerOption {
	return func(o *serverOptions) {
		o.config.Addr = addr
	}
}

// WithShutdownTimeout sets how long Run waits for in-flight requests.
func WithShutdownTimeout(timeout time.Duration) ServerOption {
	return func(o *serverOptions) {
		o.config.ShutdownTimeout = timeout
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(o *serverOptions) {
		o.logger = logger
	}
}

// Server wraps http.Server with graceful shutdown.
type Server struct {
	*http.Server
	logger *slog.Logger
	Config ServerConfig
}

// NewServer creates a Server with defaults overridden by opts.
func NewServer(opts ...ServerOption) *Server {
	o := &serverOptions{
		config: ServerConfig{
			Addr:            "127.0.0.1:5000",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Server{
		Server: &http.Server{
			Addr:         o.config.Addr,
			Handler:      o.handler,
			ReadTimeout:  o.config.ReadTimeout,
			WriteTimeout: o.config.WriteTimeout,
			IdleTimeout:  o.config.IdleTimeout,
			ErrorLog:     slog.NewLogLogger(o.logger.Handler(), slog.LevelError),
		},
		logger: o.logger,
		Config: o.config,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started", "addr", ln.Addr().String())
		errCh <- s.Server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.Config.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Config.ShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
