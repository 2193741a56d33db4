package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/runoshun/brutal/internal/app"
	"github.com/spf13/cobra"
)

// notifyContext is a function variable so tests can control shutdown.
var notifyContext = func(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		Long: `Serve /api/todos over HTTP.

Todos are stored in a JSON file ([server] path, default todos.json) or in
PostgreSQL when [server] store = "postgres". The server stops gracefully
on SIGINT or SIGTERM.

Examples:
  brutal serve
  brutal serve --listen :8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listen != "" {
				c.AppConfig.Server.Listen = listen
			}

			ctx, stop := notifyContext(cmd.Context())
			defer stop()

			closeStore, err := c.OpenStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			c.SLog.Info("store opened",
				"store", c.AppConfig.Server.Store,
				"listen", c.AppConfig.Server.Listen,
			)
			return c.HTTPServer().Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Listen address (overrides [server] listen)")
	return cmd
}
