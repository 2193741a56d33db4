package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/brutal/internal/app"
)

// newTUICommand creates the tui command for launching the interactive TUI.
// This is the same as running `brutal` without arguments.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive TUI",
		Long:  `Launch the interactive terminal user interface for managing todos.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
}
