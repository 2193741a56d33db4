// Package cli provides the command-line interface for brutal.
package cli

import (
	"fmt"

	"github.com/runoshun/brutal/internal/app"
	"github.com/runoshun/brutal/internal/tui"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupTodo   = "todo"
	groupServer = "server"
	groupSetup  = "setup"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for brutal.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "brutal",
		Short: "A brutally simple to-do list",
		Long: `brutal is a terminal to-do list backed by a small REST API.

Run without arguments to open the interactive list. The list talks to
<api.base_url>/api/todos; start a local server with 'brutal serve'.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupTodo, Title: "Todo Commands:"},
		&cobra.Group{ID: groupServer, Title: "Server Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupTodo
	listCmd := newListCommand(c)
	listCmd.GroupID = groupTodo
	addCmd := newAddCommand(c)
	addCmd.GroupID = groupTodo
	toggleCmd := newToggleCommand(c)
	toggleCmd.GroupID = groupTodo
	rmCmd := newRemoveCommand(c)
	rmCmd.GroupID = groupTodo
	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupServer
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(
		tuiCmd,
		listCmd,
		addCmd,
		toggleCmd,
		rmCmd,
		serveCmd,
		configCmd,
	)

	return root
}

// launchTUI runs the interactive list until the user quits.
func launchTUI(c *app.Container) error {
	if c == nil {
		return fmt.Errorf("no container")
	}
	return tui.Run(c.Dispatcher(), c.AppConfig.TUI)
}
