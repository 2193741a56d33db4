package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/runoshun/brutal/internal/app"
	"github.com/runoshun/brutal/internal/domain"
	"github.com/runoshun/brutal/internal/todoview"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats for list.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List todos",
		Long: `Fetch and display every todo from the API.

Output format is tab-separated with columns:
  ID, DONE, CREATED, TEXT

Examples:
  brutal list
  brutal list -o json
  brutal list -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view := c.TodoView()
			if err := view.Load(cmd.Context()); err != nil {
				return fmt.Errorf("fetch todos: %w", err)
			}
			return printTodos(cmd.OutOrStdout(), view.State().Todos(), format)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatTable, "Output format: table, json or yaml")
	return cmd
}

// newAddCommand creates the add command.
func newAddCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a todo",
		Long: `Create a todo. Arguments are joined with spaces and trimmed.

Examples:
  brutal add Buy milk
  brutal add "Call the plumber"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if todoview.NormalizeText(text) == "" {
				return domain.ErrEmptyText
			}

			view := c.TodoView()
			if err := view.Load(cmd.Context()); err != nil {
				return fmt.Errorf("fetch todos: %w", err)
			}
			before := view.State().Len()
			if err := view.Add(cmd.Context(), text); err != nil {
				return fmt.Errorf("add todo: %w", err)
			}
			if view.State().Len() == before {
				return nil
			}
			created := view.State().At(before)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s: %s\n", todoview.FormatID(created.ID), created.Text)
			return nil
		},
	}
}

// newToggleCommand creates the toggle command.
func newToggleCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a todo between done and not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTodoID(args[0])
			if err != nil {
				return err
			}

			view := c.TodoView()
			if err := view.Load(cmd.Context()); err != nil {
				return fmt.Errorf("fetch todos: %w", err)
			}
			if err := view.Toggle(cmd.Context(), id); err != nil {
				return fmt.Errorf("toggle todo %s: %w", todoview.FormatID(id), err)
			}

			todo, _ := view.State().Find(id)
			state := "not done"
			if todo.Completed {
				state = "done"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as %s: %s\n", todoview.FormatID(id), state, todo.Text)
			return nil
		},
	}
}

// newRemoveCommand creates the rm command.
func newRemoveCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTodoID(args[0])
			if err != nil {
				return err
			}

			view := c.TodoView()
			if err := view.Load(cmd.Context()); err != nil {
				return fmt.Errorf("fetch todos: %w", err)
			}
			if err := view.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete todo %s: %w", todoview.FormatID(id), err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", todoview.FormatID(id))
			return nil
		},
	}
}

// parseTodoID parses "4", "#4" or "#004".
func parseTodoID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, s)
	}
	return id, nil
}

// printTodos writes todos in the requested format.
func printTodos(w io.Writer, todos []domain.Todo, format string) error {
	switch format {
	case formatTable, "":
		printTodoTable(w, todos)
		return nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(todos)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(todos); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

// printTodoTable prints todos as a tab-aligned table.
func printTodoTable(w io.Writer, todos []domain.Todo) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	stats := todoview.ComputeStats(todos)

	// Header
	_, _ = fmt.Fprintln(tw, "ID\tDONE\tCREATED\tTEXT")

	// Rows
	for _, todo := range todos {
		done := "[ ]"
		if todo.Completed {
			done = "[x]"
		}
		created := todoview.FormatDate(todo.CreatedAt.Time)
		if created == "" {
			created = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			todoview.FormatID(todo.ID),
			done,
			created,
			todo.Text,
		)
	}

	_, _ = fmt.Fprintf(tw, "\n%d total, %d done, %d left\n", stats.Total, stats.Completed, stats.Remaining)
}
