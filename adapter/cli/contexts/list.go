package contexts

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/manumorante/whats-next/adapter/cli"
	"github.com/manumorante/whats-next/internal/activities/domain"
)

var activeOnly bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List contexts",
	Long: `List all contexts, or only the ones active right now.

Examples:
  whatsnext context list
  whatsnext context list --active`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListContextsHandler == nil || app.GetActiveContextsHandler == nil {
			return cli.ErrNoApp
		}

		var (
			contexts []domain.Context
			err      error
		)
		if activeOnly {
			contexts, err = app.GetActiveContextsHandler.Handle(cmd.Context(), time.Time{})
		} else {
			contexts, err = app.ListContextsHandler.Handle(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("failed to list contexts: %w", err)
		}

		printContexts(cmd.OutOrStdout(), contexts)
		return nil
	},
}

func printContexts(out io.Writer, contexts []domain.Context) {
	if len(contexts) == 0 {
		fmt.Fprintln(out, "No contexts found.")
		return
	}

	fmt.Fprintf(out, "%-6s %-16s %-20s %-14s %s\n", "ID", "NAME", "LABEL", "WINDOW", "DAYS")
	fmt.Fprintln(out, strings.Repeat("-", 70))
	for _, c := range contexts {
		fmt.Fprintf(out, "%-6d %-16s %-20s %-14s %s\n", c.ID, c.Name, c.Label, window(c), days(c))
	}
}

func window(c domain.Context) string {
	if !c.HasTimeBounds() {
		return "all day"
	}
	return fmt.Sprintf("%s-%s", *c.TimeStart, *c.TimeEnd)
}

func days(c domain.Context) string {
	if c.Days == nil {
		return "every day"
	}
	if len(c.Days) == 0 {
		return "no days"
	}
	names := make([]string, len(c.Days))
	for i, d := range c.Days {
		names[i] = string(d)
	}
	return strings.Join(names, ",")
}

func init() {
	listCmd.Flags().BoolVar(&activeOnly, "active", false, "only contexts active right now")
}
