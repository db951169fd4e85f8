package activity

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manumorante/whats-next/adapter/cli"
	"github.com/manumorante/whats-next/internal/activities/application/queries"
	"github.com/manumorante/whats-next/internal/activities/domain"
)

var (
	listPriority  string
	listEnergy    string
	listCategory  int64
	showCompleted bool
	showAll       bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List activities",
	Long: `List pending activities, most pressing first.

Examples:
  whatsnext activity list
  whatsnext activity list -p urgent
  whatsnext activity list --completed
  whatsnext activity list --all`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListActivitiesHandler == nil {
			return cli.ErrNoApp
		}

		query := queries.ListActivitiesQuery{
			Priority:    listPriority,
			EnergyLevel: listEnergy,
		}
		if cmd.Flags().Changed("category") {
			id := listCategory
			query.CategoryID = &id
		}
		if !showAll {
			completed := showCompleted
			query.IsCompleted = &completed
		}

		activities, err := app.ListActivitiesHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to list activities: %w", err)
		}

		printActivities(cmd.OutOrStdout(), activities)
		return nil
	},
}

func printActivities(out io.Writer, activities []domain.Activity) {
	if len(activities) == 0 {
		fmt.Fprintln(out, "No activities found.")
		return
	}

	fmt.Fprintf(out, "%-6s %-10s %-8s %s\n", "ID", "PRIORITY", "ENERGY", "TITLE")
	fmt.Fprintln(out, strings.Repeat("-", 60))
	for _, a := range activities {
		status := " "
		if a.IsCompleted {
			status = "x"
		}
		energy := string(a.EnergyLevel)
		if energy == "" {
			energy = "-"
		}
		fmt.Fprintf(out, "%-6d %-10s %-8s [%s] %s\n", a.ID, a.Priority, energy, status, a.Title)
	}
	fmt.Fprintf(out, "\nTotal: %d activities\n", len(activities))
}

func init() {
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "filter by priority")
	listCmd.Flags().StringVarP(&listEnergy, "energy", "e", "", "filter by energy level")
	listCmd.Flags().Int64Var(&listCategory, "category", 0, "filter by category ID")
	listCmd.Flags().BoolVar(&showCompleted, "completed", false, "show completed activities instead of pending ones")
	listCmd.Flags().BoolVarP(&showAll, "all", "a", false, "show pending and completed activities")
}
