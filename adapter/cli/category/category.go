package category

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manumorante/whats-next/adapter/cli"
	"github.com/manumorante/whats-next/internal/activities/application/commands"
)

// Cmd is the category command group
var Cmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
}

var (
	color string
	icon  string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List categories",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListCategoriesHandler == nil {
			return cli.ErrNoApp
		}

		categories, err := app.ListCategoriesHandler.Handle(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(categories) == 0 {
			fmt.Fprintln(out, "No categories found.")
			return nil
		}
		fmt.Fprintf(out, "%-6s %-20s %-10s %s\n", "ID", "NAME", "COLOR", "ICON")
		fmt.Fprintln(out, strings.Repeat("-", 50))
		for _, c := range categories {
			fmt.Fprintf(out, "%-6d %-20s %-10s %s\n", c.ID, c.Name, c.Color, c.Icon)
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Long: `Add a category to group activities.

Examples:
  whatsnext category add Home --color "#4caf50" --icon house`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CategoryHandler == nil {
			return cli.ErrNoApp
		}

		c, err := app.CategoryHandler.Create(cmd.Context(), commands.CreateCategoryCommand{
			Name:  args[0],
			Color: color,
			Icon:  icon,
		})
		if err != nil {
			return fmt.Errorf("failed to add category: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Category added: %s (id %d)\n", c.Name, c.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&color, "color", "#9e9e9e", "display color")
	addCmd.Flags().StringVar(&icon, "icon", "", "display icon")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(addCmd)
}
