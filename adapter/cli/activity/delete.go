package activity

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manumorante/whats-next/adapter/cli"
	"github.com/manumorante/whats-next/internal/activities/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <activity-id>",
	Short:   "Delete an activity and its schedule",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DeleteActivityHandler == nil {
			return cli.ErrNoApp
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := app.DeleteActivityHandler.Handle(cmd.Context(), commands.DeleteActivityCommand{ID: id}); err != nil {
			return fmt.Errorf("failed to delete activity: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Activity %d deleted\n", id)
		return nil
	},
}
