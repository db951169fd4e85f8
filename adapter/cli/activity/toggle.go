package activity

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manumorante/whats-next/adapter/cli"
	"github.com/manumorante/whats-next/internal/activities/application/commands"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <activity-id>",
	Short: "Flip an activity between pending and completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ToggleActivityHandler == nil {
			return cli.ErrNoApp
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		completed, err := app.ToggleActivityHandler.Handle(cmd.Context(), commands.ToggleActivityCommand{ActivityID: id})
		if err != nil {
			return fmt.Errorf("failed to toggle activity: %w", err)
		}

		state := "pending"
		if completed {
			state = "completed"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Activity %d is now %s\n", id, state)
		return nil
	},
}
