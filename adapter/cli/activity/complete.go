package activity

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manumorante/whats-next/adapter/cli"
	"github.com/manumorante/whats-next/internal/activities/application/commands"
)

var notes string

var completeCmd = &cobra.Command{
	Use:   "complete <activity-id>",
	Short: "Log a completion",
	Long: `Log that an activity was done now. The activity stays pending, so it can
be suggested again later. Use "toggle" to mark it as completed.

Examples:
  whatsnext activity complete 12
  whatsnext activity complete 12 --notes "only half"`,
	Aliases: []string{"done"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CompleteActivityHandler == nil {
			return cli.ErrNoApp
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		completion, err := app.CompleteActivityHandler.Handle(cmd.Context(), commands.CompleteActivityCommand{
			ActivityID: id,
			Notes:      notes,
		})
		if err != nil {
			return fmt.Errorf("failed to complete activity: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Completion logged for activity %d at %s\n",
			id, completion.CompletedAt.Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	completeCmd.Flags().StringVar(&notes, "notes", "", "notes about this completion")
}
