package contexts

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manumorante/whats-next/adapter/cli"
	"github.com/manumorante/whats-next/internal/activities/application/commands"
)

var (
	label     string
	dayList   string
	timeStart string
	timeEnd   string
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a context",
	Long: `Add a context. Without days it applies every day. Without --from and
--to it applies all day. A window may cross midnight.

Examples:
  whatsnext context add anytime --label Siempre
  whatsnext context add mornings --label "Weekday mornings" --days Mon,Tue,Wed,Thu,Fri --from 07:00 --to 09:00
  whatsnext context add late --label "Late night" --from 22:00 --to 02:00`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ContextHandler == nil {
			return cli.ErrNoApp
		}

		name := args[0]
		lbl := label
		if lbl == "" {
			lbl = name
		}

		var weekdays []string
		if dayList != "" {
			for _, d := range strings.Split(dayList, ",") {
				weekdays = append(weekdays, strings.TrimSpace(d))
			}
		}

		c, err := app.ContextHandler.Create(cmd.Context(), commands.CreateContextCommand{
			Name:      name,
			Label:     lbl,
			Days:      weekdays,
			TimeStart: timeStart,
			TimeEnd:   timeEnd,
		})
		if err != nil {
			return fmt.Errorf("failed to add context: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Context added: %s (id %d, %s, %s)\n", c.Label, c.ID, window(*c), days(*c))
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&label, "label", "l", "", "display label (defaults to the name)")
	addCmd.Flags().StringVar(&dayList, "days", "", "comma separated weekdays, Sun..Sat")
	addCmd.Flags().StringVar(&timeStart, "from", "", "window start, HH:MM")
	addCmd.Flags().StringVar(&timeEnd, "to", "", "window end, HH:MM")
}
