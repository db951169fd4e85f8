package activity

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manumorante/whats-next/adapter/cli"
	"github.com/manumorante/whats-next/internal/activities/application/commands"
)

var (
	description    string
	priority       string
	energy         string
	location       string
	categoryID     int64
	duration       int
	recurrence     string
	contextIDs     []int64
	timeSlotValues []string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add an activity",
	Long: `Add an activity with optional priority, energy, contexts and time slots.

Time slots are written as HH:MM-HH:MM, optionally prefixed by a weekday
(Sun..Sat) and an @.

Examples:
  whatsnext activity add "Water the plants" -p important --context 1
  whatsnext activity add "Morning run" --slot 07:00-08:00 --energy high
  whatsnext activity add "Team sync" --slot Mon@10:00-10:30 --recurrence weekly`,
	Aliases: []string{"create", "new"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateActivityHandler == nil {
			return cli.ErrNoApp
		}

		slots, err := parseSlots(timeSlotValues)
		if err != nil {
			return err
		}

		createCmd := commands.CreateActivityCommand{
			Title:          args[0],
			Description:    description,
			EnergyLevel:    energy,
			Location:       location,
			Priority:       priority,
			IsRecurring:    recurrence != "",
			RecurrenceType: recurrence,
			ContextIDs:     contextIDs,
			TimeSlots:      slots,
		}
		if cmd.Flags().Changed("category") {
			id := categoryID
			createCmd.CategoryID = &id
		}
		if cmd.Flags().Changed("duration") {
			d := duration
			createCmd.DurationMinutes = &d
		}

		activity, err := app.CreateActivityHandler.Handle(cmd.Context(), createCmd)
		if err != nil {
			return fmt.Errorf("failed to add activity: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Activity added!")
		fmt.Fprintln(out, strings.Repeat("-", 40))
		fmt.Fprintf(out, "  ID:       %d\n", activity.ID)
		fmt.Fprintf(out, "  Title:    %s\n", activity.Title)
		fmt.Fprintf(out, "  Priority: %s\n", activity.Priority)
		return nil
	},
}

// parseSlots reads values like "07:00-08:00" or "Mon@07:00-08:00".
func parseSlots(values []string) ([]commands.TimeSlotInput, error) {
	slots := make([]commands.TimeSlotInput, 0, len(values))
	for _, v := range values {
		var slot commands.TimeSlotInput
		window := v
		if day, rest, ok := strings.Cut(v, "@"); ok {
			slot.DayOfWeek = day
			window = rest
		}
		start, end, ok := strings.Cut(window, "-")
		if !ok {
			return nil, fmt.Errorf("invalid slot %q, use HH:MM-HH:MM or Day@HH:MM-HH:MM", v)
		}
		slot.TimeStart = start
		slot.TimeEnd = end
		slots = append(slots, slot)
	}
	return slots, nil
}

func init() {
	addCmd.Flags().StringVarP(&description, "description", "d", "", "activity description")
	addCmd.Flags().StringVarP(&priority, "priority", "p", "", "priority (urgent, important, someday)")
	addCmd.Flags().StringVarP(&energy, "energy", "e", "", "energy needed (low, medium, high)")
	addCmd.Flags().StringVar(&location, "location", "", "where it happens")
	addCmd.Flags().Int64Var(&categoryID, "category", 0, "category ID")
	addCmd.Flags().IntVar(&duration, "duration", 0, "duration in minutes")
	addCmd.Flags().StringVar(&recurrence, "recurrence", "", "recurrence (daily, weekly, monthly)")
	addCmd.Flags().Int64SliceVar(&contextIDs, "context", nil, "context IDs it applies in")
	addCmd.Flags().StringArrayVar(&timeSlotValues, "slot", nil, "time slot, HH:MM-HH:MM or Day@HH:MM-HH:MM")
}
