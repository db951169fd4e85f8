package activity

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// Cmd is the activity command group
var Cmd = &cobra.Command{
	Use:     "activity",
	Short:   "Manage activities",
	Long:    `Add, list, complete, toggle and delete activities.`,
	Aliases: []string{"a"},
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(completeCmd)
	Cmd.AddCommand(toggleCmd)
	Cmd.AddCommand(deleteCmd)
}

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid activity ID: %q", value)
	}
	return id, nil
}
