package contexts

import (
	"github.com/spf13/cobra"
)

// Cmd is the context command group
var Cmd = &cobra.Command{
	Use:     "context",
	Short:   "Manage contexts",
	Long:    `Contexts are named day and time windows, like "weekday mornings", that activities apply in.`,
	Aliases: []string{"ctx"},
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(addCmd)
}
