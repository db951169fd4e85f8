package mcp

import "github.com/spf13/cobra"

// Cmd is the MCP command group. Run on its own it starts the server.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the What's Next MCP interface",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	Cmd.AddCommand(serveCmd)
}
