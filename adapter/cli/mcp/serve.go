package mcp

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/manumorante/whats-next/adapter/cli"
	mcpinternal "github.com/manumorante/whats-next/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on MCP_ADDR",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	app := cli.GetApp()
	if app == nil || app.Container() == nil {
		return cli.ErrNoApp
	}
	container := app.Container()

	err := mcpinternal.Serve(cmd.Context(), container.Config, app, cli.Version, cli.Logger())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
