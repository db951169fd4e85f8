package mcp

import (
	"errors"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/manumorante/whats-next/adapter/cli"
)

// errNoApp is returned by tools when the store is not available.
var errNoApp = errors.New("this tool requires a database connection")

// ToolDependencies provides handlers for MCP tools.
type ToolDependencies struct {
	App *cli.App
}

// RegisterCLITools registers MCP tools that mirror CLI functionality.
func RegisterCLITools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.App == nil {
		return errors.New("app is required")
	}

	if err := registerSuggestionTools(srv, deps); err != nil {
		return err
	}
	return registerActivityTools(srv, deps)
}
