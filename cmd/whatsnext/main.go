package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/manumorante/whats-next/adapter/cli"
	"github.com/manumorante/whats-next/adapter/cli/activity"
	"github.com/manumorante/whats-next/adapter/cli/category"
	"github.com/manumorante/whats-next/adapter/cli/contexts"
	"github.com/manumorante/whats-next/adapter/cli/mcp"
	"github.com/manumorante/whats-next/internal/app"
	"github.com/manumorante/whats-next/pkg/config"
	"github.com/manumorante/whats-next/pkg/observability"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return 1
	}

	logger := observability.NewLogger(observability.LogConfigFor(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat, cli.Version))
	slog.SetDefault(logger)
	cli.SetLogger(logger)

	// Try to initialize the full container
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if !cfg.IsDevelopment() {
			logger.Error("failed to initialize container", "error", err)
			return 1
		}
		// In development the CLI still starts so that help and version work.
		logger.Warn("failed to initialize container, running in limited mode", "error", err)
	} else {
		defer container.Close()
		cli.SetApp(cli.NewApp(container))
	}

	// Register commands
	cli.AddCommand(activity.Cmd)
	cli.AddCommand(contexts.Cmd)
	cli.AddCommand(category.Cmd)
	cli.AddCommand(mcp.Cmd)

	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}
