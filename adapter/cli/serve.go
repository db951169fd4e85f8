package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/manumorante/whats-next/adapter/api"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API on HTTP_ADDR and, when RABBITMQ_URL is set, consume
change events from other instances. Stops on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.Container() == nil {
			return ErrNoApp
		}
		return serve(cmd.Context(), app)
	},
}

func serve(ctx context.Context, app *App) error {
	container := app.Container()
	cfg := container.Config

	srvCfg := api.DefaultServerConfig()
	if cfg.HTTPAddr != "" {
		srvCfg.Addr = cfg.HTTPAddr
	}
	if cfg.HTTPReadTimeout > 0 {
		srvCfg.ReadTimeout = cfg.HTTPReadTimeout
	}
	if cfg.HTTPWriteTimeout > 0 {
		srvCfg.WriteTimeout = cfg.HTTPWriteTimeout
	}
	server := api.NewServer(srvCfg, api.HandlersFromContainer(container), Logger())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return container.StartConsumers(ctx)
	})
	g.Go(func() error {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
