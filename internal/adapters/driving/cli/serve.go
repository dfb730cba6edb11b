package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/promptsmith/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/promptsmith/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serve packs, composition and history over a JSON API.

Routes:
  GET    /health
  GET    /v1/packs                  POST /v1/packs (schema document body)
  GET    /v1/packs/:id              DELETE /v1/packs/:id
  POST   /v1/packs/:id/compose      POST /v1/packs/:id/expand
  POST   /v1/packs/:id/disabled     POST /v1/packs/:id/lookup
  GET    /v1/packs/:id/history
  GET    /metrics                   Prometheus metrics

With packs.watch enabled, packs.dir is reloaded whenever a pack file changes.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if packService == nil {
		return errNoPackService
	}

	cfg := httpapi.Config{Debug: verbose}
	addr := serveAddr
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		cfg.AllowedOrigins = settings.Server.AllowedOrigins
		if addr == "" {
			addr = settings.Server.Addr
		}
	}
	if addr == "" {
		addr = ":8080"
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Packs:   packService,
		Compose: composeService,
		History: historyService,
	}, cfg)
	if err != nil {
		return err
	}

	ctx, stop := startWatcher(cmd.Context())
	defer stop()

	cmd.PrintErrf("Listening on %s\n", addr)
	return server.Run(ctx, addr)
}

// startWatcher reloads packs.dir on change when packs.watch is set.
// The returned stop function cancels the watcher and waits for it.
func startWatcher(parent context.Context) (context.Context, func()) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	if packWatcher == nil || settingsService == nil || packService == nil {
		return ctx, cancel
	}

	settings, err := settingsService.Get()
	if err != nil || !settings.Packs.Watch || settings.Packs.Dir == "" {
		return ctx, cancel
	}
	dir := settings.Packs.Dir

	if _, err := packService.LoadDirectory(ctx, dir); err != nil {
		logger.Warn("loading %s: %v", dir, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		err := packWatcher.Watch(ctx, dir, func(packDir string) {
			pack, err := packService.Import(ctx, "file:"+packDir)
			if err != nil {
				logger.Warn("reloading %s: %v", packDir, err)
				return
			}
			logger.Info("Reloaded pack %s", pack.ID)
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("pack watcher stopped: %v", err)
		}
	}()

	return ctx, func() {
		cancel()
		<-done
	}
}
