// Command promptsmith composes image-generation prompts from slot packs.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/promptsmith/internal/adapters/driven/config/env"
	"github.com/custodia-labs/promptsmith/internal/adapters/driven/config/file"
	"github.com/custodia-labs/promptsmith/internal/adapters/driven/packsource/filesystem"
	"github.com/custodia-labs/promptsmith/internal/adapters/driven/packsource/gdrive"
	"github.com/custodia-labs/promptsmith/internal/adapters/driven/packsource/github"
	"github.com/custodia-labs/promptsmith/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/promptsmith/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/promptsmith/internal/adapters/driving/cli"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driven"
	"github.com/custodia-labs/promptsmith/internal/core/services"
	"github.com/custodia-labs/promptsmith/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBuilder(build)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// build wires stores, sources and services for one run.
func build(ctx context.Context, opts cli.Options) (*cli.Services, func(), error) {
	dataDir := opts.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".promptsmith")
	}

	var (
		configStore driven.ConfigStore
		packStore   driven.PackStore
		compStore   driven.CompositionStore
		cleanup     = func() {}
	)

	if opts.Ephemeral {
		configStore = memory.NewConfigStore()
		packStore = memory.NewPackStore()
		compStore = memory.NewCompositionStore()
	} else {
		fileStore, err := file.NewConfigStore(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening config: %w", err)
		}
		configStore = fileStore

		store, err := sqlite.NewStore(filepath.Join(dataDir, "data"))
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		packStore = store.PackStore()
		compStore = store.CompositionStore()
		cleanup = func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing database: %v", err)
			}
		}
	}

	withEnv, err := env.Wrap(configStore)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	settingsService := services.NewSettingsService(withEnv)

	settings, err := settingsService.Get()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}

	fetchers := []driven.PackFetcher{filesystem.NewFetcher()}

	gh, err := github.NewFetcher(ctx, github.Options{Token: settings.Sources.GitHubToken})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("creating github source: %w", err)
	}
	fetchers = append(fetchers, gh)

	drive, err := gdrive.NewFetcher(ctx, settings.Sources.GDriveAPIKey)
	switch {
	case err == nil:
		fetchers = append(fetchers, drive)
	case errors.Is(err, gdrive.ErrNotConfigured):
		logger.Debug("gdrive source disabled: no API key")
	default:
		cleanup()
		return nil, nil, fmt.Errorf("creating gdrive source: %w", err)
	}

	return &cli.Services{
		Packs:    services.NewPackService(packStore, compStore, fetchers...),
		Compose:  services.NewComposeService(packStore, compStore, settingsService),
		History:  services.NewHistoryService(compStore),
		Settings: settingsService,
		Watcher:  filesystem.NewWatcher(),
	}, cleanup, nil
}
