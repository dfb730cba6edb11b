// Package cli provides the cobra command tree for promptsmith.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/promptsmith/internal/core/ports/driven"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driving"
	"github.com/custodia-labs/promptsmith/internal/logger"
)

var (
	// version is set at build time.
	version = "dev"

	// Global flags.
	verbose   bool
	dataDir   string
	ephemeral bool
)

// Services set by SetServices or built by the Builder.
var (
	packService     driving.PackService
	composeService  driving.ComposeService
	historyService  driving.HistoryService
	settingsService driving.SettingsService
	packWatcher     driven.PackWatcher
)

// Services bundles the driving ports the commands call.
type Services struct {
	Packs    driving.PackService
	Compose  driving.ComposeService
	History  driving.HistoryService
	Settings driving.SettingsService

	// Watcher reloads packs.dir while a server runs. Optional.
	Watcher driven.PackWatcher
}

// Options are the global flags passed to a Builder.
type Options struct {
	// DataDir holds the database and config file. Empty uses ~/.promptsmith.
	DataDir string

	// Ephemeral keeps all state in memory for this run.
	Ephemeral bool
}

// Builder constructs services once global flags are parsed.
// The returned cleanup runs after the command finishes.
type Builder func(ctx context.Context, opts Options) (*Services, func(), error)

var (
	builder Builder
	cleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "promptsmith",
	Short: "Compose image-generation prompts from slot packs",
	Long: `promptsmith fills prompt templates from packs of interchangeable options.

Options are sampled by rarity, constrained by exclusion rules between slots,
and every composition is reproducible from its seed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if builder == nil {
			return nil
		}
		svcs, done, err := builder(cmd.Context(), Options{DataDir: dataDir, Ephemeral: ephemeral})
		if err != nil {
			return fmt.Errorf("initialising: %w", err)
		}
		SetServices(svcs)
		cleanup = done
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.promptsmith)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep packs and history in memory only")
}

// SetServices installs the services used by all commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	packService = s.Packs
	composeService = s.Compose
	historyService = s.History
	settingsService = s.Settings
	packWatcher = s.Watcher
}

// SetBuilder installs the service builder run before every command.
func SetBuilder(b Builder) {
	builder = b
}

// SetVersion sets the version reported by "promptsmith version".
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer func() {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

var (
	errNoPackService     = errors.New("pack service not configured")
	errNoComposeService  = errors.New("compose service not configured")
	errNoHistoryService  = errors.New("history service not configured")
	errNoSettingsService = errors.New("settings service not configured")
)
