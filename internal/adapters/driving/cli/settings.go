package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

// secretKeys are prompted without echo and masked on display.
var secretKeys = map[string]bool{
	"github.token":   true,
	"gdrive.api_key": true,
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change composition defaults, pack sources and server options.

Settings live in config.toml in the data directory. Environment variables
such as PROMPTSMITH_ALPHA override them for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting by key.

Keys:
  compose.fill_mode        random | defaults
  compose.alpha            rarity weight exponent (> 0)
  compose.recursion_limit  template expansion passes (> 0)
  constraints.transitive   follow exclusions through disabled options (true|false)
  packs.dir                directory loaded by "pack load"
  packs.watch              reload packs.dir on change while serving (true|false)
  github.token             token for github: imports
  gdrive.api_key           API key for gdrive: imports
  server.addr              listen address for "serve"
  server.allowed_origins   comma-separated CORS origins

When value is omitted it is read from stdin; secrets are read without echo.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

var settingsModeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Choose the default fill mode",
	Args:  cobra.NoArgs,
	RunE:  runSettingsMode,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsModeCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Compose]")
	cmd.Printf("  Fill mode: %s\n", settings.Compose.FillMode.Description())
	cmd.Printf("  Alpha: %g\n", settings.Compose.Alpha)
	cmd.Printf("  Recursion limit: %d\n", settings.Compose.RecursionLimit)
	cmd.Printf("  Transitive exclusions: %s\n", yesNo(settings.Compose.Transitive))
	cmd.Println()

	cmd.Println("[Packs]")
	cmd.Printf("  Directory: %s\n", orNotSet(settings.Packs.Dir))
	cmd.Printf("  Watch: %s\n", yesNo(settings.Packs.Watch))
	cmd.Println()

	cmd.Println("[Sources]")
	cmd.Printf("  GitHub token: %s\n", maskSecret(settings.Sources.GitHubToken))
	cmd.Printf("  Google Drive API key: %s\n", maskSecret(settings.Sources.GDriveAPIKey))
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	if len(settings.Server.AllowedOrigins) > 0 {
		cmd.Printf("  Allowed origins: %s\n", strings.Join(settings.Server.AllowedOrigins, ", "))
	} else {
		cmd.Println("  Allowed origins: (any)")
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	key := strings.ToLower(strings.TrimSpace(args[0]))
	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		cmd.Printf("Enter %s: ", key)
		if secretKeys[key] {
			value = readPassword(cmd.InOrStdin())
			cmd.Println()
		} else {
			value = readLine(bufio.NewReader(cmd.InOrStdin()))
		}
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if secretKeys[key] {
		value = maskAPIKey(value)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsMode(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Select Fill Mode")
	cmd.Println("----------------")
	modes := domain.AllFillModes()
	for i, mode := range modes {
		cmd.Printf("  %d. %s\n", i+1, mode.Description())
	}
	cmd.Print("\nEnter choice: ")
	idx := parseChoice(readLine(reader), len(modes), 0)
	if idx == 0 {
		return errors.New("invalid selection")
	}

	selected := modes[idx-1]
	if err := settingsService.SetFillMode(selected); err != nil {
		return fmt.Errorf("failed to set fill mode: %w", err)
	}
	cmd.Printf("Fill mode set to: %s\n", selected.Description())
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads a line without echo when stdin is a terminal,
// else reads a plain line from in.
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(bufio.NewReader(in))
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	return maskAPIKey(s)
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
