package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive prompt wizard.

Pick a pack, then choose options slot by slot. Options ruled out by your
current choices are shown muted and cannot be picked.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select
  x        - Clear the highlighted slot
  c        - Compose
  r        - Reroll the prompt
  Esc      - Back
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(tui.NewPorts(packService, composeService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx, stop := startWatcher(cmd.Context())
	defer stop()

	if err := app.WithContext(ctx).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
