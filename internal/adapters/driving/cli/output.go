package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// parseSelections turns repeated slot=value flags into selections.
// A later flag for the same slot wins.
func parseSelections(pairs []string) (domain.Selections, error) {
	sel := make(domain.Selections, len(pairs))
	for _, p := range pairs {
		slot, value, ok := strings.Cut(p, "=")
		slot = strings.TrimSpace(slot)
		if !ok || slot == "" {
			return nil, fmt.Errorf("expected slot=value, got %q: %w", p, domain.ErrInvalidInput)
		}
		sel[slot] = strings.TrimSpace(value)
	}
	return sel, nil
}

// seedFlag returns the --seed value, or nil when the flag was not given.
func seedFlag(cmd *cobra.Command) (*uint64, error) {
	if !cmd.Flags().Changed("seed") {
		return nil, nil
	}
	raw, err := cmd.Flags().GetString("seed")
	if err != nil {
		return nil, err
	}
	seed, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid seed %q: %w", raw, domain.ErrInvalidInput)
	}
	return &seed, nil
}
