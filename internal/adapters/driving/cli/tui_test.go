package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUICmd_Exists(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "tui" {
			found = true
			break
		}
	}
	assert.True(t, found, "tui command should be registered")
}

func TestTUICmd_ShortDescription(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_HelpOutput(t *testing.T) {
	stdout, _, err := execute(t, "tui", "--help")

	require.NoError(t, err)
	assert.Contains(t, stdout, "interactive prompt wizard")
	assert.Contains(t, stdout, "Controls:")
}

func TestTUICmd_ErrorsWithoutServices(t *testing.T) {
	SetServices(nil)

	_, _, err := execute(t, "tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create TUI")
}
