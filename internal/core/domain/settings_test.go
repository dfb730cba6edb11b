package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, FillRandom, s.Compose.FillMode)
	assert.InDelta(t, 1.5, s.Compose.Alpha, 1e-9)
	assert.Equal(t, 10, s.Compose.RecursionLimit)
	assert.False(t, s.Compose.Transitive)
	assert.Equal(t, ":8080", s.Server.Addr)
	assert.Empty(t, s.Sources.GitHubToken)
	assert.Empty(t, s.Sources.GDriveAPIKey)
}

// TestFillMode_IsValid tests all valid and invalid fill modes
func TestFillMode_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		mode     FillMode
		expected bool
	}{
		{name: "random is valid", mode: FillRandom, expected: true},
		{name: "defaults is valid", mode: FillDefaults, expected: true},
		{name: "empty string is invalid", mode: FillMode(""), expected: false},
		{name: "unknown mode is invalid", mode: FillMode("weighted"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.mode.IsValid())
		})
	}
}

func TestFillMode_Description(t *testing.T) {
	for _, m := range AllFillModes() {
		assert.NotEqual(t, "Unknown", m.Description())
	}
	assert.Equal(t, "Unknown", FillMode("x").Description())
}
