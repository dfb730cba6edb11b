package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		key     string
		binding string
		want    bool
	}{
		{"c", "compose", true},
		{"x", "clear", true},
		{"backspace", "clear", true},
		{"r", "reroll", true},
		{"enter", "select", true},
		{"esc", "back", true},
		{"ctrl+c", "quit", true},
		{"j", "down", true},
		{"k", "up", true},
		{"c", "quit", false},
	}

	bindings := map[string]key.Binding{
		"compose": km.Compose, "clear": km.Clear, "reroll": km.Reroll,
		"select": km.Select, "back": km.Back, "quit": km.Quit,
		"down": km.Down, "up": km.Up,
	}

	for _, tt := range tests {
		t.Run(tt.key+" "+tt.binding, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.key, bindings[tt.binding]))
		})
	}
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("c", km.Compose))
	assert.False(t, Matches("enter", km.Compose))
}

func TestHelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 3)
	assert.Len(t, km.SlotsHelp(), 4)
	assert.Len(t, km.PromptHelp(), 3)
	assert.Len(t, km.FullHelp(), 3)
	assert.Equal(t, "compose", km.SlotsHelp()[2].Help().Desc)
}
