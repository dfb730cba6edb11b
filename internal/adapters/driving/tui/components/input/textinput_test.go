package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlotInput(t *testing.T) {
	in := NewSlotInput(nil)

	require.NotNil(t, in)
	assert.NotNil(t, in.styles)
	assert.Empty(t, in.Value())
	assert.False(t, in.Focused())
	assert.NotNil(t, in.Init())
}

func TestSlotInput_Prepare(t *testing.T) {
	in := NewSlotInput(nil)

	in.Prepare("Name", "a character name", "Aria")

	assert.True(t, in.Focused())
	assert.Equal(t, "Name", in.Label())
	assert.Equal(t, "Aria", in.Value())
	assert.Contains(t, in.View(), "Name")
}

func TestSlotInput_Typing(t *testing.T) {
	in := NewSlotInput(nil)
	in.Prepare("Name", "", "")

	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Bo")})

	assert.Equal(t, "Bo", in.Value())
}

func TestSlotInput_Blur(t *testing.T) {
	in := NewSlotInput(nil)
	in.Prepare("Name", "", "")

	in.Blur()

	assert.False(t, in.Focused())
}

func TestSlotInput_SetWidth(t *testing.T) {
	in := NewSlotInput(nil)

	in.SetWidth(10)
	assert.Equal(t, 20, in.textinput.Width)

	in.SetWidth(100)
	assert.Equal(t, 100, in.width)
}
