// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/styles"
)

// SlotInput wraps a bubbles textinput for free-form text slots.
type SlotInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewSlotInput creates a new text slot input.
func NewSlotInput(s *styles.Styles) *SlotInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50

	return &SlotInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the input.
func (s *SlotInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *SlotInput) Update(msg tea.Msg) (*SlotInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the input.
func (s *SlotInput) View() string {
	label := s.styles.Title.Render(s.label + ": ")
	field := s.styles.InputField.Render(s.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Prepare resets the input for a slot and focuses it.
func (s *SlotInput) Prepare(label, placeholder, value string) tea.Cmd {
	s.label = label
	s.textinput.Placeholder = placeholder
	s.textinput.SetValue(value)
	s.textinput.CursorEnd()
	return s.textinput.Focus()
}

// Label returns the slot label.
func (s *SlotInput) Label() string {
	return s.label
}

// Value returns the current input value.
func (s *SlotInput) Value() string {
	return s.textinput.Value()
}

// Focused returns whether the input is focused.
func (s *SlotInput) Focused() bool {
	return s.textinput.Focused()
}

// Blur removes focus from the input.
func (s *SlotInput) Blur() {
	s.textinput.Blur()
}

// SetWidth sets the width of the input.
func (s *SlotInput) SetWidth(width int) {
	s.width = width
	s.textinput.Width = max(width-len(s.label)-6, 20)
}
