// Package status provides the status line shown under every view.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/styles"
)

// State is what the bar reports on its left side.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
)

// Bar shows the active pack, how many slots are chosen, the current state
// and the key hints for the view.
type Bar struct {
	styles *styles.Styles
	hints  []key.Binding

	state   State
	message string

	pack          string
	chosen, total int

	width int
}

// NewBar creates a status bar showing hints.
func NewBar(s *styles.Styles, hints []key.Binding) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Bar{
		styles: s,
		hints:  hints,
		state:  StateReady,
		width:  80,
	}
}

// View renders the bar at its full width.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderHints()
	gap := max(s.width-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) renderLeft() string {
	var parts []string
	if s.pack != "" {
		parts = append(parts, s.styles.Normal.Render(fmt.Sprintf("%s %d/%d", s.pack, s.chosen, s.total)))
	}

	switch {
	case s.state == StateLoading:
		parts = append(parts, s.styles.Muted.Render("Working..."))
	case s.state == StateError && s.message != "":
		parts = append(parts, s.styles.Error.Render("Error: "+s.message))
	case s.state == StateError:
		parts = append(parts, s.styles.Error.Render("Error"))
	case s.message != "":
		parts = append(parts, s.styles.Normal.Render(s.message))
	case s.pack == "":
		parts = append(parts, s.styles.Muted.Render("Ready"))
	}
	return strings.Join(parts, "  ")
}

func (s *Bar) renderHints() string {
	hints := make([]string, 0, len(s.hints))
	for _, b := range s.hints {
		h := b.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetHints replaces the keybinding hints.
func (s *Bar) SetHints(bindings []key.Binding) {
	s.hints = bindings
}

// SetProgress shows pack with chosen of total slots selected.
// An empty pack hides the progress.
func (s *Bar) SetProgress(pack string, chosen, total int) {
	s.pack, s.chosen, s.total = pack, chosen, total
}

func (s *Bar) SetState(state State) {
	s.state = state
}

func (s *Bar) State() State {
	return s.state
}

func (s *Bar) SetMessage(message string) {
	s.message = message
}

func (s *Bar) Message() string {
	return s.message
}

func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the state and message. Progress is kept.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
