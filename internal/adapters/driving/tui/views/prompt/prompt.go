// Package prompt provides the composed prompt view for the TUI.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

// View shows a composed prompt with its seed and resolved values.
type View struct {
	styles      *styles.Styles
	composition *domain.Composition
	err         error
	width       int
	height      int
}

// NewView creates a new prompt view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, width: 80, height: 24}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetComposition shows a composition result.
func (v *View) SetComposition(c *domain.Composition, err error) {
	v.composition = c
	v.err = err
}

// Update handles messages for the prompt view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return v, func() tea.Msg { return messages.ComposeRequested{} }
		case "esc":
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewSlots} }
		}
	}
	return v, nil
}

// View renders the prompt.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Prompt"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		return b.String()
	}
	if v.composition == nil {
		b.WriteString(v.styles.Muted.Render("Nothing composed yet"))
		return b.String()
	}

	wrap := max(v.width-4, 20)
	b.WriteString(v.styles.Prompt.Render(lipgloss.NewStyle().Width(wrap).Render(v.composition.Prompt)))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("seed %d", v.composition.Seed)))
	b.WriteString("\n")

	keys := make([]string, 0, len(v.composition.Selections))
	for k := range v.composition.Selections {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(k + ": "))
		b.WriteString(v.styles.Value.Render(v.composition.Selections[k]))
	}
	return b.String()
}

// Composition returns the displayed composition.
func (v *View) Composition() *domain.Composition {
	return v.composition
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
