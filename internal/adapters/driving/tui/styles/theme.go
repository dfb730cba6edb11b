// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

// Theme is the colour palette for the wizard.
type Theme struct {
	// Primary colours titles, the cursor row and the prompt frame.
	Primary lipgloss.Color

	// Secondary colours subtitles and category headers without their own colour.
	Secondary lipgloss.Color

	Foreground lipgloss.Color
	Muted      lipgloss.Color

	// Chosen colours a slot's current value.
	Chosen lipgloss.Color

	Warning lipgloss.Color
	Error   lipgloss.Color

	// StatusBackground fills the status bar.
	StatusBackground lipgloss.Color

	// Categories gives each slot category its header colour.
	Categories map[domain.SlotCategory]lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:          lipgloss.Color("#C084FC"), // violet
		Secondary:        lipgloss.Color("#0EA5E9"), // sky
		Foreground:       lipgloss.Color("#CDD6F4"),
		Muted:            lipgloss.Color("#6C7086"),
		Chosen:           lipgloss.Color("#A6E3A1"), // green
		Warning:          lipgloss.Color("#F9E2AF"), // yellow
		Error:            lipgloss.Color("#F38BA8"), // red
		StatusBackground: lipgloss.Color("#181825"),
		Categories: map[domain.SlotCategory]lipgloss.Color{
			domain.CategoryAppearance: lipgloss.Color("#F5C2E7"),
			domain.CategoryEquipment:  lipgloss.Color("#FAB387"),
			domain.CategoryClass:      lipgloss.Color("#89B4FA"),
			domain.CategoryStyle:      lipgloss.Color("#CBA6F7"),
			domain.CategorySetting:    lipgloss.Color("#94E2D5"),
		},
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style

	// Selected is the cursor row.
	Selected lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style

	StatusBar lipgloss.Style

	// Disabled marks options excluded by the current selections.
	Disabled lipgloss.Style

	// Category is the base style for slot group headers.
	Category lipgloss.Style

	// Value is a slot's current selection.
	Value lipgloss.Style

	// Prompt frames the composed prompt.
	Prompt lipgloss.Style

	InputField lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Normal:   lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.StatusBackground).
			Padding(0, 1),

		Disabled: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Strikethrough(true),

		Category: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(theme.Secondary),

		Value: lipgloss.NewStyle().Foreground(theme.Chosen),

		Prompt: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Foreground(theme.Foreground).
			Padding(1, 2),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Muted).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// CategoryHeader returns the header style for a slot category.
// Categories without a colour of their own use Category unchanged.
func (s *Styles) CategoryHeader(c domain.SlotCategory) lipgloss.Style {
	if col, ok := s.theme.Categories[c]; ok {
		return s.Category.Foreground(col)
	}
	return s.Category
}
