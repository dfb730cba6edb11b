package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

func TestDefaultTheme_AccentsAreDistinct(t *testing.T) {
	theme := DefaultTheme()
	require.NotNil(t, theme)

	accents := []lipgloss.Color{theme.Primary, theme.Secondary, theme.Chosen, theme.Warning, theme.Error}
	seen := make(map[lipgloss.Color]bool)
	for _, c := range accents {
		assert.NotEmpty(t, string(c))
		assert.False(t, seen[c], "duplicate accent %s", c)
		seen[c] = true
	}
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestStyles_Disabled(t *testing.T) {
	s := DefaultStyles()

	assert.True(t, s.Disabled.GetStrikethrough())
	assert.Equal(t, lipgloss.TerminalColor(s.Theme().Muted), s.Disabled.GetForeground())
}

func TestStyles_CategoryHeader(t *testing.T) {
	s := DefaultStyles()
	theme := s.Theme()

	class := s.CategoryHeader(domain.CategoryClass)
	assert.True(t, class.GetBold())
	assert.Equal(t, lipgloss.TerminalColor(theme.Categories[domain.CategoryClass]), class.GetForeground())

	misc := s.CategoryHeader(domain.CategoryMisc)
	assert.Equal(t, lipgloss.TerminalColor(theme.Secondary), misc.GetForeground())
}
