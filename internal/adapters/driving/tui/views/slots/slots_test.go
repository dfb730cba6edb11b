package slots

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

func testPack() *domain.Pack {
	return &domain.Pack{
		ID:   "fantasy",
		Name: "Fantasy",
		Slots: []domain.Slot{
			{ID: "class", Label: "Class", Type: domain.SlotTypeSelect},
			{ID: "race", Label: "Race", Type: domain.SlotTypeSelect},
			{ID: "name", Label: "Name", Type: domain.SlotTypeText},
			{ID: "quality", Label: "Quality", Locked: true, DefaultOption: "hd"},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_NoPack(t *testing.T) {
	v := NewView(nil)

	assert.Contains(t, v.View(), "No pack loaded")
	assert.Nil(t, v.SelectedSlot())

	_, cmd := v.Update(key("c"))
	assert.Nil(t, cmd)
}

func TestView_GroupsByCategoryAndHidesLocked(t *testing.T) {
	v := NewView(nil)
	v.SetPack(testPack())

	require.Len(t, v.rows, 3)
	assert.Equal(t, "race", v.rows[0].slot.ID)
	assert.Equal(t, "class", v.rows[1].slot.ID)
	assert.Equal(t, "name", v.rows[2].slot.ID)

	view := v.View()
	assert.Contains(t, view, "APPEARANCE")
	assert.Contains(t, view, "CLASS")
	assert.Contains(t, view, "MISC")
	assert.NotContains(t, view, "Quality")
	assert.Less(t, strings.Index(view, "Race"), strings.Index(view, "Class"))
}

func TestView_RendersSelections(t *testing.T) {
	v := NewView(nil)
	v.SetPack(testPack())
	v.SetSelections(domain.Selections{"race": "elf", "class": "barbarian"})
	v.SetDisabled(map[string][]string{"class": {"barbarian"}})

	view := v.View()

	assert.Contains(t, view, "elf")
	assert.Contains(t, view, "barbarian (excluded)")
	assert.Contains(t, view, "(empty)")
}

func TestView_UnsetSelectShowsRandom(t *testing.T) {
	v := NewView(nil)
	v.SetPack(testPack())

	assert.Contains(t, v.View(), "(random)")
}

func TestView_EnterChoosesSlot(t *testing.T) {
	v := NewView(nil)
	v.SetPack(testPack())

	v.Update(key("down"))
	_, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)

	assert.Equal(t, messages.SlotChosen{SlotID: "class"}, cmd())
}

func TestView_ClearOnlyWhenSelected(t *testing.T) {
	v := NewView(nil)
	v.SetPack(testPack())

	_, cmd := v.Update(key("x"))
	assert.Nil(t, cmd)

	v.SetSelections(domain.Selections{"race": "elf"})
	_, cmd = v.Update(key("x"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.SelectionCleared{SlotID: "race"}, cmd())
}

func TestView_ComposeAndBack(t *testing.T) {
	v := NewView(nil)
	v.SetPack(testPack())

	_, cmd := v.Update(key("c"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ComposeRequested{}, cmd())

	_, cmd = v.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewPacks}, cmd())
}

func TestView_NavigationBounds(t *testing.T) {
	v := NewView(nil)
	v.SetPack(testPack())

	for range 5 {
		v.Update(key("j"))
	}
	assert.Equal(t, "name", v.SelectedSlot().ID)

	for range 5 {
		v.Update(key("k"))
	}
	assert.Equal(t, "race", v.SelectedSlot().ID)
}

func TestView_SetPackResetsState(t *testing.T) {
	v := NewView(nil)
	v.SetPack(testPack())
	v.SetSelections(domain.Selections{"race": "elf"})
	v.Update(key("j"))

	v.SetPack(testPack())

	assert.Empty(t, v.selections)
	assert.Equal(t, 0, v.selected)
}

func TestView_SetSelectionsCopies(t *testing.T) {
	v := NewView(nil)
	sel := domain.Selections{"race": "elf"}

	v.SetSelections(sel)
	sel["race"] = "orc"

	assert.Equal(t, "elf", v.selections["race"])
}
