// Package slots provides the slot grid view for the TUI.
package slots

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

// row is one visible slot in display order.
type row struct {
	category domain.SlotCategory
	slot     *domain.Slot
}

// View shows a pack's slots grouped by category with the current selections.
type View struct {
	styles *styles.Styles

	pack       *domain.Pack
	rows       []row
	selections domain.Selections
	disabled   map[string][]string
	selected   int
	width      int
	height     int
	ready      bool
}

// NewView creates a new slot grid view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:     s,
		selections: domain.Selections{},
		width:      80,
		height:     24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetPack shows a new pack and resets selections.
// Locked slots are hidden since they always resolve to their default.
func (v *View) SetPack(p *domain.Pack) {
	v.pack = p
	v.rows = nil
	v.selections = domain.Selections{}
	v.disabled = nil
	v.selected = 0
	if p == nil {
		return
	}
	for _, cat := range domain.AllCategories() {
		for i := range p.Slots {
			slot := &p.Slots[i]
			if slot.Locked || slot.Category() != cat {
				continue
			}
			v.rows = append(v.rows, row{category: cat, slot: slot})
		}
	}
}

// SetSelections replaces the displayed selections.
func (v *View) SetSelections(sel domain.Selections) {
	v.selections = sel.Clone()
}

// SetDisabled replaces the disabled option map.
func (v *View) SetDisabled(disabled map[string][]string) {
	v.disabled = disabled
}

// Update handles messages for the slot grid.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.rows)-1 {
			v.selected++
		}
	case "enter":
		if slot := v.SelectedSlot(); slot != nil {
			id := slot.ID
			return v, func() tea.Msg { return messages.SlotChosen{SlotID: id} }
		}
	case "x", "backspace":
		if slot := v.SelectedSlot(); slot != nil {
			if _, ok := v.selections[slot.ID]; ok {
				id := slot.ID
				return v, func() tea.Msg { return messages.SelectionCleared{SlotID: id} }
			}
		}
	case "c":
		if v.pack != nil {
			return v, func() tea.Msg { return messages.ComposeRequested{} }
		}
	case "esc":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewPacks} }
	}
	return v, nil
}

// View renders the slot grid.
func (v *View) View() string {
	if v.pack == nil {
		return v.styles.Muted.Render("No pack loaded")
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.pack.Name))
	b.WriteString("\n")
	if len(v.rows) == 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("This pack has no selectable slots"))
		return b.String()
	}

	labelWidth := 0
	for _, r := range v.rows {
		labelWidth = max(labelWidth, len(slotLabel(r.slot)))
	}

	var current domain.SlotCategory
	for i, r := range v.rows {
		if r.category != current {
			current = r.category
			b.WriteString("\n")
			b.WriteString(v.styles.CategoryHeader(current).Render(strings.ToUpper(string(current))))
			b.WriteString("\n")
		}
		b.WriteString(v.renderRow(i, r, labelWidth))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (v *View) renderRow(index int, r row, labelWidth int) string {
	indicator := "  "
	labelStyle := v.styles.Normal
	if index == v.selected {
		indicator = "> "
		labelStyle = v.styles.Selected
	}
	label := labelStyle.Render(fmt.Sprintf("%s%-*s", indicator, labelWidth, slotLabel(r.slot)))

	value, ok := v.selections[r.slot.ID]
	switch {
	case !ok:
		return label + "  " + v.styles.Muted.Render(v.unsetHint(r.slot))
	case v.isDisabled(r.slot.ID, value):
		return label + "  " + v.styles.Warning.Render(value+" (excluded)")
	default:
		return label + "  " + v.styles.Value.Render(value)
	}
}

func (v *View) unsetHint(slot *domain.Slot) string {
	if slot.Type == domain.SlotTypeText {
		return "(empty)"
	}
	return "(random)"
}

func (v *View) isDisabled(slotID, value string) bool {
	for _, d := range v.disabled[slotID] {
		if d == value {
			return true
		}
	}
	return false
}

func slotLabel(slot *domain.Slot) string {
	if slot.Label != "" {
		return slot.Label
	}
	return slot.ID
}

// SelectedSlot returns the slot under the cursor, or nil.
func (v *View) SelectedSlot() *domain.Slot {
	if v.selected < 0 || v.selected >= len(v.rows) {
		return nil
	}
	return v.rows[v.selected].slot
}

// Pack returns the displayed pack.
func (v *View) Pack() *domain.Pack {
	return v.pack
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
