// Package options provides the option picker view for the TUI.
package options

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

// View picks the value of one slot.
// Select slots show their options; options disabled by the current
// selections are muted and cannot be chosen. Text slots take free input.
type View struct {
	styles *styles.Styles
	list   *list.OptionList
	input  *input.SlotInput

	slot   *domain.Slot
	width  int
	height int
}

// NewView creates a new option picker view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		list:   list.NewOptionList(s, ""),
		input:  input.NewSlotInput(s),
		width:  80,
		height: 24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetSlot prepares the picker for slot.
// current is the slot's selection, empty when unset.
func (v *View) SetSlot(slot *domain.Slot, current string, disabled []string) tea.Cmd {
	v.slot = slot
	if slot == nil {
		v.list.SetItems(nil)
		return nil
	}

	if slot.Type == domain.SlotTypeText {
		v.input.SetWidth(v.width)
		return v.input.Prepare(label(slot), slot.Placeholder, current)
	}
	v.input.Blur()

	off := make(map[string]bool, len(disabled))
	for _, d := range disabled {
		off[d] = true
	}

	items := make([]list.Item, len(slot.Options))
	for i, opt := range slot.Options {
		item := list.Item{
			Label:    opt.Label,
			Value:    opt.Value,
			Disabled: off[opt.Value],
			Current:  opt.Value == current,
		}
		if item.Label == "" {
			item.Label = opt.Value
		}
		if opt.Value == slot.DefaultOption {
			item.Hint = "default"
		}
		items[i] = item
	}
	v.list.SetItems(items)
	return nil
}

// Update handles messages for the option picker.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.slot == nil {
			return v, nil
		}
		switch msg.Type {
		case tea.KeyEsc:
			v.input.Blur()
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewSlots} }
		case tea.KeyEnter:
			return v, v.choose()
		}

		var cmd tea.Cmd
		if v.isText() {
			v.input, cmd = v.input.Update(msg)
		} else {
			v.list, cmd = v.list.Update(msg)
		}
		return v, cmd
	}

	if v.isText() {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) choose() tea.Cmd {
	id := v.slot.ID
	if v.isText() {
		value := strings.TrimSpace(v.input.Value())
		v.input.Blur()
		if value == "" {
			return func() tea.Msg { return messages.SelectionCleared{SlotID: id} }
		}
		return func() tea.Msg { return messages.OptionChosen{SlotID: id, Value: value} }
	}

	item, ok := v.list.Choose()
	if !ok {
		return nil
	}
	return func() tea.Msg { return messages.OptionChosen{SlotID: id, Value: item.Value} }
}

func (v *View) isText() bool {
	return v.slot != nil && v.slot.Type == domain.SlotTypeText
}

// View renders the option picker.
func (v *View) View() string {
	if v.slot == nil {
		return v.styles.Muted.Render("No slot chosen")
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(label(v.slot)))
	b.WriteString("\n\n")
	if v.isText() {
		b.WriteString(v.input.View())
	} else {
		b.WriteString(v.list.View())
	}
	return b.String()
}

// Slot returns the slot being edited.
func (v *View) Slot() *domain.Slot {
	return v.slot
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-6)
	v.input.SetWidth(width)
}

func label(slot *domain.Slot) string {
	if slot.Label != "" {
		return slot.Label
	}
	return slot.ID
}
