// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/styles"
)

// Item is one row of an OptionList.
type Item struct {
	// Label is the display text.
	Label string

	// Value is returned when the item is chosen.
	Value string

	// Hint is muted text shown after the label.
	Hint string

	// Disabled items are rendered muted and cannot be chosen.
	Disabled bool

	// Current marks the item matching the active selection.
	Current bool
}

// OptionList displays items in a navigable list.
type OptionList struct {
	title    string
	items    []Item
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewOptionList creates a new option list component.
func NewOptionList(s *styles.Styles, title string) *OptionList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &OptionList{
		title:  title,
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the option list.
func (l *OptionList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *OptionList) Update(msg tea.Msg) (*OptionList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the option list.
func (l *OptionList) View() string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render("Nothing to choose")
	}

	lines := make([]string, 0, len(l.items)+2)
	if l.title != "" {
		lines = append(lines, l.styles.Subtitle.Render(l.title), "")
	}

	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.items))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i, &l.items[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *OptionList) renderItem(index int, item *Item) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}
	marker := " "
	if item.Current {
		marker = "*"
	}

	text := fmt.Sprintf("%s%s %s", indicator, marker, item.Label)
	var line string
	switch {
	case item.Disabled:
		line = l.styles.Disabled.Render(text)
	case index == l.selected:
		line = l.styles.Selected.Render(text)
	default:
		line = l.styles.Normal.Render(text)
	}
	if item.Hint != "" {
		line += "  " + l.styles.Muted.Render(item.Hint)
	}
	return line
}

// SetItems replaces the items and resets the cursor.
func (l *OptionList) SetItems(items []Item) {
	l.items = items
	l.selected = 0
	for i := range items {
		if items[i].Current {
			l.selected = i
			break
		}
	}
}

// Items returns the current items.
func (l *OptionList) Items() []Item {
	return l.items
}

// Selected returns the cursor index.
func (l *OptionList) Selected() int {
	return l.selected
}

// SetSelected moves the cursor to index.
func (l *OptionList) SetSelected(index int) {
	if index >= 0 && index < len(l.items) {
		l.selected = index
	}
}

// Choose returns the item under the cursor.
// ok is false when the list is empty or the item is disabled.
func (l *OptionList) Choose() (Item, bool) {
	if l.selected < 0 || l.selected >= len(l.items) {
		return Item{}, false
	}
	item := l.items[l.selected]
	if item.Disabled {
		return item, false
	}
	return item, true
}

// MoveUp moves the cursor up.
func (l *OptionList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the cursor down.
func (l *OptionList) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *OptionList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of items.
func (l *OptionList) Count() int {
	return len(l.items)
}
