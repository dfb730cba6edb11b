// Package packs provides the pack list view for the TUI.
package packs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driving"
)

var errNoPackService = errors.New("pack service not available")

// View lists stored packs and loads the chosen one.
type View struct {
	styles      *styles.Styles
	packService driving.PackService
	list        *list.OptionList

	packs   []domain.PackSummary
	width   int
	height  int
	ready   bool
	loading bool
	err     error
}

// NewView creates a new pack list view.
func NewView(s *styles.Styles, packService driving.PackService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:      s,
		packService: packService,
		list:        list.NewOptionList(s, ""),
		width:       80,
		height:      24,
	}
}

// Init loads the pack list.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadPacks()
}

func (v *View) loadPacks() tea.Cmd {
	svc := v.packService
	return func() tea.Msg {
		if svc == nil {
			return messages.PacksLoaded{Err: errNoPackService}
		}
		packs, err := svc.List(context.Background())
		return messages.PacksLoaded{Packs: packs, Err: err}
	}
}

func (v *View) loadPack(id string) tea.Cmd {
	svc := v.packService
	return func() tea.Msg {
		if svc == nil {
			return messages.PackLoaded{Err: errNoPackService}
		}
		pack, err := svc.Get(context.Background(), id)
		return messages.PackLoaded{Pack: pack, Err: err}
	}
}

// Update handles messages for the pack list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true
		return v, nil

	case messages.PacksLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.setPacks(msg.Packs)
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			item, ok := v.list.Choose()
			if !ok {
				return v, nil
			}
			return v, v.loadPack(item.Value)
		case "r":
			return v, v.Init()
		case "q":
			return v, func() tea.Msg { return messages.Quit{} }
		}
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

func (v *View) setPacks(packs []domain.PackSummary) {
	v.packs = packs
	items := make([]list.Item, len(packs))
	for i, p := range packs {
		hint := fmt.Sprintf("%d slots", p.SlotCount)
		if p.Description != "" {
			hint = p.Description + ", " + hint
		}
		items[i] = list.Item{Label: p.Name, Value: p.ID, Hint: hint}
	}
	v.list.SetItems(items)
}

// View renders the pack list.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Packs"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading packs..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.packs) == 0:
		b.WriteString(v.styles.Muted.Render(`No packs. Import one with "promptsmith pack import".`))
	default:
		b.WriteString(v.list.View())
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-6)
}

// Packs returns the loaded pack summaries.
func (v *View) Packs() []domain.PackSummary {
	return v.packs
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
