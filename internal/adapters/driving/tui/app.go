package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/views/options"
	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/views/packs"
	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/views/prompt"
	"github.com/custodia-labs/promptsmith/internal/adapters/driving/tui/views/slots"
	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driving"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	packsView   *packs.View
	slotsView   *slots.View
	optionsView *options.View
	promptView  *prompt.View
	statusBar   *status.Bar

	// pack is the pack being composed from.
	pack *domain.Pack

	// selections are the user's current choices.
	selections domain.Selections

	// disabled maps slot IDs to the values the selections exclude.
	disabled map[string][]string

	// disabledGen counts disabled-set requests; only the latest reply is applied.
	disabledGen uint64

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingPackService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		packsView:   packs.NewView(s, ports.Packs),
		slotsView:   slots.NewView(s),
		optionsView: options.NewView(s),
		promptView:  prompt.NewView(s),
		statusBar:   status.NewBar(s, km.ShortHelp()),
		selections:  domain.Selections{},
		currentView: messages.ViewPacks,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("promptsmith"),
		a.packsView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.forwardKey(msg)

	case messages.PacksLoaded:
		a.packsView, cmd = a.packsView.Update(msg)
		a.setError(msg.Err)
		if msg.Err == nil {
			a.statusBar.SetMessage(fmt.Sprintf("%d packs", len(msg.Packs)))
		}
		return a, cmd

	case messages.PackLoaded:
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, nil
		}
		a.pack = msg.Pack
		a.selections = domain.Selections{}
		a.disabled = nil
		a.slotsView.SetPack(msg.Pack)
		a.promptView.SetComposition(nil, nil)
		a.updateProgress()
		a.switchView(messages.ViewSlots)
		return a, a.computeDisabled()

	case messages.SlotChosen:
		if a.pack == nil {
			return a, nil
		}
		slot, ok := a.pack.Slot(msg.SlotID)
		if !ok {
			return a, nil
		}
		cmd = a.optionsView.SetSlot(slot, a.selections[slot.ID], a.disabled[slot.ID])
		a.switchView(messages.ViewOptions)
		return a, cmd

	case messages.OptionChosen:
		a.selections[msg.SlotID] = msg.Value
		a.slotsView.SetSelections(a.selections)
		a.updateProgress()
		a.switchView(messages.ViewSlots)
		return a, a.computeDisabled()

	case messages.SelectionCleared:
		delete(a.selections, msg.SlotID)
		a.slotsView.SetSelections(a.selections)
		a.updateProgress()
		a.switchView(messages.ViewSlots)
		return a, a.computeDisabled()

	case messages.DisabledComputed:
		if a.pack == nil || msg.PackID != a.pack.ID || msg.Generation != a.disabledGen {
			return a, nil
		}
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, nil
		}
		a.disabled = msg.Result.Disabled
		a.slotsView.SetDisabled(a.disabled)
		if n := len(msg.Result.Conflicts); n > 0 {
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(fmt.Sprintf("%d conflicting selections", n))
		} else {
			a.statusBar.Clear()
		}
		return a, nil

	case messages.ComposeRequested:
		a.statusBar.SetState(status.StateLoading)
		return a, a.compose()

	case messages.Composed:
		a.promptView.SetComposition(msg.Composition, msg.Err)
		a.setError(msg.Err)
		a.switchView(messages.ViewPrompt)
		return a, nil

	case messages.ViewChanged:
		a.switchView(msg.View)
		if msg.View == messages.ViewPacks {
			a.statusBar.SetProgress("", 0, 0)
			return a, a.packsView.Init()
		}
		return a, nil

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	if a.currentView == messages.ViewOptions {
		a.optionsView, cmd = a.optionsView.Update(msg)
	}
	return a, cmd
}

func (a *App) forwardKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewPacks:
		a.packsView, cmd = a.packsView.Update(msg)
	case messages.ViewSlots:
		a.slotsView, cmd = a.slotsView.Update(msg)
	case messages.ViewOptions:
		a.optionsView, cmd = a.optionsView.Update(msg)
	case messages.ViewPrompt:
		a.promptView, cmd = a.promptView.Update(msg)
	}
	return cmd
}

// computeDisabled recomputes the disabled options for the current selections.
func (a *App) computeDisabled() tea.Cmd {
	if a.pack == nil {
		return nil
	}
	a.disabledGen++
	ctx, svc, packID, sel, gen := a.ctx, a.ports.Compose, a.pack.ID, a.selections.Clone(), a.disabledGen
	return func() tea.Msg {
		res, err := svc.Disabled(ctx, packID, sel)
		return messages.DisabledComputed{PackID: packID, Generation: gen, Result: res, Err: err}
	}
}

func (a *App) compose() tea.Cmd {
	if a.pack == nil {
		return nil
	}
	ctx, svc := a.ctx, a.ports.Compose
	req := driving.ComposeRequest{PackID: a.pack.ID, Selections: a.selections.Clone()}
	return func() tea.Msg {
		c, err := svc.Compose(ctx, req)
		return messages.Composed{Composition: c, Err: err}
	}
}

// updateProgress shows how many of the pack's open slots are chosen.
func (a *App) updateProgress() {
	if a.pack == nil {
		a.statusBar.SetProgress("", 0, 0)
		return
	}
	total, chosen := 0, 0
	for i := range a.pack.Slots {
		slot := &a.pack.Slots[i]
		if slot.Locked {
			continue
		}
		total++
		if _, ok := a.selections[slot.ID]; ok {
			chosen++
		}
	}
	a.statusBar.SetProgress(a.pack.ID, chosen, total)
}

func (a *App) switchView(v messages.ViewType) {
	a.currentView = v
	switch v {
	case messages.ViewPacks:
		a.statusBar.SetHints(a.keymap.ShortHelp())
	case messages.ViewSlots:
		a.statusBar.SetHints(a.keymap.SlotsHelp())
	case messages.ViewOptions:
		a.statusBar.SetHints([]key.Binding{a.keymap.Select, a.keymap.Back})
	case messages.ViewPrompt:
		a.statusBar.SetHints(a.keymap.PromptHelp())
	}
}

func (a *App) setError(err error) {
	a.err = err
	if err != nil {
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(err.Error())
		return
	}
	if a.statusBar.State() != status.StateReady {
		a.statusBar.Clear()
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewSlots:
		body = a.slotsView.View()
	case messages.ViewOptions:
		body = a.optionsView.View()
	case messages.ViewPrompt:
		body = a.promptView.View()
	default:
		body = a.packsView.View()
	}

	bodyHeight := max(a.height-1, 1)
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Height(bodyHeight).Render(body),
		a.statusBar.View(),
	)
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Selections returns a copy of the current selections.
func (a *App) Selections() domain.Selections {
	return a.selections.Clone()
}

// Disabled returns the current disabled option map.
func (a *App) Disabled() map[string][]string {
	return a.disabled
}

// Pack returns the pack being composed from.
func (a *App) Pack() *domain.Pack {
	return a.pack
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.packsView.SetDimensions(width, height-1)
	a.slotsView.SetDimensions(width, height-1)
	a.optionsView.SetDimensions(width, height-1)
	a.promptView.SetDimensions(width, height-1)
	a.statusBar.SetWidth(width)
}
