// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewPacks lists the stored packs.
	ViewPacks ViewType = iota
	// ViewSlots shows the slot grid of the chosen pack.
	ViewSlots
	// ViewOptions is the option picker for one slot.
	ViewOptions
	// ViewPrompt shows a composed prompt.
	ViewPrompt
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewPacks:
		return "packs"
	case ViewSlots:
		return "slots"
	case ViewOptions:
		return "options"
	case ViewPrompt:
		return "prompt"
	default:
		return "unknown"
	}
}

// PacksLoaded carries the pack summaries from the service.
type PacksLoaded struct {
	Packs []domain.PackSummary
	Err   error
}

// PackLoaded carries a full pack chosen from the list.
type PackLoaded struct {
	Pack *domain.Pack
	Err  error
}

// SlotChosen opens the option picker for a slot.
type SlotChosen struct {
	SlotID string
}

// OptionChosen sets the selection of a slot.
type OptionChosen struct {
	SlotID string
	Value  string
}

// SelectionCleared removes the selection of a slot.
type SelectionCleared struct {
	SlotID string
}

// DisabledComputed carries the disabled options for the selections of one
// request. Generation orders requests for the same App.
type DisabledComputed struct {
	PackID     string
	Generation uint64
	Result     *driving.DisabledResult
	Err        error
}

// ComposeRequested asks for a composition of the current selections.
type ComposeRequested struct{}

// Composed carries a composition result.
type Composed struct {
	Composition *domain.Composition
	Err         error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
