// Package tui provides an interactive terminal wizard for composing prompts.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/promptsmith/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Packs lists and loads packs.
	Packs driving.PackService

	// Compose composes prompts and computes disabled options.
	Compose driving.ComposeService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(packs driving.PackService, compose driving.ComposeService) *Ports {
	return &Ports{Packs: packs, Compose: compose}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Packs == nil {
		return ErrMissingPackService
	}
	if p.Compose == nil {
		return ErrMissingComposeService
	}
	return nil
}
