package mcp

import (
	"github.com/custodia-labs/promptsmith/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Packs lists and reads stored packs.
	Packs driving.PackService

	// Compose runs the engine against a pack.
	Compose driving.ComposeService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Compose == nil {
		return ErrMissingComposeService
	}
	if p.Packs == nil {
		return ErrMissingPackService
	}
	return nil
}
