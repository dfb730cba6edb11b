// Package mcp provides an MCP (Model Context Protocol) server adapter for promptsmith.
// It lets AI assistants compose prompts from stored packs and inspect their constraints.
package mcp

import "errors"

var (
	// ErrMissingComposeService is returned when the compose service is not provided.
	ErrMissingComposeService = errors.New("mcp: compose service is required")

	// ErrMissingPackService is returned when the pack service is not provided.
	ErrMissingPackService = errors.New("mcp: pack service is required")
)
