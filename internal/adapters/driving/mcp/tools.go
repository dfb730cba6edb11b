package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driving"
)

// ComposeInput is the input schema for the compose tool.
type ComposeInput struct {
	PackID     string            `json:"packId" jsonschema:"id of the pack to compose from"`
	Template   string            `json:"template,omitempty" jsonschema:"name of a pack template; empty uses the default"`
	Selections map[string]string `json:"selections,omitempty" jsonschema:"chosen option values keyed by slot id"`
	Seed       *uint64           `json:"seed,omitempty" jsonschema:"seed for a reproducible result"`
	Mode       string            `json:"mode,omitempty" jsonschema:"fill mode for unselected slots: random or defaults"`
	Strict     bool              `json:"strict,omitempty" jsonschema:"reject selections that exclude each other"`
	Save       bool              `json:"save,omitempty" jsonschema:"record the result in the composition history"`
}

// ComposeOutput is the output schema for the compose tool.
type ComposeOutput struct {
	ID         string            `json:"id"`
	Prompt     string            `json:"prompt"`
	Seed       uint64            `json:"seed"`
	Template   string            `json:"template,omitempty"`
	Selections map[string]string `json:"selections"`
	Tags       []string          `json:"tags,omitempty"`
}

// ExpandInput is the input schema for the expand tool.
type ExpandInput struct {
	PackID   string  `json:"packId" jsonschema:"id of the pack whose slots resolve placeholders"`
	Template string  `json:"template" jsonschema:"text with {slot} and {a|b} placeholders"`
	Seed     *uint64 `json:"seed,omitempty" jsonschema:"seed for a reproducible result"`
	Limit    int     `json:"limit,omitempty" jsonschema:"maximum expansion passes (default from settings)"`
}

// SampleInput is the input schema for the sample tool.
type SampleInput struct {
	PackID string  `json:"packId" jsonschema:"id of the pack"`
	SlotID string  `json:"slotId" jsonschema:"slot to draw an option from"`
	Seed   *uint64 `json:"seed,omitempty" jsonschema:"seed for a reproducible draw"`
}

// LookupInput is the input schema for the lookup_slot tool.
type LookupInput struct {
	PackID string `json:"packId" jsonschema:"id of the pack"`
	Text   string `json:"text" jsonschema:"free text to match against option values"`
}

// DisabledInput is the input schema for the disabled_options tool.
type DisabledInput struct {
	PackID     string            `json:"packId" jsonschema:"id of the pack"`
	Selections map[string]string `json:"selections" jsonschema:"current option values keyed by slot id"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compose",
		Description: "Compose a prompt from a pack template, filling unselected slots",
	}, s.handleCompose)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "expand",
		Description: "Expand placeholders in arbitrary text against a pack's slots",
	}, s.handleExpand)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sample",
		Description: "Draw one option from a slot, weighted by rarity",
	}, s.handleSample)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "lookup_slot",
		Description: "Find the slot whose option value best matches a piece of text",
	}, s.handleLookup)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "disabled_options",
		Description: "List the options excluded by a set of selections",
	}, s.handleDisabled)
}

func (s *Server) handleCompose(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ComposeInput,
) (*mcp.CallToolResult, ComposeOutput, error) {
	c, err := s.ports.Compose.Compose(ctx, driving.ComposeRequest{
		PackID:     input.PackID,
		Template:   input.Template,
		Selections: domain.Selections(input.Selections),
		Seed:       input.Seed,
		Mode:       domain.FillMode(input.Mode),
		Strict:     input.Strict,
		Save:       input.Save,
	})
	if err != nil {
		return nil, ComposeOutput{}, err
	}

	return nil, ComposeOutput{
		ID:         c.ID,
		Prompt:     c.Prompt,
		Seed:       c.Seed,
		Template:   c.Template,
		Selections: c.Selections,
		Tags:       c.Tags,
	}, nil
}

func (s *Server) handleExpand(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExpandInput,
) (*mcp.CallToolResult, driving.ExpandResult, error) {
	res, err := s.ports.Compose.Expand(ctx, driving.ExpandRequest{
		PackID:   input.PackID,
		Template: input.Template,
		Seed:     input.Seed,
		Limit:    input.Limit,
	})
	if err != nil {
		return nil, driving.ExpandResult{}, err
	}
	return nil, *res, nil
}

func (s *Server) handleSample(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SampleInput,
) (*mcp.CallToolResult, driving.SampleResult, error) {
	res, err := s.ports.Compose.Sample(ctx, input.PackID, input.SlotID, input.Seed)
	if err != nil {
		return nil, driving.SampleResult{}, err
	}
	return nil, *res, nil
}

func (s *Server) handleLookup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LookupInput,
) (*mcp.CallToolResult, driving.LookupResult, error) {
	res, err := s.ports.Compose.Lookup(ctx, input.PackID, input.Text)
	if err != nil {
		return nil, driving.LookupResult{}, err
	}
	return nil, *res, nil
}

func (s *Server) handleDisabled(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DisabledInput,
) (*mcp.CallToolResult, driving.DisabledResult, error) {
	res, err := s.ports.Compose.Disabled(ctx, input.PackID, domain.Selections(input.Selections))
	if err != nil {
		return nil, driving.DisabledResult{}, err
	}
	return nil, *res, nil
}
