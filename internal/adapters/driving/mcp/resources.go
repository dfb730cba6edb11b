package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/schema"
)

const uriScheme = "promptsmith://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "packs",
		Name:        "packs",
		Description: "Summaries of all stored packs",
		MIMEType:    "application/json",
	}, s.handlePacksResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "packs/{packId}",
		Name:        "pack",
		Description: "Schema document of a stored pack",
		MIMEType:    "application/json",
	}, s.handlePackResource)
}

func (s *Server) handlePacksResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	packs, err := s.ports.Packs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing packs: %w", err)
	}
	if packs == nil {
		packs = []domain.PackSummary{}
	}

	data, err := json.MarshalIndent(packs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling packs: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

func (s *Server) handlePackResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractPackID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	pack, err := s.ports.Packs.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting pack: %w", err)
	}

	data, err := schema.Marshal(pack)
	if err != nil {
		return nil, fmt.Errorf("marshalling pack: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

func jsonResult(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}

// extractPackID extracts the pack ID from a URI like promptsmith://packs/{packId}.
func extractPackID(uri string) string {
	const prefix = uriScheme + "packs/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
