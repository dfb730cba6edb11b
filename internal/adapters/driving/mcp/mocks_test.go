package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/promptsmith/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driving"
	"github.com/custodia-labs/promptsmith/internal/core/services"
)

const testPack = `{
  "id": "fantasy",
  "name": "Fantasy",
  "promptTemplate": "a {race} {class}",
  "slots": [
    {"id": "race", "options": [
      {"value": "elf", "exclusions": [{"slotId": "class", "optionValues": ["barbarian"]}]},
      {"value": "orc"}
    ]},
    {"id": "class", "options": ["wizard", "barbarian"]}
  ]
}`

// newTestServer builds a server over real services and in-memory stores.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	packs := memory.NewPackStore()
	comps := memory.NewCompositionStore()
	packSvc := services.NewPackService(packs, comps)
	_, err := packSvc.ImportDocument(context.Background(), []byte(testPack))
	require.NoError(t, err)

	server, err := NewServer(&Ports{
		Packs:   packSvc,
		Compose: services.NewComposeService(packs, comps, nil),
	})
	require.NoError(t, err)
	return server
}

// mockComposeService fails every call with err.
type mockComposeService struct {
	err error
}

var _ driving.ComposeService = (*mockComposeService)(nil)

func (m *mockComposeService) Compose(context.Context, driving.ComposeRequest) (*domain.Composition, error) {
	return nil, m.err
}

func (m *mockComposeService) Expand(context.Context, driving.ExpandRequest) (*driving.ExpandResult, error) {
	return nil, m.err
}

func (m *mockComposeService) Sample(context.Context, string, string, *uint64) (*driving.SampleResult, error) {
	return nil, m.err
}

func (m *mockComposeService) Lookup(context.Context, string, string) (*driving.LookupResult, error) {
	return nil, m.err
}

func (m *mockComposeService) Disabled(context.Context, string, domain.Selections) (*driving.DisabledResult, error) {
	return nil, m.err
}

func (m *mockComposeService) Chain(context.Context, string, int, *uint64) ([]string, error) {
	return nil, m.err
}

// mockPackService serves fixed results.
type mockPackService struct {
	packs []domain.PackSummary
	pack  *domain.Pack
	err   error
}

var _ driving.PackService = (*mockPackService)(nil)

func (m *mockPackService) Import(context.Context, string) (*domain.Pack, error) { return m.pack, m.err }

func (m *mockPackService) ImportDocument(context.Context, []byte) (*domain.Pack, error) {
	return m.pack, m.err
}

func (m *mockPackService) LoadDirectory(context.Context, string) ([]domain.PackSummary, error) {
	return m.packs, m.err
}

func (m *mockPackService) Get(context.Context, string) (*domain.Pack, error) { return m.pack, m.err }

func (m *mockPackService) List(context.Context) ([]domain.PackSummary, error) { return m.packs, m.err }

func (m *mockPackService) Remove(context.Context, string) error { return m.err }

func (m *mockPackService) Dataset(context.Context, string) (domain.Dataset, error) { return nil, m.err }
