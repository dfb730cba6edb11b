package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driven"
)

// mockFetcher serves fixed documents by location.
type mockFetcher struct {
	scheme string
	docs   map[string][]byte
	calls  []string
}

var _ driven.PackFetcher = (*mockFetcher)(nil)

func (m *mockFetcher) Scheme() string { return m.scheme }

func (m *mockFetcher) Fetch(_ context.Context, ref string) ([]byte, error) {
	m.calls = append(m.calls, ref)
	doc, ok := m.docs[ref]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

var errStoreFailed = errors.New("store failed")

// failingCompositionStore fails every write.
type failingCompositionStore struct {
	driven.CompositionStore
}

func (failingCompositionStore) Save(context.Context, *domain.Composition) error {
	return errStoreFailed
}

func (failingCompositionStore) DeleteByPack(context.Context, string) error {
	return errStoreFailed
}

// fixturePack is a small pack with one exclusion: race=elf disables
// class=barbarian.
const fixturePack = `{
  "id": "fantasy",
  "name": "Fantasy",
  "tags": ["fantasy"],
  "promptTemplate": "a {race} {class}",
  "promptTemplates": [{"name": "Portrait Shot", "template": "portrait of a {race}"}],
  "slots": [
    {
      "id": "race",
      "defaultOption": "orc",
      "options": [
        {"value": "elf", "exclusions": [{"slotId": "class", "optionValues": ["barbarian"]}]},
        {"value": "orc"}
      ]
    },
    {"id": "class", "options": ["wizard", "barbarian"]},
    {"id": "name", "type": "text"}
  ]
}`
