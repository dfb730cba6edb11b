package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driven"
)

// Ensure PackStore implements the interface.
var _ driven.PackStore = (*PackStore)(nil)

// PackStore is an in-memory implementation of driven.PackStore.
type PackStore struct {
	mu    sync.RWMutex
	packs map[string]domain.Pack
	now   func() time.Time
}

// NewPackStore creates a new in-memory pack store.
func NewPackStore() *PackStore {
	return &PackStore{
		packs: make(map[string]domain.Pack),
		now:   time.Now,
	}
}

// Save stores or replaces a pack, keeping the original creation time.
func (s *PackStore) Save(_ context.Context, pack *domain.Pack) error {
	if pack == nil || pack.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := *pack
	now := s.now()
	if prev, ok := s.packs[p.ID]; ok {
		p.CreatedAt = prev.CreatedAt
	} else if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	s.packs[p.ID] = p
	return nil
}

// Get retrieves a pack by ID.
func (s *PackStore) Get(_ context.Context, id string) (*domain.Pack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.packs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// Delete removes a pack.
func (s *PackStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.packs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.packs, id)
	return nil
}

// List returns summaries of all packs, ordered by name then ID.
func (s *PackStore) List(_ context.Context) ([]domain.PackSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.PackSummary, 0, len(s.packs))
	for _, p := range s.packs {
		result = append(result, p.Summary())
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}
