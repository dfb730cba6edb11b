package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driven"
)

// Ensure CompositionStore implements the interface.
var _ driven.CompositionStore = (*CompositionStore)(nil)

// CompositionStore is an in-memory implementation of driven.CompositionStore.
type CompositionStore struct {
	mu           sync.RWMutex
	compositions map[string]domain.Composition
}

// NewCompositionStore creates a new in-memory composition store.
func NewCompositionStore() *CompositionStore {
	return &CompositionStore{
		compositions: make(map[string]domain.Composition),
	}
}

// Save stores a composition.
func (s *CompositionStore) Save(_ context.Context, c *domain.Composition) error {
	if c == nil || c.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	cp.Selections = c.Selections.Clone()
	s.compositions[c.ID] = cp
	return nil
}

// Get retrieves a composition by ID.
func (s *CompositionStore) Get(_ context.Context, id string) (*domain.Composition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.compositions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

// ListByPack returns compositions newest first.
func (s *CompositionStore) ListByPack(_ context.Context, packID string, limit int) ([]domain.Composition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Composition
	for _, c := range s.compositions {
		if packID == "" || c.PackID == packID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Delete removes a composition.
func (s *CompositionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.compositions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.compositions, id)
	return nil
}

// DeleteByPack removes every composition of a pack.
func (s *CompositionStore) DeleteByPack(_ context.Context, packID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.compositions {
		if c.PackID == packID {
			delete(s.compositions, id)
		}
	}
	return nil
}
