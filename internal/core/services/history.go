package services

import (
	"context"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driven"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultHistoryLimit is used when List is called without a limit.
const DefaultHistoryLimit = 20

// HistoryService reads and prunes composition history.
type HistoryService struct {
	store driven.CompositionStore
}

// NewHistoryService creates a history service.
func NewHistoryService(store driven.CompositionStore) *HistoryService {
	return &HistoryService{store: store}
}

// List returns recent compositions, newest first.
func (s *HistoryService) List(ctx context.Context, packID string, limit int) ([]domain.Composition, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.store.ListByPack(ctx, packID, limit)
}

// Get retrieves a composition by ID.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.Composition, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.Get(ctx, id)
}

// Delete removes a composition.
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.store.Delete(ctx, id)
}
