package driven

import (
	"context"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

// CompositionStore persists composition history.
type CompositionStore interface {
	// Save stores a composition.
	Save(ctx context.Context, c *domain.Composition) error

	// Get retrieves a composition by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Composition, error)

	// ListByPack returns the most recent compositions of a pack, newest first.
	// An empty packID lists across all packs. limit <= 0 means no limit.
	ListByPack(ctx context.Context, packID string, limit int) ([]domain.Composition, error)

	// Delete removes a composition.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// DeleteByPack removes every composition of a pack.
	DeleteByPack(ctx context.Context, packID string) error
}
