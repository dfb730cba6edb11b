package driven

import (
	"context"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

// PackStore persists packs.
type PackStore interface {
	// Save stores or replaces a pack.
	Save(ctx context.Context, pack *domain.Pack) error

	// Get retrieves a pack by ID.
	// Returns domain.ErrNotFound if the pack does not exist.
	Get(ctx context.Context, id string) (*domain.Pack, error)

	// Delete removes a pack.
	// Returns domain.ErrNotFound if the pack does not exist.
	Delete(ctx context.Context, id string) error

	// List returns summaries of all stored packs, ordered by name.
	List(ctx context.Context) ([]domain.PackSummary, error)
}
