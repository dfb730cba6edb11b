package driving

import (
	"context"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

// HistoryService reads and prunes composition history.
type HistoryService interface {
	// List returns recent compositions, newest first. An empty packID lists all packs.
	List(ctx context.Context, packID string, limit int) ([]domain.Composition, error)

	// Get retrieves a composition by ID.
	Get(ctx context.Context, id string) (*domain.Composition, error)

	// Delete removes a composition.
	Delete(ctx context.Context, id string) error
}
