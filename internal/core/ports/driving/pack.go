package driving

import (
	"context"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

// PackService manages packs.
type PackService interface {
	// Import fetches a pack document by reference, parses and stores it.
	// ref is "<scheme>:<location>"; a bare path is treated as a file.
	Import(ctx context.Context, ref string) (*domain.Pack, error)

	// ImportDocument parses and stores a raw pack document.
	ImportDocument(ctx context.Context, raw []byte) (*domain.Pack, error)

	// LoadDirectory stores every pack directory under dir.
	LoadDirectory(ctx context.Context, dir string) ([]domain.PackSummary, error)

	// Get retrieves a pack by ID.
	Get(ctx context.Context, id string) (*domain.Pack, error)

	// List returns summaries of all packs.
	List(ctx context.Context) ([]domain.PackSummary, error)

	// Remove deletes a pack and its history.
	Remove(ctx context.Context, id string) error

	// Dataset returns the flattened dataset of a pack.
	Dataset(ctx context.Context, id string) (domain.Dataset, error)
}
