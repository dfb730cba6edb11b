package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driven"
	"github.com/custodia-labs/promptsmith/internal/schema"
)

// Scheme is the reference scheme handled by Fetcher.
const Scheme = "file"

// MaxDocumentSize bounds a schema file read from disk (5MB).
const MaxDocumentSize = 5 * 1024 * 1024

// Fetcher reads pack documents from the local filesystem.
type Fetcher struct{}

// Ensure Fetcher implements the interface.
var _ driven.PackFetcher = (*Fetcher)(nil)

// NewFetcher creates a filesystem fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// Scheme returns "file".
func (f *Fetcher) Scheme() string { return Scheme }

// Fetch reads the document at ref. A pack directory is loaded with its
// metadata and wildcards and returned as one canonical document.
func (f *Fetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := expand(ref)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
		}
		return nil, err
	}

	if info.IsDir() {
		p, err := schema.LoadPackDir(path)
		if err != nil {
			return nil, err
		}
		return schema.Marshal(p)
	}

	if info.Size() > MaxDocumentSize {
		return nil, fmt.Errorf("%s is %d bytes: %w", path, info.Size(), domain.ErrInvalidInput)
	}
	return os.ReadFile(path)
}

// expand resolves "~", "file://" prefixes and relative paths.
func expand(ref string) (string, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "//")
	if ref == "" {
		return "", fmt.Errorf("empty path: %w", domain.ErrInvalidInput)
	}
	if ref == "~" || strings.HasPrefix(ref, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		ref = filepath.Join(home, strings.TrimPrefix(ref, "~"))
	}
	return filepath.Abs(ref)
}
