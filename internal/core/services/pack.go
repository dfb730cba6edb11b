package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driven"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driving"
	"github.com/custodia-labs/promptsmith/internal/engine"
	"github.com/custodia-labs/promptsmith/internal/logger"
	"github.com/custodia-labs/promptsmith/internal/schema"
)

// Ensure PackService implements the interface.
var _ driving.PackService = (*PackService)(nil)

// PackService imports and manages packs.
type PackService struct {
	packStore        driven.PackStore
	compositionStore driven.CompositionStore
	fetchers         map[string]driven.PackFetcher
}

// NewPackService creates a pack service. Each fetcher serves the
// references with its scheme.
func NewPackService(
	packStore driven.PackStore,
	compositionStore driven.CompositionStore,
	fetchers ...driven.PackFetcher,
) *PackService {
	s := &PackService{
		packStore:        packStore,
		compositionStore: compositionStore,
		fetchers:         make(map[string]driven.PackFetcher, len(fetchers)),
	}
	for _, f := range fetchers {
		s.fetchers[f.Scheme()] = f
	}
	return s
}

// Import fetches, parses and stores the pack at ref.
func (s *PackService) Import(ctx context.Context, ref string) (*domain.Pack, error) {
	scheme, location := SplitRef(ref)
	fetcher, ok := s.fetchers[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedSource, scheme)
	}

	logger.Debug("import: fetching %s:%s", scheme, location)
	raw, err := fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ref, err)
	}

	pack, err := s.store(ctx, raw, scheme+":"+location)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", ref, err)
	}
	logger.Info("Imported pack %s (%d slots)", pack.ID, len(pack.Slots))
	return pack, nil
}

// ImportDocument parses and stores a raw pack document.
func (s *PackService) ImportDocument(ctx context.Context, raw []byte) (*domain.Pack, error) {
	return s.store(ctx, raw, "")
}

func (s *PackService) store(ctx context.Context, raw []byte, source string) (*domain.Pack, error) {
	pack, err := schema.Parse(raw)
	if err != nil {
		return nil, err
	}
	if pack.ID == "" {
		pack.ID = PackID(pack.Name)
	}
	if pack.Name == "" {
		pack.Name = schema.Label(pack.ID)
	}
	if source != "" {
		pack.Source = source
	}
	warnUnknownExclusions(pack)

	if err := s.packStore.Save(ctx, pack); err != nil {
		return nil, err
	}
	return pack, nil
}

// LoadDirectory stores every pack directory under dir.
func (s *PackService) LoadDirectory(ctx context.Context, dir string) ([]domain.PackSummary, error) {
	packs, err := schema.LoadDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.PackSummary, 0, len(packs))
	for _, p := range packs {
		warnUnknownExclusions(p)
		if err := s.packStore.Save(ctx, p); err != nil {
			return summaries, fmt.Errorf("save pack %s: %w", p.ID, err)
		}
		summaries = append(summaries, p.Summary())
	}
	logger.Info("Loaded %d packs from %s", len(summaries), dir)
	return summaries, nil
}

// Get retrieves a pack by ID.
func (s *PackService) Get(ctx context.Context, id string) (*domain.Pack, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.packStore.Get(ctx, id)
}

// List returns summaries of all packs.
func (s *PackService) List(ctx context.Context) ([]domain.PackSummary, error) {
	return s.packStore.List(ctx)
}

// Remove deletes a pack and its composition history.
func (s *PackService) Remove(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if s.compositionStore != nil {
		if err := s.compositionStore.DeleteByPack(ctx, id); err != nil {
			return fmt.Errorf("delete history: %w", err)
		}
	}
	return s.packStore.Delete(ctx, id)
}

// Dataset returns the flattened dataset of a pack.
func (s *PackService) Dataset(ctx context.Context, id string) (domain.Dataset, error) {
	pack, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return engine.DatasetFromPack(pack), nil
}

// SplitRef splits "scheme:location". Bare paths, Windows drive paths and
// existing files are "file" references; GitHub and Drive URLs map to their
// schemes.
func SplitRef(ref string) (scheme, location string) {
	ref = strings.TrimSpace(ref)

	for _, prefix := range []string{"https://github.com/", "http://github.com/", "github.com/"} {
		if strings.HasPrefix(ref, prefix) {
			return "github", strings.TrimPrefix(ref, prefix)
		}
	}
	if strings.HasPrefix(ref, "https://drive.google.com/") || strings.HasPrefix(ref, "https://docs.google.com/") {
		return "gdrive", ref
	}

	i := strings.Index(ref, ":")
	if i <= 1 {
		// no scheme, or a drive letter like C:
		return "file", ref
	}
	if _, err := os.Stat(ref); err == nil {
		return "file", ref
	}
	return strings.ToLower(ref[:i]), ref[i+1:]
}

// PackID derives an ID from a pack name, or returns a random UUID when the
// name has nothing usable.
func PackID(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	id := strings.TrimSuffix(b.String(), "-")
	if id == "" {
		return uuid.New().String()
	}
	return id
}

// warnUnknownExclusions logs exclusions naming slots the pack does not define.
func warnUnknownExclusions(p *domain.Pack) {
	ds := engine.DatasetFromPack(p)
	for _, key := range ds.Keys() {
		for _, o := range ds[key] {
			for _, ex := range o.Exclusions {
				if _, ok := ds[ex.SlotID]; !ok {
					logger.Warn("pack %s: %s=%s excludes unknown slot %q", p.ID, key, o.Value, ex.SlotID)
				}
			}
		}
	}
}
