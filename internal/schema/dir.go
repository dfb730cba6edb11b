package schema

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/logger"
)

// File names recognised inside a pack directory, in lookup order.
var schemaFiles = []string{"schema.json", "schema.yaml", "schema.yml", "pack.json", "pack.yaml", "pack.yml"}

// PickSchemaFile returns the name from names that a pack directory would
// load its schema from, or "" when none qualifies.
func PickSchemaFile(names []string) string {
	for _, want := range schemaFiles {
		for _, name := range names {
			if name == want {
				return name
			}
		}
	}
	return ""
}

const (
	metadataFile = "metadata.json"
	wildcardDir  = "wildcards"
	wildcardExt  = ".txt"
)

// ErrNotPackDir indicates a directory with neither a schema file nor wildcards.
var ErrNotPackDir = errors.New("not a pack directory")

// maxParallelLoads bounds concurrent pack directory parsing.
const maxParallelLoads = 8

// ParseWildcards reads one option per line. Blank lines and lines starting
// with # are skipped; surrounding whitespace is trimmed.
func ParseWildcards(r io.Reader) ([]domain.Option, error) {
	var out []domain.Option
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, domain.Option{Label: line, Value: line})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read wildcards: %w", err)
	}
	return out, nil
}

// IsPackDir reports whether dir holds a schema file or a wildcards directory.
func IsPackDir(dir string) bool {
	if findSchemaFile(dir) != "" {
		return true
	}
	info, err := os.Stat(filepath.Join(dir, wildcardDir))
	return err == nil && info.IsDir()
}

func findSchemaFile(dir string) string {
	for _, name := range schemaFiles {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// LoadPackDir loads one pack directory.
//
// Fields missing from the schema document are taken from metadata.json.
// Each wildcards/<key>.txt file is merged into the profile as a flat slot
// named <key>. Without an id anywhere, the directory name is used.
func LoadPackDir(dir string) (*domain.Pack, error) {
	if !IsPackDir(dir) {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotPackDir)
	}

	p := &domain.Pack{}
	if path := findSchemaFile(dir); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if p, err = Parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := mergeMetadata(p, filepath.Join(dir, metadataFile)); err != nil {
		return nil, err
	}
	if err := mergeWildcards(p, filepath.Join(dir, wildcardDir)); err != nil {
		return nil, err
	}

	if p.ID == "" {
		p.ID = filepath.Base(dir)
	}
	if p.Name == "" {
		p.Name = Label(p.ID)
	}
	if p.Template == "" {
		p.Template = defaultTemplate(p)
	}
	if abs, err := filepath.Abs(dir); err == nil {
		p.Source = "file://" + abs
	}
	return p, nil
}

func mergeMetadata(p *domain.Pack, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	meta, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&p.ID, meta.ID)
	fill(&p.Name, meta.Name)
	fill(&p.Author, meta.Author)
	fill(&p.Description, meta.Description)
	fill(&p.Version, meta.Version)
	if len(p.Tags) == 0 {
		p.Tags = meta.Tags
	}
	return nil
}

func mergeWildcards(p *domain.Pack, dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}

	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != wildcardExt {
			continue
		}
		key := strings.TrimSuffix(e.Name(), wildcardExt)
		f, err := os.Open(filepath.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("open wildcard %s: %w", key, err)
		}
		opts, err := ParseWildcards(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("wildcard %s: %w", key, err)
		}
		if len(opts) > 0 {
			addProfile(p, key, domain.FlatSlot(opts))
		}
	}
	return nil
}

// LoadDirectory loads every pack directory directly under root, in
// parallel. When root is itself a pack directory only it is loaded.
// Invalid packs are skipped with a warning. Packs are returned sorted by id.
func LoadDirectory(ctx context.Context, root string) ([]*domain.Pack, error) {
	if IsPackDir(root) {
		p, err := LoadPackDir(root)
		if err != nil {
			return nil, err
		}
		return []*domain.Pack{p}, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read pack directory: %w", err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}

	results := make([]*domain.Pack, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)
	for i, dir := range dirs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := LoadPackDir(dir)
			switch {
			case errors.Is(err, ErrNotPackDir):
				logger.Debug("skipping %s: no schema file", dir)
			case err != nil:
				logger.Warn("skipping pack %s: %v", filepath.Base(dir), err)
			default:
				results[i] = p
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	packs := make([]*domain.Pack, 0, len(results))
	for _, p := range results {
		if p != nil {
			packs = append(packs, p)
		}
	}
	sort.Slice(packs, func(i, j int) bool { return packs[i].ID < packs[j].ID })
	logger.Info("loaded %d packs from %s", len(packs), root)
	return packs, nil
}
