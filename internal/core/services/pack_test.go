package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/promptsmith/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driven"
)

func newTestPackService(fetchers ...*mockFetcher) (*PackService, *memory.PackStore, *memory.CompositionStore) {
	packs := memory.NewPackStore()
	comps := memory.NewCompositionStore()
	fs := make([]driven.PackFetcher, len(fetchers))
	for i, f := range fetchers {
		fs[i] = f
	}
	return NewPackService(packs, comps, fs...), packs, comps
}

func TestSplitRef(t *testing.T) {
	tests := []struct {
		ref      string
		scheme   string
		location string
	}{
		{ref: "github:owner/repo/pack.json@main", scheme: "github", location: "owner/repo/pack.json@main"},
		{ref: "https://github.com/owner/repo/packs", scheme: "github", location: "owner/repo/packs"},
		{ref: "gdrive:abc123", scheme: "gdrive", location: "abc123"},
		{ref: "https://drive.google.com/file/d/abc/view", scheme: "gdrive", location: "https://drive.google.com/file/d/abc/view"},
		{ref: "file:/tmp/pack", scheme: "file", location: "/tmp/pack"},
		{ref: "./packs/fantasy", scheme: "file", location: "./packs/fantasy"},
		{ref: `C:\packs\fantasy`, scheme: "file", location: `C:\packs\fantasy`},
		{ref: "FTP:host/pack", scheme: "ftp", location: "host/pack"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			scheme, location := SplitRef(tt.ref)
			assert.Equal(t, tt.scheme, scheme)
			assert.Equal(t, tt.location, location)
		})
	}
}

func TestPackID(t *testing.T) {
	assert.Equal(t, "dark-fantasy-v2", PackID("Dark Fantasy (v2)"))
	assert.Equal(t, "elf", PackID("  Elf  "))

	id := PackID("!!!")
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestPackService_Import(t *testing.T) {
	gh := &mockFetcher{scheme: "github", docs: map[string][]byte{
		"owner/repo/fantasy.json": []byte(fixturePack),
	}}
	svc, packs, _ := newTestPackService(gh)
	ctx := context.Background()

	p, err := svc.Import(ctx, "github:owner/repo/fantasy.json")
	require.NoError(t, err)

	assert.Equal(t, "fantasy", p.ID)
	assert.Equal(t, "github:owner/repo/fantasy.json", p.Source)
	assert.Equal(t, []string{"owner/repo/fantasy.json"}, gh.calls)

	stored, err := packs.Get(ctx, "fantasy")
	require.NoError(t, err)
	assert.Equal(t, "Fantasy", stored.Name)
	assert.Len(t, stored.Slots, 3)
}

func TestPackService_Import_Errors(t *testing.T) {
	gh := &mockFetcher{scheme: "github", docs: map[string][]byte{
		"owner/repo/bad.json": []byte(`["not", "a", "pack"]`),
	}}
	svc, _, _ := newTestPackService(gh)
	ctx := context.Background()

	t.Run("unsupported scheme", func(t *testing.T) {
		_, err := svc.Import(ctx, "ftp:host/pack")
		assert.ErrorIs(t, err, domain.ErrUnsupportedSource)
	})

	t.Run("missing document", func(t *testing.T) {
		_, err := svc.Import(ctx, "github:owner/repo/missing.json")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid document", func(t *testing.T) {
		_, err := svc.Import(ctx, "github:owner/repo/bad.json")
		assert.ErrorIs(t, err, domain.ErrInvalidSchema)
	})
}

func TestPackService_ImportDocument_DerivesID(t *testing.T) {
	svc, _, _ := newTestPackService()

	p, err := svc.ImportDocument(context.Background(), []byte(`
name: Space Opera
slots:
  - id: ship
    options: [frigate, cruiser]
`))
	require.NoError(t, err)

	assert.Equal(t, "space-opera", p.ID)
	assert.Equal(t, "{ship}", p.Template)
	assert.Empty(t, p.Source)
}

func TestPackService_LoadDirectory(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "fantasy")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema.json"), []byte(fixturePack), 0o644))

	svc, _, _ := newTestPackService()
	ctx := context.Background()

	summaries, err := svc.LoadDirectory(ctx, root)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "fantasy", summaries[0].ID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPackService_Remove(t *testing.T) {
	svc, packs, comps := newTestPackService()
	ctx := context.Background()

	_, err := svc.ImportDocument(ctx, []byte(fixturePack))
	require.NoError(t, err)
	require.NoError(t, comps.Save(ctx, &domain.Composition{ID: "c1", PackID: "fantasy"}))

	require.NoError(t, svc.Remove(ctx, "fantasy"))

	_, err = packs.Get(ctx, "fantasy")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = comps.Get(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Remove(ctx, "fantasy"), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Remove(ctx, ""), domain.ErrInvalidInput)
}

func TestPackService_Remove_HistoryFailureKeepsPack(t *testing.T) {
	packs := memory.NewPackStore()
	svc := NewPackService(packs, failingCompositionStore{})
	ctx := context.Background()

	_, err := svc.ImportDocument(ctx, []byte(fixturePack))
	require.NoError(t, err)

	err = svc.Remove(ctx, "fantasy")
	assert.ErrorIs(t, err, errStoreFailed)

	_, err = packs.Get(ctx, "fantasy")
	assert.NoError(t, err)
}

func TestPackService_Dataset(t *testing.T) {
	svc, _, _ := newTestPackService()
	ctx := context.Background()

	_, err := svc.ImportDocument(ctx, []byte(fixturePack))
	require.NoError(t, err)

	ds, err := svc.Dataset(ctx, "fantasy")
	require.NoError(t, err)
	assert.Equal(t, []string{"class", "race"}, ds.Keys())

	_, err = svc.Dataset(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
