package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

func seedCompositions(t *testing.T, store *CompositionStore) {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, c := range []domain.Composition{
		{ID: "c1", PackID: "fantasy", Prompt: "elf", CreatedAt: base},
		{ID: "c2", PackID: "fantasy", Prompt: "dwarf", CreatedAt: base.Add(time.Minute)},
		{ID: "c3", PackID: "scifi", Prompt: "android", CreatedAt: base.Add(2 * time.Minute)},
	} {
		c.Seed = uint64(i)
		c.Selections = domain.Selections{"race": c.Prompt}
		require.NoError(t, store.Save(context.Background(), &c))
	}
}

func TestCompositionStore_SaveAndGet(t *testing.T) {
	store := NewCompositionStore()
	seedCompositions(t, store)

	got, err := store.Get(context.Background(), "c2")
	require.NoError(t, err)
	assert.Equal(t, "dwarf", got.Prompt)
	assert.Equal(t, "dwarf", got.Selections["race"])

	_, err = store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompositionStore_SaveCopiesSelections(t *testing.T) {
	store := NewCompositionStore()
	c := &domain.Composition{ID: "c", Selections: domain.Selections{"race": "elf"}}
	require.NoError(t, store.Save(context.Background(), c))

	c.Selections["race"] = "orc"

	got, err := store.Get(context.Background(), "c")
	require.NoError(t, err)
	assert.Equal(t, "elf", got.Selections["race"])
}

func TestCompositionStore_ListByPack(t *testing.T) {
	store := NewCompositionStore()
	seedCompositions(t, store)
	ctx := context.Background()

	got, err := store.ListByPack(ctx, "fantasy", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c2", got[0].ID, "newest first")

	all, err := store.ListByPack(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "c3", all[0].ID)
}

func TestCompositionStore_Delete(t *testing.T) {
	store := NewCompositionStore()
	seedCompositions(t, store)
	ctx := context.Background()

	require.NoError(t, store.Delete(ctx, "c1"))
	assert.ErrorIs(t, store.Delete(ctx, "c1"), domain.ErrNotFound)

	require.NoError(t, store.DeleteByPack(ctx, "fantasy"))
	left, err := store.ListByPack(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "c3", left[0].ID)
}
