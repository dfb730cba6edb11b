package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

func TestBuildIndex(t *testing.T) {
	ds := domain.Dataset{
		"hair": opts("red", "blonde"),
		"eyes": opts("red", "green"),
		"misc": {{Value: ""}},
	}

	idx := BuildIndex(ds)

	assert.Equal(t, "hair", idx["red"], "lexically greatest slot wins a shared value")
	assert.Equal(t, "hair", idx["blonde"])
	assert.Equal(t, "eyes", idx["green"])
	_, ok := idx[""]
	assert.False(t, ok)
	assert.Len(t, idx, 3)
}

func TestFindSlotForText_LongestMatch(t *testing.T) {
	ds := domain.Dataset{
		"A": opts("red hat"),
		"B": opts("hat"),
	}
	idx := BuildIndex(ds)

	slot, ok := FindSlotForText("wearing a red hat", idx)
	require.True(t, ok)
	assert.Equal(t, "A", slot)

	slot, ok = FindSlotForText("a blue hat", idx)
	require.True(t, ok)
	assert.Equal(t, "B", slot)
}

func TestFindSlotForText_TieBreak(t *testing.T) {
	idx := BuildIndex(domain.Dataset{
		"headwear": opts("hat"),
		"cap_slot": opts("cap"),
	})

	for _, text := range []string{"hat and cap", "cap and hat"} {
		t.Run(text, func(t *testing.T) {
			value, slot, ok := idx.Match(text)
			require.True(t, ok)
			assert.Equal(t, "cap", value, "equal lengths resolve to the smallest value")
			assert.Equal(t, "cap_slot", slot)
		})
	}
}

func TestFindSlotForText_NoMatch(t *testing.T) {
	idx := BuildIndex(domain.Dataset{"color": opts("red")})

	slot, ok := FindSlotForText("a blue door", idx)
	assert.False(t, ok)
	assert.Empty(t, slot)

	_, ok = FindSlotForText("RED", idx)
	assert.False(t, ok, "matching is case-sensitive")

	_, ok = FindSlotForText("anything", Index{})
	assert.False(t, ok)
}
