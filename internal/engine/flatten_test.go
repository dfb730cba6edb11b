package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

func values(options []domain.Option) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = o.Value
	}
	return out
}

func TestFlatten(t *testing.T) {
	profile := map[string]domain.SlotValue{
		"hair_color": domain.FlatSlot(opts("black", "silver")),
		"torso": domain.NestedSlot{
			"clothing": domain.FlatSlot(opts("tunic")),
			"armor":    domain.FlatSlot(opts("breastplate", "chainmail")),
		},
		"gear": domain.NestedSlot{
			"belt": domain.NestedSlot{
				"pouch": domain.FlatSlot(opts("leather pouch")),
			},
		},
	}

	ds := Flatten(profile)

	got := make(map[string][]string)
	for k, v := range ds {
		got[k] = values(v)
	}
	want := map[string][]string{
		"hair_color":      {"black", "silver"},
		"torso_armor":     {"breastplate", "chainmail"},
		"torso_clothing":  {"tunic"},
		"torso":           {"breastplate", "chainmail", "tunic"},
		"gear_belt_pouch": {"leather pouch"},
		"gear_belt":       {"leather pouch"},
		"gear":            {"leather pouch"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_EmptyNested(t *testing.T) {
	ds := Flatten(map[string]domain.SlotValue{"empty": domain.NestedSlot{}})
	assert.Empty(t, ds)
}

func TestDatasetFromPack(t *testing.T) {
	pack := &domain.Pack{
		Slots: []domain.Slot{
			{ID: "race", Type: domain.SlotTypeSelect, Options: opts("elf", "dwarf")},
			{ID: "name", Type: domain.SlotTypeText},
		},
		Profile: map[string]domain.SlotValue{
			"race":  domain.FlatSlot(opts("orc")),
			"torso": domain.NestedSlot{"armor": domain.FlatSlot(opts("plate"))},
		},
	}

	ds := DatasetFromPack(pack)

	assert.Equal(t, []string{"race", "torso", "torso_armor"}, ds.Keys())
	assert.Equal(t, []string{"elf", "dwarf", "orc"}, values(ds["race"]))
	assert.False(t, ds.Has("name"))
}
