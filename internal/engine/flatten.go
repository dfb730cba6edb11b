package engine

import (
	"sort"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

// Flatten turns a profile of flat and nested slot values into a dataset.
//
// A nested entry contributes one compound key per leaf, joining the path
// with "_" ("torso" → "armor" becomes "torso_armor"). Each nested key also
// gets the union of the options beneath it, so "{torso}" draws from every
// torso sub-category.
func Flatten(profile map[string]domain.SlotValue) domain.Dataset {
	ds := make(domain.Dataset)
	for _, key := range sortedKeys(profile) {
		flattenInto(ds, key, profile[key])
	}
	return ds
}

func flattenInto(ds domain.Dataset, key string, v domain.SlotValue) []domain.Option {
	switch v := v.(type) {
	case domain.FlatSlot:
		ds[key] = append(ds[key], v...)
		return v
	case domain.NestedSlot:
		var all []domain.Option
		for _, sub := range sortedKeys(v) {
			all = append(all, flattenInto(ds, key+"_"+sub, v[sub])...)
		}
		if len(all) > 0 {
			ds[key] = append(ds[key], all...)
		}
		return all
	default:
		return nil
	}
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DatasetFromPack builds the dataset for a pack: its select slots with
// options, merged with its flattened profile.
func DatasetFromPack(p *domain.Pack) domain.Dataset {
	ds := make(domain.Dataset)
	for _, s := range p.Slots {
		if len(s.Options) > 0 {
			ds[s.ID] = append(ds[s.ID], s.Options...)
		}
	}
	if len(p.Profile) > 0 {
		ds.Merge(Flatten(p.Profile))
	}
	return ds
}
