package engine

import (
	"strings"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

// Index maps an option value to the slot key that owns it.
type Index map[string]string

// BuildIndex records every option value of ds against its slot key.
//
// Slot keys are visited in lexical order. When two slots share a value the
// later key wins, so the owner of a shared value is the lexically greatest
// slot key that contains it.
func BuildIndex(ds domain.Dataset) Index {
	idx := make(Index)
	for _, key := range ds.Keys() {
		for _, o := range ds[key] {
			if o.Value == "" {
				continue
			}
			idx[o.Value] = key
		}
	}
	return idx
}

// FindSlotForText returns the slot whose option value is the longest
// substring of text. Equal-length matches resolve to the lexically
// smallest option value. Matching is case-sensitive.
func FindSlotForText(text string, idx Index) (string, bool) {
	_, slot, ok := idx.Match(text)
	return slot, ok
}

// Match is FindSlotForText returning the matched option value as well.
func (idx Index) Match(text string) (value, slot string, ok bool) {
	for v, s := range idx {
		if v == "" || !strings.Contains(text, v) {
			continue
		}
		if !ok || len(v) > len(value) || (len(v) == len(value) && v < value) {
			value, slot, ok = v, s, true
		}
	}
	return value, slot, ok
}
