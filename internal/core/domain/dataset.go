package domain

import "sort"

// Dataset is the flattened mapping from slot key to that slot's options.
type Dataset map[string][]Option

// Keys returns the slot keys in lexical order.
func (d Dataset) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether the slot key exists with at least one option.
func (d Dataset) Has(key string) bool {
	return len(d[key]) > 0
}

// Merge appends the options of other into d, slot by slot.
func (d Dataset) Merge(other Dataset) {
	for k, opts := range other {
		d[k] = append(d[k], opts...)
	}
}

// Selections maps slot keys to chosen option values.
// Selections are owned by the caller and never retained by the engine.
type Selections map[string]string

// Clone returns a copy of the selections.
func (s Selections) Clone() Selections {
	out := make(Selections, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
