package engine

import (
	"sort"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/logger"
)

// SlotOption identifies one option value within one slot.
type SlotOption struct {
	Slot  string `json:"slotId"`
	Value string `json:"value"`
}

func (a SlotOption) less(b SlotOption) bool {
	if a.Slot != b.Slot {
		return a.Slot < b.Slot
	}
	return a.Value < b.Value
}

// ConstraintGraph is the exclusion adjacency of a dataset: each option
// points at the options in other slots that selecting it forbids.
type ConstraintGraph struct {
	edges map[SlotOption]map[SlotOption]struct{}
}

// NewConstraintGraph builds the graph from the exclusions declared on the
// options of ds. Exclusions that target the declaring slot are dropped
// with a warning.
func NewConstraintGraph(ds domain.Dataset) *ConstraintGraph {
	g := &ConstraintGraph{edges: make(map[SlotOption]map[SlotOption]struct{})}
	for _, key := range ds.Keys() {
		for _, o := range ds[key] {
			from := SlotOption{Slot: key, Value: o.Value}
			for _, ex := range o.Exclusions {
				if ex.SlotID == key {
					logger.Warn("option %q in slot %q excludes its own slot; ignored", o.Value, key)
					continue
				}
				if _, ok := ds[ex.SlotID]; !ok {
					logger.Debug("option %q in slot %q excludes unknown slot %q", o.Value, key, ex.SlotID)
				}
				for _, v := range ex.Values {
					g.add(from, SlotOption{Slot: ex.SlotID, Value: v})
				}
			}
		}
	}
	return g
}

func (g *ConstraintGraph) add(from, to SlotOption) {
	set, ok := g.edges[from]
	if !ok {
		set = make(map[SlotOption]struct{})
		g.edges[from] = set
	}
	set[to] = struct{}{}
}

// Excludes returns the options forbidden by selecting value in slot, sorted.
func (g *ConstraintGraph) Excludes(slot, value string) []SlotOption {
	set := g.edges[SlotOption{Slot: slot, Value: value}]
	out := make([]SlotOption, 0, len(set))
	for to := range set {
		out = append(out, to)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

// Len returns the number of exclusion edges.
func (g *ConstraintGraph) Len() int {
	n := 0
	for _, set := range g.edges {
		n += len(set)
	}
	return n
}

// Disabled returns the options disabled by the current selections: the
// union of the direct exclusions of every selected option. Propagation is
// not transitive; exclusions declared by a disabled option are not followed.
func (g *ConstraintGraph) Disabled(sel domain.Selections) DisabledSet {
	out := make(DisabledSet)
	for slot, value := range sel {
		for to := range g.edges[SlotOption{Slot: slot, Value: value}] {
			out.add(to)
		}
	}
	return out
}

// DisabledTransitive is Disabled followed through disabled options: an
// option disabled by a selection also disables whatever it excludes, and so
// on. A chain never disables options in the slot of the selection it
// started from.
func (g *ConstraintGraph) DisabledTransitive(sel domain.Selections) DisabledSet {
	out := make(DisabledSet)
	for slot, value := range sel {
		root := SlotOption{Slot: slot, Value: value}
		seen := map[SlotOption]bool{root: true}
		queue := []SlotOption{root}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for to := range g.edges[cur] {
				if to.Slot == root.Slot || seen[to] {
					continue
				}
				seen[to] = true
				out.add(to)
				queue = append(queue, to)
			}
		}
	}
	return out
}

// Conflict is a selection forbidden by another selection.
type Conflict struct {
	Selected SlotOption `json:"selected"`
	By       SlotOption `json:"by"`
}

// Conflicts lists every selection directly excluded by another selection,
// sorted by the excluded option.
func (g *ConstraintGraph) Conflicts(sel domain.Selections) []Conflict {
	var out []Conflict
	for slot, value := range sel {
		by := SlotOption{Slot: slot, Value: value}
		for to := range g.edges[by] {
			if v, ok := sel[to.Slot]; ok && v == to.Value {
				out = append(out, Conflict{Selected: to, By: by})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Selected != out[j].Selected {
			return out[i].Selected.less(out[j].Selected)
		}
		return out[i].By.less(out[j].By)
	})
	return out
}

// DisabledSet maps slot keys to the set of disabled option values.
type DisabledSet map[string]map[string]struct{}

func (d DisabledSet) add(o SlotOption) {
	set, ok := d[o.Slot]
	if !ok {
		set = make(map[string]struct{})
		d[o.Slot] = set
	}
	set[o.Value] = struct{}{}
}

// Contains reports whether value is disabled in slot.
func (d DisabledSet) Contains(slot, value string) bool {
	_, ok := d[slot][value]
	return ok
}

// Values returns the disabled values of slot, sorted.
func (d DisabledSet) Values(slot string) []string {
	out := make([]string, 0, len(d[slot]))
	for v := range d[slot] {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Slots returns the slots with at least one disabled value, sorted.
func (d DisabledSet) Slots() []string {
	out := make([]string, 0, len(d))
	for s, set := range d {
		if len(set) > 0 {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// Map returns the set as slot → sorted values, for serialisation.
func (d DisabledSet) Map() map[string][]string {
	out := make(map[string][]string, len(d))
	for _, s := range d.Slots() {
		out[s] = d.Values(s)
	}
	return out
}
