package driving

import (
	"context"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

// ComposeRequest describes one composition.
type ComposeRequest struct {
	// PackID selects the pack.
	PackID string `json:"packId"`

	// Template is a template name; empty selects the pack default.
	Template string `json:"template,omitempty"`

	// Selections are the user's choices, used verbatim.
	Selections domain.Selections `json:"selections,omitempty"`

	// Seed makes the result reproducible. Nil draws a fresh seed.
	Seed *uint64 `json:"seed,omitempty"`

	// Mode overrides the configured fill mode when set.
	Mode domain.FillMode `json:"mode,omitempty"`

	// Strict rejects selections that exclude each other.
	Strict bool `json:"strict,omitempty"`

	// Save records the result in the composition history.
	Save bool `json:"save,omitempty"`
}

// ExpandRequest describes a raw template expansion.
type ExpandRequest struct {
	PackID   string  `json:"packId"`
	Template string  `json:"template"`
	Seed     *uint64 `json:"seed,omitempty"`

	// Limit bounds expansion passes; 0 uses the configured limit.
	Limit int `json:"limit,omitempty"`
}

// ExpandResult is the output of an expansion.
type ExpandResult struct {
	Text string `json:"text"`
	Seed uint64 `json:"seed"`
}

// SampleResult is one sampled option with the distribution it came from.
type SampleResult struct {
	Option       domain.Option  `json:"option"`
	Seed         uint64         `json:"seed"`
	Distribution []OptionWeight `json:"distribution"`
}

// OptionWeight is one entry of a sampling distribution.
type OptionWeight struct {
	Value       string  `json:"value"`
	Rank        int     `json:"rank"`
	Probability float64 `json:"probability"`
}

// LookupResult is the outcome of a reverse lookup.
type LookupResult struct {
	Found  bool   `json:"found"`
	SlotID string `json:"slotId,omitempty"`
	Value  string `json:"value,omitempty"`
}

// DisabledResult lists the options disabled by a selection set.
type DisabledResult struct {
	// Disabled maps slot IDs to sorted disabled values.
	Disabled map[string][]string `json:"disabled"`

	// Conflicts lists selections excluded by other selections.
	Conflicts []SelectionConflict `json:"conflicts,omitempty"`

	// Transitive reports whether exclusions were followed through disabled options.
	Transitive bool `json:"transitive"`
}

// SelectionConflict is a selection forbidden by another selection.
type SelectionConflict struct {
	SlotID   string `json:"slotId"`
	Value    string `json:"value"`
	BySlotID string `json:"bySlotId"`
	ByValue  string `json:"byValue"`
}

// ComposeService composes prompts from packs.
type ComposeService interface {
	// Compose fills and expands a pack template.
	Compose(ctx context.Context, req ComposeRequest) (*domain.Composition, error)

	// Expand resolves a raw template against a pack's dataset.
	Expand(ctx context.Context, req ExpandRequest) (*ExpandResult, error)

	// Sample draws one option from a slot.
	Sample(ctx context.Context, packID, slotID string, seed *uint64) (*SampleResult, error)

	// Lookup finds the slot whose option best matches text.
	Lookup(ctx context.Context, packID, text string) (*LookupResult, error)

	// Disabled computes the options disabled by selections.
	Disabled(ctx context.Context, packID string, selections domain.Selections) (*DisabledResult, error)

	// Chain generates a value sequence from a Markov chain trained on the
	// pack's composition history.
	Chain(ctx context.Context, packID string, maxLength int, seed *uint64) ([]string, error)
}
