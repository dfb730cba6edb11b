package domain

// Option is one concrete value within a slot.
// Value is the literal substituted into text; Label is display-only.
type Option struct {
	// Label is the user-facing name.
	Label string `json:"label"`

	// Value is the literal inserted into a template.
	Value string `json:"value"`

	// Rarity is an optional frequency score. Larger values are picked more often.
	// A nil Rarity on every option of a slot means uniform sampling.
	Rarity *float64 `json:"rarity,omitempty"`

	// Exclusions lists option values in other slots that selecting this option disables.
	Exclusions []Exclusion `json:"exclusions,omitempty"`
}

// Exclusion names option values in another slot that become unavailable
// when the owning option is selected.
type Exclusion struct {
	// SlotID is the target slot key.
	SlotID string `json:"slotId"`

	// Values are the option values disabled in the target slot.
	Values []string `json:"optionValues"`
}

// HasRarity reports whether the option carries a rarity score.
func (o Option) HasRarity() bool {
	return o.Rarity != nil
}

// RarityOr returns the rarity score, or def when the option has none.
func (o Option) RarityOr(def float64) float64 {
	if o.Rarity == nil {
		return def
	}
	return *o.Rarity
}

// IsZero reports whether the option is the neutral empty option.
func (o Option) IsZero() bool {
	return o.Label == "" && o.Value == "" && o.Rarity == nil && len(o.Exclusions) == 0
}

// Rarity returns a pointer to r, for building options in code.
func Rarity(r float64) *float64 {
	return &r
}

// AnyRarity reports whether any option in the list carries a rarity score.
func AnyRarity(options []Option) bool {
	for i := range options {
		if options[i].Rarity != nil {
			return true
		}
	}
	return false
}
