package domain

import "time"

// Composition is a stored compose result.
type Composition struct {
	// ID uniquely identifies the composition.
	ID string `json:"id"`

	// PackID is the pack the prompt was composed from.
	PackID string `json:"packId"`

	// Template is the template name used, empty for the default.
	Template string `json:"template,omitempty"`

	// Prompt is the final normalised text.
	Prompt string `json:"prompt"`

	// Seed reproduces the composition when passed back in.
	Seed uint64 `json:"seed"`

	// Selections are the resolved per-slot values.
	Selections Selections `json:"selections"`

	// Tags are the pack tags plus the resolved values.
	Tags []string `json:"tags,omitempty"`

	// CreatedAt is when the composition was made.
	CreatedAt time.Time `json:"createdAt"`
}

// FillMode controls how slots without a user selection are filled.
type FillMode string

// Available fill modes.
const (
	// FillRandom samples every unselected slot.
	FillRandom FillMode = "random"

	// FillDefaults uses each slot's default option.
	FillDefaults FillMode = "defaults"
)

// IsValid returns true if the fill mode is recognised.
func (m FillMode) IsValid() bool {
	switch m {
	case FillRandom, FillDefaults:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m FillMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m FillMode) Description() string {
	switch m {
	case FillRandom:
		return "Random (weighted sampling)"
	case FillDefaults:
		return "Defaults (deterministic)"
	default:
		return "Unknown"
	}
}

// AllFillModes returns all available fill modes.
func AllFillModes() []FillMode {
	return []FillMode{FillRandom, FillDefaults}
}
