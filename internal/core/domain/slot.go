package domain

// SlotType identifies how a slot is filled in by a user.
type SlotType string

// Available slot types.
const (
	// SlotTypeSelect picks one value from the slot's options.
	SlotTypeSelect SlotType = "select"

	// SlotTypeText accepts free-form input.
	SlotTypeText SlotType = "text"
)

// IsValid returns true if the slot type is recognised.
func (t SlotType) IsValid() bool {
	switch t {
	case SlotTypeSelect, SlotTypeText:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t SlotType) String() string {
	return string(t)
}

// Slot is a named category of mutually interchangeable options.
type Slot struct {
	// ID is the slot key referenced by templates as {id}.
	ID string `json:"id"`

	// Label is the user-facing name.
	Label string `json:"label"`

	// Type is select or text. Defaults to select.
	Type SlotType `json:"type"`

	// Options are the choices for select slots.
	Options []Option `json:"options,omitempty"`

	// DefaultOption is the value used when deterministic defaults are requested.
	DefaultOption string `json:"defaultOption,omitempty"`

	// Placeholder is hint text for text slots.
	Placeholder string `json:"placeholder,omitempty"`

	// Locked slots always resolve to DefaultOption and are hidden from wizards.
	Locked bool `json:"isLocked,omitempty"`
}

// Option returns the option with the given value.
func (s *Slot) Option(value string) (Option, bool) {
	for i := range s.Options {
		if s.Options[i].Value == value {
			return s.Options[i], true
		}
	}
	return Option{}, false
}

// Category returns the display category for this slot.
func (s *Slot) Category() SlotCategory {
	return CategoryForSlot(s.ID)
}
