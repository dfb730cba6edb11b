package domain

// SlotValue is one entry of a character profile schema.
// It is either a FlatSlot (a plain option list) or a NestedSlot
// (named sub-categories, each itself a SlotValue).
//
// The set of implementations is closed; switch on the concrete type.
type SlotValue interface {
	isSlotValue()
}

// FlatSlot is a plain list of options.
type FlatSlot []Option

// NestedSlot maps sub-category names to further slot values.
// Flattening joins the path with "_" (torso → armor becomes "torso_armor").
type NestedSlot map[string]SlotValue

func (FlatSlot) isSlotValue()   {}
func (NestedSlot) isSlotValue() {}
