// Package engine implements prompt composition over a pack's vocabulary.
//
// The engine is pure and in-memory. Every entry point that draws random
// numbers takes a Rand so callers can seed it, and no state is shared
// between calls, so concurrent use needs no locking.
//
// Components, leaves first:
//
//   - Sample picks one option, uniformly or rank-weighted by rarity.
//   - Expand resolves {key} and {a|b} placeholders in bounded passes.
//   - BuildIndex and FindSlotForText map text back to the slot that produced it.
//   - ConstraintGraph computes which options are disabled by a selection set.
//   - Composer merges user selections with filled defaults, expands and normalises.
//
// The engine is fail-soft: empty option lists yield an empty option,
// unknown placeholders are left in place and an exhausted expansion
// budget returns the partial result with a warning.
package engine
