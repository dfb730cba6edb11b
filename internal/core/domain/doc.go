// Package domain defines the core business entities for promptsmith.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Option: One concrete value within a slot, with optional rarity and exclusions
//   - Slot: A named category of interchangeable options
//   - SlotValue: A schema entry, either a flat option list or nested sub-categories
//   - Dataset: The flattened mapping from slot key to options
//   - Pack: A schema document with templates, slots and a character profile
//   - Composition: A persisted composed prompt with the selections that produced it
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
