// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PackStore: Pack persistence
//   - CompositionStore: Composition history persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PackFetcher: Reads pack documents from a remote or local source.
//     Without one for a scheme, importing from that scheme fails with
//     domain.ErrUnsupportedSource.
//   - PackWatcher: Reloads packs when their directory changes.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
