package driven

import "context"

// PackFetcher reads a raw pack document from a source.
//
// References take the form "<scheme>:<location>", for example
// "github:owner/repo/packs/fantasy.yaml@main", "gdrive:<file-id>" or
// "file:/path/to/pack". The scheme prefix is stripped before Fetch is called.
type PackFetcher interface {
	// Scheme returns the reference scheme this fetcher handles.
	Scheme() string

	// Fetch returns the raw document at ref.
	Fetch(ctx context.Context, ref string) ([]byte, error)
}
