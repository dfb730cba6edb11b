package driven

import "context"

// PackWatcher notifies about changes to pack files.
type PackWatcher interface {
	// Watch calls onChange with the pack directory of every changed file
	// under dir until ctx is cancelled. It blocks.
	Watch(ctx context.Context, dir string, onChange func(packDir string)) error
}
