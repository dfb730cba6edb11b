package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/promptsmith/internal/core/ports/driven"
	"github.com/custodia-labs/promptsmith/internal/logger"
	"github.com/custodia-labs/promptsmith/internal/schema"
)

// DefaultDebounce is how long a pack must be quiet before onChange fires.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reports changed pack directories below a root.
type Watcher struct {
	// Debounce coalesces bursts of events, such as an editor's
	// write-rename-chmod on save.
	Debounce time.Duration
}

// Ensure Watcher implements the interface.
var _ driven.PackWatcher = (*Watcher)(nil)

// NewWatcher creates a watcher with the default debounce.
func NewWatcher() *Watcher {
	return &Watcher{Debounce: DefaultDebounce}
}

// Watch blocks until ctx is done, calling onChange with the pack directory
// of each changed schema, metadata or wildcard file. When dir is itself a
// pack, every change reports dir.
func (w *Watcher) Watch(ctx context.Context, dir string, onChange func(packDir string)) error {
	root, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := addTree(fw, root); err != nil {
		return err
	}
	logger.Info("Watching %s for pack changes", root)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	tick := debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	pending := make(map[string]time.Time)
	rootIsPack := schema.IsPackDir(root)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				// new pack or wildcards directory
				_ = addTree(fw, event.Name)
			}
			if !relevant(event) {
				continue
			}
			packDir := packDirFor(root, event.Name, rootIsPack)
			if packDir == "" {
				continue
			}
			logger.Debug("watch: %s %s", event.Op, event.Name)
			pending[packDir] = time.Now()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case now := <-ticker.C:
			var ready []string
			for p, at := range pending {
				if now.Sub(at) >= debounce {
					ready = append(ready, p)
					delete(pending, p)
				}
			}
			for _, p := range ready {
				onChange(p)
			}
		}
	}
}

// addTree watches path and every directory below it. Errors on
// subdirectories are logged; only the top-level error is returned.
func addTree(fw *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == path {
				return err
			}
			logger.Debug("watch: skipping %s: %v", p, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != path && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			if p == path {
				return fmt.Errorf("watching %s: %w", p, err)
			}
			logger.Debug("watch: cannot watch %s: %v", p, err)
		}
		return nil
	})
}

// relevant filters out chmod-only events, hidden files and editor backups.
func relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml", ".txt", "":
		return true
	default:
		return false
	}
}

// packDirFor maps a changed path to the pack directory that owns it: the
// first path element below root, or root itself when root is a pack.
func packDirFor(root, path string, rootIsPack bool) string {
	if rootIsPack {
		return root
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	first := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
	if !strings.Contains(filepath.ToSlash(rel), "/") && filepath.Ext(first) != "" {
		// a loose file directly under root belongs to no pack
		return ""
	}
	return filepath.Join(root, first)
}
