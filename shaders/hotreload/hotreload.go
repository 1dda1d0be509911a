// Package hotreload reports changes to watched files without blocking the
// main loop.
package hotreload

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/bloeys/nplay/logging"
	"github.com/fsnotify/fsnotify"
)

// Watcher watches the parent directories of a set of files, since editors
// tend to replace files on save instead of writing into them.
type Watcher struct {
	w     *fsnotify.Watcher
	files map[string]struct{}
	dirs  map[string]struct{}
}

func NewWatcher() (*Watcher, error) {

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		w:     w,
		files: make(map[string]struct{}),
		dirs:  make(map[string]struct{}),
	}, nil
}

func (w *Watcher) Add(path string) error {

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to watch '%s': %w", path, err)
	}

	dir := filepath.Dir(abs)
	if _, ok := w.dirs[dir]; !ok {

		if err := w.w.Add(dir); err != nil {
			return fmt.Errorf("failed to watch '%s': %w", dir, err)
		}

		w.dirs[dir] = struct{}{}
	}

	w.files[abs] = struct{}{}
	return nil
}

// Poll drains pending events and returns the watched files that were written
// or recreated since the last call, sorted and without duplicates. It never blocks.
func (w *Watcher) Poll() []string {

	var changed []string
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return finish(changed)
			}

			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}

			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}

			if _, ok := w.files[abs]; ok {
				changed = append(changed, abs)
			}

		case err, ok := <-w.w.Errors:
			if ok {
				logging.WarnLog.Println("File watcher error:", err)
			}

		default:
			return finish(changed)
		}
	}
}

func (w *Watcher) Close() error {
	return w.w.Close()
}

func finish(changed []string) []string {
	slices.Sort(changed)
	return slices.Compact(changed)
}
