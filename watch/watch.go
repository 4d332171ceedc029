package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before changed
// files are reported.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changed files below watched directories and of watched
// files, in debounced batches.
//
// Create instances with [New].
type Watcher struct {
	fs       *fsnotify.Watcher
	filter   func(path string) bool
	files    map[string]bool
	dirs     []string
	debounce time.Duration
}

// Option configures a [Watcher].
type Option func(*Watcher)

// WithDebounce sets the quiet period before a batch is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithFilter limits reported files below watched directories to those for
// which keep returns true. Explicitly watched files are always reported.
func WithFilter(keep func(path string) bool) Option {
	return func(w *Watcher) {
		w.filter = keep
	}
}

// New creates a [Watcher]. Call [Watcher.Close] when done.
func New(opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fs:       fw,
		filter:   func(string) bool { return true },
		files:    map[string]bool{},
		debounce: DefaultDebounce,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Add watches paths. Directories are watched recursively, skipping hidden
// directories and node_modules, and directories created below them later
// are added as they appear. Reported paths are absolute.
func (w *Watcher) Add(paths ...string) error {
	for _, p := range paths {
		path, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}

		if !info.IsDir() {
			// Editors replace files on save, so watch the parent directory.
			w.files[path] = true

			err = w.fs.Add(filepath.Dir(path))
			if err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}

			continue
		}

		w.dirs = append(w.dirs, path)

		err = w.addTree(path)
		if err != nil {
			return err
		}
	}

	return nil
}

func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if path != root && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
			return filepath.SkipDir
		}

		return w.fs.Add(path)
	})
	if err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}

	return nil
}

// Run reports batches of changed files to handle until ctx is done. Paths in
// a batch are sorted and unique. Watch errors are logged and do not stop
// the watcher.
func (w *Watcher) Run(ctx context.Context, handle func(ctx context.Context, paths []string)) error {
	pending := map[string]struct{}{}

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}

			slog.Warn("watch error", slog.Any("error", err))

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}

			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}

			if ev.Has(fsnotify.Create) && w.underDir(ev.Name) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					err = w.addTree(ev.Name)
					if err != nil {
						slog.Warn("watch error", slog.Any("error", err))
					}

					continue
				}
			}

			if !w.match(ev.Name) {
				continue
			}

			pending[ev.Name] = struct{}{}

			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}

			paths := slices.Sorted(maps.Keys(pending))
			clear(pending)

			slog.Debug("files changed", slog.Any("paths", paths))
			handle(ctx, paths)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) match(path string) bool {
	path = filepath.Clean(path)
	if w.files[path] {
		return true
	}

	return w.underDir(path) && w.filter(path)
}

func (w *Watcher) underDir(path string) bool {
	for _, dir := range w.dirs {
		if strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	return false
}
