package devserver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period after the last change before a reload.
const DefaultDebounce = 200 * time.Millisecond

// ignoredSuffixes are editor backups and temporary files.
var ignoredSuffixes = []string{"~", ".swp", ".tmp"}

// Ignored reports whether a change to path should not trigger a reload.
func Ignored(path string) bool {
	for _, s := range ignoredSuffixes {
		if strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}

// Watcher watches directory trees and reports bursts of changes once.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	log      *zap.Logger
}

// NewWatcher watches every existing path of paths, directories recursively.
// Missing paths are skipped.
func NewWatcher(paths []string, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = zap.NewNop()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("devserver: create watcher: %w", err)
	}
	w := &Watcher{fs: fw, debounce: debounce, log: log}

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			log.Debug("watch path skipped", zap.String("path", p), zap.Error(err))
			continue
		}
		if err := w.addRecursive(p); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Paths returns the watched files and directories.
func (w *Watcher) Paths() []string { return w.fs.WatchList() }

// Run calls onChange after every burst of relevant changes until ctx is done.
// The watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	defer w.fs.Close()

	d := newDebouncer(w.debounce)
	defer d.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						w.log.Warn("watch new directory", zap.String("path", event.Name), zap.Error(err))
					}
				}
			}

			name := event.Name
			w.log.Debug("change detected", zap.String("path", name), zap.String("op", event.Op.String()))
			d.Debounce(func() { onChange(name) })

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return !Ignored(event.Name)
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && d.IsDir() && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && path != root {
			return nil
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("devserver: watch %s: %w", path, err)
		}
		return nil
	})
}

// ── debouncer ────────────────────────────────────────────────────────────────

// debouncer runs only the last of a burst of calls, once the delay has
// passed without a new one.
type debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

func (d *debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
}
