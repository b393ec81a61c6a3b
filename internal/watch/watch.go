// Package watch triggers rebuilds when the site source tree changes.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atelier-theatral/sitectl/internal/logfields"
)

// DefaultDebounce coalesces save bursts from editors into one rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Watcher observes a source directory recursively and invokes a rebuild
// callback after changes settle. Rebuilds never overlap; changes arriving
// during a rebuild coalesce into one follow-up run.
type Watcher struct {
	dir      string
	debounce time.Duration
	rebuild  func(context.Context)
}

// New creates a watcher for dir. debounce <= 0 selects the default.
func New(dir string, debounce time.Duration, rebuild func(context.Context)) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{dir: dir, debounce: debounce, rebuild: rebuild}
}

// Run watches until the context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	if err := addDirsRecursive(watcher, w.dir); err != nil {
		return err
	}
	slog.Info("Watching source directory", logfields.Path(w.dir))

	requests := make(chan struct{}, 1)
	trigger := w.newDebouncer(requests)
	go w.rebuildWorker(ctx, requests)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(watcher, ev, trigger)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(werr))
		}
	}
}

// newDebouncer returns a trigger that enqueues one rebuild request after the
// debounce window passes without further triggers.
func (w *Watcher) newDebouncer(requests chan<- struct{}) func() {
	var mu sync.Mutex
	var timer *time.Timer
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(w.debounce, func() {
			select {
			case requests <- struct{}{}:
			default:
			}
		})
	}
}

// rebuildWorker serializes rebuilds and coalesces requests arriving mid-run.
func (w *Watcher) rebuildWorker(ctx context.Context, requests chan struct{}) {
	var mu sync.Mutex
	running := false
	pending := false

	for {
		select {
		case <-ctx.Done():
			return
		case <-requests:
			mu.Lock()
			if running {
				pending = true
				mu.Unlock()
				continue
			}
			running = true
			mu.Unlock()

			slog.Info("Change detected; rebuilding site")
			w.rebuild(ctx)

			mu.Lock()
			running = false
			if pending {
				pending = false
				mu.Unlock()
				select {
				case requests <- struct{}{}:
				default:
				}
			} else {
				mu.Unlock()
			}
		}
	}
}

// handleEvent filters noise and keeps the recursive watch set current.
func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnore(ev.Name) {
		return
	}

	// New directories need watching before their contents change.
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := addDirsRecursive(watcher, ev.Name); err != nil {
				slog.Warn("Failed to watch new directory", logfields.Path(ev.Name), logfields.Error(err))
			}
		}
	}

	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
		trigger()
	}
}

// addDirsRecursive registers root and every non-hidden subdirectory.
func addDirsRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() != "." && strings.HasPrefix(d.Name(), ".") && p != root {
			return fs.SkipDir
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

// shouldIgnore filters hidden files, editor swap files, and temp artifacts.
func shouldIgnore(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return true
	}
	for _, suffix := range []string{".swp", ".swx", ".tmp", "~"} {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}
