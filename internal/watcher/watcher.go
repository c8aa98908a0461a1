// Package watcher triggers index rebuilds when the package tree
// changes on disk. Events are debounced so a burst of writes causes a
// single full rescan.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"ucindex/internal/config"
	"ucindex/internal/index"
	"ucindex/internal/logging"
)

// Watcher watches one package tree root and rebuilds its index.
type Watcher struct {
	idx      *index.Index
	root     string
	cfg      config.ScanConfig
	debounce time.Duration
	fsw      *fsnotify.Watcher
	logger   *slog.Logger

	timerMu sync.Mutex
	timer   *time.Timer
	rebuilt chan struct{}
}

// New creates a watcher over root. Debounce must be positive.
func New(idx *index.Index, root string, cfg config.ScanConfig, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		idx:      idx,
		root:     root,
		cfg:      cfg,
		debounce: debounce,
		fsw:      fsw,
		logger:   logger,
		rebuilt:  make(chan struct{}, 1),
	}

	if err := w.addWatches(); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// addWatches registers the root, every package folder and every
// class-source subfolder.
func (w *Watcher) addWatches() error {
	if err := w.fsw.Add(w.root); err != nil {
		return fmt.Errorf("watching root %s: %w", w.root, err)
	}

	gi := index.LoadIgnore(w.cfg, w.root)

	entries, err := os.ReadDir(w.root)
	if err != nil {
		return fmt.Errorf("reading root %s: %w", w.root, err)
	}

	count := 1
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if gi != nil && gi.MatchesPath(entry.Name()+"/") {
			continue
		}

		pkgDir := filepath.Join(w.root, entry.Name())
		if err := w.fsw.Add(pkgDir); err != nil {
			w.logger.Warn("cannot watch package", "package", entry.Name(), "error", err)
			continue
		}
		count++

		classesDir := filepath.Join(pkgDir, w.cfg.ClassesDir)
		if info, err := os.Stat(classesDir); err == nil && info.IsDir() {
			if err := w.fsw.Add(classesDir); err == nil {
				count++
			}
		}
	}

	w.logger.Debug("watches added", "count", count, "root", w.root)
	return nil
}

// WatchCount returns the number of watched directories.
func (w *Watcher) WatchCount() int {
	return len(w.fsw.WatchList())
}

// Rebuilt signals after each completed rebuild. Intended for hosts
// that want to re-analyze open documents when the table changes.
func (w *Watcher) Rebuilt() <-chan struct{} {
	return w.rebuilt
}

// Run processes events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// New directories (packages or Classes folders) need their own watch.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !strings.HasPrefix(filepath.Base(event.Name), ".") {
				w.fsw.Add(event.Name)
			}
		}
	}

	if !w.relevant(event.Name) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
		return
	}

	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.runRebuild)
}

// relevant reports whether a path is a class source file.
func (w *Watcher) relevant(path string) bool {
	return strings.HasSuffix(path, w.cfg.SourceExt)
}

func (w *Watcher) runRebuild() {
	if _, err := w.idx.Rebuild(w.root); err != nil {
		w.logger.Error("rebuild after change failed", "root", w.root, "error", err)
		return
	}

	select {
	case w.rebuilt <- struct{}{}:
	default:
	}
}
