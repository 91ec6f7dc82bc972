// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch re-runs a handler when definition files under a directory
// tree change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pdiddy/fsh-lint/internal/scan"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 300 * time.Millisecond

// Handler is called with the sorted paths that changed since the last call.
type Handler func(ctx context.Context, changed []string)

// Watcher watches every directory under a root for changes to files with
// a given extension. Directories created while watching are added, and the
// definition files already inside them count as changed. Paths matching an
// exclude pattern are neither watched nor reported.
type Watcher struct {
	root     string
	ext      string
	exclude  []string
	debounce time.Duration
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
}

// New creates a watcher over root. The root must exist. Exclude patterns
// are doublestar globs relative to root, as in scan.
func New(root, ext string, exclude []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		root:     root,
		ext:      ext,
		exclude:  exclude,
		debounce: debounce,
		logger:   logger,
		fsw:      fsw,
	}
	if _, err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run delivers debounced batches of changed paths to handle until ctx is
// cancelled. Handler calls never overlap.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	pending := make(map[string]struct{})
	w.logger.Info("watching for changes", "root", w.root, "extension", w.ext)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if w.excluded(ev.Name) {
						continue
					}
					files, err := w.addTree(ev.Name)
					if err != nil {
						w.logger.Warn("failed to watch new directory", "path", ev.Name, "error", err)
					}
					for _, f := range files {
						pending[f] = struct{}{}
					}
					if len(files) > 0 {
						w.logger.Debug("directory added", "path", ev.Name, "files", len(files))
						timer.Reset(w.debounce)
					}
					continue
				}
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("file changed", "path", ev.Name, "op", ev.Op.String())
			pending[ev.Name] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)
			handle(ctx, changed)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !strings.HasSuffix(ev.Name, w.ext) || w.excluded(ev.Name) {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) excluded(path string) bool {
	if len(w.exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	return scan.Excluded(w.exclude, filepath.ToSlash(rel))
}

// addTree watches dir and every directory below it that is not excluded,
// and returns the definition files found on the way.
func (w *Watcher) addTree(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != w.root && w.excluded(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			if d.Type().IsRegular() && strings.HasSuffix(path, w.ext) {
				files = append(files, path)
			}
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
	return files, err
}
