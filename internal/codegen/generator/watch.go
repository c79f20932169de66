package generator

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher regenerates whenever one of the generator's inputs changes.
type Watcher struct {
	gen      *Generator
	debounce time.Duration
	logger   *slog.Logger

	// OnRun, when set, is called after every regeneration.
	OnRun func(*Summary, error)
}

// NewWatcher returns a Watcher for gen. Events closer together than debounce
// trigger a single run.
func NewWatcher(gen *Generator, debounce time.Duration, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	return &Watcher{gen: gen, debounce: debounce, logger: logger}
}

// Run generates once, then again after every change, until ctx is done.
// A failed run is logged and does not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fw.Close()

	// Editors often replace files on save, so watch directories.
	inputs := map[string]bool{}
	dirs := map[string]bool{}
	for _, p := range w.gen.cfg.Inputs() {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		inputs[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
		w.logger.Debug("Watching directory", "dir", dir)
	}

	w.regenerate(ctx)

	tick := w.debounce / 2
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var pending time.Time
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopped watching")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !inputs[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			w.logger.Debug("Input changed", "file", event.Name, "op", event.Op.String())
			pending = time.Now()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", "error", err)

		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < w.debounce {
				continue
			}
			pending = time.Time{}
			w.regenerate(ctx)
		}
	}
}

func (w *Watcher) regenerate(ctx context.Context) {
	sum, err := w.gen.Run(ctx)
	if err != nil {
		w.logger.Error("Generation failed", "error", err)
	}
	if w.OnRun != nil {
		w.OnRun(sum, err)
	}
}
