// Package watch reports changes to a note list's backing file.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/notatnik/internal/checksum"
	"github.com/starford/notatnik/internal/notestore"
	"github.com/starford/notatnik/internal/storage"
)

// debounce collapses the burst of events produced by one atomic write.
const debounce = 100 * time.Millisecond

// ChangeCallback receives the reloaded note list.
type ChangeCallback func(notes []string)

// Watch observes the backing file at path until ctx is cancelled. Once the
// watch is in place cb receives the current notes, then again whenever the
// file content changes.
//
// The parent directory is watched rather than the file, because atomic
// writes replace the file by rename. A file that fails to load at start is
// an error; later failures (for example a corrupt hand edit) are logged and
// skipped.
func Watch(ctx context.Context, path string, logger *slog.Logger, cb ChangeCallback) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	logger.Info("watcher: started", slog.String("path", abs))

	notes, last, err := snapshot(abs)
	if err != nil {
		return fmt.Errorf("watch: load %s: %w", abs, err)
	}
	if cb != nil {
		cb(notes)
	}

	var timer *time.Timer
	var timerCh <-chan time.Time
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			notes, sum, loadErr := snapshot(abs)
			if loadErr != nil {
				logger.Warn("watcher: reload failed", slog.String("path", abs), slog.String("error", loadErr.Error()))
				continue
			}
			if sum == last {
				continue
			}
			last = sum
			logger.Debug("watcher: reloaded", slog.String("path", abs), slog.Int("count", len(notes)))
			if cb != nil {
				cb(notes)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// snapshot reads the file once, so the notes and the checksum describe the
// same bytes. A missing file is an empty list.
func snapshot(path string) ([]string, string, error) {
	data, err := storage.NewFile(path).Read()
	switch {
	case errors.Is(err, os.ErrNotExist):
		data = []byte("[]")
	case err != nil:
		return nil, "", err
	}
	notes, err := notestore.Decode(data)
	if err != nil {
		return nil, "", err
	}
	return notes, checksum.Sum(data), nil
}
