package trips

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"tripcal/internal/logs"
)

// DefaultDebounce collapses editor save bursts into one reload.
const DefaultDebounce = 200 * time.Millisecond

// Watch calls onChange after markdown files in dir change, at most once
// per debounce window. It creates dir if needed and returns nil when ctx
// is done.
func Watch(ctx context.Context, dir string, debounce time.Duration, onChange func()) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}
	logs.Logger.Debugw("watching trips", "dir", dir)

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".md") {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logs.Logger.Warnw("trips watcher error", "dir", dir, "error", err)
		case <-timer.C:
			onChange()
		}
	}
}
