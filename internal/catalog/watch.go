package catalog

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"

	"tilewave/internal/logger"
)

// Watch signals on the returned channel whenever a file in dir is written,
// created, removed or renamed. Bursts collapse into a single pending signal.
// The channel is closed once ctx is done.
func Watch(ctx context.Context, dir string) (<-chan struct{}, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("catalog: watch: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("catalog: watch %s: %w", dir, err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !relevant(ev) {
					continue
				}
				logger.Debug("catalog changed", "dir", dir, "event", ev.String())
				select {
				case out <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warning("catalog watch error", "dir", dir, "error", err)
			}
		}
	}()
	return out, nil
}

func relevant(ev fsnotify.Event) bool {
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}
