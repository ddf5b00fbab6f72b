// Package watch re-runs the compile pipeline whenever the resource
// directories feeding it change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kmarsden/langgen/internal/log"
)

// relevantOps are the filesystem events that can change a generated
// header. Chmod-only events are noise.
const relevantOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Run watches dirs and calls rebuild once events have settled for the
// debounce window. Directories that cannot be watched are skipped with a
// warning; rebuild errors are logged and the loop keeps running. Run
// returns when ctx is cancelled.
func Run(ctx context.Context, dirs []string, debounce time.Duration, rebuild func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	watched := 0
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			log.Warn(log.CatWatch, "cannot watch directory", "dir", dir, "error", err.Error())
			continue
		}
		log.Debug(log.CatWatch, "watching directory", "dir", dir)
		watched++
	}
	if watched == 0 {
		return errors.New("no watchable directories")
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&relevantOps == 0 {
				continue
			}
			log.Debug(log.CatWatch, "change detected", "file", event.Name, "op", event.Op.String())
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn(log.CatWatch, "watch error", "error", err.Error())
		case <-timer.C:
			if err := rebuild(); err != nil {
				log.ErrorErr(log.CatWatch, "rebuild failed", err)
			}
		}
	}
}
