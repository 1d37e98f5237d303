package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ingyamilmolinar/nodeflow/internal/log"
)

// WatchDebounce is how long Watch waits after the last write before it
// reloads. Editors often save in several steps.
var WatchDebounce = 100 * time.Millisecond

// Watch reloads path whenever it changes and sends each valid result on the
// returned channel. Invalid files are logged and skipped, so the receiver
// keeps the last good configuration. The channel is closed when ctx ends.
//
// The parent directory is watched rather than the file, since many editors
// replace a file by renaming over it.
func Watch(ctx context.Context, path string, logger *log.Logger) (<-chan *Config, error) {
	if _, err := formatOf(path); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Discard()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	out := make(chan *Config, 1)
	go func() {
		defer close(out)
		defer watcher.Close()

		debounce := time.NewTimer(0)
		<-debounce.C // drain initial timer
		pending := false

		for {
			select {
			case <-ctx.Done():
				debounce.Stop()
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				pending = true
				debounce.Reset(WatchDebounce)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Errorf("[CONFIG] watcher: %v", err)

			case <-debounce.C:
				if !pending {
					continue
				}
				pending = false
				cfg, err := Load(abs)
				if err != nil {
					logger.Warnf("[CONFIG] reload %s: %v", path, err)
					continue
				}
				logger.Infof("[CONFIG] reloaded %s", path)
				select {
				case out <- cfg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
