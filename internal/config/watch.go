package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watch reloads the tuning file at path whenever it is written or
// replaced and delivers each valid result on the returned channel.
// The channel holds at most one pending config; a newer one replaces it.
// Watching stops and the channel is closed when ctx is done.
func Watch(ctx context.Context, path string, logger *log.Logger) (<-chan WalkConfig, error) {
	if logger == nil {
		logger = log.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: cannot create watcher: %w", err)
	}
	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("config: cannot watch %s: %w", path, err)
	}

	target := filepath.Clean(path)
	out := make(chan WalkConfig, 1)

	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := LoadWalk(path)
				if err != nil {
					logger.Warn("ignoring config change", "path", path, "err", err)
					continue
				}
				logger.Info("config reloaded", "path", path)
				publish(out, cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("config watcher", "err", err)
			}
		}
	}()

	return out, nil
}

// publish replaces any undelivered config with cfg.
func publish(out chan WalkConfig, cfg WalkConfig) {
	for {
		select {
		case out <- cfg:
			return
		default:
		}
		select {
		case <-out:
		default:
		}
	}
}

// Latest drains rx without blocking and returns the newest config, if any.
func Latest(rx <-chan WalkConfig) (WalkConfig, bool) {
	var (
		cfg WalkConfig
		got bool
	)
	for {
		select {
		case c, ok := <-rx:
			if !ok {
				return cfg, got
			}
			cfg, got = c, true
		default:
			return cfg, got
		}
	}
}
