package robot

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultWatchDebounce is how long WatchConfig waits for writes to settle.
const DefaultWatchDebounce = 100 * time.Millisecond

// WatchConfig calls onChange with the reloaded configuration each time the
// file at path is written, until ctx is done. Files that fail to load or
// validate are logged and skipped.
//
// The parent directory is watched rather than the file, so editors that save
// by rename keep working.
func WatchConfig(ctx context.Context, path string, log zerolog.Logger, onChange func(*Config)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	log.Debug().Str("path", abs).Msg("watching config")

	// A stopped timer whose channel is drained
	debounce := time.NewTimer(time.Hour)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				debounce.Reset(DefaultWatchDebounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("config watcher error")

		case <-debounce.C:
			cfg, err := LoadConfigFrom(abs)
			if err == nil {
				err = cfg.Validate()
			}
			if err != nil {
				log.Warn().Err(err).Str("path", abs).Msg("ignoring config change")
				continue
			}
			log.Info().Str("path", abs).Msg("config reloaded")
			onChange(cfg)
		}
	}
}
