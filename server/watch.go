// ABOUTME: Reloads the shared config when its file changes while the server runs
// ABOUTME: Sessions pick the new values up from the shared config on their own frame clocks

package server

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"showreel/config"
)

// watchConfig blocks until ctx is done, reloading path into shared on every write.
// Invalid files are logged and leave the shared config untouched.
func watchConfig(ctx context.Context, path string, shared *config.SharedConfig, log *zap.Logger) error {
	if path == "" {
		<-ctx.Done()

		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	defer func() {
		_ = w.Close()
	}()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != abs || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}

			cfg, err := config.LoadConfig(abs)
			if err != nil {
				log.Warn("config reload failed", zap.String("path", abs), zap.Error(err))

				continue
			}

			shared.Update(cfg)
			log.Info("config reloaded", zap.String("path", abs))

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			log.Warn("config watcher error", zap.Error(err))
		}
	}
}
