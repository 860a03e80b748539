package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/shamanec/umdb/logger"
	"github.com/shamanec/umdb/models"
)

// Watch reloads the configuration file whenever it is written or replaced
// and hands the result to onChange. It blocks until ctx is done.
func Watch(ctx context.Context, path string, onChange func(models.Configuration)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer watcher.Close()

	// Editors replace files on save, watching the directory survives that
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch config dir: %w", err)
	}

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			configuration, err := Load(path)
			if err != nil {
				logger.UmdbLogger.LogWarn("config_watch", fmt.Sprintf("Could not reload configuration from `%s` - %s", path, err))
				continue
			}
			logger.UmdbLogger.LogInfo("config_watch", fmt.Sprintf("Reloaded configuration from `%s`", path))
			onChange(configuration)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.UmdbLogger.LogError("config_watch", fmt.Sprintf("Configuration watcher error - %s", err))
		}
	}
}
