package fs

import (
	"context"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/assetd/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultWatchWindow is the debounce window applied to file system events.
const DefaultWatchWindow = 200 * time.Millisecond

// Watch rescans the plugin directory whenever something below it changes, until
// ctx is done. Bursts of events within window trigger a single Scan. Scan failures
// are reported to logger and do not stop the watch.
func (d *PluginDirectory) Watch(ctx context.Context, window time.Duration, logger ports.Logger) error {
	if _, err := os.Stat(d.root); err != nil {
		return zerr.With(zerr.Wrap(err, "plugins directory is not watchable"), "path", d.root)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close() //nolint:errcheck // Best effort close in defer

	for dir := range d.walker().WalkDirs(d.root) {
		if err := watcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to watch directory"), "path", dir)
		}
	}

	debouncer := NewDebouncer(window, func([]string) {
		if err := d.Scan(); err != nil {
			logger.Error(zerr.Wrap(err, "plugin rescan failed"))
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			if event.Has(fsnotify.Create) {
				d.watchNewDirectory(watcher, event.Name)
			}
			debouncer.Add(event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error: " + err.Error())
		}
	}
}

// watchNewDirectory adds a freshly created directory tree to the watcher.
func (d *PluginDirectory) watchNewDirectory(watcher *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || IsHidden(info.Name()) {
		return
	}
	for dir := range d.walker().WalkDirs(path) {
		_ = watcher.Add(dir)
	}
}

func (d *PluginDirectory) walker() *Walker {
	return d.hasher.walker
}
