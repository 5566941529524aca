package route

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// WatchCSV loads the waypoint file at path and calls onLoad with the parsed
// route, then again every time the file is written or replaced, until ctx is
// cancelled. Files that fail to parse or are empty are skipped and the
// previous route stays active.
func WatchCSV(ctx context.Context, path string, defaultVelocity float64, onLoad func(Route)) error {
	path = filepath.Clean(path)
	r, err := LoadCSV(path, defaultVelocity)
	if err != nil {
		return err
	}
	if usable(r, path) {
		onLoad(r)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "could not create route file watcher")
	}
	defer watcher.Close()

	// watch the directory so editors that write a temp file and rename it
	// over the route are still seen
	err = watcher.Add(filepath.Dir(path))
	if err != nil {
		return errors.Wrap(err, "could not watch route file directory")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			r, err := LoadCSV(path, defaultVelocity)
			if err != nil {
				slog.Warn("could not reload route file", "error", err, "file", path)
				continue
			}
			if !usable(r, path) {
				continue
			}
			slog.Info("route file changed", "file", path, "points", len(r))
			onLoad(r)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("route file watcher error", "error", err)
		}
	}
}

// usable rejects empty files, at startup as well as on reload. An empty
// route would leave nothing to look ahead on.
func usable(r Route, path string) bool {
	if len(r) == 0 {
		// most likely caught between truncate and write
		slog.Debug("ignoring empty route file", "file", path)
		return false
	}
	return true
}
