package scene

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/pathkit"
)

// Watch loads the named scene file, then reloads it each time the file is
// written or replaced, passing every result to fn. It blocks until ctx is
// done and then returns nil.
//
// A failed reload is passed to fn as an error; watching continues.
func Watch(ctx context.Context, name string, fn func(*Scene, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("scene: watching %s: %w", name, err)
	}
	defer watcher.Close()

	// Editors often save by renaming a new file over the old one, which
	// drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(name)); err != nil {
		return fmt.Errorf("scene: watching %s: %w", name, err)
	}

	fn(LoadFile(name))

	target := filepath.Clean(name)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pathkit.Logger().Debug("scene: reloading", "file", name, "op", event.Op.String())
			fn(LoadFile(name))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			pathkit.Logger().Warn("scene: watcher error", "file", name, "err", err)
		}
	}
}
