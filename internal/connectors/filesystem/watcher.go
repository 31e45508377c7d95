package filesystem

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/eredita-cli/internal/logger"
)

// Watch emits a hint whenever anything under the root changes. Hints are
// coalesced; the poller's fingerprint comparison decides whether a scan
// is needed, so dropped or spurious events are harmless.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// fsnotify watches are per-directory, not recursive.
	err = filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && p != s.root {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
	if err != nil {
		watcher.Close()
		return nil, err
	}

	hints := make(chan struct{}, 1)
	go func() {
		defer close(hints)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				// New directories must be added to keep coverage.
				if event.Has(fsnotify.Create) {
					addIfDir(watcher, event.Name)
				}
				select {
				case hints <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watch error: %v", err)
			}
		}
	}()
	return hints, nil
}

func addIfDir(watcher *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := watcher.Add(path); err != nil {
		logger.Warn("Watching %s: %v", path, err)
	}
}
