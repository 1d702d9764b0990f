package build

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"realestate/internal/domain"
)

// DefaultDebounce is how long sources must be quiet before a rebuild.
const DefaultDebounce = 500 * time.Millisecond

var watchedExts = map[string]bool{".rs": true, ".toml": true}

var skippedDirs = map[string]bool{"target": true, "node_modules": true, ".git": true, ".anchor": true}

// Watch builds once, then rebuilds each time sources under the program
// directory settle after a change, until ctx is done. Every result is passed
// to onResult when it is non-nil; build failures do not stop the watch.
func (r *Runner) Watch(ctx context.Context, debounce time.Duration, onResult func(domain.BuildResult, error)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := r.addTree(w, r.cfg.Dir); err != nil {
		return err
	}
	r.log.Info("watching for changes", zap.String("dir", r.cfg.Dir))

	build := func() {
		res, err := r.Build(ctx)
		if onResult != nil {
			onResult(res, err)
		}
	}
	build()

	ticker := time.NewTicker(debounce / 5)
	defer ticker.Stop()
	var pending time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := r.addTree(w, event.Name); err != nil {
						r.log.Warn("watch new directory", zap.String("dir", event.Name), zap.Error(err))
					}
					continue
				}
			}
			if !relevant(event) {
				continue
			}
			r.log.Debug("source changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			pending = time.Now()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.log.Warn("watcher error", zap.Error(err))

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= debounce {
				pending = time.Time{}
				build()
			}
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return watchedExts[filepath.Ext(event.Name)]
}

func (r *Runner) addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (skippedDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
