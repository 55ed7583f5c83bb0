// Package watcher reruns work when metadata files under a project change.
package watcher

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

var watchLog = log.New(os.Stderr, "[forcekraft:watcher] ", log.Ltime)

const DefaultDebounceDelay = 500 * time.Millisecond

type Config struct {
	Root          string
	DebounceDelay time.Duration
	// FileFilter selects which changed files trigger a run. Nil accepts all.
	FileFilter func(path string) bool
	Logger     *log.Logger
}

// Watcher batches file events under Root and hands each quiet batch to
// the change callback.
type Watcher struct {
	fsnotify    *fsnotify.Watcher
	config      Config
	dirsWatched int
}

func New(config Config) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if config.DebounceDelay == 0 {
		config.DebounceDelay = DefaultDebounceDelay
	}
	if config.Logger == nil {
		config.Logger = watchLog
	}
	w := &Watcher{fsnotify: fsWatcher, config: config}
	if err := w.addTree(config.Root); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	return w, nil
}

// addTree watches root and every directory below it except hidden ones.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); path != root && len(name) > 1 && name[0] == '.' {
			return filepath.SkipDir
		}
		if err := w.fsnotify.Add(path); err != nil {
			return err
		}
		w.dirsWatched++
		return nil
	})
}

// Run blocks until ctx is done, calling onChange with the sorted set of
// paths changed since the previous call.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	defer w.fsnotify.Close()
	w.config.Logger.Printf("watching %d directories in %s (debounce: %v)", w.dirsWatched, w.config.Root, w.config.DebounceDelay)

	pending := map[string]bool{}
	timer := time.NewTimer(w.config.DebounceDelay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsnotify.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.config.Logger.Printf("watch %s: %v", event.Name, err)
					}
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if w.config.FileFilter != nil && !w.config.FileFilter(event.Name) {
				continue
			}
			pending[event.Name] = true
			timer.Reset(w.config.DebounceDelay)

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return nil
			}
			w.config.Logger.Printf("error: %v", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			slices.Sort(paths)
			clear(pending)
			onChange(paths)
		}
	}
}
