// Package watch re-renders the prompt whenever the working tree or the git
// directory changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thiagokokada/gitprompt-go/internal/debounce"
)

const DefaultDebounceDelay = 350 * time.Millisecond

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Run calls render after every burst of changes under root or gitDir until
// ctx is done. render always runs on the calling goroutine.
func Run(ctx context.Context, root, gitDir string, delay time.Duration, render func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			slog.Error("watcher close", slog.Any("error", err))
		}
	}()
	for path := range watchPaths(root, gitDir) {
		slog.Debug("adding path to FS watcher", slog.String("path", path))
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}

	reload := make(chan struct{}, 1)
	d := debounce.New(delay, func() {
		select {
		case reload <- struct{}{}:
		default:
		}
	})
	defer d.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			if ev.Op&relevantOps == 0 || shouldIgnoreWatchPath(ev.Name) {
				continue
			}
			slog.Debug("fsnotify event",
				slog.String("op", ev.Op.String()),
				slog.String("path", ev.Name),
			)
			if ev.Op.Has(fsnotify.Create) {
				addNewDirs(w, ev.Name, gitDir)
			}
			d.Trigger()
		case err, ok := <-w.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			slog.Error("fsnotify error", slog.Any("error", err))
		case <-reload:
			slog.Debug("re-rendering")
			render()
		}
	}
}

// watchPaths lists the directories to watch: the git directory, every
// directory under its refs, and every working tree directory outside of it.
func watchPaths(root, gitDir string) iter.Seq[string] {
	uniquePaths := map[string]struct{}{}
	appendUnique := func(p string) { uniquePaths[p] = struct{}{} }
	if gitDir != "" {
		appendUnique(gitDir)
		walkDirs(filepath.Join(gitDir, "refs"), "", appendUnique)
	}
	if root != "" {
		walkDirs(root, gitDir, appendUnique)
	}
	return maps.Keys(uniquePaths)
}

// walkDirs calls add for dir and each directory below it, skipping nested
// .git directories and skip itself. Unreadable entries are left out.
func walkDirs(dir, skip string, add func(string)) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			slog.Debug("skipping unreadable path", slog.String("path", path), slog.Any("error", err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && (d.Name() == ".git" || path == skip) {
			return filepath.SkipDir
		}
		add(path)
		return nil
	})
}

func addNewDirs(w *fsnotify.Watcher, path, gitDir string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	walkDirs(path, gitDir, func(p string) {
		slog.Debug("adding path to FS watcher", slog.String("path", p))
		if err := w.Add(p); err != nil {
			slog.Warn("watch new directory", slog.String("path", p), slog.Any("error", err))
		}
	})
}

func shouldIgnoreWatchPath(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".lock" || ext == ".ipc"
}
