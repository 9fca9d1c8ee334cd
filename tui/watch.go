// ABOUTME: File watcher for live reload of the catalog and config files
// ABOUTME: Watches the parent directories so atomic saves (write temp, rename) are seen too

package tui

import (
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// settleDelay lets editors finish writing before the file is re-read
const settleDelay = 100 * time.Millisecond

// fileChangeMsg is sent when a watched file was written
type fileChangeMsg struct {
	path string
}

// fileWatcher reports changes to a fixed set of files
type fileWatcher struct {
	w      *fsnotify.Watcher
	files  map[string]bool
	debugf func(string, ...interface{})
}

// newFileWatcher watches the given files. Empty paths are ignored.
func newFileWatcher(debugf func(string, ...interface{}), paths ...string) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	fw := &fileWatcher{w: w, files: make(map[string]bool), debugf: debugf}
	dirs := make(map[string]bool)

	for _, p := range paths {
		if p == "" {
			continue
		}

		abs := absPath(p)
		fw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()

			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	return fw, nil
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}

	return abs
}

// matches reports whether an event path refers to the given file
func (fw *fileWatcher) matches(eventPath, file string) bool {
	return file != "" && absPath(eventPath) == absPath(file)
}

// wait returns a command that blocks until a watched file changes.
// It returns nil once the watcher is closed.
func (fw *fileWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-fw.w.Events:
				if !ok {
					return nil
				}

				if !fw.files[absPath(event.Name)] {
					continue
				}

				// Only react to writes and (re)creations
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					time.Sleep(settleDelay)

					return fileChangeMsg{path: event.Name}
				}
			case err, ok := <-fw.w.Errors:
				if !ok {
					return nil
				}

				// Log error but continue watching
				fw.debugf("[WATCHER] Error: %v", err)
			}
		}
	}
}

// Close stops watching
func (fw *fileWatcher) Close() error {
	return fw.w.Close()
}
