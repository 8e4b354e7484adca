package watcher

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-timer-analyzer/internal/core/model"
	"github.com/penwyp/go-timer-analyzer/internal/util"
)

// FileWatcher reports changes to the timer files of one directory.
// Sub-directories are not watched.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	dir     string
	pattern string
	exclude map[string]bool
	events  chan model.FileEvent
	done    chan struct{}
	once    sync.Once
}

// NewFileWatcher watches dir for files whose base name matches pattern.
// Changes to the exclude paths are not reported.
func NewFileWatcher(dir, pattern string, exclude ...string) (*FileWatcher, error) {
	if pattern == "" {
		pattern = "*"
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	fw := &FileWatcher{
		watcher: watcher,
		dir:     dir,
		pattern: pattern,
		exclude: make(map[string]bool),
		events:  make(chan model.FileEvent, 100),
		done:    make(chan struct{}),
	}
	for _, path := range exclude {
		if path != "" {
			fw.exclude[util.CleanAbs(path)] = true
		}
	}

	go fw.processEvents()

	util.LogDebugf("Watching %s for %s", dir, pattern)
	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.relevant(event) {
				continue
			}
			select {
			case fw.events <- model.FileEvent{
				Path:      event.Name,
				Operation: event.Op.String(),
			}:
			case <-fw.done:
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue running
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if filepath.Dir(event.Name) != filepath.Clean(fw.dir) {
		return false
	}
	if fw.exclude[util.CleanAbs(event.Name)] {
		return false
	}
	matched, _ := filepath.Match(fw.pattern, filepath.Base(event.Name))
	return matched
}

// Events is closed once the watcher is closed
func (fw *FileWatcher) Events() <-chan model.FileEvent {
	return fw.events
}

// Close stops the watcher, also when nobody drains Events any more
func (fw *FileWatcher) Close() error {
	fw.once.Do(func() { close(fw.done) })
	return fw.watcher.Close()
}
