package source

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a directory source and reports when the blog content
// changes, so the catalog can be reloaded as a whole.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange func()

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher watches a directory source's index file and posts directory.
// onChange runs after a short quiet period so editor write bursts coalesce
// into a single reload.
func NewWatcher(dir *Dir, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{watcher: fw, onChange: onChange}

	if err := fw.Add(dir.Root()); err != nil {
		_ = fw.Close()
		return nil, err
	}
	// The posts directory may not exist yet for an empty blog.
	_ = fw.Add(filepath.Join(dir.Root(), PostsDir))

	return w, nil
}

// Start begins watching for changes. Blocks until Stop is called.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if name != IndexFile && !strings.HasSuffix(name, ".md") {
		return
	}

	// Debounce: wait 200ms before reloading.
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(200*time.Millisecond, func() {
		w.mu.Lock()
		w.timer = nil
		w.mu.Unlock()

		if w.onChange != nil {
			w.onChange()
		}
	})
	w.mu.Unlock()
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
