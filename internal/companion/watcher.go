package companion

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventKind identifies the kind of filesystem event delivered to the
// reducer.
type EventKind int

const (
	FileCreated EventKind = iota
	FileModified
	FileDeleted
	FileRenamed
	GitRefChanged
	WatcherError
)

// Event is a single debounced filesystem notification.
type Event struct {
	Kind    EventKind
	Path    string
	OldPath string // set for FileRenamed
	Message string // set for WatcherError
}

// Watcher wraps fsnotify with a debounce window and git-ref-change
// batching: when a HEAD file or .git/refs/heads entry change lands in the same batch
// as other file events, only a single GitRefChanged event is emitted and
// the per-file events in that batch are suppressed.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	events   chan Event

	mu      sync.Mutex
	pending map[string]fsnotify.Event
	timer   *time.Timer
}

// NewWatcher starts watching root (recursively adding directories it
// discovers under root) with the given debounce window; a zero debounce
// defaults to 500ms. Events are delivered over a channel buffered to 256
// events; when it is full, delivery blocks the watcher goroutine until the
// reader drains it.
func NewWatcher(root string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("companion: creating watcher: %w", err)
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		events:   make(chan Event, 256),
		pending:  make(map[string]fsnotify.Event),
	}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if filepath.Base(path) == ".git" {
				_ = w.fsw.Add(path)
				_ = w.fsw.Add(filepath.Join(path, "refs", "heads"))
				return nil
			}
			return w.fsw.Add(path)
		}
		return nil
	})
}

// Events returns the channel the reducer drains.
func (w *Watcher) Events() <-chan Event { return w.events }

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error { return w.fsw.Close() }

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.schedule(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.events <- Event{Kind: WatcherError, Message: err.Error()}
		}
	}
}

func (w *Watcher) schedule(ev fsnotify.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[ev.Name] = ev
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func isGitRefPath(path string) bool {
	return filepath.Base(path) == "HEAD" || filepath.Base(filepath.Dir(path)) == "heads"
}

func (w *Watcher) flush() {
	w.mu.Lock()
	batch := w.pending
	w.pending = make(map[string]fsnotify.Event)
	w.mu.Unlock()

	refChanged := false
	for path := range batch {
		if isGitRefPath(path) {
			refChanged = true
			break
		}
	}
	if refChanged {
		w.events <- Event{Kind: GitRefChanged}
		return
	}
	for path, ev := range batch {
		switch {
		case ev.Op&fsnotify.Create != 0:
			w.events <- Event{Kind: FileCreated, Path: path}
		case ev.Op&fsnotify.Write != 0:
			w.events <- Event{Kind: FileModified, Path: path}
		case ev.Op&fsnotify.Remove != 0:
			w.events <- Event{Kind: FileDeleted, Path: path}
		case ev.Op&fsnotify.Rename != 0:
			w.events <- Event{Kind: FileRenamed, OldPath: path}
		}
	}
}
