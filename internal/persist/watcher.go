package persist

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event reports a change to the watched history file.
type Event struct {
	// Path is the absolute path to the history file.
	Path string

	// Time is when the change was observed.
	Time time.Time
}

// FileWatcher reports external modifications of the history file, so
// the session can hint that a reload is available. The parent directory
// is watched rather than the file itself; the file may not exist yet
// and is atomically replaced on save.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string

	events chan Event
	errs   chan error

	closeOnce sync.Once
	closeCh   chan struct{}
	wg        sync.WaitGroup
}

// WatchFile starts watching the history file at path.
func WatchFile(path string) (*FileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &FileWatcher{
		watcher: fsw,
		path:    absPath,
		events:  make(chan Event, 16),
		errs:    make(chan error, 16),
		closeCh: make(chan struct{}),
	}

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// Events returns the channel of history file changes.
func (w *FileWatcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of watcher errors.
func (w *FileWatcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher and releases its resources.
func (w *FileWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

// processLoop filters directory events down to the watched file.
func (w *FileWatcher) processLoop() {
	defer w.wg.Done()
	defer close(w.events)

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			select {
			case w.events <- Event{Path: w.path, Time: time.Now()}:
			default:
				// Drop when the consumer is behind.
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}
