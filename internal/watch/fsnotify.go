package watch

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithBufferSize sets the capacity of the event and error channels.
func WithBufferSize(n int) Option {
	return func(w *FileWatcher) {
		if n > 0 {
			w.bufSize = n
		}
	}
}

// FileWatcher delivers events for a set of regular files. fsnotify watches
// their parent directories; events for other entries are discarded.
type FileWatcher struct {
	fsw     *fsnotify.Watcher
	bufSize int

	mu     sync.RWMutex
	files  map[string]struct{}
	dirs   map[string]int // directory -> number of watched files in it
	closed bool

	events chan Event
	errors chan error

	stop      chan struct{}
	loopDone  chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// NewFileWatcher creates a watcher with no files.
func NewFileWatcher(opts ...Option) (*FileWatcher, error) {
	w := &FileWatcher{
		bufSize:  100,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]int),
		stop:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w.fsw = fsw
	w.events = make(chan Event, w.bufSize)
	w.errors = make(chan error, w.bufSize)

	go w.run()
	return w, nil
}

// Watch adds a regular file.
func (w *FileWatcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWatcherClosed
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrPathNotExist
	case err != nil:
		return err
	case !info.Mode().IsRegular():
		return ErrNotFile
	}
	if _, dup := w.files[abs]; dup {
		return ErrAlreadyWatching
	}

	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[abs] = struct{}{}
	return nil
}

// IsWatching reports whether path has been added.
func (w *FileWatcher) IsWatching(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return w.watched(abs)
}

func (w *FileWatcher) watched(abs string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.files[abs]
	return ok
}

// Files returns the watched paths, sorted.
func (w *FileWatcher) Files() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Sorted(maps.Keys(w.files))
}

// Events returns the event channel. It is closed by Close.
func (w *FileWatcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of fsnotify errors. It is closed by Close.
func (w *FileWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. Calling it more than once is harmless.
func (w *FileWatcher) Close() error {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()

		close(w.stop)
		<-w.loopDone
		close(w.events)
		close(w.errors)
		w.closeErr = w.fsw.Close()
	})
	return w.closeErr
}

func (w *FileWatcher) run() {
	defer close(w.loopDone)
	for {
		select {
		case <-w.stop:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.forward(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			trySend(w.errors, err)
		}
	}
}

// forward passes on an fsnotify event if it names a watched file.
func (w *FileWatcher) forward(ev fsnotify.Event) {
	op := convertOp(ev.Op)
	path := filepath.Clean(ev.Name)
	if op == 0 || !w.watched(path) {
		return
	}
	trySend(w.events, Event{Path: path, Op: op, Timestamp: time.Now()})
}

// trySend drops v when ch is full so a slow reader never stalls fsnotify.
func trySend[T any](ch chan<- T, v T) {
	select {
	case ch <- v:
	default:
	}
}

var fsnotifyOps = [...]struct {
	from fsnotify.Op
	to   Op
}{
	{fsnotify.Create, OpCreate},
	{fsnotify.Write, OpWrite},
	{fsnotify.Remove, OpRemove},
	{fsnotify.Rename, OpRename},
	{fsnotify.Chmod, OpChmod},
}

func convertOp(in fsnotify.Op) Op {
	var op Op
	for _, m := range fsnotifyOps {
		if in.Has(m.from) {
			op |= m.to
		}
	}
	return op
}
