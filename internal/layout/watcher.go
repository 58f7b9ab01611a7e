package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet period a watcher waits for before reloading.
const DefaultDebounce = 100 * time.Millisecond

// Reload is the result of reloading a watched layout file.
type Reload struct {
	Path   string
	Layout *Layout
	Err    error
}

// Watcher reloads a layout file whenever it changes on disk.
//
// The parent directory is watched rather than the file itself so that
// editors which save by renaming a temporary file are still seen. Rapid
// successive changes are coalesced into one reload.
type Watcher struct {
	path   string
	loader *Loader
	delay  time.Duration
	logger zerolog.Logger

	fsw     *fsnotify.Watcher
	reloads chan Reload

	mu       sync.Mutex
	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a reload.
// Non-positive values select DefaultDebounce.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithLogger sets the watcher's logger.
func WithLogger(l zerolog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = l
	}
}

// WithLoader sets the loader used for reloads.
func WithLoader(l *Loader) WatcherOption {
	return func(w *Watcher) {
		w.loader = l
	}
}

// NewWatcher starts watching the layout file at path.
// The file must exist.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, fmt.Errorf("watching layout %s: %w", path, err)
	}

	w := &Watcher{
		path:    absPath,
		loader:  NewLoader(),
		delay:   DefaultDebounce,
		logger:  zerolog.Nop(),
		reloads: make(chan Reload, 1),
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching layout %s: %w", path, err)
	}
	w.fsw = fsw

	w.closedWg.Add(1)
	go w.processLoop()

	w.logger.Debug().Str("path", absPath).Dur("debounce", w.delay).Msg("watching layout")
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Reloads returns the channel of reload results.
// It is closed when the watcher is closed.
func (w *Watcher) Reloads() <-chan Reload {
	return w.reloads
}

// Close stops the watcher. Closing twice is a no-op.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()
	close(w.reloads)
	return w.fsw.Close()
}

// processLoop filters directory events down to the watched file and
// debounces them.
func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug().Str("path", ev.Name).Stringer("op", ev.Op).Msg("layout changed")
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("layout watcher error")
			w.send(Reload{Path: w.path, Err: err})

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

// relevant reports whether ev concerns the watched file's contents.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

func (w *Watcher) reload() {
	l, err := w.loader.Load(w.path)
	if err != nil {
		w.logger.Warn().Err(err).Str("path", w.path).Msg("layout reload failed")
	} else {
		w.logger.Info().Str("path", w.path).Msg("layout reloaded")
	}
	w.send(Reload{Path: w.path, Layout: l, Err: err})
}

// send blocks until the reload is received or the watcher closes.
func (w *Watcher) send(r Reload) {
	select {
	case w.reloads <- r:
	case <-w.closeCh:
	}
}
