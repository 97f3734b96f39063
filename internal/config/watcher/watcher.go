// Package watcher reports changes to the configuration file.
//
// The parent directory is watched rather than the file so that editors
// which save by writing a new file and renaming it over the old one are
// still seen. Bursts of events are collapsed: a change is delivered once
// the file has been quiet for the debounce period.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet period before a change is delivered.
const DefaultDebounce = 100 * time.Millisecond

// Op is the kind of change.
type Op int

const (
	OpWrite Op = iota
	OpCreate
	OpRemove
	OpRename
)

var opNames = [...]string{"write", "create", "remove", "rename"}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "unknown"
	}
	return opNames[op]
}

// fromFS maps an fsnotify op. Chmod is not a change.
func fromFS(op fsnotify.Op) (Op, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	}
	return 0, false
}

// coalesce folds a new op into a pending one. A write keeps whatever
// came before it; anything else wins.
func coalesce(pending, next Op) Op {
	if next == OpWrite {
		return pending
	}
	return next
}

// Event is a settled change to the watched file.
type Event struct {
	Path string // absolute
	Op   Op
	Time time.Time // of the last raw event in the burst
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(w *Watcher) { w.log = l }
}

// Watcher delivers changes of a single file to a callback. The callback
// runs on the watcher's goroutine.
type Watcher struct {
	path     string
	onChange func(Event)
	debounce time.Duration
	log      zerolog.Logger

	fsw       *fsnotify.Watcher
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New watches path and calls onChange for every settled change until
// Close. The file need not exist but its directory must.
func New(path string, onChange func(Event), opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:     abs,
		onChange: onChange,
		debounce: DefaultDebounce,
		log:      zerolog.Nop(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.fsw, err = fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
		_ = w.fsw.Close()
		return nil, err
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Close stops the watcher. Pending changes are dropped. It is safe to
// call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.wg.Wait()
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	var pending *Event
	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			op, relevant := w.filter(ev)
			if !relevant {
				continue
			}
			now := time.Now()
			if pending == nil {
				pending = &Event{Path: w.path, Op: op}
			} else {
				pending.Op = coalesce(pending.Op, op)
			}
			pending.Time = now
			timer.Reset(w.debounce)

		case <-timer.C:
			if pending != nil {
				w.deliver(*pending)
				pending = nil
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("config watch error")
		}
	}
}

func (w *Watcher) filter(ev fsnotify.Event) (Op, bool) {
	name, err := filepath.Abs(ev.Name)
	if err != nil || name != w.path {
		return 0, false
	}
	return fromFS(ev.Op)
}

func (w *Watcher) deliver(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error().Interface("panic", r).Str("path", ev.Path).Msg("config change handler panicked")
		}
	}()
	w.log.Debug().Str("path", ev.Path).Stringer("op", ev.Op).Msg("config changed")
	w.onChange(ev)
}
