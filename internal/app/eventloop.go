package app

import (
	"errors"
	"runtime/debug"
	"time"

	"github.com/dshills/fretmark/internal/config"
	"github.com/dshills/fretmark/internal/engine"
	"github.com/dshills/fretmark/internal/renderer/backend"
	"github.com/dshills/fretmark/internal/renderer/statusline"
)

// eventLoop polls the backend until quit is requested. Every handled
// event is followed by a draw.
func (app *Application) eventLoop(b backend.Backend) {
	app.draw(b)
	for !app.quit.Load() {
		ev := b.PollEvent()
		start := time.Now()
		if err := app.handleEvent(ev); errors.Is(err, ErrQuit) {
			app.quit.Store(true)
			break
		}
		app.metrics.RecordEvent(time.Since(start))
		app.draw(b)
	}
}

// handleEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleEvent(ev backend.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			perr := &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
			app.log.Error().Str("stack", perr.Stack).Msg(perr.Error())
			app.report(perr)
			err = nil
		}
	}()

	switch ev.Type {
	case backend.EventResize:
		app.resize(ev.Width, ev.Height)
		return nil
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventMouse:
		app.mouse.HandleBackend(ev)
		return nil
	case backend.EventInterrupt:
		return app.handleInterrupt(ev.Data)
	default:
		return nil
	}
}

// handleKey runs the action bound to a key event. Unbound keys are
// ignored.
func (app *Application) handleKey(ev backend.Event) error {
	app.mu.RLock()
	km := app.keymap
	app.mu.RUnlock()

	binding, ok := km.Lookup(ev)
	if !ok {
		return nil
	}
	if r := app.Renderer(); r != nil {
		r.Status().ClearMessage()
	}

	err := app.dispatch(binding.Action)
	if err == nil || errors.Is(err, ErrQuit) {
		return err
	}
	app.report(err)
	return nil
}

func (app *Application) handleInterrupt(data any) error {
	switch d := data.(type) {
	case quitRequest:
		return ErrQuit
	case redrawRequest:
		app.redrawPending.Store(false)
	case reloadRequest:
		if err := app.reload(d.path); err != nil {
			app.report(err)
		}
	}
	return nil
}

// reload applies the configuration file at path. An invalid file keeps
// the current configuration.
func (app *Application) reload(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		app.log.Error().Err(err).Str("path", path).Msg("config reload failed")
		return NewOperationError("reload", path, err)
	}
	board, err := cfg.BoardConfig()
	if err != nil {
		return NewOperationError("reload", path, err)
	}
	km, err := cfg.Keymap()
	if err != nil {
		return NewOperationError("reload", path, err)
	}

	app.mu.Lock()
	app.cfg = cfg
	app.keymap = km
	app.mu.Unlock()

	app.engine.SetMaxUndoEntries(cfg.Editor.MaxUndoEntries)
	changed := !app.engine.Board().Equal(board)
	if changed {
		app.engine.SetBoard(board)
		app.engine.FitView(fitInsets)
	}
	app.metrics.RecordReload()
	app.log.Info().
		Str("path", path).
		Bool("board_changed", changed).
		Int("strings", len(board.Tuning)).
		Int("min_fret", board.MinFret).
		Int("max_fret", board.MaxFret).
		Int("max_undo_entries", cfg.Editor.MaxUndoEntries).
		Msg("config reloaded")
	app.notify("configuration reloaded", statusline.MessageInfo)
	return nil
}

// report shows an error on the status line. Expected refusals are
// warnings.
func (app *Application) report(err error) {
	msgType := statusline.MessageError
	switch {
	case errors.Is(err, engine.ErrEmptySelection),
		errors.Is(err, engine.ErrNothingToUndo),
		errors.Is(err, engine.ErrNothingToRedo),
		errors.Is(err, engine.ErrGestureActive):
		msgType = statusline.MessageWarning
	default:
		app.metrics.RecordError()
	}
	app.notify(err.Error(), msgType)
}

func (app *Application) notify(msg string, msgType statusline.MessageType) {
	if r := app.Renderer(); r != nil {
		r.Status().SetMessage(msg, msgType)
	}
}

// draw renders the current frame. A frame dropped by the rate limit is
// retried once the limit has passed.
func (app *Application) draw(b backend.Backend) {
	r := app.Renderer()
	if r == nil {
		return
	}
	start := time.Now()
	if r.Render(app.engine.Frame()) {
		app.metrics.RecordFrame(time.Since(start))
		return
	}
	app.metrics.RecordSkippedFrame()
	if app.redrawPending.CompareAndSwap(false, true) {
		time.AfterFunc(app.frameInterval(), func() {
			b.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: redrawRequest{}})
		})
	}
}

func (app *Application) frameInterval() time.Duration {
	if app.rendOpts.MaxFPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(app.rendOpts.MaxFPS)
}
