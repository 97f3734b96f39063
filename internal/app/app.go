// Package app provides the main application structure and coordination.
//
// The Application owns the engine, the terminal renderer and the input
// handlers, and runs a single event loop. Keyboard events are mapped
// through the key bindings to actions, mouse events drive pointer
// gestures, and configuration reloads are posted into the loop from the
// config watcher goroutine.
package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/fretmark/internal/config"
	"github.com/dshills/fretmark/internal/config/watcher"
	"github.com/dshills/fretmark/internal/engine"
	"github.com/dshills/fretmark/internal/input/keymap"
	"github.com/dshills/fretmark/internal/input/mouse"
	"github.com/dshills/fretmark/internal/renderer"
	"github.com/dshills/fretmark/internal/renderer/backend"
	"github.com/dshills/fretmark/internal/renderer/viewport"
)

// Options configures application creation.
type Options struct {
	// ConfigPath is the configuration file. It is loaded when Config is
	// nil and watched when WatchConfig is set.
	ConfigPath string

	// Config overrides loading from ConfigPath.
	Config *config.Config

	// WatchConfig reloads the board when the configuration file changes.
	WatchConfig bool

	// Logger receives application logs. The zero value discards them.
	Logger zerolog.Logger

	// Renderer overrides the default renderer options.
	Renderer *renderer.Options
}

// fitInsets keeps a margin around the board when fitting it to the
// terminal, in screen units.
var fitInsets = viewport.Insets{Top: 1, Bottom: 1, Left: 2, Right: 2}

// Interrupt payloads posted into the event loop.
type (
	quitRequest   struct{}
	redrawRequest struct{}
	reloadRequest struct{ path string }
)

// Application is the main fretmark application.
type Application struct {
	mu sync.RWMutex

	cfg        *config.Config
	configPath string
	watch      bool
	log        zerolog.Logger

	engine   *engine.Engine
	keymap   *keymap.ParsedKeymap
	mouse    *mouse.Handler
	backend  backend.Backend
	renderer *renderer.Renderer
	rendOpts renderer.Options
	metrics  *Metrics

	running       atomic.Bool
	quit          atomic.Bool
	redrawPending atomic.Bool

	// now stamps export file names; replaced in tests.
	now func() time.Time
}

// New creates an application from the given options.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(opts.ConfigPath); err != nil {
			return nil, &InitError{Component: "config", Err: err}
		}
	}

	board, err := cfg.BoardConfig()
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	mode, err := cfg.Mode()
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	km, err := cfg.Keymap()
	if err != nil {
		return nil, &InitError{Component: "keymap", Err: err}
	}

	app := &Application{
		cfg:        cfg,
		configPath: opts.ConfigPath,
		watch:      opts.WatchConfig,
		log:        opts.Logger,
		keymap:     km,
		rendOpts:   renderer.DefaultOptions(),
		metrics:    NewMetrics(),
		now:        time.Now,
	}
	if opts.Renderer != nil {
		app.rendOpts = *opts.Renderer
	}

	app.engine = engine.New(
		engine.WithBoard(board),
		engine.WithMaxUndoEntries(cfg.Editor.MaxUndoEntries),
		engine.WithMode(mode),
		engine.WithLogger(app.log.With().Str("component", "engine").Logger()),
	)
	app.mouse = mouse.NewHandler(mouse.DefaultConfig(), app.engine)

	app.log.Debug().
		Str("config", opts.ConfigPath).
		Int("strings", len(board.Tuning)).
		Int("min_fret", board.MinFret).
		Int("max_fret", board.MaxFret).
		Str("mode", mode.String()).
		Msg("application created")

	return app, nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run starts the application main loop.
// Blocks until a quit action, Quit or cancellation of ctx.
func (app *Application) Run(ctx context.Context) error {
	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return ErrNoBackend
	}

	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)
	app.quit.Store(false)

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	app.mu.Lock()
	app.renderer = renderer.New(b, app.rendOpts)
	app.mu.Unlock()

	if app.watch && app.configPath != "" {
		w, err := app.startWatcher(b)
		if err != nil {
			app.log.Warn().Err(err).Str("path", app.configPath).Msg("config watch disabled")
		} else {
			defer w.Close()
		}
	}

	stop := context.AfterFunc(ctx, app.Quit)
	defer stop()

	app.resize(b.Size())
	app.log.Info().Msg("event loop started")
	app.eventLoop(b)

	app.log.Info().EmbedObject(app.metrics.Snapshot()).Msg("event loop stopped")
	return nil
}

// startWatcher watches the configuration file and posts reload requests
// into the event loop.
func (app *Application) startWatcher(b backend.Backend) (*watcher.Watcher, error) {
	return watcher.New(app.configPath, func(ev watcher.Event) {
		b.PostEvent(backend.Event{
			Type: backend.EventInterrupt,
			Data: reloadRequest{path: ev.Path},
		})
	}, watcher.WithLogger(app.log.With().Str("component", "watcher").Logger()))
}

// Quit asks the event loop to stop. Safe to call from any goroutine.
func (app *Application) Quit() {
	app.quit.Store(true)

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b != nil {
		b.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: quitRequest{}})
	}
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Engine returns the document engine.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cfg
}

// Renderer returns the renderer, or nil before Run.
func (app *Application) Renderer() *renderer.Renderer {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.renderer
}

// Metrics returns the event loop metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// resize adapts the viewport to a new terminal size and refits the board.
func (app *Application) resize(width, height int) {
	app.engine.SetClientRect(renderer.ClientRect(width, height))
	app.engine.FitView(fitInsets)
}
