package engine

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/fretmark/internal/engine/document"
	"github.com/dshills/fretmark/internal/engine/geometry"
	"github.com/dshills/fretmark/internal/engine/history"
	"github.com/dshills/fretmark/internal/engine/tool"
	"github.com/dshills/fretmark/internal/renderer/viewport"
)

// Engine is the main facade for the fretboard document engine.
// It combines the document, geometry, viewport, gesture tool and undo
// history into a unified, thread-safe API.
type Engine struct {
	mu sync.Mutex

	// Core components
	doc      *document.Document
	history  *history.History
	tool     *tool.Tool
	viewport *viewport.Viewport
	log      zerolog.Logger

	// Configuration
	maxUndoEntries int

	// Initialization
	initBoard  document.BoardConfig
	initMode   tool.Mode
	initClient viewport.Rect
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxUndoEntries: DefaultMaxUndoEntries,
		initBoard:      document.DefaultBoard(),
		initMode:       tool.ModeSelect,
		log:            zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.doc = document.New(e.initBoard)
	e.history = history.NewHistory(e.doc, e.maxUndoEntries)
	e.tool = tool.New(e.doc, e.history,
		tool.WithMode(e.initMode),
		tool.WithLogger(e.log),
	)
	e.viewport = viewport.New(e.initClient)

	return e
}

// transaction runs fn as one undo step. Inside an active gesture fn joins
// the gesture's group.
func (e *Engine) transaction(name string, fn func() error) error {
	err := e.history.Transaction(name, fn)
	if err != nil {
		e.log.Debug().Err(err).Str("command", name).Msg("command failed")
		return err
	}
	e.log.Debug().Str("command", name).Msg("command")
	return nil
}

func (e *Engine) toWorld(x, y float64) geometry.Point {
	w := e.viewport.ScreenToWorld(x, y)
	return geometry.Point{X: w.X, Y: w.Y}
}

// ============================================================================
// Pointer Input
// ============================================================================

// Down starts a gesture at a screen point.
func (e *Engine) Down(x, y float64, shift bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tool.Down(e.toWorld(x, y), shift)
}

// Move updates the active gesture, or the hover state when idle.
func (e *Engine) Move(x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tool.Move(e.toWorld(x, y))
}

// Up finishes the active gesture.
func (e *Engine) Up() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tool.Up()
}

// GestureActive reports whether a pointer gesture is in progress.
func (e *Engine) GestureActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tool.Active()
}

// Mode returns the current tool mode.
func (e *Engine) Mode() tool.Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tool.Mode()
}

// SetMode switches tools, finishing any active gesture first.
func (e *Engine) SetMode(m tool.Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tool.SetMode(m)
	e.log.Debug().Stringer("mode", m).Msg("tool mode")
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo undoes the last step. An empty history is not an error.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.tool.Active() {
		return ErrGestureActive
	}
	err := e.history.Undo()
	if errors.Is(err, history.ErrNothingToUndo) {
		return nil
	}
	return err
}

// Redo redoes the last undone step. An empty redo stack is not an error.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.tool.Active() {
		return ErrGestureActive
	}
	err := e.history.Redo()
	if errors.Is(err, history.ErrNothingToRedo) {
		return nil
	}
	return err
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoCount returns the number of available undo steps.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}

// RedoCount returns the number of available redo steps.
func (e *Engine) RedoCount() int {
	return e.history.RedoCount()
}

// UndoInfo describes the undo stack, oldest first.
func (e *Engine) UndoInfo() []history.Step {
	return e.history.UndoInfo()
}

// MaxUndoEntries returns the undo history limit.
func (e *Engine) MaxUndoEntries() int {
	return e.history.MaxEntries()
}

// SetMaxUndoEntries changes the undo history limit, dropping the oldest
// steps when the history is longer.
func (e *Engine) SetMaxUndoEntries(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.SetMaxEntries(n)
}

// ClearHistory removes all undo/redo history.
func (e *Engine) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.Clear()
}

// ============================================================================
// Document Commands
// ============================================================================

// SelectAll selects every marker.
func (e *Engine) SelectAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	_ = e.transaction("Select all", func() error {
		e.doc.SelectAll()
		return nil
	})
}

// ClearSelection deselects every marker.
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	_ = e.transaction("Deselect", func() error {
		e.doc.Selection().Clear()
		return nil
	})
}

// DeleteSelection deletes every selected marker.
func (e *Engine) DeleteSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	_ = e.transaction("Delete markers", func() error {
		e.doc.DeleteSelection()
		return nil
	})
}

// DeleteEntities deletes markers by id. Unknown ids are ignored.
func (e *Engine) DeleteEntities(ids ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_ = e.transaction("Delete markers", func() error {
		markers := make([]*document.Marker, 0, len(ids))
		for _, id := range ids {
			if m := e.doc.Marker(id); m != nil {
				markers = append(markers, m)
			}
		}
		e.doc.DeleteEntities(markers...)
		return nil
	})
}

// AddMarker adds a marker at a grid position and selects it.
func (e *Engine) AddMarker(pos geometry.Position) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var id string
	_ = e.transaction("Create marker", func() error {
		m := e.doc.AddMarker(pos)
		e.doc.Selection().Replace(m)
		id = m.ID()
		return nil
	})
	return id
}

// Board returns the board configuration.
func (e *Engine) Board() document.BoardConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Board()
}

// SetBoard replaces the board configuration as one undo step. An active
// gesture is finished first.
func (e *Engine) SetBoard(board document.BoardConfig) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.tool.Active() {
		e.tool.Up()
	}
	e.tool.Reset()
	_ = e.transaction("Change board", func() error {
		e.doc.SetBoard(board)
		return nil
	})
	e.log.Info().
		Int("strings", len(board.Tuning)).
		Int("min_fret", board.MinFret).
		Int("max_fret", board.MaxFret).
		Msg("board configuration applied")
}

// Layout returns the geometry of the current board.
// Callers must not keep it across SetBoard, Undo or Redo.
func (e *Engine) Layout() *geometry.Layout {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Layout()
}

// ============================================================================
// Bulk Actions
// ============================================================================

// StartAction opens a bulk action over the selection.
func (e *Engine) StartAction(kind document.ActionKind) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transaction("Start "+string(kind), func() error {
		if e.doc.Selection().StartAction(kind) == nil {
			return ErrEmptySelection
		}
		return nil
	})
}

// ClearAction drops the pending bulk action.
func (e *Engine) ClearAction() {
	e.mu.Lock()
	defer e.mu.Unlock()
	_ = e.transaction("Clear action", func() error {
		e.doc.Selection().ClearAction()
		return nil
	})
}

// bulk runs fn on the pending action of the given kind, starting it when
// another kind or none is pending.
func (e *Engine) bulk(kind document.ActionKind, name string, fn func(a *document.Action)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transaction(name, func() error {
		sel := e.doc.Selection()
		a := sel.Action()
		if a == nil || a.Kind != kind {
			a = sel.StartAction(kind)
		}
		if a == nil {
			return ErrEmptySelection
		}
		fn(a)
		return nil
	})
}

// SetLabel sets the label of every selected marker and makes it manual.
func (e *Engine) SetLabel(label string) error {
	return e.bulk(document.ActionSetLabel, "Set label", func(a *document.Action) {
		a.SetLabel(label)
	})
}

// SetLabelKind sets the label kind of every selected marker.
func (e *Engine) SetLabelKind(kind document.LabelKind) error {
	return e.bulk(document.ActionSetLabel, "Set label kind", func(a *document.Action) {
		a.SetLabelKind(kind)
	})
}

// ClearLabel empties the label of every selected marker.
func (e *Engine) ClearLabel() error {
	return e.bulk(document.ActionSetLabel, "Clear label", func(a *document.Action) {
		a.ClearLabel()
	})
}

// SetShape sets the shape of every selected marker.
func (e *Engine) SetShape(shape document.Shape) error {
	return e.bulk(document.ActionSetShape, "Set shape", func(a *document.Action) {
		a.SetShape(shape)
	})
}

// SetOutline sets the outline flag of every selected marker.
func (e *Engine) SetOutline(outline bool) error {
	return e.bulk(document.ActionSetShape, "Set outline", func(a *document.Action) {
		a.SetOutline(outline)
	})
}

// SetColor sets the color of every selected marker.
func (e *Engine) SetColor(color string) error {
	return e.bulk(document.ActionSetColor, "Set color", func(a *document.Action) {
		a.SetColor(color)
	})
}

// ============================================================================
// Viewport
// ============================================================================

// Viewport returns the viewport. It is safe for concurrent use.
func (e *Engine) Viewport() *viewport.Viewport {
	return e.viewport
}

// SetClientRect stores the screen rectangle of the drawing surface.
func (e *Engine) SetClientRect(r viewport.Rect) {
	e.viewport.SetClientRect(r)
}

// ZoomAt scales the view around a screen point. The scale is clamped.
func (e *Engine) ZoomAt(x, y, factor float64) {
	c := e.viewport.ClientRect()
	e.viewport.ZoomAt(viewport.Point{X: x - c.Min.X, Y: y - c.Min.Y}, factor)
}

// Pan moves the view by a screen offset.
func (e *Engine) Pan(dx, dy float64) {
	e.viewport.Pan(dx, dy)
}

// FitView scales the view so the whole drawing fills the client rect.
func (e *Engine) FitView(in viewport.Insets) {
	e.mu.Lock()
	l := e.doc.Layout()
	e.mu.Unlock()

	e.viewport.Fit(viewport.Rect{
		Max: viewport.Point{X: l.TotalWidth(), Y: l.TotalHeight()},
	}, in)
}
