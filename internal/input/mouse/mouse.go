package mouse

import (
	"sync"

	"github.com/dshills/fretmark/internal/renderer"
)

// Target receives gestures in screen coordinates. *engine.Engine
// implements it.
type Target interface {
	Down(x, y float64, shift bool)
	Move(x, y float64)
	Up()
	ZoomAt(x, y, factor float64)
	Pan(dx, dy float64)
}

// Config tunes the handler.
type Config struct {
	ZoomFactor float64 // scale change per wheel tick
	PanStep    float64 // screen units per horizontal wheel tick

	EnableZoom bool
	EnablePan  bool // middle-button drag and horizontal wheel

	// CellToScreen maps a cell to the screen point at its center.
	CellToScreen func(col, row int) (x, y float64)
}

// DefaultConfig zooms by 1.2 per tick and uses the renderer's cell
// mapping.
func DefaultConfig() Config {
	return Config{
		ZoomFactor:   1.2,
		PanStep:      4,
		EnableZoom:   true,
		EnablePan:    true,
		CellToScreen: renderer.CellToScreen,
	}
}

// Handler turns button transitions into calls on a Target.
type Handler struct {
	mu     sync.Mutex
	config Config
	target Target
	drag   gesture
	held   Button // held in the previous terminal report
}

func NewHandler(config Config, target Target) *Handler {
	if config.CellToScreen == nil {
		config.CellToScreen = renderer.CellToScreen
	}
	return &Handler{config: config, target: target}
}

// Handle processes one transition and reports whether the target was
// called.
func (h *Handler) Handle(event Event) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.handle(event)
}

func (h *Handler) handle(ev Event) bool {
	switch ev.Action {
	case ActionPress:
		if ev.Button.IsScroll() {
			return h.wheel(ev)
		}
		return h.press(ev)
	case ActionRelease:
		return h.release()
	case ActionMove:
		h.target.Move(h.screen(ev.Position))
		return true
	case ActionDrag:
		return h.dragTo(ev.Position)
	}
	return false
}

func (h *Handler) screen(p Position) (float64, float64) {
	return h.config.CellToScreen(p.X, p.Y)
}

// press starts a primary gesture, or a middle-button pan. The right
// button does nothing.
func (h *Handler) press(ev Event) bool {
	switch {
	case ev.Button == ButtonLeft:
		shift := ev.Modifiers.HasShift()
		h.drag.begin(ev.Position, ButtonLeft, shift)
		x, y := h.screen(ev.Position)
		h.target.Down(x, y, shift)
		return true
	case ev.Button == ButtonMiddle && h.config.EnablePan:
		h.drag.begin(ev.Position, ButtonMiddle, false)
	}
	return false
}

func (h *Handler) release() bool {
	if h.drag.finish() != ButtonLeft {
		return false
	}
	h.target.Up()
	return true
}

func (h *Handler) dragTo(p Position) bool {
	switch h.drag.button {
	case ButtonLeft:
		h.drag.moveTo(p)
		h.target.Move(h.screen(p))
		return true
	case ButtonMiddle:
		x0, y0 := h.screen(h.drag.last)
		if h.drag.moveTo(p) == (Position{}) {
			return false
		}
		x1, y1 := h.screen(p)
		h.target.Pan(x1-x0, y1-y0)
		return true
	}
	return false
}

func (h *Handler) wheel(ev Event) bool {
	w, ok := ParseWheel(ev, h.config)
	if !ok {
		return false
	}
	if w.IsZoom() {
		x, y := h.screen(w.At)
		h.target.ZoomAt(x, y, w.Zoom)
	} else {
		h.target.Pan(w.Pan, 0)
	}
	return true
}

// Reset clears all handler state. A primary drag in progress is finished
// so the target does not keep a dangling gesture.
func (h *Handler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.drag.finish() == ButtonLeft {
		h.target.Up()
	}
	h.held = ButtonNone
}

// IsDragging returns true if a drag operation is in progress.
func (h *Handler) IsDragging() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.drag.active()
}

// DragState returns the current drag state.
func (h *Handler) DragState() DragState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.drag.state()
}
