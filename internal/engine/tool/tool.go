// Package tool interprets pointer gestures as document edits.
//
// A gesture is one Down, any number of Moves and one Up. Each gesture is
// bracketed by exactly one undo group, so a drag over many moves undoes in a
// single step. What a gesture does is decided at Down and frozen until Up.
//
// Only one gesture is active at a time. A Down that arrives while a gesture
// is active is ignored; the active gesture keeps its interaction and group.
//
// Points passed to the Tool are in world space.
package tool

import (
	"github.com/rs/zerolog"

	"github.com/dshills/fretmark/internal/engine/document"
	"github.com/dshills/fretmark/internal/engine/geometry"
	"github.com/dshills/fretmark/internal/engine/history"
)

// Undo group names.
const (
	groupMove   = "Move markers"
	groupSelect = "Select"
	groupCreate = "Create marker"
)

// Tool is the interaction state machine. It is not safe for concurrent use.
type Tool struct {
	doc     *document.Document
	history *history.History
	log     zerolog.Logger

	mode Mode

	// Gesture state, valid between Down and Up.
	active        bool
	interaction   *Interaction
	initialTarget string
	shift         bool

	// Idle state.
	hovered string
	preview *geometry.Placement
}

// Option configures a Tool.
type Option func(*Tool)

// WithLogger sets the logger used for gesture tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Tool) {
		t.log = l
	}
}

// WithMode sets the initial mode.
func WithMode(m Mode) Option {
	return func(t *Tool) {
		t.mode = m
	}
}

// New creates a Tool editing doc and recording into h.
func New(doc *document.Document, h *history.History, opts ...Option) *Tool {
	t := &Tool{
		doc:     doc,
		history: h,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Mode returns the current mode.
func (t *Tool) Mode() Mode {
	return t.mode
}

// SetMode switches tools. An active gesture is finished first and the hover
// state is cleared.
func (t *Tool) SetMode(m Mode) {
	if t.active {
		t.Up()
	}
	t.mode = m
	t.clearHover()
}

// Active reports whether a gesture is in progress.
func (t *Tool) Active() bool {
	return t.active
}

// Interaction returns a copy of the active interaction, or nil.
func (t *Tool) Interaction() *Interaction {
	if t.interaction == nil {
		return nil
	}
	return t.interaction.clone()
}

// Hovered returns the marker under the idle pointer, or nil.
func (t *Tool) Hovered() *document.Marker {
	if t.hovered == "" {
		return nil
	}
	return t.doc.Marker(t.hovered)
}

// Preview returns the position a new marker would take under the idle
// pointer.
func (t *Tool) Preview() (geometry.Placement, bool) {
	if t.preview == nil {
		return geometry.Placement{}, false
	}
	return *t.preview, true
}

// Reset drops all gesture and hover state without touching the document.
// An open undo group is cancelled.
func (t *Tool) Reset() {
	if t.active {
		t.history.CancelGroup()
	}
	t.endGesture()
	t.clearHover()
}

// resolve returns the placement nearest p when p is on the board.
func (t *Tool) resolve(p geometry.Point) (geometry.Placement, bool) {
	l := t.doc.Layout()
	if !l.IsPointInBoard(p.X, p.Y) {
		return geometry.Placement{}, false
	}
	return l.FindNearestPosition(p.X, p.Y)
}

// Down starts a gesture at p.
func (t *Tool) Down(p geometry.Point, shift bool) {
	if t.active {
		t.log.Debug().
			Float64("x", p.X).
			Float64("y", p.Y).
			Msg("pointer down ignored: gesture already active")
		return
	}

	switch t.mode {
	case ModeCreate:
		t.downCreate(p)
	default:
		t.downSelect(p, shift)
	}
}

func (t *Tool) downSelect(p geometry.Point, shift bool) {
	var hit *document.Marker
	if pl, ok := t.resolve(p); ok {
		hit = t.doc.FirstEntityAt(pl.Position)
	}

	if hit != nil {
		t.history.BeginGroup(groupMove)
	} else {
		t.history.BeginGroup(groupSelect)
	}
	t.active = true
	t.shift = shift
	t.clearHover()

	sel := t.doc.Selection()
	if hit != nil {
		t.initialTarget = hit.ID()
		if sel.IsEmpty() || shift {
			sel.Toggle(hit)
		} else if !sel.Contains(hit) {
			sel.Replace(hit)
		}
		t.interaction = &Interaction{
			Kind:    Translate,
			Start:   p,
			Current: p,
			Targets: sel.IDs(),
		}
	} else {
		t.interaction = &Interaction{
			Kind:     MarqueeSelect,
			Start:    p,
			Current:  p,
			Additive: shift,
		}
		if shift {
			t.interaction.Targets = sel.IDs()
		}
		t.interaction.selectInRect(t.doc)
	}

	t.log.Debug().
		Stringer("kind", t.interaction.Kind).
		Int("targets", len(t.interaction.Targets)).
		Bool("shift", shift).
		Msg("gesture begin")
}

func (t *Tool) downCreate(p geometry.Point) {
	t.history.BeginGroup(groupCreate)
	t.active = true
	t.clearHover()

	pl, ok := t.resolve(p)
	if !ok {
		t.log.Debug().Msg("create gesture outside board")
		return
	}

	m := t.doc.AddMarker(pl.Position)
	t.interaction = &Interaction{
		Kind:    CreateMarker,
		Start:   p,
		Current: p,
		Targets: []string{m.ID()},
	}

	t.log.Debug().
		Str("marker", m.Name()).
		Int("fret", pl.Fret).
		Int("string", pl.String).
		Msg("gesture begin")
}

// Move updates the active gesture, or the hover state when idle.
func (t *Tool) Move(p geometry.Point) {
	if t.interaction != nil {
		t.interaction.update(t.doc, p)
		return
	}
	if t.active {
		return
	}

	t.clearHover()
	pl, ok := t.resolve(p)
	if !ok {
		return
	}
	if m := t.doc.FirstEntityAt(pl.Position); m != nil {
		t.hovered = m.ID()
		return
	}
	t.preview = &pl
}

// Up finishes the active gesture and closes its undo group.
func (t *Tool) Up() {
	if !t.active {
		return
	}

	if it := t.interaction; it != nil {
		if !t.shift && t.initialTarget != "" && !it.HasMoved(t.doc.Layout()) {
			if m := t.doc.Marker(t.initialTarget); m != nil {
				t.doc.Selection().Replace(m)
			}
		}
		it.commit(t.doc)

		t.log.Debug().
			Stringer("kind", it.Kind).
			Int("selected", t.doc.Selection().Len()).
			Msg("gesture commit")
	}

	t.endGesture()
	t.history.EndGroup()
}

func (t *Tool) endGesture() {
	t.active = false
	t.interaction = nil
	t.initialTarget = ""
	t.shift = false
}

func (t *Tool) clearHover() {
	t.hovered = ""
	t.preview = nil
}
