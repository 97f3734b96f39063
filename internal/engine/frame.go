package engine

import (
	"github.com/dshills/fretmark/internal/engine/document"
	"github.com/dshills/fretmark/internal/engine/geometry"
	"github.com/dshills/fretmark/internal/engine/tool"
	"github.com/dshills/fretmark/internal/renderer/viewport"
)

// MarkerView is the drawable state of one marker.
type MarkerView struct {
	ID       string
	Name     string
	Position geometry.Position // effective, pending transform included
	Point    geometry.Point    // world space
	Style    document.Style
	Label    string // text to draw, derived for note-name labels
	Selected bool
	Hovered  bool
}

// Marquee is the rectangle of an active marquee selection.
type Marquee struct {
	World    geometry.Rect
	Viewport viewport.Rect
}

// ActionView is the pending bulk action with its aggregate values.
// Values are document.Mixed when the selection disagrees.
type ActionView struct {
	Kind      document.ActionKind
	Label     string
	LabelKind string
	Shape     string
	Color     string
}

// Frame is everything a renderer needs to draw one frame. It is a copy;
// mutating it has no effect on the engine.
type Frame struct {
	Layout     *geometry.Layout
	Markers    []MarkerView
	Selected   []string
	Hovered    string
	Preview    *geometry.Placement
	Marquee    *Marquee
	Gesture    *tool.Kind
	Action     *ActionView
	Mode       tool.Mode
	Transform  viewport.Transform
	ClientRect viewport.Rect
	CanUndo    bool
	CanRedo    bool
}

// Frame returns the current drawable state.
func (e *Engine) Frame() Frame {
	e.mu.Lock()
	defer e.mu.Unlock()

	layout := e.doc.Layout()
	board := layout.Board()
	sel := e.doc.Selection()

	f := Frame{
		Layout:     layout,
		Selected:   sel.IDs(),
		Mode:       e.tool.Mode(),
		Transform:  e.viewport.Transform(),
		ClientRect: e.viewport.ClientRect(),
		CanUndo:    e.history.CanUndo(),
		CanRedo:    e.history.CanRedo(),
	}

	if m := e.tool.Hovered(); m != nil {
		f.Hovered = m.ID()
	}
	if pl, ok := e.tool.Preview(); ok {
		f.Preview = &pl
	}

	for _, m := range e.doc.Entities() {
		pos := m.Position()
		f.Markers = append(f.Markers, MarkerView{
			ID:       m.ID(),
			Name:     m.Name(),
			Position: pos,
			Point:    layout.PositionPoint(pos),
			Style:    m.Style(),
			Label:    m.DisplayLabel(board),
			Selected: sel.Contains(m),
			Hovered:  m.ID() == f.Hovered,
		})
	}

	if it := e.tool.Interaction(); it != nil {
		kind := it.Kind
		f.Gesture = &kind
		if kind == tool.MarqueeSelect {
			r := it.Rect()
			f.Marquee = &Marquee{
				World: r,
				Viewport: e.viewport.WorldRectToViewportRect(viewport.Rect{
					Min: viewport.Point{X: r.Min.X, Y: r.Min.Y},
					Max: viewport.Point{X: r.Max.X, Y: r.Max.Y},
				}),
			}
		}
	}

	if a := sel.Action(); a != nil {
		f.Action = &ActionView{
			Kind:      a.Kind,
			Label:     a.Label(),
			LabelKind: a.LabelKind(),
			Shape:     a.Shape(),
			Color:     a.Color(),
		}
	}

	return f
}
