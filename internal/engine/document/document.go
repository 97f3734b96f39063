// Package document holds the markers, the board configuration and the
// selection of a fretboard diagram, and answers spatial queries over them.
//
// A Document is single-writer and not safe for concurrent use.
package document

import (
	"fmt"
	"slices"

	"github.com/dshills/fretmark/internal/engine/geometry"
)

// Document is the editable state of one diagram.
type Document struct {
	board     BoardConfig
	layout    *geometry.Layout
	markers   []*Marker
	byID      map[string]*Marker
	selection *Selection
}

// New creates an empty document for a board configuration.
func New(board BoardConfig) *Document {
	d := &Document{
		board: board.clone(),
		byID:  make(map[string]*Marker),
	}
	d.layout = d.board.Layout()
	d.selection = newSelection(d.Marker)
	return d
}

// Board returns the board configuration.
func (d *Document) Board() BoardConfig {
	return d.board.clone()
}

// SetBoard replaces the board configuration and re-derives the layout.
// Markers keep their grid positions.
func (d *Document) SetBoard(board BoardConfig) {
	if d.board.Equal(board) {
		return
	}
	d.board = board.clone()
	d.layout = d.board.Layout()
}

// Layout returns the geometry derived from the current board configuration.
// Callers must not keep it across SetBoard.
func (d *Document) Layout() *geometry.Layout {
	return d.layout
}

// Selection returns the selection.
func (d *Document) Selection() *Selection {
	return d.selection
}

// Entities returns all markers in document order.
func (d *Document) Entities() []*Marker {
	return slices.Clone(d.markers)
}

// Len returns the number of markers.
func (d *Document) Len() int {
	return len(d.markers)
}

// Marker returns the marker with the given id, or nil.
func (d *Document) Marker(id string) *Marker {
	return d.byID[id]
}

// EntitiesAt returns the markers whose effective position is pos.
func (d *Document) EntitiesAt(pos geometry.Position) []*Marker {
	var out []*Marker
	for _, m := range d.markers {
		if m.Position() == pos {
			out = append(out, m)
		}
	}
	return out
}

// FirstEntityAt returns the first marker whose effective position is pos.
func (d *Document) FirstEntityAt(pos geometry.Position) *Marker {
	for _, m := range d.markers {
		if m.Position() == pos {
			return m
		}
	}
	return nil
}

// EntitiesInRect returns the markers whose committed position lies within
// the world rectangle, edges included.
func (d *Document) EntitiesInRect(r geometry.Rect) []*Marker {
	var out []*Marker
	for _, m := range d.markers {
		p := m.Base()
		pt := geometry.Point{X: d.layout.FretToX(p.Fret), Y: d.layout.StringToY(p.String)}
		if r.Contains(pt) {
			out = append(out, m)
		}
	}
	return out
}

// AddMarker appends a marker at pos named "Marker N", N being the new count.
// Coinciding markers are allowed.
func (d *Document) AddMarker(pos geometry.Position) *Marker {
	m := NewMarker(fmt.Sprintf("Marker %d", len(d.markers)+1), pos)
	d.markers = append(d.markers, m)
	d.byID[m.ID()] = m
	return m
}

// DeleteEntities removes markers from the document and the selection.
// Unknown markers are ignored.
func (d *Document) DeleteEntities(markers ...*Marker) {
	for _, m := range markers {
		if m == nil || d.byID[m.ID()] == nil {
			continue
		}
		d.selection.Remove(m)
		delete(d.byID, m.ID())
		d.markers = slices.DeleteFunc(d.markers, func(x *Marker) bool {
			return x.ID() == m.ID()
		})
	}
	d.selection.prune()
}

// DeleteSelection removes every selected marker.
func (d *Document) DeleteSelection() {
	d.DeleteEntities(d.selection.Items()...)
}

// SelectAll selects every marker.
func (d *Document) SelectAll() {
	d.selection.Replace(d.markers...)
}
