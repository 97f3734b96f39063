package document

import (
	"slices"

	"github.com/dshills/fretmark/internal/engine/geometry"
)

// MarkerState is the committed state of one marker.
type MarkerState struct {
	ID       string
	Name     string
	Position geometry.Position
	Style    Style
}

// Snapshot is a deep copy of the committed document state. Pending
// transforms are folded into positions.
type Snapshot struct {
	Board    BoardConfig
	Markers  []MarkerState
	Selected []string
	Action   ActionKind
}

// Snapshot captures the current state.
func (d *Document) Snapshot() Snapshot {
	s := Snapshot{
		Board:    d.board.clone(),
		Markers:  make([]MarkerState, len(d.markers)),
		Selected: d.selection.IDs(),
	}
	for i, m := range d.markers {
		s.Markers[i] = MarkerState{
			ID:       m.id,
			Name:     m.name,
			Position: m.Position(),
			Style:    m.style,
		}
	}
	if a := d.selection.Action(); a != nil {
		s.Action = a.Kind
	}
	return s
}

// Restore replaces the document state with a snapshot. Markers that exist
// in both keep their identity; pending transforms are reset.
func (d *Document) Restore(s Snapshot) {
	d.SetBoard(s.Board)

	markers := make([]*Marker, len(s.Markers))
	byID := make(map[string]*Marker, len(s.Markers))
	for i, ms := range s.Markers {
		m := d.byID[ms.ID]
		if m == nil {
			m = &Marker{id: ms.ID}
		}
		m.name = ms.Name
		m.base = ms.Position
		m.pending = geometry.Position{}
		m.style = ms.Style
		markers[i] = m
		byID[m.id] = m
	}
	d.markers = markers
	d.byID = byID

	d.selection.restore(s.Selected, s.Action)
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.Board.Equal(o.Board) &&
		slices.Equal(s.Markers, o.Markers) &&
		slices.Equal(s.Selected, o.Selected) &&
		s.Action == o.Action
}
