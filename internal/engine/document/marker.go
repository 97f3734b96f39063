package document

import (
	"github.com/google/uuid"

	"github.com/dshills/fretmark/internal/engine/geometry"
)

// LabelKind selects where a marker's label text comes from.
type LabelKind string

const (
	// LabelManual displays the label text set by the user.
	LabelManual LabelKind = "manual"
	// LabelNoteName displays the name of the note under the marker.
	LabelNoteName LabelKind = "note-name"
)

// Shape is the outline drawn for a marker.
type Shape string

const (
	ShapeCircle Shape = "circle"
	ShapeSquare Shape = "square"
)

// DefaultColor is the color of a new marker.
const DefaultColor = "#000"

// Style holds the visual attributes of a marker.
type Style struct {
	Label     string
	LabelKind LabelKind
	Shape     Shape
	Color     string
	Outline   bool
}

// DefaultStyle returns the style of a new marker.
func DefaultStyle() Style {
	return Style{
		LabelKind: LabelManual,
		Shape:     ShapeCircle,
		Color:     DefaultColor,
	}
}

// Marker is a styled point placed on the fretboard grid.
//
// The effective position is the committed base position plus a pending
// transform that is non-zero only while a drag is in progress.
type Marker struct {
	id      string
	name    string
	base    geometry.Position
	pending geometry.Position
	style   Style
}

// NewMarker creates a marker with a fresh id and the default style.
func NewMarker(name string, pos geometry.Position) *Marker {
	return &Marker{
		id:    uuid.NewString(),
		name:  name,
		base:  pos,
		style: DefaultStyle(),
	}
}

// ID returns the stable identifier.
func (m *Marker) ID() string { return m.id }

// Name returns the display name.
func (m *Marker) Name() string { return m.name }

// Base returns the committed position.
func (m *Marker) Base() geometry.Position { return m.base }

// Pending returns the uncommitted offset.
func (m *Marker) Pending() geometry.Position { return m.pending }

// Position returns the effective position.
func (m *Marker) Position() geometry.Position {
	return m.base.Add(m.pending)
}

// SetTransform replaces the pending offset.
func (m *Marker) SetTransform(delta geometry.Position) {
	m.pending = delta
}

// CommitTransform folds the pending offset into the base position.
// Committing twice is a no-op.
func (m *Marker) CommitTransform() {
	m.base = m.base.Add(m.pending)
	m.pending = geometry.Position{}
}

// Style returns the visual attributes.
func (m *Marker) Style() Style { return m.style }

// SetLabel sets the custom label text.
func (m *Marker) SetLabel(label string) { m.style.Label = label }

// SetLabelKind chooses between the custom label and the note name.
func (m *Marker) SetLabelKind(k LabelKind) { m.style.LabelKind = k }

// SetShape sets the marker outline shape.
func (m *Marker) SetShape(s Shape) { m.style.Shape = s }

// SetColor sets the fill color as a hex or palette name.
func (m *Marker) SetColor(color string) { m.style.Color = color }

// SetOutline draws the marker hollow when true.
func (m *Marker) SetOutline(outline bool) { m.style.Outline = outline }

// DisplayLabel returns the text drawn inside the marker. Note-name markers
// show the pitch class at their effective position, or nothing when the
// position is off the board.
func (m *Marker) DisplayLabel(board *geometry.Board) string {
	if m.style.LabelKind != LabelNoteName {
		return m.style.Label
	}
	if board == nil {
		return ""
	}
	pos := m.Position()
	pitch, ok := board.NoteAt(pos.String, pos.Fret)
	if !ok {
		return ""
	}
	return pitch.Class().Name()
}
