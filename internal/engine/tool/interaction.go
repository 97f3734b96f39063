package tool

import (
	"slices"

	"github.com/dshills/fretmark/internal/engine/document"
	"github.com/dshills/fretmark/internal/engine/geometry"
)

// Kind tags the variant of an Interaction.
type Kind int

const (
	// Translate drags the selected markers.
	Translate Kind = iota
	// MarqueeSelect selects the markers inside a dragged rectangle.
	MarqueeSelect
	// CreateMarker places a new marker and drags it.
	CreateMarker
)

func (k Kind) String() string {
	switch k {
	case Translate:
		return "translate"
	case MarqueeSelect:
		return "marquee-select"
	case CreateMarker:
		return "create-marker"
	default:
		return "unknown"
	}
}

// Interaction is the transient state of one gesture. Points are in world
// space. Targets holds marker ids; ids of deleted markers are skipped.
type Interaction struct {
	Kind    Kind
	Start   geometry.Point
	Current geometry.Point
	Targets []string
	// Additive marks a shift-marquee. Targets starts as the selection held
	// at down and only grows; markers the rectangle leaves stay selected.
	Additive bool
}

// Rect returns the bounding box of the start and current points.
func (it *Interaction) Rect() geometry.Rect {
	return geometry.RectFromPoints(it.Start, it.Current)
}

// Delta returns the grid offset between the positions nearest to the start
// and current points.
func (it *Interaction) Delta(l *geometry.Layout) geometry.Position {
	from, ok1 := l.FindNearestPosition(it.Start.X, it.Start.Y)
	to, ok2 := l.FindNearestPosition(it.Current.X, it.Current.Y)
	if !ok1 || !ok2 {
		return geometry.Position{}
	}
	return to.Position.Sub(from.Position)
}

// HasMoved reports whether the gesture resolved to a different position
// than where it started.
func (it *Interaction) HasMoved(l *geometry.Layout) bool {
	from, ok1 := l.FindNearestPosition(it.Start.X, it.Start.Y)
	to, ok2 := l.FindNearestPosition(it.Current.X, it.Current.Y)
	if !ok1 || !ok2 {
		return it.Start != it.Current
	}
	return from.Position != to.Position
}

func (it *Interaction) clone() *Interaction {
	c := *it
	c.Targets = slices.Clone(it.Targets)
	return &c
}

func (it *Interaction) markers(doc *document.Document) []*document.Marker {
	out := make([]*document.Marker, 0, len(it.Targets))
	for _, id := range it.Targets {
		if m := doc.Marker(id); m != nil {
			out = append(out, m)
		}
	}
	return out
}

func (it *Interaction) setTargets(markers []*document.Marker) {
	it.Targets = it.Targets[:0]
	it.addTargets(markers)
}

func (it *Interaction) addTargets(markers []*document.Marker) {
	for _, m := range markers {
		if !slices.Contains(it.Targets, m.ID()) {
			it.Targets = append(it.Targets, m.ID())
		}
	}
}

// update applies a pointer move to the document.
func (it *Interaction) update(doc *document.Document, p geometry.Point) {
	it.Current = p
	switch it.Kind {
	case Translate, CreateMarker:
		delta := it.Delta(doc.Layout())
		for _, m := range it.markers(doc) {
			m.SetTransform(delta)
		}
	case MarqueeSelect:
		it.selectInRect(doc)
		doc.Selection().Replace(it.markers(doc)...)
	}
}

// commit makes the interaction's effect permanent.
func (it *Interaction) commit(doc *document.Document) {
	switch it.Kind {
	case Translate:
		for _, m := range it.markers(doc) {
			m.CommitTransform()
		}
	case CreateMarker:
		targets := it.markers(doc)
		for _, m := range targets {
			m.CommitTransform()
		}
		doc.Selection().Replace(targets...)
	case MarqueeSelect:
		it.selectInRect(doc)
		doc.Selection().Replace(it.markers(doc)...)
	}
}

func (it *Interaction) selectInRect(doc *document.Document) {
	found := doc.EntitiesInRect(it.Rect())
	if it.Additive {
		it.addTargets(found)
	} else {
		it.setTargets(found)
	}
}
