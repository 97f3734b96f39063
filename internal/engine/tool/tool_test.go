package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/fretmark/internal/engine/document"
	"github.com/dshills/fretmark/internal/engine/geometry"
	"github.com/dshills/fretmark/internal/engine/history"
)

type fixture struct {
	doc     *document.Document
	history *history.History
	tool    *Tool
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	doc := document.New(document.DefaultBoard())
	h := history.NewHistory(doc, 100)
	return &fixture{doc: doc, history: h, tool: New(doc, h, opts...)}
}

// at returns the world point over a grid position.
func (f *fixture) at(fret, str int) geometry.Point {
	l := f.doc.Layout()
	return geometry.Point{X: l.CenterX(fret), Y: l.StringToY(str)}
}

func (f *fixture) click(p geometry.Point, shift bool) {
	f.tool.Down(p, shift)
	f.tool.Up()
}

func (f *fixture) drag(from, to geometry.Point, shift bool) {
	f.tool.Down(from, shift)
	f.tool.Move(to)
	f.tool.Up()
}

func (f *fixture) selected() []*document.Marker {
	return f.doc.Selection().Items()
}

func pos(fret, str int) geometry.Position {
	return geometry.Position{Fret: fret, String: str}
}

func TestCreateMarkerClick(t *testing.T) {
	f := newFixture(t, WithMode(ModeCreate))
	l := f.doc.Layout()

	f.click(geometry.Point{X: l.FingerX(3), Y: l.StringToY(3)}, false)

	markers := f.doc.Entities()
	require.Len(t, markers, 1)
	assert.Equal(t, pos(3, 3), markers[0].Base())
	assert.Equal(t, "Marker 1", markers[0].Name())
	assert.Equal(t, markers, f.selected())
	assert.False(t, f.tool.Active())
	assert.Equal(t, 1, f.history.UndoCount())
}

func TestCreateMarkerDragThenUndo(t *testing.T) {
	f := newFixture(t, WithMode(ModeCreate))

	f.tool.Down(f.at(3, 3), false)
	f.tool.Move(f.at(4, 3))
	f.tool.Move(f.at(5, 4))

	markers := f.doc.Entities()
	require.Len(t, markers, 1)
	assert.Equal(t, pos(5, 4), markers[0].Position())
	assert.Equal(t, pos(3, 3), markers[0].Base(), "not committed before up")

	f.tool.Up()
	assert.Equal(t, pos(5, 4), markers[0].Base())
	assert.Equal(t, pos(0, 0), markers[0].Pending())

	require.NoError(t, f.history.Undo())
	assert.Zero(t, f.doc.Len(), "create and drag undo as one step")
}

func TestCreateOutsideBoard(t *testing.T) {
	f := newFixture(t, WithMode(ModeCreate))

	f.tool.Down(geometry.Point{X: -100, Y: -100}, false)
	assert.True(t, f.tool.Active())
	assert.Nil(t, f.tool.Interaction())
	f.tool.Move(f.at(3, 3))
	f.tool.Up()

	assert.Zero(t, f.doc.Len())
	assert.False(t, f.history.CanUndo())
}

func TestMarqueeSelectsOnlyEnclosedMarker(t *testing.T) {
	f := newFixture(t)
	a := f.doc.AddMarker(pos(2, 2))
	f.doc.AddMarker(pos(5, 5))
	l := f.doc.Layout()

	x, y := l.FretToX(2), l.StringToY(2)
	start := geometry.Point{X: x - 5, Y: l.Extent().Min.Y - 4}
	end := geometry.Point{X: x + 5, Y: y + 5}

	f.tool.Down(start, false)
	require.NotNil(t, f.tool.Interaction())
	assert.Equal(t, MarqueeSelect, f.tool.Interaction().Kind)

	f.tool.Move(end)
	assert.Equal(t, []*document.Marker{a}, f.selected(), "selection updates live")

	f.tool.Up()
	assert.Equal(t, []*document.Marker{a}, f.selected())
}

func TestMarqueeReplaceAndAdditive(t *testing.T) {
	f := newFixture(t)
	a := f.doc.AddMarker(pos(2, 2))
	b := f.doc.AddMarker(pos(7, 5))
	l := f.doc.Layout()
	f.doc.Selection().Replace(b)

	around := func(m *document.Marker) (geometry.Point, geometry.Point) {
		p := m.Base()
		x, y := l.FretToX(p.Fret), l.StringToY(p.String)
		return geometry.Point{X: x - 3, Y: y - 3}, geometry.Point{X: x + 3, Y: y + 3}
	}

	// Start outside the board so the down never lands on a marker.
	from := geometry.Point{X: 0, Y: 0}
	_, to := around(a)
	f.drag(from, to, true)
	assert.ElementsMatch(t, []*document.Marker{a, b}, f.selected(), "shift marquee adds")

	f.drag(from, to, false)
	assert.Equal(t, []*document.Marker{a}, f.selected(), "plain marquee replaces")
}

func TestClickEmptySpaceDeselects(t *testing.T) {
	f := newFixture(t)
	a := f.doc.AddMarker(pos(2, 2))
	f.doc.Selection().Replace(a)

	f.click(f.at(6, 4), false)
	assert.True(t, f.doc.Selection().IsEmpty())

	f.doc.Selection().Replace(a)
	f.click(geometry.Point{X: -50, Y: -50}, false)
	assert.True(t, f.doc.Selection().IsEmpty(), "outside the board too")
}

func TestShiftClickToggles(t *testing.T) {
	f := newFixture(t)
	a := f.doc.AddMarker(pos(2, 2))
	b := f.doc.AddMarker(pos(5, 5))

	f.click(f.at(2, 2), false)
	assert.Equal(t, []*document.Marker{a}, f.selected())

	f.click(f.at(5, 5), true)
	assert.Equal(t, []*document.Marker{a, b}, f.selected())

	f.click(f.at(2, 2), true)
	assert.Equal(t, []*document.Marker{b}, f.selected())
}

func TestClickCollapsesSelection(t *testing.T) {
	f := newFixture(t)
	a := f.doc.AddMarker(pos(2, 2))
	b := f.doc.AddMarker(pos(5, 5))
	f.doc.SelectAll()

	f.tool.Down(f.at(5, 5), false)
	require.NotNil(t, f.tool.Interaction())
	assert.ElementsMatch(t, []string{a.ID(), b.ID()}, f.tool.Interaction().Targets,
		"drag binds the whole selection")
	f.tool.Up()

	assert.Equal(t, []*document.Marker{b}, f.selected())
}

func TestDragMovesWholeSelection(t *testing.T) {
	f := newFixture(t)
	a := f.doc.AddMarker(pos(2, 2))
	b := f.doc.AddMarker(pos(5, 5))
	f.doc.SelectAll()

	f.drag(f.at(2, 2), f.at(3, 1), false)

	assert.Equal(t, pos(3, 1), a.Base())
	assert.Equal(t, pos(6, 4), b.Base())
	assert.ElementsMatch(t, []*document.Marker{a, b}, f.selected(), "a real drag keeps the selection")
}

func TestDragUndoesInOneStep(t *testing.T) {
	f := newFixture(t)
	a := f.doc.AddMarker(pos(2, 3))
	f.doc.Selection().Replace(a)

	f.tool.Down(f.at(2, 3), false)
	f.tool.Move(f.at(3, 3))
	f.tool.Move(f.at(4, 3))
	f.tool.Move(f.at(4, 3))
	f.tool.Up()
	require.Equal(t, pos(4, 3), a.Base())
	require.Equal(t, 1, f.history.UndoCount())

	require.NoError(t, f.history.Undo())
	assert.Equal(t, pos(2, 3), a.Base())
	assert.Equal(t, pos(2, 3), a.Position())
	assert.False(t, f.history.CanUndo())
}

func TestSecondDownIgnored(t *testing.T) {
	f := newFixture(t)
	a := f.doc.AddMarker(pos(2, 3))

	f.tool.Down(f.at(2, 3), false)
	before := f.tool.Interaction()
	f.tool.Down(f.at(7, 1), true)

	after := f.tool.Interaction()
	require.NotNil(t, after)
	assert.Equal(t, before.Kind, after.Kind)
	assert.Equal(t, before.Start, after.Start)

	f.tool.Move(f.at(3, 3))
	f.tool.Up()
	assert.Equal(t, pos(3, 3), a.Base())
	assert.Equal(t, 1, f.history.UndoCount())
	assert.False(t, f.history.IsGrouping())
}

func TestGestureFrozenAtDown(t *testing.T) {
	f := newFixture(t)
	a := f.doc.AddMarker(pos(2, 3))
	f.doc.Selection().Replace(a)

	// Starts outside the board: a marquee, even though it ends on a marker.
	f.drag(geometry.Point{X: -10, Y: -10}, f.at(8, 6), false)
	assert.Equal(t, pos(2, 3), a.Base())
}

func TestHoverAndPreview(t *testing.T) {
	f := newFixture(t)
	a := f.doc.AddMarker(pos(2, 3))

	f.tool.Move(f.at(2, 3))
	assert.Same(t, a, f.tool.Hovered())
	_, ok := f.tool.Preview()
	assert.False(t, ok)

	f.tool.Move(f.at(4, 1))
	assert.Nil(t, f.tool.Hovered())
	pl, ok := f.tool.Preview()
	require.True(t, ok)
	assert.Equal(t, pos(4, 1), pl.Position)

	f.tool.Move(geometry.Point{X: -10, Y: -10})
	assert.Nil(t, f.tool.Hovered())
	_, ok = f.tool.Preview()
	assert.False(t, ok)

	f.tool.Move(f.at(2, 3))
	f.tool.Down(f.at(2, 3), false)
	assert.Nil(t, f.tool.Hovered(), "down clears hover")
	f.tool.Up()
}

func TestSetModeFinishesGesture(t *testing.T) {
	f := newFixture(t, WithMode(ModeCreate))

	f.tool.Down(f.at(3, 3), false)
	f.tool.Move(f.at(4, 3))
	f.tool.SetMode(ModeSelect)

	assert.False(t, f.tool.Active())
	assert.Equal(t, ModeSelect, f.tool.Mode())
	require.Equal(t, 1, f.doc.Len())
	assert.Equal(t, pos(4, 3), f.doc.Entities()[0].Base())
	assert.False(t, f.history.IsGrouping())
}

func TestResetCancelsGroup(t *testing.T) {
	f := newFixture(t)
	f.doc.AddMarker(pos(2, 3))

	f.tool.Down(f.at(2, 3), false)
	f.tool.Reset()

	assert.False(t, f.tool.Active())
	assert.False(t, f.history.IsGrouping())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Create")
	require.NoError(t, err)
	assert.Equal(t, ModeCreate, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeSelect, m)

	_, err = ParseMode("lasso")
	assert.ErrorIs(t, err, ErrUnknownMode)

	assert.Equal(t, "select", ModeSelect.String())
	assert.Equal(t, "marquee-select", MarqueeSelect.String())
}
