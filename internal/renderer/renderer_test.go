package renderer

import (
	"strings"
	"testing"

	"github.com/dshills/fretmark/internal/engine"
	"github.com/dshills/fretmark/internal/engine/document"
	"github.com/dshills/fretmark/internal/engine/geometry"
	"github.com/dshills/fretmark/internal/export"
	"github.com/dshills/fretmark/internal/renderer/backend"
	"github.com/dshills/fretmark/internal/renderer/core"
	"github.com/dshills/fretmark/internal/renderer/statusline"
	"github.com/dshills/fretmark/internal/renderer/viewport"
)

const (
	testWidth  = 120
	testHeight = 26
)

func setup(t *testing.T) (*engine.Engine, *backend.NullBackend, *Renderer) {
	t.Helper()
	b := backend.NewNullBackend(testWidth, testHeight)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	e := engine.New(engine.WithClientRect(ClientRect(testWidth, testHeight)))
	e.FitView(viewport.UniformInsets(2))
	return e, b, New(b, DefaultOptions())
}

// markerCell returns the cell a grid position is drawn in.
func markerCell(e *engine.Engine, fret, str int) (int, int) {
	l := e.Layout()
	pt := l.PositionPoint(geometry.Position{Fret: fret, String: str})
	p := e.Viewport().WorldToScreen(pt.X, pt.Y)
	return ScreenToCell(p.X, p.Y)
}

func TestClientRect(t *testing.T) {
	r := ClientRect(80, 25)
	if r.Min != (viewport.Point{}) || r.Max.X != 80 || r.Max.Y != 48 {
		t.Errorf("ClientRect(80, 25) = %+v", r)
	}
	if r := ClientRect(10, 0); r.Max.Y != 0 {
		t.Errorf("ClientRect with no rows = %+v", r)
	}

	area := BoardArea(80, 25)
	if area.Width() != 80 || area.Height() != 24 {
		t.Errorf("BoardArea(80, 25) = %+v", area)
	}
}

func TestCellScreenRoundTrip(t *testing.T) {
	tests := []struct{ col, row int }{
		{0, 0}, {5, 3}, {79, 23},
	}
	for _, tt := range tests {
		x, y := CellToScreen(tt.col, tt.row)
		col, row := ScreenToCell(x, y)
		if col != tt.col || row != tt.row {
			t.Errorf("round trip of (%d, %d) gave (%d, %d)", tt.col, tt.row, col, row)
		}
	}
	if col, row := ScreenToCell(-0.5, -0.5); col != -1 || row != -1 {
		t.Errorf("negative point mapped to (%d, %d)", col, row)
	}
}

func TestRenderBoard(t *testing.T) {
	e, b, r := setup(t)
	r.RenderNow(e.Frame())

	if b.Shows() != 1 || r.FrameCount() != 1 {
		t.Fatalf("shows = %d, frames = %d", b.Shows(), r.FrameCount())
	}

	// Every string is drawn as a horizontal line
	strs := 0
	for row := 0; row < testHeight-1; row++ {
		if strings.Count(b.Row(row), string(runeHorizontal)) > 20 {
			strs++
		}
	}
	if strs != 6 {
		t.Errorf("found %d string rows, want 6", strs)
	}

	// The nut is drawn doubled
	col, row := markerCell(e, 0, 3)
	found := false
	for c := col; c < col+10; c++ {
		if b.GetCell(c, row).Rune == '╫' {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("nut crossing not found near (%d, %d): %q", col, row, b.Row(row))
	}

	// Fret numbers are drawn below the board for decorated frets
	l := e.Layout()
	p := e.Viewport().WorldToScreen(l.FretToX(3), l.Extent().Max.Y+20)
	_, numRow := ScreenToCell(p.X, p.Y)
	for _, n := range []string{"3", "5", "7", "9"} {
		if !strings.Contains(b.Row(numRow), n) {
			t.Errorf("fret number %s missing from %q", n, b.Row(numRow))
		}
	}

	status := b.Row(testHeight - 1)
	if !strings.Contains(status, "SELECT") || !strings.Contains(status, "0/0 selected") {
		t.Errorf("status line = %q", status)
	}
}

func TestRenderMarkers(t *testing.T) {
	e, b, r := setup(t)

	e.AddMarker(geometry.Position{Fret: 3, String: 2})
	e.AddMarker(geometry.Position{Fret: 5, String: 4})
	if err := e.SetShape(document.ShapeSquare); err != nil {
		t.Fatalf("SetShape failed: %v", err)
	}
	r.RenderNow(e.Frame())

	col, row := markerCell(e, 3, 2)
	if got := b.GetCell(col, row); got.Rune != '●' || got.Style.Attributes.Has(core.AttrReverse) {
		t.Errorf("unselected circle cell = %+v", got)
	}
	col, row = markerCell(e, 5, 4)
	got := b.GetCell(col, row)
	if got.Rune != '■' {
		t.Errorf("square cell rune = %q", got.Rune)
	}
	if !got.Style.Attributes.Has(core.AttrReverse) {
		t.Errorf("selected marker not reversed: %+v", got.Style)
	}

	status := b.Row(testHeight - 1)
	if !strings.Contains(status, "1/2 selected") || !strings.Contains(status, "shape: square") {
		t.Errorf("status line = %q", status)
	}
}

func TestRenderLabelAndColor(t *testing.T) {
	e, b, r := setup(t)

	e.AddMarker(geometry.Position{Fret: 7, String: 3})
	if err := e.SetLabel("R"); err != nil {
		t.Fatalf("SetLabel failed: %v", err)
	}
	if err := e.SetColor("#e54d2e"); err != nil {
		t.Fatalf("SetColor failed: %v", err)
	}
	r.RenderNow(e.Frame())

	col, row := markerCell(e, 7, 3)
	got := b.GetCell(col, row)
	if got.Rune != 'R' {
		t.Errorf("label cell rune = %q, row %q", got.Rune, b.Row(row))
	}
	if want := core.ColorFromRGB(0xe5, 0x4d, 0x2e); got.Style.Foreground != want {
		t.Errorf("label color = %v, want %v", got.Style.Foreground, want)
	}
}

func TestRenderMarquee(t *testing.T) {
	e, b, r := setup(t)

	// Drag from above the board to inside it
	x0, y0 := CellToScreen(10, 0)
	x1, y1 := CellToScreen(40, 8)
	e.Down(x0, y0, false)
	e.Move(x1, y1)

	f := e.Frame()
	if f.Marquee == nil {
		t.Fatal("expected marquee in frame")
	}
	r.RenderNow(f)

	if got := b.GetCell(10, 0).Rune; got != '┌' {
		t.Errorf("marquee corner = %q", got)
	}
	if got := b.GetCell(40, 8).Rune; got != '┘' {
		t.Errorf("marquee corner = %q", got)
	}
	e.Up()
}

func TestRenderRateLimit(t *testing.T) {
	e, _, _ := setup(t)
	b := backend.NewNullBackend(40, 10)
	b.Init()
	r := New(b, Options{MaxFPS: 1, Theme: DefaultTheme()})

	if !r.Render(e.Frame()) {
		t.Fatal("first frame not drawn")
	}
	if r.Render(e.Frame()) {
		t.Error("second frame drawn inside the frame interval")
	}
	r.RenderNow(e.Frame())
	if r.FrameCount() != 2 {
		t.Errorf("FrameCount() = %d, want 2", r.FrameCount())
	}
}

func TestRenderStatusMessage(t *testing.T) {
	e, b, r := setup(t)
	r.Status().SetMessage("wrote board.svg", statusline.MessageInfo)
	r.RenderNow(e.Frame())

	if row := b.Row(testHeight - 1); !strings.HasPrefix(row, "wrote board.svg") {
		t.Errorf("status line = %q", row)
	}
}

func TestJunction(t *testing.T) {
	tests := []struct {
		double, top, bottom bool
		want                rune
	}{
		{false, false, false, '┼'},
		{false, true, false, '┬'},
		{false, false, true, '┴'},
		{true, false, false, '╫'},
		{true, true, false, '╥'},
		{true, false, true, '╨'},
		{false, true, true, '─'},
	}
	for _, tt := range tests {
		if got := junction(tt.double, tt.top, tt.bottom); got != tt.want {
			t.Errorf("junction(%v, %v, %v) = %q, want %q", tt.double, tt.top, tt.bottom, got, tt.want)
		}
	}
}

func TestCanvasClipping(t *testing.T) {
	cv := newCanvas(core.RectFromSize(0, 0, 3, 4))
	style := core.DefaultStyle()

	cv.hline(1, -5, 10, style)
	cv.vline(2, -1, 5, false, style)
	cv.text(3, 0, "xyz", style)
	cv.set(9, 9, 'q', style)

	b := backend.NewNullBackend(4, 3)
	b.Init()
	cv.flush(b)

	want := []string{"  │x", "──┼─", "  │ "}
	for row, w := range want {
		if got := b.Row(row); got != w {
			t.Errorf("row %d = %q, want %q", row, got, w)
		}
	}
}

func TestGlyphRune(t *testing.T) {
	tests := []struct {
		shape   document.Shape
		outline bool
		want    rune
	}{
		{document.ShapeCircle, false, '●'},
		{document.ShapeCircle, true, '○'},
		{document.ShapeSquare, false, '■'},
		{document.ShapeSquare, true, '□'},
	}
	for _, tt := range tests {
		g := export.Glyph{Shape: tt.shape, Outline: tt.outline}
		if got := glyphRune(g); got != tt.want {
			t.Errorf("glyphRune(%s, %v) = %q, want %q", tt.shape, tt.outline, got, tt.want)
		}
	}
}

func TestAnchorCol(t *testing.T) {
	tests := []struct {
		s    string
		a    export.Anchor
		want int
	}{
		{"12", export.AnchorStart, 10},
		{"12", export.AnchorEnd, 9},
		{"12", export.AnchorMiddle, 10},
		{"123", export.AnchorMiddle, 9},
	}
	for _, tt := range tests {
		if got := anchorCol(10, tt.s, tt.a); got != tt.want {
			t.Errorf("anchorCol(10, %q, %d) = %d, want %d", tt.s, tt.a, got, tt.want)
		}
	}
}

func TestDescribeAction(t *testing.T) {
	tests := []struct {
		a    engine.ActionView
		want string
	}{
		{engine.ActionView{Kind: document.ActionSetShape, Shape: "circle"}, "shape: circle"},
		{engine.ActionView{Kind: document.ActionSetColor, Color: document.Mixed}, "color: mixed"},
		{engine.ActionView{Kind: document.ActionSetLabel, LabelKind: "manual", Label: "R"}, `label: manual "R"`},
		{engine.ActionView{Kind: document.ActionSetLabel, LabelKind: "note-name"}, "label: note-name"},
	}
	for _, tt := range tests {
		if got := describeAction(&tt.a); got != tt.want {
			t.Errorf("describeAction(%+v) = %q, want %q", tt.a, got, tt.want)
		}
	}
}
