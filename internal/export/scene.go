package export

import (
	"image/color"
	"math"
	"strconv"

	"github.com/dshills/fretmark/internal/engine"
	"github.com/dshills/fretmark/internal/engine/document"
	"github.com/dshills/fretmark/internal/engine/geometry"
)

// Anchor is the horizontal alignment of a text.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Line is a stroked segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          color.RGBA
}

// Dot is a filled circle.
type Dot struct {
	X, Y, R float64
	Color   color.RGBA
}

// Text is a single-line label centered vertically on Y.
type Text struct {
	X, Y   float64
	Value  string
	Size   float64
	Bold   bool
	Anchor Anchor
	Color  color.RGBA
}

// Glyph is a drawn marker.
type Glyph struct {
	ID        string
	X, Y      float64
	HalfWidth float64
	Shape     document.Shape
	Outline   bool
	Color     color.RGBA
	Label     string
}

// Scene is a static drawing of a board and its markers in layout units.
type Scene struct {
	Width, Height float64
	Frets         []Line
	Strings       []Line
	Inlays        []Dot
	Labels        []Text
	Markers       []Glyph
}

// BuildScene lays out the board of f and its markers. The viewport,
// selection and hover state of f are ignored.
func BuildScene(f engine.Frame) Scene {
	l := f.Layout
	b := l.Board()
	ext := l.Extent()

	s := Scene{Width: l.TotalWidth(), Height: l.TotalHeight()}

	for fret := b.MinFret(); fret <= b.MaxFret(); fret++ {
		w := 3.0
		if fret == 0 {
			w = 5
		}
		x := l.FretToX(fret)
		s.Frets = append(s.Frets, Line{X1: x, Y1: ext.Min.Y, X2: x, Y2: ext.Max.Y, Width: w, Color: colorFret})
	}

	s.Inlays = inlays(l)

	x1 := ext.Min.X
	if b.MinFret() == 0 {
		x1 -= 2.5
	}
	for str := 1; str <= b.NumStrings(); str++ {
		y := l.StringToY(str)
		s.Strings = append(s.Strings, Line{
			X1: x1, Y1: y, X2: ext.Max.X, Y2: y,
			Width: 1.5 + float64(str)/4,
			Color: colorString,
		})
	}

	opts := l.Options()
	if opts.ShowStringNames {
		for str := 1; str <= b.NumStrings(); str++ {
			p, _ := b.OpenPitch(str)
			s.Labels = append(s.Labels, Text{
				X: ext.Min.X - 12, Y: l.StringToY(str),
				Value: p.Class().Letter(), Size: 10,
				Anchor: AnchorEnd, Color: colorText,
			})
		}
	}
	if opts.ShowFretNumbers {
		for _, fret := range fretNumbers(b) {
			s.Labels = append(s.Labels, Text{
				X: l.FretToX(fret), Y: ext.Max.Y + 20,
				Value: strconv.Itoa(fret), Size: 12,
				Anchor: AnchorMiddle, Color: colorText,
			})
		}
	}

	for _, m := range f.Markers {
		hw := 12.0
		if m.Style.Outline {
			hw = 11
		}
		s.Markers = append(s.Markers, Glyph{
			ID:        m.ID,
			X:         m.Point.X,
			Y:         m.Point.Y,
			HalfWidth: hw,
			Shape:     m.Style.Shape,
			Outline:   m.Style.Outline,
			Color:     markerColor(m.Style.Color),
			Label:     m.Label,
		})
	}

	return s
}

// octaveInlayFrac places the double inlay dots across the strings. On six
// strings it falls between strings 2 and 3 and between 4 and 5.
const octaveInlayFrac = 0.3

// inlays places the dot markers between fret lines. The first visible
// fret never gets one since its cell lies outside the board.
func inlays(l *geometry.Layout) []Dot {
	b := l.Board()
	size := math.Min((l.StringToY(2)-l.StringToY(1))/2-2, 4)
	if b.NumStrings() < 2 || size <= 0 {
		return nil
	}

	inCell := func(fret int) bool { return fret > b.MinFret() && fret <= b.MaxFret() }
	cx := func(fret int) float64 { return (l.FretToX(fret) + l.FretToX(fret-1)) / 2 }

	top, bottom := l.StringToY(1), l.StringToY(b.NumStrings())
	across := func(frac float64) float64 { return top + (bottom-top)*frac }

	var dots []Dot
	mid := across(0.5)
	for _, fret := range b.SecondaryMarkerFrets() {
		if inCell(fret) {
			dots = append(dots, Dot{X: cx(fret), Y: mid, R: size, Color: colorInlay})
		}
	}
	for _, fret := range b.OctaveMarkerFrets() {
		if inCell(fret) {
			dots = append(dots,
				Dot{X: cx(fret), Y: across(octaveInlayFrac), R: size, Color: colorInlay},
				Dot{X: cx(fret), Y: across(1 - octaveInlayFrac), R: size, Color: colorInlay},
			)
		}
	}
	return dots
}

// fretNumbers returns the visible decorated frets in drawing order.
func fretNumbers(b *geometry.Board) []int {
	return append(b.OctaveMarkerFrets(), b.SecondaryMarkerFrets()...)
}

// textColor is the label color drawn on top of a glyph.
func (g Glyph) textColor() color.RGBA {
	if g.Outline {
		return g.Color
	}
	return colorWhite
}
