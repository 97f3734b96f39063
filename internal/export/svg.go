package export

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/fretmark/internal/engine/document"
)

// WriteSVG renders the scene as an SVG document.
func WriteSVG(w io.Writer, s Scene) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	width, height := px(s.Width), px(s.Height)
	canvas.Startview(width, height, 0, 0, width, height)
	canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:%s", css(colorBackdrop)))

	for _, ln := range s.Frets {
		drawLineSVG(canvas, ln)
	}
	for _, d := range s.Inlays {
		canvas.Circle(px(d.X), px(d.Y), px(d.R), fmt.Sprintf("fill:%s", css(d.Color)))
	}
	for _, ln := range s.Strings {
		drawLineSVG(canvas, ln)
	}
	for _, t := range s.Labels {
		drawTextSVG(canvas, t)
	}
	for _, g := range s.Markers {
		drawGlyphSVG(canvas, g)
	}

	canvas.End()
	return ew.err
}

func drawLineSVG(canvas *svg.SVG, ln Line) {
	canvas.Line(px(ln.X1), px(ln.Y1), px(ln.X2), px(ln.Y2),
		fmt.Sprintf("stroke:%s;stroke-width:%g;stroke-linecap:round", css(ln.Color), ln.Width))
}

func drawTextSVG(canvas *svg.SVG, t Text) {
	anchor := "start"
	switch t.Anchor {
	case AnchorMiddle:
		anchor = "middle"
	case AnchorEnd:
		anchor = "end"
	}
	weight := ""
	if t.Bold {
		weight = ";font-weight:bold"
	}
	canvas.Text(px(t.X), px(t.Y), t.Value,
		fmt.Sprintf("fill:%s;font-size:%gpx;font-family:sans-serif;text-anchor:%s;dominant-baseline:middle%s",
			css(t.Color), t.Size, anchor, weight))
}

func drawGlyphSVG(canvas *svg.SVG, g Glyph) {
	style := fmt.Sprintf("fill:%s", css(g.Color))
	if g.Outline {
		style = fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", css(colorWhite), css(g.Color))
	}

	canvas.Group(fmt.Sprintf(`id="%s"`, g.ID))
	if g.Shape == document.ShapeSquare {
		hw := px(g.HalfWidth)
		canvas.Roundrect(px(g.X)-hw, px(g.Y)-hw, 2*hw, 2*hw, 2, 2, style)
	} else {
		canvas.Circle(px(g.X), px(g.Y), px(g.HalfWidth), style)
	}
	if g.Label != "" {
		drawTextSVG(canvas, Text{
			X: g.X, Y: g.Y + 1,
			Value: g.Label, Size: 10, Bold: true,
			Anchor: AnchorMiddle, Color: g.textColor(),
		})
	}
	canvas.Gend()
}

// px rounds a layout coordinate to the integer grid svgo draws on.
func px(v float64) int {
	return int(math.Round(v))
}

// errWriter records the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
