package export

import (
	"io"
	"math"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/dshills/fretmark/internal/engine/document"
)

// WritePNG rasterizes the scene at the given scale (1 = one pixel per
// layout unit). Non-positive scales are treated as 1.
func WritePNG(w io.Writer, s Scene, scale float64) error {
	if scale <= 0 {
		scale = 1
	}

	dc := gg.NewContext(int(math.Ceil(s.Width*scale)), int(math.Ceil(s.Height*scale)))
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.Scale(scale, scale)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetLineCap(gg.LineCapRound)

	for _, ln := range s.Frets {
		drawLine(dc, ln)
	}
	for _, d := range s.Inlays {
		dc.SetColor(d.Color)
		dc.DrawCircle(d.X, d.Y, d.R)
		dc.Fill()
	}
	for _, ln := range s.Strings {
		drawLine(dc, ln)
	}
	for _, t := range s.Labels {
		drawText(dc, t)
	}
	for _, g := range s.Markers {
		drawGlyph(dc, g)
	}

	return dc.EncodePNG(w)
}

func drawLine(dc *gg.Context, ln Line) {
	dc.SetColor(ln.Color)
	dc.SetLineWidth(ln.Width)
	dc.DrawLine(ln.X1, ln.Y1, ln.X2, ln.Y2)
	dc.Stroke()
}

func drawText(dc *gg.Context, t Text) {
	ax := 0.0
	switch t.Anchor {
	case AnchorMiddle:
		ax = 0.5
	case AnchorEnd:
		ax = 1
	}
	dc.SetColor(t.Color)
	dc.DrawStringAnchored(t.Value, t.X, t.Y, ax, 0.5)
}

func drawGlyph(dc *gg.Context, g Glyph) {
	shape := func() {
		if g.Shape == document.ShapeSquare {
			dc.DrawRoundedRectangle(g.X-g.HalfWidth, g.Y-g.HalfWidth, 2*g.HalfWidth, 2*g.HalfWidth, 2)
		} else {
			dc.DrawCircle(g.X, g.Y, g.HalfWidth)
		}
	}

	if g.Outline {
		shape()
		dc.SetColor(colorWhite)
		dc.FillPreserve()
		dc.SetColor(g.Color)
		dc.SetLineWidth(2)
		dc.Stroke()
	} else {
		shape()
		dc.SetColor(g.Color)
		dc.Fill()
	}

	if g.Label != "" {
		drawText(dc, Text{X: g.X, Y: g.Y + 1, Value: g.Label, Anchor: AnchorMiddle, Color: g.textColor()})
	}
}
