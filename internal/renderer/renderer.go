package renderer

import (
	"strings"
	"sync"
	"time"

	"github.com/dshills/fretmark/internal/engine"
	"github.com/dshills/fretmark/internal/engine/document"
	"github.com/dshills/fretmark/internal/export"
	"github.com/dshills/fretmark/internal/renderer/backend"
	"github.com/dshills/fretmark/internal/renderer/core"
	"github.com/dshills/fretmark/internal/renderer/statusline"
	"github.com/dshills/fretmark/internal/renderer/viewport"
)

// Theme holds the terminal colors of the board.
type Theme struct {
	Fret    core.Color
	String  core.Color
	Inlay   core.Color
	Text    core.Color
	Preview core.Color
	Marquee core.Color
	// Marker is used for markers with the default color, which would
	// otherwise vanish on a dark terminal.
	Marker core.Color
}

// DefaultTheme returns the board colors.
func DefaultTheme() Theme {
	return Theme{
		Fret:    core.ColorFromRGB(0xbc, 0xbb, 0xb5),
		String:  core.ColorFromRGB(0x82, 0x82, 0x7c),
		Inlay:   core.ColorFromRGB(0xe9, 0xe8, 0xe6),
		Text:    core.ColorFromRGB(0x8d, 0x8d, 0x86),
		Preview: core.ColorFromRGB(0x8d, 0x8d, 0x86),
		Marquee: core.ColorFromRGB(0x00, 0x90, 0xff),
		Marker:  core.ColorDefault,
	}
}

// Options configures the renderer.
type Options struct {
	MaxFPS int // Maximum frames per second, 0 for no limit
	Theme  Theme
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		MaxFPS: 60,
		Theme:  DefaultTheme(),
	}
}

// Renderer draws engine frames to a backend. Every frame is drawn in full.
type Renderer struct {
	mu sync.Mutex

	opts    Options
	backend backend.Backend
	status  *statusline.StatusLine

	// Frame timing
	lastFrame    time.Time
	minFrameTime time.Duration
	frameCount   uint64
}

// New creates a new renderer with the given backend and options.
func New(b backend.Backend, opts Options) *Renderer {
	r := &Renderer{
		opts:    opts,
		backend: b,
		status:  statusline.New(),
	}
	if opts.MaxFPS > 0 {
		r.minFrameTime = time.Second / time.Duration(opts.MaxFPS)
	}
	return r
}

// Status returns the status line, for posting messages.
func (r *Renderer) Status() *statusline.StatusLine {
	return r.status
}

// FrameCount returns the number of frames drawn.
func (r *Renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameCount
}

// Render draws f unless the previous frame was drawn too recently.
// It reports whether the frame was drawn.
func (r *Renderer) Render(f engine.Frame) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if now.Sub(r.lastFrame) < r.minFrameTime {
		return false
	}
	r.lastFrame = now
	r.render(f)
	return true
}

// RenderNow draws f immediately, ignoring frame rate limiting.
func (r *Renderer) RenderNow(f engine.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastFrame = time.Now()
	r.render(f)
}

func (r *Renderer) render(f engine.Frame) {
	width, height := r.backend.Size()
	cv := newCanvas(BoardArea(width, height))

	if f.Layout != nil {
		r.drawBoard(cv, f)
	}
	cv.flush(r.backend)

	if height > 0 {
		r.status.Resize(width)
		r.status.Update(statusState(f))
		r.status.Render(r.backend, height-1)
	}

	r.backend.Show()
	r.frameCount++
}

// cellOf maps a world point to the cell that displays it.
func cellOf(f engine.Frame, x, y float64) (int, int) {
	p := f.Transform.Apply(viewport.Point{X: x, Y: y})
	return ScreenToCell(p.X+f.ClientRect.Min.X, p.Y+f.ClientRect.Min.Y)
}

func (r *Renderer) drawBoard(cv *canvas, f engine.Frame) {
	th := r.opts.Theme
	scene := export.BuildScene(f)

	strStyle := core.NewStyle(th.String)
	for _, l := range scene.Strings {
		c1, row := cellOf(f, l.X1, l.Y1)
		c2, _ := cellOf(f, l.X2, l.Y2)
		cv.hline(row, c1, c2, strStyle)
	}

	fretStyle := core.NewStyle(th.Fret)
	for _, l := range scene.Frets {
		col, r1 := cellOf(f, l.X1, l.Y1)
		_, r2 := cellOf(f, l.X2, l.Y2)
		nut := l.Width >= 5
		style := fretStyle
		if nut {
			style = style.Bold()
		}
		cv.vline(col, r1, r2, nut, style)
	}

	inlayStyle := core.NewStyle(th.Inlay)
	for _, d := range scene.Inlays {
		col, row := cellOf(f, d.X, d.Y)
		cv.setIfEmpty(col, row, runeInlay, inlayStyle)
	}

	textStyle := core.NewStyle(th.Text)
	for _, t := range scene.Labels {
		col, row := cellOf(f, t.X, t.Y)
		cv.text(anchorCol(col, t.Value, t.Anchor), row, t.Value, textStyle)
	}

	if f.Preview != nil {
		p := f.Layout.PositionPoint(f.Preview.Position)
		col, row := cellOf(f, p.X, p.Y)
		cv.set(col, row, '○', core.NewStyle(th.Preview).Dim())
	}

	for i, g := range scene.Markers {
		r.drawMarker(cv, f, f.Markers[i], g)
	}

	if m := f.Marquee; m != nil {
		lo, hi := m.Viewport.Min, m.Viewport.Max
		c1, r1 := ScreenToCell(lo.X+f.ClientRect.Min.X, lo.Y+f.ClientRect.Min.Y)
		c2, r2 := ScreenToCell(hi.X+f.ClientRect.Min.X, hi.Y+f.ClientRect.Min.Y)
		cv.box(c1, r1, c2, r2, core.NewStyle(th.Marquee))
	}
}

// hoverLighten is how far a hovered marker is blended towards white.
const hoverLighten = 0.25

func (r *Renderer) drawMarker(cv *canvas, f engine.Frame, m engine.MarkerView, g export.Glyph) {
	fg := core.ColorFromRGBA(g.Color)
	if m.Style.Color == document.DefaultColor {
		fg = r.opts.Theme.Marker
	}
	style := core.NewStyle(fg).Bold()
	if m.Selected {
		style = style.Reverse()
	}
	if m.Hovered {
		style = style.WithForeground(fg.Lighten(hoverLighten)).Underline()
	}

	col, row := cellOf(f, g.X, g.Y)
	if g.Label != "" {
		cv.text(anchorCol(col, g.Label, export.AnchorMiddle), row, g.Label, style)
		return
	}
	cv.set(col, row, glyphRune(g), style)
}

// glyphRune returns the character for an unlabeled marker.
func glyphRune(g export.Glyph) rune {
	switch {
	case g.Shape == document.ShapeSquare && g.Outline:
		return '□'
	case g.Shape == document.ShapeSquare:
		return '■'
	case g.Outline:
		return '○'
	default:
		return '●'
	}
}

// anchorCol returns the first column of s when aligned at col.
func anchorCol(col int, s string, a export.Anchor) int {
	w := core.StringWidth(s)
	switch a {
	case export.AnchorEnd:
		return col - w + 1
	case export.AnchorMiddle:
		return col - (w-1)/2
	default:
		return col
	}
}

// statusState summarises f for the status line.
func statusState(f engine.Frame) statusline.State {
	s := statusline.State{
		Mode:     f.Mode.String(),
		Selected: len(f.Selected),
		Markers:  len(f.Markers),
		CanUndo:  f.CanUndo,
		CanRedo:  f.CanRedo,
	}
	if a := f.Action; a != nil {
		s.Action = describeAction(a)
	}
	return s
}

// describeAction formats the pending bulk action and its aggregate value.
func describeAction(a *engine.ActionView) string {
	switch a.Kind {
	case document.ActionSetLabel:
		var b strings.Builder
		b.WriteString("label: ")
		b.WriteString(a.LabelKind)
		if a.LabelKind == string(document.LabelManual) || a.LabelKind == document.Mixed {
			b.WriteString(" \"")
			b.WriteString(a.Label)
			b.WriteString("\"")
		}
		return b.String()
	case document.ActionSetShape:
		return "shape: " + a.Shape
	case document.ActionSetColor:
		return "color: " + a.Color
	default:
		return string(a.Kind)
	}
}
