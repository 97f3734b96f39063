package geometry

import "math"

// Layout constants in world units.
const (
	StringLength = 1400.0
	TotalHeight  = 200.0
	Margin       = 16.0
	LabelMargin  = 32.0
	StringInset  = 12.0
	FretPadding  = 8.0

	// fretRatio is the share of the remaining string length each fret covers.
	fretRatio = 17.817

	// fingerRatio places a finger between two fret lines.
	fingerRatio = 0.66
)

// Point is a location in layout space.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in layout space.
type Rect struct {
	Min, Max Point
}

// RectFromPoints returns the bounding box of two corners.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		Min: Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Width returns the horizontal size.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical size.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Options are display flags that change the margins.
type Options struct {
	ShowFretNumbers bool
	ShowStringNames bool
}

// Layout positions a board in layout space.
// A Layout must be created with NewLayout; the zero value panics on use.
type Layout struct {
	board   *Board
	opts    Options
	margins struct{ top, right, bottom, left float64 }
	padL    float64
	padR    float64
	width   float64
	extent  Rect
	pMin    float64
	pMax    float64
	index   *Index
}

// FretProportion returns the share of the string length between the nut and
// fret n. It is zero for n <= 0 and approaches but never reaches 1.
func FretProportion(n int) float64 {
	p := 0.0
	for i := 1; i <= n; i++ {
		p += (1 - p) / fretRatio
	}
	return p
}

// NewLayout derives the layout of a board and builds its nearest-position index.
func NewLayout(board *Board, opts Options) *Layout {
	l := &Layout{board: board, opts: opts}

	l.margins.top = Margin
	l.margins.right = Margin
	l.margins.left = Margin
	if opts.ShowStringNames {
		l.margins.left = LabelMargin
	}
	l.margins.bottom = Margin
	if opts.ShowFretNumbers {
		l.margins.bottom = LabelMargin
	}

	if board.MinFret() != 0 {
		l.padL = FretPadding
	}
	if board.MaxFret() != TotalFretCount {
		l.padR = FretPadding
	}

	l.pMin = FretProportion(board.MinFret())
	l.pMax = FretProportion(board.MaxFret())
	l.width = StringLength*(l.pMax-l.pMin) +
		l.margins.left + l.margins.right + l.padL + l.padR

	l.extent = Rect{
		Min: Point{X: l.margins.left, Y: l.margins.top},
		Max: Point{X: l.width - l.margins.right, Y: TotalHeight - l.margins.bottom},
	}

	l.index = newIndex(l, board.AllPlacements())
	return l
}

func (l *Layout) mustReady() {
	if l == nil || l.board == nil {
		panic("geometry: layout used before board configuration was set")
	}
}

// Board returns the board this layout was derived from.
func (l *Layout) Board() *Board {
	l.mustReady()
	return l.board
}

// Options returns the display flags.
func (l *Layout) Options() Options {
	l.mustReady()
	return l.opts
}

// TotalWidth returns the width of the whole drawing including margins.
func (l *Layout) TotalWidth() float64 {
	l.mustReady()
	return l.width
}

// TotalHeight returns the height of the whole drawing including margins.
func (l *Layout) TotalHeight() float64 {
	l.mustReady()
	return TotalHeight
}

// Extent returns the drawable board rectangle, margins excluded.
func (l *Layout) Extent() Rect {
	l.mustReady()
	return l.extent
}

// FretToX returns the x coordinate of a fret line.
func (l *Layout) FretToX(fret int) float64 {
	l.mustReady()
	x0 := l.extent.Min.X + l.padL
	x1 := l.extent.Max.X - l.padR
	if l.pMax == l.pMin {
		return x0
	}
	t := (FretProportion(fret) - l.pMin) / (l.pMax - l.pMin)
	return x0 + t*(x1-x0)
}

// FingerX returns the x coordinate where a finger presses behind a fret.
func (l *Layout) FingerX(fret int) float64 {
	l.mustReady()
	if fret == l.board.MinFret() {
		return l.FretToX(fret)
	}
	prev := l.FretToX(fret - 1)
	return prev + fingerRatio*(l.FretToX(fret)-prev)
}

// CenterX returns the x coordinate of the middle of a fret cell.
func (l *Layout) CenterX(fret int) float64 {
	l.mustReady()
	if fret == l.board.MinFret() {
		return l.FretToX(fret)
	}
	return (l.FretToX(fret-1) + l.FretToX(fret)) / 2
}

// StringToY returns the y coordinate of a string.
func (l *Layout) StringToY(str int) float64 {
	l.mustReady()
	y0 := l.extent.Min.Y + StringInset
	y1 := l.extent.Max.Y - StringInset
	n := l.board.NumStrings()
	if n <= 1 {
		return (y0 + y1) / 2
	}
	t := float64(str-1) / float64(n-1)
	return y0 + t*(y1-y0)
}

// PositionPoint returns the finger point of a position.
func (l *Layout) PositionPoint(p Position) Point {
	return Point{X: l.FingerX(p.Fret), Y: l.StringToY(p.String)}
}

// IsPointInBoard reports whether a layout point is on the board, edges included.
func (l *Layout) IsPointInBoard(x, y float64) bool {
	l.mustReady()
	return l.extent.Contains(Point{X: x, Y: y})
}

// FindNearestPosition returns the playable position closest to (x, y).
// It reports false when the board has no playable positions.
func (l *Layout) FindNearestPosition(x, y float64) (Placement, bool) {
	l.mustReady()
	return l.index.Nearest(Point{X: x, Y: y})
}

// Index returns the nearest-position index.
func (l *Layout) Index() *Index {
	l.mustReady()
	return l.index
}
