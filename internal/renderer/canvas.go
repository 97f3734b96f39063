package renderer

import (
	"github.com/dshills/fretmark/internal/renderer/backend"
	"github.com/dshills/fretmark/internal/renderer/core"
)

// Box drawing runes.
const (
	runeHorizontal = '─'
	runeVertical   = '│'
	runeNut        = '║'
	runeInlay      = '•'
)

// canvas is an off-screen grid of cells clipped to an area.
type canvas struct {
	area  core.ScreenRect
	cells []core.Cell
}

func newCanvas(area core.ScreenRect) *canvas {
	cells := make([]core.Cell, area.Width()*area.Height())
	for i := range cells {
		cells[i] = core.EmptyCell()
	}
	return &canvas{area: area, cells: cells}
}

func (c *canvas) index(col, row int) (int, bool) {
	if !c.area.Contains(col, row) {
		return 0, false
	}
	return (row-c.area.Top)*c.area.Width() + (col - c.area.Left), true
}

func (c *canvas) at(col, row int) core.Cell {
	if i, ok := c.index(col, row); ok {
		return c.cells[i]
	}
	return core.EmptyCell()
}

func (c *canvas) set(col, row int, r rune, style core.Style) {
	if i, ok := c.index(col, row); ok {
		c.cells[i] = core.NewStyledCell(r, style)
	}
}

// setIfEmpty draws only over blank cells.
func (c *canvas) setIfEmpty(col, row int, r rune, style core.Style) {
	if c.at(col, row).IsEmpty() {
		c.set(col, row, r, style)
	}
}

// hline draws a horizontal line between two columns, inclusive.
func (c *canvas) hline(row, c1, c2 int, style core.Style) {
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	for col := max(c1, c.area.Left); col <= min(c2, c.area.Right-1); col++ {
		c.set(col, row, runeHorizontal, style)
	}
}

// vline draws a vertical line between two rows, inclusive, joining any
// horizontal line it crosses.
func (c *canvas) vline(col, r1, r2 int, double bool, style core.Style) {
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	for row := max(r1, c.area.Top); row <= min(r2, c.area.Bottom-1); row++ {
		r := runeVertical
		if double {
			r = runeNut
		}
		if c.at(col, row).Rune == runeHorizontal {
			r = junction(double, row == r1, row == r2)
		}
		c.set(col, row, r, style)
	}
}

// junction returns the rune where a vertical line meets a horizontal one.
func junction(double, top, bottom bool) rune {
	switch {
	case top && bottom:
		return runeHorizontal
	case top && double:
		return '╥'
	case top:
		return '┬'
	case bottom && double:
		return '╨'
	case bottom:
		return '┴'
	case double:
		return '╫'
	default:
		return '┼'
	}
}

// text draws s starting at col, clipped to the area.
func (c *canvas) text(col, row int, s string, style core.Style) {
	for _, r := range s {
		c.set(col, row, r, style)
		col += core.RuneWidth(r)
	}
}

// box draws a rectangle outline with dashed edges.
func (c *canvas) box(left, top, right, bottom int, style core.Style) {
	if left > right {
		left, right = right, left
	}
	if top > bottom {
		top, bottom = bottom, top
	}
	for col := left + 1; col < right; col++ {
		c.set(col, top, '╌', style)
		c.set(col, bottom, '╌', style)
	}
	for row := top + 1; row < bottom; row++ {
		c.set(left, row, '╎', style)
		c.set(right, row, '╎', style)
	}
	c.set(left, top, '┌', style)
	c.set(right, top, '┐', style)
	c.set(left, bottom, '└', style)
	c.set(right, bottom, '┘', style)
}

// flush copies every cell of the canvas to the backend.
func (c *canvas) flush(b backend.Backend) {
	w := c.area.Width()
	for i, cell := range c.cells {
		b.SetCell(c.area.Left+i%w, c.area.Top+i/w, cell)
	}
}
