package core

import "github.com/mattn/go-runewidth"

// Cell is one terminal cell.
type Cell struct {
	Rune  rune
	Width int // display columns taken by Rune
	Style Style
}

// EmptyCell returns a blank in the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1, Style: DefaultStyle()}
}

func NewStyledCell(r rune, style Style) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Style: style}
}

// IsEmpty reports whether the cell shows nothing.
func (c Cell) IsEmpty() bool {
	return c.Rune == ' ' || c.Rune == 0
}

func RuneWidth(r rune) int { return runewidth.RuneWidth(r) }

func StringWidth(s string) int { return runewidth.StringWidth(s) }

// ScreenRect is a half-open cell rectangle: Top and Left inclusive,
// Bottom and Right exclusive.
type ScreenRect struct {
	Top, Left, Bottom, Right int
}

func RectFromSize(top, left, height, width int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

func (r ScreenRect) Width() int  { return max(r.Right-r.Left, 0) }
func (r ScreenRect) Height() int { return max(r.Bottom-r.Top, 0) }

func (r ScreenRect) IsEmpty() bool { return r.Width() == 0 || r.Height() == 0 }

func (r ScreenRect) Contains(col, row int) bool {
	return row >= r.Top && row < r.Bottom && col >= r.Left && col < r.Right
}
