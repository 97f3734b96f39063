package renderer

import (
	"math"

	"github.com/dshills/fretmark/internal/renderer/core"
	"github.com/dshills/fretmark/internal/renderer/viewport"
)

// CellAspect is the height of a character cell in screen units, relative
// to its width.
const CellAspect = 2.0

// StatusRows is the number of rows reserved below the drawing surface.
const StatusRows = 1

// ClientRect returns the screen rectangle of the drawing surface for a
// terminal of the given size. The bottom rows are left to the status line.
func ClientRect(width, height int) viewport.Rect {
	rows := max(height-StatusRows, 0)
	return viewport.Rect{
		Max: viewport.Point{X: float64(max(width, 0)), Y: float64(rows) * CellAspect},
	}
}

// BoardArea returns the cells covered by the drawing surface.
func BoardArea(width, height int) core.ScreenRect {
	return core.RectFromSize(0, 0, max(height-StatusRows, 0), max(width, 0))
}

// CellToScreen returns the screen point at the center of a cell.
func CellToScreen(col, row int) (x, y float64) {
	return float64(col) + 0.5, (float64(row) + 0.5) * CellAspect
}

// ScreenToCell returns the cell containing a screen point.
func ScreenToCell(x, y float64) (col, row int) {
	return int(math.Floor(x)), int(math.Floor(y / CellAspect))
}
