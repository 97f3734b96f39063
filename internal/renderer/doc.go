// Package renderer draws engine frames onto a terminal backend.
//
// The fretboard is drawn in character cells. World coordinates go through
// the viewport into screen space, where a column is one unit wide and a
// row is CellAspect units tall, so the board keeps its proportions in a
// typical terminal font. The bottom row holds the status line.
//
// The board itself is laid out by export.BuildScene, the same scene the
// SVG and PNG writers use; the renderer only rasterizes it into cells:
//
//	b, _ := backend.NewTerminal()
//	r := renderer.New(b, renderer.DefaultOptions())
//	e.SetClientRect(renderer.ClientRect(b.Size()))
//	r.RenderNow(e.Frame())
package renderer
