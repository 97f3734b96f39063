// Package backend abstracts the terminal the renderer draws on.
package backend

import "github.com/dshills/fretmark/internal/renderer/core"

// Backend is a cell grid plus an input queue. Init must be called first
// and Shutdown last. Only PostEvent may be called from other goroutines.
type Backend interface {
	Init() error
	Shutdown()

	Size() (width, height int)

	// SetCell ignores positions off the grid; GetCell returns an empty
	// cell for them.
	SetCell(x, y int, cell core.Cell)
	GetCell(x, y int) core.Cell
	Clear()

	// Show flushes the grid to the display.
	Show()

	// PollEvent blocks for the next event. After Shutdown it returns an
	// EventNone event.
	PollEvent() Event
	PostEvent(event Event)
}
