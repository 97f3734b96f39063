package backend

import (
	"strings"
	"sync"

	"github.com/dshills/fretmark/internal/renderer/core"
)

// NullBackend keeps its grid in memory. Tests use it in place of a
// terminal.
type NullBackend struct {
	mu     sync.Mutex
	w, h   int
	grid   []core.Cell // row major
	shows  int
	events chan Event
}

// NewNullBackend returns a w×h backend with room for 100 queued events.
func NewNullBackend(w, h int) *NullBackend {
	return &NullBackend{w: w, h: h, events: make(chan Event, 100)}
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	b.reset()
	b.mu.Unlock()
	return nil
}

func (b *NullBackend) reset() {
	b.grid = make([]core.Cell, b.w*b.h)
	for i := range b.grid {
		b.grid[i] = core.EmptyCell()
	}
}

// index returns the grid offset of (x, y), or -1 off the grid.
func (b *NullBackend) index(x, y int) int {
	if x < 0 || y < 0 || x >= b.w || y >= b.h || len(b.grid) == 0 {
		return -1
	}
	return y*b.w + x
}

func (b *NullBackend) Shutdown() { b.PostEvent(Event{Type: EventNone}) }

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.w, b.h
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.index(x, y); i >= 0 {
		b.grid[i] = cell
	}
}

func (b *NullBackend) GetCell(x, y int) core.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.index(x, y); i >= 0 {
		return b.grid[i]
	}
	return core.EmptyCell()
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	b.shows++
	b.mu.Unlock()
}

func (b *NullBackend) PollEvent() Event { return <-b.events }

// PostEvent drops the event when the queue is full.
func (b *NullBackend) PostEvent(ev Event) {
	select {
	case b.events <- ev:
	default:
	}
}

// Shows counts calls to Show.
func (b *NullBackend) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

// Row returns the text of row y.
func (b *NullBackend) Row(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.index(0, y) < 0 {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.grid[y*b.w : (y+1)*b.w] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// Resize changes the grid size, clearing it, and queues a resize event.
func (b *NullBackend) Resize(w, h int) {
	b.mu.Lock()
	b.w, b.h = w, h
	b.reset()
	b.mu.Unlock()
	b.PostEvent(Event{Type: EventResize, Width: w, Height: h})
}
