package engine

import (
	"github.com/rs/zerolog"

	"github.com/dshills/fretmark/internal/engine/document"
	"github.com/dshills/fretmark/internal/engine/tool"
	"github.com/dshills/fretmark/internal/renderer/viewport"
)

// DefaultMaxUndoEntries bounds the undo history when no limit is set.
const DefaultMaxUndoEntries = 1000

// Option configures New.
type Option func(*Engine)

// WithBoard sets the initial board.
func WithBoard(board document.BoardConfig) Option {
	return func(e *Engine) { e.initBoard = board }
}

// WithMaxUndoEntries bounds the undo history. Non-positive values keep
// DefaultMaxUndoEntries.
func WithMaxUndoEntries(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxUndoEntries = n
		}
	}
}

// WithMode picks the tool active at start.
func WithMode(m tool.Mode) Option {
	return func(e *Engine) { e.initMode = m }
}

// WithLogger receives gesture and command traces at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithClientRect sets the drawing surface before the first resize.
func WithClientRect(r viewport.Rect) Option {
	return func(e *Engine) { e.initClient = r }
}
