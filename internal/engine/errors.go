package engine

import (
	"errors"

	"github.com/dshills/fretmark/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrGestureActive indicates a command that cannot run while a pointer
	// gesture is in progress.
	ErrGestureActive = errors.New("pointer gesture in progress")

	// ErrEmptySelection indicates a bulk edit with nothing selected.
	ErrEmptySelection = errors.New("selection is empty")

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo
)
