// Package history records undo steps for a fretboard document.
//
// A step is a pair of document snapshots taken when a group opens and
// when it closes, so undo does not depend on how an edit was made. Steps
// live in one list with a cursor: entries before the cursor can be undone,
// entries after it redone. Recording a new step drops the redo side.
package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/fretmark/internal/engine/document"
)

// DefaultMaxEntries bounds the undo list when no limit is given.
const DefaultMaxEntries = 1000

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrGroupOpen     = errors.New("undo group is open")
)

// Step describes a recorded edit.
type Step struct {
	Name string
	At   time.Time
}

type entry struct {
	Step
	before, after document.Snapshot
}

type group struct {
	name   string
	before document.Snapshot
}

// History is the undo list of one document. Its methods are safe for
// concurrent use, but the document itself is not locked.
type History struct {
	mu      sync.Mutex
	doc     *document.Document
	entries []entry
	cursor  int
	max     int
	open    *group
	now     func() time.Time
}

// NewHistory returns an empty history for doc keeping at most max steps.
func NewHistory(doc *document.Document, max int) *History {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &History{doc: doc, max: max, now: time.Now}
}

// Document returns the document the history restores into.
func (h *History) Document() *document.Document { return h.doc }

// BeginGroup snapshots the document. Nested calls join the open group.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.open == nil {
		h.open = &group{name: name, before: h.doc.Snapshot()}
	}
}

// EndGroup closes the group and records a step if the document changed.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	g := h.open
	if g == nil {
		return
	}
	h.open = nil
	if after := h.doc.Snapshot(); !g.before.Equal(after) {
		h.record(g.name, g.before, after)
	}
}

// CancelGroup closes the group without recording. Edits made inside it
// stay in the document.
func (h *History) CancelGroup() {
	h.mu.Lock()
	h.open = nil
	h.mu.Unlock()
}

// IsGrouping reports whether a group is open.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open != nil
}

// Transaction runs fn as one step. When fn fails the document is rolled
// back and nothing is recorded. Inside an open group fn simply runs and
// becomes part of that group.
func (h *History) Transaction(name string, fn func() error) error {
	if h.IsGrouping() {
		return fn()
	}
	before := h.doc.Snapshot()
	h.BeginGroup(name)
	if err := fn(); err != nil {
		h.CancelGroup()
		h.doc.Restore(before)
		return err
	}
	h.EndGroup()
	return nil
}

// record must be called with h.mu held.
func (h *History) record(name string, before, after document.Snapshot) {
	h.entries = append(h.entries[:h.cursor], entry{
		Step:   Step{Name: name, At: h.now()},
		before: before,
		after:  after,
	})
	h.cursor = len(h.entries)
	h.trim()
}

func (h *History) trim() {
	if excess := h.cursor - h.max; excess > 0 {
		h.entries = append([]entry(nil), h.entries[excess:]...)
		h.cursor -= excess
	}
}

// Undo restores the document to before the last step.
func (h *History) Undo() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch {
	case h.open != nil:
		return ErrGroupOpen
	case h.cursor == 0:
		return ErrNothingToUndo
	}
	h.cursor--
	h.doc.Restore(h.entries[h.cursor].before)
	return nil
}

// Redo reapplies the last undone step.
func (h *History) Redo() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch {
	case h.open != nil:
		return ErrGroupOpen
	case h.cursor == len(h.entries):
		return ErrNothingToRedo
	}
	h.doc.Restore(h.entries[h.cursor].after)
	h.cursor++
	return nil
}

// CanUndo reports whether a step can be undone.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open == nil && h.cursor > 0
}

// CanRedo reports whether an undone step can be reapplied.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open == nil && h.cursor < len(h.entries)
}

// UndoCount returns the number of undoable steps.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}

// RedoCount returns the number of redoable steps.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries) - h.cursor
}

// UndoInfo lists the undoable steps, oldest first.
func (h *History) UndoInfo() []Step {
	h.mu.Lock()
	defer h.mu.Unlock()
	return steps(h.entries[:h.cursor])
}

// RedoInfo lists the redoable steps, next first.
func (h *History) RedoInfo() []Step {
	h.mu.Lock()
	defer h.mu.Unlock()
	return steps(h.entries[h.cursor:])
}

func steps(es []entry) []Step {
	out := make([]Step, len(es))
	for i, e := range es {
		out[i] = e.Step
	}
	return out
}

// Clear forgets every step and any open group.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries, h.cursor, h.open = nil, 0, nil
}

// SetMaxEntries changes the limit, dropping the oldest steps if needed.
// Non-positive values select DefaultMaxEntries.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.max = max
	h.trim()
}

// MaxEntries returns the step limit.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.max
}
