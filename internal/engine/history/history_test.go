package history

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/fretmark/internal/engine/document"
	"github.com/dshills/fretmark/internal/engine/geometry"
)

func newTestHistory(max int) (*History, *document.Document) {
	doc := document.New(document.DefaultBoard())
	return NewHistory(doc, max), doc
}

func at(fret, str int) geometry.Position {
	return geometry.Position{Fret: fret, String: str}
}

// addStep records one step that adds a marker.
func addStep(h *History, name string, p geometry.Position) {
	h.BeginGroup(name)
	h.Document().AddMarker(p)
	h.EndGroup()
}

func TestUndoRedo(t *testing.T) {
	h, doc := newTestHistory(100)
	addStep(h, "add", at(3, 3))
	require.Equal(t, 1, doc.Len())

	require.NoError(t, h.Undo())
	assert.Equal(t, 0, doc.Len())
	assert.Equal(t, 0, h.UndoCount())
	assert.Equal(t, 1, h.RedoCount())

	require.NoError(t, h.Redo())
	assert.Equal(t, 1, doc.Len())
	assert.Equal(t, 1, h.UndoCount())
	assert.Equal(t, 0, h.RedoCount())
}

func TestGroupIsOneStep(t *testing.T) {
	h, doc := newTestHistory(100)
	m := doc.AddMarker(at(2, 2))

	h.BeginGroup("move")
	for i := 1; i <= 50; i++ {
		m.SetTransform(at(i%3, 0))
	}
	m.SetTransform(at(2, 0))
	m.CommitTransform()
	h.EndGroup()

	require.Equal(t, at(4, 2), m.Base())
	require.Equal(t, 1, h.UndoCount())

	require.NoError(t, h.Undo())
	assert.Equal(t, at(2, 2), m.Base())
	assert.False(t, h.CanUndo())
}

func TestUnchangedGroupNotRecorded(t *testing.T) {
	h, doc := newTestHistory(100)
	m := doc.AddMarker(at(2, 2))

	h.BeginGroup("click")
	m.SetTransform(at(0, 0))
	m.CommitTransform()
	h.EndGroup()

	assert.False(t, h.CanUndo())
	assert.False(t, h.IsGrouping())
}

func TestNestedBeginJoinsOuter(t *testing.T) {
	h, _ := newTestHistory(100)

	h.BeginGroup("outer")
	h.Document().AddMarker(at(1, 1))
	h.BeginGroup("inner")
	h.Document().AddMarker(at(2, 2))
	h.EndGroup()

	assert.False(t, h.IsGrouping(), "first EndGroup closes the group")
	require.Len(t, h.UndoInfo(), 1)
	assert.Equal(t, "outer", h.UndoInfo()[0].Name)

	h.EndGroup()
	assert.Equal(t, 1, h.UndoCount(), "stray EndGroup records nothing")
}

func TestUndoRefusedWhileGrouping(t *testing.T) {
	h, _ := newTestHistory(100)
	addStep(h, "a", at(1, 1))
	require.NoError(t, h.Undo())

	h.BeginGroup("open")
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.ErrorIs(t, h.Undo(), ErrGroupOpen)
	assert.ErrorIs(t, h.Redo(), ErrGroupOpen)
	h.EndGroup()

	assert.True(t, h.CanRedo())
}

func TestNewStepDropsRedo(t *testing.T) {
	h, doc := newTestHistory(100)
	addStep(h, "a", at(1, 1))
	addStep(h, "b", at(2, 2))
	require.NoError(t, h.Undo())
	require.True(t, h.CanRedo())

	addStep(h, "c", at(3, 3))
	assert.False(t, h.CanRedo())
	assert.Equal(t, 2, doc.Len())

	var names []string
	for _, s := range h.UndoInfo() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"a", "c"}, names)
}

func TestMaxEntries(t *testing.T) {
	h, doc := newTestHistory(3)
	for i := 0; i < 10; i++ {
		addStep(h, "add", at(i, 1))
	}
	assert.Equal(t, 3, h.UndoCount())

	h.SetMaxEntries(2)
	assert.Equal(t, 2, h.UndoCount())
	assert.Equal(t, 2, h.MaxEntries())

	for h.CanUndo() {
		require.NoError(t, h.Undo())
	}
	assert.Equal(t, 8, doc.Len(), "the oldest steps are no longer undoable")

	h.SetMaxEntries(0)
	assert.Equal(t, DefaultMaxEntries, h.MaxEntries())
}

func TestEmptyErrors(t *testing.T) {
	h, _ := newTestHistory(100)
	assert.ErrorIs(t, h.Undo(), ErrNothingToUndo)
	assert.ErrorIs(t, h.Redo(), ErrNothingToRedo)
}

func TestCancelGroup(t *testing.T) {
	h, doc := newTestHistory(100)

	h.BeginGroup("cancelled")
	doc.AddMarker(at(1, 1))
	h.CancelGroup()

	assert.Equal(t, 1, doc.Len(), "edits stay in the document")
	assert.False(t, h.CanUndo())
	assert.False(t, h.IsGrouping())
}

func TestTransaction(t *testing.T) {
	h, doc := newTestHistory(100)

	require.NoError(t, h.Transaction("ok", func() error {
		doc.AddMarker(at(1, 1))
		return nil
	}))
	require.Equal(t, 1, h.UndoCount())

	boom := errors.New("boom")
	err := h.Transaction("fail", func() error {
		doc.AddMarker(at(2, 2))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, doc.Len(), "failed transaction is rolled back")
	assert.Equal(t, 1, h.UndoCount())
}

func TestTransactionJoinsOpenGroup(t *testing.T) {
	h, doc := newTestHistory(100)

	h.BeginGroup("gesture")
	require.NoError(t, h.Transaction("inner", func() error {
		doc.AddMarker(at(1, 1))
		return nil
	}))
	assert.True(t, h.IsGrouping())
	h.EndGroup()

	require.Len(t, h.UndoInfo(), 1)
	assert.Equal(t, "gesture", h.UndoInfo()[0].Name)
}

func TestStepInfo(t *testing.T) {
	h, _ := newTestHistory(100)
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return stamp }

	addStep(h, "first", at(1, 1))
	addStep(h, "second", at(2, 2))

	assert.Equal(t, []Step{{Name: "first", At: stamp}, {Name: "second", At: stamp}}, h.UndoInfo())
	assert.Empty(t, h.RedoInfo())

	require.NoError(t, h.Undo())
	require.NoError(t, h.Undo())
	assert.Equal(t, []string{"first", "second"}, []string{h.RedoInfo()[0].Name, h.RedoInfo()[1].Name})
}

func TestClear(t *testing.T) {
	h, _ := newTestHistory(100)
	addStep(h, "a", at(1, 1))
	addStep(h, "b", at(2, 2))
	require.NoError(t, h.Undo())
	h.BeginGroup("open")

	h.Clear()
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.False(t, h.IsGrouping())
	assert.Empty(t, h.UndoInfo())
}

func TestUndoRedoRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h, doc := newTestHistory(100)
		doc.AddMarker(at(0, 1))
		initial := doc.Snapshot()

		n := rapid.IntRange(1, 12).Draw(t, "edits")
		for i := 0; i < n; i++ {
			h.BeginGroup("edit")
			markers := doc.Entities()
			switch rapid.IntRange(0, 3).Draw(t, "kind") {
			case 0:
				doc.AddMarker(at(rapid.IntRange(0, 9).Draw(t, "fret"), rapid.IntRange(1, 6).Draw(t, "string")))
			case 1:
				if len(markers) > 0 {
					m := rapid.SampledFrom(markers).Draw(t, "marker")
					m.SetTransform(at(1, 0))
					m.CommitTransform()
				}
			case 2:
				if len(markers) > 0 {
					rapid.SampledFrom(markers).Draw(t, "marker").SetColor("red")
				}
			case 3:
				doc.Selection().Replace(markers...)
				doc.AddMarker(at(9, 6))
			}
			h.EndGroup()
		}
		final := doc.Snapshot()

		for h.CanUndo() {
			if err := h.Undo(); err != nil {
				t.Fatalf("Undo: %v", err)
			}
		}
		if !doc.Snapshot().Equal(initial) {
			t.Fatal("undoing every edit did not restore the initial state")
		}

		for h.CanRedo() {
			if err := h.Redo(); err != nil {
				t.Fatalf("Redo: %v", err)
			}
		}
		if !doc.Snapshot().Equal(final) {
			t.Fatal("redoing every edit did not restore the final state")
		}
	})
}
