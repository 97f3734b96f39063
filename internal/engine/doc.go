// Package engine provides the interactive document engine for fretmark.
//
// The engine package is the facade (root store) that wires the document,
// the geometry derived from its board, the viewport, the gesture tool and
// the undo history into one thread-safe API. Front ends feed it pointer
// gestures and hotkey commands and read back a Frame to draw.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - geometry: fret/string to layout mapping and nearest-position index
//   - document: markers, board configuration, selection and bulk actions
//   - tool: pointer gesture state machine
//   - history: grouped snapshot undo/redo
//
// The viewport lives in internal/renderer/viewport; the engine owns one.
//
// # Thread Safety
//
// All Engine operations are serialised by one mutex, so gestures from the
// terminal event loop and board reloads from the config watcher can arrive
// on different goroutines.
//
// # Basic Usage
//
//	e := engine.New(engine.WithBoard(document.DefaultBoard()))
//
//	// Gestures arrive in screen coordinates.
//	e.SetMode(tool.ModeCreate)
//	e.Down(120, 80, false)
//	e.Move(160, 80)
//	e.Up()
//
//	// One gesture is one undo step.
//	e.Undo()
//
//	// Draw.
//	f := e.Frame()
//	for _, m := range f.Markers {
//	    // m.Point, m.Style, m.Label, m.Selected ...
//	}
//
// # Undo Groups
//
// Every gesture and every command is bracketed by one undo group. Commands
// issued while a gesture is active join the gesture's group; Undo and Redo
// are refused with ErrGestureActive until the gesture ends.
package engine
