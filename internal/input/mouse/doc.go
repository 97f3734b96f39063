// Package mouse turns terminal mouse reports into board gestures.
//
// Terminals report mouse state, not transitions: every report carries the
// set of held buttons and the cell under the pointer. The Handler keeps the
// previous button state and derives press, drag, release and move events
// from it:
//
//	h := mouse.NewHandler(mouse.DefaultConfig(), eng)
//	for {
//	    ev := b.PollEvent()
//	    if ev.Type == backend.EventMouse && h.HandleBackend(ev) {
//	        redraw()
//	    }
//	}
//
// # Gestures
//
//   - Primary button: Down on press, Move while dragging, Up on release.
//     Shift on press makes the gesture additive.
//   - Middle button: drag to pan the view.
//   - Wheel up/down: zoom around the pointer.
//   - Wheel left/right: pan horizontally.
//   - No button: Move, for hover and placement preview.
//
// # Thread Safety
//
// Handler is safe for concurrent use. The target is called with the
// handler lock held.
package mouse
