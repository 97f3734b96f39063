package mouse

import (
	"time"

	"github.com/dshills/fretmark/internal/renderer/backend"
)

var wheelButtons = []struct {
	mask   backend.ButtonMask
	button Button
}{
	{backend.WheelUp, ButtonScrollUp},
	{backend.WheelDown, ButtonScrollDown},
	{backend.WheelLeft, ButtonScrollLeft},
	{backend.WheelRight, ButtonScrollRight},
}

// HandleBackend translates a terminal mouse report into button
// transitions and handles them. It reports whether the target was called.
func (h *Handler) HandleBackend(ev backend.Event) bool {
	if ev.Type != backend.EventMouse {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	pos := Position{X: ev.MouseX, Y: ev.MouseY}
	mods := convertMod(ev.Mod)
	now := time.Now()
	emit := func(b Button, a Action) bool {
		return h.handle(Event{Position: pos, Button: b, Modifiers: mods, Action: a, Timestamp: now})
	}

	handled := false
	wheel := false
	for _, w := range wheelButtons {
		if ev.Buttons.Has(w.mask) {
			wheel = true
			handled = emit(w.button, ActionPress) || handled
		}
	}

	pressed := heldButton(ev.Buttons)
	switch {
	case pressed == h.held && pressed == ButtonNone:
		if !wheel {
			handled = emit(ButtonNone, ActionMove) || handled
		}
	case pressed == h.held:
		handled = emit(pressed, ActionDrag) || handled
	default:
		if h.held != ButtonNone {
			handled = emit(h.held, ActionRelease) || handled
		}
		if pressed != ButtonNone {
			handled = emit(pressed, ActionPress) || handled
		}
	}
	h.held = pressed

	return handled
}

// heldButton returns the button a report holds down. When several are
// held the primary button wins.
func heldButton(m backend.ButtonMask) Button {
	switch {
	case m.Has(backend.ButtonPrimary):
		return ButtonLeft
	case m.Has(backend.ButtonMiddle):
		return ButtonMiddle
	case m.Has(backend.ButtonSecondary):
		return ButtonRight
	default:
		return ButtonNone
	}
}

var modTable = []struct {
	from backend.ModMask
	to   Modifier
}{
	{backend.ModShift, ModShift},
	{backend.ModCtrl, ModCtrl},
	{backend.ModAlt, ModAlt},
	{backend.ModMeta, ModMeta},
}

func convertMod(m backend.ModMask) Modifier {
	var out Modifier
	for _, e := range modTable {
		if m.Has(e.from) {
			out |= e.to
		}
	}
	return out
}
