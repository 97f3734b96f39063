package mouse

// ScrollDirection is the direction of one wheel tick.
type ScrollDirection uint8

const (
	ScrollNone ScrollDirection = iota
	ScrollUp
	ScrollDown
	ScrollLeft
	ScrollRight
)

var scrollNames = [...]string{"none", "up", "down", "left", "right"}

func (d ScrollDirection) String() string {
	if int(d) < len(scrollNames) {
		return scrollNames[d]
	}
	return "none"
}

// ButtonToScrollDirection converts a wheel button to a direction.
func ButtonToScrollDirection(b Button) ScrollDirection {
	if !b.IsScroll() {
		return ScrollNone
	}
	return ScrollUp + ScrollDirection(b-ButtonScrollUp)
}

// Wheel is the view change requested by one wheel tick. Vertical ticks
// zoom around At; horizontal ticks pan.
type Wheel struct {
	Direction ScrollDirection
	At        Position
	Zoom      float64 // scale factor, 0 for a pan tick
	Pan       float64 // horizontal screen offset, 0 for a zoom tick
}

// ParseWheel maps a wheel event to a view change. It reports false for
// other buttons and for ticks whose feature is disabled.
func ParseWheel(event Event, config Config) (Wheel, bool) {
	w := Wheel{Direction: ButtonToScrollDirection(event.Button), At: event.Position}

	switch w.Direction {
	case ScrollUp, ScrollDown:
		if !config.EnableZoom || config.ZoomFactor <= 0 {
			return Wheel{}, false
		}
		w.Zoom = config.ZoomFactor
		if w.Direction == ScrollDown {
			w.Zoom = 1 / w.Zoom
		}
		return w, true

	case ScrollLeft, ScrollRight:
		if !config.EnablePan {
			return Wheel{}, false
		}
		// Wheel left reveals content on the left, moving the drawing right
		w.Pan = config.PanStep
		if w.Direction == ScrollRight {
			w.Pan = -w.Pan
		}
		return w, true
	}
	return Wheel{}, false
}

// IsZoom reports whether the tick zooms.
func (w Wheel) IsZoom() bool { return w.Zoom != 0 }
