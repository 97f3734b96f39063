package mouse

import "time"

// Button is a mouse button or wheel direction.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonScrollUp
	ButtonScrollDown
	ButtonScrollLeft
	ButtonScrollRight
)

var buttonNames = [...]string{
	"none", "left", "middle", "right",
	"scroll-up", "scroll-down", "scroll-left", "scroll-right",
}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "none"
}

func (b Button) IsScroll() bool {
	return b >= ButtonScrollUp && b <= ButtonScrollRight
}

// Action is a button transition derived from consecutive reports.
type Action uint8

const (
	ActionNone Action = iota
	ActionPress
	ActionRelease
	ActionMove // pointer moved, nothing held
	ActionDrag // pointer moved with a button held
)

var actionNames = [...]string{"none", "press", "release", "move", "drag"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "none"
}

// Modifier is the set of keyboard modifiers held.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta

	ModNone Modifier = 0
)

func (m Modifier) HasShift() bool { return m&ModShift != 0 }
func (m Modifier) HasCtrl() bool  { return m&ModCtrl != 0 }

// Position is a terminal cell.
type Position struct {
	X, Y int
}

// Event is one button transition at a cell.
type Event struct {
	Position  Position
	Button    Button
	Modifiers Modifier
	Action    Action
	Timestamp time.Time
}
