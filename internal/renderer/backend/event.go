package backend

// EventType tags an Event.
type EventType int

const (
	EventNone EventType = iota // backend shut down
	EventKey
	EventMouse
	EventResize
	EventInterrupt // posted by PostEvent; see Data
)

// Event is one input event. Which fields are set depends on Type.
type Event struct {
	Type EventType

	Key  Key
	Rune rune // when Key is KeyRune
	Mod  ModMask

	MouseX, MouseY int
	Buttons        ButtonMask // all buttons held, plus wheel motion

	Width, Height int

	Data any
}

// Key is a non-character key, or KeyRune.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlA
	KeyCtrlC
	KeyCtrlY
	KeyCtrlZ
)

type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

func (m ModMask) Has(mod ModMask) bool { return m&mod != 0 }

// ButtonMask holds mouse buttons and wheel directions.
type ButtonMask int

const (
	ButtonNone    ButtonMask = 0
	ButtonPrimary ButtonMask = 1 << iota
	ButtonMiddle
	ButtonSecondary
	WheelUp
	WheelDown
	WheelLeft
	WheelRight
)

func (b ButtonMask) Has(button ButtonMask) bool { return b&button != 0 }
