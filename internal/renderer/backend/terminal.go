package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/fretmark/internal/renderer/core"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// newTerminalWithScreen wraps an existing screen, such as a simulation
// screen in tests.
func newTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}

	// Drags are reported with button state so gestures can be tracked
	t.screen.EnableMouse(tcell.MouseDragEvents)
	t.screen.HideCursor()

	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, cell.Rune, nil, convertStyle(cell.Style))
}

func (t *Terminal) GetCell(x, y int) core.Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, _, style, _ := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return core.Cell{
		Rune:  mainc,
		Width: core.RuneWidth(mainc),
		Style: convertTcellStyle(style),
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventNone}
	}
	return convertEvent(ev)
}

func (t *Terminal) PostEvent(event Event) {
	var ev tcell.Event
	switch event.Type {
	case EventKey:
		ev = tcell.NewEventKey(convertToTcellKey(event.Key), event.Rune, convertToTcellMod(event.Mod))
	case EventInterrupt:
		ev = tcell.NewEventInterrupt(event.Data)
	default:
		return
	}
	_ = t.screen.PostEvent(ev) // best-effort; event queue may be full
}

// Translation tables between tcell and backend values. The first entry
// for a value wins when translating back to tcell.
var (
	keyTable = []struct {
		tc  tcell.Key
		key Key
	}{
		{tcell.KeyRune, KeyRune},
		{tcell.KeyEscape, KeyEscape},
		{tcell.KeyEnter, KeyEnter},
		{tcell.KeyBackspace2, KeyBackspace},
		{tcell.KeyBackspace, KeyBackspace},
		{tcell.KeyDelete, KeyDelete},
		{tcell.KeyUp, KeyUp},
		{tcell.KeyDown, KeyDown},
		{tcell.KeyLeft, KeyLeft},
		{tcell.KeyRight, KeyRight},
		{tcell.KeyCtrlA, KeyCtrlA},
		{tcell.KeyCtrlC, KeyCtrlC},
		{tcell.KeyCtrlY, KeyCtrlY},
		{tcell.KeyCtrlZ, KeyCtrlZ},
	}

	modTable = []struct {
		tc  tcell.ModMask
		mod ModMask
	}{
		{tcell.ModShift, ModShift},
		{tcell.ModCtrl, ModCtrl},
		{tcell.ModAlt, ModAlt},
		{tcell.ModMeta, ModMeta},
	}

	attrTable = []struct {
		tc   tcell.AttrMask
		attr core.Attribute
	}{
		{tcell.AttrBold, core.AttrBold},
		{tcell.AttrDim, core.AttrDim},
		{tcell.AttrUnderline, core.AttrUnderline},
		{tcell.AttrReverse, core.AttrReverse},
	}

	// tcell numbers the middle button 3 and the secondary button 2
	buttonTable = []struct {
		tc     tcell.ButtonMask
		button ButtonMask
	}{
		{tcell.Button1, ButtonPrimary},
		{tcell.Button2, ButtonSecondary},
		{tcell.Button3, ButtonMiddle},
		{tcell.WheelUp, WheelUp},
		{tcell.WheelDown, WheelDown},
		{tcell.WheelLeft, WheelLeft},
		{tcell.WheelRight, WheelRight},
	}
)

func convertKey(k tcell.Key) Key {
	for _, e := range keyTable {
		if e.tc == k {
			return e.key
		}
	}
	return KeyNone
}

func convertToTcellKey(k Key) tcell.Key {
	for _, e := range keyTable {
		if e.key == k {
			return e.tc
		}
	}
	return tcell.KeyRune
}

func convertMod(m tcell.ModMask) ModMask {
	var out ModMask
	for _, e := range modTable {
		if m&e.tc != 0 {
			out |= e.mod
		}
	}
	return out
}

func convertToTcellMod(m ModMask) tcell.ModMask {
	var out tcell.ModMask
	for _, e := range modTable {
		if m&e.mod != 0 {
			out |= e.tc
		}
	}
	return out
}

// convertButtons keeps every pressed button.
func convertButtons(b tcell.ButtonMask) ButtonMask {
	var out ButtonMask
	for _, e := range buttonTable {
		if b&e.tc != 0 {
			out |= e.button
		}
	}
	return out
}

func rgb(c core.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// convertStyle maps a cell style to tcell. Default colors stay default so
// the terminal theme shows through.
func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault
	if !s.Foreground.IsDefault() {
		style = style.Foreground(rgb(s.Foreground))
	}
	if !s.Background.IsDefault() {
		style = style.Background(rgb(s.Background))
	}

	var attrs tcell.AttrMask
	for _, e := range attrTable {
		if s.Attributes.Has(e.attr) {
			attrs |= e.tc
		}
	}
	return style.Attributes(attrs)
}

func convertTcellStyle(ts tcell.Style) core.Style {
	fg, bg, attrs := ts.Decompose()
	s := core.Style{
		Foreground: convertTcellColor(fg),
		Background: convertTcellColor(bg),
	}
	for _, e := range attrTable {
		if attrs&e.tc != 0 {
			s.Attributes |= e.attr
		}
	}
	return s
}

func convertTcellColor(tc tcell.Color) core.Color {
	if tc == tcell.ColorDefault {
		return core.ColorDefault
	}
	r, g, b := tc.RGB()
	return core.ColorFromRGB(uint8(r), uint8(g), uint8(b))
}

// convertEvent translates the tcell events the editor consumes.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{Type: EventKey, Key: convertKey(e.Key()), Rune: e.Rune(), Mod: convertMod(e.Modifiers())}
	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{Type: EventMouse, MouseX: x, MouseY: y, Buttons: convertButtons(e.Buttons()), Mod: convertMod(e.Modifiers())}
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}
	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt, Data: e.Data()}
	}
	return Event{Type: EventNone}
}
