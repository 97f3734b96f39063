// Package statusline renders the bottom status line of the terminal front end.
package statusline

import (
	"strconv"
	"strings"

	"github.com/dshills/fretmark/internal/renderer/backend"
	"github.com/dshills/fretmark/internal/renderer/core"
)

// State is the editor state summarised on the status line.
type State struct {
	Mode     string // tool mode name, e.g. "select"
	Selected int    // number of selected markers
	Markers  int    // number of markers on the board
	Action   string // pending bulk action description, empty if none
	CanUndo  bool
	CanRedo  bool
}

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// StatusLine renders the bottom status line including mode display and
// transient messages.
type StatusLine struct {
	state State

	// Message display
	message     string
	messageType MessageType

	modeStyles map[string]core.Style

	width int
}

var (
	colorBar     = core.ColorFromRGB(0x63, 0x63, 0x5e)
	colorBlue    = core.ColorFromRGB(0x00, 0x90, 0xff)
	colorGreen   = core.ColorFromRGB(0x30, 0xa4, 0x6c)
	colorRed     = core.ColorFromRGB(0xe5, 0x4d, 0x2e)
	colorMustard = core.ColorFromRGB(0xff, 0xc5, 0x3d)
)

// New creates a new status line.
func New() *StatusLine {
	return &StatusLine{
		state:      State{Mode: "select"},
		modeStyles: defaultModeStyles(),
	}
}

// defaultModeStyles returns default styles for each mode.
func defaultModeStyles() map[string]core.Style {
	return map[string]core.Style{
		"select": core.DefaultStyle().Bold().WithBackground(colorBlue).WithForeground(core.ColorWhite),
		"create": core.DefaultStyle().Bold().WithBackground(colorGreen).WithForeground(core.ColorBlack),
	}
}

// Update replaces the displayed editor state.
func (s *StatusLine) Update(state State) {
	s.state = state
}

// State returns the displayed editor state.
func (s *StatusLine) State() State {
	return s.state
}

// SetMessage displays a status message until it is cleared.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message and its type.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// Render draws the status line to the backend at the given row.
func (s *StatusLine) Render(b backend.Backend, row int) {
	if s.message != "" {
		s.renderMessage(b, row)
		return
	}
	s.renderStatusBar(b, row)
}

// renderStatusBar renders the mode and selection info line.
func (s *StatusLine) renderStatusBar(b backend.Backend, row int) {
	modeStyle, ok := s.modeStyles[s.state.Mode]
	if !ok {
		modeStyle = core.DefaultStyle().Bold().WithBackground(colorBar)
	}
	barStyle := core.DefaultStyle().WithBackground(colorBar).WithForeground(core.ColorWhite)

	s.fill(b, row, barStyle)

	col := s.put(b, 0, row, " "+strings.ToUpper(s.state.Mode)+" ", modeStyle)
	col = s.put(b, col, row, " ", barStyle)
	col = s.put(b, col, row, s.formatSelection(), barStyle)
	if s.state.Action != "" {
		s.put(b, col, row, "  "+s.state.Action, barStyle.Bold())
	}

	// Right side: history availability
	hist := s.formatHistory()
	start := s.width - core.StringWidth(hist) - 1
	if start > col {
		s.put(b, start, row, hist, barStyle)
	}
}

// renderMessage renders a status message.
func (s *StatusLine) renderMessage(b backend.Backend, row int) {
	var msgStyle core.Style
	switch s.messageType {
	case MessageError:
		msgStyle = core.DefaultStyle().WithForeground(colorRed).Bold()
	case MessageWarning:
		msgStyle = core.DefaultStyle().WithForeground(colorMustard)
	default:
		msgStyle = core.DefaultStyle()
	}

	s.fill(b, row, msgStyle)
	s.put(b, 0, row, s.message, msgStyle)
}

func (s *StatusLine) fill(b backend.Backend, row int, style core.Style) {
	for x := 0; x < s.width; x++ {
		b.SetCell(x, row, core.NewStyledCell(' ', style))
	}
}

// put draws text starting at col, clipped to the line width, and returns
// the column after the last drawn rune.
func (s *StatusLine) put(b backend.Backend, col, row int, text string, style core.Style) int {
	for _, r := range text {
		w := core.RuneWidth(r)
		if col+w > s.width {
			break
		}
		b.SetCell(col, row, core.NewStyledCell(r, style))
		col += w
	}
	return col
}

// formatSelection formats the selection count, e.g. "2/7 selected".
func (s *StatusLine) formatSelection() string {
	return strconv.Itoa(s.state.Selected) + "/" + strconv.Itoa(s.state.Markers) + " selected"
}

// formatHistory formats undo/redo availability, e.g. "undo | -".
func (s *StatusLine) formatHistory() string {
	undo, redo := "-", "-"
	if s.state.CanUndo {
		undo = "undo"
	}
	if s.state.CanRedo {
		redo = "redo"
	}
	return undo + " | " + redo
}
