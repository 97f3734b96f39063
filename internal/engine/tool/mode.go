package tool

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseMode for unrecognised names.
var ErrUnknownMode = errors.New("unknown tool mode")

// Mode is the top-level tool the user has chosen.
type Mode int

const (
	// ModeSelect selects, moves and marquee-selects markers.
	ModeSelect Mode = iota
	// ModeCreate places new markers.
	ModeCreate
)

func (m Mode) String() string {
	switch m {
	case ModeSelect:
		return "select"
	case ModeCreate:
		return "create"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "select" or "create".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "select", "pointer", "":
		return ModeSelect, nil
	case "create":
		return ModeCreate, nil
	default:
		return ModeSelect, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}
