package keymap

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/fretmark/internal/renderer/backend"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Stroke is a single key press as the terminal reports it. Printable keys
// carry their rune; Shift is folded into the rune.
type Stroke struct {
	Key  backend.Key
	Rune rune
}

// keyNames maps lowercase key names to special keys.
var keyNames = map[string]backend.Key{
	"esc":       backend.KeyEscape,
	"escape":    backend.KeyEscape,
	"enter":     backend.KeyEnter,
	"return":    backend.KeyEnter,
	"cr":        backend.KeyEnter,
	"backspace": backend.KeyBackspace,
	"bs":        backend.KeyBackspace,
	"delete":    backend.KeyDelete,
	"del":       backend.KeyDelete,
	"up":        backend.KeyUp,
	"down":      backend.KeyDown,
	"left":      backend.KeyLeft,
	"right":     backend.KeyRight,
}

// ctrlKeys maps letters to the control keys terminals report for them.
var ctrlKeys = map[rune]backend.Key{
	'a': backend.KeyCtrlA,
	'c': backend.KeyCtrlC,
	'y': backend.KeyCtrlY,
	'z': backend.KeyCtrlZ,
}

// ParseStroke parses a key specification into a Stroke.
func ParseStroke(spec string) (Stroke, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Stroke{}, ErrEmptySpec
	}

	// Vim-style <...> notation
	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}

	// Modifier+key notation; a lone "+" is a rune
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}

	// C-x without brackets
	if len(spec) == 3 && (spec[:2] == "C-" || spec[:2] == "c-") {
		return parseVimStyle(spec)
	}

	return parseSingle(spec, false)
}

// parseVimStyle parses Vim-style notation like "C-z" or "Esc".
func parseVimStyle(inner string) (Stroke, error) {
	parts := strings.Split(strings.TrimSpace(inner), "-")
	if len(parts) == 1 {
		return parseSingle(parts[0], false)
	}
	if len(parts) != 2 || strings.ToLower(strings.TrimSpace(parts[0])) != "c" {
		return Stroke{}, fmt.Errorf("%w: unsupported modifiers in %q", ErrInvalidSpec, inner)
	}
	return parseSingle(parts[1], true)
}

// parseModifierStyle parses "Ctrl+Z" style notation.
func parseModifierStyle(spec string) (Stroke, error) {
	parts := strings.Split(spec, "+")
	if len(parts) != 2 {
		return Stroke{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	switch strings.ToLower(strings.TrimSpace(parts[0])) {
	case "ctrl", "control", "c":
		return parseSingle(parts[1], true)
	default:
		return Stroke{}, fmt.Errorf("%w: unsupported modifier %q", ErrInvalidSpec, parts[0])
	}
}

// parseSingle parses a key name or a single character.
func parseSingle(spec string, ctrl bool) (Stroke, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Stroke{}, ErrInvalidSpec
	}

	if ctrl {
		r, size := utf8.DecodeRuneInString(strings.ToLower(spec))
		if size != len(spec) {
			return Stroke{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
		}
		k, ok := ctrlKeys[r]
		if !ok {
			return Stroke{}, fmt.Errorf("%w: unsupported control key %q", ErrInvalidSpec, spec)
		}
		return Stroke{Key: k}, nil
	}

	if k, ok := keyNames[strings.ToLower(spec)]; ok {
		return Stroke{Key: k}, nil
	}
	if strings.EqualFold(spec, "space") {
		return Stroke{Key: backend.KeyRune, Rune: ' '}, nil
	}

	r, size := utf8.DecodeRuneInString(spec)
	if size != len(spec) || r == utf8.RuneError {
		return Stroke{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	return Stroke{Key: backend.KeyRune, Rune: r}, nil
}

// StrokeFromEvent returns the stroke of a key event.
func StrokeFromEvent(ev backend.Event) Stroke {
	if ev.Key == backend.KeyRune {
		return Stroke{Key: backend.KeyRune, Rune: ev.Rune}
	}
	return Stroke{Key: ev.Key}
}

// String returns the canonical specification of the stroke.
func (s Stroke) String() string {
	if s.Key == backend.KeyRune {
		if s.Rune == ' ' {
			return "Space"
		}
		return string(s.Rune)
	}
	for r, k := range ctrlKeys {
		if k == s.Key {
			return "C-" + string(r)
		}
	}
	switch s.Key {
	case backend.KeyEscape:
		return "Esc"
	case backend.KeyEnter:
		return "Enter"
	case backend.KeyBackspace:
		return "Backspace"
	case backend.KeyDelete:
		return "Delete"
	case backend.KeyUp:
		return "Up"
	case backend.KeyDown:
		return "Down"
	case backend.KeyLeft:
		return "Left"
	case backend.KeyRight:
		return "Right"
	default:
		return "None"
	}
}
