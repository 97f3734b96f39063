package keymap

import (
	"fmt"

	"github.com/dshills/fretmark/internal/renderer/backend"
)

// Binding maps one key stroke to an action.
type Binding struct {
	Keys        string // "u", "C-z", "<C-z>", "Ctrl+Z", "Backspace"
	Action      string // "history.undo", "marker.color.4"
	Description string
	Category    string
}

// Keymap is an ordered list of bindings. Later bindings for the same
// stroke win.
type Keymap struct {
	Name     string
	Source   string // "default" or "user"
	Bindings []Binding
}

// Add appends a binding.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, Binding{Keys: keys, Action: action})
	return k
}

// Merge appends the bindings of other, which then take precedence.
func (k *Keymap) Merge(other *Keymap) *Keymap {
	k.Bindings = append(k.Bindings, other.Bindings...)
	return k
}

// Validate checks that all bindings in the keymap are valid.
func (k *Keymap) Validate() error {
	for i, b := range k.Bindings {
		if b.Keys == "" {
			return fmt.Errorf("binding %d: empty keys", i)
		}
		if !IsAction(b.Action) {
			return fmt.Errorf("binding %d (%s): unknown action %q", i, b.Keys, b.Action)
		}
		if _, err := ParseStroke(b.Keys); err != nil {
			return fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
	}
	return nil
}

// ParsedKeymap is a keymap with pre-parsed key strokes.
type ParsedKeymap struct {
	*Keymap
	byStroke map[Stroke]Binding
}

// Parse validates the keymap and indexes its bindings by stroke.
func (k *Keymap) Parse() (*ParsedKeymap, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}

	parsed := &ParsedKeymap{
		Keymap:   k,
		byStroke: make(map[Stroke]Binding, len(k.Bindings)),
	}
	for _, b := range k.Bindings {
		s, _ := ParseStroke(b.Keys)
		parsed.byStroke[s] = b
	}
	return parsed, nil
}

// Lookup returns the binding for a key event.
func (p *ParsedKeymap) Lookup(ev backend.Event) (Binding, bool) {
	if ev.Type != backend.EventKey {
		return Binding{}, false
	}
	b, ok := p.byStroke[StrokeFromEvent(ev)]
	return b, ok
}

// KeysFor returns the strokes bound to an action, in canonical form.
func (p *ParsedKeymap) KeysFor(action string) []string {
	var keys []string
	for s, b := range p.byStroke {
		if b.Action == action {
			keys = append(keys, s.String())
		}
	}
	return keys
}
