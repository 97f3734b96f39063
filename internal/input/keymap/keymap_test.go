package keymap

import (
	"errors"
	"slices"
	"testing"

	"github.com/dshills/fretmark/internal/renderer/backend"
)

func keyEv(k backend.Key, r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k, Rune: r}
}

func TestParseStroke(t *testing.T) {
	tests := []struct {
		spec string
		want Stroke
	}{
		{"u", Stroke{Key: backend.KeyRune, Rune: 'u'}},
		{"E", Stroke{Key: backend.KeyRune, Rune: 'E'}},
		{"+", Stroke{Key: backend.KeyRune, Rune: '+'}},
		{"-", Stroke{Key: backend.KeyRune, Rune: '-'}},
		{"Space", Stroke{Key: backend.KeyRune, Rune: ' '}},
		{"C-z", Stroke{Key: backend.KeyCtrlZ}},
		{"<C-y>", Stroke{Key: backend.KeyCtrlY}},
		{"Ctrl+A", Stroke{Key: backend.KeyCtrlA}},
		{"<Esc>", Stroke{Key: backend.KeyEscape}},
		{"Backspace", Stroke{Key: backend.KeyBackspace}},
		{"del", Stroke{Key: backend.KeyDelete}},
		{" Left ", Stroke{Key: backend.KeyLeft}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseStroke(tt.spec)
			if err != nil {
				t.Fatalf("ParseStroke(%q) error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("ParseStroke(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseStrokeErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"uu", ErrInvalidSpec},
		{"C-q", ErrInvalidSpec},
		{"Alt+x", ErrInvalidSpec},
		{"<A-x>", ErrInvalidSpec},
		{"Ctrl+", ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := ParseStroke(tt.spec)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseStroke(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestStrokeString(t *testing.T) {
	specs := []string{"u", "+", "Space", "C-z", "C-a", "Esc", "Enter", "Backspace", "Delete", "Up", "Down", "Left", "Right"}
	for _, spec := range specs {
		s, err := ParseStroke(spec)
		if err != nil {
			t.Fatalf("ParseStroke(%q) error: %v", spec, err)
		}
		if got := s.String(); got != spec {
			t.Errorf("String() = %q, want %q", got, spec)
		}
	}
}

func TestDefaultKeymap(t *testing.T) {
	km := Default()
	if err := km.Validate(); err != nil {
		t.Fatalf("default keymap invalid: %v", err)
	}
	parsed, err := km.Parse()
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	tests := []struct {
		ev   backend.Event
		want string
	}{
		{keyEv(backend.KeyRune, 's'), ActionModeSelect},
		{keyEv(backend.KeyRune, 'c'), ActionModeCreate},
		{keyEv(backend.KeyRune, 'u'), ActionUndo},
		{keyEv(backend.KeyCtrlZ, 0), ActionUndo},
		{keyEv(backend.KeyRune, 'r'), ActionRedo},
		{keyEv(backend.KeyCtrlY, 0), ActionRedo},
		{keyEv(backend.KeyCtrlA, 0), ActionSelectAll},
		{keyEv(backend.KeyBackspace, 0), ActionDeleteSelection},
		{keyEv(backend.KeyDelete, 0), ActionDeleteSelection},
		{keyEv(backend.KeyRune, '+'), ActionZoomIn},
		{keyEv(backend.KeyRune, '-'), ActionZoomOut},
		{keyEv(backend.KeyLeft, 0), ActionPanLeft},
		{keyEv(backend.KeyRune, 'l'), ActionCycleLabelKind},
		{keyEv(backend.KeyRune, 'h'), ActionToggleShape},
		{keyEv(backend.KeyRune, '4'), ColorAction(4)},
		{keyEv(backend.KeyRune, 'e'), ActionExportSVG},
		{keyEv(backend.KeyRune, 'E'), ActionExportPNG},
		{keyEv(backend.KeyRune, 'y'), ActionCopySVG},
		{keyEv(backend.KeyRune, 'q'), ActionQuit},
	}
	for _, tt := range tests {
		b, ok := parsed.Lookup(tt.ev)
		if !ok || b.Action != tt.want {
			t.Errorf("Lookup(%+v) = %q, %v; want %q", tt.ev, b.Action, ok, tt.want)
		}
	}

	if _, ok := parsed.Lookup(keyEv(backend.KeyRune, 'Z')); ok {
		t.Error("unbound key resolved")
	}
	if _, ok := parsed.Lookup(backend.Event{Type: backend.EventMouse}); ok {
		t.Error("mouse event resolved")
	}
}

func TestMergeOverrides(t *testing.T) {
	km := Default().Merge(FromMap("user", map[string]string{
		"x":      ActionDeleteSelection,
		"Ctrl+Z": ActionRedo,
	}))
	parsed, err := km.Parse()
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if b, _ := parsed.Lookup(keyEv(backend.KeyRune, 'x')); b.Action != ActionDeleteSelection {
		t.Errorf("x bound to %q", b.Action)
	}
	if b, _ := parsed.Lookup(keyEv(backend.KeyCtrlZ, 0)); b.Action != ActionRedo {
		t.Errorf("C-z bound to %q after override", b.Action)
	}
	if b, _ := parsed.Lookup(keyEv(backend.KeyRune, 'u')); b.Action != ActionUndo {
		t.Errorf("u bound to %q", b.Action)
	}
	if b, _ := parsed.Lookup(keyEv(backend.KeyRune, 'x')); b.Keys != "x" {
		t.Errorf("binding keys = %q", b.Keys)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		km   *Keymap
	}{
		{"empty keys", (&Keymap{Name: "t"}).Add("", ActionUndo)},
		{"unknown action", (&Keymap{Name: "t"}).Add("u", "editor.save")},
		{"bad color", (&Keymap{Name: "t"}).Add("7", ColorAction(7))},
		{"bad keys", (&Keymap{Name: "t"}).Add("C-q", ActionUndo)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.km.Validate(); err == nil {
				t.Error("expected validation error")
			}
			if _, err := tt.km.Parse(); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestColorIndex(t *testing.T) {
	tests := []struct {
		action string
		want   int
		ok     bool
	}{
		{ColorAction(1), 1, true},
		{"marker.color.6", 6, true},
		{"marker.color.0", 0, false},
		{"marker.color.", 0, false},
		{"marker.color.x", 0, false},
		{ActionUndo, 0, false},
	}
	for _, tt := range tests {
		n, ok := ColorIndex(tt.action)
		if n != tt.want || ok != tt.ok {
			t.Errorf("ColorIndex(%q) = %d, %v; want %d, %v", tt.action, n, ok, tt.want, tt.ok)
		}
	}
}

func TestKeysFor(t *testing.T) {
	parsed, err := Default().Parse()
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	keys := parsed.KeysFor(ActionUndo)
	slices.Sort(keys)
	if !slices.Equal(keys, []string{"C-z", "u"}) {
		t.Errorf("KeysFor(undo) = %v", keys)
	}
}
