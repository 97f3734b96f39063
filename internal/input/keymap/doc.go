// Package keymap maps terminal key strokes to editor action names.
//
// A Keymap is a named list of bindings. Parsing it yields a ParsedKeymap
// that resolves backend key events to bindings; later bindings for the
// same stroke win, so user overrides are appended after the defaults.
//
// # Key Specifications
//
// Keys can be specified in several formats:
//
//	"u"        - Single character
//	"+"        - Punctuation
//	"C-z"      - Ctrl+Z (Vim notation)
//	"<C-z>"    - Ctrl+Z (angle bracket notation)
//	"Ctrl+Z"   - Ctrl+Z (readable notation)
//	"<Del>"    - Named key
//
// # Usage
//
//	km := keymap.Default()
//	km.Add("x", keymap.ActionDeleteSelection)
//	parsed, err := km.Parse()
//	if b, ok := parsed.Lookup(ev); ok {
//	    run(b.Action)
//	}
package keymap
