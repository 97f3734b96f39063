package keymap

import (
	"maps"
	"slices"
	"strconv"
)

// Action names.
const (
	ActionModeSelect      = "mode.select"
	ActionModeCreate      = "mode.create"
	ActionUndo            = "history.undo"
	ActionRedo            = "history.redo"
	ActionSelectAll       = "selection.all"
	ActionClearSelection  = "selection.clear"
	ActionDeleteSelection = "selection.delete"
	ActionZoomIn          = "view.zoomIn"
	ActionZoomOut         = "view.zoomOut"
	ActionPanLeft         = "view.panLeft"
	ActionPanRight        = "view.panRight"
	ActionPanUp           = "view.panUp"
	ActionPanDown         = "view.panDown"
	ActionFitView         = "view.fit"
	ActionCycleLabelKind  = "marker.cycleLabelKind"
	ActionToggleShape     = "marker.toggleShape"
	ActionToggleOutline   = "marker.toggleOutline"
	ActionExportSVG       = "export.svg"
	ActionExportPNG       = "export.png"
	ActionCopySVG         = "export.copySVG"
	ActionQuit            = "app.quit"

	// ActionColorPrefix is followed by the 1-based palette index.
	ActionColorPrefix = "marker.color."
)

// PaletteSize is the number of palette color actions.
const PaletteSize = 6

// ColorAction returns the action selecting palette color n (1-based).
func ColorAction(n int) string {
	return ActionColorPrefix + strconv.Itoa(n)
}

// ColorIndex returns the palette index of a color action.
func ColorIndex(action string) (int, bool) {
	if len(action) <= len(ActionColorPrefix) || action[:len(ActionColorPrefix)] != ActionColorPrefix {
		return 0, false
	}
	n, err := strconv.Atoi(action[len(ActionColorPrefix):])
	if err != nil || n < 1 || n > PaletteSize {
		return 0, false
	}
	return n, true
}

var actions = map[string]bool{
	ActionModeSelect: true, ActionModeCreate: true,
	ActionUndo: true, ActionRedo: true,
	ActionSelectAll: true, ActionClearSelection: true, ActionDeleteSelection: true,
	ActionZoomIn: true, ActionZoomOut: true,
	ActionPanLeft: true, ActionPanRight: true, ActionPanUp: true, ActionPanDown: true,
	ActionFitView:        true,
	ActionCycleLabelKind: true, ActionToggleShape: true, ActionToggleOutline: true,
	ActionExportSVG: true, ActionExportPNG: true, ActionCopySVG: true,
	ActionQuit: true,
}

// IsAction reports whether name is a known action.
func IsAction(name string) bool {
	if actions[name] {
		return true
	}
	_, ok := ColorIndex(name)
	return ok
}

// Default returns the default key bindings.
func Default() *Keymap {
	km := &Keymap{
		Name:   "default",
		Source: "default",
		Bindings: []Binding{
			// Tools
			{Keys: "s", Action: ActionModeSelect, Description: "Select tool", Category: "Tools"},
			{Keys: "c", Action: ActionModeCreate, Description: "Create tool", Category: "Tools"},

			// History
			{Keys: "u", Action: ActionUndo, Description: "Undo", Category: "History"},
			{Keys: "C-z", Action: ActionUndo, Description: "Undo", Category: "History"},
			{Keys: "r", Action: ActionRedo, Description: "Redo", Category: "History"},
			{Keys: "C-y", Action: ActionRedo, Description: "Redo", Category: "History"},

			// Selection
			{Keys: "C-a", Action: ActionSelectAll, Description: "Select all markers", Category: "Selection"},
			{Keys: "Esc", Action: ActionClearSelection, Description: "Clear selection", Category: "Selection"},
			{Keys: "Backspace", Action: ActionDeleteSelection, Description: "Delete selected markers", Category: "Selection"},
			{Keys: "Delete", Action: ActionDeleteSelection, Description: "Delete selected markers", Category: "Selection"},

			// View
			{Keys: "+", Action: ActionZoomIn, Description: "Zoom in", Category: "View"},
			{Keys: "=", Action: ActionZoomIn, Description: "Zoom in", Category: "View"},
			{Keys: "-", Action: ActionZoomOut, Description: "Zoom out", Category: "View"},
			{Keys: "Left", Action: ActionPanLeft, Description: "Pan left", Category: "View"},
			{Keys: "Right", Action: ActionPanRight, Description: "Pan right", Category: "View"},
			{Keys: "Up", Action: ActionPanUp, Description: "Pan up", Category: "View"},
			{Keys: "Down", Action: ActionPanDown, Description: "Pan down", Category: "View"},
			{Keys: "f", Action: ActionFitView, Description: "Fit board to window", Category: "View"},

			// Marker style
			{Keys: "l", Action: ActionCycleLabelKind, Description: "Cycle label kind", Category: "Style"},
			{Keys: "h", Action: ActionToggleShape, Description: "Toggle circle/square", Category: "Style"},
			{Keys: "o", Action: ActionToggleOutline, Description: "Toggle outline", Category: "Style"},

			// Export
			{Keys: "e", Action: ActionExportSVG, Description: "Export SVG", Category: "Export"},
			{Keys: "E", Action: ActionExportPNG, Description: "Export PNG", Category: "Export"},
			{Keys: "y", Action: ActionCopySVG, Description: "Copy SVG to clipboard", Category: "Export"},

			{Keys: "q", Action: ActionQuit, Description: "Quit", Category: "App"},
			{Keys: "C-c", Action: ActionQuit, Description: "Quit", Category: "App"},
		},
	}

	for n := 1; n <= PaletteSize; n++ {
		km.Bindings = append(km.Bindings, Binding{
			Keys:        strconv.Itoa(n),
			Action:      ColorAction(n),
			Description: "Palette color " + strconv.Itoa(n),
			Category:    "Style",
		})
	}
	return km
}

// FromMap builds a keymap from a key-to-action table, as found in the
// [keys] section of the config file.
func FromMap(name string, m map[string]string) *Keymap {
	km := &Keymap{Name: name, Source: "user"}
	for _, keys := range slices.Sorted(maps.Keys(m)) {
		km.Add(keys, m[keys])
	}
	return km
}
