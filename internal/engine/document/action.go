package document

// ActionKind identifies a pending bulk edit.
type ActionKind string

const (
	ActionNone     ActionKind = ""
	ActionSetLabel ActionKind = "set-label"
	ActionSetShape ActionKind = "set-shape"
	ActionSetColor ActionKind = "set-color"
)

// Mixed is reported by aggregate views when the selection disagrees.
const Mixed = "mixed"

// Values reported by aggregate views over an empty selection.
const (
	emptyLabelKind = string(LabelNoteName)
	emptyLabel     = ""
	emptyShape     = string(ShapeCircle)
	emptyColor     = "black"
)

// Action is a pending bulk edit over the selection it belongs to.
// Views and setters always read the live selection.
type Action struct {
	Kind ActionKind
	sel  *Selection
}

func aggregate(items []*Marker, get func(*Marker) string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	v := get(items[0])
	for _, m := range items[1:] {
		if get(m) != v {
			return Mixed
		}
	}
	return v
}

// LabelKind returns the shared label kind, or Mixed.
func (a *Action) LabelKind() string {
	return aggregate(a.sel.Items(), func(m *Marker) string {
		return string(m.style.LabelKind)
	}, emptyLabelKind)
}

// Label returns the shared label text, or Mixed.
func (a *Action) Label() string {
	return aggregate(a.sel.Items(), func(m *Marker) string {
		return m.style.Label
	}, emptyLabel)
}

// Shape returns the shared shape, or Mixed.
func (a *Action) Shape() string {
	return aggregate(a.sel.Items(), func(m *Marker) string {
		return string(m.style.Shape)
	}, emptyShape)
}

// Color returns the shared color, or Mixed.
func (a *Action) Color() string {
	return aggregate(a.sel.Items(), func(m *Marker) string {
		return m.style.Color
	}, emptyColor)
}

// SetLabel sets the label text of every selected marker and switches them
// to manual labels.
func (a *Action) SetLabel(label string) {
	for _, m := range a.sel.Items() {
		m.SetLabelKind(LabelManual)
		m.SetLabel(label)
	}
}

// SetLabelKind sets the label kind of every selected marker.
func (a *Action) SetLabelKind(kind LabelKind) {
	for _, m := range a.sel.Items() {
		m.SetLabelKind(kind)
	}
}

// ClearLabel empties the manual label of every selected marker.
func (a *Action) ClearLabel() {
	a.SetLabel("")
}

// SetShape sets the shape of every selected marker.
func (a *Action) SetShape(shape Shape) {
	for _, m := range a.sel.Items() {
		m.SetShape(shape)
	}
}

// SetColor sets the color of every selected marker.
func (a *Action) SetColor(color string) {
	for _, m := range a.sel.Items() {
		m.SetColor(color)
	}
}

// SetOutline sets the outline flag of every selected marker.
func (a *Action) SetOutline(outline bool) {
	for _, m := range a.sel.Items() {
		m.SetOutline(outline)
	}
}
