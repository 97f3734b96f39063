package mouse

// DragState is a snapshot of the button gesture in progress.
type DragState struct {
	Active bool
	Button Button
	Shift  bool // shift was held at press

	// StartPos and CurrentPos are cell positions.
	StartPos   Position
	CurrentPos Position

	// Delta is CurrentPos minus StartPos, in cells.
	Delta Position
}

// gesture follows one button from press to release.
type gesture struct {
	button Button // ButtonNone when idle
	shift  bool
	from   Position
	last   Position
}

func (g *gesture) active() bool { return g.button != ButtonNone }

func (g *gesture) begin(pos Position, button Button, shift bool) {
	*g = gesture{button: button, shift: shift, from: pos, last: pos}
}

// moveTo records a new position and returns the step from the previous
// one.
func (g *gesture) moveTo(pos Position) Position {
	step := Position{X: pos.X - g.last.X, Y: pos.Y - g.last.Y}
	g.last = pos
	return step
}

// finish ends the gesture and returns the button that was held.
func (g *gesture) finish() Button {
	b := g.button
	*g = gesture{}
	return b
}

func (g *gesture) state() DragState {
	return DragState{
		Active:     g.active(),
		Button:     g.button,
		Shift:      g.shift,
		StartPos:   g.from,
		CurrentPos: g.last,
		Delta:      Position{X: g.last.X - g.from.X, Y: g.last.Y - g.from.Y},
	}
}
