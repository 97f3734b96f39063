package viewport

import "math"

// Insets is empty space kept around content when fitting it to the surface.
type Insets struct {
	Top, Bottom, Left, Right float64
}

// UniformInsets returns insets with the same value on every side.
func UniformInsets(v float64) Insets {
	return Insets{Top: v, Bottom: v, Left: v, Right: v}
}

// FitTransform returns the transform that scales world to fill a client
// area of the given size, keeping aspect ratio, with content anchored to
// the inset corner.
func FitTransform(world Rect, width, height float64, in Insets) Transform {
	availW := width - in.Left - in.Right
	availH := height - in.Top - in.Bottom
	if world.Width() <= 0 || world.Height() <= 0 || availW <= 0 || availH <= 0 {
		return Identity
	}
	k := ClampScale(math.Min(availW/world.Width(), availH/world.Height()))
	return Transform{
		X: in.Left - world.Min.X*k,
		Y: in.Top - world.Min.Y*k,
		K: k,
	}
}

// Fit sets the transform so that world fills the client rect.
func (v *Viewport) Fit(world Rect, in Insets) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.transform = FitTransform(world, v.clientRect.Width(), v.clientRect.Height(), in)
}
