// Package viewport owns the pan/zoom transform of the drawing surface and
// converts between screen, viewport and world coordinates.
//
// Screen coordinates are what input devices report. Viewport coordinates are
// relative to the top-left corner of the drawing surface (the client rect).
// World coordinates are layout units produced by the geometry engine.
package viewport

import (
	"fmt"
	"math"
	"sync"
)

// Scale limits for user zoom gestures.
const (
	MinScale = 0.1
	MaxScale = 1000.0
)

// Point is a 2D location.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max Point
}

// RectFromPoints returns the bounding box of two corners.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		Min: Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// Width returns the horizontal size.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical size.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Transform is a uniform-scale affine transform: viewport = world*K + (X, Y).
type Transform struct {
	X, Y float64
	K    float64
}

// Identity is the transform that leaves points unchanged.
var Identity = Transform{K: 1}

// Apply maps a world point to viewport space.
func (t Transform) Apply(p Point) Point {
	return Point{X: p.X*t.K + t.X, Y: p.Y*t.K + t.Y}
}

// Invert maps a viewport point to world space.
func (t Transform) Invert(p Point) Point {
	return Point{X: (p.X - t.X) / t.K, Y: (p.Y - t.Y) / t.K}
}

func (t Transform) String() string {
	return fmt.Sprintf("translate(%g,%g) scale(%g)", t.X, t.Y, t.K)
}

// ClampScale limits k to [MinScale, MaxScale].
func ClampScale(k float64) float64 {
	return math.Max(MinScale, math.Min(MaxScale, k))
}

// ZoomAt returns t scaled by factor around the viewport point p, so the world
// point under p stays put. The resulting scale is clamped.
func (t Transform) ZoomAt(p Point, factor float64) Transform {
	k := ClampScale(t.K * factor)
	w := t.Invert(p)
	return Transform{X: p.X - w.X*k, Y: p.Y - w.Y*k, K: k}
}

// Pan returns t translated by a viewport-space offset.
func (t Transform) Pan(dx, dy float64) Transform {
	return Transform{X: t.X + dx, Y: t.Y + dy, K: t.K}
}

// Viewport holds the current transform and the client rectangle of the
// drawing surface. It is safe for concurrent use.
type Viewport struct {
	mu sync.RWMutex

	transform  Transform
	clientRect Rect
	zooming    bool
}

// New creates a viewport with the identity transform and the given client rect.
func New(clientRect Rect) *Viewport {
	return &Viewport{
		transform:  Identity,
		clientRect: clientRect,
	}
}

// Transform returns the current transform.
func (v *Viewport) Transform() Transform {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.transform
}

// SetTransform stores a transform without validation.
func (v *Viewport) SetTransform(t Transform) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.transform = t
}

// ClientRect returns the client rectangle in screen coordinates.
func (v *Viewport) ClientRect() Rect {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.clientRect
}

// SetClientRect stores the client rectangle.
func (v *Viewport) SetClientRect(r Rect) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.clientRect = r
}

// Zooming reports whether a zoom gesture is in progress.
func (v *Viewport) Zooming() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.zooming
}

// SetZooming records whether a zoom gesture is in progress.
func (v *Viewport) SetZooming(zooming bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.zooming = zooming
}

// WorldToViewport maps a world point into viewport space.
func (v *Viewport) WorldToViewport(x, y float64) Point {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.transform.Apply(Point{X: x, Y: y})
}

// ViewportToWorld maps a viewport point into world space.
func (v *Viewport) ViewportToWorld(x, y float64) Point {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.transform.Invert(Point{X: x, Y: y})
}

// ScreenToWorld maps a screen point into world space. The client rect origin
// is subtracted before the transform is inverted.
func (v *Viewport) ScreenToWorld(x, y float64) Point {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.transform.Invert(Point{X: x - v.clientRect.Min.X, Y: y - v.clientRect.Min.Y})
}

// WorldToScreen maps a world point into screen space.
func (v *Viewport) WorldToScreen(x, y float64) Point {
	v.mu.RLock()
	defer v.mu.RUnlock()
	p := v.transform.Apply(Point{X: x, Y: y})
	return Point{X: p.X + v.clientRect.Min.X, Y: p.Y + v.clientRect.Min.Y}
}

// ScaleLength converts a world length into viewport units.
func (v *Viewport) ScaleLength(l float64) float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return l * v.transform.K
}

// WorldRectToViewportRect maps a world rectangle into viewport space.
func (v *Viewport) WorldRectToViewportRect(r Rect) Rect {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return RectFromPoints(v.transform.Apply(r.Min), v.transform.Apply(r.Max))
}

// Extent returns the world rectangle visible through the client rect.
func (v *Viewport) Extent() Rect {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return RectFromPoints(
		v.transform.Invert(Point{}),
		v.transform.Invert(Point{X: v.clientRect.Width(), Y: v.clientRect.Height()}),
	)
}

// ZoomAt scales the current transform around a viewport point.
func (v *Viewport) ZoomAt(p Point, factor float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.transform = v.transform.ZoomAt(p, factor)
}

// Pan translates the current transform by a viewport-space offset.
func (v *Viewport) Pan(dx, dy float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.transform = v.transform.Pan(dx, dy)
}
