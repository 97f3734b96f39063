package viewport

import (
	"math"
	"sync"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func nearPoint(a, b Point) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

func TestNewViewport(t *testing.T) {
	v := New(Rect{Max: Point{X: 80, Y: 24}})

	if v.Transform() != Identity {
		t.Errorf("expected identity transform, got %v", v.Transform())
	}
	if v.Zooming() {
		t.Error("new viewport should not be zooming")
	}
	if got := v.ClientRect().Width(); got != 80 {
		t.Errorf("expected client width 80, got %v", got)
	}
}

func TestViewportRoundTrip(t *testing.T) {
	v := New(Rect{Min: Point{X: 10, Y: 5}, Max: Point{X: 110, Y: 105}})
	v.SetTransform(Transform{X: 30, Y: -12, K: 2.5})

	tests := []Point{{0, 0}, {1, 1}, {-40, 12.5}, {1400, 200}}
	for _, p := range tests {
		vp := v.WorldToViewport(p.X, p.Y)
		if got := v.ViewportToWorld(vp.X, vp.Y); !nearPoint(got, p) {
			t.Errorf("viewport round trip of %v = %v", p, got)
		}
		sp := v.WorldToScreen(p.X, p.Y)
		if got := v.ScreenToWorld(sp.X, sp.Y); !nearPoint(got, p) {
			t.Errorf("screen round trip of %v = %v", p, got)
		}
	}
}

func TestViewportScreenToWorld(t *testing.T) {
	v := New(Rect{Min: Point{X: 10, Y: 20}, Max: Point{X: 110, Y: 120}})
	v.SetTransform(Transform{X: 5, Y: 5, K: 2})

	got := v.ScreenToWorld(25, 45)
	want := Point{X: 5, Y: 10}
	if !nearPoint(got, want) {
		t.Errorf("ScreenToWorld = %v, want %v", got, want)
	}
}

func TestViewportScaleLength(t *testing.T) {
	v := New(Rect{})
	v.SetTransform(Transform{K: 4})
	if got := v.ScaleLength(3); got != 12 {
		t.Errorf("ScaleLength(3) = %v, want 12", got)
	}
}

func TestViewportMutatorsDoNotValidate(t *testing.T) {
	v := New(Rect{})
	v.SetTransform(Transform{K: 5000})
	if v.Transform().K != 5000 {
		t.Error("SetTransform should store the value as given")
	}
	v.SetZooming(true)
	if !v.Zooming() {
		t.Error("SetZooming(true) not stored")
	}
}

func TestViewportWorldRectToViewportRect(t *testing.T) {
	v := New(Rect{})
	v.SetTransform(Transform{X: 1, Y: 2, K: 3})

	got := v.WorldRectToViewportRect(Rect{Min: Point{X: 10, Y: 10}, Max: Point{X: 0, Y: 20}})
	want := Rect{Min: Point{X: 1, Y: 32}, Max: Point{X: 31, Y: 62}}
	if !nearPoint(got.Min, want.Min) || !nearPoint(got.Max, want.Max) {
		t.Errorf("WorldRectToViewportRect = %v, want %v", got, want)
	}
}

func TestViewportExtent(t *testing.T) {
	v := New(Rect{Min: Point{X: 100, Y: 100}, Max: Point{X: 300, Y: 200}})
	v.SetTransform(Transform{X: -20, Y: 10, K: 2})

	got := v.Extent()
	want := Rect{Min: Point{X: 10, Y: -5}, Max: Point{X: 110, Y: 45}}
	if !nearPoint(got.Min, want.Min) || !nearPoint(got.Max, want.Max) {
		t.Errorf("Extent = %v, want %v", got, want)
	}
}

func TestClampScale(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1, 1},
		{0.01, MinScale},
		{5000, MaxScale},
		{MinScale, MinScale},
	}
	for _, tt := range tests {
		if got := ClampScale(tt.in); got != tt.want {
			t.Errorf("ClampScale(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestZoomAtKeepsAnchor(t *testing.T) {
	tr := Transform{X: 12, Y: -3, K: 1.5}
	anchor := Point{X: 40, Y: 25}
	before := tr.Invert(anchor)

	zoomed := tr.ZoomAt(anchor, 2)
	if !near(zoomed.K, 3) {
		t.Errorf("zoomed scale = %v, want 3", zoomed.K)
	}
	if after := zoomed.Invert(anchor); !nearPoint(after, before) {
		t.Errorf("anchor moved from %v to %v", before, after)
	}

	if got := tr.ZoomAt(anchor, 1e6).K; got != MaxScale {
		t.Errorf("zoom scale not clamped: %v", got)
	}
}

func TestViewportPan(t *testing.T) {
	v := New(Rect{})
	v.Pan(3, -4)
	if got := v.Transform(); got.X != 3 || got.Y != -4 || got.K != 1 {
		t.Errorf("Pan = %v", got)
	}
}

func TestFitTransform(t *testing.T) {
	world := Rect{Min: Point{X: 0, Y: 0}, Max: Point{X: 400, Y: 200}}
	tr := FitTransform(world, 220, 220, UniformInsets(10))

	if !near(tr.K, 0.5) {
		t.Errorf("fit scale = %v, want 0.5", tr.K)
	}
	if got := tr.Apply(world.Min); !nearPoint(got, Point{X: 10, Y: 10}) {
		t.Errorf("world origin maps to %v", got)
	}

	if got := FitTransform(world, 5, 5, UniformInsets(10)); got != Identity {
		t.Errorf("fit into no space = %v, want identity", got)
	}
}

func TestViewportConcurrentAccess(t *testing.T) {
	v := New(Rect{Max: Point{X: 100, Y: 100}})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				v.Pan(1, 1)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = v.ScreenToWorld(10, 10)
			}
		}()
	}
	wg.Wait()

	if got := v.Transform().X; got != 1000 {
		t.Errorf("expected X 1000 after concurrent pans, got %v", got)
	}
}
