package start2d

import (
	"math"
	"testing"
)

func mustGeometry(t *testing.T, cfg Config) Geometry {
	t.Helper()
	g, err := ComputeGeometry(cfg, 1)
	if err != nil {
		t.Fatalf("ComputeGeometry() error = %v", err)
	}
	return g
}

// newTestViewport returns an A4 landscape viewport at 300ppi in a
// 1280x800 container: 3508x2480 px, ratio 0.32, 38 px padding.
func newTestViewport(t *testing.T) *Viewport {
	t.Helper()
	cfg := DefaultConfig()
	vp := NewViewport(cfg.MinZoom, cfg.MaxZoom)
	vp.Initialize(mustGeometry(t, cfg), Size{W: 1280, H: 800})
	return vp
}

func TestViewportInitialize(t *testing.T) {
	vp := newTestViewport(t)
	s := vp.State()

	wantFit := (800.0 - 76) / 2480
	if !approx(s.FitZoom, wantFit) || !approx(s.Zoom, wantFit) {
		t.Errorf("zoom = %g (fit %g), want %g", s.Zoom, s.FitZoom, wantFit)
	}
	if !approx(s.MinZoomScaled, 0.064) || !approx(s.MaxZoomScaled, 0.64) {
		t.Errorf("bounds = [%g, %g], want [0.064, 0.64]", s.MinZoomScaled, s.MaxZoomScaled)
	}
	if !approx(s.MinZoomCurrent, 0.2) {
		t.Errorf("MinZoomCurrent = %g, want minZoom 0.2", s.MinZoomCurrent)
	}

	r := vp.CanvasRect()
	if !approx(r.Y, 38) || !approx(r.X, (1280-r.W)/2) {
		t.Errorf("canvas rect = %+v, want centered with top 38", r)
	}
}

func TestViewportZoomClamp(t *testing.T) {
	vp := newTestViewport(t)

	vp.ZoomBy(100, Point{X: 0.5, Y: 0.5})
	if z := vp.Zoom(); !approx(z, 0.64) {
		t.Errorf("ZoomBy(+100) zoom = %g, want 0.64", z)
	}
	vp.ZoomBy(-100, Point{X: 0.5, Y: 0.5})
	if z := vp.Zoom(); !approx(z, 0.2) {
		t.Errorf("ZoomBy(-100) zoom = %g, want 0.2", z)
	}

	vp.SetZoom(10)
	if z := vp.Zoom(); !approx(z, 0.64) {
		t.Errorf("SetZoom(10) zoom = %g, want 0.64", z)
	}
	vp.SetZoom(0)
	if z := vp.Zoom(); !approx(z, 0.2) {
		t.Errorf("SetZoom(0) zoom = %g, want 0.2", z)
	}
}

func TestViewportZoomBounded(t *testing.T) {
	vp := newTestViewport(t)
	steps := []float64{0.3, -0.05, 0.2, -1, 0.025, 0.025, 5, -0.4, -0.4, 0.001}
	for i, d := range steps {
		vp.ZoomBy(d, Point{X: 0.3, Y: 0.7})
		s := vp.State()
		if s.Zoom < s.MinZoomCurrent-epsilon || s.Zoom > s.MaxZoomScaled+epsilon {
			t.Errorf("step %d: zoom %g outside [%g, %g]", i, s.Zoom, s.MinZoomCurrent, s.MaxZoomScaled)
		}
	}
}

func TestViewportZoomAnchor(t *testing.T) {
	screen := []Point{{640, 400}, {300, 120}, {1000, 700}, {500, 500}}
	for _, p := range screen {
		vp := newTestViewport(t)
		before := vp.ScreenToDrawing(p)

		r := vp.CanvasRect()
		anchor := Point{X: (p.X - r.X) / r.W, Y: (p.Y - r.Y) / r.H}
		vp.ZoomBy(0.1, anchor)

		after := vp.DrawingToScreen(before)
		if d := math.Hypot(after.X-p.X, after.Y-p.Y); d >= 1 {
			t.Errorf("anchor %v moved to %v (%.3f px)", p, after, d)
		}
	}
}

func TestViewportFloorFollowsFitBelowMinZoom(t *testing.T) {
	// minZoom 0.5 lies above the physical-size zoom 0.32, so the fit zoom
	// is always lower and becomes the floor.
	cfg := DefaultConfig()
	cfg.MinZoom = 0.5
	geo := mustGeometry(t, cfg)
	vp := NewViewport(cfg.MinZoom, cfg.MaxZoom)
	vp.Initialize(geo, Size{W: 1280, H: 800})

	s := vp.State()
	if !approx(s.MinZoomCurrent, s.FitZoom) {
		t.Errorf("MinZoomCurrent = %g, want fit zoom %g", s.MinZoomCurrent, s.FitZoom)
	}
	vp.ZoomBy(-1, Point{X: 0.5, Y: 0.5})
	if z := vp.Zoom(); !approx(z, s.FitZoom) {
		t.Errorf("ZoomBy(-1) zoom = %g, want fit zoom %g", z, s.FitZoom)
	}
}

func TestViewportNoChangeAtBound(t *testing.T) {
	vp := newTestViewport(t)
	vp.SetZoom(vp.MaxZoom())

	calls := 0
	vp.OnChange(func(ViewportState) { calls++ })
	vp.ZoomBy(0.5, Point{})
	if calls != 0 {
		t.Errorf("ZoomBy at max bound notified %d times, want 0", calls)
	}
}

func TestViewportRatchet(t *testing.T) {
	vp := newTestViewport(t)

	vp.Reflow(Size{W: 200, H: 200})
	small := (200.0 - 76) / 3508
	s := vp.State()
	if !approx(s.MinZoomCurrent, small) || !approx(s.Zoom, small) {
		t.Errorf("after shrink: min %g zoom %g, want %g", s.MinZoomCurrent, s.Zoom, small)
	}

	vp.Reflow(Size{W: 1280, H: 800})
	s = vp.State()
	if !approx(s.MinZoomCurrent, small) {
		t.Errorf("after grow: MinZoomCurrent = %g, want it to stay at %g", s.MinZoomCurrent, small)
	}
	if !approx(s.Zoom, (800.0-76)/2480) {
		t.Errorf("after grow: zoom = %g, want fit", s.Zoom)
	}
}

func TestViewportDegenerateContainer(t *testing.T) {
	vp := newTestViewport(t)
	vp.Reflow(Size{W: 50, H: 50})
	if z := vp.Zoom(); !(z > 0) {
		t.Errorf("zoom = %g, want positive", z)
	}
	if z := vp.Zoom(); !approx(z, 0.00064) {
		t.Errorf("zoom = %g, want 0.00064", z)
	}
}

func TestViewportSmallCanvasPhysicalSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = Dimensions(V(20, MM), V(10, MM))
	vp := NewViewport(cfg.MinZoom, cfg.MaxZoom)
	vp.Initialize(mustGeometry(t, cfg), Size{W: 1920, H: 1080})

	if z := vp.Zoom(); !approx(z, 0.32) {
		t.Errorf("zoom = %g, want physical size 0.32", z)
	}
	if z := vp.ActualSize(); !approx(z, 0.32) {
		t.Errorf("ActualSize() = %g, want 0.32", z)
	}
}

func TestViewportReflowWhileDragging(t *testing.T) {
	vp := newTestViewport(t)
	vp.Pan(10, 20)
	vp.BeginDrag()
	vp.Reflow(Size{W: 1600, H: 900})

	if r := vp.CanvasRect(); r.X != 10 || r.Y != 20 {
		t.Errorf("canvas moved to %v,%v during drag", r.X, r.Y)
	}
	vp.EndDrag()
	vp.Reflow(Size{W: 1600, H: 900})
	if r := vp.CanvasRect(); r.X == 10 && r.Y == 20 {
		t.Error("canvas not re-centered after drag ended")
	}
}

func TestViewportUninitialized(t *testing.T) {
	vp := NewViewport(0.2, 2)
	calls := 0
	vp.OnChange(func(ViewportState) { calls++ })
	vp.ZoomBy(1, Point{})
	vp.SetZoom(1)
	vp.Pan(1, 1)
	vp.Reflow(Size{W: 100, H: 100})
	if calls != 0 {
		t.Errorf("uninitialized viewport notified %d times", calls)
	}
	if p := vp.ScreenToDrawing(Point{X: 5, Y: 5}); p != (Point{}) {
		t.Errorf("ScreenToDrawing() = %v, want origin", p)
	}
}

func TestViewportMapping(t *testing.T) {
	vp := newTestViewport(t)
	r := vp.CanvasRect()

	if p := vp.ScreenToDrawing(Point{X: r.X, Y: r.Y}); !approx(p.X, 0) || !approx(p.Y, 0) {
		t.Errorf("top-left maps to %v, want origin", p)
	}
	// The raster is rounded to whole pixels, so the far edge lands within
	// half a pixel of the drawing size.
	br := vp.ScreenToDrawing(Point{X: r.X + r.W, Y: r.Y + r.H})
	if math.Abs(br.X-297) > 0.05 || math.Abs(br.Y-210) > 0.05 {
		t.Errorf("bottom-right maps to %v, want about 297,210", br)
	}

	p := Point{X: 123.5, Y: 45.25}
	back := vp.ScreenToDrawing(vp.DrawingToScreen(p))
	if !approx(back.X, p.X) || !approx(back.Y, p.Y) {
		t.Errorf("round trip %v = %v", p, back)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 10}
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{10, 10}, true},
		{Point{29.9, 19.9}, true},
		{Point{30, 15}, false},
		{Point{15, 9}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}
