package start2d

import "math"

// Point is a position in screen pixels or a fraction pair, depending on use.
type Point struct {
	X, Y float64
}

// Size is a width/height pair in screen pixels.
type Size struct {
	W, H float64
}

// Rect is an on-screen rectangle in container-relative screen pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// ViewportState is a read-only snapshot of a Viewport.
type ViewportState struct {
	Zoom           float64
	FitZoom        float64
	MinZoomScaled  float64
	MaxZoomScaled  float64
	MinZoomCurrent float64
	Left, Top      float64
}

// Viewport positions and scales a canvas inside its container.
//
// A zoom of 1 shows one export pixel per screen pixel; Geometry.Ratio is
// the zoom at which the canvas appears at its physical size.
//
// Viewport is not safe for concurrent use; drive it from the host's event
// loop.
type Viewport struct {
	minZoom, maxZoom float64

	geo       Geometry
	container Size

	zoom           float64
	fitZoom        float64
	minZoomScaled  float64
	maxZoomScaled  float64
	minZoomCurrent float64
	left, top      float64

	initialized bool
	dragging    bool

	onChange func(ViewportState)
}

// NewViewport returns a viewport with the given user zoom bounds. The
// bounds are rescaled by the screen/export resolution ratio on Initialize.
func NewViewport(minZoom, maxZoom float64) *Viewport {
	return &Viewport{minZoom: minZoom, maxZoom: maxZoom}
}

// OnChange registers fn to be called after every change of zoom or
// position. Only one callback is kept.
func (v *Viewport) OnChange(fn func(ViewportState)) {
	v.onChange = fn
}

// Initialize computes the zoom bounds for geo inside container, zooms to
// fit and centers the canvas.
func (v *Viewport) Initialize(geo Geometry, container Size) {
	v.geo = geo
	if !v.initialized {
		// The zoom-out floor starts at the configured minZoom itself, not
		// its rescaled form; layout lowers it to the fit zoom when needed.
		v.minZoomCurrent = v.minZoom
		v.initialized = true
	}
	v.layout(container, true)
}

// Reflow recomputes the fit zoom for a new container size and zooms to
// fit. The canvas is re-centered unless a drag is in progress.
func (v *Viewport) Reflow(container Size) {
	if !v.initialized {
		return
	}
	v.layout(container, !v.dragging)
}

func (v *Viewport) layout(container Size, center bool) {
	v.container = container
	ratio := v.geo.Ratio()
	pw, ph := float64(v.geo.PixelWidth), float64(v.geo.PixelHeight)
	pad := 2 * v.geo.ScreenPadding

	v.minZoomScaled = math.Min(v.minZoom, v.minZoom*ratio)
	v.maxZoomScaled = math.Min(v.maxZoom, v.maxZoom*ratio)

	kw := (container.W - pad) / pw
	kh := (container.H - pad) / ph
	fit := math.Min(v.maxZoomScaled, math.Min(kw, kh))
	// Shrink to fit a large canvas, never enlarge a small one beyond
	// its physical size.
	fit = math.Min(ratio, fit)
	// A container smaller than its padding leaves nothing to fit into;
	// keep the canvas visible at a tiny but positive zoom.
	if !(fit > 0) {
		fit = math.Min(v.minZoomScaled, ratio) / 100
	}
	v.fitZoom = fit

	// One-sided: the current minimum follows the fit zoom down but never
	// rises again on later reflows.
	if v.fitZoom < v.minZoomCurrent {
		v.minZoomCurrent = v.fitZoom
	}

	v.zoom = v.fitZoom
	if center {
		v.center()
	}
	Logger().Debug("start2d: viewport layout",
		"container", container, "zoom", v.zoom,
		"minZoom", v.minZoomCurrent, "maxZoom", v.maxZoomScaled)
	v.changed()
}

func (v *Viewport) center() {
	v.left = (v.container.W - float64(v.geo.PixelWidth)*v.zoom) / 2
	v.top = (v.container.H - float64(v.geo.PixelHeight)*v.zoom) / 2
}

func (v *Viewport) clamp(z float64) float64 {
	return math.Max(v.minZoomCurrent, math.Min(v.maxZoomScaled, z))
}

// ZoomBy changes the zoom by delta, clamped to the current bounds, keeping
// the canvas point at anchor stationary on screen. anchor is a fraction of
// the displayed canvas size: (0, 0) is the top-left corner, (1, 1) the
// bottom-right.
func (v *Viewport) ZoomBy(delta float64, anchor Point) {
	if !v.initialized {
		return
	}
	old := v.zoom
	z := v.clamp(old + delta)
	if z == old {
		return
	}
	pw, ph := float64(v.geo.PixelWidth), float64(v.geo.PixelHeight)
	v.zoom = z
	v.left += (pw*old - pw*z) * anchor.X
	v.top += (ph*old - ph*z) * anchor.Y
	v.changed()
}

// SetZoom sets an absolute zoom, clamped to the current bounds, and
// re-centers the canvas.
func (v *Viewport) SetZoom(z float64) {
	if !v.initialized {
		return
	}
	v.zoom = v.clamp(z)
	v.center()
	v.changed()
}

// Pan moves the canvas so its top-left corner is at (left, top).
func (v *Viewport) Pan(left, top float64) {
	if !v.initialized {
		return
	}
	v.left, v.top = left, top
	v.changed()
}

// BeginDrag marks a drag in progress; Reflow keeps the position meanwhile.
func (v *Viewport) BeginDrag() { v.dragging = true }

// EndDrag ends a drag started by BeginDrag.
func (v *Viewport) EndDrag() { v.dragging = false }

// Dragging reports whether a drag is in progress.
func (v *Viewport) Dragging() bool { return v.dragging }

// Zoom returns the current zoom.
func (v *Viewport) Zoom() float64 { return v.zoom }

// FitZoom returns the zoom at which the canvas fits its container.
func (v *Viewport) FitZoom() float64 { return v.fitZoom }

// MaxZoom returns the upper zoom bound.
func (v *Viewport) MaxZoom() float64 { return v.maxZoomScaled }

// ActualSize returns the zoom that shows the canvas at its physical size.
func (v *Viewport) ActualSize() float64 { return v.geo.Ratio() }

// Geometry returns the geometry the viewport was last initialized with.
func (v *Viewport) Geometry() Geometry { return v.geo }

// Container returns the last container size.
func (v *Viewport) Container() Size { return v.container }

// CanvasRect returns the on-screen rectangle of the canvas.
func (v *Viewport) CanvasRect() Rect {
	return Rect{
		X: v.left,
		Y: v.top,
		W: float64(v.geo.PixelWidth) * v.zoom,
		H: float64(v.geo.PixelHeight) * v.zoom,
	}
}

// ScreenToDrawing maps a container-relative screen position to drawing
// space.
func (v *Viewport) ScreenToDrawing(p Point) Point {
	r := v.CanvasRect()
	if r.W == 0 || r.H == 0 {
		return Point{}
	}
	scale := float64(v.geo.PixelWidth) / r.W
	return Point{
		X: (p.X - r.X) * scale / v.geo.UnitScale,
		Y: (p.Y - r.Y) * scale / v.geo.UnitScale,
	}
}

// DrawingToScreen maps a drawing-space position to container-relative
// screen pixels.
func (v *Viewport) DrawingToScreen(p Point) Point {
	return Point{
		X: v.left + p.X*v.geo.UnitScale*v.zoom,
		Y: v.top + p.Y*v.geo.UnitScale*v.zoom,
	}
}

// State returns a snapshot of the viewport.
func (v *Viewport) State() ViewportState {
	return ViewportState{
		Zoom:           v.zoom,
		FitZoom:        v.fitZoom,
		MinZoomScaled:  v.minZoomScaled,
		MaxZoomScaled:  v.maxZoomScaled,
		MinZoomCurrent: v.minZoomCurrent,
		Left:           v.left,
		Top:            v.top,
	}
}

func (v *Viewport) changed() {
	if v.onChange != nil {
		v.onChange(v.State())
	}
}
