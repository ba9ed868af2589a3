package start2d

import "fmt"

// Wheel step modifiers.
const (
	coarseStep = 2.0
	fineStep   = 0.25
)

// PointerState is the drag and cursor state of a PointerHandler.
type PointerState struct {
	Dragging bool

	// DragStart is the pointer position when the drag began.
	DragStart Point
	// CanvasStart is the canvas offset when the drag began.
	CanvasStart Point

	// Cursor is the last pointer position in drawing space.
	Cursor Point
}

// Readout is the live cursor coordinate display.
type Readout struct {
	Visible  bool
	Decimals int
	Units    Unit
	Cursor   Point
}

// Text formats the cursor position, e.g. "12.34mm / 56.78mm".
func (r Readout) Text() string {
	return fmt.Sprintf("%.*f%s / %.*f%s", r.Decimals, r.Cursor.X, r.Units, r.Decimals, r.Cursor.Y, r.Units)
}

// PointerHandler turns pointer and wheel events into viewport operations
// and tracks the cursor position in drawing space.
type PointerHandler struct {
	vp      *Viewport
	zoomInc float64

	state   PointerState
	readout Readout

	target *EventTarget
	base   []ListenerID
	drag   []ListenerID

	onReadout func(Readout)
}

// NewPointerHandler returns a handler driving vp. zoomInc is the zoom
// change of one wheel step.
func NewPointerHandler(vp *Viewport, zoomInc float64, decimals int) *PointerHandler {
	return &PointerHandler{
		vp:      vp,
		zoomInc: zoomInc,
		readout: Readout{Decimals: decimals, Units: vp.Geometry().Units},
	}
}

// OnReadout registers fn to be called whenever the visible readout changes.
func (h *PointerHandler) OnReadout(fn func(Readout)) {
	h.onReadout = fn
}

// Attach registers the handler's move, down, up and wheel listeners on
// target. Drag listeners are added on pointer down and removed on release.
func (h *PointerHandler) Attach(target *EventTarget) {
	h.Detach()
	h.target = target
	h.base = []ListenerID{
		target.AddListener(PointerMove, h.guard("move", h.move)),
		target.AddListener(PointerDown, h.guard("down", h.down)),
		target.AddListener(PointerUp, h.guard("up", h.release)),
		target.AddListener(Wheel, h.guard("wheel", h.wheel)),
	}
}

// Detach removes every listener registered by the handler.
func (h *PointerHandler) Detach() {
	if h.target == nil {
		return
	}
	h.detachDrag()
	for _, id := range h.base {
		h.target.RemoveListener(id)
	}
	h.base = nil
	h.target = nil
}

// guard keeps a failing listener from unwinding into the host event loop.
func (h *PointerHandler) guard(name string, fn Listener) Listener {
	return func(ev *PointerEvent) {
		defer func() {
			if r := recover(); r != nil {
				Logger().Error("start2d: pointer handler failed", "event", name, "panic", r)
			}
		}()
		fn(ev)
	}
}

// State returns the current pointer state.
func (h *PointerHandler) State() PointerState { return h.state }

// Readout returns the current coordinate readout.
func (h *PointerHandler) Readout() Readout { return h.readout }

// SetReadoutVisible shows or hides the coordinate readout.
func (h *PointerHandler) SetReadoutVisible(visible bool) {
	h.readout.Visible = visible
	h.publish()
}

func (h *PointerHandler) move(ev *PointerEvent) {
	if h.state.Dragging {
		return
	}
	p := Point{X: ev.X, Y: ev.Y}
	h.state.Cursor = h.vp.ScreenToDrawing(p)
	h.readout.Units = h.vp.Geometry().Units
	h.readout.Cursor = h.state.Cursor
	if h.readout.Visible {
		h.publish()
	}
}

func (h *PointerHandler) down(ev *PointerEvent) {
	r := h.vp.CanvasRect()
	h.state.Dragging = true
	h.state.DragStart = Point{X: ev.X, Y: ev.Y}
	h.state.CanvasStart = Point{X: r.X, Y: r.Y}
	h.vp.BeginDrag()

	h.detachDrag()
	h.drag = []ListenerID{
		h.target.AddListener(PointerMove, h.guard("drag", h.dragMove)),
		h.target.AddListener(PointerLeave, h.guard("leave", h.release)),
	}
}

func (h *PointerHandler) dragMove(ev *PointerEvent) {
	if !h.state.Dragging {
		return
	}
	h.vp.Pan(
		h.state.CanvasStart.X+(ev.X-h.state.DragStart.X),
		h.state.CanvasStart.Y+(ev.Y-h.state.DragStart.Y),
	)
}

func (h *PointerHandler) release(*PointerEvent) {
	h.detachDrag()
	h.state.Dragging = false
	h.vp.EndDrag()
}

func (h *PointerHandler) detachDrag() {
	if h.target == nil {
		return
	}
	for _, id := range h.drag {
		h.target.RemoveListener(id)
	}
	h.drag = nil
}

func (h *PointerHandler) wheel(ev *PointerEvent) {
	ev.PreventDefault()

	step := h.zoomInc
	if ev.Ctrl {
		step *= coarseStep
	}
	if ev.Alt {
		step *= fineStep
	}
	switch {
	case ev.DeltaY > 0:
		step = -step
	case ev.DeltaY == 0:
		return
	}

	r := h.vp.CanvasRect()
	var anchor Point
	if r.W > 0 && r.H > 0 {
		anchor = Point{X: (ev.X - r.X) / r.W, Y: (ev.Y - r.Y) / r.H}
	}
	h.vp.ZoomBy(step, anchor)
}

func (h *PointerHandler) publish() {
	if h.onReadout != nil {
		h.onReadout(h.readout)
	}
}
