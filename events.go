package start2d

// EventType identifies a pointer event kind.
type EventType int

// Pointer event kinds dispatched by hosts.
const (
	PointerMove EventType = iota
	PointerDown
	PointerUp
	PointerLeave
	Wheel
)

func (t EventType) String() string {
	switch t {
	case PointerMove:
		return "pointermove"
	case PointerDown:
		return "pointerdown"
	case PointerUp:
		return "pointerup"
	case PointerLeave:
		return "pointerleave"
	case Wheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// PointerEvent is a pointer or wheel event in container-relative screen
// pixels.
type PointerEvent struct {
	X, Y float64

	// DeltaY is the wheel delta; negative values scroll up.
	DeltaY float64

	Ctrl, Alt, Shift bool

	defaultPrevented bool
}

// PreventDefault tells the host to suppress its default handling, such as
// scrolling the page on wheel events.
func (e *PointerEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *PointerEvent) DefaultPrevented() bool { return e.defaultPrevented }

// Listener handles a dispatched event.
type Listener func(*PointerEvent)

// ListenerID identifies a registered listener.
type ListenerID uint64

type registration struct {
	id ListenerID
	fn Listener
}

// EventTarget is a listener registry for one canvas. Hosts translate their
// native input into Dispatch calls.
//
// EventTarget is not safe for concurrent use.
type EventTarget struct {
	next      ListenerID
	listeners map[EventType][]registration
}

// NewEventTarget returns an empty EventTarget.
func NewEventTarget() *EventTarget {
	return &EventTarget{listeners: make(map[EventType][]registration)}
}

// AddListener registers fn for events of type t.
func (et *EventTarget) AddListener(t EventType, fn Listener) ListenerID {
	if et.listeners == nil {
		et.listeners = make(map[EventType][]registration)
	}
	et.next++
	et.listeners[t] = append(et.listeners[t], registration{id: et.next, fn: fn})
	return et.next
}

// RemoveListener unregisters the listener with the given id. Removing an
// unknown or already removed listener does nothing.
func (et *EventTarget) RemoveListener(id ListenerID) {
	for t, regs := range et.listeners {
		for i, r := range regs {
			if r.id == id {
				// Copy so a Dispatch in progress keeps iterating its own slice.
				kept := make([]registration, 0, len(regs)-1)
				kept = append(kept, regs[:i]...)
				kept = append(kept, regs[i+1:]...)
				et.listeners[t] = kept
				return
			}
		}
	}
}

// Dispatch calls the listeners registered for t in registration order.
// Listeners added or removed during dispatch take effect on the next event.
func (et *EventTarget) Dispatch(t EventType, ev *PointerEvent) {
	for _, r := range et.listeners[t] {
		r.fn(ev)
	}
}

// Len returns the number of listeners registered for t.
func (et *EventTarget) Len(t EventType) int {
	return len(et.listeners[t])
}
