package start2d

import "sync"

// HeadlessHost is a Host without a display, used for batch export and
// tests. Posted functions are queued until Drain runs them.
type HeadlessHost struct {
	// DPR is returned by DevicePixelRatio; zero means 1.
	DPR float64

	events *EventTarget

	mu        sync.Mutex
	size      Size
	queue     []func()
	mounted   [2]int
	wallpaper Wallpaper
	frames    []Frame
}

// NewHeadlessHost returns a headless host whose container has the given
// size in screen pixels.
func NewHeadlessHost(container Size) *HeadlessHost {
	return &HeadlessHost{size: container, events: NewEventTarget()}
}

// DevicePixelRatio returns DPR, or 1 when DPR is unset.
func (h *HeadlessHost) DevicePixelRatio() float64 {
	if h.DPR == 0 {
		return 1
	}
	return h.DPR
}

// ContainerSize returns the size set by NewHeadlessHost or SetContainerSize.
func (h *HeadlessHost) ContainerSize() Size {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}

// SetContainerSize changes the size reported by ContainerSize.
func (h *HeadlessHost) SetContainerSize(s Size) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.size = s
}

// Mount records the canvas pixel size; see Mounted. It never fails.
func (h *HeadlessHost) Mount(pixelWidth, pixelHeight int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mounted = [2]int{pixelWidth, pixelHeight}
	return nil
}

// Mounted returns the pixel size passed to the last Mount.
func (h *HeadlessHost) Mounted() (width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mounted[0], h.mounted[1]
}

// ApplyWallpaper records w as the container background.
func (h *HeadlessHost) ApplyWallpaper(w Wallpaper) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.wallpaper = w
}

// Wallpaper returns the last applied wallpaper.
func (h *HeadlessHost) Wallpaper() Wallpaper {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.wallpaper
}

// Present appends f to the presented frames.
func (h *HeadlessHost) Present(f Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frames = append(h.frames, f)
}

// Frame returns the last presented frame.
func (h *HeadlessHost) Frame() (Frame, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.frames) == 0 {
		return Frame{}, false
	}
	return h.frames[len(h.frames)-1], true
}

// Frames returns the number of frames presented so far.
func (h *HeadlessHost) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.frames)
}

// Events returns the target tests dispatch pointer events to.
func (h *HeadlessHost) Events() *EventTarget { return h.events }

// Post queues fn until the next Drain. It is safe for concurrent use.
func (h *HeadlessHost) Post(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queue = append(h.queue, fn)
}

// Drain runs the queued functions in the order they were posted,
// including any posted while draining. It returns how many ran.
func (h *HeadlessHost) Drain() int {
	n := 0
	for {
		h.mu.Lock()
		q := h.queue
		h.queue = nil
		h.mu.Unlock()
		if len(q) == 0 {
			return n
		}
		for _, fn := range q {
			fn()
			n++
		}
	}
}

// Pending returns the number of queued functions.
func (h *HeadlessHost) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queue)
}
