package start2d

import (
	"sync"
	"time"
)

// DefaultResizeDelay is the quiet period before a container resize reflows
// the viewport.
const DefaultResizeDelay = 200 * time.Millisecond

// timer is the part of *time.Timer the debouncer uses.
type timer interface {
	Stop() bool
}

type afterFunc func(d time.Duration, f func()) timer

func realAfterFunc(d time.Duration, f func()) timer {
	return time.AfterFunc(d, f)
}

// Debouncer coalesces rapid triggers into a single callback. Only the most
// recent callback runs, once the quiet period has elapsed without another
// Trigger.
type Debouncer struct {
	delay     time.Duration
	afterFunc afterFunc

	mu    sync.Mutex
	timer timer
	seq   uint64
}

// NewDebouncer returns a Debouncer with the given quiet period. A zero
// delay selects DefaultResizeDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultResizeDelay
	}
	return &Debouncer{delay: delay, afterFunc: realAfterFunc}
}

// Trigger schedules fn after the quiet period, cancelling any callback
// scheduled by an earlier Trigger.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.afterFunc(d.delay, func() {
		d.mu.Lock()
		// A timer that fired while being stopped must not run a stale callback.
		current := seq == d.seq
		if current {
			d.timer = nil
		}
		d.mu.Unlock()
		if current {
			fn()
		}
	})
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}
