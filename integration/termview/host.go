// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package termview

import (
	"errors"
	"fmt"
	"image"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gogpu/start2d"
)

// Terminal cell size in screen pixels.
const (
	CellWidth  = 8
	CellHeight = 16
)

// statusRows is the number of terminal rows below the preview.
const statusRows = 1

// ErrInvalidDimensions is returned by Mount for an empty canvas.
var ErrInvalidDimensions = errors.New("termview: invalid dimensions")

// postMsg carries work posted to the event loop.
type postMsg struct {
	fns []func()
}

// Host is a start2d.Host backed by a terminal. The container is the
// terminal minus the status line.
type Host struct {
	events *start2d.EventTarget

	mu         sync.Mutex
	cols, rows int
	mounted    image.Point
	wallpaper  start2d.Wallpaper
	frame      start2d.Frame
	send       func(tea.Msg)
	queue      []func()
}

var _ start2d.Host = (*Host)(nil)

// NewHost returns a host for a terminal of cols x rows cells. The size is
// updated from window size messages once the viewer runs.
func NewHost(cols, rows int) *Host {
	return &Host{cols: cols, rows: rows, events: start2d.NewEventTarget()}
}

// DevicePixelRatio is always 1: terminal cells have no device pixels.
func (h *Host) DevicePixelRatio() float64 { return 1 }

// ContainerSize returns the preview area in screen pixels.
func (h *Host) ContainerSize() start2d.Size {
	h.mu.Lock()
	defer h.mu.Unlock()
	return start2d.Size{
		W: float64(h.cols * CellWidth),
		H: float64(max(h.rows-statusRows, 0) * CellHeight),
	}
}

// SetTerminalSize records a new terminal size in cells.
func (h *Host) SetTerminalSize(cols, rows int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cols, h.rows = cols, rows
}

// TerminalSize returns the terminal size in cells.
func (h *Host) TerminalSize() (cols, rows int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cols, h.rows
}

// Mount records the canvas export size. It returns ErrInvalidDimensions
// unless both sides are positive.
func (h *Host) Mount(pixelWidth, pixelHeight int) error {
	if pixelWidth <= 0 || pixelHeight <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, pixelWidth, pixelHeight)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mounted = image.Pt(pixelWidth, pixelHeight)
	return nil
}

// Mounted returns the canvas pixel size passed to the last Mount.
func (h *Host) Mounted() (width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mounted.X, h.mounted.Y
}

// ApplyWallpaper sets the background drawn behind the canvas preview.
func (h *Host) ApplyWallpaper(w start2d.Wallpaper) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.wallpaper = w
}

// Wallpaper returns the current container background.
func (h *Host) Wallpaper() start2d.Wallpaper {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.wallpaper
}

// Present stores f for the next View of the viewer.
func (h *Host) Present(f start2d.Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frame = f
}

// Frame returns the last presented frame.
func (h *Host) Frame() start2d.Frame {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frame
}

// Events returns the target the viewer dispatches mouse input to.
func (h *Host) Events() *start2d.EventTarget { return h.events }

// Post runs fn on the viewer's event loop. Functions posted before the
// viewer starts run when it does.
func (h *Host) Post(fn func()) {
	h.mu.Lock()
	send := h.send
	if send == nil {
		h.queue = append(h.queue, fn)
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()
	// Send blocks until the loop receives; never block the caller, which
	// may be the loop itself.
	go send(postMsg{fns: []func(){fn}})
}

// attach connects the host to a program and returns the functions queued
// so far.
func (h *Host) attach(send func(tea.Msg)) []func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.send = send
	q := h.queue
	h.queue = nil
	return q
}
