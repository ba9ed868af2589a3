// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggcanvas

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/start2d"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("ggcanvas: canvas is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("ggcanvas: invalid dimensions")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("ggcanvas: nil DeviceProvider")

	// ErrTextureCreationFailed is returned when texture creation fails.
	ErrTextureCreationFailed = errors.New("ggcanvas: texture creation failed")
)

// textureDestroyer matches the Destroy method of GPU textures.
type textureDestroyer interface {
	Destroy()
}

// Canvas is a start2d.Host backed by a GPU window. The container fills
// the window; its size is in screen pixels and the composed texture in
// device pixels.
type Canvas struct {
	provider gpucontext.DeviceProvider
	events   *start2d.EventTarget
	dpr      float64

	ctx       *gg.Context
	width     int
	height    int
	mounted   image.Point
	wallpaper start2d.Wallpaper
	frame     start2d.Frame
	source    func() image.Image

	texture     gpucontext.Texture
	oldTexture  gpucontext.Texture // replaced on resize, destroyed after the next upload
	dirty       bool
	sizeChanged bool
	closed      bool

	mu    sync.Mutex
	queue []func()
}

var _ start2d.Host = (*Canvas)(nil)

// New creates a Canvas for a window of width x height screen pixels with
// dpr device pixels per screen pixel; dpr below 1 means 1. The provider
// should come from the window's GPU context.
func New(provider gpucontext.DeviceProvider, width, height int, dpr float64) (*Canvas, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if !(dpr >= 1) {
		dpr = 1
	}

	// Non-fatal: without device sharing the accelerator opens its own device.
	if err := gg.SetAcceleratorDeviceProvider(provider); err != nil {
		start2d.Logger().Debug("ggcanvas: device not shared", "error", err)
	}

	w, h := devicePixels(width, dpr), devicePixels(height, dpr)
	return &Canvas{
		provider: provider,
		events:   start2d.NewEventTarget(),
		dpr:      dpr,
		ctx:      gg.NewContext(w, h),
		width:    width,
		height:   height,
		dirty:    true,
	}, nil
}

func devicePixels(n int, dpr float64) int {
	return max(int(math.Round(float64(n)*dpr)), 1)
}

// DevicePixelRatio returns the ratio given to New.
func (c *Canvas) DevicePixelRatio() float64 { return c.dpr }

// ContainerSize returns the window size in screen pixels.
func (c *Canvas) ContainerSize() start2d.Size {
	return start2d.Size{W: float64(c.width), H: float64(c.height)}
}

// Mount records the artwork's export size. It returns
// ErrInvalidDimensions unless both sides are positive.
func (c *Canvas) Mount(pixelWidth, pixelHeight int) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if pixelWidth <= 0 || pixelHeight <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, pixelWidth, pixelHeight)
	}
	c.mounted = image.Pt(pixelWidth, pixelHeight)
	c.dirty = true
	return nil
}

// Mounted returns the pixel size passed to the last Mount.
func (c *Canvas) Mounted() (width, height int) {
	return c.mounted.X, c.mounted.Y
}

// ApplyWallpaper sets the background composed behind the artwork.
func (c *Canvas) ApplyWallpaper(w start2d.Wallpaper) {
	c.wallpaper = w
	c.dirty = true
}

// Present stores f and flags the texture for upload on the next RenderTo.
func (c *Canvas) Present(f start2d.Frame) {
	c.frame = f
	c.dirty = true
}

// Frame returns the last presented frame.
func (c *Canvas) Frame() start2d.Frame { return c.frame }

// Events returns the target the window dispatches pointer input to.
func (c *Canvas) Events() *start2d.EventTarget { return c.events }

// Post queues fn for the next Drain. It is safe for concurrent use.
func (c *Canvas) Post(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = append(c.queue, fn)
}

// Drain runs the posted functions in order, including any posted while
// draining, and returns how many ran.
func (c *Canvas) Drain() int {
	n := 0
	for {
		c.mu.Lock()
		q := c.queue
		c.queue = nil
		c.mu.Unlock()
		if len(q) == 0 {
			return n
		}
		for _, fn := range q {
			fn()
		}
		n += len(q)
	}
}

// SetSource sets the function returning the artwork pixels, usually the
// artwork context's Image method. It is read on every upload.
func (c *Canvas) SetSource(src func() image.Image) {
	c.source = src
	c.dirty = true
}

// MarkDirty flags the canvas for upload on the next RenderTo. Present
// does this already; call it after drawing outside Artwork.Draw.
func (c *Canvas) MarkDirty() {
	c.dirty = true
}

// IsDirty reports whether the texture is out of date.
func (c *Canvas) IsDirty() bool {
	return c.dirty
}

// Context returns the compositing context, or nil once closed.
func (c *Canvas) Context() *gg.Context {
	if c.closed {
		return nil
	}
	return c.ctx
}

// Provider returns the DeviceProvider given to New, or nil once closed.
func (c *Canvas) Provider() gpucontext.DeviceProvider {
	if c.closed {
		return nil
	}
	return c.provider
}

// Texture returns the current GPU texture without uploading. It is nil
// before the first RenderTo and after a resize.
func (c *Canvas) Texture() gpucontext.Texture {
	return c.texture
}

// Resize changes the window size in screen pixels. The texture is
// recreated on the next RenderTo. Call the artwork's ContainerResized
// afterwards so the canvas is fitted again.
func (c *Canvas) Resize(width, height int) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if c.width == width && c.height == height {
		return nil
	}
	if err := c.ctx.Resize(devicePixels(width, c.dpr), devicePixels(height, c.dpr)); err != nil {
		return fmt.Errorf("ggcanvas: context resize failed: %w", err)
	}
	c.width = width
	c.height = height
	c.sizeChanged = true
	c.dirty = true
	return nil
}

// Flush composes the container into the context if it is dirty. It does
// not upload; RenderTo does.
func (c *Canvas) Flush() error {
	if c.closed {
		return ErrCanvasClosed
	}
	if !c.dirty {
		return nil
	}
	c.compose()
	if err := c.ctx.FlushGPU(); err != nil {
		// The CPU pixmap is still valid.
		start2d.Logger().Warn("ggcanvas: flush failed", "error", err)
	}
	return nil
}

// compose draws wallpaper, shadow and artwork in device pixels.
func (c *Canvas) compose() {
	dc := c.ctx
	dc.Identity()
	dc.ClearWithColor(c.wallpaper.Color)
	if c.wallpaper.Image != nil {
		dc.DrawImageEx(gg.ImageBufFromImage(c.wallpaper.Image), gg.DrawImageOptions{
			DstWidth:  float64(dc.Width()),
			DstHeight: float64(dc.Height()),
		})
	}

	f := c.frame
	if f.Shadow != nil {
		c.drawShadow(f.Canvas, *f.Shadow)
	}
	if c.source == nil || f.Canvas.W <= 0 || f.Canvas.H <= 0 {
		return
	}
	if img := c.source(); img != nil {
		r := c.device(f.Canvas)
		dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
			X:         r.X,
			Y:         r.Y,
			DstWidth:  r.W,
			DstHeight: r.H,
		})
	}
}

// drawShadow approximates the blurred shadow with a translucent halo of
// half the blur radius around the offset rectangle.
func (c *Canvas) drawShadow(canvas start2d.Rect, s start2d.ShadowStyle) {
	base := start2d.Rect{X: canvas.X + s.X, Y: canvas.Y + s.Y, W: canvas.W, H: canvas.H}
	if s.Blur > 0 {
		halo := s.Color
		halo.A /= 2
		r := s.Blur / 2
		c.fillRect(start2d.Rect{X: base.X - r, Y: base.Y - r, W: base.W + 2*r, H: base.H + 2*r}, halo)
	}
	c.fillRect(base, s.Color)
}

func (c *Canvas) fillRect(r start2d.Rect, col gg.RGBA) {
	d := c.device(r)
	c.ctx.SetColor(col)
	c.ctx.DrawRectangle(d.X, d.Y, d.W, d.H)
	_ = c.ctx.Fill()
}

// device converts a rectangle from screen to device pixels.
func (c *Canvas) device(r start2d.Rect) start2d.Rect {
	return start2d.Rect{X: r.X * c.dpr, Y: r.Y * c.dpr, W: r.W * c.dpr, H: r.H * c.dpr}
}

// Close releases the textures and the compositing context. Close is
// idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	destroy(c.oldTexture)
	c.oldTexture = nil
	destroy(c.texture)
	c.texture = nil

	if c.ctx != nil {
		_ = c.ctx.Close()
		c.ctx = nil
	}
	c.provider = nil
	return nil
}

func destroy(tex gpucontext.Texture) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}
