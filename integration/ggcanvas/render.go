// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggcanvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
)

// ErrInvalidRenderer is returned when the draw context has no
// gpucontext.TextureCreator.
var ErrInvalidRenderer = errors.New("ggcanvas: draw context has no TextureCreator")

// RenderTo uploads the canvas if it is dirty and draws it at the window
// origin.
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    canvas.RenderTo(dc.AsTextureDrawer())
//	})
func (c *Canvas) RenderTo(dc gpucontext.TextureDrawer) error {
	return c.RenderToPosition(dc, 0, 0)
}

// RenderToPosition is like RenderTo but draws at (x, y) in device pixels.
func (c *Canvas) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if err := c.upload(dc); err != nil {
		return err
	}
	return dc.DrawTexture(c.texture, x, y)
}

// upload composes and writes the pixels to the texture, creating it on
// first use and after a resize.
func (c *Canvas) upload(dc gpucontext.TextureDrawer) error {
	// The old texture may still be read by in-flight command buffers, so
	// it is destroyed only once its replacement has been written.
	if c.sizeChanged {
		if c.texture != nil {
			destroy(c.oldTexture)
			c.oldTexture = c.texture
			c.texture = nil
		}
		c.sizeChanged = false
	}
	if !c.dirty && c.texture != nil {
		return nil
	}

	if err := c.Flush(); err != nil {
		return err
	}
	data := c.ctx.ResizeTarget().Data()

	if c.texture == nil {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrInvalidRenderer
		}
		tex, err := creator.NewTextureFromRGBA(c.ctx.Width(), c.ctx.Height(), data)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrTextureCreationFailed, err)
		}
		// gg pixels are premultiplied.
		if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}
		c.texture = tex
		destroy(c.oldTexture)
		c.oldTexture = nil
	} else if u, ok := c.texture.(gpucontext.TextureUpdater); ok {
		if err := u.UpdateData(data); err != nil {
			return fmt.Errorf("ggcanvas: texture update failed: %w", err)
		}
	}

	c.dirty = false
	return nil
}
