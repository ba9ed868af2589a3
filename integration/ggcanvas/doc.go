// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ggcanvas hosts a start2d artwork in a GPU window.
//
// Canvas implements start2d.Host. It composes the container (wallpaper,
// drop shadow and the artwork scaled to its on-screen rectangle) into a
// gg.Context of window size and uploads the pixels to a GPU texture:
//
//	artwork pixels -> gg.Context (compose) -> GPU texture -> window
//
// # Usage
//
//	canvas, err := ggcanvas.New(app.GPUContextProvider(), 1280, 800, 2)
//	if err != nil {
//	    return err
//	}
//	defer canvas.Close()
//
//	art, err := start2d.New(cfg, canvas)
//	if err != nil {
//	    return err
//	}
//	canvas.SetSource(art.Context().Image)
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    canvas.Drain()
//	    canvas.RenderTo(dc.AsTextureDrawer())
//	})
//
// On a window resize call Resize and then the artwork's ContainerResized.
//
// # Thread Safety
//
// Post may be called from any goroutine. Every other method belongs to the
// window's render loop, which must also call Drain once per frame.
//
// The package depends on gpucontext interfaces only, so it does not import
// a windowing library.
package ggcanvas
