// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package termview shows a start2d artwork in a terminal.
//
// The terminal is the container: each cell counts as CellWidth x CellHeight
// screen pixels, and the preview resolves every cell into two vertically
// stacked pixels drawn with the upper half block character. The data flow
// is:
//
//	gg.Context (export pixels) -> scaled preview (RGBA) -> half blocks -> terminal
//
// # Usage
//
//	host := termview.NewHost(80, 24)
//	a, err := start2d.New(cfg, host)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v := termview.NewViewer(host, a)
//	if err := v.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Input
//
// Mouse drag pans, the wheel zooms toward the pointer (Ctrl for larger
// steps, Alt for finer ones). Keys:
//
//	e  export PNG
//	f  zoom to fit
//	1  zoom to physical size
//	m  zoom to the maximum
//	d  toggle the coordinate readout
//	s  toggle the drop shadow
//	q  quit
//
// # Thread Safety
//
// The artwork is driven from the bubbletea event loop only. Host.Post and
// Viewer.Reload may be called from any goroutine.
package termview
