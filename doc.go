// Package start2d adds physical units, pan/zoom navigation and unit-aware
// PNG export to the gg 2D graphics library.
//
// # Overview
//
// An Artwork is a gg.Context sized in millimetres, centimetres, inches or
// pixels at a chosen export resolution. Drawing commands use those units
// directly; the context transform maps them to export pixels. A Host (a
// browser-like page, a terminal, or nothing at all) shows the canvas
// through a Viewport that fits, zooms and pans it inside a container.
//
// # Quick Start
//
//	cfg := start2d.DefaultConfig()
//	cfg.Size = start2d.Paper("A4")
//	cfg.Orientation = start2d.Landscape
//
//	host := start2d.NewHeadlessHost(start2d.Size{W: 1280, H: 800})
//	a, err := start2d.New(cfg, host)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer a.Close()
//
//	a.Draw(func(dc *gg.Context, s start2d.Snapshot) {
//	    dc.SetRGB(1, 1, 1)
//	    dc.DrawRectangle(0, 0, s.Width, s.Height)
//	    dc.Fill()
//	    dc.SetRGB(0, 0, 0)
//	    dc.SetLineWidth(0.5) // millimetres
//	    dc.DrawLine(0, 0, s.Width, s.Height)
//	    dc.Stroke()
//	})
//	path, err := a.ExportFile(".") // 3508x2480 px at 300ppi
//
// # Coordinate Spaces
//
//   - Drawing space: the configured unit, origin top-left.
//   - Export space: pixels of the PNG, UnitScale pixels per drawing unit.
//   - Screen space: container-relative pixels. A zoom of 1 shows one export
//     pixel per screen pixel; Geometry.Ratio shows the canvas at its
//     physical size on a display of the configured screen resolution.
//
// # Event Loop
//
// Artwork, Viewport and PointerHandler are single-threaded. Hosts dispatch
// input through an EventTarget and run deferred work (debounced reflows,
// loaded wallpapers) through Host.Post.
package start2d

// Version is the current version of the library.
const Version = "0.2.0"
