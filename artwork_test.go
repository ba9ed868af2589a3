package start2d

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/gg"
)

func withAfterFunc(f afterFunc) Option {
	return func(o *options) { o.afterFunc = f }
}

var testClock = func() time.Time { return time.Date(2019, 5, 13, 16, 11, 32, 0, time.Local) }

// smallConfig is a 50mm square at 300ppi, 591 px on each side.
func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Size = Dimensions(V(50, MM), V(50, MM))
	cfg.Seed = 7521
	return cfg
}

func newTestArtwork(t *testing.T, cfg Config, opts ...Option) (*Artwork, *HeadlessHost) {
	t.Helper()
	host := NewHeadlessHost(Size{W: 1280, H: 800})
	a, err := New(cfg, host, append([]Option{WithClock(testClock)}, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a, host
}

func TestNew(t *testing.T) {
	a, host := newTestArtwork(t, DefaultConfig())

	if w, h := host.Mounted(); w != 3508 || h != 2480 {
		t.Errorf("Mounted() = %d x %d, want 3508 x 2480", w, h)
	}
	if got := host.Wallpaper(); got.Color != gg.Hex("#808080") || got.Image != nil {
		t.Errorf("Wallpaper() = %+v, want #808080", got)
	}
	f, ok := host.Frame()
	if !ok {
		t.Fatal("no frame presented")
	}
	if f.PixelWidth != 3508 || f.Shadow == nil || f.Readout != "" {
		t.Errorf("Frame() = %+v", f)
	}
	if f.Canvas != a.CanvasRect() {
		t.Errorf("frame canvas %v, viewport canvas %v", f.Canvas, a.CanvasRect())
	}
	if n := host.Events().Len(PointerDown); n != 1 {
		t.Errorf("pointer down listeners = %d, want 1", n)
	}

	s := a.Snapshot()
	if s.Width != 297 || s.Height != 210 || s.Units != MM || s.PPI != 300 {
		t.Errorf("Snapshot() = %+v", s)
	}
	if s.Seed < 1000 || s.Seed >= 10000 || s.NoiseSeed != s.Seed {
		t.Errorf("seeds = %d/%d, want a random seed shared by both", s.Seed, s.NoiseSeed)
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(DefaultConfig(), nil); !errors.Is(err, ErrNilHost) {
		t.Errorf("New(nil host) error = %v, want ErrNilHost", err)
	}

	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"units", func(c *Config) { c.Units = "furlong" }},
		{"wallpaper color", func(c *Config) { c.WallpaperColor = "mauve-ish" }},
		{"shadow color", func(c *Config) { c.ShadowColor = "#12" }},
		{"zoom", func(c *Config) { c.MaxZoom = 0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(&cfg)
			host := NewHeadlessHost(Size{W: 800, H: 600})
			_, err := New(cfg, host)
			if !errors.Is(err, ErrConfig) {
				t.Fatalf("New() error = %v, want ErrConfig", err)
			}
			if w, _ := host.Mounted(); w != 0 {
				t.Error("canvas mounted despite configuration error")
			}
		})
	}
}

func TestArtworkSeeds(t *testing.T) {
	cfg := smallConfig()
	cfg.NoiseSeed = 99
	a, _ := newTestArtwork(t, cfg)

	s := a.Snapshot()
	if s.Seed != 7521 || s.NoiseSeed != 99 {
		t.Errorf("seeds = %d/%d, want 7521/99", s.Seed, s.NoiseSeed)
	}
	if got, want := a.Noise(1.5, 2.5, 0), NewNoise(99).At(1.5, 2.5, 0); got != want {
		t.Errorf("Noise() = %g, want %g", got, want)
	}
	if got, want := a.Rand().Float64(), newRand(7521).Float64(); got != want {
		t.Errorf("Rand().Float64() = %g, want %g", got, want)
	}
}

func TestArtworkDrawInUnits(t *testing.T) {
	a, _ := newTestArtwork(t, smallConfig())

	a.Context().Scale(3, 3)
	err := a.Draw(func(dc *gg.Context, s Snapshot) {
		dc.ClearWithColor(gg.RGB(1, 1, 1))
		dc.SetRGB(0, 0, 0)
		dc.DrawRectangle(0, 0, s.Width/2-0.1, s.Height/2-0.1)
		_ = dc.Fill()
	})
	if err != nil {
		t.Fatal(err)
	}

	img := a.Context().Image()
	if b := img.Bounds(); b.Dx() != 591 || b.Dy() != 591 {
		t.Fatalf("image bounds = %v, want 591x591", b)
	}
	if r, _, _, _ := img.At(150, 150).RGBA(); r > 0x2000 {
		t.Errorf("pixel inside the top-left quarter has red %#x, want black", r)
	}
	if r, _, _, _ := img.At(450, 450).RGBA(); r < 0xe000 {
		t.Errorf("pixel in the bottom-right quarter has red %#x, want white", r)
	}
}

func TestArtworkResetMatrix(t *testing.T) {
	a, _ := newTestArtwork(t, smallConfig())
	dc := a.Context()

	dc.Identity()
	a.ResetMatrix()
	dc.ClearWithColor(gg.RGB(1, 1, 1))
	dc.SetRGB(0, 0, 0)
	dc.DrawRectangle(25.4, 25.4, 10, 10)
	if err := dc.Fill(); err != nil {
		t.Fatal(err)
	}
	// 25.4mm is 300 px; the square spans 300..418 px.
	if r, _, _, _ := dc.Image().At(350, 350).RGBA(); r > 0x2000 {
		t.Errorf("pixel at 350,350 has red %#x, want black", r)
	}
	if r, _, _, _ := dc.Image().At(250, 250).RGBA(); r < 0xe000 {
		t.Errorf("pixel at 250,250 has red %#x, want white", r)
	}
}

func TestArtworkResize(t *testing.T) {
	a, host := newTestArtwork(t, smallConfig())
	first := a.Rand().Float64()
	second := a.Rand().Float64()

	if err := a.Resize(100, 50); err != nil {
		t.Fatal(err)
	}
	g := a.Geometry()
	if g.Width != 100 || g.Height != 50 || g.PixelWidth != 1181 || g.PixelHeight != 591 {
		t.Errorf("Geometry() = %+v, want 100x50mm at 1181x591", g)
	}
	if b := a.Context().Image().Bounds(); b.Dx() != 1181 || b.Dy() != 591 {
		t.Errorf("raster = %v, want 1181x591", b)
	}
	if got := a.Rand().Float64(); got != first {
		t.Errorf("Rand() not re-seeded: %g, want %g", got, first)
	}
	if f, _ := host.Frame(); f.PixelWidth != 1181 {
		t.Errorf("frame PixelWidth = %d, want 1181", f.PixelWidth)
	}
	if w, _ := host.Mounted(); w != 591 {
		t.Errorf("container remounted: width %d", w)
	}
	if got := a.Config().Size; got != Dimensions(V(100, MM), V(50, MM)) {
		t.Errorf("Config().Size = %s", got)
	}

	if err := a.Resize(0, 10); !errors.Is(err, ErrConfig) {
		t.Errorf("Resize(0, 10) error = %v, want ErrConfig", err)
	}
	if got := a.Rand().Float64(); got != second {
		t.Errorf("Rand() after a rejected resize = %g, want %g", got, second)
	}
	if g := a.Geometry(); g.Width != 100 {
		t.Errorf("Geometry().Width after a rejected resize = %g, want 100", g.Width)
	}
}

func TestArtworkExport(t *testing.T) {
	dir := t.TempDir()
	a, _ := newTestArtwork(t, smallConfig(), WithExportDir(dir))

	var buf bytes.Buffer
	if err := a.ExportTo(&buf); err != nil {
		t.Fatal(err)
	}
	pc, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if pc.Width != 591 || pc.Height != 591 {
		t.Errorf("PNG size = %dx%d, want 591x591", pc.Width, pc.Height)
	}

	if got, want := a.Filename(), "7521-artwork-20190513-161132.png"; got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
	path, err := a.Export()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "7521-artwork-20190513-161132.png") {
		t.Errorf("Export() path = %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}

func TestArtworkExportBadDir(t *testing.T) {
	a, _ := newTestArtwork(t, smallConfig())
	if _, err := a.ExportFile(filepath.Join(t.TempDir(), "missing", "dir")); err == nil {
		t.Error("ExportFile() into a missing directory succeeded")
	}
}

func TestArtworkContainerResized(t *testing.T) {
	fts := &fakeTimers{}
	a, host := newTestArtwork(t, DefaultConfig(), withAfterFunc(fts.afterFunc))
	before := a.ViewportState().Zoom

	host.SetContainerSize(Size{W: 640, H: 400})
	for range 10 {
		a.ContainerResized()
	}
	if host.Pending() != 0 {
		t.Fatal("reflow posted before the delay elapsed")
	}
	fts.fire()
	if n := host.Pending(); n != 1 {
		t.Fatalf("posted reflows = %d, want 1", n)
	}
	host.Drain()

	want := (400.0 - 76) / 2480
	if z := a.ViewportState().Zoom; !approx(z, want) || approx(z, before) {
		t.Errorf("zoom after reflow = %g, want %g", z, want)
	}
}

func TestArtworkZoomCommands(t *testing.T) {
	a, _ := newTestArtwork(t, DefaultConfig())

	a.ZoomToMax()
	if s := a.ViewportState(); !approx(s.Zoom, s.MaxZoomScaled) {
		t.Errorf("ZoomToMax() zoom = %g, want %g", s.Zoom, s.MaxZoomScaled)
	}
	a.ZoomToActualSize()
	if z := a.ViewportState().Zoom; !approx(z, 0.32) {
		t.Errorf("ZoomToActualSize() zoom = %g, want 0.32", z)
	}
	a.ZoomToFit()
	if s := a.ViewportState(); !approx(s.Zoom, s.FitZoom) {
		t.Errorf("ZoomToFit() zoom = %g, want %g", s.Zoom, s.FitZoom)
	}
}

func TestArtworkToggles(t *testing.T) {
	a, host := newTestArtwork(t, DefaultConfig())

	a.ToggleShadow()
	if f, _ := host.Frame(); f.Shadow != nil {
		t.Error("shadow still shown after ToggleShadow")
	}
	a.ToggleShadow()
	if f, _ := host.Frame(); f.Shadow == nil {
		t.Error("shadow hidden after second ToggleShadow")
	}

	a.ToggleReadout()
	r := a.CanvasRect()
	host.Events().Dispatch(PointerMove, &PointerEvent{X: r.X, Y: r.Y})
	f, _ := host.Frame()
	if f.Readout != "0.00mm / 0.00mm" {
		t.Errorf("Readout = %q, want 0.00mm / 0.00mm", f.Readout)
	}
	if c := a.Cursor(); !approx(c.X, 0) || !approx(c.Y, 0) {
		t.Errorf("Cursor() = %v, want origin", c)
	}
}

func TestArtworkWheelThroughHost(t *testing.T) {
	a, host := newTestArtwork(t, DefaultConfig())
	before := host.Frames()
	zoom := a.ViewportState().Zoom

	r := a.CanvasRect()
	host.Events().Dispatch(Wheel, &PointerEvent{X: r.X + r.W/2, Y: r.Y + r.H/2, DeltaY: -1})

	if host.Frames() <= before {
		t.Error("wheel zoom presented no frame")
	}
	if f, _ := host.Frame(); !approx(f.Zoom, zoom+0.025) {
		t.Errorf("frame zoom = %g, want %g", f.Zoom, zoom+0.025)
	}
}

func TestArtworkWallpaperFallback(t *testing.T) {
	cfg := smallConfig()
	cfg.WallpaperColor = "#102030"
	cfg.WallpaperImage = filepath.Join(t.TempDir(), "missing.png")
	_, host := newTestArtwork(t, cfg)

	deadline := time.Now().Add(5 * time.Second)
	for host.Pending() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("wallpaper result never posted")
		}
		time.Sleep(5 * time.Millisecond)
	}
	host.Drain()
	if w := host.Wallpaper(); w.Color != gg.Hex("#102030") || w.Image != nil {
		t.Errorf("Wallpaper() = %+v, want fallback color", w)
	}
}

func TestArtworkWallpaperImage(t *testing.T) {
	cfg := smallConfig()
	cfg.WallpaperImage = writeTestPNG(t, 8, 8)
	_, host := newTestArtwork(t, cfg)

	deadline := time.Now().Add(5 * time.Second)
	for host.Pending() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("wallpaper result never posted")
		}
		time.Sleep(5 * time.Millisecond)
	}
	host.Drain()
	if w := host.Wallpaper(); w.Image == nil {
		t.Error("wallpaper image not applied")
	}
}

func TestArtworkClose(t *testing.T) {
	fts := &fakeTimers{}
	a, host := newTestArtwork(t, smallConfig(), withAfterFunc(fts.afterFunc))

	a.ContainerResized()
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}

	fts.fire()
	if host.Pending() != 0 {
		t.Error("reflow posted after Close")
	}
	for _, typ := range []EventType{PointerMove, PointerDown, PointerUp, Wheel} {
		if n := host.Events().Len(typ); n != 0 {
			t.Errorf("Len(%s) = %d after Close, want 0", typ, n)
		}
	}
	if err := a.Draw(func(*gg.Context, Snapshot) {}); !errors.Is(err, ErrClosed) {
		t.Errorf("Draw() after Close = %v, want ErrClosed", err)
	}
	if err := a.Resize(10, 10); !errors.Is(err, ErrClosed) {
		t.Errorf("Resize() after Close = %v, want ErrClosed", err)
	}
	if err := a.ExportTo(&bytes.Buffer{}); !errors.Is(err, ErrClosed) {
		t.Errorf("ExportTo() after Close = %v, want ErrClosed", err)
	}
}
