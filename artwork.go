package start2d

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
)

// ErrNilHost is returned by New when no host is given.
var ErrNilHost = errors.New("start2d: nil host")

// Snapshot is the read-only sizing information handed to drawing code.
type Snapshot struct {
	// Width and Height are the drawing-space size in Units.
	Width, Height float64

	// PixelWidth and PixelHeight are the export raster size.
	PixelWidth, PixelHeight int

	Units Unit
	PPI   Resolution

	Seed      int64
	NoiseSeed int64
}

// Artwork is a canvas measured in physical units, shown through a pan/zoom
// viewport in a Host and exported as PNG. It wraps a gg.Context whose
// transform maps drawing units to export pixels.
//
// Artwork is not safe for concurrent use: call its methods from the host's
// event loop.
type Artwork struct {
	cfg  Config
	host Host
	opts options

	geo    Geometry
	dc     *gg.Context
	vp     *Viewport
	ptr    *PointerHandler
	shadow Shadow

	seed      int64
	noiseSeed int64
	rng       *rand.Rand
	noise     *Noise

	resize *Debouncer
	cancel context.CancelFunc
	closed bool
}

// New creates an artwork for cfg inside host. Configuration problems are
// reported as *ConfigError and abort creation.
func New(cfg Config, host Host, opts ...Option) (*Artwork, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	geo, err := ComputeGeometry(cfg, host.DevicePixelRatio())
	if err != nil {
		return nil, err
	}
	shadow, err := newShadow(cfg, geo)
	if err != nil {
		return nil, err
	}
	wallColor, err := ParseColor(cfg.WallpaperColor)
	if err != nil {
		return nil, &ConfigError{Field: "wallpaperColor", Err: err}
	}

	if err := host.Mount(geo.PixelWidth, geo.PixelHeight); err != nil {
		return nil, fmt.Errorf("start2d: mount canvas: %w", err)
	}

	ctx, cancel := context.WithCancel(o.ctx)
	a := &Artwork{
		cfg:    cfg,
		host:   host,
		opts:   o,
		geo:    geo,
		shadow: shadow,
		cancel: cancel,
	}

	if cfg.WallpaperImage == "" {
		host.ApplyWallpaper(Wallpaper{Color: wallColor})
	} else {
		LoadWallpaper(ctx, cfg.WallpaperImage, wallColor, func(w Wallpaper) {
			host.Post(func() {
				if !a.closed {
					host.ApplyWallpaper(w)
				}
			})
		})
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = randomSeed()
	}
	a.RandomSeed(seed)
	noiseSeed := cfg.NoiseSeed
	if noiseSeed == 0 {
		noiseSeed = seed
	}
	a.NoiseSeed(noiseSeed)

	a.dc = gg.NewContext(geo.PixelWidth, geo.PixelHeight)

	a.vp = NewViewport(cfg.MinZoom, cfg.MaxZoom)
	a.vp.OnChange(func(ViewportState) { a.present() })
	a.vp.Initialize(geo, host.ContainerSize())

	a.ptr = NewPointerHandler(a.vp, cfg.ZoomInc, cfg.XYDisplayDecimals)
	a.ptr.OnReadout(func(Readout) { a.present() })
	a.ptr.Attach(host.Events())

	a.resize = NewDebouncer(o.resizeDelay)
	a.resize.afterFunc = o.afterFunc

	a.ResetMatrix()
	a.present()
	a.logSize("start2d: canvas created")
	return a, nil
}

func (a *Artwork) logSize(msg string) {
	Logger().Info(msg,
		"width", a.geo.Width, "height", a.geo.Height, "units", a.geo.Units,
		"ppi", float64(a.geo.ExportPPI), "seed", a.seed)
}

func (a *Artwork) present() {
	if a.vp == nil {
		return
	}
	f := Frame{
		Canvas:      a.vp.CanvasRect(),
		Zoom:        a.vp.Zoom(),
		PixelWidth:  a.geo.PixelWidth,
		PixelHeight: a.geo.PixelHeight,
		Shadow:      a.shadow.Style(a.vp.Zoom(), a.geo),
	}
	if a.ptr != nil {
		if r := a.ptr.Readout(); r.Visible {
			f.Readout = r.Text()
		}
	}
	a.host.Present(f)
}

// Context returns the gg drawing context. Its transform maps drawing units
// to export pixels until the caller changes it; see ResetMatrix.
func (a *Artwork) Context() *gg.Context { return a.dc }

// Config returns the configuration the artwork was created with, with the
// size replaced after a Resize.
func (a *Artwork) Config() Config { return a.cfg }

// Geometry returns the current geometry.
func (a *Artwork) Geometry() Geometry { return a.geo }

// ViewportState returns the current viewport state.
func (a *Artwork) ViewportState() ViewportState { return a.vp.State() }

// CanvasRect returns the on-screen rectangle of the canvas.
func (a *Artwork) CanvasRect() Rect { return a.vp.CanvasRect() }

// Cursor returns the last pointer position in drawing space.
func (a *Artwork) Cursor() Point { return a.ptr.State().Cursor }

// Snapshot returns the current sizing information.
func (a *Artwork) Snapshot() Snapshot {
	return Snapshot{
		Width:       a.geo.Width,
		Height:      a.geo.Height,
		PixelWidth:  a.geo.PixelWidth,
		PixelHeight: a.geo.PixelHeight,
		Units:       a.geo.Units,
		PPI:         a.geo.ExportPPI,
		Seed:        a.seed,
		NoiseSeed:   a.noiseSeed,
	}
}

// ResetMatrix resets the drawing transform to the unit scale, so drawing
// commands stay in physical units after a transform reset.
func (a *Artwork) ResetMatrix() {
	a.dc.Identity()
	a.dc.Scale(a.geo.UnitScale, a.geo.UnitScale)
}

// Draw resets the transform and calls fn with the drawing context and the
// current snapshot. Hosts are asked to repaint afterwards.
func (a *Artwork) Draw(fn func(dc *gg.Context, s Snapshot)) error {
	if a.closed {
		return ErrClosed
	}
	a.ResetMatrix()
	fn(a.dc, a.Snapshot())
	a.present()
	return nil
}

// Resize changes the drawing size to w x h in the configured unit. The
// random and noise generators are re-seeded, the raster is reallocated
// (and cleared), and the viewport is fitted again. The host container is
// kept.
func (a *Artwork) Resize(w, h float64) error {
	if a.closed {
		return ErrClosed
	}
	cfg := a.cfg
	cfg.Size = Dimensions(V(w, cfg.Units), V(h, cfg.Units))
	geo, err := geometryFor(cfg, w, h, a.host.DevicePixelRatio())
	if err != nil {
		return err
	}
	if err := a.dc.Resize(geo.PixelWidth, geo.PixelHeight); err != nil {
		return fmt.Errorf("start2d: resize canvas: %w", err)
	}
	a.RandomSeed(a.seed)
	a.NoiseSeed(a.noiseSeed)
	a.cfg = cfg
	a.geo = geo
	a.vp.Initialize(geo, a.host.ContainerSize())
	a.ResetMatrix()
	a.logSize("start2d: canvas resized")
	return nil
}

// ContainerResized schedules a viewport reflow for the host's new
// container size. Bursts of calls within the resize delay produce a
// single reflow, delivered through Host.Post.
func (a *Artwork) ContainerResized() {
	if a.closed {
		return
	}
	a.resize.Trigger(func() {
		a.host.Post(a.Reflow)
	})
}

// Reflow fits the viewport to the current container size immediately.
func (a *Artwork) Reflow() {
	if a.closed {
		return
	}
	a.vp.Reflow(a.host.ContainerSize())
}

// RandomSeed re-seeds the random generator returned by Rand.
func (a *Artwork) RandomSeed(seed int64) {
	a.seed = seed
	a.rng = newRand(seed)
}

// NoiseSeed re-seeds the noise field sampled by Noise.
func (a *Artwork) NoiseSeed(seed int64) {
	a.noiseSeed = seed
	a.noise = NewNoise(seed)
}

// Seed returns the current random seed.
func (a *Artwork) Seed() int64 { return a.seed }

// Rand returns the seeded random generator.
func (a *Artwork) Rand() *rand.Rand { return a.rng }

// Noise samples the seeded noise field.
func (a *Artwork) Noise(x, y, z float64) float64 { return a.noise.At(x, y, z) }

// ZoomToFit zooms so the canvas fits its container.
func (a *Artwork) ZoomToFit() { a.vp.SetZoom(a.vp.FitZoom()) }

// ZoomToActualSize zooms so the canvas appears at its physical size.
func (a *Artwork) ZoomToActualSize() { a.vp.SetZoom(a.vp.ActualSize()) }

// ZoomToMax zooms to the upper zoom bound.
func (a *Artwork) ZoomToMax() { a.vp.SetZoom(a.vp.MaxZoom()) }

// ToggleReadout shows or hides the cursor coordinate readout.
func (a *Artwork) ToggleReadout() {
	a.ptr.SetReadoutVisible(!a.ptr.Readout().Visible)
}

// ToggleShadow shows or hides the canvas drop shadow.
func (a *Artwork) ToggleShadow() {
	a.shadow.Visible = !a.shadow.Visible
	a.present()
}

// Filename returns the export file name for the current seed and time.
func (a *Artwork) Filename() string {
	return ResolveFilename(a.cfg.OutputFileName, a.seed, a.opts.clock()) + ".png"
}

// ExportTo writes the canvas as PNG at its export pixel size.
func (a *Artwork) ExportTo(w io.Writer) error {
	if a.closed {
		return ErrClosed
	}
	if err := a.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("start2d: encode png: %w", err)
	}
	return nil
}

// ExportFile writes the canvas as PNG into dir and returns the file path.
func (a *Artwork) ExportFile(dir string) (string, error) {
	if a.closed {
		return "", ErrClosed
	}
	path := filepath.Join(dir, a.Filename())
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("start2d: create export file: %w", err)
	}
	if err := a.ExportTo(f); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("start2d: close export file: %w", err)
	}
	Logger().Info("start2d: exported",
		"path", path, "pixelWidth", a.geo.PixelWidth, "pixelHeight", a.geo.PixelHeight)
	return path, nil
}

// Export writes the canvas into the export directory. Failures are
// logged and returned; key handlers may ignore the error.
func (a *Artwork) Export() (string, error) {
	path, err := a.ExportFile(a.opts.exportDir)
	if err != nil {
		Logger().Error("start2d: export failed", "error", err)
	}
	return path, err
}

// Close releases the drawing context, detaches the pointer handler and
// drops any pending reflow. Close is idempotent.
func (a *Artwork) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.resize.Cancel()
	a.cancel()
	a.ptr.Detach()
	return a.dc.Close()
}
