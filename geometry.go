package start2d

import (
	"errors"
	"math"
)

// Raster limits. A canvas beyond either is rejected as a configuration
// error before any pixels are allocated.
const (
	MaxPixelDimension = 1 << 15
	MaxPixelArea      = 1 << 28
)

// Geometry is the derived sizing of a canvas. It is recomputed as a whole
// whenever the configuration or the drawing size changes.
type Geometry struct {
	// Width and Height are the drawing-space size in Units.
	Width, Height float64
	Units         Unit

	// PixelWidth and PixelHeight are the export raster size.
	PixelWidth, PixelHeight int

	// UnitScale is the number of export pixels per drawing unit.
	UnitScale float64

	ExportPPI Resolution

	// ScreenPPI is the configured screen resolution adjusted for the
	// device pixel ratio.
	ScreenPPI Resolution

	// ScreenPadding is the container padding in screen pixels.
	ScreenPadding float64
}

// ComputeGeometry derives the canvas geometry from cfg. dpr is the device
// pixel ratio of the display; values below 1 are treated as 1.
func ComputeGeometry(cfg Config, dpr float64) (Geometry, error) {
	if err := cfg.Validate(); err != nil {
		return Geometry{}, err
	}

	w, h := resolveSize(cfg.Size)

	uw, err := w.In(cfg.Units, cfg.Units, cfg.ExportPPI)
	if err != nil {
		return Geometry{}, &ConfigError{Field: "size", Err: err}
	}
	uh, err := h.In(cfg.Units, cfg.Units, cfg.ExportPPI)
	if err != nil {
		return Geometry{}, &ConfigError{Field: "size", Err: err}
	}

	switch cfg.orientation() {
	case Portrait:
		if uw > uh {
			uw, uh = uh, uw
		}
	case Landscape:
		if uw < uh {
			uw, uh = uh, uw
		}
	}

	return geometryFor(cfg, uw, uh, dpr)
}

// geometryFor computes the geometry of a uw x uh canvas, both given in
// cfg.Units. Orientation is not applied.
func geometryFor(cfg Config, uw, uh, dpr float64) (Geometry, error) {
	if !(uw > 0) || !(uh > 0) || math.IsInf(uw, 0) || math.IsInf(uh, 0) {
		return Geometry{}, configErrorf("size", "dimensions must be positive, got %g x %g %s", uw, uh, cfg.Units)
	}

	g := Geometry{
		Width:     uw,
		Height:    uh,
		Units:     cfg.Units,
		UnitScale: cfg.ExportPPI.PerUnit(cfg.Units),
		ExportPPI: cfg.ExportPPI,
		ScreenPPI: effectiveScreenPPI(cfg.ScreenPPI, dpr),
	}
	pw := math.Round(uw * g.UnitScale)
	ph := math.Round(uh * g.UnitScale)
	if pw > MaxPixelDimension || ph > MaxPixelDimension || pw*ph > MaxPixelArea {
		return Geometry{}, configErrorf("size", "%g x %g %s rasterizes to %.0f x %.0f px at %gppi, above the %d px or %d px² limit",
			uw, uh, cfg.Units, pw, ph, float64(cfg.ExportPPI), MaxPixelDimension, MaxPixelArea)
	}
	g.PixelWidth = int(pw)
	g.PixelHeight = int(ph)
	if g.PixelWidth < 1 || g.PixelHeight < 1 {
		return Geometry{}, configErrorf("size", "%g x %g %s rasterizes to %d x %d px at %gppi",
			uw, uh, cfg.Units, g.PixelWidth, g.PixelHeight, float64(cfg.ExportPPI))
	}

	pad, err := cfg.ScreenPadding.In(PX, cfg.Units, g.ScreenPPI)
	if err != nil {
		return Geometry{}, &ConfigError{Field: "screenPadding", Err: err}
	}
	g.ScreenPadding = math.Round(pad)

	Logger().Debug("start2d: geometry computed",
		"width", g.Width, "height", g.Height, "units", g.Units,
		"pixelWidth", g.PixelWidth, "pixelHeight", g.PixelHeight,
		"screenPPI", float64(g.ScreenPPI))
	return g, nil
}

// effectiveScreenPPI divides ppi by the device pixel ratio rounded up to a
// whole number of at least one.
func effectiveScreenPPI(ppi Resolution, dpr float64) Resolution {
	d := math.Ceil(dpr)
	if !(d >= 1) {
		d = 1
	}
	return ppi / Resolution(d)
}

// resolveSize turns a SizeSpec into a width/height pair, falling back to
// DefaultSize when the paper name is unknown.
func resolveSize(s SizeSpec) (Value, Value) {
	if s.Paper == "" {
		return s.Width, s.Height
	}
	p, err := LookupPaper(s.Paper)
	if err != nil {
		attrs := []any{"paper", s.Paper, "default", DefaultSize[0].String() + " x " + DefaultSize[1].String()}
		if name, ok := SuggestPaper(s.Paper); ok {
			attrs = append(attrs, "suggestion", name)
		}
		if errors.Is(err, ErrPaperSizeNotFound) {
			Logger().Warn("start2d: invalid paper size, using default", attrs...)
		}
		return DefaultSize[0], DefaultSize[1]
	}
	return p.Width, p.Height
}

// Ratio returns the screen to export resolution ratio: the zoom at which
// one drawing unit is shown at its physical size.
func (g Geometry) Ratio() float64 {
	return float64(g.ScreenPPI) / float64(g.ExportPPI)
}

// ToPixels converts a drawing-space length to export pixels.
func (g Geometry) ToPixels(v float64) float64 {
	return v * g.UnitScale
}

// ToUnits converts export pixels to a drawing-space length.
func (g Geometry) ToUnits(px float64) float64 {
	return px / g.UnitScale
}
