package start2d

import (
	"fmt"
	"math"
	"strings"
)

// Orientation constrains the aspect of the canvas.
type Orientation string

// Orientations.
const (
	Unconstrained Orientation = "unconstrained"
	Portrait      Orientation = "portrait"
	Landscape     Orientation = "landscape"
)

// ParseOrientation parses an orientation name. "nochange" and the empty
// string are accepted as Unconstrained.
func ParseOrientation(s string) (Orientation, error) {
	switch o := strings.ToLower(strings.TrimSpace(s)); o {
	case "", "nochange", string(Unconstrained):
		return Unconstrained, nil
	case string(Portrait):
		return Portrait, nil
	case string(Landscape):
		return Landscape, nil
	default:
		return "", configErrorf("orientation", "unknown orientation %q", s)
	}
}

// SizeSpec is the requested canvas size: either a named paper size or a
// width/height pair. Unit-less dimensions are read in the drawing unit.
type SizeSpec struct {
	Paper         string
	Width, Height Value
}

// Paper returns a SizeSpec for a named paper size such as "A4".
func Paper(name string) SizeSpec {
	return SizeSpec{Paper: name}
}

// Dimensions returns a SizeSpec for an explicit width and height.
func Dimensions(w, h Value) SizeSpec {
	return SizeSpec{Width: w, Height: h}
}

// ParseSize builds a SizeSpec from a pair of strings like "29.7cm" or "297".
func ParseSize(w, h string) (SizeSpec, error) {
	wv, err := ParseValue(w)
	if err != nil {
		return SizeSpec{}, &ConfigError{Field: "size", Err: err}
	}
	hv, err := ParseValue(h)
	if err != nil {
		return SizeSpec{}, &ConfigError{Field: "size", Err: err}
	}
	return Dimensions(wv, hv), nil
}

func (s SizeSpec) String() string {
	if s.Paper != "" {
		return s.Paper
	}
	return s.Width.String() + " x " + s.Height.String()
}

// Config describes a canvas. The zero value is not usable; start from
// DefaultConfig and override fields.
type Config struct {
	Size        SizeSpec
	Orientation Orientation
	Units       Unit

	// ExportPPI is the resolution of the exported raster.
	ExportPPI Resolution

	MinZoom float64
	MaxZoom float64
	ZoomInc float64

	// ScreenPadding is the space kept between canvas and container edge.
	ScreenPadding Value
	ScreenPPI     Resolution

	ShadowVisible bool
	ShadowColor   string
	ShadowX       Value
	ShadowY       Value
	ShadowBlur    Value

	WallpaperColor string
	WallpaperImage string

	// OutputFileName is a template; see ResolveFilename.
	OutputFileName string

	XYDisplayDecimals int

	// Seed and NoiseSeed pick the random and noise sequences. Zero means
	// a random seed for Seed, and Seed for NoiseSeed.
	Seed      int64
	NoiseSeed int64

	// Renderer is passed through to the host; start2d itself always draws
	// with gg's software rasterizer.
	Renderer string
}

// DefaultConfig returns the documented defaults: 297mm x 210mm at 300ppi.
func DefaultConfig() Config {
	return Config{
		Size:              Dimensions(DefaultSize[0], DefaultSize[1]),
		Orientation:       Unconstrained,
		Units:             MM,
		ExportPPI:         300,
		MinZoom:           0.2,
		MaxZoom:           2.0,
		ZoomInc:           0.025,
		ScreenPadding:     V(10, MM),
		ScreenPPI:         96,
		ShadowVisible:     true,
		ShadowColor:       "rgba(64, 64, 64, 0.5)",
		ShadowX:           V(0, MM),
		ShadowY:           V(6, MM),
		ShadowBlur:        V(10, MM),
		WallpaperColor:    "#808080",
		OutputFileName:    DefaultFilenameTemplate,
		XYDisplayDecimals: 2,
	}
}

// Validate reports the first configuration problem as a *ConfigError.
func (c Config) Validate() error {
	if !c.Units.Valid() {
		return configErrorf("units", "%w: %q", ErrUnknownUnit, string(c.Units))
	}
	if _, err := ParseOrientation(string(c.Orientation)); err != nil {
		return err
	}
	if !positive(float64(c.ExportPPI)) {
		return configErrorf("exportPPI", "must be positive, got %g", float64(c.ExportPPI))
	}
	if !positive(float64(c.ScreenPPI)) {
		return configErrorf("screenPPI", "must be positive, got %g", float64(c.ScreenPPI))
	}
	if !positive(c.MinZoom) || !positive(c.MaxZoom) {
		return configErrorf("zoom", "bounds must be positive, got min=%g max=%g", c.MinZoom, c.MaxZoom)
	}
	if c.MinZoom > c.MaxZoom {
		return configErrorf("zoom", "minZoom %g exceeds maxZoom %g", c.MinZoom, c.MaxZoom)
	}
	if !positive(c.ZoomInc) {
		return configErrorf("zoomInc", "must be positive, got %g", c.ZoomInc)
	}
	if !nonNegative(c.ScreenPadding.Magnitude) {
		return configErrorf("screenPadding", "must not be negative, got %s", c.ScreenPadding)
	}
	if c.XYDisplayDecimals < 0 {
		return configErrorf("xyDisplayDecimals", "must not be negative, got %d", c.XYDisplayDecimals)
	}
	if c.Size.Paper == "" {
		for _, v := range []Value{c.Size.Width, c.Size.Height} {
			if !positive(v.Magnitude) {
				return configErrorf("size", "dimensions must be positive, got %s", c.Size)
			}
			if v.Unit != "" && !v.Unit.Valid() {
				return configErrorf("size", "%w: %q", ErrUnknownUnit, string(v.Unit))
			}
		}
	}
	for name, v := range map[string]Value{"shadowX": c.ShadowX, "shadowY": c.ShadowY, "shadowBlur": c.ShadowBlur} {
		if v.Unit != "" && !v.Unit.Valid() {
			return configErrorf(name, "%w: %q", ErrUnknownUnit, string(v.Unit))
		}
		if math.IsNaN(v.Magnitude) || math.IsInf(v.Magnitude, 0) {
			return configErrorf(name, "must be finite, got %s", v)
		}
	}
	if !nonNegative(c.ShadowBlur.Magnitude) {
		return configErrorf("shadowBlur", "must not be negative, got %s", c.ShadowBlur)
	}
	return nil
}

// positive reports whether x is finite and greater than zero. NaN fails.
func positive(x float64) bool { return x > 0 && !math.IsInf(x, 1) }

func nonNegative(x float64) bool { return x >= 0 && !math.IsInf(x, 1) }

func (c Config) orientation() Orientation {
	o, err := ParseOrientation(string(c.Orientation))
	if err != nil {
		return Unconstrained
	}
	return o
}

func (c Config) String() string {
	return fmt.Sprintf("%s %s @ %gppi", c.Size, c.orientation(), float64(c.ExportPPI))
}
