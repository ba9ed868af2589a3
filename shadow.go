package start2d

import "github.com/gogpu/gg"

// Shadow is the drop shadow drawn behind the canvas on screen. Offsets and
// blur are in drawing units measured at screen resolution, so a 6mm offset
// looks like 6mm when the canvas is shown at its physical size.
type Shadow struct {
	Visible bool
	Color   gg.RGBA
	X, Y    float64
	Blur    float64
}

// ShadowStyle is a shadow resolved to screen pixels for the current zoom.
type ShadowStyle struct {
	Color gg.RGBA
	X, Y  float64
	Blur  float64
}

func newShadow(cfg Config, geo Geometry) (Shadow, error) {
	col, err := ParseColor(cfg.ShadowColor)
	if err != nil {
		return Shadow{}, &ConfigError{Field: "shadowColor", Err: err}
	}
	s := Shadow{Visible: cfg.ShadowVisible, Color: col}
	for _, f := range []struct {
		name string
		v    Value
		dst  *float64
	}{
		{"shadowX", cfg.ShadowX, &s.X},
		{"shadowY", cfg.ShadowY, &s.Y},
		{"shadowBlur", cfg.ShadowBlur, &s.Blur},
	} {
		u, err := f.v.In(cfg.Units, cfg.Units, geo.ScreenPPI)
		if err != nil {
			return Shadow{}, &ConfigError{Field: f.name, Err: err}
		}
		*f.dst = u
	}
	return s, nil
}

// Style resolves the shadow for a canvas shown at zoom. It returns nil when
// the shadow is hidden.
func (s Shadow) Style(zoom float64, geo Geometry) *ShadowStyle {
	if !s.Visible {
		return nil
	}
	// zoom / geo.Ratio() is 1 at physical size.
	k := zoom / geo.Ratio() * geo.ScreenPPI.PerUnit(geo.Units)
	return &ShadowStyle{
		Color: s.Color,
		X:     s.X * k,
		Y:     s.Y * k,
		Blur:  s.Blur * k,
	}
}
