package start2d

import (
	"errors"
	"testing"
)

func TestShadowStyle(t *testing.T) {
	cfg := DefaultConfig()
	geo := mustGeometry(t, cfg)
	s, err := newShadow(cfg, geo)
	if err != nil {
		t.Fatal(err)
	}
	if !approx(s.Y, 6) || !approx(s.Blur, 10) || s.X != 0 {
		t.Errorf("shadow = %+v, want 0/6/10 mm", s)
	}

	// At physical size one millimetre is 96/25.4 screen pixels.
	st := s.Style(geo.Ratio(), geo)
	if st == nil {
		t.Fatal("Style() = nil for a visible shadow")
	}
	if want := 6 * 96 / 25.4; !approx(st.Y, want) {
		t.Errorf("Style(actual size).Y = %g, want %g", st.Y, want)
	}

	half := s.Style(geo.Ratio()/2, geo)
	if !approx(half.Blur, st.Blur/2) {
		t.Errorf("Style(half).Blur = %g, want %g", half.Blur, st.Blur/2)
	}

	s.Visible = false
	if s.Style(1, geo) != nil {
		t.Error("Style() of a hidden shadow is not nil")
	}
}

func TestShadowUnitsFollowConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Units = IN
	cfg.ShadowY = V(25.4, MM)
	cfg.ShadowBlur = Bare(0.5)
	geo := mustGeometry(t, cfg)
	s, err := newShadow(cfg, geo)
	if err != nil {
		t.Fatal(err)
	}
	if !approx(s.Y, 1) || !approx(s.Blur, 0.5) {
		t.Errorf("shadow in inches = %+v, want Y 1, Blur 0.5", s)
	}
	if st := s.Style(geo.Ratio(), geo); !approx(st.Y, 96) {
		t.Errorf("Style(actual size).Y = %g, want 96", st.Y)
	}
}

func TestShadowBadColor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShadowColor = "nope"
	_, err := newShadow(cfg, mustGeometry(t, cfg))
	var ce *ConfigError
	if !errors.As(err, &ce) || ce.Field != "shadowColor" {
		t.Errorf("newShadow() error = %v, want ConfigError for shadowColor", err)
	}
}
