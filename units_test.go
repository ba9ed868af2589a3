package start2d

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= epsilon*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestConvert(t *testing.T) {
	tests := []struct {
		v        float64
		from, to Unit
		res      Resolution
		want     float64
	}{
		{25.4, MM, IN, 0, 1},
		{1, IN, CM, 0, 2.54},
		{10, CM, MM, 0, 100},
		{1, IN, PX, 300, 300},
		{10, MM, PX, 300, 10 * 300 / 25.4},
		{96, PX, IN, 96, 1},
		{96, PX, MM, 96, 25.4},
		{5, PX, PX, 0, 5},
		{7, MM, MM, 0, 7},
	}
	for _, tt := range tests {
		got, err := Convert(tt.v, tt.from, tt.to, tt.res)
		if err != nil {
			t.Errorf("Convert(%g, %s, %s, %g) error = %v", tt.v, tt.from, tt.to, float64(tt.res), err)
			continue
		}
		if !approx(got, tt.want) {
			t.Errorf("Convert(%g, %s, %s, %g) = %g, want %g", tt.v, tt.from, tt.to, float64(tt.res), got, tt.want)
		}
	}
}

func TestConvertRoundTrip(t *testing.T) {
	units := []Unit{MM, CM, IN, PX}
	values := []float64{0.001, 0.5, 1, 7.25, 297, 12345.678}
	for _, res := range []Resolution{72, 96, 300, 600} {
		for _, a := range units {
			for _, b := range units {
				for _, v := range values {
					there, err := Convert(v, a, b, res)
					if err != nil {
						t.Fatalf("Convert(%g, %s, %s) error = %v", v, a, b, err)
					}
					back, err := Convert(there, b, a, res)
					if err != nil {
						t.Fatalf("Convert(%g, %s, %s) error = %v", there, b, a, err)
					}
					if !approx(back, v) {
						t.Errorf("round trip %g %s -> %s -> %s at %g = %g", v, a, b, a, float64(res), back)
					}
				}
			}
		}
	}
}

func TestConvertErrors(t *testing.T) {
	if _, err := Convert(1, MM, PX, 0); !errors.Is(err, ErrResolution) {
		t.Errorf("Convert(mm->px, res 0) error = %v, want ErrResolution", err)
	}
	if _, err := Convert(1, Unit("pt"), MM, 96); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("Convert(pt) error = %v, want ErrUnknownUnit", err)
	}
	if _, err := Convert(1, Unit("pt"), Unit("pt"), 96); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("Convert(pt->pt) error = %v, want ErrUnknownUnit", err)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{"10mm", V(10, MM)},
		{"29.7cm", V(29.7, CM)},
		{"8.268in", V(8.268, IN)},
		{"-2.5cm", V(-2.5, CM)},
		{"+3px", V(3, PX)},
		{".5in", V(0.5, IN)},
		{"297", Bare(297)},
		{" 1cm ", V(1, CM)},
		{"10MM", V(10, MM)},
	}
	for _, tt := range tests {
		got, err := ParseValue(tt.in)
		if err != nil {
			t.Errorf("ParseValue(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseValue(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseValueMalformed(t *testing.T) {
	for _, in := range []string{"", "mm", "10 mm", "1.2.3cm", "10pt", "abc", "5%", "1e3mm", "1."} {
		_, err := ParseValue(in)
		if err == nil {
			t.Errorf("ParseValue(%q) error = nil, want error", in)
			continue
		}
		var pe *ValueParseError
		if !errors.As(err, &pe) {
			t.Errorf("ParseValue(%q) error = %T, want *ValueParseError", in, err)
		}
		if !errors.Is(err, ErrValueParse) {
			t.Errorf("ParseValue(%q) error does not match ErrValueParse", in)
		}
	}
}

func TestValueIn(t *testing.T) {
	got, err := Bare(20).In(CM, MM, 300)
	if err != nil {
		t.Fatal(err)
	}
	if !approx(got, 2) {
		t.Errorf("Bare(20).In(cm, implied mm) = %g, want 2", got)
	}

	got, err = V(1, IN).In(MM, CM, 300)
	if err != nil {
		t.Fatal(err)
	}
	if !approx(got, 25.4) {
		t.Errorf("1in.In(mm) = %g, want 25.4", got)
	}
}

func TestValueString(t *testing.T) {
	if got := V(29.7, CM).String(); got != "29.7cm" {
		t.Errorf("String() = %q, want 29.7cm", got)
	}
	if got := Bare(297).String(); got != "297" {
		t.Errorf("String() = %q, want 297", got)
	}
}

func TestResolutionPerUnit(t *testing.T) {
	r := Resolution(254)
	tests := []struct {
		u    Unit
		want float64
	}{
		{MM, 10},
		{CM, 100},
		{IN, 254},
		{PX, 1},
	}
	for _, tt := range tests {
		if got := r.PerUnit(tt.u); !approx(got, tt.want) {
			t.Errorf("PerUnit(%s) = %g, want %g", tt.u, got, tt.want)
		}
	}
}

func TestMustParseValue(t *testing.T) {
	if got := MustParseValue("2.5cm"); got != V(2.5, CM) {
		t.Errorf("MustParseValue(2.5cm) = %v, want 2.5cm", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("MustParseValue(bad) did not panic")
		}
	}()
	MustParseValue("ten millimetres")
}
