package start2d

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Unit is a length unit tag.
type Unit string

// Supported length units.
const (
	MM Unit = "mm"
	CM Unit = "cm"
	IN Unit = "in"
	PX Unit = "px"
)

const (
	mmPerInch = 25.4
	cmPerInch = 2.54
)

// ParseUnit parses a unit tag. Matching is case-insensitive.
func ParseUnit(s string) (Unit, error) {
	switch u := Unit(strings.ToLower(strings.TrimSpace(s))); u {
	case MM, CM, IN, PX:
		return u, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
}

// Valid reports whether u is one of the supported units.
func (u Unit) Valid() bool {
	switch u {
	case MM, CM, IN, PX:
		return true
	}
	return false
}

// perInch returns how many u fit in one inch at resolution res.
func (u Unit) perInch(res Resolution) (float64, error) {
	switch u {
	case MM:
		return mmPerInch, nil
	case CM:
		return cmPerInch, nil
	case IN:
		return 1, nil
	case PX:
		if res <= 0 {
			return 0, ErrResolution
		}
		return float64(res), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, string(u))
	}
}

// Resolution is a pixel density in pixels per inch.
type Resolution float64

// PerUnit returns the number of pixels in one u at this resolution.
// One pixel is one pixel regardless of resolution.
func (r Resolution) PerUnit(u Unit) float64 {
	switch u {
	case MM:
		return float64(r) / mmPerInch
	case CM:
		return float64(r) / cmPerInch
	case IN:
		return float64(r)
	default:
		return 1
	}
}

// Convert converts v from one unit to another. The resolution is only
// consulted when either unit is PX.
func Convert(v float64, from, to Unit, res Resolution) (float64, error) {
	if from == to {
		if !from.Valid() {
			return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, string(from))
		}
		return v, nil
	}
	f, err := from.perInch(res)
	if err != nil {
		return 0, err
	}
	t, err := to.perInch(res)
	if err != nil {
		return 0, err
	}
	return v / f * t, nil
}

// Value is a magnitude with an optional unit. An empty Unit means the
// unit is implied by context, usually the configured drawing unit.
type Value struct {
	Magnitude float64
	Unit      Unit
}

// V returns a Value with an explicit unit.
func V(magnitude float64, u Unit) Value {
	return Value{Magnitude: magnitude, Unit: u}
}

// Bare returns a unit-less Value.
func Bare(magnitude float64) Value {
	return Value{Magnitude: magnitude}
}

// IsZero reports whether the value is the zero Value.
func (v Value) IsZero() bool {
	return v == Value{}
}

// In converts v to unit to. A unit-less v is read as implied.
func (v Value) In(to, implied Unit, res Resolution) (float64, error) {
	from := v.Unit
	if from == "" {
		from = implied
	}
	return Convert(v.Magnitude, from, to, res)
}

// String formats v the way ParseValue reads it.
func (v Value) String() string {
	return strconv.FormatFloat(v.Magnitude, 'f', -1, 64) + string(v.Unit)
}

var valuePattern = regexp.MustCompile(`^([+-]?(?:\d+|\d*\.\d+))([a-zA-Z]*)$`)

// ParseValue parses strings such as "10mm", "-2.5cm", ".5in" or "297".
// A missing suffix yields a unit-less Value.
func ParseValue(s string) (Value, error) {
	m := valuePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Value{}, &ValueParseError{Input: s}
	}
	mag, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Value{}, &ValueParseError{Input: s, Err: err}
	}
	v := Value{Magnitude: mag}
	if m[2] != "" {
		u, err := ParseUnit(m[2])
		if err != nil {
			return Value{}, &ValueParseError{Input: s, Err: err}
		}
		v.Unit = u
	}
	return v, nil
}

// MustParseValue is like ParseValue but panics on error.
// Use only for hardcoded values.
func MustParseValue(s string) Value {
	v, err := ParseValue(s)
	if err != nil {
		panic(err)
	}
	return v
}
