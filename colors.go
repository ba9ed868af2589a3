package start2d

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
)

var namedColors = map[string]gg.RGBA{
	"transparent": {},
	"black":       gg.RGB(0, 0, 0),
	"white":       gg.RGB(1, 1, 1),
	"gray":        gg.Hex("#808080"),
	"grey":        gg.Hex("#808080"),
}

// ParseColor parses the CSS color forms used in configurations:
// "#rgb", "#rgba", "#rrggbb", "#rrggbbaa", "rgb(r, g, b)",
// "rgba(r, g, b, a)" and a few names.
func ParseColor(s string) (gg.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		switch len(hex) {
		case 3, 4, 6, 8:
		default:
			return gg.RGBA{}, fmt.Errorf("start2d: malformed color %q", s)
		}
		if _, err := strconv.ParseUint(hex, 16, 64); err != nil {
			return gg.RGBA{}, fmt.Errorf("start2d: malformed color %q", s)
		}
		return gg.Hex(hex), nil
	}

	var args string
	var n int
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		args, n = s[len("rgba("):len(s)-1], 4
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		args, n = s[len("rgb("):len(s)-1], 3
	default:
		return gg.RGBA{}, fmt.Errorf("start2d: malformed color %q", s)
	}
	parts := strings.Split(args, ",")
	if len(parts) != n {
		return gg.RGBA{}, fmt.Errorf("start2d: malformed color %q", s)
	}
	var comp [4]float64
	comp[3] = 1
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return gg.RGBA{}, fmt.Errorf("start2d: malformed color %q: %w", s, err)
		}
		if i < 3 {
			f /= 255
		}
		comp[i] = min(max(f, 0), 1)
	}
	return gg.RGBA2(comp[0], comp[1], comp[2], comp[3]), nil
}
