package main

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/start2d"
)

// A sketch draws into an artwork. Coordinates are in the artwork's units.
type sketch func(dc *gg.Context, s start2d.Snapshot, rng *rand.Rand)

var sketches = map[string]sketch{
	"circles": drawCircles,
	"measure": drawMeasure,
}

func sketchNames() []string {
	names := make([]string, 0, len(sketches))
	for name := range sketches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupSketch(name string) (sketch, error) {
	sk, ok := sketches[name]
	if !ok {
		return nil, fmt.Errorf("unknown sketch %q (have %v)", name, sketchNames())
	}
	return sk, nil
}

// drawCircles draws a grey diagonal, a hundred translucent random circles
// and the measurement overlay.
func drawCircles(dc *gg.Context, s start2d.Snapshot, rng *rand.Rand) {
	dc.ClearWithColor(gg.White)

	dc.SetRGBA(0, 0, 0, 50.0/255)
	dc.SetLineWidth(10)
	dc.DrawLine(0, 0, s.Width, s.Height)
	_ = dc.Stroke()

	dc.SetLineWidth(1)
	for range 100 {
		cx := rng.Float64() * s.Width
		cy := rng.Float64() * s.Height
		d := rng.Float64() * s.Width / 8

		dc.SetRGBA(rng.Float64(), rng.Float64(), rng.Float64(), 50.0/255)
		dc.DrawCircle(cx, cy, d/2)
		_ = dc.Stroke()
	}

	drawMeasureLines(dc, s)

	dc.SetRGBA(0, 1, 0, 100.0/255)
	dc.SetLineWidth(1)
	dc.DrawLine(0, s.Height, s.Width, 0)
	_ = dc.Stroke()
}

// drawMeasure draws only the measurement overlay on white.
func drawMeasure(dc *gg.Context, s start2d.Snapshot, _ *rand.Rand) {
	dc.ClearWithColor(gg.White)
	drawMeasureLines(dc, s)
}

// arrowSize is the arrow length in drawing units.
const arrowSize = 6

// drawMeasureLines draws a horizontal line across the middle and a
// vertical line at a third of the width, each ending in arrows on the
// canvas edges, and labels them with the canvas size.
func drawMeasureLines(dc *gg.Context, s start2d.Snapshot) {
	w, h := s.Width, s.Height
	x := w / 3

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(0.5)
	dc.DrawLine(0, h/2, w, h/2)
	_ = dc.Stroke()
	dc.DrawLine(x, 0, x, h)
	_ = dc.Stroke()

	const as = arrowSize
	arrows := [][3][2]float64{
		{{0, h / 2}, {as, h/2 - as/2}, {as, h/2 + as/2}},         // left
		{{w, h / 2}, {w - as, h/2 - as/2}, {w - as, h/2 + as/2}}, // right
		{{x, 0}, {x - as/2, as}, {x + as/2, as}},                 // top
		{{x, h}, {x - as/2, h - as}, {x + as/2, h - as}},         // bottom
	}
	for _, tri := range arrows {
		dc.MoveTo(tri[0][0], tri[0][1])
		dc.LineTo(tri[1][0], tri[1][1])
		dc.LineTo(tri[2][0], tri[2][1])
		dc.ClosePath()
		_ = dc.Fill()
	}

	drawMeasureLabels(dc, s)
}

// labelSize is the label text height in drawing units.
const labelSize = 7

var labelFont = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// drawMeasureLabels writes the canvas width above the horizontal line and
// the height beside the vertical one. Text is laid out in pixels, so the
// unit scale is dropped while drawing and restored by Pop.
func drawMeasureLabels(dc *gg.Context, s start2d.Snapshot) {
	src, err := labelFont()
	if err != nil {
		start2d.Logger().Warn("start2d: label font", "error", err)
		return
	}
	px := float64(s.PixelWidth) / s.Width
	w, h := s.Width, s.Height

	dc.Push()
	defer dc.Pop()
	dc.Identity()
	dc.SetFont(src.Face(labelSize * px))
	dc.SetRGB(0, 0, 0)

	widthLabel := fmt.Sprintf("%.0f%s @ %gppi => %dpx", w, s.Units, float64(s.PPI), s.PixelWidth)
	dc.DrawStringAnchored(widthLabel, (w/2+10)*px, (h/2-5)*px, 0.5, 1)

	heightLabel := fmt.Sprintf("%.0f%s => %dpx", h, s.Units, s.PixelHeight)
	dc.DrawStringAnchored(heightLabel, (w/3+2)*px, h/4*px, 0, 1)
}
