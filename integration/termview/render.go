// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package termview

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/gogpu/start2d"
)

// Screen pixels per preview pixel on each axis. A cell is one preview
// pixel wide and two high.
const (
	previewScaleX = CellWidth
	previewScaleY = CellHeight / 2
)

const upperHalf = "▀"

// Compose draws the container as seen in frame f into a w x h preview:
// wallpaper, drop shadow, then the canvas scaled to its on-screen
// rectangle.
func Compose(w, h int, f start2d.Frame, wall start2d.Wallpaper, canvas image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(wall.Color.Color()), image.Point{}, draw.Src)
	if wall.Image != nil {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), wall.Image, wall.Image.Bounds(), draw.Src, nil)
	}
	if f.Shadow != nil {
		drawShadow(dst, f.Canvas, *f.Shadow)
	}
	if canvas != nil {
		draw.ApproxBiLinear.Scale(dst, previewRect(f.Canvas), canvas, canvas.Bounds(), draw.Over, nil)
	}
	return dst
}

// drawShadow approximates the blurred shadow with a translucent halo of
// half the blur radius around the offset rectangle.
func drawShadow(dst *image.RGBA, canvas start2d.Rect, s start2d.ShadowStyle) {
	c := color.NRGBAModel.Convert(s.Color.Color()).(color.NRGBA)
	base := start2d.Rect{X: canvas.X + s.X, Y: canvas.Y + s.Y, W: canvas.W, H: canvas.H}
	if s.Blur > 0 {
		halo := c
		halo.A /= 2
		r := s.Blur / 2
		grown := start2d.Rect{X: base.X - r, Y: base.Y - r, W: base.W + 2*r, H: base.H + 2*r}
		draw.Draw(dst, previewRect(grown), image.NewUniform(halo), image.Point{}, draw.Over)
	}
	draw.Draw(dst, previewRect(base), image.NewUniform(c), image.Point{}, draw.Over)
}

// previewRect maps a rectangle in screen pixels to preview pixels. The
// result is never empty.
func previewRect(r start2d.Rect) image.Rectangle {
	x0 := int(math.Round(r.X / previewScaleX))
	y0 := int(math.Round(r.Y / previewScaleY))
	x1 := int(math.Round((r.X + r.W) / previewScaleX))
	y1 := int(math.Round((r.Y + r.H) / previewScaleY))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return image.Rect(x0, y0, x1, y1)
}

// HalfBlocks renders img as rows of upper half blocks, two image rows per
// line: the foreground colors the top pixel, the background the bottom.
func HalfBlocks(img *image.RGBA) string {
	b := img.Bounds()
	styles := make(map[[2]color.RGBA]lipgloss.Style)
	style := func(top, bottom color.RGBA) lipgloss.Style {
		key := [2]color.RGBA{top, bottom}
		st, ok := styles[key]
		if !ok {
			st = lipgloss.NewStyle().Foreground(hexColor(top)).Background(hexColor(bottom))
			styles[key] = st
		}
		return st
	}

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		// Runs of equal cells are rendered with one style call.
		var run [2]color.RGBA
		n := 0
		flush := func() {
			if n > 0 {
				sb.WriteString(style(run[0], run[1]).Render(strings.Repeat(upperHalf, n)))
			}
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.RGBAAt(x, y)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = img.RGBAAt(x, y+1)
			}
			cell := [2]color.RGBA{top, bottom}
			if n > 0 && cell == run {
				n++
				continue
			}
			flush()
			run, n = cell, 1
		}
		flush()
	}
	return sb.String()
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
