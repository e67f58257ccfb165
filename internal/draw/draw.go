// Package draw provides the colour canvas every visual effect paints on and
// the terminal plumbing used to present it.
package draw

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Point represents a 2D coordinate in logical (surface) space.
type Point struct {
	X, Y float64
}

// Color is an RGB colour with straight alpha. Alpha is not clamped here;
// out-of-range values are clamped when blended onto a surface.
type Color struct {
	colorful.Color
	A float64
}

// Transparent is fully transparent black.
var Transparent = Color{}

// ParseHex parses "#rrggbb" into an opaque colour.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return Color{Color: c, A: 1}, nil
}

// MustHex is ParseHex for package-level colour tables.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// RGBA builds a colour from 8-bit channels and an alpha in [0,1].
func RGBA(r, g, b uint8, a float64) Color {
	return Color{
		Color: colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255},
		A:     a,
	}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Fade multiplies the alpha of c by f.
func (c Color) Fade(f float64) Color {
	c.A *= f
	return c
}

// Lerp interpolates colour and alpha between c and o.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		Color: c.Color.BlendRgb(o.Color, t),
		A:     c.A + (o.A-c.A)*t,
	}
}

// Surface is the 2-D drawing target consumed by the drivers. Coordinates
// are logical pixels; implementations scale to their own resolution.
type Surface interface {
	// Size returns the logical surface dimensions.
	Size() (w, h float64)
	FillRect(x, y, w, h float64, c Color)
	FillCircle(cx, cy, r float64, c Color)
	// FillRadialGradient fills a disc fading from inner at the centre to
	// transparent at radius r.
	FillRadialGradient(cx, cy, r float64, inner Color)
	// StrokeLine strokes a line with a linear gradient from -> to.
	StrokeLine(x0, y0, x1, y1, width float64, from, to Color)
	// Glyph places a single text glyph at a logical position.
	Glyph(x, y float64, r rune, c Color)
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
