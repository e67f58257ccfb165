// Package drawtest provides a draw.Surface that records calls.
package drawtest

import "github.com/tomz197/portfolio/internal/draw"

// Op names a Surface method.
type Op int

const (
	FillRect Op = iota
	FillCircle
	FillRadialGradient
	StrokeLine
	Glyph
)

// Call is one recorded Surface call. Unused fields are zero.
type Call struct {
	Op     Op
	X, Y   float64
	X1, Y1 float64 // line end
	W, H   float64 // rect size
	R      float64 // radius or line width
	Color  draw.Color
	To     draw.Color // line gradient end
	Rune   rune
}

// Recorder is a fixed-size Surface that keeps every call.
type Recorder struct {
	W, H  float64
	Calls []Call
}

// New creates a recorder of the given logical size.
func New(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) FillRect(x, y, w, h float64, c draw.Color) {
	r.Calls = append(r.Calls, Call{Op: FillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, rad float64, c draw.Color) {
	r.Calls = append(r.Calls, Call{Op: FillCircle, X: cx, Y: cy, R: rad, Color: c})
}

func (r *Recorder) FillRadialGradient(cx, cy, rad float64, inner draw.Color) {
	r.Calls = append(r.Calls, Call{Op: FillRadialGradient, X: cx, Y: cy, R: rad, Color: inner})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, from, to draw.Color) {
	r.Calls = append(r.Calls, Call{Op: StrokeLine, X: x0, Y: y0, X1: x1, Y1: y1, R: width, Color: from, To: to})
}

func (r *Recorder) Glyph(x, y float64, g rune, c draw.Color) {
	r.Calls = append(r.Calls, Call{Op: Glyph, X: x, Y: y, Rune: g, Color: c})
}

// Reset drops the recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Of returns the recorded calls of op in order.
func (r *Recorder) Of(op Op) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

var _ draw.Surface = (*Recorder)(nil)
