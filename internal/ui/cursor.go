package ui

import (
	"math"

	"github.com/tomz197/portfolio/internal/draw"
)

const (
	cursorRadius   = 10
	cursorExpanded = 2
	cursorSegments = 16
)

// Cursor is the ring that follows the pointer.
type Cursor struct {
	enabled  bool
	visible  bool
	expanded bool
	x, y     float64
}

// NewCursor creates the ring. Without a pointer it stays hidden.
func NewCursor(pointer bool) *Cursor {
	return &Cursor{enabled: pointer}
}

// Move places the ring; over interactive regions it grows.
func (c *Cursor) Move(x, y float64, interactive bool) {
	if !c.enabled {
		return
	}
	c.visible = true
	c.x, c.y = x, y
	c.expanded = interactive
}

// Hide removes the ring until the pointer moves again.
func (c *Cursor) Hide() { c.visible = false }

// Visible reports whether the ring is drawn.
func (c *Cursor) Visible() bool { return c.visible }

// Scale returns 2 over interactive regions, else 1.
func (c *Cursor) Scale() float64 {
	if c.expanded {
		return cursorExpanded
	}
	return 1
}

// Draw strokes the ring in col, filled faintly when expanded.
func (c *Cursor) Draw(s draw.Surface, col draw.Color) {
	if !c.visible {
		return
	}
	r := cursorRadius * c.Scale()
	if c.expanded {
		s.FillCircle(c.x, c.y, r, col.WithAlpha(0.1))
	}
	step := 2 * math.Pi / cursorSegments
	for i := 0; i < cursorSegments; i++ {
		a0, a1 := float64(i)*step, float64(i+1)*step
		s.StrokeLine(c.x+r*math.Cos(a0), c.y+r*math.Sin(a0), c.x+r*math.Cos(a1), c.y+r*math.Sin(a1), 2, col, col)
	}
}
