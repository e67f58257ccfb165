// Package entity holds the timed entities every visual effect is made of and
// the pool that owns them.
package entity

import (
	"math"
	"time"

	"github.com/tomz197/portfolio/internal/draw"
)

// Kind discriminates the entity variants.
type Kind int

const (
	Star Kind = iota
	Nebula
	ShootingStar
	Particle // click and success bursts
	Confetti
	Floating // ambient background dots
	Sprite   // mini alien pop
)

var kindNames = [...]string{"star", "nebula", "shooting-star", "particle", "confetti", "floating", "sprite"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Entity is one visual element. Which fields are meaningful depends on Kind.
type Entity struct {
	ID   uint64
	Kind Kind

	X, Y    float64 // Position in logical surface units
	Radius  float64 // Radius, or size for bursts
	Color   draw.Color
	Opacity float64 // Base opacity (stars) or remaining opacity (shooting stars)

	TwinkleSpeed  float64
	TwinkleOffset float64

	DriftX, DriftY float64

	Length float64 // Trail length
	Speed  float64 // Logical units per tick
	Angle  float64 // Radians
	Age    int     // Ticks lived

	TX, TY   float64 // Burst target offset from X,Y
	Rotation float64 // Total rotation in degrees over the animation
	Born     time.Time
	Duration time.Duration
	Delay    time.Duration
	Glyph    rune
	Round    bool
}

// TickContext describes the surface the entities live on for one tick.
type TickContext struct {
	Width, Height    float64
	OffsetX, OffsetY float64 // Pointer parallax offset
}

// Twinkle returns the instantaneous opacity of a star at t seconds. The
// result is not clamped; the surface clamps when blending.
func Twinkle(e *Entity, t float64) float64 {
	return e.Opacity + 0.3*math.Sin(t*e.TwinkleSpeed+e.TwinkleOffset)
}

// BurstProgress returns how far a burst animation is at now, in [0,1].
func BurstProgress(e *Entity, now time.Time) float64 {
	if e.Duration <= 0 {
		return 1
	}
	elapsed := now.Sub(e.Born) - e.Delay
	if elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(e.Duration)
	if p > 1 {
		return 1
	}
	return p
}

// EaseOut approximates the CSS "ease-out" timing curve.
func EaseOut(p float64) float64 {
	return 1 - (1-p)*(1-p)
}

// EaseOutQuart is 1 - (1-p)^4.
func EaseOutQuart(p float64) float64 {
	return 1 - math.Pow(1-p, 4)
}

// EaseInOut is a symmetric sine ease, used for idle floating.
func EaseInOut(p float64) float64 {
	return -(math.Cos(math.Pi*p) - 1) / 2
}

// update applies the per-tick rule for the entity's kind.
func (e *Entity) update(ctx TickContext) {
	switch e.Kind {
	case Nebula:
		e.X += e.DriftX + ctx.OffsetX*0.1
		e.Y += e.DriftY + ctx.OffsetY*0.1
		r := e.Radius
		if e.X < -r {
			e.X = ctx.Width + r
		} else if e.X > ctx.Width+r {
			e.X = -r
		}
		if e.Y < -r {
			e.Y = ctx.Height + r
		} else if e.Y > ctx.Height+r {
			e.Y = -r
		}
	case ShootingStar:
		e.X += math.Cos(e.Angle) * e.Speed
		e.Y += math.Sin(e.Angle) * e.Speed
		e.Age++
		e.Opacity = 1 - 0.02*float64(e.Age)
	}
}

// expired reports whether the entity should be dropped by Prune.
func (e *Entity) expired() bool {
	return e.Kind == ShootingStar && e.Opacity <= 1e-9
}
