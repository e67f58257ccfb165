package burst

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/portfolio/internal/draw"
	"github.com/tomz197/portfolio/internal/entity"
)

// DefaultFloatingCount is the number of ambient dots.
const DefaultFloatingCount = 30

var floatGlow = draw.RGBA(0, 255, 136, 0.8)

// keyframe is one stop of the float path: offset, scale and opacity.
type keyframe struct {
	dx, dy, scale, opacity float64
}

var floatPath = [...]keyframe{
	{0, 0, 1, 0.3},
	{50, -30, 1.2, 0.6},
	{-30, -60, 0.8, 0.4},
	{20, -20, 1.1, 0.5},
	{0, 0, 1, 0.3},
}

// Floating is the ambient layer of slowly drifting glow dots. Positions are
// stored as fractions of the surface so the layer follows resizes.
type Floating struct {
	pool *entity.Pool
}

// NewFloating creates n dots whose animation clock starts at start.
func NewFloating(n int, rng *rand.Rand, start time.Time) *Floating {
	f := &Floating{pool: entity.NewPool(entity.Floating, n)}
	for i := 0; i < n; i++ {
		f.pool.Spawn(entity.Entity{
			Radius:   rng.Float64()*10 + 5,
			X:        rng.Float64(),
			Y:        rng.Float64(),
			Duration: time.Duration((rng.Float64()*20 + 10) * float64(time.Second)),
			Delay:    time.Duration(rng.Float64() * 5 * float64(time.Second)),
			Opacity:  rng.Float64()*0.5 + 0.2,
			Born:     start,
		})
	}
	return f
}

// Pool returns the dots.
func (f *Floating) Pool() *entity.Pool { return f.pool }

// sample returns the path values for a dot at now. Before its delay has
// passed a dot rests at its start with its own opacity.
func sample(e *entity.Entity, now time.Time) keyframe {
	elapsed := now.Sub(e.Born) - e.Delay
	if elapsed < 0 || e.Duration <= 0 {
		return keyframe{scale: 1, opacity: e.Opacity}
	}
	cycle := math.Mod(float64(elapsed), float64(e.Duration)) / float64(e.Duration)
	seg := cycle * float64(len(floatPath)-1)
	i := int(seg)
	if i >= len(floatPath)-1 {
		i = len(floatPath) - 2
	}
	k := entity.EaseInOut(seg - float64(i))
	a, b := floatPath[i], floatPath[i+1]
	return keyframe{
		dx:      a.dx + (b.dx-a.dx)*k,
		dy:      a.dy + (b.dy-a.dy)*k,
		scale:   a.scale + (b.scale-a.scale)*k,
		opacity: a.opacity + (b.opacity-a.opacity)*k,
	}
}

// Draw renders the dots onto s.
func (f *Floating) Draw(s draw.Surface, now time.Time) {
	w, h := s.Size()
	f.pool.Each(func(e *entity.Entity) {
		kf := sample(e, now)
		r := e.Radius / 2 * kf.scale
		x := e.X*w + r + kf.dx
		y := e.Y*h + r + kf.dy
		s.FillRadialGradient(x, y, r/0.7, floatGlow.Fade(kf.opacity))
	})
}

// Close drops the dots.
func (f *Floating) Close() {
	f.pool.Reset()
}
