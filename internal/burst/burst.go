// Package burst implements the one-shot effects: the character's click
// burst, the contact form sparkles, newsletter confetti and the mini alien
// pop. Each entity is removed by its own deferred task.
package burst

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/portfolio/internal/draw"
	"github.com/tomz197/portfolio/internal/entity"
	"github.com/tomz197/portfolio/internal/sched"
)

var (
	radialColors = []draw.Color{
		draw.MustHex("#00ff88"),
		draw.MustHex("#ff00ff"),
		draw.MustHex("#00ffff"),
		draw.MustHex("#ffff00"),
		draw.MustHex("#ff6b6b"),
	}
	confettiColors = []draw.Color{
		draw.MustHex("#00ff88"),
		draw.MustHex("#ff00ff"),
		draw.MustHex("#00d4ff"),
		draw.MustHex("#ffdd00"),
	}
	sparkleGlyphs = []rune{'✦', '★', '✧', '⋆'}
	sparkleColor  = draw.MustHex("#ffdd00")
	spriteColor   = draw.MustHex("#c084fc")
)

// Counts and lifetimes of the stock effects.
const (
	SuccessCount  = 20
	ConfettiCount = 50

	radialSize     = 10
	radialLife     = time.Second
	successLife    = time.Second
	confettiLife   = 4 * time.Second
	confettiTop    = -20
	confettiSpin   = 720
	spriteAnim     = 500 * time.Millisecond
	spriteLife     = 2 * time.Second
	minConfettiTip = 0.15
)

// SpriteGlyph is the mini alien.
const SpriteGlyph = '👾'

// Driver owns the short-lived burst entities.
type Driver struct {
	s   *sched.Scheduler
	rng *rand.Rand

	particles *entity.Pool
	confetti  *entity.Pool
	sprites   *entity.Pool
}

// New creates a burst driver whose removals run on s.
func New(s *sched.Scheduler, rng *rand.Rand) *Driver {
	return &Driver{
		s:         s,
		rng:       rng,
		particles: entity.NewPool(entity.Particle, 32),
		confetti:  entity.NewPool(entity.Confetti, ConfettiCount),
		sprites:   entity.NewPool(entity.Sprite, 4),
	}
}

func (d *Driver) spawn(p *entity.Pool, e entity.Entity, life time.Duration) uint64 {
	e.Born = d.s.Now()
	id := p.Spawn(e).ID
	d.s.After(life, func() { p.Remove(id) })
	return id
}

// Radial bursts n particles outward from x,y, evenly spaced by angle.
func (d *Driver) Radial(x, y float64, n int) []uint64 {
	ids := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		angle := math.Pi * 2 / float64(n) * float64(i)
		velocity := 100 + d.rng.Float64()*50
		ids = append(ids, d.spawn(d.particles, entity.Entity{
			X:        x,
			Y:        y,
			TX:       math.Cos(angle) * velocity,
			TY:       math.Sin(angle) * velocity,
			Angle:    angle,
			Radius:   radialSize,
			Color:    radialColors[d.rng.Intn(len(radialColors))],
			Duration: radialLife,
		}, radialLife))
	}
	return ids
}

// Success sprays sparkles upward from x,y.
func (d *Driver) Success(x, y float64) []uint64 {
	ids := make([]uint64, 0, SuccessCount)
	for i := 0; i < SuccessCount; i++ {
		glyph := sparkleGlyphs[d.rng.Intn(len(sparkleGlyphs))]
		ids = append(ids, d.spawn(d.particles, entity.Entity{
			X:        x,
			Y:        y,
			Glyph:    glyph,
			Radius:   d.rng.Float64()*10 + 15,
			TX:       (d.rng.Float64() - 0.5) * 200,
			TY:       -d.rng.Float64()*150 - 50,
			Color:    sparkleColor,
			Duration: successLife,
		}, successLife))
	}
	return ids
}

// Confetti drops flakes across a surface of the given size.
func (d *Driver) Confetti(width, height float64) []uint64 {
	ids := make([]uint64, 0, ConfettiCount)
	for i := 0; i < ConfettiCount; i++ {
		size := d.rng.Float64()*10 + 5
		color := confettiColors[d.rng.Intn(len(confettiColors))]
		x := d.rng.Float64() * width
		round := d.rng.Float64() > 0.5
		dur := time.Duration((d.rng.Float64()*2 + 2) * float64(time.Second))
		ids = append(ids, d.spawn(d.confetti, entity.Entity{
			X:        x,
			Y:        confettiTop,
			Radius:   size,
			Color:    color,
			Round:    round,
			TY:       height,
			Rotation: confettiSpin,
			Duration: dur,
		}, confettiLife))
	}
	return ids
}

// Pop shows a mini alien at x,y.
func (d *Driver) Pop(x, y float64) uint64 {
	return d.spawn(d.sprites, entity.Entity{
		X:        x,
		Y:        y,
		Glyph:    SpriteGlyph,
		Color:    spriteColor,
		Duration: spriteAnim,
	}, spriteLife)
}

// Draw renders every live burst entity at now.
func (d *Driver) Draw(s draw.Surface, now time.Time) {
	d.particles.Each(func(e *entity.Entity) {
		k := entity.EaseOut(entity.BurstProgress(e, now))
		x := e.X + e.TX*k
		y := e.Y + e.TY*k
		fade := 1 - k
		if e.Glyph != 0 {
			if fade > 0 {
				s.Glyph(x, y, e.Glyph, e.Color.WithAlpha(fade))
			}
			return
		}
		s.FillCircle(x, y, e.Radius/2*fade, e.Color.WithAlpha(fade))
	})

	d.confetti.Each(func(e *entity.Entity) {
		k := entity.EaseOut(entity.BurstProgress(e, now))
		y := e.Y + e.TY*k
		c := e.Color.WithAlpha(1 - k)
		if e.Round {
			s.FillCircle(e.X, y, e.Radius/2, c)
			return
		}
		rot := e.Rotation * k * math.Pi / 180
		w := e.Radius * math.Max(math.Abs(math.Cos(rot)), minConfettiTip)
		s.FillRect(e.X-w/2, y-e.Radius/2, w, e.Radius, c)
	})

	d.sprites.Each(func(e *entity.Entity) {
		if op := spriteOpacity(entity.BurstProgress(e, now)); op > 0 {
			s.Glyph(e.X, e.Y, e.Glyph, e.Color.WithAlpha(op))
		}
	})
}

// spriteOpacity follows the pop keyframes: fade in to the midpoint, then
// out again.
func spriteOpacity(p float64) float64 {
	if p < 0.5 {
		return entity.EaseInOut(p * 2)
	}
	return 1 - entity.EaseInOut((p-0.5)*2)
}

// Particles returns the click and success particle pool.
func (d *Driver) Particles() *entity.Pool { return d.particles }

// ConfettiPool returns the confetti pool.
func (d *Driver) ConfettiPool() *entity.Pool { return d.confetti }

// Sprites returns the mini alien pool.
func (d *Driver) Sprites() *entity.Pool { return d.sprites }

// Close drops every live entity.
func (d *Driver) Close() {
	d.particles.Reset()
	d.confetti.Reset()
	d.sprites.Reset()
}
