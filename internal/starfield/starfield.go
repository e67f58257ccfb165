// Package starfield draws the animated background: twinkling stars,
// drifting nebulas and the occasional shooting star.
package starfield

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/portfolio/internal/draw"
	"github.com/tomz197/portfolio/internal/entity"
)

var (
	starColors = []draw.Color{
		draw.MustHex("#ffffff"),
		draw.MustHex("#00ff88"),
		draw.MustHex("#ff00ff"),
		draw.MustHex("#00ffff"),
		draw.MustHex("#ffff00"),
		draw.MustHex("#ff6b6b"),
	}
	nebulaColors = []draw.Color{
		draw.RGBA(0, 255, 136, 0.03),
		draw.RGBA(255, 0, 255, 0.03),
		draw.RGBA(0, 255, 255, 0.03),
	}
	white = draw.MustHex("#ffffff")

	// DefaultBackground is the trail fade colour.
	DefaultBackground = draw.RGBA(5, 5, 16, 1)
)

const (
	trailAlpha     = 0.3
	shootingWidth  = 2
	glowThreshold  = 1.5
	parallaxFactor = 0.01
)

// Options configure a Driver.
type Options struct {
	Stars   int
	Nebulas int
	// ShootingStarChance is the per-frame probability of a random shooting
	// star.
	ShootingStarChance float64
}

// DefaultOptions returns the stock starfield.
func DefaultOptions() Options {
	return Options{Stars: 200, Nebulas: 5, ShootingStarChance: 0.003}
}

// Driver owns the starfield entities. One Frame call is one animation tick.
type Driver struct {
	opts     Options
	rng      *rand.Rand
	w, h     float64
	pointerX float64
	pointerY float64
	bg       draw.Color

	stars    *entity.Pool
	nebulas  *entity.Pool
	shooting *entity.Pool
}

// New creates the stars and nebulas for a w x h surface.
func New(w, h float64, opts Options, rng *rand.Rand) *Driver {
	d := &Driver{
		opts:     opts,
		rng:      rng,
		w:        w,
		h:        h,
		bg:       DefaultBackground,
		stars:    entity.NewPool(entity.Star, opts.Stars),
		nebulas:  entity.NewPool(entity.Nebula, opts.Nebulas),
		shooting: entity.NewPool(entity.ShootingStar, 8),
	}
	for i := 0; i < opts.Stars; i++ {
		d.stars.Spawn(entity.Entity{
			X:             rng.Float64() * w,
			Y:             rng.Float64() * h,
			Radius:        rng.Float64()*2 + 0.5,
			Opacity:       rng.Float64(),
			TwinkleSpeed:  rng.Float64()*0.02 + 0.005,
			TwinkleOffset: rng.Float64() * math.Pi * 2,
			Color:         starColors[rng.Intn(len(starColors))],
		})
	}
	for i := 0; i < opts.Nebulas; i++ {
		d.nebulas.Spawn(entity.Entity{
			X:      rng.Float64() * w,
			Y:      rng.Float64() * h,
			Radius: rng.Float64()*300 + 100,
			Color:  nebulaColors[rng.Intn(len(nebulaColors))],
			DriftX: (rng.Float64() - 0.5) * 0.2,
			DriftY: (rng.Float64() - 0.5) * 0.2,
		})
	}
	return d
}

// Resize changes the surface size. Entities keep their positions.
func (d *Driver) Resize(w, h float64) {
	d.w, d.h = w, h
}

// SetPointer records the pointer position used for nebula parallax.
func (d *Driver) SetPointer(x, y float64) {
	d.pointerX, d.pointerY = x, y
}

// SetBackground sets the colour the trail fade is painted with.
func (d *Driver) SetBackground(c draw.Color) {
	d.bg = c.WithAlpha(1)
}

// Click launches a shooting star from the click point.
func (d *Driver) Click(x, y float64) {
	d.SpawnShootingStar(x, y)
}

// SpawnShootingStar adds a shooting star at x,y with random trajectory. A
// zero x picks a random column and a zero y starts at the top edge.
func (d *Driver) SpawnShootingStar(x, y float64) *entity.Entity {
	if x == 0 {
		x = d.rng.Float64() * d.w
	}
	length := d.rng.Float64()*100 + 50
	speed := d.rng.Float64()*10 + 15
	angle := math.Pi/4 + (d.rng.Float64()-0.5)*0.5
	return d.SpawnShootingStarWith(x, y, speed, angle, length)
}

// SpawnShootingStarWith adds a shooting star with a fixed trajectory.
func (d *Driver) SpawnShootingStarWith(x, y, speed, angle, length float64) *entity.Entity {
	return d.shooting.Spawn(entity.Entity{
		X:       x,
		Y:       y,
		Speed:   speed,
		Angle:   angle,
		Length:  length,
		Opacity: 1,
	})
}

// Frame draws one tick of the starfield onto s.
func (d *Driver) Frame(s draw.Surface, now time.Time) {
	d.w, d.h = s.Size()
	t := float64(now.UnixMilli()) * 0.001

	s.FillRect(0, 0, d.w, d.h, d.bg.WithAlpha(trailAlpha))

	d.nebulas.Tick(entity.TickContext{
		Width:   d.w,
		Height:  d.h,
		OffsetX: (d.pointerX - d.w/2) * parallaxFactor,
		OffsetY: (d.pointerY - d.h/2) * parallaxFactor,
	})
	d.nebulas.Each(func(e *entity.Entity) {
		s.FillRadialGradient(e.X, e.Y, e.Radius, e.Color)
	})

	d.stars.Each(func(e *entity.Entity) {
		op := entity.Twinkle(e, t)
		s.FillCircle(e.X, e.Y, e.Radius, e.Color.WithAlpha(op))
		if e.Radius > glowThreshold {
			s.FillRadialGradient(e.X, e.Y, e.Radius*3, e.Color.WithAlpha(op*0.5))
		}
	})

	d.shooting.Each(func(e *entity.Entity) {
		if e.Opacity <= 0 {
			return
		}
		endX := e.X + math.Cos(e.Angle)*e.Length
		endY := e.Y + math.Sin(e.Angle)*e.Length
		s.StrokeLine(e.X, e.Y, endX, endY, shootingWidth, white.WithAlpha(e.Opacity), white.WithAlpha(0))
	})
	d.shooting.Tick(entity.TickContext{Width: d.w, Height: d.h})
	d.shooting.Prune()

	if d.rng.Float64() < d.opts.ShootingStarChance {
		d.SpawnShootingStar(0, 0)
	}
}

// Stars returns the star pool.
func (d *Driver) Stars() *entity.Pool { return d.stars }

// Nebulas returns the nebula pool.
func (d *Driver) Nebulas() *entity.Pool { return d.nebulas }

// ShootingStars returns the shooting star pool.
func (d *Driver) ShootingStars() *entity.Pool { return d.shooting }

// Close releases every entity.
func (d *Driver) Close() {
	d.stars.Reset()
	d.nebulas.Reset()
	d.shooting.Reset()
}
