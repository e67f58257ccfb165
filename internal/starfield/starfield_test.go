package starfield

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/portfolio/internal/draw/drawtest"
	"github.com/tomz197/portfolio/internal/entity"
)

func newDriver(seed int64, chance float64) *Driver {
	opts := DefaultOptions()
	opts.ShootingStarChance = chance
	return New(800, 600, opts, rand.New(rand.NewSource(seed)))
}

func TestConstruction(t *testing.T) {
	d := newDriver(1, 0)
	require.Equal(t, 200, d.Stars().Len())
	require.Equal(t, 5, d.Nebulas().Len())
	assert.Zero(t, d.ShootingStars().Len())

	d.Stars().Each(func(e *entity.Entity) {
		assert.GreaterOrEqual(t, e.Radius, 0.5)
		assert.Less(t, e.Radius, 2.5)
		assert.GreaterOrEqual(t, e.TwinkleSpeed, 0.005)
		assert.Less(t, e.TwinkleSpeed, 0.025)
		assert.Equal(t, 1.0, e.Color.A)
	})
	d.Nebulas().Each(func(e *entity.Entity) {
		assert.GreaterOrEqual(t, e.Radius, 100.0)
		assert.Less(t, e.Radius, 400.0)
		assert.LessOrEqual(t, math.Abs(e.DriftX), 0.1)
		assert.InDelta(t, 0.03, e.Color.A, 1e-12)
	})
}

func TestFixedCountsAndWrap(t *testing.T) {
	d := newDriver(2, 0.5)
	rec := drawtest.New(800, 600)
	d.SetPointer(790, 10)
	now := time.Unix(1700000000, 0)
	for i := 0; i < 3000; i++ {
		rec.Reset()
		d.Frame(rec, now.Add(time.Duration(i)*16*time.Millisecond))
		require.Equal(t, 200, d.Stars().Len())
		require.Equal(t, 5, d.Nebulas().Len())
	}
	d.Nebulas().Each(func(e *entity.Entity) {
		assert.GreaterOrEqual(t, e.X, -e.Radius)
		assert.LessOrEqual(t, e.X, 800+e.Radius)
		assert.GreaterOrEqual(t, e.Y, -e.Radius)
		assert.LessOrEqual(t, e.Y, 600+e.Radius)
	})
}

func TestFrameDrawOrder(t *testing.T) {
	d := newDriver(3, 0)
	d.SpawnShootingStarWith(100, 0, 20, math.Pi/4, 80)
	rec := drawtest.New(800, 600)
	d.Frame(rec, time.Unix(0, 0))

	require.NotEmpty(t, rec.Calls)
	first := rec.Calls[0]
	assert.Equal(t, drawtest.FillRect, first.Op)
	assert.Equal(t, 800.0, first.W)
	assert.InDelta(t, 0.3, first.Color.A, 1e-12)

	glow := 0
	d.Stars().Each(func(e *entity.Entity) {
		if e.Radius > 1.5 {
			glow++
		}
	})
	assert.Equal(t, 200, rec.Count(drawtest.FillCircle))
	assert.Equal(t, 5+glow, rec.Count(drawtest.FillRadialGradient))

	lines := rec.Of(drawtest.StrokeLine)
	require.Len(t, lines, 1)
	assert.Equal(t, 100.0, lines[0].X)
	assert.Equal(t, 0.0, lines[0].Y)
	assert.Equal(t, 2.0, lines[0].R)
	assert.Equal(t, 1.0, lines[0].Color.A)
	assert.Zero(t, lines[0].To.A)
	assert.Equal(t, drawtest.StrokeLine, rec.Calls[len(rec.Calls)-1].Op)
}

func TestShootingStarLifetime(t *testing.T) {
	d := newDriver(4, 0)
	d.SpawnShootingStarWith(100, 0, 20, math.Pi/4, 80)
	rec := drawtest.New(800, 600)
	now := time.Unix(0, 0)

	for k := 1; k < 50; k++ {
		d.Frame(rec, now)
		require.Equal(t, 1, d.ShootingStars().Len(), "frame %d", k)
		e := d.ShootingStars().At(0)
		assert.InDelta(t, 100+float64(k)*20*math.Cos(math.Pi/4), e.X, 1e-9)
		assert.InDelta(t, float64(k)*20*math.Sin(math.Pi/4), e.Y, 1e-9)
		assert.InDelta(t, 1-0.02*float64(k), e.Opacity, 1e-9)
	}
	d.Frame(rec, now)
	assert.Zero(t, d.ShootingStars().Len())
}

func TestClickSpawnsAtPoint(t *testing.T) {
	d := newDriver(5, 0)
	d.Click(320, 48)
	require.Equal(t, 1, d.ShootingStars().Len())
	e := d.ShootingStars().At(0)
	assert.Equal(t, 320.0, e.X)
	assert.Equal(t, 48.0, e.Y)
	assert.GreaterOrEqual(t, e.Speed, 15.0)
	assert.Less(t, e.Speed, 25.0)
	assert.InDelta(t, math.Pi/4, e.Angle, 0.25)

	d.SpawnShootingStar(0, 0)
	e = d.ShootingStars().At(1)
	assert.Zero(t, e.Y)
	assert.GreaterOrEqual(t, e.X, 0.0)
	assert.Less(t, e.X, 800.0)
}

func TestClose(t *testing.T) {
	d := newDriver(6, 0)
	d.Click(10, 10)
	d.Close()
	assert.Zero(t, d.Stars().Len())
	assert.Zero(t, d.Nebulas().Len())
	assert.Zero(t, d.ShootingStars().Len())
}
