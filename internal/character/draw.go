package character

import (
	"math"
	"time"

	"github.com/tomz197/portfolio/internal/draw"
	"github.com/tomz197/portfolio/internal/entity"
)

var (
	glowColor    = draw.RGBA(0, 255, 136, 0.8)
	eyeColor     = draw.MustHex("#0a0a1a")
	shineColor   = draw.MustHex("#ffffff")
	antennaTip   = draw.MustHex("#ff00ff")
	floatPeriod  = 3 * time.Second
	wavePeriod   = 300 * time.Millisecond
	gradientRows = 8
)

// triangle maps p in [0,1] to 0 -> 1 -> 0 with an ease on each half.
func triangle(p float64) float64 {
	if p < 0.5 {
		return entity.EaseInOut(p * 2)
	}
	return entity.EaseInOut((1 - p) * 2)
}

// lift returns how far above its rest position the body is at now.
func (c *Character) lift(now time.Time) float64 {
	if !c.jumpAt.IsZero() {
		if d := now.Sub(c.jumpAt); d >= 0 && d < jumpFor {
			return 30 * triangle(float64(d)/float64(jumpFor))
		}
	}
	phase := float64(now.UnixMilli()%floatPeriod.Milliseconds()) / float64(floatPeriod.Milliseconds())
	return c.bounds.H * 0.06 * triangle(phase)
}

// armAngle returns the waving arm rotation in degrees following the
// wave keyframes 0, -30, 0, 30, 0.
func (c *Character) armAngle(now time.Time) float64 {
	if c.state != Waving {
		return 0
	}
	d := now.Sub(c.waveAt)
	if d < 0 {
		return 0
	}
	p := float64(d%wavePeriod) / float64(wavePeriod)
	if p < 0.5 {
		return -30 * triangle(p*2)
	}
	return 30 * triangle((p-0.5)*2)
}

// gradientDisc fills a disc whose colour runs from top to bottom.
func gradientDisc(s draw.Surface, cx, cy, r float64, top, bottom draw.Color) {
	step := 2 * r / float64(gradientRows)
	for i := 0; i < gradientRows; i++ {
		y0 := cy - r + float64(i)*step
		mid := y0 + step/2 - cy
		half := math.Sqrt(math.Max(r*r-mid*mid, 0))
		t := float64(i) / float64(gradientRows-1)
		s.FillRect(cx-half, y0, 2*half, step, top.Lerp(bottom, t))
	}
}

// Frame draws the character onto s. The speech bubble is left to the page.
func (c *Character) Frame(s draw.Surface, now time.Time) {
	if c.disabled {
		return
	}
	b := c.bounds
	scale := c.Scale()
	cx := b.X + b.W/2
	base := b.Y - c.lift(now)

	if c.hovered {
		cy := base + b.H/2
		s.FillRadialGradient(cx, cy, b.W*0.7, glowColor.Fade(0.4))
	}

	top, bottom := HeadColors(c.mood)

	// Body and arms.
	br := b.W * 0.2 * scale
	by := base + b.H*0.76
	armLen := b.W * 0.3 * scale
	for side := -1.0; side <= 1; side += 2 {
		ax := cx + side*br*0.9
		ay := by - br*0.2
		angle := side * 60
		if side > 0 {
			angle -= c.armAngle(now) * 2
		}
		rad := angle * math.Pi / 180
		ex := ax + math.Sin(rad)*armLen
		ey := ay + math.Cos(rad)*armLen
		s.StrokeLine(ax, ay, ex, ey, 3, bottom, bottom)
		s.FillCircle(ex, ey, br*0.2, top)
	}
	gradientDisc(s, cx, by, br, top, bottom)

	// Head.
	hr := b.W * 0.32 * scale
	hy := base + b.H*0.38
	hx := cx + math.Sin(c.tilt*math.Pi/180)*hr*0.5

	for side := -1.0; side <= 1; side += 2 {
		x0 := hx + side*hr*0.45
		y0 := hy - hr*0.8
		x1 := hx + side*hr*0.7
		y1 := hy - hr*1.5
		s.StrokeLine(x0, y0, x1, y1, 2, top, top)
		s.FillCircle(x1, y1, hr*0.12*c.antenna, antennaTip)
	}
	gradientDisc(s, hx, hy, hr, top, bottom)

	// Eyes.
	er := hr * 0.25
	dx, dy := c.Eyes()
	for side := -1.0; side <= 1; side += 2 {
		ex := hx + side*hr*0.4 + dx
		ey := hy + dy
		if c.blinking {
			s.FillRect(ex-er, ey-er*0.1, 2*er, er*0.2, eyeColor)
			continue
		}
		s.FillCircle(ex, ey, er, eyeColor)
		s.FillCircle(ex+er*0.35, ey-er*0.35, er*0.35, shineColor)
	}
}
