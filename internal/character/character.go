// Package character drives the alien mascot: idle animations, eye tracking,
// click and hover reactions, speech and section moods.
package character

import (
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/portfolio/internal/audio"
	"github.com/tomz197/portfolio/internal/burst"
	"github.com/tomz197/portfolio/internal/sched"
	"github.com/tomz197/portfolio/internal/visibility"
)

// State is the character's behaviour state.
type State int

const (
	Idle State = iota
	Waving
	Excited
)

func (s State) String() string {
	switch s {
	case Waving:
		return "waving"
	case Excited:
		return "excited"
	default:
		return "idle"
	}
}

// Messages is the set the character picks from when clicked.
var Messages = []string{
	"Welcome to my universe! 👋",
	"Exploring code & creativity! 🚀",
	"Let's make something cosmic! ✨",
	"Music is my universal language! 🎵",
	"Tech + Art = Magic! 🪄",
	"Ready to collaborate? 🤝",
	"Click me for a surprise! 🎁",
	"I come in peace... and code! 💻",
}

// HoverMessage is spoken when the pointer enters the character.
const HoverMessage = "Hey there! 👽"

const (
	blinkEvery    = 3 * time.Second
	blinkFor      = 150 * time.Millisecond
	waveEvery     = 5 * time.Second
	waveFor       = 1500 * time.Millisecond
	antennaEvery  = 4 * time.Second
	antennaFor    = 300 * time.Millisecond
	antennaScale  = 1.2
	excitedFor    = 500 * time.Millisecond
	jumpFor       = 500 * time.Millisecond
	speechFor     = 3000 * time.Millisecond
	tiltFor       = 300 * time.Millisecond
	tiltDegrees   = 10
	hoverScale    = 1.1
	eyeDivisor    = 50
	eyeMaxMove    = 5
	burstCount    = 10
	sectionThresh = 0.5
)

// Bounds is the character's box in logical surface units.
type Bounds struct {
	X, Y, W, H float64
}

// Empty reports whether the bounds have no area.
func (b Bounds) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Center returns the middle of the box.
func (b Bounds) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Contains reports whether the point lies inside the box.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Options tune the random idle animations.
type Options struct {
	BlinkChance   float64
	WaveChance    float64
	AntennaChance float64
}

// DefaultOptions returns the stock idle behaviour.
func DefaultOptions() Options {
	return Options{BlinkChance: 0.3, WaveChance: 0.2, AntennaChance: 1}
}

// Deps are the collaborators a Character needs. Burst, Player, Signal and
// Logger may be nil.
type Deps struct {
	Sched    *sched.Scheduler
	Rng      *rand.Rand
	Burst    *burst.Driver
	Player   audio.Player
	Signal   visibility.Signal
	Sections []string
	Options  Options
	Logger   *log.Logger
}

// Speech is the speech bubble state. At most one message is visible.
type Speech struct {
	Message   string
	Visible   bool
	LastShown time.Time
}

// Character is the mascot. A Character created with empty bounds ignores
// every call.
type Character struct {
	disabled bool
	bounds   Bounds
	deps     Deps
	logger   *log.Logger

	state State
	mood  Mood

	pointerX, pointerY float64
	hovered            bool
	blinking           bool
	antenna            float64
	tilt               float64
	lastScroll         float64
	scrolled           bool
	jumpAt             time.Time
	waveAt             time.Time

	speech Speech

	timers []sched.Handle
	ret    sched.Handle // back to Idle after a click
	wave   sched.Handle
	hide   sched.Handle
	blink  sched.Handle
	pulse  sched.Handle
	untilt sched.Handle
	subs   []visibility.Subscription
}

// New creates the character in bounds and starts its idle timers.
func New(bounds Bounds, deps Deps) *Character {
	c := &Character{bounds: bounds, deps: deps, antenna: 1, logger: deps.Logger}
	if bounds.Empty() || deps.Sched == nil {
		c.disabled = true
		return c
	}
	if c.deps.Rng == nil {
		c.deps.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.deps.Player == nil {
		c.deps.Player = audio.Nop{}
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	s := deps.Sched
	c.timers = append(c.timers,
		s.Every(blinkEvery, func() {
			if c.deps.Rng.Float64() < c.deps.Options.BlinkChance {
				c.startBlink()
			}
		}),
		s.Every(waveEvery, func() {
			if c.deps.Rng.Float64() < c.deps.Options.WaveChance && c.state == Idle {
				c.startWave()
			}
		}),
		s.Every(antennaEvery, func() {
			if c.deps.Rng.Float64() < c.deps.Options.AntennaChance {
				c.pulseAntennas()
			}
		}),
	)
	if deps.Signal != nil {
		for _, id := range deps.Sections {
			c.subs = append(c.subs, deps.Signal.Observe(id, visibility.Options{Threshold: sectionThresh}, c.ReactToSection))
		}
	}
	return c
}

// Disabled reports whether the character has no place on the page.
func (c *Character) Disabled() bool { return c.disabled }

// Bounds returns the character's box.
func (c *Character) Bounds() Bounds { return c.bounds }

// SetBounds moves the character, e.g. after a resize or scroll.
func (c *Character) SetBounds(b Bounds) {
	if c.disabled {
		return
	}
	c.bounds = b
}

// State returns the behaviour state.
func (c *Character) State() State { return c.state }

// Mood returns the current mood.
func (c *Character) Mood() Mood { return c.mood }

// Speech returns the speech bubble state.
func (c *Character) Speech() Speech { return c.speech }

// Hovered reports whether the pointer is over the character.
func (c *Character) Hovered() bool { return c.hovered }

// Blinking reports whether the eyes are closed.
func (c *Character) Blinking() bool { return c.blinking }

// AntennaScale returns the antenna tip scale.
func (c *Character) AntennaScale() float64 { return c.antenna }

// Tilt returns the head tilt in degrees.
func (c *Character) Tilt() float64 { return c.tilt }

// Scale returns the whole-body scale.
func (c *Character) Scale() float64 {
	if c.hovered {
		return hoverScale
	}
	return 1
}

// SetPointer records the pointer position for eye tracking.
func (c *Character) SetPointer(x, y float64) {
	c.pointerX, c.pointerY = x, y
}

// Eyes returns the eye offset towards the pointer, clamped per axis.
func (c *Character) Eyes() (dx, dy float64) {
	if c.disabled {
		return 0, 0
	}
	cx, cy := c.bounds.Center()
	return clampEye((c.pointerX - cx) / eyeDivisor), clampEye((c.pointerY - cy) / eyeDivisor)
}

func clampEye(v float64) float64 {
	return math.Max(-eyeMaxMove, math.Min(eyeMaxMove, v))
}

func (c *Character) startBlink() {
	c.blinking = true
	c.blink.Cancel()
	c.blink = c.deps.Sched.After(blinkFor, func() { c.blinking = false })
}

func (c *Character) startWave() {
	c.state = Waving
	c.waveAt = c.deps.Sched.Now()
	c.wave.Cancel()
	c.wave = c.deps.Sched.After(waveFor, func() {
		if c.state == Waving {
			c.state = Idle
		}
	})
}

func (c *Character) pulseAntennas() {
	c.antenna = antennaScale
	c.pulse.Cancel()
	c.pulse = c.deps.Sched.After(antennaFor, func() { c.antenna = 1 })
}

// Click excites the character: it jumps, says something, bursts particles
// and chirps. A click while excited restarts the return to Idle.
func (c *Character) Click() {
	if c.disabled {
		return
	}
	s := c.deps.Sched
	c.state = Excited
	c.jumpAt = s.Now()
	c.wave.Cancel()

	c.Speak(Messages[c.deps.Rng.Intn(len(Messages))])
	if c.deps.Burst != nil {
		cx, cy := c.bounds.Center()
		c.deps.Burst.Radial(cx, cy, burstCount)
	}
	c.deps.Player.Click()

	c.ret.Cancel()
	c.ret = s.After(excitedFor, func() { c.state = Idle })
	c.logger.Debug("character clicked", "message", c.speech.Message)
}

// Speak shows msg in the speech bubble, replacing any current message.
func (c *Character) Speak(msg string) {
	if c.disabled {
		return
	}
	s := c.deps.Sched
	c.speech = Speech{Message: msg, Visible: true, LastShown: s.Now()}
	c.hide.Cancel()
	c.hide = s.After(speechFor, func() { c.speech.Visible = false })
}

// Hover reports the pointer entering or leaving the character.
func (c *Character) Hover(in bool) {
	if c.disabled || in == c.hovered {
		return
	}
	c.hovered = in
	if in {
		c.Speak(HoverMessage)
	}
}

// Scroll tilts the head in the scroll direction for a moment. The first
// sample only records the position.
func (c *Character) Scroll(y float64) {
	if c.disabled {
		return
	}
	if c.scrolled {
		dir := -1.0
		if y > c.lastScroll {
			dir = 1
		}
		c.tilt = dir * tiltDegrees
		c.untilt.Cancel()
		c.untilt = c.deps.Sched.After(tiltFor, func() { c.tilt = 0 })
	}
	c.lastScroll = y
	c.scrolled = true
}

// Close stops the timers and subscriptions.
func (c *Character) Close() {
	for _, h := range c.timers {
		h.Cancel()
	}
	for _, h := range []sched.Handle{c.ret, c.wave, c.hide, c.blink, c.pulse, c.untilt} {
		h.Cancel()
	}
	for _, sub := range c.subs {
		sub.Unobserve()
	}
	c.timers = nil
	c.subs = nil
}
