// Package audio synthesizes the character's click tone and plays it.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Click tone shape: a sine sweeping up over the first part of the tone while
// the gain decays over the whole of it.
const (
	ClickLength    = 200 * time.Millisecond
	clickSweep     = 100 * time.Millisecond
	clickFreqStart = 800.0
	clickFreqEnd   = 1200.0
	clickGainStart = 0.1
	clickGainEnd   = 0.01
)

// expRamp interpolates exponentially from a to b as t goes from 0 to 1.
func expRamp(a, b, t float64) float64 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return a * math.Pow(b/a, t)
}

// ClickFrequency returns the tone frequency in Hz at offset d.
func ClickFrequency(d time.Duration) float64 {
	return expRamp(clickFreqStart, clickFreqEnd, float64(d)/float64(clickSweep))
}

// ClickGain returns the tone gain at offset d.
func ClickGain(d time.Duration) float64 {
	return expRamp(clickGainStart, clickGainEnd, float64(d)/float64(ClickLength))
}

// sweep is a sine oscillator whose frequency and gain follow the click
// ramps.
type sweep struct {
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
}

// NewClickTone returns the click tone as a finite stream at rate.
func NewClickTone(rate beep.SampleRate) beep.Streamer {
	return &sweep{rate: rate, total: rate.N(ClickLength)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		at := s.rate.D(s.position)
		val := math.Sin(2*math.Pi*s.phase) * ClickGain(at)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += ClickFrequency(at) / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }
