package ui

import (
	"time"

	"github.com/tomz197/portfolio/internal/sched"
)

const (
	loadedDelay = 800 * time.Millisecond
	loadingMax  = 3000 * time.Millisecond
)

// LoadingOverlay covers the page while it starts.
type LoadingOverlay struct {
	s      *sched.Scheduler
	hidden bool
	timers [2]sched.Handle
}

// NewLoadingOverlay shows the overlay and hides it after 3 s at the latest.
func NewLoadingOverlay(s *sched.Scheduler) *LoadingOverlay {
	o := &LoadingOverlay{s: s}
	if s == nil {
		o.hidden = true
		return o
	}
	o.timers[0] = s.After(loadingMax, o.hide)
	return o
}

// Loaded hides the overlay 800 ms later.
func (o *LoadingOverlay) Loaded() {
	if o.hidden || o.timers[1].Active() {
		return
	}
	o.timers[1] = o.s.After(loadedDelay, o.hide)
}

func (o *LoadingOverlay) hide() {
	o.hidden = true
	o.timers[0].Cancel()
	o.timers[1].Cancel()
}

// Hidden reports whether the page is uncovered.
func (o *LoadingOverlay) Hidden() bool { return o.hidden }

// Close cancels the timers.
func (o *LoadingOverlay) Close() {
	o.timers[0].Cancel()
	o.timers[1].Cancel()
}
