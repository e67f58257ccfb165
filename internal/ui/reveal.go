package ui

import (
	"time"

	"github.com/tomz197/portfolio/internal/entity"
	"github.com/tomz197/portfolio/internal/sched"
	"github.com/tomz197/portfolio/internal/visibility"
)

// RevealKind is the entrance animation of an element.
type RevealKind int

const (
	FadeInUp RevealKind = iota
	FadeInLeft
	ScaleIn
)

const (
	revealFor     = 600 * time.Millisecond
	revealStagger = 100 * time.Millisecond
	revealShift   = 30
	revealScale   = 0.8
)

// RevealState is how a revealed element is drawn.
type RevealState struct {
	Opacity          float64
	OffsetX, OffsetY float64
	Scale            float64
}

type revealed struct {
	kind  RevealKind
	delay time.Duration
	at    time.Time
}

// ScrollReveal fades elements in as they scroll into view.
type ScrollReveal struct {
	s     *sched.Scheduler
	sig   visibility.Signal
	items map[string]*revealed
	subs  []visibility.Subscription
}

// NewScrollReveal creates the reveal controller.
func NewScrollReveal(s *sched.Scheduler, sig visibility.Signal) *ScrollReveal {
	return &ScrollReveal{s: s, sig: sig, items: make(map[string]*revealed)}
}

// Add registers a group of elements. Each waits 0.1 s longer than the one
// before it.
func (r *ScrollReveal) Add(kind RevealKind, ids ...string) {
	if r.s == nil || r.sig == nil {
		return
	}
	opts := visibility.Options{Threshold: 0.1, MarginBottom: -50}
	for i, id := range ids {
		r.items[id] = &revealed{kind: kind, delay: time.Duration(i) * revealStagger}
		r.subs = append(r.subs, r.sig.Observe(id, opts, r.reveal))
	}
}

func (r *ScrollReveal) reveal(id string) {
	if it := r.items[id]; it != nil && it.at.IsZero() {
		it.at = r.s.Now()
	}
}

// Revealed reports whether the element has come into view.
func (r *ScrollReveal) Revealed(id string) bool {
	it := r.items[id]
	return it != nil && !it.at.IsZero()
}

// State returns the element's look at now. Unknown elements are fully
// shown.
func (r *ScrollReveal) State(id string, now time.Time) RevealState {
	it := r.items[id]
	if it == nil {
		return RevealState{Opacity: 1, Scale: 1}
	}
	p := 0.0
	if !it.at.IsZero() {
		p = entity.EaseInOut(clamp01(float64(now.Sub(it.at)-it.delay) / float64(revealFor)))
	}
	st := RevealState{Opacity: p, Scale: 1}
	switch it.kind {
	case FadeInUp:
		st.OffsetY = revealShift * (1 - p)
	case FadeInLeft:
		st.OffsetX = -revealShift * (1 - p)
	case ScaleIn:
		st.Scale = revealScale + (1-revealScale)*p
	}
	return st
}

// Close stops observing.
func (r *ScrollReveal) Close() {
	for _, s := range r.subs {
		s.Unobserve()
	}
	r.subs = nil
}
