package ui

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tomz197/portfolio/internal/entity"
	"github.com/tomz197/portfolio/internal/sched"
	"github.com/tomz197/portfolio/internal/visibility"
)

const (
	countFor       = 2000 * time.Millisecond
	countThreshold = 0.5
)

// Stat is an animated number in the about section.
type Stat struct {
	ID     string
	Target int
	Label  string
}

type counter struct {
	stat    Stat
	started time.Time
	sub     visibility.Subscription
}

// Counter counts each stat up from zero the first time it is half visible.
type Counter struct {
	s        *sched.Scheduler
	printer  *message.Printer
	counters map[string]*counter
	order    []string
}

// NewCounter observes every stat on sig.
func NewCounter(s *sched.Scheduler, sig visibility.Signal, stats []Stat) *Counter {
	c := &Counter{
		s:        s,
		printer:  message.NewPrinter(language.English),
		counters: make(map[string]*counter, len(stats)),
	}
	for _, st := range stats {
		k := &counter{stat: st}
		c.counters[st.ID] = k
		c.order = append(c.order, st.ID)
		if sig != nil && s != nil {
			k.sub = sig.Observe(st.ID, visibility.Options{Threshold: countThreshold}, c.start)
		}
	}
	return c
}

func (c *Counter) start(id string) {
	k := c.counters[id]
	if k == nil || !k.started.IsZero() {
		return
	}
	k.started = c.s.Now()
	k.sub.Unobserve()
}

// Stats returns the stats in order.
func (c *Counter) Stats() []Stat {
	out := make([]Stat, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.counters[id].stat)
	}
	return out
}

// Started reports whether the stat began counting.
func (c *Counter) Started(id string) bool {
	k := c.counters[id]
	return k != nil && !k.started.IsZero()
}

// Value returns the number shown for the stat at now.
func (c *Counter) Value(id string, now time.Time) int {
	k := c.counters[id]
	if k == nil || k.started.IsZero() {
		return 0
	}
	p := clamp01(float64(now.Sub(k.started)) / float64(countFor))
	return int(math.Floor(float64(k.stat.Target) * entity.EaseOutQuart(p)))
}

// Text returns the value with thousands separators.
func (c *Counter) Text(id string, now time.Time) string {
	return c.printer.Sprintf("%d", c.Value(id, now))
}

// Close stops observing stats that never showed.
func (c *Counter) Close() {
	for _, k := range c.counters {
		if k.sub != nil {
			k.sub.Unobserve()
		}
	}
}
