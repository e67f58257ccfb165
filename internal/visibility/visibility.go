// Package visibility reports when page regions scroll into the viewport.
package visibility

import "math"

// Options control when an observed region counts as visible.
type Options struct {
	// Threshold is the visible fraction of the region that triggers the
	// callback. Zero means any overlap.
	Threshold float64
	// Margins grow (positive) or shrink (negative) the viewport edges.
	MarginTop    float64
	MarginBottom float64
}

// Subscription is returned by Observe.
type Subscription interface {
	Unobserve()
}

// Signal notifies subscribers when a region enters the viewport.
type Signal interface {
	Observe(id string, opts Options, fn func(id string)) Subscription
}

type region struct {
	top, height float64
}

type observer struct {
	t      *Tracker
	id     string
	opts   Options
	fn     func(id string)
	inside bool
	gone   bool
}

func (o *observer) Unobserve() {
	if o.gone {
		return
	}
	o.gone = true
	obs := o.t.observers
	for i, x := range obs {
		if x == o {
			o.t.observers = append(obs[:i:i], obs[i+1:]...)
			return
		}
	}
}

// Tracker is a Signal driven by explicit scroll updates. Callbacks fire on
// entry only: a region has to leave before it can fire again.
type Tracker struct {
	regions   map[string]region
	observers []*observer
	scrollY   float64
	viewportH float64
}

// NewTracker creates a tracker with no regions.
func NewTracker() *Tracker {
	return &Tracker{regions: make(map[string]region)}
}

// SetRegion registers or moves a region in page coordinates.
func (t *Tracker) SetRegion(id string, top, height float64) {
	t.regions[id] = region{top: top, height: height}
}

// RemoveRegion forgets a region. Its observers stay registered.
func (t *Tracker) RemoveRegion(id string) {
	delete(t.regions, id)
}

// Region returns the bounds of a registered region.
func (t *Tracker) Region(id string) (top, height float64, ok bool) {
	r, ok := t.regions[id]
	return r.top, r.height, ok
}

// Observe implements Signal. The region does not need to exist yet.
func (t *Tracker) Observe(id string, opts Options, fn func(id string)) Subscription {
	o := &observer{t: t, id: id, opts: opts, fn: fn}
	t.observers = append(t.observers, o)
	return o
}

// Observed returns the number of live subscriptions.
func (t *Tracker) Observed() int {
	return len(t.observers)
}

// Ratio returns the visible fraction of a region for the current viewport.
func (t *Tracker) Ratio(id string, opts Options) float64 {
	r, ok := t.regions[id]
	if !ok {
		return 0
	}
	ratio, _ := t.intersect(r, opts)
	return ratio
}

func (t *Tracker) intersect(r region, opts Options) (ratio float64, hit bool) {
	top := t.scrollY - opts.MarginTop
	bottom := t.scrollY + t.viewportH + opts.MarginBottom
	lo := math.Max(top, r.top)
	hi := math.Min(bottom, r.top+r.height)
	if hi < lo || (hi == lo && r.height > 0) {
		return 0, false
	}
	if r.height <= 0 {
		return 1, true
	}
	return (hi - lo) / r.height, true
}

// Update moves the viewport and fires the callbacks of regions that entered.
func (t *Tracker) Update(scrollY, viewportH float64) {
	t.scrollY = scrollY
	t.viewportH = viewportH
	obs := append([]*observer(nil), t.observers...)
	for _, o := range obs {
		if o.gone {
			continue
		}
		r, ok := t.regions[o.id]
		if !ok {
			continue
		}
		ratio, hit := t.intersect(r, o.opts)
		in := hit && ratio > 0
		if o.opts.Threshold > 0 {
			in = hit && ratio >= o.opts.Threshold
		}
		if in && !o.inside {
			o.inside = true
			o.fn(o.id)
		} else if !in {
			o.inside = false
		}
	}
}
