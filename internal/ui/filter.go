package ui

import (
	"time"

	"github.com/tomz197/portfolio/internal/entity"
	"github.com/tomz197/portfolio/internal/sched"
)

// Category groups project cards.
type Category string

const (
	All   Category = "all"
	Tech  Category = "tech"
	Music Category = "music"
	Art   Category = "art"
)

// Categories are the filter buttons in order.
var Categories = []Category{All, Tech, Music, Art}

const (
	fadeInFor   = 500 * time.Millisecond
	fadeOutFor  = 300 * time.Millisecond
	fadeStagger = 100 * time.Millisecond
)

// Card is a project card.
type Card struct {
	Title       string
	Description string
	Category    Category
	Tags        []string
}

// CardView is a card as the page draws it.
type CardView struct {
	Card
	Displayed bool
	Opacity   float64
}

type cardState struct {
	card      Card
	displayed bool
	showing   bool
	changed   time.Time
	delay     time.Duration
	hide      sched.Handle
}

// ProjectFilter shows the cards of one category.
type ProjectFilter struct {
	s      *sched.Scheduler
	active Category
	cards  []*cardState
}

// NewProjectFilter creates the filter with every card shown.
func NewProjectFilter(s *sched.Scheduler, cards []Card) *ProjectFilter {
	f := &ProjectFilter{s: s, active: All}
	for _, c := range cards {
		f.cards = append(f.cards, &cardState{card: c, displayed: true, showing: true})
	}
	return f
}

// Active returns the selected category.
func (f *ProjectFilter) Active() Category { return f.active }

// Filter selects cat. Matching cards fade in one after another; the rest
// fade out and disappear after the fade.
func (f *ProjectFilter) Filter(cat Category) {
	if f.s == nil || len(f.cards) == 0 {
		return
	}
	f.active = cat
	now := f.s.Now()
	for i, c := range f.cards {
		c.hide.Cancel()
		c.changed = now
		if cat == All || c.card.Category == cat {
			c.displayed = true
			c.showing = true
			c.delay = time.Duration(i) * fadeStagger
			continue
		}
		c.showing = false
		c.delay = 0
		c.hide = f.s.After(fadeOutFor, func() { c.displayed = false })
	}
}

// Cycle selects the category after the active one.
func (f *ProjectFilter) Cycle() Category {
	next := All
	for i, c := range Categories {
		if c == f.active {
			next = Categories[(i+1)%len(Categories)]
			break
		}
	}
	f.Filter(next)
	return f.active
}

// Cards returns the cards with their current opacity.
func (f *ProjectFilter) Cards(now time.Time) []CardView {
	out := make([]CardView, 0, len(f.cards))
	for _, c := range f.cards {
		out = append(out, CardView{Card: c.card, Displayed: c.displayed, Opacity: c.opacity(now)})
	}
	return out
}

func (c *cardState) opacity(now time.Time) float64 {
	if !c.displayed {
		return 0
	}
	if c.changed.IsZero() {
		return 1
	}
	d := now.Sub(c.changed) - c.delay
	if c.showing {
		return entity.EaseOut(clamp01(float64(d) / float64(fadeInFor)))
	}
	return 1 - clamp01(float64(d)/float64(fadeOutFor))
}

// Close cancels pending hides.
func (f *ProjectFilter) Close() {
	for _, c := range f.cards {
		c.hide.Cancel()
	}
}
