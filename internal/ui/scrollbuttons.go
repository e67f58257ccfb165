package ui

import (
	"time"

	"github.com/tomz197/portfolio/internal/sched"
)

const (
	backToTopAfter   = 500
	quickActionAfter = 300
	scrollThrottle   = 100 * time.Millisecond
	actionActiveFor  = 300 * time.Millisecond
)

// BackToTop is the button that returns to the top of the page.
type BackToTop struct {
	y       float64
	visible bool
	check   func()
}

// NewBackToTop creates the button. Scroll checks are throttled on s.
func NewBackToTop(s *sched.Scheduler) *BackToTop {
	b := &BackToTop{}
	b.check = func() { b.visible = b.y > backToTopAfter }
	if s != nil {
		b.check = sched.Throttle(s, scrollThrottle, b.check)
	}
	return b
}

// Scroll reports the scroll position.
func (b *BackToTop) Scroll(y float64) {
	b.y = y
	b.check()
}

// Visible reports whether the button shows.
func (b *BackToTop) Visible() bool { return b.visible }

// Press returns the scroll target.
func (b *BackToTop) Press() float64 { return 0 }

// Action is a quick action button.
type Action string

const (
	ActionHome     Action = "home"
	ActionProjects Action = "projects"
	ActionMusic    Action = "music"
	ActionContact  Action = "contact"
	ActionAlien    Action = "alien"
)

// Actions are the quick action buttons in order.
var Actions = []Action{ActionHome, ActionProjects, ActionMusic, ActionContact, ActionAlien}

// QuickActionDeps wire the quick actions to the page. Any may be nil.
type QuickActionDeps struct {
	Sched    *sched.Scheduler
	Regions  Regions
	Music    *MusicPlayer
	ScrollTo func(y float64)
	// Alien clicks the character and brings it into view.
	Alien func()
}

// QuickActions is the floating action bar.
type QuickActions struct {
	deps    QuickActionDeps
	y       float64
	visible bool
	check   func()
	active  map[Action]sched.Handle
}

// NewQuickActions creates the bar.
func NewQuickActions(deps QuickActionDeps) *QuickActions {
	q := &QuickActions{deps: deps, active: make(map[Action]sched.Handle)}
	q.check = func() { q.visible = q.y > quickActionAfter }
	if deps.Sched != nil {
		q.check = sched.Throttle(deps.Sched, scrollThrottle, q.check)
	}
	return q
}

// Scroll reports the scroll position.
func (q *QuickActions) Scroll(y float64) {
	q.y = y
	q.check()
}

// Visible reports whether the bar shows.
func (q *QuickActions) Visible() bool { return q.visible }

// Active reports whether a's button is lit after a press.
func (q *QuickActions) Active(a Action) bool { return q.active[a].Active() }

// Trigger runs action a. The music action also starts the player.
func (q *QuickActions) Trigger(a Action) {
	switch a {
	case ActionHome:
		q.scrollTo(0)
	case ActionProjects, ActionContact:
		q.scrollToSection(string(a))
	case ActionMusic:
		q.scrollToSection(string(a))
		if m := q.deps.Music; m != nil && !m.Playing() {
			m.TogglePlay()
		}
	case ActionAlien:
		if q.deps.Alien != nil {
			q.deps.Alien()
		}
	default:
		return
	}
	if s := q.deps.Sched; s != nil {
		q.active[a].Cancel()
		q.active[a] = s.After(actionActiveFor, func() { delete(q.active, a) })
	}
}

func (q *QuickActions) scrollTo(y float64) {
	if q.deps.ScrollTo != nil {
		q.deps.ScrollTo(y)
	}
}

func (q *QuickActions) scrollToSection(id string) {
	if q.deps.Regions == nil {
		return
	}
	if top, _, ok := q.deps.Regions.Region(id); ok {
		q.scrollTo(top)
	}
}

// Close cancels button highlights.
func (q *QuickActions) Close() {
	for a, h := range q.active {
		h.Cancel()
		delete(q.active, a)
	}
}
