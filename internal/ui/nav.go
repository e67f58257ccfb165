package ui

import (
	"math"

	"github.com/tomz197/portfolio/internal/visibility"
)

const (
	// HeaderOffset keeps a selected section clear of the fixed header.
	HeaderOffset = 80
	solidAfter   = 50
	hideAfter    = 200
	spyThreshold = 0.3
	spyMargin    = 100
)

// Navigation is the header: one link per section, the active link from a
// scroll spy and a collapsible menu for narrow terminals.
type Navigation struct {
	links   []string
	regions Regions
	subs    []visibility.Subscription

	active     string
	menuOpen   bool
	solid      bool
	hidden     bool
	lastScroll float64
}

// NewNavigation creates the header for sections. sig drives the scroll spy
// and regions resolves link targets; either may be nil.
func NewNavigation(sig visibility.Signal, regions Regions, sections []string) *Navigation {
	n := &Navigation{links: append([]string(nil), sections...), regions: regions}
	if sig == nil {
		return n
	}
	opts := visibility.Options{Threshold: spyThreshold, MarginTop: -spyMargin, MarginBottom: -spyMargin}
	for _, id := range n.links {
		n.subs = append(n.subs, sig.Observe(id, opts, func(id string) { n.active = id }))
	}
	return n
}

// Links returns the section ids in header order.
func (n *Navigation) Links() []string { return n.links }

// Active returns the section the scroll spy saw last, or "".
func (n *Navigation) Active() string { return n.active }

// MenuOpen reports whether the collapsible menu is open.
func (n *Navigation) MenuOpen() bool { return n.menuOpen }

// Solid reports whether the header background is opaque.
func (n *Navigation) Solid() bool { return n.solid }

// Hidden reports whether the header slid away.
func (n *Navigation) Hidden() bool { return n.hidden }

// ToggleMenu opens or closes the menu.
func (n *Navigation) ToggleMenu() {
	if len(n.links) == 0 {
		return
	}
	n.menuOpen = !n.menuOpen
}

// ClickOutside closes an open menu.
func (n *Navigation) ClickOutside() {
	n.menuOpen = false
}

// Select closes the menu and returns the scroll position that puts the
// section just below the header.
func (n *Navigation) Select(id string) (float64, bool) {
	n.menuOpen = false
	if n.regions == nil {
		return 0, false
	}
	top, _, ok := n.regions.Region(id)
	if !ok {
		return 0, false
	}
	return math.Max(0, top-HeaderOffset), true
}

// Scroll updates the header background and hides it while scrolling down
// past the top of the page.
func (n *Navigation) Scroll(y float64) {
	n.solid = y > solidAfter
	n.hidden = y > n.lastScroll && y > hideAfter
	n.lastScroll = y
}

// Close stops the scroll spy.
func (n *Navigation) Close() {
	for _, s := range n.subs {
		s.Unobserve()
	}
	n.subs = nil
}
