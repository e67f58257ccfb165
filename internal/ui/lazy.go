package ui

import "github.com/tomz197/portfolio/internal/visibility"

const lazyMargin = 50

// LazyLoader marks image placeholders loaded once they come near the
// viewport.
type LazyLoader struct {
	loaded map[string]bool
	subs   map[string]visibility.Subscription
}

// NewLazyLoader observes ids on sig.
func NewLazyLoader(sig visibility.Signal, ids []string) *LazyLoader {
	l := &LazyLoader{loaded: make(map[string]bool), subs: make(map[string]visibility.Subscription)}
	if sig == nil {
		return l
	}
	opts := visibility.Options{MarginTop: lazyMargin, MarginBottom: lazyMargin}
	for _, id := range ids {
		l.subs[id] = sig.Observe(id, opts, l.load)
	}
	return l
}

func (l *LazyLoader) load(id string) {
	l.loaded[id] = true
	if sub, ok := l.subs[id]; ok {
		sub.Unobserve()
		delete(l.subs, id)
	}
}

// Loaded reports whether the image was loaded.
func (l *LazyLoader) Loaded(id string) bool { return l.loaded[id] }

// Pending returns how many images still wait.
func (l *LazyLoader) Pending() int { return len(l.subs) }

// Close stops observing.
func (l *LazyLoader) Close() {
	for id, sub := range l.subs {
		sub.Unobserve()
		delete(l.subs, id)
	}
}
