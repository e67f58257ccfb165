package theme

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/tomz197/portfolio/internal/prefs"
)

// Manager owns the active theme of one visitor. It is not safe for
// concurrent use.
type Manager struct {
	ctx       context.Context
	store     prefs.Store
	owner     string
	logger    *log.Logger
	current   Name
	observers []func(Name, Palette)
}

// NewManager restores the visitor's saved theme from store. A missing,
// unreadable or unknown saved value leaves fallback active, or Default if
// fallback is not a theme. store may be nil.
func NewManager(ctx context.Context, store prefs.Store, owner string, fallback Name, logger *log.Logger) *Manager {
	if _, ok := palettes[fallback]; !ok {
		fallback = Default
	}
	m := &Manager{
		ctx:     ctx,
		store:   store,
		owner:   owner,
		logger:  logger,
		current: fallback,
	}
	if store == nil {
		return m
	}
	saved, ok, err := store.Get(ctx, owner, PrefKey)
	switch {
	case err != nil:
		logger.Debug("load theme", "owner", owner, "err", err)
	case ok:
		if n, err := Parse(saved); err == nil {
			m.current = n
		} else {
			logger.Debug("ignoring saved theme", "owner", owner, "value", saved)
		}
	}
	return m
}

// Current returns the active theme.
func (m *Manager) Current() Name {
	return m.current
}

// Palette returns the active palette.
func (m *Manager) Palette() Palette {
	return palettes[m.current]
}

// Next returns the theme after the active one in toggle order.
func (m *Manager) Next() Name {
	for i, n := range order {
		if n == m.current {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

// OnChange registers fn to run after every successful Set.
func (m *Manager) OnChange(fn func(Name, Palette)) {
	m.observers = append(m.observers, fn)
}

// Set activates a theme and persists it. An unknown name returns
// ErrUnknownTheme and changes nothing. A persistence failure is logged and
// the theme stays active.
func (m *Manager) Set(name string) error {
	n, err := Parse(name)
	if err != nil {
		return err
	}
	m.current = n
	if m.store != nil {
		if err := m.store.Put(m.ctx, m.owner, PrefKey, string(n)); err != nil {
			m.logger.Warn("save theme", "owner", m.owner, "err", err)
		}
	}
	p := palettes[n]
	for _, fn := range m.observers {
		fn(n, p)
	}
	return nil
}
