package ui

import (
	"github.com/charmbracelet/log"

	"github.com/tomz197/portfolio/internal/theme"
)

// ThemeToggle is the floating theme button.
type ThemeToggle struct {
	m        *theme.Manager
	notifier *Notifier
	logger   *log.Logger
}

// NewThemeToggle creates the button for m. n and logger may be nil.
func NewThemeToggle(m *theme.Manager, n *Notifier, logger *log.Logger) *ThemeToggle {
	if logger == nil {
		logger = log.Default()
	}
	return &ThemeToggle{m: m, notifier: n, logger: logger}
}

// Icon returns the button label for the current theme.
func (t *ThemeToggle) Icon() string {
	if t.m == nil {
		return theme.Icon("")
	}
	return theme.Icon(t.m.Current())
}

// Toggle switches to the next theme and announces it.
func (t *ThemeToggle) Toggle() theme.Name {
	if t.m == nil {
		return ""
	}
	next := t.m.Next()
	if err := t.m.Set(string(next)); err != nil {
		t.logger.Error("theme toggle", "theme", next, "err", err)
		return t.m.Current()
	}
	if t.notifier != nil {
		t.notifier.Notice("Theme: " + theme.Title(next))
	}
	return next
}
