package ui

import (
	"regexp"
	"strings"

	"github.com/tomz197/portfolio/internal/burst"
)

const (
	InvalidEmailMessage = "Please enter a valid email address"
	SubscribedMessage   = "🚀 Thanks! You'll be notified when CosmicBeats launches!"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Newsletter is the app launch sign-up box.
type Newsletter struct {
	burst    *burst.Driver
	notifier *Notifier
	viewport func() (w, h float64)

	input   Field
	focused bool
}

// NewNewsletter creates the sign-up box. viewport sizes the confetti; b, n
// and viewport may be nil.
func NewNewsletter(b *burst.Driver, n *Notifier, viewport func() (w, h float64)) *Newsletter {
	return &Newsletter{burst: b, notifier: n, viewport: viewport}
}

// Input returns the email input.
func (nl *Newsletter) Input() *Field { return &nl.input }

// Focused reports whether the input has the cursor.
func (nl *Newsletter) Focused() bool { return nl.focused }

// Focus puts the cursor into the input.
func (nl *Newsletter) Focus() { nl.focused = true }

// Blur takes the cursor out of the input.
func (nl *Newsletter) Blur() { nl.focused = false }

// Type inserts r when focused.
func (nl *Newsletter) Type(r rune) {
	if nl.focused {
		nl.input.Insert(r)
	}
}

// Backspace deletes when focused.
func (nl *Newsletter) Backspace() {
	if nl.focused {
		nl.input.Backspace()
	}
}

// Submit validates the trimmed address. An invalid address shows an error
// and keeps the cursor in the input; a valid one is thanked, cleared and
// celebrated with confetti. It reports whether the address was accepted.
func (nl *Newsletter) Submit() bool {
	email := strings.TrimSpace(nl.input.Value())
	if !ValidEmail(email) {
		nl.notify(InvalidEmailMessage, Error)
		nl.focused = true
		return false
	}
	nl.notify(SubscribedMessage, Success)
	nl.input.Clear()
	if nl.burst != nil {
		var w, h float64
		if nl.viewport != nil {
			w, h = nl.viewport()
		}
		nl.burst.Confetti(w, h)
	}
	return true
}

func (nl *Newsletter) notify(msg string, kind Kind) {
	if nl.notifier != nil {
		nl.notifier.Banner(msg, kind)
	}
}
