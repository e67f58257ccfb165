package ui

import (
	"time"

	"github.com/tomz197/portfolio/internal/burst"
	"github.com/tomz197/portfolio/internal/sched"
)

// FormField names a contact form input.
type FormField int

const (
	FieldName FormField = iota
	FieldEmail
	FieldMessage
	fieldCount
)

func (f FormField) String() string {
	switch f {
	case FieldEmail:
		return "email"
	case FieldMessage:
		return "message"
	default:
		return "name"
	}
}

// SubmitState is the contact button state.
type SubmitState int

const (
	Ready SubmitState = iota
	Transmitting
	Sent
)

const (
	SendLabel         = "Send Transmission 🚀"
	TransmittingLabel = "Transmitting... 📡"
	SentLabel         = "Transmission Sent! ✅"
	SentMessage       = "Message sent successfully! 🚀"

	transmitFor = 2000 * time.Millisecond
	resetAfter  = 3000 * time.Millisecond
)

// ContactForm is the contact section form. Submitting only pretends to
// send the message.
type ContactForm struct {
	s        *sched.Scheduler
	burst    *burst.Driver
	notifier *Notifier

	fields  [fieldCount]Field
	focused [fieldCount]bool
	focus   FormField
	editing bool
	state   SubmitState

	// ButtonX and ButtonY locate the submit button for the success burst.
	ButtonX, ButtonY float64

	timers [2]sched.Handle
}

// NewContactForm creates the form. b and n may be nil.
func NewContactForm(s *sched.Scheduler, b *burst.Driver, n *Notifier) *ContactForm {
	return &ContactForm{s: s, burst: b, notifier: n}
}

// Field returns input f.
func (c *ContactForm) Field(f FormField) *Field { return &c.fields[f] }

// Focus moves the cursor into f and marks its group focused.
func (c *ContactForm) Focus(f FormField) {
	if f < 0 || f >= fieldCount {
		return
	}
	c.focus = f
	c.editing = true
	c.focused[f] = true
}

// FocusNext moves to the following input, wrapping around.
func (c *ContactForm) FocusNext() FormField {
	next := FieldName
	if c.editing {
		next = (c.focus + 1) % fieldCount
		c.Blur()
	}
	c.Focus(next)
	return next
}

// Blur leaves the focused input. An empty input loses its focused look.
func (c *ContactForm) Blur() {
	if !c.editing {
		return
	}
	if c.fields[c.focus].Empty() {
		c.focused[c.focus] = false
	}
	c.editing = false
}

// Editing returns the focused input, if any.
func (c *ContactForm) Editing() (FormField, bool) { return c.focus, c.editing }

// Focused reports whether f has the focused look.
func (c *ContactForm) Focused(f FormField) bool { return c.focused[f] }

// Type inserts r into the focused input.
func (c *ContactForm) Type(r rune) {
	if c.editing {
		c.fields[c.focus].Insert(r)
	}
}

// Backspace deletes from the focused input.
func (c *ContactForm) Backspace() {
	if c.editing {
		c.fields[c.focus].Backspace()
	}
}

// State returns the submit button state.
func (c *ContactForm) State() SubmitState { return c.state }

// Disabled reports whether the submit button ignores presses.
func (c *ContactForm) Disabled() bool { return c.state != Ready }

// Label returns the submit button text.
func (c *ContactForm) Label() string {
	switch c.state {
	case Transmitting:
		return TransmittingLabel
	case Sent:
		return SentLabel
	default:
		return SendLabel
	}
}

// Submit sends the form: the button shows progress for 2 s, then success
// with a particle burst and a notification, and the form resets 3 s later.
func (c *ContactForm) Submit() {
	if c.s == nil || c.state != Ready {
		return
	}
	c.Blur()
	c.state = Transmitting
	c.timers[0] = c.s.After(transmitFor, func() {
		c.state = Sent
		if c.burst != nil {
			c.burst.Success(c.ButtonX, c.ButtonY)
		}
		if c.notifier != nil {
			c.notifier.Show(SentMessage, Success)
		}
		c.timers[1] = c.s.After(resetAfter, c.reset)
	})
}

func (c *ContactForm) reset() {
	for i := range c.fields {
		c.fields[i].Clear()
		c.focused[i] = false
	}
	c.editing = false
	c.state = Ready
}

// Close cancels a submission in flight.
func (c *ContactForm) Close() {
	c.timers[0].Cancel()
	c.timers[1].Cancel()
}
