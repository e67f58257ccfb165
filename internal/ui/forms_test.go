package ui

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/portfolio/internal/burst"
	"github.com/tomz197/portfolio/internal/sched"
)

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{"user@example.com", "a@b.co", "x.y+z@mail.example.org"} {
		assert.True(t, ValidEmail(ok), ok)
	}
	for _, bad := range []string{"", "not-an-email", "a@b", "@example.com", "a b@example.com", "a@@b.com"} {
		assert.False(t, ValidEmail(bad), bad)
	}
}

type newsletterFixture struct {
	s  *sched.Scheduler
	b  *burst.Driver
	n  *Notifier
	nl *Newsletter
}

func newNewsletterFixture() *newsletterFixture {
	s := sched.New(epoch)
	f := &newsletterFixture{s: s, b: burst.New(s, rand.New(rand.NewSource(1))), n: NewNotifier(s)}
	f.nl = NewNewsletter(f.b, f.n, func() (float64, float64) { return 800, 600 })
	return f
}

func TestNewsletterRejectsInvalid(t *testing.T) {
	f := newNewsletterFixture()
	f.nl.Input().SetValue("not-an-email")

	assert.False(t, f.nl.Submit())
	require.Equal(t, 1, f.n.Len())
	got := f.n.Active()[0]
	assert.Equal(t, InvalidEmailMessage, got.Message)
	assert.Equal(t, Error, got.Kind)
	assert.Equal(t, Banner, got.Placement)
	assert.True(t, f.nl.Focused())
	assert.Equal(t, "not-an-email", f.nl.Input().Value())
	assert.Zero(t, f.b.ConfettiPool().Len())
}

func TestNewsletterAcceptsTrimmed(t *testing.T) {
	f := newNewsletterFixture()
	f.nl.Focus()
	for _, r := range "  user@example.com " {
		f.nl.Type(r)
	}

	assert.True(t, f.nl.Submit())
	require.Equal(t, 1, f.n.Len())
	assert.Equal(t, SubscribedMessage, f.n.Active()[0].Message)
	assert.Equal(t, Success, f.n.Active()[0].Kind)
	assert.Empty(t, f.nl.Input().Value())
	assert.Equal(t, burst.ConfettiCount, f.b.ConfettiPool().Len())
	assert.Equal(t, 50, f.b.ConfettiPool().Len())

	// Banner gone after 3.4 s, confetti after 4 s.
	f.s.Advance(at(3400))
	assert.Zero(t, f.n.Len())
	f.s.Advance(at(4000))
	assert.Zero(t, f.b.ConfettiPool().Len())
}

func TestNewsletterTypingNeedsFocus(t *testing.T) {
	f := newNewsletterFixture()
	f.nl.Type('x')
	assert.Empty(t, f.nl.Input().Value())
	f.nl.Focus()
	f.nl.Type('x')
	f.nl.Type('y')
	f.nl.Backspace()
	assert.Equal(t, "x", f.nl.Input().Value())
}

func TestContactFocus(t *testing.T) {
	c := NewContactForm(sched.New(epoch), nil, nil)
	c.Focus(FieldName)
	c.Type('A')
	assert.Equal(t, FieldEmail, c.FocusNext())
	assert.True(t, c.Focused(FieldName), "filled inputs keep the focused look")
	assert.True(t, c.Focused(FieldEmail))

	c.Blur()
	assert.False(t, c.Focused(FieldEmail))
	_, editing := c.Editing()
	assert.False(t, editing)

	c.Focus(FieldMessage)
	assert.Equal(t, FieldName, c.FocusNext())
	assert.Equal(t, "A", c.Field(FieldName).Value())
}

func TestContactSubmit(t *testing.T) {
	s := sched.New(epoch)
	b := burst.New(s, rand.New(rand.NewSource(1)))
	n := NewNotifier(s)
	c := NewContactForm(s, b, n)
	c.ButtonX, c.ButtonY = 400, 500
	c.Focus(FieldName)
	for _, r := range "Ada" {
		c.Type(r)
	}

	c.Submit()
	assert.Equal(t, Transmitting, c.State())
	assert.Equal(t, TransmittingLabel, c.Label())
	assert.True(t, c.Disabled())
	c.Submit()

	s.Advance(at(1999))
	assert.Equal(t, Transmitting, c.State())
	s.Advance(at(2000))
	assert.Equal(t, Sent, c.State())
	assert.Equal(t, SentLabel, c.Label())
	assert.Equal(t, burst.SuccessCount, b.Particles().Len())
	require.Equal(t, 1, n.Len())
	assert.Equal(t, SentMessage, n.Active()[0].Message)

	s.Advance(at(4999))
	assert.Equal(t, "Ada", c.Field(FieldName).Value())
	s.Advance(at(5000))
	assert.Equal(t, Ready, c.State())
	assert.Equal(t, SendLabel, c.Label())
	assert.Empty(t, c.Field(FieldName).Value())
	assert.False(t, c.Focused(FieldName))
}

func TestContactClose(t *testing.T) {
	s := sched.New(epoch)
	c := NewContactForm(s, nil, nil)
	c.Submit()
	c.Close()
	s.Advance(at(10000))
	assert.Equal(t, Transmitting, c.State())
}
