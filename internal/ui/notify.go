package ui

import (
	"time"

	"github.com/tomz197/portfolio/internal/sched"
)

// Kind colours a notification.
type Kind int

const (
	Success Kind = iota
	Error
	Info
)

func (k Kind) String() string {
	switch k {
	case Error:
		return "error"
	case Info:
		return "info"
	default:
		return "success"
	}
}

// Placement is where a notification is drawn.
type Placement int

const (
	// Toast sits in the bottom right corner.
	Toast Placement = iota
	// Banner is centred below the header.
	Banner
)

const (
	toastFor   = 3000 * time.Millisecond
	toastLeave = 500 * time.Millisecond
	bannerFor  = 3000 * time.Millisecond
	// bannerLeave is the slide up of the newsletter banner.
	bannerLeave = 400 * time.Millisecond
	noticeFor   = 2000 * time.Millisecond
	noticeLeave = 300 * time.Millisecond
)

// Notification is one transient message.
type Notification struct {
	ID        uint64
	Message   string
	Kind      Kind
	Placement Placement
	Shown     time.Time
	// Leaving is set once the message started sliding out.
	Leaving bool
	// LeaveFor is the length of the slide out.
	LeaveFor time.Duration
	LeftAt   time.Time
}

// Progress returns how far the slide out has gone, 0 while shown.
func (n Notification) Progress(now time.Time) float64 {
	if !n.Leaving || n.LeaveFor <= 0 {
		return 0
	}
	return clamp01(float64(now.Sub(n.LeftAt)) / float64(n.LeaveFor))
}

type entry struct {
	n      Notification
	timers [2]sched.Handle
}

// Notifier keeps the visible notifications. Messages stack in the order
// they were shown and remove themselves.
type Notifier struct {
	s     *sched.Scheduler
	items []*entry
	next  uint64
}

// NewNotifier creates a notifier on s.
func NewNotifier(s *sched.Scheduler) *Notifier {
	return &Notifier{s: s}
}

// Show adds a toast that stays for 3 s and slides out for 0.5 s.
func (n *Notifier) Show(msg string, kind Kind) uint64 {
	return n.add(msg, kind, Toast, toastFor, toastLeave)
}

// Banner adds a banner that stays for 3 s and slides up for 0.4 s.
func (n *Notifier) Banner(msg string, kind Kind) uint64 {
	return n.add(msg, kind, Banner, bannerFor, bannerLeave)
}

// Notice adds a short info toast: 2 s plus a 0.3 s slide out.
func (n *Notifier) Notice(msg string) uint64 {
	return n.add(msg, Info, Toast, noticeFor, noticeLeave)
}

func (n *Notifier) add(msg string, kind Kind, place Placement, stay, leave time.Duration) uint64 {
	if n.s == nil {
		return 0
	}
	n.next++
	e := &entry{n: Notification{
		ID:        n.next,
		Message:   msg,
		Kind:      kind,
		Placement: place,
		Shown:     n.s.Now(),
		LeaveFor:  leave,
	}}
	e.timers[0] = n.s.After(stay, func() {
		e.n.Leaving = true
		e.n.LeftAt = n.s.Now()
		e.timers[1] = n.s.After(leave, func() { n.remove(e.n.ID) })
	})
	n.items = append(n.items, e)
	return e.n.ID
}

func (n *Notifier) remove(id uint64) {
	for i, e := range n.items {
		if e.n.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return
		}
	}
}

// Active returns the notifications still on screen, oldest first.
func (n *Notifier) Active() []Notification {
	out := make([]Notification, 0, len(n.items))
	for _, e := range n.items {
		out = append(out, e.n)
	}
	return out
}

// Len returns the number of notifications on screen.
func (n *Notifier) Len() int { return len(n.items) }

// Close drops every notification and its timers.
func (n *Notifier) Close() {
	for _, e := range n.items {
		e.timers[0].Cancel()
		e.timers[1].Cancel()
	}
	n.items = nil
}
