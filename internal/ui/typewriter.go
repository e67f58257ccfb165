package ui

import (
	"time"

	"github.com/tomz197/portfolio/internal/sched"
)

// Phrases are the hero subtitles.
var Phrases = []string{
	"Tech Entrepreneur 🚀",
	"Music Producer 🎵",
	"Digital Artist 🎨",
	"Creative Innovator ✨",
	"Code & Sound Designer 💻",
	"Building the Future 🌌",
}

const (
	typeEvery   = 100 * time.Millisecond
	deleteEvery = 50 * time.Millisecond
	pauseFull   = 2000 * time.Millisecond
	pauseEmpty  = 500 * time.Millisecond
)

// Typewriter types and deletes phrases one rune at a time, forever.
type Typewriter struct {
	s        *sched.Scheduler
	phrases  [][]rune
	phrase   int
	char     int
	deleting bool
	next     sched.Handle
}

// NewTypewriter starts typing the first phrase right away. Empty phrases
// are skipped; with none left the typewriter stays blank.
func NewTypewriter(s *sched.Scheduler, phrases []string) *Typewriter {
	t := &Typewriter{s: s}
	for _, p := range phrases {
		if p != "" {
			t.phrases = append(t.phrases, []rune(p))
		}
	}
	if s != nil && len(t.phrases) > 0 {
		t.step()
	}
	return t
}

func (t *Typewriter) step() {
	phrase := t.phrases[t.phrase]
	if t.deleting {
		t.char--
	} else {
		t.char++
	}

	wait := typeEvery
	switch {
	case !t.deleting && t.char == len(phrase):
		wait = pauseFull
		t.deleting = true
	case t.deleting && t.char == 0:
		t.deleting = false
		t.phrase = (t.phrase + 1) % len(t.phrases)
		wait = pauseEmpty
	case t.deleting:
		wait = deleteEvery
	}
	t.next = t.s.After(wait, t.step)
}

// Text returns what is typed so far.
func (t *Typewriter) Text() string {
	if len(t.phrases) == 0 {
		return ""
	}
	// After the last rune of a phrase is deleted the index already points
	// at the next phrase with nothing typed.
	return string(t.phrases[t.phrase][:t.char])
}

// Close stops typing.
func (t *Typewriter) Close() { t.next.Cancel() }
