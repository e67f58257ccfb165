package ui

import (
	"fmt"
	"math"
	"time"

	"github.com/tomz197/portfolio/internal/sched"
)

// Tracks is the player's playlist.
var Tracks = []string{"Cosmic Journey", "UFO Nights", "Lunar Dreams", "Stardust"}

const (
	PlayIcon  = "▶️"
	PauseIcon = "⏸️"
	barPeriod = 800 * time.Millisecond
)

// MusicPlayer is the demo player. There is no audio; playing only runs the
// visualizer.
type MusicPlayer struct {
	s        *sched.Scheduler
	playing  bool
	current  int
	selected int
	since    time.Time
	played   time.Duration
}

// NewMusicPlayer creates a paused player on the first track.
func NewMusicPlayer(s *sched.Scheduler) *MusicPlayer {
	return &MusicPlayer{s: s, selected: -1}
}

// Playing reports whether the visualizer runs.
func (m *MusicPlayer) Playing() bool { return m.playing }

// Icon returns the play button label.
func (m *MusicPlayer) Icon() string {
	if m.playing {
		return PauseIcon
	}
	return PlayIcon
}

// Current returns the index of the current track.
func (m *MusicPlayer) Current() int { return m.current }

// Selected returns the highlighted card, -1 before any selection.
func (m *MusicPlayer) Selected() int { return m.selected }

// Title returns the track line, e.g. "UFO Nights - Track 02".
func (m *MusicPlayer) Title() string {
	return fmt.Sprintf("%s - Track 0%d", Tracks[m.current], m.current+1)
}

// TogglePlay starts or pauses the visualizer.
func (m *MusicPlayer) TogglePlay() {
	if m.s == nil {
		return
	}
	now := m.s.Now()
	if m.playing {
		m.played += now.Sub(m.since)
	} else {
		m.since = now
	}
	m.playing = !m.playing
}

// Next moves to the following track, wrapping around.
func (m *MusicPlayer) Next() {
	m.current = (m.current + 1) % len(Tracks)
}

// Prev moves to the previous track, wrapping around.
func (m *MusicPlayer) Prev() {
	m.current = (m.current - 1 + len(Tracks)) % len(Tracks)
}

// Select makes track i current, highlights its card and starts playing.
func (m *MusicPlayer) Select(i int) {
	if i < 0 || i >= len(Tracks) {
		return
	}
	m.current = i
	m.selected = i
	if !m.playing {
		m.TogglePlay()
	}
}

// Bars returns n visualizer bar heights in [0.2, 1]. Paused bars keep
// their last height.
func (m *MusicPlayer) Bars(n int) []float64 {
	t := m.played
	if m.playing && m.s != nil {
		t += m.s.Now().Sub(m.since)
	}
	phase := float64(t) / float64(barPeriod) * 2 * math.Pi
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.2 + 0.8*math.Abs(math.Sin(phase+float64(i)*0.7))
	}
	return out
}
