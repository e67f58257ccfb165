package ui

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/portfolio/internal/draw"
	"github.com/tomz197/portfolio/internal/draw/drawtest"
	"github.com/tomz197/portfolio/internal/entity"
	"github.com/tomz197/portfolio/internal/prefs"
	"github.com/tomz197/portfolio/internal/sched"
	"github.com/tomz197/portfolio/internal/theme"
)

var cards = []Card{
	{Title: "Nebula Engine", Category: Tech},
	{Title: "UFO Nights EP", Category: Music},
	{Title: "Orbit CLI", Category: Tech},
}

func TestFilterFades(t *testing.T) {
	s := sched.New(epoch)
	f := NewProjectFilter(s, cards)
	for _, c := range f.Cards(epoch) {
		assert.True(t, c.Displayed)
		assert.Equal(t, 1.0, c.Opacity)
	}

	f.Filter(Tech)
	assert.Equal(t, Tech, f.Active())
	views := f.Cards(epoch)
	assert.Zero(t, views[0].Opacity)
	assert.True(t, views[1].Displayed, "fades out first")
	assert.Equal(t, 1.0, views[1].Opacity)

	s.Advance(at(300))
	views = f.Cards(at(300))
	assert.False(t, views[1].Displayed)
	assert.Zero(t, views[1].Opacity)

	views = f.Cards(at(500))
	assert.Equal(t, 1.0, views[0].Opacity)
	assert.InDelta(t, entity.EaseOut(0.6), views[2].Opacity, 1e-9, "third card starts 200ms late")

	f.Filter(All)
	s.Advance(at(1000))
	for _, c := range f.Cards(at(2000)) {
		assert.True(t, c.Displayed)
		assert.Equal(t, 1.0, c.Opacity)
	}
}

func TestFilterRefilterKeepsCard(t *testing.T) {
	s := sched.New(epoch)
	f := NewProjectFilter(s, cards)
	f.Filter(Tech)
	s.Advance(at(100))
	f.Filter(Music)
	s.Advance(at(1000))
	views := f.Cards(at(1000))
	assert.True(t, views[1].Displayed, "pending hide was cancelled")
	assert.False(t, views[0].Displayed)
}

func TestFilterCycle(t *testing.T) {
	f := NewProjectFilter(sched.New(epoch), cards)
	var got []Category
	for i := 0; i < 5; i++ {
		got = append(got, f.Cycle())
	}
	assert.Equal(t, []Category{Tech, Music, Art, All, Tech}, got)

	empty := NewProjectFilter(sched.New(epoch), nil)
	empty.Filter(Art)
	assert.Equal(t, All, empty.Active())
}

func TestMusicPlayer(t *testing.T) {
	s := sched.New(epoch)
	m := NewMusicPlayer(s)
	assert.Equal(t, "Cosmic Journey - Track 01", m.Title())
	assert.Equal(t, PlayIcon, m.Icon())
	assert.Equal(t, -1, m.Selected())

	m.Prev()
	assert.Equal(t, "Stardust - Track 04", m.Title())
	m.Next()
	assert.Equal(t, 0, m.Current())

	m.Select(1)
	assert.True(t, m.Playing())
	assert.Equal(t, PauseIcon, m.Icon())
	assert.Equal(t, 1, m.Selected())
	assert.Equal(t, "UFO Nights - Track 02", m.Title())

	m.Select(2)
	assert.True(t, m.Playing(), "select keeps playing")
	m.Select(9)
	assert.Equal(t, 2, m.Current())
}

func TestVisualizerPausesWithPlayer(t *testing.T) {
	s := sched.New(epoch)
	m := NewMusicPlayer(s)
	still := m.Bars(4)
	s.Advance(at(300))
	assert.Equal(t, still, m.Bars(4), "paused bars do not move")

	m.TogglePlay()
	s.Advance(at(500))
	moving := m.Bars(4)
	assert.NotEqual(t, still, moving)
	m.TogglePlay()
	s.Advance(at(900))
	assert.Equal(t, moving, m.Bars(4))
	for _, h := range moving {
		assert.GreaterOrEqual(t, h, 0.2)
		assert.LessOrEqual(t, h, 1.0)
	}
}

func TestThemeToggle(t *testing.T) {
	s := sched.New(epoch)
	n := NewNotifier(s)
	quiet := log.New(io.Discard)
	m := theme.NewManager(context.Background(), prefs.NewMemory(), "alice", theme.Default, quiet)
	tt := NewThemeToggle(m, n, quiet)
	assert.Equal(t, "👽", tt.Icon())

	assert.Equal(t, theme.Cosmic, tt.Toggle())
	assert.Equal(t, "🌌", tt.Icon())
	require.Equal(t, 1, n.Len())
	assert.Equal(t, "Theme: Cosmic", n.Active()[0].Message)

	s.Advance(at(2300))
	assert.Zero(t, n.Len())

	assert.Equal(t, theme.Matrix, tt.Toggle())
	assert.Equal(t, theme.Alien, tt.Toggle())

	var none ThemeToggle
	assert.Equal(t, theme.Name(""), none.Toggle())
}

func TestBackToTopThrottled(t *testing.T) {
	s := sched.New(epoch)
	b := NewBackToTop(s)
	b.Scroll(600)
	assert.True(t, b.Visible())
	b.Scroll(100)
	assert.True(t, b.Visible(), "dropped while throttled")

	s.Advance(at(100))
	b.Scroll(100)
	assert.False(t, b.Visible())
	assert.Zero(t, b.Press())
}

func TestQuickActions(t *testing.T) {
	s := sched.New(epoch)
	vis := newPage()
	vis.SetRegion("music", 1800, 600)
	music := NewMusicPlayer(s)
	scrolled := -1.0
	aliens := 0
	q := NewQuickActions(QuickActionDeps{
		Sched:    s,
		Regions:  vis,
		Music:    music,
		ScrollTo: func(y float64) { scrolled = y },
		Alien:    func() { aliens++ },
	})

	q.Scroll(301)
	assert.True(t, q.Visible())

	q.Trigger(ActionMusic)
	assert.Equal(t, 1800.0, scrolled)
	assert.True(t, music.Playing())
	assert.True(t, q.Active(ActionMusic))
	s.Advance(at(299))
	assert.True(t, q.Active(ActionMusic))
	s.Advance(at(300))
	assert.False(t, q.Active(ActionMusic))

	q.Trigger(ActionMusic)
	assert.True(t, music.Playing(), "already playing stays on")

	q.Trigger(ActionProjects)
	assert.Equal(t, 1200.0, scrolled)
	q.Trigger(ActionHome)
	assert.Zero(t, scrolled)
	q.Trigger(ActionAlien)
	assert.Equal(t, 1, aliens)

	q.Trigger("bogus")
	assert.False(t, q.Active("bogus"))

	q.Close()
	assert.False(t, q.Active(ActionAlien))
}

func TestCursor(t *testing.T) {
	off := NewCursor(false)
	off.Move(10, 10, true)
	assert.False(t, off.Visible())

	c := NewCursor(true)
	rec := drawtest.New(800, 600)
	c.Draw(rec, draw.MustHex("#00ff88"))
	assert.Empty(t, rec.Calls, "hidden until the pointer moves")

	c.Move(100, 100, false)
	assert.Equal(t, 1.0, c.Scale())
	c.Draw(rec, draw.MustHex("#00ff88"))
	assert.Equal(t, 16, rec.Count(drawtest.StrokeLine))
	assert.Zero(t, rec.Count(drawtest.FillCircle))

	rec.Reset()
	c.Move(100, 100, true)
	assert.Equal(t, 2.0, c.Scale())
	c.Draw(rec, draw.MustHex("#00ff88"))
	assert.Equal(t, 1, rec.Count(drawtest.FillCircle))

	c.Hide()
	assert.False(t, c.Visible())
}

func TestLoadingOverlay(t *testing.T) {
	s := sched.New(epoch)
	o := NewLoadingOverlay(s)
	s.Advance(at(100))
	o.Loaded()
	o.Loaded()
	s.Advance(at(899))
	assert.False(t, o.Hidden())
	s.Advance(at(900))
	assert.True(t, o.Hidden())
	assert.Zero(t, s.Pending())

	s = sched.New(epoch)
	o = NewLoadingOverlay(s)
	s.Advance(at(2999))
	assert.False(t, o.Hidden())
	s.Advance(at(3000))
	assert.True(t, o.Hidden(), "hidden at the latest after 3s")
}

func TestSkillBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░", Bar(50, 10))
	assert.Equal(t, "████", Bar(150, 4))
	assert.Equal(t, "░░░", Bar(-5, 3))
	assert.Empty(t, Bar(80, 0))
}
