package app

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/portfolio/internal/character"
	"github.com/tomz197/portfolio/internal/config"
	"github.com/tomz197/portfolio/internal/input"
	"github.com/tomz197/portfolio/internal/prefs"
	"github.com/tomz197/portfolio/internal/theme"
	"github.com/tomz197/portfolio/internal/ui"
)

const (
	testCols = 100
	testRows = 40
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func testConfig() *config.Config {
	return &config.Config{
		FPS:               60,
		Stars:             20,
		Nebulas:           1,
		FloatingParticles: 3,
		Mouse:             true,
		Theme:             string(theme.Alien),
	}
}

func newApp(t *testing.T, store prefs.Store, idle time.Duration) *App {
	t.Helper()
	a := New(context.Background(), testCols, testRows, Options{
		Config:      testConfig(),
		Logger:      log.New(io.Discard),
		Store:       store,
		Owner:       "tester",
		Profile:     termenv.TrueColor,
		IdleTimeout: idle,
		Seed:        1,
		Clock:       func() time.Time { return epoch },
		TermSize:    func() (int, int, error) { return testCols, testRows, nil },
	})
	t.Cleanup(a.Close)
	return a
}

func key(k input.Key) input.Event { return input.Event{Key: k} }

func runes(s string) []input.Event {
	var evs []input.Event
	for _, r := range s {
		evs = append(evs, input.Event{Key: input.KeyRune, Rune: r})
	}
	return evs
}

func TestLayoutRegions(t *testing.T) {
	a := newApp(t, nil, 0)

	top, height, ok := a.tracker.Region("hero")
	require.True(t, ok)
	assert.Equal(t, 0.0, top)
	assert.Equal(t, float64(testRows*CellH), height, "hero fills the first screen")

	top, _, ok = a.tracker.Region("about")
	require.True(t, ok)
	assert.Equal(t, float64(testRows*CellH), top)

	for _, s := range Sections {
		_, _, ok := a.tracker.Region(s.ID)
		assert.True(t, ok, s.ID)
	}
	_, _, ok = a.tracker.Region("stat-projects")
	assert.True(t, ok)
}

func TestScrollIsClamped(t *testing.T) {
	a := newApp(t, nil, 0)

	a.scrollBy(-5)
	assert.Equal(t, 0, a.scrollRow)

	a.setScrollRow(1 << 20)
	assert.Equal(t, pageHeight(a.blocks)-testRows, a.scrollRow)
}

func TestNumberKeysJumpToSections(t *testing.T) {
	a := newApp(t, nil, 0)

	a.Step(at(0), runes("4"))
	projects := a.blocks[3]
	require.Equal(t, "projects", projects.id)
	assert.Equal(t, projects.top-ui.HeaderOffset/CellH, a.scrollRow)

	a.Step(at(10), []input.Event{key(input.KeyHome)})
	assert.Equal(t, 0, a.scrollRow)

	a.Step(at(20), runes("G"))
	assert.Equal(t, a.maxScroll(), a.scrollRow)
}

func TestScrollDrivesControllers(t *testing.T) {
	a := newApp(t, nil, 0)
	a.Step(at(0), nil)
	assert.False(t, a.backToTop.Visible())

	a.Step(at(10), runes("G"))
	assert.True(t, a.backToTop.Visible())
	assert.True(t, a.quick.Visible())
	assert.True(t, a.nav.Solid())
	assert.True(t, a.nav.Hidden())

	a.Step(at(20), runes("k"))
	assert.Equal(t, -10.0, a.character.Tilt(), "head tilts up on the second sample")
	assert.False(t, a.nav.Hidden())
}

func TestCharacterMovesWithPage(t *testing.T) {
	a := newApp(t, nil, 0)
	before := a.character.Bounds()

	a.scrollBy(2)
	after := a.character.Bounds()
	assert.InDelta(t, before.Y-2*CellH, after.Y, 1e-9)
	assert.Equal(t, before.X, after.X)
}

func TestTextEntryCapturesKeys(t *testing.T) {
	a := newApp(t, nil, 0)

	a.Step(at(0), []input.Event{key(input.KeyTab)})
	require.Equal(t, focusNewsletter, a.focus)
	assert.True(t, a.newsletter.Focused())

	a.Step(at(10), runes("q"))
	assert.True(t, a.Running(), "q types while editing")
	assert.Equal(t, "q", a.newsletter.Input().Value())

	a.Step(at(20), []input.Event{key(input.KeyBackspace), key(input.KeyEscape)})
	assert.Empty(t, a.newsletter.Input().Value())
	assert.Equal(t, focusNone, a.focus)

	a.Step(at(30), runes("q"))
	assert.False(t, a.Running())
}

func TestTabCyclesFormFields(t *testing.T) {
	a := newApp(t, nil, 0)

	a.Step(at(0), []input.Event{key(input.KeyTab), key(input.KeyTab)})
	f, editing := a.contact.Editing()
	assert.True(t, editing)
	assert.Equal(t, ui.FieldName, f)
	assert.False(t, a.newsletter.Focused())

	a.Step(at(10), []input.Event{key(input.KeyBackTab)})
	assert.Equal(t, focusNewsletter, a.focus)

	a.Step(at(20), []input.Event{key(input.KeyBackTab)})
	assert.Equal(t, focusContact+focus(ui.FieldMessage), a.focus)
}

func TestNewsletterSubmit(t *testing.T) {
	a := newApp(t, nil, 0)
	a.Step(at(0), []input.Event{key(input.KeyTab)})

	a.Step(at(10), append(runes("nope"), key(input.KeyEnter)))
	require.Equal(t, 1, a.notifier.Len())
	assert.Equal(t, ui.Error, a.notifier.Active()[0].Kind)
	assert.Equal(t, focusNewsletter, a.focus, "invalid input keeps focus")

	for range 4 {
		a.Step(at(20), []input.Event{key(input.KeyBackspace)})
	}
	a.Step(at(30), append(runes("user@example.com"), key(input.KeyEnter)))
	assert.Equal(t, 2, a.notifier.Len())
	assert.Empty(t, a.newsletter.Input().Value())
	assert.Equal(t, focusNone, a.focus)
	assert.Equal(t, 50, a.bursts.ConfettiPool().Len())
}

func TestContactSubmitByEnter(t *testing.T) {
	a := newApp(t, nil, 0)
	a.Step(at(0), []input.Event{key(input.KeyTab), key(input.KeyTab)})

	evs := runes("Ada")
	evs = append(evs, key(input.KeyEnter))
	evs = append(evs, runes("ada@example.com")...)
	evs = append(evs, key(input.KeyEnter))
	evs = append(evs, runes("hi")...)
	evs = append(evs, key(input.KeyEnter))
	a.Step(at(10), evs)

	assert.Equal(t, "Ada", a.contact.Field(ui.FieldName).Value())
	assert.Equal(t, "ada@example.com", a.contact.Field(ui.FieldEmail).Value())
	assert.Equal(t, ui.Transmitting, a.contact.State())
	assert.Equal(t, focusNone, a.focus)

	a.Step(at(2010), nil)
	assert.Equal(t, ui.Sent, a.contact.State())
	a.Step(at(5010), nil)
	assert.Equal(t, ui.Ready, a.contact.State())
	assert.Empty(t, a.contact.Field(ui.FieldName).Value())
}

func TestThemeKeyPersists(t *testing.T) {
	store := prefs.NewMemory()
	a := newApp(t, store, 0)

	a.Step(at(0), runes("t"))
	assert.Equal(t, theme.Cosmic, a.Theme().Current())
	v, ok, err := store.Get(context.Background(), "tester", theme.PrefKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "cosmic", v)

	b := newApp(t, store, 0)
	assert.Equal(t, theme.Cosmic, b.Theme().Current(), "next session restores the theme")
}

func TestFilterKeyCompactsCards(t *testing.T) {
	a := newApp(t, nil, 0)

	a.Step(at(0), runes("f"))
	assert.Equal(t, ui.Tech, a.filter.Active())

	a.Step(at(1000), nil)
	v, ok := a.projectSlot(0, at(1000))
	require.True(t, ok)
	assert.Equal(t, "Nebula Engine", v.Title)
	v, ok = a.projectSlot(1, at(1000))
	require.True(t, ok)
	assert.Equal(t, "Orbit CLI", v.Title)
	_, ok = a.projectSlot(2, at(1000))
	assert.False(t, ok)
}

func TestMusicKeys(t *testing.T) {
	a := newApp(t, nil, 0)

	a.Step(at(0), runes("pn"))
	assert.True(t, a.music.Playing())
	assert.Equal(t, 1, a.music.Current())

	a.Step(at(10), runes("bb"))
	assert.Equal(t, len(ui.Tracks)-1, a.music.Current())
}

func TestCounterStartsOnScroll(t *testing.T) {
	a := newApp(t, nil, 0)
	a.Step(at(0), nil)
	assert.False(t, a.counter.Started("stat-projects"))

	a.Step(at(10), runes("2"))
	assert.True(t, a.counter.Started("stat-projects"))

	a.Step(at(2010), nil)
	assert.Equal(t, "42", a.counter.Text("stat-projects", at(2010)))
}

func TestLoadingOverlayThenHero(t *testing.T) {
	a := newApp(t, nil, 0)

	a.Step(at(0), nil)
	assert.Contains(t, a.Canvas().Row(testRows/2), "Loading the cosmos")

	a.Step(at(800), nil)
	require.True(t, a.loading.Hidden())
	assert.NotContains(t, a.Canvas().Row(testRows/2), "Loading the cosmos")

	hero := a.blocks[0]
	assert.Contains(t, a.Canvas().Row(hero.contentRow()+1), "Hi, I'm a Cosmic Creator")

	a.Step(at(1500), nil)
	require.NotEmpty(t, a.typewriter.Text())
	assert.Contains(t, a.Canvas().Row(hero.contentRow()+2), a.typewriter.Text())
}

func TestHeaderLinkClick(t *testing.T) {
	a := newApp(t, nil, 0)
	a.Step(at(0), nil)
	a.Step(at(800), nil)

	row := a.Canvas().Row(0)
	i := strings.Index(row, " About ")
	require.GreaterOrEqual(t, i, 0, row)
	col := runewidth.StringWidth(row[:i]) + 1

	a.Step(at(900), []input.Event{{Mouse: true, Action: input.MousePress, Col: col, Row: 0}})
	assert.Equal(t, a.blocks[1].top-ui.HeaderOffset/CellH, a.scrollRow)
}

func TestClickCharacter(t *testing.T) {
	a := newApp(t, nil, 0)
	a.Step(at(0), nil)

	x, y := a.character.Bounds().Center()
	col, row := a.Canvas().LogicalToCell(x, y)
	a.Step(at(10), []input.Event{{Mouse: true, Action: input.MousePress, Col: col, Row: row}})

	assert.Equal(t, character.Excited, a.character.State())
	assert.True(t, a.character.Speech().Visible)
	assert.Equal(t, 10, a.bursts.Particles().Len())

	a.Step(at(600), nil)
	assert.Equal(t, character.Idle, a.character.State())
}

func TestWheelScrolls(t *testing.T) {
	a := newApp(t, nil, 0)

	a.Step(at(0), []input.Event{{Mouse: true, Action: input.MouseWheelDown}})
	assert.Equal(t, scrollStep, a.scrollRow)
	a.Step(at(10), []input.Event{{Mouse: true, Action: input.MouseWheelUp}, {Mouse: true, Action: input.MouseWheelUp}})
	assert.Equal(t, 0, a.scrollRow)
}

func TestIdleTimeout(t *testing.T) {
	a := newApp(t, nil, time.Minute)

	a.Step(at(50_000), nil)
	assert.True(t, a.inactive)
	assert.True(t, a.Running())

	a.Step(at(51_000), runes("j"))
	assert.False(t, a.inactive, "input wakes the session")

	a.Step(at(112_000), nil)
	assert.False(t, a.Running())
}

func TestResize(t *testing.T) {
	a := newApp(t, nil, 0)

	assert.False(t, a.Resize(testCols, testRows))
	require.True(t, a.Resize(60, 20))
	assert.Equal(t, 60, a.Canvas().Cols())
	assert.Equal(t, 20, a.blocks[0].height)
	_, height, _ := a.tracker.Region("hero")
	assert.Equal(t, float64(20*CellH), height)
}

func TestRunRestoresTerminal(t *testing.T) {
	cfg := testConfig()
	a := New(context.Background(), 40, 12, Options{
		Config:   cfg,
		Logger:   log.New(io.Discard),
		Profile:  termenv.ANSI256,
		Seed:     1,
		TermSize: func() (int, int, error) { return 40, 12, nil },
	})
	defer a.Close()

	var out bytes.Buffer
	require.NoError(t, a.Run(context.Background(), strings.NewReader("q"), &out))
	assert.False(t, a.Running())
	s := out.String()
	assert.True(t, strings.HasPrefix(s, "\033[?1049h"))
	assert.Contains(t, s, "\033[?1003h")
	assert.True(t, strings.HasSuffix(s, "\033[?1049l"))
}

func TestRunStopsOnCancel(t *testing.T) {
	a := New(context.Background(), 40, 12, Options{
		Config:   testConfig(),
		Logger:   log.New(io.Discard),
		Seed:     1,
		TermSize: func() (int, int, error) { return 40, 12, nil },
	})
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, w := io.Pipe()
	defer w.Close()
	require.NoError(t, a.Run(ctx, r, io.Discard))
}
