// Package app assembles one visitor's portfolio session: the drivers, the
// page widgets and the loop that draws them to a terminal.
package app

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/tomz197/portfolio/internal/audio"
	"github.com/tomz197/portfolio/internal/burst"
	"github.com/tomz197/portfolio/internal/character"
	"github.com/tomz197/portfolio/internal/config"
	"github.com/tomz197/portfolio/internal/draw"
	"github.com/tomz197/portfolio/internal/prefs"
	"github.com/tomz197/portfolio/internal/sched"
	"github.com/tomz197/portfolio/internal/starfield"
	"github.com/tomz197/portfolio/internal/theme"
	"github.com/tomz197/portfolio/internal/ui"
	"github.com/tomz197/portfolio/internal/visibility"
)

const (
	// CellW and CellH are the logical size of one terminal cell.
	CellW = 8
	CellH = 16

	scrollStep = 3
)

// Options configure an App. Only Config is required.
type Options struct {
	Config *config.Config
	Logger *log.Logger
	// Store keeps the visitor's theme; nil disables persistence.
	Store prefs.Store
	Owner string
	// Player plays the click tone; nil is silent.
	Player   audio.Player
	TermSize draw.TermSizeFunc
	Profile  termenv.Profile
	// IdleTimeout ends the session after that long without input. Zero
	// disables it.
	IdleTimeout time.Duration
	// Seed fixes the random source; zero seeds from the clock.
	Seed  int64
	Clock func() time.Time
}

// App is the state of one session. It is driven by a single goroutine.
type App struct {
	opts   Options
	cfg    *config.Config
	logger *log.Logger
	clock  func() time.Time

	sched   *sched.Scheduler
	rng     *rand.Rand
	tracker *visibility.Tracker
	canvas  *draw.Canvas

	theme      *theme.Manager
	notifier   *ui.Notifier
	stars      *starfield.Driver
	bursts     *burst.Driver
	floating   *burst.Floating
	character  *character.Character
	nav        *ui.Navigation
	toggle     *ui.ThemeToggle
	filter     *ui.ProjectFilter
	music      *ui.MusicPlayer
	contact    *ui.ContactForm
	newsletter *ui.Newsletter
	typewriter *ui.Typewriter
	counter    *ui.Counter
	reveal     *ui.ScrollReveal
	lazy       *ui.LazyLoader
	backToTop  *ui.BackToTop
	quick      *ui.QuickActions
	cursor     *ui.Cursor
	loading    *ui.LoadingOverlay

	page   [][]line
	blocks []block

	scrollRow int
	focus     focus
	hits      []hit
	hoverCard int

	pointer            bool
	pointerX, pointerY float64

	lastInput time.Time
	inactive  bool
	running   bool
	loaded    bool
	closed    bool
}

// focus is the input field receiving typed runes.
type focus int

const (
	focusNone focus = iota
	focusNewsletter
	// focusContact is followed by one value per contact form field.
	focusContact
)

// New builds the session with a cols x rows terminal.
func New(ctx context.Context, cols, rows int, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Player == nil {
		opts.Player = audio.Nop{}
	}
	if opts.TermSize == nil {
		opts.TermSize = draw.DefaultTermSizeFunc
	}
	seed := opts.Seed
	if seed == 0 {
		seed = opts.Clock().UnixNano()
	}
	cfg := opts.Config
	now := opts.Clock()

	a := &App{
		opts:      opts,
		cfg:       cfg,
		logger:    opts.Logger.With("owner", opts.Owner),
		clock:     opts.Clock,
		sched:     sched.New(now),
		rng:       rand.New(rand.NewSource(seed)),
		tracker:   visibility.NewTracker(),
		canvas:    draw.NewCanvas(cols, rows, CellW, CellH, opts.Profile),
		page:      buildPage(),
		hoverCard: -1,
		pointer:   cfg.Mouse,
		lastInput: now,
		running:   true,
	}
	w, h := a.canvas.Size()
	a.pointerX, a.pointerY = w/2, h/2

	a.theme = theme.NewManager(ctx, opts.Store, opts.Owner, theme.Name(cfg.Theme), a.logger)
	a.notifier = ui.NewNotifier(a.sched)
	a.stars = starfield.New(w, h, starfield.Options{
		Stars:              cfg.Stars,
		Nebulas:            cfg.Nebulas,
		ShootingStarChance: starfield.DefaultOptions().ShootingStarChance,
	}, a.rng)
	if !cfg.Mouse {
		a.stars.SetPointer(a.pointerX, a.pointerY)
	}
	a.bursts = burst.New(a.sched, a.rng)
	a.floating = burst.NewFloating(cfg.FloatingParticles, a.rng, now)

	a.relayout()

	a.character = character.New(a.characterBounds(), character.Deps{
		Sched:    a.sched,
		Rng:      a.rng,
		Burst:    a.bursts,
		Player:   opts.Player,
		Signal:   a.tracker,
		Sections: SectionIDs(),
		Options:  character.DefaultOptions(),
		Logger:   a.logger,
	})
	a.character.SetPointer(a.pointerX, a.pointerY)

	a.nav = ui.NewNavigation(a.tracker, a.tracker, SectionIDs())
	a.toggle = ui.NewThemeToggle(a.theme, a.notifier, a.logger)
	a.filter = ui.NewProjectFilter(a.sched, projects)
	a.music = ui.NewMusicPlayer(a.sched)
	a.contact = ui.NewContactForm(a.sched, a.bursts, a.notifier)
	a.newsletter = ui.NewNewsletter(a.bursts, a.notifier, a.canvas.Size)
	a.typewriter = ui.NewTypewriter(a.sched, ui.Phrases)
	a.counter = ui.NewCounter(a.sched, a.tracker, stats)
	a.reveal = ui.NewScrollReveal(a.sched, a.tracker)
	a.reveal.Add(ui.FadeInUp, statIDs()...)
	a.reveal.Add(ui.FadeInLeft, skillIDs()...)
	a.reveal.Add(ui.ScaleIn, projectIDs()...)
	a.reveal.Add(ui.FadeInUp, trackIDs()...)
	a.lazy = ui.NewLazyLoader(a.tracker, images)
	a.backToTop = ui.NewBackToTop(a.sched)
	a.quick = ui.NewQuickActions(ui.QuickActionDeps{
		Sched:    a.sched,
		Regions:  a.tracker,
		Music:    a.music,
		ScrollTo: a.scrollTo,
		Alien: func() {
			a.scrollTo(0)
			a.character.Click()
		},
	})
	a.cursor = ui.NewCursor(cfg.Mouse)
	a.loading = ui.NewLoadingOverlay(a.sched)

	a.applyPalette(a.theme.Palette())
	a.theme.OnChange(func(_ theme.Name, p theme.Palette) { a.applyPalette(p) })
	return a
}

func (a *App) applyPalette(p theme.Palette) {
	a.stars.SetBackground(p.Background)
	a.canvas.SetBackground(p.Background)
}

func statIDs() []string {
	ids := make([]string, len(stats))
	for i, s := range stats {
		ids[i] = s.ID
	}
	return ids
}

func skillIDs() []string {
	ids := make([]string, len(skills))
	for i := range skills {
		ids[i] = skillID(i)
	}
	return ids
}

func projectIDs() []string {
	ids := make([]string, len(projects))
	for i := range projects {
		ids[i] = projectID(i)
	}
	return ids
}

func trackIDs() []string {
	ids := make([]string, len(ui.Tracks))
	for i := range ui.Tracks {
		ids[i] = trackID(i)
	}
	return ids
}

// relayout places the sections for the canvas size and registers their
// regions with the tracker.
func (a *App) relayout() {
	a.blocks = layout(a.page, a.canvas.Rows())
	spans := make(map[string][2]int)
	for _, b := range a.blocks {
		a.tracker.SetRegion(b.id, float64(b.top*CellH), float64(b.height*CellH))
		for i, l := range b.lines {
			if l.elem == "" {
				continue
			}
			r := b.contentRow() + i
			sp, ok := spans[l.elem]
			if !ok {
				sp = [2]int{r, r}
			}
			sp[1] = r
			spans[l.elem] = sp
		}
	}
	for id, sp := range spans {
		a.tracker.SetRegion(id, float64(sp[0]*CellH), float64((sp[1]-sp[0]+1)*CellH))
	}
	a.scrollRow = min(a.scrollRow, a.maxScroll())
}

// characterBounds is the character's box on screen: the right side of the
// hero section, moving with the page.
func (a *App) characterBounds() character.Bounds {
	w, h := a.canvas.Size()
	hero := a.blocks[0]
	size := math.Min(160, math.Min(w*0.3, h*0.6))
	heroTop := float64(hero.top*CellH) - a.ScrollY()
	heroH := float64(hero.height * CellH)
	x := w*0.75 - size/2
	if a.canvas.Cols() < wideCols {
		x = w - size - CellW
	}
	return character.Bounds{
		X: x,
		Y: heroTop + heroH/2 - size*0.6,
		W: size,
		H: size * 1.2,
	}
}

func (a *App) maxScroll() int {
	return max(0, pageHeight(a.blocks)-a.canvas.Rows())
}

// ScrollY is the scroll position in logical units.
func (a *App) ScrollY() float64 { return float64(a.scrollRow * CellH) }

// scrollTo scrolls to a logical y, rounded to whole rows.
func (a *App) scrollTo(y float64) {
	a.setScrollRow(int(math.Round(y / CellH)))
}

func (a *App) scrollBy(rows int) {
	a.setScrollRow(a.scrollRow + rows)
}

func (a *App) setScrollRow(r int) {
	r = max(0, min(r, a.maxScroll()))
	if r == a.scrollRow {
		return
	}
	a.scrollRow = r
	y := a.ScrollY()
	a.character.Scroll(y)
	a.nav.Scroll(y)
	a.backToTop.Scroll(y)
	a.quick.Scroll(y)
	a.character.SetBounds(a.characterBounds())
}

// jumpTo scrolls to a section the way a header link does.
func (a *App) jumpTo(id string) {
	if y, ok := a.nav.Select(id); ok {
		a.scrollTo(y)
	}
}

// projectSlot returns the card drawn in slot i: the displayed cards in
// order, packed to the top of the grid.
func (a *App) projectSlot(i int, now time.Time) (ui.CardView, bool) {
	n := 0
	for _, v := range a.filter.Cards(now) {
		if !v.Displayed {
			continue
		}
		if n == i {
			return v, true
		}
		n++
	}
	return ui.CardView{}, false
}

func (a *App) setFocus(f focus) {
	a.focus = f
	switch {
	case f == focusNewsletter:
		a.contact.Blur()
		a.newsletter.Focus()
	case f >= focusContact:
		a.newsletter.Blur()
		a.contact.Blur()
		a.contact.Focus(ui.FormField(f - focusContact))
	default:
		a.newsletter.Blur()
		a.contact.Blur()
	}
}

func (a *App) submitContact() {
	if a.contact.Disabled() {
		return
	}
	a.focus = focusNone
	a.contact.Submit()
}

// Running reports whether the session goes on.
func (a *App) Running() bool { return a.running }

// Quit ends the session after the current frame.
func (a *App) Quit() { a.running = false }

// Canvas returns the drawing target.
func (a *App) Canvas() *draw.Canvas { return a.canvas }

// Theme returns the visitor's theme manager.
func (a *App) Theme() *theme.Manager { return a.theme }

// Close stops every timer and releases the drivers.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.character.Close()
	a.nav.Close()
	a.filter.Close()
	a.contact.Close()
	a.typewriter.Close()
	a.counter.Close()
	a.reveal.Close()
	a.lazy.Close()
	a.quick.Close()
	a.loading.Close()
	a.notifier.Close()
	a.bursts.Close()
	a.floating.Close()
	a.stars.Close()
	a.sched.Close()
	a.logger.Debug("session closed")
}
