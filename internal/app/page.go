package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/portfolio/internal/draw"
	"github.com/tomz197/portfolio/internal/ui"
)

// Section is a page section with its header link.
type Section struct {
	ID    string
	Title string
	Link  string
}

// Sections are the page sections top to bottom.
var Sections = []Section{
	{ID: "hero", Link: "Home"},
	{ID: "about", Title: "About Me", Link: "About"},
	{ID: "skills", Title: "Skills", Link: "Skills"},
	{ID: "projects", Title: "Cosmic Creations", Link: "Projects"},
	{ID: "music", Title: "Music", Link: "Music"},
	{ID: "app", Title: "CosmicBeats", Link: "App"},
	{ID: "contact", Title: "Make Contact", Link: "Contact"},
}

// SectionIDs returns the section ids in page order.
func SectionIDs() []string {
	ids := make([]string, len(Sections))
	for i, s := range Sections {
		ids[i] = s.ID
	}
	return ids
}

var aboutText = []string{
	"I build things where code, sound and images meet.",
	"By day I ship software; by night I produce music and paint pixels.",
	"This page runs entirely in your terminal.",
}

var stats = []ui.Stat{
	{ID: "stat-projects", Target: 42, Label: "Projects Launched"},
	{ID: "stat-tracks", Target: 128, Label: "Tracks Produced"},
	{ID: "stat-coffee", Target: 1337, Label: "Cups of Coffee"},
	{ID: "stat-lines", Target: 250000, Label: "Lines of Code"},
}

var skills = []ui.SkillCategory{
	{Icon: "💻", Title: "Tech", Skills: []ui.Skill{{Name: "Go", Level: 90}, {Name: "TypeScript", Level: 85}, {Name: "Distributed systems", Level: 75}}},
	{Icon: "🎵", Title: "Music", Skills: []ui.Skill{{Name: "Production", Level: 85}, {Name: "Sound design", Level: 80}, {Name: "Mixing", Level: 70}}},
	{Icon: "🎨", Title: "Art", Skills: []ui.Skill{{Name: "Pixel art", Level: 80}, {Name: "Generative art", Level: 75}, {Name: "Motion", Level: 60}}},
}

var projects = []ui.Card{
	{Title: "Nebula Engine", Description: "A realtime renderer for the terminal", Category: ui.Tech, Tags: []string{"Go", "SSH"}},
	{Title: "UFO Nights EP", Description: "Synthwave from another galaxy", Category: ui.Music, Tags: []string{"Synth", "EP"}},
	{Title: "Pixel Cosmos", Description: "Generative star maps", Category: ui.Art, Tags: []string{"Generative"}},
	{Title: "Orbit CLI", Description: "Deploy tooling with a sense of gravity", Category: ui.Tech, Tags: []string{"CLI", "Infra"}},
	{Title: "Lunar Loops", Description: "A sample pack recorded at night", Category: ui.Music, Tags: []string{"Samples"}},
	{Title: "Alien Portraits", Description: "A series of friendly faces", Category: ui.Art, Tags: []string{"Illustration"}},
}

var images = []string{"img-studio", "img-gallery"}

func skillID(i int) string   { return fmt.Sprintf("skill-%d", i) }
func projectID(i int) string { return fmt.Sprintf("project-%d", i) }
func trackID(i int) string   { return fmt.Sprintf("track-%d", i) }

// lineKind selects how a line is drawn.
type lineKind int

const (
	kindText lineKind = iota
	kindTitle
	kindHeading
	kindDim
	kindAccent
	kindButton
)

// line is one row of page content.
type line struct {
	text   func(a *App, now time.Time) string
	kind   lineKind
	center bool
	// elem names the element for scroll reveal, counters and lazy images.
	elem   string
	action func(a *App)
	// card is the project slot shown on this row, or -1.
	card int
}

func static(s string) func(*App, time.Time) string {
	return func(*App, time.Time) string { return s }
}

func textLine(s string, kind lineKind) line {
	return line{text: static(s), kind: kind, center: true, card: -1}
}

func blank() line { return textLine("", kindText) }

// block is a laid out section.
type block struct {
	id     string
	top    int
	height int
	lines  []line
}

// buildPage returns the content of every section. Rows hold functions so
// the layout only changes with the terminal size.
func buildPage() [][]line {
	page := make([][]line, len(Sections))
	for i, s := range Sections {
		var ls []line
		if s.Title != "" {
			ls = append(ls, textLine(s.Title, kindTitle), blank())
		}
		switch s.ID {
		case "hero":
			ls = heroLines()
		case "about":
			ls = append(ls, aboutLines()...)
		case "skills":
			ls = append(ls, skillLines()...)
		case "projects":
			ls = append(ls, projectLines()...)
		case "music":
			ls = append(ls, musicLines()...)
		case "app":
			ls = append(ls, appLines()...)
		case "contact":
			ls = append(ls, contactLines()...)
		}
		page[i] = ls
	}
	return page
}

func heroLines() []line {
	return []line{
		blank(),
		textLine("Hi, I'm a Cosmic Creator", kindTitle),
		{text: func(a *App, _ time.Time) string { return a.typewriter.Text() + "▌" }, kind: kindAccent, center: true, card: -1},
		blank(),
		textLine("Exploring the universe of code, sound and art.", kindDim),
		blank(),
		{text: static("[ Explore my work ]"), kind: kindButton, center: true, card: -1, action: func(a *App) { a.jumpTo("projects") }},
		{text: static("[ Say hello ]"), kind: kindButton, center: true, card: -1, action: func(a *App) { a.jumpTo("contact") }},
	}
}

func aboutLines() []line {
	var ls []line
	for _, s := range aboutText {
		ls = append(ls, textLine(s, kindText))
	}
	ls = append(ls, blank())
	for _, st := range stats {
		ls = append(ls, line{
			text: func(a *App, now time.Time) string {
				return fmt.Sprintf("%10s  %s", a.counter.Text(st.ID, now), st.Label)
			},
			kind:   kindAccent,
			center: true,
			elem:   st.ID,
			card:   -1,
		})
	}
	ls = append(ls, blank(), line{
		text: func(a *App, _ time.Time) string {
			if a.lazy.Loaded(images[0]) {
				return "🛸 [studio photo] 🎛️"
			}
			return "░░░ loading image ░░░"
		},
		kind: kindDim, center: true, elem: images[0], card: -1,
	})
	return ls
}

func skillLines() []line {
	var ls []line
	for i, cat := range skills {
		ls = append(ls, line{text: static(cat.Icon + " " + cat.Title), kind: kindHeading, center: true, elem: skillID(i), card: -1})
		for _, sk := range cat.Skills {
			ls = append(ls, line{
				text:   static(fmt.Sprintf("%-20s %s %3d%%", sk.Name, ui.Bar(sk.Level, 20), sk.Level)),
				kind:   kindText,
				center: true,
				elem:   skillID(i),
				card:   -1,
			})
		}
		ls = append(ls, blank())
	}
	return ls
}

func projectLines() []line {
	ls := []line{{
		text: func(a *App, _ time.Time) string {
			var b strings.Builder
			for _, c := range ui.Categories {
				if c == a.filter.Active() {
					fmt.Fprintf(&b, " [%s] ", strings.ToUpper(string(c)))
				} else {
					fmt.Fprintf(&b, "  %s  ", c)
				}
			}
			return b.String()
		},
		kind: kindButton, center: true, card: -1,
		action: func(a *App) { a.filter.Cycle() },
	}, blank()}
	for i := range projects {
		ls = append(ls, line{
			text: func(a *App, now time.Time) string {
				v, ok := a.projectSlot(i, now)
				if !ok {
					return ""
				}
				return fmt.Sprintf("🚀 %-18s %-40s #%s", v.Title, v.Description, strings.Join(v.Tags, " #"))
			},
			kind:   kindText,
			center: true,
			elem:   projectID(i),
			card:   i,
		})
	}
	return ls
}

func musicLines() []line {
	var ls []line
	for i, t := range ui.Tracks {
		ls = append(ls, line{
			text: func(a *App, _ time.Time) string {
				mark := "  "
				if a.music.Selected() == i {
					mark = "▶ "
				}
				return fmt.Sprintf("%s🎵 %-16s Track 0%d", mark, t, i+1)
			},
			kind: kindText, center: true, elem: trackID(i), card: -1,
			action: func(a *App) { a.music.Select(i) },
		})
	}
	ls = append(ls, blank(),
		line{text: func(a *App, _ time.Time) string { return a.music.Title() }, kind: kindAccent, center: true, card: -1},
		line{text: func(a *App, _ time.Time) string { return visualizer(a.music.Bars(24)) }, kind: kindAccent, center: true, card: -1},
		line{text: func(a *App, _ time.Time) string { return "⏮   " + a.music.Icon() + "   ⏭" }, kind: kindButton, center: true, card: -1,
			action: func(a *App) { a.music.TogglePlay() }},
	)
	return ls
}

var barRunes = []rune(" ▁▂▃▄▅▆▇█")

func visualizer(bars []float64) string {
	out := make([]rune, 0, len(bars)*2)
	for _, h := range bars {
		i := int(h * float64(len(barRunes)-1))
		out = append(out, barRunes[max(0, min(i, len(barRunes)-1))], ' ')
	}
	return string(out)
}

func appLines() []line {
	return []line{
		textLine("A music app for creators among the stars. Launching soon.", kindText),
		blank(),
		{text: func(a *App, _ time.Time) string {
			return "Email: " + fieldText(a.newsletter.Input(), a.newsletter.Focused(), 32)
		}, kind: kindText, center: true, card: -1, action: func(a *App) { a.setFocus(focusNewsletter) }},
		{text: static("[ Notify Me 🔔 ]"), kind: kindButton, center: true, card: -1, action: func(a *App) { a.newsletter.Submit() }},
		blank(),
		{text: static("📱 iOS · Android · Web"), kind: kindDim, center: true, elem: images[1], card: -1},
	}
}

func contactLines() []line {
	labels := []string{"Name:    ", "Email:   ", "Message: "}
	var ls []line
	for i, l := range labels {
		f := ui.FormField(i)
		ls = append(ls, line{
			text: func(a *App, _ time.Time) string {
				cur, editing := a.contact.Editing()
				mark := " "
				if a.contact.Focused(f) {
					mark = "›"
				}
				return mark + " " + l + fieldText(a.contact.Field(f), editing && cur == f, 40)
			},
			kind: kindText, center: true, card: -1,
			action: func(a *App) { a.setFocus(focusContact + focus(f)) },
		})
	}
	ls = append(ls, blank(), line{
		text:   func(a *App, _ time.Time) string { return "[ " + a.contact.Label() + " ]" },
		kind:   kindButton,
		center: true,
		card:   -1,
		action: func(a *App) { a.submitContact() },
	}, blank(), textLine("📡 hello@cosmic.example  ·  🛰️ @cosmic", kindDim))
	return ls
}

// fieldText renders an input box of width runes.
func fieldText(f *ui.Field, focused bool, width int) string {
	v := []rune(f.Value())
	if len(v) > width-1 {
		v = v[len(v)-(width-1):]
	}
	s := string(v)
	if focused {
		s += "▏"
	}
	pad := width - len([]rune(s))
	if pad < 0 {
		pad = 0
	}
	return "[" + s + strings.Repeat("_", pad) + "]"
}

// layout places the sections for a viewport of rows terminal rows.
func layout(page [][]line, rows int) []block {
	blocks := make([]block, len(page))
	top := 0
	for i, ls := range page {
		h := len(ls) + 4
		if Sections[i].ID == "hero" {
			h = max(h, rows)
		}
		blocks[i] = block{id: Sections[i].ID, top: top, height: h, lines: ls}
		top += h
	}
	return blocks
}

// contentRow is the row of the first line inside a block.
func (b block) contentRow() int {
	if b.id == "hero" {
		return b.top + max(1, (b.height-len(b.lines))/3)
	}
	return b.top + 2
}

// lineAt returns the line on page row r and the block holding it.
func lineAt(blocks []block, r int) (block, line, bool) {
	for _, b := range blocks {
		if r < b.top || r >= b.top+b.height {
			continue
		}
		i := r - b.contentRow()
		if i >= 0 && i < len(b.lines) {
			return b, b.lines[i], true
		}
		return b, line{}, false
	}
	return block{}, line{}, false
}

// pageHeight is the number of rows of all blocks.
func pageHeight(blocks []block) int {
	if len(blocks) == 0 {
		return 0
	}
	last := blocks[len(blocks)-1]
	return last.top + last.height
}

var (
	textColor = draw.MustHex("#e0e0ff")
	dimColor  = draw.MustHex("#8888aa")
)

// colorFor picks the text colour of a line kind.
func (a *App) colorFor(k lineKind) draw.Color {
	p := a.theme.Palette()
	switch k {
	case kindTitle:
		return p.Primary
	case kindHeading, kindAccent:
		return p.Accent
	case kindButton:
		return p.Secondary
	case kindDim:
		return dimColor
	default:
		return textColor
	}
}
