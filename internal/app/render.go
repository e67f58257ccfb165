package app

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/tomz197/portfolio/internal/draw"
	"github.com/tomz197/portfolio/internal/theme"
	"github.com/tomz197/portfolio/internal/ui"
)

const (
	// wideCols is the width from which the header lists every link and the
	// hero leaves room for the character.
	wideCols   = 80
	heroShare  = 0.6
	toastWidth = 36
)

var (
	bubbleFG   = draw.MustHex("#0a0a1a")
	bubbleBG   = draw.MustHex("#ffffff").WithAlpha(0.9)
	successCol = draw.MustHex("#00ff88")
	errorCol   = draw.MustHex("#ff6b6b")
	infoCol    = draw.MustHex("#00d4ff")
)

// hit is a clickable span of a screen row.
type hit struct {
	row        int
	col0, col1 int
	card       int
	fn         func()
}

func (a *App) addHit(row, col, width, card int, fn func()) {
	if width <= 0 {
		return
	}
	a.hits = append(a.hits, hit{row: row, col0: col, col1: col + width, card: card, fn: fn})
}

// hitAt returns the topmost widget at a cell.
func (a *App) hitAt(col, row int) (hit, bool) {
	for i := len(a.hits) - 1; i >= 0; i-- {
		h := a.hits[i]
		if h.row == row && col >= h.col0 && col < h.col1 {
			return h, true
		}
	}
	return hit{}, false
}

// drawFrame paints the background drivers, the page text and the
// overlays, in that order.
func (a *App) drawFrame(now time.Time) {
	a.hits = a.hits[:0]
	a.canvas.ClearText()
	a.character.SetBounds(a.characterBounds())

	a.stars.Frame(a.canvas, now)
	a.floating.Draw(a.canvas, now)
	a.character.Frame(a.canvas, now)
	a.drawPage(now)
	a.bursts.Draw(a.canvas, now)
	a.drawSpeech()
	a.drawHeader()
	a.drawButtons()
	a.drawNotifications(now)
	if a.inactive {
		a.drawInactive()
	}
	if !a.loading.Hidden() {
		a.drawLoading()
	}
	a.cursor.Draw(a.canvas, a.theme.Palette().Primary)
}

func (a *App) drawPage(now time.Time) {
	cols, rows := a.canvas.Cols(), a.canvas.Rows()
	for row := 0; row < rows; row++ {
		b, l, ok := lineAt(a.blocks, a.scrollRow+row)
		if !ok || l.text == nil {
			continue
		}
		s := l.text(a, now)
		if s == "" {
			continue
		}
		fg := a.colorFor(l.kind)
		shift := 0
		if l.elem != "" {
			st := a.reveal.State(l.elem, now)
			fg = fg.Fade(st.Opacity)
			shift = int(st.OffsetX / CellW)
		}
		if l.card >= 0 {
			if v, ok := a.projectSlot(l.card, now); ok {
				fg = fg.Fade(v.Opacity)
			}
		}

		width := runewidth.StringWidth(s)
		area := cols
		if b.id == "hero" && cols >= wideCols {
			area = int(float64(cols) * heroShare)
		}
		col := 0
		if l.center {
			col = max(0, (area-width)/2)
		}
		col += shift

		if l.kind == kindButton {
			a.canvas.TextBG(col, row, s, fg, a.theme.Palette().Glow.Fade(0.4))
		} else {
			a.canvas.Text(col, row, s, fg)
		}
		if l.action != nil || l.card >= 0 {
			a.addHit(row, col, width, l.card, a.lineAction(l))
		}
		if b.id == "contact" && l.kind == kindButton {
			a.contact.ButtonX, a.contact.ButtonY = a.canvas.CellToLogical(col+width/2, row)
		}
	}
}

func (a *App) lineAction(l line) func() {
	if l.action == nil {
		return nil
	}
	return func() { l.action(a) }
}

// drawSpeech draws the character's speech bubble above its head.
func (a *App) drawSpeech() {
	sp := a.character.Speech()
	if !sp.Visible || sp.Message == "" {
		return
	}
	b := a.character.Bounds()
	msg := " " + sp.Message + " "
	width := runewidth.StringWidth(msg)
	cx, _ := a.canvas.LogicalToCell(b.X+b.W/2, b.Y)
	_, top := a.canvas.LogicalToCell(b.X, b.Y)
	row := top - 1
	if row < 1 || row >= a.canvas.Rows() {
		return
	}
	col := max(0, min(cx-width/2, a.canvas.Cols()-width))
	a.canvas.TextBG(col, row, msg, bubbleFG, bubbleBG)
}

// drawHeader draws the navigation bar on the top row.
func (a *App) drawHeader() {
	if a.nav.Hidden() {
		return
	}
	p := a.theme.Palette()
	cols := a.canvas.Cols()
	if a.nav.Solid() {
		a.canvas.TextBG(0, 0, strings.Repeat(" ", cols), textColor, p.Background.WithAlpha(0.9))
	}
	col := 1
	col += a.canvas.Text(col, 0, "👽 Cosmic", p.Primary) + 2

	icon := " " + a.toggle.Icon() + " "
	iconW := runewidth.StringWidth(icon)
	iconCol := cols - iconW - 1
	a.canvas.Text(iconCol, 0, icon, textColor)
	a.addHit(0, iconCol, iconW, -1, func() { a.toggle.Toggle() })

	if cols >= wideCols {
		for _, s := range Sections {
			label := " " + s.Link + " "
			w := runewidth.StringWidth(label)
			if col+w >= iconCol {
				break
			}
			a.drawLink(0, col, label, s.ID == a.nav.Active(), s.ID)
			col += w
		}
		return
	}

	menu := " ☰ "
	menuCol := iconCol - runewidth.StringWidth(menu)
	a.canvas.Text(menuCol, 0, menu, textColor)
	a.addHit(0, menuCol, runewidth.StringWidth(menu), -1, a.nav.ToggleMenu)
	if !a.nav.MenuOpen() {
		return
	}
	for i, s := range Sections {
		label := " " + s.Link + " "
		a.drawLink(i+1, max(0, cols-16), label+strings.Repeat(" ", max(0, 15-runewidth.StringWidth(label))), s.ID == a.nav.Active(), s.ID)
	}
}

func (a *App) drawLink(row, col int, label string, active bool, id string) {
	p := a.theme.Palette()
	w := runewidth.StringWidth(label)
	if active {
		a.canvas.TextBG(col, row, label, p.Background, p.Primary)
	} else {
		a.canvas.TextBG(col, row, label, textColor, p.Background.WithAlpha(0.6))
	}
	a.addHit(row, col, w, -1, func() { a.jumpTo(id) })
}

var actionIcons = map[ui.Action]string{
	ui.ActionHome:     "🏠",
	ui.ActionProjects: "🚀",
	ui.ActionMusic:    "🎵",
	ui.ActionContact:  "📡",
	ui.ActionAlien:    "👽",
}

// drawButtons draws the quick action bar and the back to top button.
func (a *App) drawButtons() {
	p := a.theme.Palette()
	rows, cols := a.canvas.Rows(), a.canvas.Cols()
	if a.quick.Visible() {
		col := 1
		for _, act := range ui.Actions {
			label := " " + actionIcons[act] + " "
			bg := p.Background.WithAlpha(0.8)
			if a.quick.Active(act) {
				bg = p.Primary
			}
			w := a.canvas.TextBG(col, rows-1, label, textColor, bg)
			a.addHit(rows-1, col, w, -1, func() { a.quick.Trigger(act) })
			col += w + 1
		}
	}
	if a.backToTop.Visible() {
		label := " ⬆ top "
		w := runewidth.StringWidth(label)
		col := cols - w - 1
		a.canvas.TextBG(col, rows-1, label, p.Background, p.Primary)
		a.addHit(rows-1, col, w, -1, func() { a.scrollTo(a.backToTop.Press()) })
	}
}

func kindColor(k ui.Kind) draw.Color {
	switch k {
	case ui.Success:
		return successCol
	case ui.Error:
		return errorCol
	default:
		return infoCol
	}
}

// drawNotifications stacks toasts in the bottom right corner and banners
// below the header. Leaving toasts slide right, leaving banners fade.
func (a *App) drawNotifications(now time.Time) {
	rows, cols := a.canvas.Rows(), a.canvas.Cols()
	toastRow := rows - 3
	bannerRow := 2
	for _, n := range a.notifier.Active() {
		msg := " " + n.Message + " "
		w := runewidth.StringWidth(msg)
		prog := n.Progress(now)
		fg := bubbleFG
		bg := kindColor(n.Kind)
		switch n.Placement {
		case ui.Banner:
			if bannerRow >= rows {
				continue
			}
			col := max(0, (cols-w)/2)
			a.canvas.TextBG(col, bannerRow, msg, fg.Fade(1-prog), bg.Fade(1-prog))
			bannerRow++
		default:
			if toastRow < 1 {
				continue
			}
			col := cols - min(w, toastWidth) - 1 + int(prog*float64(toastWidth+1))
			a.canvas.TextBG(col, toastRow, msg, fg, bg)
			toastRow--
		}
	}
}

func (a *App) drawCentered(row int, s string, fg, bg draw.Color) {
	w := runewidth.StringWidth(s)
	a.canvas.TextBG(max(0, (a.canvas.Cols()-w)/2), row, s, fg, bg)
}

func (a *App) drawInactive() {
	p := a.theme.Palette()
	mid := a.canvas.Rows() / 2
	a.drawCentered(mid-1, "                                               ", textColor, p.Background)
	a.drawCentered(mid, "  Still there? Press any key to stay aboard.  ", p.Primary, p.Background)
	a.drawCentered(mid+1, "                                               ", textColor, p.Background)
}

func (a *App) drawLoading() {
	p := a.theme.Palette()
	w, h := a.canvas.Size()
	a.canvas.FillRect(0, 0, w, h, p.Background.WithAlpha(0.85))
	a.canvas.ClearText()
	a.hits = a.hits[:0]
	a.drawCentered(a.canvas.Rows()/2, "🛸 Loading the cosmos...", p.Primary, p.Background)
	a.drawCentered(a.canvas.Rows()/2+1, theme.Title(a.theme.Current())+" theme", dimColor, p.Background)
}
