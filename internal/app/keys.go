package app

import (
	"github.com/tomz197/portfolio/internal/input"
	"github.com/tomz197/portfolio/internal/ui"
)

func (a *App) handleEvent(ev input.Event) {
	if ev.Mouse {
		a.handleMouse(ev)
		return
	}
	if ev.Key == input.KeyCtrlC {
		a.Quit()
		return
	}
	if a.focus != focusNone {
		a.handleTextKey(ev)
		return
	}
	a.handleKey(ev)
}

// handleTextKey edits the focused form field.
func (a *App) handleTextKey(ev input.Event) {
	switch ev.Key {
	case input.KeyRune:
		if a.focus == focusNewsletter {
			a.newsletter.Type(ev.Rune)
		} else {
			a.contact.Type(ev.Rune)
		}
	case input.KeyBackspace:
		if a.focus == focusNewsletter {
			a.newsletter.Backspace()
		} else {
			a.contact.Backspace()
		}
	case input.KeyTab:
		a.cycleFocus(1)
	case input.KeyBackTab:
		a.cycleFocus(-1)
	case input.KeyEnter:
		a.submitFocused()
	case input.KeyEscape:
		a.setFocus(focusNone)
	default:
		a.handleKey(ev)
	}
}

// cycleFocus moves through the newsletter and contact inputs.
func (a *App) cycleFocus(dir int) {
	n := int(focusContact) + 3 - 1
	i := int(a.focus) - 1
	if a.focus == focusNone {
		i = -dir
		if dir < 0 {
			i = 0
		}
	}
	i = ((i+dir)%n + n) % n
	f := focus(i + 1)
	a.setFocus(f)
	if f == focusNewsletter {
		a.ensureVisible("app")
	} else {
		a.ensureVisible("contact")
	}
}

func (a *App) submitFocused() {
	switch {
	case a.focus == focusNewsletter:
		if a.newsletter.Submit() {
			a.setFocus(focusNone)
		}
	case a.focus == focusContact+focus(ui.FieldMessage):
		a.submitContact()
	case a.focus >= focusContact:
		a.cycleFocus(1)
	}
}

// ensureVisible scrolls to section id unless it is already on screen.
func (a *App) ensureVisible(id string) {
	top, height, ok := a.tracker.Region(id)
	if !ok {
		return
	}
	y := a.ScrollY()
	if top >= y && top+height <= y+float64(a.canvas.Rows()*CellH) {
		return
	}
	a.jumpTo(id)
}

func (a *App) handleKey(ev input.Event) {
	rows := a.canvas.Rows()
	switch ev.Key {
	case input.KeyDown:
		a.scrollBy(1)
	case input.KeyUp:
		a.scrollBy(-1)
	case input.KeyPgDn:
		a.scrollBy(rows - 2)
	case input.KeyPgUp:
		a.scrollBy(-(rows - 2))
	case input.KeyHome:
		a.scrollTo(a.backToTop.Press())
	case input.KeyEnd:
		a.setScrollRow(a.maxScroll())
	case input.KeyTab:
		a.cycleFocus(1)
	case input.KeyBackTab:
		a.cycleFocus(-1)
	case input.KeyEscape:
		a.nav.ClickOutside()
	case input.KeyRune:
		a.handleRune(ev.Rune, rows)
	}
}

func (a *App) handleRune(r rune, rows int) {
	if r >= '1' && r <= '9' {
		if i := int(r - '1'); i < len(Sections) {
			a.jumpTo(Sections[i].ID)
		}
		return
	}
	switch r {
	case 'j':
		a.scrollBy(1)
	case 'k':
		a.scrollBy(-1)
	case ' ':
		a.scrollBy(rows - 2)
	case 'g':
		a.scrollTo(a.backToTop.Press())
	case 'G':
		a.setScrollRow(a.maxScroll())
	case 't':
		a.toggle.Toggle()
	case 'p':
		a.music.TogglePlay()
	case 'n':
		a.music.Next()
	case 'b':
		a.music.Prev()
	case 'f':
		a.filter.Cycle()
	case 'a':
		a.quick.Trigger(ui.ActionAlien)
	case 's':
		a.stars.SpawnShootingStar(0, 0)
	case 'm':
		a.nav.ToggleMenu()
	case 'q':
		a.Quit()
	}
}

// handleMouse follows the pointer and dispatches clicks and the wheel.
func (a *App) handleMouse(ev input.Event) {
	x, y := a.canvas.CellToLogical(ev.Col, ev.Row)
	switch ev.Action {
	case input.MouseWheelUp:
		a.scrollBy(-scrollStep)
		return
	case input.MouseWheelDown:
		a.scrollBy(scrollStep)
		return
	}
	a.movePointer(ev.Col, ev.Row, x, y)
	if ev.Action == input.MousePress && ev.Button == 0 {
		a.click(ev.Col, ev.Row, x, y)
	}
}

func (a *App) movePointer(col, row int, x, y float64) {
	a.pointerX, a.pointerY = x, y
	a.stars.SetPointer(x, y)
	a.character.SetPointer(x, y)
	a.character.Hover(a.character.Bounds().Contains(x, y))

	h, ok := a.hitAt(col, row)
	a.cursor.Move(x, y, ok || a.character.Hovered())

	card := -1
	if ok {
		card = h.card
	}
	if card != a.hoverCard && card >= 0 {
		a.bursts.Pop(x, y)
	}
	a.hoverCard = card
}

// click runs the widget under the pointer. Empty space launches a shooting
// star and closes the menu.
func (a *App) click(col, row int, x, y float64) {
	if a.character.Bounds().Contains(x, y) {
		a.character.Click()
		return
	}
	if h, ok := a.hitAt(col, row); ok {
		if h.fn != nil {
			h.fn()
		}
		return
	}
	if a.focus != focusNone {
		a.setFocus(focusNone)
	}
	a.nav.ClickOutside()
	a.stars.Click(x, y)
}
