package app

import (
	"context"
	"io"
	"time"

	"github.com/tomz197/portfolio/internal/draw"
	"github.com/tomz197/portfolio/internal/input"
)

// Run is the session loop: read input, advance the timers, draw, sleep
// until the next frame. It returns when the visitor quits, the reader is
// exhausted, the session idles out or ctx is done.
func (a *App) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	cw := draw.NewChunkWriter(w)
	stream := input.StartStream(r)
	frame := a.cfg.FrameInterval()

	draw.EnterAltScreen(w)
	draw.HideCursor(w)
	if a.cfg.Mouse {
		draw.EnableMouse(w)
	}
	draw.ClearScreen(w)
	defer func() {
		if a.cfg.Mouse {
			draw.DisableMouse(w)
		}
		draw.ShowCursor(w)
		draw.ExitAltScreen(w)
	}()

	a.logger.Info("session started", "cols", a.canvas.Cols(), "rows", a.canvas.Rows())
	for a.running {
		frameStart := a.clock()
		if ctx.Err() != nil {
			a.logger.Info("session cancelled")
			break
		}

		in := input.ReadInput(stream)
		if in.Closed {
			a.running = false
		}
		a.checkResize(cw)
		a.Step(frameStart, in.Events)

		a.canvas.Render(cw)
		if err := cw.Flush(); err != nil {
			return err
		}

		if elapsed := a.clock().Sub(frameStart); elapsed < frame {
			select {
			case <-ctx.Done():
			case <-time.After(frame - elapsed):
			}
		}
	}
	a.logger.Info("session ended")
	return nil
}

// Step runs one frame at now: events, timers, visibility and drawing. It
// does not write to the terminal.
func (a *App) Step(now time.Time, events []input.Event) {
	a.sched.Advance(now)
	if len(events) > 0 {
		a.lastInput = now
		a.inactive = false
	}
	for _, ev := range events {
		a.handleEvent(ev)
	}
	a.checkIdle(now)

	a.tracker.Update(a.ScrollY(), float64(a.canvas.Rows()*CellH))
	a.sched.Advance(now)

	a.drawFrame(now)
	if !a.loaded {
		a.loaded = true
		a.loading.Loaded()
	}
}

// checkIdle ends idle sessions and warns for the last quarter.
func (a *App) checkIdle(now time.Time) {
	limit := a.opts.IdleTimeout
	if limit <= 0 {
		return
	}
	idle := now.Sub(a.lastInput)
	switch {
	case idle >= limit:
		a.logger.Info("disconnecting idle session", "idle", idle)
		a.running = false
	case idle >= limit*3/4:
		a.inactive = true
	}
}

// checkResize follows the terminal size. A size change clears the screen
// so stale cells do not linger.
func (a *App) checkResize(cw *draw.ChunkWriter) {
	cols, rows, err := a.opts.TermSize()
	if err != nil || cols <= 0 || rows <= 0 {
		return
	}
	if a.Resize(cols, rows) {
		cw.WriteString("\033[H\033[2J")
	}
}

// Resize changes the terminal size and reports whether it changed.
func (a *App) Resize(cols, rows int) bool {
	if cols == a.canvas.Cols() && rows == a.canvas.Rows() {
		return false
	}
	a.canvas.Resize(cols, rows)
	a.canvas.ForceRedraw()
	w, h := a.canvas.Size()
	a.stars.Resize(w, h)
	a.relayout()
	a.character.SetBounds(a.characterBounds())
	a.logger.Debug("resized", "cols", cols, "rows", rows)
	return true
}
