// Package input turns the raw terminal byte stream into key and SGR mouse
// events.
package input

import (
	"io"
	"strconv"
	"unicode/utf8"
)

// Key identifies a key press.
type Key int

const (
	KeyNone Key = iota
	// KeyRune is a printable character, see Event.Rune.
	KeyRune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPgUp
	KeyPgDn
	KeyHome
	KeyEnd
	KeyEnter
	KeyTab
	KeyBackTab
	KeyBackspace
	KeyDelete
	KeyEscape
	KeyCtrlC
)

// MouseAction is what the pointer did.
type MouseAction int

const (
	MouseMove MouseAction = iota
	MousePress
	MouseRelease
	MouseWheelUp
	MouseWheelDown
)

// Event is one key press or mouse report. Mouse cells are zero based.
type Event struct {
	Key  Key
	Rune rune

	Mouse  bool
	Action MouseAction
	Button int
	Col    int
	Row    int
}

// Input is everything read since the previous frame.
type Input struct {
	Events []Event
	// Closed is set once the reader is exhausted.
	Closed bool
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch      chan []byte
	pending []byte
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends chunks to the
// stream.
func StartStream(r io.Reader) *Stream {
	s := &Stream{ch: make(chan []byte, 64)}
	go func() {
		buf := make([]byte, 256)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				s.ch <- append([]byte(nil), buf[:n]...)
			}
			if err != nil {
				close(s.ch)
				return
			}
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream without blocking.
// An escape sequence split across reads is kept for the next call.
func ReadInput(s *Stream) Input {
	buf := s.pending
drain:
	for !s.closed {
		select {
		case chunk, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, chunk...)
		default:
			break drain
		}
	}
	events, rest := Parse(buf)
	if s.closed {
		rest = nil
	}
	s.pending = append(s.pending[:0:0], rest...)
	return Input{Events: events, Closed: s.closed}
}

// Parse decodes buf into events. The returned rest is an incomplete
// sequence or rune at the end of buf. A lone ESC at the end is the Escape
// key.
func Parse(buf []byte) (events []Event, rest []byte) {
	for i := 0; i < len(buf); {
		b := buf[i]
		if b == 0x1b {
			ev, n, ok := parseEscape(buf[i:])
			if !ok {
				return events, buf[i:]
			}
			if ev.Key != KeyNone || ev.Mouse {
				events = append(events, ev)
			}
			i += n
			continue
		}
		if b < 0x20 || b == 0x7f {
			if k := control(b); k != KeyNone {
				events = append(events, Event{Key: k})
			}
			i++
			continue
		}
		if !utf8.FullRune(buf[i:]) {
			return events, buf[i:]
		}
		r, n := utf8.DecodeRune(buf[i:])
		if r != utf8.RuneError {
			events = append(events, Event{Key: KeyRune, Rune: r})
		}
		i += n
	}
	return events, nil
}

func control(b byte) Key {
	switch b {
	case 0x03:
		return KeyCtrlC
	case '\r', '\n':
		return KeyEnter
	case '\t':
		return KeyTab
	case '\b', 0x7f:
		return KeyBackspace
	}
	return KeyNone
}

// parseEscape decodes the sequence at the start of buf. ok is false when
// the sequence is incomplete.
func parseEscape(buf []byte) (ev Event, n int, ok bool) {
	if len(buf) == 1 {
		return Event{Key: KeyEscape}, 1, true
	}
	switch buf[1] {
	case '[':
		return parseCSI(buf)
	case 'O':
		if len(buf) < 3 {
			return Event{}, 0, false
		}
		return Event{Key: cursorKey(buf[2])}, 3, true
	}
	// Alt+key arrives as ESC followed by the key: both are reported.
	return Event{Key: KeyEscape}, 1, true
}

func cursorKey(b byte) Key {
	switch b {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	case 'H':
		return KeyHome
	case 'F':
		return KeyEnd
	}
	return KeyNone
}

// maxCSIParams bounds the parameter bytes of a CSI sequence. Longer
// sequences are dropped.
const maxCSIParams = 32

// parseCSI decodes ESC [ params final. A byte outside 0x20-0x7e, or more
// than maxCSIParams parameter bytes, drops the sequence read so far and
// parsing resumes at that byte.
func parseCSI(buf []byte) (Event, int, bool) {
	end := -1
	for j := 2; j < len(buf); j++ {
		if buf[j] >= 0x40 && buf[j] <= 0x7e {
			end = j
			break
		}
		if buf[j] < 0x20 || buf[j] > 0x7e || j-2 >= maxCSIParams {
			return Event{}, j, true
		}
	}
	if end < 0 {
		return Event{}, 0, false
	}
	params := buf[2:end]
	final := buf[end]
	n := end + 1

	if len(params) > 0 && params[0] == '<' && (final == 'M' || final == 'm') {
		ev, _ := parseSGRMouse(params[1:], final == 'm')
		return ev, n, true
	}
	switch final {
	case 'Z':
		return Event{Key: KeyBackTab}, n, true
	case '~':
		switch string(params) {
		case "1", "7":
			return Event{Key: KeyHome}, n, true
		case "4", "8":
			return Event{Key: KeyEnd}, n, true
		case "3":
			return Event{Key: KeyDelete}, n, true
		case "5":
			return Event{Key: KeyPgUp}, n, true
		case "6":
			return Event{Key: KeyPgDn}, n, true
		}
		return Event{}, n, true
	}
	return Event{Key: cursorKey(final)}, n, true
}

// parseSGRMouse decodes "b;x;y" of an SGR 1006 report.
func parseSGRMouse(p []byte, release bool) (Event, bool) {
	var nums [3]int
	field := 0
	start := 0
	for j := 0; j <= len(p); j++ {
		if j < len(p) && p[j] != ';' {
			continue
		}
		if field > 2 {
			return Event{}, false
		}
		v, err := strconv.Atoi(string(p[start:j]))
		if err != nil {
			return Event{}, false
		}
		nums[field] = v
		field++
		start = j + 1
	}
	if field != 3 {
		return Event{}, false
	}
	code := nums[0]
	ev := Event{Mouse: true, Button: code & 3, Col: nums[1] - 1, Row: nums[2] - 1}
	switch {
	case code&64 != 0:
		ev.Action = MouseWheelUp
		if code&1 != 0 {
			ev.Action = MouseWheelDown
		}
		ev.Button = 0
	case code&32 != 0:
		ev.Action = MouseMove
	case release:
		ev.Action = MouseRelease
	default:
		ev.Action = MousePress
	}
	return ev, true
}
