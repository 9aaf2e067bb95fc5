package driver

import (
	"strconv"
	"strings"
	"time"
)

// csiTimeout bounds how long the decoder waits for the remaining bytes
// of an escape sequence before giving up; the partial sequence is
// discarded and no event is emitted for it.
const csiTimeout = 50 * time.Millisecond

// escTimeout is how long a bare ESC byte waits for a follow-up byte
// before being reported as the Esc key rather than folded into Alt+key.
const escTimeout = 10 * time.Millisecond

// Decoder turns a byte stream into Events. It owns no goroutines itself;
// Run is meant to be launched as the sole reader of rawCh, mirroring the
// single-reader discipline that keeps the underlying stdin reader
// race-free.
type Decoder struct{}

// Run decodes bytes from rawCh into out until rawCh closes (reported as
// a ShutdownEvent) or done fires. It never closes out; the Driver does.
func (Decoder) Run(rawCh <-chan byte, out chan<- Event, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case b, ok := <-rawCh:
			if !ok {
				out <- ShutdownEvent{}
				return
			}
			if b == 0x1b {
				processEsc(rawCh, out)
			} else {
				processChar(b, out)
			}
		}
	}
}

func processChar(b byte, out chan<- Event) {
	switch {
	case b == 0x0d:
		out <- KeyEvent{Code: KeyEnter}
	case b == 0x09:
		out <- KeyEvent{Code: KeyTab}
	case b == 0x08:
		out <- KeyEvent{Code: KeyBackspace}
	case b == 0x7f:
		out <- KeyEvent{Code: KeyBackspace}
	case b <= 0x1f:
		out <- KeyEvent{Code: KeyChar, Rune: rune(b + 0x60), Mod: ModCtrl}
	default:
		out <- KeyEvent{Code: KeyChar, Rune: rune(b)}
	}
}

func processEsc(rawCh <-chan byte, out chan<- Event) {
	select {
	case next, ok := <-rawCh:
		if !ok {
			out <- KeyEvent{Code: KeyEsc}
			return
		}
		switch next {
		case '[':
			parseCSI(rawCh, out)
		case 'O':
			parseSS3(rawCh, out)
		default:
			out <- KeyEvent{Code: KeyChar, Rune: rune(next), Mod: ModAlt}
		}
	case <-time.After(escTimeout):
		out <- KeyEvent{Code: KeyEsc}
	}
}

func readByteTimeout(rawCh <-chan byte, timeout time.Duration) (byte, bool) {
	select {
	case b, ok := <-rawCh:
		return b, ok
	case <-time.After(timeout):
		return 0, false
	}
}

// parseCSI consumes a CSI sequence's parameter bytes (0x30-0x3F) up to
// and including its final byte (0x40-0x7E), then dispatches on it. A
// bracketed-paste start ("200~") switches into raw paste collection
// instead of emitting a key.
func parseCSI(rawCh <-chan byte, out chan<- Event) {
	var params []byte
	for {
		b, ok := readByteTimeout(rawCh, csiTimeout)
		if !ok {
			return
		}
		if b >= 0x40 && b <= 0x7e {
			dispatchCSI(params, b, rawCh, out)
			return
		}
		params = append(params, b)
	}
}

func dispatchCSI(params []byte, final byte, rawCh <-chan byte, out chan<- Event) {
	p := string(params)

	if len(p) > 0 && p[0] == '<' && (final == 'M' || final == 'm') {
		if ev, ok := parseSGRMouse(p[1:], final == 'M'); ok {
			out <- ev
		}
		return
	}

	switch final {
	case 'A':
		out <- KeyEvent{Code: KeyArrowUp}
	case 'B':
		out <- KeyEvent{Code: KeyArrowDown}
	case 'C':
		out <- KeyEvent{Code: KeyArrowRight}
	case 'D':
		out <- KeyEvent{Code: KeyArrowLeft}
	case 'H':
		out <- KeyEvent{Code: KeyHome}
	case 'F':
		out <- KeyEvent{Code: KeyEnd}
	case 'I':
		out <- FocusGainedEvent{}
	case 'O':
		out <- FocusLostEvent{}
	case '~':
		key := p
		if i := strings.IndexByte(p, ';'); i >= 0 {
			key = p[:i]
		}
		if key == "200" {
			collectPaste(rawCh, out)
			return
		}
		dispatchTilde(key, out)
	}
}

func dispatchTilde(key string, out chan<- Event) {
	switch key {
	case "1":
		out <- KeyEvent{Code: KeyHome}
	case "2":
		out <- KeyEvent{Code: KeyInsert}
	case "3":
		out <- KeyEvent{Code: KeyDelete}
	case "4":
		out <- KeyEvent{Code: KeyEnd}
	case "5":
		out <- KeyEvent{Code: KeyPgUp}
	case "6":
		out <- KeyEvent{Code: KeyPgDown}
	case "15":
		out <- KeyEvent{Code: KeyF5}
	case "17":
		out <- KeyEvent{Code: KeyF6}
	case "18":
		out <- KeyEvent{Code: KeyF7}
	case "19":
		out <- KeyEvent{Code: KeyF8}
	case "20":
		out <- KeyEvent{Code: KeyF9}
	case "21":
		out <- KeyEvent{Code: KeyF10}
	case "23":
		out <- KeyEvent{Code: KeyF11}
	case "24":
		out <- KeyEvent{Code: KeyF12}
	}
}

func parseSS3(rawCh <-chan byte, out chan<- Event) {
	b, ok := readByteTimeout(rawCh, csiTimeout)
	if !ok {
		return
	}
	switch b {
	case 'A':
		out <- KeyEvent{Code: KeyArrowUp}
	case 'B':
		out <- KeyEvent{Code: KeyArrowDown}
	case 'C':
		out <- KeyEvent{Code: KeyArrowRight}
	case 'D':
		out <- KeyEvent{Code: KeyArrowLeft}
	case 'P':
		out <- KeyEvent{Code: KeyF1}
	case 'Q':
		out <- KeyEvent{Code: KeyF2}
	case 'R':
		out <- KeyEvent{Code: KeyF3}
	case 'S':
		out <- KeyEvent{Code: KeyF4}
	case 'H':
		out <- KeyEvent{Code: KeyHome}
	case 'F':
		out <- KeyEvent{Code: KeyEnd}
	}
}

// parseSGRMouse decodes the "Cb;Cx;Cy" body of an SGR mouse report. press
// is true for the 'M' final byte, false for 'm' (release).
func parseSGRMouse(body string, press bool) (MouseEvent, bool) {
	parts := strings.Split(body, ";")
	if len(parts) != 3 {
		return MouseEvent{}, false
	}
	cb, err1 := strconv.Atoi(parts[0])
	x, err2 := strconv.Atoi(parts[1])
	y, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return MouseEvent{}, false
	}

	ev := MouseEvent{X: x - 1, Y: y - 1}
	if cb&4 != 0 {
		ev.Mod |= ModShift
	}
	if cb&8 != 0 {
		ev.Mod |= ModAlt
	}
	if cb&16 != 0 {
		ev.Mod |= ModCtrl
	}

	drag := cb&32 != 0
	button := cb &^ (4 | 8 | 16 | 32)

	switch {
	case button >= 64:
		ev.Button = MouseWheelUp
		if button == 65 {
			ev.Button = MouseWheelDown
		}
		ev.Action = MousePress
	case drag:
		ev.Action = MouseDrag
		ev.Button = buttonFromCode(button)
	case !press:
		ev.Action = MouseRelease
		ev.Button = buttonFromCode(button)
	case button == 3:
		ev.Action = MouseMove
		ev.Button = MouseNone
	default:
		ev.Action = MousePress
		ev.Button = buttonFromCode(button)
	}
	return ev, true
}

func buttonFromCode(b int) MouseButton {
	switch b {
	case 0:
		return MouseLeft
	case 1:
		return MouseMiddle
	case 2:
		return MouseRight
	default:
		return MouseNone
	}
}

// collectPaste reads raw bytes until the "ESC [ 201 ~" terminator and
// emits the accumulated text as one PasteEvent.
func collectPaste(rawCh <-chan byte, out chan<- Event) {
	var buf []byte
	const term = "\x1b[201~"
	for {
		b, ok := readByteTimeout(rawCh, 2*time.Second)
		if !ok {
			break
		}
		buf = append(buf, b)
		if len(buf) >= len(term) && string(buf[len(buf)-len(term):]) == term {
			buf = buf[:len(buf)-len(term)]
			break
		}
	}
	out <- PasteEvent(buf)
}
