package render

import (
	"io"
	"strconv"

	"github.com/cssterm/cssterm/theme"
)

// Differ compares a back buffer against a front buffer and writes the
// minimal sequence of terminal escapes needed to make the terminal match
// the back buffer, coalescing contiguous same-style cells into one
// move+SGR+text write. Its scratch buffers are reused across frames so a
// frame's diff does not allocate per cell.
type Differ struct {
	mode ColorMode
	out  []byte
	pos  []byte
}

// ColorMode re-exports theme.ColorMode so callers need not import theme
// directly just to configure a Differ.
type ColorMode = theme.ColorMode

// NewDiffer creates a Differ that downgrades colors to mode before
// emitting SGR sequences.
func NewDiffer(mode ColorMode) *Differ {
	return &Differ{mode: mode, out: make([]byte, 0, 4096), pos: make([]byte, 0, 32)}
}

// Flush writes the cells that differ between back and front (or, when
// full is true, every cell) to w, then copies back into front so the two
// buffers compare equal afterward. It returns the number of bytes
// written.
func (d *Differ) Flush(w io.Writer, back, front *Buffer, full bool) (int, error) {
	d.out = d.out[:0]
	w2, h := back.Width, back.Height

	curX, curY := -1, -1
	styleActive := false
	var lastStyle Cell

	for y := 0; y < h; y++ {
		x := 0
		for x < w2 {
			bc := back.Get(x, y)
			if bc.Continuation {
				x++
				continue
			}
			if !full && bc == front.Get(x, y) {
				x++
				continue
			}

			runStart := x
			runStyle := bc
			var text []rune
			for x < w2 {
				c := back.Get(x, y)
				if c.Continuation {
					x++
					continue
				}
				if !full && c == front.Get(x, y) {
					break
				}
				if !c.SameStyle(runStyle) {
					break
				}
				ch := c.Char
				if ch == 0 {
					ch = ' '
				}
				text = append(text, ch)
				front.Set(x, y, c)
				if c.Width == 2 && x+1 < w2 {
					front.Set(x+1, y, back.Get(x+1, y))
				}
				x += maxInt(int(c.Width), 1)
			}

			if curX != runStart || curY != y {
				d.writeCursorPos(y+1, runStart+1)
				curX, curY = runStart, y
			}
			if !styleActive || !runStyle.SameStyle(lastStyle) {
				if styleActive {
					d.out = append(d.out, "\x1b[0m"...)
				}
				d.writeSGR(runStyle)
				lastStyle = runStyle
				styleActive = true
			}
			d.out = append(d.out, string(text)...)
			curX += len(text)
		}
	}

	if styleActive {
		d.out = append(d.out, "\x1b[0m"...)
	}
	if len(d.out) == 0 {
		return 0, nil
	}
	return w.Write(d.out)
}

func (d *Differ) writeCursorPos(row, col int) {
	d.pos = d.pos[:0]
	d.pos = append(d.pos, '\x1b', '[')
	d.pos = strconv.AppendInt(d.pos, int64(row), 10)
	d.pos = append(d.pos, ';')
	d.pos = strconv.AppendInt(d.pos, int64(col), 10)
	d.pos = append(d.pos, 'H')
	d.out = append(d.out, d.pos...)
}

func (d *Differ) writeSGR(c Cell) {
	d.out = append(d.out, "\x1b["...)
	first := true
	emit := func(code string) {
		if !first {
			d.out = append(d.out, ';')
		}
		d.out = append(d.out, code...)
		first = false
	}
	if c.Bold {
		emit("1")
	}
	if c.Dim {
		emit("2")
	}
	if c.Italic {
		emit("3")
	}
	if c.Underline {
		emit("4")
	}
	if c.Blink {
		emit("5")
	}
	if c.Reverse {
		emit("7")
	}
	if c.Strike {
		emit("9")
	}
	if c.Fg.IsSet() {
		emit(colorParams(c.Fg, d.mode, true))
	}
	if c.Bg.IsSet() {
		emit(colorParams(c.Bg, d.mode, false))
	}
	d.out = append(d.out, 'm')
}

func colorParams(c theme.Color, mode ColorMode, fg bool) string {
	switch mode {
	case theme.ColorMode256:
		idx := theme.RGBToANSI256(c)
		if fg {
			return "38;5;" + strconv.Itoa(idx)
		}
		return "48;5;" + strconv.Itoa(idx)
	case theme.ColorMode16:
		idx := theme.RGBToANSI16(c)
		code := 30 + idx
		if idx >= 8 {
			code = 90 + (idx - 8)
		}
		if !fg {
			code += 10
		}
		return strconv.Itoa(code)
	default:
		rgb := strconv.Itoa(int(c.R)) + ";" + strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B))
		if fg {
			return "38;2;" + rgb
		}
		return "48;2;" + rgb
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
