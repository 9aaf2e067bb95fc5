// Package render implements the rasterizer (walking a laid-out element
// tree into a cell grid) and the damage/diff writer that turns two
// buffers into a minimal sequence of terminal writes.
package render

import "github.com/cssterm/cssterm/theme"

// Cell is one character cell: a grapheme-cluster-width aware rune slot
// plus resolved fg/bg color and typography bits. A cell is always fully
// specified — there is no "inherit" at the grid level.
type Cell struct {
	Char rune
	// Width is 1 for a normal cell, 2 for a wide-grapheme head, 0 for a
	// continuation cell trailing a wide head.
	Width        uint8
	Continuation bool

	Fg, Bg theme.Color

	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Dim       bool
	Blink     bool
	Reverse   bool
}

// blank is the default cell: a space on the zero-value (unset) colors.
var blank = Cell{Char: ' ', Width: 1}

// SameStyle reports whether two cells would emit identical SGR bytes,
// ignoring the character itself. The diff writer uses this to decide
// whether a style-reset escape is needed between runs.
func (c Cell) SameStyle(o Cell) bool {
	return c.Fg == o.Fg && c.Bg == o.Bg &&
		c.Bold == o.Bold && c.Italic == o.Italic && c.Underline == o.Underline &&
		c.Strike == o.Strike && c.Dim == o.Dim && c.Blink == o.Blink && c.Reverse == o.Reverse
}

// Buffer is a 2-D grid of Cells. There are exactly two buffers in a
// running Screen: front (what the terminal shows) and back (what the
// next frame builds).
type Buffer struct {
	Width, Height int
	Cells         []Cell
}

// NewBuffer allocates a buffer of the given size, filled with blanks.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{Width: width, Height: height, Cells: make([]Cell, width*height)}
	b.Fill(blank)
	return b
}

// Fill overwrites every cell with c.
func (b *Buffer) Fill(c Cell) {
	for i := range b.Cells {
		b.Cells[i] = c
	}
}

// Set writes a cell at (x, y). Out-of-bounds writes are silently
// clipped, matching the rasterizer's "out-of-bounds paint is clipped"
// error policy.
func (b *Buffer) Set(x, y int, c Cell) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	b.Cells[y*b.Width+x] = c
}

// Get returns the cell at (x, y), or the zero Cell if out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return Cell{}
	}
	return b.Cells[y*b.Width+x]
}

// Resize grows or shrinks the buffer in place, preserving the
// overlapping region and blanking any newly exposed cells.
func (b *Buffer) Resize(width, height int) {
	newCells := make([]Cell, width*height)
	for i := range newCells {
		newCells[i] = blank
	}
	minH := minInt(height, b.Height)
	minW := minInt(width, b.Width)
	for y := 0; y < minH; y++ {
		copy(newCells[y*width:y*width+minW], b.Cells[y*b.Width:y*b.Width+minW])
	}
	b.Width, b.Height = width, height
	b.Cells = newCells
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
