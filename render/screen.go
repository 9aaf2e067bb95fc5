package render

import "io"

// Screen owns the two buffers for a running frame loop and the Differ
// used to flush one into the terminal: Back is drawn into each frame,
// Front mirrors what the terminal currently shows.
type Screen struct {
	Front, Back *Buffer
	differ      *Differ
	out         io.Writer

	forceFullRedraw bool
}

// NewScreen creates a Screen of the given size writing to out, with
// colors downgraded per mode.
func NewScreen(width, height int, out io.Writer, mode ColorMode) *Screen {
	return &Screen{
		Front:           NewBuffer(width, height),
		Back:            NewBuffer(width, height),
		differ:          NewDiffer(mode),
		out:             out,
		forceFullRedraw: true,
	}
}

// Clear blanks the back buffer in preparation for a new frame's paint.
func (s *Screen) Clear() {
	s.Back.Fill(blank)
}

// Resize grows or shrinks both buffers and forces the next Flush to
// repaint every cell, matching the "full redraw on viewport resize"
// requirement.
func (s *Screen) Resize(width, height int) {
	s.Front.Resize(width, height)
	s.Back.Resize(width, height)
	s.forceFullRedraw = true
}

// ForceFullRedraw marks the next Flush as a full redraw, used on resume
// from suspend or after a theme/stylesheet version jump.
func (s *Screen) ForceFullRedraw() {
	s.forceFullRedraw = true
}

// Flush diffs Back against Front and writes the resulting escape
// sequence batch, then clears the pending full-redraw flag.
func (s *Screen) Flush() (int, error) {
	full := s.forceFullRedraw
	n, err := s.differ.Flush(s.out, s.Back, s.Front, full)
	if err == nil {
		s.forceFullRedraw = false
	}
	return n, err
}
