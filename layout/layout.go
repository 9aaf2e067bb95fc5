package layout

import (
	"github.com/cssterm/cssterm/element"
	"github.com/cssterm/cssterm/style"
)

// Layout computes the absolute LaidElement tree for root against a
// viewport of the given size, dispatching block/flex/grid per element by
// its ComputedStyle.Display.
func Layout(root *element.Element, lookup StyleLookup, viewport Rect) *LaidElement {
	n := buildNode(root, lookup)
	return layoutNode(n, viewport.X, viewport.Y, viewport.W, viewport.H, viewport, 0)
}

// layoutNode resolves n's outer box within (availW, availH), recurses
// into its children per its display mode, and returns the finished
// LaidElement positioned at (x, y).
func layoutNode(n *node, x, y, availW, availH int, clip Rect, z int) *LaidElement {
	cs := n.cs
	if cs.Display == style.DisplayNone {
		return &LaidElement{El: n.el, Style: cs, Rect: Rect{X: x, Y: y}, Clip: clip, Z: z}
	}

	outerW, outerH := resolveOuterSize(n, availW, availH)
	boxContentW, boxContentH, offX, offY := n.contentBox(outerW, outerH)

	le := &LaidElement{El: n.el, Style: cs, Z: z}

	var lines []string
	if n.el.HasText {
		lines = WrapText(n.el.Text, maxInt(boxContentW, 1))
		if len(lines) > boxContentH && boxContentH > 0 && !cs.Height.IsAuto() {
			lines = lines[:boxContentH]
		}
	}
	le.Lines = lines

	var childrenUsedH int
	switch cs.Display {
	case style.DisplayFlex:
		le.Children, childrenUsedH = layoutFlex(n, boxContentW, boxContentH, x+offX, y+offY, clip, z+1)
	case style.DisplayGrid:
		le.Children, childrenUsedH = layoutGrid(n, boxContentW, boxContentH, x+offX, y+offY, clip, z+1)
	default: // block and inline both stack vertically at this level of fidelity
		le.Children, childrenUsedH = layoutBlockChildren(n, boxContentW, boxContentH, x+offX, y+offY, clip, z+1)
	}

	if cs.Height.IsAuto() {
		pad := cs.Padding
		padT, _ := pad.Top.Resolve(outerH, true)
		padB, _ := pad.Bottom.Resolve(outerH, true)
		border := 0
		if cs.BorderStyle != style.BorderNone {
			border = 1
		}
		h := maxInt(childrenUsedH, len(lines))
		outerH = h + padT + padB + 2*border
		boxContentH = h
	}

	le.Rect = Rect{X: x, Y: y, W: outerW, H: outerH}

	ownClip := clip
	if cs.Overflow != style.OverflowVisible {
		ownClip = clip.Intersect(Rect{X: x + offX, Y: y + offY, W: boxContentW, H: boxContentH})
	}
	le.Clip = ownClip

	return le
}

func resolveOuterSize(n *node, availW, availH int) (int, int) {
	cs := n.cs
	w, ok := cs.Width.Resolve(availW, true)
	if !ok {
		w = availW
	}
	h, ok := cs.Height.Resolve(availH, true)
	if !ok {
		h = availH
	}
	if minW, ok := cs.MinWidth.Resolve(availW, true); ok && w < minW {
		w = minW
	}
	if maxW, ok := cs.MaxWidth.Resolve(availW, true); ok && w > maxW {
		w = maxW
	}
	if minH, ok := cs.MinHeight.Resolve(availH, true); ok && h < minH {
		h = minH
	}
	if maxH, ok := cs.MaxHeight.Resolve(availH, true); ok && h > maxH {
		h = maxH
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
