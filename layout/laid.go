package layout

import (
	"github.com/cssterm/cssterm/element"
	"github.com/cssterm/cssterm/style"
)

// LaidElement is a computed-style reference bound to an absolute
// character-cell rectangle, plus the clip rect inherited from ancestors,
// a paint-order z-depth, and the element it came from.
type LaidElement struct {
	El    *element.Element
	Style style.ComputedStyle
	Rect  Rect
	Clip  Rect
	Z     int

	// Lines holds this element's own text, already word-wrapped to its
	// content box width, one entry per visual row.
	Lines []string

	Children []*LaidElement
}

// StyleLookup resolves the already-cascaded ComputedStyle for an element
// within the current frame's tree.
type StyleLookup func(el *element.Element) style.ComputedStyle

// node is the internal scratch state layoutNode works from for one
// element: the element, its computed style, and its child nodes.
// computedW/H, childRects and lines are not filled in by the layout pass.
type node struct {
	el    *element.Element
	cs    style.ComputedStyle
	kids  []*node

	computedW, computedH int
	childRects           []Rect // content-box-relative
	lines                []string
}

func buildNode(el *element.Element, lookup StyleLookup) *node {
	n := &node{el: el, cs: lookup(el)}
	if n.cs.Display == style.DisplayNone {
		return n
	}
	for _, c := range el.Children {
		n.kids = append(n.kids, buildNode(c, lookup))
	}
	return n
}

func (n *node) contentBox(outerW, outerH int) (w, h, offX, offY int) {
	pad := n.cs.Padding
	border := 0
	if n.cs.BorderStyle != style.BorderNone {
		border = 1
	}
	padT, _ := pad.Top.Resolve(outerH, true)
	padR, _ := pad.Right.Resolve(outerW, true)
	padB, _ := pad.Bottom.Resolve(outerH, true)
	padL, _ := pad.Left.Resolve(outerW, true)

	w = outerW - padL - padR - 2*border
	h = outerH - padT - padB - 2*border
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	offX = padL + border
	offY = padT + border
	return
}
