package layout

import "github.com/cssterm/cssterm/style"

// layoutBlockChildren stacks n's children vertically, each filling the
// available content width modulo explicit sizing; heights are
// content-sized unless set. Margins do not collapse: each child's top
// margin always adds distance from the previous child's bottom edge.
func layoutBlockChildren(n *node, contentW, contentH, x, y int, clip Rect, z int) ([]*LaidElement, int) {
	var out []*LaidElement
	curY := y
	for _, child := range n.kids {
		if child.cs.Display == style.DisplayNone {
			continue
		}
		if child.cs.Position == style.PositionAbsolute || child.cs.Position == style.PositionFixed {
			out = append(out, layoutPositioned(child, x, y, contentW, contentH, clip, z))
			continue
		}
		mTop, _ := child.cs.Margin.Top.Resolve(contentH, true)
		mLeft, _ := child.cs.Margin.Left.Resolve(contentW, true)
		mRight, _ := child.cs.Margin.Right.Resolve(contentW, true)
		mBottom, _ := child.cs.Margin.Bottom.Resolve(contentH, true)

		childX := x + mLeft
		childY := curY + mTop
		childAvailW := contentW - mLeft - mRight
		if childAvailW < 0 {
			childAvailW = 0
		}
		remainingH := contentH - (childY - y)
		if remainingH < 0 {
			remainingH = 0
		}

		le := layoutNode(child, childX, childY, childAvailW, remainingH, clip, z)
		out = append(out, le)
		curY = le.Rect.Y + le.Rect.H + mBottom
	}
	return out, curY - y
}

// layoutPositioned places an absolutely or fixed positioned child inside
// the container box its parent's layout hands it (the parent's content
// box), honoring top/right/bottom/left insets when present; left wins
// over right and top over bottom. Both position kinds use that same box:
// the nearest positioned ancestor's padding box is not looked up, and
// fixed children are not placed against the viewport.
func layoutPositioned(child *node, containerX, containerY, containerW, containerH int, clip Rect, z int) *LaidElement {
	w, ok := child.cs.Width.Resolve(containerW, true)
	if !ok {
		w = MaxContentWidth(child.el.Text)
	}
	h, ok := child.cs.Height.Resolve(containerH, true)
	if !ok {
		h = len(WrapText(child.el.Text, maxInt(w, 1)))
	}

	x := containerX
	y := containerY
	if l, ok := child.cs.Left.Resolve(containerW, true); ok {
		x = containerX + l
	} else if r, ok := child.cs.Right.Resolve(containerW, true); ok {
		x = containerX + containerW - w - r
	}
	if t, ok := child.cs.Top.Resolve(containerH, true); ok {
		y = containerY + t
	} else if b, ok := child.cs.Bottom.Resolve(containerH, true); ok {
		y = containerY + containerH - h - b
	}

	promotedZ := z
	if child.cs.ZIndex != 0 {
		promotedZ = z + child.cs.ZIndex
	}
	return layoutNode(child, x, y, w, h, clip, promotedZ)
}
