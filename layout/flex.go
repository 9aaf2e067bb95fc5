package layout

import "github.com/cssterm/cssterm/style"

type flexItem struct {
	n     *node
	basis int
	grow  float32
	shrink float32
}

// layoutFlex distributes n's children along the main axis given by
// flex-direction, growing/shrinking from their flex-basis to fill or fit
// available main-axis space, and positions the cross axis per
// align-items (overridable per item by align-self). flex-wrap splits
// overflowing items onto additional lines stacked along the cross axis.
func layoutFlex(n *node, contentW, contentH, x, y int, clip Rect, z int) ([]*LaidElement, int) {
	row := n.cs.FlexDirection == style.FlexRow || n.cs.FlexDirection == style.FlexRowReverse
	reverse := n.cs.FlexDirection == style.FlexRowReverse || n.cs.FlexDirection == style.FlexColumnReverse

	mainSize := contentW
	crossSize := contentH
	if !row {
		mainSize, crossSize = contentH, contentW
	}

	gap, _ := n.cs.Gap.Resolve(mainSize, true)
	if row && !n.cs.ColumnGap.IsAuto() {
		if g, ok := n.cs.ColumnGap.Resolve(mainSize, true); ok {
			gap = g
		}
	}
	if !row && !n.cs.RowGap.IsAuto() {
		if g, ok := n.cs.RowGap.Resolve(mainSize, true); ok {
			gap = g
		}
	}

	var items []flexItem
	for _, child := range n.kids {
		if child.cs.Display == style.DisplayNone {
			continue
		}
		if child.cs.Position == style.PositionAbsolute || child.cs.Position == style.PositionFixed {
			continue
		}
		items = append(items, flexItem{n: child, grow: child.cs.FlexGrow, shrink: child.cs.FlexShrink, basis: itemBasis(child, row, mainSize, crossSize)})
	}

	lines := splitIntoLines(items, mainSize, gap, n.cs.FlexWrap == style.FlexWrapOn)

	var out []*LaidElement
	curCross := 0
	totalCross := 0
	for _, line := range lines {
		lineCrossUsed, laid := layoutFlexLine(n, line, row, reverse, mainSize, crossSize, gap, x, y, curCross, clip, z)
		out = append(out, laid...)
		curCross += lineCrossUsed + gap
		totalCross += lineCrossUsed
	}
	if len(lines) > 1 {
		totalCross += gap * (len(lines) - 1)
	}

	// Absolutely/fixed-positioned children still participate in paint
	// order relative to their containing block.
	for _, child := range n.kids {
		if child.cs.Position == style.PositionAbsolute || child.cs.Position == style.PositionFixed {
			out = append(out, layoutPositioned(child, x, y, contentW, contentH, clip, z))
		}
	}

	if row {
		return out, totalCross
	}
	return out, mainUsed(lines, gap)
}

func mainUsed(lines [][]flexItem, gap int) int {
	max := 0
	for _, line := range lines {
		sum := 0
		for i, it := range line {
			sum += it.basis
			if i > 0 {
				sum += gap
			}
		}
		if sum > max {
			max = sum
		}
	}
	return max
}

func itemBasis(child *node, row bool, mainSize, crossSize int) int {
	basis := child.cs.FlexBasis
	if !basis.IsAuto() {
		if b, ok := basis.Resolve(mainSize, true); ok {
			return b
		}
	}
	if row {
		if w, ok := child.cs.Width.Resolve(mainSize, true); ok {
			return w
		}
		return MaxContentWidth(child.el.Text)
	}
	if h, ok := child.cs.Height.Resolve(mainSize, true); ok {
		return h
	}
	return len(WrapText(child.el.Text, maxInt(crossSize, 1)))
}

func splitIntoLines(items []flexItem, mainSize, gap int, wrap bool) [][]flexItem {
	if !wrap || len(items) == 0 {
		return [][]flexItem{items}
	}
	var lines [][]flexItem
	var cur []flexItem
	used := 0
	for _, it := range items {
		add := it.basis
		if len(cur) > 0 {
			add += gap
		}
		if len(cur) > 0 && used+add > mainSize {
			lines = append(lines, cur)
			cur = nil
			used = 0
			add = it.basis
		}
		cur = append(cur, it)
		used += add
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

func layoutFlexLine(n *node, items []flexItem, row, reverse bool, mainSize, crossSize, gap int, originX, originY, crossOffset int, clip Rect, z int) (int, []*LaidElement) {
	totalBasis := 0
	totalGrow := float32(0)
	totalShrink := float32(0)
	for i, it := range items {
		totalBasis += it.basis
		if i > 0 {
			totalBasis += gap
		}
		totalGrow += it.grow
		totalShrink += it.shrink
	}
	free := mainSize - totalBasis

	sizes := make([]int, len(items))
	for i, it := range items {
		size := it.basis
		if free > 0 && totalGrow > 0 {
			size += int(float32(free) * it.grow / totalGrow)
		} else if free < 0 && totalShrink > 0 {
			size += int(float32(free) * it.shrink / totalShrink)
		}
		if size < 0 {
			size = 0
		}
		sizes[i] = size
	}

	usedMain := 0
	for i, s := range sizes {
		usedMain += s
		if i > 0 {
			usedMain += gap
		}
	}

	startOffset, between := justifyOffsets(n.cs.Justify, mainSize, usedMain, len(items), gap)

	var out []*LaidElement
	lineCross := 0
	cursor := startOffset
	order := makeOrder(len(items), reverse)
	for idx, i := range order {
		it := items[i]
		size := sizes[i]
		crossAlign := n.cs.AlignItems
		if it.n.cs.AlignSelf != nil {
			crossAlign = *it.n.cs.AlignSelf
		}

		var childX, childY, childW, childH int
		if row {
			childW = size
			childH = crossSize
			if crossAlign != style.AlignStretch {
				childH = itemCrossSize(it.n, false, crossSize)
			}
			childX = originX + cursor
			childY = originY + crossOffset + alignOffset(crossAlign, crossSize, childH)
		} else {
			childH = size
			childW = crossSize
			if crossAlign != style.AlignStretch {
				childW = itemCrossSize(it.n, true, crossSize)
			}
			childY = originY + cursor
			childX = originX + crossOffset + alignOffset(crossAlign, crossSize, childW)
		}

		le := layoutNode(it.n, childX, childY, childW, childH, clip, z)
		out = append(out, le)

		if row {
			if le.Rect.H > lineCross {
				lineCross = le.Rect.H
			}
		} else {
			if le.Rect.W > lineCross {
				lineCross = le.Rect.W
			}
		}

		cursor += size
		if idx < len(order)-1 {
			cursor += gap + between
		}
	}
	return lineCross, out
}

func makeOrder(n int, reverse bool) []int {
	out := make([]int, n)
	for i := range out {
		if reverse {
			out[i] = n - 1 - i
		} else {
			out[i] = i
		}
	}
	return out
}

func itemCrossSize(n *node, row bool, crossSize int) int {
	if row {
		if w, ok := n.cs.Width.Resolve(crossSize, true); ok {
			return w
		}
	} else {
		if h, ok := n.cs.Height.Resolve(crossSize, true); ok {
			return h
		}
	}
	return crossSize
}

func alignOffset(align style.AlignItems, crossSize, itemSize int) int {
	switch align {
	case style.AlignEnd:
		return crossSize - itemSize
	case style.AlignCenter:
		return (crossSize - itemSize) / 2
	default:
		return 0
	}
}

func justifyOffsets(j style.Justify, mainSize, used, count, gap int) (start, between int) {
	free := mainSize - used
	if free <= 0 || count == 0 {
		return 0, 0
	}
	switch j {
	case style.JustifyEnd:
		return free, 0
	case style.JustifyCenter:
		return free / 2, 0
	case style.JustifySpaceBetween:
		if count > 1 {
			return 0, free / (count - 1)
		}
		return 0, 0
	case style.JustifySpaceAround:
		return free / (count * 2), free / count
	default:
		return 0, 0
	}
}
