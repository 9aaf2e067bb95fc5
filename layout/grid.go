package layout

import "github.com/cssterm/cssterm/style"

type gridPlacement struct {
	n                  *node
	col, row           int // 0-based
	colSpan, rowSpan   int
}

// layoutGrid places n's children onto the tracks named by
// grid-template-columns/rows, sharing leftover space among `fr` tracks
// after fixed tracks and gaps are subtracted, auto-placing items that
// don't specify grid-column/grid-row row-by-row left-to-right.
func layoutGrid(n *node, contentW, contentH, x, y int, clip Rect, z int) ([]*LaidElement, int) {
	colTracks := n.cs.GridTemplateColumns
	if len(colTracks) == 0 {
		colTracks = []style.Length{style.FrUnit(1)}
	}
	colGap, _ := n.cs.ColumnGap.Resolve(contentW, true)
	if colGap == 0 {
		colGap, _ = n.cs.Gap.Resolve(contentW, true)
	}
	rowGap, _ := n.cs.RowGap.Resolve(contentH, true)
	if rowGap == 0 {
		rowGap, _ = n.cs.Gap.Resolve(contentH, true)
	}

	colWidths := resolveTracks(colTracks, contentW, colGap)

	var placements []gridPlacement
	cursorCol, cursorRow := 0, 0
	maxRow := 0
	for _, child := range n.kids {
		if child.cs.Display == style.DisplayNone {
			continue
		}
		if child.cs.Position == style.PositionAbsolute || child.cs.Position == style.PositionFixed {
			continue
		}
		col, colSpan := trackRange(child.cs.GridColumn, len(colTracks))
		if col < 0 {
			col = cursorCol
		}
		row, rowSpan := trackRange(child.cs.GridRow, 0)
		if row < 0 {
			row = cursorRow
		}
		placements = append(placements, gridPlacement{n: child, col: col, row: row, colSpan: colSpan, rowSpan: rowSpan})

		cursorCol = col + colSpan
		if cursorCol >= len(colTracks) {
			cursorCol = 0
			cursorRow = row + rowSpan
		}
		if row+rowSpan-1 > maxRow {
			maxRow = row + rowSpan - 1
		}
	}

	rowTracks := n.cs.GridTemplateRows
	var rowHeights []int
	if len(rowTracks) > 0 {
		rowHeights = resolveTracks(rowTracks, contentH, rowGap)
	} else {
		rowHeights = measureAutoRows(placements, colWidths, colGap, maxRow+1)
	}

	colOffsets := trackOffsets(colWidths, colGap)
	rowOffsets := trackOffsets(rowHeights, rowGap)

	var out []*LaidElement
	for _, p := range placements {
		cw := spanSize(colWidths, p.col, p.colSpan, colGap)
		ch := spanSize(rowHeights, p.row, p.rowSpan, rowGap)
		cx := x + offsetAt(colOffsets, p.col)
		cy := y + offsetAt(rowOffsets, p.row)
		out = append(out, layoutNode(p.n, cx, cy, cw, ch, clip, z))
	}

	for _, child := range n.kids {
		if child.cs.Position == style.PositionAbsolute || child.cs.Position == style.PositionFixed {
			out = append(out, layoutPositioned(child, x, y, contentW, contentH, clip, z))
		}
	}

	used := 0
	for i, h := range rowHeights {
		used += h
		if i > 0 {
			used += rowGap
		}
	}
	return out, used
}

// resolveTracks resolves a track list against basis, distributing
// leftover space (after fixed tracks and gaps) proportionally among `fr`
// tracks.
func resolveTracks(tracks []style.Length, basis, gap int) []int {
	sizes := make([]int, len(tracks))
	fixed := 0
	totalFr := float32(0)
	for i, t := range tracks {
		if t.Kind == style.LengthFr {
			totalFr += t.Fr
			continue
		}
		if n, ok := t.Resolve(basis, true); ok {
			sizes[i] = n
			fixed += n
		}
	}
	if len(tracks) > 1 {
		fixed += gap * (len(tracks) - 1)
	}
	free := basis - fixed
	if free < 0 {
		free = 0
	}
	for i, t := range tracks {
		if t.Kind == style.LengthFr && totalFr > 0 {
			sizes[i] = int(float32(free) * t.Fr / totalFr)
		}
	}
	return sizes
}

func trackOffsets(sizes []int, gap int) []int {
	offsets := make([]int, len(sizes))
	cur := 0
	for i, s := range sizes {
		offsets[i] = cur
		cur += s + gap
	}
	return offsets
}

func offsetAt(offsets []int, idx int) int {
	if idx < 0 || idx >= len(offsets) {
		if len(offsets) == 0 {
			return 0
		}
		return offsets[len(offsets)-1]
	}
	return offsets[idx]
}

func spanSize(sizes []int, start, span, gap int) int {
	total := 0
	for i := start; i < start+span && i < len(sizes); i++ {
		if i > start {
			total += gap
		}
		total += sizes[i]
	}
	if total == 0 && len(sizes) > 0 {
		return sizes[len(sizes)-1]
	}
	return total
}

// trackRange parses a ComputedStyle grid-column/grid-row pair (1-based
// start/end lines) into a 0-based start index and span. A zero start
// means "auto" (caller should auto-place).
func trackRange(line [2]int, trackCount int) (start, span int) {
	if line[0] == 0 {
		return -1, 1
	}
	start = line[0] - 1
	if line[1] > line[0] {
		span = line[1] - line[0]
	} else {
		span = 1
	}
	return start, span
}

func measureAutoRows(placements []gridPlacement, colWidths []int, colGap, rowCount int) []int {
	heights := make([]int, rowCount)
	for _, p := range placements {
		cw := spanSize(colWidths, p.col, p.colSpan, colGap)
		h := len(WrapText(p.n.el.Text, maxInt(cw, 1)))
		if h < 1 {
			h = 1
		}
		for r := p.row; r < p.row+p.rowSpan && r < rowCount; r++ {
			if h > heights[r] {
				heights[r] = h
			}
		}
	}
	return heights
}
