package render

import (
	"sort"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/cssterm/cssterm/basement"
	"github.com/cssterm/cssterm/layout"
	"github.com/cssterm/cssterm/style"
)

// markupAttr marks a text leaf whose content should be run through the
// inline emphasis parser instead of painted as a single plain run.
const markupAttr = "data-markup"

// langAttr names the lexer a text leaf's content should be tokenized
// with before painting, e.g. data-lang="go".
const langAttr = "data-lang"

// Rasterizer paints a LaidElement tree into a Buffer: background, border,
// padding-box text and children, each clipped to its own clip rect.
type Rasterizer struct{}

// Paint flattens the nested LaidElement tree into paint order (parent
// before children, then stably sorted by Z so promoted z-bands come last)
// and renders each element's own paintable surface once; paintOne does
// not recurse, since flatten has already listed every descendant.
func (Rasterizer) Paint(buf *Buffer, root *layout.LaidElement) {
	var order []*layout.LaidElement
	flatten(root, &order)
	sort.SliceStable(order, func(i, j int) bool { return order[i].Z < order[j].Z })
	for _, le := range order {
		paintOne(buf, le)
	}
}

func flatten(le *layout.LaidElement, out *[]*layout.LaidElement) {
	if le == nil {
		return
	}
	*out = append(*out, le)
	for _, c := range le.Children {
		flatten(c, out)
	}
}

func paintOne(buf *Buffer, le *layout.LaidElement) {
	cs := le.Style
	if cs.Display == style.DisplayNone {
		return
	}
	rect := le.Rect.Intersect(le.Clip)
	if rect.Empty() {
		return
	}

	if cs.Background.IsSet() {
		fillBackground(buf, le, rect)
	}
	if cs.BorderStyle != style.BorderNone {
		paintBorder(buf, le, rect)
	}
	if len(le.Lines) > 0 {
		paintText(buf, le, rect)
	}
}

func fillBackground(buf *Buffer, le *layout.LaidElement, rect layout.Rect) {
	cs := le.Style
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		for x := rect.X; x < rect.X+rect.W; x++ {
			cell := buf.Get(x, y)
			cell.Char = ' '
			cell.Width = 1
			cell.Continuation = false
			cell.Bg = cs.Background
			applyFlags(&cell, cs)
			buf.Set(x, y, cell)
		}
	}
}

func paintBorder(buf *Buffer, le *layout.LaidElement, clip layout.Rect) {
	cs := le.Style
	glyphs, ok := glyphsFor(cs.BorderStyle)
	if !ok {
		return
	}
	r := le.Rect
	if r.W < 2 || r.H < 2 {
		return
	}
	fg := cs.BorderColor
	if !fg.IsSet() {
		fg = cs.Color
	}
	put := func(x, y int, ch rune) {
		if x < clip.X || x >= clip.X+clip.W || y < clip.Y || y >= clip.Y+clip.H {
			return
		}
		cell := Cell{Char: ch, Width: 1, Fg: fg, Bg: cs.Background}
		applyFlags(&cell, cs)
		buf.Set(x, y, cell)
	}
	top, bottom := r.Y, r.Y+r.H-1
	left, right := r.X, r.X+r.W-1
	put(left, top, glyphs.TopLeft)
	put(right, top, glyphs.TopRight)
	put(left, bottom, glyphs.BottomLeft)
	put(right, bottom, glyphs.BottomRight)
	for x := left + 1; x < right; x++ {
		put(x, top, glyphs.Top)
		put(x, bottom, glyphs.Bottom)
	}
	for y := top + 1; y < bottom; y++ {
		put(left, y, glyphs.Left)
		put(right, y, glyphs.Right)
	}
}

func paintText(buf *Buffer, le *layout.LaidElement, clip layout.Rect) {
	cs := le.Style
	pad := cs.Padding
	border := 0
	if cs.BorderStyle != style.BorderNone {
		border = 1
	}
	padT, _ := pad.Top.Resolve(le.Rect.H, true)
	padL, _ := pad.Left.Resolve(le.Rect.W, true)
	padR, _ := pad.Right.Resolve(le.Rect.W, true)

	originX := le.Rect.X + padL + border
	originY := le.Rect.Y + padT + border
	contentW := le.Rect.W - padL - padR - 2*border

	markup := le.El != nil && le.El.HasAttr(markupAttr)
	lang, highlighted := "", false
	if le.El != nil {
		lang, highlighted = le.El.Attr(langAttr)
	}

	for row, line := range le.Lines {
		y := originY + row
		if y < clip.Y || y >= clip.Y+clip.H {
			continue
		}

		var spans []basement.Span
		useSpans := markup || highlighted
		switch {
		case markup:
			spans = basement.Flatten(line)
		case highlighted:
			spans = HighlightSpans(line, lang)
		}

		rowW := runewidth.StringWidth(line)
		if useSpans {
			rowW = 0
			for _, s := range spans {
				rowW += runewidth.StringWidth(s.Text)
			}
		}
		x := originX + textAlignOffset(cs.TextAlign, contentW, rowW)

		if useSpans {
			paintSpans(buf, spans, x, y, clip, cs)
			continue
		}
		gr := uniseg.NewGraphemes(line)
		for gr.Next() {
			cluster := gr.Str()
			w := runewidth.StringWidth(cluster)
			if w <= 0 {
				w = 1
			}
			if x < clip.X || x >= clip.X+clip.W {
				x += w
				continue
			}
			if x+w > clip.X+clip.W {
				// Wide glyph at the clip edge: blank instead of split.
				blankCell := Cell{Char: ' ', Width: 1, Fg: cs.Color, Bg: cs.Background}
				applyFlags(&blankCell, cs)
				buf.Set(x, y, blankCell)
				break
			}
			runes := []rune(cluster)
			head := Cell{Char: runes[0], Width: uint8(w), Fg: cs.Color, Bg: cs.Background}
			applyFlags(&head, cs)
			buf.Set(x, y, head)
			if w == 2 {
				cont := Cell{Width: 0, Continuation: true, Fg: cs.Color, Bg: cs.Background}
				applyFlags(&cont, cs)
				buf.Set(x+1, y, cont)
			}
			x += w
		}
	}
}

// textAlignOffset returns how far a row of the given rendered width
// should be shifted right within a content box of contentWidth cells.
// A row already at or past the box's width never shifts, even under
// center/right alignment.
func textAlignOffset(align style.TextAlign, contentWidth, rowWidth int) int {
	if rowWidth >= contentWidth {
		return 0
	}
	switch align {
	case style.TextAlignCenter:
		return (contentWidth - rowWidth) / 2
	case style.TextAlignRight:
		return contentWidth - rowWidth
	default:
		return 0
	}
}

// paintSpans paints a sequence of styled spans (inline emphasis markup
// or syntax-highlight tokens) starting at (x, y), each with its own
// typographic flags and, if set, its own color layered over the
// element's computed fg/bg. Word wrap runs on the raw row text before
// spans are computed, so markup/lexer syntax still occupies columns —
// acceptable for the single-line and single-statement widgets this
// feeds.
func paintSpans(buf *Buffer, spans []basement.Span, x, y int, clip layout.Rect, cs style.ComputedStyle) int {
	for _, span := range spans {
		fg, bg := cs.Color, cs.Background
		if span.Fg.IsSet() {
			fg = span.Fg
		}
		if span.Bg.IsSet() {
			bg = span.Bg
		}
		gr := uniseg.NewGraphemes(span.Text)
		for gr.Next() {
			cluster := gr.Str()
			w := runewidth.StringWidth(cluster)
			if w <= 0 {
				w = 1
			}
			if x < clip.X || x >= clip.X+clip.W {
				x += w
				continue
			}
			if x+w > clip.X+clip.W {
				blankCell := Cell{Char: ' ', Width: 1, Fg: fg, Bg: bg}
				applySpanFlags(&blankCell, span, cs)
				buf.Set(x, y, blankCell)
				return x + w
			}
			runes := []rune(cluster)
			head := Cell{Char: runes[0], Width: uint8(w), Fg: fg, Bg: bg}
			applySpanFlags(&head, span, cs)
			buf.Set(x, y, head)
			if w == 2 {
				cont := Cell{Width: 0, Continuation: true, Fg: fg, Bg: bg}
				applySpanFlags(&cont, span, cs)
				buf.Set(x+1, y, cont)
			}
			x += w
		}
	}
	return x
}

func applySpanFlags(c *Cell, span basement.Span, cs style.ComputedStyle) {
	c.Bold = cs.FontWeight == style.FontWeightBold || span.Bold
	c.Italic = cs.Italic || span.Italic
	c.Underline = cs.Underline || span.Underline
	c.Strike = cs.Strike || span.Strike
	c.Dim = cs.Dim || span.Dim
	c.Blink = cs.Blink || span.Blink
	c.Reverse = cs.Reverse || span.Reverse
}

func applyFlags(c *Cell, cs style.ComputedStyle) {
	c.Bold = cs.FontWeight == style.FontWeightBold
	c.Italic = cs.Italic
	c.Underline = cs.Underline
	c.Strike = cs.Strike
	c.Dim = cs.Dim
	c.Blink = cs.Blink
	c.Reverse = cs.Reverse
}
