package basement

import "github.com/cssterm/cssterm/theme"

// Span is one run of uniformly-styled text from a flattened inline
// markup string. A text leaf carrying the bare six-character inline
// syntax (**bold**, *italic*, __underline__, ~~strike~~, #color(...),
// !#color(...)) renders as a sequence of these instead of one plain run.
type Span struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Dim       bool
	Blink     bool
	Reverse   bool
	Fg        theme.Color
	Bg        theme.Color
}

// ansiToName reverses GetColorCode so a span's ANSI color string can be
// turned back into a theme.Color via the normal color resolver.
var ansiToName = map[string]string{
	"\x1b[30m": "black",
	"\x1b[31m": "red",
	"\x1b[32m": "green",
	"\x1b[34m": "blue",
	"\x1b[35m": "magenta",
	"\x1b[36m": "cyan",
	"\x1b[37m": "white",
	"\x1b[33m": "yellow",
	"\x1b[90m": "grey",
}

// Flatten parses the single-line inline markup subset of text (block
// syntax — headers, lists, quotes, code fences — is not meaningful for a
// one-line leaf and is rendered as literal text) into styled spans, with
// nested emphasis folded down the tree: `**__x__**` emits one Bold+Underline
// span, not two nested ones.
func Flatten(text string) []Span {
	nodes := parseInline(text)
	var out []Span
	flattenInto(nodes, Style{}, &out)
	return out
}

func flattenInto(nodes []*Node, inherited Style, out *[]Span) {
	for _, n := range nodes {
		switch n.Type {
		case NodeText:
			if n.Content == "" {
				continue
			}
			*out = append(*out, styleToSpan(inherited, n.Content))
		case NodeHole:
			*out = append(*out, styleToSpan(inherited, "%v"))
		case NodeStyle:
			merged := mergeStyle(inherited, n.Style)
			flattenInto(n.Children, merged, out)
		}
	}
}

// mergeStyle ORs boolean flags and lets a nested color override an
// inherited one.
func mergeStyle(base, add Style) Style {
	base.Bold = base.Bold || add.Bold
	base.Italic = base.Italic || add.Italic
	base.Underline = base.Underline || add.Underline
	base.Strike = base.Strike || add.Strike
	base.Dim = base.Dim || add.Dim
	base.Blink = base.Blink || add.Blink
	base.Reverse = base.Reverse || add.Reverse
	if add.Color != "" {
		base.Color = add.Color
	}
	if add.BgColor != "" {
		base.BgColor = add.BgColor
	}
	return base
}

func styleToSpan(s Style, text string) Span {
	sp := Span{
		Text:      text,
		Bold:      s.Bold,
		Italic:    s.Italic,
		Underline: s.Underline,
		Strike:    s.Strike,
		Dim:       s.Dim,
		Blink:     s.Blink,
		Reverse:   s.Reverse,
	}
	if name, ok := ansiToName[s.Color]; ok {
		if c, ok := theme.ParseColor(name); ok {
			sp.Fg = c
		}
	}
	if name, ok := ansiToName[s.BgColor]; ok {
		if c, ok := theme.ParseColor(name); ok {
			sp.Bg = c
		}
	}
	return sp
}
