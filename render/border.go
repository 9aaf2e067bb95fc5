package render

import "github.com/cssterm/cssterm/style"

// borderGlyphs holds the nine glyphs one border style table supplies:
// four corners, four sides, and one four-way join used where a border meets an
// interior divider (reserved for future widget use; the rasterizer
// itself only ever needs the corners and sides).
type borderGlyphs struct {
	TopLeft, TopRight, BottomLeft, BottomRight rune
	Top, Right, Bottom, Left                   rune
	Join                                       rune
}

var borderTables = map[style.BorderStyle]borderGlyphs{
	style.BorderSingle: {
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
		Top: '─', Right: '│', Bottom: '─', Left: '│', Join: '┼',
	},
	style.BorderDouble: {
		TopLeft: '╔', TopRight: '╗', BottomLeft: '╚', BottomRight: '╝',
		Top: '═', Right: '║', Bottom: '═', Left: '║', Join: '╬',
	},
	style.BorderThick: {
		TopLeft: '┏', TopRight: '┓', BottomLeft: '┗', BottomRight: '┛',
		Top: '━', Right: '┃', Bottom: '━', Left: '┃', Join: '╋',
	},
	style.BorderRounded: {
		TopLeft: '╭', TopRight: '╮', BottomLeft: '╰', BottomRight: '╯',
		Top: '─', Right: '│', Bottom: '─', Left: '│', Join: '┼',
	},
	style.BorderDashed: {
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
		Top: '╌', Right: '╎', Bottom: '╌', Left: '╎', Join: '┼',
	},
	style.BorderDotted: {
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
		Top: '┄', Right: '┆', Bottom: '┄', Left: '┆', Join: '┼',
	},
	style.BorderBlockLight: {
		TopLeft: '░', TopRight: '░', BottomLeft: '░', BottomRight: '░',
		Top: '░', Right: '░', Bottom: '░', Left: '░', Join: '░',
	},
	style.BorderBlockSolid: {
		TopLeft: '█', TopRight: '█', BottomLeft: '█', BottomRight: '█',
		Top: '█', Right: '█', Bottom: '█', Left: '█', Join: '█',
	},
	style.BorderASCII: {
		TopLeft: '+', TopRight: '+', BottomLeft: '+', BottomRight: '+',
		Top: '-', Right: '|', Bottom: '-', Left: '|', Join: '+',
	},
}

func glyphsFor(bs style.BorderStyle) (borderGlyphs, bool) {
	g, ok := borderTables[bs]
	return g, ok
}
