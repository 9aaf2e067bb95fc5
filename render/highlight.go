package render

import (
	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/lexers"

	"github.com/cssterm/cssterm/basement"
	"github.com/cssterm/cssterm/theme"
)

// HighlightSpans tokenizes code with the named language's lexer (falling
// back to plain-text tokenizing when lang is empty or unknown) and maps
// each token's category onto a fixed color, independent of whatever 256
// or true-color palette the token's chroma style entry carries, since a
// token's category reads reliably in any terminal while an arbitrary RGB
// value may not.
func HighlightSpans(code, lang string) []basement.Span {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return []basement.Span{{Text: code, Dim: true}}
	}

	var spans []basement.Span
	for _, tok := range iterator.Tokens() {
		spans = append(spans, spanFor(tok))
	}
	return spans
}

func spanFor(tok chroma.Token) basement.Span {
	named := func(name string) theme.Color {
		c, _ := theme.ParseColor(name)
		return c
	}
	sp := basement.Span{Text: tok.Value}
	switch tok.Type.Category() {
	case chroma.Keyword:
		sp.Fg = named("magenta")
		sp.Bold = true
	case chroma.LiteralString:
		sp.Fg = named("green")
	case chroma.LiteralNumber:
		sp.Fg = named("cyan")
	case chroma.Comment:
		sp.Fg = named("grey")
		sp.Dim = true
	}
	return sp
}
