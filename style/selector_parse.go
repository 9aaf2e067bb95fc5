package style

import (
	"strings"
)

// splitSelectorList splits a selector-list text on top-level commas (not
// nested inside [] or ()).
func splitSelectorList(text string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range text {
		switch r {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, text[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, text[start:])
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// selectorToken is an intermediate compound-text chunk plus the
// combinator that preceded it (CombinatorSubject for the first chunk).
type selectorToken struct {
	text       string
	combinator CombinatorKind
}

// tokenizeSelector splits a single selector chain into compound chunks
// joined by descendant/child/adjacent-sibling combinators, respecting
// bracket nesting so `[data-x="a b"]` and `:nth-child(2n+1)` are not
// mistaken for combinators.
func tokenizeSelector(text string) []selectorToken {
	var tokens []selectorToken
	depth := 0
	var buf strings.Builder
	pendingCombinator := CombinatorSubject
	first := true

	flush := func() {
		t := strings.TrimSpace(buf.String())
		buf.Reset()
		if t == "" {
			return
		}
		comb := pendingCombinator
		if first {
			comb = CombinatorSubject
			first = false
		}
		tokens = append(tokens, selectorToken{text: t, combinator: comb})
		pendingCombinator = CombinatorDescendant
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '[', '(':
			depth++
			buf.WriteRune(r)
		case ']', ')':
			depth--
			buf.WriteRune(r)
		case '>':
			if depth == 0 {
				flush()
				pendingCombinator = CombinatorChild
			} else {
				buf.WriteRune(r)
			}
		case '+':
			if depth == 0 {
				flush()
				pendingCombinator = CombinatorAdjacent
			} else {
				buf.WriteRune(r)
			}
		case ' ', '\t', '\n', '\r':
			if depth == 0 {
				flush()
			} else {
				buf.WriteRune(r)
			}
		default:
			buf.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// parseCompound parses a single compound-selector chunk like
// `div#box.warn.big[disabled]:hover` into its parts.
func parseCompound(text string) (CompoundSelector, bool) {
	var c CompoundSelector
	runes := []rune(text)
	i := 0
	n := len(runes)

	readIdent := func() string {
		start := i
		for i < n {
			r := runes[i]
			if r == '.' || r == '#' || r == '[' || r == ':' {
				break
			}
			i++
		}
		return string(runes[start:i])
	}

	if i < n && runes[i] == '*' {
		c.Universal = true
		i++
	} else {
		ident := readIdent()
		if ident != "" {
			c.Tag = ident
		}
	}

	for i < n {
		switch runes[i] {
		case '.':
			i++
			start := i
			for i < n && runes[i] != '.' && runes[i] != '#' && runes[i] != '[' && runes[i] != ':' {
				i++
			}
			if i == start {
				return c, false
			}
			c.Classes = append(c.Classes, string(runes[start:i]))
		case '#':
			i++
			start := i
			for i < n && runes[i] != '.' && runes[i] != '#' && runes[i] != '[' && runes[i] != ':' {
				i++
			}
			if i == start {
				return c, false
			}
			c.ID = string(runes[start:i])
		case '[':
			end := indexRune(runes, i, ']')
			if end < 0 {
				return c, false
			}
			body := string(runes[i+1 : end])
			attr, ok := parseAttrSelector(body)
			if !ok {
				return c, false
			}
			c.Attrs = append(c.Attrs, attr)
			i = end + 1
		case ':':
			i++
			start := i
			for i < n && runes[i] != '.' && runes[i] != '#' && runes[i] != '[' && runes[i] != ':' && runes[i] != '(' {
				i++
			}
			name := string(runes[start:i])
			arg := ""
			if i < n && runes[i] == '(' {
				end := indexRune(runes, i, ')')
				if end < 0 {
					return c, false
				}
				arg = string(runes[i+1 : end])
				i = end + 1
			}
			if !validPseudo(name) {
				return c, false
			}
			c.Pseudos = append(c.Pseudos, PseudoSelector{Name: name, Arg: arg})
		default:
			// Unexpected leftover character (malformed selector).
			return c, false
		}
	}
	return c, true
}

func indexRune(runes []rune, from int, target rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}

func parseAttrSelector(body string) (AttrSelector, bool) {
	body = strings.TrimSpace(body)
	if body == "" {
		return AttrSelector{}, false
	}
	if idx := strings.Index(body, "="); idx >= 0 {
		name := strings.TrimSpace(body[:idx])
		val := strings.TrimSpace(body[idx+1:])
		val = strings.Trim(val, `"'`)
		if name == "" {
			return AttrSelector{}, false
		}
		return AttrSelector{Name: name, Op: AttrEquals, Value: val}, true
	}
	return AttrSelector{Name: body, Op: AttrPresence}, true
}

var validPseudoNames = map[string]bool{
	"hover": true, "focus": true, "active": true, "disabled": true,
	"first-child": true, "last-child": true, "nth-child": true, "root": true,
}

func validPseudo(name string) bool {
	return validPseudoNames[name]
}

// ParseSelector parses a full selector chain (one comma-group entry).
// An invalid selector drops the whole rule, so ok is false if any
// compound fails to parse.
func ParseSelector(text string) (Selector, bool) {
	raw := text
	toks := tokenizeSelector(text)
	if len(toks) == 0 {
		return Selector{}, false
	}
	sel := Selector{Raw: raw}
	for _, t := range toks {
		compound, ok := parseCompound(t.text)
		if !ok {
			return Selector{}, false
		}
		compound.Combinator = t.combinator
		sel.Parts = append(sel.Parts, compound)
	}
	return sel, true
}
