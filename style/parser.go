package style

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser turns CSS source text into a Stylesheet plus any diagnostics.
// It implements the accepted grammar subset: selectors,
// @media/@import/@theme at-rules, and property:value declarations
// including custom properties.
type Parser struct {
	file   string
	src    []rune
	pos    int
	line   int
	col    int
	errs   []*ParseError
	imports []ImportDirective
}

// NewParser creates a Parser for src, attributing diagnostics to file.
func NewParser(src, file string) *Parser {
	return &Parser{src: []rune(src), file: file, line: 1, col: 1}
}

// Parse runs the parser to completion and returns the stylesheet, the
// collected import directives, and any parse errors (non-fatal — the
// offending rule is simply dropped).
func (p *Parser) Parse() (*Stylesheet, []ImportDirective, []*ParseError) {
	sheet := &Stylesheet{Source: string(p.src)}
	order := 0

	for {
		p.skipWhitespaceAndComments()
		if p.eof() {
			break
		}
		if p.peek() == '@' {
			p.parseAtRule(sheet, &order, nil)
			continue
		}
		rules, ok := p.parseQualifiedRule(nil, &order)
		if ok {
			sheet.Rules = append(sheet.Rules, rules...)
		}
	}
	return sheet, p.imports, p.errs
}

func (p *Parser) eof() bool { return p.pos >= len(p.src) }

func (p *Parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *Parser) advance() rune {
	r := p.src[p.pos]
	p.pos++
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return r
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errs = append(p.errs, &ParseError{
		File: p.file, Line: p.line, Column: p.col,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *Parser) skipWhitespaceAndComments() {
	for !p.eof() {
		r := p.peek()
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			p.advance()
			continue
		}
		if r == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '*' {
			p.advance()
			p.advance()
			for !p.eof() {
				if p.peek() == '*' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '/' {
					p.advance()
					p.advance()
					break
				}
				p.advance()
			}
			continue
		}
		break
	}
}

// readUntil consumes runes until one of stop is seen at bracket depth 0,
// returning the consumed text (not including the stop rune).
func (p *Parser) readUntil(stop ...rune) string {
	var sb strings.Builder
	depth := 0
	for !p.eof() {
		r := p.peek()
		if depth == 0 {
			for _, s := range stop {
				if r == s {
					return sb.String()
				}
			}
		}
		switch r {
		case '{', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
		}
		sb.WriteRune(p.advance())
	}
	return sb.String()
}

// readBlock consumes a balanced `{ ... }` block (the opening brace must be
// the current rune) and returns its inner text.
func (p *Parser) readBlock() (string, bool) {
	if p.peek() != '{' {
		return "", false
	}
	p.advance() // {
	start := p.pos
	depth := 1
	for !p.eof() {
		r := p.peek()
		if r == '{' {
			depth++
		} else if r == '}' {
			depth--
			if depth == 0 {
				inner := string(p.src[start:p.pos])
				p.advance() // }
				return inner, true
			}
		}
		p.advance()
	}
	return string(p.src[start:p.pos]), false // unterminated
}

func (p *Parser) parseQualifiedRule(media *MediaQuery, order *int) ([]Rule, bool) {
	selText := p.readUntil('{', '}', ';')
	p.skipWhitespaceAndComments()
	if p.eof() || p.peek() != '{' {
		if !p.eof() {
			p.advance() // drop stray ';' or '}'
		}
		p.errorf("expected '{' after selector %q", strings.TrimSpace(selText))
		return nil, false
	}
	body, terminated := p.readBlock()
	if !terminated {
		p.errorf("unterminated rule body")
	}
	decls := parseDeclarations(body)

	selTexts := splitSelectorList(selText)
	if len(selTexts) == 0 {
		p.errorf("empty selector")
		return nil, false
	}

	var rules []Rule
	for _, st := range selTexts {
		sel, ok := ParseSelector(st)
		if !ok {
			p.errorf("invalid selector %q, rule dropped", st)
			continue
		}
		rules = append(rules, Rule{
			Selector:     sel,
			Declarations: decls,
			Media:        media,
			Order:        *order,
		})
		*order++
	}
	return rules, len(rules) > 0
}

func (p *Parser) parseAtRule(sheet *Stylesheet, order *int, media *MediaQuery) {
	p.advance() // '@'
	name := p.readIdent()
	p.skipWhitespaceAndComments()

	switch name {
	case "import":
		line := p.line
		rest := p.readUntil(';', '}')
		path := strings.Trim(strings.TrimSpace(rest), `"'`)
		if !p.eof() && p.peek() == ';' {
			p.advance()
		}
		if path == "" {
			p.errorf("empty @import path")
			return
		}
		p.imports = append(p.imports, ImportDirective{Path: path, Line: line})

	case "media":
		cond := strings.TrimSpace(p.readUntil('{'))
		mq, ok := parseMediaQuery(cond)
		if !ok {
			p.errorf("unparseable @media condition %q", cond)
			// Still consume the block so parsing can continue.
			p.readBlock()
			return
		}
		body, terminated := p.readBlock()
		if !terminated {
			p.errorf("unterminated @media block")
		}
		inner := NewParser(body, p.file)
		inner.line = p.line
		for {
			inner.skipWhitespaceAndComments()
			if inner.eof() {
				break
			}
			if inner.peek() == '@' {
				inner.parseAtRule(sheet, order, &mq)
				continue
			}
			rules, ok := inner.parseQualifiedRule(&mq, order)
			if ok {
				sheet.Rules = append(sheet.Rules, rules...)
			}
		}
		p.errs = append(p.errs, inner.errs...)
		p.imports = append(p.imports, inner.imports...)

	case "theme":
		// Shorthand for a `:root { ... }` custom-property block.
		body, terminated := p.readBlock()
		if !terminated {
			p.errorf("unterminated @theme block")
		}
		decls := parseDeclarations(body)
		rootSel, _ := ParseSelector(":root")
		sheet.Rules = append(sheet.Rules, Rule{
			Selector:     rootSel,
			Declarations: decls,
			Media:        media,
			Order:        *order,
		})
		*order++

	default:
		p.errorf("unknown at-rule @%s, ignored", name)
		if !p.eof() && p.peek() == '{' {
			p.readBlock()
		} else {
			p.readUntil(';')
			if !p.eof() {
				p.advance()
			}
		}
	}
}

func (p *Parser) readIdent() string {
	start := p.pos
	for !p.eof() {
		r := p.peek()
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			p.advance()
		} else {
			break
		}
	}
	return string(p.src[start:p.pos])
}

// parseDeclarations parses the inside of a `{ ... }` block into
// Declarations, tolerating a trailing declaration without a semicolon and
// dropping (with no cross-contamination) any single malformed entry.
func parseDeclarations(body string) []Declaration {
	var decls []Declaration
	for _, stmt := range splitDeclarations(body) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		idx := strings.Index(stmt, ":")
		if idx < 0 {
			continue // unparseable value/property pair — dropped
		}
		prop := strings.TrimSpace(stmt[:idx])
		val := strings.TrimSpace(stmt[idx+1:])
		if prop == "" || val == "" {
			continue
		}
		important := false
		if strings.HasSuffix(val, "!important") {
			important = true
			val = strings.TrimSpace(strings.TrimSuffix(val, "!important"))
		} else if strings.Contains(val, "! important") {
			important = true
			val = strings.TrimSpace(strings.Replace(val, "! important", "", 1))
		}
		if val == "" {
			continue
		}
		decls = append(decls, Declaration{Property: prop, Value: val, Important: important})
	}
	return decls
}

// splitDeclarations splits a declaration block on top-level semicolons,
// respecting nested parens (e.g. `rgba(0,0,0,.5)`, `var(--x, 1)`).
func splitDeclarations(body string) []string {
	var out []string
	depth := 0
	start := 0
	runes := []rune(body)
	for i, r := range runes {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ';':
			if depth == 0 {
				out = append(out, string(runes[start:i]))
				start = i + 1
			}
		}
	}
	out = append(out, string(runes[start:]))
	return out
}

func parseMediaQuery(cond string) (MediaQuery, bool) {
	cond = strings.TrimSpace(cond)
	cond = strings.TrimPrefix(cond, "(")
	// Split on "and" at top level (parens are balanced per-clause here
	// since the accepted grammar only allows simple conditions).
	clauses := strings.Split(cond, "and")
	var mq MediaQuery
	any := false
	for _, clause := range clauses {
		clause = strings.TrimSpace(clause)
		clause = strings.TrimPrefix(clause, "(")
		clause = strings.TrimSuffix(clause, ")")
		kv := strings.SplitN(clause, ":", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		val := strings.TrimSpace(kv[1])
		switch key {
		case "min-width":
			n, err := strconv.Atoi(strings.TrimSuffix(val, "px"))
			if err != nil {
				return MediaQuery{}, false
			}
			mq.MinWidth = &n
			any = true
		case "max-width":
			n, err := strconv.Atoi(strings.TrimSuffix(val, "px"))
			if err != nil {
				return MediaQuery{}, false
			}
			mq.MaxWidth = &n
			any = true
		case "prefers-color-scheme":
			if val != "light" && val != "dark" {
				return MediaQuery{}, false
			}
			mq.PrefersColorScheme = val
			any = true
		default:
			return MediaQuery{}, false
		}
	}
	return mq, any
}
