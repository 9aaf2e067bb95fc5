package style

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cssterm/cssterm/theme"
)

// matchedRule pairs a Rule with the specificity it scored against one
// element, for the sort-then-apply cascade pass.
type matchedRule struct {
	rule  Rule
	spec  Specificity
	order int
}

// MatchRules returns every rule in sheet whose selector matches ctx and
// whose @media condition (if any) passes, sorted by the cascade order:
// lowest specificity first, ties broken by source order, so that later
// application in Apply lets the higher-precedence declaration win.
func MatchRules(sheet *Stylesheet, ctx *NodeContext, viewportCols int, colorScheme string) []Rule {
	var matched []matchedRule
	for _, r := range sheet.Rules {
		if r.Media != nil && !r.Media.Matches(viewportCols, colorScheme) {
			continue
		}
		if !Matches(r.Selector, ctx) {
			continue
		}
		matched = append(matched, matchedRule{rule: r, spec: r.Selector.Compute(), order: r.Order})
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].spec.Less(matched[j].spec) {
			return true
		}
		if matched[j].spec.Less(matched[i].spec) {
			return false
		}
		return matched[i].order < matched[j].order
	})
	out := make([]Rule, len(matched))
	for i, m := range matched {
		out[i] = m.rule
	}
	return out
}

// ComputeStyle cascades rules onto a fresh style for ctx, starting from
// the properties inherit carries down from the parent, applying normal
// declarations in cascade order, then applying every !important
// declaration in the same order (so importance always wins over normal
// declarations regardless of specificity, per the standard two-pass
// cascade), and finally resolving var() references against the
// accumulated custom-property scope.
func ComputeStyle(rules []Rule, inherited *ComputedStyle, inlineStyle string) ComputedStyle {
	cs := DefaultComputedStyle()
	if inherited != nil {
		applyInheritance(&cs, inherited)
	}

	inlineDecls, _ := ParseInlineDeclarations(inlineStyle)

	// Custom properties cascade like any other declaration (later wins),
	// but we need the final merged set before resolving var() used by
	// any declaration, including ones that appear before the custom
	// property in source order. Two passes: collect, then apply.
	for _, d := range allDeclarations(rules, inlineDecls) {
		if d.IsCustomProperty() {
			cs.CustomProperties[d.Property] = d.Value
		}
	}

	apply := func(d Declaration) {
		if d.IsCustomProperty() {
			return
		}
		val := resolveVars(d.Value, cs.CustomProperties, 0)
		applyDeclaration(&cs, d.Property, val)
	}

	for _, d := range allDeclarations(rules, inlineDecls) {
		if !d.Important {
			apply(d)
		}
	}
	for _, d := range allDeclarations(rules, inlineDecls) {
		if d.Important {
			apply(d)
		}
	}
	return cs
}

// allDeclarations flattens every rule's declarations, in cascade order,
// followed by the element's inline style (which always out-ranks
// stylesheet rules of equal importance).
func allDeclarations(rules []Rule, inline []Declaration) []Declaration {
	var out []Declaration
	for _, r := range rules {
		out = append(out, r.Declarations...)
	}
	out = append(out, inline...)
	return out
}

// ParseInlineDeclarations parses a `style="prop: value; ..."` attribute
// value the same way a stylesheet's declaration block is parsed.
func ParseInlineDeclarations(raw string) ([]Declaration, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	return parseDeclarations(raw), true
}

func applyInheritance(cs *ComputedStyle, parent *ComputedStyle) {
	cs.Color = parent.Color
	cs.FontWeight = parent.FontWeight
	cs.TextAlign = parent.TextAlign
	cs.Italic = parent.Italic
	cs.Underline = parent.Underline
	for k, v := range parent.CustomProperties {
		cs.CustomProperties[k] = v
	}
}

// resolveVars expands every `var(--name[, fallback])` reference in raw
// against custom, recursing up to a small fixed depth to guard against
// reference cycles between custom properties.
func resolveVars(raw string, custom map[string]string, depth int) string {
	if depth > 8 || !strings.Contains(raw, "var(") {
		return raw
	}
	var sb strings.Builder
	i := 0
	for i < len(raw) {
		idx := strings.Index(raw[i:], "var(")
		if idx < 0 {
			sb.WriteString(raw[i:])
			break
		}
		sb.WriteString(raw[i : i+idx])
		start := i + idx + len("var(")
		depthParen := 1
		j := start
		for j < len(raw) && depthParen > 0 {
			switch raw[j] {
			case '(':
				depthParen++
			case ')':
				depthParen--
			}
			if depthParen == 0 {
				break
			}
			j++
		}
		if j >= len(raw) {
			sb.WriteString(raw[i+idx:])
			break
		}
		inner := raw[start:j]
		name, fallback, hasFallback := splitVarArgs(inner)
		if v, ok := custom[name]; ok {
			sb.WriteString(resolveVars(v, custom, depth+1))
		} else if hasFallback {
			sb.WriteString(resolveVars(fallback, custom, depth+1))
		}
		i = j + 1
	}
	return sb.String()
}

func splitVarArgs(inner string) (name, fallback string, hasFallback bool) {
	idx := strings.Index(inner, ",")
	if idx < 0 {
		return strings.TrimSpace(inner), "", false
	}
	return strings.TrimSpace(inner[:idx]), strings.TrimSpace(inner[idx+1:]), true
}

func applyDeclaration(cs *ComputedStyle, prop, val string) {
	val = strings.TrimSpace(val)
	switch prop {
	case "display":
		switch val {
		case "block":
			cs.Display = DisplayBlock
		case "inline":
			cs.Display = DisplayInline
		case "flex":
			cs.Display = DisplayFlex
		case "grid":
			cs.Display = DisplayGrid
		case "none":
			cs.Display = DisplayNone
		}
	case "position":
		switch val {
		case "static":
			cs.Position = PositionStatic
		case "relative":
			cs.Position = PositionRelative
		case "absolute":
			cs.Position = PositionAbsolute
		case "fixed":
			cs.Position = PositionFixed
		}
	case "width":
		cs.Width = parseLength(val)
	case "height":
		cs.Height = parseLength(val)
	case "min-width":
		cs.MinWidth = parseLength(val)
	case "min-height":
		cs.MinHeight = parseLength(val)
	case "max-width":
		cs.MaxWidth = parseLength(val)
	case "max-height":
		cs.MaxHeight = parseLength(val)
	case "top":
		cs.Top = parseLength(val)
	case "right":
		cs.Right = parseLength(val)
	case "bottom":
		cs.Bottom = parseLength(val)
	case "left":
		cs.Left = parseLength(val)
	case "margin":
		applyEdgeShorthand(&cs.Margin, val)
	case "margin-top":
		cs.Margin.Top = parseLength(val)
	case "margin-right":
		cs.Margin.Right = parseLength(val)
	case "margin-bottom":
		cs.Margin.Bottom = parseLength(val)
	case "margin-left":
		cs.Margin.Left = parseLength(val)
	case "padding":
		applyEdgeShorthand(&cs.Padding, val)
	case "padding-top":
		cs.Padding.Top = parseLength(val)
	case "padding-right":
		cs.Padding.Right = parseLength(val)
	case "padding-bottom":
		cs.Padding.Bottom = parseLength(val)
	case "padding-left":
		cs.Padding.Left = parseLength(val)
	case "border-width":
		n := Cells(1)
		if val == "0" {
			n = Cells(0)
		}
		cs.Border = Edges{Top: n, Right: n, Bottom: n, Left: n}
	case "border-style":
		cs.BorderStyle = parseBorderStyle(val)
	case "border-color":
		if c, ok := theme.ParseColor(val); ok {
			cs.BorderColor = c
		}
	case "border", "border-top", "border-right", "border-bottom", "border-left":
		applyBorderShorthand(cs, prop, val)
	case "color":
		if c, ok := theme.ParseColor(val); ok {
			cs.Color = c
		}
	case "background", "background-color":
		if c, ok := theme.ParseColor(val); ok {
			cs.Background = c
		}
	case "font-weight":
		if val == "bold" {
			cs.FontWeight = FontWeightBold
		} else {
			cs.FontWeight = FontWeightNormal
		}
	case "font-style":
		cs.Italic = val == "italic"
	case "text-decoration":
		cs.Underline = strings.Contains(val, "underline")
		cs.Strike = strings.Contains(val, "line-through")
	case "text-align":
		switch val {
		case "left":
			cs.TextAlign = TextAlignLeft
		case "right":
			cs.TextAlign = TextAlignRight
		case "center":
			cs.TextAlign = TextAlignCenter
		}
	case "flex-direction":
		switch val {
		case "row":
			cs.FlexDirection = FlexRow
		case "column":
			cs.FlexDirection = FlexColumn
		case "row-reverse":
			cs.FlexDirection = FlexRowReverse
		case "column-reverse":
			cs.FlexDirection = FlexColumnReverse
		}
	case "flex-wrap":
		if val == "wrap" {
			cs.FlexWrap = FlexWrapOn
		} else {
			cs.FlexWrap = FlexNoWrap
		}
	case "flex-grow":
		cs.FlexGrow = parseFloat(val)
	case "flex-shrink":
		cs.FlexShrink = parseFloat(val)
	case "flex-basis":
		cs.FlexBasis = parseLength(val)
	case "justify-content":
		cs.Justify = parseJustify(val)
	case "align-items":
		cs.AlignItems = parseAlign(val)
	case "align-self":
		a := parseAlign(val)
		cs.AlignSelf = &a
	case "gap":
		cs.Gap = parseLength(val)
	case "row-gap":
		cs.RowGap = parseLength(val)
	case "column-gap":
		cs.ColumnGap = parseLength(val)
	case "grid-template-columns":
		cs.GridTemplateColumns = parseTrackList(val)
	case "grid-template-rows":
		cs.GridTemplateRows = parseTrackList(val)
	case "grid-column":
		cs.GridColumn = parseGridLine(val)
	case "grid-row":
		cs.GridRow = parseGridLine(val)
	case "z-index":
		if n, err := strconv.Atoi(val); err == nil {
			cs.ZIndex = n
		}
	case "opacity":
		cs.Opacity = parseFloat(val)
	case "overflow":
		switch val {
		case "visible":
			cs.Overflow = OverflowVisible
		case "hidden":
			cs.Overflow = OverflowHidden
		case "scroll":
			cs.Overflow = OverflowScroll
		}
	}
}

func applyEdgeShorthand(e *Edges, val string) {
	fields := strings.Fields(val)
	lens := make([]Length, len(fields))
	for i, f := range fields {
		lens[i] = parseLength(f)
	}
	switch len(lens) {
	case 1:
		e.Top, e.Right, e.Bottom, e.Left = lens[0], lens[0], lens[0], lens[0]
	case 2:
		e.Top, e.Bottom = lens[0], lens[0]
		e.Right, e.Left = lens[1], lens[1]
	case 3:
		e.Top, e.Right, e.Bottom, e.Left = lens[0], lens[1], lens[2], lens[1]
	case 4:
		e.Top, e.Right, e.Bottom, e.Left = lens[0], lens[1], lens[2], lens[3]
	}
}

// borderStyleKeywords names every token parseBorderStyle recognizes,
// used by applyBorderShorthand to tell a style keyword apart from a
// color in an unordered shorthand value.
var borderStyleKeywords = map[string]bool{
	"none": true, "single": true, "solid": true, "double": true,
	"round": true, "rounded": true, "thick": true, "dashed": true,
	"dotted": true, "block-light": true, "block-solid": true, "ascii": true,
}

// applyBorderShorthand parses a "border" or "border-<side>" value like
// "1 single" or "1 single red" — width, style, and color in any order,
// each optional — and fans it into cs.Border (per side), cs.BorderStyle,
// and cs.BorderColor. BorderStyle and BorderColor are whole-box fields,
// so a directional shorthand only narrows which edge's width changes.
func applyBorderShorthand(cs *ComputedStyle, prop, val string) {
	width := Cells(1)
	haveWidth := false
	var bstyle BorderStyle
	haveStyle := false
	var color theme.Color
	haveColor := false

	for _, tok := range strings.Fields(val) {
		switch {
		case borderStyleKeywords[tok]:
			bstyle = parseBorderStyle(tok)
			haveStyle = true
		case isUint(tok):
			n, _ := strconv.Atoi(tok)
			width = Cells(int16(n))
			haveWidth = true
		default:
			if c, ok := theme.ParseColor(tok); ok {
				color = c
				haveColor = true
			}
		}
	}

	if haveWidth {
		switch prop {
		case "border":
			cs.Border = Edges{Top: width, Right: width, Bottom: width, Left: width}
		case "border-top":
			cs.Border.Top = width
		case "border-right":
			cs.Border.Right = width
		case "border-bottom":
			cs.Border.Bottom = width
		case "border-left":
			cs.Border.Left = width
		}
	}
	if haveStyle {
		cs.BorderStyle = bstyle
	}
	if haveColor {
		cs.BorderColor = color
	}
}

func isUint(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseBorderStyle(val string) BorderStyle {
	switch val {
	case "single", "solid":
		return BorderSingle
	case "double":
		return BorderDouble
	case "round", "rounded":
		return BorderRounded
	case "thick":
		return BorderThick
	case "dashed":
		return BorderDashed
	case "dotted":
		return BorderDotted
	case "block-light":
		return BorderBlockLight
	case "block-solid":
		return BorderBlockSolid
	case "ascii":
		return BorderASCII
	default:
		return BorderNone
	}
}

func parseJustify(val string) Justify {
	switch val {
	case "flex-end", "end":
		return JustifyEnd
	case "center":
		return JustifyCenter
	case "space-between":
		return JustifySpaceBetween
	case "space-around":
		return JustifySpaceAround
	default:
		return JustifyStart
	}
}

func parseAlign(val string) AlignItems {
	switch val {
	case "flex-start", "start":
		return AlignStart
	case "flex-end", "end":
		return AlignEnd
	case "center":
		return AlignCenter
	default:
		return AlignStretch
	}
}

func parseFloat(val string) float32 {
	f, err := strconv.ParseFloat(val, 32)
	if err != nil {
		return 0
	}
	return float32(f)
}

func parseLength(val string) Length {
	val = strings.TrimSpace(val)
	switch val {
	case "auto":
		return AutoLength
	case "min-content":
		return MinContentLength
	case "max-content":
		return MaxContentLength
	case "":
		return AutoLength
	}
	if strings.HasSuffix(val, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(val, "%"), 32)
		if err != nil {
			return AutoLength
		}
		return Percent(float32(f))
	}
	if strings.HasSuffix(val, "fr") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(val, "fr"), 32)
		if err != nil {
			return AutoLength
		}
		return FrUnit(float32(f))
	}
	if strings.HasPrefix(val, "fit-content(") && strings.HasSuffix(val, ")") {
		inner := strings.TrimSuffix(strings.TrimPrefix(val, "fit-content("), ")")
		n, err := strconv.Atoi(strings.TrimSpace(inner))
		if err != nil {
			return AutoLength
		}
		return FitContent(int16(n))
	}
	val = strings.TrimSuffix(val, "cells")
	val = strings.TrimSpace(val)
	n, err := strconv.Atoi(val)
	if err != nil {
		return AutoLength
	}
	return Cells(int16(n))
}

func parseTrackList(val string) []Length {
	fields := strings.Fields(val)
	out := make([]Length, 0, len(fields))
	for _, f := range fields {
		if strings.HasSuffix(f, "fr") || f == "auto" || strings.HasSuffix(f, "%") {
			out = append(out, parseLength(f))
			continue
		}
		n, err := strconv.Atoi(f)
		if err == nil {
			// repeat(n, trackSize) is not supported; bare integers are
			// treated as a cell count per track.
			out = append(out, Cells(int16(n)))
			continue
		}
		out = append(out, parseLength(f))
	}
	return out
}

func parseGridLine(val string) [2]int {
	parts := strings.Split(val, "/")
	start, end := 0, 0
	if len(parts) >= 1 {
		if n, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
			start = n
		}
	}
	if len(parts) >= 2 {
		if n, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			end = n
		}
	}
	return [2]int{start, end}
}
