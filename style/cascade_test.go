package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cssterm/cssterm/element"
)

func parseSheet(t *testing.T, css string) *Stylesheet {
	t.Helper()
	sheet, _, errs := NewParser(css, "").Parse()
	require.Empty(t, errs)
	return sheet
}

func TestComputeStyleAppliesMatchedDeclaration(t *testing.T) {
	sheet := parseSheet(t, `div { width: 10; color: red; }`)
	root := element.New("div")
	ctx := BuildContext(root, nil)
	rules := MatchRules(sheet, ctx, 80, "dark")
	cs := ComputeStyle(rules, nil, "")
	n, ok := cs.Width.Resolve(0, false)
	require.True(t, ok)
	assert.Equal(t, 10, n)
	assert.Equal(t, "#cd3131", cs.Color.String())
}

func TestComputeStyleHigherSpecificityWins(t *testing.T) {
	sheet := parseSheet(t, `
		div { color: red; }
		#box { color: blue; }
	`)
	root := element.New("div").WithID("box")
	ctx := BuildContext(root, nil)
	rules := MatchRules(sheet, ctx, 80, "dark")
	cs := ComputeStyle(rules, nil, "")
	assert.Equal(t, "#2472c8", cs.Color.String())
}

func TestComputeStyleLaterRuleWinsOnEqualSpecificity(t *testing.T) {
	sheet := parseSheet(t, `
		div { color: red; }
		div { color: green; }
	`)
	root := element.New("div")
	ctx := BuildContext(root, nil)
	rules := MatchRules(sheet, ctx, 80, "dark")
	cs := ComputeStyle(rules, nil, "")
	assert.Equal(t, "#0dbc79", cs.Color.String())
}

func TestComputeStyleImportantBeatsSpecificity(t *testing.T) {
	sheet := parseSheet(t, `
		#box { color: blue; }
		div { color: red !important; }
	`)
	root := element.New("div").WithID("box")
	ctx := BuildContext(root, nil)
	rules := MatchRules(sheet, ctx, 80, "dark")
	cs := ComputeStyle(rules, nil, "")
	assert.Equal(t, "#cd3131", cs.Color.String())
}

func TestComputeStyleInheritsColorNotWidth(t *testing.T) {
	parentSheet := parseSheet(t, `div { color: green; width: 50; }`)
	parentRoot := element.New("div")
	parentCtx := BuildContext(parentRoot, nil)
	parentRules := MatchRules(parentSheet, parentCtx, 80, "dark")
	parentCS := ComputeStyle(parentRules, nil, "")

	childCS := ComputeStyle(nil, &parentCS, "")
	assert.Equal(t, parentCS.Color, childCS.Color)
	assert.True(t, childCS.Width.IsAuto())
}

func TestComputeStyleResolvesCustomProperty(t *testing.T) {
	sheet := parseSheet(t, `
		:root { --accent: #ff0000; }
		div { color: var(--accent); }
	`)
	root := element.New("div")
	ctx := BuildContext(root, nil)
	rules := MatchRules(sheet, ctx, 80, "dark")
	cs := ComputeStyle(rules, nil, "")
	assert.Equal(t, "#ff0000", cs.Color.String())
}

func TestComputeStyleVarFallback(t *testing.T) {
	sheet := parseSheet(t, `div { color: var(--missing, #00ff00); }`)
	root := element.New("div")
	ctx := BuildContext(root, nil)
	rules := MatchRules(sheet, ctx, 80, "dark")
	cs := ComputeStyle(rules, nil, "")
	assert.Equal(t, "#00ff00", cs.Color.String())
}

func TestComputeStyleInlineStyleOutranksStylesheet(t *testing.T) {
	sheet := parseSheet(t, `div { color: red; }`)
	root := element.New("div")
	ctx := BuildContext(root, nil)
	rules := MatchRules(sheet, ctx, 80, "dark")
	cs := ComputeStyle(rules, nil, "color: blue")
	assert.Equal(t, "#2472c8", cs.Color.String())
}

func TestComputeStyleMarginShorthand(t *testing.T) {
	sheet := parseSheet(t, `div { margin: 1 2; }`)
	root := element.New("div")
	ctx := BuildContext(root, nil)
	rules := MatchRules(sheet, ctx, 80, "dark")
	cs := ComputeStyle(rules, nil, "")
	top, _ := cs.Margin.Top.Resolve(0, false)
	right, _ := cs.Margin.Right.Resolve(0, false)
	assert.Equal(t, 1, top)
	assert.Equal(t, 2, right)
}

func TestMatchRulesSkipsNonMatchingMedia(t *testing.T) {
	sheet := parseSheet(t, `@media (min-width: 200) { div { color: red; } }`)
	root := element.New("div")
	ctx := BuildContext(root, nil)
	rules := MatchRules(sheet, ctx, 80, "dark")
	assert.Empty(t, rules)
}

func TestComputeStyleBorderShorthandSetsWidthStyleAndColor(t *testing.T) {
	sheet := parseSheet(t, `#box { border: 1 single red; }`)
	root := element.New("div").WithID("box")
	ctx := BuildContext(root, nil)
	rules := MatchRules(sheet, ctx, 80, "dark")
	cs := ComputeStyle(rules, nil, "")
	top, _ := cs.Border.Top.Resolve(0, false)
	assert.Equal(t, 1, top)
	assert.Equal(t, BorderSingle, cs.BorderStyle)
	assert.Equal(t, "#cd3131", cs.BorderColor.String())
}

func TestComputeStyleBorderDirectionalShorthandNarrowsOneEdge(t *testing.T) {
	sheet := parseSheet(t, `#box { border-top: 2 double; }`)
	root := element.New("div").WithID("box")
	ctx := BuildContext(root, nil)
	rules := MatchRules(sheet, ctx, 80, "dark")
	cs := ComputeStyle(rules, nil, "")
	top, _ := cs.Border.Top.Resolve(0, false)
	left, _ := cs.Border.Left.Resolve(0, false)
	assert.Equal(t, 2, top)
	assert.Equal(t, 0, left)
	assert.Equal(t, BorderDouble, cs.BorderStyle)
}

func TestParseBorderStyleAcceptsRoundAsRoundedAlias(t *testing.T) {
	assert.Equal(t, BorderRounded, parseBorderStyle("round"))
	assert.Equal(t, BorderRounded, parseBorderStyle("rounded"))
}

func TestComputeStyleTextAlignIsInheritedFromAncestor(t *testing.T) {
	sheet := parseSheet(t, `#wrap { text-align: center; }`)
	root := element.New("div").WithID("wrap")
	ctx := BuildContext(root, nil)
	rules := MatchRules(sheet, ctx, 80, "dark")
	parent := ComputeStyle(rules, nil, "")
	require.Equal(t, TextAlignCenter, parent.TextAlign)

	child := element.New("span")
	childCtx := BuildContext(child, nil)
	childRules := MatchRules(sheet, childCtx, 80, "dark")
	cs := ComputeStyle(childRules, &parent, "")
	assert.Equal(t, TextAlignCenter, cs.TextAlign)
}
