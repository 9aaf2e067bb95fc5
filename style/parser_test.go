package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParserBasicRule(t *testing.T) {
	sheet, _, errs := NewParser(`div.box { color: red; width: 10; }`, "t.css").Parse()
	require.Empty(t, errs)
	require.Len(t, sheet.Rules, 1)
	assert.Equal(t, "div.box", sheet.Rules[0].Selector.Raw)
	assert.Len(t, sheet.Rules[0].Declarations, 2)
}

func TestParserSelectorListSharesDeclarations(t *testing.T) {
	sheet, _, errs := NewParser(`h1, h2 { font-weight: bold; }`, "").Parse()
	require.Empty(t, errs)
	require.Len(t, sheet.Rules, 2)
	assert.Equal(t, sheet.Rules[0].Declarations, sheet.Rules[1].Declarations)
}

func TestParserImportantDeclaration(t *testing.T) {
	sheet, _, errs := NewParser(`p { color: blue !important; }`, "").Parse()
	require.Empty(t, errs)
	require.Len(t, sheet.Rules[0].Declarations, 1)
	assert.True(t, sheet.Rules[0].Declarations[0].Important)
}

func TestParserCustomProperty(t *testing.T) {
	sheet, _, errs := NewParser(`:root { --accent: #ff0000; }`, "").Parse()
	require.Empty(t, errs)
	d := sheet.Rules[0].Declarations[0]
	assert.True(t, d.IsCustomProperty())
	assert.Equal(t, "#ff0000", d.Value)
}

func TestParserAtImport(t *testing.T) {
	_, imports, errs := NewParser(`@import "base.css";`, "").Parse()
	require.Empty(t, errs)
	require.Len(t, imports, 1)
	assert.Equal(t, "base.css", imports[0].Path)
}

func TestParserAtMediaNestsRules(t *testing.T) {
	sheet, _, errs := NewParser(`@media (min-width: 80) { div { width: 100%; } }`, "").Parse()
	require.Empty(t, errs)
	require.Len(t, sheet.Rules, 1)
	require.NotNil(t, sheet.Rules[0].Media)
	assert.Equal(t, 80, *sheet.Rules[0].Media.MinWidth)
}

func TestParserAtThemeBecomesRootRule(t *testing.T) {
	sheet, _, errs := NewParser(`@theme { --ink: #111; }`, "").Parse()
	require.Empty(t, errs)
	require.Len(t, sheet.Rules, 1)
	assert.Equal(t, ":root", sheet.Rules[0].Selector.Raw)
}

func TestParserInvalidSelectorDropsOnlyThatRule(t *testing.T) {
	sheet, _, errs := NewParser(`div{color:red} ###bad { } span{color:blue}`, "").Parse()
	assert.NotEmpty(t, errs)
	var tags []string
	for _, r := range sheet.Rules {
		tags = append(tags, r.Selector.Subject().Tag)
	}
	assert.Contains(t, tags, "div")
	assert.Contains(t, tags, "span")
}

func TestParserUnterminatedRuleReportsError(t *testing.T) {
	_, _, errs := NewParser(`div { color: red;`, "").Parse()
	assert.NotEmpty(t, errs)
}

func TestParserCommentsIgnored(t *testing.T) {
	sheet, _, errs := NewParser(`/* hi */ div { /* inline */ color: red; }`, "").Parse()
	require.Empty(t, errs)
	require.Len(t, sheet.Rules, 1)
}

func TestSpecificityOrdering(t *testing.T) {
	low, _ := ParseSelector("div")
	high, _ := ParseSelector("#id")
	assert.True(t, low.Compute().Less(high.Compute()))
}

func TestNthChildParsing(t *testing.T) {
	a, b, ok := parseNth("2n+1")
	require.True(t, ok)
	assert.Equal(t, 2, a)
	assert.Equal(t, 1, b)

	a, b, ok = parseNth("odd")
	require.True(t, ok)
	assert.Equal(t, 2, a)
	assert.Equal(t, 1, b)
}
