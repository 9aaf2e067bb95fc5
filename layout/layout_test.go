package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cssterm/cssterm/element"
	"github.com/cssterm/cssterm/style"
)

func fixedLookup(styles map[*element.Element]style.ComputedStyle) StyleLookup {
	return func(el *element.Element) style.ComputedStyle {
		if cs, ok := styles[el]; ok {
			return cs
		}
		return style.DefaultComputedStyle()
	}
}

func TestLayoutBlockStacksChildrenVertically(t *testing.T) {
	a := element.New("div").WithText("a")
	b := element.New("div").WithText("b")
	root := element.New("div").WithChildren(a, b)

	csA := style.DefaultComputedStyle()
	csA.Height = style.Cells(2)
	csB := style.DefaultComputedStyle()
	csB.Height = style.Cells(3)

	lookup := fixedLookup(map[*element.Element]style.ComputedStyle{a: csA, b: csB})
	le := Layout(root, lookup, Rect{W: 10, H: 20})

	require.Len(t, le.Children, 2)
	assert.Equal(t, 0, le.Children[0].Rect.Y)
	assert.Equal(t, 2, le.Children[1].Rect.Y)
}

func TestLayoutBlockFillsAvailableWidth(t *testing.T) {
	child := element.New("div")
	root := element.New("div").WithChildren(child)
	le := Layout(root, fixedLookup(nil), Rect{W: 40, H: 10})
	require.Len(t, le.Children, 1)
	assert.Equal(t, 40, le.Children[0].Rect.W)
}

func TestLayoutFlexGrowDistributesSpace(t *testing.T) {
	a := element.New("div")
	b := element.New("div")
	root := element.New("div").WithChildren(a, b)

	csRoot := style.DefaultComputedStyle()
	csRoot.Display = style.DisplayFlex
	csA := style.DefaultComputedStyle()
	csA.Width = style.Cells(0)
	csA.FlexGrow = 1
	csB := style.DefaultComputedStyle()
	csB.Width = style.Cells(0)
	csB.FlexGrow = 1

	lookup := fixedLookup(map[*element.Element]style.ComputedStyle{root: csRoot, a: csA, b: csB})
	le := Layout(root, lookup, Rect{W: 20, H: 5})

	require.Len(t, le.Children, 2)
	assert.Equal(t, 10, le.Children[0].Rect.W)
	assert.Equal(t, 10, le.Children[1].Rect.W)
}

func TestLayoutFlexJustifyCenter(t *testing.T) {
	a := element.New("div")
	root := element.New("div").WithChildren(a)

	csRoot := style.DefaultComputedStyle()
	csRoot.Display = style.DisplayFlex
	csRoot.Justify = style.JustifyCenter
	csA := style.DefaultComputedStyle()
	csA.Width = style.Cells(4)

	lookup := fixedLookup(map[*element.Element]style.ComputedStyle{root: csRoot, a: csA})
	le := Layout(root, lookup, Rect{W: 10, H: 3})

	require.Len(t, le.Children, 1)
	assert.Equal(t, 3, le.Children[0].Rect.X)
}

func TestLayoutGridDistributesFrTracks(t *testing.T) {
	a := element.New("div")
	b := element.New("div")
	root := element.New("div").WithChildren(a, b)

	csRoot := style.DefaultComputedStyle()
	csRoot.Display = style.DisplayGrid
	csRoot.GridTemplateColumns = []style.Length{style.FrUnit(1), style.FrUnit(2)}

	lookup := fixedLookup(map[*element.Element]style.ComputedStyle{root: csRoot})
	le := Layout(root, lookup, Rect{W: 30, H: 5})

	require.Len(t, le.Children, 2)
	assert.Equal(t, 10, le.Children[0].Rect.W)
	assert.Equal(t, 20, le.Children[1].Rect.W)
}

func TestLayoutAbsolutePositioningRemovesFromFlow(t *testing.T) {
	a := element.New("div")
	b := element.New("div").WithText("x")
	root := element.New("div").WithChildren(a, b)

	csA := style.DefaultComputedStyle()
	csA.Position = style.PositionAbsolute
	csA.Top = style.Cells(5)
	csA.Left = style.Cells(5)
	csA.Width = style.Cells(3)
	csA.Height = style.Cells(1)

	lookup := fixedLookup(map[*element.Element]style.ComputedStyle{a: csA})
	le := Layout(root, lookup, Rect{W: 20, H: 20})

	require.Len(t, le.Children, 2)
	var absolute, flowed *LaidElement
	for _, c := range le.Children {
		if c.El == a {
			absolute = c
		} else {
			flowed = c
		}
	}
	require.NotNil(t, absolute)
	require.NotNil(t, flowed)
	assert.Equal(t, 5, absolute.Rect.X)
	assert.Equal(t, 5, absolute.Rect.Y)
	assert.Equal(t, 0, flowed.Rect.Y)
}

func TestWrapTextBreaksOnWhitespace(t *testing.T) {
	lines := WrapText("the quick brown fox", 10)
	assert.Equal(t, []string{"the quick", "brown fox"}, lines)
}

func TestWrapTextBreaksLongWordByGrapheme(t *testing.T) {
	lines := WrapText("supercalifragilistic", 5)
	for _, l := range lines {
		assert.LessOrEqual(t, MeasureLine(l), 5)
	}
}
