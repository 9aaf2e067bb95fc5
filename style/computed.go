package style

import "github.com/cssterm/cssterm/theme"

// Display enumerates the layout modes a ComputedStyle can request.
type Display int

const (
	DisplayBlock Display = iota
	DisplayInline
	DisplayFlex
	DisplayGrid
	DisplayNone
)

// Position enumerates the positioning schemes an element can use.
type Position int

const (
	PositionStatic Position = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
)

// FlexDirection and related flex enums mirror the accepted property
// values of the flex layout algorithm.
type FlexDirection int

const (
	FlexRow FlexDirection = iota
	FlexColumn
	FlexRowReverse
	FlexColumnReverse
)

type FlexWrap int

const (
	FlexNoWrap FlexWrap = iota
	FlexWrapOn
)

type Justify int

const (
	JustifyStart Justify = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
)

type AlignItems int

const (
	AlignStretch AlignItems = iota
	AlignStart
	AlignEnd
	AlignCenter
)

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignRight
	TextAlignCenter
)

type FontWeight int

const (
	FontWeightNormal FontWeight = iota
	FontWeightBold
)

type Overflow int

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
)

// Edges holds the four box-model edges (top, right, bottom, left), used
// for margin, padding, and border-width.
type Edges struct {
	Top, Right, Bottom, Left Length
}

// BorderStyle names one of the nine accepted border glyph sets.
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderSingle
	BorderDouble
	BorderThick
	BorderRounded
	BorderDashed
	BorderDotted
	BorderBlockLight
	BorderBlockSolid
	BorderASCII
)

// ComputedStyle is the fully cascaded, inherited, and var()-resolved style
// for one element: every property the layout and rasterizer stages need,
// with no further lookups required.
type ComputedStyle struct {
	Display  Display
	Position Position

	Width, Height       Length
	MinWidth, MinHeight Length
	MaxWidth, MaxHeight Length

	Top, Right, Bottom, Left Length

	Margin  Edges
	Padding Edges
	Border  Edges // border widths as declared; layout and painting use a 1-cell border whenever BorderStyle is set

	BorderStyle BorderStyle
	BorderColor theme.Color

	Color      theme.Color
	Background theme.Color

	FontWeight FontWeight
	Italic     bool
	Underline  bool
	Strike     bool
	Dim        bool
	Blink      bool
	Reverse    bool

	TextAlign TextAlign

	FlexDirection  FlexDirection
	FlexWrap       FlexWrap
	FlexGrow       float32
	FlexShrink     float32
	FlexBasis      Length
	Justify        Justify
	AlignItems     AlignItems
	AlignSelf      *AlignItems
	Gap            Length
	RowGap         Length
	ColumnGap      Length

	GridTemplateColumns []Length
	GridTemplateRows    []Length
	GridColumn          [2]int // start, end (1-based, 0 = auto)
	GridRow             [2]int

	ZIndex  int
	Opacity float32

	Overflow Overflow

	// CustomProperties holds every --name declared (directly or
	// inherited) in scope at this element, for var() resolution by
	// descendants that this cascade pass has not yet reached.
	CustomProperties map[string]string
}

// DefaultComputedStyle is the initial value every cascade starts from
// before inheritance and matched declarations are applied.
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Display:    DisplayBlock,
		Position:   PositionStatic,
		Width:      AutoLength,
		Height:     AutoLength,
		MinWidth:   AutoLength,
		MinHeight:  AutoLength,
		MaxWidth:   AutoLength,
		MaxHeight:  AutoLength,
		Top:        AutoLength,
		Right:      AutoLength,
		Bottom:     AutoLength,
		Left:       AutoLength,
		FlexGrow:   0,
		FlexShrink: 1,
		FlexBasis:  AutoLength,
		Gap:        Cells(0),
		Opacity:    1,
		CustomProperties: map[string]string{},
	}
}

// inheritableProperties lists the property names that carry from parent
// to child unless explicitly overridden, matching CSS's own inheritance
// rules for the subset this engine implements (color/text/font travel
// down the tree; box-model properties do not).
var inheritableProperties = map[string]bool{
	"color":        true,
	"font-weight":  true,
	"text-align":   true,
	"font-style":   true,
	"text-decoration": true,
}

func isInheritable(prop string) bool {
	return inheritableProperties[prop]
}
