package style

import "fmt"

// LengthKind identifies which of the Length union variants is active.
type LengthKind int

const (
	LengthAuto LengthKind = iota
	LengthCells
	LengthPercent
	LengthFr
	LengthMinContent
	LengthMaxContent
	LengthFitContent
)

// Length is the sized-value union: Cells | Percent | Fr | Auto |
// MinContent | MaxContent | FitContent(Cells).
type Length struct {
	Kind  LengthKind
	Cells int16
	Pct   float32
	Fr    float32
}

// Cells constructs a fixed cell-count Length.
func Cells(n int16) Length { return Length{Kind: LengthCells, Cells: n} }

// Percent constructs a percentage Length (0-100 scale, matching CSS "N%").
func Percent(p float32) Length { return Length{Kind: LengthPercent, Pct: p} }

// FrUnit constructs a fractional (grid/flex) unit Length.
func FrUnit(n float32) Length { return Length{Kind: LengthFr, Fr: n} }

// AutoLength is the Auto Length constant.
var AutoLength = Length{Kind: LengthAuto}

// MinContentLength is the MinContent Length constant.
var MinContentLength = Length{Kind: LengthMinContent}

// MaxContentLength is the MaxContent Length constant.
var MaxContentLength = Length{Kind: LengthMaxContent}

// FitContent constructs a FitContent(Cells) Length.
func FitContent(n int16) Length { return Length{Kind: LengthFitContent, Cells: n} }

// IsAuto reports whether l is the Auto variant.
func (l Length) IsAuto() bool { return l.Kind == LengthAuto }

// Resolve converts l to an absolute cell count given the container basis
// (for Percent) and whether the basis is actually known — when the
// parent's basis is indeterminate, percent sizes fall back to auto.
// Fr, MinContent, MaxContent, FitContent are resolved by the layout
// engine directly since they require sibling/content context Resolve
// does not have; for those kinds Resolve returns (0, false).
func (l Length) Resolve(basis int, basisKnown bool) (int, bool) {
	switch l.Kind {
	case LengthCells:
		return int(l.Cells), true
	case LengthPercent:
		if !basisKnown {
			return 0, false
		}
		return int(float32(basis) * l.Pct / 100.0), true
	case LengthAuto:
		return 0, false
	default:
		return 0, false
	}
}

func (l Length) String() string {
	switch l.Kind {
	case LengthAuto:
		return "auto"
	case LengthCells:
		return fmt.Sprintf("%d", l.Cells)
	case LengthPercent:
		return fmt.Sprintf("%g%%", l.Pct)
	case LengthFr:
		return fmt.Sprintf("%gfr", l.Fr)
	case LengthMinContent:
		return "min-content"
	case LengthMaxContent:
		return "max-content"
	case LengthFitContent:
		return fmt.Sprintf("fit-content(%d)", l.Cells)
	default:
		return "?"
	}
}
