package style

// Declaration is a single `property: value` pair, optionally `!important`.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// IsCustomProperty reports whether the declaration defines a custom
// property (`--name: value;`).
func (d Declaration) IsCustomProperty() bool {
	return len(d.Property) >= 2 && d.Property[0] == '-' && d.Property[1] == '-'
}

// CombinatorKind identifies how a compound selector relates to the one
// before it in a selector chain.
type CombinatorKind int

const (
	// CombinatorSubject marks the first (and possibly only) compound in a
	// selector chain; it has no combinator before it.
	CombinatorSubject CombinatorKind = iota
	CombinatorDescendant
	CombinatorChild
	CombinatorAdjacent
)

// AttrOp identifies an attribute-selector comparison.
type AttrOp int

const (
	AttrPresence AttrOp = iota // [k]
	AttrEquals                 // [k="v"]
)

// AttrSelector matches an element attribute.
type AttrSelector struct {
	Name  string
	Op    AttrOp
	Value string
}

// PseudoSelector matches a closed set of pseudo-classes. Arg holds
// the nth-child argument text ("odd", "even", "3", "2n+1") when relevant.
type PseudoSelector struct {
	Name string
	Arg  string
}

// CompoundSelector is a single (tag|universal)#id.class[attr]:pseudo group
// with no combinator, e.g. `div#box.warn:hover`.
type CompoundSelector struct {
	Tag        string // "" if untagged
	Universal  bool
	ID         string
	Classes    []string
	Attrs      []AttrSelector
	Pseudos    []PseudoSelector
	Combinator CombinatorKind // how this compound relates to the previous one
}

// Selector is an ordered chain of compounds; the last entry is the
// "subject" the rule applies to, the earlier ones are ancestor/sibling
// constraints joined by their Combinator.
type Selector struct {
	Parts []CompoundSelector
	Raw   string // original selector text, for diagnostics
}

// Subject returns the final (rightmost) compound selector, or a zero
// value if the selector is empty.
func (s Selector) Subject() CompoundSelector {
	if len(s.Parts) == 0 {
		return CompoundSelector{}
	}
	return s.Parts[len(s.Parts)-1]
}

// Specificity is the (inline, id, class/attr/pseudo, tag/universal) tuple,
// compared lexicographically left to right.
type Specificity struct {
	Inline int
	IDs    int
	Mid    int // classes, attributes, pseudo-classes
	Tags   int // tag names and the universal selector
}

// Less reports whether s has strictly lower specificity than other.
func (s Specificity) Less(other Specificity) bool {
	if s.Inline != other.Inline {
		return s.Inline < other.Inline
	}
	if s.IDs != other.IDs {
		return s.IDs < other.IDs
	}
	if s.Mid != other.Mid {
		return s.Mid < other.Mid
	}
	return s.Tags < other.Tags
}

// Compute returns the selector's specificity tuple.
func (s Selector) Compute() Specificity {
	var sp Specificity
	for _, c := range s.Parts {
		if c.ID != "" {
			sp.IDs++
		}
		sp.Mid += len(c.Classes) + len(c.Attrs) + len(c.Pseudos)
		if c.Tag != "" || c.Universal {
			sp.Tags++
		}
	}
	return sp
}

// MediaQuery is the accepted subset of @media: (min-width: N),
// (max-width: N) in cells, and
// (prefers-color-scheme: light|dark).
type MediaQuery struct {
	MinWidth           *int
	MaxWidth           *int
	PrefersColorScheme string // "", "light", or "dark"
}

// Matches evaluates the media query against the current environment.
func (m MediaQuery) Matches(viewportCols int, colorScheme string) bool {
	if m.MinWidth != nil && viewportCols < *m.MinWidth {
		return false
	}
	if m.MaxWidth != nil && viewportCols > *m.MaxWidth {
		return false
	}
	if m.PrefersColorScheme != "" && m.PrefersColorScheme != colorScheme {
		return false
	}
	return true
}

// Rule is a single selector plus its declarations, optionally gated by a
// media query and tagged with the stylesheet-relative order it appeared
// in (used for the "later rule wins" specificity tie-break).
type Rule struct {
	Selector     Selector
	Declarations []Declaration
	Media        *MediaQuery
	Order        int // position within its Stylesheet, ascending
}

// Stylesheet is an ordered list of rules plus a Version that the style
// and layout cache keys include. Parse leaves Version at zero and nothing
// in this module increments it.
type Stylesheet struct {
	Rules   []Rule
	Version uint64
	Source  string // original text, kept for diagnostics/round-trip tests
}
