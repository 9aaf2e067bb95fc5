package style

import (
	"strconv"
	"strings"

	"github.com/cssterm/cssterm/element"
)

// NodeContext is the position/state information the selector matcher
// needs that an immutable *element.Element alone does not carry: its
// place in the tree, and pseudo-class state owned by the event router
// (:hover, :focus, :active, :disabled).
type NodeContext struct {
	El           *element.Element
	Parent       *NodeContext
	PrevSibling  *NodeContext
	Index        int // 1-based position among siblings, per CSS :nth-child
	SiblingCount int

	Hover    bool
	Focus    bool
	Active   bool
	Disabled bool
}

// BuildContext walks root and produces the NodeContext tree the matcher
// operates over. pseudoState optionally supplies per-element-id pseudo
// flags (hover/focus/active/disabled) collected by the event router.
func BuildContext(root *element.Element, pseudoState map[string]PseudoState) *NodeContext {
	return buildContext(root, nil, 1, 1, pseudoState)
}

// PseudoState is the router-owned interaction state for one element id.
type PseudoState struct {
	Hover, Focus, Active, Disabled bool
}

func buildContext(el *element.Element, parent *NodeContext, index, siblingCount int, state map[string]PseudoState) *NodeContext {
	if el == nil {
		return nil
	}
	ctx := &NodeContext{El: el, Parent: parent, Index: index, SiblingCount: siblingCount}
	if el.ID != "" {
		if ps, ok := state[el.ID]; ok {
			ctx.Hover, ctx.Focus, ctx.Active, ctx.Disabled = ps.Hover, ps.Focus, ps.Active, ps.Disabled
		}
	}
	if _, disabled := el.Attr("disabled"); disabled {
		ctx.Disabled = true
	}
	var prev *NodeContext
	for i, c := range el.Children {
		cc := buildContext(c, ctx, i+1, len(el.Children), state)
		cc.PrevSibling = prev
		prev = cc
	}
	return ctx
}

// Matches reports whether sel matches ctx.
func Matches(sel Selector, ctx *NodeContext) bool {
	n := len(sel.Parts)
	if n == 0 || ctx == nil {
		return false
	}
	if !matchCompound(sel.Parts[n-1], ctx) {
		return false
	}
	return matchAncestors(sel.Parts, n-2, ctx)
}

func matchAncestors(parts []CompoundSelector, i int, ctx *NodeContext) bool {
	if i < 0 {
		return true
	}
	switch parts[i+1].Combinator {
	case CombinatorChild:
		if ctx.Parent == nil || !matchCompound(parts[i], ctx.Parent) {
			return false
		}
		return matchAncestors(parts, i-1, ctx.Parent)
	case CombinatorAdjacent:
		if ctx.PrevSibling == nil || !matchCompound(parts[i], ctx.PrevSibling) {
			return false
		}
		return matchAncestors(parts, i-1, ctx.PrevSibling)
	default: // CombinatorDescendant
		for p := ctx.Parent; p != nil; p = p.Parent {
			if matchCompound(parts[i], p) && matchAncestors(parts, i-1, p) {
				return true
			}
		}
		return false
	}
}

func matchCompound(c CompoundSelector, ctx *NodeContext) bool {
	el := ctx.El
	if !c.Universal && c.Tag != "" && !strings.EqualFold(c.Tag, el.Tag) {
		return false
	}
	if c.ID != "" && c.ID != el.ID {
		return false
	}
	for _, cl := range c.Classes {
		if !el.HasClass(cl) {
			return false
		}
	}
	for _, a := range c.Attrs {
		v, ok := el.Attr(a.Name)
		if !ok {
			return false
		}
		if a.Op == AttrEquals && v != a.Value {
			return false
		}
	}
	for _, ps := range c.Pseudos {
		if !matchPseudo(ps, ctx) {
			return false
		}
	}
	return true
}

func matchPseudo(ps PseudoSelector, ctx *NodeContext) bool {
	switch ps.Name {
	case "hover":
		return ctx.Hover
	case "focus":
		return ctx.Focus
	case "active":
		return ctx.Active
	case "disabled":
		return ctx.Disabled
	case "root":
		return ctx.Parent == nil
	case "first-child":
		return ctx.Index == 1
	case "last-child":
		return ctx.Index == ctx.SiblingCount
	case "nth-child":
		a, b, ok := parseNth(ps.Arg)
		if !ok {
			return false
		}
		return matchesNth(ctx.Index, a, b)
	default:
		return false
	}
}

// parseNth parses the An+B micro-syntax: "odd", "even", an integer, or
// "<a>n+<b>" / "<a>n-<b>" / "n" / "-n".
func parseNth(arg string) (a, b int, ok bool) {
	arg = strings.ToLower(strings.TrimSpace(arg))
	switch arg {
	case "odd":
		return 2, 1, true
	case "even":
		return 2, 0, true
	}
	if n, err := strconv.Atoi(arg); err == nil {
		return 0, n, true
	}
	idx := strings.Index(arg, "n")
	if idx < 0 {
		return 0, 0, false
	}
	aPart := strings.TrimSpace(arg[:idx])
	switch aPart {
	case "", "+":
		a = 1
	case "-":
		a = -1
	default:
		v, err := strconv.Atoi(aPart)
		if err != nil {
			return 0, 0, false
		}
		a = v
	}
	bPart := strings.TrimSpace(arg[idx+1:])
	if bPart == "" {
		b = 0
	} else {
		bPart = strings.ReplaceAll(bPart, " ", "")
		v, err := strconv.Atoi(bPart)
		if err != nil {
			return 0, 0, false
		}
		b = v
	}
	return a, b, true
}

func matchesNth(index, a, b int) bool {
	if a == 0 {
		return index == b
	}
	k := index - b
	if k%a != 0 {
		return false
	}
	return k/a >= 0
}
