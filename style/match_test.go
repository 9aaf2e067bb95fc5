package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cssterm/cssterm/element"
)

func buildTree() *element.Element {
	return element.New("div").WithID("app").WithChildren(
		element.New("span").WithClasses("label").WithText("hi"),
		element.New("button").WithClasses("btn", "primary").WithAttr("disabled", ""),
	)
}

// findTag walks an already-built NodeContext tree (so Parent/PrevSibling
// links are the real ones BuildContext produced) and returns the first
// node whose element tag matches.
func findTag(root *NodeContext, tag string) *NodeContext {
	if root.El.Tag == tag {
		return root
	}
	for i := range root.El.Children {
		if found := findTag(childAt(root, i), tag); found != nil {
			return found
		}
	}
	return nil
}

// childAt re-derives the NodeContext for root's i-th child with
// buildContext, the same construction BuildContext uses, parented on root
// itself so the Parent/PrevSibling/Index wiring and the disabled-attribute
// flag match what the matcher actually sees.
func childAt(root *NodeContext, i int) *NodeContext {
	var prev *NodeContext
	for j, ch := range root.El.Children {
		cc := buildContext(ch, root, j+1, len(root.El.Children), nil)
		cc.PrevSibling = prev
		if j == i {
			return cc
		}
		prev = cc
	}
	return nil
}

func (c *NodeContext) children() []*NodeContext {
	kids := make([]*NodeContext, 0, len(c.El.Children))
	var prev *NodeContext
	for i, ch := range c.El.Children {
		cc := &NodeContext{El: ch, Parent: c, Index: i + 1, SiblingCount: len(c.El.Children), PrevSibling: prev}
		kids = append(kids, cc)
		prev = cc
	}
	return kids
}

func TestMatchesTagAndClass(t *testing.T) {
	root := buildTree()
	ctx := BuildContext(root, nil)
	span := findTag(ctx, "span")
	require.NotNil(t, span)
	sel, ok := ParseSelector("span.label")
	require.True(t, ok)
	assert.True(t, Matches(sel, span))
}

func TestMatchesDescendantCombinator(t *testing.T) {
	root := buildTree()
	ctx := BuildContext(root, nil)
	span := findTag(ctx, "span")
	require.NotNil(t, span)
	sel, ok := ParseSelector("#app span")
	require.True(t, ok)
	assert.True(t, Matches(sel, span))
}

func TestMatchesChildCombinatorRejectsNonImmediate(t *testing.T) {
	root := element.New("section").WithChildren(
		element.New("div").WithChildren(
			element.New("span").WithText("x"),
		),
	)
	ctx := BuildContext(root, nil)
	span := findTag(ctx, "span")
	require.NotNil(t, span)
	sel, ok := ParseSelector("section > span")
	require.True(t, ok)
	assert.False(t, Matches(sel, span))

	sel2, _ := ParseSelector("section span")
	assert.True(t, Matches(sel2, span))
}

func TestMatchesAdjacentSibling(t *testing.T) {
	root := element.New("div").WithChildren(
		element.New("label"),
		element.New("input"),
	)
	ctx := BuildContext(root, nil)
	input := findTag(ctx, "input")
	require.NotNil(t, input)
	sel, ok := ParseSelector("label + input")
	require.True(t, ok)
	assert.True(t, Matches(sel, input))
}

func TestMatchesDisabledAttrAutoSetsPseudo(t *testing.T) {
	root := buildTree()
	ctx := BuildContext(root, nil)
	btn := findTag(ctx, "button")
	require.NotNil(t, btn)
	sel, ok := ParseSelector("button:disabled")
	require.True(t, ok)
	assert.True(t, Matches(sel, btn))
}

func TestMatchesHoverFromPseudoState(t *testing.T) {
	root := element.New("button").WithID("ok")
	state := map[string]PseudoState{"ok": {Hover: true}}
	ctx := BuildContext(root, state)
	sel, _ := ParseSelector("button:hover")
	assert.True(t, Matches(sel, ctx))
}

func TestMatchesNthChild(t *testing.T) {
	root := element.New("ul").WithChildren(
		element.New("li"), element.New("li"), element.New("li"),
	)
	ctx := BuildContext(root, nil)
	second := ctx.children()[1]
	sel, _ := ParseSelector("li:nth-child(2)")
	assert.True(t, Matches(sel, second))
	sel2, _ := ParseSelector("li:nth-child(odd)")
	assert.False(t, Matches(sel2, second))
}
