package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cssterm/cssterm/element"
	"github.com/cssterm/cssterm/layout"
	"github.com/cssterm/cssterm/router"
)

func TestBuildAncestorsOrdersInnermostFirst(t *testing.T) {
	child := &element.Element{ID: "child"}
	parent := &element.Element{ID: "parent"}
	root := &element.Element{ID: "root"}

	leChild := &layout.LaidElement{El: child}
	leParent := &layout.LaidElement{El: parent, Children: []*layout.LaidElement{leChild}}
	leRoot := &layout.LaidElement{El: root, Children: []*layout.LaidElement{leParent}}

	out := buildAncestors(leRoot, nil, map[string][]string{})

	assert.Equal(t, []string{"parent", "root"}, out["child"])
	assert.Equal(t, []string{"root"}, out["parent"])
	assert.Empty(t, out["root"])
}

func TestHitTestPicksTopmostOverlappingChild(t *testing.T) {
	back := &layout.LaidElement{El: &element.Element{ID: "back"}, Rect: layout.Rect{X: 0, Y: 0, W: 10, H: 10}, Clip: layout.Rect{X: 0, Y: 0, W: 10, H: 10}}
	front := &layout.LaidElement{El: &element.Element{ID: "front"}, Rect: layout.Rect{X: 0, Y: 0, W: 10, H: 10}, Clip: layout.Rect{X: 0, Y: 0, W: 10, H: 10}}
	root := &layout.LaidElement{
		El:       &element.Element{ID: "root"},
		Rect:     layout.Rect{X: 0, Y: 0, W: 10, H: 10},
		Clip:     layout.Rect{X: 0, Y: 0, W: 10, H: 10},
		Children: []*layout.LaidElement{back, front},
	}

	hit := hitTest(root, 5, 5)
	assert.Equal(t, "front", hit.El.ID)
}

func TestHitTestReturnsNilOutsideClip(t *testing.T) {
	leaf := &layout.LaidElement{El: &element.Element{ID: "leaf"}, Rect: layout.Rect{X: 0, Y: 0, W: 10, H: 10}, Clip: layout.Rect{X: 0, Y: 0, W: 5, H: 5}}
	assert.Nil(t, hitTest(leaf, 7, 7))
	assert.NotNil(t, hitTest(leaf, 2, 2))
}

func TestRebuildFocusRingExcludesNegativeTabindexAndMissingID(t *testing.T) {
	e := &Engine{router: router.New()}
	root := &element.Element{
		Tag: "body",
		Children: []*element.Element{
			{ID: "a", Attributes: map[string]string{"tabindex": "0"}},
			{ID: "b", Attributes: map[string]string{"tabindex": "-1"}},
			{Attributes: map[string]string{"tabindex": "0"}}, // no id: not ring-eligible
			{ID: "c", Attributes: map[string]string{"tabindex": "1"}},
		},
	}

	e.rebuildFocusRing(root)

	assert.True(t, e.router.Focus("a"))
	assert.False(t, e.router.Focus("b"))
	assert.True(t, e.router.Focus("c"))
}
