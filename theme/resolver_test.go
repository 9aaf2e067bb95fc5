package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTheme(t *testing.T, js string) *Theme {
	t.Helper()
	th, err := LoadTheme([]byte(js))
	require.NoError(t, err)
	return th
}

func TestResolveFlattensPaletteAndSemantic(t *testing.T) {
	th := mustTheme(t, `{
		"name": "base",
		"mode": "dark",
		"palette": {"ink": {"hex": "#222222"}, "paper": {"hex": "#eeeeee"}},
		"semantic": {"text": "ink", "surface": "paper"}
	}`)
	r, err := Resolve(th, nil)
	require.NoError(t, err)

	c, ok := r.Semantic("text")
	require.True(t, ok)
	assert.Equal(t, RGB(0x22, 0x22, 0x22), c)
}

func TestResolveInheritsFromParent(t *testing.T) {
	parent := mustTheme(t, `{
		"name": "parent",
		"mode": "dark",
		"palette": {"accent": {"hex": "#ff0000"}},
		"semantic": {"brand": "accent"}
	}`)
	child := mustTheme(t, `{
		"name": "child",
		"mode": "dark",
		"parent": "parent",
		"palette": {"ink": {"hex": "#000000"}},
		"semantic": {"text": "ink"}
	}`)
	loader := func(name string) (*Theme, error) {
		if name == "parent" {
			return parent, nil
		}
		return nil, errors.New("not found")
	}
	r, err := Resolve(child, loader)
	require.NoError(t, err)

	brand, ok := r.Semantic("brand")
	require.True(t, ok, "semantic role inherited from parent should resolve")
	assert.Equal(t, RGB(0xff, 0, 0), brand)

	text, ok := r.Semantic("text")
	require.True(t, ok)
	assert.Equal(t, RGB(0, 0, 0), text)
}

func TestResolveChildShadowsParentToken(t *testing.T) {
	parent := mustTheme(t, `{
		"name": "parent", "mode": "dark",
		"palette": {"accent": {"hex": "#111111"}},
		"semantic": {}
	}`)
	child := mustTheme(t, `{
		"name": "child", "mode": "dark", "parent": "parent",
		"palette": {"accent": {"hex": "#222222"}},
		"semantic": {"brand": "accent"}
	}`)
	loader := func(name string) (*Theme, error) { return parent, nil }
	r, err := Resolve(child, loader)
	require.NoError(t, err)
	c, _ := r.Token("accent")
	assert.Equal(t, RGB(0x22, 0x22, 0x22), c)
}

func TestResolveRejectsUnresolvedSemanticToken(t *testing.T) {
	th := mustTheme(t, `{
		"name": "broken", "mode": "dark",
		"palette": {},
		"semantic": {"text": "ghost"}
	}`)
	_, err := Resolve(th, nil)
	require.Error(t, err)
	var unresolved *ErrUnresolvedToken
	assert.ErrorAs(t, err, &unresolved)
}

func TestResolveRejectsConflictingColorSpec(t *testing.T) {
	th := &Theme{
		Name: "conflict", Mode: "dark",
		Palette: map[string]ColorSpec{
			"ink": {Hex: "#000000", RGB: []int{1, 2, 3}},
		},
		Semantic: map[string]string{},
	}
	_, err := Resolve(th, nil)
	require.Error(t, err)
	var conflict *ErrConflictingSpec
	assert.ErrorAs(t, err, &conflict)
}

func TestResolveDetectsTokenAlias(t *testing.T) {
	th := mustTheme(t, `{
		"name": "alias", "mode": "dark",
		"palette": {
			"base-red": {"hex": "#ff0000"},
			"danger": {"name": "base-red"}
		},
		"semantic": {"error": "danger"}
	}`)
	r, err := Resolve(th, nil)
	require.NoError(t, err)
	c, ok := r.Semantic("error")
	require.True(t, ok)
	assert.Equal(t, RGB(255, 0, 0), c)
}
