package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintStableAcrossAttrOrder(t *testing.T) {
	a := New("div").WithAttr("data-x", "1").WithAttr("data-y", "2")
	b := New("div").WithAttr("data-y", "2").WithAttr("data-x", "1")
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "attribute map order must not affect the fingerprint")
}

func TestFingerprintStableAcrossClassOrder(t *testing.T) {
	a := New("div").WithClasses("a", "b")
	b := New("div").WithClasses("b", "a")
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprintSensitiveToChildOrder(t *testing.T) {
	a := New("div").WithChildren(New("span").WithText("1"), New("span").WithText("2"))
	b := New("div").WithChildren(New("span").WithText("2"), New("span").WithText("1"))
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint(), "children order is part of the fingerprint")
}

func TestFingerprintDiffersOnTextChange(t *testing.T) {
	a := New("div").WithText("Hi")
	b := New("div").WithText("Bye")
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestValidateRejectsTextAndChildren(t *testing.T) {
	bad := New("div").WithText("hi").WithChildren(New("span"))
	err := Validate(bad)
	require.Error(t, err)
	var illFormed *ErrIllFormed
	assert.ErrorAs(t, err, &illFormed)
}

func TestInvalidatorTracksDirtyPaths(t *testing.T) {
	inv := NewInvalidator()

	root1 := New("div").WithChildren(
		New("span").WithText("a"),
		New("span").WithText("b"),
	)
	d1 := inv.Accept(root1)
	assert.False(t, d1.Empty(), "first frame is never empty")

	// Same tree again: zero diff.
	root1Again := New("div").WithChildren(
		New("span").WithText("a"),
		New("span").WithText("b"),
	)
	d2 := inv.Accept(root1Again)
	assert.True(t, d2.Empty(), "identical content should produce zero writes on a repeat frame")

	// Change only the second child.
	root2 := New("div").WithChildren(
		New("span").WithText("a"),
		New("span").WithText("changed"),
	)
	d3 := inv.Accept(root2)
	assert.False(t, d3.Empty())
	assert.Contains(t, d3.DirtyPaths, "/div/span", "root and the changed child path must be dirty")
}

func TestCompareAddedRemoved(t *testing.T) {
	oldRoot := New("div").WithChildren(New("span").WithText("keep"), New("span").WithText("gone"))
	newRoot := New("div").WithChildren(New("span").WithText("keep"), New("span").WithText("new"))

	d := Compare(oldRoot, newRoot)
	// The swapped child plus the root, whose subtree fingerprint changes too.
	require.Len(t, d.Added, 2)
	require.Len(t, d.Removed, 2)
}
