package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLengthResolveCells(t *testing.T) {
	n, ok := Cells(5).Resolve(100, true)
	assert.True(t, ok)
	assert.Equal(t, 5, n)
}

func TestLengthResolvePercentNeedsKnownBasis(t *testing.T) {
	_, ok := Percent(50).Resolve(0, false)
	assert.False(t, ok)

	n, ok := Percent(50).Resolve(20, true)
	assert.True(t, ok)
	assert.Equal(t, 10, n)
}

func TestLengthAutoNeverResolvesHere(t *testing.T) {
	_, ok := AutoLength.Resolve(20, true)
	assert.False(t, ok)
}

func TestLengthIsAuto(t *testing.T) {
	assert.True(t, AutoLength.IsAuto())
	assert.False(t, Cells(1).IsAuto())
}
