package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDowngradeTrueColorIsIdentity(t *testing.T) {
	c := RGB(123, 45, 67)
	assert.Equal(t, c, Downgrade(c, ColorModeTrueColor))
}

func TestDowngrade16PicksBlackForBlack(t *testing.T) {
	c := RGB(1, 1, 1)
	down := Downgrade(c, ColorMode16)
	assert.Equal(t, RGB(0, 0, 0), down)
}

func TestDowngrade256StaysCloseToOriginal(t *testing.T) {
	c := RGB(200, 0, 0)
	down := Downgrade(c, ColorMode256)
	assert.Less(t, colorDist(c, down), 5000)
}

func TestANSIToRGBStandardIndices(t *testing.T) {
	assert.Equal(t, RGB(0, 0, 0), ANSIToRGB(0))
	assert.Equal(t, RGB(255, 255, 255), ANSIToRGB(15))
}
