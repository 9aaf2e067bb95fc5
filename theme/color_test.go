package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorHexShortAndLong(t *testing.T) {
	c1, ok := ParseColor("#fff")
	require.True(t, ok)
	assert.Equal(t, RGB(255, 255, 255), c1)

	c2, ok := ParseColor("#336699")
	require.True(t, ok)
	assert.Equal(t, RGB(0x33, 0x66, 0x99), c2)
}

func TestParseColorNamed(t *testing.T) {
	c, ok := ParseColor("Red")
	require.True(t, ok)
	assert.Equal(t, RGB(205, 49, 49), c)
}

func TestParseColorTransparent(t *testing.T) {
	c, ok := ParseColor("transparent")
	require.True(t, ok)
	assert.True(t, c.Transparent)
}

func TestParseColorRGBFunc(t *testing.T) {
	c, ok := ParseColor("rgb(10, 20, 30)")
	require.True(t, ok)
	assert.Equal(t, RGB(10, 20, 30), c)
}

func TestParseColorRGBAFunc(t *testing.T) {
	c, ok := ParseColor("rgba(255, 0, 0, 0.5)")
	require.True(t, ok)
	assert.InDelta(t, 0.5, c.A, 0.001)
}

func TestParseColorHSLFunc(t *testing.T) {
	c, ok := ParseColor("hsl(0, 100%, 50%)")
	require.True(t, ok)
	assert.Equal(t, uint8(255), c.R)
}

func TestParseColorInvalid(t *testing.T) {
	_, ok := ParseColor("not-a-color")
	assert.False(t, ok)
}

func TestFlattenOverOpaqueIgnoresBackground(t *testing.T) {
	c := RGB(10, 20, 30)
	bg := RGB(200, 200, 200)
	assert.Equal(t, c.R, c.FlattenOver(bg).R)
}

func TestFlattenOverTransparentReturnsBackground(t *testing.T) {
	bg := RGB(9, 9, 9)
	assert.Equal(t, bg, TransparentColor.FlattenOver(bg))
}

func TestFlattenOverHalfAlphaBlends(t *testing.T) {
	c := RGBA(255, 255, 255, 0.5)
	bg := RGB(0, 0, 0)
	blended := c.FlattenOver(bg)
	assert.InDelta(t, 127, int(blended.R), 2)
}
