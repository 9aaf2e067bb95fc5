// Package theme resolves CSS color tokens and theme variables into
// 24-bit Colors, and loads the theme JSON schema and the
// ANSI/256/16-color downgrade table used when the terminal is not
// 24-bit capable.
package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a fully resolved 24-bit color with an optional alpha channel,
// already flattened against a background by the time it reaches a Cell —
// a cell carries its own resolved color, never an inherited reference.
type Color struct {
	R, G, B     uint8
	A           float32 // 1.0 = opaque; used only during flattening
	Transparent bool
	set         bool
}

// IsSet reports whether this Color carries an actual value, as opposed to
// being the zero value used for "unspecified" in ComputedStyle.
func (c Color) IsSet() bool { return c.set }

// RGB constructs an opaque Color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1, set: true}
}

// RGBA constructs a Color with alpha in [0,1].
func RGBA(r, g, b uint8, a float32) Color {
	return Color{R: r, G: g, B: b, A: a, set: true}
}

// TransparentColor is the fully transparent color token.
var TransparentColor = Color{Transparent: true, set: true}

// FlattenOver composes c over bg using c's alpha channel, flattening
// against the computed parent background.
func (c Color) FlattenOver(bg Color) Color {
	if c.Transparent {
		return bg
	}
	if c.A >= 1 || !bg.set {
		return RGB(c.R, c.G, c.B)
	}
	a := c.A
	r := uint8(float32(c.R)*a + float32(bg.R)*(1-a))
	g := uint8(float32(c.G)*a + float32(bg.G)*(1-a))
	b := uint8(float32(c.B)*a + float32(bg.B)*(1-a))
	return RGB(r, g, b)
}

// namedColors is the standard 16-color keyword table plus the grey/gray
// aliases; "transparent" is handled separately by ParseColor.
var namedColors = map[string]Color{
	"black":   RGB(0, 0, 0),
	"red":     RGB(205, 49, 49),
	"green":   RGB(13, 188, 121),
	"yellow":  RGB(229, 229, 16),
	"blue":    RGB(36, 114, 200),
	"magenta": RGB(188, 63, 188),
	"cyan":    RGB(17, 168, 205),
	"white":   RGB(229, 229, 229),
	"grey":    RGB(102, 102, 102),
	"gray":    RGB(102, 102, 102),

	"brightblack":   RGB(102, 102, 102),
	"brightred":     RGB(241, 76, 76),
	"brightgreen":   RGB(35, 209, 139),
	"brightyellow":  RGB(245, 245, 67),
	"brightblue":    RGB(59, 142, 234),
	"brightmagenta": RGB(214, 112, 214),
	"brightcyan":    RGB(41, 184, 219),
	"brightwhite":   RGB(255, 255, 255),
}

// ParseColor parses a CSS color literal: named colors, hex #rgb/#rrggbb,
// rgb()/rgba(), hsl()/hsla(). var() and theme lookups are handled one
// level up since they need a Resolver.
func ParseColor(raw string) (Color, bool) {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(s)

	if lower == "transparent" {
		return TransparentColor, true
	}
	if c, ok := namedColors[lower]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	if strings.HasPrefix(lower, "rgba(") || strings.HasPrefix(lower, "rgb(") {
		return parseRGBFunc(s)
	}
	if strings.HasPrefix(lower, "hsla(") || strings.HasPrefix(lower, "hsl(") {
		return parseHSLFunc(s)
	}
	return Color{}, false
}

func parseHex(s string) (Color, bool) {
	hex := strings.TrimPrefix(s, "#")
	expand := func(c byte) (byte, byte) { return c, c }
	var r, g, b byte
	switch len(hex) {
	case 3:
		r1, r2 := expand(hex[0])
		g1, g2 := expand(hex[1])
		b1, b2 := expand(hex[2])
		rv, err1 := strconv.ParseUint(string([]byte{r1, r2}), 16, 8)
		gv, err2 := strconv.ParseUint(string([]byte{g1, g2}), 16, 8)
		bv, err3 := strconv.ParseUint(string([]byte{b1, b2}), 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{}, false
		}
		r, g, b = byte(rv), byte(gv), byte(bv)
	case 6:
		rv, err1 := strconv.ParseUint(hex[0:2], 16, 8)
		gv, err2 := strconv.ParseUint(hex[2:4], 16, 8)
		bv, err3 := strconv.ParseUint(hex[4:6], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{}, false
		}
		r, g, b = byte(rv), byte(gv), byte(bv)
	default:
		return Color{}, false
	}
	return RGB(r, g, b), true
}

func parseFuncArgs(s string) ([]string, bool) {
	open := strings.Index(s, "(")
	close := strings.LastIndex(s, ")")
	if open < 0 || close < 0 || close < open {
		return nil, false
	}
	inner := s[open+1 : close]
	parts := strings.Split(inner, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out, true
}

func parseRGBFunc(s string) (Color, bool) {
	args, ok := parseFuncArgs(s)
	if !ok || (len(args) != 3 && len(args) != 4) {
		return Color{}, false
	}
	r, err1 := strconv.Atoi(args[0])
	g, err2 := strconv.Atoi(args[1])
	b, err3 := strconv.Atoi(args[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return Color{}, false
	}
	a := float32(1)
	if len(args) == 4 {
		f, err := strconv.ParseFloat(args[3], 32)
		if err != nil {
			return Color{}, false
		}
		a = float32(f)
	}
	return RGBA(clamp8(r), clamp8(g), clamp8(b), a), true
}

func parseHSLFunc(s string) (Color, bool) {
	args, ok := parseFuncArgs(s)
	if !ok || (len(args) != 3 && len(args) != 4) {
		return Color{}, false
	}
	h, err1 := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	sat, err2 := strconv.ParseFloat(strings.TrimSuffix(args[1], "%"), 64)
	l, err3 := strconv.ParseFloat(strings.TrimSuffix(args[2], "%"), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return Color{}, false
	}
	a := float32(1)
	if len(args) == 4 {
		f, err := strconv.ParseFloat(args[3], 32)
		if err != nil {
			return Color{}, false
		}
		a = float32(f)
	}
	c := colorful.Hsl(h, sat/100, l/100)
	r, g, b := c.RGB255()
	return RGBA(r, g, b, a), true
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func (c Color) String() string {
	if c.Transparent {
		return "transparent"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
