package theme

// ansi16Table is the standard terminal 16-color palette in the order the
// SGR 30-37/90-97 codes expect (black, red, green, yellow, blue, magenta,
// cyan, white, then bright variants).
var ansi16Table = [16]Color{
	RGB(0, 0, 0), RGB(205, 49, 49), RGB(13, 188, 121), RGB(229, 229, 16),
	RGB(36, 114, 200), RGB(188, 63, 188), RGB(17, 168, 205), RGB(229, 229, 229),
	RGB(102, 102, 102), RGB(241, 76, 76), RGB(35, 209, 139), RGB(245, 245, 67),
	RGB(59, 142, 234), RGB(214, 112, 214), RGB(41, 184, 219), RGB(255, 255, 255),
}

// ANSIToRGB maps a 0-255 ANSI color index to its approximate RGB value,
// following the conventional xterm 256-color cube/ramp layout.
func ANSIToRGB(idx int) Color {
	switch {
	case idx < 0:
		return RGB(0, 0, 0)
	case idx < 16:
		return ansi16Table[idx]
	case idx < 232:
		i := idx - 16
		r := i / 36
		g := (i % 36) / 6
		b := i % 6
		step := func(v int) uint8 {
			if v == 0 {
				return 0
			}
			return uint8(55 + v*40)
		}
		return RGB(step(r), step(g), step(b))
	default:
		level := uint8(8 + (idx-232)*10)
		return RGB(level, level, level)
	}
}

// RGBToANSI256 downgrades a 24-bit color to the nearest xterm 256-color
// index, used when the terminal does not advertise truecolor support.
func RGBToANSI256(c Color) int {
	best, bestDist := 16, int(^uint(0)>>1)
	for i := 16; i < 256; i++ {
		cand := ANSIToRGB(i)
		d := colorDist(c, cand)
		if d < bestDist {
			bestDist, best = d, i
		}
	}
	return best
}

// RGBToANSI16 downgrades a 24-bit color to the nearest of the 16 standard
// terminal colors, for terminals without 256-color support.
func RGBToANSI16(c Color) int {
	best, bestDist := 0, int(^uint(0)>>1)
	for i, cand := range ansi16Table {
		d := colorDist(c, cand)
		if d < bestDist {
			bestDist, best = d, i
		}
	}
	return best
}

func colorDist(a, b Color) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// ColorMode describes the color depth a terminal driver advertised, used
// to pick which downgrade (if any) to apply before emitting SGR codes.
type ColorMode int

const (
	ColorModeTrueColor ColorMode = iota
	ColorMode256
	ColorMode16
)

// Downgrade converts c to the representation appropriate for mode, keeping
// it untouched for ColorModeTrueColor.
func Downgrade(c Color, mode ColorMode) Color {
	switch mode {
	case ColorMode256:
		return ANSIToRGB(RGBToANSI256(c))
	case ColorMode16:
		return ANSIToRGB(RGBToANSI16(c))
	default:
		return c
	}
}
