package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// AmbiguousWidthPolicy controls how East-Asian "ambiguous width" runes are
// measured, since terminals disagree on whether they are narrow or wide.
type AmbiguousWidthPolicy int

const (
	AmbiguousNarrow AmbiguousWidthPolicy = iota
	AmbiguousWide
)

var ambiguousPolicy = AmbiguousNarrow

// SetAmbiguousWidthPolicy configures grapheme-width measurement globally
// for the process, matching runewidth's own process-wide EastAsianWidth
// condition toggle.
func SetAmbiguousWidthPolicy(p AmbiguousWidthPolicy) {
	ambiguousPolicy = p
	runewidth.DefaultCondition.EastAsianWidth = p == AmbiguousWide
}

// ClusterWidth returns the display width, in cells, of a single grapheme
// cluster (which may be more than one rune, e.g. a combining accent or an
// emoji ZWJ sequence).
func ClusterWidth(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w < 0 {
		w = 0
	}
	return w
}

// MeasureLine returns the total display width of a single line of text
// (no newlines), measured grapheme cluster by grapheme cluster.
func MeasureLine(line string) int {
	width := 0
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		width += ClusterWidth(g.Str())
	}
	return width
}

// MinContentWidth is the width of the single widest unbreakable token
// (run of non-whitespace), per the layout engine's min-content rule.
func MinContentWidth(text string) int {
	max := 0
	for _, word := range strings.Fields(text) {
		if w := MeasureLine(word); w > max {
			max = w
		}
	}
	return max
}

// MaxContentWidth is the width text would take laid out on a single line.
func MaxContentWidth(text string) int {
	max := 0
	for _, line := range strings.Split(text, "\n") {
		if w := MeasureLine(line); w > max {
			max = w
		}
	}
	return max
}

// WrapText greedily wraps text to fit within width cells, breaking on
// whitespace where available and falling back to a grapheme-cluster
// break mid-token when a single word exceeds width.
func WrapText(text string, width int) []string {
	if width <= 0 {
		width = 1
	}
	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		out = append(out, wrapParagraph(paragraph, width)...)
	}
	return out
}

func wrapParagraph(p string, width int) []string {
	if p == "" {
		return []string{""}
	}
	var lines []string
	var cur strings.Builder
	curWidth := 0

	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curWidth = 0
	}

	words := strings.Fields(p)
	for i, word := range words {
		wordWidth := MeasureLine(word)
		sep := ""
		sepWidth := 0
		if curWidth > 0 {
			sep = " "
			sepWidth = 1
		}
		if curWidth+sepWidth+wordWidth <= width {
			cur.WriteString(sep)
			cur.WriteString(word)
			curWidth += sepWidth + wordWidth
			continue
		}
		if curWidth > 0 {
			flush()
		}
		if wordWidth > width {
			for _, chunk := range breakByGrapheme(word, width) {
				lines = append(lines, chunk)
			}
			curWidth = 0
			continue
		}
		cur.WriteString(word)
		curWidth = wordWidth
		_ = i
	}
	if curWidth > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

func breakByGrapheme(word string, width int) []string {
	var out []string
	var cur strings.Builder
	curWidth := 0
	g := uniseg.NewGraphemes(word)
	for g.Next() {
		cw := ClusterWidth(g.Str())
		if curWidth+cw > width && curWidth > 0 {
			out = append(out, cur.String())
			cur.Reset()
			curWidth = 0
		}
		cur.WriteString(g.Str())
		curWidth += cw
	}
	if curWidth > 0 {
		out = append(out, cur.String())
	}
	return out
}
