package main

import (
	"os"
	"strings"

	"github.com/alecthomas/chroma/lexers"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cssterm/cssterm/element"
	"github.com/cssterm/cssterm/layout"
	"github.com/cssterm/cssterm/render"
	"github.com/cssterm/cssterm/style"
	"github.com/cssterm/cssterm/theme"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render [text]",
		Short: "Render inline emphasis markup to the terminal",
		Long: "render parses the bare inline markup subset (**bold**, *italic*,\n" +
			"__underline__, ~~strike~~, #color(text), !#color(text)) and paints\n" +
			"the result with real SGR sequences, the same way a data-markup text\n" +
			"leaf paints inside the engine.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderLeaf(strings.Join(args, " "), "", false)
		},
	}
}

func newHighlightCmd() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "highlight [file]",
		Short: "Syntax-highlight a source file to the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if lang == "" {
				lang = lexerNameForFile(args[0])
			}
			return renderLeaf(string(data), lang, true)
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "lexer name (defaults to detecting from the file extension)")
	return cmd
}

// lexerNameForFile resolves chroma's filename-based lexer match to a
// name HighlightSpans can look up by, falling back to "" (plaintext)
// when nothing matches.
func lexerNameForFile(path string) string {
	l := lexers.Match(path)
	if l == nil {
		return ""
	}
	return l.Config().Name
}

// renderLeaf paints one text leaf end to end through the real layout and
// rasterize stages: a single auto-width block carrying either markupAttr
// or langAttr, laid out against the terminal's current width, painted
// into a buffer, and flushed straight to stdout.
func renderLeaf(text, lang string, highlight bool) error {
	cols, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 {
		cols = 80
	}

	el := element.New("div").WithText(text)
	if highlight {
		el = el.WithAttr("data-lang", lang)
	} else {
		el = el.WithAttr("data-markup", "true")
	}

	base := style.DefaultComputedStyle()
	if fg, ok := theme.ParseColor("white"); ok {
		base.Color = fg
	}
	lookup := func(*element.Element) style.ComputedStyle { return base }

	viewport := layout.Rect{X: 0, Y: 0, W: cols, H: strings.Count(text, "\n") + 2}
	laid := layout.Layout(el, lookup, viewport)

	screen := render.NewScreen(viewport.W, viewport.H, os.Stdout, theme.ColorModeTrueColor)
	(render.Rasterizer{}).Paint(screen.Back, laid)
	screen.ForceFullRedraw()
	_, err = screen.Flush()
	return err
}
