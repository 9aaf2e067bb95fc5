// Command cssterm is the reference CLI for the terminal styling engine:
// it renders one-off inline-markup or syntax-highlighted strings to
// stdout for quick checks, validates theme/stylesheet documents, and
// runs a small built-in interactive demo through the full engine.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cssterm",
		Short: "A CSS-styled terminal UI engine",
		Long: "cssterm renders an element tree through a CSS cascade onto a terminal\n" +
			"screen. This binary exposes small standalone pieces of that pipeline\n" +
			"(markup, syntax highlighting, theme/stylesheet validation) plus a demo\n" +
			"that drives the full frame loop.",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd())
	root.AddCommand(newHighlightCmd())
	root.AddCommand(newThemeCmd())
	root.AddCommand(newStyleCmd())
	root.AddCommand(newDemoCmd())
	return root
}
