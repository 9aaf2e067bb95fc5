package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cssterm/cssterm/config"
	"github.com/cssterm/cssterm/driver"
	"github.com/cssterm/cssterm/element"
	"github.com/cssterm/cssterm/engine"
	"github.com/cssterm/cssterm/internal/logging"
	"github.com/cssterm/cssterm/reactive"
	"github.com/cssterm/cssterm/style"
	"github.com/cssterm/cssterm/theme"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a small interactive counter through the full frame loop",
		Long:  "demo opens the tty in raw/alt-screen mode. Press +/- to change the count, Ctrl+D to quit.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

const demoCSS = `
body {
  background: #0d1117;
  color: #c9d1d9;
}
#counter {
  border-style: round;
  border-color: cyan;
  padding: 1 3;
  width: 40;
}
#hint {
  color: grey;
}
`

func demoTheme() (*theme.Theme, error) {
	t := &theme.Theme{
		Name: "demo-dark",
		Mode: "dark",
		Palette: map[string]theme.ColorSpec{
			"fg": {Hex: "#c9d1d9"},
			"bg": {Hex: "#0d1117"},
		},
		Semantic: map[string]string{
			"foreground": "fg",
			"background": "bg",
		},
	}
	return t, nil
}

func runDemo() error {
	cfg := config.Default()
	log := logging.New(nil)

	count := reactive.NewSignal(0)

	sheet, _, parseErrs := style.NewParser(demoCSS, "<demo>").Parse()
	for _, e := range parseErrs {
		log.Warn().Str("css", e.Error()).Msg("dropping malformed rule")
	}

	t, err := demoTheme()
	if err != nil {
		return err
	}
	themeRes, err := theme.Resolve(t, func(string) (*theme.Theme, error) {
		return nil, fmt.Errorf("demo theme has no parent")
	})
	if err != nil {
		return err
	}

	drv := driver.New(driver.Options{
		Mouse:          cfg.Mouse,
		BracketedPaste: cfg.BracketedPaste,
		FocusReporting: cfg.FocusReporting,
	})

	rootFn := func() *element.Element {
		n := count.Get()
		return element.New("body").WithChildren(
			element.New("div").WithID("counter").WithText(fmt.Sprintf("**Count: %d**", n)).WithAttr("data-markup", "true"),
			element.New("div").WithID("hint").WithText("press + / - to change, Ctrl+D to quit"),
		)
	}

	e := engine.New(cfg, drv, sheet, themeRes, rootFn, nil, log)
	e.Router().OnGlobal(func(ev driver.Event) bool {
		key, ok := ev.(driver.KeyEvent)
		if !ok || key.Code != driver.KeyChar {
			return false
		}
		switch key.Rune {
		case '+':
			count.Set(count.Get() + 1)
			return true
		case '-':
			count.Set(count.Get() - 1)
			return true
		}
		return false
	})

	return e.Run()
}
