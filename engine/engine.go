// Package engine owns the frame loop end to end: it holds the driver, the
// screen's two buffers, the active stylesheet and theme, the router, and
// the per-frame caches, and wires them through scheduler.Scheduler as the
// single element -> style -> layout -> rasterize -> diff -> write
// pipeline each frame runs.
package engine

import (
	"os"

	"github.com/cssterm/cssterm/config"
	"github.com/cssterm/cssterm/driver"
	"github.com/cssterm/cssterm/element"
	"github.com/cssterm/cssterm/internal/errs"
	"github.com/cssterm/cssterm/internal/logging"
	"github.com/cssterm/cssterm/layout"
	"github.com/cssterm/cssterm/render"
	"github.com/cssterm/cssterm/router"
	"github.com/cssterm/cssterm/scheduler"
	"github.com/cssterm/cssterm/style"
	"github.com/cssterm/cssterm/theme"
)

// RootFunc returns the host's current element tree snapshot. The engine
// calls it for every key, paste and mouse event it handles and once more
// before every render, never mutating or retaining it past that frame.
type RootFunc func() *element.Element

// AnimatingFunc reports whether a host-driven animation is in flight,
// keeping the frame loop rendering with no new input.
type AnimatingFunc func() bool

// Engine ties one running terminal session's state together.
type Engine struct {
	cfg    config.EngineConfig
	drv    *driver.Driver
	log    *logging.Logger
	router *router.Router

	sheet    *style.Stylesheet
	themeRes *theme.Resolver
	rootFn   RootFunc

	screen      *render.Screen
	inv         *element.Invalidator
	styleCache  *style.Cache
	layoutCache *layout.Cache

	pseudoState map[string]style.PseudoState
	ancestors   map[string][]string

	viewport layout.Rect
	lastLaid *layout.LaidElement

	sched *scheduler.Scheduler
}

// New constructs an Engine. sheet and themeRes are the active stylesheet
// and resolved theme; rootFn is called on every frame to obtain the
// host's current element tree.
func New(cfg config.EngineConfig, drv *driver.Driver, sheet *style.Stylesheet, themeRes *theme.Resolver, rootFn RootFunc, animating AnimatingFunc, log *logging.Logger) *Engine {
	e := &Engine{
		cfg:         cfg,
		drv:         drv,
		log:         log,
		router:      router.New(),
		sheet:       sheet,
		themeRes:    themeRes,
		rootFn:      rootFn,
		inv:         element.NewInvalidator(),
		styleCache:  style.NewCache(cfg.StyleCacheCapacity),
		layoutCache: layout.NewCache(cfg.LayoutCacheCapacity),
		pseudoState: make(map[string]style.PseudoState),
	}
	if cfg.EAWAmbiguousWide {
		layout.SetAmbiguousWidthPolicy(layout.AmbiguousWide)
	}

	events := drv.Events()
	e.sched = scheduler.New(cfg, events, e.onEvent, e.render, animating, log)
	return e
}

// Router exposes the event router so hosts can register per-id and
// global handlers before calling Run.
func (e *Engine) Router() *router.Router { return e.router }

// Run opens the driver, primes the first frame, and blocks running the
// frame loop until shutdown.
func (e *Engine) Run() error {
	cols, rows, err := e.drv.Open()
	if err != nil {
		return &errs.IoError{Op: "open", Err: err}
	}
	defer e.drv.Close()

	e.viewport = layout.Rect{X: 0, Y: 0, W: cols, H: rows}
	e.screen = render.NewScreen(cols, rows, e.drv, detectColorMode())

	root := e.rootFn()
	e.inv.Accept(root)
	e.rebuildFocusRing(root)

	if err := e.render(true); err != nil {
		return err
	}

	return e.sched.Run()
}

// detectColorMode sniffs COLORTERM/TERM the way most terminal
// applications do; there is no library in use elsewhere in this module
// for this narrow a check, so it stays a small stdlib helper.
func detectColorMode() theme.ColorMode {
	if v := os.Getenv("COLORTERM"); v == "truecolor" || v == "24bit" {
		return theme.ColorModeTrueColor
	}
	term := os.Getenv("TERM")
	switch {
	case term == "":
		return theme.ColorMode16
	case contains(term, "256color"):
		return theme.ColorMode256
	default:
		return theme.ColorModeTrueColor
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
