// Package config loads the engine's tunables from an optional
// cssterm.toml file. Every field has a documented default; an invalid or
// missing file never prevents startup, it only produces warnings, which
// Load returns to the caller.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/cssterm/cssterm/internal/errs"
)

// EngineConfig is the full set of engine tunables.
type EngineConfig struct {
	// TargetFPS caps the scheduler's frame rate. Must be in [1, 240].
	TargetFPS int `toml:"target_fps"`

	// IdleAfterFrames is the number of consecutive dirty-free frames
	// before the scheduler starts stretching its sleep interval.
	IdleAfterFrames int `toml:"idle_after_frames"`

	// IdleMaxMillis caps how far the adaptive-idle sleep interval is
	// allowed to stretch.
	IdleMaxMillis int `toml:"idle_max_millis"`

	// EAWAmbiguousWide treats Unicode East-Asian "Ambiguous" width
	// characters as width 2 when true, width 1 when false.
	EAWAmbiguousWide bool `toml:"eaw_ambiguous_wide"`

	// Mouse, BracketedPaste, FocusReporting enable the corresponding
	// optional terminal input modes.
	Mouse          bool `toml:"mouse"`
	BracketedPaste bool `toml:"bracketed_paste"`
	FocusReporting bool `toml:"focus_reporting"`

	// EventBudgetPerFrame bounds how many driver events the scheduler
	// drains before running the pipeline, so a flood of MouseMove events
	// cannot starve rendering.
	EventBudgetPerFrame int `toml:"event_budget_per_frame"`

	// StyleCacheCapacity and LayoutCacheCapacity size the respective LRU
	// caches, in entries.
	StyleCacheCapacity  int `toml:"style_cache_capacity"`
	LayoutCacheCapacity int `toml:"layout_cache_capacity"`
}

// Default returns the documented baseline configuration.
func Default() EngineConfig {
	return EngineConfig{
		TargetFPS:           60,
		IdleAfterFrames:     30,
		IdleMaxMillis:       250,
		EAWAmbiguousWide:    false,
		Mouse:               true,
		BracketedPaste:      true,
		FocusReporting:      true,
		EventBudgetPerFrame: 256,
		StyleCacheCapacity:  2048,
		LayoutCacheCapacity: 1024,
	}
}

// Load reads path (if it exists) and overlays its values onto Default,
// returning one ConfigError per out-of-range field it had to fall back
// on. A missing file is not an error: Load silently returns the default.
func Load(path string) (EngineConfig, []error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}

	var raw EngineConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cfg, []error{&errs.ConfigError{Field: "file", Value: path, Using: "defaults"}}
	}

	var warnings []error
	apply := func(key, field string, ok bool, got, using interface{}, set func()) {
		if !meta.IsDefined(key) {
			return
		}
		if ok {
			set()
			return
		}
		warnings = append(warnings, &errs.ConfigError{Field: field, Value: got, Using: using})
	}

	apply("target_fps", "target_fps", raw.TargetFPS >= 1 && raw.TargetFPS <= 240, raw.TargetFPS, cfg.TargetFPS, func() { cfg.TargetFPS = raw.TargetFPS })
	apply("idle_after_frames", "idle_after_frames", raw.IdleAfterFrames >= 0, raw.IdleAfterFrames, cfg.IdleAfterFrames, func() { cfg.IdleAfterFrames = raw.IdleAfterFrames })
	apply("idle_max_millis", "idle_max_millis", raw.IdleMaxMillis >= 0, raw.IdleMaxMillis, cfg.IdleMaxMillis, func() { cfg.IdleMaxMillis = raw.IdleMaxMillis })
	apply("event_budget_per_frame", "event_budget_per_frame", raw.EventBudgetPerFrame >= 1, raw.EventBudgetPerFrame, cfg.EventBudgetPerFrame, func() { cfg.EventBudgetPerFrame = raw.EventBudgetPerFrame })
	apply("style_cache_capacity", "style_cache_capacity", raw.StyleCacheCapacity >= 1, raw.StyleCacheCapacity, cfg.StyleCacheCapacity, func() { cfg.StyleCacheCapacity = raw.StyleCacheCapacity })
	apply("layout_cache_capacity", "layout_cache_capacity", raw.LayoutCacheCapacity >= 1, raw.LayoutCacheCapacity, cfg.LayoutCacheCapacity, func() { cfg.LayoutCacheCapacity = raw.LayoutCacheCapacity })

	// Booleans have no invalid range; only overwrite defaults when present.
	if meta.IsDefined("eaw_ambiguous_wide") {
		cfg.EAWAmbiguousWide = raw.EAWAmbiguousWide
	}
	if meta.IsDefined("mouse") {
		cfg.Mouse = raw.Mouse
	}
	if meta.IsDefined("bracketed_paste") {
		cfg.BracketedPaste = raw.BracketedPaste
	}
	if meta.IsDefined("focus_reporting") {
		cfg.FocusReporting = raw.FocusReporting
	}

	return cfg, warnings
}
