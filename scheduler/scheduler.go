// Package scheduler implements the single-threaded cooperative frame
// loop: drain driver events up to a bounded budget, mark state dirty,
// run the render pipeline when dirty or animating, flush writes, then
// sleep until the next frame deadline or a new event wakes the loop
// early. Adaptive idle stretches the sleep interval when nothing has
// been dirty for a run of consecutive frames.
package scheduler

import (
	"time"

	"github.com/cssterm/cssterm/config"
	"github.com/cssterm/cssterm/driver"
	"github.com/cssterm/cssterm/internal/errs"
	"github.com/cssterm/cssterm/internal/logging"
)

// OnEvent applies one decoded event to application state and reports
// whether it caused a state change that requires a new frame.
type OnEvent func(driver.Event) bool

// Render runs one full element->style->layout->rasterize->diff->flush
// pipeline pass. full forces every cell to be repainted regardless of
// diff state (first frame, post-resize, post-resume, retry-after-error).
type Render func(full bool) error

// Animating reports whether an animation is in flight, which keeps the
// loop rendering even with no new input.
type Animating func() bool

// Scheduler owns the frame-pacing loop.
type Scheduler struct {
	cfg       config.EngineConfig
	events    <-chan driver.Event
	onEvent   OnEvent
	render    Render
	animating Animating
	log       *logging.Logger

	frameDuration time.Duration
	maxIdle       time.Duration
}

// New constructs a Scheduler. animating may be nil, meaning the host
// never runs animations and dirty state alone drives rendering.
func New(cfg config.EngineConfig, events <-chan driver.Event, onEvent OnEvent, render Render, animating Animating, log *logging.Logger) *Scheduler {
	if animating == nil {
		animating = func() bool { return false }
	}
	return &Scheduler{
		cfg:           cfg,
		events:        events,
		onEvent:       onEvent,
		render:        render,
		animating:     animating,
		log:           log,
		frameDuration: time.Second / time.Duration(cfg.TargetFPS),
		maxIdle:       time.Duration(cfg.IdleMaxMillis) * time.Millisecond,
	}
}

// Run executes the loop until the event channel closes (tty EOF), a
// ShutdownEvent arrives, or a second consecutive IoError defeats the
// retry-with-full-redraw policy.
func (s *Scheduler) Run() error {
	idleInterval := s.frameDuration
	consecutiveIdle := 0

	for {
		batch, shutdown := s.drain(idleInterval)

		dirty := false
		for _, ev := range batch {
			if s.onEvent(ev) {
				dirty = true
			}
		}

		if dirty || s.animating() {
			if err := s.renderWithRetry(); err != nil {
				return err
			}
			consecutiveIdle = 0
			idleInterval = s.frameDuration
		} else {
			consecutiveIdle++
			if consecutiveIdle >= s.cfg.IdleAfterFrames && idleInterval < s.maxIdle {
				idleInterval *= 2
				if idleInterval > s.maxIdle {
					idleInterval = s.maxIdle
				}
			}
		}

		if shutdown {
			return nil
		}
	}
}

// drain blocks on the event channel for up to deadline waiting for the
// first event of the frame, then non-blockingly collects up to the
// configured budget more, coalescing consecutive Resize/MouseMove
// duplicates so a flood of either cannot starve the frame. It reports
// shutdown=true if the channel closed or a ShutdownEvent arrived.
func (s *Scheduler) drain(deadline time.Duration) (batch []driver.Event, shutdown bool) {
	timer := time.NewTimer(deadline)
	defer timer.Stop()

	select {
	case ev, ok := <-s.events:
		if !ok {
			return nil, true
		}
		if isShutdown(ev) {
			return nil, true
		}
		batch = append(batch, ev)
	case <-timer.C:
		return nil, false
	}

	for len(batch) < s.cfg.EventBudgetPerFrame {
		select {
		case ev, ok := <-s.events:
			if !ok {
				return batch, true
			}
			if isShutdown(ev) {
				return batch, true
			}
			batch = coalesce(batch, ev)
		default:
			return batch, false
		}
	}
	return batch, false
}

func isShutdown(ev driver.Event) bool {
	_, ok := ev.(driver.ShutdownEvent)
	return ok
}

// coalesce appends ev to batch, replacing the previous entry in place if
// both it and ev are the same coalescible kind (Resize or MouseMove with
// no buttons held) — only the latest of a run matters for rendering.
func coalesce(batch []driver.Event, ev driver.Event) []driver.Event {
	if len(batch) == 0 {
		return append(batch, ev)
	}
	last := batch[len(batch)-1]

	switch e := ev.(type) {
	case driver.ResizeEvent:
		if _, ok := last.(driver.ResizeEvent); ok {
			batch[len(batch)-1] = e
			return batch
		}
	case driver.MouseEvent:
		if pe, ok := last.(driver.MouseEvent); ok && e.Action == driver.MouseMove && pe.Action == driver.MouseMove {
			batch[len(batch)-1] = e
			return batch
		}
	}
	return append(batch, ev)
}

// renderWithRetry runs the pipeline once; on an IoError it retries a
// single time with a forced full redraw before giving up.
func (s *Scheduler) renderWithRetry() error {
	err := s.render(false)
	if err == nil {
		return nil
	}
	ioErr, ok := err.(*errs.IoError)
	if !ok {
		return err
	}
	if s.log != nil {
		s.log.Warn().Err(ioErr).Msg("tty write failed, retrying with full redraw")
	}
	return s.render(true)
}
