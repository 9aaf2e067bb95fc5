// Package router dispatches decoded driver events to the focused and
// hovered elements, maintains the tab-order focus ring, and applies the
// framework's own default key bindings (Tab/Shift-Tab focus movement).
package router

import "github.com/cssterm/cssterm/driver"

// Handler reacts to one event for one element id. Returning true marks
// the event consumed, stopping further bubbling and default handling.
type Handler func(ev driver.Event) bool

// Router holds focus/hover state and the three tiers of handlers
// described by the dispatch contract: global pre-handlers run first,
// then the focused element and its ancestors (bubbling), then default
// handlers.
type Router struct {
	focusID     string
	hoverID     string
	mouseDownID string

	ring       []string
	ringCursor int

	globalPre []Handler
	handlers  map[string]Handler
	defaults  []Handler
}

// New constructs an empty Router with the framework's default Tab/
// Shift-Tab and arrow-key handlers already installed.
func New() *Router {
	r := &Router{handlers: make(map[string]Handler)}
	r.defaults = []Handler{r.defaultFocusAdvance, r.defaultArrowForward}
	return r
}

// OnGlobal registers an app-level shortcut handler, run before anything
// else for every event.
func (r *Router) OnGlobal(h Handler) { r.globalPre = append(r.globalPre, h) }

// On registers a handler for one element id, used both when that
// element is focused and when an event bubbles up through it.
func (r *Router) On(id string, h Handler) { r.handlers[id] = h }

// RebuildRing replaces the focus ring with ids (elements carrying a
// truthy tabindex, in document order). If the current focus target is no
// longer present, focus is cleared.
func (r *Router) RebuildRing(ids []string) {
	r.ring = append([]string(nil), ids...)
	r.ringCursor = -1
	for i, id := range r.ring {
		if id == r.focusID {
			r.ringCursor = i
			return
		}
	}
	r.focusID = ""
}

// Focus moves focus to id if it is present in the ring, returning
// whether the move succeeded.
func (r *Router) Focus(id string) bool {
	for i, cand := range r.ring {
		if cand == id {
			r.focusID = id
			r.ringCursor = i
			return true
		}
	}
	return false
}

// FocusID returns the currently focused element id, or "" if none.
func (r *Router) FocusID() string { return r.focusID }

// SetHover updates the hover target, used for :hover style matching.
func (r *Router) SetHover(id string) { r.hoverID = id }

// HoverID returns the current hover target.
func (r *Router) HoverID() string { return r.hoverID }

// Dispatch delivers ev through the three-tier order: global pre-handlers,
// then the focused element and each entry of ancestors (innermost
// first, i.e. bubbling), then default handlers. ancestors should list
// the focused element's ancestor ids from parent to root.
func (r *Router) Dispatch(ev driver.Event, ancestors []string) {
	for _, h := range r.globalPre {
		if h(ev) {
			return
		}
	}

	if r.focusID != "" {
		if h, ok := r.handlers[r.focusID]; ok && h(ev) {
			return
		}
	}
	for _, id := range ancestors {
		if h, ok := r.handlers[id]; ok && h(ev) {
			return
		}
	}

	for _, h := range r.defaults {
		if h(ev) {
			return
		}
	}
}

func (r *Router) defaultFocusAdvance(ev driver.Event) bool {
	k, ok := ev.(driver.KeyEvent)
	if !ok || k.Code != driver.KeyTab || len(r.ring) == 0 {
		return false
	}
	reverse := k.Mod&driver.ModShift != 0
	r.advance(reverse)
	return true
}

func (r *Router) advance(reverse bool) {
	n := len(r.ring)
	if n == 0 {
		return
	}
	if reverse {
		r.ringCursor = ((r.ringCursor-1)%n + n) % n
	} else {
		r.ringCursor = (r.ringCursor + 1) % n
	}
	r.focusID = r.ring[r.ringCursor]
}

// defaultArrowForward is the arrow-key slot of the default tier. It
// consumes nothing and forwards nothing: an arrow key reaches the focused
// element only through that element's own handler in the bubbling tier.
func (r *Router) defaultArrowForward(ev driver.Event) bool {
	return false
}
