package engine

import (
	"github.com/cssterm/cssterm/driver"
	"github.com/cssterm/cssterm/element"
	"github.com/cssterm/cssterm/layout"
)

// onEvent applies one decoded event and reports whether it requires a
// new frame. It is installed as the scheduler's OnEvent callback.
func (e *Engine) onEvent(ev driver.Event) bool {
	switch v := ev.(type) {
	case driver.ResizeEvent:
		e.viewport = layout.Rect{X: 0, Y: 0, W: v.Cols, H: v.Rows}
		e.screen.Resize(v.Cols, v.Rows)
		e.styleCache.Purge() // @media queries key off viewport width
		e.layoutCache.Purge()
		return true

	case driver.MouseEvent:
		focusBefore, hoverBefore := e.router.FocusID(), e.router.HoverID()
		e.handleMouse(v)
		e.router.Dispatch(ev, e.ancestors[e.router.FocusID()])
		return e.acceptHostChanges() || e.router.FocusID() != focusBefore || e.router.HoverID() != hoverBefore

	case driver.KeyEvent, driver.PasteEvent:
		e.router.Dispatch(ev, e.ancestors[e.router.FocusID()])
		return e.acceptHostChanges()

	case driver.FocusGainedEvent, driver.FocusLostEvent:
		return true

	case driver.SuspendEvent:
		return false

	case driver.ResumeEvent:
		e.screen.ForceFullRedraw()
		return true

	default:
		return false
	}
}

// acceptHostChanges re-reads the host's current tree and reports whether
// it differs from the last frame accepted, rebuilding the focus ring
// when it does since tabindex elements may have appeared or vanished.
func (e *Engine) acceptHostChanges() bool {
	root := e.rootFn()
	diff := e.inv.Accept(root)
	if diff.Empty() {
		return false
	}
	e.rebuildFocusRing(root)
	return true
}

// handleMouse updates hover/mouse-down tracking and, on a fresh press,
// moves focus to the element under the cursor if it is focusable.
func (e *Engine) handleMouse(v driver.MouseEvent) {
	target := hitTest(e.lastLaid, v.X, v.Y)
	if target == nil || target.El == nil {
		e.router.SetHover("")
		return
	}
	e.router.SetHover(target.El.ID)
	if v.Action == driver.MousePress && target.El.HasAttr("tabindex") {
		e.router.Focus(target.El.ID)
	}
}

// hitTest returns the innermost LaidElement painted over (x, y), walking
// children last-to-first so the topmost paint-order sibling wins ties.
func hitTest(le *layout.LaidElement, x, y int) *layout.LaidElement {
	if le == nil || !pointIn(le.Clip, x, y) || !pointIn(le.Rect, x, y) {
		return nil
	}
	for i := len(le.Children) - 1; i >= 0; i-- {
		if hit := hitTest(le.Children[i], x, y); hit != nil {
			return hit
		}
	}
	return le
}

func pointIn(r layout.Rect, x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// rebuildFocusRing collects every element carrying a truthy tabindex
// attribute, in document order, and hands the ring to the router.
func (e *Engine) rebuildFocusRing(root *element.Element) {
	var ids []string
	element.Walk(root, func(el *element.Element) {
		if v, ok := el.Attr("tabindex"); ok && v != "" && v != "-1" && el.ID != "" {
			ids = append(ids, el.ID)
		}
	})
	e.router.RebuildRing(ids)
}
