package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cssterm/cssterm/driver"
)

func TestDispatchGlobalPreHandlerShortCircuits(t *testing.T) {
	r := New()
	var globalSaw, focusedSaw bool
	r.OnGlobal(func(ev driver.Event) bool { globalSaw = true; return true })
	r.On("focused", func(ev driver.Event) bool { focusedSaw = true; return true })
	r.RebuildRing([]string{"focused"})
	require.True(t, r.Focus("focused"))

	r.Dispatch(driver.KeyEvent{Code: driver.KeyChar, Rune: 'x'}, nil)

	assert.True(t, globalSaw)
	assert.False(t, focusedSaw)
}

func TestDispatchBubblesThroughAncestorsInOrder(t *testing.T) {
	r := New()
	var order []string
	r.On("child", func(ev driver.Event) bool { order = append(order, "child"); return false })
	r.On("parent", func(ev driver.Event) bool { order = append(order, "parent"); return false })
	r.On("root", func(ev driver.Event) bool { order = append(order, "root"); return true })
	r.RebuildRing([]string{"child"})
	require.True(t, r.Focus("child"))

	r.Dispatch(driver.KeyEvent{Code: driver.KeyEnter}, []string{"parent", "root"})

	assert.Equal(t, []string{"child", "parent", "root"}, order)
}

func TestDispatchStopsBubblingOnceConsumed(t *testing.T) {
	r := New()
	var sawRoot bool
	r.On("child", func(ev driver.Event) bool { return true })
	r.On("root", func(ev driver.Event) bool { sawRoot = true; return true })
	r.RebuildRing([]string{"child"})
	r.Focus("child")

	r.Dispatch(driver.KeyEvent{Code: driver.KeyEnter}, []string{"root"})

	assert.False(t, sawRoot)
}

func TestTabAdvancesFocusRingForward(t *testing.T) {
	r := New()
	r.RebuildRing([]string{"a", "b", "c"})
	r.Focus("a")

	r.Dispatch(driver.KeyEvent{Code: driver.KeyTab}, nil)
	assert.Equal(t, "b", r.FocusID())

	r.Dispatch(driver.KeyEvent{Code: driver.KeyTab}, nil)
	assert.Equal(t, "c", r.FocusID())

	r.Dispatch(driver.KeyEvent{Code: driver.KeyTab}, nil)
	assert.Equal(t, "a", r.FocusID(), "ring wraps around")
}

func TestShiftTabAdvancesFocusRingBackward(t *testing.T) {
	r := New()
	r.RebuildRing([]string{"a", "b", "c"})
	r.Focus("a")

	r.Dispatch(driver.KeyEvent{Code: driver.KeyTab, Mod: driver.ModShift}, nil)
	assert.Equal(t, "c", r.FocusID(), "shift-tab wraps backward from the first element")
}

func TestRebuildRingDropsFocusNotInNewRing(t *testing.T) {
	r := New()
	r.RebuildRing([]string{"a", "b"})
	r.Focus("a")

	r.RebuildRing([]string{"b", "c"})

	assert.Equal(t, "", r.FocusID())
}

func TestFocusRejectsIDOutsideRing(t *testing.T) {
	r := New()
	r.RebuildRing([]string{"a"})
	assert.False(t, r.Focus("nope"))
	assert.Equal(t, "", r.FocusID())
}

func TestSetHoverTracksLastHoverTarget(t *testing.T) {
	r := New()
	r.SetHover("panel")
	assert.Equal(t, "panel", r.HoverID())
}
