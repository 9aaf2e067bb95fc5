package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cssterm/cssterm/theme"
)

func TestDifferFlushEmitsChangedCellsOnly(t *testing.T) {
	back := NewBuffer(3, 1)
	front := NewBuffer(3, 1)
	back.Set(1, 0, Cell{Char: 'x', Width: 1, Fg: theme.RGB(255, 0, 0)})

	d := NewDiffer(theme.ColorModeTrueColor)
	var buf bytes.Buffer
	n, err := d.Flush(&buf, back, front, false)
	if err != nil {
		t.Fatalf("flush error: %v", err)
	}
	if n == 0 {
		t.Errorf("expected bytes written for a changed cell")
	}
	if !strings.Contains(buf.String(), "x") {
		t.Errorf("expected output to contain the changed rune, got %q", buf.String())
	}
	if front.Get(1, 0).Char != 'x' {
		t.Errorf("front buffer should mirror the flushed change")
	}
}

func TestDifferSecondFlushIsNoOpWhenUnchanged(t *testing.T) {
	back := NewBuffer(3, 1)
	front := NewBuffer(3, 1)
	back.Set(1, 0, Cell{Char: 'x', Width: 1})

	d := NewDiffer(theme.ColorModeTrueColor)
	var buf bytes.Buffer
	d.Flush(&buf, back, front, false)

	buf.Reset()
	n, err := d.Flush(&buf, back, front, false)
	if err != nil {
		t.Fatalf("flush error: %v", err)
	}
	if n != 0 {
		t.Errorf("expected zero bytes on a no-op second flush, got %d: %q", n, buf.String())
	}
}

func TestDifferFullRedrawRepaintsEveryCell(t *testing.T) {
	back := NewBuffer(2, 1)
	front := NewBuffer(2, 1)
	back.Set(0, 0, Cell{Char: 'a', Width: 1})
	back.Set(1, 0, Cell{Char: 'b', Width: 1})
	front.Set(0, 0, Cell{Char: 'a', Width: 1})
	front.Set(1, 0, Cell{Char: 'b', Width: 1})

	d := NewDiffer(theme.ColorModeTrueColor)
	var buf bytes.Buffer
	n, err := d.Flush(&buf, back, front, true)
	if err != nil {
		t.Fatalf("flush error: %v", err)
	}
	if n == 0 {
		t.Errorf("full redraw should emit bytes even with an unchanged buffer")
	}
}

func TestDifferCoalescesContiguousSameStyleRun(t *testing.T) {
	back := NewBuffer(4, 1)
	front := NewBuffer(4, 1)
	fg := theme.RGB(10, 20, 30)
	for x := 0; x < 4; x++ {
		back.Set(x, 0, Cell{Char: rune('a' + x), Width: 1, Fg: fg})
	}

	d := NewDiffer(theme.ColorModeTrueColor)
	var buf bytes.Buffer
	d.Flush(&buf, back, front, false)

	out := buf.String()
	if strings.Count(out, "38;2;10;20;30") != 1 {
		t.Errorf("expected exactly one SGR prelude for the coalesced run, got %q", out)
	}
	if !strings.Contains(out, "abcd") {
		t.Errorf("expected coalesced run text, got %q", out)
	}
}
