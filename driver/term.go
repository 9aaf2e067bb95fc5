package driver

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// rawState wraps the saved terminal mode so it can be restored on Close
// or after a SIGTSTP/SIGCONT cycle.
type rawState struct {
	state *term.State
}

func enableRawMode(f *os.File) (*rawState, error) {
	old, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		return nil, err
	}
	return &rawState{state: old}, nil
}

func disableRawMode(f *os.File, s *rawState) error {
	if s == nil || s.state == nil {
		return nil
	}
	return term.Restore(int(f.Fd()), s.state)
}

const (
	seqEnterAltScreen  = "\x1b[?1049h"
	seqLeaveAltScreen  = "\x1b[?1049l"
	seqHideCursor      = "\x1b[?25l"
	seqShowCursor      = "\x1b[?25h"
	seqEnableMouse     = "\x1b[?1000h\x1b[?1006h"
	seqDisableMouse    = "\x1b[?1006l\x1b[?1000l"
	seqEnablePaste     = "\x1b[?2004h"
	seqDisablePaste    = "\x1b[?2004l"
	seqEnableFocusRpt  = "\x1b[?1004h"
	seqDisableFocusRpt = "\x1b[?1004l"
)

// enterAppMode switches the tty into alt-screen, hides the cursor, and
// opts into the reporting modes requested by opts.
func enterAppMode(w io.Writer, opts Options) {
	io.WriteString(w, seqEnterAltScreen)
	io.WriteString(w, seqHideCursor)
	if opts.Mouse {
		io.WriteString(w, seqEnableMouse)
	}
	if opts.BracketedPaste {
		io.WriteString(w, seqEnablePaste)
	}
	if opts.FocusReporting {
		io.WriteString(w, seqEnableFocusRpt)
	}
}

// leaveAppMode undoes enterAppMode, best-effort (write errors are
// ignored — there is nothing further to degrade to on the way out).
func leaveAppMode(w io.Writer, opts Options) {
	if opts.FocusReporting {
		io.WriteString(w, seqDisableFocusRpt)
	}
	if opts.BracketedPaste {
		io.WriteString(w, seqDisablePaste)
	}
	if opts.Mouse {
		io.WriteString(w, seqDisableMouse)
	}
	io.WriteString(w, seqShowCursor)
	io.WriteString(w, seqLeaveAltScreen)
}

// setTitleUnix emits the xterm OSC 2 title sequence.
func setTitleUnix(w io.Writer, s string) {
	fmt.Fprintf(w, "\x1b]2;%s\x1b\\", s)
}
