// Package driver owns the tty: entering and leaving raw/alt-screen mode,
// decoding input into a closed set of events, wiring OS signals onto the
// same event stream, and writing output batches atomically.
package driver

// Event is the closed set of things the driver can report. Each variant
// implements isEvent so the set cannot be extended from outside the
// package — callers type-switch on the concrete type.
type Event interface{ isEvent() }

// KeyCode names a non-character key, or Char when Rune carries the
// pressed character.
type KeyCode int

const (
	KeyNull KeyCode = iota
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEsc
	KeySpace

	KeyArrowUp
	KeyArrowDown
	KeyArrowRight
	KeyArrowLeft

	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
	KeyDelete
	KeyInsert

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyChar
)

// Mod is a bitset of modifier keys observed alongside a key or mouse
// event.
type Mod int

const (
	ModNone  Mod = 0
	ModCtrl  Mod = 1 << 0
	ModAlt   Mod = 1 << 1
	ModShift Mod = 1 << 2
)

// KeyEvent is a decoded keypress.
type KeyEvent struct {
	Code KeyCode
	Rune rune
	Mod  Mod
}

func (KeyEvent) isEvent() {}

// MouseButton names which button a MouseEvent concerns.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseAction names what happened to MouseButton.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove
	MouseDrag
)

// MouseEvent is a decoded SGR mouse report. X and Y are 0-based cell
// coordinates.
type MouseEvent struct {
	Button MouseButton
	Action MouseAction
	X, Y   int
	Mod    Mod
}

func (MouseEvent) isEvent() {}

// PasteEvent carries the full contents of a bracketed paste.
type PasteEvent string

func (PasteEvent) isEvent() {}

// ResizeEvent reports the new terminal size in character cells.
type ResizeEvent struct{ Cols, Rows int }

func (ResizeEvent) isEvent() {}

// UnknownEvent is the event type for raw, uninterpreted bytes. The
// Decoder does not emit it: unrecognised CSI, SS3 and tilde sequences are
// dropped without producing any event.
type UnknownEvent []byte

func (UnknownEvent) isEvent() {}

// FocusGainedEvent/FocusLostEvent report terminal focus-tracking reports
// (DEC private mode 1004), when enabled.
type FocusGainedEvent struct{}

func (FocusGainedEvent) isEvent() {}

type FocusLostEvent struct{}

func (FocusLostEvent) isEvent() {}

// SuspendEvent/ResumeEvent bracket a SIGTSTP/SIGCONT cycle.
type SuspendEvent struct{}

func (SuspendEvent) isEvent() {}

type ResumeEvent struct{}

func (ResumeEvent) isEvent() {}

// ShutdownEvent is posted once when stdin reaches EOF. Close does not
// post it.
type ShutdownEvent struct{}

func (ShutdownEvent) isEvent() {}
