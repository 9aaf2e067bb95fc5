// Package logging provides the engine's internal diagnostic logger. A
// terminal UI owns the tty exclusively while running, so this logger
// never writes to stdout/stderr — only to a file or in-memory sink the
// host opts into.
package logging

import (
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// ringWriter is a small fixed-capacity ring buffer of log lines, used
// when the host does not configure a file sink. It lets a crashed
// session's last diagnostics be inspected after teardown without ever
// having touched the live tty.
type ringWriter struct {
	mu    sync.Mutex
	lines [][]byte
	cap   int
	next  int
	full  bool
}

func newRingWriter(capacity int) *ringWriter {
	return &ringWriter{lines: make([][]byte, capacity), cap: capacity}
}

func (r *ringWriter) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := append([]byte(nil), p...)
	r.lines[r.next] = cp
	r.next = (r.next + 1) % r.cap
	if r.next == 0 {
		r.full = true
	}
	return len(p), nil
}

// Lines returns the buffered log lines in chronological order.
func (r *ringWriter) Lines() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		return append([][]byte(nil), r.lines[:r.next]...)
	}
	out := make([][]byte, 0, r.cap)
	out = append(out, r.lines[r.next:]...)
	out = append(out, r.lines[:r.next]...)
	return out
}

// Logger wraps a zerolog.Logger bound to a non-tty sink.
type Logger struct {
	zerolog.Logger
	ring *ringWriter
}

// New builds a Logger writing to w. If w is nil, diagnostics accumulate
// in a 512-line in-memory ring instead, retrievable via Ring().
func New(w io.Writer) *Logger {
	if w != nil {
		return &Logger{Logger: zerolog.New(w).With().Timestamp().Logger()}
	}
	ring := newRingWriter(512)
	return &Logger{Logger: zerolog.New(ring).With().Timestamp().Logger(), ring: ring}
}

// Ring returns the buffered lines when New was called without a sink, or
// nil otherwise.
func (l *Logger) Ring() [][]byte {
	if l.ring == nil {
		return nil
	}
	return l.ring.Lines()
}
