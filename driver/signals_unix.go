//go:build linux || darwin

package driver

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// startSignalWatcher wires SIGWINCH/SIGTSTP/SIGCONT onto the driver's
// event channel. The signal handlers installed by signal.Notify do no
// nontrivial work themselves — they only deliver to these channels; all
// real work (resize query, suspend/resume bookkeeping) happens in this
// goroutine.
func startSignalWatcher(wg *sync.WaitGroup, events chan<- Event, done <-chan struct{}, querySize func() (int, int, error), onSuspend, onResume func()) func() {
	winch := make(chan os.Signal, 1)
	tstp := make(chan os.Signal, 1)
	cont := make(chan os.Signal, 1)

	signal.Notify(winch, syscall.SIGWINCH)
	signal.Notify(tstp, syscall.SIGTSTP)
	signal.Notify(cont, syscall.SIGCONT)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			case <-winch:
				cols, rows, err := querySize()
				if err != nil {
					continue
				}
				trySend(events, done, ResizeEvent{Cols: cols, Rows: rows})
			case <-tstp:
				onSuspend()
				trySend(events, done, SuspendEvent{})
				// Re-raise the default SIGTSTP disposition so the
				// shell actually stops the process group, then
				// restore our handler for when SIGCONT wakes us.
				signal.Stop(tstp)
				syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
				signal.Notify(tstp, syscall.SIGTSTP)
			case <-cont:
				onResume()
				trySend(events, done, ResumeEvent{})
				if cols, rows, err := querySize(); err == nil {
					trySend(events, done, ResizeEvent{Cols: cols, Rows: rows})
				}
			}
		}
	}()

	return func() {
		signal.Stop(winch)
		signal.Stop(tstp)
		signal.Stop(cont)
	}
}

// trySend delivers ev unless done has already fired, so a frozen or
// shutting-down consumer cannot block the signal-watching goroutine
// forever.
func trySend(events chan<- Event, done <-chan struct{}, ev Event) {
	select {
	case events <- ev:
	case <-done:
	}
}
