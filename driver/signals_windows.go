//go:build windows

package driver

import "sync"

// startSignalWatcher is a no-op on Windows: there is no SIGWINCH, and
// suspend/resume has no console equivalent. No ResizeEvent is produced on
// Windows, and the scheduler does not poll the terminal size.
func startSignalWatcher(wg *sync.WaitGroup, events chan<- Event, done <-chan struct{}, querySize func() (int, int, error), onSuspend, onResume func()) func() {
	return func() {}
}
