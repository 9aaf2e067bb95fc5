package driver

import (
	"bufio"
	"os"
	"sync"

	"golang.org/x/term"
)

// Options controls which optional input reporting modes a Driver enables
// on Open.
type Options struct {
	Mouse          bool
	BracketedPaste bool
	FocusReporting bool
}

// Driver owns the tty exclusively: every read and write to stdin/stdout
// funnels through it. Construct with New, then Open before using Events
// or Write.
type Driver struct {
	opts Options

	in  *os.File
	out *bufio.Writer

	raw *rawState

	events   chan Event
	rawBytes chan byte
	done     chan struct{}

	mu           sync.Mutex
	wg           sync.WaitGroup
	stopSignals  func()
	lastW, lastH int
}

// New constructs a Driver against the process's stdin/stdout.
func New(opts Options) *Driver {
	return &Driver{
		opts:     opts,
		in:       os.Stdin,
		out:      bufio.NewWriterSize(os.Stdout, 64*1024),
		events:   make(chan Event, 64),
		rawBytes: make(chan byte, 128),
		done:     make(chan struct{}),
	}
}

// Open enables raw mode, switches into alt-screen app mode, and starts
// the input-decoding and signal-watching goroutines. It returns the
// initial terminal size.
func (d *Driver) Open() (cols, rows int, err error) {
	cols, rows, err = term.GetSize(int(d.in.Fd()))
	if err != nil {
		cols, rows = 80, 24
	}
	d.lastW, d.lastH = cols, rows

	raw, rawErr := enableRawMode(d.in)
	if rawErr == nil {
		d.raw = raw
	}

	enterAppMode(d.out, d.opts)
	d.out.Flush()

	go d.readLoop()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		Decoder{}.Run(d.rawBytes, d.events, d.done)
	}()

	d.stopSignals = startSignalWatcher(&d.wg, d.events, d.done, d.querySize, d.onSuspend, d.onResume)

	go func() {
		d.wg.Wait()
		close(d.events)
	}()

	return cols, rows, nil
}

// readLoop is the sole reader of the tty's input file descriptor,
// forwarding raw bytes to the decoder over a channel so no second
// goroutine ever touches the fd directly.
func (d *Driver) readLoop() {
	r := bufio.NewReader(d.in)
	for {
		b, err := r.ReadByte()
		if err != nil {
			close(d.rawBytes)
			return
		}
		select {
		case d.rawBytes <- b:
		case <-d.done:
			return
		}
	}
}

func (d *Driver) querySize() (int, int, error) {
	return term.GetSize(int(d.in.Fd()))
}

// onSuspend leaves app mode and restores cooked terminal mode so the
// shell's own SIGTSTP handling behaves normally once the process is
// re-raised to stop.
func (d *Driver) onSuspend() {
	leaveAppMode(d.out, d.opts)
	d.out.Flush()
	if d.raw != nil {
		disableRawMode(d.in, d.raw)
	}
}

// onResume re-establishes raw mode and app mode after SIGCONT.
func (d *Driver) onResume() {
	raw, err := enableRawMode(d.in)
	if err == nil {
		d.raw = raw
	}
	enterAppMode(d.out, d.opts)
	d.out.Flush()
}

// Events returns the channel of decoded driver events. It is closed by
// Close, once the decoder and signal goroutines have exited; tty EOF is
// reported as a ShutdownEvent rather than by closing the channel.
func (d *Driver) Events() <-chan Event { return d.events }

// Write sends one write batch to the tty atomically, flushing before
// returning so the caller can rely on the bytes having reached the
// terminal (or an error having been observed) before swapping buffers.
func (d *Driver) Write(p []byte) (int, error) {
	n, err := d.out.Write(p)
	if err != nil {
		return n, err
	}
	return n, d.out.Flush()
}

// SetTitle emits the OSC title-setting sequence.
func (d *Driver) SetTitle(s string) {
	setTitleUnix(d.out, s)
	d.out.Flush()
}

// Close restores the terminal to its pre-Open state: disables reporting
// modes, shows the cursor, leaves the alt screen, and restores cooked
// mode.
func (d *Driver) Close() {
	if d.stopSignals != nil {
		d.stopSignals()
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	select {
	case <-d.done:
	default:
		close(d.done)
	}

	leaveAppMode(d.out, d.opts)
	d.out.Flush()

	if d.raw != nil {
		disableRawMode(d.in, d.raw)
	}
}
