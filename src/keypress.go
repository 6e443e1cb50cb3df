package satradio

// Interactive keypress-triggered shutdown, for verbose runs attached to
// a terminal: press 'q' to request the same clean stop a SIGINT/SIGTERM
// would. Opens the controlling terminal in raw mode with pkg/term and
// reads it one byte at a time.

import (
	"sync"

	"github.com/pkg/term"
)

// WatchKeypress puts the controlling terminal into raw mode and calls
// onQuit the first time 'q' is read. Returns a stop func that restores
// the terminal; safe to call stop more than once. Runs its own
// goroutine, so callers should stop it before the process exits. On any
// error opening the terminal (e.g. stdin isn't a tty), this is a no-op.
func WatchKeypress(onQuit func()) func() {
	var tty, err = term.Open("/dev/tty", term.RawMode)
	if err != nil {
		logDebug("keypress watcher disabled", "error", err)
		return func() {}
	}

	var done = make(chan struct{})

	go func() {
		var buf = make([]byte, 1)
		for {
			select {
			case <-done:
				return
			default:
			}

			var n, readErr = tty.Read(buf)
			if readErr != nil {
				return
			}
			if n == 1 && buf[0] == 'q' {
				onQuit()
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			tty.Close() //nolint:errcheck
		})
	}
}
