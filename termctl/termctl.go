// Package termctl reads single keypresses from a controlling terminal in
// cbreak mode, for the headless player (no SDL window, just a tty) to use
// as a stand-in controller. It is a much smaller cousin of a full
// debugger terminal: no line editing, no history, just raw keys.
package termctl

import (
	"github.com/pkg/term"

	"github.com/tone-malone/nes-emu/hardware/input"
)

// keymap shares the SDL host's A, B and Start keys (z, x, Enter); Select
// is s and the d-pad is w/a/c/d, where the SDL host uses right Shift and
// the arrow keys.
var keymap = map[byte]uint8{
	'z':  input.ButtonA,
	'x':  input.ButtonB,
	's':  input.ButtonSelect,
	'\r': input.ButtonStart,
	'w':  input.ButtonUp,
	'a':  input.ButtonLeft,
	'd':  input.ButtonRight,
	'c':  input.ButtonDown,
}

// Reader polls a terminal for keypresses without requiring Enter.
type Reader struct {
	t *term.Term
}

// Open puts the controlling terminal into cbreak mode. Call Close to
// restore it.
func Open() (*Reader, error) {
	t, err := term.Open("/dev/tty", term.CBreakMode)
	if err != nil {
		return nil, err
	}
	return &Reader{t: t}, nil
}

// Close restores the terminal's prior mode.
func (r *Reader) Close() error {
	if r.t == nil {
		return nil
	}
	if err := r.t.Restore(); err != nil {
		return err
	}
	return r.t.Close()
}

// Poll reads whatever keys are currently buffered and returns the
// resulting controller button state. It never blocks longer than one
// short read; callers typically call this once per frame.
func (r *Reader) Poll() uint8 {
	buf := make([]byte, 16)
	n, err := r.t.Read(buf)
	if err != nil || n == 0 {
		return 0
	}

	var buttons uint8
	for _, b := range buf[:n] {
		if bit, ok := keymap[b]; ok {
			buttons |= bit
		}
	}
	return buttons
}
