// Package keyboard turns the raw terminal input stream into discrete logical
// key events. Two backends sit behind the Handler interface: a byte-stream
// decoder for VT-style terminals and a console-event decoder for the Windows
// console. Nothing above this package branches on platform.
package keyboard

import "time"

type Kind int

const (
	// None means the read timed out; it is what lets the caller redraw
	// periodically even with no input.
	None Kind = iota
	Character
	Up
	Down
	Left
	Right
	Enter
	Backspace
	Escape
	// Interrupt is Ctrl-C. It is surfaced as its own event, never swallowed,
	// so the caller can unwind in order.
	Interrupt
)

type Key struct {
	Kind Kind
	Rune rune
}

// Handler owns the terminal input mode for the duration of a session.
// Start switches to raw, unbuffered, unechoed input; Stop restores the
// previous mode unconditionally and is safe to call more than once.
type Handler interface {
	Start() error
	Stop()
	GetKey(timeout time.Duration) Key
}

// New returns the Handler for the host OS.
func New() Handler {
	return newHandler()
}
