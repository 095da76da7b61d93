package realtime

import (
	"errors"
	"time"

	"github.com/sytelus/claude-sessions/internal/keyboard"
)

// ErrInterrupted reports that the user hit Ctrl-C; the caller gets to unwind
// in order instead of being killed with the terminal still in raw mode.
var ErrInterrupted = errors.New("interrupted")

// keyTimeout bounds each keyboard read so the controller can repaint
// scheduler-published results even when the user stops typing.
const keyTimeout = 100 * time.Millisecond

// Controller drives the interactive session: read a key, mutate state,
// redraw, until a result is selected or the search is cancelled.
type Controller struct {
	keys  keyboard.Handler
	state *State
	sched *Scheduler
	disp  *Display
}

func NewController(keys keyboard.Handler, state *State, sched *Scheduler, disp *Display) *Controller {
	return &Controller{keys: keys, state: state, sched: sched, disp: disp}
}

// Run owns the terminal until it returns. On Enter with at least one result
// it returns the selected transcript path; on Escape it returns "" and on
// Ctrl-C it returns ErrInterrupted. Raw mode is torn down and the scheduler
// stopped on every exit path.
func (c *Controller) Run() (string, error) {
	if err := c.keys.Start(); err != nil {
		return "", err
	}
	defer c.keys.Stop()

	c.sched.Start()
	defer c.sched.Stop()

	c.disp.Reset()
	c.disp.Draw(c.state.Snapshot())

	for {
		key := c.keys.GetKey(keyTimeout)
		switch key.Kind {
		case keyboard.None:
			// No input: repaint only if the scheduler published something.
			c.disp.DrawIfChanged(c.state.Snapshot())
			continue

		case keyboard.Escape:
			return "", nil

		case keyboard.Interrupt:
			return "", ErrInterrupted

		case keyboard.Enter:
			if selected, ok := c.state.Selected(); ok {
				return selected.Path, nil
			}

		case keyboard.Up:
			c.state.MoveSelection(-1)

		case keyboard.Down:
			c.state.MoveSelection(1)

		case keyboard.Left:
			c.state.MoveCursor(-1)

		case keyboard.Right:
			c.state.MoveCursor(1)

		case keyboard.Backspace:
			if query, changed := c.state.DeleteBack(); changed {
				c.sched.Invalidate(query)
			}

		case keyboard.Character:
			query := c.state.Insert(key.Rune)
			c.sched.Invalidate(query)
		}

		// Redraw after every handled key, search in flight or not, so typing
		// never visually stalls.
		c.disp.Draw(c.state.Snapshot())
	}
}
