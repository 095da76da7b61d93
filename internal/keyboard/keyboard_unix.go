//go:build !windows

package keyboard

import (
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// streamHandler reads stdin byte by byte in a pump goroutine so that GetKey
// can apply a timeout to every read, including the near-zero reads used to
// resolve escape sequences.
type streamHandler struct {
	mu    sync.Mutex
	state *term.State
	bytes chan byte
	pump  sync.Once
}

func newHandler() Handler {
	return &streamHandler{bytes: make(chan byte, 64)}
}

func (h *streamHandler) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != nil {
		return nil
	}
	state, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	h.state = state
	h.pump.Do(func() {
		go func() {
			buf := make([]byte, 1)
			for {
				n, err := os.Stdin.Read(buf)
				if err != nil {
					close(h.bytes)
					return
				}
				if n == 1 {
					h.bytes <- buf[0]
				}
			}
		}()
	})
	return nil
}

// Stop restores the saved terminal mode. Restore failures are swallowed;
// there is nothing useful to do with them at teardown.
func (h *streamHandler) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == nil {
		return
	}
	_ = term.Restore(int(os.Stdin.Fd()), h.state)
	h.state = nil
}

func (h *streamHandler) GetKey(timeout time.Duration) Key {
	return decodeKey(h, timeout)
}

func (h *streamHandler) readByte(timeout time.Duration) (byte, bool) {
	if timeout <= 0 {
		select {
		case b, ok := <-h.bytes:
			return b, ok
		default:
			return 0, false
		}
	}
	select {
	case b, ok := <-h.bytes:
		return b, ok
	case <-time.After(timeout):
		return 0, false
	}
}
