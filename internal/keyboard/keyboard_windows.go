//go:build windows

package keyboard

import (
	"os"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32             = windows.NewLazySystemDLL("kernel32.dll")
	procReadConsoleInput = kernel32.NewProc("ReadConsoleInputW")
)

const keyEvent = 0x0001

type inputRecord struct {
	eventType uint16
	_         uint16
	event     [16]byte
}

type keyEventRecord struct {
	keyDown         int32
	repeatCount     uint16
	virtualKeyCode  uint16
	virtualScanCode uint16
	unicodeChar     uint16
	controlKeyState uint32
}

// Virtual key codes mapped to logical events. The console delivers extended
// keys as key event records, so the fixed table keys on the virtual key code.
var virtualKeys = map[uint16]Kind{
	0x26: Up,    // VK_UP
	0x28: Down,  // VK_DOWN
	0x25: Left,  // VK_LEFT
	0x27: Right, // VK_RIGHT
	0x0d: Enter, // VK_RETURN
	0x08: Backspace,
	0x1b: Escape,
}

// consoleHandler reads console key event records directly instead of a byte
// stream; there are no escape sequences to resolve on this path.
type consoleHandler struct {
	mu       sync.Mutex
	handle   windows.Handle
	oldMode  uint32
	restored bool
}

func newHandler() Handler {
	return &consoleHandler{restored: true}
}

func (h *consoleHandler) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.restored {
		return nil
	}
	h.handle = windows.Handle(os.Stdin.Fd())
	if err := windows.GetConsoleMode(h.handle, &h.oldMode); err != nil {
		return err
	}
	raw := h.oldMode &^ (windows.ENABLE_ECHO_INPUT | windows.ENABLE_LINE_INPUT | windows.ENABLE_PROCESSED_INPUT)
	if err := windows.SetConsoleMode(h.handle, raw); err != nil {
		return err
	}
	h.restored = false
	return nil
}

func (h *consoleHandler) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.restored {
		return
	}
	_ = windows.SetConsoleMode(h.handle, h.oldMode)
	h.restored = true
}

func (h *consoleHandler) GetKey(timeout time.Duration) Key {
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining < 0 {
			return Key{Kind: None}
		}
		event, err := windows.WaitForSingleObject(h.handle, uint32(remaining.Milliseconds()))
		if err != nil || event != windows.WAIT_OBJECT_0 {
			return Key{Kind: None}
		}
		key, ok := h.readOne()
		if ok {
			return key
		}
		// Non-key console event (resize, focus): keep waiting.
	}
}

func (h *consoleHandler) readOne() (Key, bool) {
	var rec inputRecord
	var read uint32
	r, _, _ := procReadConsoleInput.Call(
		uintptr(h.handle),
		uintptr(unsafe.Pointer(&rec)),
		1,
		uintptr(unsafe.Pointer(&read)),
	)
	if r == 0 || read == 0 || rec.eventType != keyEvent {
		return Key{}, false
	}
	ev := (*keyEventRecord)(unsafe.Pointer(&rec.event[0]))
	if ev.keyDown == 0 {
		return Key{}, false
	}
	if kind, ok := virtualKeys[ev.virtualKeyCode]; ok {
		return Key{Kind: kind}, true
	}
	switch {
	case ev.unicodeChar == 0x03:
		return Key{Kind: Interrupt}, true
	case ev.unicodeChar == '\r' || ev.unicodeChar == '\n':
		return Key{Kind: Enter}, true
	case ev.unicodeChar == 0x08:
		return Key{Kind: Backspace}, true
	case ev.unicodeChar >= 0x20 && ev.unicodeChar < 0x7f:
		return Key{Kind: Character, Rune: rune(ev.unicodeChar)}, true
	}
	return Key{}, false
}
