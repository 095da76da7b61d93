package keyboard

import "time"

// escTimeout is the near-zero window used to distinguish a lone escape key
// from the lead byte of a multi-byte sequence.
const escTimeout = 5 * time.Millisecond

// byteSource is a timeout-bounded byte stream. A zero timeout means "only
// what is already pending".
type byteSource interface {
	readByte(timeout time.Duration) (byte, bool)
}

// decodeKey reads one logical key from src. Escape sequences for the arrow
// keys are recognized as a whole; any unrecognized sequence is drained and
// discarded so the decoder cannot desynchronize and raw escape bytes never
// leak out as characters.
func decodeKey(src byteSource, timeout time.Duration) Key {
	b, ok := src.readByte(timeout)
	if !ok {
		return Key{Kind: None}
	}

	switch {
	case b == 0x1b:
		return decodeEscape(src)
	case b == '\r' || b == '\n':
		return Key{Kind: Enter}
	case b == 0x7f || b == 0x08:
		return Key{Kind: Backspace}
	case b == 0x03:
		return Key{Kind: Interrupt}
	case b >= 0x20 && b < 0x7f:
		return Key{Kind: Character, Rune: rune(b)}
	}
	return Key{Kind: None}
}

func decodeEscape(src byteSource) Key {
	b1, ok := src.readByte(escTimeout)
	if !ok {
		// Nothing followed: the user pressed the escape key itself.
		return Key{Kind: Escape}
	}
	if b1 != '[' {
		drainPending(src)
		return Key{Kind: None}
	}
	b2, ok := src.readByte(escTimeout)
	if !ok {
		return Key{Kind: None}
	}
	switch b2 {
	case 'A':
		return Key{Kind: Up}
	case 'B':
		return Key{Kind: Down}
	case 'C':
		return Key{Kind: Right}
	case 'D':
		return Key{Kind: Left}
	}
	drainPending(src)
	return Key{Kind: None}
}

func drainPending(src byteSource) {
	for {
		if _, ok := src.readByte(0); !ok {
			return
		}
	}
}
