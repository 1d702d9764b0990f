package tx

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed wraps every decoding failure.
	ErrMalformed = errors.New("malformed transaction")
	// ErrCompactOverflow is returned for lengths that do not fit in a u16.
	ErrCompactOverflow = errors.New("compact-u16 overflow")
)

// AppendCompactU16 appends n using 7 bits per byte, low bits first, with the
// high bit of each byte flagging a continuation.
func AppendCompactU16(b []byte, n int) ([]byte, error) {
	if n < 0 || n > 0xffff {
		return b, fmt.Errorf("%w: %d", ErrCompactOverflow, n)
	}
	for {
		elem := byte(n & 0x7f)
		n >>= 7
		if n == 0 {
			return append(b, elem), nil
		}
		b = append(b, elem|0x80)
	}
}

// DecodeCompactU16 reads a compact-u16 from the start of b and returns the
// value and the number of bytes consumed. Non-canonical encodings are rejected.
func DecodeCompactU16(b []byte) (int, int, error) {
	var value int
	for i := 0; i < 3; i++ {
		if i >= len(b) {
			return 0, 0, fmt.Errorf("%w: truncated compact-u16", ErrMalformed)
		}
		elem := b[i]
		if i == 2 && elem > 0x03 {
			return 0, 0, fmt.Errorf("%w: compact-u16 overflow", ErrMalformed)
		}
		value |= int(elem&0x7f) << (7 * i)
		if elem&0x80 == 0 {
			if elem == 0 && i > 0 {
				return 0, 0, fmt.Errorf("%w: non-canonical compact-u16", ErrMalformed)
			}
			return value, i + 1, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: compact-u16 overflow", ErrMalformed)
}
