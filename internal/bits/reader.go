package bits

import (
	"fmt"
	"strings"
)

// MaxWidth is the widest single read supported by Reader.
const MaxWidth = 64

// Reader exposes a packed byte buffer as an ordered bit sequence.
// Bits are consumed most-significant first within each byte.
type Reader struct {
	data  []byte
	nbits int
	pos   int
}

// New wraps an already packed buffer holding nbits meaningful bits.
func New(buf []byte, nbits int) (*Reader, error) {
	if nbits < 0 || nbits > 8*len(buf) {
		return nil, fmt.Errorf("%w: nbits=%d buffer=%d bytes", ErrInvalidLen, nbits, len(buf))
	}
	data := make([]byte, len(buf))
	copy(data, buf)
	return &Reader{data: data, nbits: nbits}, nil
}

// FromHex packs a string of hex digits into a Reader.
//
// An odd digit count is padded: the trailing nibble occupies the high half of
// the last byte and the declared length stays 4*digits, so the pad nibble is
// never readable.
func FromHex(s string) (*Reader, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyInput
	}
	data := make([]byte, (len(s)+1)/2)
	for i := 0; i < len(s); i++ {
		nib, ok := nibble(s[i])
		if !ok {
			return nil, InvalidDigitError{Offset: i, Char: rune(s[i])}
		}
		if i%2 == 0 {
			data[i/2] = nib << 4
		} else {
			data[i/2] |= nib
		}
	}
	return &Reader{data: data, nbits: 4 * len(s)}, nil
}

func nibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// Read returns the next n bits as an unsigned integer and advances the
// cursor by n. On error the cursor does not move.
func (r *Reader) Read(n int) (uint64, error) {
	if n < 1 || n > MaxWidth {
		return 0, fmt.Errorf("%w: %d", ErrWidthRange, n)
	}
	if n > r.Remaining() {
		return 0, fmt.Errorf("%w: need %d at position %d, have %d", ErrOutOfBits, n, r.pos, r.Remaining())
	}
	var v uint64
	for i := 0; i < n; i++ {
		v = v<<1 | uint64(r.bit(r.pos+i))
	}
	r.pos += n
	return v, nil
}

// ReadBit returns the next single bit.
func (r *Reader) ReadBit() (uint8, error) {
	v, err := r.Read(1)
	return uint8(v), err
}

// ReadBool returns the next bit as a bool.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.Read(1)
	return v == 1, err
}

// Position reports how many bits have been consumed.
func (r *Reader) Position() int {
	return r.pos
}

// Len reports the declared bit length of the stream.
func (r *Reader) Len() int {
	return r.nbits
}

// Remaining reports how many bits are left to read.
func (r *Reader) Remaining() int {
	return r.nbits - r.pos
}

func (r *Reader) bit(i int) uint8 {
	return (r.data[i/8] >> (7 - uint(i%8))) & 1
}
