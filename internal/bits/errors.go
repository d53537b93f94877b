package bits

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput   = errors.New("bits: empty input")
	ErrInvalidDigit = errors.New("bits: invalid hex digit")
	ErrOutOfBits    = errors.New("bits: out of bits")
	ErrWidthRange   = errors.New("bits: read width out of range")
	ErrInvalidLen   = errors.New("bits: bit count exceeds buffer")
)

// InvalidDigitError reports the first non-hex character of an input.
type InvalidDigitError struct {
	Offset int
	Char   rune
}

func (e InvalidDigitError) Error() string {
	return fmt.Sprintf("bits: invalid hex digit %q at offset %d", e.Char, e.Offset)
}

func (e InvalidDigitError) Unwrap() error {
	return ErrInvalidDigit
}
