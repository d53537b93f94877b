package packet

import (
	"errors"
	"fmt"
)

var (
	ErrLengthMismatch  = errors.New("packet: sub-packet length mismatch")
	ErrEmptyOperator   = errors.New("packet: operator has no sub-packets")
	ErrLiteralOverflow = errors.New("packet: literal exceeds 64 bits")
	ErrDepthExceeded   = errors.New("packet: nesting depth exceeded")
	ErrNilPacket       = errors.New("packet: nil packet")
	ErrNilReader       = errors.New("packet: nil reader")
)

// LengthMismatchError reports a bit-delimited operator whose children did not
// consume exactly the declared budget.
type LengthMismatchError struct {
	Offset   int
	Declared int
	Consumed int
}

func (e LengthMismatchError) Error() string {
	return fmt.Sprintf(
		"packet: sub-packet length mismatch at bit %d: declared=%d consumed=%d",
		e.Offset,
		e.Declared,
		e.Consumed,
	)
}

func (e LengthMismatchError) Unwrap() error {
	return ErrLengthMismatch
}
