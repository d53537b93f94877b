package transmission

import (
	"context"
	"errors"

	"github.com/danmuck/bitsctl/internal/bits"
	"github.com/danmuck/bitsctl/internal/eval"
	"github.com/danmuck/bitsctl/internal/packet"
)

var (
	ErrInputTooLarge = errors.New("transmission: input too large")
	ErrUnknownMode   = errors.New("transmission: unknown mode")
	ErrNoInput       = errors.New("transmission: no input")
)

var kinds = []struct {
	err  error
	kind string
}{
	{bits.ErrEmptyInput, "empty_input"},
	{bits.ErrInvalidDigit, "invalid_digit"},
	{bits.ErrOutOfBits, "out_of_bits"},
	{packet.ErrLengthMismatch, "length_mismatch"},
	{packet.ErrEmptyOperator, "empty_operator"},
	{packet.ErrLiteralOverflow, "literal_overflow"},
	{packet.ErrDepthExceeded, "depth_exceeded"},
	{eval.ErrInvariantViolation, "invariant_violation"},
	{eval.ErrOverflow, "overflow"},
	{ErrInputTooLarge, "too_large"},
	{ErrNoInput, "empty_input"},
	{context.Canceled, "canceled"},
	{context.DeadlineExceeded, "canceled"},
}

// ErrorKind names the failure class of err for metrics and API responses.
func ErrorKind(err error) string {
	if err == nil {
		return "ok"
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "internal"
}
