package eval

import (
	"errors"
	"fmt"

	"github.com/danmuck/bitsctl/internal/packet"
)

var (
	ErrInvariantViolation = errors.New("eval: invariant violation")
	ErrOverflow           = errors.New("eval: uint64 overflow")
)

// InvariantError describes a tree the decoder grammar should never produce.
type InvariantError struct {
	Type     packet.TypeID
	Children int
	Reason   string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("eval: invariant violation: %s with %d children: %s", e.Type, e.Children, e.Reason)
}

func (e InvariantError) Unwrap() error {
	return ErrInvariantViolation
}
