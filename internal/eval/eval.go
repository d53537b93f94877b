package eval

import (
	"fmt"
	"math/bits"

	"github.com/danmuck/bitsctl/internal/packet"
)

// SumVersions adds the version of every packet in the tree.
func SumVersions(root *packet.Packet) (uint64, error) {
	return packet.Fold(root, func(p *packet.Packet, children []uint64) (uint64, error) {
		sum := uint64(p.Version)
		for _, c := range children {
			sum += c
		}
		return sum, nil
	})
}

// Evaluate computes the value of the root packet. Arithmetic is unsigned
// 64-bit; results that do not fit fail with ErrOverflow.
func Evaluate(root *packet.Packet) (uint64, error) {
	return packet.Fold(root, apply)
}

func apply(p *packet.Packet, args []uint64) (uint64, error) {
	if p.Type == packet.TypeLiteral {
		if len(p.Children) != 0 {
			return 0, InvariantError{Type: p.Type, Children: len(p.Children), Reason: "literal with sub-packets"}
		}
		return p.Value, nil
	}
	if !p.Type.Valid() {
		return 0, InvariantError{Type: p.Type, Children: len(args), Reason: "unknown type"}
	}
	if len(args) == 0 {
		return 0, InvariantError{Type: p.Type, Children: 0, Reason: "operator without sub-packets"}
	}
	if p.Type.IsComparison() && len(args) != 2 {
		return 0, InvariantError{Type: p.Type, Children: len(args), Reason: "comparison needs exactly two operands"}
	}

	switch p.Type {
	case packet.TypeSum:
		var acc uint64
		for _, v := range args {
			sum, carry := bits.Add64(acc, v, 0)
			if carry != 0 {
				return 0, fmt.Errorf("%w: sum", ErrOverflow)
			}
			acc = sum
		}
		return acc, nil
	case packet.TypeProduct:
		acc := uint64(1)
		for _, v := range args {
			hi, lo := bits.Mul64(acc, v)
			if hi != 0 {
				return 0, fmt.Errorf("%w: product", ErrOverflow)
			}
			acc = lo
		}
		return acc, nil
	case packet.TypeMinimum:
		acc := args[0]
		for _, v := range args[1:] {
			acc = min(acc, v)
		}
		return acc, nil
	case packet.TypeMaximum:
		acc := args[0]
		for _, v := range args[1:] {
			acc = max(acc, v)
		}
		return acc, nil
	case packet.TypeGreaterThan:
		return boolValue(args[0] > args[1]), nil
	case packet.TypeLessThan:
		return boolValue(args[0] < args[1]), nil
	case packet.TypeEqualTo:
		return boolValue(args[0] == args[1]), nil
	default:
		return 0, InvariantError{Type: p.Type, Children: len(args), Reason: "unknown type"}
	}
}

func boolValue(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
