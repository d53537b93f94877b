package packet

import "fmt"

// TypeID is the 3-bit packet type tag.
type TypeID uint8

const (
	TypeSum         TypeID = 0
	TypeProduct     TypeID = 1
	TypeMinimum     TypeID = 2
	TypeMaximum     TypeID = 3
	TypeLiteral     TypeID = 4
	TypeGreaterThan TypeID = 5
	TypeLessThan    TypeID = 6
	TypeEqualTo     TypeID = 7
)

var typeNames = [...]string{
	TypeSum:         "sum",
	TypeProduct:     "product",
	TypeMinimum:     "minimum",
	TypeMaximum:     "maximum",
	TypeLiteral:     "literal",
	TypeGreaterThan: "greater_than",
	TypeLessThan:    "less_than",
	TypeEqualTo:     "equal_to",
}

// Valid reports whether t is one of the eight grammar types.
func (t TypeID) Valid() bool {
	return t <= TypeEqualTo
}

// IsComparison reports whether t is a two-operand comparison.
func (t TypeID) IsComparison() bool {
	return t == TypeGreaterThan || t == TypeLessThan || t == TypeEqualTo
}

func (t TypeID) String() string {
	if !t.Valid() {
		return fmt.Sprintf("type(%d)", uint8(t))
	}
	return typeNames[t]
}

// LengthType records how an operator delimited its sub-packets.
type LengthType uint8

const (
	// LengthBits is a 15-bit budget of sub-packet bits.
	LengthBits LengthType = 0
	// LengthCount is an 11-bit count of sub-packets.
	LengthCount LengthType = 1
)

func (l LengthType) String() string {
	if l == LengthCount {
		return "count"
	}
	return "bits"
}

// Packet is one decoded node. Literals carry Value; every other type carries
// its sub-packets in stream order. A decoded tree is never mutated.
type Packet struct {
	Version  uint8
	Type     TypeID
	Value    uint64
	Length   LengthType
	Children []*Packet
}

// Literal builds a literal node.
func Literal(version uint8, value uint64) *Packet {
	return &Packet{Version: version, Type: TypeLiteral, Value: value}
}

// Operator builds an operator node over children.
func Operator(version uint8, typ TypeID, children ...*Packet) *Packet {
	return &Packet{Version: version, Type: typ, Children: children}
}

// IsLiteral reports whether p is a leaf carrying a value.
func (p *Packet) IsLiteral() bool {
	return p.Type == TypeLiteral
}
