package packet

import (
	"fmt"

	"github.com/danmuck/bitsctl/internal/bits"
	"github.com/rs/zerolog/log"
)

const (
	versionWidth    = 3
	typeWidth       = 3
	groupDataWidth  = 4
	bitsLengthWidth = 15
	countWidth      = 11
)

// Options bound decoder resource use.
type Options struct {
	// MaxDepth caps how many operator packets may be nested inside each other.
	MaxDepth int
}

func DefaultOptions() Options {
	return Options{MaxDepth: 1024}
}

// frame tracks one operator whose sub-packets are still being decoded.
type frame struct {
	pkt        *Packet
	offset     int
	childStart int
	budget     int // bits for LengthBits, packets for LengthCount
}

func (f *frame) complete(pos int) bool {
	if f.pkt.Length == LengthBits {
		return pos-f.childStart == f.budget
	}
	return len(f.pkt.Children) == f.budget
}

// overshot reports whether a bit-delimited operator's children ran past the
// declared budget.
func (f *frame) overshot(pos int) bool {
	return f.pkt.Length == LengthBits && pos-f.childStart > f.budget
}

// DecodeHex packs hex and decodes the single root packet it carries.
func DecodeHex(hex string) (*Packet, error) {
	r, err := bits.FromHex(hex)
	if err != nil {
		return nil, err
	}
	return Decode(r)
}

// Decode reads exactly one packet starting at the reader's cursor.
// Bits after the root packet are left unread.
func Decode(r *bits.Reader) (*Packet, error) {
	return DecodeWith(r, DefaultOptions())
}

// DecodeWith is Decode with explicit options. Nested operators are tracked on
// an explicit stack, so input depth never grows the goroutine stack.
func DecodeWith(r *bits.Reader, opts Options) (*Packet, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultOptions().MaxDepth
	}
	start := r.Position()

	root, pending, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		log.Debug().Int("consumed", r.Position()-start).Str("root", root.Type.String()).Msg("packet.Decode")
		return root, nil
	}

	stack := []*frame{pending}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.complete(r.Position()) {
			stack = stack[:len(stack)-1]
			if err := checkParent(stack, r.Position()); err != nil {
				return nil, err
			}
			continue
		}

		child, childFrame, err := decodeHeader(r)
		if err != nil {
			return nil, err
		}
		top.pkt.Children = append(top.pkt.Children, child)
		if childFrame == nil {
			if err := checkParent(stack, r.Position()); err != nil {
				return nil, err
			}
			continue
		}
		if len(stack) >= opts.MaxDepth {
			return nil, fmt.Errorf("%w: limit %d at bit %d", ErrDepthExceeded, opts.MaxDepth, childFrame.offset)
		}
		stack = append(stack, childFrame)
	}

	log.Debug().Int("consumed", r.Position()-start).Str("root", root.Type.String()).Msg("packet.Decode")
	return root, nil
}

func checkParent(stack []*frame, pos int) error {
	if len(stack) == 0 {
		return nil
	}
	parent := stack[len(stack)-1]
	if parent.overshot(pos) {
		return LengthMismatchError{
			Offset:   parent.offset,
			Declared: parent.budget,
			Consumed: pos - parent.childStart,
		}
	}
	return nil
}

// decodeHeader reads one packet header. Literals are returned complete with
// a nil frame; operators are returned with a frame for their sub-packets.
func decodeHeader(r *bits.Reader) (*Packet, *frame, error) {
	offset := r.Position()
	version, err := r.Read(versionWidth)
	if err != nil {
		return nil, nil, wrapAt(offset, err)
	}
	typ, err := r.Read(typeWidth)
	if err != nil {
		return nil, nil, wrapAt(offset, err)
	}

	p := &Packet{Version: uint8(version), Type: TypeID(typ)}
	if p.Type == TypeLiteral {
		value, err := decodeLiteral(r)
		if err != nil {
			return nil, nil, wrapAt(offset, err)
		}
		p.Value = value
		return p, nil, nil
	}

	lengthType, err := r.Read(1)
	if err != nil {
		return nil, nil, wrapAt(offset, err)
	}
	p.Length = LengthType(lengthType)
	width := bitsLengthWidth
	if p.Length == LengthCount {
		width = countWidth
	}
	budget, err := r.Read(width)
	if err != nil {
		return nil, nil, wrapAt(offset, err)
	}
	if budget == 0 {
		return nil, nil, fmt.Errorf("%w: %s operator at bit %d", ErrEmptyOperator, p.Type, offset)
	}
	return p, &frame{
		pkt:        p,
		offset:     offset,
		childStart: r.Position(),
		budget:     int(budget),
	}, nil
}

func decodeLiteral(r *bits.Reader) (uint64, error) {
	var value uint64
	for {
		more, err := r.ReadBool()
		if err != nil {
			return 0, err
		}
		group, err := r.Read(groupDataWidth)
		if err != nil {
			return 0, err
		}
		if value>>(64-groupDataWidth) != 0 {
			return 0, ErrLiteralOverflow
		}
		value = value<<groupDataWidth | group
		if !more {
			return value, nil
		}
	}
}

func wrapAt(offset int, err error) error {
	return fmt.Errorf("packet: decode at bit %d: %w", offset, err)
}
