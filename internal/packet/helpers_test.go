package packet

import (
	"testing"

	"github.com/danmuck/bitsctl/internal/bits"
)

// bitBuilder assembles synthetic transmissions MSB first.
type bitBuilder struct {
	buf []byte
	n   int
}

func (b *bitBuilder) put(v uint64, width int) *bitBuilder {
	for i := width - 1; i >= 0; i-- {
		if b.n%8 == 0 {
			b.buf = append(b.buf, 0)
		}
		if (v>>uint(i))&1 == 1 {
			b.buf[b.n/8] |= 1 << (7 - uint(b.n%8))
		}
		b.n++
	}
	return b
}

func (b *bitBuilder) header(version uint8, typ TypeID) *bitBuilder {
	return b.put(uint64(version), versionWidth).put(uint64(typ), typeWidth)
}

// literal writes value as exactly groups 5-bit groups.
func (b *bitBuilder) literal(version uint8, value uint64, groups int) *bitBuilder {
	b.header(version, TypeLiteral)
	for i := groups - 1; i >= 0; i-- {
		more := uint64(0)
		if i > 0 {
			more = 1
		}
		b.put(more, 1)
		b.put((value>>(4*uint(i)))&0xF, groupDataWidth)
	}
	return b
}

func (b *bitBuilder) bitsOperator(version uint8, typ TypeID, budget int) *bitBuilder {
	return b.header(version, typ).put(uint64(LengthBits), 1).put(uint64(budget), bitsLengthWidth)
}

func (b *bitBuilder) countOperator(version uint8, typ TypeID, count int) *bitBuilder {
	return b.header(version, typ).put(uint64(LengthCount), 1).put(uint64(count), countWidth)
}

func (b *bitBuilder) reader(t *testing.T) *bits.Reader {
	t.Helper()
	r, err := bits.New(b.buf, b.n)
	if err != nil {
		t.Fatalf("build reader: %v", err)
	}
	return r
}
