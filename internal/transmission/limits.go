package transmission

import "github.com/danmuck/bitsctl/internal/packet"

// Limits constrains decode memory and time.
type Limits struct {
	MaxHexDigits int
	MaxDepth     int
}

func DefaultLimits() Limits {
	return Limits{
		MaxHexDigits: 64 * 1024,
		MaxDepth:     packet.DefaultOptions().MaxDepth,
	}
}

func (l Limits) withDefaults() Limits {
	def := DefaultLimits()
	if l.MaxHexDigits <= 0 {
		l.MaxHexDigits = def.MaxHexDigits
	}
	if l.MaxDepth <= 0 {
		l.MaxDepth = def.MaxDepth
	}
	return l
}
