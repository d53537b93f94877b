package packet

import (
	"fmt"
	"strings"
)

// View is the JSON projection of a packet tree.
type View struct {
	Version  uint8   `json:"version"`
	Type     string  `json:"type"`
	TypeID   uint8   `json:"type_id"`
	Value    *uint64 `json:"value,omitempty"`
	Length   string  `json:"length,omitempty"`
	Children []View  `json:"children,omitempty"`
}

func NewView(root *Packet) (View, error) {
	return Fold(root, func(p *Packet, children []View) (View, error) {
		v := View{Version: p.Version, Type: p.Type.String(), TypeID: uint8(p.Type)}
		if p.IsLiteral() {
			value := p.Value
			v.Value = &value
			return v, nil
		}
		v.Length = p.Length.String()
		v.Children = children
		return v, nil
	})
}

// Format renders an indented text tree, one packet per line.
func Format(root *Packet) (string, error) {
	var b strings.Builder
	err := Walk(root, func(p *Packet, depth int) error {
		b.WriteString(strings.Repeat("  ", depth-1))
		if p.IsLiteral() {
			fmt.Fprintf(&b, "v%d literal %d\n", p.Version, p.Value)
			return nil
		}
		fmt.Fprintf(&b, "v%d %s (%s, %d children)\n", p.Version, p.Type, p.Length, len(p.Children))
		return nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
