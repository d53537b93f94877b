package packet

// Fold reduces a tree bottom-up, calling fn once per node with the results
// of its children in stream order. Literals receive an empty slice.
func Fold[T any](root *Packet, fn func(p *Packet, children []T) (T, error)) (T, error) {
	var zero T
	if root == nil {
		return zero, ErrNilPacket
	}

	type pending struct {
		p       *Packet
		next    int
		results []T
	}
	stack := []*pending{{p: root, results: make([]T, 0, len(root.Children))}}
	for {
		top := stack[len(stack)-1]
		if top.next < len(top.p.Children) {
			child := top.p.Children[top.next]
			top.next++
			if child == nil {
				return zero, ErrNilPacket
			}
			stack = append(stack, &pending{p: child, results: make([]T, 0, len(child.Children))})
			continue
		}

		v, err := fn(top.p, top.results)
		if err != nil {
			return zero, err
		}
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return v, nil
		}
		parent := stack[len(stack)-1]
		parent.results = append(parent.results, v)
	}
}

// Walk visits every node pre-order. The root is at depth 1.
func Walk(root *Packet, fn func(p *Packet, depth int) error) error {
	if root == nil {
		return ErrNilPacket
	}
	type visit struct {
		p     *Packet
		depth int
	}
	stack := []visit{{root, 1}}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if v.p == nil {
			return ErrNilPacket
		}
		if err := fn(v.p, v.depth); err != nil {
			return err
		}
		for i := len(v.p.Children) - 1; i >= 0; i-- {
			stack = append(stack, visit{v.p.Children[i], v.depth + 1})
		}
	}
	return nil
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes     int `json:"nodes"`
	Literals  int `json:"literals"`
	Operators int `json:"operators"`
	MaxDepth  int `json:"max_depth"`
}

func CollectStats(root *Packet) (Stats, error) {
	var s Stats
	err := Walk(root, func(p *Packet, depth int) error {
		s.Nodes++
		if p.IsLiteral() {
			s.Literals++
		} else {
			s.Operators++
		}
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		return nil
	})
	return s, err
}
