package style

// node is a treap node keyed by (Start, ID). lazy is an offset not yet
// applied to the children; a node's own span and maxEnd are current once
// every ancestor has been pushed.
type node struct {
	span        Span
	prio        uint64
	maxEnd      int
	lazy        int
	left, right *node
	parent      *node
}

// priority derives a well-mixed heap priority from an ID (splitmix64).
func priority(id SpanID) uint64 {
	z := uint64(id) + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func (n *node) shift(d int) {
	if n == nil || d == 0 {
		return
	}
	n.span.Start += d
	n.span.End += d
	n.maxEnd += d
	n.lazy += d
}

func (n *node) push() {
	if n.lazy != 0 {
		n.left.shift(n.lazy)
		n.right.shift(n.lazy)
		n.lazy = 0
	}
}

func (n *node) fix() {
	n.maxEnd = n.span.End
	if n.left != nil {
		n.left.parent = n
		n.maxEnd = max(n.maxEnd, n.left.maxEnd)
	}
	if n.right != nil {
		n.right.parent = n
		n.maxEnd = max(n.maxEnd, n.right.maxEnd)
	}
}

func keyLess(s Span, start int, id SpanID) bool {
	return s.Start < start || (s.Start == start && s.ID < id)
}

// split divides t into keys below (start, id) and keys at or above it.
func split(t *node, start int, id SpanID) (*node, *node) {
	if t == nil {
		return nil, nil
	}
	t.push()
	if keyLess(t.span, start, id) {
		l, r := split(t.right, start, id)
		t.right = l
		t.fix()
		return t, r
	}
	l, r := split(t.left, start, id)
	t.left = r
	t.fix()
	return l, t
}

// merge joins two treaps where every key of a is below every key of b.
func merge(a, b *node) *node {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.prio > b.prio {
		a.push()
		a.right = merge(a.right, b)
		a.fix()
		return a
	}
	b.push()
	b.left = merge(a, b.left)
	b.fix()
	return b
}
