package rope

import "strings"

// Tree shape bounds.
const (
	// MaxChildren is the fan-out limit of an internal node.
	MaxChildren = 8

	// MaxChunksPerLeaf is the chunk limit of a leaf node.
	MaxChunksPerLeaf = 4
)

// node is a rope tree node. Leaves (height 0) hold chunks; internal nodes
// hold children. Nodes are never mutated after construction.
type node struct {
	height   int
	summary  Summary
	children []*node
	chunks   []chunk
}

func newLeaf(chunks []chunk) *node {
	n := &node{chunks: chunks}
	for _, c := range chunks {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func newInternal(children []*node) *node {
	n := &node{children: children}
	for _, c := range children {
		n.height = max(n.height, c.height+1)
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func (n *node) isLeaf() bool {
	return n.height == 0 && len(n.children) == 0
}

// leafText joins the chunks of a leaf.
func (n *node) leafText() string {
	if len(n.chunks) == 1 {
		return n.chunks[0].text
	}
	var sb strings.Builder
	sb.Grow(n.summary.Bytes)
	for _, c := range n.chunks {
		sb.WriteString(c.text)
	}
	return sb.String()
}

// leavesFrom packs s into as many leaves as its chunks need.
func leavesFrom(s string) []*node {
	chunks := splitIntoChunks(s)
	if len(chunks) == 0 {
		return nil
	}
	leaves := make([]*node, 0, (len(chunks)+MaxChunksPerLeaf-1)/MaxChunksPerLeaf)
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leaves = append(leaves, newLeaf(chunks[i:end:end]))
	}
	return leaves
}

// group wraps siblings into internal nodes of at most MaxChildren children.
func group(children []*node) []*node {
	if len(children) == 0 {
		return nil
	}
	parents := make([]*node, 0, (len(children)+MaxChildren-1)/MaxChildren)
	for i := 0; i < len(children); i += MaxChildren {
		end := min(i+MaxChildren, len(children))
		parents = append(parents, newInternal(children[i:end:end]))
	}
	return parents
}

// childAt returns the index of the child holding offset and the offset
// relative to that child. An offset at the very end maps to the last child.
func (n *node) childAt(offset int) (int, int) {
	for i, c := range n.children {
		if offset < c.summary.Bytes {
			return i, offset
		}
		offset -= c.summary.Bytes
	}
	last := len(n.children) - 1
	return last, n.children[last].summary.Bytes + offset
}

// insert returns the nodes replacing n after inserting text at offset.
func (n *node) insert(offset int, text string) []*node {
	if n.isLeaf() {
		s := n.leafText()
		return leavesFrom(s[:offset] + text + s[offset:])
	}

	i, local := n.childAt(offset)
	parts := n.children[i].insert(local, text)

	children := make([]*node, 0, len(n.children)+len(parts)-1)
	children = append(children, n.children[:i]...)
	children = append(children, parts...)
	children = append(children, n.children[i+1:]...)
	return group(children)
}

// remove returns the nodes replacing n after deleting [start, end).
func (n *node) remove(start, end int) []*node {
	if n.isLeaf() {
		s := n.leafText()
		return leavesFrom(s[:start] + s[end:])
	}

	children := make([]*node, 0, len(n.children))
	pos := 0
	for _, c := range n.children {
		cstart, cend := pos, pos+c.summary.Bytes
		pos = cend
		switch {
		case cend <= start || cstart >= end:
			children = append(children, c)
		case cstart >= start && cend <= end:
			// fully deleted
		default:
			children = append(children, c.remove(max(start, cstart)-cstart, min(end, cend)-cstart)...)
		}
	}
	return group(children)
}

// appendRange writes the bytes of [start, end) to sb.
func (n *node) appendRange(sb *strings.Builder, start, end int) {
	if n.isLeaf() {
		pos := 0
		for _, c := range n.chunks {
			cstart, cend := pos, pos+c.len()
			pos = cend
			if cend <= start {
				continue
			}
			if cstart >= end {
				return
			}
			sb.WriteString(c.text[max(start, cstart)-cstart : min(end, cend)-cstart])
		}
		return
	}

	pos := 0
	for _, c := range n.children {
		cstart, cend := pos, pos+c.summary.Bytes
		pos = cend
		if cend <= start {
			continue
		}
		if cstart >= end {
			return
		}
		c.appendRange(sb, max(start, cstart)-cstart, min(end, cend)-cstart)
	}
}

// newlineEnd returns the offset just past the k-th newline (1-based) in n.
func (n *node) newlineEnd(k int) int {
	if n.isLeaf() {
		pos := 0
		for _, c := range n.chunks {
			if k > c.summary.Lines {
				k -= c.summary.Lines
				pos += c.len()
				continue
			}
			for i := 0; i < len(c.text); i++ {
				if c.text[i] == '\n' {
					k--
					if k == 0 {
						return pos + i + 1
					}
				}
			}
		}
		return pos
	}

	pos := 0
	for _, c := range n.children {
		if k > c.summary.Lines {
			k -= c.summary.Lines
			pos += c.summary.Bytes
			continue
		}
		return pos + c.newlineEnd(k)
	}
	return pos
}

// linesBefore counts the newlines in [0, offset).
func (n *node) linesBefore(offset int) int {
	lines := 0
	if n.isLeaf() {
		for _, c := range n.chunks {
			if offset >= c.len() {
				lines += c.summary.Lines
				offset -= c.len()
				continue
			}
			return lines + strings.Count(c.text[:offset], "\n")
		}
		return lines
	}

	for _, c := range n.children {
		if offset >= c.summary.Bytes {
			lines += c.summary.Lines
			offset -= c.summary.Bytes
			continue
		}
		return lines + c.linesBefore(offset)
	}
	return lines
}
