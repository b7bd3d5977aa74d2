package rope

import "io"

// iterFrame is one level of an in-progress tree walk.
type iterFrame struct {
	node *node
	next int
}

// ChunkIterator walks the chunks of a rope in order.
type ChunkIterator struct {
	stack  []iterFrame
	text   string
	offset int
	end    int
}

// Chunks returns an iterator over the chunks of r.
func (r Rope) Chunks() *ChunkIterator {
	it := &ChunkIterator{stack: make([]iterFrame, 0, 8)}
	if r.root != nil {
		it.stack = append(it.stack, iterFrame{node: r.root})
	}
	return it
}

// Next advances to the next non-empty chunk.
func (it *ChunkIterator) Next() bool {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.node.isLeaf() {
			if top.next < len(top.node.chunks) {
				c := top.node.chunks[top.next]
				top.next++
				if c.len() == 0 {
					continue
				}
				it.offset = it.end
				it.end += c.len()
				it.text = c.text
				return true
			}
		} else if top.next < len(top.node.children) {
			child := top.node.children[top.next]
			top.next++
			it.stack = append(it.stack, iterFrame{node: child})
			continue
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	it.text = ""
	return false
}

// Text returns the current chunk's text.
func (it *ChunkIterator) Text() string {
	return it.text
}

// Offset returns the byte offset where the current chunk starts.
func (it *ChunkIterator) Offset() int {
	return it.offset
}

// WriteTo writes the rope's text to w.
func (r Rope) WriteTo(w io.Writer) (int64, error) {
	var total int64
	it := r.Chunks()
	for it.Next() {
		n, err := io.WriteString(w, it.Text())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
