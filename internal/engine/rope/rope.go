package rope

import (
	"io"
	"strings"
)

// Rope is an immutable rope of UTF-8 text.
// The zero value is an empty rope ready to use.
type Rope struct {
	root *node
}

// New creates an empty rope.
func New() Rope {
	return Rope{}
}

// FromString creates a rope holding s.
func FromString(s string) Rope {
	return fromNodes(leavesFrom(s))
}

// FromReader creates a rope from everything r yields.
func FromReader(r io.Reader) (Rope, error) {
	var b Builder
	if _, err := b.ReadFrom(r); err != nil {
		return Rope{}, err
	}
	return b.Build(), nil
}

// fromNodes builds upper levels until a single root remains, then drops
// single-child roots.
func fromNodes(nodes []*node) Rope {
	for len(nodes) > 1 {
		nodes = group(nodes)
	}
	if len(nodes) == 0 {
		return Rope{}
	}
	root := nodes[0]
	for !root.isLeaf() && len(root.children) == 1 {
		root = root.children[0]
	}
	if root.summary.Bytes == 0 {
		return Rope{}
	}
	return Rope{root: root}
}

// Len returns the byte length.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Bytes
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() int {
	return r.Summary().Lines + 1
}

// IsEmpty reports whether the rope holds no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// Summary returns the metrics of the whole rope.
func (r Rope) Summary() Summary {
	if r.root == nil {
		return Summary{}
	}
	return r.root.summary
}

// Height returns the height of the tree, 0 for an empty rope.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return r.root.height + 1
}

// String returns the full text.
func (r Rope) String() string {
	return r.Slice(0, r.Len())
}

// Slice returns the text in [start, end), clamped to the rope.
func (r Rope) Slice(start, end int) string {
	start, end = max(start, 0), min(end, r.Len())
	if r.root == nil || start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// Insert returns a rope with text inserted at offset.
// Offsets outside the rope are clamped.
func (r Rope) Insert(offset int, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.root == nil {
		return FromString(text)
	}
	offset = min(max(offset, 0), r.Len())
	return fromNodes(r.root.insert(offset, text))
}

// Delete returns a rope without the bytes in [start, end).
func (r Rope) Delete(start, end int) Rope {
	start, end = max(start, 0), min(end, r.Len())
	if r.root == nil || start >= end {
		return r
	}
	if start == 0 && end == r.Len() {
		return Rope{}
	}
	return fromNodes(r.root.remove(start, end))
}

// Replace returns a rope with [start, end) replaced by text.
func (r Rope) Replace(start, end int, text string) Rope {
	return r.Delete(start, end).Insert(start, text)
}

// LineStart returns the byte offset where line begins. Lines are 0-indexed;
// lines past the last one map to Len.
func (r Rope) LineStart(line int) int {
	if r.root == nil || line <= 0 {
		return 0
	}
	if line > r.root.summary.Lines {
		return r.Len()
	}
	return r.root.newlineEnd(line)
}

// LineEnd returns the offset of the end of line, excluding its newline.
func (r Rope) LineEnd(line int) int {
	if line < 0 {
		return 0
	}
	if line >= r.LineCount()-1 {
		return r.Len()
	}
	return r.LineStart(line+1) - 1
}

// Line returns the text of line without its newline.
func (r Rope) Line(line int) string {
	return r.Slice(r.LineStart(line), r.LineEnd(line))
}

// LineAt returns the line containing offset. Offsets are clamped.
func (r Rope) LineAt(offset int) int {
	if r.root == nil || offset <= 0 {
		return 0
	}
	return r.root.linesBefore(min(offset, r.Len()))
}

// Equals reports whether both ropes hold the same text.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}
	return r.String() == other.String()
}
