package buffer

import "fmt"

// Position is a grapheme-aligned location in a buffer.
// Column counts grapheme clusters from the start of Line; Offset is the
// absolute byte offset and is what positions are ordered by.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d@%d", p.Line, p.Column, p.Offset)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Offset < other.Offset:
		return -1
	case p.Offset > other.Offset:
		return 1
	default:
		return 0
	}
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Offset > other.Offset
}

// Range is an ordered pair of positions. Start <= End for ranges produced
// by NewRange; buffer operations reject crossed ranges.
type Range struct {
	Start Position
	End   Position
}

// NewRange creates a range from two positions in either order.
func NewRange(a, b Position) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// IsEmpty reports whether the range covers no text.
func (r Range) IsEmpty() bool {
	return r.Start.Offset == r.End.Offset
}

// Len returns the byte length of the range.
func (r Range) Len() int {
	return r.End.Offset - r.Start.Offset
}

// Contains reports whether offset lies in [Start, End).
func (r Range) Contains(offset int) bool {
	return offset >= r.Start.Offset && offset < r.End.Offset
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start, r.End)
}
