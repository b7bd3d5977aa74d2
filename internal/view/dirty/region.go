// Package dirty tracks which document lines need to be laid out again after
// edits. Ranges of dirty lines are coalesced as they are marked.
package dirty

// Range is an inclusive range of document lines.
type Range struct {
	Start int
	End   int
}

// NewRange creates a range, ordering its endpoints.
func NewRange(start, end int) Range {
	if end < start {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// IsEmpty returns true if the range covers no line.
func (r Range) IsEmpty() bool {
	return r.Start > r.End || r.End < 0
}

// Len returns the number of lines covered.
func (r Range) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains returns true if the range covers line.
func (r Range) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

// Overlaps returns true if the ranges share a line.
func (r Range) Overlaps(other Range) bool {
	return r.Start <= other.End && other.Start <= r.End
}

// Adjacent returns true if one range ends on the line before the other
// starts.
func (r Range) Adjacent(other Range) bool {
	return r.End+1 == other.Start || other.End+1 == r.Start
}

// Merge combines two ranges that overlap or touch.
func (r Range) Merge(other Range) (Range, bool) {
	if !r.Overlaps(other) && !r.Adjacent(other) {
		return Range{}, false
	}
	return Range{Start: min(r.Start, other.Start), End: max(r.End, other.End)}, true
}

// Clamp limits the range to lines [0, lineCount).
func (r Range) Clamp(lineCount int) Range {
	if r.Start < 0 {
		r.Start = 0
	}
	if r.End >= lineCount {
		r.End = lineCount - 1
	}
	return r
}
