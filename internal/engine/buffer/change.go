package buffer

import "fmt"

// RevisionID identifies a buffer state. It increases with every mutation.
type RevisionID uint64

// Change describes one applied mutation: bytes [Start, OldEnd) of the old
// text were replaced by NewText, which now occupies [Start, NewEnd).
type Change struct {
	Start   int
	OldEnd  int
	NewEnd  int
	OldText string
	NewText string

	// FirstLine is the line holding Start. OldLastLine and NewLastLine hold
	// OldEnd before and NewEnd after the edit.
	FirstLine   int
	OldLastLine int
	NewLastLine int

	Revision RevisionID
}

// Removed returns the number of bytes removed.
func (c Change) Removed() int {
	return c.OldEnd - c.Start
}

// Inserted returns the number of bytes inserted.
func (c Change) Inserted() int {
	return c.NewEnd - c.Start
}

// Delta returns the change in buffer length.
func (c Change) Delta() int {
	return c.NewEnd - c.OldEnd
}

// IsNoOp reports whether nothing was removed or inserted.
func (c Change) IsNoOp() bool {
	return c.OldEnd == c.Start && c.NewEnd == c.Start
}

// LineDelta returns the change in line count.
func (c Change) LineDelta() int {
	return c.NewLastLine - c.OldLastLine
}

// Lines returns the affected lines in post-edit numbering.
func (c Change) Lines() []int {
	lines := make([]int, 0, c.NewLastLine-c.FirstLine+1)
	for l := c.FirstLine; l <= c.NewLastLine; l++ {
		lines = append(lines, l)
	}
	return lines
}

// Invert returns the change that undoes c.
func (c Change) Invert() Change {
	return Change{
		Start:       c.Start,
		OldEnd:      c.NewEnd,
		NewEnd:      c.OldEnd,
		OldText:     c.NewText,
		NewText:     c.OldText,
		FirstLine:   c.FirstLine,
		OldLastLine: c.NewLastLine,
		NewLastLine: c.OldLastLine,
	}
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	switch {
	case c.Removed() == 0:
		return fmt.Sprintf("Insert(%d, %q)", c.Start, c.NewText)
	case c.Inserted() == 0:
		return fmt.Sprintf("Delete[%d, %d)", c.Start, c.OldEnd)
	default:
		return fmt.Sprintf("Replace[%d, %d) with %q", c.Start, c.OldEnd, c.NewText)
	}
}
