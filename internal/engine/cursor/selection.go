package cursor

import (
	"fmt"

	"github.com/dshills/textcore/internal/engine/buffer"
)

// Selection is an anchor/head pair. It is an immutable value type.
type Selection struct {
	Anchor buffer.Position
	Head   buffer.Position
}

// Collapsed returns a selection with both ends at p.
func Collapsed(p buffer.Position) Selection {
	return Selection{Anchor: p, Head: p}
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return s.Anchor.Offset == s.Head.Offset
}

// IsForward reports whether the head is at or after the anchor.
func (s Selection) IsForward() bool {
	return !s.Head.Before(s.Anchor)
}

// Range returns the selected range with Start <= End.
func (s Selection) Range() buffer.Range {
	return buffer.NewRange(s.Anchor, s.Head)
}

// Start returns the lower end of the selection.
func (s Selection) Start() buffer.Position {
	return s.Range().Start
}

// End returns the upper end of the selection.
func (s Selection) End() buffer.Position {
	return s.Range().End
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor(%s)", s.Head)
	}
	return fmt.Sprintf("Selection(%s -> %s)", s.Anchor, s.Head)
}
