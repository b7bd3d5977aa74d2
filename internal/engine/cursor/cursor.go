package cursor

import (
	"fmt"

	"github.com/dshills/textcore/internal/engine/buffer"
)

// Buffer is the view of a text buffer a Cursor needs.
// *buffer.Buffer implements it.
type Buffer interface {
	Validate(p buffer.Position) (buffer.Position, error)
	PositionAtOffset(offset int) (buffer.Position, error)
	ClampPosition(line, column int) buffer.Position
	Floor(offset int) buffer.Position
	Next(p buffer.Position) buffer.Position
	Prev(p buffer.Position) buffer.Position
	Start() buffer.Position
	End() buffer.Position
	Line(n int) (string, error)
	LineStart(n int) (int, error)
	LineLen(n int) (int, error)
	LineCount() int
}

// noGoal marks the absence of a remembered column.
const noGoal = -1

// State is a snapshot of a cursor, used for undo.
type State struct {
	Selection Selection
	Goal      int
}

// Cursor is the caret and selection of one editor.
type Cursor struct {
	sel  Selection
	goal int
}

// New creates a cursor at the start of a buffer.
func New() *Cursor {
	return &Cursor{goal: noGoal}
}

// Selection returns the current selection.
func (c *Cursor) Selection() Selection {
	return c.sel
}

// Caret returns the head position.
func (c *Cursor) Caret() buffer.Position {
	return c.sel.Head
}

// Anchor returns the anchor position.
func (c *Cursor) Anchor() buffer.Position {
	return c.sel.Anchor
}

// HasSelection reports whether any text is selected.
func (c *Cursor) HasSelection() bool {
	return !c.sel.IsEmpty()
}

// Range returns the selected range.
func (c *Cursor) Range() buffer.Range {
	return c.sel.Range()
}

// State returns a snapshot for undo.
func (c *Cursor) State() State {
	return State{Selection: c.sel, Goal: c.goal}
}

// SetState restores a snapshot.
func (c *Cursor) SetState(s State) {
	c.sel = s.Selection
	c.goal = s.Goal
}

// String returns a human-readable representation of the cursor.
func (c *Cursor) String() string {
	return c.sel.String()
}

// MoveTo places the caret at p and clears the selection.
func (c *Cursor) MoveTo(b Buffer, p buffer.Position) error {
	p, err := b.Validate(p)
	if err != nil {
		return fmt.Errorf("move cursor: %w", err)
	}
	c.place(p, false)
	return nil
}

// ExtendTo moves the caret to p and keeps the anchor.
func (c *Cursor) ExtendTo(b Buffer, p buffer.Position) error {
	p, err := b.Validate(p)
	if err != nil {
		return fmt.Errorf("extend selection: %w", err)
	}
	c.place(p, true)
	return nil
}

// SelectRange selects r with the caret at its end.
func (c *Cursor) SelectRange(b Buffer, r buffer.Range) error {
	if r.End.Before(r.Start) {
		return fmt.Errorf("select %s: %w", r, buffer.ErrInvalidRange)
	}
	start, err := b.Validate(r.Start)
	if err != nil {
		return fmt.Errorf("select range: %w", err)
	}
	end, err := b.Validate(r.End)
	if err != nil {
		return fmt.Errorf("select range: %w", err)
	}
	c.sel = Selection{Anchor: start, Head: end}
	c.goal = noGoal
	return nil
}

// SelectAll selects the whole buffer.
func (c *Cursor) SelectAll(b Buffer) {
	c.sel = Selection{Anchor: b.Start(), Head: b.End()}
	c.goal = noGoal
}

// CollapseToCaret drops the selection, keeping the caret.
func (c *Cursor) CollapseToCaret() {
	c.sel.Anchor = c.sel.Head
}

// Transform moves both ends through a buffer change. b must already hold
// the changed text.
func (c *Cursor) Transform(b Buffer, ch buffer.Change) {
	c.sel.Anchor = TransformPosition(b, c.sel.Anchor, ch)
	c.sel.Head = TransformPosition(b, c.sel.Head, ch)
	c.goal = noGoal
}

// Revalidate snaps both ends onto current grapheme boundaries. It returns
// true when either end moved.
func (c *Cursor) Revalidate(b Buffer) bool {
	before := c.sel
	c.sel.Anchor = b.Floor(c.sel.Anchor.Offset)
	c.sel.Head = b.Floor(c.sel.Head.Offset)
	return c.sel != before
}

// place moves the caret, keeping the anchor when extend is set.
func (c *Cursor) place(p buffer.Position, extend bool) {
	c.sel.Head = p
	if !extend {
		c.sel.Anchor = p
	}
	c.goal = noGoal
}
