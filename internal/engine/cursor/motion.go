package cursor

import (
	"github.com/dshills/textcore/internal/engine/buffer"
	"github.com/dshills/textcore/internal/engine/grapheme"
)

// MoveLeft steps one grapheme left. Without extend, a selection collapses
// to its start instead.
func (c *Cursor) MoveLeft(b Buffer, extend bool) {
	if !extend && c.HasSelection() {
		c.place(c.sel.Start(), false)
		return
	}
	c.place(b.Prev(c.sel.Head), extend)
}

// MoveRight steps one grapheme right. Without extend, a selection collapses
// to its end instead.
func (c *Cursor) MoveRight(b Buffer, extend bool) {
	if !extend && c.HasSelection() {
		c.place(c.sel.End(), false)
		return
	}
	c.place(b.Next(c.sel.Head), extend)
}

// MoveUp moves to the previous line at the goal column. On the first line
// it moves to the start of the buffer.
func (c *Cursor) MoveUp(b Buffer, extend bool) {
	c.vertical(b, -1, extend)
}

// MoveDown moves to the next line at the goal column. On the last line it
// moves to the end of the buffer.
func (c *Cursor) MoveDown(b Buffer, extend bool) {
	c.vertical(b, 1, extend)
}

func (c *Cursor) vertical(b Buffer, dir int, extend bool) {
	goal := c.goal
	if goal == noGoal {
		goal = c.sel.Head.Column
	}
	line := c.sel.Head.Line + dir
	switch {
	case line < 0:
		c.place(b.Start(), extend)
		return
	case line >= b.LineCount():
		c.place(b.End(), extend)
		return
	}
	c.place(b.ClampPosition(line, goal), extend)
	c.goal = goal
}

// MoveLineStart moves to column 0 of the caret's line.
func (c *Cursor) MoveLineStart(b Buffer, extend bool) {
	c.place(b.ClampPosition(c.sel.Head.Line, 0), extend)
}

// MoveLineEnd moves past the last grapheme of the caret's line.
func (c *Cursor) MoveLineEnd(b Buffer, extend bool) {
	n, _ := b.LineLen(c.sel.Head.Line)
	c.place(b.ClampPosition(c.sel.Head.Line, n), extend)
}

// MoveDocStart moves to the start of the buffer.
func (c *Cursor) MoveDocStart(b Buffer, extend bool) {
	c.place(b.Start(), extend)
}

// MoveDocEnd moves to the end of the buffer.
func (c *Cursor) MoveDocEnd(b Buffer, extend bool) {
	c.place(b.End(), extend)
}

// MoveWordLeft moves to the start of the previous word, crossing to the
// end of the previous line from a line start.
func (c *Cursor) MoveWordLeft(b Buffer, extend bool) {
	c.place(PrevWord(b, c.sel.Head), extend)
}

// MoveWordRight moves to the end of the next word, crossing to the start
// of the next line from a line end.
func (c *Cursor) MoveWordRight(b Buffer, extend bool) {
	c.place(NextWord(b, c.sel.Head), extend)
}

// MoveNextWordStart moves to the start of the next word.
func (c *Cursor) MoveNextWordStart(b Buffer, extend bool) {
	c.place(NextWordStart(b, c.sel.Head), extend)
}

// MovePrevWordEnd moves to the end of the previous word.
func (c *Cursor) MovePrevWordEnd(b Buffer, extend bool) {
	c.place(PrevWordEnd(b, c.sel.Head), extend)
}

// SelectWord selects the word touching the caret.
func (c *Cursor) SelectWord(b Buffer) {
	head := c.sel.Head
	line, _ := b.Line(head.Line)
	start, _ := b.LineStart(head.Line)
	seg := grapheme.WordAt(line, head.Offset-start)
	from, err1 := b.PositionAtOffset(start + seg.Start)
	to, err2 := b.PositionAtOffset(start + seg.End)
	if err1 != nil || err2 != nil {
		return
	}
	c.sel = Selection{Anchor: from, Head: to}
	c.goal = noGoal
}

// PrevWord returns the start of the word before p.
func PrevWord(b Buffer, p buffer.Position) buffer.Position {
	return wordStep(b, p, false, grapheme.PrevWordStart)
}

// NextWord returns the end of the word after p.
func NextWord(b Buffer, p buffer.Position) buffer.Position {
	return wordStep(b, p, true, grapheme.NextWordEnd)
}

// NextWordStart returns the start of the next word after p.
func NextWordStart(b Buffer, p buffer.Position) buffer.Position {
	return wordStep(b, p, true, grapheme.NextWordStart)
}

// PrevWordEnd returns the end of the word before p.
func PrevWordEnd(b Buffer, p buffer.Position) buffer.Position {
	return wordStep(b, p, false, grapheme.PrevWordEnd)
}

// IsWordBoundary reports whether p lies between two words, or between a
// word and whitespace. Line starts and ends are boundaries.
func IsWordBoundary(b Buffer, p buffer.Position) bool {
	line, _ := b.Line(p.Line)
	start, _ := b.LineStart(p.Line)
	return grapheme.IsWordBoundary(line, p.Offset-start)
}

// wordStep applies the line-local word function fn at p. At the line edge
// in the direction of travel it crosses to the neighbouring line.
func wordStep(b Buffer, p buffer.Position, forward bool, fn func(string, int) int) buffer.Position {
	line, _ := b.Line(p.Line)
	start, _ := b.LineStart(p.Line)
	rel := p.Offset - start
	switch {
	case forward && rel >= len(line):
		return b.Next(p)
	case !forward && rel == 0:
		return b.Prev(p)
	}
	if q, err := b.PositionAtOffset(start + fn(line, rel)); err == nil {
		return q
	}
	if forward {
		return b.ClampPosition(p.Line, len(line))
	}
	return b.ClampPosition(p.Line, 0)
}
