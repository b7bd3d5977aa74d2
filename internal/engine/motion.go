package engine

import "github.com/dshills/textcore/internal/engine/cursor"

// Every cursor operation ends the current typing run, so typing after a
// move starts a new undo step.

// Selection returns the anchor and caret.
func (e *Engine) Selection() Selection {
	return e.cur.Selection()
}

// Caret returns the caret position.
func (e *Engine) Caret() Position {
	return e.cur.Caret()
}

// HasSelection reports whether any text is selected.
func (e *Engine) HasSelection() bool {
	return e.cur.HasSelection()
}

// SelectionRange returns the selected range, empty at the caret when
// nothing is selected.
func (e *Engine) SelectionRange() Range {
	return e.cur.Range()
}

// SelectedText returns the selected text.
func (e *Engine) SelectedText() string {
	text, _ := e.buf.TextIn(e.cur.Range())
	return text
}

// CursorState returns a snapshot of the cursor.
func (e *Engine) CursorState() cursor.State {
	return e.cur.State()
}

// MoveTo places the caret at p and clears the selection.
func (e *Engine) MoveTo(p Position) error {
	if err := e.cur.MoveTo(e.buf, p); err != nil {
		return err
	}
	e.breakRun()
	return nil
}

// MoveToOffset places the caret at a byte offset.
func (e *Engine) MoveToOffset(offset int) error {
	p, err := e.buf.PositionAtOffset(offset)
	if err != nil {
		return err
	}
	return e.MoveTo(p)
}

// ExtendTo moves the caret to p and keeps the anchor.
func (e *Engine) ExtendTo(p Position) error {
	if err := e.cur.ExtendTo(e.buf, p); err != nil {
		return err
	}
	e.breakRun()
	return nil
}

// SelectRange selects r with the caret at its end.
func (e *Engine) SelectRange(r Range) error {
	if err := e.cur.SelectRange(e.buf, r); err != nil {
		return err
	}
	e.breakRun()
	return nil
}

// SelectAll selects the whole content.
func (e *Engine) SelectAll() {
	e.cur.SelectAll(e.buf)
	e.breakRun()
}

// SelectWord selects the word touching the caret.
func (e *Engine) SelectWord() {
	e.cur.SelectWord(e.buf)
	e.breakRun()
}

// SelectWordAt selects the word touching p.
func (e *Engine) SelectWordAt(p Position) error {
	if err := e.cur.MoveTo(e.buf, p); err != nil {
		return err
	}
	e.SelectWord()
	return nil
}

// CollapseToCaret drops the selection, keeping the caret.
func (e *Engine) CollapseToCaret() {
	e.cur.CollapseToCaret()
	e.breakRun()
}

// MoveLeft steps one grapheme left.
func (e *Engine) MoveLeft(extend bool) {
	e.cur.MoveLeft(e.buf, extend)
	e.breakRun()
}

// MoveRight steps one grapheme right.
func (e *Engine) MoveRight(extend bool) {
	e.cur.MoveRight(e.buf, extend)
	e.breakRun()
}

// MoveUp moves one line up, keeping the goal column.
func (e *Engine) MoveUp(extend bool) {
	e.cur.MoveUp(e.buf, extend)
	e.breakRun()
}

// MoveDown moves one line down, keeping the goal column.
func (e *Engine) MoveDown(extend bool) {
	e.cur.MoveDown(e.buf, extend)
	e.breakRun()
}

// MoveLineStart moves to the start of the caret's line.
func (e *Engine) MoveLineStart(extend bool) {
	e.cur.MoveLineStart(e.buf, extend)
	e.breakRun()
}

// MoveLineEnd moves to the end of the caret's line.
func (e *Engine) MoveLineEnd(extend bool) {
	e.cur.MoveLineEnd(e.buf, extend)
	e.breakRun()
}

// MoveDocStart moves to the start of the content.
func (e *Engine) MoveDocStart(extend bool) {
	e.cur.MoveDocStart(e.buf, extend)
	e.breakRun()
}

// MoveDocEnd moves to the end of the content.
func (e *Engine) MoveDocEnd(extend bool) {
	e.cur.MoveDocEnd(e.buf, extend)
	e.breakRun()
}

// MoveWordLeft moves to the start of the previous word.
func (e *Engine) MoveWordLeft(extend bool) {
	e.cur.MoveWordLeft(e.buf, extend)
	e.breakRun()
}

// MoveWordRight moves to the end of the next word.
func (e *Engine) MoveWordRight(extend bool) {
	e.cur.MoveWordRight(e.buf, extend)
	e.breakRun()
}

// MoveNextWordStart moves to the start of the next word.
func (e *Engine) MoveNextWordStart(extend bool) {
	e.cur.MoveNextWordStart(e.buf, extend)
	e.breakRun()
}

// MovePrevWordEnd moves to the end of the previous word.
func (e *Engine) MovePrevWordEnd(extend bool) {
	e.cur.MovePrevWordEnd(e.buf, extend)
	e.breakRun()
}

// IsWordBoundary reports whether p separates two words or a word and
// whitespace.
func (e *Engine) IsWordBoundary(p Position) bool {
	return cursor.IsWordBoundary(e.buf, p)
}

// WordStart returns the start of the word before p.
func (e *Engine) WordStart(p Position) Position {
	return cursor.PrevWord(e.buf, p)
}

// WordEnd returns the end of the word after p.
func (e *Engine) WordEnd(p Position) Position {
	return cursor.NextWord(e.buf, p)
}
