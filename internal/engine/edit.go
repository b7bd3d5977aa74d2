package engine

import (
	"fmt"
	"strings"

	"github.com/dshills/textcore/internal/engine/cursor"
	"github.com/dshills/textcore/internal/engine/grapheme"
	"github.com/dshills/textcore/internal/engine/history"
)

// placement moves the caret after an edit has been applied. A nil
// placement leaves the caret where the change transformed it.
type placement func(ch Change)

// caretAfter puts a collapsed caret after the inserted text.
func (e *Engine) caretAfter(ch Change) {
	p := e.buf.Ceil(ch.NewEnd)
	e.cur.SetState(cursor.State{Selection: cursor.Collapsed(p), Goal: -1})
}

// edit replaces the bytes [start, end) with text and carries the overlay,
// cursor and history along. Nothing changes when it fails.
func (e *Engine) edit(start, end int, text string, kind history.Kind, place placement) (Change, error) {
	if e.readOnly {
		return Change{}, ErrReadOnly
	}
	if e.singleLine {
		text = flatten(text)
	}

	before := e.cur.State()
	ch, err := e.buf.ReplaceSpan(start, end, text)
	if err != nil {
		e.logger.Debug("rejected edit [%d, %d): %v", start, end, err)
		return Change{}, err
	}
	if ch.IsNoOp() {
		return ch, nil
	}

	spans := e.moveSpans(ch)
	e.cur.Transform(e.buf, ch)
	if place != nil {
		place(ch)
	}

	rec := history.NewRecord(kind, history.Edit{Start: ch.Start, OldText: ch.OldText, NewText: ch.NewText}, before, e.cur.State())
	rec.Spans = spans
	if !e.log.Record(rec) && kind != history.KindEdit {
		e.logger.Debug("new %s step at %d", kind, ch.Start)
	}
	e.appendReplay(ReplayEntry{
		Op:     OpEdit,
		Kind:   kind,
		Start:  ch.Start,
		End:    ch.OldEnd,
		Text:   ch.NewText,
		Before: before,
		After:  rec.After,
	})
	e.emit(ch)
	return ch, nil
}

// ============================================================================
// Positional Edits
// ============================================================================

// Insert inserts text at p. The caret moves with the text around it.
func (e *Engine) Insert(p Position, text string) (Change, error) {
	if _, err := e.buf.Validate(p); err != nil {
		return Change{}, fmt.Errorf("insert: %w", err)
	}
	return e.edit(p.Offset, p.Offset, text, history.KindEdit, nil)
}

// Delete removes the text covered by r.
func (e *Engine) Delete(r Range) (Change, error) {
	if _, err := e.buf.TextIn(r); err != nil {
		return Change{}, fmt.Errorf("delete: %w", err)
	}
	return e.edit(r.Start.Offset, r.End.Offset, "", history.KindEdit, nil)
}

// Replace replaces the text covered by r with text.
func (e *Engine) Replace(r Range, text string) (Change, error) {
	if _, err := e.buf.TextIn(r); err != nil {
		return Change{}, fmt.Errorf("replace: %w", err)
	}
	return e.edit(r.Start.Offset, r.End.Offset, text, history.KindEdit, nil)
}

// SetText replaces the whole content. Spans and undo history are cleared
// and the caret moves to the end.
func (e *Engine) SetText(text string) error {
	if e.readOnly {
		return ErrReadOnly
	}
	if e.singleLine {
		text = flatten(text)
	}
	ch := e.buf.SetText(text)
	e.spans.Clear()
	e.log.Clear()
	e.saved = e.log.Top()
	e.cur.SetState(cursor.State{Selection: cursor.Collapsed(e.buf.End()), Goal: -1})
	e.appendReplay(ReplayEntry{Op: OpSetText, Text: ch.NewText})
	if !ch.IsNoOp() {
		e.emit(ch)
	}
	return nil
}

// Clear removes all content, spans and history.
func (e *Engine) Clear() error {
	return e.SetText("")
}

// ============================================================================
// Caret Edits
// ============================================================================

// InsertText replaces the selection with text, or inserts it at the caret,
// and leaves the caret after it. A single grapheme typed without a
// selection may merge with the previous undo step.
func (e *Engine) InsertText(text string) error {
	kind := history.KindEdit
	if !e.cur.HasSelection() && grapheme.Count(text) == 1 {
		kind = history.KindTyping
	}
	return e.insertAtCaret(text, kind)
}

// InsertChar types a single character.
func (e *Engine) InsertChar(r rune) error {
	return e.InsertText(string(r))
}

func (e *Engine) insertAtCaret(text string, kind history.Kind) error {
	r := e.cur.Range()
	_, err := e.edit(r.Start.Offset, r.End.Offset, text, kind, e.caretAfter)
	return err
}

// InsertTab inserts spaces up to the next tab stop when tabs are expanded,
// and a tab character otherwise.
func (e *Engine) InsertTab() error {
	if !e.expandTabs {
		return e.InsertText("\t")
	}
	start := e.cur.Range().Start
	line, err := e.buf.Line(start.Line)
	if err != nil {
		return err
	}
	ls, _ := e.buf.LineStart(start.Line)
	col := VisualColumn(line[:start.Offset-ls], e.tabWidth)
	return e.insertAtCaret(strings.Repeat(" ", e.tabWidth-col%e.tabWidth), history.KindEdit)
}

// InsertNewline breaks the line at the caret. Single-line engines ignore it
// and report false.
func (e *Engine) InsertNewline() (bool, error) {
	if e.singleLine {
		return false, nil
	}
	kind := history.KindTyping
	if e.cur.HasSelection() {
		kind = history.KindEdit
	}
	if err := e.insertAtCaret("\n", kind); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteSelection removes the selected text.
func (e *Engine) DeleteSelection() (bool, error) {
	if !e.cur.HasSelection() {
		return false, nil
	}
	r := e.cur.Range()
	if _, err := e.edit(r.Start.Offset, r.End.Offset, "", history.KindEdit, e.caretAfter); err != nil {
		return false, err
	}
	return true, nil
}

// DeletePrev deletes the selection, or the grapheme before the caret.
func (e *Engine) DeletePrev() (bool, error) {
	if e.cur.HasSelection() {
		return e.DeleteSelection()
	}
	caret := e.cur.Caret()
	return e.deleteTo(e.buf.Prev(caret), caret, history.KindBackspace)
}

// DeleteNext deletes the selection, or the grapheme after the caret.
func (e *Engine) DeleteNext() (bool, error) {
	if e.cur.HasSelection() {
		return e.DeleteSelection()
	}
	caret := e.cur.Caret()
	return e.deleteTo(caret, e.buf.Next(caret), history.KindEdit)
}

// DeletePrevWord deletes the selection, or back to the start of the
// previous word.
func (e *Engine) DeletePrevWord() (bool, error) {
	if e.cur.HasSelection() {
		return e.DeleteSelection()
	}
	caret := e.cur.Caret()
	return e.deleteTo(cursor.PrevWord(e.buf, caret), caret, history.KindEdit)
}

// DeleteNextWord deletes the selection, or up to the end of the next word.
func (e *Engine) DeleteNextWord() (bool, error) {
	if e.cur.HasSelection() {
		return e.DeleteSelection()
	}
	caret := e.cur.Caret()
	return e.deleteTo(caret, cursor.NextWord(e.buf, caret), history.KindEdit)
}

// DeleteToLineStart deletes from the start of the caret's line to the caret.
func (e *Engine) DeleteToLineStart() (bool, error) {
	caret := e.cur.Caret()
	return e.deleteTo(e.buf.ClampPosition(caret.Line, 0), caret, history.KindEdit)
}

// DeleteToLineEnd deletes from the caret to the end of its line.
func (e *Engine) DeleteToLineEnd() (bool, error) {
	caret := e.cur.Caret()
	n, err := e.buf.LineLen(caret.Line)
	if err != nil {
		return false, err
	}
	return e.deleteTo(caret, e.buf.ClampPosition(caret.Line, n), history.KindEdit)
}

func (e *Engine) deleteTo(from, to Position, kind history.Kind) (bool, error) {
	if from.Offset >= to.Offset {
		return false, nil
	}
	if _, err := e.edit(from.Offset, to.Offset, "", kind, e.caretAfter); err != nil {
		return false, err
	}
	return true, nil
}

// VisualColumn returns the display column reached after text, expanding
// tabs to multiples of tabWidth.
func VisualColumn(text string, tabWidth int) int {
	col := 0
	for _, c := range grapheme.Split(text) {
		if c.Text == "\t" {
			col += tabWidth - col%tabWidth
			continue
		}
		col += c.Width
	}
	return col
}
