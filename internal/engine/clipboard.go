package engine

import (
	"fmt"
	"strings"

	"github.com/dshills/textcore/internal/engine/history"
)

// Copy puts the selected text on the clipboard using the export line
// ending. It reports false when nothing is selected.
func (e *Engine) Copy() (bool, error) {
	if !e.cur.HasSelection() {
		return false, nil
	}
	text := e.SelectedText()
	if seq := e.buf.LineEnding().Sequence(); seq != "\n" {
		text = strings.ReplaceAll(text, "\n", seq)
	}
	if err := e.clip.Set(text); err != nil {
		return false, fmt.Errorf("copy: %w", err)
	}
	return true, nil
}

// Cut copies the selection and deletes it.
func (e *Engine) Cut() (bool, error) {
	if e.readOnly {
		return false, ErrReadOnly
	}
	ok, err := e.Copy()
	if !ok || err != nil {
		return false, err
	}
	return e.DeleteSelection()
}

// Paste replaces the selection with the clipboard text as one undo step.
// It reports false when the clipboard is empty.
func (e *Engine) Paste() (bool, error) {
	text, err := e.clip.Get()
	if err != nil {
		return false, fmt.Errorf("paste: %w", err)
	}
	if text == "" {
		return false, nil
	}
	e.breakRun()
	if err := e.insertAtCaret(text, history.KindEdit); err != nil {
		return false, err
	}
	return true, nil
}
