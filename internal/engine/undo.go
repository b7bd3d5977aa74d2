package engine

import (
	"github.com/dshills/textcore/internal/engine/cursor"
	"github.com/dshills/textcore/internal/engine/history"
)

// target replays history records against the engine without recording
// them again.
type target struct {
	e *Engine
}

func (t target) ApplyEdit(start, end int, text string) error {
	e := t.e
	ch, err := e.buf.ReplaceBytes(start, end, text)
	if err != nil {
		return err
	}
	if ch.IsNoOp() {
		return nil
	}
	e.spans.Adjust(ch.Start, ch.Removed(), ch.Inserted())
	e.snapSpans(ch)
	e.cur.Transform(e.buf, ch)
	e.emit(ch)
	return nil
}

func (t target) SetSpan(id SpanID, s Span, present bool) error {
	if !present {
		t.e.spans.Remove(id)
		return nil
	}
	return t.e.spans.Restore(s)
}

func (t target) SetCursor(s cursor.State) {
	t.e.cur.SetState(s)
	t.e.cur.Revalidate(t.e.buf)
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo reverts the most recent undo step. It reports false when there is
// nothing to undo.
func (e *Engine) Undo() (bool, error) {
	if e.readOnly {
		return false, ErrReadOnly
	}
	rec, ok, err := e.log.Undo(target{e})
	if err != nil || !ok {
		return false, err
	}
	e.logger.Debug("undo %s", rec.Description())
	e.appendReplay(ReplayEntry{Op: OpUndo})
	return true, nil
}

// Redo re-applies the most recently undone step. It reports false when
// there is nothing to redo.
func (e *Engine) Redo() (bool, error) {
	if e.readOnly {
		return false, ErrReadOnly
	}
	rec, ok, err := e.log.Redo(target{e})
	if err != nil || !ok {
		return false, err
	}
	e.logger.Debug("redo %s", rec.Description())
	e.appendReplay(ReplayEntry{Op: OpRedo})
	return true, nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.log.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.log.CanRedo()
}

// UndoCount returns the number of undo steps.
func (e *Engine) UndoCount() int {
	return e.log.UndoCount()
}

// RedoCount returns the number of redo steps.
func (e *Engine) RedoCount() int {
	return e.log.RedoCount()
}

// ClearHistory drops all undo and redo steps.
func (e *Engine) ClearHistory() {
	e.log.Clear()
	e.saved = e.log.Top()
	e.appendReplay(ReplayEntry{Op: OpClearHistory})
}

// BreakUndo ends the current typing run so the next edit starts a new
// undo step.
func (e *Engine) BreakUndo() {
	e.breakRun()
}

// Group runs fn so that every edit it makes becomes one undo step. When fn
// fails its edits are reverted and the error is returned.
func (e *Engine) Group(fn func() error) error {
	if e.readOnly {
		return ErrReadOnly
	}
	e.appendReplay(ReplayEntry{Op: OpBeginGroup})
	err := e.log.Transaction(target{e}, fn)
	if err != nil {
		e.dropReplayGroup()
		return err
	}
	e.appendReplay(ReplayEntry{Op: OpEndGroup})
	return nil
}

// UndoPolicy returns the coalescing policy.
func (e *Engine) UndoPolicy() history.Policy {
	return e.log.Policy()
}

func (e *Engine) breakRun() {
	e.log.Break()
	e.appendReplay(ReplayEntry{Op: OpBreak})
}
