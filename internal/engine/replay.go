package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/textcore/internal/engine/cursor"
	"github.com/dshills/textcore/internal/engine/history"
)

// ReplayOp is the kind of a recorded operation.
type ReplayOp uint8

const (
	OpEdit ReplayOp = iota
	OpUndo
	OpRedo
	OpSetText
	OpAddSpan
	OpRemoveSpan
	OpBreak
	OpClearHistory
	OpBeginGroup
	OpEndGroup
)

var opNames = [...]string{
	OpEdit:         "edit",
	OpUndo:         "undo",
	OpRedo:         "redo",
	OpSetText:      "set-text",
	OpAddSpan:      "add-span",
	OpRemoveSpan:   "remove-span",
	OpBreak:        "break",
	OpClearHistory: "clear-history",
	OpBeginGroup:   "begin-group",
	OpEndGroup:     "end-group",
}

// String returns the name of the operation.
func (op ReplayOp) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// ReplayEntry is one recorded operation. Which fields are set depends on
// Op: edits use Kind, Start, End, Text and the cursor states; span
// operations use Span; SetText uses Text.
type ReplayEntry struct {
	ID     uuid.UUID
	Op     ReplayOp
	Kind   history.Kind
	Start  int
	End    int
	Text   string
	Span   Span
	Before cursor.State
	After  cursor.State
}

func (e *Engine) appendReplay(entry ReplayEntry) {
	if !e.replayOn {
		return
	}
	if entry.Op == OpBreak && len(e.replay) > 0 && e.replay[len(e.replay)-1].Op == OpBreak {
		return
	}
	entry.ID = uuid.New()
	e.replay = append(e.replay, entry)
}

// dropReplayGroup discards the entries of a group that was rolled back.
func (e *Engine) dropReplayGroup() {
	for i := len(e.replay) - 1; i >= 0; i-- {
		if e.replay[i].Op == OpBeginGroup {
			clear(e.replay[i:])
			e.replay = e.replay[:i]
			return
		}
	}
}

// TakeReplay returns the operations recorded since the last call and
// forgets them. It returns nil unless the engine was created WithReplay.
func (e *Engine) TakeReplay() []ReplayEntry {
	out := e.replay
	e.replay = nil
	return out
}

// Replay applies entries taken from another engine. Applied to an engine
// holding the same content, it leaves text, spans and undo history equal
// to the source's.
func (e *Engine) Replay(entries []ReplayEntry) error {
	for i, entry := range entries {
		if err := e.replayOne(entry); err != nil {
			return fmt.Errorf("replay entry %d (%s): %w", i, entry.Op, err)
		}
	}
	return nil
}

func (e *Engine) replayOne(entry ReplayEntry) error {
	switch entry.Op {
	case OpEdit:
		e.cur.SetState(entry.Before)
		e.cur.Revalidate(e.buf)
		_, err := e.edit(entry.Start, entry.End, entry.Text, entry.Kind, func(Change) {
			e.cur.SetState(entry.After)
			e.cur.Revalidate(e.buf)
		})
		return err
	case OpUndo:
		_, err := e.Undo()
		return err
	case OpRedo:
		_, err := e.Redo()
		return err
	case OpSetText:
		return e.SetText(entry.Text)
	case OpAddSpan:
		if err := e.spans.Restore(entry.Span); err != nil {
			return err
		}
		e.recordStyle([]history.SpanChange{{ID: entry.Span.ID, After: entry.Span, HasAfter: true}})
		e.appendReplay(ReplayEntry{Op: OpAddSpan, Span: entry.Span})
	case OpRemoveSpan:
		e.RemoveSpan(entry.Span.ID)
	case OpBreak:
		e.breakRun()
	case OpClearHistory:
		e.ClearHistory()
	case OpBeginGroup:
		e.log.BeginGroup()
		e.appendReplay(ReplayEntry{Op: OpBeginGroup})
	case OpEndGroup:
		e.log.EndGroup()
		e.appendReplay(ReplayEntry{Op: OpEndGroup})
	default:
		return fmt.Errorf("unknown operation %d", uint8(entry.Op))
	}
	return nil
}
