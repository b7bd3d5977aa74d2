package history

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/textcore/internal/engine/cursor"
	"github.com/dshills/textcore/internal/engine/grapheme"
	"github.com/dshills/textcore/internal/engine/style"
)

// DefaultMaxDepth is the undo depth used when none is given.
const DefaultMaxDepth = 1000

// Unlimited disables the depth bound.
const Unlimited = -1

// Target is what Undo and Redo replay records against.
type Target interface {
	// ApplyEdit replaces [start, end) with text, moving spans and cursor
	// the same way a fresh edit would.
	ApplyEdit(start, end int, text string) error
	// SetSpan puts s in place, or removes span id when present is false.
	SetSpan(id style.SpanID, s style.Span, present bool) error
	// SetCursor restores a cursor snapshot.
	SetCursor(s cursor.State)
}

// Option is a functional option for configuring a Log.
type Option func(*Log)

// WithPolicy sets the coalescing policy.
func WithPolicy(p Policy) Option {
	return func(l *Log) {
		l.policy = p
	}
}

// WithoutCoalescing makes every record its own undo step.
func WithoutCoalescing() Option {
	return func(l *Log) {
		l.noMerge = true
	}
}

// Log is a linear undo/redo history.
type Log struct {
	undo     []Record
	redo     []Record
	maxDepth int
	policy   Policy
	noMerge  bool
	last     run

	grouping bool
	depth    int
	group    Record
}

// NewLog creates a log holding at most maxDepth undo steps. A depth of 0
// selects DefaultMaxDepth and Unlimited removes the bound.
func NewLog(maxDepth int, opts ...Option) *Log {
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	l := &Log{maxDepth: maxDepth, policy: DefaultPolicy}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Policy returns the coalescing policy.
func (l *Log) Policy() Policy {
	return l.policy
}

// MaxDepth returns the undo depth bound.
func (l *Log) MaxDepth() int {
	return l.maxDepth
}

// SetMaxDepth changes the bound, dropping the oldest steps if needed.
func (l *Log) SetMaxDepth(depth int) {
	if depth == 0 {
		depth = DefaultMaxDepth
	}
	l.maxDepth = depth
	l.trim()
}

// Record adds r to the history. It merges r into the newest step when r
// continues the open typing or backspace run, and otherwise pushes it and
// discards the redo tail. It reports whether r was merged.
func (l *Log) Record(r Record) bool {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if l.grouping {
		l.addToGroup(r)
		return true
	}

	if !l.noMerge && len(l.redo) == 0 && len(l.undo) > 0 && l.last.accepts(r, l.policy) {
		top := &l.undo[len(l.undo)-1]
		top.ID = r.ID
		e := r.Edits[0]
		if r.Kind == KindTyping {
			top.Edits[0].NewText += e.NewText
		} else {
			top.Edits[0].Start = e.Start
			top.Edits[0].OldText = e.OldText + top.Edits[0].OldText
		}
		top.After = r.After
		top.Spans = mergeSpans(top.Spans, r.Spans)
		l.last.length++
		l.last.edge = e.Start
		if r.Kind == KindTyping {
			l.last.edge = e.NewEnd()
			l.last.last = grapheme.ClassOf(e.NewText)
		} else {
			l.last.last = grapheme.ClassOf(e.OldText)
		}
		return true
	}

	l.push(r)
	l.last = describe(r)
	return false
}

func (l *Log) push(r Record) {
	l.undo = append(l.undo, r)
	l.redo = nil
	l.trim()
}

func (l *Log) trim() {
	if l.maxDepth > 0 && len(l.undo) > l.maxDepth {
		excess := len(l.undo) - l.maxDepth
		clear(l.undo[:excess])
		l.undo = l.undo[excess:]
	}
}

// Break closes the open coalescing run.
func (l *Log) Break() {
	l.last = run{}
}

// Undo reverses the newest step against t. It reports false when there is
// nothing to undo.
func (l *Log) Undo(t Target) (Record, bool, error) {
	l.Break()
	if len(l.undo) == 0 {
		return Record{}, false, nil
	}
	r := l.undo[len(l.undo)-1]
	if err := revert(t, r); err != nil {
		return Record{}, false, err
	}

	l.undo = l.undo[:len(l.undo)-1]
	l.redo = append(l.redo, r)
	return r, true, nil
}

// revert plays r backwards against t.
func revert(t Target, r Record) error {
	for i := len(r.Edits) - 1; i >= 0; i-- {
		e := r.Edits[i]
		if err := t.ApplyEdit(e.Start, e.NewEnd(), e.OldText); err != nil {
			return fmt.Errorf("undo %s: %w", e, err)
		}
	}
	for i := len(r.Spans) - 1; i >= 0; i-- {
		c := r.Spans[i]
		if err := t.SetSpan(c.ID, c.Before, c.HadBefore); err != nil {
			return fmt.Errorf("undo span %d: %w", c.ID, err)
		}
	}
	t.SetCursor(r.Before)
	return nil
}

// Redo re-applies the newest undone step against t. It reports false when
// there is nothing to redo.
func (l *Log) Redo(t Target) (Record, bool, error) {
	l.Break()
	if len(l.redo) == 0 {
		return Record{}, false, nil
	}
	r := l.redo[len(l.redo)-1]

	for _, e := range r.Edits {
		if err := t.ApplyEdit(e.Start, e.OldEnd(), e.NewText); err != nil {
			return Record{}, false, fmt.Errorf("redo %s: %w", e, err)
		}
	}
	for _, c := range r.Spans {
		if err := t.SetSpan(c.ID, c.After, c.HasAfter); err != nil {
			return Record{}, false, fmt.Errorf("redo span %d: %w", c.ID, err)
		}
	}
	t.SetCursor(r.After)

	l.redo = l.redo[:len(l.redo)-1]
	l.undo = append(l.undo, r)
	return r, true, nil
}

// CanUndo returns true if undo is available.
func (l *Log) CanUndo() bool {
	return len(l.undo) > 0
}

// CanRedo returns true if redo is available.
func (l *Log) CanRedo() bool {
	return len(l.redo) > 0
}

// UndoCount returns the number of undo steps.
func (l *Log) UndoCount() int {
	return len(l.undo)
}

// RedoCount returns the number of redo steps.
func (l *Log) RedoCount() int {
	return len(l.redo)
}

// Top returns the ID of the newest undo step, or uuid.Nil. Comparing it to
// a saved value tells whether the content moved since.
func (l *Log) Top() uuid.UUID {
	if len(l.undo) == 0 {
		return uuid.Nil
	}
	return l.undo[len(l.undo)-1].ID
}

// PeekUndo returns the newest undo step without removing it.
func (l *Log) PeekUndo() (Record, bool) {
	if len(l.undo) == 0 {
		return Record{}, false
	}
	return l.undo[len(l.undo)-1], true
}

// PeekRedo returns the newest redo step without removing it.
func (l *Log) PeekRedo() (Record, bool) {
	if len(l.redo) == 0 {
		return Record{}, false
	}
	return l.redo[len(l.redo)-1], true
}

// Clear removes all history.
func (l *Log) Clear() {
	l.undo = nil
	l.redo = nil
	l.last = run{}
	l.grouping = false
	l.depth = 0
	l.group = Record{}
}
