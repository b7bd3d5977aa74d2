package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/textcore/internal/engine/cursor"
	"github.com/dshills/textcore/internal/engine/style"
)

// Kind classifies records for coalescing.
type Kind uint8

const (
	// KindEdit is any edit that never coalesces.
	KindEdit Kind = iota
	// KindTyping is a single grapheme typed at the caret.
	KindTyping
	// KindBackspace is a single grapheme deleted before the caret.
	KindBackspace
	// KindStyle changes spans without touching text.
	KindStyle
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindTyping:
		return "typing"
	case KindBackspace:
		return "backspace"
	case KindStyle:
		return "style"
	default:
		return "edit"
	}
}

// Edit is one text replacement: OldText at Start became NewText.
type Edit struct {
	Start   int
	OldText string
	NewText string
}

// OldEnd returns the end of the replaced text before the edit.
func (e Edit) OldEnd() int {
	return e.Start + len(e.OldText)
}

// NewEnd returns the end of the inserted text after the edit.
func (e Edit) NewEnd() int {
	return e.Start + len(e.NewText)
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	return fmt.Sprintf("@%d %q -> %q", e.Start, e.OldText, e.NewText)
}

// SpanChange holds the state of one span before and after a record.
// A span absent on one side has the matching Had/Has flag unset.
type SpanChange struct {
	ID        style.SpanID
	Before    style.Span
	HadBefore bool
	After     style.Span
	HasAfter  bool
}

// Record is one undoable step.
type Record struct {
	ID     uuid.UUID
	Kind   Kind
	Edits  []Edit
	Before cursor.State
	After  cursor.State
	Spans  []SpanChange
	Time   time.Time
}

// NewRecord creates a record of a single edit.
func NewRecord(kind Kind, e Edit, before, after cursor.State) Record {
	return Record{
		ID:     uuid.New(),
		Kind:   kind,
		Edits:  []Edit{e},
		Before: before,
		After:  after,
		Time:   time.Now(),
	}
}

// Description returns a short summary for menus and logs.
func (r Record) Description() string {
	switch {
	case r.Kind == KindStyle:
		return fmt.Sprintf("style %d spans", len(r.Spans))
	case len(r.Edits) == 1:
		return fmt.Sprintf("%s %s", r.Kind, r.Edits[0])
	default:
		return fmt.Sprintf("%s x%d", r.Kind, len(r.Edits))
	}
}

// mergeSpans folds later span changes into earlier ones, keeping the first
// before-state and the last after-state of each span.
func mergeSpans(into, later []SpanChange) []SpanChange {
	index := make(map[style.SpanID]int, len(into))
	for i, c := range into {
		index[c.ID] = i
	}
	for _, c := range later {
		if i, ok := index[c.ID]; ok {
			into[i].After, into[i].HasAfter = c.After, c.HasAfter
			continue
		}
		index[c.ID] = len(into)
		into = append(into, c)
	}
	return into
}
