package engine

import (
	"fmt"

	"github.com/dshills/textcore/internal/engine/history"
	"github.com/dshills/textcore/internal/engine/style"
)

// moveSpans carries the overlay through ch and returns the span changes an
// undo needs to put the overlay back.
func (e *Engine) moveSpans(ch Change) []history.SpanChange {
	var changes []history.SpanChange
	index := make(map[SpanID]int)
	note := func(before Span) {
		if _, ok := index[before.ID]; ok {
			return
		}
		index[before.ID] = len(changes)
		changes = append(changes, history.SpanChange{ID: before.ID, Before: before, HadBefore: true})
	}

	for _, s := range e.spans.Adjust(ch.Start, ch.Removed(), ch.Inserted()) {
		note(s)
	}
	for _, s := range e.snapSpans(ch) {
		// Spans the edit did not touch were at most shifted by it.
		if s.Start > ch.NewEnd {
			s.Start -= ch.Delta()
			s.End -= ch.Delta()
		}
		note(s)
	}

	out := changes[:0]
	for _, c := range changes {
		c.After, c.HasAfter = e.spans.Get(c.ID)
		if c.HasAfter && c.After == c.Before && !pinned(c.Before, ch) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// pinned reports whether a deletion left s in place only because s starts
// at the deleted range. Reinserting there shifts s, so undo must put it back.
func pinned(s Span, ch Change) bool {
	return ch.Inserted() == 0 && ch.Removed() > 0 && s.Start == ch.Start
}

// snapSpans widens span endpoints that an edit left inside a grapheme
// cluster: starts move back and ends move forward to the enclosing
// boundaries. Clusters never cross a line break, so only the lines of ch
// are examined. It returns the states of the spans it moved.
func (e *Engine) snapSpans(ch Change) []Span {
	lo, err := e.buf.LineStart(ch.FirstLine)
	if err != nil {
		return nil
	}
	last, err := e.buf.Line(ch.NewLastLine)
	if err != nil {
		return nil
	}
	ls, _ := e.buf.LineStart(ch.NewLastLine)
	hi := ls + len(last)

	var moved []Span
	for _, s := range e.spans.SpansIn(lo, hi) {
		snapped := s
		snapped.Start = e.buf.Floor(s.Start).Offset
		snapped.End = max(e.buf.Ceil(s.End).Offset, snapped.Start)
		if snapped == s {
			continue
		}
		moved = append(moved, s)
		_ = e.spans.Restore(snapped)
	}
	return moved
}

// recordStyle pushes a style-only undo step when span undo is enabled.
func (e *Engine) recordStyle(changes []history.SpanChange) {
	if !e.undoStyles || len(changes) == 0 {
		return
	}
	state := e.cur.State()
	e.log.Record(history.Record{
		Kind:   history.KindStyle,
		Spans:  changes,
		Before: state,
		After:  state,
	})
}

// checkRange validates r as a span range.
func (e *Engine) checkRange(r Range) error {
	if r.End.Before(r.Start) {
		return fmt.Errorf("span %s: %w", r, ErrInvalidRange)
	}
	if _, err := e.buf.Validate(r.Start); err != nil {
		return fmt.Errorf("span start: %w", err)
	}
	if _, err := e.buf.Validate(r.End); err != nil {
		return fmt.Errorf("span end: %w", err)
	}
	return nil
}

// ============================================================================
// Span Operations
// ============================================================================

// AddSpan tags the text covered by r and returns the new span's ID.
func (e *Engine) AddSpan(r Range, tag Tag) (SpanID, error) {
	if err := e.checkRange(r); err != nil {
		return 0, err
	}
	id, err := e.spans.Add(r.Start.Offset, r.End.Offset, tag)
	if err != nil {
		return 0, err
	}
	s, _ := e.spans.Get(id)
	e.recordStyle([]history.SpanChange{{ID: id, After: s, HasAfter: true}})
	e.appendReplay(ReplayEntry{Op: OpAddSpan, Span: s})
	return id, nil
}

// RemoveSpan deletes a span. It reports false for unknown IDs.
func (e *Engine) RemoveSpan(id SpanID) bool {
	s, ok := e.spans.Remove(id)
	if !ok {
		return false
	}
	e.recordStyle([]history.SpanChange{{ID: id, Before: s, HadBefore: true}})
	e.appendReplay(ReplayEntry{Op: OpRemoveSpan, Span: s})
	return true
}

// SpanSpec describes a span to create.
type SpanSpec struct {
	Range Range
	Tag   Tag
}

// SetSpans replaces every span with specs and returns the new IDs in the
// same order. Either all specs are applied or none.
func (e *Engine) SetSpans(specs []SpanSpec) ([]SpanID, error) {
	for i, sp := range specs {
		if err := e.checkRange(sp.Range); err != nil {
			return nil, fmt.Errorf("span %d: %w", i, err)
		}
	}

	var changes []history.SpanChange
	for _, s := range e.spans.Spans() {
		e.spans.Remove(s.ID)
		changes = append(changes, history.SpanChange{ID: s.ID, Before: s, HadBefore: true})
		e.appendReplay(ReplayEntry{Op: OpRemoveSpan, Span: s})
	}
	ids := make([]SpanID, len(specs))
	for i, sp := range specs {
		id, _ := e.spans.Add(sp.Range.Start.Offset, sp.Range.End.Offset, sp.Tag)
		s, _ := e.spans.Get(id)
		ids[i] = id
		changes = append(changes, history.SpanChange{ID: id, After: s, HasAfter: true})
		e.appendReplay(ReplayEntry{Op: OpAddSpan, Span: s})
	}
	e.recordStyle(changes)
	return ids, nil
}

// ClearSpans removes every span.
func (e *Engine) ClearSpans() {
	_, _ = e.SetSpans(nil)
}

// Span returns the current state of a span.
func (e *Engine) Span(id SpanID) (Span, bool) {
	return e.spans.Get(id)
}

// Spans returns every span ordered by start.
func (e *Engine) Spans() []Span {
	return e.spans.Spans()
}

// SpanCount returns the number of spans.
func (e *Engine) SpanCount() int {
	return e.spans.Len()
}

// StylesAt returns the tags of the spans containing p.
func (e *Engine) StylesAt(p Position) []Tag {
	return e.spans.StylesAt(p.Offset)
}

// SpansIn returns the spans overlapping r.
func (e *Engine) SpansIn(r Range) []Span {
	return e.spans.SpansIn(r.Start.Offset, r.End.Offset)
}

// StyleMatch returns the range of the first span tagged tag that contains p.
func (e *Engine) StyleMatch(p Position, tag Tag) (Range, bool) {
	s, ok := e.spans.Match(p.Offset, tag)
	if !ok {
		return Range{}, false
	}
	r, err := e.spanRange(s)
	if err != nil {
		return Range{}, false
	}
	return r, true
}

// SpanRange converts a span's byte range to positions.
func (e *Engine) SpanRange(id SpanID) (Range, error) {
	s, ok := e.spans.Get(id)
	if !ok {
		return Range{}, fmt.Errorf("span %d: %w", id, ErrInvalidSpan)
	}
	return e.spanRange(s)
}

func (e *Engine) spanRange(s style.Span) (Range, error) {
	start, err := e.buf.PositionAtOffset(s.Start)
	if err != nil {
		return Range{}, err
	}
	end, err := e.buf.PositionAtOffset(s.End)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: start, End: end}, nil
}
