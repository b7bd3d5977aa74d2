package style

import (
	"errors"
	"fmt"
)

// Tag is an opaque style or annotation chosen by the caller.
type Tag int

// SpanID identifies a span for the lifetime of an overlay.
type SpanID uint64

// Span is a tagged half-open byte range.
type Span struct {
	ID    SpanID
	Start int
	End   int
	Tag   Tag
}

// Len returns the byte length of the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains reports whether pos lies in [Start, End).
func (s Span) Contains(pos int) bool {
	return s.Start <= pos && pos < s.End
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("#%d[%d, %d):%d", s.ID, s.Start, s.End, s.Tag)
}

// ErrInvalidSpan is returned for spans with a negative start or an end
// before their start.
var ErrInvalidSpan = errors.New("invalid span")

// adjust maps a span through an edit replacing removed bytes at start with
// inserted bytes. It reports false when the span is deleted.
func adjust(s Span, start, removed, inserted int) (Span, bool) {
	end := start + removed
	if removed > 0 && s.Start >= start && s.End <= end && !s.IsEmpty() {
		return Span{}, false
	}

	through := func(p int) int {
		switch {
		case p <= start:
			return p
		case p <= end:
			return start
		default:
			return p - removed
		}
	}
	s.Start, s.End = through(s.Start), through(s.End)

	if s.Start >= start {
		s.Start += inserted
	}
	if s.End > start {
		s.End += inserted
	}
	if s.End < s.Start {
		s.End = s.Start
	}
	return s, true
}
