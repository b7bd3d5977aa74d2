package history

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/dshills/textcore/internal/engine/cursor"
	"github.com/dshills/textcore/internal/engine/style"
)

// textTarget replays records against a plain string.
type textTarget struct {
	text   string
	spans  map[style.SpanID]style.Span
	cursor cursor.State
	fail   bool
}

func newTextTarget(s string) *textTarget {
	return &textTarget{text: s, spans: make(map[style.SpanID]style.Span)}
}

func (t *textTarget) ApplyEdit(start, end int, text string) error {
	if t.fail {
		return errors.New("refused")
	}
	t.text = t.text[:start] + text + t.text[end:]
	return nil
}

func (t *textTarget) SetSpan(id style.SpanID, s style.Span, present bool) error {
	if present {
		t.spans[id] = s
	} else {
		delete(t.spans, id)
	}
	return nil
}

func (t *textTarget) SetCursor(s cursor.State) {
	t.cursor = s
}

// typeString records one typing record per byte of s starting at off.
func typeString(l *Log, t *textTarget, off int, s string) {
	for i := 0; i < len(s); i++ {
		e := Edit{Start: off + i, NewText: s[i : i+1]}
		_ = t.ApplyEdit(e.Start, e.OldEnd(), e.NewText)
		l.Record(NewRecord(KindTyping, e, cursor.State{}, cursor.State{}))
	}
}

func TestLogTypingCoalesces(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		input  string
		steps  int
	}{
		{"single word", DefaultPolicy, "abc", 1},
		{"two words whitespace", DefaultPolicy, "hello world", 2},
		{"no boundary", Policy{Boundary: BoundaryNone}, "hello world", 1},
		{"word boundary", Policy{Boundary: BoundaryWord}, "hello world", 3},
		{"max run", Policy{MaxRun: 4}, "abcdefghij", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLog(0, WithPolicy(tt.policy))
			target := newTextTarget("")
			typeString(l, target, 0, tt.input)

			if l.UndoCount() != tt.steps {
				t.Fatalf("UndoCount = %d, want %d", l.UndoCount(), tt.steps)
			}
			for l.CanUndo() {
				if _, _, err := l.Undo(target); err != nil {
					t.Fatalf("Undo: %v", err)
				}
			}
			if target.text != "" {
				t.Errorf("text after full undo = %q, want empty", target.text)
			}
		})
	}
}

func TestLogUndoOrderWithinWords(t *testing.T) {
	l := NewLog(0)
	target := newTextTarget("")
	typeString(l, target, 0, "hello world")

	if _, ok, _ := l.Undo(target); !ok {
		t.Fatal("Undo reported nothing to undo")
	}
	if target.text != "hello " {
		t.Errorf("text = %q, want %q", target.text, "hello ")
	}
	if _, _, err := l.Redo(target); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if target.text != "hello world" {
		t.Errorf("text = %q, want %q", target.text, "hello world")
	}
}

func TestLogMoveBreaksRun(t *testing.T) {
	l := NewLog(0)
	target := newTextTarget("")
	typeString(l, target, 0, "abc")
	// Typing somewhere other than the run edge starts a new step.
	typeString(l, target, 0, "d")

	if l.UndoCount() != 2 {
		t.Fatalf("UndoCount = %d, want 2", l.UndoCount())
	}
	l.Undo(target)
	if target.text != "abc" {
		t.Errorf("text = %q, want %q", target.text, "abc")
	}
}

func TestLogBreak(t *testing.T) {
	l := NewLog(0)
	target := newTextTarget("")
	typeString(l, target, 0, "ab")
	l.Break()
	typeString(l, target, 2, "cd")

	if l.UndoCount() != 2 {
		t.Errorf("UndoCount = %d, want 2", l.UndoCount())
	}
}

func TestLogBackspaceCoalesces(t *testing.T) {
	l := NewLog(0)
	target := newTextTarget("hello")
	for end := 5; end > 0; end-- {
		e := Edit{Start: end - 1, OldText: target.text[end-1 : end]}
		_ = target.ApplyEdit(e.Start, e.OldEnd(), "")
		l.Record(NewRecord(KindBackspace, e, cursor.State{}, cursor.State{}))
	}

	if l.UndoCount() != 1 {
		t.Fatalf("UndoCount = %d, want 1", l.UndoCount())
	}
	top, _ := l.PeekUndo()
	if got := top.Edits[0]; got.Start != 0 || got.OldText != "hello" {
		t.Errorf("merged edit = %s, want @0 \"hello\" -> \"\"", got)
	}
	l.Undo(target)
	if target.text != "hello" {
		t.Errorf("text = %q, want %q", target.text, "hello")
	}
}

func TestLogTypingAfterBackspaceDoesNotMerge(t *testing.T) {
	l := NewLog(0)
	target := newTextTarget("ab")
	e := Edit{Start: 1, OldText: "b"}
	_ = target.ApplyEdit(1, 2, "")
	l.Record(NewRecord(KindBackspace, e, cursor.State{}, cursor.State{}))
	typeString(l, target, 1, "c")

	if l.UndoCount() != 2 {
		t.Errorf("UndoCount = %d, want 2", l.UndoCount())
	}
}

func TestLogWithoutCoalescing(t *testing.T) {
	l := NewLog(0, WithoutCoalescing())
	target := newTextTarget("")
	typeString(l, target, 0, "abc")

	if l.UndoCount() != 3 {
		t.Errorf("UndoCount = %d, want 3", l.UndoCount())
	}
}

func TestLogRecordClearsRedo(t *testing.T) {
	l := NewLog(0)
	target := newTextTarget("")
	typeString(l, target, 0, "abc")
	l.Undo(target)
	if !l.CanRedo() {
		t.Fatal("CanRedo = false after undo")
	}

	typeString(l, target, 0, "x")
	if l.CanRedo() {
		t.Error("CanRedo = true after a new record")
	}
}

func TestLogMaxDepth(t *testing.T) {
	l := NewLog(3, WithoutCoalescing())
	target := newTextTarget("")
	typeString(l, target, 0, "abcde")

	if l.UndoCount() != 3 {
		t.Fatalf("UndoCount = %d, want 3", l.UndoCount())
	}
	for l.CanUndo() {
		l.Undo(target)
	}
	if target.text != "ab" {
		t.Errorf("text = %q, want %q", target.text, "ab")
	}

	l = NewLog(Unlimited, WithoutCoalescing())
	typeString(l, newTextTarget(""), 0, string(make([]byte, DefaultMaxDepth+5)))
	if l.UndoCount() != DefaultMaxDepth+5 {
		t.Errorf("unlimited UndoCount = %d, want %d", l.UndoCount(), DefaultMaxDepth+5)
	}
}

func TestLogEmptyStacks(t *testing.T) {
	l := NewLog(0)
	target := newTextTarget("x")

	if _, ok, err := l.Undo(target); ok || err != nil {
		t.Errorf("Undo on empty log = %v, %v", ok, err)
	}
	if _, ok, err := l.Redo(target); ok || err != nil {
		t.Errorf("Redo on empty log = %v, %v", ok, err)
	}
	if l.Top() != uuid.Nil {
		t.Errorf("Top = %v, want nil UUID", l.Top())
	}
}

func TestLogUndoErrorKeepsRecord(t *testing.T) {
	l := NewLog(0)
	target := newTextTarget("")
	typeString(l, target, 0, "a")
	target.fail = true

	if _, _, err := l.Undo(target); err == nil {
		t.Fatal("Undo error = nil, want error")
	}
	if l.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", l.UndoCount())
	}
}

func TestLogCursorRestore(t *testing.T) {
	l := NewLog(0)
	target := newTextTarget("")
	before := cursor.State{Goal: 1}
	after := cursor.State{Goal: 2}
	l.Record(NewRecord(KindEdit, Edit{Start: 0, NewText: "x"}, before, after))
	target.text = "x"

	l.Undo(target)
	if target.cursor != before {
		t.Errorf("cursor after undo = %v, want %v", target.cursor, before)
	}
	l.Redo(target)
	if target.cursor != after {
		t.Errorf("cursor after redo = %v, want %v", target.cursor, after)
	}
}

func TestLogSpanChanges(t *testing.T) {
	l := NewLog(0)
	target := newTextTarget("abc")
	before := style.Span{ID: 1, Start: 0, End: 3, Tag: 7}
	after := style.Span{ID: 1, Start: 0, End: 1, Tag: 7}
	target.spans[1] = after

	r := NewRecord(KindEdit, Edit{Start: 1, OldText: "bc"}, cursor.State{}, cursor.State{})
	r.Spans = []SpanChange{
		{ID: 1, Before: before, HadBefore: true, After: after, HasAfter: true},
		{ID: 2, After: style.Span{ID: 2, Start: 0, End: 1}, HasAfter: true},
	}
	target.text = "a"
	target.spans[2] = style.Span{ID: 2, Start: 0, End: 1}
	l.Record(r)

	l.Undo(target)
	if target.text != "abc" {
		t.Errorf("text = %q, want %q", target.text, "abc")
	}
	if got := target.spans[1]; got != before {
		t.Errorf("span 1 = %v, want %v", got, before)
	}
	if _, ok := target.spans[2]; ok {
		t.Error("span 2 present after undo, want removed")
	}

	l.Redo(target)
	if got := target.spans[1]; got != after {
		t.Errorf("span 1 after redo = %v, want %v", got, after)
	}
	if _, ok := target.spans[2]; !ok {
		t.Error("span 2 missing after redo")
	}
}

func TestLogGroup(t *testing.T) {
	l := NewLog(0)
	target := newTextTarget("")

	l.BeginGroup()
	typeString(l, target, 0, "ab")
	l.Record(NewRecord(KindEdit, Edit{Start: 2, NewText: " cd"}, cursor.State{}, cursor.State{}))
	target.text += " cd"
	l.EndGroup()

	if l.UndoCount() != 1 {
		t.Fatalf("UndoCount = %d, want 1", l.UndoCount())
	}
	l.Undo(target)
	if target.text != "" {
		t.Errorf("text = %q, want empty", target.text)
	}
	l.Redo(target)
	if target.text != "ab cd" {
		t.Errorf("text = %q, want %q", target.text, "ab cd")
	}
}

func TestLogNestedGroup(t *testing.T) {
	l := NewLog(0)
	l.BeginGroup()
	l.Record(NewRecord(KindEdit, Edit{NewText: "a"}, cursor.State{}, cursor.State{}))
	l.BeginGroup()
	l.Record(NewRecord(KindEdit, Edit{Start: 1, NewText: "b"}, cursor.State{}, cursor.State{}))
	l.EndGroup()
	if l.CanUndo() {
		t.Fatal("inner EndGroup pushed a step")
	}
	l.EndGroup()
	if l.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", l.UndoCount())
	}
}

func TestLogEmptyGroup(t *testing.T) {
	l := NewLog(0)
	l.BeginGroup()
	l.EndGroup()
	if l.CanUndo() {
		t.Error("empty group recorded a step")
	}
}

func TestLogTransaction(t *testing.T) {
	l := NewLog(0)
	target := newTextTarget("ab")
	err := l.Transaction(target, func() error {
		target.text = "xab"
		l.Record(NewRecord(KindEdit, Edit{NewText: "x"}, cursor.State{}, cursor.State{}))
		return errors.New("abort")
	})
	if err == nil {
		t.Fatal("Transaction error = nil")
	}
	if l.CanUndo() || l.IsGrouping() {
		t.Error("cancelled transaction left state behind")
	}
	if target.text != "ab" {
		t.Errorf("text after rollback = %q, want %q", target.text, "ab")
	}

	err = l.Transaction(target, func() error {
		target.text = "abc"
		l.Record(NewRecord(KindEdit, Edit{Start: 2, NewText: "c"}, cursor.State{}, cursor.State{}))
		return nil
	})
	if err != nil || l.UndoCount() != 1 {
		t.Errorf("Transaction = %v, UndoCount = %d; want nil, 1", err, l.UndoCount())
	}
}

func TestLogMergeChangesTop(t *testing.T) {
	l := NewLog(0)
	target := newTextTarget("")
	typeString(l, target, 0, "a")
	saved := l.Top()
	typeString(l, target, 1, "b")

	if l.UndoCount() != 1 {
		t.Fatalf("UndoCount = %d, want 1", l.UndoCount())
	}
	if l.Top() == saved {
		t.Error("Top unchanged after a merged record")
	}
}

func TestParseBoundary(t *testing.T) {
	for _, b := range []Boundary{BoundaryNone, BoundaryWhitespace, BoundaryWord} {
		got, ok := ParseBoundary(b.String())
		if !ok || got != b {
			t.Errorf("ParseBoundary(%q) = %v, %v", b.String(), got, ok)
		}
	}
	if _, ok := ParseBoundary("sentence"); ok {
		t.Error("ParseBoundary accepted an unknown name")
	}
}
