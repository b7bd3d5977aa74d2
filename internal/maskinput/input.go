// Package maskinput connects a mask.Field to an engine.Engine. Accepted
// keystrokes become recorded buffer edits, so masked fields get the same
// cursor, style and undo behavior as plain ones.
package maskinput

import (
	"errors"
	"unicode/utf8"

	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/logging"
	"github.com/dshills/textcore/internal/mask"
)

// TagInvalid marks the section that failed Validate.
const TagInvalid engine.Tag = -1

// Option configures an Input.
type Option func(*Input)

// WithLogger sets the logger. Rejected keystrokes and commit failures are
// logged at Debug level.
func WithLogger(l *logging.Logger) Option {
	return func(in *Input) {
		in.logger = l
	}
}

// WithEngineOptions passes options to the underlying engine. The engine
// is always single-line and starts with the field's display text.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(in *Input) {
		in.engOpts = append(in.engOpts, opts...)
	}
}

// Input is a masked field bound to an editing engine.
type Input struct {
	field   *mask.Field
	eng     *engine.Engine
	logger  *logging.Logger
	engOpts []engine.Option

	invalid     bool
	invalidSpan engine.SpanID
	hasSpan     bool
}

// New binds f to a new engine and puts the caret on the first editable
// cell.
func New(f *mask.Field, opts ...Option) *Input {
	in := &Input{field: f}
	for _, opt := range opts {
		opt(in)
	}
	if in.logger == nil {
		in.logger = logging.Nop()
	}
	in.logger = in.logger.WithComponent("maskinput")

	engOpts := append([]engine.Option{engine.WithLogger(in.logger)}, in.engOpts...)
	engOpts = append(engOpts, engine.WithSingleLine(), engine.WithText(f.Display()))
	in.eng = engine.New(engOpts...)
	in.moveCaret(f.Home())
	return in
}

// Field returns the mask.
func (in *Input) Field() *mask.Field { return in.field }

// Engine returns the engine holding the display text.
func (in *Input) Engine() *engine.Engine { return in.eng }

// Text returns the display text.
func (in *Input) Text() string { return in.eng.Text() }

// Value returns the last committed value.
func (in *Input) Value() mask.Value { return in.field.Value() }

// Caret returns the caret position in display runes.
func (in *Input) Caret() int {
	text := in.eng.Text()
	return utf8.RuneCountInString(text[:in.eng.Caret().Offset])
}

func byteOffset(s string, runes int) int {
	for i := range s {
		if runes == 0 {
			return i
		}
		runes--
	}
	return len(s)
}

func (in *Input) moveCaret(pos int) {
	if err := in.eng.MoveToOffset(byteOffset(in.eng.Text(), pos)); err != nil {
		in.logger.Debug("caret not placed: %v", err)
	}
}

// selection returns the selected rune range, if any.
func (in *Input) selection() (start, end int, ok bool) {
	if !in.eng.HasSelection() {
		return 0, 0, false
	}
	r := in.eng.SelectionRange()
	text := in.eng.Text()
	start = utf8.RuneCountInString(text[:r.Start.Offset])
	end = start + utf8.RuneCountInString(text[r.Start.Offset:r.End.Offset])
	return start, end, true
}

// apply runs a field operation at the caret and mirrors the resulting
// display change into the engine. A failed operation leaves both as they
// were.
func (in *Input) apply(op string, fn func(pos int) (mask.Result, error)) bool {
	before := in.field.Display()
	res, err := fn(in.Caret())
	if err != nil {
		if rerr := in.field.SetDisplay(before); rerr != nil {
			in.logger.Error("restore field after %s: %v", op, rerr)
		}
		if errors.Is(err, mask.ErrRejectedKeystroke) {
			in.logger.Debug("%s rejected: %v", op, err)
		} else {
			in.logger.Warn("%s failed: %v", op, err)
		}
		return false
	}
	if err := in.sync(before); err != nil {
		in.logger.Warn("%s not applied: %v", op, err)
		return false
	}
	in.moveCaret(res.Caret)
	return true
}

// sync replaces the part of the engine text that differs from the field's
// display. before is the display the engine currently holds.
func (in *Input) sync(before string) error {
	after := in.field.Display()
	if after == before {
		return nil
	}
	start, oldEnd, newEnd := diff(before, after)
	from, err := in.eng.PositionAtOffset(start)
	if err != nil {
		return in.restore(before, err)
	}
	to, err := in.eng.PositionAtOffset(oldEnd)
	if err != nil {
		return in.restore(before, err)
	}
	if _, err := in.eng.Replace(engine.Range{Start: from, End: to}, after[start:newEnd]); err != nil {
		return in.restore(before, err)
	}
	return nil
}

func (in *Input) restore(before string, cause error) error {
	if err := in.field.SetDisplay(before); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

// diff returns the byte range that differs between a and b, trimmed to
// whole runes: a[start:oldEnd] becomes b[start:newEnd].
func diff(a, b string) (start, oldEnd, newEnd int) {
	for start < len(a) && start < len(b) {
		ra, na := utf8.DecodeRuneInString(a[start:])
		rb, _ := utf8.DecodeRuneInString(b[start:])
		if ra != rb {
			break
		}
		start += na
	}
	oldEnd, newEnd = len(a), len(b)
	for oldEnd > start && newEnd > start {
		ra, na := utf8.DecodeLastRuneInString(a[:oldEnd])
		rb, nb := utf8.DecodeLastRuneInString(b[:newEnd])
		if ra != rb {
			break
		}
		oldEnd -= na
		newEnd -= nb
	}
	return start, oldEnd, newEnd
}

// ============================================================================
// Keystrokes
// ============================================================================

// Type applies one keystroke. A selection is cleared first. It returns
// false if the mask rejected the keystroke.
func (in *Input) Type(r rune) bool {
	return in.apply("type", func(pos int) (mask.Result, error) {
		if start, end, ok := in.selection(); ok {
			if _, err := in.field.DeleteRange(start, end); err != nil {
				return mask.Result{}, err
			}
			pos = start
		}
		return in.field.Type(pos, r)
	})
}

// TypeString types each rune of s and returns how many were accepted.
func (in *Input) TypeString(s string) int {
	n := 0
	for _, r := range s {
		if in.Type(r) {
			n++
		}
	}
	return n
}

// Backspace erases before the caret, or clears the selection.
func (in *Input) Backspace() bool {
	return in.apply("backspace", func(pos int) (mask.Result, error) {
		if start, end, ok := in.selection(); ok {
			return in.field.DeleteRange(start, end)
		}
		return in.field.Erase(pos)
	})
}

// Delete erases at the caret, or clears the selection.
func (in *Input) Delete() bool {
	return in.apply("delete", func(pos int) (mask.Result, error) {
		if start, end, ok := in.selection(); ok {
			return in.field.DeleteRange(start, end)
		}
		return in.field.Delete(pos)
	})
}

// Clear removes all input.
func (in *Input) Clear() bool {
	return in.apply("clear", func(int) (mask.Result, error) {
		in.field.Clear()
		return mask.Result{Caret: in.field.Home()}, nil
	})
}

// ============================================================================
// Movement
// ============================================================================

// MoveLeft moves the caret one cell left.
func (in *Input) MoveLeft(extend bool) { in.eng.MoveLeft(extend) }

// MoveRight moves the caret one cell right.
func (in *Input) MoveRight(extend bool) { in.eng.MoveRight(extend) }

// MoveHome moves the caret to the first editable cell.
func (in *Input) MoveHome() { in.moveCaret(in.field.Home()) }

// MoveEnd moves the caret to the end of the field.
func (in *Input) MoveEnd() { in.eng.MoveDocEnd(false) }

// SelectAll selects the whole field.
func (in *Input) SelectAll() { in.eng.SelectAll() }

// ============================================================================
// History
// ============================================================================

// Undo reverts the last change and reloads the field from the restored
// text.
func (in *Input) Undo() bool {
	return in.history("undo", in.eng.Undo)
}

// Redo reapplies the last undone change.
func (in *Input) Redo() bool {
	return in.history("redo", in.eng.Redo)
}

func (in *Input) history(op string, fn func() (bool, error)) bool {
	ok, err := fn()
	if err != nil {
		in.logger.Warn("%s: %v", op, err)
	}
	if !ok {
		return false
	}
	if err := in.field.SetDisplay(in.eng.Text()); err != nil {
		in.logger.Error("%s left text the mask cannot read: %v", op, err)
	}
	return true
}

// CanUndo reports whether Undo has anything to revert.
func (in *Input) CanUndo() bool { return in.eng.CanUndo() }

// CanRedo reports whether Redo has anything to reapply.
func (in *Input) CanRedo() bool { return in.eng.CanRedo() }

// ============================================================================
// Values
// ============================================================================

// Commit parses the input into a value. On failure the field reverts to
// the last committed value and the *mask.FormatError is returned.
func (in *Input) Commit() (mask.Value, error) {
	before := in.field.Display()
	v, err := in.field.Commit()
	if err != nil {
		in.logger.Debug("commit failed: %v", err)
	}
	if serr := in.sync(before); serr != nil {
		in.logger.Warn("revert not applied: %v", serr)
	}
	in.setInvalid(false, 0, 0)
	return v, err
}

// SetValue loads v. History is cleared and the caret moves to the first
// editable cell.
func (in *Input) SetValue(v mask.Value) error {
	if err := in.field.SetValue(v); err != nil {
		return err
	}
	if err := in.eng.SetText(in.field.Display()); err != nil {
		return err
	}
	in.invalid, in.hasSpan = false, false
	in.moveCaret(in.field.Home())
	return nil
}

// Modified reports whether the input differs from the committed value.
func (in *Input) Modified() bool { return in.field.Modified() }

// Validate checks the input without committing. When it cannot be parsed
// the field is flagged invalid and the offending section is covered by a
// TagInvalid span.
func (in *Input) Validate() error {
	_, err := in.field.Check()
	var fe *mask.FormatError
	if errors.As(err, &fe) {
		info := in.field.Sections()[fe.Section]
		in.setInvalid(true, info.Start, info.End)
		return err
	}
	in.setInvalid(err != nil, 0, 0)
	return err
}

// Invalid reports the invalid flag.
func (in *Input) Invalid() bool { return in.invalid }

// SetInvalid sets the invalid flag without marking a section.
func (in *Input) SetInvalid(v bool) { in.setInvalid(v, 0, 0) }

func (in *Input) setInvalid(v bool, start, end int) {
	in.invalid = v
	if in.hasSpan {
		in.eng.RemoveSpan(in.invalidSpan)
		in.hasSpan = false
	}
	if !v || start == end {
		return
	}
	text := in.eng.Text()
	from, err := in.eng.PositionAtOffset(byteOffset(text, start))
	if err != nil {
		return
	}
	to, err := in.eng.PositionAtOffset(byteOffset(text, end))
	if err != nil {
		return
	}
	id, err := in.eng.AddSpan(engine.Range{Start: from, End: to}, TagInvalid)
	if err != nil {
		in.logger.Debug("mark invalid section: %v", err)
		return
	}
	in.invalidSpan, in.hasSpan = id, true
}
