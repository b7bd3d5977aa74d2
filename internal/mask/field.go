package mask

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dshills/textcore/internal/locale"
)

// DefaultPlaceholder is shown in blank cells.
const DefaultPlaceholder = '_'

type fieldKind uint8

const (
	fieldPattern fieldKind = iota
	fieldInteger
	fieldDecimal
	fieldDate
)

// Outcome is how a keystroke was absorbed.
type Outcome uint8

const (
	// Accepted means the keystroke changed a section.
	Accepted Outcome = iota
	// Skipped means the caret moved over a matching literal.
	Skipped
	// Jumped means a partially entered section was completed and the
	// caret moved past the separator that was typed.
	Jumped
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Skipped:
		return "skipped"
	case Jumped:
		return "jumped"
	default:
		return fmt.Sprintf("Outcome(%d)", o)
	}
}

// Result describes an applied keystroke.
type Result struct {
	Caret   int // new caret position in display runes
	Outcome Outcome
}

// SectionInfo describes one section of a field.
type SectionInfo struct {
	Index    int
	Kind     Kind
	Name     string
	Start    int // display rune offsets
	End      int
	Editable bool
}

// Field is a compiled mask with its current input and last committed
// value. A Field is not safe for concurrent use.
type Field struct {
	kind        fieldKind
	tab         locale.Table
	placeholder rune

	secs   []section
	starts []int
	width  int

	// integer range
	ranged   bool
	min, max int64
	// decimal fraction digits
	scale int

	value Value
	saved []section

	tail nameTail
}

// nameTail holds the letters of a month name that auto-completed before
// the user finished typing it. Retyping them at caret position at is
// absorbed.
type nameTail struct {
	at   int
	sec  int
	rest []rune
}

func newField(kind fieldKind, tab locale.Table) *Field {
	return &Field{kind: kind, tab: tab, placeholder: DefaultPlaceholder}
}

func (f *Field) build(secs ...section) {
	f.secs = secs
	f.starts = make([]int, len(secs))
	w := 0
	for i, s := range secs {
		f.starts[i] = w
		w += s.width()
	}
	f.width = w
	f.saved = cloneSections(secs)
}

func cloneSections(secs []section) []section {
	out := make([]section, len(secs))
	for i, s := range secs {
		out[i] = s.clone()
	}
	return out
}

// Width returns the display width in runes.
func (f *Field) Width() int { return f.width }

// Locale returns the table the field was built with.
func (f *Field) Locale() locale.Table { return f.tab }

// ValueKind returns the kind of non-null value the field commits.
func (f *Field) ValueKind() ValueKind {
	switch f.kind {
	case fieldInteger:
		return ValueInt
	case fieldDecimal:
		return ValueDecimal
	case fieldDate:
		return ValueTime
	default:
		return ValueText
	}
}

// Placeholder returns the rune shown in blank cells.
func (f *Field) Placeholder() rune { return f.placeholder }

// SetPlaceholder changes the rune shown in blank cells.
func (f *Field) SetPlaceholder(r rune) {
	if r != 0 {
		f.placeholder = r
	}
}

// Sections describes the field's sections in display order.
func (f *Field) Sections() []SectionInfo {
	out := make([]SectionInfo, len(f.secs))
	for i, s := range f.secs {
		out[i] = SectionInfo{
			Index:    i,
			Kind:     s.kind(),
			Name:     s.name(),
			Start:    f.starts[i],
			End:      f.starts[i] + s.width(),
			Editable: s.kind() != KindLiteral,
		}
	}
	return out
}

// Home returns the first caret position inside an editable section.
func (f *Field) Home() int {
	return f.advance(-1)
}

// SectionAt returns the index of the section containing pos, or -1 at the
// end of the field.
func (f *Field) SectionAt(pos int) int {
	for i, s := range f.secs {
		if pos >= f.starts[i] && pos < f.starts[i]+s.width() {
			return i
		}
	}
	return -1
}

func (f *Field) end(i int) int {
	return f.starts[i] + f.secs[i].width()
}

// Display renders the field.
func (f *Field) Display() string {
	return string(f.render(f.secs))
}

func (f *Field) render(secs []section) []rune {
	out := make([]rune, f.width)
	for i, s := range secs {
		s.render(out[f.starts[i]:f.starts[i]+s.width()], f.placeholder)
	}
	return out
}

// SetDisplay replaces the input with the state that renders as text. It
// is the inverse of Display and leaves the field unchanged on error.
func (f *Field) SetDisplay(text string) error {
	src := []rune(text)
	if len(src) != f.width {
		return fmt.Errorf("mask: display %q has %d runes, want %d", text, len(src), f.width)
	}
	next := cloneSections(f.secs)
	for i, s := range next {
		if err := s.parse(src[f.starts[i]:f.starts[i]+s.width()], f.placeholder); err != nil {
			return fmt.Errorf("mask: section %d: %w", i, err)
		}
	}
	f.secs = next
	return nil
}

// IsEmpty reports whether no editable section holds input.
func (f *Field) IsEmpty() bool {
	return sectionsEmpty(f.secs)
}

func sectionsEmpty(secs []section) bool {
	for _, s := range secs {
		if !s.empty() {
			return false
		}
	}
	return true
}

// Clear removes all input.
func (f *Field) Clear() {
	for i, s := range f.secs {
		s.clearRange(0, f.secs[i].width())
	}
}

// ============================================================================
// Keystrokes
// ============================================================================

func (f *Field) reject(pos int, r rune) error {
	return fmt.Errorf("%q at %d: %w", r, pos, ErrRejectedKeystroke)
}

// integerEndingAt returns the integer section ending at pos, or -1.
func (f *Field) integerEndingAt(pos int) int {
	for i, s := range f.secs {
		if s.kind() == KindInteger && f.end(i) == pos {
			return i
		}
	}
	return -1
}

func (f *Field) integerSection() (*integerPart, int) {
	for i, s := range f.secs {
		if p, ok := s.(*integerPart); ok {
			return p, i
		}
	}
	return nil, -1
}

// advance returns the caret position after section i and any literals
// that follow it.
func (f *Field) advance(i int) int {
	j := i + 1
	for j < len(f.secs) && f.secs[j].kind() == KindLiteral {
		j++
	}
	if j == len(f.secs) {
		return f.width
	}
	return f.starts[j]
}

func (f *Field) literalRune(i, pos int) (rune, bool) {
	if i < 0 || i >= len(f.secs) {
		return 0, false
	}
	lit, ok := f.secs[i].(*literal)
	if !ok {
		return 0, false
	}
	return lit.runes[pos-f.starts[i]], true
}

// Type applies r at caret position pos.
func (f *Field) Type(pos int, r rune) (Result, error) {
	if pos < 0 || pos > f.width {
		return Result{}, f.reject(pos, r)
	}
	if t := f.tail; t.at == pos && len(t.rest) > 0 && f.secs[t.sec].complete() &&
		strings.EqualFold(string(r), string(t.rest[0])) {
		f.tail.rest = t.rest[1:]
		return Result{Caret: pos, Outcome: Skipped}, nil
	}
	f.tail = nameTail{}
	i := f.SectionAt(pos)

	// A matching literal is stepped over.
	if lr, ok := f.literalRune(i, pos); ok && lr == r {
		return Result{Caret: pos + 1, Outcome: Skipped}, nil
	}
	// Retyping the separator the caret was advanced past is absorbed.
	if pos > 0 {
		if j := f.SectionAt(pos - 1); j >= 0 && f.end(j) == pos {
			if lr, ok := f.literalRune(j, pos-1); ok && lr == r && (i < 0 || f.secs[i].empty()) {
				return Result{Caret: pos, Outcome: Skipped}, nil
			}
		}
	}

	// Calculator entry keeps going at the end of an integer section, and
	// sign keys reach the integer part from anywhere.
	if j := f.integerEndingAt(pos); j >= 0 {
		i = j
	}
	if p, j := f.integerSection(); p != nil && j != i && p.signed && (p.isMinus(r) || r == '+') {
		if _, _, ok := p.put(0, r); ok {
			return Result{Caret: pos, Outcome: Accepted}, nil
		}
	}
	if i < 0 || f.secs[i].kind() == KindLiteral {
		return Result{}, f.reject(pos, r)
	}

	s := f.secs[i]
	off := pos - f.starts[i]
	if off >= s.width() {
		off = s.width() - 1
	}
	if next, full, ok := s.put(off, r); ok {
		caret := f.starts[i] + next
		if full {
			caret = f.advance(i)
			if m, ok := s.(*monthName); ok {
				f.tail = nameTail{at: caret, sec: i, rest: m.remainder(off + 1)}
			}
		}
		return Result{Caret: caret, Outcome: Accepted}, nil
	}

	// Separator jump: the literal after a partly entered section.
	if lr, ok := f.literalRune(i+1, f.end(i)); ok && lr == r && !s.empty() {
		c := s.clone()
		if c.pad() {
			f.secs[i] = c
			return Result{Caret: f.end(i + 1), Outcome: Jumped}, nil
		}
	}
	return Result{}, f.reject(pos, r)
}

// Erase removes the input before pos, as backspace does.
func (f *Field) Erase(pos int) (Result, error) {
	f.tail = nameTail{}
	if pos <= 0 || pos > f.width {
		return Result{}, f.reject(pos, '\b')
	}
	if j := f.integerEndingAt(pos); j >= 0 {
		if f.secs[j].erase(0) {
			return Result{Caret: pos, Outcome: Accepted}, nil
		}
		return Result{Caret: f.starts[j], Outcome: Skipped}, nil
	}
	i := f.SectionAt(pos - 1)
	s := f.secs[i]
	switch s.kind() {
	case KindLiteral:
		return Result{Caret: pos - 1, Outcome: Skipped}, nil
	case KindInteger:
		if s.erase(0) {
			return Result{Caret: f.end(i), Outcome: Accepted}, nil
		}
		return Result{Caret: f.starts[i], Outcome: Skipped}, nil
	}
	s.erase(pos - 1 - f.starts[i])
	return Result{Caret: pos - 1, Outcome: Accepted}, nil
}

// Delete removes the input at pos, as forward delete does. The caret stays.
func (f *Field) Delete(pos int) (Result, error) {
	f.tail = nameTail{}
	if pos < 0 || pos >= f.width {
		return Result{}, f.reject(pos, 0x7f)
	}
	i := f.SectionAt(pos)
	s := f.secs[i]
	if s.kind() == KindLiteral {
		return Result{}, f.reject(pos, 0x7f)
	}
	s.erase(pos - f.starts[i])
	return Result{Caret: pos, Outcome: Accepted}, nil
}

// DeleteRange clears the input covered by [start, end). Integer and month
// sections touched by the range are cleared whole.
func (f *Field) DeleteRange(start, end int) (Result, error) {
	f.tail = nameTail{}
	if start < 0 || end > f.width || start > end {
		return Result{}, fmt.Errorf("range [%d, %d): %w", start, end, ErrRejectedKeystroke)
	}
	for i, s := range f.secs {
		a, b := max(start, f.starts[i]), min(end, f.end(i))
		if a < b {
			s.clearRange(a-f.starts[i], b-f.starts[i])
		}
	}
	return Result{Caret: start, Outcome: Accepted}, nil
}

// ============================================================================
// Values
// ============================================================================

// Value returns the last committed value.
func (f *Field) Value() Value {
	return f.value
}

// Check parses the current input without committing it.
func (f *Field) Check() (Value, error) {
	return f.parseValue(f.secs)
}

// Commit parses the current input and makes it the committed value. On
// failure the input reverts to the last committed state and the
// *FormatError is returned.
func (f *Field) Commit() (Value, error) {
	v, err := f.parseValue(f.secs)
	if err != nil {
		f.Revert()
		return f.value, err
	}
	f.value = v
	f.saved = cloneSections(f.secs)
	return v, nil
}

// Revert restores the input of the last commit.
func (f *Field) Revert() {
	f.secs = cloneSections(f.saved)
}

// Modified reports whether the input differs from the last commit.
func (f *Field) Modified() bool {
	return string(f.render(f.secs)) != string(f.render(f.saved))
}

// SetValue replaces the input with v and commits it.
func (f *Field) SetValue(v Value) error {
	next := cloneSections(f.secs)
	for i, s := range next {
		s.clearRange(0, next[i].width())
	}
	if v.Kind != ValueNull {
		var err error
		switch f.kind {
		case fieldPattern:
			err = f.fillText(next, v)
		case fieldInteger:
			err = f.fillInteger(next, v)
		case fieldDecimal:
			err = f.fillDecimal(next, v)
		case fieldDate:
			err = f.fillDate(next, v)
		}
		if err != nil {
			return err
		}
	}
	committed, err := f.parseValue(next)
	if err != nil {
		return err
	}
	f.secs = next
	f.saved = cloneSections(next)
	f.value = committed
	return nil
}

func (f *Field) formatError(secs []section, i int, reason string) *FormatError {
	out := make([]rune, secs[i].width())
	secs[i].render(out, f.placeholder)
	return &FormatError{Section: i, Name: secs[i].name(), Value: string(out), Reason: reason}
}

func (f *Field) parseValue(secs []section) (Value, error) {
	if sectionsEmpty(secs) {
		return Null, nil
	}
	switch f.kind {
	case fieldInteger:
		return f.parseInteger(secs)
	case fieldDecimal:
		return f.parseDecimal(secs)
	case fieldDate:
		return f.parseDate(secs)
	default:
		return f.parseText(secs)
	}
}

func (f *Field) parseText(secs []section) (Value, error) {
	var text []rune
	for i, s := range secs {
		c, ok := s.(*cells)
		if !ok {
			continue
		}
		if !c.complete() {
			return Null, f.formatError(secs, i, "incomplete")
		}
		text = append(text, []rune(c.text())...)
	}
	return TextValue(string(text)), nil
}

func (f *Field) fillText(secs []section, v Value) error {
	if v.Kind != ValueText {
		return fmt.Errorf("%s value: %w", v.Kind, ErrValueKind)
	}
	src := []rune(v.Text)
	for i, s := range secs {
		c, ok := s.(*cells)
		if !ok {
			continue
		}
		for j := range c.runes {
			if len(src) == 0 {
				return nil
			}
			if !c.classes[j].accepts(src[0]) {
				return f.formatError(secs, i, fmt.Sprintf("%q does not fit", src[0]))
			}
			c.runes[j], src = src[0], src[1:]
		}
	}
	if len(src) > 0 {
		return &FormatError{Section: len(secs) - 1, Name: secs[len(secs)-1].name(), Value: v.Text, Reason: "too long"}
	}
	return nil
}

func (f *Field) parseInteger(secs []section) (Value, error) {
	p := secs[0].(*integerPart)
	if !p.complete() {
		return Null, f.formatError(secs, 0, "incomplete")
	}
	n := p.value()
	if p.neg {
		n = -n
	}
	if f.ranged && (n < f.min || n > f.max) {
		return Null, f.formatError(secs, 0, fmt.Sprintf("out of range [%d, %d]", f.min, f.max))
	}
	return IntValue(n), nil
}

func (f *Field) fillInteger(secs []section, v Value) error {
	if v.Kind != ValueInt {
		return fmt.Errorf("%s value: %w", v.Kind, ErrValueKind)
	}
	u, neg := abs(v.Int)
	if err := secs[0].(*integerPart).set(u, neg); err != nil {
		return &FormatError{Section: 0, Name: "integer", Value: v.String(), Reason: err.Error()}
	}
	return nil
}

func (f *Field) parseDecimal(secs []section) (Value, error) {
	p := secs[0].(*integerPart)
	frac := secs[2].(*fractionPart)
	if !p.complete() && frac.empty() {
		return Null, f.formatError(secs, 0, "incomplete")
	}
	d := decimal.New(p.value(), 0).Add(decimal.New(frac.value(), -int32(f.scale)))
	if p.neg {
		d = d.Neg()
	}
	return DecimalValue(d), nil
}

var maxMagnitude = decimal.New(1, MaxDigits)

func (f *Field) fillDecimal(secs []section, v Value) error {
	var d decimal.Decimal
	switch v.Kind {
	case ValueDecimal:
		d = v.Dec
	case ValueInt:
		d = decimal.NewFromInt(v.Int)
	default:
		return fmt.Errorf("%s value: %w", v.Kind, ErrValueKind)
	}
	scale := int32(f.scale)
	if !d.Truncate(scale).Equal(d) {
		return &FormatError{Section: 2, Name: "fraction", Value: FormatDecimal(d), Reason: "does not fit the fraction"}
	}
	mag := d.Abs()
	if mag.GreaterThanOrEqual(maxMagnitude) {
		return &FormatError{Section: 0, Name: "integer", Value: FormatDecimal(d), Reason: "too many digits"}
	}
	whole := mag.Truncate(0)
	neg := d.Sign() < 0
	if err := secs[0].(*integerPart).set(uint64(whole.IntPart()), neg); err != nil {
		return &FormatError{Section: 0, Name: "integer", Value: FormatDecimal(d), Reason: err.Error()}
	}
	secs[2].(*fractionPart).set(uint64(mag.Sub(whole).Shift(scale).IntPart()))
	if neg && whole.IsZero() {
		secs[0].(*integerPart).neg = true
	}
	return nil
}

func abs(n int64) (uint64, bool) {
	if n < 0 {
		return uint64(-(n + 1)) + 1, true
	}
	return uint64(n), false
}
