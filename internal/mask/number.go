package mask

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/textcore/internal/locale"
)

// MaxDigits is the largest number of digits a numeric field can hold.
const MaxDigits = 18

// ============================================================================
// Integer part
// ============================================================================

// integerPart is entered calculator style: digits are appended on the right
// whatever the caret offset, and the text is right aligned.
type integerPart struct {
	maxDigits int
	signed    bool
	group     []rune // nil when not grouping
	minus     []rune
	w         int

	bounded bool
	lo, hi  int64

	digits []rune
	neg    bool
}

func newIntegerPart(maxDigits int, signed, grouping bool, tab *locale.Table) *integerPart {
	p := &integerPart{
		maxDigits: maxDigits,
		signed:    signed,
		minus:     []rune(tab.Minus),
	}
	if grouping {
		p.group = []rune(tab.Group)
	}
	p.w = maxDigits + (maxDigits-1)/3*len(p.group)
	if signed {
		p.w += len(p.minus)
	}
	return p
}

func (p *integerPart) kind() Kind   { return KindInteger }
func (p *integerPart) name() string { return "integer" }
func (p *integerPart) width() int   { return p.w }
func (p *integerPart) pad() bool    { return true }

func (p *integerPart) clone() section {
	c := *p
	c.digits = append([]rune(nil), p.digits...)
	return &c
}

func (p *integerPart) body(ph rune) []rune {
	var out []rune
	if p.neg {
		out = append(out, p.minus...)
	}
	if len(p.digits) == 0 {
		return append(out, ph)
	}
	head := len(p.digits) % 3
	if head == 0 {
		head = 3
	}
	out = append(out, p.digits[:head]...)
	for i := head; i < len(p.digits); i += 3 {
		out = append(out, p.group...)
		out = append(out, p.digits[i:i+3]...)
	}
	return out
}

func (p *integerPart) render(dst []rune, ph rune) {
	body := p.body(ph)
	n := len(dst) - len(body)
	for i := 0; i < n; i++ {
		dst[i] = ' '
	}
	copy(dst[n:], body)
}

func (p *integerPart) parse(src []rune, ph rune) error {
	s := strings.TrimLeft(string(src), " ")
	neg := false
	if m := string(p.minus); m != "" && strings.HasPrefix(s, m) {
		if !p.signed {
			return fmt.Errorf("integer: unsigned field has a sign")
		}
		neg, s = true, s[len(m):]
	}
	if s == string(ph) {
		s = ""
	}
	if len(p.group) > 0 {
		s = strings.ReplaceAll(s, string(p.group), "")
	}
	var ds []rune
	for _, r := range s {
		if !isDigit(r) {
			return fmt.Errorf("integer: %q is not a digit", r)
		}
		ds = append(ds, r)
	}
	if len(ds) > p.maxDigits {
		return fmt.Errorf("integer: more than %d digits", p.maxDigits)
	}
	p.digits, p.neg = ds, neg
	return nil
}

func (p *integerPart) isMinus(r rune) bool {
	return r == '-' || (len(p.minus) == 1 && r == p.minus[0])
}

func (p *integerPart) put(_ int, r rune) (int, bool, bool) {
	digits, neg := p.digits, p.neg
	switch {
	case isDigit(r):
		switch {
		case len(digits) == 1 && digits[0] == '0':
			digits = []rune{r}
		case len(digits) == p.maxDigits:
			return 0, false, false
		default:
			digits = append(digits[:len(digits):len(digits)], r)
		}
	case p.signed && p.isMinus(r):
		neg = !neg
	case p.signed && r == '+':
		neg = false
	default:
		return 0, false, false
	}
	if !p.reachable(digits, neg) {
		return 0, false, false
	}
	p.digits, p.neg = digits, neg
	return p.w, false, true
}

// reachable reports whether digits with sign neg can still end up inside
// the field's bounds. Typing only grows the magnitude, so a positive value
// above hi or a negative value below lo is final.
func (p *integerPart) reachable(digits []rune, neg bool) bool {
	if !p.bounded || len(digits) == 0 {
		return true
	}
	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return false
	}
	if neg {
		return n == 0 || -n >= p.lo
	}
	return n <= p.hi
}

func (p *integerPart) erase(int) bool {
	switch {
	case len(p.digits) > 0:
		p.digits = p.digits[:len(p.digits)-1]
	case p.neg:
		p.neg = false
	default:
		return false
	}
	return true
}

func (p *integerPart) clearRange(_, _ int) {
	p.digits, p.neg = nil, false
}

func (p *integerPart) empty() bool    { return len(p.digits) == 0 && !p.neg }
func (p *integerPart) complete() bool { return len(p.digits) > 0 }

func (p *integerPart) value() int64 {
	n, _ := strconv.ParseInt(string(p.digits), 10, 64)
	return n
}

func (p *integerPart) set(u uint64, neg bool) error {
	s := strconv.FormatUint(u, 10)
	if len(s) > p.maxDigits {
		return fmt.Errorf("%d digits do not fit in %d", len(s), p.maxDigits)
	}
	if neg && !p.signed {
		return fmt.Errorf("negative value in unsigned field")
	}
	p.digits, p.neg = []rune(s), neg && u != 0
	return nil
}

// ============================================================================
// Fraction part
// ============================================================================

// fractionPart is a fixed number of fraction digits entered left to right.
// Blank cells read as zero.
type fractionPart struct {
	cells []rune
}

func (f *fractionPart) kind() Kind   { return KindFraction }
func (f *fractionPart) name() string { return "fraction" }
func (f *fractionPart) width() int   { return len(f.cells) }
func (f *fractionPart) pad() bool    { return true }

func (f *fractionPart) clone() section {
	return &fractionPart{cells: append([]rune(nil), f.cells...)}
}

func (f *fractionPart) render(dst []rune, ph rune) {
	renderCells(dst, f.cells, ph)
}

func (f *fractionPart) parse(src []rune, ph rune) error {
	out := make([]rune, len(src))
	for i, r := range src {
		switch {
		case r == ph:
		case isDigit(r):
			out[i] = r
		default:
			return fmt.Errorf("fraction: %q is not a digit", r)
		}
	}
	f.cells = out
	return nil
}

func (f *fractionPart) put(i int, r rune) (int, bool, bool) {
	if !isDigit(r) {
		return 0, false, false
	}
	f.cells[i] = r
	return i + 1, i+1 == len(f.cells), true
}

func (f *fractionPart) erase(i int) bool {
	changed := f.cells[i] != 0
	f.cells[i] = 0
	return changed
}

func (f *fractionPart) clearRange(a, b int) {
	clear(f.cells[a:b])
}

func (f *fractionPart) empty() bool    { return allBlank(f.cells) }
func (f *fractionPart) complete() bool { return true }

func (f *fractionPart) value() int64 {
	var n int64
	for _, r := range f.cells {
		n *= 10
		if r != 0 {
			n += int64(r - '0')
		}
	}
	return n
}

func (f *fractionPart) set(v uint64) {
	for i := len(f.cells) - 1; i >= 0; i-- {
		f.cells[i] = rune('0' + v%10)
		v /= 10
	}
}

// ============================================================================
// Constructors
// ============================================================================

// IntegerOptions configures an integer field.
type IntegerOptions struct {
	Digits   int  // maximum digits, default 9
	Signed   bool // allow negative values
	Grouping bool // show group separators

	// Min and Max bound the value. Both zero means unbounded. Keystrokes
	// that leave no way back into the range are rejected, and commit
	// checks the final value.
	Min, Max int64
}

// DecimalOptions configures a fixed-point decimal field.
type DecimalOptions struct {
	IntDigits  int // default 9
	FracDigits int // default 2
	Signed     bool
	Grouping   bool
}

// Integer builds a calculator-style integer field.
func Integer(tab locale.Table, opts IntegerOptions) (*Field, error) {
	if opts.Digits == 0 {
		opts.Digits = 9
	}
	if opts.Digits < 0 || opts.Digits > MaxDigits {
		return nil, fmt.Errorf("integer with %d digits: %w", opts.Digits, ErrInvalidPattern)
	}
	if opts.Min > opts.Max {
		return nil, fmt.Errorf("integer range [%d, %d]: %w", opts.Min, opts.Max, ErrInvalidPattern)
	}
	f := newField(fieldInteger, tab)
	p := newIntegerPart(opts.Digits, opts.Signed, opts.Grouping, &f.tab)
	if opts.Min != 0 || opts.Max != 0 {
		f.ranged, f.min, f.max = true, opts.Min, opts.Max
		p.bounded, p.lo, p.hi = true, opts.Min, opts.Max
	}
	f.build(p)
	return f, nil
}

// Decimal builds a fixed-point field: a calculator-style integer part, the
// locale's decimal separator and a fraction part.
func Decimal(tab locale.Table, opts DecimalOptions) (*Field, error) {
	if opts.IntDigits == 0 {
		opts.IntDigits = 9
	}
	if opts.FracDigits == 0 {
		opts.FracDigits = 2
	}
	if opts.IntDigits < 0 || opts.FracDigits < 0 || opts.IntDigits+opts.FracDigits > MaxDigits {
		return nil, fmt.Errorf("decimal with %d.%d digits: %w", opts.IntDigits, opts.FracDigits, ErrInvalidPattern)
	}
	f := newField(fieldDecimal, tab)
	f.build(
		newIntegerPart(opts.IntDigits, opts.Signed, opts.Grouping, &f.tab),
		&literal{runes: []rune(f.tab.Decimal)},
		&fractionPart{cells: make([]rune, opts.FracDigits)},
	)
	f.scale = opts.FracDigits
	return f, nil
}

// Number builds an integer or decimal field from a format such as
// "-#,##0.00": a leading minus allows negative values, each # or 0 is a
// digit, a comma turns on grouping and the digits after the point are the
// fraction. Separators are shown in the locale's form.
func Number(format string, tab locale.Table) (*Field, error) {
	var (
		signed, grouping, point bool
		intDigits, fracDigits   int
	)
	for i, r := range []rune(format) {
		switch {
		case r == '-' && i == 0:
			signed = true
		case r == '#' || r == '0':
			if point {
				fracDigits++
			} else {
				intDigits++
			}
		case r == ',' && !point:
			grouping = true
		case r == '.' && !point:
			point = true
		default:
			return nil, &PatternError{Pattern: format, Offset: i, Reason: fmt.Sprintf("unexpected %q", r)}
		}
	}
	switch {
	case intDigits == 0:
		return nil, &PatternError{Pattern: format, Offset: 0, Reason: "no integer digits"}
	case point && fracDigits == 0:
		return nil, &PatternError{Pattern: format, Offset: len([]rune(format)), Reason: "no fraction digits"}
	case intDigits+fracDigits > MaxDigits:
		return nil, &PatternError{Pattern: format, Offset: 0, Reason: fmt.Sprintf("more than %d digits", MaxDigits)}
	}
	if fracDigits == 0 {
		return Integer(tab, IntegerOptions{Digits: intDigits, Signed: signed, Grouping: grouping})
	}
	return Decimal(tab, DecimalOptions{
		IntDigits:  intDigits,
		FracDigits: fracDigits,
		Signed:     signed,
		Grouping:   grouping,
	})
}
