package mask

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/textcore/internal/locale"
)

// Kind identifies the kind of a section.
type Kind uint8

const (
	// KindLiteral is fixed text.
	KindLiteral Kind = iota
	// KindText is a run of pattern cells.
	KindText
	// KindNumber is a bounded numeric component such as a month or hour.
	KindNumber
	// KindMonth is an abbreviated month name.
	KindMonth
	// KindInteger is a right-aligned integer entered calculator style.
	KindInteger
	// KindFraction is the fixed-width fraction of a decimal.
	KindFraction
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindMonth:
		return "month"
	case KindInteger:
		return "integer"
	case KindFraction:
		return "fraction"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// section is one part of a compiled field. Offsets passed to its methods
// are relative to the section start, in display runes.
type section interface {
	kind() Kind
	name() string
	width() int
	clone() section

	// render fills dst, which has width() runes.
	render(dst []rune, ph rune)
	// parse is the inverse of render. It must not modify the section on
	// failure.
	parse(src []rune, ph rune) error

	// put applies r at offset i and returns the new caret offset and
	// whether the section is full. It returns false if r does not fit.
	put(i int, r rune) (next int, full bool, ok bool)
	// erase removes input at offset i and reports whether anything changed.
	erase(i int) bool
	// clearRange removes input covering offsets [a, b).
	clearRange(a, b int)
	// pad completes a partially entered section for a separator jump.
	pad() bool

	empty() bool
	complete() bool
}

// ============================================================================
// Literal
// ============================================================================

type literal struct {
	runes []rune
}

func (l *literal) kind() Kind          { return KindLiteral }
func (l *literal) name() string        { return "literal" }
func (l *literal) width() int          { return len(l.runes) }
func (l *literal) clone() section      { return l }
func (l *literal) empty() bool         { return true }
func (l *literal) complete() bool      { return true }
func (l *literal) pad() bool           { return true }
func (l *literal) erase(int) bool      { return false }
func (l *literal) clearRange(_, _ int) {}

func (l *literal) put(int, rune) (int, bool, bool) {
	return 0, false, false
}

func (l *literal) render(dst []rune, _ rune) {
	copy(dst, l.runes)
}

func (l *literal) parse(src []rune, _ rune) error {
	if string(src) != string(l.runes) {
		return fmt.Errorf("want literal %q, got %q", string(l.runes), string(src))
	}
	return nil
}

// ============================================================================
// Pattern cells
// ============================================================================

// class is what one pattern cell accepts.
type class uint8

const (
	classDigit     class = iota // 0
	classDigitOpt               // 9
	classSigned                 // #
	classLetter                 // L
	classLetterOpt              // l
	classAlnum                  // A
	classAlnumOpt               // a
	classHex                    // H
	classAny                    // C
	classAnyOpt                 // c
)

var classOf = map[rune]class{
	'0': classDigit,
	'9': classDigitOpt,
	'#': classSigned,
	'L': classLetter,
	'l': classLetterOpt,
	'A': classAlnum,
	'a': classAlnumOpt,
	'H': classHex,
	'C': classAny,
	'c': classAnyOpt,
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (c class) accepts(r rune) bool {
	switch c {
	case classDigit, classDigitOpt:
		return isDigit(r)
	case classSigned:
		return isDigit(r) || r == '+' || r == '-'
	case classLetter, classLetterOpt:
		return unicode.IsLetter(r)
	case classAlnum, classAlnumOpt:
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	case classHex:
		return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	default:
		// A mark would join the previous cell's cluster.
		return unicode.IsPrint(r) && !unicode.Is(unicode.M, r)
	}
}

func (c class) required() bool {
	switch c {
	case classDigit, classLetter, classAlnum, classHex, classAny:
		return true
	}
	return false
}

// cells is a run of pattern cells. Zero marks a blank cell.
type cells struct {
	classes []class
	runes   []rune
}

func newCells(classes []class) *cells {
	return &cells{classes: classes, runes: make([]rune, len(classes))}
}

func (c *cells) kind() Kind   { return KindText }
func (c *cells) name() string { return "text" }
func (c *cells) width() int   { return len(c.classes) }
func (c *cells) pad() bool    { return true }

func (c *cells) clone() section {
	return &cells{classes: c.classes, runes: append([]rune(nil), c.runes...)}
}

func (c *cells) render(dst []rune, ph rune) {
	renderCells(dst, c.runes, ph)
}

func (c *cells) parse(src []rune, ph rune) error {
	out := make([]rune, len(src))
	for i, r := range src {
		if r == ph {
			continue
		}
		if !c.classes[i].accepts(r) {
			return fmt.Errorf("cell %d does not accept %q", i, r)
		}
		out[i] = r
	}
	c.runes = out
	return nil
}

func (c *cells) put(i int, r rune) (int, bool, bool) {
	if !c.classes[i].accepts(r) {
		return 0, false, false
	}
	c.runes[i] = r
	return i + 1, i+1 == len(c.runes), true
}

func (c *cells) erase(i int) bool {
	changed := c.runes[i] != 0
	c.runes[i] = 0
	return changed
}

func (c *cells) clearRange(a, b int) {
	clear(c.runes[a:b])
}

func (c *cells) empty() bool {
	return allBlank(c.runes)
}

func (c *cells) complete() bool {
	for i, r := range c.runes {
		if r == 0 && c.classes[i].required() {
			return false
		}
	}
	return true
}

// text returns the entered runes without blanks.
func (c *cells) text() string {
	var sb strings.Builder
	for _, r := range c.runes {
		if r != 0 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func renderCells(dst, runes []rune, ph rune) {
	for i, r := range runes {
		if r == 0 {
			r = ph
		}
		dst[i] = r
	}
}

func allBlank(runes []rune) bool {
	for _, r := range runes {
		if r != 0 {
			return false
		}
	}
	return true
}

// ============================================================================
// Bounded numeric component
// ============================================================================

// digits is a fixed-width numeric component with an inclusive range.
type digits struct {
	label    string
	min, max int
	cells    []rune
}

func newDigits(label string, width, min, max int) *digits {
	return &digits{label: label, min: min, max: max, cells: make([]rune, width)}
}

func (d *digits) kind() Kind   { return KindNumber }
func (d *digits) name() string { return d.label }
func (d *digits) width() int   { return len(d.cells) }

func (d *digits) clone() section {
	c := *d
	c.cells = append([]rune(nil), d.cells...)
	return &c
}

func (d *digits) render(dst []rune, ph rune) {
	renderCells(dst, d.cells, ph)
}

func (d *digits) parse(src []rune, ph rune) error {
	out := make([]rune, len(src))
	for i, r := range src {
		switch {
		case r == ph:
		case isDigit(r):
			out[i] = r
		default:
			return fmt.Errorf("%s: %q is not a digit", d.label, r)
		}
	}
	d.cells = out
	return nil
}

// bounds returns the smallest and largest values the cells can still reach.
func bounds(cells []rune) (lo, hi int) {
	for _, r := range cells {
		if r == 0 {
			lo, hi = lo*10, hi*10+9
			continue
		}
		v := int(r - '0')
		lo, hi = lo*10+v, hi*10+v
	}
	return lo, hi
}

func (d *digits) feasible(cells []rune) bool {
	lo, hi := bounds(cells)
	return lo <= d.max && hi >= d.min
}

func (d *digits) put(i int, r rune) (int, bool, bool) {
	if !isDigit(r) {
		return 0, false, false
	}
	// Entry runs left to right: typing at i discards what follows.
	cand := make([]rune, len(d.cells))
	copy(cand, d.cells[:i])
	cand[i] = r
	if d.feasible(cand) {
		d.cells = cand
		return i + 1, !containsBlank(cand), true
	}
	// A leading digit that cannot start a value but is one on its own is
	// zero padded, so typing 3 in a month section gives 03.
	if i == 0 {
		v := int(r - '0')
		if v >= d.min && v <= d.max {
			d.set(v)
			return len(d.cells), true, true
		}
	}
	return 0, false, false
}

func (d *digits) erase(i int) bool {
	changed := d.cells[i] != 0
	d.cells[i] = 0
	return changed
}

func (d *digits) clearRange(a, b int) {
	clear(d.cells[a:b])
}

func (d *digits) pad() bool {
	n := 0
	for n < len(d.cells) && d.cells[n] != 0 {
		n++
	}
	if n == len(d.cells) {
		return true
	}
	if n == 0 || !allBlank(d.cells[n:]) {
		return false
	}
	v, _ := bounds(d.cells[:n])
	if v < d.min || v > d.max {
		return false
	}
	out := make([]rune, len(d.cells))
	copy(out[len(out)-n:], d.cells[:n])
	for j := 0; j < len(out)-n; j++ {
		out[j] = '0'
	}
	d.cells = out
	return true
}

func (d *digits) empty() bool    { return allBlank(d.cells) }
func (d *digits) complete() bool { return !containsBlank(d.cells) }

func (d *digits) value() int {
	v, _ := bounds(d.cells)
	return v
}

func (d *digits) set(v int) {
	for i := len(d.cells) - 1; i >= 0; i-- {
		d.cells[i] = rune('0' + v%10)
		v /= 10
	}
}

func containsBlank(runes []rune) bool {
	for _, r := range runes {
		if r == 0 {
			return true
		}
	}
	return false
}

// ============================================================================
// Month name
// ============================================================================

// monthName holds an abbreviated month name typed letter by letter. A
// prefix shared by several months stays partial until it is unique.
type monthName struct {
	tab   *locale.Table
	w     int
	cells []rune
	month int // 1-12 once resolved
}

func newMonthName(tab *locale.Table) *monthName {
	w := 0
	for _, n := range tab.ShortMonths {
		w = max(w, len([]rune(n)))
	}
	return &monthName{tab: tab, w: w, cells: make([]rune, w)}
}

func (m *monthName) kind() Kind   { return KindMonth }
func (m *monthName) name() string { return "month" }
func (m *monthName) width() int   { return m.w }

func (m *monthName) clone() section {
	c := *m
	c.cells = append([]rune(nil), m.cells...)
	return &c
}

func (m *monthName) render(dst []rune, ph rune) {
	renderCells(dst, m.cells, ph)
	if m.month != 0 {
		for i, r := range m.cells {
			if r == 0 {
				dst[i] = ' '
			}
		}
	}
}

func (m *monthName) parse(src []rune, ph rune) error {
	text := strings.TrimRight(string(src), string([]rune{ph, ' '}))
	if text == "" {
		m.cells, m.month = make([]rune, m.w), 0
		return nil
	}
	if n, ok := m.tab.MonthIndex(text); ok {
		m.set(n)
		return nil
	}
	if len(m.tab.MonthsWithPrefix(text)) == 0 {
		return fmt.Errorf("month: %q matches no month", text)
	}
	m.cells, m.month = make([]rune, m.w), 0
	copy(m.cells, []rune(text))
	return nil
}

func (m *monthName) filled() int {
	n := 0
	for n < len(m.cells) && m.cells[n] != 0 {
		n++
	}
	return n
}

func (m *monthName) put(i int, r rune) (int, bool, bool) {
	if i > m.filled() || !unicode.IsLetter(r) {
		return 0, false, false
	}
	prefix := append(append([]rune(nil), m.cells[:i]...), r)
	matches := m.tab.MonthsWithPrefix(string(prefix))
	switch len(matches) {
	case 0:
		return 0, false, false
	case 1:
		m.set(matches[0])
		return m.w, true, true
	}
	// Keep the case of the first matching name.
	name := []rune(m.tab.ShortMonths[matches[0]-1])
	m.cells[i] = name[i]
	clear(m.cells[i+1:])
	m.month = 0
	return i + 1, false, true
}

// remainder returns the letters of the resolved name from cell n on.
func (m *monthName) remainder(n int) []rune {
	if m.month == 0 {
		return nil
	}
	name := []rune(m.tab.ShortMonths[m.month-1])
	if n >= len(name) {
		return nil
	}
	return name[n:]
}

func (m *monthName) set(month int) {
	m.month = month
	m.cells = make([]rune, m.w)
	copy(m.cells, []rune(m.tab.ShortMonths[month-1]))
}

func (m *monthName) erase(i int) bool {
	if m.cells[i] == 0 && m.month == 0 {
		return false
	}
	clear(m.cells[i:])
	m.month = 0
	return true
}

func (m *monthName) clearRange(_, _ int) {
	m.cells, m.month = make([]rune, m.w), 0
}

func (m *monthName) pad() bool {
	if m.month != 0 {
		return true
	}
	n := m.filled()
	if n == 0 {
		return false
	}
	matches := m.tab.MonthsWithPrefix(string(m.cells[:n]))
	if len(matches) != 1 {
		return false
	}
	m.set(matches[0])
	return true
}

func (m *monthName) empty() bool    { return m.month == 0 && allBlank(m.cells) }
func (m *monthName) complete() bool { return m.month != 0 }
