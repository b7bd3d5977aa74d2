// Package locale holds the read-only formatting tables consulted by masked
// fields: number separators, date component order and calendar names.
//
// Tables are plain values. A Catalog maps language tags to tables and picks
// the closest one for a requested tag.
package locale

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrUnknownLocale is returned when no table matches a requested locale.
var ErrUnknownLocale = errors.New("unknown locale")

// ErrInvalidTable is returned for tables that cannot be used for parsing.
var ErrInvalidTable = errors.New("invalid locale table")

// Order is the order of the day, month and year components in a date.
type Order uint8

const (
	// MDY is month, day, year.
	MDY Order = iota
	// DMY is day, month, year.
	DMY
	// YMD is year, month, day.
	YMD
)

// String returns the lowercase component letters.
func (o Order) String() string {
	switch o {
	case DMY:
		return "dmy"
	case YMD:
		return "ymd"
	default:
		return "mdy"
	}
}

// ParseOrder maps "mdy", "dmy" or "ymd" to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "mdy":
		return MDY, nil
	case "dmy":
		return DMY, nil
	case "ymd":
		return YMD, nil
	default:
		return MDY, fmt.Errorf("date order %q: %w", s, ErrInvalidTable)
	}
}

// Table is the formatting data of one locale.
type Table struct {
	Tag           language.Tag
	Decimal       string
	Group         string
	Minus         string
	DateOrder     Order
	DateSeparator string
	TimeSeparator string
	Months        [12]string
	ShortMonths   [12]string
	Days          [7]string
	ShortDays     [7]string
}

var englishMonths = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var englishDays = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Default returns the table for American English.
func Default() Table {
	t := Table{
		Tag:           language.AmericanEnglish,
		Decimal:       ".",
		Group:         ",",
		Minus:         "-",
		DateOrder:     MDY,
		DateSeparator: "/",
		TimeSeparator: ":",
		Months:        englishMonths,
		Days:          englishDays,
	}
	t.ShortMonths = abbreviate12(t.Months)
	t.ShortDays = abbreviate7(t.Days)
	return t
}

func abbreviate12(names [12]string) [12]string {
	var out [12]string
	for i, n := range names {
		out[i] = prefix(n, 3)
	}
	return out
}

func abbreviate7(names [7]string) [7]string {
	var out [7]string
	for i, n := range names {
		out[i] = prefix(n, 3)
	}
	return out
}

func prefix(s string, n int) string {
	i := 0
	for j := range s {
		if i == n {
			return s[:j]
		}
		i++
	}
	return s
}

// dateConventions lists date order and separator for languages and regions
// whose conventions differ from the day-month-year slash default.
var dateConventions = map[string]struct {
	order Order
	sep   string
}{
	"en-US": {MDY, "/"},
	"en-PH": {MDY, "/"},
	"de":    {DMY, "."},
	"ru":    {DMY, "."},
	"pl":    {DMY, "."},
	"cs":    {DMY, "."},
	"fi":    {DMY, "."},
	"nb":    {DMY, "."},
	"tr":    {DMY, "."},
	"uk":    {DMY, "."},
	"nl":    {DMY, "-"},
	"ja":    {YMD, "/"},
	"zh":    {YMD, "/"},
	"ko":    {YMD, "."},
	"hu":    {YMD, "."},
	"sv":    {YMD, "-"},
	"lt":    {YMD, "-"},
}

// FromTag derives a table for tag. Number separators come from the CLDR
// data behind golang.org/x/text/message; date order follows a small set of
// known conventions. Calendar names stay English.
func FromTag(tag language.Tag) Table {
	t := Default()
	t.Tag = tag

	p := message.NewPrinter(tag)
	if g := between(p.Sprintf("%d", 1234567), "1", "234"); g != "" {
		t.Group = g
	}
	if d := between(p.Sprintf("%.1f", 0.5), "0", "5"); d != "" && d != t.Group {
		t.Decimal = d
	}

	base, _ := tag.Base()
	region, _ := tag.Region()
	t.DateOrder, t.DateSeparator = DMY, "/"
	if c, ok := dateConventions[base.String()+"-"+region.String()]; ok {
		t.DateOrder, t.DateSeparator = c.order, c.sep
	} else if c, ok := dateConventions[base.String()]; ok {
		t.DateOrder, t.DateSeparator = c.order, c.sep
	}
	return t
}

// between returns the text of s strictly between the first before and the
// following after.
func between(s, before, after string) string {
	i := strings.Index(s, before)
	if i < 0 {
		return ""
	}
	rest := s[i+len(before):]
	j := strings.Index(rest, after)
	if j <= 0 {
		return ""
	}
	return rest[:j]
}

// Validate checks that the table can drive parsing: separators are set,
// single runes for the decimal point, and distinct.
func (t Table) Validate() error {
	switch {
	case utf8.RuneCountInString(t.Decimal) != 1:
		return fmt.Errorf("decimal separator %q: %w", t.Decimal, ErrInvalidTable)
	case t.Decimal == t.Group:
		return fmt.Errorf("decimal and group separators are both %q: %w", t.Decimal, ErrInvalidTable)
	case t.Minus == "":
		return fmt.Errorf("empty minus sign: %w", ErrInvalidTable)
	case t.DateSeparator == "":
		return fmt.Errorf("empty date separator: %w", ErrInvalidTable)
	}
	for i, m := range t.Months {
		if m == "" || t.ShortMonths[i] == "" {
			return fmt.Errorf("month %d has no name: %w", i+1, ErrInvalidTable)
		}
	}
	return nil
}

// DecimalRune returns the decimal separator as a rune.
func (t Table) DecimalRune() rune {
	r, _ := utf8.DecodeRuneInString(t.Decimal)
	return r
}

// MonthIndex returns the month (1-12) whose full or short name equals name,
// ignoring case.
func (t Table) MonthIndex(name string) (int, bool) {
	for i := range t.Months {
		if strings.EqualFold(name, t.Months[i]) || strings.EqualFold(name, t.ShortMonths[i]) {
			return i + 1, true
		}
	}
	return 0, false
}

// MonthsWithPrefix returns the months (1-12) whose short name starts with
// prefix, ignoring case.
func (t Table) MonthsWithPrefix(prefix string) []int {
	var out []int
	for i, m := range t.ShortMonths {
		if len(prefix) <= len(m) && strings.EqualFold(m[:len(prefix)], prefix) {
			out = append(out, i+1)
		}
	}
	return out
}

// GroupDigits inserts the group separator every three digits from the
// right of a string of digits.
func (t Table) GroupDigits(digits string) string {
	if len(digits) <= 3 || t.Group == "" {
		return digits
	}
	var sb strings.Builder
	head := len(digits) % 3
	if head > 0 {
		sb.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteString(t.Group)
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

// FormatInt formats n with grouping and the locale's minus sign.
func (t Table) FormatInt(n int64) string {
	if n < 0 {
		u := uint64(-(n + 1)) + 1
		return t.Minus + t.GroupDigits(fmt.Sprint(u))
	}
	return t.GroupDigits(fmt.Sprint(n))
}

// Printer returns a message printer for the table's language.
func (t Table) Printer() *message.Printer {
	return message.NewPrinter(t.Tag)
}
