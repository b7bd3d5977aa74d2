package mask

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/textcore/internal/locale"
)

type component uint8

const (
	compYear component = iota
	compYear2
	compMonth
	compMonthName
	compDay
	compHour
	compMinute
	compSecond
)

var layoutTokens = []struct {
	token string
	comp  component
}{
	// Longest first.
	{"yyyy", compYear},
	{"MMM", compMonthName},
	{"yy", compYear2},
	{"MM", compMonth},
	{"dd", compDay},
	{"HH", compHour},
	{"mm", compMinute},
	{"ss", compSecond},
}

func (c component) field() string {
	switch c {
	case compYear, compYear2:
		return "year"
	case compMonth, compMonthName:
		return "month"
	case compDay:
		return "day"
	case compHour:
		return "hour"
	case compMinute:
		return "minute"
	default:
		return "second"
	}
}

func newComponent(c component, tab *locale.Table) section {
	switch c {
	case compYear:
		return newDigits("year", 4, 1, 9999)
	case compYear2:
		return newDigits("year", 2, 0, 99)
	case compMonth:
		return newDigits("month", 2, 1, 12)
	case compMonthName:
		return newMonthName(tab)
	case compDay:
		return newDigits("day", 2, 1, 31)
	case compHour:
		return newDigits("hour", 2, 0, 23)
	case compMinute:
		return newDigits("minute", 2, 0, 59)
	default:
		return newDigits("second", 2, 0, 59)
	}
}

// Date builds a date/time field from a layout of yyyy, yy, MM, MMM, dd,
// HH, mm and ss tokens. Other runes are literals; a backslash quotes the
// next rune.
func Date(layout string, tab locale.Table) (*Field, error) {
	f := newField(fieldDate, tab)
	src := []rune(layout)
	var (
		secs []section
		lit  []rune
		seen = make(map[string]bool)
	)
	flush := func() {
		if len(lit) > 0 {
			secs = append(secs, &literal{runes: lit})
			lit = nil
		}
	}

outer:
	for i := 0; i < len(src); {
		if src[i] == '\\' {
			if i+1 == len(src) {
				return nil, &PatternError{Pattern: layout, Offset: i, Reason: "trailing backslash"}
			}
			lit = append(lit, src[i+1])
			i += 2
			continue
		}
		rest := string(src[i:])
		for _, t := range layoutTokens {
			if !strings.HasPrefix(rest, t.token) {
				continue
			}
			name := t.comp.field()
			if seen[name] {
				return nil, &PatternError{Pattern: layout, Offset: i, Reason: "repeated " + name}
			}
			seen[name] = true
			flush()
			secs = append(secs, newComponent(t.comp, &f.tab))
			i += len(t.token)
			continue outer
		}
		if strings.ContainsRune("yMdHms", src[i]) {
			return nil, &PatternError{Pattern: layout, Offset: i, Reason: fmt.Sprintf("unknown token at %q", string(src[i]))}
		}
		lit = append(lit, src[i])
		i++
	}
	flush()
	if len(seen) == 0 {
		return nil, &PatternError{Pattern: layout, Offset: 0, Reason: "no date or time components"}
	}
	f.build(secs...)
	return f, nil
}

// DateLayout returns the numeric date layout of a locale, such as
// "MM/dd/yyyy" for American English.
func DateLayout(tab locale.Table) string {
	sep := strings.ReplaceAll(tab.DateSeparator, `\`, `\\`)
	for _, r := range "yMdHms" {
		sep = strings.ReplaceAll(sep, string(r), `\`+string(r))
	}
	switch tab.DateOrder {
	case locale.DMY:
		return "dd" + sep + "MM" + sep + "yyyy"
	case locale.YMD:
		return "yyyy" + sep + "MM" + sep + "dd"
	default:
		return "MM" + sep + "dd" + sep + "yyyy"
	}
}

// twoDigitYear maps yy the way time.Parse does: 69 and above are 19yy.
func twoDigitYear(yy int) int {
	if yy >= 69 {
		return 1900 + yy
	}
	return 2000 + yy
}

// defaultYear stands in for a layout without a year. It is a leap year so
// that 29 February can be entered.
const defaultYear = 2000

func (f *Field) parseDate(secs []section) (Value, error) {
	year, month, day := defaultYear, 1, 1
	var hour, minute, second int
	dayAt, monthAt := -1, -1

	for i, s := range secs {
		if s.kind() == KindLiteral {
			continue
		}
		if !s.complete() {
			return Null, f.formatError(secs, i, "incomplete")
		}
		if m, ok := s.(*monthName); ok {
			month, monthAt = m.month, i
			continue
		}
		d := s.(*digits)
		v := d.value()
		if v < d.min || v > d.max {
			return Null, f.formatError(secs, i, fmt.Sprintf("out of range [%d, %d]", d.min, d.max))
		}
		switch d.label {
		case "year":
			if d.width() == 2 {
				v = twoDigitYear(v)
			}
			year = v
		case "month":
			month, monthAt = v, i
		case "day":
			day, dayAt = v, i
		case "hour":
			hour = v
		case "minute":
			minute = v
		case "second":
			second = v
		}
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		at := dayAt
		if at < 0 {
			at = monthAt
		}
		return Null, f.formatError(secs, at, "no such date")
	}
	return TimeValue(t), nil
}

func (f *Field) fillDate(secs []section, v Value) error {
	if v.Kind != ValueTime {
		return fmt.Errorf("%s value: %w", v.Kind, ErrValueKind)
	}
	t := v.Time
	for i, s := range secs {
		switch s := s.(type) {
		case *monthName:
			s.set(int(t.Month()))
		case *digits:
			var n int
			switch s.label {
			case "year":
				n = t.Year()
				if s.width() == 2 {
					n %= 100
				} else if n < 1 || n > 9999 {
					return &FormatError{Section: i, Name: "year", Value: fmt.Sprint(n), Reason: "out of range [1, 9999]"}
				}
			case "month":
				n = int(t.Month())
			case "day":
				n = t.Day()
			case "hour":
				n = t.Hour()
			case "minute":
				n = t.Minute()
			case "second":
				n = t.Second()
			}
			s.set(n)
		}
	}
	return nil
}
