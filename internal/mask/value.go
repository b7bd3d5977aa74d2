package mask

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValueKind is the type held by a Value.
type ValueKind uint8

const (
	ValueNull ValueKind = iota
	ValueText
	ValueInt
	ValueDecimal
	ValueTime
)

func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "null"
	case ValueText:
		return "text"
	case ValueInt:
		return "int"
	case ValueDecimal:
		return "decimal"
	case ValueTime:
		return "time"
	default:
		return fmt.Sprintf("ValueKind(%d)", k)
	}
}

// Value is the committed content of a field. Only the member selected by
// Kind is meaningful.
type Value struct {
	Kind ValueKind
	Text string
	Int  int64
	Dec  decimal.Decimal
	Time time.Time
}

// Null is the value of an empty field.
var Null = Value{}

// TextValue returns a text value.
func TextValue(s string) Value { return Value{Kind: ValueText, Text: s} }

// IntValue returns an integer value.
func IntValue(n int64) Value { return Value{Kind: ValueInt, Int: n} }

// DecimalValue returns a decimal value.
func DecimalValue(d decimal.Decimal) Value { return Value{Kind: ValueDecimal, Dec: d} }

// TimeValue returns a time value.
func TimeValue(t time.Time) Value { return Value{Kind: ValueTime, Time: t} }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.Kind == ValueNull }

// String returns a locale-independent form: digits with '.' for decimals,
// RFC 3339 for times and "" for null.
func (v Value) String() string {
	switch v.Kind {
	case ValueText:
		return v.Text
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueDecimal:
		return FormatDecimal(v.Dec)
	case ValueTime:
		return v.Time.Format(time.RFC3339)
	default:
		return ""
	}
}

// Equal reports whether v and o hold the same value.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case ValueText:
		return v.Text == o.Text
	case ValueInt:
		return v.Int == o.Int
	case ValueDecimal:
		return v.Dec.Equal(o.Dec)
	case ValueTime:
		return v.Time.Equal(o.Time)
	default:
		return true
	}
}

// ============================================================================
// Decimals
// ============================================================================

// ErrDecimal is returned for malformed decimals.
var ErrDecimal = errors.New("invalid decimal")

// ParseDecimal parses the locale-independent form "-123.45". The number of
// fraction digits written becomes the scale, so "12.50" keeps its zero.
// Exponents are not accepted.
func ParseDecimal(s string) (decimal.Decimal, error) {
	if strings.ContainsAny(s, "eE") {
		return decimal.Decimal{}, fmt.Errorf("%q: %w", s, ErrDecimal)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%q: %w", s, ErrDecimal)
	}
	return d, nil
}

// Scale returns the number of fraction digits d carries.
func Scale(d decimal.Decimal) int {
	return int(max(0, -d.Exponent()))
}

// FormatDecimal formats d with a '.' decimal point and all of its fraction
// digits.
func FormatDecimal(d decimal.Decimal) string {
	return d.StringFixed(int32(Scale(d)))
}
