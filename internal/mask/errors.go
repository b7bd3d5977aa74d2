package mask

import (
	"errors"
	"fmt"
)

var (
	// ErrRejectedKeystroke signals that a keystroke does not fit the
	// section under the caret. The field is unchanged.
	ErrRejectedKeystroke = errors.New("rejected keystroke")

	// ErrFormat is the sentinel wrapped by every *FormatError.
	ErrFormat = errors.New("format error")

	// ErrInvalidPattern is the sentinel wrapped by every *PatternError.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrValueKind is returned by SetValue when the value kind does not
	// fit the field.
	ErrValueKind = errors.New("value kind does not match field")
)

// FormatError reports a section that cannot be parsed into the field's
// value.
type FormatError struct {
	Section int    // section index
	Name    string // section name, e.g. "day"
	Value   string // section display text
	Reason  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("mask: %s section %d %q: %s", e.Name, e.Section, e.Value, e.Reason)
}

// Unwrap returns ErrFormat.
func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// PatternError reports a malformed pattern, layout or number format.
type PatternError struct {
	Pattern string
	Offset  int // rune offset into Pattern
	Reason  string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("mask: pattern %q at %d: %s", e.Pattern, e.Offset, e.Reason)
}

// Unwrap returns ErrInvalidPattern.
func (e *PatternError) Unwrap() error {
	return ErrInvalidPattern
}
