package rope

import "strings"

// Summary holds aggregated metrics for a span of text.
// It forms a monoid under Add, with the zero value as identity.
type Summary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Lines is the number of '\n' bytes.
	Lines int

	// Flags indicate text properties for fast paths.
	Flags Flags
}

// Flags indicate text properties that callers may use to skip work.
type Flags uint8

const (
	// FlagNonASCII is set when any byte is >= 0x80.
	FlagNonASCII Flags = 1 << iota

	// FlagTabs is set when the text contains a tab.
	FlagTabs
)

// Add combines two summaries.
func (s Summary) Add(other Summary) Summary {
	return Summary{
		Bytes: s.Bytes + other.Bytes,
		Lines: s.Lines + other.Lines,
		Flags: s.Flags | other.Flags,
	}
}

// ASCII reports whether the summarized text is pure ASCII.
func (s Summary) ASCII() bool {
	return s.Flags&FlagNonASCII == 0
}

// summarize calculates metrics for a string.
func summarize(s string) Summary {
	sum := Summary{Bytes: len(s), Lines: strings.Count(s, "\n")}
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			sum.Flags |= FlagNonASCII
			break
		}
	}
	if strings.IndexByte(s, '\t') >= 0 {
		sum.Flags |= FlagTabs
	}
	return sum
}
