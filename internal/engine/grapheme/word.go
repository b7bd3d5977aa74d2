package grapheme

import "github.com/rivo/uniseg"

// Segment is a run of text between two word boundaries.
type Segment struct {
	Start, End int
	Class      Class
}

// Words splits s at Unicode word boundaries (UAX #29). Each segment is
// classified by its first cluster.
func Words(s string) []Segment {
	var out []Segment
	pos, state := 0, -1
	rest := s
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		out = append(out, Segment{Start: pos, End: pos + len(word), Class: ClassOf(First(word))})
		pos += len(word)
	}
	return out
}

// IsWordBoundary reports whether offset is a word boundary of s.
func IsWordBoundary(s string, offset int) bool {
	if offset == 0 || offset == len(s) {
		return offset >= 0
	}
	for _, seg := range Words(s) {
		if seg.Start == offset {
			return true
		}
		if seg.Start > offset {
			break
		}
	}
	return false
}

// WordAt returns the word segment touching offset. Between a word and
// whitespace the word wins.
func WordAt(s string, offset int) Segment {
	offset = clamp(s, offset)
	words := Words(s)
	if len(words) == 0 {
		return Segment{}
	}
	for i, seg := range words {
		if offset >= seg.Start && offset < seg.End {
			if seg.Class == ClassSpace && offset == seg.Start && i > 0 && words[i-1].Class != ClassSpace {
				return words[i-1]
			}
			return seg
		}
	}
	return words[len(words)-1]
}

// NextWordStart returns the start of the first non-space segment beginning
// after offset, or len(s).
func NextWordStart(s string, offset int) int {
	offset = clamp(s, offset)
	for _, seg := range Words(s) {
		if seg.Start > offset && seg.Class != ClassSpace {
			return seg.Start
		}
	}
	return len(s)
}

// NextWordEnd returns the end of the first non-space segment ending after
// offset, or len(s).
func NextWordEnd(s string, offset int) int {
	offset = clamp(s, offset)
	for _, seg := range Words(s) {
		if seg.End > offset && seg.Class != ClassSpace {
			return seg.End
		}
	}
	return len(s)
}

// PrevWordStart returns the start of the last non-space segment beginning
// before offset, or 0.
func PrevWordStart(s string, offset int) int {
	offset = clamp(s, offset)
	start := 0
	for _, seg := range Words(s) {
		if seg.Start >= offset {
			break
		}
		if seg.Class != ClassSpace {
			start = seg.Start
		}
	}
	return start
}

// PrevWordEnd returns the end of the last non-space segment ending before
// offset, or 0.
func PrevWordEnd(s string, offset int) int {
	offset = clamp(s, offset)
	end := 0
	for _, seg := range Words(s) {
		if seg.End >= offset {
			break
		}
		if seg.Class != ClassSpace {
			end = seg.End
		}
	}
	return end
}
