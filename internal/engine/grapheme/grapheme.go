package grapheme

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Cluster is one grapheme cluster located in a string.
type Cluster struct {
	Text   string
	Offset int
	Width  int
}

// End returns the offset just past the cluster.
func (c Cluster) End() int {
	return c.Offset + len(c.Text)
}

// simple reports whether every byte of s is its own cluster.
func simple(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 || s[i] == '\r' {
			return false
		}
	}
	return true
}

func clamp(s string, offset int) int {
	return min(max(offset, 0), len(s))
}

// Floor returns the last boundary at or before offset.
func Floor(s string, offset int) int {
	offset = clamp(s, offset)
	if offset == len(s) || simple(s) {
		return offset
	}
	pos, state := 0, -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		if pos+len(cluster) > offset {
			return pos
		}
		pos += len(cluster)
	}
	return pos
}

// Ceil returns the first boundary at or after offset.
func Ceil(s string, offset int) int {
	f := Floor(s, offset)
	if f == clamp(s, offset) {
		return f
	}
	return Next(s, f)
}

// Next returns the first boundary strictly after offset, or len(s).
func Next(s string, offset int) int {
	offset = Floor(s, offset)
	if offset >= len(s) {
		return len(s)
	}
	if simple(s) {
		return offset + 1
	}
	cluster, _, _, _ := uniseg.StepString(s[offset:], -1)
	return offset + len(cluster)
}

// Prev returns the last boundary strictly before offset, or 0.
func Prev(s string, offset int) int {
	offset = clamp(s, offset)
	if offset == 0 {
		return 0
	}
	if simple(s) {
		return offset - 1
	}
	return Floor(s, offset-1)
}

// IsBoundary reports whether offset lies on a cluster boundary of s.
// Offsets outside [0, len(s)] are never boundaries.
func IsBoundary(s string, offset int) bool {
	if offset < 0 || offset > len(s) {
		return false
	}
	return Floor(s, offset) == offset
}

// Count returns the number of clusters in s.
func Count(s string) int {
	if simple(s) {
		return len(s)
	}
	return uniseg.GraphemeClusterCount(s)
}

// Width returns the display width of s in terminal cells.
func Width(s string) int {
	return uniseg.StringWidth(s)
}

// Split returns the clusters of s with their offsets and widths.
func Split(s string) []Cluster {
	if s == "" {
		return nil
	}
	out := make([]Cluster, 0, len(s))
	pos, state := 0, -1
	rest := s
	for len(rest) > 0 {
		var (
			cluster    string
			boundaries int
		)
		cluster, rest, boundaries, state = uniseg.StepString(rest, state)
		out = append(out, Cluster{
			Text:   cluster,
			Offset: pos,
			Width:  boundaries >> uniseg.ShiftWidth,
		})
		pos += len(cluster)
	}
	return out
}

// Boundaries returns every boundary offset of s, including 0 and len(s).
func Boundaries(s string) []int {
	if simple(s) {
		out := make([]int, len(s)+1)
		for i := range out {
			out[i] = i
		}
		return out
	}
	out := make([]int, 1, len(s)+1)
	pos, state := 0, -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		pos += len(cluster)
		out = append(out, pos)
	}
	return out
}

// Truncate returns the longest prefix of s holding at most n clusters.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if simple(s) {
		return s[:min(n, len(s))]
	}
	pos, state := 0, -1
	rest := s
	for ; n > 0 && len(rest) > 0; n-- {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		pos += len(cluster)
	}
	return s[:pos]
}

// First returns the first cluster of s.
func First(s string) string {
	if s == "" {
		return ""
	}
	cluster, _, _, _ := uniseg.StepString(s, -1)
	return cluster
}

// IsSpace reports whether every rune in cluster is Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	return strings.IndexFunc(cluster, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}

// IsPunct reports whether the cluster starts with punctuation or a symbol.
func IsPunct(cluster string) bool {
	for _, r := range cluster {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	}
	return false
}

// Class groups clusters for word-wise motion.
type Class int

const (
	// ClassSpace is whitespace.
	ClassSpace Class = iota
	// ClassPunct is punctuation and symbols.
	ClassPunct
	// ClassWord is everything else.
	ClassWord
)

// ClassOf returns the class of a cluster.
func ClassOf(cluster string) Class {
	switch {
	case IsSpace(cluster):
		return ClassSpace
	case IsPunct(cluster):
		return ClassPunct
	default:
		return ClassWord
	}
}
