package buffer

import (
	"testing"

	"github.com/dshills/textcore/internal/engine/grapheme"
)

// FuzzPositions checks that every position the buffer hands out after an
// edit sits on a grapheme boundary and round-trips through its offset.
func FuzzPositions(f *testing.F) {
	f.Add("hello\nworld", 3, "é")
	f.Add("🇯🇵🇺🇸", 4, "\U0001F1EF")
	f.Add("", 0, "a\r\nb")

	f.Fuzz(func(t *testing.T, text string, at int, insert string) {
		b := NewFromString(text)
		p := b.Floor(at)
		if _, err := b.Insert(p, insert); err != nil {
			t.Fatalf("Insert at floor position %v: %v", p, err)
		}

		content := b.Text()
		for off := 0; off <= b.Len(); off++ {
			q := b.Floor(off)
			if q.Offset > off {
				t.Fatalf("Floor(%d) = %v beyond offset", off, q)
			}
			back, err := b.PositionAtOffset(q.Offset)
			if err != nil || back != q {
				t.Fatalf("Floor(%d) = %v does not round-trip: %v, %v", off, q, back, err)
			}
			lineStart, _ := b.LineStart(q.Line)
			line, _ := b.Line(q.Line)
			if !grapheme.IsBoundary(line, q.Offset-lineStart) {
				t.Fatalf("position %v splits a grapheme in %q", q, content)
			}
		}
	})
}
