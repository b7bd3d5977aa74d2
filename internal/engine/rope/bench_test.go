package rope

import (
	"strings"
	"testing"
)

func BenchmarkInsertMiddle(b *testing.B) {
	r := FromString(strings.Repeat("the quick brown fox\n", 50000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r = r.Insert(r.Len()/2, "x")
	}
}

func BenchmarkLineStart(b *testing.B) {
	r := FromString(strings.Repeat("the quick brown fox\n", 50000))
	lines := r.LineCount()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.LineStart(i % lines)
	}
}

func BenchmarkDeleteMiddle(b *testing.B) {
	base := FromString(strings.Repeat("the quick brown fox\n", 50000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = base.Delete(base.Len()/2, base.Len()/2+100)
	}
}
