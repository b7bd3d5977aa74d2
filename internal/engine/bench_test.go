package engine

import (
	"strings"
	"testing"
)

// ============================================================================
// Setup Helpers
// ============================================================================

func setupLargeEngine(b *testing.B, lines int) *Engine {
	b.Helper()
	var sb strings.Builder
	line := strings.Repeat("x", 80) + "\n"
	for i := 0; i < lines; i++ {
		sb.WriteString(line)
	}
	return New(WithText(sb.String()))
}

// ============================================================================
// Read Operation Benchmarks
// ============================================================================

func BenchmarkEngineLine(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = e.Line(i % 10000)
	}
}

func BenchmarkEnginePositionAtOffset(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = e.PositionAtOffset((i * 81) % e.Len())
	}
}

// ============================================================================
// Write Operation Benchmarks
// ============================================================================

func BenchmarkEngineTyping(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	p, _ := e.Position(5000, 40)
	_ = e.MoveTo(p)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.InsertChar('a')
	}
}

func BenchmarkEngineTypingWithSpans(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	for line := 0; line < 10000; line += 2 {
		start, _ := e.Position(line, 0)
		end, _ := e.Position(line, 10)
		_, _ = e.AddSpan(Range{Start: start, End: end}, Tag(line%7))
	}
	p, _ := e.Position(5000, 40)
	_ = e.MoveTo(p)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.InsertChar('a')
	}
}

func BenchmarkEngineUndoRedo(b *testing.B) {
	e := setupLargeEngine(b, 1000)
	_ = e.InsertText("hello")
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = e.Undo()
		_, _ = e.Redo()
	}
}

func BenchmarkEngineTypicalEditWorkflow(b *testing.B) {
	e := setupLargeEngine(b, 1000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.MoveDocStart(false)
		for _, r := range "func main() {}" {
			_ = e.InsertChar(r)
		}
		e.MoveWordLeft(false)
		_, _ = e.DeletePrevWord()
		_, _ = e.Undo()
	}
}
