package view

import (
	"strconv"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/message"
)

// Gutter formats line numbers.
type Gutter struct {
	// Relative shows the distance to the caret line, which shows 0.
	Relative bool
	// MinWidth is the smallest number width. Zero means 3.
	MinWidth int
	// Printer formats numbers with locale digit grouping. Nil prints
	// plain digits.
	Printer *message.Printer
}

func (g Gutter) format(n int) string {
	if g.Printer != nil {
		return g.Printer.Sprintf("%d", n)
	}
	return strconv.Itoa(n)
}

// Label returns the unpadded label of a 0-based line.
func (g Gutter) Label(line, caretLine int) string {
	if g.Relative {
		d := line - caretLine
		if d < 0 {
			d = -d
		}
		return g.format(d)
	}
	return g.format(line + 1)
}

// Width returns the number width needed for lines [first, first+count).
func (g Gutter) Width(first, count, caretLine int) int {
	minWidth := g.MinWidth
	if minWidth <= 0 {
		minWidth = 3
	}
	widest := first + count
	if g.Relative {
		widest = max(caretLine-first, first+count-1-caretLine)
	}
	return max(runewidth.StringWidth(g.format(max(widest, 0))), minWidth)
}

// Render returns right-aligned labels for lines [first, first+count),
// clipped to lineCount.
func (g Gutter) Render(first, count, caretLine, lineCount int) []string {
	count = min(count, lineCount-first)
	if first < 0 || count <= 0 {
		return nil
	}
	w := g.Width(first, count, caretLine)
	out := make([]string, count)
	for i := range out {
		out[i] = runewidth.FillLeft(g.Label(first+i, caretLine), w)
	}
	return out
}
