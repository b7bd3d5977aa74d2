// Package view builds the read-only picture a renderer draws: lines of
// display cells carrying style tags and selection flags, a tcell palette
// to turn those into terminal styles, and a line-number gutter.
//
// Nothing here mutates the engine.
package view

import (
	"unicode/utf8"

	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/engine/grapheme"
)

// Cell is one display cell. A tab expands to several cells that share
// the tab's offset.
type Cell struct {
	Text     string
	Width    int
	Offset   int // byte offset of the source grapheme
	Tags     []engine.Tag
	Selected bool
}

// Line is one laid out document line.
type Line struct {
	Number int // 0-based
	Cells  []Cell
	// Caret is the index of the cell the caret sits before, len(Cells)
	// at the end of the line, or -1 if the caret is on another line.
	Caret int
}

// Options controls layout.
type Options struct {
	TabWidth int
	// ShowCtrl renders control characters as visible symbols. Otherwise
	// they take no space.
	ShowCtrl bool
}

// Lines lays out up to count lines starting at first.
func Lines(e *engine.Engine, first, count int, opts Options) []Line {
	if opts.TabWidth <= 0 {
		opts.TabWidth = e.TabWidth()
	}
	last := min(first+count, e.LineCount())
	if first < 0 || first >= last {
		return nil
	}

	sel := e.SelectionRange()
	caret := e.Caret()
	out := make([]Line, 0, last-first)
	for n := first; n < last; n++ {
		out = append(out, layoutLine(e, n, sel, caret, opts))
	}
	return out
}

func layoutLine(e *engine.Engine, n int, sel engine.Range, caret engine.Position, opts Options) Line {
	text, _ := e.Line(n)
	start, _ := e.LineStart(n)
	line := Line{Number: n, Caret: -1}

	from, _ := e.PositionAtOffset(start)
	to, _ := e.PositionAtOffset(start + len(text))
	spans := e.SpansIn(engine.Range{Start: from, End: to})

	col := 0
	for _, c := range grapheme.Split(text) {
		off := start + c.Offset
		if caret.Offset == off {
			line.Caret = len(line.Cells)
		}
		cell := Cell{
			Text:     c.Text,
			Width:    c.Width,
			Offset:   off,
			Tags:     tagsAt(spans, off),
			Selected: off >= sel.Start.Offset && off < sel.End.Offset,
		}

		if c.Text == "\t" {
			n := opts.TabWidth - col%opts.TabWidth
			cell.Text, cell.Width = " ", 1
			for i := 0; i < n; i++ {
				line.Cells = append(line.Cells, cell)
			}
			col += n
			continue
		}
		if r, size := utf8.DecodeRuneInString(c.Text); size == len(c.Text) && isControl(r) {
			cell.Text, cell.Width = "", 0
			if opts.ShowCtrl {
				cell.Text, cell.Width = ControlSymbol(r), 1
			}
		}
		line.Cells = append(line.Cells, cell)
		col += cell.Width
	}
	if caret.Line == n && line.Caret < 0 {
		line.Caret = len(line.Cells)
	}
	return line
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}

// ControlSymbol returns the Unicode control picture for a C0 control
// character or DEL, and the character itself otherwise.
func ControlSymbol(r rune) string {
	switch {
	case r < 0x20:
		return string(0x2400 + r)
	case r == 0x7f:
		return "␡"
	default:
		return string(r)
	}
}

func tagsAt(spans []engine.Span, off int) []engine.Tag {
	var tags []engine.Tag
	for _, s := range spans {
		if s.Start > off {
			break
		}
		if off < s.End {
			tags = append(tags, s.Tag)
		}
	}
	return tags
}

// Width returns the display width of the line.
func (l Line) Width() int {
	w := 0
	for _, c := range l.Cells {
		w += c.Width
	}
	return w
}

// Text returns the displayed text of the line.
func (l Line) Text() string {
	var b []byte
	for _, c := range l.Cells {
		b = append(b, c.Text...)
	}
	return string(b)
}
