package buffer

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dshills/textcore/internal/engine/grapheme"
	"github.com/dshills/textcore/internal/engine/rope"
)

// Buffer is an editable text store addressed by grapheme-aligned positions.
// A Buffer is owned by a single editor and is not safe for concurrent use.
type Buffer struct {
	rope       rope.Rope
	lines      []*lineInfo
	revision   RevisionID
	lineEnding LineEnding
}

// lineInfo caches the grapheme boundaries of one line. A nil bounds slice
// means every byte offset of the line is a boundary.
type lineInfo struct {
	start  int
	text   string
	bounds []int
}

func (li *lineInfo) clusters() int {
	if li.bounds == nil {
		return len(li.text)
	}
	return len(li.bounds) - 1
}

// offsetOf returns the line-relative offset of column col.
func (li *lineInfo) offsetOf(col int) int {
	if li.bounds == nil {
		return col
	}
	return li.bounds[col]
}

// columnOf returns the column at line-relative offset rel, and whether rel
// is a boundary.
func (li *lineInfo) columnOf(rel int) (int, bool) {
	if li.bounds == nil {
		return rel, rel >= 0 && rel <= len(li.text)
	}
	i := sort.SearchInts(li.bounds, rel)
	return i, i < len(li.bounds) && li.bounds[i] == rel
}

// floorColumn returns the last column whose offset is <= rel.
func (li *lineInfo) floorColumn(rel int) int {
	if li.bounds == nil {
		return min(max(rel, 0), len(li.text))
	}
	i := sort.SearchInts(li.bounds, rel+1) - 1
	return max(i, 0)
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{lineEnding: LineEndingLF}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromString creates a buffer holding s.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.rope = rope.FromString(normalize(s))
	return b
}

// NewFromReader creates a buffer from everything r yields.
func NewFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read buffer: %w", err)
	}
	return NewFromString(string(data), opts...), nil
}

// normalize folds line breaks to LF and replaces invalid UTF-8.
func normalize(s string) string {
	if strings.IndexByte(s, '\r') >= 0 {
		s = strings.ReplaceAll(s, "\r\n", "\n")
		s = strings.ReplaceAll(s, "\r", "\n")
	}
	return strings.ToValidUTF8(s, "\uFFFD")
}

// Normalize returns s as the buffer would store it.
func Normalize(s string) string {
	return normalize(s)
}

// Read operations

// Text returns the full content with LF line breaks.
func (b *Buffer) Text() string {
	return b.rope.String()
}

// ExportText returns the content using the configured line ending.
func (b *Buffer) ExportText() string {
	if b.lineEnding == LineEndingLF {
		return b.rope.String()
	}
	return strings.ReplaceAll(b.rope.String(), "\n", b.lineEnding.Sequence())
}

// WriteTo writes the content using the configured line ending.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	if b.lineEnding == LineEndingLF {
		return b.rope.WriteTo(w)
	}
	n, err := io.WriteString(w, b.ExportText())
	return int64(n), err
}

// Len returns the content length in bytes.
func (b *Buffer) Len() int {
	return b.rope.Len()
}

// IsEmpty reports whether the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return b.rope.IsEmpty()
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	return b.rope.LineCount()
}

// LineEnding returns the export line ending.
func (b *Buffer) LineEnding() LineEnding {
	return b.lineEnding
}

// Revision returns the current revision.
func (b *Buffer) Revision() RevisionID {
	return b.revision
}

// Line returns the text of line n without its line break.
func (b *Buffer) Line(n int) (string, error) {
	li, err := b.line(n)
	if err != nil {
		return "", err
	}
	return li.text, nil
}

// LineStart returns the offset where line n begins.
func (b *Buffer) LineStart(n int) (int, error) {
	li, err := b.line(n)
	if err != nil {
		return 0, err
	}
	return li.start, nil
}

// LineLen returns the number of grapheme clusters on line n.
func (b *Buffer) LineLen(n int) (int, error) {
	li, err := b.line(n)
	if err != nil {
		return 0, err
	}
	return li.clusters(), nil
}

// line returns the cached boundary table of line n, building it on demand.
func (b *Buffer) line(n int) (*lineInfo, error) {
	if n < 0 || n >= b.rope.LineCount() {
		return nil, fmt.Errorf("line %d of %d: %w", n, b.rope.LineCount(), ErrInvalidPosition)
	}
	if n < len(b.lines) && b.lines[n] != nil {
		return b.lines[n], nil
	}

	start := b.rope.LineStart(n)
	text := b.rope.Slice(start, b.rope.LineEnd(n))
	li := &lineInfo{start: start, text: text}
	if grapheme.Count(text) != len(text) {
		li.bounds = grapheme.Boundaries(text)
	}

	for len(b.lines) <= n {
		b.lines = append(b.lines, nil)
	}
	b.lines[n] = li
	return li, nil
}

// invalidate drops cached lines at or after line.
func (b *Buffer) invalidate(line int) {
	if line < len(b.lines) {
		clear(b.lines[line:])
		b.lines = b.lines[:line]
	}
}

// Slice returns the text in the byte range [start, end). Both ends must be
// grapheme boundaries.
func (b *Buffer) Slice(start, end int) (string, error) {
	if err := b.checkSpan(start, end); err != nil {
		return "", err
	}
	return b.rope.Slice(start, end), nil
}

// TextIn returns the text covered by r.
func (b *Buffer) TextIn(r Range) (string, error) {
	if err := b.checkRange(r); err != nil {
		return "", err
	}
	return b.rope.Slice(r.Start.Offset, r.End.Offset), nil
}

// Coordinate conversion

// Start returns the first position of the buffer.
func (b *Buffer) Start() Position {
	return Position{}
}

// End returns the position after the last grapheme.
func (b *Buffer) End() Position {
	last := b.rope.LineCount() - 1
	li, _ := b.line(last)
	return Position{Line: last, Column: li.clusters(), Offset: b.rope.Len()}
}

// Position returns the position at (line, column).
func (b *Buffer) Position(line, column int) (Position, error) {
	li, err := b.line(line)
	if err != nil {
		return Position{}, err
	}
	if column < 0 || column > li.clusters() {
		return Position{}, fmt.Errorf("column %d on line %d: %w", column, line, ErrInvalidPosition)
	}
	return Position{Line: line, Column: column, Offset: li.start + li.offsetOf(column)}, nil
}

// OffsetAtPosition returns the byte offset of (line, column).
func (b *Buffer) OffsetAtPosition(line, column int) (int, error) {
	p, err := b.Position(line, column)
	if err != nil {
		return 0, err
	}
	return p.Offset, nil
}

// PositionAtOffset returns the position at a byte offset. The offset must be
// a grapheme boundary within [0, Len].
func (b *Buffer) PositionAtOffset(offset int) (Position, error) {
	if offset < 0 || offset > b.rope.Len() {
		return Position{}, fmt.Errorf("offset %d of %d: %w", offset, b.rope.Len(), ErrInvalidPosition)
	}
	line := b.rope.LineAt(offset)
	li, err := b.line(line)
	if err != nil {
		return Position{}, err
	}
	col, ok := li.columnOf(offset - li.start)
	if !ok {
		return Position{}, fmt.Errorf("offset %d splits a grapheme: %w", offset, ErrInvalidPosition)
	}
	return Position{Line: line, Column: col, Offset: offset}, nil
}

// Validate checks that p still denotes a boundary of the current content and
// that its line and column agree with its offset.
func (b *Buffer) Validate(p Position) (Position, error) {
	q, err := b.PositionAtOffset(p.Offset)
	if err != nil {
		return Position{}, err
	}
	if q != p {
		return Position{}, fmt.Errorf("stale position %s, want %s: %w", p, q, ErrInvalidPosition)
	}
	return q, nil
}

// IsBoundary reports whether offset is a valid position.
func (b *Buffer) IsBoundary(offset int) bool {
	_, err := b.PositionAtOffset(offset)
	return err == nil
}

// ClampPosition returns the nearest valid position to (line, column): the
// line is clamped to the buffer and the column to the line's length.
func (b *Buffer) ClampPosition(line, column int) Position {
	line = min(max(line, 0), b.rope.LineCount()-1)
	li, _ := b.line(line)
	column = min(max(column, 0), li.clusters())
	return Position{Line: line, Column: column, Offset: li.start + li.offsetOf(column)}
}

// Floor returns the last valid position at or before offset, clamping
// offsets outside the buffer.
func (b *Buffer) Floor(offset int) Position {
	offset = min(max(offset, 0), b.rope.Len())
	line := b.rope.LineAt(offset)
	li, _ := b.line(line)
	col := li.floorColumn(offset - li.start)
	return Position{Line: line, Column: col, Offset: li.start + li.offsetOf(col)}
}

// Ceil returns the first valid position at or after offset.
func (b *Buffer) Ceil(offset int) Position {
	p := b.Floor(offset)
	if p.Offset >= offset {
		return p
	}
	return b.Next(p)
}

// Next returns the position one grapheme after p, moving to the start of
// the following line at a line end. The end of the buffer maps to itself.
func (b *Buffer) Next(p Position) Position {
	li, err := b.line(p.Line)
	if err != nil {
		return b.End()
	}
	if p.Column < li.clusters() {
		return Position{Line: p.Line, Column: p.Column + 1, Offset: li.start + li.offsetOf(p.Column+1)}
	}
	if p.Line+1 < b.rope.LineCount() {
		return Position{Line: p.Line + 1, Offset: li.start + len(li.text) + 1}
	}
	return p
}

// Prev returns the position one grapheme before p, moving to the end of
// the preceding line at a line start. The start maps to itself.
func (b *Buffer) Prev(p Position) Position {
	if p.Column > 0 {
		li, err := b.line(p.Line)
		if err != nil {
			return Position{}
		}
		col := min(p.Column-1, li.clusters())
		return Position{Line: p.Line, Column: col, Offset: li.start + li.offsetOf(col)}
	}
	if p.Line == 0 {
		return Position{}
	}
	prev, _ := b.line(p.Line - 1)
	return Position{Line: p.Line - 1, Column: prev.clusters(), Offset: prev.start + len(prev.text)}
}

func (b *Buffer) checkOffset(offset int) error {
	_, err := b.PositionAtOffset(offset)
	return err
}

func (b *Buffer) checkSpan(start, end int) error {
	if start > end || start < 0 || end > b.rope.Len() {
		return fmt.Errorf("[%d, %d) in buffer of %d bytes: %w", start, end, b.rope.Len(), ErrInvalidRange)
	}
	if err := b.checkOffset(start); err != nil {
		return err
	}
	return b.checkOffset(end)
}

func (b *Buffer) checkRange(r Range) error {
	if r.End.Before(r.Start) {
		return fmt.Errorf("range %s: %w", r, ErrInvalidRange)
	}
	if _, err := b.Validate(r.Start); err != nil {
		return err
	}
	if _, err := b.Validate(r.End); err != nil {
		return err
	}
	return nil
}

// Write operations

// Insert inserts text at p.
func (b *Buffer) Insert(p Position, text string) (Change, error) {
	if _, err := b.Validate(p); err != nil {
		return Change{}, err
	}
	return b.apply(p.Offset, p.Offset, text), nil
}

// Delete removes the text covered by r.
func (b *Buffer) Delete(r Range) (Change, error) {
	if err := b.checkRange(r); err != nil {
		return Change{}, err
	}
	return b.apply(r.Start.Offset, r.End.Offset, ""), nil
}

// Replace replaces the text covered by r with text.
func (b *Buffer) Replace(r Range, text string) (Change, error) {
	if err := b.checkRange(r); err != nil {
		return Change{}, err
	}
	return b.apply(r.Start.Offset, r.End.Offset, text), nil
}

// ReplaceSpan replaces the byte range [start, end) with text. Both ends must
// be grapheme boundaries.
func (b *Buffer) ReplaceSpan(start, end int, text string) (Change, error) {
	if err := b.checkSpan(start, end); err != nil {
		return Change{}, err
	}
	return b.apply(start, end, text), nil
}

// ReplaceBytes replaces the byte range [start, end) with text without
// requiring grapheme boundaries. Reversing an insertion that merged with a
// neighbouring cluster needs it; everything else should use ReplaceSpan.
func (b *Buffer) ReplaceBytes(start, end int, text string) (Change, error) {
	if start > end || start < 0 || end > b.rope.Len() {
		return Change{}, fmt.Errorf("[%d, %d) in buffer of %d bytes: %w", start, end, b.rope.Len(), ErrInvalidRange)
	}
	return b.apply(start, end, text), nil
}

// SetText replaces the entire content.
func (b *Buffer) SetText(text string) Change {
	return b.apply(0, b.rope.Len(), text)
}

// apply performs a validated edit.
func (b *Buffer) apply(start, end int, text string) Change {
	text = normalize(text)
	ch := Change{
		Start:       start,
		OldEnd:      end,
		NewEnd:      start + len(text),
		OldText:     b.rope.Slice(start, end),
		NewText:     text,
		FirstLine:   b.rope.LineAt(start),
		OldLastLine: b.rope.LineAt(end),
	}
	if ch.IsNoOp() {
		ch.NewLastLine = ch.OldLastLine
		ch.Revision = b.revision
		return ch
	}

	b.rope = b.rope.Replace(start, end, text)
	b.revision++
	b.invalidate(ch.FirstLine)

	ch.NewLastLine = ch.FirstLine + strings.Count(text, "\n")
	ch.Revision = b.revision
	return ch
}
