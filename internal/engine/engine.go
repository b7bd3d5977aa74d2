package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/textcore/internal/clipboard"
	"github.com/dshills/textcore/internal/engine/buffer"
	"github.com/dshills/textcore/internal/engine/cursor"
	"github.com/dshills/textcore/internal/engine/history"
	"github.com/dshills/textcore/internal/engine/style"
	"github.com/dshills/textcore/internal/logging"
)

// Re-export commonly used types for convenience.
type (
	// Position is a grapheme-aligned location.
	Position = buffer.Position

	// Range is an ordered pair of positions.
	Range = buffer.Range

	// Change describes one applied mutation.
	Change = buffer.Change

	// LineEnding specifies the exported line ending style.
	LineEnding = buffer.LineEnding

	// Selection is the anchor and caret of the cursor.
	Selection = cursor.Selection

	// Tag is an opaque style tag.
	Tag = style.Tag

	// SpanID identifies a style span.
	SpanID = style.SpanID

	// Span is a tagged byte range.
	Span = style.Span
)

// Re-export constants.
const (
	LineEndingLF   = buffer.LineEndingLF
	LineEndingCRLF = buffer.LineEndingCRLF
	LineEndingCR   = buffer.LineEndingCR
)

// Engine is the editing core of one input widget. It keeps the text buffer,
// style overlay, cursor and undo log consistent: every mutation either
// updates all four or none of them.
//
// An Engine is owned by a single goroutine. Change listeners must not
// mutate the engine that notifies them.
type Engine struct {
	id     uuid.UUID
	buf    *buffer.Buffer
	spans  *style.Overlay
	cur    *cursor.Cursor
	log    *history.Log
	clip   clipboard.Clipboard
	logger *logging.Logger

	// Configuration
	tabWidth   int
	expandTabs bool
	singleLine bool
	readOnly   bool
	lineEnding buffer.LineEnding
	maxUndo    int
	policy     history.Policy
	coalesce   bool
	undoStyles bool
	replayOn   bool
	initText   string

	listeners []listener
	nextLis   int
	replay    []ReplayEntry
	saved     uuid.UUID
}

type listener struct {
	id int
	fn func(Change)
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		id:         uuid.New(),
		tabWidth:   DefaultTabWidth,
		expandTabs: true,
		lineEnding: buffer.LineEndingLF,
		maxUndo:    DefaultMaxUndo,
		policy:     history.DefaultPolicy,
		coalesce:   true,
	}
	for _, opt := range opts {
		opt(e)
	}

	text := e.initText
	if e.singleLine {
		text = flatten(text)
	}
	e.buf = buffer.NewFromString(text, buffer.WithLineEnding(e.lineEnding))
	e.spans = style.New()
	e.cur = cursor.New()

	logOpts := []history.Option{history.WithPolicy(e.policy)}
	if !e.coalesce {
		logOpts = append(logOpts, history.WithoutCoalescing())
	}
	e.log = history.NewLog(e.maxUndo, logOpts...)

	if e.clip == nil {
		e.clip = clipboard.NewLocal()
	}
	if e.logger == nil {
		e.logger = logging.Nop()
	}
	e.logger = e.logger.WithComponent("engine").WithField("engine", e.id.String()[:8])
	return e
}

// NewFromReader creates an Engine holding everything r yields. The export
// line ending is detected from the content unless an option sets it.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	text := string(data)
	all := make([]Option, 0, len(opts)+2)
	all = append(all, WithNewline(buffer.DetectLineEnding(text)))
	all = append(all, opts...)
	all = append(all, WithText(text))
	return New(all...), nil
}

// flatten drops line breaks from text.
func flatten(text string) string {
	if !strings.ContainsAny(text, "\r\n") {
		return text
	}
	return strings.NewReplacer("\r\n", "", "\r", "", "\n", "").Replace(text)
}

// ============================================================================
// Read Operations
// ============================================================================

// ID returns the identifier of this engine instance.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Text returns the content with LF line breaks.
func (e *Engine) Text() string {
	return e.buf.Text()
}

// ExportText returns the content using the configured line ending.
func (e *Engine) ExportText() string {
	return e.buf.ExportText()
}

// WriteTo writes the content using the configured line ending.
func (e *Engine) WriteTo(w io.Writer) (int64, error) {
	return e.buf.WriteTo(w)
}

// Len returns the content length in bytes.
func (e *Engine) Len() int {
	return e.buf.Len()
}

// IsEmpty reports whether the content is empty.
func (e *Engine) IsEmpty() bool {
	return e.buf.IsEmpty()
}

// LineCount returns the number of lines. An empty engine has one line.
func (e *Engine) LineCount() int {
	return e.buf.LineCount()
}

// Line returns line n without its line break.
func (e *Engine) Line(n int) (string, error) {
	return e.buf.Line(n)
}

// LineStart returns the byte offset of line n.
func (e *Engine) LineStart(n int) (int, error) {
	return e.buf.LineStart(n)
}

// LineLen returns the number of grapheme clusters on line n.
func (e *Engine) LineLen(n int) (int, error) {
	return e.buf.LineLen(n)
}

// TextIn returns the text covered by r.
func (e *Engine) TextIn(r Range) (string, error) {
	return e.buf.TextIn(r)
}

// Revision returns the buffer revision, which increases with every change.
func (e *Engine) Revision() buffer.RevisionID {
	return e.buf.Revision()
}

// LineEnding returns the export line ending.
func (e *Engine) LineEnding() LineEnding {
	return e.buf.LineEnding()
}

// TabWidth returns the distance between tab stops.
func (e *Engine) TabWidth() int {
	return e.tabWidth
}

// SingleLine reports whether the engine holds a single line.
func (e *Engine) SingleLine() bool {
	return e.singleLine
}

// ReadOnly reports whether writes are refused.
func (e *Engine) ReadOnly() bool {
	return e.readOnly
}

// ============================================================================
// Coordinates
// ============================================================================

// Start returns the first position.
func (e *Engine) Start() Position {
	return e.buf.Start()
}

// End returns the position after the last grapheme.
func (e *Engine) End() Position {
	return e.buf.End()
}

// Position returns the position at (line, column).
func (e *Engine) Position(line, column int) (Position, error) {
	return e.buf.Position(line, column)
}

// PositionAtOffset returns the position at a byte offset.
func (e *Engine) PositionAtOffset(offset int) (Position, error) {
	return e.buf.PositionAtOffset(offset)
}

// OffsetAtPosition returns the byte offset of (line, column).
func (e *Engine) OffsetAtPosition(line, column int) (int, error) {
	return e.buf.OffsetAtPosition(line, column)
}

// ClampPosition returns the nearest valid position to (line, column).
func (e *Engine) ClampPosition(line, column int) Position {
	return e.buf.ClampPosition(line, column)
}

// Validate checks p against the current content.
func (e *Engine) Validate(p Position) (Position, error) {
	return e.buf.Validate(p)
}

// ============================================================================
// Change Notification
// ============================================================================

// OnChange registers fn to run after every applied change, including those
// made by undo and redo. The returned function unregisters it.
func (e *Engine) OnChange(fn func(Change)) func() {
	id := e.nextLis
	e.nextLis++
	e.listeners = append(e.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) emit(ch Change) {
	for _, l := range e.listeners {
		l.fn(ch)
	}
}

// ============================================================================
// Modification State
// ============================================================================

// MarkSaved records the current content as saved.
func (e *Engine) MarkSaved() {
	e.log.Break()
	e.saved = e.log.Top()
}

// IsModified reports whether undoable changes were made since the last
// MarkSaved or SetText.
func (e *Engine) IsModified() bool {
	return e.log.Top() != e.saved
}
