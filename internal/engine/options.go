package engine

import (
	"github.com/dshills/textcore/internal/clipboard"
	"github.com/dshills/textcore/internal/engine/buffer"
	"github.com/dshills/textcore/internal/engine/history"
	"github.com/dshills/textcore/internal/logging"
)

// Default configuration values.
const (
	DefaultTabWidth = 8
	DefaultMaxUndo  = history.DefaultMaxDepth
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithText sets the initial content.
func WithText(text string) Option {
	return func(e *Engine) {
		e.initText = text
	}
}

// WithTabWidth sets the distance between tab stops.
func WithTabWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}

// WithExpandTabs makes InsertTab insert spaces instead of a tab character.
func WithExpandTabs(expand bool) Option {
	return func(e *Engine) {
		e.expandTabs = expand
	}
}

// WithSingleLine restricts the content to one line. Line breaks in
// inserted text are dropped and InsertNewline does nothing.
func WithSingleLine() Option {
	return func(e *Engine) {
		e.singleLine = true
	}
}

// WithNewline sets the line ending used by ExportText and the clipboard.
func WithNewline(le buffer.LineEnding) Option {
	return func(e *Engine) {
		e.lineEnding = le
	}
}

// WithMaxUndo bounds the undo history. history.Unlimited removes the bound.
func WithMaxUndo(depth int) Option {
	return func(e *Engine) {
		e.maxUndo = depth
	}
}

// WithCoalescing sets the policy that merges typing into undo steps.
func WithCoalescing(p history.Policy) Option {
	return func(e *Engine) {
		e.policy = p
		e.coalesce = true
	}
}

// WithoutCoalescing makes every edit its own undo step.
func WithoutCoalescing() Option {
	return func(e *Engine) {
		e.coalesce = false
	}
}

// WithUndoStyles records span changes made through AddSpan, RemoveSpan and
// SetSpans as undo steps.
func WithUndoStyles() Option {
	return func(e *Engine) {
		e.undoStyles = true
	}
}

// WithClipboard sets the clipboard used by Copy, Cut and Paste.
func WithClipboard(c clipboard.Clipboard) Option {
	return func(e *Engine) {
		e.clip = c
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithReplay records every operation for TakeReplay.
func WithReplay() Option {
	return func(e *Engine) {
		e.replayOn = true
	}
}

// WithReadOnly creates a read-only engine.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
