package engine

import (
	"errors"

	"github.com/dshills/textcore/internal/engine/buffer"
	"github.com/dshills/textcore/internal/engine/style"
)

// Errors returned by engine operations.
var (
	// ErrInvalidPosition indicates a position that is out of bounds, splits
	// a grapheme cluster, or no longer matches the content.
	ErrInvalidPosition = buffer.ErrInvalidPosition

	// ErrInvalidRange indicates a range whose start is after its end or
	// that leaves the buffer.
	ErrInvalidRange = buffer.ErrInvalidRange

	// ErrInvalidSpan indicates a style span with crossed endpoints.
	ErrInvalidSpan = style.ErrInvalidSpan

	// ErrReadOnly indicates a write on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")
)
