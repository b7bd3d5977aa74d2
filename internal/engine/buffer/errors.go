package buffer

import "errors"

// Errors returned by buffer operations.
var (
	// ErrInvalidPosition is returned for positions that are out of bounds
	// or fall inside a grapheme cluster.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidRange is returned for ranges whose start is after their end
	// or that extend past the buffer.
	ErrInvalidRange = errors.New("invalid range")
)
