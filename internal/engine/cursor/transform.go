package cursor

import "github.com/dshills/textcore/internal/engine/buffer"

// TransformOffset maps an offset through a change.
//
// Transformation rules:
//   - at or before the edit start: unchanged
//   - inside the removed text: moves to the edit start
//   - at or after the end of the removed text: shifts by the change's delta
func TransformOffset(offset int, ch buffer.Change) int {
	switch {
	case offset <= ch.Start:
		return offset
	case offset < ch.OldEnd:
		return ch.Start
	default:
		return offset + ch.Delta()
	}
}

// TransformPosition maps p through ch and snaps the result to the nearest
// grapheme boundary at or before it in b.
func TransformPosition(b Buffer, p buffer.Position, ch buffer.Change) buffer.Position {
	return b.Floor(TransformOffset(p.Offset, ch))
}
