// Package history provides linear undo/redo for the editing core.
//
// # Records
//
// A Record captures one logical edit with enough state to reverse it:
//   - the text edits, each with the removed and inserted text
//   - the cursor state before and after
//   - the before and after state of every style span it touched
//
// The Log does not touch the buffer itself. Undo and Redo replay a record
// against a Target, which the editor implements.
//
// # Coalescing
//
// Consecutive single-grapheme typing at adjoining positions merges into one
// record, as do runs of backspaces. A Policy bounds the run length and
// decides where word or whitespace boundaries close a run:
//
//	log := history.NewLog(1000, history.WithPolicy(history.Policy{
//	    MaxRun:   32,
//	    Boundary: history.BoundaryWhitespace,
//	}))
//
// Any other record, an explicit Break, Undo and Redo all close the run.
//
// # Grouping
//
// Records made between BeginGroup and EndGroup collapse into a single undo
// step.
package history
