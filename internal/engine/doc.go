// Package engine provides the editing core behind textcore's input widgets.
//
// The engine package serves as the main facade, combining the text buffer,
// style overlay, cursor and undo log into one API. Every mutation keeps the
// four consistent: when an operation fails, none of them changes.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - rope: B+ tree rope for text storage (O(log n) edits)
//   - grapheme: grapheme cluster and word boundaries
//   - buffer: line and grapheme addressed positions over a rope
//   - style: interval tree of tagged spans that follows edits
//   - cursor: anchor, caret and movement
//   - history: linear undo/redo with typing coalescing
//
// # Basic Usage
//
//	e := engine.New(engine.WithText("Hello, World!"))
//
//	// Type at the end
//	e.MoveDocEnd(false)
//	e.InsertText("!")
//
//	// Replace a range
//	start, _ := e.Position(0, 7)
//	end, _ := e.Position(0, 12)
//	e.Replace(engine.Range{Start: start, End: end}, "Go") // "Hello, Go!!"
//
//	// Undo the replacement
//	e.Undo() // "Hello, World!!"
//
// # Positions
//
// A Position carries a line, a column counted in grapheme clusters and a
// byte offset. Operations reject positions that split a cluster or whose
// line and column no longer match their offset. Caret movement clamps
// instead: moving down from a long line to a short one lands at the short
// line's end.
//
// # Styles
//
// Spans tag byte ranges with caller-defined Tag values. After each edit:
//
//   - spans before the edit are unchanged
//   - spans after it shift by the change in length
//   - spans inside deleted text are removed
//   - endpoints inside deleted text collapse to the edit point
//
// # Undo
//
// Typing and backspacing single graphemes coalesce into one undo step until
// the policy cuts the run. Any cursor movement ends the run. Group makes the
// edits of a function one step.
//
// # Replay
//
// An engine created WithReplay records every operation. TakeReplay drains
// the recording and Replay applies it to a second engine, keeping both in
// step.
package engine
