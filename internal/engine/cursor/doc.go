// Package cursor provides the caret and selection of an editor.
//
// Selections use an anchor/head model where:
//   - Anchor: the position where the selection started
//   - Head: the caret, where typing happens
//
// When Anchor == Head there is no selected text. Every position held by a
// Cursor is a grapheme boundary of its buffer. Horizontal motion steps one
// grapheme cluster at a time; vertical motion aims for a remembered goal
// column and clamps to shorter lines.
//
// After a buffer mutation Transform moves both ends: a position inside the
// removed text collapses to the edit point and a position after the edit
// shifts with it.
package cursor
