// Package grapheme locates extended grapheme cluster and word boundaries in
// UTF-8 text and measures their display width.
//
// All functions are pure and take byte offsets. Offsets below zero clamp to
// zero and offsets past the end clamp to len(s); empty text has a single
// boundary at 0.
package grapheme
