// Package style keeps tagged byte ranges over a buffer and moves them as the
// buffer is edited.
//
// Spans are half-open [Start, End) and may overlap. The Overlay indexes them
// in a randomized interval tree ordered by start offset and augmented with
// the largest end offset of each subtree, so point and range queries visit
// only subtrees that can hold a match. Shifting every span after an edit is
// a lazy offset applied to one subtree.
//
// On an edit that replaces Lr bytes at s with Li bytes:
//
//   - spans ending before s are unchanged
//   - spans starting after s+Lr shift by Li-Lr
//   - non-empty spans inside [s, s+Lr] are removed
//   - endpoints inside the removed text collapse to s
//   - text inserted at a span's start shifts the span, text inserted inside
//     it extends it, text inserted at its end does not
package style
