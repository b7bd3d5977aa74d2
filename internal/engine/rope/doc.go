// Package rope stores editable text as an immutable B+ tree of bounded chunks.
//
// Every node caches a Summary (byte count and newline count) for its subtree,
// so byte and line addressing descend the tree in O(log n) instead of scanning
// the text. Insert, Delete, Split and Concat return new ropes that share
// untouched subtrees with the original.
//
// Basic usage:
//
//	r := rope.FromString("hello\nworld")
//	r = r.Insert(5, ",")      // "hello,\nworld"
//	start := r.LineStart(1)   // 7
//	line := r.Line(1)         // "world"
//
// Offsets are byte offsets into UTF-8 text. The rope never splits a chunk in
// the middle of a UTF-8 sequence; keeping offsets on grapheme boundaries is
// the caller's job.
package rope
