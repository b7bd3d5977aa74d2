// Package buffer provides the editable text store of the editing core.
//
// A Buffer keeps its content in a rope and addresses it two ways: by byte
// offset and by Position, a (line, column) pair where the column counts
// grapheme clusters. Every position accepted or returned by the buffer lies
// on a grapheme boundary; a mid-cluster or out-of-range argument fails with
// ErrInvalidPosition and leaves the buffer untouched.
//
// Content is stored with LF line breaks. Inserted CRLF and CR are folded to
// LF and invalid UTF-8 is replaced with U+FFFD, so offsets returned by Insert
// refer to the stored text. The configured LineEnding applies on export.
//
// Basic usage:
//
//	buf := buffer.NewFromString("Hello, World!")
//	p, _ := buf.Position(0, 7)
//	ch, _ := buf.Insert(p, "Beautiful ") // "Hello, Beautiful World!"
//	_ = ch.Lines()                       // [0]
//
// Each successful mutation returns a Change describing the edited byte span
// and the affected lines. Per-line grapheme boundary tables are cached and
// dropped from the first edited line onward.
package buffer
