// Package mask implements format-constrained editing of structured values.
//
// A Field is compiled from a pattern (Compile), a date/time layout (Date),
// or numeric options (Integer, Decimal, Number). It is an ordered list of
// sections, each of a fixed display width:
//
//	(555) 123-4567     literal "(", text cells, literal ") ", ...
//	12/31/2024         month digits, literal "/", day digits, ...
//	   -1,234.50       calculator integer, literal ".", fraction cells
//
// Keystrokes are applied at a caret position measured in display runes.
// Each keystroke is accepted, skipped over a matching literal, turned into a
// separator jump, or rejected with ErrRejectedKeystroke. Rejections leave
// the field unchanged.
//
// Values are only produced by Commit. A field that cannot be parsed returns
// a *FormatError naming the offending section and reverts to its last
// committed state.
package mask
