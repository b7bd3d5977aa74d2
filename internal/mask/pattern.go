package mask

import "github.com/dshills/textcore/internal/locale"

// Compile builds a generic mask. In the pattern 0 is a required digit, 9
// an optional digit, # a digit or sign, L and l a required or optional
// letter, A and a a required or optional letter or digit, H a hex digit,
// C and c a required or optional character. A backslash quotes the next
// rune; every other rune is a literal.
func Compile(pattern string) (*Field, error) {
	return CompileLocale(pattern, locale.Default())
}

// CompileLocale is Compile with a locale for the field.
func CompileLocale(pattern string, tab locale.Table) (*Field, error) {
	src := []rune(pattern)
	var (
		secs    []section
		lit     []rune
		classes []class
	)
	flushLit := func() {
		if len(lit) > 0 {
			secs = append(secs, &literal{runes: lit})
			lit = nil
		}
	}
	flushCells := func() {
		if len(classes) > 0 {
			secs = append(secs, newCells(classes))
			classes = nil
		}
	}

	for i := 0; i < len(src); i++ {
		r := src[i]
		if r == '\\' {
			if i+1 == len(src) {
				return nil, &PatternError{Pattern: pattern, Offset: i, Reason: "trailing backslash"}
			}
			flushCells()
			i++
			lit = append(lit, src[i])
			continue
		}
		if c, ok := classOf[r]; ok {
			flushLit()
			classes = append(classes, c)
			continue
		}
		flushCells()
		lit = append(lit, r)
	}
	flushLit()
	flushCells()

	editable := false
	for _, s := range secs {
		if s.kind() != KindLiteral {
			editable = true
		}
	}
	if !editable {
		return nil, &PatternError{Pattern: pattern, Offset: 0, Reason: "no editable cells"}
	}
	f := newField(fieldPattern, tab)
	f.build(secs...)
	return f, nil
}
