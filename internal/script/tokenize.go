package script

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Tokenize splits a script line into words. Words are separated by
// spaces; a word starting with a double quote is a Go string literal, so
// "a b\n" is one word holding a newline. A line starting with # is empty.
func Tokenize(line string) ([]string, error) {
	var words []string
	rest := strings.TrimLeftFunc(line, unicode.IsSpace)
	if strings.HasPrefix(rest, "#") {
		return nil, nil
	}
	for rest != "" {
		if rest[0] == '"' {
			q, err := strconv.QuotedPrefix(rest)
			if err != nil {
				return nil, fmt.Errorf("bad quoted word %s: %w", rest, err)
			}
			w, _ := strconv.Unquote(q)
			words = append(words, w)
			rest = rest[len(q):]
		} else {
			end := strings.IndexFunc(rest, unicode.IsSpace)
			if end < 0 {
				end = len(rest)
			}
			words = append(words, rest[:end])
			rest = rest[end:]
		}
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	}
	return words, nil
}
