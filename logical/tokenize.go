package logical

import (
	"strings"
	"unicode"
)

// Tokenize splits a shorthand value into positional tokens. Whitespace
// separates tokens only outside of parentheses, so function values like
// "calc(1px + var(--x))" stay whole. An unclosed group runs to the end of
// the value.
func Tokenize(value string) []string {
	var (
		tokens []string
		depth  int
		start  = -1
	)
	for i, r := range value {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0 && unicode.IsSpace(r):
			if start >= 0 {
				tokens = append(tokens, value[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, value[start:])
	}
	return tokens
}

// isSingleValue reports whether value has no whitespace at all.
func isSingleValue(value string) bool {
	return strings.IndexFunc(value, unicode.IsSpace) < 0
}

// isVariableOrFunction reports whether value uses var(), calc() or a
// parenthesised custom property reference.
func isVariableOrFunction(value string) bool {
	return strings.Contains(value, "var(") ||
		strings.Contains(value, "calc(") ||
		strings.Contains(value, "(--")
}
