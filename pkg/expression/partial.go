package expression

import "strings"

// PartialSource derives the prefix-tolerant pattern from a full pattern source.
// The source is split into tokens on spaces outside groups and character
// classes; every token may be cut short by the end of the line.
func PartialSource(source string) string {
	tokens := tokenize(stripAnchors(source))
	for i, t := range tokens {
		tokens[i] = "(?:" + t + "|$)"
	}

	return "^" + strings.Join(tokens, "(?: |$)")
}

func tokenize(src string) []string {
	var (
		tokens  []string
		current strings.Builder
		depth   int
		inClass bool
		escaped bool
	)

	for _, r := range src {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case inClass:
			if r == ']' {
				inClass = false
			}
		case r == '[':
			inClass = true
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case r == ' ' && depth == 0:
			tokens = append(tokens, current.String())
			current.Reset()
			continue
		}
		current.WriteRune(r)
	}

	return append(tokens, current.String())
}
