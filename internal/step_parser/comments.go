package step_parser

import (
	"strings"

	"github.com/denizgursoy/stepindex/pkg/gherkin_parser"
)

// StripComments blanks block comments and whole-line // and # comments. Every
// removed character except line breaks becomes a space, so line and column
// positions stay valid.
func StripComments(text string) string {
	out := []rune(text)

	var (
		inString rune
		inBlock  bool
		escaped  bool
	)
	for i := 0; i < len(out); i++ {
		r := out[i]
		switch {
		case inBlock:
			if r == '*' && i+1 < len(out) && out[i+1] == '/' {
				out[i], out[i+1] = ' ', ' '
				i++
				inBlock = false
				continue
			}
			if r != '\n' {
				out[i] = ' '
			}
		case inString != 0:
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == inString || (r == '\n' && inString != '`'):
				inString = 0
			}
		case r == '/' && i+1 < len(out) && out[i+1] == '*':
			out[i], out[i+1] = ' ', ' '
			i++
			inBlock = true
		case r == '\'' || r == '"' || r == '`':
			inString = r
		case (r == '/' || r == '#') && lineCommentStart(out, i):
			for ; i < len(out) && out[i] != '\n'; i++ {
				out[i] = ' '
			}
		}
	}

	return string(out)
}

// lineCommentStart reports whether a // or # comment starts at i with nothing
// but spaces before it on its line.
func lineCommentStart(text []rune, i int) bool {
	if text[i] == '/' && (i+1 >= len(text) || text[i+1] != '/') {
		return false
	}

	for j := i - 1; j >= 0 && text[j] != '\n'; j-- {
		if text[j] != ' ' && text[j] != '\t' {
			return false
		}
	}

	return true
}

// BlockComments maps the 0-based line following each /* ... */ block, skipping
// blank lines, to the text of the block without comment markers.
func BlockComments(text string) map[int]string {
	docs := make(map[int]string)
	lines := gherkin_parser.SplitLines(text)

	for i := 0; i < len(lines); i++ {
		start := strings.Index(lines[i], "/*")
		if start < 0 {
			continue
		}

		var parts []string
		end := i
		rest := lines[i][start+2:]
		for {
			if closing := strings.Index(rest, "*/"); closing >= 0 {
				parts = append(parts, rest[:closing])
				break
			}
			parts = append(parts, rest)
			end++
			if end >= len(lines) {
				break
			}
			rest = lines[end]
		}

		next := end + 1
		for next < len(lines) && strings.TrimSpace(lines[next]) == "" {
			next++
		}
		if next < len(lines) {
			if doc := cleanComment(parts); doc != "" {
				docs[next] = doc
			}
		}
		i = end
	}

	return docs
}

func cleanComment(parts []string) string {
	var cleaned []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		part = strings.TrimLeft(part, "*")
		part = strings.TrimSpace(part)
		if part != "" {
			cleaned = append(cleaned, part)
		}
	}

	return strings.Join(cleaned, "\n")
}
