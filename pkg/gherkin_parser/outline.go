package gherkin_parser

import (
	"regexp"
	"strings"
)

var outlinePlaceholder = regexp.MustCompile(`<([^<>]*)>`)

// HasOutlinePlaceholders reports whether line contains <name> placeholders.
func HasOutlinePlaceholders(line string) bool {
	return outlinePlaceholder.MatchString(line)
}

// OutlineVars returns the values of the first data row of the Examples table
// belonging to the 0-based lineNumber, keyed by header names. The nearest table
// after the line is used; when there is none, the nearest one before it.
func OutlineVars(document string, lineNumber int) map[string]string {
	lines := SplitLines(document)

	tables := examplesLines(lines)
	if len(tables) == 0 {
		return map[string]string{}
	}

	// Examples close an outline, so a table above the line belongs to an
	// earlier outline. Fall back to it only when nothing follows.
	chosen := -1
	for _, i := range tables {
		if i > lineNumber {
			chosen = i
			break
		}
	}
	if chosen < 0 {
		for _, i := range tables {
			if i < lineNumber {
				chosen = i
			}
		}
	}
	if chosen < 0 {
		return map[string]string{}
	}

	return examplesVars(lines, chosen)
}

func examplesLines(lines []string) []int {
	var found []int
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		for _, keyword := range dialect.Keywords["examples"] {
			if strings.HasPrefix(trimmed, keyword+":") {
				found = append(found, i)
				break
			}
		}
	}

	return found
}

func examplesVars(lines []string, examplesLine int) map[string]string {
	vars := make(map[string]string)

	var rows [][]string
	for i := examplesLine + 1; i < len(lines) && len(rows) < 2; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		cells, ok := tableCells(trimmed)
		if !ok {
			break
		}
		rows = append(rows, cells)
	}

	if len(rows) < 2 {
		return vars
	}

	for i, name := range rows[0] {
		if i < len(rows[1]) && rows[1][i] != "" {
			vars[name] = rows[1][i]
		}
	}

	return vars
}

func tableCells(row string) ([]string, bool) {
	if !strings.HasPrefix(row, "|") || !strings.HasSuffix(row, "|") || len(row) < 2 {
		return nil, false
	}

	cells := strings.Split(row[1:len(row)-1], "|")
	for i, cell := range cells {
		cells[i] = strings.TrimSpace(cell)
	}

	return cells, true
}

// SubstituteOutline replaces the known <name> placeholders of line with their
// values, once as they are and once wrapped in double quotes.
func SubstituteOutline(line string, vars map[string]string) (plain string, quoted string) {
	plain = outlinePlaceholder.ReplaceAllStringFunc(line, func(m string) string {
		if value, ok := vars[m[1:len(m)-1]]; ok {
			return value
		}
		return m
	})
	quoted = outlinePlaceholder.ReplaceAllStringFunc(line, func(m string) string {
		if value, ok := vars[m[1:len(m)-1]]; ok {
			return `"` + value + `"`
		}
		return m
	})

	return plain, quoted
}
