package gherkin_parser

import (
	"regexp"
	"sort"
	"strings"
)

// LineMatch is a feature file line split into its Gherkin parts.
type LineMatch struct {
	Indent  string
	Keyword string
	Space   string
	Content string
}

var lineShape = regexp.MustCompile(`^(\s*)(` + keywordAlternation() + `)(\s+)(.*)$`)

func keywordAlternation() string {
	seen := make(map[string]bool)
	var keywords []string
	for _, key := range []string{"given", "when", "then", "and", "but"} {
		for _, keyword := range dialect.Keywords[key] {
			keyword = strings.TrimSpace(keyword)
			if keyword == "" || seen[keyword] {
				continue
			}
			seen[keyword] = true
			keywords = append(keywords, regexp.QuoteMeta(keyword))
		}
	}

	// longest first so a keyword never shadows a longer one sharing its prefix
	sort.Slice(keywords, func(i, j int) bool {
		if len(keywords[i]) != len(keywords[j]) {
			return len(keywords[i]) > len(keywords[j])
		}
		return keywords[i] < keywords[j]
	})

	return strings.Join(keywords, "|")
}

// MatchLine splits a line of the shape <indent><keyword><space><content>.
func MatchLine(line string) (LineMatch, bool) {
	groups := lineShape.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if groups == nil {
		return LineMatch{}, false
	}

	return LineMatch{
		Indent:  groups[1],
		Keyword: groups[2],
		Space:   groups[3],
		Content: groups[4],
	}, true
}

// ContentStart is the character offset of the step content within the line.
func (m LineMatch) ContentStart() int {
	return len(m.Indent) + len(m.Keyword) + len(m.Space)
}

// SplitLines splits a document into lines, accepting both \n and \r\n endings.
func SplitLines(document string) []string {
	lines := strings.Split(document, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}
