package gherkin_parser

import (
	"strings"

	gherkin "github.com/cucumber/gherkin/go/v26"
)

// GherkinType is the semantic category of a step keyword. The numeric values
// are part of the precomputed step record format.
type GherkinType int

const (
	Given GherkinType = iota
	When
	Then
	And
	But
	Other
)

const defaultLanguage = "en"

var (
	dialect = gherkin.DialectsBuiltin().GetDialect(defaultLanguage)

	keywordTypes = map[string]GherkinType{}
)

func init() {
	for key, gherkinType := range map[string]GherkinType{
		"given": Given,
		"when":  When,
		"then":  Then,
		"and":   And,
		"but":   But,
	} {
		for _, keyword := range dialect.Keywords[key] {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			// "*" is shared by every step keyword
			if keyword == "*" {
				continue
			}
			keywordTypes[keyword] = gherkinType
		}
	}
}

func (g GherkinType) String() string {
	switch g {
	case Given:
		return "Given"
	case When:
		return "When"
	case Then:
		return "Then"
	case And:
		return "And"
	case But:
		return "But"
	default:
		return "Other"
	}
}

// IsConjunction reports whether the type inherits its meaning from a previous step.
func (g GherkinType) IsConjunction() bool {
	return g == And || g == But
}

// Classify maps keyword text to its GherkinType, ignoring case and surrounding
// spaces. Unknown keywords are Other.
func Classify(keyword string) GherkinType {
	if gherkinType, ok := keywordTypes[strings.ToLower(strings.TrimSpace(keyword))]; ok {
		return gherkinType
	}

	return Other
}

// ResolveStrict returns the effective type of a step keyword on the given
// 0-based line of document. And/But take the type of the nearest preceding
// Given/When/Then step, or Other when there is none.
func ResolveStrict(keyword string, lineNumber int, document string) GherkinType {
	gherkinType := Classify(keyword)
	if !gherkinType.IsConjunction() {
		return gherkinType
	}

	lines := SplitLines(document)
	if lineNumber > len(lines) {
		lineNumber = len(lines)
	}

	for i := lineNumber - 1; i >= 0; i-- {
		match, ok := MatchLine(lines[i])
		if !ok {
			continue
		}

		switch previous := Classify(match.Keyword); previous {
		case Given, When, Then:
			return previous
		}
	}

	return Other
}
