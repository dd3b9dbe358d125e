package expression

import (
	"regexp"
	"strings"
)

// alternationGroup is a group with at least two branches and no nested groups.
var alternationGroup = regexp.MustCompile(`\((?:\?:)?[^()|]+(?:\|[^()|]+)+\)`)

// Invariants expands every alternation group of template into concrete
// variants, e.g. "I go (up|down)" yields "I go up" and "I go down". A template
// without alternation is returned unchanged.
func Invariants(template string) []string {
	loc := alternationGroup.FindStringIndex(template)
	if loc == nil {
		return []string{template}
	}

	group := template[loc[0]:loc[1]]
	group = strings.TrimPrefix(strings.TrimSuffix(group, ")"), "(")
	group = strings.TrimPrefix(group, "?:")

	var variants []string
	for _, branch := range strings.Split(group, "|") {
		variant := template[:loc[0]] + branch + template[loc[1]:]
		variants = append(variants, Invariants(variant)...)
	}

	return variants
}
