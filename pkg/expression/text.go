package expression

import (
	"regexp"
	"strings"
)

var (
	restoredOptional    = regexp.MustCompile(`\(([a-z]+)\)\?`)
	restoredAlternative = regexp.MustCompile(`\(([a-z]+(?:\|[a-z]+)+)\)`)
	escapedRune         = regexp.MustCompile(`\\(.)`)
	escapedPunctuation  = regexp.MustCompile(`\\([^\w\s])`)
)

// TextFromSource turns a full pattern source back into template text. Built-in
// placeholders are restored from their sub-patterns; generic placeholders
// compiled to .* cannot be told apart from each other and stay .*.
func TextFromSource(source string) string {
	text := stripAnchors(source)

	// longest sub-patterns first so none is restored from inside another
	for _, name := range []string{"string", "stringInDoubleQuotes", "float", "int", "word"} {
		p := builtinPlaceholder(name)
		text = strings.ReplaceAll(text, p.source, "{"+p.name+"}")
	}

	text = restoredOptional.ReplaceAllString(text, "($1)")
	text = restoredAlternative.ReplaceAllStringFunc(text, func(m string) string {
		return strings.ReplaceAll(m[1:len(m)-1], "|", "/")
	})

	return escapedRune.ReplaceAllString(text, "$1")
}

// DisplayText is the text shown to users for a template: anchors are removed
// and punctuation is unescaped, while character classes such as \d stay.
func DisplayText(template string, opts Options) string {
	if opts.PureText {
		return template
	}

	return escapedPunctuation.ReplaceAllString(stripAnchors(template), "$1")
}

func builtinPlaceholder(name string) placeholder {
	for _, p := range builtinPlaceholders {
		if p.name == name {
			return p
		}
	}

	return placeholder{}
}
