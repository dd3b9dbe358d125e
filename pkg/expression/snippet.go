package expression

import (
	"regexp"
	"strconv"
	"strings"
)

// parameterPart finds the parts of display text that stand for a value:
// {name} placeholders, regex groups, wildcards, quoted-string classes and
// alternative text such as up/down.
var (
	parameterPart = regexp.MustCompile(`\{[^{}]*\}|\([^()]*\)\??|\.\*|"\[\^"\][*+]"|\[\^\\s\]\+|` + alternativeText.String())
	optionalPart  = regexp.MustCompile(`^\([a-z]+\)\??$`)
)

// Snippet renders text for insertion into an editor. With smart set every
// parameter becomes a numbered snippet slot ($1, $2, ...), alternation groups
// and alternative text become choices; otherwise only {name} placeholders with a configured symbol
// are replaced by that symbol's prefix and suffix.
func Snippet(text string, symbols []ParameterSymbol, smart bool) string {
	bySymbol := make(map[string]ParameterSymbol, len(symbols))
	for _, s := range symbols {
		bySymbol[s.Name] = s
	}

	var b strings.Builder
	slot := 1
	last := 0
	for _, loc := range parameterPart.FindAllStringIndex(text, -1) {
		b.WriteString(escapeSnippet(text[last:loc[0]], smart))
		part := text[loc[0]:loc[1]]
		last = loc[1]

		if strings.HasPrefix(part, "{") {
			symbol, ok := bySymbol[part[1:len(part)-1]]
			switch {
			case smart:
				b.WriteString(symbol.Prefix + "${" + strconv.Itoa(slot) + ":}" + symbol.Suffix)
				slot++
			case ok:
				b.WriteString(symbol.Prefix + symbol.Suffix)
			default:
				b.WriteString(part)
			}
			continue
		}

		if !smart {
			b.WriteString(part)
			continue
		}

		// optional text is simply left out
		if optionalPart.MatchString(part) {
			continue
		}

		if alternativeText.MatchString(part) && !strings.HasPrefix(part, "(") {
			b.WriteString("${" + strconv.Itoa(slot) + "|" + strings.ReplaceAll(part, "/", ",") + "|}")
		} else if choices, ok := alternationChoices(part); ok {
			b.WriteString("${" + strconv.Itoa(slot) + "|" + strings.Join(choices, ",") + "|}")
		} else {
			b.WriteString("${" + strconv.Itoa(slot) + ":}")
		}
		slot++
	}
	b.WriteString(escapeSnippet(text[last:], smart))

	return b.String()
}

func alternationChoices(part string) ([]string, bool) {
	if strings.HasSuffix(part, "?") || !strings.HasPrefix(part, "(") {
		return nil, false
	}

	inner := strings.TrimPrefix(part[1:len(part)-1], "?:")
	choices := strings.Split(inner, "|")
	if len(choices) < 2 {
		return nil, false
	}
	for _, c := range choices {
		if c == "" || strings.ContainsAny(c, `\[]*+?.,|$}`) {
			return nil, false
		}
	}

	return choices, true
}

func escapeSnippet(s string, smart bool) string {
	if !smart {
		return s
	}

	return strings.NewReplacer(`\`, `\\`, `$`, `\$`, `}`, `\}`).Replace(s)
}
