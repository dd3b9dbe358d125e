package expression

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// Sub-patterns inserted for the built-in Cucumber placeholders.
const (
	anySource                  = `.*`
	floatSource                = `-?\d*\.?\d+`
	intSource                  = `-?\d+`
	stringInDoubleQuotesSource = `"[^"]*"`
	wordSource                 = `[^\s]+`
	// named back-reference so the closing quote matches the opening one even when
	// the pattern is later wrapped in extra groups
	stringSource = `(?<q>["'])(?:(?!\k<q>).)*\k<q>`
)

type placeholder struct {
	name     string
	source   string
	rule     *regexp.Regexp
	constant func([]string) string
}

func newPlaceholder(name, rule, source string) placeholder {
	return placeholder{
		name:     name,
		source:   source,
		rule:     regexp.MustCompile(rule),
		constant: func([]string) string { return source },
	}
}

// builtinPlaceholders are applied in this order; earlier entries win.
var builtinPlaceholders = []placeholder{
	newPlaceholder("", `#\{.*?\}`, anySource),
	newPlaceholder("float", `\{float\}`, floatSource),
	newPlaceholder("int", `\{int\}`, intSource),
	newPlaceholder("stringInDoubleQuotes", `\{stringInDoubleQuotes\}`, stringInDoubleQuotesSource),
	newPlaceholder("word", `\{word\}`, wordSource),
	newPlaceholder("string", `\{string\}`, stringSource),
}

var (
	optionalText    = regexp.MustCompile(`\(([a-z]+)\)`)
	alternativeText = regexp.MustCompile(`[a-z]+(?:/[a-z]+)+`)
	quantifierBody  = regexp.MustCompile(`^[\d,]+$`)
)

// segment is a piece of a template: either literal text still subject to later
// rules and escaping, or regex source produced by a rule.
type segment struct {
	text  string
	regex bool
}

type segments []segment

// replace applies rule to every literal segment, turning each match into a regex
// segment produced by repl.
func (s segments) replace(rule *regexp.Regexp, repl func(match []string) string) segments {
	out := make(segments, 0, len(s))
	for _, seg := range s {
		if seg.regex {
			out = append(out, seg)
			continue
		}

		last := 0
		for _, loc := range rule.FindAllStringSubmatchIndex(seg.text, -1) {
			if loc[0] > last {
				out = append(out, segment{text: seg.text[last:loc[0]]})
			}
			out = append(out, segment{text: repl(submatches(seg.text, loc)), regex: true})
			last = loc[1]
		}
		if last < len(seg.text) {
			out = append(out, segment{text: seg.text[last:]})
		}
	}

	return out
}

// replaceLiteral is replace for a plain substring.
func (s segments) replaceLiteral(old, repl string, regex bool) segments {
	if old == "" {
		return s
	}

	out := make(segments, 0, len(s))
	for _, seg := range s {
		if seg.regex {
			out = append(out, seg)
			continue
		}

		parts := strings.Split(seg.text, old)
		for i, part := range parts {
			if i > 0 {
				out = append(out, segment{text: repl, regex: regex})
			}
			if part != "" {
				out = append(out, segment{text: part})
			}
		}
	}

	return out
}

// expandGenericPlaceholders turns every remaining {name} into .*, leaving
// escaped braces and quantifiers such as {2} or {1,3} alone.
func (s segments) expandGenericPlaceholders() segments {
	out := make(segments, 0, len(s))
	for _, seg := range s {
		if seg.regex {
			out = append(out, seg)
			continue
		}

		text := seg.text
		last := 0
		for i := 0; i < len(text); i++ {
			if text[i] == '\\' {
				i++
				continue
			}
			if text[i] != '{' {
				continue
			}

			end := strings.IndexByte(text[i:], '}')
			if end < 0 {
				break
			}
			end += i

			inner := text[i+1 : end]
			if inner != "" && quantifierBody.MatchString(inner) {
				i = end
				continue
			}

			if i > last {
				out = append(out, segment{text: text[last:i]})
			}
			out = append(out, segment{text: anySource, regex: true})
			last = end + 1
			i = end
		}
		if last < len(text) {
			out = append(out, segment{text: text[last:]})
		}
	}

	return out
}

func (s segments) join(escape func(string) string) string {
	var b strings.Builder
	for _, seg := range s {
		if seg.regex {
			b.WriteString(seg.text)
		} else {
			b.WriteString(escape(seg.text))
		}
	}

	return b.String()
}

func submatches(text string, loc []int) []string {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] >= 0 {
			groups[i] = text[loc[2*i]:loc[2*i+1]]
		}
	}

	return groups
}

// applyCustomParameters runs the configured substitutions in order. Values are
// inserted as pattern source when asRegex is set and as literal text otherwise.
func applyCustomParameters(segs segments, params []CustomParameter, asRegex bool) segments {
	for _, p := range params {
		if rule, ok := customParameterRule(p.Parameter); ok {
			segs = segs.replaceRegexp2(rule, p.Value, asRegex)
			continue
		}
		segs = segs.replaceLiteral(p.Parameter, p.Value, asRegex)
	}

	return segs
}

func customParameterRule(parameter string) (*regexp2.Regexp, bool) {
	if len(parameter) < 3 || !strings.HasPrefix(parameter, "/") || !strings.HasSuffix(parameter, "/") {
		return nil, false
	}

	rule, err := regexp2.Compile(parameter[1:len(parameter)-1], regexp2.None)
	if err != nil {
		return nil, false
	}
	rule.MatchTimeout = matchTimeout

	return rule, true
}

func (s segments) replaceRegexp2(rule *regexp2.Regexp, repl string, regex bool) segments {
	out := make(segments, 0, len(s))
	for _, seg := range s {
		if seg.regex {
			out = append(out, seg)
			continue
		}

		// regexp2 reports rune offsets
		runes := []rune(seg.text)
		last := 0
		m, err := rule.FindStringMatch(seg.text)
		for err == nil && m != nil && m.Length > 0 {
			if m.Index > last {
				out = append(out, segment{text: string(runes[last:m.Index])})
			}
			out = append(out, segment{text: repl, regex: regex})
			last = m.Index + m.Length
			m, err = rule.FindNextMatch(m)
		}
		if last < len(runes) {
			out = append(out, segment{text: string(runes[last:])})
		}
	}

	return out
}

func quoteLiteral(s string) string {
	return regexp.QuoteMeta(s)
}

func keepLiteral(s string) string {
	return s
}
