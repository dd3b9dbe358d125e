package step_parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

const (
	GenericFamily           = "generic"
	CallWithNamespaceFamily = "call-with-namespace"
	PropertyFamily          = "property-assignment"
	NamespaceCallFamily     = "direct-namespace-call"
	RegexFamily             = "regex-construction"
	AnnotationFamily        = "annotation"

	// StepPrefix marks a step template in a line comment: // @step `I have {int} cats`
	StepPrefix = "@step"

	DefaultKeywords    = "Given|When|Then|And|But|defineStep|Step|StepDefinition"
	DefaultDelimiters  = "[/'\"`]"
	recognizerDeadline = 250 * time.Millisecond
)

const (
	quote        = `'"` + "`"
	body         = `(?<body>(?:\\.|(?!\k<delim>)[^\\\n])+)\k<delim>`
	quotedBody   = `(?<delim>[` + quote + `])` + body
	namespace    = `[\w$]+\.`
	anyKeyword   = `(?<kw>` + DefaultKeywords + `)`
	regexLiteral = `(?<delim>/)` + body + `[gimsuy]*`
)

// Recognizer finds a step definition call on one candidate line.
type Recognizer struct {
	Family    string
	Recognize func(line string) (Match, bool)
}

var (
	keywordWord   = regexp.MustCompile(`\w+`)
	interpolation = regexp.MustCompile(`\$\{[^}]*\}`)
	stringEscape  = strings.NewReplacer(`\\`, `\`, `\"`, `"`, `\'`, `'`)

	annotationRecognizer = patternRecognizer(AnnotationFamily, false,
		mustCompile(`^\s*//\s*(?<kw>`+StepPrefix+`)\s+(?<delim>`+"`"+`)`+body))
)

// Recognizers returns the pattern families in the order they are tried.
// definitionPart replaces the keyword alternative of the generic family and
// delimiters replaces its delimiter class; empty values select the defaults.
func Recognizers(definitionPart, delimiters string) []Recognizer {
	if definitionPart == "" {
		definitionPart = DefaultKeywords
	}
	if delimiters == "" {
		delimiters = DefaultDelimiters
	}

	return []Recognizer{
		patternRecognizer(GenericFamily, false,
			mustCompile(`^(?:[^`+quote+`/]*?[^\w`+quote+`/])?(?<kw>`+definitionPart+`)[^\w`+quote+`/]*?(?<delim>`+delimiters+`)`+body)),
		patternRecognizer(CallWithNamespaceFamily, false,
			mustCompile(`\(\s*\d+\s*,\s*`+namespace+anyKeyword+`\)\s*\(\s*(?://[^\n]*)?\s*`+quotedBody)),
		patternRecognizer(PropertyFamily, false,
			mustCompile(`^\s*`+namespace+anyKeyword+`\s*=\s*function\s*\w*\s*\(\s*`+quotedBody)),
		patternRecognizer(NamespaceCallFamily, false,
			mustCompile(namespace+anyKeyword+`\s*\(\s*`+quotedBody)),
		patternRecognizer(RegexFamily, true,
			mustCompile(`(?<![\w$])`+anyKeyword+`\s*\(\s*(?:new\s+)?RegExp\s*\(\s*`+quotedBody),
			mustCompile(`(?<![\w$])`+anyKeyword+`\s*\(?\s*`+regexLiteral)),
	}
}

func mustCompile(pattern string) *regexp2.Regexp {
	re := regexp2.MustCompile(pattern, regexp2.None)
	re.MatchTimeout = recognizerDeadline

	return re
}

func patternRecognizer(family string, regex bool, patterns ...*regexp2.Regexp) Recognizer {
	return Recognizer{
		Family: family,
		Recognize: func(line string) (Match, bool) {
			for _, re := range patterns {
				m, err := re.FindStringMatch(line)
				if err != nil || m == nil {
					continue
				}

				kw := m.GroupByName("kw")
				delim := m.GroupByName("delim").String()

				return Match{
					Keyword:     keywordWord.FindString(kw.String()),
					Body:        template(m.GroupByName("body").String(), delim),
					Delimiter:   delim,
					Regex:       regex || delim == "/",
					Character:   kw.Index,
					Family:      family,
					Description: description(line, kw.Index, m.Index+m.Length),
				}, true
			}

			return Match{}, false
		},
	}
}

// description is the definition without its function body: the text from the
// keyword to the end of the call, cut at the first opening brace after the
// template. Offsets are in runes.
func description(line string, start, end int) string {
	runes := []rune(line)
	rest := string(runes[end:])
	if brace := strings.Index(rest, "{"); brace >= 0 {
		rest = rest[:brace]
	}

	return strings.Join(strings.Fields(string(runes[start:end])+rest), " ")
}

// template turns the raw text between the delimiters into a step template.
func template(raw, delim string) string {
	switch delim {
	case "`":
		return interpolation.ReplaceAllString(raw, ".*")
	case `'`, `"`:
		return stringEscape.Replace(raw)
	default:
		return raw
	}
}
