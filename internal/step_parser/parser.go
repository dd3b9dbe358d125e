// Package step_parser finds step definitions in source files of any language
// by trying a fixed list of call-shape pattern families on every line.
package step_parser

import (
	"github.com/denizgursoy/stepindex/pkg/gherkin_parser"
)

type (
	// Match is a step definition found in a source file.
	Match struct {
		Keyword string
		Type    gherkin_parser.GherkinType
		// Body is the step template with string escapes resolved
		Body      string
		Delimiter string
		// Regex is set when the template was written as a regular expression
		Regex bool
		// Line and Character locate the keyword, both 0-based
		Line          int
		Character     int
		Family        string
		Description   string
		Documentation string
	}

	Options struct {
		// DefinitionPart replaces the keyword alternative, e.g. "Given|When|Then"
		DefinitionPart string `mapstructure:"gherkinDefinitionPart"`
		// RegExSymbol replaces the delimiter character class, e.g. "['`]"
		RegExSymbol string `mapstructure:"stepRegExSymbol"`
	}

	StepParser struct {
		recognizers []Recognizer
	}
)

func NewStepParser(opts Options) *StepParser {
	return &StepParser{
		recognizers: Recognizers(opts.DefinitionPart, opts.RegExSymbol),
	}
}

// Parse returns the step definitions of a source file in line order. A line
// that does not match on its own is joined with the next line, unless the next
// line matches by itself.
func (p *StepParser) Parse(text string) []Match {
	rawLines := gherkin_parser.SplitLines(text)
	lines := gherkin_parser.SplitLines(StripComments(text))
	docs := BlockComments(text)

	matches := make([]Match, 0)
	for i := range lines {
		match, ok := annotationRecognizer.Recognize(rawLines[i])
		if !ok {
			match, ok = p.recognize(lines[i])
		}
		if !ok && i+1 < len(lines) {
			if _, nextMatches := p.recognize(lines[i+1]); !nextMatches {
				match, ok = p.recognize(lines[i] + "\n" + lines[i+1])
			}
		}
		if !ok {
			continue
		}

		match.Line = i
		match.Type = gherkin_parser.Classify(match.Keyword)
		match.Documentation = docs[i]
		matches = append(matches, match)
	}

	return matches
}

func (p *StepParser) recognize(line string) (Match, bool) {
	for _, r := range p.recognizers {
		if match, ok := r.Recognize(line); ok {
			return match, true
		}
	}

	return Match{}, false
}
