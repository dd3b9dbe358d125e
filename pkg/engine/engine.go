// Package engine answers validation, completion and definition queries for
// lines of feature files against a step index.
package engine

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/denizgursoy/stepindex/pkg/expression"
	"github.com/denizgursoy/stepindex/pkg/gherkin_parser"
	"github.com/denizgursoy/stepindex/pkg/steps"
)

const (
	DiagnosticSource = "cucumberautocomplete"

	sortWidth = 5
	maxSort   = 99999
)

var lastWord = regexp.MustCompile(`\S+$`)

type (
	Settings struct {
		StrictCompletion bool
		StrictValidation bool
		SmartSnippets    bool
		ParameterSymbols []expression.ParameterSymbol
	}

	// Engine is safe for concurrent queries. Count updates go through the index.
	Engine struct {
		index    *steps.Index
		settings Settings
	}
)

func New(index *steps.Index, settings Settings) *Engine {
	return &Engine{
		index:    index,
		settings: settings,
	}
}

// Validate returns a warning when line is a step no indexed step matches.
// Lines that are not steps and known steps give nil. lineNumber is 0-based.
func (e *Engine) Validate(line string, lineNumber int, document string) *protocol.Diagnostic {
	match, ok := gherkin_parser.MatchLine(line)
	if !ok {
		return nil
	}

	required, strict := e.requiredType(match.Keyword, lineNumber, document, e.settings.StrictValidation)
	if _, found := e.find(match.Content, lineNumber, document, required, strict); found {
		return nil
	}

	trimmed := strings.TrimRight(line, " \t\r")
	severity := protocol.DiagnosticSeverityWarning
	source := DiagnosticSource

	return &protocol.Diagnostic{
		Range: protocol.Range{
			Start: position(lineNumber, utf8.RuneCountInString(match.Indent)),
			End:   position(lineNumber, utf8.RuneCountInString(trimmed)),
		},
		Severity: &severity,
		Source:   &source,
		Message:  fmt.Sprintf("Was unable to find step for %q", strings.TrimSpace(line)),
	}
}

// Definition returns the location of the step matching line.
func (e *Engine) Definition(line string, lineNumber int, document string) *protocol.Location {
	match, ok := gherkin_parser.MatchLine(line)
	if !ok {
		return nil
	}

	step, found := e.find(match.Content, lineNumber, document, gherkin_parser.Other, false)
	if !found {
		return nil
	}

	start := position(step.Location.Line, step.Location.Character)

	return &protocol.Location{
		URI:   FileURI(step.Location.Path),
		Range: protocol.Range{Start: start, End: start},
	}
}

// OnCompletionAccepted counts a use of the step with the given id.
func (e *Engine) OnCompletionAccepted(id string) {
	e.index.Increment(id)
}

func (e *Engine) find(content string, lineNumber int, document string, required gherkin_parser.GherkinType, strict bool) (*steps.Step, bool) {
	content = strings.TrimSpace(content)

	candidates := []string{content}
	if gherkin_parser.HasOutlinePlaceholders(content) {
		plain, quoted := gherkin_parser.SubstituteOutline(content, gherkin_parser.OutlineVars(document, lineNumber))
		candidates = []string{plain, quoted}
	}

	for _, text := range candidates {
		for _, step := range e.index.Steps() {
			if strict && step.Type != required {
				continue
			}
			if step.Pattern.Match(text) {
				return step, true
			}
		}
	}

	return nil, false
}

// requiredType resolves the type steps must have when strict matching is on.
func (e *Engine) requiredType(keyword string, lineNumber int, document string, strict bool) (gherkin_parser.GherkinType, bool) {
	if !strict {
		return gherkin_parser.Other, false
	}

	return gherkin_parser.ResolveStrict(keyword, lineNumber, document), true
}

func position(line, character int) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(max(line, 0)),
		Character: protocol.UInteger(max(character, 0)),
	}
}

// FileURI turns a path into a file URI. URIs are returned unchanged.
func FileURI(path string) protocol.DocumentUri {
	if strings.Contains(path, "://") {
		return protocol.DocumentUri(path)
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	return protocol.DocumentUri((&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String())
}
