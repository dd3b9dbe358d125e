package engine

import (
	"fmt"
	"sort"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/denizgursoy/stepindex/pkg/expression"
	"github.com/denizgursoy/stepindex/pkg/gherkin_parser"
)

// Completions lists the steps that could complete a partially typed line,
// most used first. The last, possibly unfinished, word of the line is ignored
// when matching. It returns nil when no step fits.
func (e *Engine) Completions(line string, lineNumber int, document string) []protocol.CompletionItem {
	match, ok := gherkin_parser.MatchLine(line)
	if !ok {
		return nil
	}

	typed := lastWord.ReplaceAllString(match.Content, "")
	required, strict := e.requiredType(match.Keyword, lineNumber, document, e.settings.StrictCompletion)

	kind := protocol.CompletionItemKindSnippet
	format := protocol.InsertTextFormatSnippet

	var items []protocol.CompletionItem
	for _, step := range e.index.Steps() {
		if strict && step.Type != required {
			continue
		}
		if !step.Pattern.MatchPartial(typed) {
			continue
		}

		sortText := SortText(e.index.Count(step.ID), step.Text)
		insertText := expression.Snippet(remainder(step.Text, typed), e.settings.ParameterSymbols, e.settings.SmartSnippets)

		items = append(items, protocol.CompletionItem{
			Label:            step.Text,
			Kind:             &kind,
			Data:             step.ID,
			Documentation:    step.Documentation,
			SortText:         &sortText,
			InsertText:       &insertText,
			InsertTextFormat: &format,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return *items[i].SortText < *items[j].SortText
	})

	return items
}

// SortText orders steps by count descending and text ascending when compared
// as strings.
func SortText(count int, text string) string {
	return fmt.Sprintf("%0*d_%s", sortWidth, maxSort-min(max(count, 0), maxSort), text)
}

// remainder is the part of a template still to be typed after the words of
// typed. A parameter of the template stands for any one typed word.
func remainder(template, typed string) string {
	tokens := templateTokens(template)
	words := strings.Fields(typed)

	consumed := 0
	for consumed < len(words) && consumed < len(tokens) {
		token := tokens[consumed]
		if token != words[consumed] && !isParameter(token) {
			break
		}
		consumed++
	}

	return strings.Join(tokens[consumed:], " ")
}

// templateTokens splits a template on spaces outside groups and braces.
func templateTokens(template string) []string {
	var (
		tokens  []string
		current strings.Builder
		depth   int
	)
	for _, r := range template {
		switch r {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth = max(depth-1, 0)
		case ' ':
			if depth == 0 {
				if current.Len() > 0 {
					tokens = append(tokens, current.String())
				}
				current.Reset()
				continue
			}
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isParameter(token string) bool {
	return strings.ContainsAny(token, "{([") || strings.Contains(token, ".*") || strings.Contains(token, `\`)
}
