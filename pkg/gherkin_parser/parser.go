// Package gherkin_parser classifies Gherkin step keywords and reads steps from
// feature files.
package gherkin_parser

import (
	"io"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
)

const (
	FeatureExtension = ".feature"
)

type (
	// FeatureStep is a step of a parsed feature file.
	FeatureStep struct {
		Keyword string
		Text    string
		// Line is 1-based, as reported by the gherkin parser
		Line int
		// Vars holds the first Examples row of a scenario outline
		Vars map[string]string
	}

	// TagFilter decides whether the steps of a scenario with the given tags are
	// included. A nil filter includes everything.
	TagFilter func(tags []string) bool
)

func ParseGherkinFile(reader io.Reader) (*messages.GherkinDocument, error) {
	id := (&messages.Incrementing{}).NewId
	document, err := gherkin.ParseGherkinDocument(reader, id)
	if err != nil {

		return nil, err
	}
	return document, nil
}

// FeatureSteps lists the steps of every background and scenario in document,
// in file order.
func FeatureSteps(document *messages.GherkinDocument, filter TagFilter) []FeatureStep {
	if document == nil || document.Feature == nil {
		return nil
	}

	if filter == nil {
		filter = func([]string) bool { return true }
	}

	featureTags := tagNames(document.Feature.Tags)

	var steps []FeatureStep
	for _, child := range document.Feature.Children {
		if child.Background != nil && filter(featureTags) {
			steps = append(steps, backgroundSteps(child.Background)...)
		} else if child.Rule != nil {
			ruleTags := append(append([]string{}, featureTags...), tagNames(child.Rule.Tags)...)
			for _, ruleChild := range child.Rule.Children {
				if ruleChild.Background != nil && filter(ruleTags) {
					steps = append(steps, backgroundSteps(ruleChild.Background)...)
				} else if ruleChild.Scenario != nil {
					steps = append(steps, scenarioSteps(ruleChild.Scenario, ruleTags, filter)...)
				}
			}
		} else if child.Scenario != nil {
			steps = append(steps, scenarioSteps(child.Scenario, featureTags, filter)...)
		}
	}

	return steps
}

func backgroundSteps(background *messages.Background) []FeatureStep {
	steps := make([]FeatureStep, 0, len(background.Steps))
	for _, step := range background.Steps {
		steps = append(steps, newFeatureStep(step, nil))
	}

	return steps
}

func scenarioSteps(scenario *messages.Scenario, parentTags []string, filter TagFilter) []FeatureStep {
	tags := append(append([]string{}, parentTags...), tagNames(scenario.Tags)...)
	if !filter(tags) {
		return nil
	}

	vars := firstExamplesRow(scenario.Examples)

	steps := make([]FeatureStep, 0, len(scenario.Steps))
	for _, step := range scenario.Steps {
		steps = append(steps, newFeatureStep(step, vars))
	}

	return steps
}

func newFeatureStep(step *messages.Step, vars map[string]string) FeatureStep {
	line := 0
	if step.Location != nil {
		line = int(step.Location.Line)
	}

	return FeatureStep{
		Keyword: step.Keyword,
		Text:    step.Text,
		Line:    line,
		Vars:    vars,
	}
}

func firstExamplesRow(examples []*messages.Examples) map[string]string {
	for _, e := range examples {
		if e.TableHeader == nil || len(e.TableBody) == 0 {
			continue
		}

		vars := make(map[string]string)
		row := e.TableBody[0]
		for i, cell := range e.TableHeader.Cells {
			if i < len(row.Cells) && row.Cells[i].Value != "" {
				vars[cell.Value] = row.Cells[i].Value
			}
		}
		return vars
	}

	return nil
}

func tagNames(tags []*messages.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}

	return names
}
