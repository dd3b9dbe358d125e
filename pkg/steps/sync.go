package steps

import (
	"context"
	"fmt"
	"strings"

	tagexpressions "github.com/cucumber/tag-expressions/go/v6"

	"github.com/denizgursoy/stepindex/pkg/gherkin_parser"
)

// Increment adds one use to the step with the given id.
func (i *Index) Increment(id string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	step, ok := i.byID[id]
	if !ok {
		return
	}

	i.counts[id]++
	step.Count = i.counts[id]
}

// ResynchronizeCounts recomputes every usage count from the feature files of
// glob. Each step line of a feature file counts for the first step matching it.
func (i *Index) ResynchronizeCounts(ctx context.Context, glob string) error {
	filter, err := ParseTagFilter(i.settings.SyncTags)
	if err != nil {
		return err
	}

	files, err := i.source.Glob(ctx, glob)
	if err != nil {
		return fmt.Errorf("could not resolve feature files %q: %w", glob, err)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	for id := range i.counts {
		i.counts[id] = 0
	}

	for _, path := range files {
		data, err := i.source.ReadFile(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			i.logger.Warn("could not read feature file", "path", path, "error", err)
			continue
		}

		for _, text := range i.featureStepTexts(path, string(data), filter) {
			if step, ok := i.findLocked(text); ok {
				i.counts[step.ID]++
			}
		}
	}

	for _, step := range i.steps {
		step.Count = i.counts[step.ID]
	}

	return nil
}

// featureStepTexts lists the step contents of a feature file with outline
// placeholders substituted. Files the gherkin parser rejects are read line by line.
func (i *Index) featureStepTexts(path, content string, filter gherkin_parser.TagFilter) []string {
	var texts []string

	document, err := gherkin_parser.ParseGherkinFile(strings.NewReader(content))
	if err == nil {
		for _, step := range gherkin_parser.FeatureSteps(document, filter) {
			texts = append(texts, i.substitute(step.Text, step.Vars))
		}
		return texts
	}

	i.logger.Debug("scanning unparsable feature file line by line", "path", path, "error", err)
	for n, line := range gherkin_parser.SplitLines(content) {
		match, ok := gherkin_parser.MatchLine(line)
		if !ok {
			continue
		}

		text := match.Content
		if gherkin_parser.HasOutlinePlaceholders(text) {
			text = i.substitute(text, gherkin_parser.OutlineVars(content, n))
		}
		texts = append(texts, strings.TrimSpace(text))
	}

	return texts
}

// substitute replaces outline placeholders, preferring the quoted variant when
// only that one matches a step.
func (i *Index) substitute(text string, vars map[string]string) string {
	if len(vars) == 0 {
		return text
	}

	plain, quoted := gherkin_parser.SubstituteOutline(text, vars)
	if _, ok := i.findLocked(plain); !ok {
		if _, ok := i.findLocked(quoted); ok {
			return quoted
		}
	}

	return plain
}

// ParseTagFilter compiles a tag expression into a filter. An empty expression
// gives a nil filter. The parser panics on some malformed input, such as a
// dangling operator, and those panics are returned as errors.
func ParseTagFilter(expression string) (filter gherkin_parser.TagFilter, err error) {
	if strings.TrimSpace(expression) == "" {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			filter = nil
			err = fmt.Errorf("invalid tag expression %q: %v", expression, r)
		}
	}()

	evaluator, err := tagexpressions.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid tag expression %q: %w", expression, err)
	}

	return evaluator.Evaluate, nil
}
