package steps

import (
	"context"
	"fmt"

	"github.com/denizgursoy/stepindex/internal/step_parser"
	"github.com/denizgursoy/stepindex/pkg/expression"
)

// Build replaces the content of the index with the steps defined in the
// configured source files and precomputed record files. Globs without files
// become warnings; unreadable files and templates that do not compile are
// logged and skipped. Only a cancelled context stops the build.
func (i *Index) Build(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.steps = nil
	i.byID = make(map[string]*Step)
	i.counts = make(map[string]int)
	i.warnings = nil

	parser := step_parser.NewStepParser(i.settings.Parser)
	for _, glob := range i.settings.Steps {
		files, err := i.resolveLocked(ctx, glob)
		if err != nil {
			return err
		}

		for _, path := range files {
			data, err := i.source.ReadFile(ctx, path)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				i.logger.Warn("could not read step definition file", "path", path, "error", err)
				continue
			}

			for _, match := range parser.Parse(string(data)) {
				for _, step := range i.compile(path, match) {
					i.insertLocked(step)
				}
			}
		}
	}

	for _, glob := range i.settings.Precomputed {
		files, err := i.resolveLocked(ctx, glob)
		if err != nil {
			return err
		}

		for _, path := range files {
			data, err := i.source.ReadFile(ctx, path)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				i.logger.Warn("could not read step record file", "path", path, "error", err)
				continue
			}
			i.loadRecordsLocked(path, data)
		}
	}

	i.logger.Info("step index built", "steps", len(i.steps), "warnings", len(i.warnings))

	return nil
}

// resolveLocked lists the files of glob. A glob that cannot be resolved or has
// no files is recorded as a warning.
func (i *Index) resolveLocked(ctx context.Context, glob string) ([]string, error) {
	files, err := i.source.Glob(ctx, glob)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		i.warnings = append(i.warnings, Warning{Source: glob, Message: fmt.Sprintf("invalid glob %q: %v", glob, err)})
		return nil, nil
	}

	if len(files) == 0 {
		i.warnings = append(i.warnings, Warning{Source: glob, Message: fmt.Sprintf("no files found for %q", glob)})
		i.logger.Warn("glob matched no files", "glob", glob)
	}

	return files, nil
}

// compile turns a match into steps, one per invariant when invariants are
// enabled. Variants that do not compile are dropped.
func (i *Index) compile(path string, match step_parser.Match) []*Step {
	variants := []string{match.Body}
	if i.settings.Invariants {
		variants = expression.Invariants(match.Body)
	}

	opts := expression.Options{
		PureText:         i.settings.PureText,
		Regex:            match.Regex,
		CustomParameters: i.settings.CustomParameters,
	}

	description := match.Description
	if description == "" {
		description = match.Body
	}
	documentation := match.Documentation
	if documentation == "" {
		documentation = description
	}

	steps := make([]*Step, 0, len(variants))
	for _, variant := range variants {
		pattern, err := expression.Compile(variant, opts)
		if err != nil {
			i.logger.Warn("skipping step definition", "path", path, "line", match.Line, "error", err)
			continue
		}

		steps = append(steps, &Step{
			ID:            StepID(pattern.Source()),
			Text:          expression.DisplayText(variant, opts),
			Pattern:       pattern,
			Description:   description,
			Documentation: documentation,
			Location: Location{
				Path:      path,
				Line:      match.Line,
				Character: match.Character,
			},
			Type: match.Type,
		})
	}

	return steps
}
