package app

import (
	"context"
	"fmt"

	"github.com/denizgursoy/stepindex/internal/config"
	"github.com/denizgursoy/stepindex/pkg/engine"
	"github.com/denizgursoy/stepindex/pkg/gherkin_parser"
	"github.com/denizgursoy/stepindex/pkg/steps"
)

// Application ties the settings, the step index and the match engine together.
type Application struct {
	settings *config.Settings
	source   steps.FileSource
	logger   steps.Logger
	index    *steps.Index
	engine   *engine.Engine
}

type Option func(*Application)

func WithLogger(logger steps.Logger) Option {
	return func(a *Application) {
		a.logger = logger
	}
}

// WithFileSource sets where step definitions and feature files are read from.
func WithFileSource(source steps.FileSource) Option {
	return func(a *Application) {
		a.source = source
	}
}

// New builds the step index for settings and seeds usage counts from the
// configured feature files.
func New(ctx context.Context, settings *config.Settings, opts ...Option) (*Application, error) {
	a := &Application{
		settings: settings,
		source:   steps.NewFileSystem(""),
	}
	for _, opt := range opts {
		opt(a)
	}

	indexOpts := []steps.Option{steps.WithFileSource(a.source)}
	if a.logger != nil {
		indexOpts = append(indexOpts, steps.WithLogger(a.logger))
	}
	a.index = steps.NewIndex(settings.IndexSettings(), indexOpts...)

	if err := a.index.Build(ctx); err != nil {
		return nil, fmt.Errorf("build step index: %w", err)
	}

	if glob := settings.FeatureGlob(); glob != "" {
		if err := a.index.ResynchronizeCounts(ctx, glob); err != nil {
			return nil, fmt.Errorf("synchronize step counts: %w", err)
		}
	}

	a.engine = engine.New(a.index, settings.EngineSettings())

	return a, nil
}

func (a *Application) Settings() *config.Settings {
	return a.settings
}

func (a *Application) Index() *steps.Index {
	return a.index
}

func (a *Application) Engine() *engine.Engine {
	return a.engine
}

// CheckFeatures validates every step line of the feature files matching glob.
func (a *Application) CheckFeatures(ctx context.Context, glob string) ([]FeatureFile, error) {
	paths, err := a.source.Glob(ctx, glob)
	if err != nil {
		return nil, fmt.Errorf("list feature files: %w", err)
	}

	files := make([]FeatureFile, 0, len(paths))
	for _, path := range paths {
		data, err := a.source.ReadFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("read feature file: %w", err)
		}
		files = append(files, a.checkDocument(path, string(data)))
	}

	return files, nil
}

func (a *Application) checkDocument(path, document string) FeatureFile {
	file := FeatureFile{Path: path}

	for lineNumber, line := range gherkin_parser.SplitLines(document) {
		match, ok := gherkin_parser.MatchLine(line)
		if !ok {
			continue
		}
		file.StepLines++

		diagnostic := a.engine.Validate(line, lineNumber, document)
		if diagnostic == nil {
			continue
		}

		text := match.Content
		if gherkin_parser.HasOutlinePlaceholders(text) {
			text, _ = gherkin_parser.SubstituteOutline(text, gherkin_parser.OutlineVars(document, lineNumber))
		}
		file.Undefined = append(file.Undefined, UndefinedStep{
			Path:       path,
			Text:       text,
			Diagnostic: *diagnostic,
		})
	}

	return file
}

// Check reports index warnings and every undefined step of the feature files
// matching glob. It returns the number of undefined steps.
func (a *Application) Check(ctx context.Context, glob string, reporter Reporter) (int, error) {
	for _, warning := range a.index.Warnings() {
		reporter.Warning(warning)
	}

	files, err := a.CheckFeatures(ctx, glob)
	if err != nil {
		return 0, err
	}

	undefined := 0
	for _, file := range files {
		reporter.FileChecked(file.Path, file.StepLines)
		for _, step := range file.Undefined {
			reporter.Undefined(step.Path, step.Diagnostic)
			undefined++
		}
	}
	reporter.Flush()

	return undefined, nil
}
