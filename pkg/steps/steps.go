// Package steps holds the index of step definitions: compiled patterns, their
// origin and how often feature files use them.
package steps

import (
	"sync"

	"github.com/google/uuid"

	"github.com/denizgursoy/stepindex/internal/step_parser"
	"github.com/denizgursoy/stepindex/pkg/expression"
	"github.com/denizgursoy/stepindex/pkg/gherkin_parser"
)

// stepNamespace seeds the name-based ids of steps.
var stepNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/denizgursoy/stepindex/steps"))

type (
	// Step is an indexed step definition. Only Count changes after creation.
	Step struct {
		ID            string
		Text          string
		Pattern       *expression.Pattern
		Description   string
		Documentation string
		Location      Location
		Type          gherkin_parser.GherkinType
		Count         int
	}

	// Location is where a step is defined. Line and Character are 0-based.
	Location struct {
		Path      string
		Line      int
		Character int
	}

	// Warning is a problem with the configuration that does not stop indexing,
	// e.g. a glob that matches no files.
	Warning struct {
		Source  string
		Message string
	}

	Settings struct {
		// Steps are globs of source files containing step definitions
		Steps []string
		// Precomputed are globs of JSON step record files
		Precomputed      []string
		PureText         bool
		Invariants       bool
		CustomParameters []expression.CustomParameter
		Parser           step_parser.Options
		// SyncTags limits the scenarios counted by ResynchronizeCounts
		SyncTags string
	}

	Index struct {
		settings Settings
		source   FileSource
		logger   Logger

		mu       sync.RWMutex
		steps    []*Step
		byID     map[string]*Step
		counts   map[string]int
		warnings []Warning
	}

	Option func(*Index)
)

// WithLogger sets the logger of the index.
func WithLogger(logger Logger) Option {
	return func(i *Index) {
		i.logger = logger
	}
}

// WithFileSource replaces the file system access of the index.
func WithFileSource(source FileSource) Option {
	return func(i *Index) {
		i.source = source
	}
}

func NewIndex(settings Settings, opts ...Option) *Index {
	i := &Index{
		settings: settings,
		source:   NewFileSystem(""),
		logger:   &noopLogger{},
		byID:     make(map[string]*Step),
		counts:   make(map[string]int),
	}
	for _, opt := range opts {
		opt(i)
	}

	return i
}

// StepID is the id of a step with the given content.
func StepID(content string) string {
	return uuid.NewSHA1(stepNamespace, []byte(content)).String()
}

// Steps returns the indexed steps in insertion order.
func (i *Index) Steps() []*Step {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return append([]*Step(nil), i.steps...)
}

// Step returns the step with the given id.
func (i *Index) Step(id string) (*Step, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	step, ok := i.byID[id]

	return step, ok
}

// Count returns the usage count of a step.
func (i *Index) Count(id string) int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.counts[id]
}

// Warnings returns the problems found by the last Build.
func (i *Index) Warnings() []Warning {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return append([]Warning(nil), i.warnings...)
}

// Settings returns the settings the index was created with.
func (i *Index) Settings() Settings {
	return i.settings
}

// Find returns the first step whose full pattern matches text.
func (i *Index) Find(text string) (*Step, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.findLocked(text)
}

func (i *Index) findLocked(text string) (*Step, bool) {
	for _, step := range i.steps {
		if step.Pattern.Match(text) {
			return step, true
		}
	}

	return nil, false
}

// insertLocked adds step unless its id is known already.
func (i *Index) insertLocked(step *Step) bool {
	if _, ok := i.byID[step.ID]; ok {
		return false
	}

	i.steps = append(i.steps, step)
	i.byID[step.ID] = step
	i.counts[step.ID] = step.Count

	return true
}

type noopLogger struct{}

func (n *noopLogger) Debug(msg string, args ...any) {}
func (n *noopLogger) Info(msg string, args ...any)  {}
func (n *noopLogger) Warn(msg string, args ...any)  {}
func (n *noopLogger) Error(msg string, args ...any) {}
