package config

import (
	"errors"
	"fmt"

	"github.com/dlclark/regexp2"

	"github.com/denizgursoy/stepindex/internal/step_parser"
	"github.com/denizgursoy/stepindex/pkg/engine"
	"github.com/denizgursoy/stepindex/pkg/expression"
	"github.com/denizgursoy/stepindex/pkg/steps"
)

// DefaultFeatureGlob is scanned when syncfeatures is true.
const DefaultFeatureGlob = "test/**/*.feature"

// Settings is the configuration of the step index and the match engine.
// Field tags use mapstructure for viper unmarshalling.
type Settings struct {
	Steps       []string `mapstructure:"steps"`
	Precomputed []string `mapstructure:"precomputed"`

	// SyncFeatures is either a bool or a glob of feature files
	SyncFeatures            any                          `mapstructure:"syncfeatures"`
	SyncTags                string                       `mapstructure:"synctags"`
	StrictGherkinCompletion bool                         `mapstructure:"strictgherkincompletion"`
	StrictGherkinValidation bool                         `mapstructure:"strictgherkinvalidation"`
	SmartSnippets           bool                         `mapstructure:"smartsnippets"`
	StepsInvariants         bool                         `mapstructure:"stepsinvariants"`
	PureTextSteps           bool                         `mapstructure:"puretextsteps"`
	CustomParameters        []expression.CustomParameter `mapstructure:"customparameters"`
	ParameterSymbols        []expression.ParameterSymbol `mapstructure:"parametersymbols"`
	GherkinDefinitionPart   string                       `mapstructure:"gherkindefinitionpart"`
	StepRegExSymbol         string                       `mapstructure:"stepregexsymbol"`
}

// Sentinel errors for settings validation.
var (
	// ErrNoSteps indicates that neither steps nor precomputed files are configured.
	ErrNoSteps = errors.New("steps or precomputed must list at least one glob")
	// ErrEmptyCustomParameter indicates a custom parameter without parameter text.
	ErrEmptyCustomParameter = errors.New("customParameters entries need a parameter")
	// ErrEmptyParameterSymbol indicates a parameter symbol without a name.
	ErrEmptyParameterSymbol = errors.New("parameterSymbols entries need a name")
	// ErrInvalidDefinitionPart indicates gherkinDefinitionPart is not a valid pattern.
	ErrInvalidDefinitionPart = errors.New("gherkinDefinitionPart must be a valid regular expression")
	// ErrInvalidRegExSymbol indicates stepRegExSymbol is not a valid pattern.
	ErrInvalidRegExSymbol = errors.New("stepRegExSymbol must be a valid regular expression")
	// ErrInvalidSyncTags indicates syncTags is not a tag expression.
	ErrInvalidSyncTags = errors.New("syncTags must be a valid tag expression")
	// ErrInvalidSyncFeatures indicates syncfeatures is neither a bool nor a glob.
	ErrInvalidSyncFeatures = errors.New("syncfeatures must be a bool or a glob")
)

// Validate checks Settings invariants and returns the first error found.
func (s *Settings) Validate() error {
	if len(s.Steps) == 0 && len(s.Precomputed) == 0 {
		return ErrNoSteps
	}

	for _, p := range s.CustomParameters {
		if p.Parameter == "" {
			return ErrEmptyCustomParameter
		}
	}

	for _, p := range s.ParameterSymbols {
		if p.Name == "" {
			return ErrEmptyParameterSymbol
		}
	}

	if s.GherkinDefinitionPart != "" {
		if _, err := regexp2.Compile(s.GherkinDefinitionPart, regexp2.None); err != nil {
			return ErrInvalidDefinitionPart
		}
	}

	if s.StepRegExSymbol != "" {
		if _, err := regexp2.Compile(s.StepRegExSymbol, regexp2.None); err != nil {
			return ErrInvalidRegExSymbol
		}
	}

	if s.SyncTags != "" {
		if _, err := steps.ParseTagFilter(s.SyncTags); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSyncTags, err)
		}
	}

	switch s.SyncFeatures.(type) {
	case nil, bool, string:
	default:
		return ErrInvalidSyncFeatures
	}

	return nil
}

// FeatureGlob returns the feature files used to seed usage counts, or "" when
// counts are not synchronized.
func (s *Settings) FeatureGlob() string {
	switch v := s.SyncFeatures.(type) {
	case bool:
		if v {
			return DefaultFeatureGlob
		}
	case string:
		return v
	}

	return ""
}

// IndexSettings returns the part of the settings the step index uses.
func (s *Settings) IndexSettings() steps.Settings {
	return steps.Settings{
		Steps:            s.Steps,
		Precomputed:      s.Precomputed,
		PureText:         s.PureTextSteps,
		Invariants:       s.StepsInvariants,
		CustomParameters: s.CustomParameters,
		Parser: step_parser.Options{
			DefinitionPart: s.GherkinDefinitionPart,
			RegExSymbol:    s.StepRegExSymbol,
		},
		SyncTags: s.SyncTags,
	}
}

// EngineSettings returns the part of the settings the match engine uses.
func (s *Settings) EngineSettings() engine.Settings {
	return engine.Settings{
		StrictCompletion: s.StrictGherkinCompletion,
		StrictValidation: s.StrictGherkinValidation,
		SmartSnippets:    s.SmartSnippets,
		ParameterSymbols: s.ParameterSymbols,
	}
}
