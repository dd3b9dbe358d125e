package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/denizgursoy/stepindex/internal/config"
	"github.com/denizgursoy/stepindex/pkg/expression"
)

func TestLoadSettings(t *testing.T) {
	t.Run("reads a settings file", func(t *testing.T) {
		settings, err := config.LoadSettings("testdata/settings.yaml")
		require.NoError(t, err)

		require.Equal(t, []string{"steps/**/*.js"}, settings.Steps)
		require.Equal(t, "features/**/*.feature", settings.FeatureGlob())
		require.Equal(t, "not @wip", settings.SyncTags)
		require.True(t, settings.SmartSnippets)
		require.True(t, settings.StepsInvariants)
		require.False(t, settings.PureTextSteps)
		require.Equal(t, []expression.CustomParameter{{Parameter: "{color}", Value: "(red|blue)"}}, settings.CustomParameters)
		require.Equal(t, []expression.ParameterSymbol{{Name: "string", Prefix: `"`, Suffix: `"`}}, settings.ParameterSymbols)
	})

	t.Run("takes values from the environment", func(t *testing.T) {
		t.Setenv("STEPINDEX_PURETEXTSTEPS", "true")

		settings, err := config.LoadSettings("testdata/settings.yaml")
		require.NoError(t, err)

		require.True(t, settings.PureTextSteps)
	})

	t.Run("returns an error for a missing explicit file", func(t *testing.T) {
		_, err := config.LoadSettings("testdata/missing.yaml")

		require.Error(t, err)
	})
}

func TestFromMap(t *testing.T) {
	t.Run("decodes the editor section", func(t *testing.T) {
		settings, err := config.FromMap(map[string]any{
			config.Section: map[string]any{
				"steps":                   []any{"a/*.js", "b/*.js"},
				"syncfeatures":            true,
				"strictGherkinValidation": true,
				"gherkinDefinitionPart":   "(Given|When)\\(",
			},
		})
		require.NoError(t, err)

		require.Equal(t, []string{"a/*.js", "b/*.js"}, settings.Steps)
		require.Equal(t, config.DefaultFeatureGlob, settings.FeatureGlob())
		require.True(t, settings.StrictGherkinValidation)

		index := settings.IndexSettings()
		require.Equal(t, "(Given|When)\\(", index.Parser.DefinitionPart)
		require.True(t, settings.EngineSettings().StrictValidation)
	})

	t.Run("accepts a single glob", func(t *testing.T) {
		settings, err := config.FromMap(map[string]any{"steps": "steps/*.js"})
		require.NoError(t, err)

		require.Equal(t, []string{"steps/*.js"}, settings.Steps)
		require.Empty(t, settings.FeatureGlob())
	})

	t.Run("rejects settings without steps", func(t *testing.T) {
		_, err := config.FromMap(map[string]any{})

		require.ErrorIs(t, err, config.ErrNoSteps)
	})

	t.Run("rejects a dangling tag operator without panicking", func(t *testing.T) {
		require.NotPanics(t, func() {
			_, err := config.FromMap(map[string]any{"steps": []any{"a/*.js"}, "syncTags": "@a and"})

			require.ErrorIs(t, err, config.ErrInvalidSyncTags)
		})
	})
}

func TestSettings_Validate(t *testing.T) {
	valid := func() config.Settings {
		return config.Settings{Steps: []string{"*.js"}}
	}

	t.Run("accepts minimal settings", func(t *testing.T) {
		settings := valid()
		require.NoError(t, settings.Validate())
	})

	t.Run("rejects invalid entries", func(t *testing.T) {
		tests := []struct {
			name     string
			change   func(*config.Settings)
			expected error
		}{
			{"custom parameter", func(s *config.Settings) {
				s.CustomParameters = []expression.CustomParameter{{Value: "x"}}
			}, config.ErrEmptyCustomParameter},
			{"parameter symbol", func(s *config.Settings) {
				s.ParameterSymbols = []expression.ParameterSymbol{{Prefix: "x"}}
			}, config.ErrEmptyParameterSymbol},
			{"definition part", func(s *config.Settings) { s.GherkinDefinitionPart = "(Given" }, config.ErrInvalidDefinitionPart},
			{"delimiter", func(s *config.Settings) { s.StepRegExSymbol = "[" }, config.ErrInvalidRegExSymbol},
			{"tags", func(s *config.Settings) { s.SyncTags = "@a and" }, config.ErrInvalidSyncTags},
			{"sync features", func(s *config.Settings) { s.SyncFeatures = 3 }, config.ErrInvalidSyncFeatures},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				settings := valid()
				tt.change(&settings)

				require.ErrorIs(t, settings.Validate(), tt.expected)
			})
		}
	})
}
