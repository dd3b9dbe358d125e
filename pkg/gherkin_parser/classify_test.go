package gherkin_parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		keyword  string
		expected GherkinType
	}{
		{"Given", Given},
		{"when", When},
		{"THEN", Then},
		{"And ", And},
		{"But", But},
		{"*", Other},
		{"Scenario", Other},
		{"", Other},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			require.Equal(t, tt.expected, Classify(tt.keyword))
		})
	}
}

func TestResolveStrict(t *testing.T) {
	t.Run("inherits the type of the previous step for And", func(t *testing.T) {
		document := strings.Join([]string{
			"Given a user exists",
			"When they log in",
			"And they see a dashboard",
		}, "\n")

		require.Equal(t, When, ResolveStrict("And", 2, document))
	})

	t.Run("skips over other conjunctions", func(t *testing.T) {
		document := strings.Join([]string{
			"  Given a user exists",
			"  And a second user exists",
			"  # comment",
			"  But not a third one",
		}, "\n")

		require.Equal(t, Given, ResolveStrict("But", 3, document))
	})

	t.Run("returns Other when nothing precedes the conjunction", func(t *testing.T) {
		require.Equal(t, Other, ResolveStrict("And", 0, "And something"))
	})

	t.Run("resolves other keywords directly", func(t *testing.T) {
		require.Equal(t, Then, ResolveStrict("Then", 5, ""))
	})
}
