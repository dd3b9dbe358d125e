package gherkin_parser

import (
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseGherkinFile(t *testing.T) {
	t.Run("should return feature", func(t *testing.T) {
		file, err := os.ReadFile("testdata/login.feature")
		require.NoError(t, err)

		document, err := ParseGherkinFile(strings.NewReader(string(file)))
		require.NoError(t, err)
		require.NotNil(t, document.Feature)
		require.Equal(t, "Login", document.Feature.Name)
	})

	t.Run("should return error for invalid gherkin", func(t *testing.T) {
		_, err := ParseGherkinFile(strings.NewReader("not gherkin at all\n"))
		require.Error(t, err)
	})
}

func TestFeatureSteps(t *testing.T) {
	file, err := os.ReadFile("testdata/login.feature")
	require.NoError(t, err)
	document, err := ParseGherkinFile(strings.NewReader(string(file)))
	require.NoError(t, err)

	t.Run("lists steps of backgrounds, scenarios and rules in order", func(t *testing.T) {
		steps := FeatureSteps(document, nil)

		texts := make([]string, 0, len(steps))
		for _, step := range steps {
			texts = append(texts, step.Text)
		}
		require.Equal(t, []string{
			"the application is running",
			"a user exists",
			"they log in",
			"they see a dashboard",
			"<name> logs in as <role>",
			"the role is <role>",
			"they fail to log in 3 times",
			"the account is locked",
		}, texts)
		require.Equal(t, 8, steps[1].Line)
	})

	t.Run("attaches the first examples row to outline steps", func(t *testing.T) {
		steps := FeatureSteps(document, nil)

		require.Equal(t, map[string]string{"name": "Bob", "role": "admin"}, steps[4].Vars)
		require.Nil(t, steps[1].Vars)
	})

	t.Run("skips scenarios rejected by the tag filter", func(t *testing.T) {
		steps := FeatureSteps(document, func(tags []string) bool {
			return !slices.Contains(tags, "@slow")
		})

		require.Len(t, steps, 6)
	})

	t.Run("returns nothing for an empty document", func(t *testing.T) {
		require.Empty(t, FeatureSteps(nil, nil))
	})
}
