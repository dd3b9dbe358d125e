package gherkin_parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutlineVars(t *testing.T) {
	t.Run("reads the examples table following the line", func(t *testing.T) {
		document := strings.Join([]string{
			"Scenario Outline: login",
			"  Given <name> logs in",
			"  Examples:",
			"    | name |",
			"    | Bob  |",
			"    | Ann  |",
		}, "\n")

		require.Equal(t, map[string]string{"name": "Bob"}, OutlineVars(document, 1))
	})

	t.Run("ignores the table of an earlier outline", func(t *testing.T) {
		document := strings.Join([]string{
			"Scenario Outline: login",
			"  Given <name> logs in",
			"  Examples:",
			"    | name |",
			"    | Bob  |",
			"Scenario Outline: logout",
			"  Given <name> logs out",
			"  Examples:",
			"    | name |",
			"    | Ann  |",
		}, "\n")

		require.Equal(t, map[string]string{"name": "Ann"}, OutlineVars(document, 6))
	})

	t.Run("falls back to the nearest preceding table", func(t *testing.T) {
		document := strings.Join([]string{
			"Examples:",
			"| name | role |",
			"| Bob  | admin |",
			"Given <name> logs in",
		}, "\n")

		require.Equal(t, map[string]string{"name": "Bob", "role": "admin"}, OutlineVars(document, 3))
	})

	t.Run("returns no vars without a data row", func(t *testing.T) {
		require.Empty(t, OutlineVars("Given <name>\nExamples:\n| name |", 0))
	})
}

func TestSubstituteOutline(t *testing.T) {
	t.Run("substitutes known placeholders plain and quoted", func(t *testing.T) {
		plain, quoted := SubstituteOutline("Given <name> logs in as <role>", map[string]string{"name": "Bob"})

		require.Equal(t, "Given Bob logs in as <role>", plain)
		require.Equal(t, `Given "Bob" logs in as <role>`, quoted)
	})

	t.Run("detects placeholders", func(t *testing.T) {
		require.True(t, HasOutlinePlaceholders("Given <name> logs in"))
		require.False(t, HasOutlinePlaceholders("Given a user"))
	})
}
