package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/denizgursoy/stepindex/pkg/gherkin_parser"
	"github.com/denizgursoy/stepindex/pkg/steps"
)

func TestConsoleReporter(t *testing.T) {
	t.Run("should print undefined steps with editor positions", func(t *testing.T) {
		out := &strings.Builder{}
		reporter := NewConsoleReporter(out, false)

		reporter.FileChecked("login.feature", 3)
		reporter.Undefined("login.feature", protocol.Diagnostic{
			Range:   protocol.Range{Start: protocol.Position{Line: 4, Character: 4}},
			Message: `Was unable to find step for "Given nothing"`,
		})

		require.Equal(t, "✗ login.feature:5:5 Was unable to find step for \"Given nothing\"\n", out.String())
		require.Equal(t, Summary{Files: 1, Steps: 3, Undefined: 1}, reporter.Summary())
		require.True(t, reporter.Summary().Failed())
	})

	t.Run("should print warnings and the summary", func(t *testing.T) {
		out := &strings.Builder{}
		reporter := NewConsoleReporter(out, false)

		reporter.FileChecked("a.feature", 2)
		reporter.Warning(steps.Warning{Source: "steps/*.js", Message: "no files found"})
		reporter.Flush()

		require.Contains(t, out.String(), "! steps/*.js no files found\n")
		require.Contains(t, out.String(), "✓ 1 files, 2 steps, 0 undefined, 1 warnings\n")
		require.False(t, reporter.Summary().Failed())
	})

	t.Run("should render the step table", func(t *testing.T) {
		out := &strings.Builder{}
		reporter := NewConsoleReporter(out, false)

		reporter.Steps([]*steps.Step{
			{
				Text:     "I have {int} cats",
				Type:     gherkin_parser.Given,
				Count:    2,
				Location: steps.Location{Path: "steps.js", Line: 3, Character: 0},
			},
		})

		require.Contains(t, out.String(), "I have {int} cats")
		require.Contains(t, out.String(), "Given")
		require.Contains(t, out.String(), "steps.js:4:1")
		require.Contains(t, strings.ToLower(out.String()), "1 steps")
	})
}
