package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/denizgursoy/stepindex/internal/report"
)

var errUndefinedSteps = errors.New("undefined steps found")

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [feature-glob]",
		Short: "Validate feature files against the step definitions",
		Long: `Validate every step line of the feature files and report the ones no
step definition matches.

Examples:
  stepindex check
  stepindex check "features/**/*.feature"
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApplication(cmd.Context())
			if err != nil {
				return err
			}

			reporter := report.NewConsoleReporter(os.Stdout, !noColor)
			undefined, err := application.Check(cmd.Context(), featureGlob(application, args), reporter)
			if err != nil {
				return err
			}
			if undefined > 0 {
				return fmt.Errorf("%w: %d", errUndefinedSteps, undefined)
			}

			return nil
		},
	}

	return cmd
}
