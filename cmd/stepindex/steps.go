package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/denizgursoy/stepindex/internal/report"
)

func stepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List the indexed step definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := loadApplication(cmd.Context())
			if err != nil {
				return err
			}

			reporter := report.NewConsoleReporter(os.Stdout, !noColor)
			for _, warning := range application.Index().Warnings() {
				reporter.Warning(warning)
			}
			reporter.Steps(application.Index().Steps())

			return nil
		},
	}
}
