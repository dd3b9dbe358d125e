// Package main provides the stepindex CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/denizgursoy/stepindex/internal/app"
	"github.com/denizgursoy/stepindex/internal/config"
)

const version = "0.1.0"

var (
	cfgFile string //nolint:gochecknoglobals // CLI flag variable
	noColor bool   //nolint:gochecknoglobals // CLI flag variable
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "stepindex",
		Short:         "Gherkin step definition index",
		Long:          `stepindex finds step definitions in source files and matches feature file steps against them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default is ./.stepindex.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(stepsCmd())
	rootCmd.AddCommand(stubsCmd())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "stepindex %s\n", version)
		},
	}
}

// loadApplication reads the settings and builds the step index.
func loadApplication(ctx context.Context) (*app.Application, error) {
	settings, err := config.LoadSettings(cfgFile)
	if err != nil {
		return nil, err
	}

	return app.New(ctx, settings)
}

// featureGlob is the glob argument, or the synchronized features, or the default.
func featureGlob(application *app.Application, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if glob := application.Settings().FeatureGlob(); glob != "" {
		return glob
	}

	return config.DefaultFeatureGlob
}
