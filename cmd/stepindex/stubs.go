package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/denizgursoy/stepindex/internal/app"
	"github.com/denizgursoy/stepindex/internal/generator"
)

func stubsCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "stubs [feature-glob]",
		Short: "Generate Go step functions for undefined steps",
		Long: `Generate a Go file with one annotated step function for every undefined
step of the feature files. The package clause follows the Go files of the
output directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApplication(cmd.Context())
			if err != nil {
				return err
			}

			files, err := application.CheckFeatures(cmd.Context(), featureGlob(application, args))
			if err != nil {
				return err
			}

			path, written, err := generator.WriteStubFile(dir, app.Texts(files))
			if err != nil {
				return err
			}
			if written == 0 {
				fmt.Fprintln(os.Stdout, "no undefined steps")
				return nil
			}
			fmt.Fprintf(os.Stdout, "wrote %d stubs to %s\n", written, path)

			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory to write "+generator.StubFileName+" to")

	return cmd
}
