package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/denizgursoy/stepindex/internal/config"
	"github.com/denizgursoy/stepindex/internal/lsp"
)

func serveCmd() *cobra.Command {
	var (
		verbosity int
		logFile   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the language server (stdio)",
		Long: `Start a language server for feature files on stdin and stdout.

Settings are read from the settings file and replaced by the editor's
cucumberautocomplete settings when it sends them.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			var path *string
			if logFile != "" {
				path = &logFile
			}
			commonlog.Configure(verbosity, path)

			settings, err := config.LoadSettings(cfgFile)
			if errors.Is(err, config.ErrNoSteps) {
				settings = nil
			} else if err != nil {
				return err
			}

			root, err := os.Getwd()
			if err != nil {
				return err
			}

			return lsp.NewServer(root, settings, version).RunStdio()
		},
	}

	cmd.Flags().IntVarP(&verbosity, "verbose", "v", 1, "log verbosity")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	return cmd
}
