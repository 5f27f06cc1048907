// Command textops is the interactive terminal front end: it presents the
// operation menu, collects file paths, runs the analysis pipeline, and
// persists results.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zoobzio/textops"
	"github.com/zoobzio/textops/config"
	"github.com/zoobzio/textops/fileio"
	"github.com/zoobzio/textops/openai"
	"github.com/zoobzio/textops/output"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		model     string
		baseURL   string
		outputDir string
		debug     bool
	)

	cmd := &cobra.Command{
		Use:           "textops",
		Short:         "Summarize, translate, and sentiment-analyze documents with an LLM",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			bridge := newLogBridge(logger)
			defer bridge.Close()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if model != "" {
				cfg.Model = model
			}
			if baseURL != "" {
				cfg.BaseURL = baseURL
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}

			provider, err := openai.New(openai.Config{
				APIKey:  cfg.APIKey,
				Model:   cfg.Model,
				BaseURL: cfg.BaseURL,
				Timeout: cfg.Timeout,
			})
			if err != nil {
				return err
			}

			opts := []textops.Option{textops.WithTimeout(cfg.Timeout)}
			if debug {
				opts = append(opts, textops.WithDebug())
			}

			shell := newShell(
				textops.NewProcessor(provider, opts...),
				output.NewWriter(cfg.OutputDir),
				fileio.Read,
				cmd.InOrStdin(),
				cmd.OutOrStdout(),
			)
			return shell.run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "model name (default from OPENAI_MODEL)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "API base URL (default from OPENAI_BASE_URL)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for result files (default from TEXTOPS_OUTPUT_DIR)")
	cmd.Flags().BoolVar(&debug, "debug", false, "print prompts and raw responses")

	return cmd
}
