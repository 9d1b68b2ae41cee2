// Package cli exposes the pipeline as the docpipeline command.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"DocPipeline/internal/app"
	"DocPipeline/internal/config"
	"DocPipeline/internal/logging"
)

type options struct {
	configPath string
	logLevel   string
}

// NewRootCommand builds the command tree. out receives command results; logs go to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "docpipeline",
		Short:         "Classify and extract uploads, generate artifacts from model replies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config (defaults to $DOCPIPELINE_CONFIG)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newClassifyCommand(),
		newExtractCommand(opts),
		newGenerateCommand(opts),
		newArtifactsCommand(opts),
	)
	return root
}

// withApp builds the application for one command and closes it afterwards.
func withApp(ctx context.Context, cmd *cobra.Command, opts *options, fn func(*app.Application) error) error {
	cfg := config.Load(opts.configPath)
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level)

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	runErr := fn(application)
	if closeErr := application.Close(); closeErr != nil && runErr == nil {
		return closeErr
	}
	return runErr
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
