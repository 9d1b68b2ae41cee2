package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"DocPipeline/internal/app"
	"DocPipeline/internal/classifier"
)

func newClassifyCommand() *cobra.Command {
	var mimeType string
	cmd := &cobra.Command{
		Use:   "classify <file>",
		Short: "Report the category of a file without reading its content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := filepath.Base(args[0])
			if mimeType == "" {
				detected, err := mimetype.DetectFile(args[0])
				if err != nil {
					return fmt.Errorf("detect mime: %w", err)
				}
				mimeType = classifier.NormalizeMIME(detected.String())
			}

			verdict := classifier.Classify(name, mimeType)
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"file":      name,
				"mimeType":  verdict.MIMEType,
				"extension": verdict.Extension,
				"category":  verdict.Category.String(),
				"accepted":  verdict.Category.Accepted(),
				"blocked":   verdict.Blocked,
				"reason":    verdict.Reason,
				"icon":      classifier.Icon(verdict.Extension),
			})
		},
	}
	cmd.Flags().StringVar(&mimeType, "mime", "", "declared MIME type (sniffed from content when empty)")
	return cmd
}

func newExtractCommand(opts *options) *cobra.Command {
	var mimeType string
	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract normalized text from an upload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			if mimeType == "" {
				mimeType = classifier.NormalizeMIME(mimetype.Detect(data).String())
			}

			return withApp(cmd.Context(), cmd, opts, func(a *app.Application) error {
				result, err := a.Pipeline().ClassifyAndExtract(cmd.Context(), data, filepath.Base(args[0]), mimeType)
				if printErr := printJSON(cmd.OutOrStdout(), result); printErr != nil {
					return printErr
				}
				return err
			})
		},
	}
	cmd.Flags().StringVar(&mimeType, "mime", "", "declared MIME type (sniffed from content when empty)")
	return cmd
}
