package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"DocPipeline/internal/app"
	"DocPipeline/internal/domain"
)

func newGenerateCommand(opts *options) *cobra.Command {
	var (
		kindName    string
		requesterID string
		input       string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an artifact from a model reply read from --input or stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := readInput(cmd, input)
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), cmd, opts, func(a *app.Application) error {
				var artifact *domain.GeneratedArtifact
				if kindName == "" {
					artifact, err = a.Pipeline().DetectAndGenerate(cmd.Context(), text, requesterID)
				} else {
					kind, ok := domain.ParseArtifactKind(kindName)
					if !ok {
						return fmt.Errorf("unknown artifact kind %q", kindName)
					}
					artifact, err = a.Pipeline().GenerateKind(cmd.Context(), text, kind, requesterID)
				}
				if err != nil {
					return err
				}
				if artifact == nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "no artifact generated")
					return nil
				}
				return printJSON(cmd.OutOrStdout(), artifact)
			})
		},
	}
	cmd.Flags().StringVar(&kindName, "kind", "", "force a kind (excel, csv, chart, image, pdf, md, json, txt); detected when empty")
	cmd.Flags().StringVar(&requesterID, "requester", "", "requester id recorded with the artifact")
	cmd.Flags().StringVarP(&input, "input", "i", "-", "file with the reply text, - for stdin")
	return cmd
}

func readInput(cmd *cobra.Command, input string) (string, error) {
	var (
		raw []byte
		err error
	)
	if input == "" || input == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(input)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(raw), nil
}

func newArtifactsCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifacts",
		Short: "Manage generated artifacts",
	}

	var requesterID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List generated artifacts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), cmd, opts, func(a *app.Application) error {
				items, err := a.Pipeline().ListArtifacts(cmd.Context(), requesterID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), items)
			})
		},
	}
	list.Flags().StringVar(&requesterID, "requester", "", "only artifacts recorded for this requester (needs the database ledger)")

	var output string
	get := &cobra.Command{
		Use:   "get <name>",
		Short: "Copy a generated artifact to --output or stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), cmd, opts, func(a *app.Application) error {
				rc, info, err := a.Pipeline().OpenArtifact(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				defer rc.Close()

				if output == "" || output == "-" {
					if _, err := io.Copy(cmd.OutOrStdout(), rc); err != nil {
						return &domain.IOError{Op: "copy artifact", Path: args[0], Err: err}
					}
				} else {
					f, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("create %s: %w", output, err)
					}
					if err := copyAndClose(f, rc, output); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%s (%s, %d bytes)\n", info.Filename, info.MIMEType, info.Size)
				return nil
			})
		},
	}
	get.Flags().StringVarP(&output, "output", "o", "", "destination file, stdout when empty")

	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a generated artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), cmd, opts, func(a *app.Application) error {
				return a.Pipeline().DeleteArtifact(cmd.Context(), args[0])
			})
		},
	}

	cmd.AddCommand(list, get, del)
	return cmd
}

// copyAndClose writes src to dst and reports the first copy or close error.
func copyAndClose(dst io.WriteCloser, src io.Reader, path string) error {
	_, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &domain.IOError{Op: "write output", Path: path, Err: err}
	}
	return nil
}
