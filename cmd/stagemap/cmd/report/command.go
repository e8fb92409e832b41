// Package report provides the command that writes a markdown summary of
// the configured timeline document.
package report

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/stagemap/cmd/application"
	"github.com/agentstation/stagemap/internal/cmd/emoji"
	"github.com/agentstation/stagemap/internal/report"
	"github.com/agentstation/stagemap/pkg/constants"
	"github.com/agentstation/stagemap/pkg/errors"
)

// NewCommand creates the report command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a markdown summary of the timeline",
		Long: `Report summarises the configured dataset as markdown: its range and
totals, events per category, and the busiest months with their heat
maximum. --all adds a row for every month.`,
		Example: `  stagemap report > REPORT.md
  stagemap report --top 5 --all --out REPORT.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := report.DefaultOptions()
			opts.Top, _ = cmd.Flags().GetInt("top")
			opts.Months, _ = cmd.Flags().GetBool("all")
			if title, _ := cmd.Flags().GetString("title"); title != "" {
				opts.Title = title
			}
			if opts.Top < 0 {
				return errors.NewValidationError("top", opts.Top, "must not be negative")
			}

			doc, err := app.Document(cmd.Context())
			if err != nil {
				return err
			}

			path, _ := cmd.Flags().GetString("out")
			if path == "" || path == "-" {
				return report.Write(cmd.OutOrStdout(), doc, opts)
			}
			return writeFile(path, func(w io.Writer) error {
				return report.Write(w, doc, opts)
			}, cmd)
		},
	}

	cmd.Flags().Int("top", report.DefaultTop, "number of busiest months to list")
	cmd.Flags().Bool("all", false, "add a row for every month")
	cmd.Flags().String("title", "", "report title")
	cmd.Flags().String("out", "-", "output file, - for stdout")

	return cmd
}

func writeFile(path string, fn func(io.Writer) error, cmd *cobra.Command) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	cmd.PrintErrf("%s Wrote %s\n", emoji.Success, path)
	return nil
}
