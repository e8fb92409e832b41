// Package export provides commands that render one month of the timeline
// to files: the mini-chart as SVG and the heat layer as GeoJSON.
package export

import (
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/stagemap/cmd/application"
	"github.com/agentstation/stagemap/internal/cmd/emoji"
	"github.com/agentstation/stagemap/pkg/constants"
	"github.com/agentstation/stagemap/pkg/errors"
	"github.com/agentstation/stagemap/pkg/timeline"
)

// NewCommand creates the export parent command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the mini-chart or a heat layer to a file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringP("month", "m", "", "month as index or YYYY-MM (default is the first month with events)")
	cmd.PersistentFlags().String("out", "-", "output file, - for stdout")

	cmd.AddCommand(newChartCommand(app))
	cmd.AddCommand(newHeatCommand(app))

	return cmd
}

// loadTimeline loads the configured document and resolves --month.
func loadTimeline(cmd *cobra.Command, app application.Application) (*timeline.Timeline, int, error) {
	doc, err := app.Document(cmd.Context())
	if err != nil {
		return nil, 0, err
	}
	tl := doc.Build()
	if tl.Empty() {
		return nil, 0, errors.ErrNoData
	}

	month, _ := cmd.Flags().GetString("month")
	i, err := resolveMonth(tl, month)
	if err != nil {
		return nil, 0, err
	}
	return tl, i, nil
}

// resolveMonth accepts an index, a YYYY-MM key, or empty for the first
// month with events.
func resolveMonth(tl *timeline.Timeline, month string) (int, error) {
	if month == "" {
		return tl.FirstNonEmpty(), nil
	}
	if i, err := strconv.Atoi(month); err == nil {
		if _, ok := tl.Frame(i); !ok {
			return 0, errors.NewValidationError("month", month, "index out of range")
		}
		return i, nil
	}
	if !timeline.ValidMonth(month) {
		return 0, errors.NewValidationError("month", month, "must be an index or YYYY-MM")
	}
	i, ok := tl.IndexOf(month)
	if !ok {
		return 0, errors.NewNotFoundError("month", month)
	}
	return i, nil
}

// writeOut writes through fn to --out, or stdout when it is "-".
func writeOut(cmd *cobra.Command, fn func(io.Writer) error) error {
	path, _ := cmd.Flags().GetString("out")
	if path == "" || path == "-" {
		return fn(cmd.OutOrStdout())
	}

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
