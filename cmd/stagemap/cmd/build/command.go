// Package build provides the command that turns an NDJSON event dump into
// the timeline document served by stagemap.
package build

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/stagemap/cmd/application"
	"github.com/agentstation/stagemap/internal/cmd/output"
	"github.com/agentstation/stagemap/pkg/constants"
	"github.com/agentstation/stagemap/pkg/errors"
	"github.com/agentstation/stagemap/pkg/ingest"
	"github.com/agentstation/stagemap/pkg/timeline"
)

// Result describes a finished build.
type Result struct {
	Input  string       `json:"input" yaml:"input"`
	Output string       `json:"output" yaml:"output"`
	Stats  ingest.Stats `json:"stats" yaml:"stats"`
	Months int          `json:"months" yaml:"months"`
	Start  string       `json:"start_month,omitempty" yaml:"start_month,omitempty"`
	End    string       `json:"end_month,omitempty" yaml:"end_month,omitempty"`
}

// Table implements output.Tabular.
func (r Result) Table() output.Data {
	return output.Data{
		Headers: []string{"Field", "Value"},
		Rows: [][]string{
			{"Input", r.Input},
			{"Output", r.Output},
			{"Lines read", strconv.Itoa(r.Stats.LinesRead)},
			{"Events", strconv.Itoa(r.Stats.Events)},
			{"Skipped", strconv.Itoa(r.Stats.Skipped)},
			{"Malformed", strconv.Itoa(r.Stats.Malformed)},
			{"Months", strconv.Itoa(r.Months)},
			{"Range", r.Start + " to " + r.End},
		},
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignRight},
	}
}

// NewCommand creates the build command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the timeline document from an NDJSON event dump",
		Long: `Build reads a MusicBrainz event dump with one JSON object per line and
writes the month-grouped timeline document.

An event is kept when its begin date yields a month and its "held at"
place has coordinates. Blank and malformed lines are skipped.`,
		Example: `  stagemap build
  stagemap build --input dumps/event.json --output public/events_timeline.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, _ := cmd.Flags().GetString("input")
			out, _ := cmd.Flags().GetString("output")
			if out == "" {
				out = app.DataSource()
			}
			return run(cmd, app, input, out)
		},
	}

	cmd.Flags().StringP("input", "i", constants.DefaultIngestInput, "NDJSON event dump")
	cmd.Flags().String("output", "", "document path (default is the configured --data path)")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, input, out string) error {
	logger := app.Logger()

	doc, stats, err := ingest.BuildFile(cmd.Context(), input, ingest.WithLogger(logger))
	if err != nil {
		return err
	}

	if err := writeDocument(out, doc); err != nil {
		return err
	}

	logger.Info().
		Str("output", out).
		Int("events", stats.Events).
		Int("skipped", stats.Skipped).
		Msg("Timeline document written")

	result := Result{Input: input, Output: out, Stats: stats, Months: len(doc.Timeline)}
	if doc.Meta != nil {
		result.Start, result.End = doc.Meta.StartMonth, doc.Meta.EndMonth
	}
	return output.Write(cmd.OutOrStdout(), output.Format(app.OutputFormat()), result)
}

func writeDocument(path string, doc *timeline.Document) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	if err := doc.Encode(f); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
