// Package months provides the command that lists monthly event totals.
package months

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/stagemap/cmd/application"
	"github.com/agentstation/stagemap/internal/cmd/output"
	"github.com/agentstation/stagemap/pkg/timeline"
)

// Row is one month with its total and per-category counts.
type Row struct {
	Index      int                       `json:"index" yaml:"index"`
	Month      string                    `json:"month" yaml:"month"`
	Count      int                       `json:"count" yaml:"count"`
	Categories map[timeline.Category]int `json:"categories" yaml:"categories"`
}

// Rows is the months listing.
type Rows []Row

// Table implements output.Tabular.
func (rs Rows) Table() output.Data {
	categories := timeline.Categories()

	headers := []string{"#", "Month", "Events"}
	align := []output.Align{output.AlignRight, output.AlignLeft, output.AlignRight}
	for _, c := range categories {
		headers = append(headers, output.Header(c.String()))
		align = append(align, output.AlignRight)
	}

	rows := make([][]string, 0, len(rs))
	for _, r := range rs {
		row := []string{strconv.Itoa(r.Index), r.Month, strconv.Itoa(r.Count)}
		for _, c := range categories {
			row = append(row, strconv.Itoa(r.Categories[c]))
		}
		rows = append(rows, row)
	}

	return output.Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// NewCommand creates the months command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "months",
		Aliases: []string{"ls"},
		Short:   "List months with their event counts",
		Example: `  stagemap months
  stagemap months --non-empty -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nonEmpty, _ := cmd.Flags().GetBool("non-empty")

			doc, err := app.Document(cmd.Context())
			if err != nil {
				return err
			}

			rows := Build(doc.Build(), nonEmpty)
			return output.Write(cmd.OutOrStdout(), output.Format(app.OutputFormat()), rows)
		},
	}

	cmd.Flags().Bool("non-empty", false, "omit months without events")

	return cmd
}

// Build tallies every month of tl.
func Build(tl *timeline.Timeline, nonEmpty bool) Rows {
	rows := make(Rows, 0, tl.Len())
	for i, f := range tl.Frames() {
		if nonEmpty && f.Count() == 0 {
			continue
		}
		cats := make(map[timeline.Category]int)
		for _, e := range f.Events {
			cats[e.Category]++
		}
		rows = append(rows, Row{Index: i, Month: f.Month, Count: f.Count(), Categories: cats})
	}
	return rows
}
