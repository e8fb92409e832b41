package export

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/stagemap/cmd/application"
	"github.com/agentstation/stagemap/pkg/minichart"
)

func newChartCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Render the monthly mini-chart as SVG",
		Example: `  stagemap export chart --month 2021-04 --out chart.svg
  stagemap export chart -m 12 > chart.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tl, i, err := loadTimeline(cmd, app)
			if err != nil {
				return err
			}
			chart := minichart.FromTimeline(tl, i)
			return writeOut(cmd, func(w io.Writer) error {
				return minichart.RenderSVG(w, chart)
			})
		},
	}
}
