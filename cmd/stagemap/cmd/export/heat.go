package export

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/stagemap/cmd/application"
	"github.com/agentstation/stagemap/pkg/heat"
)

func newHeatCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "heat",
		Short: "Render one month's heat layer as GeoJSON",
		Long: `Heat writes a GeoJSON FeatureCollection with one point per event that has
usable coordinates. Each feature carries its intensity weight, its month
and the layer maximum.`,
		Example: `  stagemap export heat --month 2021-04 --out heat.geojson`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tl, i, err := loadTimeline(cmd, app)
			if err != nil {
				return err
			}
			f, _ := tl.Frame(i)
			data, err := heat.FromFrame(f).MarshalGeoJSON()
			if err != nil {
				return err
			}
			return writeOut(cmd, func(w io.Writer) error {
				_, err := w.Write(append(data, '\n'))
				return err
			})
		},
	}
}
