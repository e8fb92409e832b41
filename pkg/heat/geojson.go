package heat

import (
	geojson "github.com/paulmach/go.geojson"
)

// FeatureCollection exports the layer as GeoJSON points. GeoJSON orders
// coordinates lng, lat.
func (l *Layer) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range l.Points {
		f := geojson.NewPointFeature([]float64{p.Lng, p.Lat})
		f.SetProperty("intensity", p.Intensity)
		f.SetProperty("month", l.Month)
		f.SetProperty("max", l.Max)
		fc.AddFeature(f)
	}
	return fc
}

// MarshalGeoJSON encodes the layer as a GeoJSON FeatureCollection.
func (l *Layer) MarshalGeoJSON() ([]byte, error) {
	return l.FeatureCollection().MarshalJSON()
}
