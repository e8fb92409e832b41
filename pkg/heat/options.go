package heat

// GradientStop maps a normalised intensity to a colour.
type GradientStop struct {
	Stop  float64 `json:"stop" yaml:"stop"`
	Color string  `json:"color" yaml:"color"`
}

// Options are the display settings handed to the heat renderer.
type Options struct {
	Radius     int            `json:"radius" yaml:"radius"`
	Blur       int            `json:"blur" yaml:"blur"`
	MaxZoom    int            `json:"maxZoom" yaml:"max_zoom"`
	MinOpacity float64        `json:"minOpacity" yaml:"min_opacity"`
	Gradient   []GradientStop `json:"gradient" yaml:"gradient"`
}

// DefaultOptions returns the standard blue-to-red look.
func DefaultOptions() Options {
	return Options{
		Radius:     38,
		Blur:       24,
		MaxZoom:    6,
		MinOpacity: 0.55,
		Gradient: []GradientStop{
			{0.1, "#1a4fff"},
			{0.35, "#00d4ff"},
			{0.55, "#00ff6a"},
			{0.75, "#ffe600"},
			{0.9, "#ff7a00"},
			{1.0, "#ff0000"},
		},
	}
}

// ColorAt returns the colour of the highest stop at or below v, or the
// first stop's colour when v is below every stop.
func (o Options) ColorAt(v float64) string {
	if len(o.Gradient) == 0 {
		return ""
	}
	color := o.Gradient[0].Color
	for _, s := range o.Gradient {
		if v >= s.Stop {
			color = s.Color
		}
	}
	return color
}
