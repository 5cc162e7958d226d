package spectrum

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/echoroom/spline"
)

// Amplitude to colour breakpoints: cold blue, hot red, then pale yellow.
var colorStops = []struct {
	t   float64
	hex string
}{
	{0.0, "#4040ff"},
	{0.25, "#ff4040"},
	{1.0, "#ffff80"},
}

// NewColorSpline builds the amplitude to colour ramp with RGB blending.
func NewColorSpline() *spline.Linear[colorful.Color] {
	s := spline.NewLinear(blendRGB)
	for _, stop := range colorStops {
		s.AddPoint(stop.t, mustHex(stop.hex))
	}
	return s
}

func blendRGB(t float64, a, b colorful.Color) colorful.Color {
	return a.BlendRgb(b, t)
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
