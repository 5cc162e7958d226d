// Package noise provides a seeded multi-octave coherent noise field.
package noise

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Params controls the fractal sum.
type Params struct {
	Octaves        int
	Persistence    float64 // Amplitude falls by 2^-Persistence per octave
	Lacunarity     float64 // Frequency multiplier per octave
	Exponentiation float64 // Applied to the normalised sum
	Height         float64 // Output scale
	Scale          float64 // Input coordinates are divided by this
	Seed           int64
}

// DefaultParams returns the grid jitter configuration.
func DefaultParams() Params {
	return Params{
		Octaves:        3,
		Persistence:    0.5,
		Lacunarity:     1.6,
		Exponentiation: 1.0,
		Height:         1.0,
		Scale:          0.1,
		Seed:           1,
	}
}

// Field samples OpenSimplex noise as a fractal sum in [0, Height].
type Field struct {
	params Params
	gain   float64
	noise  opensimplex.Noise
}

// NewField creates a deterministic field for the given parameters.
func NewField(p Params) *Field {
	if p.Octaves < 1 {
		p.Octaves = 1
	}
	if p.Scale == 0 {
		p.Scale = 1
	}
	return &Field{
		params: p,
		gain:   math.Pow(2, -p.Persistence),
		noise:  opensimplex.New(p.Seed),
	}
}

// Params returns the parameters the field was built with.
func (f *Field) Params() Params {
	return f.params
}

// Get samples the field at (x, y, z).
func (f *Field) Get(x, y, z float64) float64 {
	xs := x / f.params.Scale
	ys := y / f.params.Scale
	zs := z / f.params.Scale

	amplitude := 1.0
	frequency := 1.0
	normalization := 0.0
	total := 0.0
	for o := 0; o < f.params.Octaves; o++ {
		v := f.noise.Eval3(xs*frequency, ys*frequency, zs*frequency)*0.5 + 0.5
		total += v * amplitude
		normalization += amplitude
		amplitude *= f.gain
		frequency *= f.params.Lacunarity
	}
	total /= normalization

	// OpenSimplex can overshoot [-1, 1] by a hair
	total = math.Min(math.Max(total, 0), 1)
	return math.Pow(total, f.params.Exponentiation) * f.params.Height
}
