package game

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/echoroom/camera"
	"github.com/pthm-cable/echoroom/config"
	"github.com/pthm-cable/echoroom/input"
	"github.com/pthm-cable/echoroom/noise"
	"github.com/pthm-cable/echoroom/spectrum"
)

// cameraParams builds controller tuning from config.
func cameraParams(cfg *config.Config) camera.Params {
	c := cfg.Camera
	return camera.Params{
		YawSensitivity:   c.YawSensitivity,
		PitchSensitivity: c.PitchSensitivity,
		PitchLimit:       c.PitchLimit,
		MoveSpeed:        c.MoveSpeed,
		SmoothingBase:    c.SmoothingBase,
		SmoothingRate:    c.SmoothingRate,
		BobMagnitude:     cfg.Bob.Magnitude,
		BobFrequency:     cfg.Bob.Frequency,
		LookDistance:     c.LookDistance,
		Start:            r3.Vec{X: c.Start[0], Y: c.Start[1], Z: c.Start[2]},
		Keys: camera.Bindings{
			Forward: input.Key(cfg.Derived.KeyForward),
			Back:    input.Key(cfg.Derived.KeyBack),
			Left:    input.Key(cfg.Derived.KeyLeft),
			Right:   input.Key(cfg.Derived.KeyRight),
		},
	}
}

func noiseParams(cfg *config.Config) noise.Params {
	n := cfg.Noise
	return noise.Params{
		Octaves:        n.Octaves,
		Persistence:    n.Persistence,
		Lacunarity:     n.Lacunarity,
		Exponentiation: n.Exponentiation,
		Height:         n.Height,
		Scale:          n.Scale,
		Seed:           n.Seed,
	}
}

func mapperParams(cfg *config.Config) spectrum.Params {
	g := cfg.Grid
	return spectrum.Params{
		Rows:      g.Rows,
		TimeRate:  g.TimeRate,
		RowStep:   g.RowStep,
		ColStep:   g.ColStep,
		ScaleGain: g.ScaleGain,
	}
}
