package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/echoroom/components"
)

func vec3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func vec3f(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

// surface packs a lit colour; alpha is the emission strength the room
// shader adds on top of the lit albedo.
func surface(c colorful.Color, emission float64) rl.Color {
	r, g, b := c.Clamped().RGB255()
	a := uint8(math.Round(math.Max(0, math.Min(1, emission)) * 255))
	return rl.NewColor(r, g, b, a)
}

// emission recovers the glow factor from a material whose emissive colour
// is a scaled copy of its base.
func emission(m components.Material) float64 {
	base := max(m.Base.R, m.Base.G, m.Base.B)
	if base <= 0 {
		return 0
	}
	return max(m.Emissive.R, m.Emissive.G, m.Emissive.B) / base
}
