package renderer

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/echoroom/components"
	"github.com/pthm-cable/echoroom/scene"
)

func near3(a rl.Vector3, x, y, z float32) bool {
	const eps = 1e-5
	return math.Abs(float64(a.X-x)) < eps && math.Abs(float64(a.Y-y)) < eps && math.Abs(float64(a.Z-z)) < eps
}

func TestScreenTransform(t *testing.T) {
	sc := scene.Default().Screen
	m := screenTransform(sc)

	// Mesh centre lands on the screen centre
	if got := rl.Vector3Transform(rl.Vector3{}, m); !near3(got, 39.49, 4, 0) {
		t.Errorf("expected centre at (39.49,4,0), got %v", got)
	}
	// Local +Y is the normal, facing into the room
	if got := rl.Vector3Transform(rl.NewVector3(0, 1, 0), m); !near3(got, 38.49, 4, 0) {
		t.Errorf("expected normal along -X, got %v", got)
	}
	// Local +X runs to the viewer's right, which is +Z when looking along +X
	if got := rl.Vector3Transform(rl.NewVector3(2, 0, 0), m); !near3(got, 39.49, 4, 2) {
		t.Errorf("expected right edge at +Z, got %v", got)
	}
	// Local +Z runs down
	if got := rl.Vector3Transform(rl.NewVector3(0, 0, 4), m); !near3(got, 39.49, 0, 0) {
		t.Errorf("expected bottom edge at y=0, got %v", got)
	}
}

func TestSpotUniform(t *testing.T) {
	s := scene.Default().Spots[0]
	u := newSpotUniform(s)

	if u.ConeCos >= u.PenumbraCos {
		t.Errorf("expected outer cone cosine below inner, got %f >= %f", u.ConeCos, u.PenumbraCos)
	}
	if math.Abs(float64(u.ConeCos)-math.Sqrt2/2) > 1e-6 {
		t.Errorf("expected cos(pi/4), got %f", u.ConeCos)
	}
	if math.Abs(float64(u.PenumbraCos)-math.Cos(math.Pi/8)) > 1e-6 {
		t.Errorf("expected cos(pi/8), got %f", u.PenumbraCos)
	}
	d := u.Direction
	if l := math.Sqrt(float64(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])); math.Abs(l-1) > 1e-6 {
		t.Errorf("expected unit direction, got length %f", l)
	}
	if d[1] >= 0 {
		t.Errorf("expected spot pointing down, got %v", d)
	}
}

func TestEmission(t *testing.T) {
	base := colorful.Color{R: 0.8, G: 0.4, B: 0.2}
	tests := []struct {
		name string
		mat  components.Material
		want float64
	}{
		{"no glow", components.Material{Base: base}, 0},
		{"quarter", components.Material{Base: base, Emissive: colorful.Color{R: 0.2, G: 0.1, B: 0.05}}, 0.25},
		{"black base", components.Material{Emissive: colorful.Color{R: 1}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := emission(tt.mat); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSurfacePacksEmission(t *testing.T) {
	c := surface(colorful.Color{R: 1, G: 0.5, B: 2}, 0.5)
	if c.R != 255 || c.G != 128 || c.B != 255 {
		t.Errorf("expected clamped rgb, got %v", c)
	}
	if c.A != 128 {
		t.Errorf("expected emission in alpha, got %d", c.A)
	}
	if surface(colorful.Color{}, 3).A != 255 {
		t.Error("expected emission clamped to 1")
	}
}
