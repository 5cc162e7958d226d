package visualizer

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/echoroom/spectrum"
)

const eps = 1e-9

func flatContext(level float64) Context {
	texels := make([]float64, NumBars)
	for i := range texels {
		texels[i] = level
	}
	return Context{Resolution: [2]float64{128, 256}, Spectrum: NewTexture1D(texels)}
}

// atRadius returns the uv straight above the circle centre at radius r for
// a 128x256 screen.
func atRadius(r float64) r2.Vec {
	return r2.Vec{X: 0.5, Y: 0.5 + r}
}

func TestFrequencyUMirrors(t *testing.T) {
	for i := 1; i < NumBars/2; i++ {
		if FrequencyU(i) != FrequencyU(NumBars-i) {
			t.Errorf("bar %d samples %f, bar %d samples %f", i, FrequencyU(i), NumBars-i, FrequencyU(NumBars-i))
		}
	}
	if FrequencyU(0) != 0 || FrequencyU(NumBars/2) != 1 {
		t.Errorf("expected fold endpoints 0 and 1, got %f and %f", FrequencyU(0), FrequencyU(NumBars/2))
	}
}

func TestTexture1DSample(t *testing.T) {
	tex := NewTexture1D([]float64{0, 1})
	tests := []struct {
		u, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0},
		{0.5, 0.5},
		{0.75, 1},
		{1, 1},
		{2, 1},
	}
	for _, tc := range tests {
		if got := tex.Sample(tc.u); math.Abs(got-tc.want) > eps {
			t.Errorf("Sample(%v): expected %v, got %v", tc.u, tc.want, got)
		}
	}

	if NewTexture1D(nil).Sample(0.5) != 0 {
		t.Error("expected empty texture to read zero")
	}
}

func TestShadeZeroSpectrum(t *testing.T) {
	ctx := flatContext(0)

	center := Shade(ctx, atRadius(0))
	if center != (RGBA{}) {
		t.Errorf("expected transparent centre, got %+v", center)
	}

	// Minimum-height bars remain as short ticks on the circle
	tick := Shade(ctx, atRadius(0.156))
	if tick.A != 1 {
		t.Errorf("expected a tick on the circle, got alpha %f", tick.A)
	}
	if tick.R+tick.G+tick.B == 0 {
		t.Error("expected tick to be coloured")
	}

	if c := Shade(ctx, atRadius(0.2)); c != (RGBA{}) {
		t.Errorf("expected nothing beyond the ticks, got %+v", c)
	}
}

func TestShadeFullSpectrum(t *testing.T) {
	ctx := flatContext(1)

	if c := Shade(ctx, atRadius(0.26)); c.A != 1 {
		t.Errorf("expected full bar at radius 0.26, got alpha %f", c.A)
	}

	// Loud bars lift off the circle
	if c := Shade(ctx, atRadius(0.16)); c.A != 0 {
		t.Errorf("expected gap under lifted bar, got alpha %f", c.A)
	}
}

func TestShadeChannelsClampedAndPremultiplied(t *testing.T) {
	for _, level := range []float64{0, 0.3, 1} {
		ctx := flatContext(level)
		for y := 0; y < 64; y++ {
			for x := 0; x < 32; x++ {
				uv := r2.Vec{X: (float64(x) + 0.5) / 32, Y: (float64(y) + 0.5) / 64}
				c := Shade(ctx, uv)
				for _, ch := range []float64{c.R, c.G, c.B, c.A} {
					if ch < 0 || ch > 1 || math.IsNaN(ch) {
						t.Fatalf("level %v at %v: channel out of range %+v", level, uv, c)
					}
				}
				if c.A == 0 && (c.R != 0 || c.G != 0 || c.B != 0) {
					t.Fatalf("level %v at %v: colour without coverage %+v", level, uv, c)
				}
			}
		}
	}
}

func TestTrapezoid(t *testing.T) {
	tests := []struct {
		name string
		p    r2.Vec
		want float64
	}{
		{"centre of square", r2.Vec{}, -1},
		{"above square", r2.Vec{Y: 2}, 1},
		{"right of square", r2.Vec{X: 3}, 2},
		{"left mirrors right", r2.Vec{X: -3}, 2},
	}
	for _, tc := range tests {
		if got := Trapezoid(tc.p, 1, 1, 1); math.Abs(got-tc.want) > eps {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}

	// Narrow top: a point beside the top edge is outside, beside the bottom inside
	if Trapezoid(r2.Vec{X: 0.8, Y: 0.9}, 1, 0.25, 1) <= 0 {
		t.Error("expected point beside narrow top to be outside")
	}
	if Trapezoid(r2.Vec{X: 0.8, Y: -0.9}, 1, 0.25, 1) >= 0 {
		t.Error("expected point near wide bottom to be inside")
	}
}

func TestUnevenCapsule(t *testing.T) {
	if got := UnevenCapsule(r2.Vec{}, 1, 1, 2); math.Abs(got+1) > eps {
		t.Errorf("expected -1 at lower centre, got %v", got)
	}
	if got := UnevenCapsule(r2.Vec{Y: 4}, 1, 1, 2); math.Abs(got-1) > eps {
		t.Errorf("expected 1 above upper cap, got %v", got)
	}
	if got := UnevenCapsule(r2.Vec{X: 3, Y: 1}, 1, 1, 2); math.Abs(got-2) > eps {
		t.Errorf("expected 2 beside the body, got %v", got)
	}
}

func TestTriangleIsosceles(t *testing.T) {
	q := r2.Vec{X: 1, Y: -2}
	if got := TriangleIsosceles(r2.Vec{Y: -1}, q); got >= 0 {
		t.Errorf("expected inside, got %v", got)
	}
	if got := TriangleIsosceles(r2.Vec{Y: 1}, q); math.Abs(got-1) > eps {
		t.Errorf("expected 1 above the apex, got %v", got)
	}
}

func TestBooleanOps(t *testing.T) {
	if Union(1, 2) != 1 || Intersection(1, 2) != 2 || Subtraction(1, 2) != 2 || Subtraction(-3, 2) != 3 {
		t.Error("unexpected boolean op result")
	}
	if su := SmoothUnion(1, 1.2, 0.5); su > Union(1, 1.2) {
		t.Errorf("smooth union %v exceeds hard union", su)
	}
	if su := SmoothUnion(1, 5, 0.5); su != 1 {
		t.Errorf("expected distant shapes to union exactly, got %v", su)
	}
}

func TestRotate2D(t *testing.T) {
	got := Rotate2D(r2.Vec{X: 1}, math.Pi/2)
	if r2.Norm(r2.Sub(got, r2.Vec{Y: 1})) > eps {
		t.Errorf("expected (0,1), got %v", got)
	}
}

func TestPaletteAndSmoothstep(t *testing.T) {
	p := Palette(0, palA, palB, palC, [3]float64{})
	for i, ch := range p {
		if math.Abs(ch-1) > eps {
			t.Errorf("channel %d: expected 1, got %v", i, ch)
		}
	}

	if Smoothstep(0, 1, -1) != 0 || Smoothstep(0, 1, 2) != 1 || Smoothstep(0, 1, 0.5) != 0.5 {
		t.Error("unexpected smoothstep values")
	}
}

func TestUniforms(t *testing.T) {
	u := NewUniforms([2]float64{128, 256}, 4)
	if u.Dirty {
		t.Fatal("new uniforms must not be dirty")
	}

	u.Advance(0.25)
	u.Advance(0.5)
	if u.Time != 0.75 {
		t.Errorf("expected time 0.75, got %v", u.Time)
	}

	u.SetSpectrum(spectrum.Frame{1, 0.2, 0, 1})
	u.SetSpectrum(spectrum.Frame{1, 0.2})
	if !u.Dirty {
		t.Error("expected dirty after new spectrum")
	}
	if u.Texels[0] != 255 || u.Texels[1] != 51 || u.Texels[3] != 0 {
		t.Errorf("unexpected texels %v", u.Texels)
	}

	u.Uploaded()
	if u.Dirty {
		t.Error("expected dirty cleared after upload")
	}

	ctx := u.Context()
	if ctx.Time != 0.75 || ctx.Resolution != [2]float64{128, 256} {
		t.Errorf("unexpected context %+v", ctx)
	}
	if got := ctx.Spectrum.Sample(0.125); got != 1 {
		t.Errorf("expected first texel 1, got %v", got)
	}
}

func TestFragmentSourceEmbedded(t *testing.T) {
	for _, name := range []string{"audioDataTexture", "iResolution", "iTime", "finalColor"} {
		if !strings.Contains(FragmentSource, name) {
			t.Errorf("shader missing %s", name)
		}
	}
}
