// Package visualizer draws the radial bar spectrum shown on the speaker
// screen. Shade is the reference for the GLSL in visualizer.fs; both must
// produce the same image.
package visualizer

import (
	_ "embed"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// FragmentSource is the GLSL 330 fragment shader for raylib.
//
//go:embed visualizer.fs
var FragmentSource string

const (
	NumBars      = 64
	CircleRadius = 0.15
	BarHeight    = 0.125

	// The shader's own pi; kept so CPU and GPU rotate bars identically.
	shaderPi = 3.14159
)

var (
	palA = [3]float64{0.5, 0.5, 0.5}
	palB = [3]float64{0.5, 0.5, 0.5}
	palC = [3]float64{1, 1, 1}
	palD = [3]float64{0, 0.2, 0.3}
)

// Sampler reads a 1-D texture at normalised coordinate u.
type Sampler interface {
	Sample(u float64) float64
}

// Context is everything a shaded pixel depends on.
type Context struct {
	Time       float64
	Resolution [2]float64
	Spectrum   Sampler
}

// RGBA is a straight-alpha colour with channels in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Color converts to 8-bit, compositing rgb as-is.
func (c RGBA) Color() color.RGBA {
	return color.RGBA{
		R: uint8(Saturate(c.R)*255 + 0.5),
		G: uint8(Saturate(c.G)*255 + 0.5),
		B: uint8(Saturate(c.B)*255 + 0.5),
		A: uint8(Saturate(c.A)*255 + 0.5),
	}
}

// BarWidth is the base width of a bar at full amplitude.
func BarWidth() float64 {
	return 2 * shaderPi * CircleRadius / (NumBars * 1.25)
}

// FrequencyU returns the texture coordinate bar i samples. Bars fold so
// the spectrum runs up one side of the circle and back down the other.
func FrequencyU(i int) float64 {
	half := NumBars / 2
	j := i
	if i >= half {
		j = NumBars - i
	}
	return float64(j) / float64(half)
}

// Shade returns the visualizer colour at uv in [0, 1]^2, v pointing up.
func Shade(ctx Context, uv r2.Vec) RGBA {
	aspect := 1.0
	if ctx.Resolution[1] != 0 {
		aspect = ctx.Resolution[0] / ctx.Resolution[1]
	}
	p := r2.Vec{X: uv.X * aspect, Y: uv.Y}
	center := r2.Vec{X: aspect * 0.5, Y: 0.5}
	return drawBars(ctx.Spectrum, center, p)
}

func drawBars(spectrum Sampler, center, uv r2.Vec) RGBA {
	width := BarWidth()
	position := r2.Vec{X: center.X, Y: center.Y + CircleRadius}
	rel := r2.Sub(uv, center)

	var alpha float64
	for i := 0; i < NumBars; i++ {
		f := spectrum.Sample(FrequencyU(i))
		height := BarHeight * (0.1 + 0.9*f)
		barUV := r2.Add(Rotate2D(rel, 2*shaderPi*float64(i)/NumBars), center)
		alpha += bar(position, width, height, barUV, f)
	}

	d := Saturate(1.1 * ((r2.Norm(rel) - CircleRadius) / BarHeight))
	d = Smoothstep(0, 1, d)
	d = 0.45 + 0.55*d
	pal := Palette(d, palA, palB, palC, palD)

	return RGBA{
		R: Saturate(pal[0] * alpha),
		G: Saturate(pal[1] * alpha),
		B: Saturate(pal[2] * alpha),
		A: Saturate(alpha),
	}
}

// bar is 1 where uv lies inside the bar standing on position, else 0. The
// top widens and the whole bar lifts slightly with amplitude.
func bar(position r2.Vec, width, height float64, uv r2.Vec, f float64) float64 {
	top := mix(width*0.5, width, Smoothstep(0, 1, f))
	base := r2.Add(r2.Sub(uv, position), r2.Vec{Y: -height*0.5 - f*0.05})

	if Trapezoid(base, width*0.5, top, height*0.5) > 0 {
		return 0
	}
	return 1
}

// Texture1D is a linearly filtered, clamp-to-edge row of texels, matching
// a GPU sampler on a Nx1 texture.
type Texture1D struct {
	texels []float64
}

// NewTexture1D wraps texels without copying.
func NewTexture1D(texels []float64) Texture1D {
	return Texture1D{texels: texels}
}

// Len returns the texel count.
func (t Texture1D) Len() int {
	return len(t.texels)
}

// Sample reads the texture at u with texel centres at (k+0.5)/N.
func (t Texture1D) Sample(u float64) float64 {
	n := len(t.texels)
	if n == 0 {
		return 0
	}
	x := u*float64(n) - 0.5
	i0 := int(math.Floor(x))
	frac := x - float64(i0)
	a := t.texels[clampIndex(i0, n)]
	b := t.texels[clampIndex(i0+1, n)]
	return mix(a, b, frac)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
