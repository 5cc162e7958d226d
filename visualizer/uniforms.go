package visualizer

import (
	"github.com/pthm-cable/echoroom/spectrum"
)

// Uniforms is the per-frame shader input. The renderer uploads Texels when
// Dirty and clears the flag afterwards.
type Uniforms struct {
	Time       float64
	Resolution [2]float64
	Texels     []uint8
	Dirty      bool

	sample []float64
}

// NewUniforms creates uniforms for a bins-wide spectrum texture.
func NewUniforms(resolution [2]float64, bins int) *Uniforms {
	return &Uniforms{
		Resolution: resolution,
		Texels:     make([]uint8, bins),
		sample:     make([]float64, bins),
	}
}

// Advance accumulates frame time.
func (u *Uniforms) Advance(dt float64) {
	u.Time += dt
}

// SetSpectrum overwrites the texels with f. Bins beyond the texture width
// are dropped; missing bins read as zero.
func (u *Uniforms) SetSpectrum(f spectrum.Frame) {
	b := f.Bytes()
	n := copy(u.Texels, b)
	clear(u.Texels[n:])
	u.Dirty = true
}

// Uploaded clears the dirty flag.
func (u *Uniforms) Uploaded() {
	u.Dirty = false
}

// Context returns a shading context over the current texels, as the GPU
// sees them after 8-bit quantisation.
func (u *Uniforms) Context() Context {
	for i, b := range u.Texels {
		u.sample[i] = float64(b) / 255
	}
	return Context{
		Time:       u.Time,
		Resolution: u.Resolution,
		Spectrum:   NewTexture1D(u.sample),
	}
}
