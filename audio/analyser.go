package audio

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Analyser turns a block of time-domain samples into byte magnitudes the
// way a browser AnalyserNode does: Blackman window, FFT, magnitude over N,
// exponential smoothing across calls, then decibels mapped onto 0..255.
type Analyser struct {
	size      int
	smoothing float64
	minDB     float64
	maxDB     float64

	fft      *fourier.FFT
	window   []float64
	input    []float64
	coeffs   []complex128
	smoothed []float64
	out      []uint8
}

// NewAnalyser creates an analyser for blocks of size samples, which must be
// a power of two.
func NewAnalyser(size int, smoothing, minDB, maxDB float64) (*Analyser, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("fft size must be a power of two >= 2, got %d", size)
	}
	if maxDB <= minDB {
		return nil, fmt.Errorf("max dB (%g) must exceed min dB (%g)", maxDB, minDB)
	}

	window := make([]float64, size)
	for n := range window {
		x := 2 * math.Pi * float64(n) / float64(size)
		window[n] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
	}

	return &Analyser{
		size:      size,
		smoothing: math.Min(math.Max(smoothing, 0), 1),
		minDB:     minDB,
		maxDB:     maxDB,
		fft:       fourier.NewFFT(size),
		window:    window,
		input:     make([]float64, size),
		smoothed:  make([]float64, size/2),
		out:       make([]uint8, size/2),
	}, nil
}

// Size returns the block length.
func (a *Analyser) Size() int {
	return a.size
}

// Bins returns the number of output bins.
func (a *Analyser) Bins() int {
	return a.size / 2
}

// Analyse consumes one block and returns the byte spectrum. The returned
// slice is reused by the next call.
func (a *Analyser) Analyse(block []float64) []uint8 {
	for i := range a.input {
		var v float64
		if i < len(block) {
			v = block[i]
		}
		a.input[i] = v * a.window[i]
	}

	a.coeffs = a.fft.Coefficients(a.coeffs, a.input)

	scale := 255 / (a.maxDB - a.minDB)
	for k := range a.smoothed {
		mag := cmplx.Abs(a.coeffs[k]) / float64(a.size)
		s := a.smoothing*a.smoothed[k] + (1-a.smoothing)*mag
		if math.IsNaN(s) || math.IsInf(s, 0) {
			s = 0
		}
		a.smoothed[k] = s

		db := 20 * math.Log10(s)
		v := math.Floor(scale * (db - a.minDB))
		switch {
		case v < 0 || math.IsNaN(v):
			a.out[k] = 0
		case v > 255:
			a.out[k] = 255
		default:
			a.out[k] = uint8(v)
		}
	}
	return a.out
}

// Reset clears the smoothing history.
func (a *Analyser) Reset() {
	clear(a.smoothed)
}
