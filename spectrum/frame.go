// Package spectrum turns a stream of frequency frames into the animated
// speaker grid: scales and colours per cell, aged by row.
package spectrum

// Frame is one spectrum snapshot with bins normalised to [0, 1].
type Frame []float64

// Source produces spectrum frames. ok is false while the source is not
// active yet; callers skip the frame in that case.
type Source interface {
	Spectrum() (f Frame, ok bool)
}

// FromBytes converts analyser bytes (0..255) into a Frame.
func FromBytes(b []uint8) Frame {
	f := make(Frame, len(b))
	for i, v := range b {
		f[i] = float64(v) / 255
	}
	return f
}

// Bytes converts the frame back to 0..255 with clamping, for texture upload.
func (f Frame) Bytes() []uint8 {
	b := make([]uint8, len(f))
	for i, v := range f {
		b[i] = uint8(clamp01(v)*255 + 0.5)
	}
	return b
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Mean returns the average bin value, or 0 for an empty frame.
func (f Frame) Mean() float64 {
	if len(f) == 0 {
		return 0
	}
	var sum float64
	for _, v := range f {
		sum += v
	}
	return sum / float64(len(f))
}
