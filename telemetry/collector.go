package telemetry

import (
	"github.com/pthm-cable/echoroom/camera"
	"github.com/pthm-cable/echoroom/spectrum"
)

// Stream identifies which room stream a frame came from.
type Stream uint8

const (
	StreamGrid Stream = iota
	StreamVisualizer
)

// levelAccum gathers one stream's frames within a window.
type levelAccum struct {
	levels   []float64 // Mean bin value per frame
	peaks    map[int]int
	maxLevel float64
}

func (a *levelAccum) record(f spectrum.Frame) {
	if len(f) == 0 {
		return
	}
	var sum float64
	peak, peakVal := 0, -1.0
	for i, v := range f {
		sum += v
		if v > peakVal {
			peak, peakVal = i, v
		}
	}
	a.levels = append(a.levels, sum/float64(len(f)))
	if peakVal > 0 {
		a.peaks[peak]++
	}
	if peakVal > a.maxLevel {
		a.maxLevel = peakVal
	}
}

// peakBin returns the bin most often loudest, lowest index on ties, or -1.
func (a *levelAccum) peakBin() int {
	best, count := -1, 0
	for bin, n := range a.peaks {
		if n > count || (n == count && bin < best) {
			best, count = bin, n
		}
	}
	return best
}

func (a *levelAccum) reset() {
	a.levels = a.levels[:0]
	clear(a.peaks)
	a.maxLevel = 0
}

// Collector accumulates spectrum frames within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec float64

	elapsed     float64
	windowStart float64
	frames      int

	grid levelAccum
	vis  levelAccum
}

// NewCollector creates a collector flushing every windowDurationSec seconds
// of frame time.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 1
	}
	return &Collector{
		windowDurationSec: windowDurationSec,
		grid:              levelAccum{peaks: make(map[int]int)},
		vis:               levelAccum{peaks: make(map[int]int)},
	}
}

// RecordFrame advances the window clock by one frame.
func (c *Collector) RecordFrame(dt float64) {
	c.elapsed += dt
	c.frames++
}

// RecordSpectrum records a frame from an active stream.
func (c *Collector) RecordSpectrum(s Stream, f spectrum.Frame) {
	switch s {
	case StreamGrid:
		c.grid.record(f)
	case StreamVisualizer:
		c.vis.record(f)
	}
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush() bool {
	return c.elapsed-c.windowStart >= c.windowDurationSec
}

// Flush produces stats for the current window and starts a new one.
func (c *Collector) Flush(cam camera.State) WindowStats {
	stats := WindowStats{
		WindowStartSec: c.windowStart,
		WindowEndSec:   c.elapsed,
		Frames:         c.frames,

		GridFrames:   len(c.grid.levels),
		GridPeakBin:  c.grid.peakBin(),
		GridMaxLevel: c.grid.maxLevel,

		VisFrames:   len(c.vis.levels),
		VisPeakBin:  c.vis.peakBin(),
		VisMaxLevel: c.vis.maxLevel,

		CamX:  cam.Position.X,
		CamY:  cam.Position.Y,
		CamZ:  cam.Position.Z,
		Yaw:   cam.Yaw,
		Pitch: cam.Pitch,
	}
	stats.GridMean, stats.GridP10, stats.GridP50, stats.GridP90 = ComputeLevelStats(c.grid.levels)
	stats.VisMean, _, _, stats.VisP90 = ComputeLevelStats(c.vis.levels)

	c.windowStart = c.elapsed
	c.frames = 0
	c.grid.reset()
	c.vis.reset()
	return stats
}

// WindowDuration returns the window length in seconds.
func (c *Collector) WindowDuration() float64 {
	return c.windowDurationSec
}
