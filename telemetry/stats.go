package telemetry

import (
	"log/slog"
	"math"
	"sort"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartSec float64 `csv:"-"`
	WindowEndSec   float64 `csv:"window_end"`
	Frames         int     `csv:"frames"`

	// Grid stream: mean bin level per frame, then distributed over the window
	GridFrames   int     `csv:"grid_frames"`
	GridMean     float64 `csv:"grid_mean"`
	GridP10      float64 `csv:"grid_p10"`
	GridP50      float64 `csv:"grid_p50"`
	GridP90      float64 `csv:"grid_p90"`
	GridPeakBin  int     `csv:"grid_peak_bin"` // Most often loudest bin, -1 if silent
	GridMaxLevel float64 `csv:"grid_max"`

	// Visualizer stream
	VisFrames   int     `csv:"vis_frames"`
	VisMean     float64 `csv:"vis_mean"`
	VisP90      float64 `csv:"vis_p90"`
	VisPeakBin  int     `csv:"vis_peak_bin"`
	VisMaxLevel float64 `csv:"vis_max"`

	// Viewer pose at window end
	CamX  float64 `csv:"cam_x"`
	CamY  float64 `csv:"cam_y"`
	CamZ  float64 `csv:"cam_z"`
	Yaw   float64 `csv:"yaw"`
	Pitch float64 `csv:"pitch"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeLevelStats calculates mean and percentiles from per-frame levels.
func ComputeLevelStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// round3 keeps CSV and log output readable.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_start", round3(s.WindowStartSec)),
		slog.Float64("window_end", round3(s.WindowEndSec)),
		slog.Int("frames", s.Frames),
		slog.Int("grid_frames", s.GridFrames),
		slog.Float64("grid_mean", round3(s.GridMean)),
		slog.Float64("grid_p90", round3(s.GridP90)),
		slog.Int("grid_peak_bin", s.GridPeakBin),
		slog.Int("vis_frames", s.VisFrames),
		slog.Float64("vis_mean", round3(s.VisMean)),
		slog.Int("vis_peak_bin", s.VisPeakBin),
		slog.Float64("yaw", round3(s.Yaw)),
		slog.Float64("pitch", round3(s.Pitch)),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
