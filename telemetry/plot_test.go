package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadStats_ReadsWrittenWindows(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		require.NoError(t, om.WriteStats(WindowStats{
			WindowEndSec: float64(i) * 10,
			Frames:       600,
			GridFrames:   600,
			GridMean:     0.1 * float64(i),
			GridPeakBin:  -1,
			VisPeakBin:   i,
		}))
	}
	require.NoError(t, om.Close())

	stats, err := ReadStats(filepath.Join(dir, "telemetry.csv"))
	require.NoError(t, err)
	require.Len(t, stats, 3)

	assert.Equal(t, 30.0, stats[2].WindowEndSec)
	assert.Equal(t, 600, stats[0].Frames)
	assert.InDelta(t, 0.2, stats[1].GridMean, 1e-9)
	assert.Equal(t, -1, stats[0].GridPeakBin)
	assert.Equal(t, 3, stats[2].VisPeakBin)
}

func TestReadStats_MissingFile(t *testing.T) {
	_, err := ReadStats(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestPlotLevels_WritesImage(t *testing.T) {
	stats := []WindowStats{
		{WindowEndSec: 10, Frames: 600},
		{WindowEndSec: 20, Frames: 600, GridFrames: 300, GridMean: 0.3, GridP90: 0.6},
		{WindowEndSec: 30, Frames: 600, GridFrames: 600, GridMean: 0.4, GridP90: 0.7, VisFrames: 600, VisMean: 0.2, VisP90: 0.5},
	}

	path := filepath.Join(t.TempDir(), "levels.png")
	require.NoError(t, PlotLevels(stats, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
