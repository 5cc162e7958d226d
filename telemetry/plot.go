package telemetry

import (
	"fmt"
	"image/color"
	"os"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ReadStats loads window stats written by OutputManager.
func ReadStats(path string) ([]WindowStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stats: %w", err)
	}
	defer f.Close()

	var stats []WindowStats
	if err := gocsv.UnmarshalFile(f, &stats); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return stats, nil
}

var (
	gridColor = color.RGBA{R: 64, G: 64, B: 255, A: 255}
	visColor  = color.RGBA{R: 255, G: 64, B: 64, A: 255}
)

// PlotLevels renders the per-window level means and p90s of both streams
// against session time and saves the chart to path. The format follows the
// file extension.
func PlotLevels(stats []WindowStats, path string) error {
	p := plot.New()
	p.Title.Text = "Stream Levels"
	p.X.Label.Text = "Session time (s)"
	p.Y.Label.Text = "Mean bin level"
	p.Y.Min, p.Y.Max = 0, 1

	series := []struct {
		label  string
		col    color.Color
		dashed bool
		value  func(WindowStats) (float64, bool)
	}{
		{"grid mean", gridColor, false, func(s WindowStats) (float64, bool) { return s.GridMean, s.GridFrames > 0 }},
		{"grid p90", gridColor, true, func(s WindowStats) (float64, bool) { return s.GridP90, s.GridFrames > 0 }},
		{"screen mean", visColor, false, func(s WindowStats) (float64, bool) { return s.VisMean, s.VisFrames > 0 }},
		{"screen p90", visColor, true, func(s WindowStats) (float64, bool) { return s.VisP90, s.VisFrames > 0 }},
	}

	for _, sr := range series {
		pts := make(plotter.XYs, 0, len(stats))
		for _, s := range stats {
			// Windows before the stream started carry no level
			if v, ok := sr.value(s); ok {
				pts = append(pts, plotter.XY{X: s.WindowEndSec, Y: v})
			}
		}
		if len(pts) == 0 {
			continue
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = sr.col
		line.Width = vg.Points(1)
		if sr.dashed {
			line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(line)
		p.Legend.Add(sr.label, line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
