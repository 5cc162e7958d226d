package game

import (
	"log/slog"
)

// flushTelemetry writes the stats window once it is complete.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush() {
		return
	}

	stats := g.collector.Flush(g.camera.State())
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		slog.Info("perf", "stats", perfStats)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, g.frame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
