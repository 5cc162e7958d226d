package telemetry

import (
	"log/slog"
	"math"
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCollector(window int) (*PerfCollector, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(window)
	pc.now = clock.now
	return pc, clock
}

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc, clock := newTestCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseCamera)
		clock.advance(100 * time.Microsecond)
		pc.StartPhase(PhaseDraw)
		clock.advance(300 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgFrameDuration != 400*time.Microsecond {
		t.Errorf("expected 400us frames, got %v", stats.AvgFrameDuration)
	}
	if stats.PhaseAvg[PhaseCamera] != 100*time.Microsecond {
		t.Errorf("expected camera 100us, got %v", stats.PhaseAvg[PhaseCamera])
	}
	if math.Abs(stats.PhasePct[PhaseDraw]-75) > 1e-9 {
		t.Errorf("expected draw at 75%%, got %v", stats.PhasePct[PhaseDraw])
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc, clock := newTestCollector(5)

	// Slow frames fall out of the window
	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseSpectrum)
		clock.advance(time.Millisecond)
		pc.EndFrame()
	}
	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseSpectrum)
		clock.advance(100 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.MaxFrameDuration != 100*time.Microsecond {
		t.Errorf("expected old samples evicted, max %v", stats.MaxFrameDuration)
	}
	if stats.MinFrameDuration != 100*time.Microsecond {
		t.Errorf("expected min 100us, got %v", stats.MinFrameDuration)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgFrameDuration != 0 {
		t.Error("expected zero avg frame duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_FrameInterval(t *testing.T) {
	pc, clock := newTestCollector(10)

	pc.StartFrame()
	pc.EndFrame()
	clock.advance(20 * time.Millisecond)
	pc.StartFrame()
	pc.EndFrame()

	stats := pc.Stats()
	if stats.Interval != 20*time.Millisecond {
		t.Errorf("expected 20ms interval, got %v", stats.Interval)
	}
	if math.Abs(stats.FPS-50) > 1e-9 {
		t.Errorf("expected 50 fps, got %v", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgFrameDuration: 2 * time.Millisecond,
		PhasePct:         map[string]float64{PhaseInput: 1, PhaseUpload: 4, PhaseDraw: 80},
		FPS:              60,
	}
	rec := s.ToCSV(120)
	if rec.Frame != 120 || rec.AvgFrameUS != 2000 {
		t.Errorf("unexpected frame fields: %+v", rec)
	}
	if rec.InputPct != 1 || rec.UploadPct != 4 || rec.DrawPct != 80 || rec.CameraPct != 0 {
		t.Errorf("unexpected phase fields: %+v", rec)
	}
}

func TestPerfStats_LogValueSkipsIdlePhases(t *testing.T) {
	s := PerfStats{PhasePct: map[string]float64{PhaseDraw: 90.25, PhaseInput: 0.05}}
	v := s.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("expected group value, got %v", v.Kind())
	}
	keys := make(map[string]slog.Value)
	for _, a := range v.Group() {
		keys[a.Key] = a.Value
	}
	if got := keys["draw_pct"].Float64(); got != 90.2 {
		t.Errorf("expected draw_pct 90.2, got %v", got)
	}
	if _, ok := keys["input_pct"]; ok {
		t.Error("expected negligible phase omitted")
	}
}
