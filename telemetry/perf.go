package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one frame, in the order they run.
const (
	PhaseInput    = "input"
	PhaseCamera   = "camera"
	PhaseSpectrum = "spectrum"
	PhaseUpload   = "upload"
	PhaseDraw     = "draw"
)

// Phases lists every frame phase in order.
var Phases = []string{PhaseInput, PhaseCamera, PhaseSpectrum, PhaseUpload, PhaseDraw}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks frame timings over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Wall time between frame starts, including vsync wait
	lastStart time.Time
	interval  time.Duration

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
		now:           time.Now,
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	now := p.now()
	if !p.lastStart.IsZero() {
		p.interval = now.Sub(p.lastStart)
	}
	p.lastStart = now
	p.frameStart = now
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and begins timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Work per frame, excluding time spent waiting for vsync
	AvgFrameDuration time.Duration
	MinFrameDuration time.Duration
	MaxFrameDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total frame work
	PhasePct map[string]float64

	// Wall clock
	Interval time.Duration
	FPS      float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.interval > 0 {
		fps = float64(time.Second) / float64(p.interval)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg: make(map[string]time.Duration),
			PhasePct: make(map[string]float64),
			Interval: p.interval,
			FPS:      fps,
		}
	}

	var total, minFrame, maxFrame time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration

		if i == 0 || s.FrameDuration < minFrame {
			minFrame = s.FrameDuration
		}
		if s.FrameDuration > maxFrame {
			maxFrame = s.FrameDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	return PerfStats{
		AvgFrameDuration: avg,
		MinFrameDuration: minFrame,
		MaxFrameDuration: maxFrame,
		PhaseAvg:         phaseAvg,
		PhasePct:         phasePct,
		Interval:         p.interval,
		FPS:              fps,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrameDuration.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrameDuration.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrameDuration.Microseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Frame       int64   `csv:"frame"`
	AvgFrameUS  int64   `csv:"avg_frame_us"`
	MinFrameUS  int64   `csv:"min_frame_us"`
	MaxFrameUS  int64   `csv:"max_frame_us"`
	FPS         float64 `csv:"fps"`
	InputPct    float64 `csv:"input_pct"`
	CameraPct   float64 `csv:"camera_pct"`
	SpectrumPct float64 `csv:"spectrum_pct"`
	UploadPct   float64 `csv:"upload_pct"`
	DrawPct     float64 `csv:"draw_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(frame int64) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:       frame,
		AvgFrameUS:  s.AvgFrameDuration.Microseconds(),
		MinFrameUS:  s.MinFrameDuration.Microseconds(),
		MaxFrameUS:  s.MaxFrameDuration.Microseconds(),
		FPS:         s.FPS,
		InputPct:    s.PhasePct[PhaseInput],
		CameraPct:   s.PhasePct[PhaseCamera],
		SpectrumPct: s.PhasePct[PhaseSpectrum],
		UploadPct:   s.PhasePct[PhaseUpload],
		DrawPct:     s.PhasePct[PhaseDraw],
	}
}
