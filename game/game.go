package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/echoroom/audio"
	"github.com/pthm-cable/echoroom/camera"
	"github.com/pthm-cable/echoroom/config"
	"github.com/pthm-cable/echoroom/input"
	"github.com/pthm-cable/echoroom/noise"
	"github.com/pthm-cable/echoroom/renderer"
	"github.com/pthm-cable/echoroom/scene"
	"github.com/pthm-cable/echoroom/spectrum"
	"github.com/pthm-cable/echoroom/systems"
	"github.com/pthm-cable/echoroom/telemetry"
	"github.com/pthm-cable/echoroom/ui"
	"github.com/pthm-cable/echoroom/visualizer"
)

// Options configures a Game.
type Options struct {
	// Audio plays both streams. Nil runs silent unless sources are given.
	Audio *audio.Provider

	// Override the spectrum sources, mainly for tests. Default to the
	// Audio streams, or silence.
	GridSource       spectrum.Source
	VisualizerSource spectrum.Source

	LogStats       bool
	StatsWindowSec float64 // 0 uses config
	OutputDir      string
}

// Game owns the room and runs one frame at a time.
type Game struct {
	cfg  *config.Config
	room scene.Room

	world   *ecs.World
	sampler *input.Sampler
	camera  *camera.FirstPerson
	mapper  *spectrum.Mapper
	grid    *systems.GridSystem

	uniforms *visualizer.Uniforms

	audio            *audio.Provider
	gridSource       spectrum.Source
	visualizerSource spectrum.Source
	audioErr         string // Last reported provider error, to log changes only

	// Rendering, nil until InitGraphics
	lighting *renderer.Lighting
	roomR    *renderer.RoomRenderer
	gridR    *renderer.GridRenderer
	screenR  *renderer.ScreenRenderer
	showHUD  bool
	showGUI  bool
	resync   bool // Next frame re-baselines the pointer

	hud        *ui.HUD
	perfPanel  *ui.PerfPanel
	audioPanel *ui.AudioPanel
	levels     [2]float64 // Last frame mean per stream, grid then screen
	meters     [2]*ui.Meter

	// Telemetry
	registry      *systems.SystemRegistry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool

	frame   int64
	elapsed float64
}

// NewGame builds the room state from cfg. No window is needed until
// InitGraphics.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	room := scene.Default()
	world := ecs.NewWorld()

	g := &Game{
		cfg:      cfg,
		room:     room,
		world:    world,
		sampler:  input.NewSampler(),
		camera:   camera.NewFirstPerson(cameraParams(cfg), room.Volumes()),
		mapper:   spectrum.NewMapper(mapperParams(cfg), noise.NewField(noiseParams(cfg))),
		grid:     systems.NewGridSystem(world, room.Grid),
		uniforms: visualizer.NewUniforms(cfg.Visualizer.Resolution, cfg.Audio.Visualizer.FFTSize/2),

		audio:            opts.Audio,
		gridSource:       opts.GridSource,
		visualizerSource: opts.VisualizerSource,

		registry:      systems.NewSystemRegistry(),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:      opts.LogStats,
		showHUD:       true,
		hud:           ui.NewHUD(),
		perfPanel:     ui.NewPerfPanel(10, 10),
		audioPanel:    ui.NewAudioPanel(320),
		meters:        [2]*ui.Meter{ui.NewMeter(cfg.Screen.TargetFPS), ui.NewMeter(cfg.Screen.TargetFPS)},
	}

	if g.gridSource == nil {
		g.gridSource = audio.Silent{}
		if opts.Audio != nil {
			g.gridSource = opts.Audio.Grid
		}
	}
	if g.visualizerSource == nil {
		g.visualizerSource = audio.Silent{}
		if opts.Audio != nil {
			g.visualizerSource = opts.Audio.Visualizer
		}
	}

	window := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		window = opts.StatsWindowSec
	}
	g.collector = telemetry.NewCollector(window)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	slog.Info("room ready",
		"grid_cells", g.grid.Count(),
		"grid_bins", cfg.Audio.Grid.FFTSize/2,
		"visualizer_bins", len(g.uniforms.Texels),
		"audio", opts.Audio != nil,
		"output_dir", om.Dir(),
	)
	return g, nil
}

// Input returns the sampler device events are queued on.
func (g *Game) Input() *input.Sampler {
	return g.sampler
}

// Camera returns the first-person controller.
func (g *Game) Camera() *camera.FirstPerson {
	return g.camera
}

// Grid returns the cube grid system.
func (g *Game) Grid() *systems.GridSystem {
	return g.grid
}

// Mapper returns the spectrum history mapper.
func (g *Game) Mapper() *spectrum.Mapper {
	return g.mapper
}

// Uniforms returns the visualizer shader state.
func (g *Game) Uniforms() *visualizer.Uniforms {
	return g.uniforms
}

// Frame returns the number of completed steps.
func (g *Game) Frame() int64 {
	return g.frame
}

// Step advances the room by dt seconds for a viewport of w by h pixels.
// Queued input is applied first; every consumer reads the pointer delta
// before the sampler commits it.
func (g *Game) Step(dt, w, h float64) {
	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.sampler.Drain()

	g.perfCollector.StartPhase(telemetry.PhaseCamera)
	g.camera.Update(dt, g.sampler, w, h)
	g.sampler.Update(dt)

	g.perfCollector.StartPhase(telemetry.PhaseSpectrum)
	g.updateAudio(dt)

	frame, ok := g.gridSource.Spectrum()
	if g.mapper.Update(dt, frame, ok) {
		g.grid.Apply(g.mapper.Cells())
		g.levels[0] = frame.Mean()
		g.collector.RecordSpectrum(telemetry.StreamGrid, frame)
	}

	frame, ok = g.visualizerSource.Spectrum()
	if ok {
		g.uniforms.SetSpectrum(frame)
		g.levels[1] = frame.Mean()
		g.collector.RecordSpectrum(telemetry.StreamVisualizer, frame)
	}
	g.uniforms.Advance(dt)
	for i, m := range g.meters {
		m.Step(g.levels[i])
	}

	g.elapsed += dt
	g.frame++
	g.collector.RecordFrame(dt)
	g.flushTelemetry()
}

// updateAudio starts streams whose delay has passed. Failures keep the
// stream silent and are logged when they change.
func (g *Game) updateAudio(dt float64) {
	if g.audio == nil {
		return
	}
	err := g.audio.Update(dt)
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg != g.audioErr {
		if err != nil {
			slog.Warn("audio unavailable", "error", err)
		}
		g.audioErr = msg
	}
}

// Unload releases audio, GPU resources and output files.
func (g *Game) Unload() {
	if g.audio != nil {
		if err := g.audio.Close(); err != nil {
			slog.Warn("closing audio", "error", err)
		}
	}
	g.unloadGraphics()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}
