package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"github.com/pthm-cable/echoroom/audio"
	"github.com/pthm-cable/echoroom/config"
	"github.com/pthm-cable/echoroom/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	mute := flag.Bool("mute", false, "Run without audio")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging). Every line carries
	// the run id so logs can be matched to an output directory.
	runID := uuid.NewString()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("run", runID)
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	slog.Info("config loaded", "path", *configPath, "output_dir", *outputDir)

	var provider *audio.Provider
	if !*mute {
		p, err := audio.NewProvider(cfg.Audio)
		if err != nil {
			// The room still runs; the grid and screen stay idle
			slog.Warn("audio disabled", "error", err)
		} else {
			provider = p
		}
	}

	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Echo Room")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, game.Options{
		Audio:          provider,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
	})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		if provider != nil {
			provider.Close()
		}
		os.Exit(1)
	}
	defer g.Unload()
	g.InitGraphics()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxFrames > 0 && g.Frame() >= int64(*maxFrames) {
			slog.Info("max frames reached", "frame", g.Frame())
			break
		}
	}
}
