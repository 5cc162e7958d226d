// Grid preview tool - drives the speaker grid mapping from a synthetic
// spectrum and exposes the noise and mapping parameters as sliders.
//
// Usage: go run ./cmd/gridpreview [-config config.yaml]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/echoroom/config"
	"github.com/pthm-cable/echoroom/noise"
	"github.com/pthm-cable/echoroom/spectrum"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	bins         = 16
)

// signal is the synthetic input: a peak sweeping across the bins on top of
// a low floor.
type signal struct {
	Level float32
	Width float32
	Sweep float32 // Cycles per second
	Floor float32
}

func (s signal) frame(t float64) spectrum.Frame {
	f := make(spectrum.Frame, bins)
	center := (0.5 + 0.5*math.Sin(2*math.Pi*float64(s.Sweep)*t)) * (bins - 1)
	w := math.Max(float64(s.Width), 0.1)
	for i := range f {
		d := (float64(i) - center) / w
		f[i] = min(1, float64(s.Floor)+float64(s.Level)*math.Exp(-d*d))
	}
	return f
}

// tuning is the slice of config the preview edits.
type tuning struct {
	Noise config.NoiseConfig `yaml:"noise"`
	Grid  config.GridConfig  `yaml:"grid"`
}

func main() {
	configPath := flag.String("config", "", "Path to config file (empty = embedded defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "Grid Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	defaults := tuning{Noise: cfg.Noise, Grid: cfg.Grid}
	params := defaults
	sig := signal{Level: 0.9, Width: 2, Sweep: 0.25, Floor: 0.05}

	mapper := newMapper(params)
	var t float64
	running := true

	for !rl.WindowShouldClose() {
		dt := float64(rl.GetFrameTime())
		if running {
			t += dt
			mapper.Update(dt, sig.frame(t), true)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawGrid(mapper.Cells(), params.Grid.ScaleGain)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Time: %.1f  Noise t: %.3f  Rows: %d", t, mapper.TimeIndex(), mapper.History().Len()), 15, statsY, 16, rl.DarkGray)
		rl.DrawText("Rows run top (newest) to bottom; bar length is X scale", 15, statsY+20, 14, rl.Gray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Grid Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rebuild := false
		setF := func(label, lo, hi string, v *float64, min, max float32) {
			nv := slider(panelX, &panelY, label, lo, hi, float32(*v), min, max)
			if nv != float32(*v) {
				*v = float64(nv)
				rebuild = true
			}
		}

		octaves := float64(params.Noise.Octaves)
		setF("Octaves", "1", "6", &octaves, 1, 6)
		params.Noise.Octaves = int(octaves)
		setF("Persistence", "0", "2", &params.Noise.Persistence, 0, 2)
		setF("Lacunarity", "1", "4", &params.Noise.Lacunarity, 1, 4)
		setF("Exponentiation", "0.5", "4", &params.Noise.Exponentiation, 0.5, 4)
		setF("Noise scale", "0.01", "1", &params.Noise.Scale, 0.01, 1)
		setF("Time rate", "0", "1", &params.Grid.TimeRate, 0, 1)
		setF("Scale gain", "0", "12", &params.Grid.ScaleGain, 0, 12)

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		rl.DrawText("Signal", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		sig.Level = slider(panelX, &panelY, "Peak level", "0", "1", sig.Level, 0, 1)
		sig.Width = slider(panelX, &panelY, "Peak width (bins)", "0.5", "8", sig.Width, 0.5, 8)
		sig.Sweep = slider(panelX, &panelY, "Sweep (Hz)", "0", "2", sig.Sweep, 0, 2)

		if rebuild {
			mapper = newMapper(params)
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(running, "Pause", "Run")) {
			running = !running
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			mapper = newMapper(params)
			t = 0
		}
		panelY += 45

		out, err := yaml.Marshal(params)
		if err != nil {
			out = []byte(err.Error())
		}
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 12, rl.Gray)
			panelY += 14
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(string(out))
		}

		rl.EndDrawing()
	}
}

func newMapper(p tuning) *spectrum.Mapper {
	field := noise.NewField(noise.Params{
		Octaves:        p.Noise.Octaves,
		Persistence:    p.Noise.Persistence,
		Lacunarity:     p.Noise.Lacunarity,
		Exponentiation: p.Noise.Exponentiation,
		Height:         p.Noise.Height,
		Scale:          p.Noise.Scale,
		Seed:           p.Noise.Seed,
	})
	return spectrum.NewMapper(spectrum.Params{
		Rows:      p.Grid.Rows,
		TimeRate:  p.Grid.TimeRate,
		RowStep:   p.Grid.RowStep,
		ColStep:   p.Grid.ColStep,
		ScaleGain: p.Grid.ScaleGain,
	}, field)
}

// slider draws a labelled slider at (x, *y), advances *y and returns the
// new value.
func slider(x float32, y *float32, label, lo, hi string, v, min, max float32) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	nv := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		lo, hi,
		v, min, max,
	)
	rl.DrawText(fmt.Sprintf("%.3f", nv), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return nv
}

// drawGrid draws one horizontal bar per cell inside the preview square.
func drawGrid(cells [][]spectrum.Cell, gain float64) {
	rl.DrawRectangle(10, 10, previewSize, previewSize, rl.Black)
	rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)
	if len(cells) == 0 {
		return
	}

	rowH := float32(previewSize) / float32(len(cells))
	maxScale := float32(2 + gain)
	for r, row := range cells {
		if len(row) == 0 {
			continue
		}
		colW := float32(previewSize) / float32(len(row))
		for c, cell := range row {
			length := min(float32(cell.Scale.X)/maxScale, 1) * (rowH - 4)
			col := cell.Base.BlendRgb(cell.Emissive, 0.5).Clamped()
			r8, g8, b8 := col.RGB255()
			x := 10 + float32(c)*colW + 2
			y := 10 + float32(r)*rowH + (rowH-length)/2
			rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: colW - 4, Height: length}, rl.NewColor(r8, g8, b8, 255))
		}
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
