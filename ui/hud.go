package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// StreamStatus describes one audio stream for display.
type StreamStatus struct {
	Name    string
	Track   string
	Playing bool
	Bins    int
	Frame   int64   // Audible frame index once playing
	Waited  float64 // Seconds since load while waiting
	Level   float32 // Mean bin value of the last frame
}

// Text returns the one-line status.
func (s StreamStatus) Text() string {
	if s.Playing {
		return fmt.Sprintf("%s: playing (%d bins, frame %d)", s.Name, s.Bins, s.Frame)
	}
	return fmt.Sprintf("%s: waiting (t=%.1fs)", s.Name, s.Waited)
}

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	FPS        float64
	FrameTime  time.Duration
	Position   [3]float64
	Yaw, Pitch float64
	AudioOn    bool
	Streams    []StreamStatus
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner and returns the Y below it.
func (h *HUD) Draw(data HUDData) int32 {
	r := h.renderer
	x, y := int32(10), int32(10)

	rl.DrawText(data.Title, x, y, 20, rl.White)
	y += 26

	rl.DrawText(fmt.Sprintf("FPS: %.0f | Frame: %s", data.FPS, data.FrameTime.Round(time.Microsecond)),
		x, y, 16, rl.LightGray)
	y += 20
	rl.DrawText(fmt.Sprintf("Pos: %.1f %.1f %.1f | Yaw: %.2f | Pitch: %.2f",
		data.Position[0], data.Position[1], data.Position[2], data.Yaw, data.Pitch),
		x, y, 16, rl.LightGray)
	y += 24

	if !data.AudioOn {
		rl.DrawText("Audio: off", x, y, 16, rl.Gray)
		return y + 20
	}
	for _, s := range data.Streams {
		rl.DrawText(s.Text(), x, y, 16, rl.LightGray)
		y += 20
		if s.Track != "" {
			rl.DrawText(s.Track, x+10, y, 14, rl.Gray)
			y += r.Theme.LineHeight
		}
		if s.Playing {
			y = r.DrawBar(x+10, y, "Level", s.Level, 260)
		}
	}
	return y
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PhaseTime is one row of the timing panel.
type PhaseTime struct {
	Name string
	Avg  time.Duration
	Pct  float64
}

// PerfPanel renders the frame phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(total time.Duration, phases []PhaseTime) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s", total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, ph := range phases {
		color := rl.LightGray
		if ph.Pct > 50 {
			color = rl.Red
		} else if ph.Pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", ph.Name, ph.Avg.Round(time.Microsecond), ph.Pct),
			x, y, 12, color,
		)
		y += 14
	}
}
