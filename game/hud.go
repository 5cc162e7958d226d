package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/echoroom/audio"
	"github.com/pthm-cable/echoroom/ui"
)

const controlsLegend = "[WASD] move  [Tab] panel  [F1] HUD  [F11] fullscreen"

// hudData gathers the HUD state for this frame.
func (g *Game) hudData() ui.HUDData {
	stats := g.perfCollector.Stats()
	state := g.camera.State()

	data := ui.HUDData{
		Title:     "Echo Room",
		FPS:       stats.FPS,
		FrameTime: stats.AvgFrameDuration,
		Position:  [3]float64{state.Position.X, state.Position.Y, state.Position.Z},
		Yaw:       state.Yaw,
		Pitch:     state.Pitch,
		AudioOn:   g.audio != nil,
	}
	if g.audio != nil {
		data.Streams = []ui.StreamStatus{
			g.streamStatus("Grid", g.audio.Grid, g.meters[0].Value()),
			g.streamStatus("Screen", g.audio.Visualizer, g.meters[1].Value()),
		}
	}
	return data
}

func (g *Game) streamStatus(name string, s *audio.Stream, level float64) ui.StreamStatus {
	return ui.StreamStatus{
		Name:    name,
		Track:   s.Metadata().Label(),
		Playing: s.Active(),
		Bins:    s.Bins(),
		Frame:   s.Position(),
		Waited:  g.elapsed,
		Level:   float32(level),
	}
}

// phaseTimes lists the registered frame phases with their share of the
// frame, in registration order.
func (g *Game) phaseTimes() []ui.PhaseTime {
	stats := g.perfCollector.Stats()
	infos := g.registry.All()
	out := make([]ui.PhaseTime, 0, len(infos))
	for _, info := range infos {
		out = append(out, ui.PhaseTime{
			Name: info.Name,
			Avg:  stats.PhaseAvg[info.ID],
			Pct:  stats.PhasePct[info.ID],
		})
	}
	return out
}

// volumeChannels returns the panel sliders, empty when audio is off.
func (g *Game) volumeChannels() []ui.Channel {
	if g.audio == nil {
		return nil
	}
	return []ui.Channel{
		{Label: "Grid", Target: g.audio.Grid},
		{Label: "Screen", Target: g.audio.Visualizer},
	}
}

// drawOverlays renders the HUD, timings and the audio panel.
func (g *Game) drawOverlays() {
	if g.showHUD {
		y := g.hud.Draw(g.hudData())
		g.perfPanel.SetPosition(10, y+10)
		g.perfPanel.Draw(g.perfCollector.Stats().AvgFrameDuration, g.phaseTimes())
		g.hud.DrawControls(int32(rl.GetScreenHeight()), controlsLegend)
	}
	g.audioPanel.SetVisible(g.showGUI)
	g.audioPanel.Draw(int32(rl.GetScreenWidth()), g.volumeChannels())
}
