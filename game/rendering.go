package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/echoroom/renderer"
	"github.com/pthm-cable/echoroom/telemetry"
)

// InitGraphics creates GPU resources and captures the pointer (must be
// called after the raylib window is created).
func (g *Game) InitGraphics() {
	g.lighting = renderer.NewLighting()
	g.lighting.Init(g.room)
	g.roomR = renderer.NewRoomRenderer(g.room)
	g.gridR = renderer.NewGridRenderer(g.grid)
	g.screenR = renderer.NewScreenRenderer(g.room.Screen, g.room.Colors.Screen)
	g.screenR.Init(g.uniforms)

	rl.DisableCursor()
}

// Update polls the window and advances one frame.
func (g *Game) Update() {
	g.perfCollector.StartFrame()
	g.handleKeys()

	if g.showGUI {
		// Pointer drives the panel, not the view
		g.Step(float64(rl.GetFrameTime()), 0, 0)
		return
	}
	g.pollInput()

	w, h := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	if g.resync {
		// The cursor jumped when it was recaptured; take the new position
		// as the baseline without turning.
		w, h = 0, 0
		g.resync = false
	}
	g.Step(float64(rl.GetFrameTime()), w, h)
}

// Draw renders the frame.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseUpload)
	g.screenR.Upload(g.uniforms)
	g.screenR.Render(g.uniforms)

	g.perfCollector.StartPhase(telemetry.PhaseDraw)
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 22, 28, 255))

	rl.BeginMode3D(g.camera3D())
	g.lighting.Begin()
	g.roomR.Draw()
	g.gridR.Draw()
	g.lighting.End()
	g.screenR.Draw()
	rl.EndMode3D()

	g.drawOverlays()

	rl.EndDrawing()
	g.perfCollector.EndFrame()
}

// camera3D converts the controller view for raylib.
func (g *Game) camera3D() rl.Camera3D {
	v := g.camera.View()
	return rl.Camera3D{
		Position:   rl.NewVector3(float32(v.Eye.X), float32(v.Eye.Y), float32(v.Eye.Z)),
		Target:     rl.NewVector3(float32(v.Target.X), float32(v.Target.Y), float32(v.Target.Z)),
		Up:         rl.NewVector3(float32(v.Up.X), float32(v.Up.Y), float32(v.Up.Z)),
		Fovy:       float32(g.cfg.Screen.FOV),
		Projection: rl.CameraPerspective,
	}
}

func (g *Game) unloadGraphics() {
	if g.lighting != nil {
		g.lighting.Unload()
	}
	if g.screenR != nil {
		g.screenR.Unload()
	}
}
