package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/echoroom/input"
)

// pollInput queues this frame's raylib events on the sampler.
func (g *Game) pollInput() {
	m := rl.GetMousePosition()
	x, y := float64(m.X), float64(m.Y)

	cur := g.sampler.Current()
	if !g.sampler.IsReady() || x != cur.X || y != cur.Y {
		g.sampler.OnPointerMove(x, y)
	}

	buttons := []struct {
		rl  rl.MouseButton
		btn input.Button
	}{
		{rl.MouseButtonLeft, input.ButtonLeft},
		{rl.MouseButtonRight, input.ButtonRight},
	}
	for _, b := range buttons {
		if rl.IsMouseButtonPressed(b.rl) {
			g.sampler.OnButtonDown(b.btn, x, y)
		}
		if rl.IsMouseButtonReleased(b.rl) {
			g.sampler.OnButtonUp(b.btn, x, y)
		}
	}

	keys := g.camera.Params().Keys
	for _, k := range []input.Key{keys.Forward, keys.Back, keys.Left, keys.Right} {
		if rl.IsKeyPressed(int32(k)) {
			g.sampler.OnKeyDown(k)
		}
		if rl.IsKeyReleased(int32(k)) {
			g.sampler.OnKeyUp(k)
		}
	}
}

// handleKeys processes window-level toggles.
func (g *Game) handleKeys() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.showHUD = !g.showHUD
	}
	// The panel needs a free cursor to drag sliders
	if rl.IsKeyPressed(rl.KeyTab) {
		g.showGUI = !g.showGUI
		if g.showGUI {
			rl.EnableCursor()
			g.releaseKeys()
		} else {
			rl.DisableCursor()
			g.resync = true
		}
	}
}

// releaseKeys lifts every bound key so movement stops while the panel is
// open.
func (g *Game) releaseKeys() {
	keys := g.camera.Params().Keys
	for _, k := range []input.Key{keys.Forward, keys.Back, keys.Left, keys.Right} {
		g.sampler.OnKeyUp(k)
	}
}
