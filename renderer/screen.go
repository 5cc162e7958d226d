package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/echoroom/scene"
	"github.com/pthm-cable/echoroom/visualizer"
)

// ScreenRenderer draws the radial bar visualizer onto the speaker screen.
// The shader runs into an offscreen target at the visualizer resolution,
// which is then mapped onto a plane in the room.
type ScreenRenderer struct {
	screen scene.Screen
	base   rl.Color

	shader        rl.Shader
	timeLoc       int32
	resolutionLoc int32
	audioLoc      int32

	spectrumTex rl.Texture2D
	white       rl.Texture2D
	target      rl.RenderTexture2D
	plane       rl.Model
	pixels      []color.RGBA

	width, height int32
	initialized   bool
}

// NewScreenRenderer creates a renderer for screen with the given base
// colour under the visualizer.
func NewScreenRenderer(screen scene.Screen, base colorful.Color) *ScreenRenderer {
	return &ScreenRenderer{screen: screen, base: surface(base, 1)}
}

// Init initializes GPU resources sized for u (must be called after raylib
// window is created).
func (s *ScreenRenderer) Init(u *visualizer.Uniforms) {
	if s.initialized {
		return
	}

	s.width = int32(u.Resolution[0])
	s.height = int32(u.Resolution[1])
	s.target = rl.LoadRenderTexture(s.width, s.height)
	rl.SetTextureFilter(s.target.Texture, rl.FilterBilinear)

	s.shader = rl.LoadShaderFromMemory(baseVertexSource, visualizer.FragmentSource)
	s.timeLoc = rl.GetShaderLocation(s.shader, "iTime")
	s.resolutionLoc = rl.GetShaderLocation(s.shader, "iResolution")
	s.audioLoc = rl.GetShaderLocation(s.shader, "audioDataTexture")

	resolution := []float32{float32(u.Resolution[0]), float32(u.Resolution[1])}
	rl.SetShaderValue(s.shader, s.resolutionLoc, resolution, rl.ShaderUniformVec2)

	// One texel per bin, read as the red channel
	img := rl.GenImageColor(len(u.Texels), 1, rl.Black)
	s.spectrumTex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(s.spectrumTex, rl.FilterBilinear)
	rl.SetTextureWrap(s.spectrumTex, rl.WrapClamp)
	s.pixels = make([]color.RGBA, len(u.Texels))

	img = rl.GenImageColor(1, 1, rl.White)
	s.white = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	mesh := rl.GenMeshPlane(float32(s.screen.Width), float32(s.screen.Height), 1, 1)
	s.plane = rl.LoadModelFromMesh(mesh)
	s.plane.Transform = screenTransform(s.screen)
	rl.SetMaterialTexture(s.plane.Materials, rl.MapDiffuse, s.target.Texture)

	s.initialized = true
}

// Upload pushes the spectrum texels when they changed this frame.
// Returns whether an upload happened.
func (s *ScreenRenderer) Upload(u *visualizer.Uniforms) bool {
	if !s.initialized || !u.Dirty {
		return false
	}
	for i, v := range u.Texels {
		s.pixels[i] = color.RGBA{R: v, A: 255}
	}
	rl.UpdateTexture(s.spectrumTex, s.pixels)
	u.Uploaded()
	return true
}

// Render runs the visualizer shader into the offscreen target. Call
// outside 3D mode.
func (s *ScreenRenderer) Render(u *visualizer.Uniforms) {
	if !s.initialized {
		return
	}

	rl.BeginTextureMode(s.target)
	rl.ClearBackground(rl.Black)
	rl.BeginShaderMode(s.shader)

	rl.SetShaderValue(s.shader, s.timeLoc, []float32{float32(u.Time)}, rl.ShaderUniformFloat)
	rl.SetShaderValueTexture(s.shader, s.audioLoc, s.spectrumTex)

	// Flipped source: render targets are stored bottom-up
	src := rl.Rectangle{X: 0, Y: 0, Width: 1, Height: -1}
	dst := rl.Rectangle{X: 0, Y: 0, Width: float32(s.width), Height: float32(s.height)}
	rl.DrawTexturePro(s.white, src, dst, rl.Vector2{}, 0, s.base)

	rl.EndShaderMode()
	rl.EndTextureMode()
}

// Target returns the offscreen texture holding the last Render. Rows are
// stored bottom-up, so a readback comes out with the visualizer upright.
func (s *ScreenRenderer) Target() rl.Texture2D {
	return s.target.Texture
}

// Draw places the rendered screen in the room. Call inside 3D mode.
func (s *ScreenRenderer) Draw() {
	if !s.initialized {
		return
	}
	rl.DrawModel(s.plane, rl.Vector3{}, 1, rl.White)
}

// Unload frees resources.
func (s *ScreenRenderer) Unload() {
	if s.initialized {
		rl.UnloadShader(s.shader)
		rl.UnloadTexture(s.spectrumTex)
		rl.UnloadTexture(s.white)
		rl.UnloadRenderTexture(s.target)
		rl.UnloadModel(s.plane)
		s.initialized = false
	}
}

// screenTransform maps the XZ plane mesh onto the screen: local +Y becomes
// the normal, local +X the viewer's right and local +Z world down, so
// texture v runs from the top edge.
func screenTransform(sc scene.Screen) rl.Matrix {
	n := r3.Unit(sc.Normal)
	right := r3.Unit(r3.Cross(r3.Scale(-1, n), r3.Vec{Y: 1}))
	down := r3.Cross(right, n)
	c := sc.Center

	return rl.Matrix{
		M0: float32(right.X), M4: float32(n.X), M8: float32(down.X), M12: float32(c.X),
		M1: float32(right.Y), M5: float32(n.Y), M9: float32(down.Y), M13: float32(c.Y),
		M2: float32(right.Z), M6: float32(n.Z), M10: float32(down.Z), M14: float32(c.Z),
		M15: 1,
	}
}
