package renderer

import (
	_ "embed"
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/echoroom/scene"
)

var (
	//go:embed shaders/base.vs
	baseVertexSource string
	//go:embed shaders/room.vs
	roomVertexSource string
	//go:embed shaders/room.fs
	roomFragmentSource string
)

// spotUniform is a spotlight as the room shader consumes it.
type spotUniform struct {
	Position    [3]float32
	Direction   [3]float32
	Intensity   float32
	Distance    float32
	ConeCos     float32
	PenumbraCos float32
	Decay       float32
}

func newSpotUniform(s scene.Spotlight) spotUniform {
	dir := s.Direction()
	return spotUniform{
		Position:    vec3f(s.Position),
		Direction:   vec3f(dir),
		Intensity:   float32(s.Intensity),
		Distance:    float32(s.Distance),
		ConeCos:     float32(math.Cos(s.Angle)),
		PenumbraCos: float32(math.Cos(s.Angle * (1 - s.Penumbra))),
		Decay:       float32(s.Decay),
	}
}

// Lighting owns the shader used for every lit surface in the room.
// Shapes drawn between Begin and End are shaded by the room's spotlights
// and hemisphere light.
type Lighting struct {
	shader      rl.Shader
	initialized bool
}

// NewLighting creates an uninitialised lighting pass.
func NewLighting() *Lighting {
	return &Lighting{}
}

// Init compiles the shader and uploads the static light setup (must be
// called after the raylib window is created).
func (l *Lighting) Init(room scene.Room) {
	if l.initialized {
		return
	}
	l.shader = rl.LoadShaderFromMemory(roomVertexSource, roomFragmentSource)

	for i, s := range room.Spots {
		u := newSpotUniform(s)
		l.setVec3(fmt.Sprintf("spots[%d].position", i), u.Position)
		l.setVec3(fmt.Sprintf("spots[%d].direction", i), u.Direction)
		l.setFloat(fmt.Sprintf("spots[%d].intensity", i), u.Intensity)
		l.setFloat(fmt.Sprintf("spots[%d].distance", i), u.Distance)
		l.setFloat(fmt.Sprintf("spots[%d].coneCos", i), u.ConeCos)
		l.setFloat(fmt.Sprintf("spots[%d].penumbraCos", i), u.PenumbraCos)
		l.setFloat(fmt.Sprintf("spots[%d].decay", i), u.Decay)
	}

	sky := room.Ambient.Sky
	ground := room.Ambient.Ground
	l.setVec3("skyColor", [3]float32{float32(sky.R), float32(sky.G), float32(sky.B)})
	l.setVec3("groundColor", [3]float32{float32(ground.R), float32(ground.G), float32(ground.B)})
	l.setFloat("hemiIntensity", float32(room.Ambient.Intensity))

	l.initialized = true
}

func (l *Lighting) setVec3(name string, v [3]float32) {
	rl.SetShaderValue(l.shader, rl.GetShaderLocation(l.shader, name), v[:], rl.ShaderUniformVec3)
}

func (l *Lighting) setFloat(name string, v float32) {
	rl.SetShaderValue(l.shader, rl.GetShaderLocation(l.shader, name), []float32{v}, rl.ShaderUniformFloat)
}

// Begin starts lit drawing.
func (l *Lighting) Begin() {
	rl.BeginShaderMode(l.shader)
}

// End flushes lit drawing.
func (l *Lighting) End() {
	rl.EndShaderMode()
}

// Unload frees resources.
func (l *Lighting) Unload() {
	if l.initialized {
		rl.UnloadShader(l.shader)
		l.initialized = false
	}
}
