package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/echoroom/components"
	"github.com/pthm-cable/echoroom/systems"
)

// GridRenderer draws the speaker cubes from their ECS components.
// Call between Lighting.Begin and Lighting.End.
type GridRenderer struct {
	grid *systems.GridSystem
	size float64
}

// NewGridRenderer creates a renderer for the cubes owned by grid.
func NewGridRenderer(grid *systems.GridSystem) *GridRenderer {
	return &GridRenderer{grid: grid, size: grid.Layout().CubeSize}
}

// Draw issues one cube per grid entity.
func (g *GridRenderer) Draw() {
	g.grid.Each(func(_ components.GridCell, tr components.Transform, mat components.Material) {
		size := r3.Vec{X: tr.Scale.X * g.size, Y: tr.Scale.Y * g.size, Z: tr.Scale.Z * g.size}
		rl.DrawCubeV(vec3(tr.Position), vec3(size), surface(mat.Base, emission(mat)))
	})
}
