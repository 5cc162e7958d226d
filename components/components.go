// Package components defines ECS components for the listening room.
package components

import (
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"
)

// GridCell tags a cube with its place in the speaker grid.
// Row 0 shows the newest spectrum frame.
type GridCell struct {
	Row, Col int
}

// Transform places a cube in the world.
type Transform struct {
	Position r3.Vec
	Scale    r3.Vec
}

// Material is the cube's surface colour.
type Material struct {
	Base     colorful.Color
	Emissive colorful.Color // Added on top of lit colour
}
