// Package scene describes the static listening room: floor, walls and the
// two speakers, in world units with +Y up.
package scene

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"
)

// Extent is the half-size of the square room.
const Extent = 50

// Block is an axis-aligned box given by centre and full size.
type Block struct {
	Center r3.Vec
	Size   r3.Vec
}

// Box returns the block's bounds.
func (b Block) Box() r3.Box {
	half := r3.Scale(0.5, b.Size)
	return r3.Box{Min: r3.Sub(b.Center, half), Max: r3.Add(b.Center, half)}
}

// Grid places the animated cube grid on the face of the grid speaker.
// Rows run along Z, columns stack along Y.
type Grid struct {
	Origin   r3.Vec // World position of row 0's centre line, column 0
	Rows     int
	Cols     int
	Spacing  float64
	CubeSize float64
}

// CellPosition returns the world centre of cell (row, col).
func (g Grid) CellPosition(row, col int) r3.Vec {
	half := (g.Rows - 1) / 2
	return r3.Add(g.Origin, r3.Vec{
		Y: float64(col) * g.Spacing,
		Z: float64(row-half) * g.Spacing,
	})
}

// Screen is a flat rectangle facing Normal.
type Screen struct {
	Center r3.Vec
	Normal r3.Vec
	Width  float64 // Along the horizontal axis in the screen plane
	Height float64 // Along world Y
}

// Spotlight is a cone light with physical distance falloff.
type Spotlight struct {
	Position  r3.Vec
	Target    r3.Vec
	Intensity float64
	Distance  float64 // Cutoff; zero means unbounded
	Angle     float64 // Cone half-angle in radians
	Penumbra  float64 // Fraction of the cone that fades, 0-1
	Decay     float64
}

// Direction returns the unit vector from the light to its target.
func (s Spotlight) Direction() r3.Vec {
	return r3.Unit(r3.Sub(s.Target, s.Position))
}

// Hemisphere is ambient light blended between sky and ground by normal.
type Hemisphere struct {
	Sky       colorful.Color
	Ground    colorful.Color
	Intensity float64
}

// Palette holds the flat surface colours.
type Palette struct {
	Floor    colorful.Color
	Wall     colorful.Color
	SpeakerA colorful.Color
	SpeakerB colorful.Color
	Screen   colorful.Color // Base under the visualizer
}

// Room holds everything static in the scene.
type Room struct {
	Floor    Block
	Walls    [4]Block
	SpeakerA Block // Drives the cube grid
	SpeakerB Block // Carries the visualizer screen
	Grid     Grid
	Screen   Screen

	Spots   [2]Spotlight
	Ambient Hemisphere
	Colors  Palette
}

// Default returns the room layout.
func Default() Room {
	speakerA := Block{Center: r3.Vec{X: -40, Y: 4}, Size: r3.Vec{X: 1, Y: 8, Z: 4}}
	speakerB := Block{Center: r3.Vec{X: 40, Y: 4}, Size: r3.Vec{X: 1, Y: 8, Z: 4}}

	spot := func(x float64) Spotlight {
		return Spotlight{
			Position:  r3.Vec{X: x * 35, Y: 25},
			Target:    r3.Vec{X: x * 40, Y: 4},
			Intensity: 100,
			Distance:  50,
			Angle:     math.Pi / 4,
			Penumbra:  0.5,
			Decay:     1,
		}
	}

	return Room{
		Floor: Block{Size: r3.Vec{X: 2 * Extent, Z: 2 * Extent}},
		Walls: [4]Block{
			{Center: r3.Vec{Y: -40, Z: -Extent}, Size: r3.Vec{X: 100, Y: 100, Z: 4}},
			{Center: r3.Vec{Y: -40, Z: Extent}, Size: r3.Vec{X: 100, Y: 100, Z: 4}},
			{Center: r3.Vec{X: Extent, Y: -40}, Size: r3.Vec{X: 4, Y: 100, Z: 100}},
			{Center: r3.Vec{X: -Extent, Y: -40}, Size: r3.Vec{X: 4, Y: 100, Z: 100}},
		},
		SpeakerA: speakerA,
		SpeakerB: speakerB,
		Grid: Grid{
			// Just proud of the speaker's +X face, bottom cell 3 units below centre
			Origin:   r3.Add(speakerA.Center, r3.Vec{X: 0.625, Y: -3}),
			Rows:     11,
			Cols:     16,
			Spacing:  0.35,
			CubeSize: 0.25,
		},
		Screen: Screen{
			Center: r3.Add(speakerB.Center, r3.Vec{X: -0.51}),
			Normal: r3.Vec{X: -1},
			Width:  4,
			Height: 8,
		},
		Spots: [2]Spotlight{spot(-1), spot(1)},
		Ambient: Hemisphere{
			Sky:       colorful.Hsl(0.6*360, 1, 0.6),
			Ground:    colorful.Hsl(0.095*360, 1, 0.75),
			Intensity: 0.5,
		},
		Colors: Palette{
			Floor:    mustHex("#5c4a3d"),
			Wall:     mustHex("#8c8a85"),
			SpeakerA: mustHex("#55585b"),
			SpeakerB: mustHex("#404040"),
			Screen:   mustHex("#1a1a1a"),
		},
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Volumes returns the boxes the look ray is cast against.
func (r Room) Volumes() []r3.Box {
	v := make([]r3.Box, 0, 1+len(r.Walls))
	v = append(v, r.Floor.Box())
	for _, w := range r.Walls {
		v = append(v, w.Box())
	}
	return v
}
