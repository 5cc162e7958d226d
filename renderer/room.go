package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/echoroom/scene"
)

// RoomRenderer draws the static room: floor, walls and both speaker
// cabinets. Call between Lighting.Begin and Lighting.End.
type RoomRenderer struct {
	room scene.Room
}

// NewRoomRenderer creates a renderer for room.
func NewRoomRenderer(room scene.Room) *RoomRenderer {
	return &RoomRenderer{room: room}
}

// Draw issues the room geometry.
func (r *RoomRenderer) Draw() {
	c := r.room.Colors

	floor := r.room.Floor
	rl.DrawPlane(vec3(floor.Center), rl.NewVector2(float32(floor.Size.X), float32(floor.Size.Z)), surface(c.Floor, 0))

	for _, w := range r.room.Walls {
		r.drawBlock(w, surface(c.Wall, 0))
	}
	r.drawBlock(r.room.SpeakerA, surface(c.SpeakerA, 0))
	r.drawBlock(r.room.SpeakerB, surface(c.SpeakerB, 0))
}

func (r *RoomRenderer) drawBlock(b scene.Block, col rl.Color) {
	rl.DrawCubeV(vec3(b.Center), vec3(b.Size), col)
}
