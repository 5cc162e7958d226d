// Package camera provides a first-person fly camera for the listening room.
package camera

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/echoroom/input"
)

// Input is the per-frame pointer and keyboard state the camera reads.
type Input interface {
	IsReady() bool
	Delta() (dx, dy float64)
	Key(k input.Key) bool
}

// Bindings maps movement directions to keys.
type Bindings struct {
	Forward, Back, Left, Right input.Key
}

// Params configures the controller.
type Params struct {
	// Radians per full-viewport pointer sweep
	YawSensitivity   float64
	PitchSensitivity float64
	PitchLimit       float64

	// World units per second
	MoveSpeed float64

	// Orientation smoothing: t = 1 - Base^(Rate*dt)
	SmoothingBase float64
	SmoothingRate float64

	BobMagnitude float64
	BobFrequency float64

	// Far point distance when the look ray hits nothing
	LookDistance float64

	Start r3.Vec
	Keys  Bindings
}

// DefaultParams returns the room walk-through tuning.
func DefaultParams() Params {
	return Params{
		YawSensitivity:   8,
		PitchSensitivity: 5,
		PitchLimit:       math.Pi / 3,
		MoveSpeed:        10,
		SmoothingBase:    0.001,
		SmoothingRate:    5,
		BobMagnitude:     0.175,
		BobFrequency:     10,
		LookDistance:     100,
		Start:            r3.Vec{X: 30, Y: 2, Z: 0},
		Keys:             Bindings{Forward: 'W', Back: 'S', Left: 'A', Right: 'D'},
	}
}

// State is the integrated controller state.
type State struct {
	Orientation quat.Number // Smoothed, before the look-at correction
	Position    r3.Vec      // Logical position, without bob
	Yaw, Pitch  float64
	BobPhase    float64
	BobActive   bool
}

// View is what the renderer needs to place the camera.
type View struct {
	Eye         r3.Vec
	Target      r3.Vec
	Up          r3.Vec
	Orientation quat.Number
	Hit         bool // Target lies on a collision volume
}

// FirstPerson is a mouse-look, WASD-move camera with head bob.
type FirstPerson struct {
	params  Params
	volumes []r3.Box
	state   State
	view    View
}

// NewFirstPerson places a controller at p.Start facing -Z. volumes are the
// boxes the look ray is cast against; nil is allowed.
func NewFirstPerson(p Params, volumes []r3.Box) *FirstPerson {
	c := &FirstPerson{
		params:  p,
		volumes: volumes,
		state: State{
			Orientation: identity,
			Position:    p.Start,
		},
	}
	c.updateView()
	return c
}

// State returns a copy of the integrated state.
func (c *FirstPerson) State() State {
	return c.state
}

// View returns the view computed by the last update.
func (c *FirstPerson) View() View {
	return c.view
}

// Params returns the controller configuration.
func (c *FirstPerson) Params() Params {
	return c.params
}

// SetVolumes replaces the collision volumes used for the look target.
func (c *FirstPerson) SetVolumes(volumes []r3.Box) {
	c.volumes = volumes
}

// Update advances the camera by dt seconds. Nothing changes until in is
// ready. Returns whether the state was advanced.
func (c *FirstPerson) Update(dt float64, in Input, viewportW, viewportH float64) bool {
	if !in.IsReady() {
		return false
	}

	c.updateRotation(dt, in, viewportW, viewportH)
	c.updateTranslation(dt, in)
	c.updateBob(dt)
	c.updateView()
	return true
}

func (c *FirstPerson) updateRotation(dt float64, in Input, w, h float64) {
	if w > 0 && h > 0 {
		dx, dy := in.Delta()
		c.state.Yaw += -(dx / w) * c.params.YawSensitivity
		c.state.Pitch = clamp(c.state.Pitch-(dy/h)*c.params.PitchSensitivity,
			-c.params.PitchLimit, c.params.PitchLimit)
	}

	target := quat.Mul(axisAngle(axisY, c.state.Yaw), axisAngle(axisX, c.state.Pitch))
	t := SmoothingFactor(c.params.SmoothingBase, c.params.SmoothingRate, dt)
	c.state.Orientation = normalize(Slerp(c.state.Orientation, target, t))
}

func (c *FirstPerson) updateTranslation(dt float64, in Input) {
	var fwd, strafe float64
	if in.Key(c.params.Keys.Forward) {
		fwd++
	}
	if in.Key(c.params.Keys.Back) {
		fwd--
	}
	if in.Key(c.params.Keys.Left) {
		strafe++
	}
	if in.Key(c.params.Keys.Right) {
		strafe--
	}

	// Movement follows yaw only so looking up does not lift the camera
	yaw := axisAngle(axisY, c.state.Yaw)
	f := r3.Scale(fwd*c.params.MoveSpeed*dt, rotate(yaw, forward))
	l := r3.Scale(strafe*c.params.MoveSpeed*dt, rotate(yaw, left))
	c.state.Position = r3.Add(c.state.Position, r3.Add(f, l))

	if fwd != 0 || strafe != 0 {
		c.state.BobActive = true
	}
}

func (c *FirstPerson) updateBob(dt float64) {
	if !c.state.BobActive || c.params.BobFrequency <= 0 {
		return
	}

	// Run to the end of the current half-step, then stop on a zero crossing
	halfStep := math.Pi / c.params.BobFrequency
	next := 1 + math.Floor((c.state.BobPhase+1e-6)/halfStep)
	nextTime := next * halfStep

	c.state.BobPhase = math.Min(c.state.BobPhase+dt, nextTime)
	if c.state.BobPhase == nextTime {
		c.state.BobActive = false
		c.state.BobPhase = 0
	}
}

func (c *FirstPerson) updateView() {
	bob := math.Sin(c.state.BobPhase*c.params.BobFrequency) * c.params.BobMagnitude
	eye := r3.Add(c.state.Position, r3.Vec{Y: bob})

	ray := Ray{Origin: c.state.Position, Dir: rotate(c.state.Orientation, forward)}
	target, hit := ray.Nearest(c.volumes, c.params.LookDistance)

	orientation := c.state.Orientation
	if q, ok := LookRotation(eye, target, axisY); ok {
		orientation = q
	}

	c.view = View{
		Eye:         eye,
		Target:      target,
		Up:          rotate(orientation, axisY),
		Orientation: orientation,
		Hit:         hit,
	}
}

// SmoothingFactor is the frame-rate independent slerp fraction for a step
// of dt seconds.
func SmoothingFactor(base, rate, dt float64) float64 {
	return 1 - math.Pow(base, rate*dt)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
