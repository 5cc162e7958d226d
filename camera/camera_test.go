package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/echoroom/input"
)

type fakeInput struct {
	ready  bool
	dx, dy float64
	keys   map[input.Key]bool
}

func newFakeInput() *fakeInput {
	return &fakeInput{ready: true, keys: map[input.Key]bool{}}
}

func (f *fakeInput) IsReady() bool             { return f.ready }
func (f *fakeInput) Delta() (float64, float64) { return f.dx, f.dy }
func (f *fakeInput) Key(k input.Key) bool      { return f.keys[k] }

func (f *fakeInput) press(k input.Key, down bool) {
	f.keys[k] = down
}

func vecNear(a, b r3.Vec, tol float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= tol
}

const (
	viewW = 1920.0
	viewH = 1080.0
)

func TestNotReadyLeavesCameraUntouched(t *testing.T) {
	c := NewFirstPerson(DefaultParams(), nil)
	before := c.State()
	beforeView := c.View()

	in := newFakeInput()
	in.ready = false
	in.dx = 500
	in.press('W', true)

	if c.Update(1.0/60, in, viewW, viewH) {
		t.Error("expected update to be skipped")
	}
	if c.State() != before {
		t.Errorf("state changed while input not ready: %+v -> %+v", before, c.State())
	}
	if c.View() != beforeView {
		t.Error("view changed while input not ready")
	}
}

func TestSmoothingFactor(t *testing.T) {
	dt := 1.0 / 60
	got := SmoothingFactor(0.001, 5, dt)
	want := 1 - math.Pow(0.001, 5*dt)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, got)
	}

	// Two half steps leave the same remainder as one full step
	half := SmoothingFactor(0.001, 5, dt/2)
	if math.Abs((1-half)*(1-half)-(1-got)) > 1e-12 {
		t.Errorf("smoothing is frame-rate dependent: half=%f full=%f", half, got)
	}

	if SmoothingFactor(0.001, 5, 0) != 0 {
		t.Error("expected zero factor for zero dt")
	}

	prev := 0.0
	for dt := 0.0; dt <= 2; dt += 0.005 {
		f := SmoothingFactor(0.001, 5, dt)
		if f < prev || f > 1 {
			t.Fatalf("factor %f at dt=%f after %f: expected non-decreasing in [0, 1]", f, dt, prev)
		}
		prev = f
	}
	if f := SmoothingFactor(0.001, 5, 1000); f != 1 {
		t.Errorf("expected full snap for a long frame, got %f", f)
	}
}

func TestYawFromPointerSweep(t *testing.T) {
	c := NewFirstPerson(DefaultParams(), nil)
	in := newFakeInput()

	// A tenth of the viewport width to the right turns 0.8 rad clockwise
	in.dx = viewW / 10
	c.Update(1.0/60, in, viewW, viewH)
	if math.Abs(c.State().Yaw+0.8) > 1e-9 {
		t.Fatalf("expected yaw -0.8, got %f", c.State().Yaw)
	}

	// First frame only moves part of the way
	fwd := rotate(c.State().Orientation, forward)
	want := r3.Vec{X: math.Sin(0.8), Z: -math.Cos(0.8)}
	if vecNear(fwd, want, 1e-3) {
		t.Error("expected orientation to be smoothed, not snapped")
	}

	in.dx = 0
	for i := 0; i < 300; i++ {
		c.Update(1.0/60, in, viewW, viewH)
	}
	fwd = rotate(c.State().Orientation, forward)
	if !vecNear(fwd, want, 1e-6) {
		t.Errorf("expected forward %v, got %v", want, fwd)
	}
}

func TestPitchClamped(t *testing.T) {
	p := DefaultParams()
	c := NewFirstPerson(p, nil)
	in := newFakeInput()

	in.dy = viewH
	c.Update(1.0/60, in, viewW, viewH)
	if c.State().Pitch != -p.PitchLimit {
		t.Errorf("expected pitch clamped to %f, got %f", -p.PitchLimit, c.State().Pitch)
	}

	in.dy = -3 * viewH
	c.Update(1.0/60, in, viewW, viewH)
	if c.State().Pitch != p.PitchLimit {
		t.Errorf("expected pitch clamped to %f, got %f", p.PitchLimit, c.State().Pitch)
	}
}

func TestZeroViewportIgnoresPointer(t *testing.T) {
	c := NewFirstPerson(DefaultParams(), nil)
	in := newFakeInput()
	in.dx, in.dy = 100, 100

	c.Update(1.0/60, in, 0, 0)
	if c.State().Yaw != 0 || c.State().Pitch != 0 {
		t.Errorf("expected no rotation, got yaw=%f pitch=%f", c.State().Yaw, c.State().Pitch)
	}
}

func TestTranslationFollowsYawOnly(t *testing.T) {
	c := NewFirstPerson(DefaultParams(), nil)
	in := newFakeInput()

	// Look up hard, then walk forward: height must not change
	in.dy = -viewH / 10
	c.Update(1.0/60, in, viewW, viewH)
	in.dy = 0
	start := c.State().Position

	in.press('W', true)
	c.Update(0.1, in, viewW, viewH)

	got := c.State().Position
	want := r3.Add(start, r3.Vec{Z: -1})
	if !vecNear(got, want, 1e-9) {
		t.Errorf("expected position %v, got %v", want, got)
	}
}

func TestStrafeAndOpposingKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []input.Key
		want r3.Vec
	}{
		{"left", []input.Key{'A'}, r3.Vec{X: -1}},
		{"right", []input.Key{'D'}, r3.Vec{X: 1}},
		{"back", []input.Key{'S'}, r3.Vec{Z: 1}},
		{"forward and back cancel", []input.Key{'W', 'S'}, r3.Vec{}},
		{"diagonal", []input.Key{'W', 'A'}, r3.Vec{X: -1, Z: -1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewFirstPerson(DefaultParams(), nil)
			in := newFakeInput()
			for _, k := range tc.keys {
				in.press(k, true)
			}
			start := c.State().Position
			c.Update(0.1, in, viewW, viewH)

			moved := r3.Sub(c.State().Position, start)
			if !vecNear(moved, tc.want, 1e-9) {
				t.Errorf("expected displacement %v, got %v", tc.want, moved)
			}
		})
	}
}

func TestMovementAfterYaw(t *testing.T) {
	c := NewFirstPerson(DefaultParams(), nil)
	in := newFakeInput()

	// Quarter turn to the left: yaw = +pi/2, forward becomes -X
	in.dx = -viewW * (math.Pi / 2) / 8
	c.Update(1.0/60, in, viewW, viewH)
	in.dx = 0
	start := c.State().Position

	in.press('W', true)
	c.Update(0.1, in, viewW, viewH)

	moved := r3.Sub(c.State().Position, start)
	if !vecNear(moved, r3.Vec{X: -1}, 1e-9) {
		t.Errorf("expected displacement (-1,0,0), got %v", moved)
	}
}

func TestBobRunsToHalfStepAndResets(t *testing.T) {
	p := DefaultParams()
	c := NewFirstPerson(p, nil)
	in := newFakeInput()

	in.press('W', true)
	c.Update(0.01, in, viewW, viewH)
	in.press('W', false)

	if !c.State().BobActive {
		t.Fatal("expected bob to start with movement")
	}

	halfStep := math.Pi / p.BobFrequency
	for i := 0; i < 100 && c.State().BobActive; i++ {
		if c.State().BobPhase > halfStep {
			t.Fatalf("bob phase %f overshot half step %f", c.State().BobPhase, halfStep)
		}
		c.Update(0.01, in, viewW, viewH)
	}

	s := c.State()
	if s.BobActive || s.BobPhase != 0 {
		t.Errorf("expected bob to stop at zero, got active=%v phase=%f", s.BobActive, s.BobPhase)
	}
	if c.View().Eye.Y != s.Position.Y {
		t.Errorf("expected eye height %f at rest, got %f", s.Position.Y, c.View().Eye.Y)
	}
}

func TestBobHeldKeyCompletesEachHalfStep(t *testing.T) {
	p := DefaultParams()
	c := NewFirstPerson(p, nil)
	in := newFakeInput()
	in.press('W', true)

	const dt = 0.013
	halfStep := math.Pi / p.BobFrequency
	pulses := 0
	prev := 0.0
	for i := 0; i < 200; i++ {
		c.Update(dt, in, viewW, viewH)
		s := c.State()
		if s.BobPhase > halfStep+1e-12 {
			t.Fatalf("frame %d: bob phase %f overshot half step %f", i, s.BobPhase, halfStep)
		}
		if s.BobPhase < prev {
			// A drop is only allowed when the previous frame could not
			// advance a full dt without crossing the boundary
			if s.BobPhase != 0 || prev+dt < halfStep {
				t.Fatalf("frame %d: bob restarted mid-cycle at %f (was %f)", i, s.BobPhase, prev)
			}
			pulses++
		}
		prev = s.BobPhase
	}

	// 200 frames at 13ms cover 2.6s, several 0.314s pulses
	if pulses < 7 {
		t.Errorf("expected repeated pulses while moving, got %d", pulses)
	}
}

func TestBobOffsetsEyeOnly(t *testing.T) {
	c := NewFirstPerson(DefaultParams(), nil)
	in := newFakeInput()
	in.press('W', true)
	c.Update(0.05, in, viewW, viewH)

	s := c.State()
	v := c.View()
	want := math.Sin(s.BobPhase*10) * 0.175
	if math.Abs(v.Eye.Y-s.Position.Y-want) > 1e-12 {
		t.Errorf("expected bob offset %f, got %f", want, v.Eye.Y-s.Position.Y)
	}
	if s.Position.Y != 2 {
		t.Errorf("logical position must not bob, got y=%f", s.Position.Y)
	}
}

func TestLookTargetFarPointWithoutVolumes(t *testing.T) {
	c := NewFirstPerson(DefaultParams(), nil)
	v := c.View()

	want := r3.Vec{X: 30, Y: 2, Z: -100}
	if !vecNear(v.Target, want, 1e-9) {
		t.Errorf("expected far point %v, got %v", want, v.Target)
	}
	if v.Hit {
		t.Error("expected no hit")
	}
}

func TestLookTargetNearestVolume(t *testing.T) {
	volumes := []r3.Box{
		{Min: r3.Vec{X: -50, Y: -90, Z: -72}, Max: r3.Vec{X: 50, Y: 10, Z: -68}},
		{Min: r3.Vec{X: -50, Y: -90, Z: -52}, Max: r3.Vec{X: 50, Y: 10, Z: -48}},
		{Min: r3.Vec{X: -50, Y: -90, Z: 48}, Max: r3.Vec{X: 50, Y: 10, Z: 52}},
	}
	c := NewFirstPerson(DefaultParams(), volumes)
	v := c.View()

	want := r3.Vec{X: 30, Y: 2, Z: -48}
	if !vecNear(v.Target, want, 1e-9) {
		t.Errorf("expected nearest hit %v, got %v", want, v.Target)
	}
	if !v.Hit {
		t.Error("expected hit")
	}

	fwd := rotate(v.Orientation, forward)
	if !vecNear(fwd, r3.Vec{Z: -1}, 1e-9) {
		t.Errorf("expected view to face the target, got forward %v", fwd)
	}
}

func TestRayIntersectBox(t *testing.T) {
	unit := r3.Box{Min: r3.Vec{X: -1, Y: -1, Z: -1}, Max: r3.Vec{X: 1, Y: 1, Z: 1}}

	tests := []struct {
		name string
		ray  Ray
		want r3.Vec
		hit  bool
	}{
		{"front face", Ray{Origin: r3.Vec{Z: 5}, Dir: r3.Vec{Z: -1}}, r3.Vec{Z: 1}, true},
		{"inside reports exit", Ray{Dir: r3.Vec{X: 1}}, r3.Vec{X: 1}, true},
		{"behind", Ray{Origin: r3.Vec{Z: -5}, Dir: r3.Vec{Z: -1}}, r3.Vec{}, false},
		{"parallel outside", Ray{Origin: r3.Vec{X: 2, Z: 5}, Dir: r3.Vec{Z: -1}}, r3.Vec{}, false},
		{"diagonal", Ray{Origin: r3.Vec{X: -3, Y: -3}, Dir: r3.Unit(r3.Vec{X: 1, Y: 1})}, r3.Vec{X: -1, Y: -1}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := tc.ray.IntersectBox(unit)
			if ok != tc.hit {
				t.Fatalf("expected hit=%v, got %v", tc.hit, ok)
			}
			if ok && !vecNear(p, tc.want, 1e-9) {
				t.Errorf("expected %v, got %v", tc.want, p)
			}
		})
	}
}

func TestSlerpHalfway(t *testing.T) {
	a := identity
	b := axisAngle(axisY, math.Pi/2)
	mid := Slerp(a, b, 0.5)

	got := rotate(mid, forward)
	want := rotate(axisAngle(axisY, math.Pi/4), forward)
	if !vecNear(got, want, 1e-9) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if Slerp(a, b, 0) != a || Slerp(a, b, 1) != b {
		t.Error("expected endpoints returned unchanged")
	}
}

func TestLookRotation(t *testing.T) {
	targets := []r3.Vec{
		{X: 5},
		{Z: -5},
		{X: -3, Y: 1, Z: 4},
	}
	for _, target := range targets {
		q, ok := LookRotation(r3.Vec{}, target, axisY)
		if !ok {
			t.Fatalf("expected rotation toward %v", target)
		}
		got := rotate(q, forward)
		if !vecNear(got, r3.Unit(target), 1e-9) {
			t.Errorf("expected forward %v, got %v", r3.Unit(target), got)
		}
	}

	if _, ok := LookRotation(r3.Vec{X: 1}, r3.Vec{X: 1}, axisY); ok {
		t.Error("expected degenerate look rotation to fail")
	}
}
