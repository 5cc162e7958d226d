// Package input captures pointer and key state into per-frame snapshots.
//
// Device callbacks (or a polling loop) enqueue events with the On* methods.
// Once per frame the owner calls Drain to apply queued events, lets consumers
// read Delta, and then calls Update to commit the frame.
package input

// Key is a platform key code.
type Key int32

// Button identifies a pointer button.
type Button int

// Pointer buttons.
const (
	ButtonLeft  Button = 0
	ButtonRight Button = 2
)

// EventKind discriminates queued events.
type EventKind uint8

// Event kinds.
const (
	EventPointerMove EventKind = iota
	EventButtonDown
	EventButtonUp
	EventKeyDown
	EventKeyUp
)

// Event is one queued device event.
type Event struct {
	Kind   EventKind
	X, Y   float64
	Button Button
	Key    Key
}

// Snapshot is the pointer state for one frame. It is a value type: copies
// never alias each other.
type Snapshot struct {
	LeftDown  bool
	RightDown bool
	X, Y      float64
	DeltaX    float64
	DeltaY    float64
}

// Sampler holds the current and previous committed snapshots.
type Sampler struct {
	queue    []Event
	current  Snapshot
	previous Snapshot
	ready    bool // previous holds a baseline
	keys     map[Key]bool
}

// NewSampler creates a sampler with no baseline.
func NewSampler() *Sampler {
	return &Sampler{
		queue: make([]Event, 0, 16),
		keys:  make(map[Key]bool),
	}
}

// OnPointerMove queues a pointer move to (x, y).
func (s *Sampler) OnPointerMove(x, y float64) {
	s.queue = append(s.queue, Event{Kind: EventPointerMove, X: x, Y: y})
}

// OnButtonDown queues a button press at (x, y).
func (s *Sampler) OnButtonDown(b Button, x, y float64) {
	s.queue = append(s.queue, Event{Kind: EventButtonDown, Button: b, X: x, Y: y})
}

// OnButtonUp queues a button release at (x, y).
func (s *Sampler) OnButtonUp(b Button, x, y float64) {
	s.queue = append(s.queue, Event{Kind: EventButtonUp, Button: b, X: x, Y: y})
}

// OnKeyDown queues a key press.
func (s *Sampler) OnKeyDown(k Key) {
	s.queue = append(s.queue, Event{Kind: EventKeyDown, Key: k})
}

// OnKeyUp queues a key release.
func (s *Sampler) OnKeyUp(k Key) {
	s.queue = append(s.queue, Event{Kind: EventKeyUp, Key: k})
}

// Pending returns the number of queued events.
func (s *Sampler) Pending() int {
	return len(s.queue)
}

// Drain applies all queued events in order and recomputes the frame delta
// against the previous committed snapshot.
func (s *Sampler) Drain() {
	for _, ev := range s.queue {
		switch ev.Kind {
		case EventPointerMove:
			s.move(ev.X, ev.Y)
		case EventButtonDown:
			s.move(ev.X, ev.Y)
			s.setButton(ev.Button, true)
		case EventButtonUp:
			s.move(ev.X, ev.Y)
			s.setButton(ev.Button, false)
		case EventKeyDown:
			s.keys[ev.Key] = true
		case EventKeyUp:
			s.keys[ev.Key] = false
		}
	}
	s.queue = s.queue[:0]
	s.recomputeDelta()
}

func (s *Sampler) move(x, y float64) {
	s.current.X = x
	s.current.Y = y
	if !s.ready {
		s.previous = s.current
		s.ready = true
	}
}

func (s *Sampler) setButton(b Button, down bool) {
	switch b {
	case ButtonLeft:
		s.current.LeftDown = down
	case ButtonRight:
		s.current.RightDown = down
	}
}

func (s *Sampler) recomputeDelta() {
	if !s.ready {
		return
	}
	s.current.DeltaX = s.current.X - s.previous.X
	s.current.DeltaY = s.current.Y - s.previous.Y
}

// Update commits the current snapshot as the new baseline. Call it after
// every consumer has read this frame's delta.
func (s *Sampler) Update(dt float64) {
	if !s.ready {
		return
	}
	s.recomputeDelta()
	s.previous = s.current
}

// IsReady reports whether a baseline pointer position exists.
func (s *Sampler) IsReady() bool {
	return s.ready
}

// Delta returns the pointer movement since the last commit.
func (s *Sampler) Delta() (dx, dy float64) {
	if !s.ready {
		return 0, 0
	}
	return s.current.X - s.previous.X, s.current.Y - s.previous.Y
}

// Key reports whether k is held.
func (s *Sampler) Key(k Key) bool {
	return s.keys[k]
}

// Current returns a copy of the current snapshot.
func (s *Sampler) Current() Snapshot {
	return s.current
}

// Previous returns a copy of the previous committed snapshot and whether it exists.
func (s *Sampler) Previous() (Snapshot, bool) {
	return s.previous, s.ready
}
