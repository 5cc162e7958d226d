package spectrum

// History is a bounded FIFO of frames. Pushed frames are copied so callers
// may reuse their buffers.
type History struct {
	frames   []Frame
	capacity int
}

// NewHistory creates an empty history holding at most capacity frames.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		frames:   make([]Frame, 0, capacity),
		capacity: capacity,
	}
}

// Push appends a copy of f, evicting the oldest frame when full.
func (h *History) Push(f Frame) {
	c := make(Frame, len(f))
	copy(c, f)

	if len(h.frames) < h.capacity {
		h.frames = append(h.frames, c)
		return
	}
	copy(h.frames, h.frames[1:])
	h.frames[len(h.frames)-1] = c
}

// Len returns the number of stored frames.
func (h *History) Len() int {
	return len(h.frames)
}

// Cap returns the capacity.
func (h *History) Cap() int {
	return h.capacity
}

// At returns frame i where 0 is the oldest.
func (h *History) At(i int) Frame {
	return h.frames[i]
}

// Newest returns the most recent frame, or nil when empty.
func (h *History) Newest() Frame {
	if len(h.frames) == 0 {
		return nil
	}
	return h.frames[len(h.frames)-1]
}
