package audio

import (
	"encoding/binary"
	"io"
	"sync"
)

// Tap keeps the most recent mono samples that passed through a reader. The
// audio thread writes, the frame loop reads windows by absolute position.
type Tap struct {
	mu      sync.Mutex
	ring    []float32
	written int64 // Total frames ever written
}

// NewTap creates a tap holding up to capacity frames.
func NewTap(capacity int) *Tap {
	return &Tap{ring: make([]float32, max(capacity, 1))}
}

// Write appends stereo s16le frames, downmixed to mono in [-1, 1]. A
// trailing partial frame is ignored.
func (t *Tap) Write(pcm []byte) {
	frames := len(pcm) / frameBytes

	t.mu.Lock()
	defer t.mu.Unlock()
	for i := 0; i < frames; i++ {
		off := i * frameBytes
		l := int16(binary.LittleEndian.Uint16(pcm[off:]))
		r := int16(binary.LittleEndian.Uint16(pcm[off+2:]))
		t.ring[t.written%int64(len(t.ring))] = (float32(l) + float32(r)) / 65536
		t.written++
	}
}

// Written returns the total number of frames written.
func (t *Tap) Written() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.written
}

// Window fills dst with the len(dst) frames ending just before end. Frames
// never written or already overwritten read as silence.
func (t *Tap) Window(end int64, dst []float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	size := int64(len(t.ring))
	start := end - int64(len(dst))
	for i := range dst {
		pos := start + int64(i)
		if pos < 0 || pos >= t.written || pos < t.written-size {
			dst[i] = 0
			continue
		}
		dst[i] = float64(t.ring[pos%size])
	}
}

// tapReader copies everything read from r into the tap, carrying partial
// frames over to the next read.
type tapReader struct {
	r     io.Reader
	tap   *Tap
	carry []byte
}

func (tr *tapReader) Read(p []byte) (int, error) {
	n, err := tr.r.Read(p)
	data := p[:n]
	if len(tr.carry) > 0 {
		data = append(append([]byte(nil), tr.carry...), data...)
	}
	whole := len(data) - len(data)%frameBytes
	tr.tap.Write(data[:whole])
	tr.carry = append(tr.carry[:0], data[whole:]...)
	return n, err
}
