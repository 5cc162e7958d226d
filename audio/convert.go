package audio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Output format shared by every player on the oto context.
const (
	SampleRate   = 44100
	ChannelCount = 2
	frameBytes   = ChannelCount * 2
)

// loopReader rewinds the decoder at end of stream.
type loopReader struct {
	dec Decoder
}

func (l *loopReader) Read(p []byte) (int, error) {
	n, err := l.dec.Read(p)
	if !errors.Is(err, io.EOF) {
		return n, err
	}
	if n > 0 {
		return n, nil
	}
	if _, err := l.dec.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("rewinding: %w", err)
	}
	n, err = l.dec.Read(p)
	if errors.Is(err, io.EOF) && n > 0 {
		err = nil
	}
	return n, err
}

// resampler converts interleaved s16le PCM with any channel count and rate
// to stereo at SampleRate by linear interpolation.
type resampler struct {
	src      *bufio.Reader
	channels int
	step     float64 // Source frames per output frame
	frac     float64
	prev     [2]float64
	next     [2]float64
	primed   bool
	scratch  []byte
}

func newResampler(src io.Reader, rate, channels int) *resampler {
	return &resampler{
		src:      bufio.NewReader(src),
		channels: channels,
		step:     float64(rate) / SampleRate,
		scratch:  make([]byte, channels*2),
	}
}

// convert wraps src only when its format differs from the output format.
func convert(src io.Reader, rate, channels int) io.Reader {
	if rate == SampleRate && channels == ChannelCount {
		return src
	}
	return newResampler(src, rate, channels)
}

func (r *resampler) readFrame() ([2]float64, error) {
	if _, err := io.ReadFull(r.src, r.scratch); err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return [2]float64{}, err
	}
	left := float64(int16(binary.LittleEndian.Uint16(r.scratch)))
	right := left
	if r.channels > 1 {
		right = float64(int16(binary.LittleEndian.Uint16(r.scratch[2:])))
	}
	return [2]float64{left, right}, nil
}

func (r *resampler) Read(p []byte) (int, error) {
	if !r.primed {
		var err error
		if r.prev, err = r.readFrame(); err != nil {
			return 0, err
		}
		if r.next, err = r.readFrame(); err != nil {
			return 0, err
		}
		r.primed = true
	}

	n := 0
	for len(p)-n >= frameBytes {
		for r.frac >= 1 {
			f, err := r.readFrame()
			if err != nil {
				if n > 0 {
					return n, nil
				}
				return 0, err
			}
			r.prev, r.next = r.next, f
			r.frac--
		}

		for ch := 0; ch < ChannelCount; ch++ {
			s := r.prev[ch] + (r.next[ch]-r.prev[ch])*r.frac
			putSample(p[n+ch*2:], int(s))
		}
		n += frameBytes
		r.frac += r.step
	}
	return n, nil
}
