package audio

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/pthm-cable/echoroom/config"
	"github.com/pthm-cable/echoroom/spectrum"
)

// Sink plays PCM pulled from a reader. *oto.Player satisfies it.
type Sink interface {
	Play()
	SetVolume(v float64)
	BufferedSize() int
	Close() error
}

// SinkOpener creates a sink reading stereo s16le PCM at SampleRate.
type SinkOpener func(r io.Reader) (Sink, error)

var (
	otoCtx     *oto.Context
	otoOnce    sync.Once
	otoInitErr error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: ChannelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return otoCtx, otoInitErr
}

// OtoSink opens a player on the process-wide oto context.
func OtoSink(r io.Reader) (Sink, error) {
	ctx, err := initOto()
	if err != nil {
		return nil, fmt.Errorf("initialising audio output: %w", err)
	}
	return ctx.NewPlayer(r), nil
}

// tapSeconds of recent audio are kept for analysis.
const tapSeconds = 2

// Stream plays one looping track after a start delay and analyses what is
// currently audible.
type Stream struct {
	name     string
	meta     Metadata
	cfg      config.StreamConfig
	dec      Decoder
	open     SinkOpener
	tap      *Tap
	analyser *Analyser
	block    []float64

	sink    Sink
	elapsed float64
	active  bool
}

// NewStream prepares a stream; nothing plays until Update passes the start
// delay.
func NewStream(name string, cfg config.StreamConfig, dec Decoder, open SinkOpener) (*Stream, error) {
	a, err := NewAnalyser(cfg.FFTSize, cfg.Smoothing, cfg.MinDB, cfg.MaxDB)
	if err != nil {
		return nil, fmt.Errorf("stream %s: %w", name, err)
	}
	return &Stream{
		name:     name,
		meta:     ReadMetadata(cfg.Path),
		cfg:      cfg,
		dec:      dec,
		open:     open,
		tap:      NewTap(SampleRate * tapSeconds),
		analyser: a,
		block:    make([]float64, cfg.FFTSize),
	}, nil
}

// OpenStream decodes cfg.Path and plays it through oto.
func OpenStream(name string, cfg config.StreamConfig) (*Stream, error) {
	dec, err := Open(cfg.Path)
	if err != nil {
		return nil, err
	}
	s, err := NewStream(name, cfg, dec, OtoSink)
	if err != nil {
		dec.Close()
		return nil, err
	}
	return s, nil
}

// Update advances the start timer and starts playback once it expires.
func (s *Stream) Update(dt float64) error {
	if s.active {
		return nil
	}
	s.elapsed += dt
	if s.elapsed < s.cfg.StartDelay {
		return nil
	}

	var src io.Reader = &loopReader{dec: s.dec}
	src = convert(src, s.dec.SampleRate(), s.dec.ChannelCount())
	sink, err := s.open(&tapReader{r: src, tap: s.tap})
	if err != nil {
		// Stay inactive; the caller decides whether to retry or give up.
		s.elapsed = 0
		return fmt.Errorf("stream %s: %w", s.name, err)
	}

	sink.SetVolume(s.cfg.Volume)
	sink.Play()
	s.sink = sink
	s.active = true

	slog.Info("audio stream started",
		"stream", s.name,
		"path", s.cfg.Path,
		"track", s.meta.Label(),
		"sample_rate", s.dec.SampleRate(),
		"channels", s.dec.ChannelCount(),
		"fft_size", s.cfg.FFTSize,
	)
	return nil
}

// Active reports whether playback has started.
func (s *Stream) Active() bool {
	return s.active
}

// Position returns the frame index currently leaving the speakers.
func (s *Stream) Position() int64 {
	if !s.active {
		return 0
	}
	return max(0, s.tap.Written()-int64(s.sink.BufferedSize()/frameBytes))
}

// Spectrum analyses the block that is audible now. It never blocks on the
// audio thread and returns false until playback has started.
func (s *Stream) Spectrum() (spectrum.Frame, bool) {
	if !s.active {
		return nil, false
	}
	s.tap.Window(s.Position(), s.block)
	return spectrum.FromBytes(s.analyser.Analyse(s.block)), true
}

// SetVolume changes playback volume. Before playback starts it sets the
// starting volume.
func (s *Stream) SetVolume(v float64) {
	s.cfg.Volume = v
	if s.sink != nil {
		s.sink.SetVolume(v)
	}
}

// Volume returns the current playback volume.
func (s *Stream) Volume() float64 {
	return s.cfg.Volume
}

// Metadata returns the track's tags.
func (s *Stream) Metadata() Metadata {
	return s.meta
}

// Bins returns the frame width.
func (s *Stream) Bins() int {
	return s.analyser.Bins()
}

// Close stops playback and releases the decoder.
func (s *Stream) Close() error {
	var err error
	if s.sink != nil {
		err = s.sink.Close()
	}
	if cerr := s.dec.Close(); err == nil {
		err = cerr
	}
	return err
}
