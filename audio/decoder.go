// Package audio plays the room's music and produces per-frame spectrum
// frames from what is currently audible.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// Decoder yields interleaved signed 16-bit little-endian PCM at its native
// sample rate and channel count.
type Decoder interface {
	io.ReadSeeker
	io.Closer
	Length() int64 // Total PCM bytes
	SampleRate() int
	ChannelCount() int
}

// Open picks a decoder by file extension.
func Open(path string) (Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	var dec Decoder
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		dec, err = newMP3Decoder(f)
	case ".wav":
		dec, err = newWAVDecoder(f)
	case ".flac":
		dec, err = newFLACDecoder(f)
	case ".ogg":
		dec, err = newOGGDecoder(f)
	default:
		err = fmt.Errorf("unsupported format: %s", ext)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return dec, nil
}

// pending holds converted PCM that did not fit the caller's buffer.
type pending struct {
	buf []byte
	pos int64
}

func (p *pending) drain(dst []byte) (int, bool) {
	if len(p.buf) == 0 {
		return 0, false
	}
	n := copy(dst, p.buf)
	p.buf = p.buf[n:]
	p.pos += int64(n)
	return n, true
}

func (p *pending) emit(dst, raw []byte) int {
	n := copy(dst, raw)
	if n < len(raw) {
		p.buf = raw[n:]
	}
	p.pos += int64(n)
	return n
}

// seekTarget resolves whence against the current position and length.
func seekTarget(pos, length, offset int64, whence int) int64 {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = pos + offset
	case io.SeekEnd:
		target = length + offset
	}
	return max(0, min(target, length))
}

func putSample(dst []byte, s int) {
	s = max(-32768, min(s, 32767))
	binary.LittleEndian.PutUint16(dst, uint16(int16(s)))
}

// MP3

type mp3Decoder struct {
	file *os.File
	dec  *mp3.Decoder
}

func newMP3Decoder(f *os.File) (*mp3Decoder, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, err
	}
	return &mp3Decoder{file: f, dec: dec}, nil
}

func (d *mp3Decoder) Read(p []byte) (int, error) { return d.dec.Read(p) }
func (d *mp3Decoder) Seek(offset int64, whence int) (int64, error) {
	return d.dec.Seek(offset, whence)
}
func (d *mp3Decoder) Close() error      { return d.file.Close() }
func (d *mp3Decoder) Length() int64     { return d.dec.Length() }
func (d *mp3Decoder) SampleRate() int   { return d.dec.SampleRate() }
func (d *mp3Decoder) ChannelCount() int { return 2 }

// WAV

type wavDecoder struct {
	file *os.File
	pending
	length       int64
	pcmStart     int64
	sampleRate   int
	channels     int
	bitDepth     int
	srcFrameSize int64
}

func newWAVDecoder(f *os.File) (*wavDecoder, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	if channels < 1 || bitDepth%8 != 0 || bitDepth < 8 || bitDepth > 32 {
		return nil, fmt.Errorf("unsupported WAV layout: %d channels, %d bits", channels, bitDepth)
	}
	srcFrameSize := int64(channels * bitDepth / 8)

	pcmStart, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("locating PCM start: %w", err)
	}

	return &wavDecoder{
		file:         f,
		length:       dec.PCMLen() / srcFrameSize * int64(channels) * 2,
		pcmStart:     pcmStart,
		sampleRate:   int(dec.SampleRate),
		channels:     channels,
		bitDepth:     bitDepth,
		srcFrameSize: srcFrameSize,
	}, nil
}

func (d *wavDecoder) Read(p []byte) (int, error) {
	if n, ok := d.drain(p); ok {
		return n, nil
	}
	if d.pos >= d.length {
		return 0, io.EOF
	}

	width := d.bitDepth / 8
	samples := max(len(p)/2, 1)
	src := make([]byte, samples*width)
	n, err := io.ReadFull(d.file, src)
	samples = n / width
	if samples == 0 {
		if err == nil || err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return 0, err
	}

	raw := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		off := i * width
		var s int
		switch d.bitDepth {
		case 8:
			s = (int(src[off]) - 128) << 8
		case 16:
			s = int(int16(binary.LittleEndian.Uint16(src[off:])))
		case 24:
			v := int32(src[off]) | int32(src[off+1])<<8 | int32(src[off+2])<<16
			if v&0x800000 != 0 {
				v |= ^0xFFFFFF
			}
			s = int(v >> 8)
		case 32:
			s = int(int32(binary.LittleEndian.Uint32(src[off:])) >> 16)
		}
		putSample(raw[i*2:], s)
	}

	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return d.emit(p, raw), err
}

func (d *wavDecoder) Seek(offset int64, whence int) (int64, error) {
	target := seekTarget(d.pos, d.length, offset, whence)
	frame := target / int64(d.channels*2)
	if _, err := d.file.Seek(d.pcmStart+frame*d.srcFrameSize, io.SeekStart); err != nil {
		return d.pos, err
	}
	d.buf = nil
	d.pos = frame * int64(d.channels*2)
	return d.pos, nil
}

func (d *wavDecoder) Close() error      { return d.file.Close() }
func (d *wavDecoder) Length() int64     { return d.length }
func (d *wavDecoder) SampleRate() int   { return d.sampleRate }
func (d *wavDecoder) ChannelCount() int { return d.channels }

// FLAC

type flacDecoder struct {
	file   *os.File
	stream *flac.Stream
	pending
	length     int64
	sampleRate int
	channels   int
	bps        int
}

func newFLACDecoder(f *os.File) (*flacDecoder, error) {
	stream, err := flac.NewSeek(f)
	if err != nil {
		return nil, err
	}
	info := stream.Info
	channels := int(info.NChannels)
	return &flacDecoder{
		file:       f,
		stream:     stream,
		length:     int64(info.NSamples) * int64(channels) * 2,
		sampleRate: int(info.SampleRate),
		channels:   channels,
		bps:        int(info.BitsPerSample),
	}, nil
}

func (d *flacDecoder) Read(p []byte) (int, error) {
	if n, ok := d.drain(p); ok {
		return n, nil
	}

	frame, err := d.stream.ParseNext()
	if err != nil {
		return 0, err
	}

	samples := int(frame.Subframes[0].NSamples)
	raw := make([]byte, samples*d.channels*2)
	for i := 0; i < samples; i++ {
		for ch := 0; ch < d.channels; ch++ {
			s := int(frame.Subframes[ch].Samples[i])
			switch {
			case d.bps > 16:
				s >>= d.bps - 16
			case d.bps < 16:
				s <<= 16 - d.bps
			}
			putSample(raw[(i*d.channels+ch)*2:], s)
		}
	}
	return d.emit(p, raw), nil
}

func (d *flacDecoder) Seek(offset int64, whence int) (int64, error) {
	target := seekTarget(d.pos, d.length, offset, whence)
	frameSize := int64(d.channels * 2)
	got, err := d.stream.Seek(uint64(target / frameSize))
	if err != nil {
		return d.pos, err
	}
	d.buf = nil
	d.pos = int64(got) * frameSize
	return d.pos, nil
}

// Close also closes the file, which the stream owns.
func (d *flacDecoder) Close() error      { return d.stream.Close() }
func (d *flacDecoder) Length() int64     { return d.length }
func (d *flacDecoder) SampleRate() int   { return d.sampleRate }
func (d *flacDecoder) ChannelCount() int { return d.channels }

// Ogg Vorbis

type oggDecoder struct {
	file   *os.File
	reader *oggvorbis.Reader
	pending
	length     int64
	sampleRate int
	channels   int
}

func newOGGDecoder(f *os.File) (*oggDecoder, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, err
	}
	channels := reader.Channels()
	return &oggDecoder{
		file:       f,
		reader:     reader,
		length:     reader.Length() * int64(channels) * 2,
		sampleRate: reader.SampleRate(),
		channels:   channels,
	}, nil
}

func (d *oggDecoder) Read(p []byte) (int, error) {
	if n, ok := d.drain(p); ok {
		return n, nil
	}

	samples := make([]float32, max(len(p)/2, d.channels))
	n, err := d.reader.Read(samples)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}

	raw := make([]byte, n*2)
	for i, s := range samples[:n] {
		putSample(raw[i*2:], int(max(-1, min(s, 1))*32767))
	}
	return d.emit(p, raw), err
}

func (d *oggDecoder) Seek(offset int64, whence int) (int64, error) {
	target := seekTarget(d.pos, d.length, offset, whence)
	frameSize := int64(d.channels * 2)
	if err := d.reader.SetPosition(target / frameSize); err != nil {
		return d.pos, err
	}
	d.buf = nil
	d.pos = target / frameSize * frameSize
	return d.pos, nil
}

func (d *oggDecoder) Close() error      { return d.file.Close() }
func (d *oggDecoder) Length() int64     { return d.length }
func (d *oggDecoder) SampleRate() int   { return d.sampleRate }
func (d *oggDecoder) ChannelCount() int { return d.channels }
