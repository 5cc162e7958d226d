package audio

import (
	"errors"

	"github.com/pthm-cable/echoroom/config"
	"github.com/pthm-cable/echoroom/spectrum"
)

// Provider owns the two room streams: one drives the speaker grid, the
// other the visualizer screen.
type Provider struct {
	Grid       *Stream
	Visualizer *Stream
}

// NewProvider opens both configured tracks.
func NewProvider(cfg config.AudioConfig) (*Provider, error) {
	grid, err := OpenStream("grid", cfg.Grid)
	if err != nil {
		return nil, err
	}
	vis, err := OpenStream("visualizer", cfg.Visualizer)
	if err != nil {
		grid.Close()
		return nil, err
	}
	return &Provider{Grid: grid, Visualizer: vis}, nil
}

// Update advances both start timers.
func (p *Provider) Update(dt float64) error {
	return errors.Join(p.Grid.Update(dt), p.Visualizer.Update(dt))
}

// Close stops both streams.
func (p *Provider) Close() error {
	return errors.Join(p.Grid.Close(), p.Visualizer.Close())
}

// Silent is a source that never becomes active, used when audio is off.
type Silent struct{}

// Spectrum always reports an inactive source.
func (Silent) Spectrum() (spectrum.Frame, bool) {
	return nil, false
}

var (
	_ spectrum.Source = (*Stream)(nil)
	_ spectrum.Source = Silent{}
)
