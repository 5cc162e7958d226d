package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamStatusText(t *testing.T) {
	tests := []struct {
		name   string
		status StreamStatus
		want   string
	}{
		{"waiting", StreamStatus{Name: "Grid", Waited: 2.26}, "Grid: waiting (t=2.3s)"},
		{"playing", StreamStatus{Name: "Screen", Playing: true, Bins: 64, Frame: 4410}, "Screen: playing (64 bins, frame 4410)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Text(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAudioPanelToggle(t *testing.T) {
	p := NewAudioPanel(300)
	if p.IsVisible() {
		t.Fatal("expected panel hidden initially")
	}
	if !p.Toggle() || !p.IsVisible() {
		t.Error("expected toggle to show the panel")
	}
	p.SetVisible(false)
	if p.IsVisible() {
		t.Error("expected panel hidden after SetVisible(false)")
	}
}

func TestMeterSettlesWithoutOvershoot(t *testing.T) {
	m := NewMeter(60)
	for i := 0; i < 120; i++ {
		v := m.Step(1)
		assert.LessOrEqual(t, v, 1.0+1e-9, "step %d overshot", i)
	}
	assert.InDelta(t, 1.0, m.Value(), 0.01)

	// Falls back toward silence
	for i := 0; i < 120; i++ {
		m.Step(0)
	}
	assert.InDelta(t, 0.0, m.Value(), 0.01)
}
