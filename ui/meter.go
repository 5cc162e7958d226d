package ui

import "github.com/charmbracelet/harmonica"

// Meter eases a level toward its target with a critically damped spring so
// bars rise and fall smoothly between spectrum frames.
type Meter struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

// NewMeter creates a meter stepped fps times per second.
func NewMeter(fps int) *Meter {
	return &Meter{spring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 8.0, 1.0)}
}

// Step moves one frame toward target and returns the new value.
func (m *Meter) Step(target float64) float64 {
	m.pos, m.vel = m.spring.Update(m.pos, m.vel, target)
	return m.pos
}

// Value returns the current level.
func (m *Meter) Value() float64 {
	return m.pos
}
