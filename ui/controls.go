package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// VolumeControl is a stream whose playback volume can be changed.
type VolumeControl interface {
	Volume() float64
	SetVolume(v float64)
}

// Channel is one slider in the audio panel.
type Channel struct {
	Label  string
	Target VolumeControl
}

// AudioPanel renders the right-side volume panel. It is only shown while
// the pointer is released.
type AudioPanel struct {
	renderer *Renderer
	width    int32
	visible  bool
}

// NewAudioPanel creates a new audio panel.
func NewAudioPanel(width int32) *AudioPanel {
	return &AudioPanel{
		renderer: NewRenderer(),
		width:    width,
	}
}

// SetVisible shows or hides the panel.
func (a *AudioPanel) SetVisible(visible bool) {
	a.visible = visible
}

// IsVisible returns whether the panel is shown.
func (a *AudioPanel) IsVisible() bool {
	return a.visible
}

// Toggle switches panel visibility.
func (a *AudioPanel) Toggle() bool {
	a.visible = !a.visible
	return a.visible
}

// Draw renders the panel against the right edge of the screen. With no
// channels it explains that audio is off.
func (a *AudioPanel) Draw(screenWidth int32, channels []Channel) {
	if !a.visible {
		return
	}

	r := a.renderer
	padding := r.Theme.Padding
	rowH := int32(30)
	height := padding*2 + r.Theme.LineHeight + 4 + max(int32(len(channels)), 1)*rowH

	x := screenWidth - a.width - 10
	y := int32(10)
	r.DrawPanel(x, y, a.width, height)

	y = r.DrawSectionHeader(x+padding, y+padding, "Audio")
	if len(channels) == 0 {
		rl.DrawText("no audio device or files", x+padding, y, r.Theme.FontSize, rl.Gray)
		return
	}

	sliderX := float32(x + padding + r.Theme.LabelWidth)
	sliderW := float32(a.width - padding*2 - r.Theme.LabelWidth - 40)
	for _, ch := range channels {
		cur := ch.Target.Volume()
		v := gui.SliderBar(
			rl.Rectangle{X: sliderX, Y: float32(y), Width: sliderW, Height: 20},
			ch.Label, fmt.Sprintf("%.2f", cur),
			float32(cur), 0, 1,
		)
		if float64(v) != cur {
			ch.Target.SetVolume(float64(v))
		}
		y += rowH
	}
}
