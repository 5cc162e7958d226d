package spectrum

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/echoroom/noise"
	"github.com/pthm-cable/echoroom/spline"
)

// Remap reorders 16 bins so the lowest frequencies sit in the middle
// column and higher ones fan out alternately to either side.
var Remap = [16]int{15, 13, 11, 9, 7, 5, 3, 1, 0, 2, 4, 6, 8, 10, 12, 14}

// RemapIndex returns the bin shown in column i of an n-bin frame. Frames
// narrower than the table get the same centre-out order sized to n;
// columns past the table map to themselves.
func RemapIndex(i, n int) int {
	if n < len(Remap) {
		half := n / 2
		if i < half {
			return 2*(half-1-i) + 1
		}
		return 2 * (i - half)
	}
	if i < len(Remap) {
		return Remap[i]
	}
	return i
}

// Smootherstep eases x in [0, 1] with zero first and second derivatives
// at the ends, then maps the result onto [lo, hi].
func Smootherstep(x, lo, hi float64) float64 {
	x = clamp01(x)
	x = x * x * x * (x*(x*6-15) + 10)
	return x*(hi-lo) + lo
}

// Params controls the grid mapping.
type Params struct {
	Rows      int     // History depth, one grid row per frame
	TimeRate  float64 // Noise time advance per second
	RowStep   float64 // Noise offset between rows
	ColStep   float64 // Noise offset between columns
	ScaleGain float64 // Extra X scale at full amplitude
}

// DefaultParams returns the speaker grid configuration.
func DefaultParams() Params {
	return Params{
		Rows:      11,
		TimeRate:  0.1,
		RowStep:   0.42142,
		ColStep:   0.3455,
		ScaleGain: 6,
	}
}

// Cell is the visual state of one grid cube.
type Cell struct {
	Scale     r3.Vec
	Base      colorful.Color
	Emissive  colorful.Color
	Amplitude float64
}

// Mapper keeps a short spectrum history and derives per-cell scale and
// colour from it. Row 0 is the newest frame.
type Mapper struct {
	params    Params
	history   *History
	field     *noise.Field
	colors    *spline.Linear[colorful.Color]
	timeIndex float64
	cells     [][]Cell
}

// NewMapper creates a mapper sampling jitter from field.
func NewMapper(p Params, field *noise.Field) *Mapper {
	return &Mapper{
		params:  p,
		history: NewHistory(p.Rows),
		field:   field,
		colors:  NewColorSpline(),
	}
}

// Update ingests a frame. When ok is false the source is inactive and the
// mapper does nothing, including advancing time. Returns whether the cells
// changed.
func (m *Mapper) Update(dt float64, frame Frame, ok bool) bool {
	if !ok {
		return false
	}

	m.timeIndex += dt * m.params.TimeRate
	m.history.Push(frame)

	rows := m.history.Len()
	if cap(m.cells) < rows {
		m.cells = make([][]Cell, rows)
	}
	m.cells = m.cells[:rows]

	for r := 0; r < rows; r++ {
		row := m.history.At(rows - 1 - r)
		if cap(m.cells[r]) < len(row) {
			m.cells[r] = make([]Cell, len(row))
		}
		m.cells[r] = m.cells[r][:len(row)]

		for i := range row {
			m.cells[r][i] = m.cell(row, r, i)
		}
	}
	return true
}

func (m *Mapper) cell(row Frame, r, i int) Cell {
	v := clamp01(row[RemapIndex(i, len(row))])
	amp := Smootherstep(math.Sqrt(v), 0, 1)

	jitter := m.field.Get(m.timeIndex, float64(r)*m.params.RowStep, float64(i)*m.params.ColStep)
	base := m.colors.Get(amp).Clamped()
	glow := amp * amp

	return Cell{
		Scale:     r3.Vec{X: 1 + m.params.ScaleGain*amp + jitter, Y: 1, Z: 1},
		Base:      base,
		Emissive:  colorful.Color{R: base.R * glow, G: base.G * glow, B: base.B * glow}.Clamped(),
		Amplitude: amp,
	}
}

// Cells returns the grid indexed [row][column]. The slices are reused by
// the next Update.
func (m *Mapper) Cells() [][]Cell {
	return m.cells
}

// History exposes the stored frames, oldest first.
func (m *Mapper) History() *History {
	return m.history
}

// TimeIndex returns the accumulated noise time.
func (m *Mapper) TimeIndex() float64 {
	return m.timeIndex
}

// Params returns the mapping configuration.
func (m *Mapper) Params() Params {
	return m.params
}
