package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/echoroom/components"
	"github.com/pthm-cable/echoroom/scene"
	"github.com/pthm-cable/echoroom/spectrum"
)

// GridSystem owns the speaker cube entities and copies mapped spectrum
// cells onto them.
type GridSystem struct {
	filter ecs.Filter3[components.GridCell, components.Transform, components.Material]
	mapper *ecs.Map3[components.GridCell, components.Transform, components.Material]
	layout scene.Grid
	count  int
}

// NewGridSystem spawns one entity per grid cell at rest: unit scale and the
// quietest colour.
func NewGridSystem(w *ecs.World, layout scene.Grid) *GridSystem {
	s := &GridSystem{
		filter: *ecs.NewFilter3[components.GridCell, components.Transform, components.Material](w),
		mapper: ecs.NewMap3[components.GridCell, components.Transform, components.Material](w),
		layout: layout,
	}

	rest := spectrum.NewColorSpline().Get(0)
	for r := 0; r < layout.Rows; r++ {
		for c := 0; c < layout.Cols; c++ {
			cell := components.GridCell{Row: r, Col: c}
			tr := components.Transform{
				Position: layout.CellPosition(r, c),
				Scale:    r3.Vec{X: 1, Y: 1, Z: 1},
			}
			mat := components.Material{Base: rest}
			s.mapper.NewEntity(&cell, &tr, &mat)
			s.count++
		}
	}
	return s
}

// Count returns the number of cube entities.
func (s *GridSystem) Count() int {
	return s.count
}

// Layout returns the grid placement.
func (s *GridSystem) Layout() scene.Grid {
	return s.layout
}

// Apply writes cells[row][col] onto the matching cube. Cubes outside the
// supplied rows or columns keep their last state. Returns the number of
// cubes updated.
func (s *GridSystem) Apply(cells [][]spectrum.Cell) int {
	updated := 0
	query := s.filter.Query()
	for query.Next() {
		gc, tr, mat := query.Get()
		if gc.Row >= len(cells) || gc.Col >= len(cells[gc.Row]) {
			continue
		}
		c := cells[gc.Row][gc.Col]
		tr.Scale = c.Scale
		mat.Base = c.Base
		mat.Emissive = c.Emissive
		updated++
	}
	return updated
}

// Each visits every cube in storage order.
func (s *GridSystem) Each(fn func(gc components.GridCell, tr components.Transform, mat components.Material)) {
	query := s.filter.Query()
	for query.Next() {
		gc, tr, mat := query.Get()
		fn(*gc, *tr, *mat)
	}
}
