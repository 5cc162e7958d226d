// Package spline provides piecewise interpolation over ordered breakpoints.
package spline

// BlendFunc interpolates between a and b by fraction t in [0, 1].
type BlendFunc[T any] func(t float64, a, b T) T

type point[T any] struct {
	t     float64
	value T
}

// Linear interpolates between breakpoints with a caller-supplied blend.
// Breakpoints must be added with non-decreasing keys; order is not checked.
type Linear[T any] struct {
	points []point[T]
	blend  BlendFunc[T]
}

// NewLinear creates an empty spline using blend between neighbours.
func NewLinear[T any](blend func(t float64, a, b T) T) *Linear[T] {
	return &Linear[T]{blend: blend}
}

// AddPoint appends a breakpoint.
func (s *Linear[T]) AddPoint(t float64, value T) {
	s.points = append(s.points, point[T]{t: t, value: value})
}

// Len returns the number of breakpoints.
func (s *Linear[T]) Len() int {
	return len(s.points)
}

// Get evaluates the spline at t. Queries at or before the first key return
// the first value, at or beyond the last key the last value, and exactly on
// a key that key's value. An empty spline returns the zero value.
func (s *Linear[T]) Get(t float64) T {
	if len(s.points) == 0 {
		var zero T
		return zero
	}
	if t <= s.points[0].t {
		return s.points[0].value
	}

	p1 := 0
	for i := range s.points {
		if s.points[i].t > t {
			break
		}
		p1 = i
	}
	p2 := min(p1+1, len(s.points)-1)

	a, b := s.points[p1], s.points[p2]
	if p1 == p2 || t == a.t {
		return a.value
	}
	return s.blend((t-a.t)/(b.t-a.t), a.value, b.value)
}

// Lerp is a BlendFunc for float64 values.
func Lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}
