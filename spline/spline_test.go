package spline

import (
	"math"
	"testing"
)

func newTestSpline() *Linear[float64] {
	s := NewLinear(Lerp)
	s.AddPoint(0.0, 10)
	s.AddPoint(0.25, 20)
	s.AddPoint(1.0, 50)
	return s
}

func TestGetClampsOutsideRange(t *testing.T) {
	s := newTestSpline()

	for _, q := range []float64{-5, -0.001, 0} {
		if got := s.Get(q); got != 10 {
			t.Errorf("Get(%f) = %f, want first value 10", q, got)
		}
	}
	for _, q := range []float64{1, 1.5, 100} {
		if got := s.Get(q); got != 50 {
			t.Errorf("Get(%f) = %f, want last value 50", q, got)
		}
	}
}

func TestGetAtBreakpointDoesNotBlend(t *testing.T) {
	calls := 0
	s := NewLinear(func(t float64, a, b float64) float64 {
		calls++
		return Lerp(t, a, b)
	})
	s.AddPoint(0.0, 1)
	s.AddPoint(0.25, 2)
	s.AddPoint(1.0, 3)

	if got := s.Get(0.25); got != 2 {
		t.Errorf("Get(0.25) = %f, want 2", got)
	}
	if calls != 0 {
		t.Errorf("expected no blend calls at a breakpoint, got %d", calls)
	}
}

func TestGetInterpolates(t *testing.T) {
	s := newTestSpline()

	tests := []struct {
		t, want float64
	}{
		{0.125, 15},
		{0.625, 35},
		{0.4, 26},
	}
	for _, tc := range tests {
		if got := s.Get(tc.t); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Get(%f) = %f, want %f", tc.t, got, tc.want)
		}
	}
}

func TestSinglePointAndEmpty(t *testing.T) {
	empty := NewLinear(Lerp)
	if got := empty.Get(0.5); got != 0 {
		t.Errorf("empty spline should return zero value, got %f", got)
	}

	one := NewLinear(Lerp)
	one.AddPoint(0.5, 7)
	for _, q := range []float64{0, 0.5, 1} {
		if got := one.Get(q); got != 7 {
			t.Errorf("single-point Get(%f) = %f, want 7", q, got)
		}
	}
	if one.Len() != 1 {
		t.Errorf("expected Len 1, got %d", one.Len())
	}
}

func TestGenericValueType(t *testing.T) {
	type vec2 struct{ x, y float64 }
	s := NewLinear(func(t float64, a, b vec2) vec2 {
		return vec2{Lerp(t, a.x, b.x), Lerp(t, a.y, b.y)}
	})
	s.AddPoint(0, vec2{0, 0})
	s.AddPoint(2, vec2{4, -2})

	got := s.Get(1)
	if got.x != 2 || got.y != -1 {
		t.Errorf("expected midpoint (2, -1), got %+v", got)
	}
}

func TestMonotoneBetweenIncreasingPoints(t *testing.T) {
	s := newTestSpline()
	prev := s.Get(0)
	for i := 1; i <= 100; i++ {
		v := s.Get(float64(i) / 100)
		if v < prev {
			t.Fatalf("spline decreased at t=%f: %f < %f", float64(i)/100, v, prev)
		}
		prev = v
	}
}
