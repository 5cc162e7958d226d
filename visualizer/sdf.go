package visualizer

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Signed distance functions after Inigo Quilez's 2D collection. Negative
// values are inside the shape.

// Trapezoid is an isosceles trapezoid centred on the origin with the given
// bottom and top half-widths and half-height.
func Trapezoid(p r2.Vec, bottom, top, halfHeight float64) float64 {
	k1 := r2.Vec{X: top, Y: halfHeight}
	k2 := r2.Vec{X: top - bottom, Y: 2 * halfHeight}
	p.X = math.Abs(p.X)

	edge := top
	if p.Y < 0 {
		edge = bottom
	}
	ca := r2.Vec{X: p.X - math.Min(p.X, edge), Y: math.Abs(p.Y) - halfHeight}

	var h float64
	if kk := r2.Dot(k2, k2); kk > 0 {
		h = Saturate(r2.Dot(r2.Sub(k1, p), k2) / kk)
	}
	cb := r2.Add(r2.Sub(p, k1), r2.Scale(h, k2))

	s := 1.0
	if cb.X < 0 && ca.Y < 0 {
		s = -1
	}
	return s * math.Sqrt(math.Min(r2.Dot(ca, ca), r2.Dot(cb, cb)))
}

// UnevenCapsule joins a circle of radius r1 at the origin to one of radius
// r2 at (0, h). Requires h > 0 and |r1-r2| <= h.
func UnevenCapsule(p r2.Vec, r1, r2r, h float64) float64 {
	p.X = math.Abs(p.X)
	b := (r1 - r2r) / h
	a := math.Sqrt(1 - b*b)
	k := r2.Dot(p, r2.Vec{X: -b, Y: a})
	if k < 0 {
		return r2.Norm(p) - r1
	}
	if k > a*h {
		return r2.Norm(r2.Sub(p, r2.Vec{Y: h})) - r2r
	}
	return r2.Dot(p, r2.Vec{X: a, Y: b}) - r1
}

// TriangleIsosceles has its apex at the origin and base corners at
// (+-q.X, q.Y).
func TriangleIsosceles(p, q r2.Vec) float64 {
	p.X = math.Abs(p.X)
	a := r2.Sub(p, r2.Scale(Saturate(r2.Dot(p, q)/r2.Dot(q, q)), q))
	b := r2.Vec{X: p.X - q.X*Saturate(p.X/q.X), Y: p.Y - q.Y}
	s := -sign(q.Y)

	dx := math.Min(r2.Dot(a, a), r2.Dot(b, b))
	dy := math.Min(s*(p.X*q.Y-p.Y*q.X), s*(p.Y-q.Y))
	return -math.Sqrt(dx) * sign(dy)
}

// Union of two shapes.
func Union(d1, d2 float64) float64 {
	return math.Min(d1, d2)
}

// SmoothUnion blends two shapes over a band of width k.
func SmoothUnion(d1, d2, k float64) float64 {
	h := Saturate(0.5 + 0.5*(d2-d1)/k)
	return mix(d2, d1, h) - k*h*(1-h)
}

// Intersection of two shapes.
func Intersection(d1, d2 float64) float64 {
	return math.Max(d1, d2)
}

// Subtraction removes shape d1 from d2.
func Subtraction(d1, d2 float64) float64 {
	return math.Max(-d1, d2)
}

// Rotate2D rotates p counter-clockwise by a radians about the origin.
func Rotate2D(p r2.Vec, a float64) r2.Vec {
	s, c := math.Sincos(a)
	return r2.Vec{X: c*p.X - s*p.Y, Y: s*p.X + c*p.Y}
}

// Palette is a cosine colour ramp: a + b*cos(2pi*(c*t + d)) per channel.
func Palette(t float64, a, b, c, d [3]float64) [3]float64 {
	var out [3]float64
	for i := range out {
		out[i] = a[i] + b[i]*math.Cos(6.28318*(c[i]*t+d[i]))
	}
	return out
}

// Smoothstep is the cubic Hermite step between edges e0 and e1.
func Smoothstep(e0, e1, x float64) float64 {
	t := Saturate((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

// Saturate clamps v to [0, 1].
func Saturate(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

func mix(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
