package camera

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	axisX   = r3.Vec{X: 1}
	axisY   = r3.Vec{Y: 1}
	forward = r3.Vec{Z: -1}
	left    = r3.Vec{X: -1}
)

// identity is the unit quaternion with no rotation.
var identity = quat.Number{Real: 1}

// axisAngle returns the unit quaternion rotating by angle around axis.
func axisAngle(axis r3.Vec, angle float64) quat.Number {
	return quat.Number(r3.NewRotation(angle, axis))
}

// rotate applies the unit quaternion q to v.
func rotate(q quat.Number, v r3.Vec) r3.Vec {
	return r3.Rotation(q).Rotate(v)
}

func qdot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

func normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return identity
	}
	return quat.Scale(1/n, q)
}

// Slerp spherically interpolates from a toward b by t in [0, 1] along the
// shortest arc.
func Slerp(a, b quat.Number, t float64) quat.Number {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}

	cosHalf := qdot(a, b)
	if cosHalf < 0 {
		b = quat.Scale(-1, b)
		cosHalf = -cosHalf
	}
	if cosHalf >= 1 {
		return a
	}

	sqrSin := 1 - cosHalf*cosHalf
	if sqrSin <= 1e-12 {
		return normalize(quat.Add(quat.Scale(1-t, a), quat.Scale(t, b)))
	}

	sinHalf := math.Sqrt(sqrSin)
	halfTheta := math.Atan2(sinHalf, cosHalf)
	ra := math.Sin((1-t)*halfTheta) / sinHalf
	rb := math.Sin(t*halfTheta) / sinHalf
	return quat.Add(quat.Scale(ra, a), quat.Scale(rb, b))
}

// LookRotation returns the orientation whose -Z axis points from eye to
// target with the given up vector. ok is false when eye and target coincide
// or the view direction is parallel to up.
func LookRotation(eye, target, up r3.Vec) (q quat.Number, ok bool) {
	z := r3.Sub(eye, target)
	if r3.Norm2(z) == 0 {
		return identity, false
	}
	z = r3.Unit(z)
	x := r3.Cross(up, z)
	if r3.Norm2(x) < 1e-18 {
		return identity, false
	}
	x = r3.Unit(x)
	y := r3.Cross(z, x)
	return fromBasis(x, y, z), true
}

// fromBasis converts an orthonormal basis (matrix columns) into a quaternion.
func fromBasis(x, y, z r3.Vec) quat.Number {
	m11, m12, m13 := x.X, y.X, z.X
	m21, m22, m23 := x.Y, y.Y, z.Y
	m31, m32, m33 := x.Z, y.Z, z.Z

	trace := m11 + m22 + m33
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		return quat.Number{
			Real: 0.25 / s,
			Imag: (m32 - m23) * s,
			Jmag: (m13 - m31) * s,
			Kmag: (m21 - m12) * s,
		}
	case m11 > m22 && m11 > m33:
		s := 2 * math.Sqrt(1+m11-m22-m33)
		return quat.Number{
			Real: (m32 - m23) / s,
			Imag: 0.25 * s,
			Jmag: (m12 + m21) / s,
			Kmag: (m13 + m31) / s,
		}
	case m22 > m33:
		s := 2 * math.Sqrt(1+m22-m11-m33)
		return quat.Number{
			Real: (m13 - m31) / s,
			Imag: (m12 + m21) / s,
			Jmag: 0.25 * s,
			Kmag: (m23 + m32) / s,
		}
	default:
		s := 2 * math.Sqrt(1+m33-m11-m22)
		return quat.Number{
			Real: (m21 - m12) / s,
			Imag: (m13 + m31) / s,
			Jmag: (m23 + m32) / s,
			Kmag: 0.25 * s,
		}
	}
}
