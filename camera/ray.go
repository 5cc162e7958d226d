package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Ray is a half-line from Origin along Dir.
type Ray struct {
	Origin r3.Vec
	Dir    r3.Vec
}

// At returns the point at parameter t.
func (r Ray) At(t float64) r3.Vec {
	return r3.Add(r.Origin, r3.Scale(t, r.Dir))
}

// IntersectBox returns the first point where the ray meets the box. A ray
// starting inside the box reports its exit point.
func (r Ray) IntersectBox(b r3.Box) (r3.Vec, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	o := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	d := [3]float64{r.Dir.X, r.Dir.Y, r.Dir.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < 1e-12 {
			// Parallel to this slab: inside it or never.
			if o[i] < lo[i] || o[i] > hi[i] {
				return r3.Vec{}, false
			}
			continue
		}
		inv := 1 / d[i]
		t1 := (lo[i] - o[i]) * inv
		t2 := (hi[i] - o[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return r3.Vec{}, false
		}
	}

	if tmax < 0 {
		return r3.Vec{}, false
	}
	if tmin >= 0 {
		return r.At(tmin), true
	}
	return r.At(tmax), true
}

// Nearest casts the ray against volumes and returns the closest hit, or the
// point at farDistance when nothing is nearer. hit reports whether a volume
// was chosen.
func (r Ray) Nearest(volumes []r3.Box, farDistance float64) (point r3.Vec, hit bool) {
	closest := r.At(farDistance)
	closestDist := r3.Norm(r3.Sub(closest, r.Origin))

	for _, b := range volumes {
		p, ok := r.IntersectBox(b)
		if !ok {
			continue
		}
		if d := r3.Norm(r3.Sub(p, r.Origin)); d < closestDist {
			closest = p
			closestDist = d
			hit = true
		}
	}
	return closest, hit
}
