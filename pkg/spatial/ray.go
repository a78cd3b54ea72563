// Package spatial provides rays, axis-aligned bounding boxes, and a
// bounding-volume hierarchy for accelerating queries against polygon meshes.
package spatial

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// triEpsilon rejects near-parallel rays in the triangle intersection test.
const triEpsilon = 1e-6

// Ray is a world-space ray with origin and normalized direction.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// NewRay builds a ray, normalizing the direction. A zero direction is
// returned unchanged; such a ray misses everything.
func NewRay(origin, dir mgl32.Vec3) Ray {
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	return Ray{Origin: origin, Dir: dir}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// IntersectAABB tests the ray against a box using the slab method.
// Returns the entry distance, or the exit distance when the origin is
// inside the box.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin, tmax, ok := r.slabAABB(box)
	if !ok {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// EntryAABB returns the entry distance into the box, clamped to zero
// when the origin is inside. This is the value to order and prune
// front-to-back traversal on: the exit distance IntersectAABB reports
// for interior origins overstates how far away the box's contents are.
func (r Ray) EntryAABB(box AABB) (t float32, hit bool) {
	tmin, _, ok := r.slabAABB(box)
	if !ok {
		return 0, false
	}
	if tmin < 0 {
		return 0, true
	}
	return tmin, true
}

// slabAABB runs the slab test, returning the raw interval of ray
// parameters inside the box.
func (r Ray) slabAABB(box AABB) (tmin, tmax float32, hit bool) {
	tmin = float32(-math32.MaxFloat32)
	tmax = float32(math32.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		if r.Dir[axis] != 0 {
			t1 := (box.Min[axis] - r.Origin[axis]) / r.Dir[axis]
			t2 := (box.Max[axis] - r.Origin[axis]) / r.Dir[axis]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if r.Origin[axis] < box.Min[axis] || r.Origin[axis] > box.Max[axis] {
			return 0, 0, false
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, 0, false
	}
	return tmin, tmax, true
}

// IntersectTriangle runs the Möller–Trumbore ray/triangle test.
// Only hits with positive t are reported.
func (r Ray) IntersectTriangle(a, b, c mgl32.Vec3) (t float32, hit bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Dir.Cross(e2)

	det := e1.Dot(p)
	if math32.Abs(det) < triEpsilon {
		return 0, false // Ray parallel to triangle plane
	}
	invDet := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := r.Dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = e2.Dot(q) * invDet
	if t <= triEpsilon {
		return 0, false
	}
	return t, true
}

// DistanceToPoint returns the shortest distance from the point to the ray.
// Points behind the origin measure to the origin itself.
func (r Ray) DistanceToPoint(p mgl32.Vec3) float32 {
	w := p.Sub(r.Origin)
	t := w.Dot(r.Dir)
	if t < 0 {
		return w.Len()
	}
	return p.Sub(r.At(t)).Len()
}

// DistanceToSegment returns the shortest distance between the ray and the
// segment from a to b.
func (r Ray) DistanceToSegment(a, b mgl32.Vec3) float32 {
	// Closest-point computation between the ray line and the segment,
	// then clamped to the valid parameter ranges.
	u := b.Sub(a)
	v := r.Dir
	w := a.Sub(r.Origin)

	uu := u.Dot(u)
	uv := u.Dot(v)
	vv := v.Dot(v)
	uw := u.Dot(w)
	vw := v.Dot(w)

	denom := uu*vv - uv*uv
	var s, t float32
	if denom < triEpsilon {
		// Segment nearly parallel to ray: project the segment start.
		s = 0
		if vv > 0 {
			t = vw / vv
		}
	} else {
		s = (uv*vw - vv*uw) / denom
		t = (uu*vw - uv*uw) / denom
	}

	s = clamp01(s)
	if t < 0 {
		t = 0
	}

	onSeg := a.Add(u.Mul(s))
	onRay := r.At(t)
	return onSeg.Sub(onRay).Len()
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
