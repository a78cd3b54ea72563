package spatial

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyAABB returns a box that contains nothing; expanding it by any
// point yields a box around that point.
func EmptyAABB() AABB {
	return AABB{
		Min: mgl32.Vec3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
		Max: mgl32.Vec3{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
	}
}

// Expand grows the box to contain the point.
func (b *AABB) Expand(p mgl32.Vec3) {
	for axis := 0; axis < 3; axis++ {
		if p[axis] < b.Min[axis] {
			b.Min[axis] = p[axis]
		}
		if p[axis] > b.Max[axis] {
			b.Max[axis] = p[axis]
		}
	}
}

// Union grows the box to contain another box.
func (b *AABB) Union(other AABB) {
	b.Expand(other.Min)
	b.Expand(other.Max)
}

// Center returns the box midpoint.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// LongestAxis returns 0, 1, or 2 for the axis with the largest extent.
func (b AABB) LongestAxis() int {
	ext := b.Max.Sub(b.Min)
	axis := 0
	if ext[1] > ext[axis] {
		axis = 1
	}
	if ext[2] > ext[axis] {
		axis = 2
	}
	return axis
}

// ContainsPoint reports whether the point lies inside or on the box.
func (b AABB) ContainsPoint(p mgl32.Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		if p[axis] < b.Min[axis] || p[axis] > b.Max[axis] {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether the sphere overlaps the box.
func (b AABB) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	var distSq float32
	for axis := 0; axis < 3; axis++ {
		if center[axis] < b.Min[axis] {
			d := b.Min[axis] - center[axis]
			distSq += d * d
		} else if center[axis] > b.Max[axis] {
			d := center[axis] - b.Max[axis]
			distSq += d * d
		}
	}
	return distSq <= radius*radius
}
