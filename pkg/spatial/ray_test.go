package spatial

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewRayNormalizes(t *testing.T) {
	r := NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -10})
	if got := r.Dir.Len(); got < 0.999 || got > 1.001 {
		t.Errorf("NewRay direction length = %v, want ~1", got)
	}
}

func TestIntersectAABBHit(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	r := NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1})

	tEnter, hit := r.IntersectAABB(box)
	if !hit {
		t.Fatal("expected hit")
	}
	if tEnter < 3.999 || tEnter > 4.001 {
		t.Errorf("entry distance = %v, want 4", tEnter)
	}
}

func TestIntersectAABBMiss(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	r := NewRay(mgl32.Vec3{0, 5, 5}, mgl32.Vec3{0, 0, -1})

	if _, hit := r.IntersectAABB(box); hit {
		t.Error("expected miss for offset ray")
	}
}

func TestIntersectAABBFromInside(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	r := NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})

	tExit, hit := r.IntersectAABB(box)
	if !hit {
		t.Fatal("expected hit from inside")
	}
	if tExit < 0.999 || tExit > 1.001 {
		t.Errorf("exit distance = %v, want 1", tExit)
	}
}

func TestEntryAABB(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}

	// From outside the entry distance matches IntersectAABB.
	r := NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1})
	tEnter, hit := r.EntryAABB(box)
	if !hit {
		t.Fatal("expected hit")
	}
	if tEnter < 3.999 || tEnter > 4.001 {
		t.Errorf("entry distance = %v, want 4", tEnter)
	}

	// From inside the entry clamps to zero, never the exit distance.
	r = NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})
	tEnter, hit = r.EntryAABB(box)
	if !hit {
		t.Fatal("expected hit from inside")
	}
	if tEnter != 0 {
		t.Errorf("interior entry distance = %v, want 0", tEnter)
	}

	// Misses agree with IntersectAABB.
	r = NewRay(mgl32.Vec3{0, 5, 5}, mgl32.Vec3{0, 0, -1})
	if _, hit := r.EntryAABB(box); hit {
		t.Error("expected miss for offset ray")
	}
}

func TestIntersectAABBBehind(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	r := NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1})

	if _, hit := r.IntersectAABB(box); hit {
		t.Error("expected miss for box behind the origin")
	}
}

func TestIntersectTriangle(t *testing.T) {
	a := mgl32.Vec3{-1, -1, 0}
	b := mgl32.Vec3{1, -1, 0}
	c := mgl32.Vec3{0, 1, 0}

	r := NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1})
	tt, hit := r.IntersectTriangle(a, b, c)
	if !hit {
		t.Fatal("expected hit through triangle center")
	}
	if tt < 4.999 || tt > 5.001 {
		t.Errorf("t = %v, want 5", tt)
	}

	// Outside the barycentric bounds.
	r = NewRay(mgl32.Vec3{2, 0, 5}, mgl32.Vec3{0, 0, -1})
	if _, hit := r.IntersectTriangle(a, b, c); hit {
		t.Error("expected miss outside the triangle")
	}

	// Parallel to the plane.
	r = NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{1, 0, 0})
	if _, hit := r.IntersectTriangle(a, b, c); hit {
		t.Error("expected miss for parallel ray")
	}
}

func TestDistanceToPoint(t *testing.T) {
	r := NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0})

	if d := r.DistanceToPoint(mgl32.Vec3{5, 3, 0}); d < 2.999 || d > 3.001 {
		t.Errorf("perpendicular distance = %v, want 3", d)
	}
	// Behind the origin: distance to the origin itself.
	if d := r.DistanceToPoint(mgl32.Vec3{-4, 3, 0}); d < 4.999 || d > 5.001 {
		t.Errorf("behind-origin distance = %v, want 5", d)
	}
}

func TestDistanceToSegment(t *testing.T) {
	r := NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0})

	// Segment crossing above the ray at x=2, height 1.
	d := r.DistanceToSegment(mgl32.Vec3{2, 1, -1}, mgl32.Vec3{2, 1, 1})
	if d < 0.999 || d > 1.001 {
		t.Errorf("crossing segment distance = %v, want 1", d)
	}

	// Parallel segment offset by 2.
	d = r.DistanceToSegment(mgl32.Vec3{1, 2, 0}, mgl32.Vec3{4, 2, 0})
	if d < 1.999 || d > 2.001 {
		t.Errorf("parallel segment distance = %v, want 2", d)
	}
}

func TestAABBSphereOverlap(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}}

	if !box.IntersectsSphere(mgl32.Vec3{2, 0.5, 0.5}, 1.5) {
		t.Error("expected overlap with sphere touching the box face")
	}
	if box.IntersectsSphere(mgl32.Vec3{3, 0.5, 0.5}, 1.5) {
		t.Error("expected no overlap at distance 2 with radius 1.5")
	}
	if !box.IntersectsSphere(mgl32.Vec3{0.5, 0.5, 0.5}, 0.1) {
		t.Error("expected overlap for sphere inside the box")
	}
}
