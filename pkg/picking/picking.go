// Package picking resolves world-space rays and brush volumes against a
// logical mesh: nearest face under a ray refined to the nearest vertex
// and edge, plus proximity queries for brush-style selection.
package picking

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshkit/pkg/mesh"
	"github.com/Faultbox/meshkit/pkg/spatial"
)

// Hit describes the nearest mesh element under a ray.
type Hit struct {
	T      float32    // Ray parameter of the surface hit
	Face   int        // Logical face index
	Vertex int        // Nearest vertex of the hit face to the hit point
	Edge   [2]int     // Hit-face edge nearest to the ray
	Point  mgl32.Vec3 // World-space hit position
}

// RaycastMesh finds the nearest face intersected by the ray, then
// refines within that face to the closest vertex and the closest edge.
// Misses and empty meshes report ok = false, never an error.
//
// The BVH is trusted as-is: after any vertex position mutation the
// caller must InvalidateCaches on the mesh, or results are silently
// stale.
func RaycastMesh(m *mesh.LogicalMesh, positions []mgl32.Vec3, ray spatial.Ray) (Hit, bool) {
	if m == nil || len(m.Faces) == 0 || len(positions) == 0 {
		return Hit{}, false
	}

	best := Hit{T: math32.MaxFloat32, Face: -1}
	m.BVH(positions).FacesAlongRay(ray, func(fi int) float32 {
		face := m.Faces[fi]
		// Fan-triangulate the face the same way the renderer does.
		for i := 1; i < len(face)-1; i++ {
			a, b, c := face[0], face[i], face[i+1]
			if a >= len(positions) || b >= len(positions) || c >= len(positions) {
				continue
			}
			t, hit := ray.IntersectTriangle(positions[a], positions[b], positions[c])
			if !hit || t >= best.T {
				continue
			}
			point := ray.At(t)
			best = Hit{
				T:      t,
				Face:   fi,
				Vertex: nearestFaceVertex(face, positions, point),
				Edge:   nearestFaceEdge(face, positions, ray),
				Point:  point,
			}
		}
		return best.T
	})

	if best.Face < 0 {
		return Hit{}, false
	}
	return best, true
}

// nearestFaceVertex picks the face vertex closest to the hit point.
func nearestFaceVertex(face []int, positions []mgl32.Vec3, point mgl32.Vec3) int {
	nearest := face[0]
	bestSq := float32(math32.MaxFloat32)
	for _, vi := range face {
		if vi >= len(positions) {
			continue
		}
		d := positions[vi].Sub(point)
		if sq := d.Dot(d); sq < bestSq {
			bestSq = sq
			nearest = vi
		}
	}
	return nearest
}

// nearestFaceEdge picks the consecutive vertex pair of the face whose
// segment lies closest to the ray.
func nearestFaceEdge(face []int, positions []mgl32.Vec3, ray spatial.Ray) [2]int {
	nearest := [2]int{face[0], face[1]}
	bestDist := float32(math32.MaxFloat32)
	for i := range face {
		a := face[i]
		b := face[(i+1)%len(face)]
		if a >= len(positions) || b >= len(positions) {
			continue
		}
		if d := ray.DistanceToSegment(positions[a], positions[b]); d < bestDist {
			bestDist = d
			nearest = [2]int{a, b}
		}
	}
	return nearest
}

// NearestVertexOnRay returns the vertex closest to the ray within
// maxDist of it, culling through the BVH before any exact distance
// check. ok = false when nothing is in range.
func NearestVertexOnRay(m *mesh.LogicalMesh, positions []mgl32.Vec3, ray spatial.Ray, maxDist float32) (int, bool) {
	if m == nil || len(m.Faces) == 0 {
		return 0, false
	}

	nearest := -1
	bestDist := maxDist
	seen := make(map[int]bool)
	for _, fi := range m.BVH(positions).FacesNearRay(ray, maxDist) {
		for _, vi := range m.Faces[fi] {
			if seen[vi] || vi >= len(positions) {
				continue
			}
			seen[vi] = true
			if d := ray.DistanceToPoint(positions[vi]); d <= bestDist {
				bestDist = d
				nearest = vi
			}
		}
	}
	if nearest < 0 {
		return 0, false
	}
	return nearest, true
}

// VerticesInSphere returns every vertex inside the world-space sphere,
// deduplicated by index. Seam-duplicated copies at the same position
// are all reported, so a brush edit moves every copy.
func VerticesInSphere(m *mesh.LogicalMesh, positions []mgl32.Vec3, center mgl32.Vec3, radius float32) []int {
	if m == nil || len(m.Faces) == 0 || radius < 0 {
		return nil
	}

	radiusSq := radius * radius
	seen := make(map[int]bool)
	var out []int
	for _, fi := range m.BVH(positions).FacesInSphere(center, radius) {
		for _, vi := range m.Faces[fi] {
			if seen[vi] || vi >= len(positions) {
				continue
			}
			seen[vi] = true
			d := positions[vi].Sub(center)
			if d.Dot(d) <= radiusSq {
				out = append(out, vi)
			}
		}
	}
	return out
}
