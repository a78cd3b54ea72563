// Package mesh implements the mesh-editing kernel: logical face topology,
// half-edge adjacency, loop/ring traversal, quad reconstruction from
// triangulated input, and geodesic soft-selection weighting.
package mesh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultWeldEpsilon is the quantization step used to decide that two
// vertex positions are coincident (siblings).
const DefaultWeldEpsilon = 1e-4

// PositionKey is a quantized 3D position. Two vertices whose positions
// round to the same key at the welding epsilon are treated as the same
// logical point.
type PositionKey struct {
	X, Y, Z int64
}

// Quantize rounds a position to its welding key.
func Quantize(p mgl32.Vec3, epsilon float32) PositionKey {
	inv := 1 / epsilon
	return PositionKey{
		X: int64(math32.Round(p[0] * inv)),
		Y: int64(math32.Round(p[1] * inv)),
		Z: int64(math32.Round(p[2] * inv)),
	}
}

// WeldGroups buckets vertex indices by quantized position. Every layer
// that needs position welding (siblings, reconstruction, weighting)
// goes through here so a single epsilon convention applies.
func WeldGroups(positions []mgl32.Vec3, epsilon float32) map[PositionKey][]int {
	if epsilon <= 0 {
		epsilon = DefaultWeldEpsilon
	}
	groups := make(map[PositionKey][]int, len(positions))
	for i, p := range positions {
		key := Quantize(p, epsilon)
		groups[key] = append(groups[key], i)
	}
	return groups
}

// CanonicalVertices maps every vertex index to the lowest index sharing
// its quantized position. Vertices with a unique position map to
// themselves.
func CanonicalVertices(positions []mgl32.Vec3, epsilon float32) []int {
	canonical := make([]int, len(positions))
	for _, group := range WeldGroups(positions, epsilon) {
		lowest := group[0]
		for _, vi := range group {
			if vi < lowest {
				lowest = vi
			}
		}
		for _, vi := range group {
			canonical[vi] = lowest
		}
	}
	return canonical
}

// BuildSiblings returns, for each vertex with coincident duplicates,
// the other indices at its quantized position. The map is symmetric
// and excludes self; vertices without duplicates have no entry.
func BuildSiblings(positions []mgl32.Vec3, epsilon float32) map[int][]int {
	siblings := make(map[int][]int)
	for _, group := range WeldGroups(positions, epsilon) {
		if len(group) < 2 {
			continue
		}
		for _, vi := range group {
			for _, other := range group {
				if other != vi {
					siblings[vi] = append(siblings[vi], other)
				}
			}
		}
	}
	return siblings
}
