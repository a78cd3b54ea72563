package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshkit/pkg/spatial"
)

// LogicalMesh is the persistent topology description of one mesh asset:
// ordered polygons over a caller-owned vertex buffer, plus the derived
// adjacency used by picking and traversal.
//
// The half-edge graph and the BVH are lazy caches. Whoever mutates the
// vertex buffer must call InvalidateCaches before the next query; there
// is no automatic dirty tracking, and querying a stale BVH yields
// silently wrong results.
type LogicalMesh struct {
	// Faces are ordered polygons of vertex indices, each length >= 3.
	Faces [][]int

	// TriangleToFace maps every fan triangle produced by Triangulate
	// back to its owning logical face.
	TriangleToFace []int

	// VertexToFaces maps a vertex to the faces touching it, including
	// faces that touch any sibling of the vertex.
	VertexToFaces map[int][]int

	// Siblings maps a vertex to the other indices at its quantized
	// position (UV-seam or hard-edge duplicates).
	Siblings map[int][]int

	// BVHOptions tunes the lazily built spatial index. Changing it
	// after the first BVH query requires InvalidateCaches to take
	// effect.
	BVHOptions spatial.BVHOptions

	vertexCount int
	graph       *HalfEdgeGraph
	bvh         *spatial.BVH
}

// NewLogicalMesh builds the mesh description from authored faces and
// the vertex buffer the indices point into. Faces shorter than 3
// vertices are dropped.
func NewLogicalMesh(faces [][]int, positions []mgl32.Vec3) *LogicalMesh {
	m := &LogicalMesh{
		vertexCount: len(positions),
		Siblings:    BuildSiblings(positions, DefaultWeldEpsilon),
	}
	for _, f := range faces {
		if len(f) < 3 {
			continue
		}
		m.Faces = append(m.Faces, f)
	}
	m.buildVertexToFaces()
	return m
}

func (m *LogicalMesh) buildVertexToFaces() {
	direct := make(map[int][]int, m.vertexCount)
	for fi, face := range m.Faces {
		for _, vi := range face {
			direct[vi] = append(direct[vi], fi)
		}
	}

	// Fold in faces reached through siblings so seam-duplicated
	// vertices see the whole one-ring.
	m.VertexToFaces = make(map[int][]int, len(direct))
	for vi, faces := range direct {
		seen := make(map[int]bool, len(faces))
		var all []int
		add := func(fs []int) {
			for _, fi := range fs {
				if !seen[fi] {
					seen[fi] = true
					all = append(all, fi)
				}
			}
		}
		add(faces)
		for _, sib := range m.Siblings[vi] {
			add(direct[sib])
		}
		m.VertexToFaces[vi] = all
	}
}

// VertexCount returns the size of the vertex buffer the mesh indexes.
func (m *LogicalMesh) VertexCount() int {
	return m.vertexCount
}

// SameLogical reports whether two vertex indices refer to the same
// logical point: identical, or coincident siblings.
func (m *LogicalMesh) SameLogical(a, b int) bool {
	if a == b {
		return true
	}
	for _, sib := range m.Siblings[a] {
		if sib == b {
			return true
		}
	}
	return false
}

// Triangulate fan-triangulates every face and fills TriangleToFace.
func (m *LogicalMesh) Triangulate() []uint32 {
	var indices []uint32
	m.TriangleToFace = m.TriangleToFace[:0]
	for fi, face := range m.Faces {
		for i := 1; i < len(face)-1; i++ {
			indices = append(indices, uint32(face[0]), uint32(face[i]), uint32(face[i+1]))
			m.TriangleToFace = append(m.TriangleToFace, fi)
		}
	}
	return indices
}

// Graph returns the half-edge graph, building it on first use.
func (m *LogicalMesh) Graph() *HalfEdgeGraph {
	if m.graph == nil {
		m.graph = BuildHalfEdges(m.Faces, m.vertexCount)
	}
	return m.graph
}

// BVH returns the spatial index over the mesh faces, building it on
// first use from the given positions.
func (m *LogicalMesh) BVH(positions []mgl32.Vec3) *spatial.BVH {
	if m.bvh == nil {
		m.bvh = spatial.BuildBVH(m.Faces, positions, m.BVHOptions)
	}
	return m.bvh
}

// InvalidateCaches drops the derived half-edge graph and BVH. This is
// the single invalidation entry point; every mutation path must call it
// before the next query.
func (m *LogicalMesh) InvalidateCaches() {
	m.graph = nil
	m.bvh = nil
}

// FacesSharingEdge returns the faces containing both endpoints of an
// edge, treating siblings of each endpoint as the endpoint itself.
// A manifold interior edge yields two faces, a boundary edge one.
func (m *LogicalMesh) FacesSharingEdge(a, b int) []int {
	var out []int
	for _, fi := range m.VertexToFaces[a] {
		face := m.Faces[fi]
		if m.indexInFace(face, a) >= 0 && m.indexInFace(face, b) >= 0 {
			out = append(out, fi)
		}
	}
	return out
}

// indexInFace returns the position of v (or any sibling of v) in the
// face's vertex cycle, or -1.
func (m *LogicalMesh) indexInFace(face []int, v int) int {
	for i, fv := range face {
		if m.SameLogical(fv, v) {
			return i
		}
	}
	return -1
}
