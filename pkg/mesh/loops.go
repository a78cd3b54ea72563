package mesh

// maxLoopIterations caps every loop walk. Malformed topology can cycle
// without revisiting the same element; the cap turns that into a
// truncated (still valid) partial loop.
const maxLoopIterations = 1000

// Edge is an undirected edge between two vertex indices.
type Edge struct {
	A, B int
}

// EdgeRing walks "straight across" quad faces from the seed edge: in a
// quad containing the edge at cycle positions i and j, the next edge is
// the pair of vertices two positions further around the cycle. The walk
// runs in both directions and returns the edges concatenated with the
// seed in the middle. It stops at a triangle, a boundary, or a face it
// has already visited (which is how a closed ring terminates).
func (m *LogicalMesh) EdgeRing(a, b int) []Edge {
	shared := m.FacesSharingEdge(a, b)
	visited := make(map[int]bool)

	var forward, backward []Edge
	if len(shared) > 0 {
		forward, _ = m.walkAcross(a, b, shared[0], visited)
	}
	if len(shared) > 1 {
		backward, _ = m.walkAcross(a, b, shared[1], visited)
	}

	ring := make([]Edge, 0, len(backward)+1+len(forward))
	for i := len(backward) - 1; i >= 0; i-- {
		ring = append(ring, backward[i])
	}
	ring = append(ring, Edge{a, b})
	ring = append(ring, forward...)
	return ring
}

// FaceLoop returns the faces threaded by the edge ring through the
// seed edge, walking across quads from each of the (at most two) faces
// sharing the seed.
func (m *LogicalMesh) FaceLoop(a, b int) []int {
	shared := m.FacesSharingEdge(a, b)
	visited := make(map[int]bool)

	var forward, backward []int
	if len(shared) > 0 {
		_, forward = m.walkAcross(a, b, shared[0], visited)
	}
	if len(shared) > 1 {
		_, backward = m.walkAcross(a, b, shared[1], visited)
	}

	loop := make([]int, 0, len(backward)+len(forward))
	for i := len(backward) - 1; i >= 0; i-- {
		loop = append(loop, backward[i])
	}
	loop = append(loop, forward...)
	return loop
}

// walkAcross steps the quad-traversal rule from one side of the seed
// edge, collecting the edges and faces crossed until it hits a
// triangle, a boundary, or a visited face.
func (m *LogicalMesh) walkAcross(a, b, face int, visited map[int]bool) (edges []Edge, faces []int) {
	for iter := 0; iter < maxLoopIterations; iter++ {
		if visited[face] {
			return
		}
		na, nb, ok := m.stepAcrossFace(face, a, b)
		if !ok {
			return
		}
		visited[face] = true
		faces = append(faces, face)
		edges = append(edges, Edge{na, nb})

		next := NoPair
		for _, nf := range m.FacesSharingEdge(na, nb) {
			if nf != face && !visited[nf] {
				next = nf
				break
			}
		}
		if next == NoPair {
			return
		}
		a, b = na, nb
		face = next
	}
	return
}

// stepAcrossFace finds the edge "straight across" a quad from the edge
// (a, b). Only quads can be stepped across.
func (m *LogicalMesh) stepAcrossFace(face int, a, b int) (na, nb int, ok bool) {
	f := m.Faces[face]
	if len(f) != 4 {
		return 0, 0, false
	}
	i := m.indexInFace(f, a)
	j := m.indexInFace(f, b)
	if i < 0 || j < 0 {
		return 0, 0, false
	}
	return f[(i+2)%4], f[(j+2)%4], true
}

// EdgeLoop walks along connected vertices from the seed edge. At each
// vertex it picks, among the neighbors reached through adjacent faces
// (siblings treated as the same graph node), the one whose connecting
// edge shares no face with the edge just traversed: the vertex
// straight ahead rather than a face-diagonal neighbor. The walk runs
// in both directions from the seed.
func (m *LogicalMesh) EdgeLoop(a, b int) []Edge {
	visited := map[int]bool{m.canonical(a): true, m.canonical(b): true}

	forward := m.walkAlong(a, b, visited)
	backward := m.walkAlong(b, a, visited)

	loop := make([]Edge, 0, len(backward)+1+len(forward))
	for i := len(backward) - 1; i >= 0; i-- {
		e := backward[i]
		loop = append(loop, Edge{e.B, e.A})
	}
	loop = append(loop, Edge{a, b})
	loop = append(loop, forward...)
	return loop
}

// VertexLoop returns the deduplicated vertices touched by the edge
// loop through the seed edge, in walk order.
func (m *LogicalMesh) VertexLoop(a, b int) []int {
	loop := m.EdgeLoop(a, b)
	seen := make(map[int]bool)
	var verts []int
	add := func(v int) {
		c := m.canonical(v)
		if !seen[c] {
			seen[c] = true
			verts = append(verts, v)
		}
	}
	for _, e := range loop {
		add(e.A)
		add(e.B)
	}
	return verts
}

// walkAlong extends an edge loop in one direction: prev->cur is the
// edge just traversed, and each step picks the straight-ahead neighbor
// of cur.
func (m *LogicalMesh) walkAlong(prev, cur int, visited map[int]bool) []Edge {
	var out []Edge
	for iter := 0; iter < maxLoopIterations; iter++ {
		next, ok := m.straightAhead(prev, cur)
		if !ok {
			break
		}
		c := m.canonical(next)
		if visited[c] {
			break
		}
		visited[c] = true
		out = append(out, Edge{cur, next})
		prev, cur = cur, next
	}
	return out
}

// straightAhead finds a neighbor of cur whose connecting edge shares
// no face with the edge (prev, cur).
func (m *LogicalMesh) straightAhead(prev, cur int) (int, bool) {
	prevFaces := make(map[int]bool)
	for _, fi := range m.FacesSharingEdge(prev, cur) {
		prevFaces[fi] = true
	}

	for _, n := range m.neighborVertices(cur) {
		if m.SameLogical(n, prev) {
			continue
		}
		shares := false
		for _, fi := range m.FacesSharingEdge(cur, n) {
			if prevFaces[fi] {
				shares = true
				break
			}
		}
		if !shares {
			return n, true
		}
	}
	return 0, false
}

// neighborVertices lists the vertices adjacent to v along face
// boundaries, consulting sibling-aware face membership and deduping by
// logical identity.
func (m *LogicalMesh) neighborVertices(v int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, fi := range m.VertexToFaces[v] {
		face := m.Faces[fi]
		i := m.indexInFace(face, v)
		if i < 0 {
			continue
		}
		n := len(face)
		for _, cand := range []int{face[(i+1)%n], face[(i+n-1)%n]} {
			c := m.canonical(cand)
			if !seen[c] {
				seen[c] = true
				out = append(out, cand)
			}
		}
	}
	return out
}

// canonical returns the lowest index among v and its siblings, used as
// the logical identity of a possibly seam-duplicated vertex.
func (m *LogicalMesh) canonical(v int) int {
	c := v
	for _, sib := range m.Siblings[v] {
		if sib < c {
			c = sib
		}
	}
	return c
}
