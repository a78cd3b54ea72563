package mesh

// NoPair marks a half-edge without an opposite (a boundary, or the
// loser of a non-manifold pairing conflict).
const NoPair = -1

// HalfEdge is one directed edge on a face boundary.
type HalfEdge struct {
	Target int // Vertex this half-edge points to
	Origin int // Vertex this half-edge leaves from
	Pair   int // Opposite-direction half-edge, or NoPair
	Next   int // Following half-edge around the owning face
	Prev   int // Preceding half-edge around the owning face
	Face   int // Owning face

	// EdgeKey is the canonical undirected edge: endpoints sorted
	// ascending. Used for edge-identity lookups only; pairing is
	// matched on the directed (Origin, Target) key.
	EdgeKey [2]int
}

// HalfEdgeGraph is the half-edge adjacency built from logical faces.
type HalfEdgeGraph struct {
	HalfEdges []HalfEdge

	// VertexEdge holds one outgoing half-edge per vertex (first touch
	// wins), or NoPair for vertices no face references.
	VertexEdge []int

	// FaceEdge holds one half-edge per face.
	FaceEdge []int

	// NonManifold counts directed edges registered by more than one
	// face. The last registration wins the pairing lookup; earlier
	// half-edges on the same directed edge stay unpaired.
	NonManifold int
}

// BuildHalfEdges converts ordered polygons into a half-edge graph.
// Pairing matches each half-edge to the one with the reversed directed
// key; unmatched half-edges are boundaries. Pairing is by exact vertex
// index, not by sibling welding, so seam-duplicated vertices produce
// unpaired half-edges along the seam.
func BuildHalfEdges(faces [][]int, vertexCount int) *HalfEdgeGraph {
	g := &HalfEdgeGraph{
		VertexEdge: make([]int, vertexCount),
		FaceEdge:   make([]int, len(faces)),
	}
	for i := range g.VertexEdge {
		g.VertexEdge[i] = NoPair
	}

	directed := make(map[[2]int]int)

	for fi, face := range faces {
		n := len(face)
		if n < 3 {
			g.FaceEdge[fi] = NoPair
			continue
		}
		base := len(g.HalfEdges)
		g.FaceEdge[fi] = base

		for i := 0; i < n; i++ {
			origin := face[i]
			target := face[(i+1)%n]

			key := [2]int{origin, target}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}

			he := HalfEdge{
				Origin:  origin,
				Target:  target,
				Pair:    NoPair,
				Next:    base + (i+1)%n,
				Prev:    base + (i+n-1)%n,
				Face:    fi,
				EdgeKey: key,
			}
			idx := len(g.HalfEdges)
			g.HalfEdges = append(g.HalfEdges, he)

			if _, taken := directed[[2]int{origin, target}]; taken {
				g.NonManifold++
			}
			directed[[2]int{origin, target}] = idx

			if origin >= 0 && origin < vertexCount && g.VertexEdge[origin] == NoPair {
				g.VertexEdge[origin] = idx
			}
		}
	}

	// Second pass: match each half-edge to its reverse.
	for i := range g.HalfEdges {
		he := &g.HalfEdges[i]
		if pair, ok := directed[[2]int{he.Target, he.Origin}]; ok {
			// Only pair up if the reverse lookup still points back;
			// a non-manifold overwrite leaves the loser unpaired.
			if directed[[2]int{he.Origin, he.Target}] == i {
				he.Pair = pair
			}
		}
	}

	return g
}

// BoundaryCount returns the number of half-edges without a pair.
func (g *HalfEdgeGraph) BoundaryCount() int {
	n := 0
	for i := range g.HalfEdges {
		if g.HalfEdges[i].Pair == NoPair {
			n++
		}
	}
	return n
}
