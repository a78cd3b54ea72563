package mesh

import (
	"container/heap"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Default thresholds for quad reconstruction, tuned empirically. The
// heuristic is order- and threshold-sensitive: different settings give
// different but equally valid quadrangulations.
const (
	DefaultPlanarity     = 0.7
	DefaultOrthogonality = 0.2
	DefaultEdgeRatio     = 3.0
	DefaultStripBias     = 2.5
)

// ReconstructOptions tunes the quad-detection heuristic.
type ReconstructOptions struct {
	WeldEpsilon   float32 // Position weld step; DefaultWeldEpsilon when <= 0
	Planarity     float32 // Min normal dot between merged triangles
	Orthogonality float32 // Min per-corner orthogonality of the quad
	EdgeRatio     float32 // Max longest/shortest quad edge ratio
	StripBias     float32 // Score bonus per already-merged neighbor
	Logger        *zap.Logger
}

func (o *ReconstructOptions) defaults() {
	if o.WeldEpsilon <= 0 {
		o.WeldEpsilon = DefaultWeldEpsilon
	}
	if o.Planarity == 0 {
		o.Planarity = DefaultPlanarity
	}
	if o.Orthogonality == 0 {
		o.Orthogonality = DefaultOrthogonality
	}
	if o.EdgeRatio == 0 {
		o.EdgeRatio = DefaultEdgeRatio
	}
	if o.StripBias == 0 {
		o.StripBias = DefaultStripBias
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

type quadCandidate struct {
	t0, t1 int    // Triangle ids, t0 < t1
	quad   [4]int // Merged vertex cycle, winding preserved
	base   float32
	score  float32 // Heap priority: base + strip bias at push time
	index  int     // Heap bookkeeping
}

// Reconstruct infers a logical face list of quads and leftover
// triangles from a flat triangle index buffer. Adjacent coplanar
// triangle pairs are merged back into quads, highest quality first,
// with a bias toward extending already-merged strips. The result is a
// best-effort heuristic, never a failure: worst case every triangle
// stays a triangle.
func Reconstruct(indices []uint32, positions []mgl32.Vec3, opts ReconstructOptions) *LogicalMesh {
	opts.defaults()

	triCount := len(indices) / 3
	canonical := CanonicalVertices(positions, opts.WeldEpsilon)

	// Flat normal per triangle from its own positions, never the
	// interpolated vertex normals.
	normals := make([]mgl32.Vec3, triCount)
	for t := 0; t < triCount; t++ {
		a := positions[indices[t*3]]
		b := positions[indices[t*3+1]]
		c := positions[indices[t*3+2]]
		n := b.Sub(a).Cross(c.Sub(a))
		if l := n.Len(); l > 1e-10 {
			normals[t] = n.Mul(1 / l)
		}
		// Degenerate triangles keep a zero normal and fail every
		// planarity test, so they are never merged.
	}

	// Edge -> triangles over welded indices; edges shared by exactly
	// two triangles are merge candidates.
	edgeTris := make(map[[2]int][]int)
	for t := 0; t < triCount; t++ {
		for e := 0; e < 3; e++ {
			a := canonical[indices[t*3+e]]
			b := canonical[indices[t*3+(e+1)%3]]
			if a > b {
				a, b = b, a
			}
			edgeTris[[2]int{a, b}] = append(edgeTris[[2]int{a, b}], t)
		}
	}

	triNeighbors := make([][]int, triCount)
	var candidates []*quadCandidate
	for key, tris := range edgeTris {
		if len(tris) != 2 {
			continue
		}
		t0, t1 := tris[0], tris[1]
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		triNeighbors[t0] = append(triNeighbors[t0], t1)
		triNeighbors[t1] = append(triNeighbors[t1], t0)

		if c, ok := evaluatePair(indices, positions, canonical, normals, t0, t1, key, &opts); ok {
			candidates = append(candidates, c)
		}
	}

	// Greedy merge, best score first. The strip bias depends on what
	// has already merged, so scores are recomputed lazily: a popped
	// candidate whose effective score rose since it was pushed goes
	// back in with the new score. Candidates still queued keep their
	// push-time scores, so the order approximates strict
	// best-effective-first; any order of merges yields a valid
	// quadrangulation.
	consumed := make([]bool, triCount)
	merged := make([]int, triCount) // Quad face id a triangle merged into, or -1
	for i := range merged {
		merged[i] = -1
	}
	quadOf := make(map[int][4]int) // t0 -> quad cycle

	h := &candidateHeap{}
	for _, c := range candidates {
		heap.Push(h, c)
	}

	effective := func(c *quadCandidate) float32 {
		bias := float32(0)
		for _, n := range triNeighbors[c.t0] {
			if consumed[n] {
				bias += opts.StripBias
			}
		}
		for _, n := range triNeighbors[c.t1] {
			if consumed[n] {
				bias += opts.StripBias
			}
		}
		return c.base + bias
	}

	accepted := 0
	for h.Len() > 0 {
		c := heap.Pop(h).(*quadCandidate)
		if consumed[c.t0] || consumed[c.t1] {
			continue
		}
		if eff := effective(c); eff > c.score {
			c.score = eff
			heap.Push(h, c)
			continue
		}
		consumed[c.t0] = true
		consumed[c.t1] = true
		merged[c.t0] = c.t0
		merged[c.t1] = c.t0
		quadOf[c.t0] = c.quad
		accepted++
	}

	// Emit quads and leftover triangles in first-triangle order.
	var faces [][]int
	for t := 0; t < triCount; t++ {
		if merged[t] == t {
			q := quadOf[t]
			faces = append(faces, []int{q[0], q[1], q[2], q[3]})
		} else if merged[t] == -1 {
			faces = append(faces, []int{
				int(indices[t*3]), int(indices[t*3+1]), int(indices[t*3+2]),
			})
		}
	}

	opts.Logger.Debug("quad reconstruction",
		zap.Int("triangles", triCount),
		zap.Int("quads", accepted),
		zap.Int("leftover", triCount-2*accepted))

	return NewLogicalMesh(faces, positions)
}

// evaluatePair builds and scores the quad that would result from
// merging two triangles across a shared welded edge.
func evaluatePair(indices []uint32, positions []mgl32.Vec3, canonical []int,
	normals []mgl32.Vec3, t0, t1 int, sharedKey [2]int, opts *ReconstructOptions) (*quadCandidate, bool) {

	planarity := normals[t0].Dot(normals[t1])
	if planarity < opts.Planarity {
		return nil, false
	}

	// Locate the shared edge in t0's winding: directed edge (u, v)
	// whose welded endpoints match the key. The quad keeps t0's
	// copies of u and v; d is t1's vertex off the shared edge.
	u, v, w := -1, -1, -1
	for e := 0; e < 3; e++ {
		a := int(indices[t0*3+e])
		b := int(indices[t0*3+(e+1)%3])
		ka, kb := canonical[a], canonical[b]
		if ka > kb {
			ka, kb = kb, ka
		}
		if [2]int{ka, kb} == sharedKey {
			u, v = a, b
			w = int(indices[t0*3+(e+2)%3])
			break
		}
	}
	if u < 0 {
		return nil, false
	}
	d := -1
	for e := 0; e < 3; e++ {
		vi := int(indices[t1*3+e])
		if c := canonical[vi]; c != sharedKey[0] && c != sharedKey[1] {
			d = vi
			break
		}
	}
	if d < 0 {
		return nil, false
	}

	// Quad cycle (u, d, v, w): u->d and d->v follow t1's winding,
	// v->w and w->u follow t0's.
	quad := [4]int{u, d, v, w}

	var edges [4]mgl32.Vec3
	shortest := float32(math32.MaxFloat32)
	longest := float32(0)
	for i := 0; i < 4; i++ {
		e := positions[quad[(i+1)%4]].Sub(positions[quad[i]])
		l := e.Len()
		if l < 1e-10 {
			return nil, false // Degenerate quad edge
		}
		edges[i] = e.Mul(1 / l)
		if l < shortest {
			shortest = l
		}
		if l > longest {
			longest = l
		}
	}
	if longest/shortest > opts.EdgeRatio {
		return nil, false
	}

	var orthoSum float32
	for i := 0; i < 4; i++ {
		ortho := 1 - math32.Abs(edges[i].Dot(edges[(i+3)%4]))
		if ortho < opts.Orthogonality {
			return nil, false // Near-degenerate corner
		}
		orthoSum += ortho
	}

	score := 2*orthoSum + 5*planarity
	return &quadCandidate{
		t0:    t0,
		t1:    t1,
		quad:  quad,
		base:  score,
		score: score,
	}, true
}

// candidateHeap is a max-heap of merge candidates by score.
type candidateHeap []*quadCandidate

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return h[i].score > h[j].score }
func (h candidateHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *candidateHeap) Push(x interface{}) {
	c := x.(*quadCandidate)
	c.index = len(*h)
	*h = append(*h, c)
}

func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	c.index = -1
	*h = old[0 : n-1]
	return c
}
