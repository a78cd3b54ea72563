package mesh

import (
	"container/heap"

	"github.com/go-gl/mathgl/mgl32"
)

// weightIterationFactor caps the Dijkstra pop count at vertexCount
// times this factor, guarding against pathological adjacency.
const weightIterationFactor = 10

// distNode is a frontier entry in the geodesic distance sweep.
type distNode struct {
	Vertex int
	Dist   float32
	Index  int // Index in heap
}

// distHeap is a min-heap of frontier nodes by running distance.
type distHeap []*distNode

func (h distHeap) Len() int           { return len(h) }
func (h distHeap) Less(i, j int) bool { return h[i].Dist < h[j].Dist }
func (h distHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].Index = i
	h[j].Index = j
}

func (h *distHeap) Push(x interface{}) {
	n := len(*h)
	node := x.(*distNode)
	node.Index = n
	*h = append(*h, node)
}

func (h *distHeap) Pop() interface{} {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.Index = -1
	*h = old[0 : n-1]
	return node
}

// SurfaceWeights computes a geodesic soft-selection falloff: for every
// vertex, an influence weight in [0, 1] derived from the shortest
// surface distance to the selected set, smoothstepped to 0 at radius.
//
// Connectivity comes from the triangle edges plus full connection
// within every group of position-welded vertices, so a falloff crosses
// UV seams instead of stopping at them. The selection is seeded
// together with all position-siblings of its members at distance 0.
// With radius at or near zero only the seeds themselves get weight 1.
func SurfaceWeights(indices []uint32, positions []mgl32.Vec3, selected map[int]bool, radius float32) []float32 {
	vertexCount := len(positions)
	weights := make([]float32, vertexCount)
	if vertexCount == 0 || len(selected) == 0 {
		return weights
	}

	// Undirected adjacency from triangle edges.
	adjacency := make([][]int, vertexCount)
	addEdge := func(a, b int) {
		if a == b || a < 0 || b < 0 || a >= vertexCount || b >= vertexCount {
			return
		}
		adjacency[a] = append(adjacency[a], b)
		adjacency[b] = append(adjacency[b], a)
	}
	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := int(indices[t]), int(indices[t+1]), int(indices[t+2])
		addEdge(a, b)
		addEdge(b, c)
		addEdge(c, a)
	}

	// Seam duplicates become zero-distance neighbors.
	groups := WeldGroups(positions, DefaultWeldEpsilon)
	for _, group := range groups {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				addEdge(group[i], group[j])
			}
		}
	}

	dist := make([]float32, vertexCount)
	reached := make([]bool, vertexCount)
	nodes := make(map[int]*distNode, len(selected))

	frontier := &distHeap{}
	heap.Init(frontier)
	seed := func(v int) {
		if v < 0 || v >= vertexCount {
			return
		}
		if _, ok := nodes[v]; ok {
			return
		}
		node := &distNode{Vertex: v, Dist: 0}
		nodes[v] = node
		heap.Push(frontier, node)
	}
	for v := range selected {
		seed(v)
		if v >= 0 && v < vertexCount {
			for _, sib := range groups[Quantize(positions[v], DefaultWeldEpsilon)] {
				seed(sib)
			}
		}
	}

	maxIterations := vertexCount * weightIterationFactor
	iterations := 0
	for frontier.Len() > 0 && iterations < maxIterations {
		iterations++
		current := heap.Pop(frontier).(*distNode)
		v := current.Vertex
		if reached[v] {
			continue
		}
		reached[v] = true
		dist[v] = current.Dist

		if current.Dist > radius {
			continue // Beyond the falloff; no need to expand
		}
		for _, n := range adjacency[v] {
			if reached[n] {
				continue
			}
			d := current.Dist + positions[n].Sub(positions[v]).Len()
			if d > radius {
				continue
			}
			if node, ok := nodes[n]; ok {
				if d < node.Dist {
					node.Dist = d
					heap.Fix(frontier, node.Index)
				}
			} else {
				node := &distNode{Vertex: n, Dist: d}
				nodes[n] = node
				heap.Push(frontier, node)
			}
		}
	}

	for v := 0; v < vertexCount; v++ {
		if !reached[v] || dist[v] > radius {
			continue
		}
		if radius <= 0 {
			if dist[v] == 0 {
				weights[v] = 1
			}
			continue
		}
		t := 1 - dist[v]/radius
		weights[v] = t * t * (3 - 2*t)
	}
	return weights
}
