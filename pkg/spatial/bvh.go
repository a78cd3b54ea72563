package spatial

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// DefaultLeafSize is the face count at which BVH recursion stops.
const DefaultLeafSize = 8

// BVHOptions tunes construction.
type BVHOptions struct {
	LeafSize int         // Max faces per leaf; DefaultLeafSize when <= 0
	Logger   *zap.Logger // Optional build diagnostics
}

// BVH is a recursive axis-aligned bounding-volume tree over mesh faces.
// Build once; the tree is never rebalanced. Callers must rebuild after
// any vertex position mutation.
type BVH struct {
	root   *bvhNode
	leaves int
	depth  int
}

type bvhNode struct {
	bounds AABB
	left   *bvhNode
	right  *bvhNode
	faces  []int // Leaf only
}

// BuildBVH constructs the tree over the given logical faces. Faces are
// partitioned by the midpoint of the longest axis of the node bounds; a
// node becomes a leaf at LeafSize faces or when a split fails to
// separate the centroids.
func BuildBVH(faces [][]int, positions []mgl32.Vec3, opts BVHOptions) *BVH {
	leafSize := opts.LeafSize
	if leafSize <= 0 {
		leafSize = DefaultLeafSize
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	boxes := make([]AABB, len(faces))
	centroids := make([]mgl32.Vec3, len(faces))
	indices := make([]int, 0, len(faces))
	for fi, face := range faces {
		box := EmptyAABB()
		var sum mgl32.Vec3
		n := 0
		for _, vi := range face {
			if vi < 0 || vi >= len(positions) {
				continue
			}
			box.Expand(positions[vi])
			sum = sum.Add(positions[vi])
			n++
		}
		if n == 0 {
			continue // Face with no valid vertices carries no volume
		}
		boxes[fi] = box
		centroids[fi] = sum.Mul(1 / float32(n))
		indices = append(indices, fi)
	}

	t := &BVH{}
	if len(indices) > 0 {
		t.root = t.build(indices, boxes, centroids, leafSize, 0)
	}
	log.Debug("bvh built",
		zap.Int("faces", len(indices)),
		zap.Int("leaves", t.leaves),
		zap.Int("depth", t.depth))
	return t
}

func (t *BVH) build(faces []int, boxes []AABB, centroids []mgl32.Vec3, leafSize, depth int) *bvhNode {
	if depth > t.depth {
		t.depth = depth
	}

	node := &bvhNode{bounds: EmptyAABB()}
	for _, fi := range faces {
		node.bounds.Union(boxes[fi])
	}

	if len(faces) <= leafSize {
		node.faces = faces
		t.leaves++
		return node
	}

	axis := node.bounds.LongestAxis()
	mid := node.bounds.Center()[axis]

	left := make([]int, 0, len(faces)/2)
	right := make([]int, 0, len(faces)/2)
	for _, fi := range faces {
		if centroids[fi][axis] < mid {
			left = append(left, fi)
		} else {
			right = append(right, fi)
		}
	}

	// A failed split (all centroids on one side) would recurse forever.
	if len(left) == 0 || len(right) == 0 {
		node.faces = faces
		t.leaves++
		return node
	}

	node.left = t.build(left, boxes, centroids, leafSize, depth+1)
	node.right = t.build(right, boxes, centroids, leafSize, depth+1)
	return node
}

// Empty reports whether the tree holds no faces.
func (t *BVH) Empty() bool {
	return t == nil || t.root == nil
}

// Leaves returns the number of leaf nodes in the tree.
func (t *BVH) Leaves() int {
	return t.leaves
}

// Depth returns the depth of the deepest node.
func (t *BVH) Depth() int {
	return t.depth
}

// FacesAlongRay walks the tree front-to-back along the ray, invoking
// visit for each face in every leaf the ray enters. visit returns the
// current best hit distance, which prunes any subtree whose box entry
// distance is not closer — a tightening bound, not just per-node
// culling. Visit with no hit yet should return math32.MaxFloat32.
func (t *BVH) FacesAlongRay(ray Ray, visit func(face int) (best float32)) {
	if t.Empty() {
		return
	}
	best := float32(math32.MaxFloat32)
	t.walkRay(t.root, ray, &best, visit)
}

func (t *BVH) walkRay(n *bvhNode, ray Ray, best *float32, visit func(int) float32) {
	// Prune on the clamped entry distance: a box containing the origin
	// enters at zero and can still hold the nearest hit.
	tEnter, hit := ray.EntryAABB(n.bounds)
	if !hit || tEnter >= *best {
		return
	}
	if n.faces != nil {
		for _, fi := range n.faces {
			if b := visit(fi); b < *best {
				*best = b
			}
		}
		return
	}

	// Descend the nearer child first so the bound tightens sooner.
	lt, lhit := ray.EntryAABB(n.left.bounds)
	rt, rhit := ray.EntryAABB(n.right.bounds)
	first, second := n.left, n.right
	if lhit && rhit && rt < lt {
		first, second = n.right, n.left
	} else if !lhit && rhit {
		first, second = n.right, n.left
	}
	t.walkRay(first, ray, best, visit)
	t.walkRay(second, ray, best, visit)
}

// FacesNearRay returns the faces whose boxes, inflated by pad on every
// side, are crossed by the ray. Used for proximity queries (nearest
// vertex within pad of the ray) where box culling must run before any
// exact distance test.
func (t *BVH) FacesNearRay(ray Ray, pad float32) []int {
	if t.Empty() {
		return nil
	}
	var out []int
	padVec := mgl32.Vec3{pad, pad, pad}
	var walk func(n *bvhNode)
	walk = func(n *bvhNode) {
		inflated := AABB{Min: n.bounds.Min.Sub(padVec), Max: n.bounds.Max.Add(padVec)}
		if _, hit := ray.IntersectAABB(inflated); !hit {
			return
		}
		if n.faces != nil {
			out = append(out, n.faces...)
			return
		}
		walk(n.left)
		walk(n.right)
	}
	walk(t.root)
	return out
}

// FacesInSphere returns the faces whose boxes overlap the sphere. Box
// overlap culls before any exact test; callers do their own precise
// distance checks on the survivors.
func (t *BVH) FacesInSphere(center mgl32.Vec3, radius float32) []int {
	if t.Empty() {
		return nil
	}
	var out []int
	var walk func(n *bvhNode)
	walk = func(n *bvhNode) {
		if !n.bounds.IntersectsSphere(center, radius) {
			return
		}
		if n.faces != nil {
			out = append(out, n.faces...)
			return
		}
		walk(n.left)
		walk(n.right)
	}
	walk(t.root)
	return out
}
