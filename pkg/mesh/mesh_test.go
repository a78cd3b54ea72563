package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshkit/pkg/primitive"
	"github.com/Faultbox/meshkit/pkg/spatial"
)

func TestTriangulateTracksOwningFace(t *testing.T) {
	p := primitive.Cube(0.5)
	m := NewLogicalMesh(p.Faces, p.Positions)

	indices := m.Triangulate()
	if len(indices) != 36 {
		t.Fatalf("triangle indices = %d, want 36", len(indices))
	}
	if len(m.TriangleToFace) != 12 {
		t.Fatalf("TriangleToFace entries = %d, want 12", len(m.TriangleToFace))
	}
	// Each quad fans into two consecutive triangles.
	for tri, fi := range m.TriangleToFace {
		if fi != tri/2 {
			t.Errorf("triangle %d owned by face %d, want %d", tri, fi, tri/2)
		}
	}
}

func TestVertexToFacesIncludesSiblingFaces(t *testing.T) {
	p := primitive.CylinderWithSeam(8, 2, 1, 2)
	m := NewLogicalMesh(p.Faces, p.Positions)

	// Column 0 and column 8 duplicate each other. Vertex 0 must see
	// the faces on both sides of the seam.
	cols := 9
	onSeamLeft := false
	onSeamRight := false
	for _, fi := range m.VertexToFaces[0] {
		for _, vi := range m.Faces[fi] {
			if vi%cols == 1 {
				onSeamRight = true
			}
			if vi%cols == 7 {
				onSeamLeft = true
			}
		}
	}
	if !onSeamRight || !onSeamLeft {
		t.Errorf("vertex 0 faces do not span the seam (right=%v left=%v)", onSeamRight, onSeamLeft)
	}
}

func TestSameLogical(t *testing.T) {
	positions := []mgl32.Vec3{{0, 0, 0}, {0, 0, 0}, {1, 0, 0}}
	m := NewLogicalMesh([][]int{{0, 1, 2}}, positions)

	if !m.SameLogical(0, 0) {
		t.Error("a vertex is the same logical point as itself")
	}
	if !m.SameLogical(0, 1) || !m.SameLogical(1, 0) {
		t.Error("coincident vertices must compare as the same logical point")
	}
	if m.SameLogical(0, 2) {
		t.Error("distinct positions must not compare as the same logical point")
	}
}

func TestInvalidateCachesRebuilds(t *testing.T) {
	p := primitive.Cube(0.5)
	m := NewLogicalMesh(p.Faces, p.Positions)

	g1 := m.Graph()
	b1 := m.BVH(p.Positions)
	if m.Graph() != g1 || m.BVH(p.Positions) != b1 {
		t.Fatal("caches must be stable between queries")
	}

	m.InvalidateCaches()
	if m.Graph() == g1 {
		t.Error("graph not rebuilt after invalidation")
	}
	if m.BVH(p.Positions) == b1 {
		t.Error("BVH not rebuilt after invalidation")
	}
}

func TestBVHOptionsControlLeafSize(t *testing.T) {
	p := primitive.PlaneGrid(8, 8, 1)

	coarse := NewLogicalMesh(p.Faces, p.Positions)
	fine := NewLogicalMesh(p.Faces, p.Positions)
	fine.BVHOptions = spatial.BVHOptions{LeafSize: 1}

	if c, f := coarse.BVH(p.Positions).Leaves(), fine.BVH(p.Positions).Leaves(); f <= c {
		t.Errorf("leaf size 1 built %d leaves, default built %d; options not applied", f, c)
	}
}

func TestNewLogicalMeshDropsDegenerateFaces(t *testing.T) {
	positions := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	m := NewLogicalMesh([][]int{{0, 1}, {0, 1, 2}}, positions)
	if len(m.Faces) != 1 {
		t.Errorf("faces = %d, want 1 (degenerate dropped)", len(m.Faces))
	}
}

func TestFacesSharingEdge(t *testing.T) {
	p := primitive.Cube(0.5)
	m := NewLogicalMesh(p.Faces, p.Positions)

	// Every cube edge borders exactly two faces.
	shared := m.FacesSharingEdge(4, 5)
	if len(shared) != 2 {
		t.Errorf("faces sharing a cube edge = %d, want 2", len(shared))
	}
}
