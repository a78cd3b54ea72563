package mesh

import (
	"testing"

	"github.com/Faultbox/meshkit/pkg/primitive"
)

func TestHalfEdgesClosedCube(t *testing.T) {
	p := primitive.Cube(0.5)
	g := BuildHalfEdges(p.Faces, len(p.Positions))

	if got := len(g.HalfEdges); got != 24 {
		t.Fatalf("half-edges = %d, want 24 (6 quads)", got)
	}
	if g.NonManifold != 0 {
		t.Errorf("non-manifold count = %d, want 0", g.NonManifold)
	}
	if g.BoundaryCount() != 0 {
		t.Errorf("boundary edges = %d, want 0 on a closed cube", g.BoundaryCount())
	}

	for i, he := range g.HalfEdges {
		if he.Pair == NoPair {
			t.Fatalf("half-edge %d unpaired on a closed manifold mesh", i)
		}
		pair := g.HalfEdges[he.Pair]
		if pair.Origin != he.Target || pair.Target != he.Origin {
			t.Errorf("half-edge %d pair is not its reverse: %v vs %v", i, he, pair)
		}
		if pair.Pair != i {
			t.Errorf("pairing of half-edge %d is not mutual", i)
		}
	}
}

func TestHalfEdgesFaceCycle(t *testing.T) {
	p := primitive.Cube(0.5)
	g := BuildHalfEdges(p.Faces, len(p.Positions))

	for fi := range p.Faces {
		start := g.FaceEdge[fi]
		he := start
		for step := 0; step < 4; step++ {
			if g.HalfEdges[he].Face != fi {
				t.Fatalf("half-edge %d claims face %d, want %d", he, g.HalfEdges[he].Face, fi)
			}
			if g.HalfEdges[g.HalfEdges[he].Next].Prev != he {
				t.Fatalf("next/prev links broken at half-edge %d", he)
			}
			he = g.HalfEdges[he].Next
		}
		if he != start {
			t.Errorf("face %d cycle does not close after 4 steps", fi)
		}
	}
}

func TestHalfEdgesGridBoundary(t *testing.T) {
	p := primitive.PlaneGrid(3, 3, 1)
	g := BuildHalfEdges(p.Faces, len(p.Positions))

	// A 3x3 open grid has 12 perimeter edges.
	if got := g.BoundaryCount(); got != 12 {
		t.Errorf("boundary edges = %d, want 12", got)
	}
}

func TestHalfEdgesNonManifold(t *testing.T) {
	// Two faces that repeat the same directed edge 0->1.
	faces := [][]int{{0, 1, 2}, {0, 1, 3}}
	g := BuildHalfEdges(faces, 4)

	if g.NonManifold != 1 {
		t.Errorf("non-manifold count = %d, want 1", g.NonManifold)
	}
	// The earlier registration of 0->1 must end up unpaired.
	losers := 0
	for _, he := range g.HalfEdges {
		if he.Origin == 0 && he.Target == 1 && he.Pair == NoPair {
			losers++
		}
	}
	if losers != 1 {
		t.Errorf("unpaired duplicates of directed edge = %d, want 1", losers)
	}
}

func TestHalfEdgesVertexEdgeFirstTouch(t *testing.T) {
	p := primitive.Cube(0.5)
	g := BuildHalfEdges(p.Faces, len(p.Positions))

	for v, he := range g.VertexEdge {
		if he == NoPair {
			t.Errorf("vertex %d has no outgoing half-edge", v)
			continue
		}
		if g.HalfEdges[he].Origin != v {
			t.Errorf("vertex %d outgoing half-edge originates at %d", v, g.HalfEdges[he].Origin)
		}
	}
}

func TestHalfEdgesDegenerateFaceSkipped(t *testing.T) {
	faces := [][]int{{0, 1}, {0, 1, 2}}
	g := BuildHalfEdges(faces, 3)

	if g.FaceEdge[0] != NoPair {
		t.Error("two-vertex face should carry no half-edges")
	}
	if got := len(g.HalfEdges); got != 3 {
		t.Errorf("half-edges = %d, want 3", got)
	}
}
