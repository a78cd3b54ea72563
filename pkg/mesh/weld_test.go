package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestWeldGroups(t *testing.T) {
	positions := []mgl32.Vec3{
		{0, 0, 0},
		{1, 0, 0},
		{0, 0, 0.00001}, // Within 1e-4 of vertex 0
		{1, 0, 0.01},    // Not within 1e-4 of vertex 1
	}
	groups := WeldGroups(positions, DefaultWeldEpsilon)
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}
	key := Quantize(positions[0], DefaultWeldEpsilon)
	if got := groups[key]; len(got) != 2 {
		t.Errorf("group at origin = %v, want two members", got)
	}
}

func TestBuildSiblingsSymmetric(t *testing.T) {
	positions := []mgl32.Vec3{
		{0, 0, 0}, {1, 1, 1}, {0, 0, 0}, {0, 0, 0},
	}
	sib := BuildSiblings(positions, DefaultWeldEpsilon)

	if _, ok := sib[1]; ok {
		t.Error("unique vertex must have no siblings")
	}
	for _, v := range []int{0, 2, 3} {
		if len(sib[v]) != 2 {
			t.Errorf("vertex %d siblings = %v, want 2 entries", v, sib[v])
		}
		for _, s := range sib[v] {
			if s == v {
				t.Errorf("vertex %d lists itself as a sibling", v)
			}
			found := false
			for _, back := range sib[s] {
				if back == v {
					found = true
				}
			}
			if !found {
				t.Errorf("sibling map not symmetric between %d and %d", v, s)
			}
		}
	}
}

func TestCanonicalVertices(t *testing.T) {
	positions := []mgl32.Vec3{
		{5, 0, 0}, {0, 0, 0}, {5, 0, 0}, {5, 0, 0},
	}
	canonical := CanonicalVertices(positions, DefaultWeldEpsilon)
	want := []int{0, 1, 0, 0}
	for i, c := range canonical {
		if c != want[i] {
			t.Errorf("canonical[%d] = %d, want %d", i, c, want[i])
		}
	}
}
