// Package primitive generates simple quad-topology meshes (cube, grid,
// cylinder, torus) used by tests, tooling, and demos. Faces wind
// counter-clockwise seen from outside.
package primitive

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is generated geometry: a vertex buffer plus ordered quad faces.
type Mesh struct {
	Positions []mgl32.Vec3
	Faces     [][]int
}

// Triangulate fan-triangulates the faces into a flat index buffer.
func (m *Mesh) Triangulate() []uint32 {
	var indices []uint32
	for _, face := range m.Faces {
		for i := 1; i < len(face)-1; i++ {
			indices = append(indices, uint32(face[0]), uint32(face[i]), uint32(face[i+1]))
		}
	}
	return indices
}

// Cube returns an axis-aligned cube of the given half extent: 8 shared
// vertices, 6 quads.
func Cube(halfExtent float32) *Mesh {
	h := halfExtent
	return &Mesh{
		Positions: []mgl32.Vec3{
			{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
			{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
		},
		Faces: [][]int{
			{4, 5, 6, 7}, // +Z
			{1, 0, 3, 2}, // -Z
			{5, 1, 2, 6}, // +X
			{0, 4, 7, 3}, // -X
			{7, 6, 2, 3}, // +Y
			{0, 1, 5, 4}, // -Y
		},
	}
}

// CubeSoup returns the cube as a raw triangulated buffer: 8 vertices
// and 12 triangles, the shape an importer hands over when the authored
// quads were lost.
func CubeSoup(halfExtent float32) ([]mgl32.Vec3, []uint32) {
	c := Cube(halfExtent)
	return c.Positions, c.Triangulate()
}

// PlaneGrid returns an nx-by-nz grid of quads in the XZ plane, spanning
// size world units per cell. The grid is open, so every outer edge is a
// boundary.
func PlaneGrid(nx, nz int, size float32) *Mesh {
	m := &Mesh{}
	for z := 0; z <= nz; z++ {
		for x := 0; x <= nx; x++ {
			m.Positions = append(m.Positions, mgl32.Vec3{float32(x) * size, 0, float32(z) * size})
		}
	}
	cols := nx + 1
	for z := 0; z < nz; z++ {
		for x := 0; x < nx; x++ {
			i := z*cols + x
			// CCW seen from +Y
			m.Faces = append(m.Faces, []int{i, i + cols, i + cols + 1, i + 1})
		}
	}
	return m
}

// Cylinder returns an open tube: segments quads around, rings quads
// tall, no caps. The wrap column shares vertices, so the surface is
// seamless; top and bottom edges are boundaries.
func Cylinder(segments, rings int, radius, height float32) *Mesh {
	m := &Mesh{}
	for r := 0; r <= rings; r++ {
		y := height * (float32(r)/float32(rings) - 0.5)
		for s := 0; s < segments; s++ {
			a := 2 * math32.Pi * float32(s) / float32(segments)
			m.Positions = append(m.Positions, mgl32.Vec3{radius * math32.Cos(a), y, radius * math32.Sin(a)})
		}
	}
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			i := r*segments + s
			j := r*segments + (s+1)%segments
			m.Faces = append(m.Faces, []int{i, j, j + segments, i + segments})
		}
	}
	return m
}

// CylinderWithSeam is Cylinder with the wrap column duplicated: the
// last column of vertices occupies the same positions as the first,
// the way a UV unwrap splits a tube. The duplicates are siblings, not
// shared indices.
func CylinderWithSeam(segments, rings int, radius, height float32) *Mesh {
	m := &Mesh{}
	cols := segments + 1
	for r := 0; r <= rings; r++ {
		y := height * (float32(r)/float32(rings) - 0.5)
		for s := 0; s <= segments; s++ {
			// s == segments lands back on the s == 0 angle.
			a := 2 * math32.Pi * float32(s%segments) / float32(segments)
			m.Positions = append(m.Positions, mgl32.Vec3{radius * math32.Cos(a), y, radius * math32.Sin(a)})
		}
	}
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			i := r*cols + s
			m.Faces = append(m.Faces, []int{i, i + 1, i + 1 + cols, i + cols})
		}
	}
	return m
}

// Torus returns a closed quad torus: ring radius major, tube radius
// minor, segments around the ring and rings around the tube. Every
// edge is interior, making it the canonical loop-closure fixture.
func Torus(segments, rings int, major, minor float32) *Mesh {
	m := &Mesh{}
	for s := 0; s < segments; s++ {
		u := 2 * math32.Pi * float32(s) / float32(segments)
		center := mgl32.Vec3{major * math32.Cos(u), 0, major * math32.Sin(u)}
		for r := 0; r < rings; r++ {
			v := 2 * math32.Pi * float32(r) / float32(rings)
			radial := mgl32.Vec3{math32.Cos(u), 0, math32.Sin(u)}.Mul(minor * math32.Cos(v))
			m.Positions = append(m.Positions, center.Add(radial).Add(mgl32.Vec3{0, minor * math32.Sin(v), 0}))
		}
	}
	for s := 0; s < segments; s++ {
		ns := (s + 1) % segments
		for r := 0; r < rings; r++ {
			nr := (r + 1) % rings
			m.Faces = append(m.Faces, []int{
				s*rings + r,
				ns*rings + r,
				ns*rings + nr,
				s*rings + nr,
			})
		}
	}
	return m
}
