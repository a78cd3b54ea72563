// meshprobe is a CLI utility for inspecting the mesh kernel: generate a
// primitive, reconstruct its quad topology, cast rays at it, and probe
// soft-selection weight fields.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/meshkit/internal/config"
	"github.com/Faultbox/meshkit/internal/logger"
	"github.com/Faultbox/meshkit/pkg/mesh"
	"github.com/Faultbox/meshkit/pkg/picking"
	"github.com/Faultbox/meshkit/pkg/primitive"
	"github.com/Faultbox/meshkit/pkg/spatial"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "info":
		cmdInfo(cfg, args[1:])
	case "pick":
		cmdPick(cfg, args[1:])
	case "weights":
		cmdWeights(cfg, args[1:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshprobe - mesh kernel inspection utility

Usage:
  meshprobe [flags] <command> [args]

Commands:
  info <primitive>                        Reconstruct and report topology
  pick <primitive> ox oy oz dx dy dz      Cast a ray, print the hit
  weights <primitive> <seed> [radius]     Soft-selection weight stats
                                          (radius defaults from config)

Primitives: cube, grid, cylinder, cylinder-seam, torus

Examples:
  meshprobe info cube
  meshprobe pick cube 0 0 5 0 0 -1
  meshprobe weights torus 0 1.5`)
}

func makePrimitive(name string) (*primitive.Mesh, error) {
	switch name {
	case "cube":
		return primitive.Cube(0.5), nil
	case "grid":
		return primitive.PlaneGrid(8, 8, 1), nil
	case "cylinder":
		return primitive.Cylinder(16, 8, 1, 2), nil
	case "cylinder-seam":
		return primitive.CylinderWithSeam(16, 8, 1, 2), nil
	case "torus":
		return primitive.Torus(24, 12, 2, 0.5), nil
	default:
		return nil, fmt.Errorf("unknown primitive %q", name)
	}
}

func reconstructed(cfg *config.Config, p *primitive.Mesh) *mesh.LogicalMesh {
	m := mesh.Reconstruct(p.Triangulate(), p.Positions, mesh.ReconstructOptions{
		WeldEpsilon:   cfg.Kernel.WeldEpsilon,
		Planarity:     cfg.Kernel.Planarity,
		Orthogonality: cfg.Kernel.Orthogonality,
		EdgeRatio:     cfg.Kernel.EdgeRatio,
		StripBias:     cfg.Kernel.StripBias,
		Logger:        logger.Log,
	})
	m.BVHOptions = spatial.BVHOptions{
		LeafSize: cfg.Kernel.BVHLeafSize,
		Logger:   logger.Log,
	}
	return m
}

func cmdInfo(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshprobe info <primitive>")
		os.Exit(1)
	}
	p, err := makePrimitive(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m := reconstructed(cfg, p)
	quads, tris := 0, 0
	for _, f := range m.Faces {
		if len(f) == 4 {
			quads++
		} else {
			tris++
		}
	}
	g := m.Graph()
	b := m.BVH(p.Positions)

	fmt.Printf("%s:\n", args[0])
	fmt.Printf("  vertices:      %d\n", m.VertexCount())
	fmt.Printf("  faces:         %d (%d quads, %d triangles)\n", len(m.Faces), quads, tris)
	fmt.Printf("  half-edges:    %d\n", len(g.HalfEdges))
	fmt.Printf("  boundary:      %d\n", g.BoundaryCount())
	fmt.Printf("  non-manifold:  %d\n", g.NonManifold)
	fmt.Printf("  sibling verts: %d\n", len(m.Siblings))
	fmt.Printf("  bvh:           %d leaves, depth %d\n", b.Leaves(), b.Depth())
}

func cmdPick(cfg *config.Config, args []string) {
	if len(args) < 7 {
		fmt.Fprintln(os.Stderr, "Usage: meshprobe pick <primitive> ox oy oz dx dy dz")
		os.Exit(1)
	}
	p, err := makePrimitive(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	v, err := parseVec(args[1:7])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m := reconstructed(cfg, p)
	ray := spatial.NewRay(mgl32.Vec3{v[0], v[1], v[2]}, mgl32.Vec3{v[3], v[4], v[5]})
	hit, ok := picking.RaycastMesh(m, p.Positions, ray)
	if !ok {
		fmt.Println("no hit")
		return
	}
	fmt.Printf("hit: t=%.4f face=%d vertex=%d edge=(%d,%d) at (%.3f, %.3f, %.3f)\n",
		hit.T, hit.Face, hit.Vertex, hit.Edge[0], hit.Edge[1],
		hit.Point[0], hit.Point[1], hit.Point[2])
}

func cmdWeights(cfg *config.Config, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: meshprobe weights <primitive> <seed> [radius]")
		os.Exit(1)
	}
	p, err := makePrimitive(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	seed, err := strconv.Atoi(args[1])
	if err != nil || seed < 0 || seed >= len(p.Positions) {
		fmt.Fprintf(os.Stderr, "Error: bad seed vertex %q\n", args[1])
		os.Exit(1)
	}
	radius := cfg.Kernel.DefaultRadius
	if len(args) > 2 {
		r, err := strconv.ParseFloat(args[2], 32)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: bad radius %q\n", args[2])
			os.Exit(1)
		}
		radius = float32(r)
	}

	weights := mesh.SurfaceWeights(p.Triangulate(), p.Positions,
		map[int]bool{seed: true}, radius)

	touched := 0
	var min, max float32 = 1, 0
	for _, w := range weights {
		if w > 0 {
			touched++
			if w < min {
				min = w
			}
			if w > max {
				max = w
			}
		}
	}
	logger.Log.Info("weight field computed",
		zap.Int("vertices", len(weights)),
		zap.Int("touched", touched))
	if touched == 0 {
		fmt.Println("no vertices in radius")
		return
	}
	fmt.Printf("weights: %d/%d vertices in radius, min=%.4f max=%.4f\n",
		touched, len(weights), min, max)
}

func parseVec(args []string) ([6]float32, error) {
	var out [6]float32
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return out, fmt.Errorf("bad number %q", a)
		}
		out[i] = float32(f)
	}
	return out, nil
}
