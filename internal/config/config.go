// Package config handles kernel tuning and logging configuration.
package config

// Config holds all meshkit settings.
type Config struct {
	Kernel  KernelConfig  `yaml:"kernel"`
	Logging LoggingConfig `yaml:"logging"`
}

// KernelConfig holds the mesh kernel tuning parameters.
type KernelConfig struct {
	// WeldEpsilon is the position quantization step for sibling
	// detection and reconstruction welding.
	WeldEpsilon float32 `yaml:"weld_epsilon"`

	// Quad reconstruction thresholds.
	Planarity     float32 `yaml:"planarity"`     // Min normal agreement between merged triangles
	Orthogonality float32 `yaml:"orthogonality"` // Min corner orthogonality of a merged quad
	EdgeRatio     float32 `yaml:"edge_ratio"`    // Max longest/shortest quad edge ratio
	StripBias     float32 `yaml:"strip_bias"`    // Greedy bonus per already-merged neighbor

	// BVHLeafSize is the face count at which BVH splitting stops.
	BVHLeafSize int `yaml:"bvh_leaf_size"`

	// DefaultRadius is the soft-selection falloff radius used when a
	// tool does not specify one.
	DefaultRadius float32 `yaml:"default_radius"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the kernel's tuned default values.
func Default() *Config {
	return &Config{
		Kernel: KernelConfig{
			WeldEpsilon:   1e-4,
			Planarity:     0.7,
			Orthogonality: 0.2,
			EdgeRatio:     3.0,
			StripBias:     2.5,
			BVHLeafSize:   8,
			DefaultRadius: 1.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
