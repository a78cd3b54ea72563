package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagWeldEpsilon = flag.Float64("weld-epsilon", 0, "Position weld epsilon override")
	flagLeafSize    = flag.Int("bvh-leaf-size", 0, "BVH leaf size override")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWeldEpsilon > 0 {
		cfg.Kernel.WeldEpsilon = float32(*flagWeldEpsilon)
	}
	if *flagLeafSize > 0 {
		cfg.Kernel.BVHLeafSize = *flagLeafSize
	}
}
