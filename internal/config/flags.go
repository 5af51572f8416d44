package config

import "flag"

// Flags holds command-line overrides. Zero values leave the loaded
// configuration untouched.
type Flags struct {
	Config   string
	Debug    bool
	Interval float64
	Flat     bool
	Roll     bool
	Workers  int
	STL      string
	OBJ      string
	PNG      string
	// SaveConfig is not an override: the CLI writes the resolved job there.
	SaveConfig string
}

// Register defines the flags on fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to job file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.Float64Var(&f.Interval, "interval", 0, "Arc length between samples")
	fs.BoolVar(&f.Flat, "flat", false, "Shade every segment as a single facet")
	fs.BoolVar(&f.Roll, "roll", false, "Follow the curve's up vector instead of world up")
	fs.IntVar(&f.Workers, "workers", 0, "Goroutines writing segments")
	fs.StringVar(&f.STL, "stl", "", "Binary STL output path")
	fs.StringVar(&f.OBJ, "obj", "", "Wavefront OBJ output path")
	fs.StringVar(&f.PNG, "png", "", "PNG preview output path")
	fs.StringVar(&f.SaveConfig, "save-config", "", "Write the resolved job file to this path")
}

// apply applies flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Interval > 0 {
		cfg.Extrude.Interval = f.Interval
	}
	if f.Flat {
		cfg.Extrude.SmoothFaces = false
	}
	if f.Roll {
		cfg.Extrude.UseWorldUp = false
	}
	if f.Workers > 0 {
		cfg.Extrude.Workers = f.Workers
	}
	if f.STL != "" {
		cfg.Output.STL = f.STL
	}
	if f.OBJ != "" {
		cfg.Output.OBJ = f.OBJ
	}
	if f.PNG != "" {
		cfg.Output.PNG = f.PNG
	}
}
