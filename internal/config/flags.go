package config

import (
	"flag"
)

// Flags holds command-line overrides for the settings.
type Flags struct {
	set *flag.FlagSet

	count       int
	density     float64
	multiplier  int
	alpha       float64
	strict      bool
	seed        uint64
	concurrency int
	leafPoints  int
	leafExtent  float64
	noLua       bool
	noJSON      bool
	logLevel    string
	logFile     string
	quiet       bool
}

// RegisterFlags adds the override flags to a flag set.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	d := Default()
	f := &Flags{set: fs}
	fs.IntVar(&f.count, "count", d.Sampling.Count, "number of output points")
	fs.Float64Var(&f.density, "density", d.Sampling.Density,
		"output points per unit of surface area (used without -count)")
	fs.IntVar(&f.multiplier, "multiplier", d.Sampling.Multiplier,
		"candidates sampled per output point")
	fs.Float64Var(&f.alpha, "alpha", d.Sampling.Alpha, "elimination kernel exponent")
	fs.BoolVar(&f.strict, "strict", false, "stop re-weighting once the target count is reached")
	fs.Uint64Var(&f.seed, "seed", d.Sampling.Seed, "random seed (0 uses the current time)")
	fs.IntVar(&f.concurrency, "concurrency", d.Sampling.Concurrency,
		"goroutines for parallel stages (0 uses GOMAXPROCS)")
	fs.IntVar(&f.leafPoints, "leaf-points", d.Octree.LeafPoints, "maximum points per leaf")
	fs.Float64Var(&f.leafExtent, "leaf-extent", d.Octree.LeafExtent, "maximum size of a leaf")
	fs.BoolVar(&f.noLua, "no-lua", false, "do not write nodes.lua")
	fs.BoolVar(&f.noJSON, "no-json", false, "do not write nodes.json")
	fs.StringVar(&f.logLevel, "log-level", d.Logging.Level, "log level")
	fs.StringVar(&f.logFile, "log-file", d.Logging.File, "optional rotated log file")
	fs.BoolVar(&f.quiet, "quiet", d.Logging.Quiet, "disable console logging")
	return f
}

// apply copies every explicitly set flag into cfg.
func (f *Flags) apply(cfg *Config) {
	f.set.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "count":
			cfg.Sampling.Count = f.count
		case "density":
			cfg.Sampling.Density = f.density
		case "multiplier":
			cfg.Sampling.Multiplier = f.multiplier
		case "alpha":
			cfg.Sampling.Alpha = f.alpha
		case "strict":
			if f.strict {
				cfg.Sampling.Policy = "strict"
			} else {
				cfg.Sampling.Policy = "progressive"
			}
		case "seed":
			cfg.Sampling.Seed = f.seed
		case "concurrency":
			cfg.Sampling.Concurrency = f.concurrency
		case "leaf-points":
			cfg.Octree.LeafPoints = f.leafPoints
		case "leaf-extent":
			cfg.Octree.LeafExtent = f.leafExtent
		case "no-lua":
			cfg.Output.Lua = !f.noLua
		case "no-json":
			cfg.Output.JSON = !f.noJSON
		case "log-level":
			cfg.Logging.Level = f.logLevel
		case "log-file":
			cfg.Logging.File = f.logFile
		case "quiet":
			cfg.Logging.Quiet = f.quiet
		}
	})
}
