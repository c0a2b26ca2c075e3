// Package config loads the settings of the vaporize tool.
//
// Settings are resolved with the priority defaults < YAML file < flags.
package config

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/vaporize/internal/logger"
	"github.com/unixpickle/vaporize/vapor"
)

// Config holds all tool settings.
type Config struct {
	Sampling SamplingConfig `yaml:"sampling"`
	Octree   OctreeConfig   `yaml:"octree"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SamplingConfig controls surface sampling and elimination.
type SamplingConfig struct {
	Count       int     `yaml:"count"`
	Density     float64 `yaml:"density"`
	Multiplier  int     `yaml:"multiplier"`
	Alpha       float64 `yaml:"alpha"`
	Policy      string  `yaml:"policy"`
	Seed        uint64  `yaml:"seed"`
	Concurrency int     `yaml:"concurrency"`
}

// OctreeConfig holds the leaf thresholds.
type OctreeConfig struct {
	LeafPoints int     `yaml:"leaf_points"`
	LeafExtent float64 `yaml:"leaf_extent"`
}

// OutputConfig selects the metadata formats to write next to the points.
type OutputConfig struct {
	JSON bool `yaml:"json"`
	Lua  bool `yaml:"lua"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`

	// Quiet disables console output, leaving only the log file.
	Quiet bool `yaml:"quiet"`
}

// Default returns the default settings.
func Default() *Config {
	return &Config{
		Sampling: SamplingConfig{
			Multiplier:  vapor.DefaultMultiplier,
			Alpha:       vapor.DefaultAlpha,
			Policy:      vapor.ProgressiveElimination.String(),
			Concurrency: 1,
		},
		Octree: OctreeConfig{
			LeafPoints: vapor.DefaultMaxLeafPoints,
			LeafExtent: vapor.DefaultMaxLeafExtent,
		},
		Output: OutputConfig{
			JSON: true,
			Lua:  true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Pipeline converts the settings into a pipeline configuration.
func (c *Config) Pipeline() (*vapor.Config, error) {
	res := vapor.DefaultConfig()
	res.TargetCount = c.Sampling.Count
	res.Density = c.Sampling.Density
	res.Multiplier = c.Sampling.Multiplier
	res.Alpha = c.Sampling.Alpha
	res.Seed = c.Sampling.Seed
	res.Concurrency = c.Sampling.Concurrency
	res.MaxLeafPoints = c.Octree.LeafPoints
	res.MaxLeafExtent = c.Octree.LeafExtent
	switch c.Sampling.Policy {
	case vapor.ProgressiveElimination.String(), "":
		res.Policy = vapor.ProgressiveElimination
	case vapor.StrictElimination.String():
		res.Policy = vapor.StrictElimination
	default:
		return nil, errors.Wrapf(vapor.ErrInvalidConfiguration, "unknown policy %q",
			c.Sampling.Policy)
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// LoggerOptions converts the logging settings.
func (c *Config) LoggerOptions() logger.Options {
	opts := logger.DefaultOptions()
	opts.Level = c.Logging.Level
	opts.File = c.Logging.File
	opts.Quiet = c.Logging.Quiet
	return opts
}
