package vapor

import (
	"math"
	"time"

	"github.com/unixpickle/model3d/model3d"
	"go.uber.org/zap"
)

// MaxTargetCount is the largest number of output points whose noiseness
// values remain strictly increasing when written with 32-bit precision.
const MaxTargetCount = 1 << 24

// Config holds the parameters of the point cloud pipeline.
type Config struct {
	// TargetCount is the number of points to output. If zero, it is
	// derived from Density.
	TargetCount int

	// Density is the number of points per unit of surface area, used when
	// TargetCount is zero.
	Density float64

	// Multiplier is the ratio of sampled candidates to output points.
	Multiplier int

	// Alpha is the exponent of the elimination kernel.
	Alpha float64

	// Leaf thresholds for the octree.
	MaxLeafPoints int
	MaxLeafExtent float64

	Policy EliminationPolicy

	// Seed for the random source. If zero, a seed is derived from the
	// current time.
	Seed uint64

	// Concurrency is the number of Goroutines to use for the parallel
	// stages. If 0, GOMAXPROCS is used. The output does not depend on it.
	Concurrency int
}

// DefaultConfig returns a configuration with every default filled in but no
// target size.
func DefaultConfig() *Config {
	return &Config{
		Multiplier:    DefaultMultiplier,
		Alpha:         DefaultAlpha,
		MaxLeafPoints: DefaultMaxLeafPoints,
		MaxLeafExtent: DefaultMaxLeafExtent,
		Policy:        ProgressiveElimination,
		Concurrency:   1,
	}
}

// Validate checks the parameters that do not depend on the mesh.
func (c *Config) Validate() error {
	if c.TargetCount < 0 {
		return invalidConfig("target count %d is negative", c.TargetCount)
	}
	if c.TargetCount == 0 && !(c.Density > 0) {
		return invalidConfig("density %f must be positive without a target count", c.Density)
	}
	if c.Multiplier < 1 {
		return invalidConfig("multiplier %d must be at least 1", c.Multiplier)
	}
	if !(c.Alpha > 0) {
		return invalidConfig("kernel exponent %f must be positive", c.Alpha)
	}
	if c.MaxLeafPoints < 1 {
		return invalidConfig("leaf point limit %d must be positive", c.MaxLeafPoints)
	}
	if !(c.MaxLeafExtent > 0) {
		return invalidConfig("leaf extent %f must be positive", c.MaxLeafExtent)
	}
	if c.Policy != ProgressiveElimination && c.Policy != StrictElimination {
		return invalidConfig("unknown elimination policy %d", c.Policy)
	}
	if c.Concurrency < 0 {
		return invalidConfig("concurrency %d is negative", c.Concurrency)
	}
	return nil
}

// Target resolves the number of output points for a mesh.
func (c *Config) Target(m *Mesh) (int, error) {
	target := c.TargetCount
	if target == 0 {
		target = int(math.Round(c.Density * m.TotalArea))
	}
	if target <= 0 {
		return 0, invalidConfig("density %f yields no points for area %f", c.Density,
			m.TotalArea)
	}
	if target > MaxTargetCount {
		return 0, invalidConfig("target count %d exceeds %d", target, MaxTargetCount)
	}
	if target > math.MaxInt32/c.Multiplier {
		return 0, invalidConfig("target count %d is too large", target)
	}
	return target, nil
}

// A Cloud is the output of the pipeline.
type Cloud struct {
	// Points is the point buffer in octree order.
	Points []Point

	// Nodes is the octree, root first, in depth first order.
	Nodes []OctreeNode

	Seed        uint64
	RMax        float64
	TargetCount int
	Spacing     Spacing
}

// Vaporize converts a triangle mesh into a blue noise point cloud organized
// in an octree.
//
// If logger is nil, nothing is logged.
func Vaporize(tris []*model3d.Triangle, cfg *Config, logger *zap.Logger) (*Cloud, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mesh, err := NewMesh(tris)
	if err != nil {
		return nil, err
	}
	target, err := cfg.Target(mesh)
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = TimeSeed()
	}
	numCandidates := target * cfg.Multiplier
	kernel := Kernel{RMax: MeshRMax(mesh, target), Alpha: cfg.Alpha}
	logger.Info("prepared mesh",
		zap.Int("triangles", len(tris)),
		zap.Float64("area", mesh.TotalArea),
		zap.Int("target", target),
		zap.Int("candidates", numCandidates),
		zap.Float64("rmax", kernel.RMax),
		zap.Uint64("seed", seed))

	stage := time.Now()
	candidates := SampleSurface(mesh, numCandidates, NewRandom(seed))
	logger.Debug("sampled surface", zap.Duration("elapsed", time.Since(stage)))

	stage = time.Now()
	tree := NewKDTreeConcurrent(candidates, cfg.Concurrency)
	logger.Debug("built spatial index", zap.Duration("elapsed", time.Since(stage)))

	stage = time.Now()
	weights := InitWeights(tree, candidates, kernel, cfg.Concurrency)
	logger.Debug("computed weights", zap.Duration("elapsed", time.Since(stage)))

	stage = time.Now()
	eliminator := &Eliminator{Kernel: kernel, Policy: cfg.Policy}
	order, noiseness, err := eliminator.Eliminate(tree, candidates, weights, target)
	if err != nil {
		return nil, err
	}
	logger.Debug("eliminated samples",
		zap.Stringer("policy", cfg.Policy),
		zap.Duration("elapsed", time.Since(stage)))

	points := make([]Point, target)
	for i, idx := range order {
		points[i] = Point{Coord: candidates[idx], Noiseness: noiseness[i]}
	}

	stage = time.Now()
	builder := DefaultOctreeBuilder()
	builder.MaxLeafPoints = cfg.MaxLeafPoints
	builder.MaxLeafExtent = cfg.MaxLeafExtent
	nodes := builder.Build(points, mesh.Min, mesh.Max)
	logger.Debug("partitioned octree",
		zap.Int("nodes", len(nodes)),
		zap.Duration("elapsed", time.Since(stage)))

	spacing := MeasureSpacing(points, kernel.Radius())
	logger.Info("created point cloud",
		zap.Int("points", len(points)),
		zap.Int("nodes", len(nodes)),
		zap.Float64("mean_spacing", spacing.Mean),
		zap.Float64("min_spacing", spacing.Min))

	return &Cloud{
		Points:      points,
		Nodes:       nodes,
		Seed:        seed,
		RMax:        kernel.RMax,
		TargetCount: target,
		Spacing:     spacing,
	}, nil
}
