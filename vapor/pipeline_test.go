package vapor

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

func TestVaporizeCube(t *testing.T) {
	tris := unitCube()
	if len(tris) != 12 {
		t.Fatalf("expected 12 triangles but got %d", len(tris))
	}
	cfg := DefaultConfig()
	cfg.TargetCount = 1000
	cfg.Seed = 1337

	cloud, err := Vaporize(tris, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(cloud.Points) != 1000 || cloud.TargetCount != 1000 {
		t.Fatalf("expected 1000 points but got %d", len(cloud.Points))
	}
	if cloud.Seed != 1337 {
		t.Errorf("expected seed 1337 but got %d", cloud.Seed)
	}

	root := cloud.Nodes[0]
	if root.Key != 1 || root.Min.Dist(model3d.Origin) > 1e-8 ||
		root.Max.Dist(model3d.XYZ(1, 1, 1)) > 1e-8 {
		t.Errorf("unexpected root: %+v", root)
	}
	for _, p := range cloud.Points {
		if !onUnitCube(p.Coord) {
			t.Fatalf("point %v is not on the cube", p.Coord)
		}
		if p.Noiseness < 0 || p.Noiseness >= 1 {
			t.Fatalf("noiseness %f out of range", p.Noiseness)
		}
	}
	if !(cloud.Spacing.Min > 0) || cloud.Spacing.Isolated == len(cloud.Points) {
		t.Errorf("unexpected spacing: %+v", cloud.Spacing)
	}

	again, err := Vaporize(tris, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cloud, again); diff != "" {
		t.Errorf("repeated run differs (-first +second):\n%s", diff)
	}
}

func TestVaporizeConcurrency(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetCount = 3000
	cfg.Seed = 42

	// The sample stream depends on triangle order, so every run must see
	// the same slice.
	tris := unitCube()
	serial, err := Vaporize(tris, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, concurrency := range []int{2, 4} {
		cfg.Concurrency = concurrency
		parallel, err := Vaporize(tris, cfg, nil)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(serial, parallel); diff != "" {
			t.Errorf("concurrency %d differs (-serial +parallel):\n%s", concurrency, diff)
		}
	}
}

func TestVaporizeDensity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Density = 50.2
	cfg.Seed = 1
	cfg.Policy = StrictElimination
	cloud, err := Vaporize(unitCube(), cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if expected := int(math.Round(50.2 * 6)); len(cloud.Points) != expected {
		t.Errorf("expected %d points but got %d", expected, len(cloud.Points))
	}
}

func TestVaporizeOctree(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetCount = 2000
	cfg.MaxLeafPoints = 300
	cfg.Seed = 5
	big := model3d.NewMeshRect(model3d.Origin, model3d.XYZ(8, 2, 2))
	cloud, err := Vaporize(big.TriangleSlice(), cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	var leafPoints int
	for _, node := range cloud.Nodes {
		if node.Leaf {
			leafPoints += node.Count
			if node.Count > cfg.MaxLeafPoints {
				t.Errorf("leaf %d has %d points", node.Key, node.Count)
			}
			if node.Max.Sub(node.Min).MaxCoord() > cfg.MaxLeafExtent {
				t.Errorf("leaf %d is too large: %v", node.Key, node.Max.Sub(node.Min))
			}
		}
	}
	if leafPoints != len(cloud.Points) {
		t.Errorf("leaves hold %d of %d points", leafPoints, len(cloud.Points))
	}
}

func TestVaporizeDegenerate(t *testing.T) {
	tris := []*model3d.Triangle{
		{model3d.XYZ(0, 0, 0), model3d.XYZ(1, 0, 0), model3d.XYZ(2, 0, 0)},
		{model3d.XYZ(0, 0, 0), model3d.XYZ(0, 1, 0), model3d.XYZ(0, 2, 0)},
		{model3d.XYZ(0, 0, 0), model3d.XYZ(1, 1, 1), model3d.XYZ(3, 3, 3)},
	}
	cfg := DefaultConfig()
	cfg.TargetCount = 10
	if _, err := Vaporize(tris, cfg, nil); !errors.Is(err, ErrDegenerateMesh) {
		t.Errorf("expected degenerate mesh error but got %v", err)
	}
}

func TestVaporizeInvalidConfig(t *testing.T) {
	configs := map[string]func(c *Config){
		"negative count": func(c *Config) { c.TargetCount = -1 },
		"no density":     func(c *Config) {},
		"tiny density":   func(c *Config) { c.Density = 1e-5 },
		"multiplier":     func(c *Config) { c.TargetCount = 10; c.Multiplier = 0 },
		"alpha":          func(c *Config) { c.TargetCount = 10; c.Alpha = 0 },
		"leaf points":    func(c *Config) { c.TargetCount = 10; c.MaxLeafPoints = 0 },
		"leaf extent":    func(c *Config) { c.TargetCount = 10; c.MaxLeafExtent = -1 },
	}
	for name, f := range configs {
		cfg := DefaultConfig()
		f(cfg)
		if _, err := Vaporize(unitCube(), cfg, nil); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("%s: expected invalid configuration but got %v", name, err)
		}
	}
}

func TestConfigTargetLimit(t *testing.T) {
	mesh, err := NewMesh(unitCube())
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.TargetCount = MaxTargetCount
	if target, err := cfg.Target(mesh); err != nil || target != MaxTargetCount {
		t.Errorf("expected target %d but got %d (%v)", MaxTargetCount, target, err)
	}
	cfg.TargetCount = MaxTargetCount + 1
	if _, err := cfg.Target(mesh); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected invalid configuration but got %v", err)
	}

	// Every noiseness value at the limit stays distinct in 32 bits.
	prev := float32(-1)
	for _, n := range []int{0, 1, MaxTargetCount / 2, MaxTargetCount - 2, MaxTargetCount - 1} {
		x := float32(float64(n) / float64(MaxTargetCount))
		if x <= prev {
			t.Fatalf("noiseness %d/%d is not increasing in 32 bits", n, MaxTargetCount)
		}
		prev = x
	}
}

func unitCube() []*model3d.Triangle {
	return model3d.NewMeshRect(model3d.Origin, model3d.XYZ(1, 1, 1)).TriangleSlice()
}

func onUnitCube(c model3d.Coord3D) bool {
	const eps = 1e-8
	var onFace bool
	for _, x := range c.Array() {
		if x < -eps || x > 1+eps {
			return false
		}
		if math.Abs(x) < eps || math.Abs(x-1) < eps {
			onFace = true
		}
	}
	return onFace
}
