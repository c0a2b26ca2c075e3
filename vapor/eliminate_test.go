package vapor

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

func TestEliminate(t *testing.T) {
	for _, policy := range []EliminationPolicy{ProgressiveElimination, StrictElimination} {
		t.Run(policy.String(), func(t *testing.T) {
			r := rand.New(rand.NewSource(1337))
			coords := randomCoords(r, 4000)
			target := 1000
			order, noiseness := eliminate(t, coords, target, policy)

			if len(order) != target || len(noiseness) != target {
				t.Fatalf("expected %d survivors but got %d", target, len(order))
			}
			seen := map[int]bool{}
			for _, idx := range order {
				if seen[idx] {
					t.Fatalf("survivor %d appears twice", idx)
				}
				seen[idx] = true
			}
			for i, x := range noiseness {
				if x < 0 || x >= 1 {
					t.Fatalf("noiseness %f out of range", x)
				}
				if i > 0 && x <= noiseness[i-1] {
					t.Fatalf("noiseness not increasing at %d: %f <= %f", i, x, noiseness[i-1])
				}
			}
			if noiseness[0] != 0 {
				t.Errorf("expected first noiseness 0 but got %f", noiseness[0])
			}
		})
	}
}

func TestEliminateSpacing(t *testing.T) {
	r := rand.New(rand.NewSource(1337))
	coords := randomCoords(r, 8000)
	target := 2000
	order, _ := eliminate(t, coords, target, ProgressiveElimination)

	survivors := make([]Point, target)
	random := make([]Point, target)
	for i, idx := range order {
		survivors[i] = Point{Coord: coords[idx]}
		random[i] = Point{Coord: coords[i]}
	}
	radius := 0.5
	eliminated := MeasureSpacing(survivors, radius)
	uniform := MeasureSpacing(random, radius)
	if eliminated.Mean <= uniform.Mean {
		t.Errorf("mean spacing %f should exceed random spacing %f", eliminated.Mean,
			uniform.Mean)
	}
	if eliminated.Min <= uniform.Min {
		t.Errorf("min spacing %f should exceed random spacing %f", eliminated.Min, uniform.Min)
	}
	if eliminated.StdDev >= uniform.StdDev {
		t.Errorf("spacing deviation %f should be below random deviation %f",
			eliminated.StdDev, uniform.StdDev)
	}
}

func TestEliminateProgressivePrefix(t *testing.T) {
	r := rand.New(rand.NewSource(1337))
	coords := randomCoords(r, 2000)
	order, _ := eliminate(t, coords, 500, ProgressiveElimination)

	// The earliest survivors should be spread out at least as well as the
	// whole set.
	prefix := make([]Point, 100)
	for i := range prefix {
		prefix[i] = Point{Coord: coords[order[i]]}
	}
	all := make([]Point, len(order))
	for i, idx := range order {
		all[i] = Point{Coord: coords[idx]}
	}
	if p, a := MeasureSpacing(prefix, 1), MeasureSpacing(all, 1); p.Min <= a.Min {
		t.Errorf("prefix min spacing %f should exceed full min spacing %f", p.Min, a.Min)
	}
}

func TestEliminateInvalidTarget(t *testing.T) {
	r := rand.New(rand.NewSource(1337))
	coords := randomCoords(r, 100)
	tree := NewKDTree(coords)
	e := &Eliminator{Kernel: Kernel{RMax: 0.1}}
	for _, target := range []int{0, -3, 101} {
		weights := InitWeights(tree, coords, e.Kernel, 1)
		if _, _, err := e.Eliminate(tree, coords, weights, target); !errors.Is(err,
			ErrInvalidConfiguration) {
			t.Errorf("target %d: expected invalid configuration but got %v", target, err)
		}
	}
}

func TestEliminateAllSurvive(t *testing.T) {
	r := rand.New(rand.NewSource(1337))
	coords := randomCoords(r, 50)
	order, noiseness := eliminate(t, coords, 50, StrictElimination)
	if len(order) != 50 {
		t.Fatalf("expected 50 survivors but got %d", len(order))
	}
	if noiseness[49] != 49.0/50 {
		t.Errorf("unexpected last noiseness %f", noiseness[49])
	}
}

func eliminate(t *testing.T, coords []model3d.Coord3D, target int,
	policy EliminationPolicy) ([]int, []float64) {
	tree := NewKDTree(coords)
	e := &Eliminator{
		Kernel: Kernel{RMax: RMaxVolume(1, target)},
		Policy: policy,
	}
	weights := InitWeights(tree, coords, e.Kernel, 0)
	order, noiseness, err := e.Eliminate(tree, coords, weights, target)
	if err != nil {
		t.Fatal(err)
	}
	return order, noiseness
}
