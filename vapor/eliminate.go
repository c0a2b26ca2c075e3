package vapor

import (
	"github.com/unixpickle/model3d/model3d"
)

// An EliminationPolicy decides how survivors are ordered once the candidate
// set has been reduced to the target size.
type EliminationPolicy int

const (
	// ProgressiveElimination keeps eliminating (and re-weighting) until no
	// candidates remain. Survivors are ordered by when they would have been
	// eliminated, so every prefix of the output is itself well spaced.
	ProgressiveElimination EliminationPolicy = iota

	// StrictElimination stops re-weighting once the target size is reached.
	// Survivors are ordered by their remaining weight.
	StrictElimination
)

func (e EliminationPolicy) String() string {
	switch e {
	case ProgressiveElimination:
		return "progressive"
	case StrictElimination:
		return "strict"
	default:
		return "unknown"
	}
}

// An Eliminator reduces a dense set of candidates to a smaller set with
// approximately blue noise spacing, by greedily removing the most crowded
// candidate.
type Eliminator struct {
	Kernel Kernel
	Policy EliminationPolicy
}

// Eliminate reduces the candidates down to target points.
//
// The tree must index coords, and weights must be the initial weights from
// InitWeights. The weights slice is modified in place.
//
// The result lists the surviving candidate indices in output order, along
// with a noiseness value for each survivor. Noiseness is strictly increasing
// over [0, 1), and low noiseness marks the survivors which were kept the
// longest.
func (e *Eliminator) Eliminate(tree *KDTree, coords []model3d.Coord3D, weights []float64,
	target int) (order []int, noiseness []float64, err error) {
	if target <= 0 {
		return nil, nil, invalidConfig("target count %d must be positive", target)
	}
	if target > len(coords) {
		return nil, nil, invalidConfig("target count %d exceeds %d candidates", target,
			len(coords))
	}
	if len(weights) != len(coords) || tree.Len() != len(coords) {
		panic("mismatched candidate, weight, and index sizes")
	}

	heap := NewIndexedHeap(weights)
	order = make([]int, target)
	noiseness = make([]float64, target)
	radius := e.Kernel.Radius()

	n := len(coords)
	for n > 0 {
		h := heap.PopMax()
		if heap.Len() > 0 && e.reweight(n, target) {
			c := coords[h]
			tree.RangeQuery(c, radius, func(j int) {
				if heap.Live(j) {
					heap.Decrease(j, e.Kernel.Contribution(c.Dist(coords[j])))
				}
			})
		}
		n--
		if n < target {
			order[n] = h
			noiseness[n] = float64(n) / float64(target)
		}
	}
	return order, noiseness, nil
}

func (e *Eliminator) reweight(n, target int) bool {
	return e.Policy == ProgressiveElimination || n > target
}
