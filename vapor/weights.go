package vapor

import (
	"math"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
)

// DefaultAlpha is the default exponent of the elimination kernel.
const DefaultAlpha = 8

// A Kernel measures how much two nearby points crowd each other.
type Kernel struct {
	// RMax is the target spacing between points. Points farther apart than
	// 2*RMax do not affect each other.
	RMax float64

	// Alpha is the falloff exponent. If zero, DefaultAlpha is used.
	Alpha float64
}

// Radius is the distance beyond which the kernel vanishes.
func (k Kernel) Radius() float64 {
	return 2 * k.RMax
}

// Contribution computes the weight two points at distance d add to each
// other.
func (k Kernel) Contribution(d float64) float64 {
	r := k.Radius()
	return math.Pow(1-math.Min(d, r)/r, k.alpha())
}

func (k Kernel) alpha() float64 {
	if k.Alpha == 0 {
		return DefaultAlpha
	}
	return k.Alpha
}

// RMaxVolume computes the ideal spacing of count points packed in a volume.
func RMaxVolume(volume float64, count int) float64 {
	return math.Cbrt(volume / (4 * math.Sqrt2 * float64(count)))
}

// RMaxArea computes the ideal spacing of count points on a planar region of
// the given area.
func RMaxArea(area float64, count int) float64 {
	return math.Sqrt(area / (2 * math.Sqrt(3) * float64(count)))
}

// MeshRMax computes the target spacing for count points on the mesh.
//
// The spacing is derived from the volume of the mesh bounds. Flat meshes,
// whose bounds have no volume, use the surface area instead.
func MeshRMax(m *Mesh, count int) float64 {
	if v := m.BoundsVolume(); v > 0 {
		return RMaxVolume(v, count)
	}
	return RMaxArea(m.TotalArea, count)
}

// InitWeights computes the initial weight of every candidate.
//
// The weight of a candidate is the sum of the kernel contributions of all
// other candidates within the kernel radius.
//
// The concurrency argument specifies the maximum number of Goroutines to use.
// If concurrency is 0, GOMAXPROCS is used. The result does not depend on the
// concurrency.
func InitWeights(tree *KDTree, coords []model3d.Coord3D, k Kernel, concurrency int) []float64 {
	weights := make([]float64, len(coords))
	radius := k.Radius()
	essentials.ConcurrentMap(concurrency, len(coords), func(i int) {
		c := coords[i]
		var w float64
		tree.RangeQuery(c, radius, func(j int) {
			if j != i {
				w += k.Contribution(c.Dist(coords[j]))
			}
		})
		weights[i] = w
	})
	return weights
}
