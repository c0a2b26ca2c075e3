package vapor

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Spacing summarizes the distances from each point to its nearest neighbor.
type Spacing struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64

	// Isolated counts the points with no neighbor inside the search radius.
	// They are not included in the other statistics.
	Isolated int
}

// MeasureSpacing computes nearest neighbor statistics, only looking for
// neighbors closer than radius.
func MeasureSpacing(points []Point, radius float64) Spacing {
	coords := make([]model3d.Coord3D, len(points))
	for i, p := range points {
		coords[i] = p.Coord
	}
	tree := NewKDTree(coords)

	var res Spacing
	dists := make([]float64, 0, len(coords))
	for i, c := range coords {
		nearest := math.Inf(1)
		tree.RangeQuery(c, radius, func(j int) {
			if j != i {
				nearest = math.Min(nearest, c.Dist(coords[j]))
			}
		})
		if math.IsInf(nearest, 1) {
			res.Isolated++
		} else {
			dists = append(dists, nearest)
		}
	}
	if len(dists) == 0 {
		return res
	}
	res.Mean, res.StdDev = stat.MeanStdDev(dists, nil)
	res.Min = floats.Min(dists)
	res.Max = floats.Max(dists)
	return res
}
