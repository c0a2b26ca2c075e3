package vapor

import (
	"sort"

	"github.com/unixpickle/model3d/model3d"
)

// DefaultMultiplier is the default ratio between the number of sampled
// candidates and the number of points kept after elimination.
const DefaultMultiplier = 4

// SampleSurface draws n points uniformly from the surface of the mesh.
//
// For each point, a triangle is chosen with probability proportional to its
// area, and a point is chosen uniformly within that triangle.
func SampleSurface(m *Mesh, n int, r *Random) []model3d.Coord3D {
	res := make([]model3d.Coord3D, n)
	for i := range res {
		t := m.sampleTriangle(r)
		res[i] = sampleTriangle(t, r)
	}
	return res
}

// sampleTriangle picks a triangle weighted by area.
//
// The prefix sums are strictly increasing across non-degenerate triangles,
// so zero-area triangles can never be selected.
func (m *Mesh) sampleTriangle(r *Random) *model3d.Triangle {
	f := r.Float64() * m.TotalArea
	idx := sort.Search(len(m.Cumulative), func(i int) bool {
		return m.Cumulative[i] > f
	})
	if idx == len(m.Cumulative) {
		// Rounding can push f up to TotalArea; use the last triangle
		// that has any area.
		idx = len(m.Cumulative) - 1
		for idx > 0 && m.Areas[idx] == 0 {
			idx--
		}
	}
	return m.Triangles[idx]
}

func sampleTriangle(t *model3d.Triangle, r *Random) model3d.Coord3D {
	u := r.Float64()
	v := r.Float64()
	if u+v > 1 {
		u, v = 1-u, 1-v
	}
	e1 := t[1].Sub(t[0])
	e2 := t[2].Sub(t[0])
	return t[0].Add(e1.Scale(u)).Add(e2.Scale(v))
}
