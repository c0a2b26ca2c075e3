package vapor

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// A Mesh is a read-only view of a triangle list together with the area
// information needed for area-weighted sampling.
type Mesh struct {
	Triangles []*model3d.Triangle

	// Areas[i] is the area of Triangles[i].
	Areas []float64

	// Cumulative[i] is the sum of Areas[:i+1].
	Cumulative []float64

	TotalArea float64

	Min model3d.Coord3D
	Max model3d.Coord3D
}

// NewMesh computes the areas and bounds of a triangle list.
//
// Returns ErrDegenerateMesh if the triangles have no total area.
func NewMesh(tris []*model3d.Triangle) (*Mesh, error) {
	if len(tris) == 0 {
		return nil, errors.Wrap(ErrDegenerateMesh, "mesh has no triangles")
	}
	res := &Mesh{
		Triangles:  tris,
		Areas:      make([]float64, len(tris)),
		Cumulative: make([]float64, len(tris)),
		Min:        tris[0].Min(),
		Max:        tris[0].Max(),
	}
	for i, t := range tris {
		area := t.Area()
		res.Areas[i] = area
		res.TotalArea += area
		res.Cumulative[i] = res.TotalArea
		res.Min = res.Min.Min(t.Min())
		res.Max = res.Max.Max(t.Max())
	}
	if !(res.TotalArea > 0) {
		return nil, errors.Wrapf(ErrDegenerateMesh, "total area of %d triangles is zero",
			len(tris))
	}
	return res, nil
}

// Center is the midpoint of the bounding box.
func (m *Mesh) Center() model3d.Coord3D {
	return m.Min.Mid(m.Max)
}

// Size is the extent of the bounding box along each axis.
func (m *Mesh) Size() model3d.Coord3D {
	return m.Max.Sub(m.Min)
}

// BoundsVolume is the volume of the bounding box.
func (m *Mesh) BoundsVolume() float64 {
	s := m.Size()
	return s.X * s.Y * s.Z
}
