package vapor

import (
	"github.com/unixpickle/model3d/model3d"
	"golang.org/x/exp/slices"
)

const (
	DefaultMaxLeafPoints = 16384
	DefaultMaxLeafExtent = 3.0

	// MaxOctreeDepth is the deepest level whose keys fit in 64 bits.
	MaxOctreeDepth = 21
)

// A Point is a surviving sample together with its elimination rank.
type Point struct {
	Coord     model3d.Coord3D
	Noiseness float64
}

// An OctreeNode describes one node of a partitioned point buffer.
type OctreeNode struct {
	// Key encodes the path from the root. The root has key 1, and each
	// level appends three bits selecting the octant.
	Key uint64

	// Min and Max tightly bound the points in the node. The root instead
	// uses the bounds of the mesh.
	Min model3d.Coord3D
	Max model3d.Coord3D

	// Start and Count give the node's range in the point buffer.
	Start int
	Count int

	Leaf bool
}

// Depth is the number of levels below the root.
func (o *OctreeNode) Depth() int {
	depth := 0
	for k := o.Key; k > 1; k >>= 3 {
		depth++
	}
	return depth
}

// Parent returns the key of the parent node, or 0 for the root.
func (o *OctreeNode) Parent() uint64 {
	return o.Key >> 3
}

// Octant computes the octant of c relative to center. Bit i of the result is
// set if c is greater than center along axis i.
func Octant(c, center model3d.Coord3D) int {
	var res int
	if c.X > center.X {
		res |= 1
	}
	if c.Y > center.Y {
		res |= 2
	}
	if c.Z > center.Z {
		res |= 4
	}
	return res
}

// An OctreeBuilder recursively partitions a point buffer into octants.
type OctreeBuilder struct {
	// MaxLeafPoints is the largest number of points a leaf may hold.
	MaxLeafPoints int

	// MaxLeafExtent is the largest size of a leaf along any axis.
	MaxLeafExtent float64

	// MaxDepth limits the depth of the tree. If 0 or greater than
	// MaxOctreeDepth, MaxOctreeDepth is used.
	MaxDepth int
}

// DefaultOctreeBuilder uses the default leaf thresholds.
func DefaultOctreeBuilder() *OctreeBuilder {
	return &OctreeBuilder{
		MaxLeafPoints: DefaultMaxLeafPoints,
		MaxLeafExtent: DefaultMaxLeafExtent,
	}
}

// Build reorders points in place and returns the nodes of the octree in depth
// first order, starting with the root.
//
// The min and max arguments are the bounds recorded for the root. Points in
// each leaf are sorted by ascending noiseness.
func (o *OctreeBuilder) Build(points []Point, min, max model3d.Coord3D) []OctreeNode {
	root := OctreeNode{Key: 1, Min: min, Max: max, Count: len(points)}
	center := min.Mid(max)
	if len(points) > 0 {
		tightMin, tightMax := PointBounds(points)
		center = tightMin.Mid(tightMax)
	}
	var nodes []OctreeNode
	o.build(&nodes, points, root, center, 0)
	return nodes
}

func (o *OctreeBuilder) build(nodes *[]OctreeNode, points []Point, node OctreeNode,
	center model3d.Coord3D, depth int) {
	block := points[node.Start : node.Start+node.Count]
	node.Leaf = o.isLeaf(&node, depth)
	*nodes = append(*nodes, node)
	if node.Leaf {
		slices.SortFunc(block, func(a, b Point) bool {
			return a.Noiseness < b.Noiseness
		})
		return
	}

	offsets := BucketPartition(block, 8, func(p Point) int {
		return Octant(p.Coord, center)
	})
	for octant := 0; octant < 8; octant++ {
		sub := block[offsets[octant]:offsets[octant+1]]
		if len(sub) == 0 {
			continue
		}
		min, max := PointBounds(sub)
		child := OctreeNode{
			Key:   node.Key<<3 | uint64(octant),
			Min:   min,
			Max:   max,
			Start: node.Start + offsets[octant],
			Count: len(sub),
		}
		o.build(nodes, points, child, min.Mid(max), depth+1)
	}
}

func (o *OctreeBuilder) isLeaf(node *OctreeNode, depth int) bool {
	if node.Count <= 1 || depth >= o.maxDepth() || node.Min == node.Max {
		return true
	}
	extent := node.Max.Sub(node.Min).MaxCoord()
	return node.Count <= o.MaxLeafPoints && extent <= o.MaxLeafExtent
}

func (o *OctreeBuilder) maxDepth() int {
	if o.MaxDepth <= 0 || o.MaxDepth > MaxOctreeDepth {
		return MaxOctreeDepth
	}
	return o.MaxDepth
}

// PointBounds computes the bounding box of a non-empty set of points.
func PointBounds(points []Point) (min, max model3d.Coord3D) {
	min, max = points[0].Coord, points[0].Coord
	for _, p := range points[1:] {
		min = min.Min(p.Coord)
		max = max.Max(p.Coord)
	}
	return
}
