package vapor

import (
	"github.com/unixpickle/model3d/model3d"
)

// forkMinPoints is the smallest subtree that a concurrent build will hand to
// another worker.
const forkMinPoints = 1 << 12

type kdNode struct {
	Coord model3d.Coord3D
	Left  int32
	Right int32
	Axis  uint8

	// Index is the position of this point in the slice the tree was built
	// from.
	Index int
}

// A KDTree is a static, balanced k-d tree over a fixed set of points.
//
// Every node splits on the axis depth%3. Points in a node's left subtree
// have a strictly smaller coordinate on the node's axis, while points in the
// right subtree have a greater or equal coordinate.
//
// The tree is immutable once built and may be queried concurrently.
type KDTree struct {
	nodes []kdNode
	root  int32
}

// NewKDTree builds a tree over the coordinates.
// Query results report indices into coords.
func NewKDTree(coords []model3d.Coord3D) *KDTree {
	t := newKDTreeArena(coords)
	t.root = t.build(0, len(t.nodes), 0)
	return t
}

// NewKDTreeConcurrent is like NewKDTree, but builds disjoint subtrees on up
// to the given number of Goroutines. If workers is 0, GOMAXPROCS is used.
//
// The resulting tree is identical to the one produced by NewKDTree.
func NewKDTreeConcurrent(coords []model3d.Coord3D, workers int) *KDTree {
	if workers == 1 || len(coords) < 2*forkMinPoints {
		return NewKDTree(coords)
	}
	t := newKDTreeArena(coords)
	q := newForkQueue[int32](workers)
	t.root = q.Run(func() int32 {
		return t.buildForked(q, 0, len(t.nodes), 0)
	})
	return t
}

func newKDTreeArena(coords []model3d.Coord3D) *KDTree {
	nodes := make([]kdNode, len(coords))
	for i, c := range coords {
		nodes[i] = kdNode{Coord: c, Left: -1, Right: -1, Index: i}
	}
	return &KDTree{nodes: nodes, root: -1}
}

// Len returns the number of points in the tree.
func (k *KDTree) Len() int {
	return len(k.nodes)
}

// RangeQuery calls f with the index of every point whose distance to c is
// strictly less than radius. The visiting order is unspecified.
func (k *KDTree) RangeQuery(c model3d.Coord3D, radius float64, f func(index int)) {
	if k.root < 0 || !(radius > 0) {
		return
	}
	k.rangeQuery(k.root, c, c.Array(), radius, f)
}

func (k *KDTree) rangeQuery(idx int32, c model3d.Coord3D, arr [3]float64, radius float64,
	f func(int)) {
	for idx >= 0 {
		node := &k.nodes[idx]
		if node.Coord.Dist(c) < radius {
			f(node.Index)
		}
		diff := arr[node.Axis] - node.Coord.Array()[node.Axis]
		if diff < radius && node.Left >= 0 {
			if -diff < radius && node.Right >= 0 {
				k.rangeQuery(node.Right, c, arr, radius, f)
			}
			idx = node.Left
		} else if -diff < radius {
			idx = node.Right
		} else {
			return
		}
	}
}

func (k *KDTree) build(start, end, depth int) int32 {
	if start >= end {
		return -1
	}
	mid := k.split(start, end, depth)
	node := &k.nodes[mid]
	node.Left = k.build(start, mid, depth+1)
	node.Right = k.build(mid+1, end, depth+1)
	return int32(mid)
}

func (k *KDTree) buildForked(q *forkQueue[int32], start, end, depth int) int32 {
	if end-start < forkMinPoints {
		return k.build(start, end, depth)
	}
	mid := k.split(start, end, depth)
	left, right := q.Fork(
		func() int32 {
			return k.buildForked(q, start, mid, depth+1)
		},
		func() int32 {
			return k.buildForked(q, mid+1, end, depth+1)
		},
	)
	k.nodes[mid].Left = left
	k.nodes[mid].Right = right
	return int32(mid)
}

// split moves the median of nodes[start:end] along the depth's axis into
// place and returns its position.
//
// Values equal to the median are moved after it, so that they end up in the
// right subtree.
func (k *KDTree) split(start, end, depth int) int {
	axis := uint8(depth % 3)
	mid := start + (end-start)/2
	k.selectNth(start, end-1, mid, axis)

	median := k.value(mid, axis)
	j := start
	for i := start; i < mid; i++ {
		if k.value(i, axis) < median {
			k.swap(i, j)
			j++
		}
	}
	k.swap(j, mid)
	k.nodes[j].Axis = axis
	return j
}

// selectNth partially sorts nodes[lo:hi+1] along an axis so that position n
// holds the value it would have in sorted order, with no greater values
// before it and no smaller values after it.
func (k *KDTree) selectNth(lo, hi, n int, axis uint8) {
	for lo < hi {
		pivot := k.value(lo+(hi-lo)/2, axis)
		i, j := lo, hi
		for i <= j {
			for k.value(i, axis) < pivot {
				i++
			}
			for k.value(j, axis) > pivot {
				j--
			}
			if i <= j {
				k.swap(i, j)
				i++
				j--
			}
		}
		if n <= j {
			hi = j
		} else if n >= i {
			lo = i
		} else {
			return
		}
	}
}

func (k *KDTree) value(i int, axis uint8) float64 {
	return k.nodes[i].Coord.Array()[axis]
}

func (k *KDTree) swap(i, j int) {
	k.nodes[i], k.nodes[j] = k.nodes[j], k.nodes[i]
}
