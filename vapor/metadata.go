package vapor

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// NodeInfo is the serialized form of an OctreeNode.
//
// Only leaves carry a point range.
type NodeInfo struct {
	Key   uint64     `json:"key"`
	Min   [3]float64 `json:"min"`
	Max   [3]float64 `json:"max"`
	Start *int       `json:"start,omitempty"`
	Count *int       `json:"count,omitempty"`
}

// NewNodeInfo converts a node to its serialized form.
func NewNodeInfo(node *OctreeNode) *NodeInfo {
	res := &NodeInfo{
		Key: node.Key,
		Min: node.Min.Array(),
		Max: node.Max.Array(),
	}
	if node.Leaf {
		start, count := node.Start, node.Count
		res.Start = &start
		res.Count = &count
	}
	return res
}

// Leaf checks if the node carries a point range.
func (n *NodeInfo) Leaf() bool {
	return n.Start != nil && n.Count != nil
}

// Bounds returns the bounding box of the node.
func (n *NodeInfo) Bounds() (min, max model3d.Coord3D) {
	return model3d.NewCoord3DArray(n.Min), model3d.NewCoord3DArray(n.Max)
}

// WriteNodesJSON encodes the node hierarchy as a JSON array.
func WriteNodesJSON(w io.Writer, nodes []OctreeNode) error {
	infos := make([]*NodeInfo, len(nodes))
	for i := range nodes {
		infos[i] = NewNodeInfo(&nodes[i])
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return errors.Wrap(err, "write nodes")
	}
	return nil
}

// ReadNodesJSON reads the output of WriteNodesJSON.
func ReadNodesJSON(r io.Reader) ([]*NodeInfo, error) {
	var res []*NodeInfo
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, errors.Wrap(err, "read nodes")
	}
	return res, nil
}

// WriteNodesLua encodes the node hierarchy as a Lua chunk which returns a
// table with one entry per node.
func WriteNodesLua(w io.Writer, nodes []OctreeNode) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "return {")
	for i := range nodes {
		info := NewNodeInfo(&nodes[i])
		fmt.Fprintf(bw, "  { key = %d, min = %s, max = %s", info.Key, luaVector(info.Min),
			luaVector(info.Max))
		if info.Leaf() {
			fmt.Fprintf(bw, ", start = %d, count = %d", *info.Start, *info.Count)
		}
		fmt.Fprintln(bw, " },")
	}
	fmt.Fprintln(bw, "}")
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "write lua nodes")
	}
	return nil
}

func luaVector(v [3]float64) string {
	return "{ " + luaNumber(v[0]) + ", " + luaNumber(v[1]) + ", " + luaNumber(v[2]) + " }"
}

func luaNumber(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 32)
}
