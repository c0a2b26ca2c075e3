package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/vaporize/vapor"
)

func main() {
	var spacingRadius float64
	var spacingSample int
	var seed uint64
	flag.Float64Var(&spacingRadius, "spacing-radius", 0,
		"if non-zero, measure nearest neighbor spacing up to this distance")
	flag.IntVar(&spacingSample, "spacing-sample", 0,
		"if non-zero, measure spacing on a random subset of this many points")
	flag.Uint64Var(&seed, "seed", 1, "random seed for -spacing-sample")
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: cloud_info [flags] <points.bin> <nodes.json>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	pointsPath, nodesPath := args[0], args[1]

	log.Println("Loading points...")
	points, err := vapor.Load(pointsPath, vapor.ReadPoints)
	essentials.Must(err)

	log.Println("Loading nodes...")
	nodes, err := vapor.Load(nodesPath, vapor.ReadNodesJSON)
	essentials.Must(err)

	var numLeaves, maxDepth, leafPoints int
	seen := map[uint64]bool{}
	for i, node := range nodes {
		n := &vapor.OctreeNode{Key: node.Key}
		if i > 0 && !seen[n.Parent()] {
			essentials.Die(fmt.Sprintf("node %d appears before its parent %d", node.Key,
				n.Parent()))
		}
		seen[node.Key] = true
		depth := n.Depth()
		if depth > maxDepth {
			maxDepth = depth
		}
		if node.Leaf() {
			numLeaves++
			leafPoints += *node.Count
			if *node.Start+*node.Count > len(points) {
				essentials.Die(fmt.Sprintf("leaf %d exceeds the point buffer", node.Key))
			}
		}
	}

	fmt.Println("Number of points:", len(points))
	fmt.Println("Number of nodes:", len(nodes))
	fmt.Println("Number of leaves:", numLeaves)
	fmt.Println("Maximum depth:", maxDepth)
	fmt.Println("Points in leaves:", leafPoints)
	if len(nodes) > 0 {
		min, max := nodes[0].Bounds()
		fmt.Println("Bounds:", min, max)
	}
	if spacingRadius > 0 {
		measured := points
		if spacingSample > 0 && spacingSample < len(points) {
			r := rand.New(vapor.NewRandom(seed))
			measured = make([]vapor.Point, spacingSample)
			for i, j := range r.Perm(len(points))[:spacingSample] {
				measured[i] = points[j]
			}
		}
		spacing := vapor.MeasureSpacing(measured, spacingRadius)
		fmt.Printf("Spacing: mean=%f stddev=%f min=%f max=%f isolated=%d\n", spacing.Mean,
			spacing.StdDev, spacing.Min, spacing.Max, spacing.Isolated)
	}
}
