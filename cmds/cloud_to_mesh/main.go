package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
	"github.com/unixpickle/vaporize/vapor"
)

func main() {
	var radius float64
	var maxNoiseness float64
	var subdivisions int
	flag.Float64Var(&radius, "radius", 0.01, "radius of the sphere drawn for each point")
	flag.Float64Var(&maxNoiseness, "max-noiseness", 1,
		"only draw points with noiseness below this value")
	flag.IntVar(&subdivisions, "subdivisions", 1, "icosphere subdivisions per point")
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: cloud_to_mesh [flags] <points.bin> <output.stl>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath, outputPath := args[0], args[1]

	log.Println("Loading points...")
	points, err := vapor.Load(inputPath, vapor.ReadPoints)
	essentials.Must(err)

	log.Println("Creating mesh...")
	sphere := model3d.NewMeshIcosphere(model3d.Origin, radius, subdivisions).TriangleSlice()
	mesh := model3d.NewMesh()
	var count int
	for _, p := range points {
		if p.Noiseness >= maxNoiseness {
			continue
		}
		for _, t := range sphere {
			mesh.Add(&model3d.Triangle{t[0].Add(p.Coord), t[1].Add(p.Coord), t[2].Add(p.Coord)})
		}
		count++
	}
	log.Printf("Drawing %d of %d points", count, len(points))

	log.Println("Saving mesh...")
	essentials.Must(mesh.SaveGroupedSTL(outputPath))
}
