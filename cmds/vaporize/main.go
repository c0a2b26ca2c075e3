package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/vaporize/internal/config"
	"github.com/unixpickle/vaporize/internal/logger"
	"github.com/unixpickle/vaporize/vapor"
	"go.uber.org/zap"
)

func main() {
	var configPath string
	var writeConfigPath string
	flag.StringVar(&configPath, "config", "", "path to YAML config file")
	flag.StringVar(&writeConfigPath, "write-config", "",
		"if set, save the resolved configuration to this path")
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: vaporize [flags] <input.stl> <output_dir>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath, outputPath := args[0], args[1]

	cfg, err := config.Load(configPath, flags)
	essentials.Must(err)
	log := logger.New(cfg.LoggerOptions())
	defer log.Sync()

	pipelineCfg, err := cfg.Pipeline()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	if writeConfigPath != "" {
		if err := config.Save(writeConfigPath, cfg); err != nil {
			log.Fatal("failed to save configuration", zap.Error(err))
		}
		log.Info("saved configuration", zap.String("path", writeConfigPath))
	}

	log.Info("loading mesh", zap.String("path", inputPath))
	tris, err := vapor.Load(inputPath, vapor.ReadMesh)
	if err != nil {
		log.Fatal("failed to load mesh", zap.Error(err))
	}

	cloud, err := vapor.Vaporize(tris, pipelineCfg, log)
	if err != nil {
		log.Fatal("failed to create point cloud", zap.Error(err))
	}

	log.Info("writing outputs", zap.String("dir", outputPath))
	essentials.Must(os.MkdirAll(outputPath, 0755))
	essentials.Must(vapor.Save(filepath.Join(outputPath, "points.bin"), cloud.Points,
		vapor.WritePoints))
	if cfg.Output.JSON {
		essentials.Must(vapor.Save(filepath.Join(outputPath, "nodes.json"), cloud.Nodes,
			vapor.WriteNodesJSON))
	}
	if cfg.Output.Lua {
		essentials.Must(vapor.Save(filepath.Join(outputPath, "nodes.lua"), cloud.Nodes,
			vapor.WriteNodesLua))
	}
	log.Info("done",
		zap.Int("points", len(cloud.Points)),
		zap.Int("nodes", len(cloud.Nodes)),
		zap.Uint64("seed", cloud.Seed))
}
