// groundtool is a CLI utility for building and editing ground meshes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/groundmesh/internal/config"
	"github.com/Faultbox/groundmesh/internal/logger"
	"github.com/Faultbox/groundmesh/pkg/editor"
	"github.com/Faultbox/groundmesh/pkg/grid"
	"github.com/Faultbox/groundmesh/pkg/terrain"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "new":
		cmdNew(args)
	case "run":
		cmdRun(args)
	case "tileset", "ts":
		cmdTileset(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`groundtool - ground mesh editing utility

Usage:
  groundtool <command> [options]

Commands:
  new [flags]                              Build a mesh and print its height map
  run [flags] <script.yaml>                Run a scripted edit session
  tileset info <file.yaml>                 Show tileset information
  tileset create <file.yaml> [flags]       Create an empty tileset
  tileset add <file.yaml> <name>           Add a terrain category
  tileset remove <file.yaml> <terrain>     Remove a terrain category by index or name
  tileset paint <file.yaml> <tile> <corner> <terrain>
                                           Label a tile corner with a terrain
  tileset erase <file.yaml> <tile> <corner> <terrain>
                                           Clear a tile corner holding a terrain

Flags (new, run):
  -config <file>    Config file (default ./groundtool.yaml)
  -cols, -rows      Mesh dimensions
  -atlas <n>        Atlas columns when no tileset is used
  -tileset <file>   Tileset file; enables terrain painting
  -seed <n>         Seed heights with Perlin noise
  -debug            Enable debug logging

Examples:
  groundtool new -cols 16 -rows 16 -seed 7
  groundtool run -tileset grass.yaml session.yaml
  groundtool tileset create grass.yaml -columns 4 -tile-size 64
  groundtool tileset paint grass.yaml 5 0 1`)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	logger.Sync()
	os.Exit(1)
}

// session loads config, starts logging and creates an editor with a mesh
// built from the config. It returns the non-flag arguments.
func session(args []string) (*config.Config, *editor.Editor, []string) {
	rest, err := config.ParseFlags(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fail(err)
	}

	ed := editor.New(editor.Options{
		Logger:       logger.Named("editor"),
		HistoryLimit: cfg.History.Limit,
		BrushMaxSize: cfg.Brush.MaxSize,
		HeightUnit:   cfg.Brush.HeightUnit,
		Sink:         surfaceLog{log: logger.Named("sink")},
	})
	ed.Brush.SetSize(cfg.Brush.Size)

	if cfg.Tileset.Path != "" {
		ts, err := terrain.Load(cfg.Tileset.Path)
		if err != nil {
			fail(err)
		}
		if err := ed.SetTileset(ts); err != nil {
			fail(err)
		}
	}

	if err := ed.NewMesh(cfg.Mesh.Cols, cfg.Mesh.Rows, cfg.Mesh.AtlasColumns); err != nil {
		fail(err)
	}
	if cfg.Noise.Enabled {
		if err := ed.SeedHeights(cfg.Noise.Params()); err != nil {
			fail(err)
		}
		// Seeding is part of the initial state, not an undoable edit
		ed.ClearHistory()
	}
	return cfg, ed, rest
}

func cmdNew(args []string) {
	_, ed, _ := session(args)
	defer logger.Sync()

	printSummary(os.Stdout, ed)
	fmt.Println()
	printHeightMap(os.Stdout, ed.Mesh(), ed.Index())
}

func cmdRun(args []string) {
	cfg, ed, rest := session(args)
	defer logger.Sync()

	if len(rest) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: groundtool run [flags] <script.yaml>")
		os.Exit(1)
	}

	script, err := loadScript(rest[0])
	if err != nil {
		fail(err)
	}
	logger.Info("running script", zap.String("path", rest[0]), zap.Int("steps", len(script.Steps)))

	if err := runScript(ed, cfg, script); err != nil {
		fail(err)
	}

	printSummary(os.Stdout, ed)
	if ed.Mesh() != nil {
		fmt.Println()
		printHeightMap(os.Stdout, ed.Mesh(), ed.Index())
	}
}

// surfaceLog is the CLI sink: it has no renderer and records each upload.
type surfaceLog struct {
	log *zap.Logger
}

func (s surfaceLog) Upload(surf *grid.Surface) {
	size := surf.Bounds.Size()
	s.log.Debug("surface",
		zap.Int("vertices", len(surf.Positions)),
		zap.Int("triangles", len(surf.Indices)/3),
		zap.Float32("min_y", surf.Bounds.Min.Y()),
		zap.Float32("max_y", surf.Bounds.Max.Y()),
		zap.Float32("width", size.X()),
		zap.Float32("depth", size.Z()))
}
