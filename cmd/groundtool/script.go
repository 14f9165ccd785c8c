package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/groundmesh/internal/config"
	"github.com/Faultbox/groundmesh/pkg/brush"
	"github.com/Faultbox/groundmesh/pkg/editor"
	"github.com/Faultbox/groundmesh/pkg/grid"
)

var errStep = errors.New("invalid step")

// Script is a scripted edit session.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step is one scripted editor call. Fields apply per op.
type Step struct {
	Op string `yaml:"op"`

	// Brush ops: height, tile, terrain, stroke
	At       []float32   `yaml:"at"`   // x, z
	Path     [][]float32 `yaml:"path"` // stroke only
	Mode     string      `yaml:"mode"` // stroke only
	Size     int         `yaml:"size"`
	Height   float32     `yaml:"height"`
	Tile     int         `yaml:"tile"`
	Rotation int         `yaml:"rotation"`
	Terrain  int         `yaml:"terrain"`

	// new, resize
	Cols  int `yaml:"cols"`
	Rows  int `yaml:"rows"`
	Atlas int `yaml:"atlas"`

	Count int   `yaml:"count"` // undo, redo
	Seed  int64 `yaml:"seed"`  // seed
}

func loadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseScript(data)
}

func parseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding script: %w", err)
	}
	return &s, nil
}

func cursorOf(at []float32) (mgl32.Vec3, error) {
	if len(at) != 2 {
		return mgl32.Vec3{}, fmt.Errorf("%w: cursor needs [x, z], got %v", errStep, at)
	}
	return mgl32.Vec3{at[0], 0, at[1]}, nil
}

func rotationOf(deg int) (grid.Rotation, error) {
	switch r := grid.Rotation(deg); r {
	case grid.Rot0, grid.Rot90, grid.Rot180, grid.Rot270:
		return r, nil
	default:
		return 0, fmt.Errorf("%w: rotation %d is not a multiple of 90", errStep, deg)
	}
}

// runScript executes every step in order and stops at the first failure.
func runScript(ed *editor.Editor, cfg *config.Config, s *Script) error {
	for i, step := range s.Steps {
		if err := runStep(ed, cfg, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}
	return nil
}

func runStep(ed *editor.Editor, cfg *config.Config, st Step) error {
	size := st.Size
	if size == 0 {
		size = ed.Brush.Size
	}

	switch st.Op {
	case "new":
		cols, rows, atlas := cfg.Mesh.Cols, cfg.Mesh.Rows, cfg.Mesh.AtlasColumns
		if st.Cols > 0 {
			cols = st.Cols
		}
		if st.Rows > 0 {
			rows = st.Rows
		}
		if st.Atlas > 0 {
			atlas = st.Atlas
		}
		return ed.NewMesh(cols, rows, atlas)

	case "resize":
		return ed.Resize(st.Cols, st.Rows)

	case "height":
		cursor, err := cursorOf(st.At)
		if err != nil {
			return err
		}
		ed.PaintHeight(cursor, size, st.Height)

	case "tile":
		cursor, err := cursorOf(st.At)
		if err != nil {
			return err
		}
		rot, err := rotationOf(st.Rotation)
		if err != nil {
			return err
		}
		ed.PaintTile(cursor, size, st.Tile, rot)

	case "terrain":
		cursor, err := cursorOf(st.At)
		if err != nil {
			return err
		}
		if err := ed.SelectTerrain(st.Terrain); err != nil {
			return err
		}
		ed.PaintTerrain(cursor, size, st.Terrain)

	case "stroke":
		return runStroke(ed, st, size)

	case "undo":
		for range max(1, st.Count) {
			if !ed.Undo() {
				break
			}
		}

	case "redo":
		for range max(1, st.Count) {
			if !ed.Redo() {
				break
			}
		}

	case "reset-uv":
		return ed.ResetUV()

	case "seed":
		p := cfg.Noise.Params()
		if st.Seed != 0 {
			p.Seed = st.Seed
		}
		return ed.SeedHeights(p)

	case "clear-history":
		ed.ClearHistory()

	case "clean":
		ed.Clean()

	default:
		return fmt.Errorf("%w: unknown op %q", errStep, st.Op)
	}
	return nil
}

// runStroke drags the session brush along a path as one gesture.
func runStroke(ed *editor.Editor, st Step, size int) error {
	mode, ok := brush.ParseMode(st.Mode)
	if !ok {
		return fmt.Errorf("%w: unknown mode %q", errStep, st.Mode)
	}
	rot, err := rotationOf(st.Rotation)
	if err != nil {
		return err
	}
	if mode == brush.ModeTerrain {
		if err := ed.SelectTerrain(st.Terrain); err != nil {
			return err
		}
	}

	ed.Brush.SetSize(size)
	ed.Brush.SetMode(mode)
	ed.Brush.Height = st.Height
	ed.Brush.Tile = st.Tile
	ed.Brush.Rotation = rot

	ed.BeginStroke()
	defer ed.EndStroke()
	for _, at := range st.Path {
		cursor, err := cursorOf(at)
		if err != nil {
			return err
		}
		ed.Stroke(cursor)
	}
	return nil
}
