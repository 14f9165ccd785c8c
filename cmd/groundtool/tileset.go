package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Faultbox/groundmesh/pkg/terrain"
)

func cmdTileset(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: groundtool tileset <info|create|add|remove|paint|erase> <file.yaml> ...")
		os.Exit(1)
	}

	sub, path, rest := args[0], args[1], args[2:]
	var err error
	switch sub {
	case "info":
		err = tilesetInfo(os.Stdout, path)
	case "create":
		err = tilesetCreate(path, rest)
	case "add":
		err = tilesetEdit(path, func(ts *terrain.Tileset) error {
			if len(rest) < 1 {
				return fmt.Errorf("usage: groundtool tileset add <file.yaml> <name>")
			}
			i := ts.AddTerrain(rest[0])
			fmt.Printf("Added terrain %d: %s\n", i, rest[0])
			return nil
		})
	case "remove", "rm":
		err = tilesetEdit(path, func(ts *terrain.Tileset) error {
			return tilesetRemove(ts, rest)
		})
	case "paint":
		err = tilesetEdit(path, func(ts *terrain.Tileset) error {
			n, err := intArgs(rest, 3, "groundtool tileset paint <file.yaml> <tile> <corner> <terrain>")
			if err != nil {
				return err
			}
			return ts.PaintCorner(n[0], n[1], n[2])
		})
	case "erase":
		err = tilesetEdit(path, func(ts *terrain.Tileset) error {
			n, err := intArgs(rest, 3, "groundtool tileset erase <file.yaml> <tile> <corner> <terrain>")
			if err != nil {
				return err
			}
			return ts.EraseCorner(n[0], n[1], n[2])
		})
	default:
		fmt.Fprintf(os.Stderr, "Unknown tileset command: %s\n", sub)
		os.Exit(1)
	}

	if err != nil {
		fail(err)
	}
}

func intArgs(args []string, n int, usage string) ([]int, error) {
	if len(args) < n {
		return nil, fmt.Errorf("usage: %s", usage)
	}
	out := make([]int, n)
	for i := range n {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// tilesetRemove removes a terrain given by name or index.
func tilesetRemove(ts *terrain.Tileset, args []string) error {
	if len(args) > 0 {
		if i := ts.TerrainIndex(args[0]); i >= 0 {
			return ts.RemoveTerrain(i)
		}
	}
	n, err := intArgs(args, 1, "groundtool tileset remove <file.yaml> <terrain|name>")
	if err != nil {
		return err
	}
	return ts.RemoveTerrain(n[0])
}

// tilesetEdit loads a tileset, applies fn and saves it back.
func tilesetEdit(path string, fn func(*terrain.Tileset) error) error {
	ts, err := terrain.Load(path)
	if err != nil {
		return err
	}
	if err := fn(ts); err != nil {
		return err
	}
	return ts.SaveTo(path)
}

func tilesetCreate(path string, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	material := fs.String("material", "", "Material name")
	tileSize := fs.Int("tile-size", 32, "Tile size in pixels")
	columns := fs.Int("columns", 4, "Tiles per atlas row")
	fs.Parse(args)

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	ts, err := terrain.New(*material, *tileSize, *columns)
	if err != nil {
		return err
	}
	if err := ts.SaveTo(path); err != nil {
		return err
	}
	fmt.Printf("Created %s: %d x %d tiles\n", path, ts.ColumnCount, ts.ColumnCount)
	return nil
}

func tilesetInfo(w io.Writer, path string) error {
	ts, err := terrain.Load(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Tileset:  %s\n", path)
	fmt.Fprintf(w, "Material: %s\n", ts.Material)
	fmt.Fprintf(w, "Tiles:    %d x %d (%d px)\n", ts.ColumnCount, ts.ColumnCount, ts.TileSize)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Terrains:")
	if !ts.HasTerrains() {
		fmt.Fprintln(w, "  (none)")
	}
	for i, name := range ts.TerrainNames {
		fmt.Fprintf(w, "  %2d  %s\n", i, name)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Tile corners (NE,NW,SE,SW):")
	for i, enc := range ts.TileTerrains {
		c, _ := terrain.ParseCorners(enc)
		if c.IsUnset() {
			continue
		}
		fmt.Fprintf(w, "  %3d  %s\n", i, enc)
	}
	return nil
}
