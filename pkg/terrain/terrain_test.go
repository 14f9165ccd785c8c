package terrain

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCornersString(t *testing.T) {
	tests := []struct {
		c    Corners
		want string
	}{
		{NoTerrain, "-1,-1,-1,-1"},
		{Uniform(0), "0,0,0,0"},
		{Corners{1, 0, 2, -1}, "1,0,2,-1"},
	}

	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Corners%v.String() = %q, want %q", [4]int(tt.c), got, tt.want)
		}
	}
}

func TestParseCorners(t *testing.T) {
	c, err := ParseCorners("1, 0,2,-1")
	if err != nil {
		t.Fatalf("ParseCorners failed: %v", err)
	}
	if c != (Corners{1, 0, 2, -1}) {
		t.Errorf("expected [1 0 2 -1], got %v", c)
	}

	invalid := []string{"", "1,2,3", "1,2,3,4,5", "a,b,c,d", "0,0,0,-2"}
	for _, s := range invalid {
		if _, err := ParseCorners(s); !errors.Is(err, ErrInvalidCorners) {
			t.Errorf("ParseCorners(%q) error = %v, want ErrInvalidCorners", s, err)
		}
	}
}

func TestCornersFill(t *testing.T) {
	got := Corners{-1, 2, -1, 1}.Fill(3)
	want := Corners{3, 2, 3, 1}
	if got != want {
		t.Errorf("Fill() = %v, want %v", got, want)
	}
	if !NoTerrain.IsUnset() {
		t.Error("expected NoTerrain to be unset")
	}
}

func TestNewTilesetPadsTerrains(t *testing.T) {
	ts, err := New("ground", 32, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if len(ts.TileTerrains) != 9 {
		t.Fatalf("expected 9 tile encodings, got %d", len(ts.TileTerrains))
	}
	for i, s := range ts.TileTerrains {
		if s != "-1,-1,-1,-1" {
			t.Errorf("tile %d: expected unassigned, got %q", i, s)
		}
	}

	if _, err := New("ground", 32, 0); !errors.Is(err, ErrInvalidColumnCount) {
		t.Errorf("expected ErrInvalidColumnCount, got %v", err)
	}
	if _, err := New("ground", -1, 2); !errors.Is(err, ErrInvalidTileSize) {
		t.Errorf("expected ErrInvalidTileSize, got %v", err)
	}
}

func TestTileFor(t *testing.T) {
	ts := &Tileset{
		ColumnCount:  2,
		TerrainNames: []string{"grass"},
		TileTerrains: []string{"-1,-1,-1,-1", "0,0,0,0", "0,0,0,0"},
	}

	idx, ok := ts.TileFor(Uniform(0))
	if !ok || idx != 1 {
		t.Errorf("TileFor(0,0,0,0) = %d, %v; want 1, true", idx, ok)
	}

	if _, ok := ts.TileFor(Corners{0, 1, 0, 1}); ok {
		t.Error("expected no tile for unknown encoding")
	}

	// Direct edits require a reindex.
	ts.TileTerrains[0] = "0,1,0,1"
	ts.Reindex()
	idx, ok = ts.TileFor(Corners{0, 1, 0, 1})
	if !ok || idx != 0 {
		t.Errorf("after reindex TileFor = %d, %v; want 0, true", idx, ok)
	}
}

func TestDefaultCorners(t *testing.T) {
	ts := &Tileset{ColumnCount: 1}
	if ts.DefaultCorners() != NoTerrain {
		t.Errorf("expected NoTerrain without terrains, got %v", ts.DefaultCorners())
	}
	ts.AddTerrain("grass")
	if ts.DefaultCorners() != Uniform(0) {
		t.Errorf("expected uniform 0 with terrains, got %v", ts.DefaultCorners())
	}
}

func TestPaintAndEraseCorner(t *testing.T) {
	ts, err := New("ground", 16, 2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	grass := ts.AddTerrain("grass")
	water := ts.AddTerrain("water")

	if err := ts.PaintCorner(3, 1, water); err != nil {
		t.Fatalf("PaintCorner failed: %v", err)
	}
	if ts.TileTerrains[3] != "-1,1,-1,-1" {
		t.Errorf("expected -1,1,-1,-1, got %q", ts.TileTerrains[3])
	}

	// Erasing a different terrain leaves the corner alone.
	if err := ts.EraseCorner(3, 1, grass); err != nil {
		t.Fatalf("EraseCorner failed: %v", err)
	}
	if ts.TileTerrains[3] != "-1,1,-1,-1" {
		t.Errorf("erase of other terrain changed tile: %q", ts.TileTerrains[3])
	}

	if err := ts.EraseCorner(3, 1, water); err != nil {
		t.Fatalf("EraseCorner failed: %v", err)
	}
	if ts.TileTerrains[3] != "-1,-1,-1,-1" {
		t.Errorf("expected corner cleared, got %q", ts.TileTerrains[3])
	}

	if err := ts.PaintCorner(4, 0, grass); !errors.Is(err, ErrTileIndex) {
		t.Errorf("expected ErrTileIndex, got %v", err)
	}
	if err := ts.PaintCorner(0, 4, grass); !errors.Is(err, ErrCornerIndex) {
		t.Errorf("expected ErrCornerIndex, got %v", err)
	}
	if err := ts.PaintCorner(0, 0, 5); !errors.Is(err, ErrTerrainIndex) {
		t.Errorf("expected ErrTerrainIndex, got %v", err)
	}
}

func TestPaintCornerUpdatesLookup(t *testing.T) {
	ts, _ := New("ground", 16, 1)
	ts.AddTerrain("grass")

	if _, ok := ts.TileFor(Uniform(0)); ok {
		t.Fatal("expected no match before painting")
	}
	for corner := range 4 {
		if err := ts.PaintCorner(0, corner, 0); err != nil {
			t.Fatalf("PaintCorner failed: %v", err)
		}
	}
	if idx, ok := ts.TileFor(Uniform(0)); !ok || idx != 0 {
		t.Errorf("TileFor after paint = %d, %v; want 0, true", idx, ok)
	}
}

func TestRemoveTerrainRemapsEncodings(t *testing.T) {
	ts := &Tileset{
		ColumnCount:  2,
		TerrainNames: []string{"grass", "sand", "water"},
		TileTerrains: []string{"0,1,2,-1", "2,2,2,2", "1,1,0,0", "-1,-1,-1,-1"},
	}

	if err := ts.RemoveTerrain(1); err != nil {
		t.Fatalf("RemoveTerrain failed: %v", err)
	}

	if len(ts.TerrainNames) != 2 || ts.TerrainNames[1] != "water" {
		t.Errorf("unexpected terrain names: %v", ts.TerrainNames)
	}

	want := []string{"0,-1,1,-1", "1,1,1,1", "-1,-1,0,0", "-1,-1,-1,-1"}
	for i, w := range want {
		if ts.TileTerrains[i] != w {
			t.Errorf("tile %d: expected %q, got %q", i, w, ts.TileTerrains[i])
		}
	}

	if err := ts.RemoveTerrain(5); !errors.Is(err, ErrTerrainIndex) {
		t.Errorf("expected ErrTerrainIndex, got %v", err)
	}
}

func TestLoadAndSave(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tileset.yaml")

	yamlContent := `
material: "ground_atlas"
tile_size: 64
column_count: 2
terrain_names: ["grass", "water"]
tile_terrains:
  - "0,0,0,0"
  - "1, 1, 1, 1"
`
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test tileset: %v", err)
	}

	ts, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ts.Material != "ground_atlas" || ts.TileSize != 64 || ts.ColumnCount != 2 {
		t.Errorf("unexpected header: %+v", ts)
	}
	if len(ts.TileTerrains) != 4 {
		t.Fatalf("expected padding to 4 tiles, got %d", len(ts.TileTerrains))
	}
	if ts.TileTerrains[1] != "1,1,1,1" {
		t.Errorf("expected canonical encoding, got %q", ts.TileTerrains[1])
	}

	out := filepath.Join(tmpDir, "nested", "copy.yaml")
	if err := ts.SaveTo(out); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}
	loaded, err := Load(out)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if idx, ok := loaded.TileFor(Uniform(1)); !ok || idx != 1 {
		t.Errorf("reloaded TileFor(1,1,1,1) = %d, %v; want 1, true", idx, ok)
	}
}

func TestLoadInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(path, []byte("column_count: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test tileset: %v", err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidColumnCount) {
		t.Errorf("expected ErrInvalidColumnCount, got %v", err)
	}
	if _, err := Load(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadRejectsMalformedCorners(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := []byte("column_count: 2\ntile_terrains:\n  - 0,0,0,0\n  - 0,0,x,0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write test tileset: %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrInvalidCorners) {
		t.Fatalf("expected ErrInvalidCorners, got %v", err)
	}
	if !strings.Contains(err.Error(), "tile 1") {
		t.Errorf("expected tile index in error, got %v", err)
	}

	ts := &Tileset{ColumnCount: 2, TileTerrains: []string{" 1, 1,1,1", "bad"}}
	if err := ts.Normalize(); !errors.Is(err, ErrInvalidCorners) {
		t.Errorf("expected ErrInvalidCorners, got %v", err)
	}
	if ts.TileTerrains[0] != " 1, 1,1,1" || len(ts.TileTerrains) != 2 {
		t.Errorf("expected tileset untouched, got %q", ts.TileTerrains)
	}
}

func TestTerrainNames(t *testing.T) {
	ts := &Tileset{ColumnCount: 1}
	// Decomposed input is stored composed
	i := ts.AddTerrain("  cafe\u0301 ")
	if ts.TerrainNames[i] != "caf\u00e9" {
		t.Errorf("expected NFC name, got %q", ts.TerrainNames[i])
	}
	ts.AddTerrain("sand")

	tests := []struct {
		name string
		want int
	}{
		{"caf\u00e9", 0},
		{"cafe\u0301", 0},
		{" sand", 1},
		{"water", -1},
	}
	for _, tt := range tests {
		if got := ts.TerrainIndex(tt.name); got != tt.want {
			t.Errorf("TerrainIndex(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}
