package terrain

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Tileset errors.
var (
	ErrInvalidColumnCount = errors.New("tileset column count must be positive")
	ErrInvalidTileSize    = errors.New("tileset tile size must not be negative")
	ErrTerrainIndex       = errors.New("terrain index out of range")
	ErrTileIndex          = errors.New("tile index out of range")
	ErrCornerIndex        = errors.New("corner index out of range")
)

// Tileset describes a texture atlas and the terrain blend each of its tiles depicts.
type Tileset struct {
	Material     string   `yaml:"material"`
	TileSize     int      `yaml:"tile_size"`
	ColumnCount  int      `yaml:"column_count"`  // Tiles per atlas row
	TerrainNames []string `yaml:"terrain_names"` // Terrain labels, indexed by category
	TileTerrains []string `yaml:"tile_terrains"` // Corner encoding per atlas tile

	lookup map[Corners]int
}

// New creates a tileset for a columnCount x columnCount atlas with every tile unassigned.
func New(material string, tileSize, columnCount int) (*Tileset, error) {
	ts := &Tileset{
		Material:    material,
		TileSize:    tileSize,
		ColumnCount: columnCount,
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	if err := ts.Normalize(); err != nil {
		return nil, err
	}
	return ts, nil
}

// Validate checks the atlas geometry.
func (t *Tileset) Validate() error {
	if t.ColumnCount <= 0 {
		return ErrInvalidColumnCount
	}
	if t.TileSize < 0 {
		return ErrInvalidTileSize
	}
	return nil
}

// TileCount returns the number of tiles in the atlas.
func (t *Tileset) TileCount() int {
	return t.ColumnCount * t.ColumnCount
}

// HasTerrains reports whether any terrain category is defined.
func (t *Tileset) HasTerrains() bool {
	return len(t.TerrainNames) > 0
}

// DefaultCorners returns the corner labels of a freshly built cell.
func (t *Tileset) DefaultCorners() Corners {
	if t.HasTerrains() {
		return Uniform(0)
	}
	return NoTerrain
}

// Normalize pads TileTerrains to one entry per atlas tile and rewrites
// every entry in canonical form. A malformed entry is reported with its
// tile index and leaves the tileset unchanged.
func (t *Tileset) Normalize() error {
	corners := make([]Corners, len(t.TileTerrains))
	for i, s := range t.TileTerrains {
		c, err := ParseCorners(s)
		if err != nil {
			return fmt.Errorf("tile %d: %w", i, err)
		}
		corners[i] = c
	}
	for i, c := range corners {
		t.TileTerrains[i] = c.String()
	}
	for len(t.TileTerrains) < t.TileCount() {
		t.TileTerrains = append(t.TileTerrains, NoTerrain.String())
	}
	t.lookup = nil
	return nil
}

// TileFor returns the first atlas tile whose corner encoding equals c.
// Call Reindex after editing TileTerrains directly.
func (t *Tileset) TileFor(c Corners) (int, bool) {
	if t.lookup == nil {
		t.Reindex()
	}
	idx, ok := t.lookup[c]
	return idx, ok
}

// Reindex rebuilds the reverse lookup from TileTerrains.
func (t *Tileset) Reindex() {
	t.lookup = make(map[Corners]int, len(t.TileTerrains))
	for i, s := range t.TileTerrains {
		c, err := ParseCorners(s)
		if err != nil {
			continue
		}
		if _, dup := t.lookup[c]; !dup {
			t.lookup[c] = i
		}
	}
}

// TileCorners returns the decoded corners of an atlas tile.
func (t *Tileset) TileCorners(tile int) (Corners, error) {
	if tile < 0 || tile >= len(t.TileTerrains) {
		return NoTerrain, fmt.Errorf("%w: %d", ErrTileIndex, tile)
	}
	return ParseCorners(t.TileTerrains[tile])
}

// AddTerrain appends a terrain category and returns its index.
// Names are trimmed and stored in NFC form.
func (t *Tileset) AddTerrain(name string) int {
	t.TerrainNames = append(t.TerrainNames, normalizeName(name))
	return len(t.TerrainNames) - 1
}

// TerrainIndex returns the index of the named category, or -1.
func (t *Tileset) TerrainIndex(name string) int {
	name = normalizeName(name)
	for i, n := range t.TerrainNames {
		if norm.NFC.String(n) == name {
			return i
		}
	}
	return -1
}

func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// RemoveTerrain deletes a terrain category. Tile corners labelled with it
// become unset and higher labels shift down to keep encodings consistent.
func (t *Tileset) RemoveTerrain(index int) error {
	if index < 0 || index >= len(t.TerrainNames) {
		return fmt.Errorf("%w: %d", ErrTerrainIndex, index)
	}
	t.TerrainNames = append(t.TerrainNames[:index], t.TerrainNames[index+1:]...)

	for i, s := range t.TileTerrains {
		c, err := ParseCorners(s)
		if err != nil {
			continue
		}
		for j, label := range c {
			switch {
			case label == index:
				c[j] = Unset
			case label > index:
				c[j] = label - 1
			}
		}
		t.TileTerrains[i] = c.String()
	}
	t.lookup = nil
	return nil
}

// PaintCorner labels one corner of an atlas tile with a terrain.
func (t *Tileset) PaintCorner(tile, corner, terrain int) error {
	if terrain < 0 || terrain >= len(t.TerrainNames) {
		return fmt.Errorf("%w: %d", ErrTerrainIndex, terrain)
	}
	return t.setCorner(tile, corner, func(int) int { return terrain })
}

// EraseCorner clears one corner of an atlas tile if it holds the given terrain.
func (t *Tileset) EraseCorner(tile, corner, terrain int) error {
	return t.setCorner(tile, corner, func(cur int) int {
		if cur == terrain {
			return Unset
		}
		return cur
	})
}

func (t *Tileset) setCorner(tile, corner int, fn func(int) int) error {
	if corner < 0 || corner >= len(Corners{}) {
		return fmt.Errorf("%w: %d", ErrCornerIndex, corner)
	}
	c, err := t.TileCorners(tile)
	if err != nil {
		return err
	}
	c[corner] = fn(c[corner])
	t.TileTerrains[tile] = c.String()
	t.lookup = nil
	return nil
}

// Parse decodes a tileset from YAML and normalizes it.
func Parse(data []byte) (*Tileset, error) {
	var ts Tileset
	if err := yaml.Unmarshal(data, &ts); err != nil {
		return nil, fmt.Errorf("decoding tileset: %w", err)
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	if err := ts.Normalize(); err != nil {
		return nil, err
	}
	return &ts, nil
}

// Load reads a tileset YAML file.
func Load(path string) (*Tileset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ts, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading tileset %s: %w", path, err)
	}
	return ts, nil
}

// SaveTo writes the tileset as YAML.
func (t *Tileset) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
