package brush

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/groundmesh/pkg/grid"
	"github.com/Faultbox/groundmesh/pkg/terrain"
)

// Target is the mesh state a stroke is planned against.
type Target struct {
	Mesh    *grid.Mesh
	Index   grid.Index
	Tileset *terrain.Tileset // Required by the terrain brush only
}

// HeightEdit sets the height of one vertex.
type HeightEdit struct {
	Vertex int
	Height float32
}

// CellEdit rewrites the UVs of one cell, and its terrain corners when
// HasTerrain is set.
type CellEdit struct {
	Cell       int
	UV         [4]mgl32.Vec2
	Corners    terrain.Corners
	HasTerrain bool
}

// Delta is the set of buffer writes a stroke produces.
type Delta struct {
	Heights []HeightEdit
	Cells   []CellEdit
}

// Empty reports whether the delta writes nothing.
func (d Delta) Empty() bool {
	return len(d.Heights) == 0 && len(d.Cells) == 0
}

// Apply writes the delta into m and returns the number of vertices and
// cells it touched.
func (d Delta) Apply(m *grid.Mesh) (vertices, cells int) {
	for _, e := range d.Heights {
		m.Vertices[e.Vertex][1] = e.Height
	}
	for _, e := range d.Cells {
		m.SetCellUV(e.Cell, e.UV)
		if e.HasTerrain && m.HasTerrain() {
			m.Terrains[e.Cell] = e.Corners
		}
	}
	return len(d.Heights), len(d.Cells)
}

// Offset returns the footprint offset of column or row i for a brush of
// size n: -n/2 .. n-1-n/2.
func Offset(i, n int) int {
	return i - n/2
}

// pointAt returns the grid point under footprint entry (col, row).
func pointAt(cursor mgl32.Vec3, col, row, size int) grid.Point {
	return grid.Point{
		X: grid.Snap(cursor.X() + float32(Offset(col, size))),
		Z: grid.Snap(cursor.Z() + float32(Offset(row, size))),
	}
}

// cellAt returns the cell under footprint entry (col, row). Cells sit half
// a unit off grid points so the brush aligns on cell centers.
func cellAt(cursor mgl32.Vec3, col, row, size int) grid.Point {
	return grid.Point{
		X: grid.Snap(cursor.X() + float32(Offset(col, size)) + 0.5),
		Z: grid.Snap(cursor.Z() + float32(Offset(row, size)) + 0.5),
	}
}

// Points returns the N x N grid points of the footprint, row by row.
func Points(cursor mgl32.Vec3, size int) []grid.Point {
	pts := make([]grid.Point, 0, size*size)
	for row := range size {
		for col := range size {
			pts = append(pts, pointAt(cursor, col, row, size))
		}
	}
	return pts
}

// Cells returns the (N-1) x (N-1) cells of the footprint, row by row.
// A size below 2 has no cells.
func Cells(cursor mgl32.Vec3, size int) []grid.Point {
	if size < 2 {
		return nil
	}
	n := size - 1
	cells := make([]grid.Point, 0, n*n)
	for row := range n {
		for col := range n {
			cells = append(cells, cellAt(cursor, col, row, size))
		}
	}
	return cells
}

// Plan computes the writes of one brush application at cursor. It does not
// modify the target. Points or cells outside the grid are skipped.
func Plan(b Brush, cursor mgl32.Vec3, t Target) Delta {
	if t.Mesh.Empty() {
		return Delta{}
	}
	switch b.Mode {
	case ModeHeight:
		return planHeight(b, cursor, t)
	case ModeTile:
		return planTile(b, cursor, t)
	case ModeTerrain:
		return planTerrain(b, cursor, t)
	default:
		return Delta{}
	}
}

func planHeight(b Brush, cursor mgl32.Vec3, t Target) Delta {
	var d Delta
	for _, p := range Points(cursor, b.Size) {
		for _, i := range t.Index.Lookup(p) {
			d.Heights = append(d.Heights, HeightEdit{Vertex: i, Height: b.Height})
		}
	}
	return d
}

func planTile(b Brush, cursor mgl32.Vec3, t Target) Delta {
	m := t.Mesh
	if b.Tile < 0 {
		return Delta{}
	}
	uv := grid.ComputeUV(b.Tile, m.AtlasColumns, b.Rotation)

	var d Delta
	for _, c := range Cells(cursor, b.Size) {
		if !m.Contains(c.X, c.Z) {
			continue
		}
		d.Cells = append(d.Cells, CellEdit{Cell: m.CellIndex(c.X, c.Z), UV: uv})
	}
	return d
}

// neighborCorners lists the corners of a neighbor cell that touch a painted
// cell, by the neighbor's direction (dx+1, dz+1) from it.
var neighborCorners = [3][3][]int{
	// dz = -1
	{{1}, {0, 1}, {0}},
	// dz = 0
	{{1, 3}, {0, 1, 2, 3}, {0, 2}},
	// dz = 1
	{{3}, {2, 3}, {2}},
}

func planTerrain(b Brush, cursor mgl32.Vec3, t Target) Delta {
	m, ts := t.Mesh, t.Tileset
	if ts == nil || !m.HasTerrain() {
		return Delta{}
	}
	if b.Terrain < 0 || b.Terrain >= len(ts.TerrainNames) {
		return Delta{}
	}

	// Writes made earlier in the same stroke must be visible to later
	// neighbors, so corners are read through an overlay.
	overlay := make(map[int]terrain.Corners)
	pos := make(map[int]int)
	var d Delta

	for _, c := range Cells(cursor, b.Size) {
		if !m.Contains(c.X, c.Z) {
			continue
		}
		for dz := -1; dz <= 1; dz++ {
			for dx := -1; dx <= 1; dx++ {
				nx, nz := c.X+dx, c.Z+dz
				if !m.Contains(nx, nz) {
					continue
				}
				cell := m.CellIndex(nx, nz)

				corners, ok := overlay[cell]
				if !ok {
					corners = m.Terrains[cell]
				}
				corners = corners.Fill(b.Terrain)
				for _, k := range neighborCorners[dz+1][dx+1] {
					corners[k] = b.Terrain
				}

				tile, ok := ts.TileFor(corners)
				if !ok {
					continue
				}
				overlay[cell] = corners

				edit := CellEdit{
					Cell:       cell,
					UV:         grid.ComputeUV(tile, m.AtlasColumns, grid.Rot0),
					Corners:    corners,
					HasTerrain: true,
				}
				if i, seen := pos[cell]; seen {
					d.Cells[i] = edit
					continue
				}
				pos[cell] = len(d.Cells)
				d.Cells = append(d.Cells, edit)
			}
		}
	}
	return d
}
