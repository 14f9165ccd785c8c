package grid

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/groundmesh/pkg/terrain"
)

// Rotation is a UV rotation in degrees: 0, 90, 180 or 270.
type Rotation int

// Supported rotations.
const (
	Rot0   Rotation = 0
	Rot90  Rotation = 90
	Rot180 Rotation = 180
	Rot270 Rotation = 270
)

// quarterTurns maps the rotation to a corner shift. Unknown values
// behave as 270.
func (r Rotation) quarterTurns() int {
	switch r {
	case Rot0:
		return 0
	case Rot90:
		return 1
	case Rot180:
		return 2
	default:
		return 3
	}
}

// CW returns the next rotation clockwise, wrapping 270 to 0.
func (r Rotation) CW() Rotation {
	return Rotation((r.quarterTurns() + 1) % 4 * 90)
}

// CCW returns the previous rotation, wrapping 0 to 270.
func (r Rotation) CCW() Rotation {
	return Rotation((r.quarterTurns() + 3) % 4 * 90)
}

// Build creates a flat cols x rows grid with every cell showing tile 0.
// atlasColumns must be positive; cols and rows are not validated.
func Build(cols, rows, atlasColumns int) *Mesh {
	cells := cols * rows
	m := &Mesh{
		Cols:         cols,
		Rows:         rows,
		AtlasColumns: atlasColumns,
		Vertices:     make([]mgl32.Vec3, 0, cells*VerticesPerCell),
		UV:           make([]mgl32.Vec2, 0, cells*VerticesPerCell),
		Triangles:    make([]uint32, 0, cells*6),
	}

	uv := ComputeUV(0, atlasColumns, Rot0)
	var i uint32
	for z := range rows {
		for x := range cols {
			fx, fz := float32(x), float32(z)
			m.Vertices = append(m.Vertices,
				mgl32.Vec3{fx, 0, fz},
				mgl32.Vec3{fx + 1, 0, fz},
				mgl32.Vec3{fx + 1, 0, fz + 1},
				mgl32.Vec3{fx, 0, fz + 1},
			)
			m.UV = append(m.UV, uv[:]...)

			// Two triangles per cell: (0,3,2) and (0,2,1)
			m.Triangles = append(m.Triangles,
				i, i+3, i+2,
				i, i+2, i+1,
			)
			i += VerticesPerCell
		}
	}

	return m
}

// BuildTerrain creates a grid with an active terrain buffer. Every cell
// gets fill.Corners, and shows fill.Tile when it is not negative.
func BuildTerrain(cols, rows, atlasColumns int, fill CellFill) *Mesh {
	m := Build(cols, rows, atlasColumns)
	m.AttachTerrain(fill)
	return m
}

// AttachTerrain activates the terrain buffer with every cell set to
// fill.Corners. UVs are reset to fill.Tile on the current atlas, or to
// tile 0 when the fill has no tile, so the mesh matches a fresh
// BuildTerrain.
func (m *Mesh) AttachTerrain(fill CellFill) {
	m.Fill = &fill
	m.Terrains = make([]terrain.Corners, m.Cells())
	for cell := range m.Terrains {
		m.Terrains[cell] = fill.Corners
	}

	tile := max(fill.Tile, 0)
	uv := ComputeUV(tile, m.AtlasColumns, Rot0)
	for cell := range m.Cells() {
		m.SetCellUV(cell, uv)
	}
}

// DetachTerrain drops the terrain buffer.
func (m *Mesh) DetachTerrain() {
	m.Fill = nil
	m.Terrains = nil
}

// FillFor returns the default cell fill for a tileset: its default corners
// and the atlas tile they resolve to (-1 when none matches).
func FillFor(ts *terrain.Tileset) CellFill {
	corners := ts.DefaultCorners()
	tile, ok := ts.TileFor(corners)
	if !ok {
		tile = -1
	}
	return CellFill{Corners: corners, Tile: tile}
}

// ComputeUV returns the 4 corner UVs of atlas tile index, rotated.
// The atlas is addressed as x = index mod atlasColumns, y = index / atlasColumns.
func ComputeUV(index, atlasColumns int, rot Rotation) [4]mgl32.Vec2 {
	c := float32(atlasColumns)
	x := float32(index % atlasColumns)
	y := float32(index / atlasColumns)

	base := [4]mgl32.Vec2{
		{x / c, y / c},
		{(x + 1) / c, y / c},
		{(x + 1) / c, (y + 1) / c},
		{x / c, (y + 1) / c},
	}

	shift := rot.quarterTurns()
	var uv [4]mgl32.Vec2
	for i := range uv {
		uv[i] = base[(i+shift)%4]
	}
	return uv
}

// ResetUV assigns tile 0 at rotation 0 to every cell.
func (m *Mesh) ResetUV() {
	uv := ComputeUV(0, m.AtlasColumns, Rot0)
	for cell := range m.Cells() {
		m.SetCellUV(cell, uv)
	}
}
