// Package grid builds and maintains the quad-grid ground mesh: vertex, UV,
// triangle and terrain buffers, the spatial index over grid points, and
// resizing with data preservation.
package grid

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/groundmesh/pkg/terrain"
)

// VerticesPerCell is the number of private vertices each cell owns.
const VerticesPerCell = 4

// Point is an integer grid location. It addresses grid points
// (shared cell corners) and cells alike.
type Point struct {
	X, Z int
}

// Snap rounds a continuous coordinate half-up to the nearest grid line.
func Snap(v float32) int {
	return int(math.Floor(float64(v) + 0.5))
}

// CellFill is the terrain and tile assigned to cells that carry no painted data.
type CellFill struct {
	Corners terrain.Corners
	Tile    int // Atlas tile for the corners; negative keeps tile 0
}

// Mesh holds the editable buffers of a ground mesh.
//
// Cell (x, z) owns vertices [4*(z*Cols+x), +3] in corner order
// (x,z), (x+1,z), (x+1,z+1), (x,z+1). Terrains is nil unless the mesh
// was built with a CellFill.
type Mesh struct {
	Cols         int
	Rows         int
	AtlasColumns int

	Vertices  []mgl32.Vec3
	UV        []mgl32.Vec2
	Triangles []uint32
	Terrains  []terrain.Corners

	Fill *CellFill
}

// Cells returns the number of cells.
func (m *Mesh) Cells() int {
	return m.Cols * m.Rows
}

// Contains reports whether cell (x, z) lies inside the grid.
func (m *Mesh) Contains(x, z int) bool {
	return x >= 0 && z >= 0 && x < m.Cols && z < m.Rows
}

// CellIndex returns the flat index of cell (x, z).
func (m *Mesh) CellIndex(x, z int) int {
	return z*m.Cols + x
}

// VertexBase returns the index of the first vertex of cell (x, z).
func (m *Mesh) VertexBase(x, z int) int {
	return m.CellIndex(x, z) * VerticesPerCell
}

// HasTerrain reports whether the terrain buffer is active.
func (m *Mesh) HasTerrain() bool {
	return m.Terrains != nil
}

// Empty reports whether the mesh holds no cells.
func (m *Mesh) Empty() bool {
	return m == nil || len(m.Vertices) == 0
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Cols:         m.Cols,
		Rows:         m.Rows,
		AtlasColumns: m.AtlasColumns,
		Vertices:     append([]mgl32.Vec3(nil), m.Vertices...),
		UV:           append([]mgl32.Vec2(nil), m.UV...),
		Triangles:    append([]uint32(nil), m.Triangles...),
	}
	if m.Terrains != nil {
		c.Terrains = append(make([]terrain.Corners, 0, len(m.Terrains)), m.Terrains...)
	}
	if m.Fill != nil {
		fill := *m.Fill
		c.Fill = &fill
	}
	return c
}

// SetCellUV overwrites the 4 UV corners of a cell.
func (m *Mesh) SetCellUV(cell int, uv [4]mgl32.Vec2) {
	copy(m.UV[cell*VerticesPerCell:], uv[:])
}

// CellUV returns the 4 UV corners of a cell.
func (m *Mesh) CellUV(cell int) [4]mgl32.Vec2 {
	var uv [4]mgl32.Vec2
	copy(uv[:], m.UV[cell*VerticesPerCell:])
	return uv
}
