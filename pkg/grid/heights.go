package grid

import "github.com/go-gl/mathgl/mgl32"

// PointHeight returns the height of the first vertex at grid point p.
func (m *Mesh) PointHeight(ix Index, p Point) (float32, bool) {
	verts := ix.Lookup(p)
	if len(verts) == 0 {
		return 0, false
	}
	return m.Vertices[verts[0]].Y(), true
}

// HeightAt returns the bilinearly interpolated surface height at a
// continuous (x, z) position. Positions outside the grid are clamped to
// the nearest edge cell.
func (m *Mesh) HeightAt(x, z float32) float32 {
	if m.Empty() {
		return 0
	}

	cellX := int(x)
	cellZ := int(z)

	// Clamp to valid range
	if cellX < 0 {
		cellX = 0
	}
	if cellZ < 0 {
		cellZ = 0
	}
	if cellX >= m.Cols {
		cellX = m.Cols - 1
	}
	if cellZ >= m.Rows {
		cellZ = m.Rows - 1
	}

	fracX := mgl32.Clamp(x-float32(cellX), 0, 1)
	fracZ := mgl32.Clamp(z-float32(cellZ), 0, 1)

	// Corners: 0=(x,z) 1=(x+1,z) 2=(x+1,z+1) 3=(x,z+1)
	base := m.VertexBase(cellX, cellZ)
	v := m.Vertices[base : base+VerticesPerCell]

	near := v[0].Y()*(1-fracX) + v[1].Y()*fracX
	far := v[3].Y()*(1-fracX) + v[2].Y()*fracX
	return near*(1-fracZ) + far*fracZ
}

// HeightRange returns the minimum and maximum vertex height.
func (m *Mesh) HeightRange() (lo, hi float32) {
	if m.Empty() {
		return 0, 0
	}
	lo, hi = m.Vertices[0].Y(), m.Vertices[0].Y()
	for _, v := range m.Vertices[1:] {
		y := v.Y()
		mgl32.SetMin(&lo, &y)
		mgl32.SetMax(&hi, &y)
	}
	return lo, hi
}
