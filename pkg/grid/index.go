package grid

import "github.com/go-gl/mathgl/mgl32"

// Index groups co-located vertices by grid point. Cells do not share
// vertices, so up to 4 vertices sit on each interior grid point.
type Index map[Point][]int

// PointOf returns the grid point of a vertex, rounding x and z so that
// accumulated float error cannot split a group.
func PointOf(v mgl32.Vec3) Point {
	return Point{X: Snap(v.X()), Z: Snap(v.Z())}
}

// NewIndex builds the index over a vertex buffer. It must be rebuilt when
// x/z positions change; height edits leave it valid.
func NewIndex(vertices []mgl32.Vec3) Index {
	idx := make(Index, len(vertices)/VerticesPerCell+1)
	for i, v := range vertices {
		p := PointOf(v)
		idx[p] = append(idx[p], i)
	}
	return idx
}

// Lookup returns the vertices at p, or nil when no vertex sits there.
func (ix Index) Lookup(p Point) []int {
	return ix[p]
}
