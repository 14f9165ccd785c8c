package grid

import "github.com/go-gl/mathgl/mgl32"

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Size returns the extent of the box on each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Surface is a render-ready copy of the mesh: positions, UVs and indices
// plus recomputed normals and bounds.
type Surface struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UV        []mgl32.Vec2
	Indices   []uint32
	Bounds    Bounds
}

var up = mgl32.Vec3{0, 1, 0}

// Surface builds the render payload for the current buffers. The returned
// slices are copies; the mesh can keep changing after the call.
func (m *Mesh) Surface() *Surface {
	s := &Surface{
		Positions: append([]mgl32.Vec3(nil), m.Vertices...),
		Normals:   make([]mgl32.Vec3, len(m.Vertices)),
		UV:        append([]mgl32.Vec2(nil), m.UV...),
		Indices:   append([]uint32(nil), m.Triangles...),
	}
	if len(m.Vertices) == 0 {
		return s
	}

	s.Bounds = Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices {
		updateBounds(&s.Bounds, v)
	}

	// Quad normal from the cross product of its diagonals
	for base := 0; base+VerticesPerCell <= len(m.Vertices); base += VerticesPerCell {
		v := m.Vertices[base : base+VerticesPerCell]
		normal := normalize(v[2].Sub(v[0]).Cross(v[1].Sub(v[3])))
		for i := range VerticesPerCell {
			s.Normals[base+i] = normal
		}
	}

	SmoothNormals(s.Positions, s.Normals)
	return s
}

// SmoothNormals averages normals at shared vertex positions.
// This eliminates hard edges between cells.
func SmoothNormals(positions, normals []mgl32.Vec3) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i, p := range positions {
		key := [3]int32{
			int32(p[0] / epsilon),
			int32(p[1] / epsilon),
			int32(p[2] / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, indices := range posMap {
		if len(indices) < 2 {
			continue
		}

		var sum mgl32.Vec3
		for _, idx := range indices {
			sum = sum.Add(normals[idx])
		}

		avg := normalize(sum)
		for _, idx := range indices {
			normals[idx] = avg
		}
	}
}

func updateBounds(b *Bounds, p mgl32.Vec3) {
	for axis := range 3 {
		mgl32.SetMin(&b.Min[axis], &p[axis])
		mgl32.SetMax(&b.Max[axis], &p[axis])
	}
}

func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < 0.0001 {
		return up
	}
	return v.Normalize()
}
