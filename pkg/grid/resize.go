package grid

// Resize rebuilds old at cols x rows, keeping heights at every grid point
// both grids share and UV/terrain data of every cell both grids share.
// Cells that only exist in the new grid get the builder defaults.
func Resize(old *Mesh, cols, rows int) *Mesh {
	var m *Mesh
	if old.Fill != nil {
		m = BuildTerrain(cols, rows, old.AtlasColumns, *old.Fill)
	} else {
		m = Build(cols, rows, old.AtlasColumns)
	}

	oldIndex := NewIndex(old.Vertices)
	newIndex := NewIndex(m.Vertices)
	for p, targets := range newIndex {
		sources, ok := oldIndex[p]
		if !ok || len(sources) == 0 {
			continue
		}
		src := old.Vertices[sources[len(sources)-1]]
		for _, i := range targets {
			m.Vertices[i][1] = src.Y()
		}
	}

	keepCols := min(old.Cols, cols)
	keepRows := min(old.Rows, rows)
	for z := range keepRows {
		for x := range keepCols {
			from := old.CellIndex(x, z)
			to := m.CellIndex(x, z)
			m.SetCellUV(to, old.CellUV(from))
			if m.Terrains != nil && old.Terrains != nil {
				m.Terrains[to] = old.Terrains[from]
			}
		}
	}

	return m
}
