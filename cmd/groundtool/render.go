package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Faultbox/groundmesh/pkg/editor"
	"github.com/Faultbox/groundmesh/pkg/grid"
)

func printSummary(w io.Writer, ed *editor.Editor) {
	m := ed.Mesh()
	if m.Empty() {
		fmt.Fprintln(w, "Mesh:     (none)")
		return
	}

	lo, hi := m.HeightRange()
	fmt.Fprintf(w, "Mesh:     %d x %d (%d cells)\n", m.Cols, m.Rows, m.Cells())
	fmt.Fprintf(w, "Vertices: %d\n", len(m.Vertices))
	fmt.Fprintf(w, "Atlas:    %d x %d tiles\n", m.AtlasColumns, m.AtlasColumns)
	fmt.Fprintf(w, "Heights:  %.2f .. %.2f\n", lo, hi)
	fmt.Fprintf(w, "History:  undo=%v redo=%v\n", ed.CanUndo(), ed.CanRedo())

	if ts := ed.Tileset(); ts != nil {
		fmt.Fprintf(w, "Tileset:  %s (%d terrains)\n", ts.Material, len(ts.TerrainNames))
	}
	if m.HasTerrain() {
		counts := make(map[string]int)
		for _, c := range m.Terrains {
			counts[c.String()]++
		}
		fmt.Fprintf(w, "Blends:   %d distinct\n", len(counts))
	}
}

// printHeightMap writes one row per grid line z, one column per grid point x.
func printHeightMap(w io.Writer, m *grid.Mesh, ix grid.Index) {
	if m.Empty() {
		return
	}

	var b strings.Builder
	b.WriteString("  z\\x")
	for x := 0; x <= m.Cols; x++ {
		fmt.Fprintf(&b, "%6d", x)
	}
	b.WriteByte('\n')

	for z := 0; z <= m.Rows; z++ {
		fmt.Fprintf(&b, "%5d", z)
		for x := 0; x <= m.Cols; x++ {
			h, _ := m.PointHeight(ix, grid.Point{X: x, Z: z})
			fmt.Fprintf(&b, "%6.1f", h)
		}
		b.WriteByte('\n')
	}
	io.WriteString(w, b.String())
}
