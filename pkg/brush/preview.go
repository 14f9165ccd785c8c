package brush

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/groundmesh/pkg/grid"
)

// Direction is how the height brush would move a grid point.
type Direction int

// Handle directions.
const (
	Level Direction = iota
	Raise
	Lower
)

// Handle marks one grid point under the height brush.
type Handle struct {
	Point     grid.Point
	Current   float32 // 0 when no vertex sits on the point
	Target    float32
	Direction Direction
}

// Segment is a line between two points in mesh space.
type Segment [2]mgl32.Vec3

// Overlay is what a host draws to show the brush footprint.
type Overlay struct {
	Handles []Handle
	Current []Segment // Footprint outline at the current surface heights
	Target  []Segment // Footprint outline at the brush height (height mode only)
}

// Preview builds the brush overlay at cursor. It reads the mesh but never
// writes to it.
func Preview(b Brush, cursor mgl32.Vec3, t Target) Overlay {
	var o Overlay
	if t.Mesh.Empty() {
		return o
	}

	switch {
	case b.Mode == ModeHeight:
		for row := range b.Size {
			for col := range b.Size {
				p := pointAt(cursor, col, row, b.Size)
				cur := currentHeight(t, p)
				o.Handles = append(o.Handles, Handle{
					Point:     p,
					Current:   cur,
					Target:    b.Height,
					Direction: directionOf(cur, b.Height),
				})
				if row+1 >= b.Size || col+1 >= b.Size {
					continue
				}
				o.Current = appendSquare(o.Current, p, cur)
				o.Target = appendSquare(o.Target, p, b.Height)
			}
		}
	case b.Mode.CellAligned():
		for _, c := range Cells(cursor, b.Size) {
			o.Current = appendSquare(o.Current, c, currentHeight(t, c))
		}
	}
	return o
}

func currentHeight(t Target, p grid.Point) float32 {
	h, _ := t.Mesh.PointHeight(t.Index, p)
	return h
}

func directionOf(current, target float32) Direction {
	switch {
	case target > current:
		return Raise
	case target < current:
		return Lower
	default:
		return Level
	}
}

// appendSquare appends the unit square outline with lower corner p at height y.
func appendSquare(segs []Segment, p grid.Point, y float32) []Segment {
	x0, z0 := float32(p.X), float32(p.Z)
	x1, z1 := x0+1, z0+1
	return append(segs,
		Segment{{x0, y, z0}, {x1, y, z0}},
		Segment{{x1, y, z0}, {x1, y, z1}},
		Segment{{x1, y, z1}, {x0, y, z1}},
		Segment{{x0, y, z1}, {x0, y, z0}},
	)
}
