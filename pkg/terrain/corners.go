// Package terrain provides terrain corner labels and the tileset descriptor
// used to resolve corner blends into atlas tiles.
package terrain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Unset marks a corner with no terrain.
const Unset = -1

// Corner encoding errors.
var (
	ErrInvalidCorners = errors.New("invalid terrain corners: expected 4 comma-separated integers")
)

// Corners holds the terrain label of each corner of a cell.
// Index order: 0=NE, 1=NW, 2=SE, 3=SW.
type Corners [4]int

// NoTerrain is the encoding of a cell with no terrain on any corner.
var NoTerrain = Corners{Unset, Unset, Unset, Unset}

// Uniform returns corners all labelled with terrain t.
func Uniform(t int) Corners {
	return Corners{t, t, t, t}
}

// String encodes the corners as "a,b,c,d".
func (c Corners) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", c[0], c[1], c[2], c[3])
}

// Fill replaces every unset corner with t.
func (c Corners) Fill(t int) Corners {
	for i := range c {
		if c[i] == Unset {
			c[i] = t
		}
	}
	return c
}

// IsUnset reports whether no corner carries a terrain.
func (c Corners) IsUnset() bool {
	return c == NoTerrain
}

// ParseCorners decodes an "a,b,c,d" encoding.
func ParseCorners(s string) (Corners, error) {
	var c Corners
	parts := strings.Split(s, ",")
	if len(parts) != len(c) {
		return c, fmt.Errorf("%w: %q", ErrInvalidCorners, s)
	}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < Unset {
			return c, fmt.Errorf("%w: %q", ErrInvalidCorners, s)
		}
		c[i] = v
	}
	return c, nil
}
