package grid

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// NoiseParams configures procedural seeding of grid point heights.
type NoiseParams struct {
	Seed      int64
	Alpha     float64 // Weight falloff between octaves
	Beta      float64 // Frequency step between octaves
	Octaves   int32
	Scale     float64 // Grid units to noise space
	Amplitude float32 // Peak height
	Step      float32 // Heights snap to multiples of Step; 0 disables snapping
}

// DefaultNoiseParams returns gentle rolling hills.
func DefaultNoiseParams() NoiseParams {
	return NoiseParams{
		Seed:      1,
		Alpha:     2,
		Beta:      2,
		Octaves:   3,
		Scale:     0.1,
		Amplitude: 4,
		Step:      0.5,
	}
}

// SeedHeights sets every grid point to a Perlin noise height. All vertices
// on a point receive the same value, so the surface stays closed.
func (m *Mesh) SeedHeights(ix Index, p NoiseParams) {
	gen := perlin.NewPerlin(p.Alpha, p.Beta, p.Octaves, p.Seed)
	for pt, verts := range ix {
		n := gen.Noise2D(float64(pt.X)*p.Scale, float64(pt.Z)*p.Scale)
		h := float32(n) * p.Amplitude
		if p.Step > 0 {
			h = float32(math.Round(float64(h/p.Step))) * p.Step
		}
		for _, i := range verts {
			m.Vertices[i][1] = h
		}
	}
}
