// Package brush implements the ground mesh brushes: height, UV tile and
// terrain corner painting over an N x N footprint centered on a cursor.
//
// Planning is pure. Plan turns a brush, a cursor and the current mesh into a
// Delta, which the caller applies once it has recorded history.
package brush

import (
	"github.com/Faultbox/groundmesh/pkg/grid"
)

// Brush limits.
const (
	MinSize           = 1
	DefaultMaxSize    = 20
	DefaultHeightUnit = 0.5
)

// Mode selects what a stroke edits.
type Mode int

// Brush modes.
const (
	ModeLock Mode = iota
	ModeHeight
	ModeTile
	ModeTerrain
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeLock:
		return "lock"
	case ModeHeight:
		return "height"
	case ModeTile:
		return "tile"
	case ModeTerrain:
		return "terrain"
	default:
		return "unknown"
	}
}

// ParseMode returns the mode with the given name.
func ParseMode(s string) (Mode, bool) {
	for m := ModeLock; m <= ModeTerrain; m++ {
		if m.String() == s {
			return m, true
		}
	}
	return ModeLock, false
}

// CellAligned reports whether the mode paints cells rather than grid points.
func (m Mode) CellAligned() bool {
	return m == ModeTile || m == ModeTerrain
}

// Brush is the value a stroke is planned from.
type Brush struct {
	Mode     Mode
	Size     int
	Height   float32       // Target height of the height brush
	Tile     int           // Atlas tile of the tile brush
	Terrain  int           // Terrain category of the terrain brush
	Rotation grid.Rotation // Applies to the tile brush only
}

// Session holds the brush settings of an editing session and the state of
// the gesture in progress.
type Session struct {
	Brush

	MaxSize    int
	HeightUnit float32

	stroking bool
	dirty    bool
}

// NewSession creates a session in height mode with a size 1 brush.
// Non-positive limits select the defaults.
func NewSession(maxSize int, heightUnit float32) *Session {
	if maxSize < MinSize {
		maxSize = DefaultMaxSize
	}
	if heightUnit <= 0 {
		heightUnit = DefaultHeightUnit
	}
	return &Session{
		Brush: Brush{
			Mode: ModeHeight,
			Size: MinSize,
		},
		MaxSize:    maxSize,
		HeightUnit: heightUnit,
	}
}

// SetSize sets the brush size, clamped to [MinSize, MaxSize].
func (s *Session) SetSize(n int) {
	s.Size = max(MinSize, min(s.MaxSize, n))
}

// Grow increases the brush size by one.
func (s *Session) Grow() {
	s.SetSize(s.Size + 1)
}

// Shrink decreases the brush size by one.
func (s *Session) Shrink() {
	s.SetSize(s.Size - 1)
}

// Raise steps the brush height up one unit.
func (s *Session) Raise() {
	s.Height += s.HeightUnit
}

// Lower steps the brush height down one unit.
func (s *Session) Lower() {
	s.Height -= s.HeightUnit
}

// ResetHeight returns the brush height to ground level.
func (s *Session) ResetHeight() {
	s.Height = 0
}

// RotateCW turns the tile rotation 90 degrees clockwise.
func (s *Session) RotateCW() {
	s.Rotation = s.Rotation.CW()
}

// RotateCCW turns the tile rotation 90 degrees counter-clockwise.
func (s *Session) RotateCCW() {
	s.Rotation = s.Rotation.CCW()
}

// SetMode switches mode. A cell-aligned mode needs a brush of at least 2.
func (s *Session) SetMode(m Mode) {
	s.Mode = m
	if m.CellAligned() && s.Size == 1 {
		s.SetSize(2)
	}
}

// ToggleMode cycles height, tile and terrain. Terrain is skipped unless
// terrains is true. Lock toggles into height.
func (s *Session) ToggleMode(terrains bool) {
	switch s.Mode {
	case ModeHeight:
		s.SetMode(ModeTile)
	case ModeTile:
		if terrains {
			s.SetMode(ModeTerrain)
		} else {
			s.SetMode(ModeHeight)
		}
	default:
		s.SetMode(ModeHeight)
	}
}

// BeginStroke starts a gesture.
func (s *Session) BeginStroke() {
	s.stroking = true
	s.dirty = false
}

// Stroking reports whether a gesture is in progress.
func (s *Session) Stroking() bool {
	return s.stroking
}

// MarkDirty records an effective mutation in the current gesture. It
// returns true for the first one, when the caller must snapshot history.
// Outside a gesture every mutation is the first.
func (s *Session) MarkDirty() bool {
	if !s.stroking {
		return true
	}
	first := !s.dirty
	s.dirty = true
	return first
}

// EndStroke finishes the gesture and reports whether it mutated anything.
func (s *Session) EndStroke() bool {
	dirty := s.dirty
	s.stroking = false
	s.dirty = false
	return dirty
}
