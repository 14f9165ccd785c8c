// Package history provides a bounded linear undo/redo timeline over
// snapshots of the editable mesh buffers.
package history

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/groundmesh/pkg/grid"
	"github.com/Faultbox/groundmesh/pkg/terrain"
)

// DefaultLimit is the default maximum number of retained snapshots.
const DefaultLimit = 50

// Snapshot is a deep copy of the editable buffers at one point in time.
type Snapshot struct {
	Vertices []mgl32.Vec3
	UV       []mgl32.Vec2
	Terrains []terrain.Corners // nil when the mesh has no terrain buffer
}

// Capture copies the editable buffers of m.
func Capture(m *grid.Mesh) Snapshot {
	return Snapshot{
		Vertices: append([]mgl32.Vec3(nil), m.Vertices...),
		UV:       append([]mgl32.Vec2(nil), m.UV...),
		Terrains: cloneTerrains(m.Terrains),
	}
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Vertices: append([]mgl32.Vec3(nil), s.Vertices...),
		UV:       append([]mgl32.Vec2(nil), s.UV...),
		Terrains: cloneTerrains(s.Terrains),
	}
}

// Restore copies the snapshot buffers into m. Triangles are derived from the
// dimensions and stay untouched.
func (s Snapshot) Restore(m *grid.Mesh) {
	m.Vertices = append(m.Vertices[:0], s.Vertices...)
	m.UV = append(m.UV[:0], s.UV...)
	if s.Terrains != nil {
		m.Terrains = append(m.Terrains[:0], s.Terrains...)
	}
}

func cloneTerrains(t []terrain.Corners) []terrain.Corners {
	if t == nil {
		return nil
	}
	return append(make([]terrain.Corners, 0, len(t)), t...)
}

// Stack is a bounded undo/redo timeline.
//
// Entries are ordered oldest first. While the user is at the present the
// cursor is -1; the first Undo appends the live state so Redo can return
// to it, and the cursor then walks the entries. The live state does not
// count against the limit, so limit registered edits can all be undone.
// Registering a snapshot while the cursor is set drops every entry after
// it: history never branches.
type Stack struct {
	limit   int
	entries []Snapshot
	cursor  int
}

// New creates a stack retaining at most limit snapshots.
// A non-positive limit selects DefaultLimit.
func New(limit int) *Stack {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack{
		limit:   limit,
		entries: make([]Snapshot, 0, limit+1),
		cursor:  -1,
	}
}

// Limit returns the maximum number of retained snapshots.
func (s *Stack) Limit() int {
	return s.limit
}

// Len returns the number of retained snapshots, including the live state
// kept for Redo while an undo is in progress.
func (s *Stack) Len() int {
	return len(s.entries)
}

// AtPresent reports whether no undo is in progress.
func (s *Stack) AtPresent() bool {
	return s.cursor < 0
}

// Position returns how many steps back from the newest entry the cursor is.
func (s *Stack) Position() int {
	if s.cursor < 0 {
		return 0
	}
	return len(s.entries) - 1 - s.cursor
}

// CanUndo reports whether Undo would return a snapshot.
func (s *Stack) CanUndo() bool {
	if s.cursor < 0 {
		return len(s.entries) > 0
	}
	return s.cursor > 0
}

// CanRedo reports whether Redo would return a snapshot.
func (s *Stack) CanRedo() bool {
	return s.cursor >= 0 && s.cursor < len(s.entries)-1
}

// Register records the state before an edit. It discards the redo branch
// and returns the stack to the present.
func (s *Stack) Register(snap Snapshot) {
	if s.cursor >= 0 {
		s.entries = s.entries[:s.cursor]
		s.cursor = -1
	}
	s.push(snap.Clone())
}

// Undo steps back one snapshot. current is the live state, recorded on the
// first step away from the present. It returns false when there is nothing
// older to return.
func (s *Stack) Undo(current Snapshot) (Snapshot, bool) {
	if s.cursor < 0 {
		if len(s.entries) == 0 {
			return Snapshot{}, false
		}
		s.entries = append(s.entries, current.Clone())
		s.cursor = len(s.entries) - 1
	}
	if s.cursor == 0 {
		return Snapshot{}, false
	}
	s.cursor--
	return s.entries[s.cursor].Clone(), true
}

// Redo steps forward one snapshot. It returns false at the newest entry.
func (s *Stack) Redo() (Snapshot, bool) {
	if !s.CanRedo() {
		return Snapshot{}, false
	}
	s.cursor++
	return s.entries[s.cursor].Clone(), true
}

// Clear drops every snapshot and returns to the present.
func (s *Stack) Clear() {
	clear(s.entries)
	s.entries = s.entries[:0]
	s.cursor = -1
}

func (s *Stack) push(snap Snapshot) {
	s.entries = append(s.entries, snap)
	if len(s.entries) > s.limit {
		s.entries[0] = Snapshot{}
		s.entries = s.entries[1:]
	}
}
