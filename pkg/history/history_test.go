package history

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/groundmesh/pkg/grid"
	"github.com/Faultbox/groundmesh/pkg/terrain"
)

// state builds a one-vertex snapshot tagged with h.
func state(h float32) Snapshot {
	return Snapshot{
		Vertices: []mgl32.Vec3{{0, h, 0}},
		UV:       []mgl32.Vec2{{h, h}},
	}
}

func height(s Snapshot) float32 {
	return s.Vertices[0].Y()
}

func TestUndoRedoRoundTrip(t *testing.T) {
	const n = 10
	s := New(DefaultLimit)

	// Gesture k registers the state before it (k) and leaves state k+1.
	for k := range n {
		s.Register(state(float32(k)))
	}
	live := float32(n)

	for k := n - 1; k >= 0; k-- {
		snap, ok := s.Undo(state(live))
		if !ok {
			t.Fatalf("undo to %d: expected snapshot", k)
		}
		if height(snap) != float32(k) {
			t.Fatalf("undo: expected state %d, got %v", k, height(snap))
		}
		live = height(snap)
	}

	if _, ok := s.Undo(state(live)); ok {
		t.Error("expected undo past the oldest entry to be a no-op")
	}

	for k := 1; k <= n; k++ {
		snap, ok := s.Redo()
		if !ok {
			t.Fatalf("redo to %d: expected snapshot", k)
		}
		if height(snap) != float32(k) {
			t.Fatalf("redo: expected state %d, got %v", k, height(snap))
		}
	}

	if _, ok := s.Redo(); ok {
		t.Error("expected redo past the newest entry to be a no-op")
	}
}

func TestNewEditDiscardsRedoBranch(t *testing.T) {
	s := New(DefaultLimit)
	s.Register(state(0))
	s.Register(state(1))

	snap, ok := s.Undo(state(2))
	if !ok || height(snap) != 1 {
		t.Fatalf("expected undo to state 1, got %v (%v)", height(snap), ok)
	}

	// New gesture from state 1
	s.Register(state(1))
	if !s.AtPresent() {
		t.Error("expected stack back at present")
	}
	if _, ok := s.Redo(); ok {
		t.Error("expected redo to be a no-op after a new edit")
	}

	// Older history survives the new edit
	snap, ok = s.Undo(state(5))
	if !ok || height(snap) != 1 {
		t.Fatalf("expected undo to state 1, got %v (%v)", height(snap), ok)
	}
	snap, ok = s.Undo(state(1))
	if !ok || height(snap) != 0 {
		t.Fatalf("expected undo to state 0, got %v (%v)", height(snap), ok)
	}
	snap, ok = s.Redo()
	if !ok || height(snap) != 1 {
		t.Fatalf("expected redo to state 1, got %v (%v)", height(snap), ok)
	}
	snap, ok = s.Redo()
	if !ok || height(snap) != 5 {
		t.Fatalf("expected redo to live state 5, got %v (%v)", height(snap), ok)
	}
}

func TestUndoOnEmptyStack(t *testing.T) {
	s := New(0)
	if s.Limit() != DefaultLimit {
		t.Errorf("expected default limit, got %d", s.Limit())
	}
	if s.CanUndo() {
		t.Error("expected CanUndo false on empty stack")
	}
	if _, ok := s.Undo(state(3)); ok {
		t.Error("expected undo on empty stack to be a no-op")
	}
	if _, ok := s.Redo(); ok {
		t.Error("expected redo on empty stack to be a no-op")
	}
}

func TestLimit(t *testing.T) {
	s := New(5)
	for k := range 12 {
		s.Register(state(float32(k)))
		if s.Len() > 5 {
			t.Fatalf("stack grew to %d entries", s.Len())
		}
	}

	live := float32(12)
	var oldest float32
	steps := 0
	for {
		snap, ok := s.Undo(state(live))
		if !ok {
			break
		}
		live = height(snap)
		oldest = live
		steps++
	}
	// Five edits plus the live state kept for redo
	if s.Len() != 6 {
		t.Errorf("expected 6 entries, got %d", s.Len())
	}
	if steps != 5 {
		t.Errorf("expected 5 undo steps, got %d", steps)
	}
	if oldest != 7 {
		t.Errorf("expected oldest reachable state 7, got %v", oldest)
	}

	// A new edit trims back to the limit
	s.Register(state(live))
	if s.Len() > 5 {
		t.Errorf("expected at most 5 entries after a new edit, got %d", s.Len())
	}
}

func TestFullLimitRoundTrip(t *testing.T) {
	s := New(DefaultLimit)
	for k := range DefaultLimit {
		s.Register(state(float32(k)))
	}

	live := float32(DefaultLimit)
	for k := DefaultLimit - 1; k >= 0; k-- {
		snap, ok := s.Undo(state(live))
		if !ok {
			t.Fatalf("undo to %d: expected snapshot", k)
		}
		if height(snap) != float32(k) {
			t.Fatalf("undo: expected state %d, got %v", k, height(snap))
		}
		live = height(snap)
	}
	for k := 1; k <= DefaultLimit; k++ {
		snap, ok := s.Redo()
		if !ok || height(snap) != float32(k) {
			t.Fatalf("redo: expected state %d, got %v (%v)", k, height(snap), ok)
		}
	}
}

func TestPositionAndFlags(t *testing.T) {
	s := New(DefaultLimit)
	s.Register(state(0))
	s.Register(state(1))

	if !s.AtPresent() || s.Position() != 0 || !s.CanUndo() || s.CanRedo() {
		t.Fatal("unexpected flags at present")
	}

	s.Undo(state(2))
	if s.AtPresent() || s.Position() != 1 || !s.CanRedo() {
		t.Errorf("after one undo: present=%v position=%d canRedo=%v", s.AtPresent(), s.Position(), s.CanRedo())
	}

	s.Clear()
	if s.Len() != 0 || !s.AtPresent() || s.CanUndo() {
		t.Error("expected empty stack after Clear")
	}
}

func TestSnapshotsAreImmutable(t *testing.T) {
	s := New(DefaultLimit)
	snap := state(1)
	s.Register(snap)

	// Mutating the registered value must not leak into the stack
	snap.Vertices[0][1] = 99

	got, ok := s.Undo(state(2))
	if !ok || height(got) != 1 {
		t.Fatalf("expected stored state 1, got %v", height(got))
	}

	// Nor may mutating a returned value
	got.Vertices[0][1] = 42
	s.Redo()
	again, _ := s.Undo(state(2))
	if height(again) != 1 {
		t.Errorf("returned snapshot aliases stack storage: %v", height(again))
	}
}

func TestCaptureRestore(t *testing.T) {
	m := grid.BuildTerrain(2, 1, 2, grid.CellFill{Corners: terrain.NoTerrain, Tile: -1})
	snap := Capture(m)

	m.Vertices[1][1] = 3
	m.UV[0] = mgl32.Vec2{1, 1}
	m.Terrains[1] = terrain.Uniform(0)

	snap.Restore(m)
	if m.Vertices[1].Y() != 0 {
		t.Errorf("expected height restored, got %v", m.Vertices[1].Y())
	}
	if m.UV[0] != (mgl32.Vec2{0, 0}) {
		t.Errorf("expected uv restored, got %v", m.UV[0])
	}
	if m.Terrains[1] != terrain.NoTerrain {
		t.Errorf("expected terrain restored, got %v", m.Terrains[1])
	}

	plain := grid.Build(1, 1, 1)
	if Capture(plain).Terrains != nil {
		t.Error("expected nil terrains for a mesh without terrain buffer")
	}
}
