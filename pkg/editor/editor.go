// Package editor ties the mesh, brush and history packages into one editing
// session a host drives from its input callbacks.
//
// An Editor is not safe for concurrent use. Every call runs to completion
// and, when it changed the mesh, pushes a fresh Surface to the Sink.
package editor

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/groundmesh/pkg/brush"
	"github.com/Faultbox/groundmesh/pkg/grid"
	"github.com/Faultbox/groundmesh/pkg/history"
	"github.com/Faultbox/groundmesh/pkg/terrain"
)

// Editor errors.
var (
	ErrInvalidDims  = errors.New("mesh columns and rows must be positive")
	ErrInvalidAtlas = errors.New("atlas columns must be positive")
	ErrNoMesh       = errors.New("no mesh")
	ErrNoTileset    = errors.New("no tileset attached")
)

// Sink receives the render surface after every mutation. The editor never
// reads it back.
type Sink interface {
	Upload(s *grid.Surface)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(s *grid.Surface)

// Upload calls f(s).
func (f SinkFunc) Upload(s *grid.Surface) {
	f(s)
}

// Options configures an Editor.
type Options struct {
	Logger       *zap.Logger // Defaults to a no-op logger
	HistoryLimit int         // Defaults to history.DefaultLimit
	BrushMaxSize int         // Defaults to brush.DefaultMaxSize
	HeightUnit   float32     // Defaults to brush.DefaultHeightUnit
	Sink         Sink        // Optional
}

// Editor is one ground mesh editing session.
type Editor struct {
	// Brush holds the brush settings and gesture state.
	Brush *brush.Session

	log     *zap.Logger
	sink    Sink
	mesh    *grid.Mesh
	index   grid.Index
	tileset *terrain.Tileset
	history *history.Stack
}

// New creates an editor with no mesh.
func New(opts Options) *Editor {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Editor{
		Brush:   brush.NewSession(opts.BrushMaxSize, opts.HeightUnit),
		log:     log,
		sink:    opts.Sink,
		history: history.New(opts.HistoryLimit),
	}
}

// Mesh returns the current mesh, or nil. Callers must not modify it.
func (e *Editor) Mesh() *grid.Mesh {
	return e.mesh
}

// Index returns the spatial index of the current mesh.
func (e *Editor) Index() grid.Index {
	return e.index
}

// Tileset returns the attached tileset, or nil.
func (e *Editor) Tileset() *terrain.Tileset {
	return e.tileset
}

// Surface returns the render surface of the current mesh, or nil.
func (e *Editor) Surface() *grid.Surface {
	if e.mesh.Empty() {
		return nil
	}
	return e.mesh.Surface()
}

func validateDims(cols, rows int) error {
	if cols < 1 || rows < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDims, cols, rows)
	}
	return nil
}

// NewMesh replaces the mesh with a flat cols x rows grid and clears
// history. With a tileset attached the atlas comes from the tileset and
// atlasColumns is ignored.
func (e *Editor) NewMesh(cols, rows, atlasColumns int) error {
	if err := validateDims(cols, rows); err != nil {
		return err
	}

	var m *grid.Mesh
	if e.tileset != nil {
		m = grid.BuildTerrain(cols, rows, e.tileset.ColumnCount, grid.FillFor(e.tileset))
	} else {
		if atlasColumns < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidAtlas, atlasColumns)
		}
		m = grid.Build(cols, rows, atlasColumns)
	}

	e.replace(m)
	e.log.Info("new mesh",
		zap.Int("cols", cols),
		zap.Int("rows", rows),
		zap.Int("atlas", m.AtlasColumns),
		zap.Bool("terrain", m.HasTerrain()))
	return nil
}

// Resize rebuilds the mesh at cols x rows, keeping shared heights, UVs and
// terrains. History is cleared.
func (e *Editor) Resize(cols, rows int) error {
	if e.mesh.Empty() {
		return ErrNoMesh
	}
	if err := validateDims(cols, rows); err != nil {
		return err
	}

	oldCols, oldRows := e.mesh.Cols, e.mesh.Rows
	e.replace(grid.Resize(e.mesh, cols, rows))
	e.log.Info("resized mesh",
		zap.Int("from_cols", oldCols),
		zap.Int("from_rows", oldRows),
		zap.Int("cols", cols),
		zap.Int("rows", rows))
	return nil
}

// Clean drops the mesh and its history.
func (e *Editor) Clean() {
	e.mesh = nil
	e.index = nil
	e.history.Clear()
	e.Brush.EndStroke()
	e.log.Info("cleaned mesh")
}

func (e *Editor) replace(m *grid.Mesh) {
	e.mesh = m
	e.index = grid.NewIndex(m.Vertices)
	e.history.Clear()
	e.Brush.EndStroke()
	e.publish()
}

// SetTileset attaches a tileset, or detaches it when ts is nil. An existing
// mesh takes the tileset atlas and is reset to the tileset defaults, the
// same terrain and UVs NewMesh would build. History is cleared.
func (e *Editor) SetTileset(ts *terrain.Tileset) error {
	if ts != nil {
		if err := ts.Validate(); err != nil {
			return err
		}
		if err := ts.Normalize(); err != nil {
			return err
		}
	}
	e.tileset = ts

	if e.mesh.Empty() {
		return nil
	}
	if ts == nil {
		e.mesh.DetachTerrain()
	} else {
		e.mesh.AtlasColumns = ts.ColumnCount
		e.mesh.AttachTerrain(grid.FillFor(ts))
	}
	e.history.Clear()
	e.publish()

	if ts != nil {
		e.log.Info("attached tileset",
			zap.String("material", ts.Material),
			zap.Int("columns", ts.ColumnCount),
			zap.Int("terrains", len(ts.TerrainNames)))
	}
	return nil
}

func (e *Editor) target() brush.Target {
	return brush.Target{Mesh: e.mesh, Index: e.index, Tileset: e.tileset}
}

// BeginStroke starts a gesture. All mutations until EndStroke share one
// history entry.
func (e *Editor) BeginStroke() {
	e.Brush.BeginStroke()
}

// Stroke applies the session brush at cursor and reports whether the mesh
// changed.
func (e *Editor) Stroke(cursor mgl32.Vec3) bool {
	return e.apply(e.Brush.Brush, cursor)
}

// EndStroke finishes the gesture.
func (e *Editor) EndStroke() {
	if e.Brush.EndStroke() {
		e.log.Debug("stroke finished", zap.Int("history", e.history.Len()))
	}
}

func (e *Editor) apply(b brush.Brush, cursor mgl32.Vec3) bool {
	if e.mesh.Empty() {
		return false
	}
	d := brush.Plan(b, cursor, e.target())
	if d.Empty() {
		return false
	}

	if e.Brush.MarkDirty() {
		e.history.Register(history.Capture(e.mesh))
	}
	vertices, cells := d.Apply(e.mesh)
	e.log.Debug("stroke",
		zap.Stringer("mode", b.Mode),
		zap.Float32("x", cursor.X()),
		zap.Float32("z", cursor.Z()),
		zap.Int("size", b.Size),
		zap.Int("vertices", vertices),
		zap.Int("cells", cells))
	e.publish()
	return true
}

// gesture applies b at cursor as one complete gesture.
func (e *Editor) gesture(b brush.Brush, cursor mgl32.Vec3) bool {
	e.BeginStroke()
	changed := e.apply(b, cursor)
	e.EndStroke()
	return changed
}

// PaintHeight sets every grid point in the size x size footprint to height.
func (e *Editor) PaintHeight(cursor mgl32.Vec3, size int, height float32) bool {
	return e.gesture(brush.Brush{Mode: brush.ModeHeight, Size: size, Height: height}, cursor)
}

// PaintTile assigns an atlas tile to every cell in the footprint.
func (e *Editor) PaintTile(cursor mgl32.Vec3, size, tile int, rot grid.Rotation) bool {
	return e.gesture(brush.Brush{Mode: brush.ModeTile, Size: size, Tile: tile, Rotation: rot}, cursor)
}

// PaintTerrain paints a terrain category over the footprint and blends it
// into the neighboring cells.
func (e *Editor) PaintTerrain(cursor mgl32.Vec3, size, category int) bool {
	return e.gesture(brush.Brush{Mode: brush.ModeTerrain, Size: size, Terrain: category}, cursor)
}

// SelectTerrain sets the terrain category of the session brush.
func (e *Editor) SelectTerrain(category int) error {
	if e.tileset == nil {
		return ErrNoTileset
	}
	if category < 0 || category >= len(e.tileset.TerrainNames) {
		return fmt.Errorf("%w: %d", terrain.ErrTerrainIndex, category)
	}
	e.Brush.Terrain = category
	return nil
}

// Preview returns the overlay of the session brush at cursor.
func (e *Editor) Preview(cursor mgl32.Vec3) brush.Overlay {
	return brush.Preview(e.Brush.Brush, cursor, e.target())
}

// ToggleMode cycles the brush mode. Terrain mode is offered only when the
// attached tileset defines terrains.
func (e *Editor) ToggleMode() {
	terrains := e.tileset != nil && e.tileset.HasTerrains() && !e.mesh.Empty() && e.mesh.HasTerrain()
	e.Brush.ToggleMode(terrains)
	e.log.Debug("brush mode", zap.Stringer("mode", e.Brush.Mode), zap.Int("size", e.Brush.Size))
}

// ResetUV assigns tile 0 to every cell as one undoable edit.
func (e *Editor) ResetUV() error {
	if e.mesh.Empty() {
		return ErrNoMesh
	}
	e.record()
	e.mesh.ResetUV()
	e.publish()
	e.log.Info("reset uv")
	return nil
}

// SeedHeights replaces every height with Perlin noise as one undoable edit.
func (e *Editor) SeedHeights(p grid.NoiseParams) error {
	if e.mesh.Empty() {
		return ErrNoMesh
	}
	e.record()
	e.mesh.SeedHeights(e.index, p)
	e.publish()

	lo, hi := e.mesh.HeightRange()
	e.log.Info("seeded heights",
		zap.Int64("seed", p.Seed),
		zap.Float32("min", lo),
		zap.Float32("max", hi))
	return nil
}

// record snapshots the mesh before a one-shot edit.
func (e *Editor) record() {
	if e.Brush.MarkDirty() {
		e.history.Register(history.Capture(e.mesh))
	}
}

// Undo restores the previous snapshot. It returns false when there is
// nothing older.
func (e *Editor) Undo() bool {
	if e.mesh.Empty() {
		return false
	}
	e.restartStroke()
	snap, ok := e.history.Undo(history.Capture(e.mesh))
	if !ok {
		e.log.Debug("undo: nothing to undo")
		return false
	}
	snap.Restore(e.mesh)
	e.publish()
	e.log.Debug("undo", zap.Int("position", e.history.Position()))
	return true
}

// Redo restores the next snapshot. It returns false at the newest state.
func (e *Editor) Redo() bool {
	if e.mesh.Empty() {
		return false
	}
	e.restartStroke()
	snap, ok := e.history.Redo()
	if !ok {
		e.log.Debug("redo: nothing to redo")
		return false
	}
	snap.Restore(e.mesh)
	e.publish()
	e.log.Debug("redo", zap.Int("position", e.history.Position()))
	return true
}

// restartStroke closes the history entry of a gesture in progress. Later
// writes in the same drag open a new entry.
func (e *Editor) restartStroke() {
	if e.Brush.Stroking() {
		e.Brush.EndStroke()
		e.Brush.BeginStroke()
	}
}

// CanUndo reports whether Undo would change the mesh.
func (e *Editor) CanUndo() bool {
	return !e.mesh.Empty() && e.history.CanUndo()
}

// CanRedo reports whether Redo would change the mesh.
func (e *Editor) CanRedo() bool {
	return !e.mesh.Empty() && e.history.CanRedo()
}

// ClearHistory drops every snapshot.
func (e *Editor) ClearHistory() {
	e.history.Clear()
	e.log.Debug("history cleared")
}

func (e *Editor) publish() {
	if e.sink == nil || e.mesh.Empty() {
		return
	}
	e.sink.Upload(e.mesh.Surface())
}
