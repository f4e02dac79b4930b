// Package grid implements the dense 2D cell array and its chunked
// dirty-rectangle metadata (spec §3 "Grid", "Chunk").
package grid

import (
	"github.com/pkg/errors"

	"github.com/gekko3d/sandforge/material"
)

// ErrOutOfBounds is returned by operations addressing a cell or chunk
// outside the grid.
var ErrOutOfBounds = errors.New("grid: out of bounds")

// Grid is a row-major width×height array of cells plus chunk metadata.
// Width and height must be multiples of ChunkSize.
type Grid struct {
	Width, Height       int
	ChunksWide, ChunksHigh int
	cells               []Cell
	chunks              []Chunk
	materials           *material.Table
}

// New creates a grid of the given dimensions, all cells Air. Panics if
// width/height are not positive multiples of ChunkSize — this is a
// setup-time programming error, not a runtime condition to recover from.
func New(width, height int, materials *material.Table) *Grid {
	if width <= 0 || height <= 0 || width%ChunkSize != 0 || height%ChunkSize != 0 {
		panic("grid: width/height must be positive multiples of ChunkSize")
	}
	cw, ch := width/ChunkSize, height/ChunkSize
	g := &Grid{
		Width: width, Height: height,
		ChunksWide: cw, ChunksHigh: ch,
		cells:     make([]Cell, width*height),
		chunks:    make([]Chunk, cw*ch),
		materials: materials,
	}
	for i := range g.chunks {
		g.chunks[i] = emptyRect()
	}
	return g
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

func (g *Grid) index(x, y int) int { return y*g.Width + x }

// ChunkCoord returns the chunk coordinates containing cell (x, y).
func (g *Grid) ChunkCoord(x, y int) (cx, cy int) { return x / ChunkSize, y / ChunkSize }

func (g *Grid) chunkIndex(cx, cy int) int { return cy*g.ChunksWide + cx }

// Cell returns the cell at (x, y). Out-of-bounds reads return the air
// cell rather than erroring — read-only queries near the edge of the
// world are common in neighbor scans and should not require bounds
// checks at every call site.
func (g *Grid) Cell(x, y int) Cell {
	if !g.InBounds(x, y) {
		return AirCell
	}
	return g.cells[g.index(x, y)]
}

// SetCellRaw writes a cell and marks its owning chunk dirty, without
// bounds checking. Callers must have already validated (x, y).
func (g *Grid) SetCellRaw(x, y int, c Cell) {
	g.cells[g.index(x, y)] = c
	cx, cy := g.ChunkCoord(x, y)
	lx, ly := uint16(x%ChunkSize), uint16(y%ChunkSize)
	g.chunks[g.chunkIndex(cx, cy)].markDirty(lx, ly)
}

// SetCell is the host-facing mutator (§6): set_cell(x, y, material_id).
func (g *Grid) SetCell(x, y int, id material.ID) error {
	if !g.InBounds(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "set_cell(%d,%d)", x, y)
	}
	g.SetCellRaw(x, y, Cell{MaterialID: id})
	return nil
}

// GetCell is the host-facing accessor (§6): get_cell(x, y) -> Cell.
func (g *Grid) GetCell(x, y int) (Cell, error) {
	if !g.InBounds(x, y) {
		return Cell{}, errors.Wrapf(ErrOutOfBounds, "get_cell(%d,%d)", x, y)
	}
	return g.cells[g.index(x, y)], nil
}

// MarkChunkDirtyAt forces re-simulation of the chunk containing (x, y).
func (g *Grid) MarkChunkDirtyAt(x, y int) error {
	if !g.InBounds(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "mark_chunk_dirty_at(%d,%d)", x, y)
	}
	cx, cy := g.ChunkCoord(x, y)
	ch := &g.chunks[g.chunkIndex(cx, cy)]
	ch.Flags |= IsDirty
	ch.MinX, ch.MinY, ch.MaxX, ch.MaxY = 0, 0, ChunkSize-1, ChunkSize-1
	return nil
}

// MarkDirty widens the dirty rect of the chunk owning (x, y). Used by
// the cell simulator and cluster manager on every mutation.
func (g *Grid) MarkDirty(x, y int) {
	if !g.InBounds(x, y) {
		return
	}
	cx, cy := g.ChunkCoord(x, y)
	lx, ly := uint16(x%ChunkSize), uint16(y%ChunkSize)
	g.chunks[g.chunkIndex(cx, cy)].markDirty(lx, ly)
}

// Chunk returns a copy of the chunk metadata at chunk coordinates (cx, cy).
func (g *Grid) Chunk(cx, cy int) Chunk { return g.chunks[g.chunkIndex(cx, cy)] }

// ChunkPtr returns a mutable pointer to chunk (cx, cy); used internally
// by the scheduler and structure overlays that toggle HasStructure.
func (g *Grid) ChunkPtr(cx, cy int) *Chunk { return &g.chunks[g.chunkIndex(cx, cy)] }

// Materials returns the grid's material table.
func (g *Grid) Materials() *material.Table { return g.materials }

// DecayDirty implements the scheduler's end-of-tick housekeeping
// (spec §4.1): copy IsDirty into ActiveLastFrame, then clear IsDirty
// and reset the dirty rect, but only for chunks without HasStructure.
func (g *Grid) DecayDirty() {
	for i := range g.chunks {
		c := &g.chunks[i]
		c.ActiveLastFrame = c.Flags&IsDirty != 0
		if c.Flags&HasStructure == 0 {
			c.clearDirty()
		}
	}
}

// ActiveChunks returns chunk coordinates selected for simulation this
// tick: IsDirty || HasStructure || ActiveLastFrame (spec §4.1).
func (g *Grid) ActiveChunks() []ChunkCoord {
	out := make([]ChunkCoord, 0, len(g.chunks)/4)
	for cy := 0; cy < g.ChunksHigh; cy++ {
		for cx := 0; cx < g.ChunksWide; cx++ {
			c := &g.chunks[g.chunkIndex(cx, cy)]
			if c.Flags&IsDirty != 0 || c.Flags&HasStructure != 0 || c.ActiveLastFrame {
				out = append(out, ChunkCoord{X: cx, Y: cy})
			}
		}
	}
	return out
}

// ChunkCoord identifies a chunk by its chunk-space coordinates.
type ChunkCoord struct{ X, Y int }

// Group returns the checkerboard group this chunk belongs to (spec
// §4.1): (chunk_x&1) | ((chunk_y&1)<<1).
func (cc ChunkCoord) Group() int { return (cc.X & 1) | ((cc.Y & 1) << 1) }

// Snapshot is a read-only view of the grid exposed to a renderer
// (spec §6 "Grid snapshot for rendering").
type Snapshot struct {
	Width, Height int
	Cells         []Cell
}

// Snapshot returns a read-only copy of the grid's cells. Intended to
// be called between ticks or with the caller understanding that cells
// mutate concurrently with cell-sim workers if called mid-tick.
func (g *Grid) Snapshot() Snapshot {
	cp := make([]Cell, len(g.cells))
	copy(cp, g.cells)
	return Snapshot{Width: g.Width, Height: g.Height, Cells: cp}
}

// ActiveDirtyChunks is the host-facing iterator source for the
// renderer/collider consumer (spec §6): the same list as ActiveChunks,
// i.e. chunks with ActiveLastFrame, IsDirty or HasStructure set.
func (g *Grid) ActiveDirtyChunks() []ChunkCoord { return g.ActiveChunks() }
