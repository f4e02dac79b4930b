package cellsim

import (
	"github.com/gekko3d/sandforge/grid"
	"github.com/gekko3d/sandforge/material"
)

// World is the narrow read/write surface the cell rules need out of
// grid.Grid, kept as an interface so tests can exercise the rules
// against a small fake grid without a full world.
type World interface {
	InBounds(x, y int) bool
	Cell(x, y int) grid.Cell
	SetCellRaw(x, y int, c grid.Cell)
	MarkDirty(x, y int)
	Materials() *material.Table
}

// canMoveTo implements spec §4.2 "Traversability (can_move_to)".
// Returns whether the move is legal and, if the target is occupied by
// a lighter loose material, whether this is a swap (density
// displacement) rather than a move into empty space.
func canMoveTo(w World, mats *material.Table, srcID material.ID, tx, ty int) (ok, isSwap bool) {
	if !w.InBounds(tx, ty) {
		return false, false
	}
	target := w.Cell(tx, ty)
	if target.IsAir() {
		return true, false
	}
	if mats.Behavior(target.MaterialID) == material.Static {
		return false, false
	}
	if !target.IsLoose() {
		return false, false
	}
	if mats.Density(srcID) > mats.Density(target.MaterialID) {
		return true, true
	}
	return false, false
}

// writeMove places the fully-updated moving cell at (tx,ty), coming
// from (sx,sy). If isSwap, the cell previously at the destination is
// written back to the source, with its FrameUpdated stamped to the
// current frame so the checkerboard pass does not process it again
// this tick (spec §4.2 "Write discipline").
func writeMove(w World, sx, sy, tx, ty int, moving grid.Cell, frame uint16, isSwap bool) {
	if isSwap {
		displaced := w.Cell(tx, ty)
		displaced.FrameUpdated = frame
		w.SetCellRaw(sx, sy, displaced)
	} else {
		w.SetCellRaw(sx, sy, grid.AirCell)
	}
	w.SetCellRaw(tx, ty, moving)
	w.MarkDirty(sx, sy)
	w.MarkDirty(tx, ty)
}

// writeStay rewrites the cell in place, e.g. after a velocity update
// with no position change.
func writeStay(w World, x, y int, cell grid.Cell) {
	w.SetCellRaw(x, y, cell)
	w.MarkDirty(x, y)
}
