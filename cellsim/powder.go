package cellsim

import (
	"github.com/gekko3d/sandforge/grid"
	"github.com/gekko3d/sandforge/hashutil"
	"github.com/gekko3d/sandforge/material"
)

// stepPowder implements spec §4.2 "Powder rules". cell is the value
// read at (x,y) before this tick's update, with FrameUpdated already
// stamped to frame by the caller.
func stepPowder(w World, mats *material.Table, x, y int, cell grid.Cell, frame uint16, cfg Config) {
	vy := clampV(cell.VelocityY+cfg.GravityPerTick, cfg.MaxVelocity)

	destY := y
	landedSwap := false
	for s := 1; s <= int(vy); s++ {
		ty := y + s
		ok, isSwap := canMoveTo(w, mats, cell.MaterialID, x, ty)
		if !ok {
			break
		}
		destY = ty
		landedSwap = isSwap
		if isSwap {
			break
		}
	}

	if destY != y {
		cell.VelocityY = vy
		writeMove(w, x, y, x, destY, cell, frame, landedSwap)
		return
	}

	// Blocked immediately below: zero vertical velocity, try diagonals.
	vy = 0

	leftFirst := hashutil.Bool(int32(x), int32(y), frame)
	dxs := [2]int{-1, 1}
	if !leftFirst {
		dxs = [2]int{1, -1}
	}
	for _, dx := range dxs {
		tx, ty := x+dx, y+1
		ok, isSwap := canMoveTo(w, mats, cell.MaterialID, tx, ty)
		if ok {
			cell.VelocityX = 0
			cell.VelocityY = 0
			writeMove(w, x, y, tx, ty, cell, frame, isSwap)
			return
		}
	}

	cell.VelocityX = 0
	cell.VelocityY = vy
	writeStay(w, x, y, cell)
}
