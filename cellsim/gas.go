package cellsim

import (
	"github.com/gekko3d/sandforge/grid"
	"github.com/gekko3d/sandforge/hashutil"
	"github.com/gekko3d/sandforge/material"
)

// gasDispersionRadius is the fixed horizontal spread distance gas
// cells try once buoyant movement is blocked (spec §4.2 "Gas rules:
// mirror of powder... horizontal dispersion of fixed radius").
const gasDispersionRadius = 3

// stepGas implements spec §4.2 "Gas rules": the mirror of stepPowder
// with buoyancy (negative gravity, i.e. rising toward -Y) in place of
// weight, diagonal-up in place of diagonal-down, and a fixed-radius
// horizontal dispersion in place of landing-on-surface behavior.
func stepGas(w World, mats *material.Table, x, y int, cell grid.Cell, frame uint16, cfg Config) {
	vy := clampV(cell.VelocityY-cfg.GravityPerTick, cfg.MaxVelocity)

	destY := y
	landedSwap := false
	for s := 1; s <= int(-vy); s++ {
		ty := y - s
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

	vy = 0

	leftFirst := hashutil.Bool(int32(x), int32(y), frame)
	dxs := [2]int{-1, 1}
	if !leftFirst {
		dxs = [2]int{1, -1}
	}
	for _, dx := range dxs {
		tx, ty := x+dx, y-1
		ok, isSwap := canMoveTo(w, mats, cell.MaterialID, tx, ty)
		if ok {
			cell.VelocityX = 0
			cell.VelocityY = 0
			writeMove(w, x, y, tx, ty, cell, frame, isSwap)
			return
		}
	}

	// Horizontal dispersion at fixed radius, primary direction by hash.
	primaryRight := hashutil.Bool(int32(x), int32(y), frame+1)
	dirs := [2]int{1, -1}
	if !primaryRight {
		dirs = [2]int{-1, 1}
	}
	for _, dir := range dirs {
		for s := gasDispersionRadius; s >= 1; s-- {
			tx := x + dir*s
			ok, isSwap := canMoveTo(w, mats, cell.MaterialID, tx, y)
			if ok {
				cell.VelocityX = int8(dir)
				cell.VelocityY = 0
				writeMove(w, x, y, tx, y, cell, frame, isSwap)
				return
			}
		}
	}

	cell.VelocityX = 0
	cell.VelocityY = vy
	writeStay(w, x, y, cell)
}
