package cellsim

import (
	"github.com/gekko3d/sandforge/grid"
	"github.com/gekko3d/sandforge/hashutil"
	"github.com/gekko3d/sandforge/material"
)

// stepLiquid implements spec §4.2 "Liquid rules".
func stepLiquid(w World, mats *material.Table, x, y int, cell grid.Cell, frame uint16, cfg Config) {
	wasFreeFalling := cell.VelocityY > 2

	vy := clampV(cell.VelocityY+cfg.GravityPerTick, cfg.MaxVelocity)

	// Straight fall: trace down up to vy cells, as stepPowder does.
	destY, landedSwap := y, false
	for s := 1; s <= int(vy); s++ {
		ok, isSwap := canMoveTo(w, mats, cell.MaterialID, x, y+s)
		if !ok {
			break
		}
		destY, landedSwap = y+s, isSwap
		if isSwap {
			break
		}
	}
	if destY != y {
		cell.VelocityY = vy
		writeMove(w, x, y, x, destY, cell, frame, landedSwap)
		return
	}

	// Diagonal fall, hash-ordered.
	leftFirst := hashutil.Bool(int32(x), int32(y), frame)
	dxs := [2]int{-1, 1}
	if !leftFirst {
		dxs = [2]int{1, -1}
	}
	for _, dx := range dxs {
		tx, ty := x+dx, y+1
		if ok, isSwap := canMoveTo(w, mats, cell.MaterialID, tx, ty); ok {
			cell.VelocityY = vy
			writeMove(w, x, y, tx, ty, cell, frame, isSwap)
			return
		}
	}

	// Horizontal dispersion.
	dispersion := int(mats.Get(cell.MaterialID).DispersionRate)
	spread := dispersion
	if wasFreeFalling {
		spread += int(absI8(vy)) / 3
	}
	spread += hashutil.SignedJitter(int32(x), int32(y), frame)
	if spread < 1 {
		spread = 1
	}

	if wasFreeFalling && cell.VelocityX == 0 {
		if hashutil.Bool(int32(x), int32(y), frame+2) {
			cell.VelocityX = 4
		} else {
			cell.VelocityX = -4
		}
	}

	primaryDir := 1
	if cell.VelocityX != 0 {
		if cell.VelocityX < 0 {
			primaryDir = -1
		}
	} else if !hashutil.Bool(int32(x), int32(y), frame+3) {
		primaryDir = -1
	}
	secondaryDir := -primaryDir

	primaryDest, primaryOK, primarySwap := furthestReachable(w, mats, cell.MaterialID, x, y, primaryDir, spread)
	secondaryDest, secondaryOK, secondarySwap := furthestReachable(w, mats, cell.MaterialID, x, y, secondaryDir, spread)

	switch {
	case primaryOK && (!secondaryOK || absI(primaryDest-x) >= absI(secondaryDest-x)):
		cell.VelocityX = int8(float32(cell.VelocityX) * 7 / 8)
		if cell.VelocityX == 0 {
			cell.VelocityX = int8(primaryDir)
		}
		cell.VelocityY = 0
		writeMove(w, x, y, primaryDest, y, cell, frame, primarySwap)
	case secondaryOK:
		cell.VelocityX = -int8(float32(cell.VelocityX) * 7 / 8)
		if cell.VelocityX == 0 {
			cell.VelocityX = int8(secondaryDir)
		}
		cell.VelocityY = 0
		writeMove(w, x, y, secondaryDest, y, cell, frame, secondarySwap)
	default:
		cell.VelocityX /= 2
		cell.VelocityY = 0
		writeStay(w, x, y, cell)
	}
}

// furthestReachable walks up to `spread` cells in direction dir from
// (x,y) and returns the furthest legal destination (spec §4.2 step 6).
func furthestReachable(w World, mats *material.Table, id material.ID, x, y, dir, spread int) (destX int, ok bool, isSwap bool) {
	destX, ok = x, false
	for s := 1; s <= spread; s++ {
		tx := x + dir*s
		o, sw := canMoveTo(w, mats, id, tx, y)
		if !o {
			break
		}
		destX, ok, isSwap = tx, true, sw
		if sw {
			break
		}
	}
	return destX, ok, isSwap
}

func absI(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func absI8(v int8) int8 {
	if v < 0 {
		return -v
	}
	return v
}
