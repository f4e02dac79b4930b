// Package structure implements the belt, lift, wall, and piston
// overlays and the shared ghost/active activation rule (spec §4.4).
package structure

import (
	"github.com/gekko3d/sandforge/grid"
	"github.com/gekko3d/sandforge/material"
)

// Block sizes named in spec §6.
const (
	BeltBlock   = 8
	LiftBlock   = 8
	PistonBlock = 16
)

// PlacementResult mirrors spec §6's placement-result enum.
type PlacementResult int

const (
	Invalid PlacementResult = iota
	Valid
	ValidGhost
)

// Direction is a belt/lift/piston travel direction.
type Direction int8

const (
	Right Direction = 1
	Left  Direction = -1
	Up    Direction = -2
	Down  Direction = 2
)

func packIndex(g *grid.Grid, x, y int) int { return y*g.Width + x }

// footprintClear reports whether every cell in the w×h block anchored
// at (x0,y0) is currently Air — the activation predicate shared by
// every structure kind (spec §4.4 "ghost/active").
func footprintClear(g *grid.Grid, x0, y0, w, h int) bool {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			if !g.InBounds(x, y) {
				return false
			}
			if !g.Cell(x, y).IsAir() {
				return false
			}
		}
	}
	return true
}

// footprintPlaceable reports whether a w×h block anchored at (x0,y0)
// may be placed: every cell must be soft-terrain-or-air and carry no
// existing structure id (spec §4.4 "Placement": "Reject if any target
// cell is non-soft-terrain and non-air (including other structures)").
func footprintPlaceable(g *grid.Grid, mats *material.Table, x0, y0, w, h int) (ghost bool, ok bool) {
	anyNonAir := false
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			if !g.InBounds(x, y) {
				return false, false
			}
			c := g.Cell(x, y)
			if c.StructureID != 0 {
				return false, false
			}
			if c.IsAir() {
				continue
			}
			if mats.Behavior(c.MaterialID) == material.Static {
				return false, false
			}
			anyNonAir = true
		}
	}
	return anyNonAir, true
}

// snap rounds a coordinate down to the nearest multiple of block.
func snap(v, block int) int {
	if v >= 0 {
		return (v / block) * block
	}
	return -(((-v + block - 1) / block) * block)
}
