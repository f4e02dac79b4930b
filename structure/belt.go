package structure

import (
	"github.com/gekko3d/sandforge/grid"
	"github.com/gekko3d/sandforge/material"
)

// BeltTile mirrors spec §3 "Belts" sparse tile.
type BeltTile struct {
	Direction Direction
	BeltID    uint16
	IsGhost   bool
}

// BeltRun is the horizontal run a belt_id belongs to.
type BeltRun struct {
	RowY        int
	MinX, MaxX  int
	Direction   Direction
	Speed       int
	FrameOffset uint16
}

// PlaceBelt implements spec §4.4 "Belts: Placement" — snaps to 8×8,
// rejects overlap with hard terrain/other structures, merges into an
// adjacent same-direction same-row run.
func (m *Manager) PlaceBelt(x, y int, dir Direction, speed int) (PlacementResult, error) {
	x0, y0 := snap(x, BeltBlock), snap(y, BeltBlock)
	ghost, ok := footprintPlaceable(m.Grid, m.Grid.Materials(), x0, y0, BeltBlock, BeltBlock)
	if !ok {
		return Invalid, ErrInvalidPlacement
	}

	idx := packIndex(m.Grid, x0, y0)
	rowY := y0

	// Try merge with an adjacent same-direction, same-row run.
	var run *BeltRun
	var beltID uint16
	for id, r := range m.beltRuns {
		if r.RowY != rowY || r.Direction != dir {
			continue
		}
		if x0+BeltBlock == r.MinX {
			r.MinX = x0
			run, beltID = r, id
			break
		}
		if r.MaxX == x0 {
			r.MaxX = x0 + BeltBlock
			run, beltID = r, id
			break
		}
	}
	if run == nil {
		beltID = m.nextBelt
		m.nextBelt++
		run = &BeltRun{RowY: rowY, MinX: x0, MaxX: x0 + BeltBlock, Direction: dir, Speed: speed}
		m.beltRuns[beltID] = run
	}

	m.belts[idx] = BeltTile{Direction: dir, BeltID: beltID, IsGhost: ghost}
	m.stampFootprint(x0, y0, BeltBlock, BeltBlock, StructureBelt, ghost)
	if !ghost {
		m.paintBelt(x0, y0)
	}
	m.Grid.ChunkPtr(x0/grid.ChunkSize, y0/grid.ChunkSize).Flags |= grid.HasStructure

	if ghost {
		return ValidGhost, nil
	}
	return Valid, nil
}

// RemoveBelt implements spec §4.4 "Belts: Removal may split a belt
// into two with a new belt_id". Footprint cells revert to Air unless
// ghost (spec §3 "Lifecycle").
func (m *Manager) RemoveBelt(x, y int) {
	x0, y0 := snap(x, BeltBlock), snap(y, BeltBlock)
	idx := packIndex(m.Grid, x0, y0)
	tile, ok := m.belts[idx]
	if !ok {
		return
	}
	delete(m.belts, idx)
	m.revertFootprint(x0, y0, BeltBlock, BeltBlock, tile.IsGhost)

	run := m.beltRuns[tile.BeltID]
	if run == nil {
		return
	}
	if x0 == run.MinX {
		run.MinX += BeltBlock
	} else if x0+BeltBlock == run.MaxX {
		run.MaxX -= BeltBlock
	} else {
		// Split: right portion gets a new belt id.
		newID := m.nextBelt
		m.nextBelt++
		newRun := &BeltRun{RowY: run.RowY, MinX: x0 + BeltBlock, MaxX: run.MaxX, Direction: run.Direction, Speed: run.Speed}
		m.beltRuns[newID] = newRun
		run.MaxX = x0
		for rx := newRun.MinX; rx < newRun.MaxX; rx += BeltBlock {
			i := packIndex(m.Grid, rx, run.RowY)
			if t, ok := m.belts[i]; ok {
				t.BeltID = newID
				m.belts[i] = t
			}
		}
	}
	if run.MinX >= run.MaxX {
		delete(m.beltRuns, tile.BeltID)
	}
}

func (m *Manager) stampFootprint(x0, y0, w, h int, structID uint8, ghost bool) {
	if ghost {
		return
	}
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			c := m.Grid.Cell(x, y)
			c.StructureID = structID
			m.Grid.SetCellRaw(x, y, c)
		}
	}
}

func (m *Manager) revertFootprint(x0, y0, w, h int, ghost bool) {
	if ghost {
		return
	}
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			m.Grid.SetCellRaw(x, y, grid.AirCell)
			m.Grid.MarkDirty(x, y)
		}
	}
}

func (m *Manager) paintBelt(x0, y0 int) {
	for y := y0; y < y0+BeltBlock; y++ {
		for x := x0; x < x0+BeltBlock; x++ {
			m.Grid.SetCellRaw(x, y, grid.Cell{MaterialID: m.Tiles.Belt, StructureID: StructureBelt})
			m.Grid.MarkDirty(x, y)
		}
	}
}

func (m *Manager) activateGhostBelts(_ uint16) {
	for idx, tile := range m.belts {
		if !tile.IsGhost {
			continue
		}
		x, y := idx%m.Grid.Width, idx/m.Grid.Width
		if footprintClear(m.Grid, x, y, BeltBlock, BeltBlock) {
			tile.IsGhost = false
			m.belts[idx] = tile
			m.paintBelt(x, y)
		}
	}
}

// BeltCellMoveJob implements spec §4.4 belt "Cell move job". A belt
// run runs on a tick iff (frame-frameOffset)%speed==0; each column is
// scanned from the leading edge backward, moving every loose
// Powder/Liquid cell sitting above the surface one step in the belt
// direction iff the destination is Air, stopping the column scan on a
// belt tile, static cell, or cluster-owned cell.
func (m *Manager) BeltCellMoveJob(frame uint16) {
	mats := m.Grid.Materials()
	for id, run := range m.beltRuns {
		if run.Speed <= 0 {
			continue // spec §8 "Belt idempotence (stopped)"
		}
		if int(frame-run.FrameOffset)%run.Speed != 0 {
			continue
		}
		_ = id
		cols := make([]int, 0, (run.MaxX-run.MinX)/BeltBlock)
		for x := run.MinX; x < run.MaxX; x++ {
			cols = append(cols, x)
		}
		if run.Direction == Right {
			for i, j := 0, len(cols)-1; i < j; i, j = i+1, j-1 {
				cols[i], cols[j] = cols[j], cols[i]
			}
		}
		for _, x := range cols {
			m.scanBeltColumn(mats, x, run)
		}
	}
}

func (m *Manager) scanBeltColumn(mats *material.Table, x int, run *BeltRun) {
	dirX := int(run.Direction)
	for y := run.RowY - 1; ; y-- {
		c := m.Grid.Cell(x, y)
		if c.StructureID == StructureBelt || !c.IsLoose() {
			return
		}
		if !m.Grid.InBounds(x, y) {
			return
		}
		b := mats.Behavior(c.MaterialID)
		if !c.IsAir() && b == material.Static {
			return // stop scanning at a static barrier (spec §4.4)
		}
		if b != material.Powder && b != material.Liquid {
			continue
		}
		tx := x + dirX
		if !m.Grid.InBounds(tx, y) {
			continue
		}
		target := m.Grid.Cell(tx, y)
		if !target.IsAir() {
			continue
		}
		m.Grid.SetCellRaw(tx, y, c)
		m.Grid.SetCellRaw(x, y, grid.AirCell)
		m.Grid.MarkDirty(x, y)
		m.Grid.MarkDirty(tx, y)
	}
}

// BeltClusterCarry implements spec §4.4 belt "Cluster interaction":
// once per frame, any cluster pixel sitting on a belt's surface row
// within [min_x, max_x+8) gets vx overwritten to direction*carrySpeed.
func (m *Manager) BeltClusterCarry() {
	for _, run := range m.beltRuns {
		for _, c := range m.Cluster.All() {
			if c.IsSleeping {
				continue
			}
			for _, p := range c.Pixels {
				wx, wy := c.LocalToWorldCell(p)
				if wy != run.RowY {
					continue
				}
				if wx < run.MinX || wx >= run.MaxX+BeltBlock {
					continue
				}
				c.LinearVelocity[0] = float32(run.Direction) * m.BeltCarrySpeed
				c.IsOnBelt = true
				c.IsSleeping = false
				break
			}
		}
	}
}
