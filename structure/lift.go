package structure

import "github.com/gekko3d/sandforge/grid"

// LiftTile mirrors spec §3 "Lifts" dense tile.
type LiftTile struct {
	LiftID     uint16
	MaterialID uint8
}

// LiftColumn is the vertical run a lift_id belongs to.
type LiftColumn struct {
	ColX       int
	MinY, MaxY int
	LiftForce  float32
}

// PlaceLift mirrors PlaceBelt but merges vertically (spec §4.4
// "Lifts: Placement identical to belts but vertical merge").
func (m *Manager) PlaceLift(x, y int) (PlacementResult, error) {
	x0, y0 := snap(x, LiftBlock), snap(y, LiftBlock)
	ghost, ok := footprintPlaceable(m.Grid, m.Grid.Materials(), x0, y0, LiftBlock, LiftBlock)
	if !ok {
		return Invalid, ErrInvalidPlacement
	}

	idx := packIndex(m.Grid, x0, y0)
	colX := x0

	var col *LiftColumn
	var liftID uint16
	for id, c := range m.liftCols {
		if c.ColX != colX {
			continue
		}
		if y0+LiftBlock == c.MinY {
			c.MinY = y0
			col, liftID = c, id
			break
		}
		if c.MaxY == y0 {
			c.MaxY = y0 + LiftBlock
			col, liftID = c, id
			break
		}
	}
	if col == nil {
		liftID = m.nextLift
		m.nextLift++
		col = &LiftColumn{ColX: colX, MinY: y0, MaxY: y0 + LiftBlock, LiftForce: m.LiftMult}
		m.liftCols[liftID] = col
	}

	m.lifts[idx] = LiftTile{LiftID: liftID, MaterialID: uint8(m.Tiles.Lift)}
	m.stampFootprint(x0, y0, LiftBlock, LiftBlock, StructureLift, ghost)
	if !ghost {
		m.paintLift(x0, y0)
	}
	m.Grid.ChunkPtr(x0/grid.ChunkSize, y0/grid.ChunkSize).Flags |= grid.HasStructure

	if ghost {
		return ValidGhost, nil
	}
	return Valid, nil
}

// RemoveLift reverts a lift footprint and shrinks/removes its column.
func (m *Manager) RemoveLift(x, y int) {
	x0, y0 := snap(x, LiftBlock), snap(y, LiftBlock)
	idx := packIndex(m.Grid, x0, y0)
	tile, ok := m.lifts[idx]
	if !ok {
		return
	}
	delete(m.lifts, idx)
	ghost := m.Grid.Cell(x0, y0).StructureID == StructureNone
	m.revertFootprint(x0, y0, LiftBlock, LiftBlock, ghost)

	col := m.liftCols[tile.LiftID]
	if col == nil {
		return
	}
	if y0 == col.MinY {
		col.MinY += LiftBlock
	} else if y0+LiftBlock == col.MaxY {
		col.MaxY -= LiftBlock
	}
	if col.MinY >= col.MaxY {
		delete(m.liftCols, tile.LiftID)
	}
}

func (m *Manager) paintLift(x0, y0 int) {
	for y := y0; y < y0+LiftBlock; y++ {
		for x := x0; x < x0+LiftBlock; x++ {
			m.Grid.SetCellRaw(x, y, grid.Cell{MaterialID: m.Tiles.Lift, StructureID: StructureLift})
			m.Grid.MarkDirty(x, y)
		}
	}
}

func (m *Manager) activateGhostLifts(_ uint16) {
	for idx, tile := range m.lifts {
		x, y := idx%m.Grid.Width, idx/m.Grid.Width
		c := m.Grid.Cell(x, y)
		if c.StructureID != StructureNone {
			continue
		}
		if footprintClear(m.Grid, x, y, LiftBlock, LiftBlock) {
			m.paintLift(x, y)
		}
		_ = tile
	}
}

// LiftForceOnClusters implements spec §4.4 "Force on clusters/rigid
// bodies inside the lift zone": F_y = -g*LIFT_MULT*mass, i.e. a
// mass-independent acceleration of -g*LIFT_MULT integrated over dt.
func (m *Manager) LiftForceOnClusters(gravity, dt float32) {
	for _, col := range m.liftCols {
		for _, c := range m.Cluster.All() {
			if c.IsSleeping {
				continue
			}
			for _, p := range c.Pixels {
				wx, wy := c.LocalToWorldCell(p)
				if wx < col.ColX || wx >= col.ColX+LiftBlock {
					continue
				}
				if wy < col.MinY || wy >= col.MaxY {
					continue
				}
				c.LinearVelocity[1] += -gravity * col.LiftForce * dt
				c.IsOnLift = true
				break
			}
		}
	}
}
