package structure

import "github.com/gekko3d/sandforge/grid"

// WallTile mirrors spec §3 "Walls" dense tile: static, no per-tick
// work, contributes only terrain colliders.
type WallTile struct {
	Exists  bool
	IsGhost bool
}

const wallBlock = 8

// PlaceWall places a static 8×8 block (spec §4.4 "Walls").
func (m *Manager) PlaceWall(x, y int) (PlacementResult, error) {
	x0, y0 := snap(x, wallBlock), snap(y, wallBlock)
	ghost, ok := footprintPlaceable(m.Grid, m.Grid.Materials(), x0, y0, wallBlock, wallBlock)
	if !ok {
		return Invalid, ErrInvalidPlacement
	}
	idx := packIndex(m.Grid, x0, y0)
	m.walls[idx] = WallTile{Exists: true, IsGhost: ghost}
	m.stampFootprint(x0, y0, wallBlock, wallBlock, StructureWall, ghost)
	if !ghost {
		m.paintWall(x0, y0)
	}
	m.Grid.ChunkPtr(x0/grid.ChunkSize, y0/grid.ChunkSize).Flags |= grid.HasStructure
	if ghost {
		return ValidGhost, nil
	}
	return Valid, nil
}

// RemoveWall reverts a wall footprint to Air (non-ghost) or leaves it
// unchanged (ghost), per spec §3 "Lifecycle".
func (m *Manager) RemoveWall(x, y int) {
	x0, y0 := snap(x, wallBlock), snap(y, wallBlock)
	idx := packIndex(m.Grid, x0, y0)
	tile, ok := m.walls[idx]
	if !ok {
		return
	}
	delete(m.walls, idx)
	m.revertFootprint(x0, y0, wallBlock, wallBlock, tile.IsGhost)
}

func (m *Manager) paintWall(x0, y0 int) {
	for y := y0; y < y0+wallBlock; y++ {
		for x := x0; x < x0+wallBlock; x++ {
			m.Grid.SetCellRaw(x, y, grid.Cell{MaterialID: m.Tiles.Wall, StructureID: StructureWall})
			m.Grid.MarkDirty(x, y)
		}
	}
}

func (m *Manager) activateGhostWalls(_ uint16) {
	for idx, tile := range m.walls {
		if !tile.IsGhost {
			continue
		}
		x, y := idx%m.Grid.Width, idx/m.Grid.Width
		if footprintClear(m.Grid, x, y, wallBlock, wallBlock) {
			tile.IsGhost = false
			m.walls[idx] = tile
			m.paintWall(x, y)
		}
	}
}
