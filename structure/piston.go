package structure

import (
	"github.com/gekko3d/sandforge/cluster"
	"github.com/gekko3d/sandforge/grid"
	"github.com/gekko3d/sandforge/material"
)

// MaxTravel is the piston's maximum fill extent, in cells, reached at
// full stroke (spec §8 scenario 6: "shifted right by exactly
// MAX_TRAVEL (12) cells").
const MaxTravel = 12

// maxPushSearch bounds the push-chain scan (spec §4.4: "walk... up to
// 64 cells").
const maxPushSearch = 64

// Piston mirrors spec §3 "Pistons".
type Piston struct {
	OriginX, OriginY int
	Direction        Direction
	CurrentStrokeT   float32
	LastFillExtent   int32
	PlateClusterID   cluster.ID
	Stalled          bool
}

func (p Piston) pushDir() (dx, dy int) {
	switch p.Direction {
	case Right:
		return 1, 0
	case Left:
		return -1, 0
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	}
	return 1, 0
}

// PlacePiston places a 16×16 piston block (spec §4.4 "Pistons").
func (m *Manager) PlacePiston(x, y int, dir Direction) (PlacementResult, error) {
	x0, y0 := snap(x, PistonBlock), snap(y, PistonBlock)
	_, ok := footprintPlaceable(m.Grid, m.Grid.Materials(), x0, y0, PistonBlock, PistonBlock)
	if !ok {
		return Invalid, ErrInvalidPlacement
	}
	idx := packIndex(m.Grid, x0, y0)
	pist := &Piston{OriginX: x0, OriginY: y0, Direction: dir}
	m.pistons[idx] = pist
	m.stampFootprint(x0, y0, PistonBlock, PistonBlock, StructurePiston, false)
	m.paintPistonBase(pist)
	m.Grid.ChunkPtr(x0/grid.ChunkSize, y0/grid.ChunkSize).Flags |= grid.HasStructure
	return Valid, nil
}

// RemovePiston tears down a piston block.
func (m *Manager) RemovePiston(x, y int) {
	x0, y0 := snap(x, PistonBlock), snap(y, PistonBlock)
	idx := packIndex(m.Grid, x0, y0)
	pist, ok := m.pistons[idx]
	if !ok {
		return
	}
	delete(m.pistons, idx)
	m.revertFootprint(x0, y0, PistonBlock, PistonBlock, false)
	_ = pist
}

// paintPistonBase writes the permanent static base bar along the
// block's trailing edge (spec §4.4 "Permanent base bar (static cells
// along one edge)"), using the host-supplied wall material as the
// static backing.
func (m *Manager) paintPistonBase(p *Piston) {
	dx, dy := p.pushDir()
	if dx != 0 {
		bx := p.OriginX
		if dx > 0 {
			bx = p.OriginX
		} else {
			bx = p.OriginX + PistonBlock - 1
		}
		for y := p.OriginY; y < p.OriginY+PistonBlock; y++ {
			m.Grid.SetCellRaw(bx, y, grid.Cell{MaterialID: m.Tiles.Wall, StructureID: StructurePiston})
			m.Grid.MarkDirty(bx, y)
		}
		return
	}
	by := p.OriginY
	if dy > 0 {
		by = p.OriginY
	} else {
		by = p.OriginY + PistonBlock - 1
	}
	for x := p.OriginX; x < p.OriginX+PistonBlock; x++ {
		m.Grid.SetCellRaw(x, by, grid.Cell{MaterialID: m.Tiles.Wall, StructureID: StructurePiston})
		m.Grid.MarkDirty(x, by)
	}
}

// GlobalStrokeT computes the shared piston phase (spec §4.4 "Global
// phase: all pistons share a single stroke_t ∈ [0,1] computed from a
// 3-second cycle with 15% dwell at each extreme").
func GlobalStrokeT(elapsedSeconds, cycleSeconds, dwell float32) float32 {
	if cycleSeconds <= 0 {
		return 0
	}
	phase := elapsedSeconds / cycleSeconds
	phase -= float32(int(phase))
	if phase < 0 {
		phase += 1
	}
	travelHalf := (1 - 2*dwell) / 2
	switch {
	case phase < travelHalf:
		return phase / travelHalf
	case phase < travelHalf+dwell:
		return 1
	case phase < 2*travelHalf+dwell:
		return 1 - (phase-travelHalf-dwell)/travelHalf
	default:
		return 0
	}
}

// PistonMotorUpdate implements spec §4.4 "Per-tick motor update" for
// every live piston, given the current global stroke phase.
func (m *Manager) PistonMotorUpdate(strokeT float32, frame uint16) {
	mats := m.Grid.Materials()
	for _, p := range m.pistons {
		p.CurrentStrokeT = strokeT
		desired := int32(strokeT*MaxTravel + 0.5)
		if desired > p.LastFillExtent {
			m.extendPiston(mats, p, frame)
		} else if desired < p.LastFillExtent {
			m.retractPiston(p, frame)
		}
	}
}

func (m *Manager) extendPiston(mats *material.Table, p *Piston, frame uint16) {
	dx, dy := p.pushDir()
	leadX, leadY := p.leadingEdge()

	rows := PistonBlock
	anyStall := false
	for i := 0; i < rows; i++ {
		rx, ry := leadCellForRow(p, leadX, leadY, i)
		if m.rowStalls(mats, rx, ry, dx, dy) {
			anyStall = true
		}
	}
	if anyStall {
		p.Stalled = true
		if m.Metrics != nil {
			m.Metrics.PistonStalls.Inc()
		}
		return // PistonStall (spec §7): local, not propagated, retried next tick
	}
	p.Stalled = false

	for i := 0; i < rows; i++ {
		rx, ry := leadCellForRow(p, leadX, leadY, i)
		m.shiftChain(mats, rx, ry, dx, dy, frame)
	}
	p.LastFillExtent++
	for i := 0; i < rows; i++ {
		fx, fy := leadCellForRow(p, leadX, leadY, i)
		m.Grid.SetCellRaw(fx, fy, grid.Cell{MaterialID: m.Tiles.Plate, StructureID: StructurePiston, FrameUpdated: frame})
		m.Grid.MarkDirty(fx, fy)
	}
}

// retractPiston clears the tip fill slice (spec §4.4 "Retracting
// always succeeds: clear the rearmost fill slice, wake neighboring
// cells") — the cell one step behind the current leading edge, which
// is the most recently written slice at the present LastFillExtent.
func (m *Manager) retractPiston(p *Piston, frame uint16) {
	dx, dy := p.pushDir()
	leadX, leadY := p.leadingEdge()
	tipX, tipY := leadX-dx, leadY-dy
	for i := 0; i < PistonBlock; i++ {
		rx, ry := leadCellForRow(p, tipX, tipY, i)
		m.Grid.SetCellRaw(rx, ry, grid.AirCell)
		m.Grid.MarkDirty(rx, ry)
		m.Grid.MarkDirty(rx+dx, ry+dy)
	}
	p.LastFillExtent--
}

func (p *Piston) leadingEdge() (int, int) {
	dx, dy := p.pushDir()
	x, y := p.OriginX, p.OriginY
	if dx > 0 {
		x = p.OriginX + PistonBlock
	} else if dx < 0 {
		x = p.OriginX - 1
	}
	if dy > 0 {
		y = p.OriginY + PistonBlock
	} else if dy < 0 {
		y = p.OriginY - 1
	}
	return x + dx*int(p.LastFillExtent), y + dy*int(p.LastFillExtent)
}

func leadCellForRow(p *Piston, leadX, leadY, row int) (int, int) {
	dx, dy := p.pushDir()
	if dx != 0 {
		return leadX, p.OriginY + row
	}
	return p.OriginX + row, leadY
}

func (m *Manager) rowStalls(mats *material.Table, x, y, dx, dy int) bool {
	for s := 0; s < maxPushSearch; s++ {
		cx, cy := x+dx*s, y+dy*s
		if !m.Grid.InBounds(cx, cy) {
			return true
		}
		c := m.Grid.Cell(cx, cy)
		if c.IsAir() {
			return false
		}
		if mats.Behavior(c.MaterialID) == material.Static {
			return true
		}
	}
	return true
}

func (m *Manager) shiftChain(mats *material.Table, x, y, dx, dy int, frame uint16) {
	for s := maxPushSearch - 1; s >= 0; s-- {
		cx, cy := x+dx*s, y+dy*s
		if !m.Grid.InBounds(cx, cy) {
			continue
		}
		c := m.Grid.Cell(cx, cy)
		if c.IsAir() {
			continue
		}
		nx, ny := cx+dx, cy+dy
		if !m.Grid.InBounds(nx, ny) {
			continue
		}
		c.FrameUpdated = frame
		m.Grid.SetCellRaw(nx, ny, c)
		m.Grid.MarkDirty(nx, ny)
	}
	m.Grid.SetCellRaw(x, y, grid.AirCell)
	m.Grid.MarkDirty(x, y)
}
