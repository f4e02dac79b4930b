package grid

import "github.com/gekko3d/sandforge/material"

// CellFlag bits stored in Cell.Flags.
type CellFlag uint8

const (
	OnBelt CellFlag = 1 << iota
)

// Cell is the atomic unit of simulation. Exactly 10 bytes, packed, to
// keep a multi-million-cell grid cache-friendly.
type Cell struct {
	MaterialID    material.ID
	Flags         CellFlag
	FrameUpdated  uint16 // last tick this cell was simulated; wraps monotonically
	VelocityX     int8   // cells/tick, clamped to [-MaxVelocity, +MaxVelocity]
	VelocityY     int8
	Temperature   uint8  // reserved: wired but not read by the current sim
	StructureID   uint8  // structure type class claiming this cell, independent of MaterialID
	OwnerID       uint16 // 0 = loose; otherwise the cluster id that owns this cell
}

// IsAir reports whether the cell holds no material.
func (c Cell) IsAir() bool { return c.MaterialID == material.Air }

// IsLoose reports whether the cell is eligible for cell-simulator
// processing (not cluster-owned).
func (c Cell) IsLoose() bool { return c.OwnerID == 0 }

// AirCell is the canonical empty cell value.
var AirCell = Cell{}
