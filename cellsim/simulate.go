package cellsim

import (
	"github.com/gekko3d/sandforge/grid"
	"github.com/gekko3d/sandforge/material"
	"github.com/gekko3d/sandforge/telemetry"
)

// Simulator advances the cell grid one tick, chunk by chunk, following
// spec §4.2's per-cell guard and iteration order.
type Simulator struct {
	Grid   *grid.Grid
	Config Config

	// Metrics is optional; when set, every dispatched SimulateCell call
	// is counted into it (spec §8 "no double-processing" diagnostics).
	Metrics *telemetry.Metrics
}

// NewSimulator builds a Simulator with the default environment
// constants; override Config afterward if the host's config.Config
// differs.
func NewSimulator(g *grid.Grid) *Simulator {
	return &Simulator{Grid: g, Config: DefaultConfig()}
}

// SimulateChunk processes one chunk's extended region (core ±Halo,
// clipped to world bounds) for the given frame. Safe to call
// concurrently for chunks within the same checkerboard group, since
// SelectGroups guarantees their extended regions never overlap.
func (s *Simulator) SimulateChunk(cc grid.ChunkCoord, frame uint16) error {
	g := s.Grid
	mats := g.Materials()

	x0 := cc.X*grid.ChunkSize - grid.Halo
	x1 := cc.X*grid.ChunkSize + grid.ChunkSize + grid.Halo
	y0 := cc.Y*grid.ChunkSize - grid.Halo
	y1 := cc.Y*grid.ChunkSize + grid.ChunkSize + grid.Halo
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > g.Width {
		x1 = g.Width
	}
	if y1 > g.Height {
		y1 = g.Height
	}

	// Bottom-up in Y (required for gravity cascades to fall in one
	// tick), row-alternating X to eliminate sideways bias.
	for y := y1 - 1; y >= y0; y-- {
		leftToRight := y&1 == 0
		if leftToRight {
			for x := x0; x < x1; x++ {
				s.simulateCell(g, mats, x, y, frame)
			}
		} else {
			for x := x1 - 1; x >= x0; x-- {
				s.simulateCell(g, mats, x, y, frame)
			}
		}
	}
	return nil
}

func (s *Simulator) simulateCell(g *grid.Grid, mats *material.Table, x, y int, frame uint16) {
	cell := g.Cell(x, y)

	if cell.FrameUpdated == frame || cell.IsAir() || !cell.IsLoose() {
		return
	}
	behavior := mats.Behavior(cell.MaterialID)
	if behavior == material.Static {
		return
	}

	cell.FrameUpdated = frame
	if s.Metrics != nil {
		s.Metrics.CellsSimulated.Inc()
	}

	switch behavior {
	case material.Powder:
		stepPowder(g, mats, x, y, cell, frame, s.Config)
	case material.Liquid:
		stepLiquid(g, mats, x, y, cell, frame, s.Config)
	case material.Gas:
		stepGas(g, mats, x, y, cell, frame, s.Config)
	}
}
