package structure

import (
	"github.com/pkg/errors"

	"github.com/gekko3d/sandforge/cluster"
	"github.com/gekko3d/sandforge/grid"
	"github.com/gekko3d/sandforge/material"
	"github.com/gekko3d/sandforge/telemetry"
)

// ErrInvalidPlacement is returned when a structure footprint overlaps
// another structure or a hard material (spec §7).
var ErrInvalidPlacement = errors.New("structure: invalid placement")

// StructureID values, independent of material id, claimed into a
// cell's StructureID field (spec §3 Cell).
const (
	StructureNone uint8 = iota
	StructureBelt
	StructureLift
	StructureWall
	StructurePiston
)

// Tiles is the decorative material set structures paint into the
// grid once active. The host supplies these at world creation so the
// core never hard-codes visual material ids.
type Tiles struct {
	Belt  material.ID
	Lift  material.ID
	Wall  material.ID
	Plate material.ID // piston plate / fill
}

// Manager owns all four structure stores and the ghost activation
// scan (spec §4.4).
type Manager struct {
	Grid    *grid.Grid
	Cluster *cluster.Manager
	Tiles   Tiles

	belts    map[int]BeltTile
	beltRuns map[uint16]*BeltRun
	nextBelt uint16

	lifts      map[int]LiftTile
	liftCols   map[uint16]*LiftColumn
	nextLift   uint16

	walls map[int]WallTile

	pistons   map[int]*Piston
	nextPiston int

	PhaseCycleSeconds float32
	PhaseDwell        float32
	BeltCarrySpeed    float32
	LiftMult          float32

	// Metrics is optional; when set, piston stalls are counted into it.
	Metrics *telemetry.Metrics
}

func NewManager(g *grid.Grid, cm *cluster.Manager, tiles Tiles) *Manager {
	return &Manager{
		Grid:              g,
		Cluster:           cm,
		Tiles:             tiles,
		belts:             make(map[int]BeltTile),
		beltRuns:          make(map[uint16]*BeltRun),
		nextBelt:          1,
		lifts:             make(map[int]LiftTile),
		liftCols:          make(map[uint16]*LiftColumn),
		nextLift:          1,
		walls:             make(map[int]WallTile),
		pistons:           make(map[int]*Piston),
		PhaseCycleSeconds: 3.0,
		PhaseDwell:        0.15,
		BeltCarrySpeed:    30,
		LiftMult:          1.2,
	}
}

// GhostActivationScan runs once per tick after the cell sim (spec
// §4.4): every ghost tile in the belt, lift and wall stores becomes
// active iff its block footprint is now fully Air. Pistons are not
// scanned; PlacePiston never creates a ghost.
func (m *Manager) GhostActivationScan(frame uint16) {
	m.activateGhostBelts(frame)
	m.activateGhostLifts(frame)
	m.activateGhostWalls(frame)
}
