package structure

import (
	"testing"

	"github.com/gekko3d/sandforge/cluster"
	"github.com/gekko3d/sandforge/grid"
	"github.com/gekko3d/sandforge/material"
)

func newTestManager(t *testing.T) (*Manager, material.ID, material.ID) {
	t.Helper()
	mats := material.NewTable()
	sand := mats.Register(material.Def{Name: "Sand", Behavior: material.Powder, Density: 100})
	wall := mats.Register(material.Def{Name: "Wall", Behavior: material.Static})
	g := grid.New(64, 64, mats)
	cm := cluster.NewManager(g)
	tiles := Tiles{Belt: wall, Lift: wall, Wall: wall, Plate: wall}
	return NewManager(g, cm, tiles), sand, wall
}

func TestPlaceBeltOnClearGroundIsImmediatelyActive(t *testing.T) {
	m, _, _ := newTestManager(t)
	res, err := m.PlaceBelt(0, 0, Right, 1)
	if err != nil {
		t.Fatalf("PlaceBelt failed: %v", err)
	}
	if res != Valid {
		t.Errorf("expected Valid placement on clear ground, got %v", res)
	}
	if c := m.Grid.Cell(0, 0); c.StructureID != StructureBelt {
		t.Errorf("expected cell (0,0) to carry StructureBelt, got %d", c.StructureID)
	}
}

func TestPlaceBeltMergesAdjacentRun(t *testing.T) {
	m, _, _ := newTestManager(t)
	_, _ = m.PlaceBelt(0, 0, Right, 1)
	_, _ = m.PlaceBelt(BeltBlock, 0, Right, 1)

	if len(m.beltRuns) != 1 {
		t.Errorf("expected adjacent same-direction belts to merge into one run, got %d runs", len(m.beltRuns))
	}
}

func TestRemoveBeltSplitsRun(t *testing.T) {
	m, _, _ := newTestManager(t)
	_, _ = m.PlaceBelt(0, 0, Right, 1)
	_, _ = m.PlaceBelt(BeltBlock, 0, Right, 1)
	_, _ = m.PlaceBelt(2*BeltBlock, 0, Right, 1)

	m.RemoveBelt(BeltBlock, 0)

	if len(m.beltRuns) != 2 {
		t.Errorf("expected removing the middle segment to split the run in two, got %d runs", len(m.beltRuns))
	}
}

func TestBeltCarriesSandPileForward(t *testing.T) {
	m, sand, _ := newTestManager(t)
	_, _ = m.PlaceBelt(0, 10, Right, 1) // snaps to the block at y=8..15
	m.Grid.SetCellRaw(0, 7, grid.Cell{MaterialID: sand})

	m.BeltCellMoveJob(1)

	if c := m.Grid.Cell(1, 7); c.MaterialID != sand {
		t.Errorf("expected sand to move one cell right along the belt, found material %d at (1,7)", c.MaterialID)
	}
	if c := m.Grid.Cell(0, 7); c.MaterialID == sand {
		t.Errorf("expected the source cell to be vacated")
	}
}

func TestBeltIdleWhenStopped(t *testing.T) {
	m, sand, _ := newTestManager(t)
	_, _ = m.PlaceBelt(0, 10, Right, 0) // snaps to the block at y=8..15
	m.Grid.SetCellRaw(0, 7, grid.Cell{MaterialID: sand})

	m.BeltCellMoveJob(1)

	if c := m.Grid.Cell(0, 7); c.MaterialID != sand {
		t.Errorf("expected a zero-speed belt to leave cells untouched")
	}
}

func TestBeltScanStopsAtStaticBarrier(t *testing.T) {
	m, sand, wall := newTestManager(t)
	_, _ = m.PlaceBelt(0, 10, Right, 1)
	// A static barrier sits directly above the belt surface; the loose
	// sand resting above the barrier must not be transported past it.
	m.Grid.SetCellRaw(0, 7, grid.Cell{MaterialID: wall})
	m.Grid.SetCellRaw(0, 6, grid.Cell{MaterialID: sand})

	m.BeltCellMoveJob(1)

	if c := m.Grid.Cell(0, 6); c.MaterialID != sand {
		t.Errorf("expected sand resting above a static barrier to stay put, found material %d", c.MaterialID)
	}
}

func TestLiftForceAccelerationIsMassIndependent(t *testing.T) {
	m, _, wall := newTestManager(t)
	if _, err := m.PlaceLift(0, 0); err != nil {
		t.Fatalf("PlaceLift failed: %v", err)
	}

	light, _ := m.Cluster.CreateCluster([]cluster.Pixel{{MaterialID: wall}}, cluster.Pose{X: 0, Y: 4}, 1)
	heavy, _ := m.Cluster.CreateCluster([]cluster.Pixel{{MaterialID: wall}}, cluster.Pose{X: 0, Y: 4}, 100)

	m.LiftForceOnClusters(20, 1.0/60.0)

	lc, _ := m.Cluster.Cluster(light)
	hc, _ := m.Cluster.Cluster(heavy)
	if lc.LinearVelocity.Y() != hc.LinearVelocity.Y() {
		t.Errorf("expected lift acceleration to be mass-independent, got light=%f heavy=%f", lc.LinearVelocity.Y(), hc.LinearVelocity.Y())
	}
	if lc.LinearVelocity.Y() >= 0 {
		t.Errorf("expected lift force to accelerate the cluster upward (negative Y), got %f", lc.LinearVelocity.Y())
	}
}

func TestPlaceWallOverlappingStructureIsInvalid(t *testing.T) {
	m, _, _ := newTestManager(t)
	if _, err := m.PlaceWall(0, 0); err != nil {
		t.Fatalf("first PlaceWall should succeed: %v", err)
	}
	if _, err := m.PlaceWall(0, 0); err == nil {
		t.Errorf("expected overlapping wall placement to be rejected")
	}
}

func TestGhostBeltActivatesWhenFootprintClears(t *testing.T) {
	m, sand, _ := newTestManager(t)
	m.Grid.SetCellRaw(0, 0, grid.Cell{MaterialID: sand})

	res, err := m.PlaceBelt(0, 0, Right, 1)
	if err != nil {
		t.Fatalf("PlaceBelt failed: %v", err)
	}
	if res != ValidGhost {
		t.Errorf("expected placement over loose sand to be a ghost, got %v", res)
	}

	// Clear the obstruction and run the activation scan.
	m.Grid.SetCellRaw(0, 0, grid.AirCell)
	for y := 0; y < BeltBlock; y++ {
		for x := 0; x < BeltBlock; x++ {
			m.Grid.SetCellRaw(x, y, grid.AirCell)
		}
	}
	m.GhostActivationScan(1)

	if c := m.Grid.Cell(0, 0); c.StructureID != StructureBelt {
		t.Errorf("expected the ghost belt to activate once its footprint cleared")
	}
}

func TestGlobalStrokeTTriangleWave(t *testing.T) {
	const cycle, dwell = 3.0, float32(0.15)
	start := GlobalStrokeT(0, cycle, dwell)
	mid := GlobalStrokeT(1.5, cycle, dwell)
	if start != 0 {
		t.Errorf("expected stroke_t=0 at cycle start, got %f", start)
	}
	if mid <= 0 || mid > 1 {
		t.Errorf("expected a mid-cycle stroke_t in (0,1], got %f", mid)
	}
}

func TestPistonExtendsTowardMaxTravel(t *testing.T) {
	m, _, _ := newTestManager(t)
	if _, err := m.PlacePiston(0, 0, Right); err != nil {
		t.Fatalf("PlacePiston failed: %v", err)
	}

	for frame := uint16(1); frame <= MaxTravel+2; frame++ {
		m.PistonMotorUpdate(1.0, frame)
	}

	p := m.pistons[packIndex(m.Grid, 0, 0)]
	if p.LastFillExtent != MaxTravel {
		t.Errorf("expected full stroke to reach MaxTravel=%d after repeated motor updates, got %d", MaxTravel, p.LastFillExtent)
	}
}
