// Package sandforge is the host control surface for the falling-sand
// core (spec §6): world creation, cell access, structure placement,
// cluster lifecycle, and the fixed-step Tick that advances every
// subsystem in the order spec §5 mandates.
package sandforge

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/gekko3d/sandforge/cellsim"
	"github.com/gekko3d/sandforge/cluster"
	"github.com/gekko3d/sandforge/collider"
	"github.com/gekko3d/sandforge/config"
	"github.com/gekko3d/sandforge/grid"
	"github.com/gekko3d/sandforge/material"
	"github.com/gekko3d/sandforge/orchestrator"
	"github.com/gekko3d/sandforge/schedule"
	"github.com/gekko3d/sandforge/structure"
	"github.com/gekko3d/sandforge/telemetry"
)

// WorldHandle is the opaque host-facing session token (spec §6
// "create_world... -> WorldHandle").
type WorldHandle uuid.UUID

// World owns every subsystem and drives the per-tick sequence.
type World struct {
	Handle WorldHandle

	Grid       *grid.Grid
	Materials  *material.Table
	Clusters   *cluster.Manager
	Structures *structure.Manager
	Sim        *cellsim.Simulator
	Collider   *collider.Bridge

	pool   *schedule.Pool
	clock  *orchestrator.Clock
	logger orchestrator.Logger
	cfg    *config.Config

	pistonElapsed        float32
	Metrics              *telemetry.Metrics
	lastDisplacementLost uint64
}

// CreateWorld implements spec §6 "create_world(width, height,
// material_table) -> WorldHandle".
func CreateWorld(width, height int, materials *material.Table, tiles structure.Tiles) *World {
	g := grid.New(width, height, materials)
	cm := cluster.NewManager(g)
	sm := structure.NewManager(g, cm, tiles)

	cfg, _ := config.Load(nil)

	w := &World{
		Handle:     WorldHandle(uuid.New()),
		Grid:       g,
		Materials:  materials,
		Clusters:   cm,
		Structures: sm,
		Sim:        cellsim.NewSimulator(g),
		Collider:   collider.NewBridge(g),
		pool:       schedule.NewPool(),
		clock:      orchestrator.NewClock(1.0 / 60.0),
		logger:     orchestrator.NewNopLogger(),
		cfg:        cfg,
	}

	if cfg != nil {
		w.Sim.Config = cellsim.Config{
			MaxVelocity:    cfg.CellSim.MaxVelocity,
			GravityPerTick: cfg.CellSim.GravityPerTick,
		}
		w.Clusters.Config = cluster.Config{
			DisplacementSearchRadius: cfg.Cluster.DisplacementSearchRadius,
			SleepPosTolerance:        cfg.Cluster.SleepPosTolerance,
			SleepRotToleranceDeg:     cfg.Cluster.SleepRotToleranceDeg,
			LowVelFramesToSleep:      cfg.Cluster.LowVelFramesToSleep,
			MomentumFactor:           cfg.Cluster.MomentumFactor,
			MaxVelocity:              cfg.CellSim.MaxVelocity,
		}
		w.Structures.PhaseCycleSeconds = cfg.Structure.PistonCycleSeconds
		w.Structures.PhaseDwell = cfg.Structure.PistonDwell
		w.Structures.BeltCarrySpeed = cfg.Structure.BeltCarrySpeed
		w.Structures.LiftMult = cfg.Structure.LiftMult
	}

	return w
}

// SetLogger installs a host-supplied logger in place of the no-op default.
func (w *World) SetLogger(l orchestrator.Logger) { w.logger = l }

// EnableMetrics builds a fresh telemetry.Metrics bundle under the given
// namespace, wires it into every subsystem that feeds it (cell
// simulator, structure overlays, the world's own per-tick gauges), and
// returns it so the host can register its collectors with its own
// Prometheus registry. The core never starts its own HTTP server.
func (w *World) EnableMetrics(namespace string) *telemetry.Metrics {
	m := telemetry.NewMetrics(namespace)
	w.SetMetrics(m)
	return m
}

// SetMetrics wires a host-constructed telemetry.Metrics into the world
// and every subsystem that feeds it.
func (w *World) SetMetrics(m *telemetry.Metrics) {
	w.Metrics = m
	w.Sim.Metrics = m
	w.Structures.Metrics = m
}

// SetCell implements spec §6 "set_cell(x, y, material_id)".
func (w *World) SetCell(x, y int, id material.ID) error {
	return w.Grid.SetCell(x, y, id)
}

// GetCell implements spec §6 "get_cell(x, y) -> Cell".
func (w *World) GetCell(x, y int) (grid.Cell, error) {
	return w.Grid.GetCell(x, y)
}

// MarkChunkDirtyAt implements spec §6 "mark_chunk_dirty_at(x, y)".
func (w *World) MarkChunkDirtyAt(x, y int) error {
	return w.Grid.MarkChunkDirtyAt(x, y)
}

// PlaceBelt implements spec §6 "place_belt(x, y, direction)".
func (w *World) PlaceBelt(x, y int, dir structure.Direction, speed int) (structure.PlacementResult, error) {
	return w.Structures.PlaceBelt(x, y, dir, speed)
}

// RemoveBelt implements spec §6 "remove_belt(x, y)".
func (w *World) RemoveBelt(x, y int) { w.Structures.RemoveBelt(x, y) }

// PlaceLift implements spec §6 "place_lift(x, y)".
func (w *World) PlaceLift(x, y int) (structure.PlacementResult, error) {
	return w.Structures.PlaceLift(x, y)
}

// RemoveLift implements spec §6 "remove_lift(x, y)".
func (w *World) RemoveLift(x, y int) { w.Structures.RemoveLift(x, y) }

// PlaceWall implements spec §6 "place_wall(x, y)".
func (w *World) PlaceWall(x, y int) (structure.PlacementResult, error) {
	return w.Structures.PlaceWall(x, y)
}

// RemoveWall implements spec §6 "remove_wall(x, y)".
func (w *World) RemoveWall(x, y int) { w.Structures.RemoveWall(x, y) }

// PlacePiston implements spec §6 "place_piston(x, y, direction)".
func (w *World) PlacePiston(x, y int, dir structure.Direction) (structure.PlacementResult, error) {
	return w.Structures.PlacePiston(x, y, dir)
}

// RemovePiston implements spec §6 "remove_piston(x, y)".
func (w *World) RemovePiston(x, y int) { w.Structures.RemovePiston(x, y) }

// CreateCluster implements spec §6 "Cluster creation from a pixel
// list + world pose -> ClusterId".
func (w *World) CreateCluster(pixels []cluster.Pixel, pose cluster.Pose, mass float32) (cluster.ID, error) {
	id, err := w.Clusters.CreateCluster(pixels, pose, mass)
	if err != nil {
		return 0, errors.Wrap(ErrClusterLimitExceeded, err.Error())
	}
	return id, nil
}

// RemoveCluster implements spec §6 "Cluster removal by id".
func (w *World) RemoveCluster(id cluster.ID) { w.Clusters.RemoveCluster(id) }

// ActiveDirtyChunks implements spec §6 "active_dirty_chunks() ->
// iterator<ChunkIndex>".
func (w *World) ActiveDirtyChunks() []grid.ChunkCoord { return w.Grid.ActiveDirtyChunks() }

// Snapshot implements spec §6 "Grid snapshot for rendering".
func (w *World) Snapshot() grid.Snapshot { return w.Grid.Snapshot() }

// Tick implements spec §5's full frame sequence: structure force
// inject -> rigid-body step -> cluster stamp -> cell sim (A->B->C->D)
// -> belt cell move -> ghost activation -> dirty-state decay ->
// terrain collider publish.
func (w *World) Tick(ctx context.Context, dt float64) ([]collider.ChunkCollider, error) {
	start := time.Now()
	frame := w.clock.Frame

	// Pre-step force injection (spec §4.3 step 1, §4.4 belt/lift force).
	w.Structures.BeltClusterCarry()
	w.Structures.LiftForceOnClusters(w.Clusters.Integrator.Gravity, float32(dt))

	// Rigid-body step + cluster stamp/clear/sleep (spec §4.3 steps 2-5).
	w.Clusters.Tick(float32(dt), frame)

	// Cell simulation: four sequential checkerboard groups (spec §4.1, §5).
	groups := schedule.SelectGroups(w.Grid)
	for _, group := range groups {
		if err := w.pool.Run(ctx, group, func(cc grid.ChunkCoord) error {
			return w.Sim.SimulateChunk(cc, frame)
		}); err != nil {
			return nil, errors.Wrap(err, "sandforge: cell sim")
		}
	}

	// Belt cell-move job (spec §5 item 2).
	w.Structures.BeltCellMoveJob(frame)

	// Ghost activation scan (spec §4.4, runs once per tick after cell sim).
	w.Structures.GhostActivationScan(frame)

	// Piston global phase + motor update.
	w.pistonElapsed += float32(dt)
	phase := structure.GlobalStrokeT(w.pistonElapsed, w.Structures.PhaseCycleSeconds, w.Structures.PhaseDwell)
	w.Structures.PistonMotorUpdate(phase, frame)

	// Dirty-state decay (spec §4.1 end-of-tick housekeeping).
	w.Grid.DecayDirty()

	// Terrain collider publish (spec §4.5).
	colliders := w.Collider.BuildDirtyColliders()

	if w.Metrics != nil {
		w.Metrics.ActiveChunks.Set(float64(len(groups[0]) + len(groups[1]) + len(groups[2]) + len(groups[3])))
		w.Metrics.ActiveClusters.Set(float64(len(w.Clusters.All())))
		if lost := w.Clusters.DisplacementLost; lost > w.lastDisplacementLost {
			w.Metrics.DisplacementLost.Add(float64(lost - w.lastDisplacementLost))
			w.lastDisplacementLost = lost
		}
		w.Metrics.TickDuration.Observe(time.Since(start).Seconds())
	}

	w.clock.Advance()
	return colliders, nil
}
