package cluster

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/gekko3d/sandforge/grid"
)

// ErrClusterLimitExceeded is returned when the live cluster count would
// exceed the 16-bit id space (spec §7).
var ErrClusterLimitExceeded = errors.New("cluster: limit exceeded")

// Config carries the environment constants spec §6 names for cluster
// behavior.
type Config struct {
	DisplacementSearchRadius int
	SleepPosTolerance        float32
	SleepRotToleranceDeg     float32
	LowVelFramesToSleep      uint32
	MomentumFactor           float32
	// MaxVelocity is MAX_V (spec §6): the cap applied to a displaced
	// loose cell's momentum-transferred velocity.
	MaxVelocity int8
}

func DefaultConfig() Config {
	return Config{
		DisplacementSearchRadius: 16,
		SleepPosTolerance:        0.01,
		SleepRotToleranceDeg:     0.1,
		LowVelFramesToSleep:      30,
		MomentumFactor:           1.0,
		MaxVelocity:              16,
	}
}

// Manager owns every live cluster and bridges it to the grid (spec §4.3).
type Manager struct {
	Grid   *grid.Grid
	Config Config

	clusters map[ID]*Cluster
	nextID   ID

	Integrator *Integrator

	// DisplacementLost counts cells dropped because no empty
	// destination was found within the search radius (spec §7, §8).
	DisplacementLost uint64
}

func NewManager(g *grid.Grid) *Manager {
	return &Manager{
		Grid:       g,
		Config:     DefaultConfig(),
		clusters:   make(map[ID]*Cluster),
		nextID:     1,
		Integrator: NewIntegrator(),
	}
}

// CreateCluster registers a new cluster from a pixel list and initial
// pose (spec §6 "Cluster creation").
func (m *Manager) CreateCluster(pixels []Pixel, pose Pose, mass float32) (ID, error) {
	if m.nextID == 0 || len(m.clusters) >= 65534 {
		return 0, errors.Wrap(ErrClusterLimitExceeded, "create_cluster")
	}
	id := m.nextID
	m.nextID++
	c := &Cluster{
		ID:     id,
		Pixels: append([]Pixel(nil), pixels...),
		Pose:   pose,
		Mass:   mass,
	}
	m.clusters[id] = c
	return id, nil
}

// RemoveCluster clears a cluster's stamp and removes it from the
// manager.
func (m *Manager) RemoveCluster(id ID) {
	c, ok := m.clusters[id]
	if !ok {
		return
	}
	m.clearStamp(c)
	delete(m.clusters, id)
}

func (m *Manager) Cluster(id ID) (*Cluster, bool) {
	c, ok := m.clusters[id]
	return c, ok
}

// All returns every live cluster, in a stable order by id.
func (m *Manager) All() []*Cluster {
	out := make([]*Cluster, 0, len(m.clusters))
	for id := 1; id < int(m.nextID); id++ {
		if c, ok := m.clusters[ID(id)]; ok {
			out = append(out, c)
		}
	}
	return out
}

func (c *Cluster) eligibleForSleepSkip(cfg Config) bool {
	return c.IsSleeping && c.IsPixelsSynced &&
		!poseDelta(c.Pose, c.LastSyncedPose, cfg.SleepPosTolerance, cfg.SleepRotToleranceDeg)
}

// Tick runs the full cluster-manager frame sequence (spec §4.3):
// clear stamps, step the rigid body, enforce sleep, re-stamp.
// Pre-step force injection (belt/lift) is performed by the structure
// package before this call, per the orchestrator's ordering (§5).
func (m *Manager) Tick(dt float32, frame uint16) {
	active := m.All()

	for _, c := range active {
		if !c.eligibleForSleepSkip(m.Config) {
			m.clearStamp(c)
		}
	}

	m.Integrator.Step(active, dt)
	for _, c := range active {
		if !c.IsSleeping {
			m.Integrator.ResolveAgainstStatic(m.Grid, c)
		}
	}

	for _, c := range active {
		m.enforceSleep(c)
	}

	for _, c := range active {
		if c.eligibleForSleepSkip(m.Config) {
			continue
		}
		m.restamp(c, frame)
	}
}

func (m *Manager) clearStamp(c *Cluster) {
	g := m.Grid
	for _, p := range c.Pixels {
		x, y := c.LocalToWorldCell(p)
		if !g.InBounds(x, y) {
			continue
		}
		cell := g.Cell(x, y)
		if cell.OwnerID == uint16(c.ID) {
			g.SetCellRaw(x, y, grid.AirCell)
			g.MarkDirty(x, y)
		}
	}
	c.IsPixelsSynced = false
}

// enforceSleep implements spec §4.3 step 4: a cluster accrues
// low_velocity_frames only while its linear speed is under the
// threshold AND it is actually in contact with static terrain;
// an airborne-but-slow cluster (trajectory apex, mid-lift) must not
// force-sleep.
func (m *Manager) enforceSleep(c *Cluster) {
	speed := c.LinearVelocity.Len()
	if speed < 3 && c.ContactCount > 0 && !c.IsOnBelt {
		c.LowVelocityFrames++
		if c.LowVelocityFrames >= m.Config.LowVelFramesToSleep {
			c.IsSleeping = true
			c.LinearVelocity = mgl32.Vec2{}
			c.AngularVelocity = 0
		}
	} else {
		c.LowVelocityFrames = 0
	}
}

func (m *Manager) restamp(c *Cluster, frame uint16) {
	g := m.Grid
	mats := g.Materials()
	for _, p := range c.Pixels {
		x, y := c.LocalToWorldCell(p)
		if !g.InBounds(x, y) {
			continue // silently skipped per spec §4.3 "Failure semantics"
		}
		target := g.Cell(x, y)
		if !target.IsAir() && target.IsLoose() {
			m.displace(x, y, c)
		}
		g.SetCellRaw(x, y, grid.Cell{
			MaterialID:   p.MaterialID,
			OwnerID:      uint16(c.ID),
			FrameUpdated: frame,
		})
		g.MarkDirty(x, y)
	}
	_ = mats
	c.LastSyncedPose = c.Pose
	c.IsPixelsSynced = true
}

// displace implements spec §4.3 "Displacement algorithm": a bounded
// BFS from the blocked cell over the 8-neighborhood, biased toward
// falling, within Manhattan radius DisplacementSearchRadius.
func (m *Manager) displace(x, y int, c *Cluster) {
	dst, found := bfsFindEmpty(m.Grid, x, y, m.Config.DisplacementSearchRadius)
	if !found {
		m.DisplacementLost++
		// Dropped: no destination within radius (spec §7 DisplacementLost).
		m.Grid.SetCellRaw(x, y, grid.AirCell)
		m.Grid.MarkDirty(x, y)
		return
	}
	moved := m.Grid.Cell(x, y)
	mf := m.Config.MomentumFactor
	maxV := m.Config.MaxVelocity
	if maxV <= 0 {
		maxV = 16
	}
	moved.VelocityX = clampToI8(c.LinearVelocity.X()*mf*0.5, maxV)
	// Cluster velocity is already in grid space (+Y down), so no sign flip.
	moved.VelocityY = clampToI8(c.LinearVelocity.Y()*mf*0.5, maxV)
	m.Grid.SetCellRaw(x, y, grid.AirCell)
	m.Grid.SetCellRaw(dst.X, dst.Y, moved)
	m.Grid.MarkDirty(x, y)
	m.Grid.MarkDirty(dst.X, dst.Y)
}

// clampToI8 clamps to the configured MAX_V (spec §6), not the full i8
// range; a fast cluster must not leave a displaced cell with |v| > MAX_V.
func clampToI8(f float32, max int8) int8 {
	limit := float32(max)
	if f > limit {
		f = limit
	}
	if f < -limit {
		f = -limit
	}
	return int8(math.Round(float64(f)))
}
